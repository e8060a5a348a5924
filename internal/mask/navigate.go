package mask

import "go.uber.org/zap"

// FocusDirection is the direction of a focus change (tab, shift+tab).
type FocusDirection int

const (
	Forward FocusDirection = iota
	Backward
)

func (d FocusDirection) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Field returns the active field index, or false when focus is outside
// every field.
func (e *Editor) Field() (int, bool) {
	if e.field < 0 {
		return -1, false
	}
	return e.field, true
}

// SetField activates field i: the cursor moves to the field's ideal position
// (just after its content) and, when selectRegion is set, the field content
// is selected.
func (e *Editor) SetField(i int, selectRegion bool) {
	if e.pattern == nil || i < 0 || i >= e.pattern.NumFields() {
		return
	}

	pos := e.pattern.IdealPosition(e.w.Text(), i)
	e.applying = true
	e.w.SetCursor(pos)
	if selectRegion {
		start, _ := e.pattern.FieldStart(i)
		e.w.Select(start, pos)
	}
	e.applying = false

	e.field = i
	e.anchor = pos
}

// Focus moves focus one field in dir. Forward from field i activates field
// i+1 and backward activates i-1; entering from outside activates the first
// or last field. It reports false when the move leaves the masked region, in
// which case the selection is cleared and no field stays active.
func (e *Editor) Focus(dir FocusDirection) bool {
	if e.pattern == nil {
		return false
	}

	n := e.pattern.NumFields()
	field := e.field
	switch {
	case dir == Forward:
		field++
	case field < 0:
		field = n - 1
	default:
		field--
	}

	if field < 0 || field >= n {
		e.applying = true
		e.w.Select(0, 0)
		e.applying = false
		e.field = -1
		e.logger().Debug("Focus leaving masked entry", zap.Stringer("direction", dir))
		return false
	}

	e.SetField(field, true)
	return true
}

// GrabFocus places the cursor when the widget gains focus: an untouched
// buffer puts it at the start of the first field, or at 0 without a mask.
func (e *Editor) GrabFocus() {
	if !e.IsEmpty() {
		return
	}
	if e.pattern == nil || e.pattern.NumFields() == 0 {
		e.applying = true
		e.w.SetCursor(0)
		e.applying = false
		e.anchor = 0
		return
	}
	e.SetField(0, false)
}

// FocusOut records that the widget lost focus.
func (e *Editor) FocusOut() {
	if e.pattern == nil {
		return
	}
	e.field = -1
}

// MoveCursor records a cursor key from the host; extend is set while the
// user extends a selection, which suspends drift correction.
func (e *Editor) MoveCursor(extend bool) {
	e.selecting = extend
}

// Selecting reports whether a selection is being extended.
func (e *Editor) Selecting() bool { return e.selecting }

// CursorMoved corrects a cursor the host moved outside every field. The
// cursor walks one position at a time in the direction it was moving until
// it reaches a field. Walking off the start pins it to the first field, off
// the end to the end of the last field.
func (e *Editor) CursorMoved() {
	if e.pattern == nil || e.selecting || e.applying || e.pattern.NumFields() == 0 {
		return
	}

	pos := e.w.Cursor()
	if field, ok := e.pattern.FieldAt(pos); ok {
		if e.field >= 0 {
			e.field = field
		}
		e.anchor = pos
		return
	}

	step := 1
	if pos < e.anchor {
		step = -1
	}

	target := pos
	for {
		target += step
		if target < 0 {
			target, _ = e.pattern.FieldStart(0)
			break
		}
		if target > e.pattern.Len() {
			target = e.pattern.fields[e.pattern.NumFields()-1].End
			break
		}
		if _, ok := e.pattern.FieldAt(target); ok {
			break
		}
	}

	e.applying = true
	e.w.SetCursor(target)
	e.applying = false
	e.anchor = target
	if field, ok := e.pattern.FieldAt(target); ok && e.field >= 0 {
		e.field = field
	}
}
