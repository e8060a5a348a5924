package mask

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/maskentry/internal/logging"
)

// Widget is the host text-entry surface an Editor is bound to. Offsets are
// rune indexes into Text.
type Widget interface {
	// Text returns the current buffer content.
	Text() string
	// SetText replaces the whole buffer.
	SetText(text string)
	// Cursor returns the cursor offset.
	Cursor() int
	// SetCursor moves the cursor and clears any selection.
	SetCursor(pos int)
	// Select selects [start, end) and leaves the cursor at end.
	Select(start, end int)
	// Reject signals a refused keystroke to the user (bell, flash).
	Reject(err error)
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger used for debug output. The package-level
// logger from internal/logging is used when unset.
func WithLogger(l *zap.Logger) Option {
	return func(e *Editor) {
		e.log = l
	}
}

// WithMask installs pattern when the editor is created. An invalid pattern
// leaves the editor in pass-through mode.
func WithMask(pattern string) Option {
	return func(e *Editor) {
		e.initialMask = pattern
	}
}

// Editor enforces a mask on one host Widget.
//
// Without a mask the editor is in pass-through mode: every Handle* hook
// reports false and the host applies its own edits.
type Editor struct {
	w       Widget
	pattern *Pattern

	field     int  // active field, -1 when focus is outside any field
	anchor    int  // last known cursor offset, gives the direction of cursor moves
	selecting bool // the user is extending a selection
	applying  bool // the editor is writing to the widget itself
	updated   bool // an accepted edit changed the buffer since the last reset

	initialMask string
	log         *zap.Logger
}

// New binds an editor to w.
func New(w Widget, opts ...Option) *Editor {
	e := &Editor{w: w, field: -1}
	for _, opt := range opts {
		opt(e)
	}
	if e.initialMask != "" {
		if err := e.SetMask(e.initialMask); err != nil {
			e.logger().Warn("Ignoring invalid initial mask",
				zap.String("mask", e.initialMask),
				zap.Error(err),
			)
		}
	}
	return e
}

func (e *Editor) logger() *zap.Logger {
	if e.log != nil {
		return e.log
	}
	return logging.GetLogger()
}

// SetMask installs a new mask and resets the buffer to its blank rendering.
// An empty pattern removes the mask and switches to pass-through mode.
func (e *Editor) SetMask(pattern string) error {
	if pattern == "" {
		e.pattern = nil
		e.field = -1
		e.logger().Debug("Mask cleared, pass-through mode")
		return nil
	}

	p, err := Compile(pattern)
	if err != nil {
		return err
	}

	e.pattern = p
	e.field = -1
	e.anchor = 0
	e.selecting = false
	e.updated = false
	e.apply(p.Blank(), 0)

	e.logger().Debug("Mask set",
		zap.String("mask", pattern),
		zap.Int("length", p.Len()),
		zap.Int("fields", p.NumFields()),
	)
	return nil
}

// Mask returns the installed mask pattern, or "" in pass-through mode.
func (e *Editor) Mask() string {
	if e.pattern == nil {
		return ""
	}
	return e.pattern.String()
}

// Pattern returns the compiled mask, or nil in pass-through mode.
func (e *Editor) Pattern() *Pattern { return e.pattern }

// Widget returns the bound widget.
func (e *Editor) Widget() Widget { return e.w }

// Text returns the widget's buffer.
func (e *Editor) Text() string { return e.w.Text() }

// FieldText returns the content of field i trimmed of blank padding.
func (e *Editor) FieldText(i int) (string, error) {
	if e.pattern == nil {
		return "", noMask("FieldText")
	}
	if i < 0 || i >= e.pattern.NumFields() {
		return "", fmt.Errorf("field index %d out of range (mask has %d fields)", i, e.pattern.NumFields())
	}
	return e.pattern.FieldText(e.w.Text(), i), nil
}

// Fields returns the trimmed content of every field, in order.
func (e *Editor) Fields() ([]string, error) {
	if e.pattern == nil {
		return nil, noMask("Fields")
	}
	return e.pattern.FieldTexts(e.w.Text()), nil
}

// EmptyMask returns the blank rendering between start and end. Negative end
// means the end of the mask. Without a mask it returns "".
func (e *Editor) EmptyMask(start, end int) string {
	if e.pattern == nil {
		return ""
	}
	if end < 0 {
		end = e.pattern.Len()
	}
	return e.pattern.BlankRange(start, end)
}

// IsEmpty reports whether the buffer equals the blank rendering of the mask,
// or the empty string when no mask is set.
func (e *Editor) IsEmpty() bool {
	if e.pattern == nil {
		return e.w.Text() == ""
	}
	return e.pattern.IsBlank(e.w.Text())
}

// Read returns the buffer content and true, or "" and false when the buffer
// has not been changed by an accepted edit since the mask was set.
func (e *Editor) Read() (string, bool) {
	if !e.updated {
		return "", false
	}
	return e.w.Text(), true
}

// SetText replaces the buffer with text as if it had been typed into a blank
// buffer from the start of the first field. Runes that do not fit the mask
// are dropped; when none fit, the value reads as unset.
func (e *Editor) SetText(text string) {
	e.field = -1
	e.selecting = false
	if e.pattern == nil {
		e.apply(text, len([]rune(text)))
		e.anchor = len([]rune(text))
		e.updated = true
		return
	}

	start, _ := e.pattern.FieldStart(0)
	res := e.pattern.Insert(State{Text: e.pattern.Blank(), Cursor: start}, text)
	e.apply(res.Text, res.Cursor)
	e.anchor = res.Cursor
	e.updated = res.Changed
	if len(res.Rejects) > 0 {
		e.logger().Debug("Runes dropped while setting text",
			zap.String("text", text),
			zap.Int("rejected", len(res.Rejects)),
		)
	}
}

// Applying reports whether the editor is currently writing to the widget.
// Hosts check it in their change notifications to skip the editor's own
// corrective writes.
func (e *Editor) Applying() bool { return e.applying }

// HandleInsert intercepts the host's intent to insert text at pos. It reports
// whether the intent was taken over; when true the host must not apply its
// own edit.
func (e *Editor) HandleInsert(pos int, text string) bool {
	if e.pattern == nil || e.applying {
		return false
	}

	res := e.pattern.Insert(State{Text: e.w.Text(), Cursor: pos}, text)
	e.reject(res.Rejects)
	e.commit(res)
	return true
}

// HandleDelete intercepts the host's intent to delete [start, end). It
// reports whether the intent was taken over.
func (e *Editor) HandleDelete(start, end int) bool {
	if e.pattern == nil || e.applying {
		return false
	}

	e.selecting = false
	before := e.w.Cursor()
	res := e.pattern.Delete(State{Text: e.w.Text(), Cursor: before}, start, end)
	e.commit(res)

	if res.Cursor == before {
		e.CursorMoved()
	}
	return true
}

func (e *Editor) commit(res Result) {
	e.apply(res.Text, res.Cursor)
	if res.Changed {
		e.updated = true
	}
	if res.Field >= 0 {
		e.field = res.Field
	}
	e.anchor = res.Cursor
}

// apply writes text and cursor to the widget with interception suppressed.
func (e *Editor) apply(text string, cursor int) {
	e.applying = true
	defer func() { e.applying = false }()

	if e.w.Text() != text {
		e.w.SetText(text)
	}
	e.w.SetCursor(cursor)
}

func (e *Editor) reject(errs []error) {
	for _, err := range errs {
		e.logger().Debug("Keystroke rejected",
			zap.String("mask", e.Mask()),
			zap.Error(err),
		)
		e.w.Reject(err)
	}
}
