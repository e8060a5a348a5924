package mask

import (
	"testing"

	"go.uber.org/zap"
)

func newEditor(t *testing.T, pattern string) (*Editor, *fakeWidget) {
	t.Helper()
	w := &fakeWidget{}
	e := New(w, WithLogger(zap.NewNop()))
	if err := e.SetMask(pattern); err != nil {
		t.Fatalf("SetMask(%q) error = %v", pattern, err)
	}
	return e, w
}

func TestFocusForward(t *testing.T) {
	e, w := newEditor(t, "0000-00-00")
	e.SetText("2024-01-15")

	wantSel := [][2]int{{0, 4}, {5, 7}, {8, 10}}
	for i, want := range wantSel {
		if !e.Focus(Forward) {
			t.Fatalf("Focus(Forward) #%d left the entry", i)
		}
		if field, ok := e.Field(); !ok || field != i {
			t.Errorf("Field() = %d, %v, want %d", field, ok, i)
		}
		if w.selStart != want[0] || w.selEnd != want[1] {
			t.Errorf("selection = [%d, %d), want %v", w.selStart, w.selEnd, want)
		}
		if w.cursor != want[1] {
			t.Errorf("cursor = %d, want %d", w.cursor, want[1])
		}
	}

	if e.Focus(Forward) {
		t.Error("Focus(Forward) past the last field should leave the entry")
	}
	if _, ok := e.Field(); ok {
		t.Error("leaving the entry should clear the active field")
	}
	if w.selStart != w.selEnd {
		t.Errorf("leaving the entry should clear the selection, got [%d, %d)", w.selStart, w.selEnd)
	}
}

func TestFocusBackward(t *testing.T) {
	e, _ := newEditor(t, "0000-00-00")

	if !e.Focus(Backward) {
		t.Fatal("entering backward should activate the last field")
	}
	if field, _ := e.Field(); field != 2 {
		t.Errorf("Field() = %d, want 2", field)
	}
	e.Focus(Backward)
	e.Focus(Backward)
	if field, _ := e.Field(); field != 0 {
		t.Errorf("Field() = %d, want 0", field)
	}
	if e.Focus(Backward) {
		t.Error("Focus(Backward) from the first field should leave the entry")
	}
	if _, ok := e.Field(); ok {
		t.Error("leaving backward should clear the active field")
	}
}

func TestFocusWithoutMask(t *testing.T) {
	w := &fakeWidget{}
	e := New(w, WithLogger(zap.NewNop()))
	if e.Focus(Forward) {
		t.Error("Focus without a mask should not keep focus")
	}
}

func TestSetFieldIdealPosition(t *testing.T) {
	e, w := newEditor(t, "0000-00-00")
	e.SetText("2024-1")

	e.SetField(1, false)
	if w.cursor != 6 {
		t.Errorf("cursor = %d, want 6", w.cursor)
	}
	e.SetField(2, true)
	if w.cursor != 8 || w.selStart != 8 || w.selEnd != 8 {
		t.Errorf("empty field select: cursor %d selection [%d, %d)", w.cursor, w.selStart, w.selEnd)
	}

	e.SetField(5, true)
	if field, _ := e.Field(); field != 2 {
		t.Errorf("out of range SetField changed the field to %d", field)
	}
}

func TestGrabFocus(t *testing.T) {
	e, w := newEditor(t, "(00) 00")
	w.cursor = 6

	e.GrabFocus()
	if w.cursor != 1 {
		t.Errorf("cursor = %d, want 1 (start of first field)", w.cursor)
	}

	e.SetText("12")
	w.cursor = 6
	e.GrabFocus()
	if w.cursor != 6 {
		t.Errorf("GrabFocus moved the cursor of a non-empty buffer to %d", w.cursor)
	}

	if err := e.SetMask(""); err != nil {
		t.Fatal(err)
	}
	w.text, w.cursor = "", 3
	e.GrabFocus()
	if w.cursor != 0 {
		t.Errorf("unmasked cursor = %d, want 0", w.cursor)
	}
}

func TestCursorMovedDriftCorrection(t *testing.T) {
	tests := []struct {
		name   string
		anchor int
		cursor int
		want   int
	}{
		{"moving right skips separators", 3, 4, 5},
		{"moving left skips separators", 5, 4, 3},
		{"inside a field is left alone", 2, 1, 1},
		{"walking off the start pins to the first field", 1, 0, 1},
		{"walking off the end pins to the last field", 7, 8, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, w := newEditor(t, "(00) 00-")
			e.anchor = tt.anchor
			w.cursor = tt.cursor

			e.CursorMoved()

			if w.cursor != tt.want {
				t.Errorf("cursor = %d, want %d", w.cursor, tt.want)
			}
		})
	}
}

func TestCursorMovedSuppressedWhileSelecting(t *testing.T) {
	e, w := newEditor(t, "(00) 00")
	e.anchor = 3

	e.MoveCursor(true)
	if !e.Selecting() {
		t.Fatal("MoveCursor(true) should mark a selection in progress")
	}
	w.cursor = 4
	e.CursorMoved()
	if w.cursor != 4 {
		t.Errorf("cursor corrected while selecting: %d", w.cursor)
	}

	e.MoveCursor(false)
	e.CursorMoved()
	if w.cursor != 5 {
		t.Errorf("cursor = %d, want 5", w.cursor)
	}
}

func TestCursorMovedUpdatesActiveField(t *testing.T) {
	e, w := newEditor(t, "0000-00-00")
	e.Focus(Forward)

	w.cursor = 6
	e.CursorMoved()
	if field, _ := e.Field(); field != 1 {
		t.Errorf("Field() = %d, want 1", field)
	}

	e.FocusOut()
	if _, ok := e.Field(); ok {
		t.Error("FocusOut should clear the active field")
	}
	w.cursor = 9
	e.CursorMoved()
	if _, ok := e.Field(); ok {
		t.Error("cursor moves while unfocused should not activate a field")
	}
}

func TestDeleteResetsSelecting(t *testing.T) {
	e, w := newEditor(t, "0000")
	e.SetText("12")
	e.MoveCursor(true)

	e.HandleDelete(0, 2)
	if e.Selecting() {
		t.Error("a delete should end the selection")
	}
	if w.text != "    " || w.cursor != 0 {
		t.Errorf("buffer %q cursor %d", w.text, w.cursor)
	}
}

func TestTypingAutoAdvancesActiveField(t *testing.T) {
	e, w := newEditor(t, "00/00")
	e.GrabFocus()

	typeText(e, w, "12")
	if field, _ := e.Field(); field != 1 {
		t.Errorf("Field() = %d, want 1 after filling the first field", field)
	}
	if w.cursor != 3 {
		t.Errorf("cursor = %d, want 3", w.cursor)
	}
}
