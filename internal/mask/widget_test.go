package mask

// fakeWidget is an in-memory Widget that records what the editor does to it.
type fakeWidget struct {
	text     string
	cursor   int
	selStart int
	selEnd   int
	rejects  []error
	writes   int

	// onChange, when set, runs after every SetText like a host "changed"
	// notification would.
	onChange func()
}

func (w *fakeWidget) Text() string { return w.text }

func (w *fakeWidget) SetText(text string) {
	w.text = text
	w.writes++
	if w.onChange != nil {
		w.onChange()
	}
}

func (w *fakeWidget) Cursor() int { return w.cursor }

func (w *fakeWidget) SetCursor(pos int) {
	w.cursor = pos
	w.selStart, w.selEnd = pos, pos
}

func (w *fakeWidget) Select(start, end int) {
	w.selStart, w.selEnd = start, end
	w.cursor = end
}

func (w *fakeWidget) Reject(err error) { w.rejects = append(w.rejects, err) }

// typeText feeds text as individual keystrokes at the widget cursor.
func typeText(e *Editor, w *fakeWidget, text string) {
	for _, r := range text {
		e.HandleInsert(w.cursor, string(r))
	}
}

// backspace asks to delete the rune before the cursor.
func backspace(e *Editor, w *fakeWidget) {
	if w.cursor > 0 {
		e.HandleDelete(w.cursor-1, w.cursor)
	}
}
