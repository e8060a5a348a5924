package maskinput

import "github.com/muurk/maskentry/internal/mask"

// buffer is the single-line text store behind a Model. It implements
// mask.Widget so an Editor can drive it directly.
type buffer struct {
	text   []rune
	cursor int
	anchor int // selection anchor; equal to cursor when nothing is selected

	rejected []error // refused keystrokes since the last drain
}

var _ mask.Widget = (*buffer)(nil)

func (b *buffer) Text() string { return string(b.text) }

func (b *buffer) SetText(text string) {
	b.text = []rune(text)
	b.SetCursor(b.cursor)
}

func (b *buffer) Cursor() int { return b.cursor }

func (b *buffer) SetCursor(pos int) {
	b.cursor = clamp(pos, 0, len(b.text))
	b.anchor = b.cursor
}

func (b *buffer) Select(start, end int) {
	b.anchor = clamp(start, 0, len(b.text))
	b.cursor = clamp(end, 0, len(b.text))
}

func (b *buffer) Reject(err error) {
	b.rejected = append(b.rejected, err)
}

// selection returns the selected range; ok is false when it is empty.
func (b *buffer) selection() (start, end int, ok bool) {
	start, end = min(b.anchor, b.cursor), max(b.anchor, b.cursor)
	return start, end, start != end
}

// extend moves the cursor by delta keeping the anchor.
func (b *buffer) extend(delta int) {
	b.cursor = clamp(b.cursor+delta, 0, len(b.text))
}

// insert and remove are the unmasked edits used in pass-through mode.
func (b *buffer) insert(text string) {
	if start, end, ok := b.selection(); ok {
		b.remove(start, end)
	}
	r := []rune(text)
	out := make([]rune, 0, len(b.text)+len(r))
	out = append(out, b.text[:b.cursor]...)
	out = append(out, r...)
	out = append(out, b.text[b.cursor:]...)
	b.text = out
	b.SetCursor(b.cursor + len(r))
}

func (b *buffer) remove(start, end int) {
	start, end = clamp(start, 0, len(b.text)), clamp(end, 0, len(b.text))
	if start >= end {
		return
	}
	b.text = append(b.text[:start:start], b.text[end:]...)
	b.SetCursor(start)
}

func (b *buffer) drainRejects() []error {
	errs := b.rejected
	b.rejected = nil
	return errs
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
