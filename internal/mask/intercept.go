package mask

// State is a snapshot of the host buffer: its text and cursor offset in runes.
type State struct {
	Text   string
	Cursor int
}

// Result is the authoritative buffer state computed for a proposed edit.
// Hosts replace their whole buffer with Text and move the cursor to Cursor in
// one step, so no intermediate state is ever observable.
type Result struct {
	State

	// Field is the field holding the resulting cursor, or -1.
	Field int

	// Rejects lists the runes of an insert batch that could not be placed,
	// in input order. A rejected rune never changes the buffer.
	Rejects []error

	// Changed reports whether Text differs from the input snapshot.
	Changed bool
}

// Rejected reports whether any rune of the edit was refused.
func (r Result) Rejected() bool { return len(r.Rejects) > 0 }

// Insert computes the result of typing text at s.Cursor.
//
// Runes are processed left to right. Each one either passes over a matching
// literal, jumps to the next field when it names a separator, lands in the
// current field (pushing the rest of the field right), or is rejected. When a
// rune fills its field the cursor moves on to the start of the next field.
func (p *Pattern) Insert(s State, text string) Result {
	runes := p.normalize(s.Text)
	pos := clamp(s.Cursor, 0, len(runes))

	res := Result{Field: -1}
	for _, r := range text {
		next, err := p.insertRune(runes, pos, r)
		if err != nil {
			res.Rejects = append(res.Rejects, err)
			continue
		}
		pos = next
	}

	return p.result(s, runes, pos, res)
}

// Delete computes the result of removing the runes in [start, end) with the
// cursor at s.Cursor.
//
// A range starting on a literal is moved back one rune at a time unless the
// cursor sits exactly at its start, so backspacing into a separator deletes
// the character before it. Within each field touched by the range the
// remaining characters shift left over the gap and the vacated slots become
// blank. The cursor ends at the start of the range.
func (p *Pattern) Delete(s State, start, end int) Result {
	runes := p.normalize(s.Text)
	n := len(runes)

	if start > end {
		start, end = end, start
	}
	start = clamp(start, 0, n)
	end = clamp(end, start, n)
	if start == end {
		return p.result(s, runes, clamp(s.Cursor, 0, n), Result{Field: -1})
	}

	for start > 0 && start < n && p.validators[start].literal && s.Cursor != start {
		start, end = start-1, start
	}

	if _, ok := p.FieldAt(end - 1); !ok {
		return p.result(s, runes, end-1, Result{Field: -1})
	}

	for _, f := range p.fields {
		a, b := max(start, f.Start), min(end, f.End)
		if a >= b {
			continue
		}
		copy(runes[a:f.End], p.Shift(runes, Field{Start: a, End: f.End}, Left, b-a))
	}

	return p.result(s, runes, start, Result{Field: -1})
}

// insertRune places r at pos, mutating runes, and returns the next cursor.
func (p *Pattern) insertRune(runes []rune, pos int, r rune) (int, error) {
	if pos < len(runes) {
		if lit, ok := p.validators[pos].Literal(); ok && lit == r {
			return pos + 1, nil
		}
	}
	if p.absorbs(runes, pos, r) {
		return pos, nil
	}
	if i, ok := p.FieldAt(pos); ok && p.full(runes, i) {
		return pos, fieldFull(pos, r)
	}
	if pos >= len(runes) {
		return pos, invalidCharacter(pos, r)
	}
	if !p.validators[pos].Accepts(r) {
		if next, ok := p.separatorJump(runes, pos, r); ok {
			return next, nil
		}
		return pos, invalidCharacter(pos, r)
	}

	i, _ := p.fieldOf(pos)
	f := p.fields[i]

	// Keep field content packed: never leave a gap before the new rune.
	at := min(pos, packedEnd(runes, f))
	shifted := p.Shift(runes, Field{Start: at, End: f.End}, Right, 1)
	shifted[0] = r
	copy(runes[at:f.End], shifted)

	next := at + 1
	if p.full(runes, i) {
		if start, ok := p.FieldStart(i + 1); ok {
			next = start
		}
	}
	return next, nil
}

// absorbs reports whether r repeats a separator the cursor has just been
// moved over: pos starts an empty field and r is one of the literals
// immediately before it.
func (p *Pattern) absorbs(runes []rune, pos int, r rune) bool {
	i, ok := p.fieldOf(pos)
	if !ok || p.fields[i].Start != pos || fieldText(runes, p.fields[i]) != "" {
		return false
	}
	for j := pos - 1; j >= 0 && p.validators[j].literal; j-- {
		if p.validators[j].r == r {
			return true
		}
	}
	return false
}

// separatorJump handles a typed separator: when the field under the cursor
// already has content before pos and r appears later as a literal bordering a
// field, the cursor moves to the start of the field after that literal.
func (p *Pattern) separatorJump(runes []rune, pos int, r rune) (int, bool) {
	cur, ok := p.FieldAt(pos)
	if !ok {
		return pos, false
	}
	f := p.fields[cur]
	if fieldText(runes, Field{Start: f.Start, End: min(pos, f.End)}) == "" {
		return pos, false
	}

	for l := pos; l < len(p.validators); l++ {
		if lit, ok := p.validators[l].Literal(); !ok || lit != r {
			continue
		}
		if _, ok := p.FieldAt(l); !ok {
			return pos, false
		}
		for _, next := range p.fields {
			if next.Start > l {
				return next.Start, true
			}
		}
		return pos, false
	}
	return pos, false
}

// full reports whether field i holds as many characters as it has slots.
func (p *Pattern) full(runes []rune, i int) bool {
	f := p.fields[i]
	return len([]rune(fieldText(runes, f))) == f.Len()
}

// normalize returns the runes of text, refilled from the blank rendering when
// its length does not match the mask.
func (p *Pattern) normalize(text string) []rune {
	runes := []rune(text)
	if len(runes) == len(p.validators) {
		return runes
	}
	return p.fill(text)
}

func (p *Pattern) result(s State, runes []rune, cursor int, res Result) Result {
	res.Text = string(runes)
	res.Cursor = clamp(cursor, 0, len(runes))
	res.Changed = res.Text != s.Text
	if i, ok := p.FieldAt(res.Cursor); ok {
		res.Field = i
	}
	return res
}
