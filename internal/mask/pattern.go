package mask

import (
	"strings"
	"unicode/utf8"
)

// Blank is the rune an empty dynamic slot holds in the buffer.
const Blank = ' '

// Field is a half-open [Start, End) range of buffer positions covering one
// maximal run of class validators.
type Field struct {
	Start int
	End   int
}

// Len returns the number of slots in the field.
func (f Field) Len() int { return f.End - f.Start }

// Pattern is a compiled mask. It is immutable once built.
type Pattern struct {
	source     string
	validators []Validator
	fields     []Field
	blank      []rune
}

// Compile parses a mask pattern into validators and fields.
//
// An empty pattern describes no mask at all and fails with ErrInvalidPattern;
// callers that want pass-through mode use Editor.SetMask("") instead.
func Compile(pattern string) (*Pattern, error) {
	if pattern == "" {
		return nil, &Error{Type: ErrTypeInvalidPattern, Message: "pattern is empty", Pos: -1}
	}
	if !utf8.ValidString(pattern) {
		return nil, &Error{Type: ErrTypeInvalidPattern, Message: "pattern is not valid UTF-8", Pos: -1}
	}

	p := &Pattern{source: pattern}
	begin := 0
	pos := 0
	for _, r := range pattern {
		if class, ok := markers[r]; ok {
			p.validators = append(p.validators, ClassValidator(class))
		} else {
			p.validators = append(p.validators, LiteralValidator(r))
			if begin != pos {
				p.fields = append(p.fields, Field{Start: begin, End: pos})
			}
			begin = pos + 1
		}
		pos++
	}
	if begin != pos {
		p.fields = append(p.fields, Field{Start: begin, End: pos})
	}

	p.blank = make([]rune, len(p.validators))
	for i, v := range p.validators {
		p.blank[i] = v.blank()
	}
	return p, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source pattern.
func (p *Pattern) String() string { return p.source }

// Len returns the buffer length the mask requires, in runes.
func (p *Pattern) Len() int { return len(p.validators) }

// Validators returns a copy of the per-position validators.
func (p *Pattern) Validators() []Validator {
	out := make([]Validator, len(p.validators))
	copy(out, p.validators)
	return out
}

// Validator returns the validator at pos.
func (p *Pattern) Validator(pos int) (Validator, bool) {
	if pos < 0 || pos >= len(p.validators) {
		return Validator{}, false
	}
	return p.validators[pos], true
}

// Fields returns a copy of the field ranges, in buffer order.
func (p *Pattern) Fields() []Field {
	out := make([]Field, len(p.fields))
	copy(out, p.fields)
	return out
}

// NumFields returns the number of fields.
func (p *Pattern) NumFields() int { return len(p.fields) }

// Blank returns the blank rendering of the mask.
func (p *Pattern) Blank() string { return string(p.blank) }

// BlankRange returns the blank rendering between start and end, clamped to
// the mask.
func (p *Pattern) BlankRange(start, end int) string {
	start = clamp(start, 0, len(p.blank))
	end = clamp(end, start, len(p.blank))
	return string(p.blank[start:end])
}

// IsBlank reports whether text equals the blank rendering.
func (p *Pattern) IsBlank(text string) bool {
	return text == string(p.blank)
}

// Conforms reports whether text has the mask's length, carries every literal
// in place and holds only blanks or accepted runes in dynamic slots.
func (p *Pattern) Conforms(text string) bool {
	runes := []rune(text)
	if len(runes) != len(p.validators) {
		return false
	}
	for i, v := range p.validators {
		if v.literal {
			if runes[i] != v.r {
				return false
			}
			continue
		}
		if runes[i] != Blank && !v.class.Accepts(runes[i]) {
			return false
		}
	}
	return true
}

// FieldAt returns the index of the field containing the cursor position pos.
// The end of a field counts as inside it, so the cursor just after the last
// slot of a field still belongs to that field.
func (p *Pattern) FieldAt(pos int) (int, bool) {
	for i, f := range p.fields {
		if f.Start <= pos && pos <= f.End {
			return i, true
		}
	}
	return -1, false
}

// fieldOf returns the index of the field owning the slot at pos.
func (p *Pattern) fieldOf(pos int) (int, bool) {
	for i, f := range p.fields {
		if f.Start <= pos && pos < f.End {
			return i, true
		}
	}
	return -1, false
}

// FieldStart returns the first buffer position of field i.
func (p *Pattern) FieldStart(i int) (int, bool) {
	if i < 0 || i >= len(p.fields) {
		return 0, false
	}
	return p.fields[i].Start, true
}

// FieldLength returns the number of slots in field i, or 0 when i is out of range.
func (p *Pattern) FieldLength(i int) int {
	if i < 0 || i >= len(p.fields) {
		return 0
	}
	return p.fields[i].Len()
}

// FieldText returns the content of field i in text, trimmed of blank padding.
func (p *Pattern) FieldText(text string, i int) string {
	if i < 0 || i >= len(p.fields) {
		return ""
	}
	return fieldText([]rune(text), p.fields[i])
}

// FieldTexts returns the trimmed content of every field, in order.
func (p *Pattern) FieldTexts(text string) []string {
	runes := []rune(text)
	out := make([]string, len(p.fields))
	for i, f := range p.fields {
		out[i] = fieldText(runes, f)
	}
	return out
}

// Complete reports whether every field of text is full.
func (p *Pattern) Complete(text string) bool {
	runes := []rune(text)
	for _, f := range p.fields {
		if len([]rune(fieldText(runes, f))) != f.Len() {
			return false
		}
	}
	return true
}

// IdealPosition returns where the next typed rune would land in field i:
// the field start plus the length of its current content.
func (p *Pattern) IdealPosition(text string, i int) int {
	if i < 0 || i >= len(p.fields) {
		return 0
	}
	f := p.fields[i]
	return f.Start + len([]rune(fieldText([]rune(text), f)))
}

// fill pads or truncates text to the mask length, replacing runes that do not
// fit their slot with the blank rendering.
func (p *Pattern) fill(text string) []rune {
	runes := []rune(text)
	out := make([]rune, len(p.validators))
	for i, v := range p.validators {
		switch {
		case v.literal:
			out[i] = v.r
		case i < len(runes) && v.class.Accepts(runes[i]):
			out[i] = runes[i]
		default:
			out[i] = Blank
		}
	}
	return out
}

func fieldText(runes []rune, f Field) string {
	if f.Start >= len(runes) {
		return ""
	}
	end := f.End
	if end > len(runes) {
		end = len(runes)
	}
	return strings.TrimSpace(string(runes[f.Start:end]))
}

// packedEnd returns the position just after the last non-blank slot of f.
func packedEnd(runes []rune, f Field) int {
	for i := f.End - 1; i >= f.Start; i-- {
		if i < len(runes) && runes[i] != Blank {
			return i + 1
		}
	}
	return f.Start
}

func clamp(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
