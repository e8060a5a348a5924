package mask

import (
	"fmt"
	"unicode"
)

// Class is the character class accepted by a dynamic mask slot.
type Class uint8

const (
	// ClassASCIILetter accepts a-z and A-Z
	ClassASCIILetter Class = iota
	// ClassAlpha accepts any Unicode letter
	ClassAlpha
	// ClassAlphanumeric accepts any Unicode letter or digit
	ClassAlphanumeric
	// ClassDigit accepts any Unicode decimal digit
	ClassDigit
)

// markers maps mask pattern runes to the class they stand for.
var markers = map[rune]Class{
	'0': ClassDigit,
	'L': ClassASCIILetter,
	'A': ClassAlphanumeric,
	'a': ClassAlphanumeric,
	'&': ClassAlpha,
}

// String returns the class name
func (c Class) String() string {
	switch c {
	case ClassASCIILetter:
		return "ascii-letter"
	case ClassAlpha:
		return "alpha"
	case ClassAlphanumeric:
		return "alphanumeric"
	case ClassDigit:
		return "digit"
	default:
		return fmt.Sprintf("Class(%d)", c)
	}
}

// Accepts reports whether r belongs to the class.
func (c Class) Accepts(r rune) bool {
	switch c {
	case ClassASCIILetter:
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	case ClassAlpha:
		return unicode.IsLetter(r)
	case ClassAlphanumeric:
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	case ClassDigit:
		return unicode.IsDigit(r)
	default:
		return false
	}
}

// Validator is the rule for one mask position: either a character class
// (a dynamic slot the user types into) or a literal rune.
type Validator struct {
	literal bool
	class   Class
	r       rune
}

// ClassValidator returns a dynamic validator for c.
func ClassValidator(c Class) Validator {
	return Validator{class: c}
}

// LiteralValidator returns a static validator for r.
func LiteralValidator(r rune) Validator {
	return Validator{literal: true, r: r}
}

// IsLiteral reports whether the position holds a static character.
func (v Validator) IsLiteral() bool { return v.literal }

// Literal returns the static rune and true, or 0 and false for class slots.
func (v Validator) Literal() (rune, bool) {
	if !v.literal {
		return 0, false
	}
	return v.r, true
}

// Class returns the character class and true, or false for literals.
func (v Validator) Class() (Class, bool) {
	if v.literal {
		return 0, false
	}
	return v.class, true
}

// Accepts reports whether r may occupy the position.
func (v Validator) Accepts(r rune) bool {
	if v.literal {
		return r == v.r
	}
	return v.class.Accepts(r)
}

// blank is the rune a validator renders as in an empty buffer.
func (v Validator) blank() rune {
	if v.literal {
		return v.r
	}
	return Blank
}

func (v Validator) String() string {
	if v.literal {
		return fmt.Sprintf("literal(%q)", v.r)
	}
	return v.class.String()
}
