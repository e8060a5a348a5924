package mask

import "testing"

func TestClassAccepts(t *testing.T) {
	tests := []struct {
		name  string
		class Class
		r     rune
		want  bool
	}{
		{"digit accepts 7", ClassDigit, '7', true},
		{"digit rejects a", ClassDigit, 'a', false},
		{"digit accepts arabic-indic", ClassDigit, '٣', true},
		{"ascii letter accepts Z", ClassASCIILetter, 'Z', true},
		{"ascii letter rejects é", ClassASCIILetter, 'é', false},
		{"ascii letter rejects 1", ClassASCIILetter, '1', false},
		{"alpha accepts é", ClassAlpha, 'é', true},
		{"alpha rejects 1", ClassAlpha, '1', false},
		{"alphanumeric accepts ç", ClassAlphanumeric, 'ç', true},
		{"alphanumeric accepts 9", ClassAlphanumeric, '9', true},
		{"alphanumeric rejects -", ClassAlphanumeric, '-', false},
		{"alphanumeric rejects space", ClassAlphanumeric, ' ', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.class.Accepts(tt.r); got != tt.want {
				t.Errorf("%v.Accepts(%q) = %v, want %v", tt.class, tt.r, got, tt.want)
			}
		})
	}
}

func TestValidatorVariants(t *testing.T) {
	lit := LiteralValidator('-')
	if !lit.IsLiteral() {
		t.Error("LiteralValidator should be a literal")
	}
	if r, ok := lit.Literal(); !ok || r != '-' {
		t.Errorf("Literal() = %q, %v, want '-', true", r, ok)
	}
	if _, ok := lit.Class(); ok {
		t.Error("Class() on a literal should report false")
	}
	if !lit.Accepts('-') || lit.Accepts('+') {
		t.Error("literal validator should accept only its own rune")
	}

	cls := ClassValidator(ClassDigit)
	if cls.IsLiteral() {
		t.Error("ClassValidator should not be a literal")
	}
	if c, ok := cls.Class(); !ok || c != ClassDigit {
		t.Errorf("Class() = %v, %v, want digit, true", c, ok)
	}
	if _, ok := cls.Literal(); ok {
		t.Error("Literal() on a class validator should report false")
	}
	if cls.blank() != Blank || lit.blank() != '-' {
		t.Error("blank rendering mismatch")
	}
}
