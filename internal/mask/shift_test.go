package mask

import "testing"

func TestShift(t *testing.T) {
	p := MustCompile("0000-00-00")

	tests := []struct {
		name string
		text string
		rng  Field
		dir  Direction
		n    int
		want string
	}{
		{"left closes gap", "2024-01-15", Field{0, 4}, Left, 1, "024 "},
		{"left by two", "2024-01-15", Field{0, 4}, Left, 2, "24  "},
		{"left from mid field", "2024-01-15", Field{1, 4}, Left, 1, "24 "},
		{"right makes room", "2024-01-15", Field{0, 4}, Right, 1, " 202"},
		{"right truncates overflow", "12  -  -  ", Field{0, 4}, Right, 3, "   1"},
		{"shift past width blanks all", "2024-01-15", Field{5, 7}, Left, 5, "  "},
		{"zero shift is identity", "2024-01-15", Field{8, 10}, Left, 0, "15"},
		{"literal in range stays", "2024-01-15", Field{3, 7}, Left, 1, "0-1 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(p.Shift([]rune(tt.text), tt.rng, tt.dir, tt.n))
			if got != tt.want {
				t.Errorf("Shift(%q, %v, %v, %d) = %q, want %q", tt.text, tt.rng, tt.dir, tt.n, got, tt.want)
			}
		})
	}
}

func TestShiftDoesNotModifyInput(t *testing.T) {
	p := MustCompile("000")
	text := []rune("123")
	_ = p.Shift(text, Field{0, 3}, Right, 1)
	if string(text) != "123" {
		t.Errorf("Shift modified its input: %q", string(text))
	}
}
