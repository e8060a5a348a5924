package mask

// Direction is the way characters move when a field is shifted.
type Direction int

const (
	// Left moves characters toward the start of the field, closing a gap.
	Left Direction = iota
	// Right moves characters toward the end of the field, making room.
	Right
)

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

// Shift returns the runes of text within r moved n dynamic slots toward dir.
//
// Literal positions inside r keep their rune. Characters pushed past the
// range boundary are dropped and the slots they vacate become Blank. The
// returned slice has exactly r.Len() runes; text is not modified.
func (p *Pattern) Shift(text []rune, r Field, dir Direction, n int) []rune {
	r.Start = clamp(r.Start, 0, len(p.validators))
	r.End = clamp(r.End, r.Start, len(p.validators))
	out := make([]rune, r.Len())

	// Dynamic slots in range order; literals are copied straight through.
	slots := make([]int, 0, r.Len())
	for i := r.Start; i < r.End; i++ {
		if p.validators[i].literal {
			out[i-r.Start] = p.validators[i].r
			continue
		}
		slots = append(slots, i)
	}

	for k, pos := range slots {
		src := k + n
		if dir == Right {
			src = k - n
		}
		if src < 0 || src >= len(slots) || slots[src] >= len(text) {
			out[pos-r.Start] = Blank
			continue
		}
		out[pos-r.Start] = text[slots[src]]
	}
	return out
}
