package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/maskentry/internal/mask"
)

// MaskStyles controls how a masked buffer is drawn.
type MaskStyles struct {
	Text        lipgloss.Style // Characters the user entered
	Literal     lipgloss.Style // Separators from the mask
	Placeholder lipgloss.Style // Blank slots
	Cursor      lipgloss.Style // The cell under the cursor
	Selection   lipgloss.Style // Selected cells
	Rejected    lipgloss.Style // Applied to the whole value after a refused keystroke

	// PlaceholderRune is drawn for blank slots.
	PlaceholderRune rune
}

// DefaultMaskStyles returns the styles used by the terminal inputs.
func DefaultMaskStyles() MaskStyles {
	return MaskStyles{
		Text:            lipgloss.NewStyle().Foreground(TextColor),
		Literal:         lipgloss.NewStyle().Foreground(MutedColor),
		Placeholder:     lipgloss.NewStyle().Foreground(MutedColor),
		Cursor:          lipgloss.NewStyle().Reverse(true),
		Selection:       lipgloss.NewStyle().Background(PrimaryColor).Foreground(TextColor),
		Rejected:        lipgloss.NewStyle().Foreground(ErrorColor),
		PlaceholderRune: '_',
	}
}

// MaskView is a snapshot of a masked buffer to draw.
type MaskView struct {
	Pattern *mask.Pattern // nil draws Text verbatim
	Text    string
	Cursor  int // -1 hides the cursor
	// SelStart and SelEnd bound the selection; equal values mean none.
	SelStart, SelEnd int
	Rejected         bool
}

// Render draws v with s.
func (v MaskView) Render(s MaskStyles) string {
	runes := []rune(v.Text)
	selStart, selEnd := min(v.SelStart, v.SelEnd), max(v.SelStart, v.SelEnd)

	var b strings.Builder
	for i, r := range runes {
		style := s.Text
		cell := string(r)

		switch {
		case v.Pattern != nil && isLiteral(v.Pattern, i):
			style = s.Literal
		case v.Pattern != nil && r == mask.Blank:
			style = s.Placeholder
			if s.PlaceholderRune != 0 {
				cell = string(s.PlaceholderRune)
			}
		case v.Rejected:
			style = s.Rejected
		}

		switch {
		case i == v.Cursor:
			style = s.Cursor
		case i >= selStart && i < selEnd:
			style = s.Selection
		}
		b.WriteString(style.Render(cell))
	}

	if v.Cursor == len(runes) {
		b.WriteString(s.Cursor.Render(" "))
	}
	return b.String()
}

// RenderMasked is a convenience for drawing text against p without a cursor.
func RenderMasked(p *mask.Pattern, text string) string {
	return MaskView{Pattern: p, Text: text, Cursor: -1}.Render(DefaultMaskStyles())
}

func isLiteral(p *mask.Pattern, i int) bool {
	v, ok := p.Validator(i)
	return ok && v.IsLiteral()
}
