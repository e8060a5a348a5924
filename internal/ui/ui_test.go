package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/maskentry/internal/mask"
)

// plainStyles renders every cell unstyled so output can be compared.
func plainStyles() MaskStyles {
	plain := lipgloss.NewStyle()
	return MaskStyles{
		Text:            plain,
		Literal:         plain,
		Placeholder:     plain,
		Cursor:          plain,
		Selection:       plain,
		Rejected:        plain,
		PlaceholderRune: '_',
	}
}

func TestMaskViewRender(t *testing.T) {
	p := mask.MustCompile("0000-00-00")

	tests := []struct {
		name string
		view MaskView
		want string
	}{
		{
			name: "blank",
			view: MaskView{Pattern: p, Text: p.Blank(), Cursor: -1},
			want: "____-__-__",
		},
		{
			name: "partial",
			view: MaskView{Pattern: p, Text: "2024-1 -  ", Cursor: -1},
			want: "2024-1_-__",
		},
		{
			name: "cursor at end adds a cell",
			view: MaskView{Pattern: p, Text: "2024-01-15", Cursor: 10},
			want: "2024-01-15 ",
		},
		{
			name: "pass-through",
			view: MaskView{Text: "a b", Cursor: -1},
			want: "a b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.view.Render(plainStyles()); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResultRenderContainsDetailsInOrder(t *testing.T) {
	out := NewSuccessResult("Done",
		Detail{Key: "First", Value: "one"},
		Detail{Key: "Second", Value: "two"},
	).SetWidth(80).Render()

	first, second := strings.Index(out, "one"), strings.Index(out, "two")
	if first < 0 || second < 0 || first > second {
		t.Errorf("details missing or out of order:\n%s", out)
	}
	if !strings.Contains(out, "SUCCESS") {
		t.Errorf("success box missing title:\n%s", out)
	}
}

func TestFailureResultShowsError(t *testing.T) {
	out := NewFailureResult("Broken", errors.New("boom"), []string{"try again"}).SetWidth(80).Render()
	for _, want := range []string{"FAILED", "boom", "Troubleshooting", "try again"} {
		if !strings.Contains(out, want) {
			t.Errorf("failure box missing %q:\n%s", want, out)
		}
	}
}

func TestHeaderRender(t *testing.T) {
	out := NewHeader("serve", "maskentry serve", Detail{Key: "Listen", Value: "127.0.0.1:8765"}).SetWidth(70).Render()
	for _, want := range []string{"SERVE", "maskentry serve", "Listen:", "127.0.0.1:8765"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
}

func TestPrinterTable(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintTable(
		[]string{"NAME", "MASK"},
		[][]string{{"date", "0000-00-00"}, {"ipv4", "000.000.000.000"}},
	)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "date") || !strings.Contains(lines[2], "000.000.000.000") {
		t.Errorf("unexpected table:\n%s", buf.String())
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		if got := Confirm(strings.NewReader(tt.input), &out, "Remove preset", []string{"gone"}); got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
