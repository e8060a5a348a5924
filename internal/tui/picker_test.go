package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/maskentry/internal/config"
)

func TestPickerSelectsDefaultPreset(t *testing.T) {
	reg := config.NewRegistry()
	reg.Preferences.DefaultPreset = "time"

	m := NewPickerModel(reg)
	m, _ = m.Update(keyOf(tea.KeyEnter))

	if !m.Chosen {
		t.Fatal("enter should choose the selected preset")
	}
	if m.ChosenName != "time" || m.ChosenMask != "00:00:00" {
		t.Errorf("chose %q (%q), want time (00:00:00)", m.ChosenName, m.ChosenMask)
	}
}

func TestPickerListsUserPresets(t *testing.T) {
	reg := config.NewRegistry()
	if err := reg.SetPreset("order-id", "LL-00000", "Order number"); err != nil {
		t.Fatalf("SetPreset() error = %v", err)
	}

	m := NewPickerModel(reg)
	if got, want := len(m.PresetList.Items()), len(config.BuiltinPresets)+1; got != want {
		t.Errorf("len(Items()) = %d, want %d", got, want)
	}
}

func TestPickerCustomMask(t *testing.T) {
	m := NewPickerModel(config.NewRegistry())

	m, _ = m.Update(runes("m"))
	if !m.CustomMode {
		t.Fatal("m should open custom mask entry")
	}

	// An empty pattern is refused.
	m, _ = m.Update(keyOf(tea.KeyEnter))
	if m.Chosen || m.Err == nil {
		t.Fatalf("empty pattern: Chosen = %v, Err = %v", m.Chosen, m.Err)
	}
	if !strings.Contains(m.View(), "pattern is empty") {
		t.Error("View() should show the pattern error")
	}

	m, _ = m.Update(runes("00/00"))
	m, _ = m.Update(keyOf(tea.KeyEnter))
	if !m.Chosen || m.ChosenMask != "00/00" || m.ChosenName != "custom" {
		t.Errorf("chose %q (%q), Chosen = %v", m.ChosenName, m.ChosenMask, m.Chosen)
	}
	if m.CustomMode {
		t.Error("custom entry should close after a valid pattern")
	}
}

func TestPickerCustomMaskCancel(t *testing.T) {
	m := NewPickerModel(config.NewRegistry())
	m, _ = m.Update(runes("m"))
	m, _ = m.Update(keyOf(tea.KeyEsc))

	if m.CustomMode || m.Quit {
		t.Errorf("esc in custom entry: CustomMode = %v, Quit = %v", m.CustomMode, m.Quit)
	}
}

func TestPickerKeys(t *testing.T) {
	tests := []struct {
		name     string
		key      tea.KeyMsg
		wantScan bool
		wantQuit bool
	}{
		{name: "scan", key: runes("s"), wantScan: true},
		{name: "quit", key: runes("q"), wantQuit: true},
		{name: "esc", key: keyOf(tea.KeyEsc), wantQuit: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewPickerModel(config.NewRegistry())
			m, _ = m.Update(tt.key)
			if m.Scan != tt.wantScan || m.Quit != tt.wantQuit {
				t.Errorf("Scan = %v, Quit = %v", m.Scan, m.Quit)
			}
		})
	}
}

func TestPickerView(t *testing.T) {
	m := NewPickerModel(config.NewRegistry())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	for _, want := range []string{"Choose a mask", "date", "0000-00-00"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
