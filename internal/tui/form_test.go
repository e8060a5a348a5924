package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/maskentry/internal/config"
	"github.com/muurk/maskentry/internal/maskinput"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func twoInputForm() FormModel {
	return NewFormModel("Appointment", []InputSpec{
		{Label: "Date", Mask: "0000-00-00"},
		{Label: "Time", Mask: "00:00"},
	}, FormOptions{})
}

// press sends a key and feeds a resulting LeaveMsg back, as the runtime would.
func press(m FormModel, msg tea.KeyMsg) FormModel {
	m, cmd := m.Update(msg)
	if cmd == nil {
		return m
	}
	if leave, ok := cmd().(maskinput.LeaveMsg); ok {
		m, _ = m.Update(leave)
	}
	return m
}

func TestFormFirstInputFocused(t *testing.T) {
	m := twoInputForm()

	if !m.Inputs[0].Focused() || m.Inputs[1].Focused() {
		t.Fatal("only the first input should be focused")
	}

	m = press(m, runes("2024"))
	if got := m.Inputs[0].Value(); got != "2024-  -  " {
		t.Errorf("Inputs[0].Value() = %q, want %q", got, "2024-  -  ")
	}
	if got := m.Inputs[1].Value(); got != "  :  " {
		t.Errorf("Inputs[1].Value() = %q, want blank", got)
	}
}

func TestFormTabMovesBetweenInputs(t *testing.T) {
	m := twoInputForm()

	// Three fields in the date, the third tab leaves it.
	m = press(m, keyOf(tea.KeyTab))
	m = press(m, keyOf(tea.KeyTab))
	if m.Active != 0 {
		t.Fatalf("Active = %d after two tabs, want 0", m.Active)
	}
	m = press(m, keyOf(tea.KeyTab))
	if m.Active != 1 {
		t.Fatalf("Active = %d after leaving the date, want 1", m.Active)
	}
	if m.Inputs[0].Focused() || !m.Inputs[1].Focused() {
		t.Error("focus should have moved to the time input")
	}

	// Shift+tab from the first time field goes back to the last date field.
	m = press(m, keyOf(tea.KeyShiftTab))
	if m.Active != 0 {
		t.Fatalf("Active = %d after shift+tab, want 0", m.Active)
	}
	if field, ok := m.Inputs[0].Editor().Field(); !ok || field != 2 {
		t.Errorf("active date field = %d, %v, want 2", field, ok)
	}
}

func TestFormTabWraps(t *testing.T) {
	m := twoInputForm()
	m = press(m, keyOf(tea.KeyShiftTab))
	if m.Active != 1 {
		t.Errorf("Active = %d after shift+tab on the first input, want 1", m.Active)
	}

	m = press(m, keyOf(tea.KeyTab))
	if m.Active != 0 {
		t.Errorf("Active = %d after tabbing past the last input, want 0", m.Active)
	}
}

func TestFormIgnoresStaleLeave(t *testing.T) {
	m := twoInputForm()
	m, _ = m.Update(maskinput.LeaveMsg{ID: m.Inputs[1].ID()})
	if m.Active != 0 {
		t.Errorf("Active = %d, a LeaveMsg from a blurred input must be ignored", m.Active)
	}
}

func TestFormRejectStatus(t *testing.T) {
	m := twoInputForm()
	m = press(m, runes("x"))

	err := m.Inputs[0].Err()
	if err == nil {
		t.Fatal("typing a letter into a date should be refused")
	}
	m, _ = m.Update(maskinput.RejectMsg{ID: m.Inputs[0].ID(), Err: err})
	if !strings.HasPrefix(m.Status, "Date: 'x' refused") {
		t.Errorf("Status = %q", m.Status)
	}
	if !strings.Contains(m.View(), "'x' refused") {
		t.Error("View() should show the status line")
	}

	m = press(m, runes("2"))
	if m.Status != "" {
		t.Errorf("Status = %q after an accepted key, want empty", m.Status)
	}
}

func TestFormSubmitAndResults(t *testing.T) {
	m := twoInputForm()
	m = press(m, runes("20240115"))
	m = press(m, keyOf(tea.KeyEnter))

	if !m.Submitted {
		t.Fatal("enter should submit the form")
	}

	results := m.Results()
	if len(results) != 2 {
		t.Fatalf("len(Results()) = %d, want 2", len(results))
	}

	date := results[0]
	if date.Label != "Date" || date.Value != "2024-01-15" || !date.Complete {
		t.Errorf("date result = %+v", date)
	}
	if strings.Join(date.Fields, ",") != "2024,01,15" {
		t.Errorf("date fields = %v", date.Fields)
	}
	if results[1].Complete {
		t.Error("blank time should not be complete")
	}
	if results[1].Mask != "00:00" {
		t.Errorf("time mask = %q", results[1].Mask)
	}
}

func TestFormCancel(t *testing.T) {
	m := twoInputForm()
	m = press(m, keyOf(tea.KeyEsc))
	if !m.Cancelled || m.Submitted {
		t.Errorf("esc: Cancelled = %v, Submitted = %v", m.Cancelled, m.Submitted)
	}
}

func TestFormFilledAndView(t *testing.T) {
	m := twoInputForm()
	m = press(m, runes("2024"))

	filled, total := m.Filled()
	if filled != 1 || total != 5 {
		t.Errorf("Filled() = %d/%d, want 1/5", filled, total)
	}

	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	for _, want := range []string{"Appointment", "Date", "Time", "1/5 fields", AppName} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestFormInitialValues(t *testing.T) {
	m := NewFormModel("t", []InputSpec{{Label: "Expiry", Mask: "00/00", Value: "0927"}}, FormOptions{})
	if got := m.Inputs[0].Value(); got != "09/27" {
		t.Errorf("Value() = %q, want %q", got, "09/27")
	}
}

func TestSpecsFromForm(t *testing.T) {
	reg := config.NewRegistry()
	if err := reg.SetForm("booking", &config.Form{
		Title: "Booking",
		Inputs: []*config.FormInput{
			{Label: "Day", Preset: "date"},
			{Label: "Room", Mask: "L-00", Value: "B12"},
		},
	}); err != nil {
		t.Fatalf("SetForm() error = %v", err)
	}

	title, specs, err := SpecsFromForm(reg, "booking")
	if err != nil {
		t.Fatalf("SpecsFromForm() error = %v", err)
	}
	if title != "Booking" {
		t.Errorf("title = %q", title)
	}
	want := []InputSpec{
		{Label: "Day", Mask: "0000-00-00"},
		{Label: "Room", Mask: "L-00", Value: "B12"},
	}
	if len(specs) != len(want) {
		t.Fatalf("len(specs) = %d, want %d", len(specs), len(want))
	}
	for i := range want {
		if specs[i] != want[i] {
			t.Errorf("specs[%d] = %+v, want %+v", i, specs[i], want[i])
		}
	}

	if _, _, err := SpecsFromForm(reg, "missing"); err == nil {
		t.Error("SpecsFromForm() of an unknown form should fail")
	}
}
