package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/muurk/maskentry/internal/config"
	"github.com/muurk/maskentry/internal/logging"
	"github.com/muurk/maskentry/internal/mask"
	"github.com/muurk/maskentry/internal/maskinput"
)

// InputSpec describes one labelled input of a form.
type InputSpec struct {
	Label string
	Mask  string
	Value string
}

// FormResult is the submitted content of one input.
type FormResult struct {
	Label    string   `json:"label"`
	Mask     string   `json:"mask,omitempty"`
	Value    string   `json:"value"`
	Fields   []string `json:"fields,omitempty"`
	Complete bool     `json:"complete"`
}

// SpecsFromForm resolves the inputs of the saved form name.
func SpecsFromForm(reg *config.Registry, name string) (string, []InputSpec, error) {
	form := reg.GetForm(name)
	if form == nil {
		return "", nil, fmt.Errorf("unknown form %q", name)
	}

	specs := make([]InputSpec, 0, len(form.Inputs))
	for _, in := range form.Inputs {
		pattern, err := reg.ResolveMask(in)
		if err != nil {
			return "", nil, fmt.Errorf("form %q: %w", name, err)
		}
		specs = append(specs, InputSpec{Label: in.Label, Mask: pattern, Value: in.Value})
	}

	title := form.Title
	if title == "" {
		title = name
	}
	return title, specs, nil
}

// formKeyMap defines key bindings for the form screen
type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Paste  key.Binding
	Submit key.Binding
	Cancel key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Paste, k.Submit, k.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Paste},
		{k.Submit, k.Cancel},
	}
}

func newFormKeyMap(inputKeys maskinput.KeyMap) formKeyMap {
	return formKeyMap{
		Next:  inputKeys.NextField,
		Prev:  inputKeys.PrevField,
		Paste: inputKeys.Paste,
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// FormModel is a screen of labelled masked inputs. Tab walks the fields of
// the focused input and then moves on to the next input, wrapping around.
type FormModel struct {
	Title  string
	Labels []string
	Inputs []maskinput.Model
	Active int

	Submitted bool
	Cancelled bool
	Status    string

	// UI state
	Width    int
	Height   int
	Progress progress.Model
	Help     help.Model
	Keys     formKeyMap
}

// FormOptions configures the inputs of a FormModel.
type FormOptions struct {
	SelectOnFocus bool
	Clipboard     maskinput.Clipboard
}

// NewFormModel creates a form with the first input focused.
func NewFormModel(title string, specs []InputSpec, opts FormOptions) FormModel {
	keys := maskinput.DefaultKeyMap()

	m := FormModel{
		Title:    title,
		Labels:   make([]string, len(specs)),
		Inputs:   make([]maskinput.Model, len(specs)),
		Progress: progress.New(progress.WithDefaultGradient()),
		Help:     help.New(),
		Keys:     newFormKeyMap(keys),
	}
	m.Progress.Width = 40

	for i, spec := range specs {
		m.Labels[i] = spec.Label
		m.Inputs[i] = maskinput.New(maskinput.Config{
			Mask:          spec.Mask,
			Value:         spec.Value,
			SelectOnFocus: opts.SelectOnFocus,
			KeyMap:        keys,
			Clipboard:     opts.Clipboard,
		})
	}
	if len(m.Inputs) > 0 {
		m.Inputs[0], _ = m.Inputs[0].Focus()
	}
	return m
}

// Init initializes the form
func (m FormModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Progress.Width = min(40, max(10, msg.Width-30))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Submit):
			m.Submitted = true
			logging.Debug("Form submitted", zap.String("title", m.Title))
			return m, nil
		case key.Matches(msg, m.Keys.Cancel):
			m.Cancelled = true
			return m, nil
		}
		if len(m.Inputs) == 0 {
			return m, nil
		}

		var cmd tea.Cmd
		m.Inputs[m.Active], cmd = m.Inputs[m.Active].Update(msg)
		if m.Inputs[m.Active].Err() == nil {
			m.Status = ""
		}
		return m, cmd

	case maskinput.LeaveMsg:
		return m.moveFocus(msg)

	case maskinput.RejectMsg:
		m.Status = fmt.Sprintf("%s: %s", m.Labels[m.indexOf(msg.ID)], describeReject(msg.Err))
		return m, nil
	}

	// Flash timers and anything else go to every input; each ignores what
	// is not addressed to it.
	var cmds []tea.Cmd
	for i := range m.Inputs {
		var cmd tea.Cmd
		m.Inputs[i], cmd = m.Inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// moveFocus hands focus to the neighbouring input when the user tabs out of
// the masked region of the active one.
func (m FormModel) moveFocus(msg maskinput.LeaveMsg) (FormModel, tea.Cmd) {
	if len(m.Inputs) == 0 || msg.ID != m.Inputs[m.Active].ID() {
		return m, nil
	}

	next := m.Active + 1
	if msg.Direction == mask.Backward {
		next = m.Active - 1
	}
	next = (next + len(m.Inputs)) % len(m.Inputs)

	m.Inputs[m.Active] = m.Inputs[m.Active].Blur()
	m.Active = next

	var cmd tea.Cmd
	m.Inputs[next], cmd = m.Inputs[next].FocusFrom(msg.Direction)
	return m, cmd
}

func (m FormModel) indexOf(id int) int {
	for i, in := range m.Inputs {
		if in.ID() == id {
			return i
		}
	}
	return m.Active
}

func describeReject(err error) string {
	var merr *mask.Error
	if !mask.IsKeystrokeError(err) || !errors.As(err, &merr) {
		return err.Error()
	}
	return fmt.Sprintf("%q refused, %s", merr.Rune, merr.Message)
}

// Filled returns the number of fields holding content across all inputs and
// the total number of fields.
func (m FormModel) Filled() (filled, total int) {
	for _, in := range m.Inputs {
		f, t := in.Filled()
		filled += f
		total += t
	}
	return filled, total
}

// Results returns the content of every input, in order.
func (m FormModel) Results() []FormResult {
	results := make([]FormResult, len(m.Inputs))
	for i, in := range m.Inputs {
		fields, _ := in.Editor().Fields()
		results[i] = FormResult{
			Label:    m.Labels[i],
			Mask:     in.Editor().Mask(),
			Value:    in.Value(),
			Fields:   fields,
			Complete: in.Complete(),
		}
	}
	return results
}

// View renders the form screen
func (m FormModel) View() string {
	return RenderApplicationContainer(m.buildContent(), m.Help.View(m.Keys), m.Width, m.Height)
}

func (m FormModel) buildContent() string {
	var b strings.Builder

	b.WriteString(RenderTitle(m.Title))
	b.WriteString("\n")

	labelWidth := 0
	for _, l := range m.Labels {
		labelWidth = max(labelWidth, runewidth.StringWidth(l))
	}

	for i, in := range m.Inputs {
		label := runewidth.FillRight(m.Labels[i], labelWidth)
		if i == m.Active {
			b.WriteString(FocusedLabelStyle.Render("→ " + label))
		} else {
			b.WriteString(LabelStyle.Render("  " + label))
		}
		b.WriteString("  ")
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	filled, total := m.Filled()
	percent := 0.0
	if total > 0 {
		percent = float64(filled) / float64(total)
	}
	b.WriteString("\n")
	b.WriteString(m.Progress.ViewAs(percent))
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("  %d/%d fields", filled, total)))
	b.WriteString("\n")

	if m.Status != "" {
		b.WriteString("\n")
		b.WriteString(StatusErrorStyle.Render(m.Status))
		b.WriteString("\n")
	}
	return b.String()
}
