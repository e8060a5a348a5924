package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/maskentry/internal/config"
	"github.com/muurk/maskentry/internal/mask"
	"github.com/muurk/maskentry/internal/ui"
)

// pickerKeyMap defines key bindings for the preset list
type pickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Custom key.Binding
	Scan   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k pickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Custom, k.Scan, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k pickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter},
		{k.Custom, k.Scan, k.Quit},
	}
}

// customKeyMap defines key bindings while typing a custom mask
type customKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k customKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (k customKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Confirm, k.Cancel}}
}

// presetItem wraps a preset for use with bubbles/list
type presetItem struct {
	name    string
	preset  *config.Preset
	builtin bool
}

// FilterValue implements list.Item
func (p presetItem) FilterValue() string {
	return p.name + " " + p.preset.Description
}

// presetDelegate renders presets as cards
type presetDelegate struct {
	width int
}

func (d presetDelegate) Height() int { return 5 }

func (d presetDelegate) Spacing() int { return 1 }

func (d presetDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d presetDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	p, ok := item.(presetItem)
	if !ok {
		return
	}
	selected := index == m.Index()

	var content strings.Builder
	name := p.name
	if !p.builtin {
		name += " (user)"
	}
	if selected {
		content.WriteString(SelectedMenuItemStyle.Render("→ " + name))
	} else {
		content.WriteString("  " + name)
	}
	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("  Mask:    %s\n", p.preset.Mask))

	example := p.preset.Example
	if pattern, err := mask.Compile(p.preset.Mask); err == nil {
		if example == "" || !pattern.Conforms(example) {
			example = ui.RenderMasked(pattern, pattern.Blank())
		}
	}
	content.WriteString(fmt.Sprintf("  Example: %s", example))
	if p.preset.Description != "" {
		content.WriteString("  " + SubtitleStyle.Render(p.preset.Description))
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1).
		MarginLeft(2).
		Width(CalculateCardWidth(d.width))
	if selected {
		cardStyle = cardStyle.BorderForeground(HighlightColor)
	}

	fmt.Fprint(w, cardStyle.Render(content.String()))
}

// PickerModel lets the user choose a preset or type a mask pattern.
type PickerModel struct {
	PresetList list.Model

	// Custom mask entry state
	CustomMode bool
	MaskInput  textinput.Model
	Err        error

	// Outcome
	Chosen     bool
	ChosenName string
	ChosenMask string
	Scan       bool
	Quit       bool

	// UI state
	Width      int
	Height     int
	Help       help.Model
	Keys       pickerKeyMap
	CustomKeys customKeyMap
}

// NewPickerModel lists the presets of reg, selecting the default preset.
func NewPickerModel(reg *config.Registry) PickerModel {
	var items []list.Item
	selected := 0
	for _, name := range reg.PresetNames() {
		p, _ := reg.GetPreset(name)
		if name == reg.Preferences.DefaultPreset {
			selected = len(items)
		}
		items = append(items, presetItem{name: name, preset: p, builtin: reg.IsBuiltin(name)})
	}

	presetList := list.New(items, presetDelegate{width: DefaultFormWidth}, DefaultFormWidth-4, DefaultFormHeight-8)
	presetList.Title = "Choose a mask"
	presetList.SetShowStatusBar(false)
	presetList.SetShowHelp(false)
	presetList.SetFilteringEnabled(true)
	presetList.Styles.Title = TitleStyle
	presetList.Select(selected)

	maskInput := textinput.New()
	maskInput.Placeholder = "0000-00-00"
	maskInput.CharLimit = 64
	maskInput.Width = 40

	return PickerModel{
		PresetList: presetList,
		MaskInput:  maskInput,
		Help:       help.New(),
		Keys: pickerKeyMap{
			Up: key.NewBinding(
				key.WithKeys("up", "k"),
				key.WithHelp("↑/k", "move up"),
			),
			Down: key.NewBinding(
				key.WithKeys("down", "j"),
				key.WithHelp("↓/j", "move down"),
			),
			Enter: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "edit"),
			),
			Custom: key.NewBinding(
				key.WithKeys("m"),
				key.WithHelp("m", "custom mask"),
			),
			Scan: key.NewBinding(
				key.WithKeys("s"),
				key.WithHelp("s", "find servers"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q", "esc"),
				key.WithHelp("q", "quit"),
			),
		},
		CustomKeys: customKeyMap{
			Confirm: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "use mask"),
			),
			Cancel: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", "cancel"),
			),
		},
	}
}

// Init initializes the picker
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m PickerModel) Update(msg tea.Msg) (PickerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.PresetList.SetDelegate(presetDelegate{width: msg.Width})
		m.PresetList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		if m.CustomMode {
			return m.updateCustomMode(msg)
		}
		// Keys belong to the filter while the user is typing one.
		if m.PresetList.FilterState() != list.Filtering {
			switch {
			case key.Matches(msg, m.Keys.Enter):
				if item, ok := m.PresetList.SelectedItem().(presetItem); ok {
					m.Chosen = true
					m.ChosenName = item.name
					m.ChosenMask = item.preset.Mask
				}
				return m, nil
			case key.Matches(msg, m.Keys.Custom):
				m.CustomMode = true
				m.Err = nil
				m.MaskInput.SetValue("")
				cmd := m.MaskInput.Focus()
				return m, cmd
			case key.Matches(msg, m.Keys.Scan):
				m.Scan = true
				return m, nil
			case key.Matches(msg, m.Keys.Quit):
				m.Quit = true
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.PresetList, cmd = m.PresetList.Update(msg)
	return m, cmd
}

// updateCustomMode handles keyboard input while a mask pattern is typed
func (m PickerModel) updateCustomMode(msg tea.KeyMsg) (PickerModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.CustomKeys.Cancel):
		m.CustomMode = false
		m.Err = nil
		m.MaskInput.Blur()
		return m, nil

	case key.Matches(msg, m.CustomKeys.Confirm):
		pattern := m.MaskInput.Value()
		if _, err := mask.Compile(pattern); err != nil {
			m.Err = err
			return m, nil
		}
		m.Chosen = true
		m.ChosenName = "custom"
		m.ChosenMask = pattern
		m.CustomMode = false
		m.MaskInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.MaskInput, cmd = m.MaskInput.Update(msg)
	return m, cmd
}

// View renders the picker screen
func (m PickerModel) View() string {
	if m.CustomMode {
		return RenderApplicationContainer(m.renderCustomEntry(), m.Help.View(m.CustomKeys), m.Width, m.Height)
	}
	return RenderApplicationContainer(m.PresetList.View(), m.Help.View(m.Keys), m.Width, m.Height)
}

// renderCustomEntry renders the mask pattern entry dialog
func (m PickerModel) renderCustomEntry() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Custom mask"))
	b.WriteString("\n")
	b.WriteString(RenderSubtitle("0 digit   L ASCII letter   & any letter   a/A letter or digit   anything else is literal"))
	b.WriteString("\n\n")
	b.WriteString("  Pattern: ")
	b.WriteString(m.MaskInput.View())
	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString("\n")
		b.WriteString(RenderError(m.Err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}
