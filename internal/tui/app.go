package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/maskentry/internal/config"
	"github.com/muurk/maskentry/internal/discovery"
	"github.com/muurk/maskentry/internal/logging"
	"github.com/muurk/maskentry/internal/maskinput"
	"github.com/muurk/maskentry/internal/ui"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenPicker Screen = "picker"
	ScreenForm   Screen = "form"
	ScreenScan   Screen = "scan"
	ScreenDone   Screen = "done"
)

// doneKeyMap defines key bindings for the result screen
type doneKeyMap struct {
	Edit key.Binding
	New  key.Binding
	Quit key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k doneKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.New, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k doneKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Edit, k.New, k.Quit}}
}

// Options selects the first screen and supplies what the screens need.
type Options struct {
	Registry *config.Registry

	// Title and Inputs open the form screen directly. Without inputs the
	// application starts on the preset picker.
	Title  string
	Inputs []InputSpec

	// Start overrides the first screen; only ScreenScan is meaningful.
	Start Screen

	Scan      ScanFunc
	Clipboard maskinput.Clipboard
}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	CurrentScreen Screen
	// Origin is the screen the form or scan was opened from; "" when the
	// application started on it.
	Origin Screen

	Picker PickerModel
	Form   FormModel
	Scan   ScanModel

	Results   []FormResult
	Cancelled bool

	// UI state
	Width    int
	Height   int
	Help     help.Model
	DoneKeys doneKeyMap

	opts Options
}

// NewAppModel creates the application model for opts.
func NewAppModel(opts Options) AppModel {
	if opts.Registry == nil {
		opts.Registry = config.NewRegistry()
	}
	if opts.Scan == nil {
		scanner := discovery.NewScanner()
		opts.Scan = scanner.Scan
	}

	m := AppModel{
		Help: help.New(),
		DoneKeys: doneKeyMap{
			Edit: key.NewBinding(
				key.WithKeys("e"),
				key.WithHelp("e", "edit again"),
			),
			New: key.NewBinding(
				key.WithKeys("n"),
				key.WithHelp("n", "choose mask"),
			),
			Quit: key.NewBinding(
				key.WithKeys("enter", "q"),
				key.WithHelp("enter/q", "quit"),
			),
		},
		opts: opts,
	}

	switch {
	case opts.Start == ScreenScan:
		m.CurrentScreen = ScreenScan
		m.Scan = NewScanModelWith(opts.Scan)
	case len(opts.Inputs) > 0:
		m.CurrentScreen = ScreenForm
		m.Form = m.newForm(opts.Title, opts.Inputs)
	default:
		m.CurrentScreen = ScreenPicker
		m.Picker = NewPickerModel(opts.Registry)
	}
	return m
}

func (m AppModel) newForm(title string, inputs []InputSpec) FormModel {
	return NewFormModel(title, inputs, FormOptions{
		SelectOnFocus: m.opts.Registry.Preferences.SelectOnFocus,
		Clipboard:     m.opts.Clipboard,
	})
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	switch m.CurrentScreen {
	case ScreenScan:
		return m.Scan.Init()
	case ScreenForm:
		return m.Form.Init()
	default:
		return m.Picker.Init()
	}
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		// Screens opened later get the size in transitionTo
		switch m.CurrentScreen {
		case ScreenPicker:
			m.Picker, _ = m.Picker.Update(msg)
		case ScreenForm, ScreenDone:
			m.Form, _ = m.Form.Update(msg)
		case ScreenScan:
			m.Scan, _ = m.Scan.Update(msg)
		}
		return m, nil

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			m.Cancelled = true
			return m, tea.Quit
		}
	}

	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.CurrentScreen {
	case ScreenPicker:
		m.Picker, cmd = m.Picker.Update(msg)
		switch {
		case m.Picker.Chosen:
			m.Picker.Chosen = false
			title := fmt.Sprintf("Edit %s", m.Picker.ChosenName)
			inputs := []InputSpec{{Label: m.Picker.ChosenName, Mask: m.Picker.ChosenMask}}
			m.Form = m.newForm(title, inputs)
			return m.transitionTo(ScreenForm)
		case m.Picker.Scan:
			m.Picker.Scan = false
			m.Scan = NewScanModelWith(m.opts.Scan)
			return m.transitionTo(ScreenScan)
		case m.Picker.Quit:
			m.Cancelled = true
			return m, tea.Quit
		}

	case ScreenForm:
		m.Form, cmd = m.Form.Update(msg)
		switch {
		case m.Form.Submitted:
			m.Form.Submitted = false
			m.Results = m.Form.Results()
			return m.transitionTo(ScreenDone)
		case m.Form.Cancelled:
			m.Form.Cancelled = false
			return m.goBack()
		}

	case ScreenScan:
		m.Scan, cmd = m.Scan.Update(msg)
		if m.Scan.Done {
			return m.goBack()
		}

	case ScreenDone:
		return m.handleDoneScreen(msg)
	}

	return m, cmd
}

// handleDoneScreen handles user input on the result screen
func (m AppModel) handleDoneScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.DoneKeys.Edit):
		m.Results = nil
		return m.transitionTo(ScreenForm)
	case key.Matches(keyMsg, m.DoneKeys.New):
		m.Results = nil
		m.Origin = ""
		m.Picker = NewPickerModel(m.opts.Registry)
		return m.transitionTo(ScreenPicker)
	case key.Matches(keyMsg, m.DoneKeys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

// transitionTo transitions to a new screen
func (m AppModel) transitionTo(screen Screen) (tea.Model, tea.Cmd) {
	logging.Debug("Screen transition",
		zap.String("from", string(m.CurrentScreen)),
		zap.String("to", string(screen)),
	)

	if screen == ScreenForm || screen == ScreenScan {
		if m.CurrentScreen == ScreenPicker {
			m.Origin = ScreenPicker
		}
	}
	m.CurrentScreen = screen

	var cmd tea.Cmd
	size := tea.WindowSizeMsg{Width: m.Width, Height: m.Height}
	switch screen {
	case ScreenPicker:
		if m.Width > 0 {
			m.Picker, _ = m.Picker.Update(size)
		}
	case ScreenForm:
		if m.Width > 0 {
			m.Form, _ = m.Form.Update(size)
		}
		cmd = m.Form.Init()
	case ScreenScan:
		if m.Width > 0 {
			m.Scan, _ = m.Scan.Update(size)
		}
		cmd = m.Scan.Init()
	}
	return m, cmd
}

// goBack returns to the screen the form or scan was opened from, or quits
// when there is none.
func (m AppModel) goBack() (tea.Model, tea.Cmd) {
	if m.Origin == ScreenPicker {
		m.Origin = ""
		m.Picker = NewPickerModel(m.opts.Registry)
		return m.transitionTo(ScreenPicker)
	}
	m.Cancelled = true
	return m, tea.Quit
}

// View renders the current screen
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenPicker:
		return m.Picker.View()
	case ScreenForm:
		return m.Form.View()
	case ScreenScan:
		return m.Scan.View()
	case ScreenDone:
		return RenderApplicationContainer(m.buildDoneContent(), m.Help.View(m.DoneKeys), m.Width, m.Height)
	default:
		return "Unknown screen"
	}
}

// buildDoneContent lists the submitted values
func (m AppModel) buildDoneContent() string {
	var b strings.Builder

	b.WriteString(RenderTitle(ui.SuccessMarker + " " + m.Form.Title))
	b.WriteString("\n")

	details := make([]ui.Detail, 0, len(m.Results))
	for _, r := range m.Results {
		value := r.Value
		if !r.Complete {
			value += "  " + WarningStyle.Render("(incomplete)")
		}
		details = append(details, ui.Detail{Key: r.Label, Value: value})
	}
	b.WriteString(ui.NewSuccessResult("Submitted", details...).SetWidth(max(m.Width-8, 40)).Render())
	return b.String()
}
