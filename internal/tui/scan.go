package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/muurk/maskentry/internal/discovery"
)

// ScanFunc browses the network for editing servers.
type ScanFunc func(ctx context.Context) ([]*discovery.Server, error)

// Messages for async operations
type scanStartMsg struct{}
type scanCompleteMsg struct {
	servers []*discovery.Server
	err     error
}

// scanKeyMap defines key bindings for the scan screen
type scanKeyMap struct {
	Rescan key.Binding
	Back   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k scanKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Rescan, k.Back}
}

// FullHelp returns keybindings for the expanded help view
func (k scanKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Rescan, k.Back}}
}

// ScanModel represents the server discovery screen state
type ScanModel struct {
	Scanning      bool
	Servers       []*discovery.Server
	Err           error
	Done          bool
	ScanStartTime time.Time

	scan ScanFunc

	// UI state
	Width   int
	Height  int
	Spinner spinner.Model
	Help    help.Model
	Keys    scanKeyMap
}

// NewScanModel creates a scan screen using scanner.
func NewScanModel(scanner *discovery.Scanner) ScanModel {
	return NewScanModelWith(scanner.Scan)
}

// NewScanModelWith creates a scan screen that calls scan.
func NewScanModelWith(scan ScanFunc) ScanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return ScanModel{
		scan:    scan,
		Spinner: s,
		Help:    help.New(),
		Keys: scanKeyMap{
			Rescan: key.NewBinding(
				key.WithKeys("r"),
				key.WithHelp("r", "rescan"),
			),
			Back: key.NewBinding(
				key.WithKeys("q", "esc"),
				key.WithHelp("q", "back"),
			),
		},
	}
}

// Init starts scanning immediately
func (m ScanModel) Init() tea.Cmd {
	return m.startScan()
}

func (m ScanModel) startScan() tea.Cmd {
	scan := m.scan
	return tea.Batch(
		func() tea.Msg { return scanStartMsg{} },
		func() tea.Msg {
			servers, err := scan(context.Background())
			return scanCompleteMsg{servers: servers, err: err}
		},
		m.Spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m ScanModel) Update(msg tea.Msg) (ScanModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case scanStartMsg:
		m.Scanning = true
		m.ScanStartTime = time.Now()

	case scanCompleteMsg:
		m.Scanning = false
		m.Servers = msg.servers
		m.Err = msg.err

	case spinner.TickMsg:
		if !m.Scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Back):
			m.Done = true
		case key.Matches(msg, m.Keys.Rescan):
			if !m.Scanning {
				m.Servers = nil
				m.Err = nil
				return m, m.startScan()
			}
		}
	}
	return m, nil
}

// View renders the scan screen
func (m ScanModel) View() string {
	var content string
	if m.Scanning {
		elapsed := time.Since(m.ScanStartTime).Round(time.Second)
		content = lipgloss.JoinVertical(lipgloss.Left,
			TitleStyle.Render(fmt.Sprintf("%s SEARCHING FOR SERVERS", m.Spinner.View())),
			SubtitleStyle.Render(fmt.Sprintf("Browsing %s (%s)", discovery.ServiceType, elapsed)),
		)
	} else {
		content = m.renderResults()
	}
	return RenderApplicationContainer(content, m.Help.View(m.Keys), m.Width, m.Height)
}

// renderResults renders the server table or a "none found" message
func (m ScanModel) renderResults() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Editing servers"))
	b.WriteString("\n")

	switch {
	case m.Err != nil:
		b.WriteString(RenderError(fmt.Sprintf("Scan failed: %v", m.Err)))
		b.WriteString("\n")
	case len(m.Servers) == 0:
		b.WriteString(WarningStyle.Render("No servers found on your network"))
		b.WriteString("\n\n")
		b.WriteString("  Start one with: maskentry serve --advertise\n")
	default:
		nameWidth := runewidth.StringWidth("INSTANCE")
		for _, s := range m.Servers {
			nameWidth = max(nameWidth, runewidth.StringWidth(s.Instance))
		}
		b.WriteString(SubtitleStyle.Render(runewidth.FillRight("INSTANCE", nameWidth) + "  URL"))
		b.WriteString("\n")
		for _, s := range m.Servers {
			b.WriteString(runewidth.FillRight(s.Instance, nameWidth))
			b.WriteString("  ")
			b.WriteString(s.WebSocketURL())
			if v := s.Version(); v != "" {
				b.WriteString(SubtitleStyle.Render("  " + v))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
