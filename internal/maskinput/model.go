package maskinput

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/muurk/maskentry/internal/mask"
	"github.com/muurk/maskentry/internal/ui"
)

// FlashDuration is how long the value stays highlighted after a refused
// keystroke.
const FlashDuration = 150 * time.Millisecond

// RejectMsg reports a refused keystroke to the parent model.
type RejectMsg struct {
	ID  int
	Err error
}

// LeaveMsg asks the parent to move focus to the neighbouring input: the
// user tabbed past the last field (Forward) or before the first (Backward).
type LeaveMsg struct {
	ID        int
	Direction mask.FocusDirection
}

type flashEndMsg struct {
	id  int
	seq int
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Config configures a Model.
type Config struct {
	// Mask is the pattern to enforce. Empty means free text.
	Mask string
	// Value is typed through the mask when the model is created.
	Value string
	// Prompt is drawn before the value.
	Prompt string
	// SelectOnFocus selects the content of a field when tabbing into it.
	SelectOnFocus bool

	KeyMap    KeyMap
	Styles    ui.MaskStyles
	Clipboard Clipboard
	Logger    *zap.Logger
}

// Model is a Bubble Tea single-line input that enforces a mask while the
// user types. The zero value is not usable; call New.
type Model struct {
	cfg Config
	id  int

	buf *buffer
	ed  *mask.Editor

	focused  bool
	flashing bool
	flashSeq int
	lastErr  error
}

// New creates a blurred input. An invalid mask falls back to free text.
func New(cfg Config) Model {
	if len(cfg.KeyMap.NextField.Keys()) == 0 {
		cfg.KeyMap = DefaultKeyMap()
	}
	if cfg.Styles.PlaceholderRune == 0 {
		cfg.Styles = ui.DefaultMaskStyles()
	}

	buf := &buffer{}
	opts := []mask.Option{mask.WithMask(cfg.Mask)}
	if cfg.Logger != nil {
		opts = append(opts, mask.WithLogger(cfg.Logger))
	}
	ed := mask.New(buf, opts...)
	if cfg.Value != "" {
		ed.SetText(norm.NFC.String(cfg.Value))
	}
	buf.drainRejects()

	return Model{
		cfg: cfg,
		id:  nextID(),
		buf: buf,
		ed:  ed,
	}
}

// ID identifies the input in RejectMsg and LeaveMsg.
func (m Model) ID() int { return m.id }

// Editor returns the mask editor bound to the input.
func (m Model) Editor() *mask.Editor { return m.ed }

// Value returns the buffer content, blank slots included.
func (m Model) Value() string { return m.buf.Text() }

// Cursor returns the cursor offset in runes.
func (m Model) Cursor() int { return m.buf.Cursor() }

// Err returns the last refused keystroke, cleared by the next accepted key.
func (m Model) Err() error { return m.lastErr }

// Focused reports whether the input receives keys.
func (m Model) Focused() bool { return m.focused }

// Filled returns how many fields hold content and how many there are. A free
// text input counts as one field.
func (m Model) Filled() (filled, total int) {
	fields, err := m.ed.Fields()
	if err != nil {
		if m.buf.Text() != "" {
			return 1, 1
		}
		return 0, 1
	}
	for _, f := range fields {
		if f != "" {
			filled++
		}
	}
	return filled, len(fields)
}

// Complete reports whether every field is full.
func (m Model) Complete() bool {
	p := m.ed.Pattern()
	if p == nil {
		return m.buf.Text() != ""
	}
	return p.Complete(m.buf.Text())
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Focus gives the input keyboard focus, placing the cursor at the start of
// the first field when the value is untouched.
func (m Model) Focus() (Model, tea.Cmd) {
	m.focused = true
	m.ed.GrabFocus()
	return m, nil
}

// FocusFrom gives the input focus as the user tabs into it: moving forward
// activates the first field, moving backward the last.
func (m Model) FocusFrom(dir mask.FocusDirection) (Model, tea.Cmd) {
	m.focused = true
	if m.ed.Pattern() == nil {
		m.buf.SetCursor(len(m.buf.text))
		return m, nil
	}
	m.ed.Focus(dir)
	if !m.cfg.SelectOnFocus {
		m.buf.SetCursor(m.buf.Cursor())
	}
	return m, nil
}

// Blur removes keyboard focus.
func (m Model) Blur() Model {
	m.focused = false
	m.flashing = false
	m.ed.FocusOut()
	m.buf.SetCursor(m.buf.Cursor())
	return m
}

// SetValue replaces the value as if it had been typed into a blank input.
func (m Model) SetValue(s string) Model {
	m.ed.SetText(norm.NFC.String(s))
	m.buf.drainRejects()
	return m
}

// Update handles key and paste messages while focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case flashEndMsg:
		if msg.id == m.id && msg.seq == m.flashSeq {
			m.flashing = false
		}
		return m, nil
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	km := m.cfg.KeyMap

	// Pasted text is inserted literally and never triggers bindings.
	if msg.Type == tea.KeyRunes && msg.Paste {
		m.insert(string(msg.Runes))
		return m.afterEdit(nil)
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, km.Left):
		m.move(m.buf.Cursor() - 1)
	case key.Matches(msg, km.Right):
		m.move(m.buf.Cursor() + 1)
	case key.Matches(msg, km.Home):
		m.move(0)
	case key.Matches(msg, km.End):
		m.move(len(m.buf.text))

	case key.Matches(msg, km.ShiftLeft):
		m.extend(-1)
	case key.Matches(msg, km.ShiftRight):
		m.extend(1)
	case key.Matches(msg, km.ShiftHome):
		m.extend(-m.buf.Cursor())
	case key.Matches(msg, km.ShiftEnd):
		m.extend(len(m.buf.text) - m.buf.Cursor())

	case key.Matches(msg, km.Backspace):
		if start, end, ok := m.buf.selection(); ok {
			m.delete(start, end)
		} else if c := m.buf.Cursor(); c > 0 {
			m.delete(c-1, c)
		}
	case key.Matches(msg, km.Delete):
		if start, end, ok := m.buf.selection(); ok {
			m.delete(start, end)
		} else if c := m.buf.Cursor(); c < len(m.buf.text) {
			m.delete(c, c+1)
		}
	case key.Matches(msg, km.Paste):
		if m.cfg.Clipboard != nil {
			if s, err := m.cfg.Clipboard.ReadText(); err == nil && s != "" {
				m.insert(s)
			}
		}

	case key.Matches(msg, km.NextField):
		cmd = m.focusField(mask.Forward)
	case key.Matches(msg, km.PrevField):
		cmd = m.focusField(mask.Backward)

	default:
		if (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) && !msg.Alt && len(msg.Runes) > 0 {
			m.insert(string(msg.Runes))
		}
	}

	return m.afterEdit(cmd)
}

// insert types s at the cursor, replacing the selection.
func (m *Model) insert(s string) {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return -1
		}
		return r
	}, norm.NFC.String(s))
	if s == "" {
		return
	}

	if m.ed.Pattern() == nil {
		m.buf.insert(s)
		return
	}
	if start, end, ok := m.buf.selection(); ok {
		m.ed.HandleDelete(start, end)
	}
	m.ed.HandleInsert(m.buf.Cursor(), s)
}

func (m *Model) delete(start, end int) {
	if !m.ed.HandleDelete(start, end) {
		m.buf.remove(start, end)
	}
}

func (m *Model) move(pos int) {
	m.ed.MoveCursor(false)
	m.buf.SetCursor(pos)
	m.ed.CursorMoved()
}

func (m *Model) extend(delta int) {
	m.ed.MoveCursor(true)
	m.buf.extend(delta)
}

func (m *Model) focusField(dir mask.FocusDirection) tea.Cmd {
	if m.ed.Pattern() != nil && m.ed.Focus(dir) {
		if !m.cfg.SelectOnFocus {
			m.buf.SetCursor(m.buf.Cursor())
		}
		return nil
	}

	id := m.id
	return func() tea.Msg {
		return LeaveMsg{ID: id, Direction: dir}
	}
}

// afterEdit turns keystrokes the editor refused into a RejectMsg and a short
// flash of the value.
func (m Model) afterEdit(cmd tea.Cmd) (Model, tea.Cmd) {
	errs := m.buf.drainRejects()
	if len(errs) == 0 {
		m.lastErr = nil
		return m, cmd
	}

	m.lastErr = errs[len(errs)-1]
	m.flashing = true
	m.flashSeq++

	id, seq, err := m.id, m.flashSeq, m.lastErr
	return m, tea.Batch(
		cmd,
		func() tea.Msg { return RejectMsg{ID: id, Err: err} },
		tea.Tick(FlashDuration, func(time.Time) tea.Msg { return flashEndMsg{id: id, seq: seq} }),
	)
}

// View renders the prompt and the value. The cursor is only drawn while
// focused.
func (m Model) View() string {
	view := ui.MaskView{
		Pattern:  m.ed.Pattern(),
		Text:     m.buf.Text(),
		Cursor:   -1,
		Rejected: m.flashing,
	}
	if m.focused {
		view.Cursor = m.buf.Cursor()
		view.SelStart, view.SelEnd, _ = m.buf.selection()
	}

	prompt := m.cfg.Prompt
	if prompt != "" {
		prompt = lipgloss.NewStyle().Foreground(ui.MutedColor).Render(prompt)
	}
	return prompt + view.Render(m.cfg.Styles)
}
