// Package tui is the terminal front end: a Bubble Tea chat over one session.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/portfolio"
	"portfolio-chat/internal/reveal"
	"portfolio-chat/internal/usecase/chat"
)

const (
	inputPlaceholder = "Ask me anything about the portfolio..."
	busyPlaceholder  = "Wait for response..."
)

// partialMsg carries the text revealed so far for the running turn.
type partialMsg struct {
	text string
}

// replyMsg ends a turn.
type replyMsg struct {
	msg domain.Message
	err error
}

type Model struct {
	ctx  context.Context
	svc  *chat.Service
	sess *domain.Session

	input    textinput.Model
	viewport viewport.Model
	events   chan tea.Msg

	renderer    *glamour.TermRenderer
	rendererKey string

	waiting bool
	pending string
	sent    int
	partial string
	status  string
	width   int
	height  int
	copy    func(string) error

	resumePath string
}

// New opens a fresh greeted session. resumePath is shown next to resume offers.
func New(ctx context.Context, svc *chat.Service, resumePath string) Model {
	ti := textinput.New()
	ti.Placeholder = inputPlaceholder
	ti.CharLimit = 2000
	ti.Prompt = "> "
	ti.Focus()

	m := Model{
		ctx:      ctx,
		svc:      svc,
		sess:     svc.NewSession(),
		input:    ti,
		viewport: viewport.New(80, 20),
		events:   make(chan tea.Msg, 64),
		width:    80,
		height:   24,
		copy:     clipboard.WriteAll,

		resumePath: resumePath,
	}
	m.resize()
	m.refresh()
	return m
}

// Run drives the terminal UI until the user quits or ctx is done.
func Run(ctx context.Context, svc *chat.Service, resumePath string) error {
	p := tea.NewProgram(New(ctx, svc, resumePath), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refresh()
		return m, nil

	case partialMsg:
		m.partial = msg.text
		m.refresh()
		return m, m.waitForEvent()

	case replyMsg:
		m.waiting = false
		m.pending = ""
		m.partial = ""
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		m.input.Placeholder = inputPlaceholder
		m.refresh()
		cmd := m.input.Focus()
		return m, cmd

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.sess.Snapshot().ModalOpen {
		switch key {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "ctrl+p", "enter":
			m.sess.SetModal(false)
		}
		return m, nil
	}

	switch key {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "ctrl+t":
		m.sess.ToggleTheme()
		m.refresh()
		return m, nil

	case "ctrl+p":
		m.sess.SetModal(true)
		return m, nil

	case "ctrl+y":
		m.status = m.copyLastAnswer()
		return m, nil

	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case "alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6":
		idx := int(key[len(key)-1] - '1')
		if idx < len(portfolio.QuickQuestions) {
			return m.submit(portfolio.QuickQuestions[idx])
		}
		return m, nil

	case "enter":
		return m.submit(m.input.Value())
	}

	if m.waiting {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit starts a turn in the background. Reveal steps and the final reply
// come back through m.events.
func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	if m.waiting || strings.TrimSpace(text) == "" {
		return m, nil
	}

	m.status = ""
	m.partial = ""
	m.pending = text
	m.sent = len(m.sess.Messages())
	m.waiting = true
	m.input.Reset()
	m.input.Blur()
	m.input.Placeholder = busyPlaceholder

	ctx, svc, sess, events := m.ctx, m.svc, m.sess, m.events
	go func() {
		reply, err := svc.HandleMessage(ctx, sess, text, func(step reveal.Step) {
			events <- partialMsg{text: step.Shown}
		})
		events <- replyMsg{msg: reply, err: err}
	}()

	m.refresh()
	return m, m.waitForEvent()
}

func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return <-events
	}
}

func (m Model) copyLastAnswer() string {
	msgs := m.sess.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role != domain.RoleAI {
			continue
		}
		if err := m.copy(msgs[i].Text); err != nil {
			return "copy failed: " + err.Error()
		}
		return "Copied last answer"
	}
	return "No answer to copy"
}

func (m *Model) resize() {
	m.input.Width = max(10, m.width-4)
	m.viewport.Width = m.width
	m.viewport.Height = max(3, m.height-5)
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (m *Model) refresh() {
	pal := paletteFor(m.sess.Theme())
	msgs := m.sess.Messages()
	var b strings.Builder
	for _, msg := range msgs {
		b.WriteString(m.renderMessage(pal, msg.Role, msg.Text))
		if msg.ResumeButton && m.resumePath != "" {
			b.WriteString(pal.dim.Render("  Resume: "+m.resumePath) + "\n")
		}
		b.WriteString("\n")
	}
	if m.waiting && len(msgs) == m.sent {
		// The turn has not been accepted by the session yet.
		b.WriteString(m.renderMessage(pal, domain.RoleUser, m.pending) + "\n")
	}
	if m.waiting && len(msgs) <= m.sent+1 {
		if m.partial == "" {
			b.WriteString(pal.dim.Render("Thinking...") + "\n")
		} else {
			b.WriteString(m.renderMessage(pal, domain.RoleAI, m.partial))
		}
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m *Model) renderMessage(pal palette, role, text string) string {
	if role == domain.RoleUser {
		return pal.user.Render("You") + "\n" + text + "\n"
	}
	return pal.ai.Render(portfolio.FirstName(m.svc.Portfolio())) + "\n" + m.markdown(pal, text)
}

func (m *Model) markdown(pal palette, text string) string {
	width := max(20, m.width-2)
	key := fmt.Sprintf("%s/%d", pal.glamourStyle, width)
	if m.renderer == nil || m.rendererKey != key {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(pal.glamourStyle),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return text + "\n"
		}
		m.renderer, m.rendererKey = r, key
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text + "\n"
	}
	return out
}

func (m Model) View() string {
	pal := paletteFor(m.sess.Theme())
	if m.sess.Snapshot().ModalOpen {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.profileCard(pal))
	}

	p := m.svc.Portfolio().Profile
	header := pal.title.Render(p.Name) + pal.dim.Render(p.Role)

	var b strings.Builder
	b.WriteString(header + "\n")
	b.WriteString(m.viewport.View() + "\n")
	b.WriteString(m.input.View() + "\n")
	if m.status != "" {
		b.WriteString(pal.status.Render(m.status) + "\n")
	}
	b.WriteString(pal.help.Render("  enter: send  alt+1..6: quick questions  ctrl+t: theme  ctrl+p: profile  ctrl+y: copy  esc: quit"))
	return b.String()
}

func (m Model) profileCard(pal palette) string {
	rec := m.svc.Portfolio()
	lines := []string{
		pal.title.Render(rec.Profile.Name),
		rec.Profile.Role,
		pal.dim.Render(rec.Profile.Location),
		"",
		pal.label.Render("Email    ") + rec.Contact.Email,
		pal.label.Render("Phone    ") + rec.Contact.Phone,
		pal.label.Render("LinkedIn ") + rec.Contact.LinkedIn,
		pal.label.Render("GitHub   ") + rec.Contact.GitHub,
		"",
		pal.help.Render("esc: close"),
	}
	return pal.modal.Render(strings.Join(lines, "\n"))
}
