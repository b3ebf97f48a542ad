// Package tui provides the interactive chat interface for asking questions
// about an ingested transcript.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidchat-dev/vidchat-cli/internal/core/ports/driving"
)

// SessionReplacedMsg swaps the active session, e.g. after a watched
// transcript file was re-ingested. Send it via Program.Send.
type SessionReplacedMsg struct {
	Session driving.Session
}

// ReingestFailedMsg reports a failed background re-ingest. The current
// session stays active.
type ReingestFailedMsg struct {
	Err error
}

// answerMsg carries a completed answer back into the update loop.
type answerMsg struct {
	question string
	answer   string
	context  string
	err      error
}

// exchange is one question/answer pair in the visible history.
type exchange struct {
	question string
	answer   string
	context  string
	failed   bool
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	contextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	historyStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Model is the Bubble Tea model for the chat view.
type Model struct {
	ctx     context.Context
	session driving.Session

	input    textinput.Model
	viewport viewport.Model

	history     []exchange
	status      string
	showContext bool
	thinking    bool
	ready       bool
}

// New creates a chat model over a ready session.
func New(ctx context.Context, session driving.Session) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the video and press Enter"
	ti.Focus()
	ti.CharLimit = 0

	return Model{
		ctx:      ctx,
		session:  session,
		input:    ti,
		viewport: viewport.New(0, 0),
		status:   fmt.Sprintf("Ready. %d chunks indexed.", session.ChunkCount()),
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, hh := historyStyle.GetFrameSize()
		_, ih := inputStyle.GetFrameSize()
		reserved := 2 + 1 + ih + 1 // title + summary, spacer, input frame, status
		vh := msg.Height - reserved - hh
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width-historyStyle.GetHorizontalFrameSize())
		m.viewport.Height = vh
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			question := strings.TrimSpace(m.input.Value())
			if question == "" || m.thinking {
				return m, nil
			}
			m.input.Reset()
			m.thinking = true
			m.status = "Thinking..."
			return m, askCmd(m.ctx, m.session, question)
		case "ctrl+t":
			m.showContext = !m.showContext
			m.refresh()
			return m, nil
		case "up":
			m.viewport.ScrollUp(1)
			return m, nil
		case "down":
			m.viewport.ScrollDown(1)
			return m, nil
		}

	case answerMsg:
		m.thinking = false
		entry := exchange{question: msg.question, context: msg.context}
		if msg.err != nil {
			entry.answer = msg.err.Error()
			entry.failed = true
			m.status = "Answer failed. Ask again or press Ctrl+C to quit."
		} else {
			entry.answer = msg.answer
			m.status = "Ready."
		}
		m.history = append(m.history, entry)
		m.refresh()
		m.viewport.GotoBottom()
		return m, nil

	case SessionReplacedMsg:
		m.session = msg.Session
		m.status = fmt.Sprintf("Transcript re-ingested. %d chunks indexed.", msg.Session.ChunkCount())
		return m, nil

	case ReingestFailedMsg:
		m.status = "Re-ingest failed: " + msg.Err.Error()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := titleStyle.Render("vidchat")
	summary := infoStyle.Render(fmt.Sprintf("model %s | %d chunks | Ctrl+T context | Ctrl+C quit",
		m.session.ModelID(), m.session.ChunkCount()))
	history := historyStyle.Render(m.viewport.View())
	input := inputStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return title + "\n" + summary + "\n" + history + "\n" + input + "\n" + status
}

// askCmd answers the question off the update loop so the UI stays
// responsive during retrieval and generation.
func askCmd(ctx context.Context, session driving.Session, question string) tea.Cmd {
	return func() tea.Msg {
		contextBlock, err := session.DebugContext(ctx, question)
		if err != nil {
			return answerMsg{question: question, err: err}
		}
		answer, err := session.Answer(ctx, question)
		return answerMsg{question: question, answer: answer, context: contextBlock, err: err}
	}
}

// refresh re-renders the history into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderHistory())
}

func (m Model) renderHistory() string {
	if len(m.history) == 0 {
		return "No questions yet."
	}
	var b strings.Builder
	for i, entry := range m.history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(questionStyle.Render("You: "+entry.question) + "\n")
		if entry.failed {
			b.WriteString(errorStyle.Render(entry.answer))
		} else {
			b.WriteString(entry.answer)
		}
		if m.showContext && entry.context != "" {
			b.WriteString("\n" + contextStyle.Render("--- context ---\n"+entry.context))
		}
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
