package embedded

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bmoreira/frasecli/internal/tasks"
	"github.com/bmoreira/frasecli/internal/ui"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Model displays the backend's frame stream and forwards key input.
type Model struct {
	runtime *Runtime

	title   string
	display viewport.Model

	width  int
	height int

	statusMsg string
	errorMsg  string

	outcome ui.Outcome
}

func newModel(runtime *Runtime) *Model {
	return &Model{
		runtime: runtime,
		title:   "frasecli — embedded view",
		display: viewport.New(0, 0),
		outcome: ui.Outcome{Kind: ui.OutcomeQuit},
	}
}

// Init starts waiting on the frame stream.
func (m *Model) Init() tea.Cmd {
	return m.waitForFrame()
}

// waitForFrame blocks on the runtime until a frame or a fatal error arrives.
func (m *Model) waitForFrame() tea.Cmd {
	runtime := m.runtime
	return func() tea.Msg {
		select {
		case frame, ok := <-runtime.Frames():
			if !ok {
				return streamClosedMsg{}
			}
			return frameMsg{frame: frame}
		case err := <-runtime.Errors():
			return streamErrorMsg{err: err}
		}
	}
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+q":
			m.outcome = ui.Outcome{Kind: ui.OutcomeQuit}
			return m, tea.Quit
		default:
			// Everything else belongs to the remote surface.
			m.runtime.SendKey(msg.String())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.display.Width = msg.Width - 2
		m.display.Height = msg.Height - 4

	case frameMsg:
		if msg.frame.Title != "" {
			m.title = msg.frame.Title
		}
		switch msg.frame.Kind {
		case "status":
			m.statusMsg = msg.frame.Body
		default:
			m.display.SetContent(msg.frame.Body)
		}
		return m, m.waitForFrame()

	case streamClosedMsg:
		// Server ended the session cleanly; treat it like a quit.
		m.outcome = ui.Outcome{Kind: ui.OutcomeQuit}
		return m, tea.Quit

	case streamErrorMsg:
		m.outcome = ui.Outcome{Kind: ui.OutcomeEmbedFailed, Err: msg.err}
		return m, tea.Quit

	case tasks.Completion:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
		} else {
			m.statusMsg = msg.Detail
			m.errorMsg = ""
		}
	}

	return m, nil
}

// View renders the remote frame plus a local status line.
func (m *Model) View() string {
	if m.width == 0 {
		return "Connecting..."
	}

	footer := helpStyle.Render("ctrl+q: quit")
	if m.errorMsg != "" {
		footer = errorStyle.Render("✗ "+m.errorMsg) + "  " + footer
	} else if m.statusMsg != "" {
		footer = statusStyle.Render(m.statusMsg) + "  " + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.title),
		m.display.View(),
		footer,
	)
}

// Outcome reports why the run loop ended.
func (m *Model) Outcome() ui.Outcome {
	return m.outcome
}

// Custom message types
type frameMsg struct {
	frame Frame
}

type streamClosedMsg struct{}

type streamErrorMsg struct {
	err error
}
