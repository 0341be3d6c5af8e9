// Package offline renders the retry screen shown while the backend is
// unreachable. Retrying against a still-dead server updates the detail line
// in place; only a successful probe ends the run loop.
package offline

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bmoreira/frasecli/internal/probe"
	"github.com/bmoreira/frasecli/internal/ui"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(1, 3)
)

// Model is the retry screen state.
type Model struct {
	detail  string
	status  string
	probing bool
	probeFn func() probe.Result

	outcome ui.Outcome

	width  int
	height int
}

func newModel(detail string, probeFn func() probe.Result) *Model {
	return &Model{
		detail:  detail,
		probeFn: probeFn,
		outcome: ui.Outcome{Kind: ui.OutcomeQuit},
	}
}

// Init initializes the retry screen.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.outcome = ui.Outcome{Kind: ui.OutcomeQuit}
			return m, tea.Quit

		case "r", "enter":
			if m.probing {
				return m, nil
			}
			m.probing = true
			m.status = "Checking server..."
			probeFn := m.probeFn
			return m, func() tea.Msg {
				return probeDoneMsg{result: probeFn()}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case probeDoneMsg:
		m.probing = false
		if msg.result.Reachable {
			// Leave on the next cycle so the success status paints once
			// before the surface is torn down.
			res := msg.result
			m.outcome = ui.Outcome{Kind: ui.OutcomeReachable, Probe: &res}
			m.status = "Server is back — switching..."
			return m, func() tea.Msg { return leaveMsg{} }
		}
		m.detail = msg.result.Detail
		m.status = "Still unreachable"

	case leaveMsg:
		return m, tea.Quit
	}

	return m, nil
}

// View renders the retry screen.
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	body := titleStyle.Render("Server unreachable") + "\n\n" +
		detailStyle.Render(m.detail) + "\n\n" +
		helpStyle.Render("r: retry  •  q: quit")

	if m.status != "" {
		body += "\n\n" + statusStyle.Render(m.status)
	}

	box := boxStyle.Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// Outcome reports why the run loop ended.
func (m *Model) Outcome() ui.Outcome {
	return m.outcome
}

// Custom message types
type probeDoneMsg struct {
	result probe.Result
}

type leaveMsg struct{}
