package native

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bmoreira/frasecli/internal/tasks"
	"github.com/bmoreira/frasecli/internal/ui"
)

// Surface runs the browser as a blocking loop for the mode selector. While
// running it is the mailbox target, so worker completions land in its event
// loop; the target is cleared before the loop's resources are released.
type Surface struct {
	deps    Deps
	mailbox *tasks.Mailbox
	program *tea.Program
}

// NewSurface creates the native surface.
func NewSurface(deps Deps, mailbox *tasks.Mailbox) *Surface {
	return &Surface{deps: deps, mailbox: mailbox}
}

// Run blocks until the user quits.
func (s *Surface) Run(ctx context.Context) (ui.Outcome, error) {
	m := newModel(s.deps)
	s.program = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	s.mailbox.SetTarget(func(msg any) {
		s.program.Send(msg)
	})
	defer s.mailbox.ClearTarget()

	final, err := s.program.Run()
	if err != nil {
		return ui.Outcome{}, fmt.Errorf("native browser failed: %w", err)
	}

	fm, ok := final.(*Model)
	if !ok {
		return ui.Outcome{}, fmt.Errorf("native browser returned unexpected model")
	}
	return fm.Outcome(), nil
}

// Close releases the surface.
func (s *Surface) Close() error {
	s.mailbox.ClearTarget()
	s.program = nil
	return nil
}
