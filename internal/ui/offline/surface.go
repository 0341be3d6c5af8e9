package offline

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bmoreira/frasecli/internal/probe"
	"github.com/bmoreira/frasecli/internal/ui"
)

// Surface runs the retry screen as a blocking loop for the mode selector.
type Surface struct {
	detail  string
	probeFn func() probe.Result
	program *tea.Program
}

// NewSurface creates the offline surface. detail is the unreachability
// message from the last probe; probeFn runs a fresh probe off the UI loop.
func NewSurface(detail string, probeFn func() probe.Result) *Surface {
	return &Surface{detail: detail, probeFn: probeFn}
}

// Run blocks until the user quits or a retry probe succeeds.
func (s *Surface) Run(ctx context.Context) (ui.Outcome, error) {
	m := newModel(s.detail, s.probeFn)
	s.program = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := s.program.Run()
	if err != nil {
		return ui.Outcome{}, fmt.Errorf("offline screen failed: %w", err)
	}

	fm, ok := final.(*Model)
	if !ok {
		return ui.Outcome{}, fmt.Errorf("offline screen returned unexpected model")
	}
	return fm.Outcome(), nil
}

// Close releases the surface. The program has already exited when the
// selector calls this; nothing is held open between runs.
func (s *Surface) Close() error {
	s.program = nil
	return nil
}
