package embedded

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bmoreira/frasecli/internal/tasks"
	"github.com/bmoreira/frasecli/internal/ui"
)

// Surface runs the embedded view as a blocking loop for the mode selector.
// A failed handshake or a dead stream is reported as an embed failure, not
// as an error; the selector downgrades to the native browser.
type Surface struct {
	baseURL string
	mailbox *tasks.Mailbox
	runtime *Runtime
	program *tea.Program
}

// NewSurface creates the embedded surface for the backend at baseURL.
func NewSurface(baseURL string, mailbox *tasks.Mailbox) *Surface {
	return &Surface{baseURL: baseURL, mailbox: mailbox}
}

// Run connects and blocks until the user quits or the stream fails.
func (s *Surface) Run(ctx context.Context) (ui.Outcome, error) {
	runtime, err := Dial(ctx, s.baseURL)
	if err != nil {
		return ui.Outcome{Kind: ui.OutcomeEmbedFailed, Err: err}, nil
	}
	s.runtime = runtime

	m := newModel(runtime)
	s.program = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	s.mailbox.SetTarget(func(msg any) {
		s.program.Send(msg)
	})
	defer s.mailbox.ClearTarget()

	final, err := s.program.Run()
	if err != nil {
		return ui.Outcome{}, fmt.Errorf("embedded view failed: %w", err)
	}

	fm, ok := final.(*Model)
	if !ok {
		return ui.Outcome{}, fmt.Errorf("embedded view returned unexpected model")
	}
	return fm.Outcome(), nil
}

// Close tears the stream down. Must complete before the next surface starts.
func (s *Surface) Close() error {
	s.mailbox.ClearTarget()
	var err error
	if s.runtime != nil {
		err = s.runtime.Close()
		s.runtime = nil
	}
	s.program = nil
	return err
}
