// Package autotype performs simulated text entry. The blocking work always
// runs on a worker goroutine via the task coordinator, never on the UI loop.
package autotype

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/bmoreira/frasecli/internal/expander"
	"github.com/bmoreira/frasecli/internal/session"
	"github.com/bmoreira/frasecli/internal/tasks"
)

// Injector delivers text into the environment outside the terminal.
type Injector interface {
	TypeText(text string) error
	Close() error
}

// ClipboardInjector "types" by placing the text on the system clipboard, the
// portable delivery path when keystroke injection is unavailable.
type ClipboardInjector struct{}

func (ClipboardInjector) TypeText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

func (ClipboardInjector) Close() error { return nil }

// Typist turns the selected phrase into a coordinator action: expand template
// variables, then inject. The snapshot is the only state it reads.
type Typist struct {
	injector Injector
}

func NewTypist(injector Injector) *Typist {
	return &Typist{injector: injector}
}

// Action returns the task submitted to the coordinator for one auto-type
// dispatch.
func (t *Typist) Action() tasks.Action {
	return func(snap session.Snapshot) (string, error) {
		if snap.PhraseContent == "" {
			return "", fmt.Errorf("no phrase selected")
		}
		text := expander.Expand(snap.PhraseContent, expander.SystemSources())
		if err := t.injector.TypeText(text); err != nil {
			return "", err
		}
		return fmt.Sprintf("typed %q", snap.Phrase), nil
	}
}

// Close releases the underlying injector.
func (t *Typist) Close() error {
	return t.injector.Close()
}
