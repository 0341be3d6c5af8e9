// Package ui defines the contract between the mode selector and the three
// UI surfaces. At most one surface is alive at any instant; the selector
// tears the previous one down before building the next.
package ui

import (
	"context"

	"github.com/bmoreira/frasecli/internal/probe"
)

// OutcomeKind says why a surface's run loop returned.
type OutcomeKind int

const (
	// OutcomeQuit means the user asked to leave the application.
	OutcomeQuit OutcomeKind = iota
	// OutcomeReachable means the offline surface observed a successful
	// probe; the selector decides the next stable mode from it.
	OutcomeReachable
	// OutcomeEmbedFailed means the embedded runtime failed to start or
	// crashed during use; the selector downgrades permanently.
	OutcomeEmbedFailed
)

// Outcome is a surface run's result.
type Outcome struct {
	Kind  OutcomeKind
	Probe *probe.Result // set for OutcomeReachable
	Err   error         // set for OutcomeEmbedFailed
}

// Surface is one UI mode's blocking run loop. Run drives the surface's own
// event loop until an outcome is reached; Close releases its resources and
// must complete before the next surface is constructed.
type Surface interface {
	Run(ctx context.Context) (Outcome, error)
	Close() error
}
