// Package controller is the mode selector: the state machine that chooses
// among the embedded, native and offline surfaces and sequences the
// teardown/build transitions between them.
package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/bmoreira/frasecli/internal/capability"
	"github.com/bmoreira/frasecli/internal/probe"
	"github.com/bmoreira/frasecli/internal/session"
	"github.com/bmoreira/frasecli/internal/ui"
)

// State is the selector's position in its lifecycle. Init and Retrying are
// transient entry points; the other three are stable, displayed states.
type State int

const (
	StateInit State = iota
	StateProbing
	StateEmbedded
	StateNativeFallback
	StateOffline
	StateRetrying
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateProbing:
		return "probing"
	case StateEmbedded:
		return "embedded"
	case StateNativeFallback:
		return "native-fallback"
	case StateOffline:
		return "offline"
	case StateRetrying:
		return "retrying"
	default:
		return "unknown"
	}
}

// Factory builds the surface for each stable mode. Implementations live at
// the composition root so this package stays free of toolkit imports.
type Factory interface {
	Embedded() ui.Surface
	// Native receives the degraded-mode notice to display, empty when the
	// fallback was chosen for capability reasons rather than a failure.
	Native(degraded string) ui.Surface
	// Offline receives the unreachability detail and a probe function its
	// retry action runs off the UI goroutine.
	Offline(detail string, probeFn func() probe.Result) ui.Surface
}

// Controller owns the Session and drives the surfaces.
type Controller struct {
	probeURL     string
	probeTimeout time.Duration
	caps         capability.Set
	sess         *session.Session
	holder       *session.SnapshotHolder
	factory      Factory

	state    State
	current  ui.Surface
	degraded string

	// probeFn is swappable for tests; defaults to probe.Check.
	probeFn func(ctx context.Context) probe.Result
}

// New creates a controller. sess must be the process-wide session created at
// startup; holder publishes snapshots for the hotkey listener.
func New(probeURL string, probeTimeout time.Duration, caps capability.Set, sess *session.Session, holder *session.SnapshotHolder, factory Factory) *Controller {
	c := &Controller{
		probeURL:     probeURL,
		probeTimeout: probeTimeout,
		caps:         caps,
		sess:         sess,
		holder:       holder,
		factory:      factory,
		state:        StateInit,
	}
	c.probeFn = func(ctx context.Context) probe.Result {
		return probe.Check(ctx, c.probeURL, c.probeTimeout)
	}
	return c
}

// Decide computes the stable mode for a probe result. It is the transition
// table's core: reachable with embedding capability and no forced fallback
// goes embedded; reachable otherwise goes native; unreachable goes offline.
func Decide(res probe.Result, caps capability.Set, forcedFallback bool) session.Mode {
	if !res.Reachable {
		return session.ModeOffline
	}
	if caps.Embedding.Available && !forcedFallback {
		return session.ModeEmbedded
	}
	return session.ModeNative
}

// State returns the selector's current state.
func (c *Controller) State() State {
	return c.state
}

// Run executes the selector until the user quits or a surface fails
// unexpectedly. It blocks for the process lifetime.
func (c *Controller) Run(ctx context.Context) error {
	c.state = StateProbing
	res := c.probeFn(ctx)
	mode := Decide(res, c.caps, c.sess.ForcedFallback)

	for {
		if err := c.transition(mode, res); err != nil {
			c.teardown()
			return err
		}

		out, err := c.current.Run(ctx)
		if err != nil {
			c.teardown()
			return fmt.Errorf("%s surface failed: %w", c.sess.Mode, err)
		}

		switch out.Kind {
		case ui.OutcomeQuit:
			c.teardown()
			return nil

		case ui.OutcomeReachable:
			// The offline surface already ran the probe during its retry;
			// the result feeds exactly one transition decision.
			c.state = StateRetrying
			if out.Probe == nil {
				c.teardown()
				return fmt.Errorf("offline surface returned no probe result")
			}
			c.state = StateProbing
			res = *out.Probe
			mode = Decide(res, c.caps, c.sess.ForcedFallback)

		case ui.OutcomeEmbedFailed:
			// One-time sticky downgrade: later successful probes route to
			// the native surface for the rest of the process.
			c.sess.ForcedFallback = true
			c.degraded = fmt.Sprintf("embedded view unavailable: %v — using native mode", out.Err)
			mode = session.ModeNative

		default:
			c.teardown()
			return fmt.Errorf("surface returned unknown outcome %d", out.Kind)
		}
	}
}

// transition tears down the current surface, resets the transient selection
// state, and builds the surface for mode. Teardown always completes before
// construction starts.
func (c *Controller) transition(mode session.Mode, res probe.Result) error {
	c.teardown()

	c.sess.Mode = mode
	c.sess.ResetSelection()
	c.holder.Publish(c.sess.Snapshot())

	switch mode {
	case session.ModeEmbedded:
		c.current = c.factory.Embedded()
		c.state = StateEmbedded
	case session.ModeNative:
		c.current = c.factory.Native(c.degraded)
		c.state = StateNativeFallback
	case session.ModeOffline:
		c.current = c.factory.Offline(res.Detail, func() probe.Result {
			return c.probeFn(context.Background())
		})
		c.state = StateOffline
	default:
		return fmt.Errorf("cannot build surface for mode %d", mode)
	}

	if c.current == nil {
		return fmt.Errorf("factory returned no surface for %s mode", mode)
	}
	return nil
}

func (c *Controller) teardown() {
	if c.current != nil {
		_ = c.current.Close()
		c.current = nil
	}
}
