// Package tasks runs blocking actions on worker goroutines and marshals
// their results back to the UI event loop through a mailbox. Workers never
// mutate UI state directly.
package tasks

import (
	"sync/atomic"
	"time"

	"github.com/bmoreira/frasecli/internal/session"
)

// Action is the blocking work a worker performs. It receives only the
// immutable snapshot captured at submission time and returns a human-readable
// detail on success.
type Action func(snap session.Snapshot) (detail string, err error)

// Handle is the opaque reference to a submitted action. It is retained so
// the absence of cancellation and awaiting is an explicit design choice, not
// an implicit race: Done closes when the worker finishes, but nothing in the
// client waits on it.
type Handle struct {
	ID   uint64
	done chan struct{}
}

// Done reports completion for observers that care (tests, shutdown
// diagnostics). The coordinator itself never blocks on it.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Completion is posted to the mailbox when a worker finishes.
type Completion struct {
	ID     uint64
	Detail string
	Err    error
}

// Coordinator submits actions to fresh worker goroutines. Concurrently
// dispatched actions are deliberately not serialized; two rapid hotkey
// presses run two overlapping workers.
type Coordinator struct {
	mailbox *Mailbox
	delay   time.Duration
	nextID  atomic.Uint64
}

// New creates a coordinator posting completions to mailbox. delay is the
// fixed pause each worker sleeps before performing its action, simulating
// the human trigger interval.
func New(mailbox *Mailbox, delay time.Duration) *Coordinator {
	return &Coordinator{mailbox: mailbox, delay: delay}
}

// Submit starts a worker for action immediately and returns without
// blocking. The worker sleeps the trigger delay, runs the action against the
// snapshot, and posts exactly one Completion to the mailbox.
func (c *Coordinator) Submit(action Action, snap session.Snapshot) *Handle {
	h := &Handle{
		ID:   c.nextID.Add(1),
		done: make(chan struct{}),
	}

	go func() {
		defer close(h.done)
		time.Sleep(c.delay)
		detail, err := action(snap)
		c.mailbox.Post(Completion{ID: h.ID, Detail: detail, Err: err})
	}()

	return h
}
