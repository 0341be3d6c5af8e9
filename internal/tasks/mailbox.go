package tasks

import "sync"

// Mailbox is the single channel from worker goroutines back into the UI
// event loop. The target is the Send function of the currently running
// surface's program; the mode selector swaps it on every transition, so a
// worker finishing between surfaces posts into the void rather than into a
// torn-down loop.
type Mailbox struct {
	mu      sync.Mutex
	target  func(msg any)
	dropped int64
}

// SetTarget installs the delivery function for the active surface.
func (m *Mailbox) SetTarget(fn func(msg any)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.target = fn
}

// ClearTarget removes the delivery function. Posts made while no target is
// installed are counted and discarded.
func (m *Mailbox) ClearTarget() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.target = nil
}

// Post delivers msg to the active surface, if any.
func (m *Mailbox) Post(msg any) {
	m.mu.Lock()
	fn := m.target
	if fn == nil {
		m.dropped++
	}
	m.mu.Unlock()

	if fn != nil {
		fn(msg)
	}
}

// Dropped returns how many posts found no live target.
func (m *Mailbox) Dropped() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dropped
}
