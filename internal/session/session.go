// Package session holds the client-side state owned by the UI event loop.
// Workers never see the live Session; they receive immutable snapshots
// captured at submission time.
package session

import (
	"sync/atomic"
	"time"
)

// Mode identifies which UI surface is current. Exactly one is current at any
// instant.
type Mode int

const (
	ModeEmbedded Mode = iota
	ModeNative
	ModeOffline
)

func (m Mode) String() string {
	switch m {
	case ModeEmbedded:
		return "embedded"
	case ModeNative:
		return "native"
	case ModeOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// Session is created once at process start, mutated only by the UI goroutine
// (mode and forced-fallback by the mode selector, selections by user input)
// and torn down at process exit.
type Session struct {
	Mode Mode

	// ForcedFallback is sticky: once the embedded runtime fails it stays set
	// for the remainder of the process, so later successful probes route to
	// the native surface instead of flapping back.
	ForcedFallback bool

	Category      string
	Subcategory   string
	Phrase        string
	PhraseContent string
}

// ResetSelection clears the transient selection fields. Called on every mode
// transition; ForcedFallback survives.
func (s *Session) ResetSelection() {
	s.Category = ""
	s.Subcategory = ""
	s.Phrase = ""
	s.PhraseContent = ""
}

// Snapshot is the immutable copy of session data handed to workers. Workers
// operate on this value only, so no locking is needed for it.
type Snapshot struct {
	Mode          Mode
	Category      string
	Subcategory   string
	Phrase        string
	PhraseContent string
	Taken         time.Time
}

// Snapshot captures the current selection state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Mode:          s.Mode,
		Category:      s.Category,
		Subcategory:   s.Subcategory,
		Phrase:        s.Phrase,
		PhraseContent: s.PhraseContent,
		Taken:         time.Now(),
	}
}

// SnapshotHolder publishes the latest snapshot for readers outside the UI
// goroutine (the hotkey listener). The UI goroutine is the only writer.
type SnapshotHolder struct {
	v atomic.Value
}

// Publish stores a new snapshot.
func (h *SnapshotHolder) Publish(snap Snapshot) {
	h.v.Store(snap)
}

// Load returns the most recently published snapshot, or a zero snapshot if
// none has been published yet.
func (h *SnapshotHolder) Load() Snapshot {
	if snap, ok := h.v.Load().(Snapshot); ok {
		return snap
	}
	return Snapshot{}
}
