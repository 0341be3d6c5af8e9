// Package capability describes which optional host features are available.
// The set is resolved once at startup and passed around as plain data, so
// components branch on typed flags instead of probing the host at use sites.
package capability

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Capability is one optional feature with the reason it is unavailable.
type Capability struct {
	Available bool
	Reason    string
}

// Available marks a capability as present.
func Available() Capability {
	return Capability{Available: true}
}

// Missing marks a capability as absent with a human-readable reason.
func Missing(reason string) Capability {
	return Capability{Reason: reason}
}

// Set is the full capability descriptor resolved at startup.
type Set struct {
	// Embedding is the ability to host the backend's remote surface.
	Embedding Capability
	// AutoType is the ability to inject text outside the terminal.
	AutoType Capability
	// Hotkeys is the ability to capture global key presses.
	Hotkeys Capability
}

// DetectEmbedding checks whether the terminal can host the embedded remote
// surface. The enabled flag comes from configuration.
func DetectEmbedding(enabled bool) Capability {
	if !enabled {
		return Missing("embedded view disabled by configuration")
	}
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return Missing("stdout is not a terminal")
	}
	return Available()
}
