//go:build !linux

package autotype

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// NewSystemInjector returns the clipboard injector; keystroke injection is
// only implemented for Linux hosts.
func NewSystemInjector() (Injector, string, error) {
	if clipboard.Unsupported {
		return nil, "", fmt.Errorf("no clipboard support on this host")
	}
	return ClipboardInjector{}, "clipboard", nil
}
