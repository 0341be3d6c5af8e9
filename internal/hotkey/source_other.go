//go:build !linux

package hotkey

import "fmt"

// NewSystemSource reports the capability as missing on non-Linux hosts;
// global key capture is only implemented for evdev.
func NewSystemSource() (Source, error) {
	return nil, fmt.Errorf("global hotkeys are not supported on this platform")
}
