// Package hotkey captures global key presses on a single long-lived worker
// goroutine and dispatches the bound actions without touching the UI loop.
package hotkey

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Known action names a binding may reference.
const (
	ActionTypePhrase = "type-phrase"
	ActionSyncCache  = "sync-cache"
)

// Binding maps a key name to an action name.
type Binding struct {
	Key    string `yaml:"key"`
	Action string `yaml:"action"`
}

type bindingsFile struct {
	Bindings []Binding `yaml:"bindings"`
}

// DefaultBindings is used when no bindings file exists.
func DefaultBindings() []Binding {
	return []Binding{
		{Key: "f8", Action: ActionTypePhrase},
		{Key: "f7", Action: ActionSyncCache},
	}
}

// LoadBindings reads the bindings file, falling back to the defaults when it
// is missing. Bindings referencing unknown actions are rejected so a typo in
// the file surfaces at startup rather than as a dead key.
func LoadBindings(path string) ([]Binding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultBindings(), nil
		}
		return nil, fmt.Errorf("failed to read bindings file: %w", err)
	}

	var f bindingsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(f.Bindings) == 0 {
		return DefaultBindings(), nil
	}

	for _, b := range f.Bindings {
		if b.Action != ActionTypePhrase && b.Action != ActionSyncCache {
			return nil, fmt.Errorf("unknown action %q for key %q", b.Action, b.Key)
		}
		if b.Key == "" {
			return nil, fmt.Errorf("binding for action %q has no key", b.Action)
		}
	}
	return f.Bindings, nil
}
