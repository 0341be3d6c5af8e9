package hotkey

import (
	"fmt"
	"sync"
)

// Source yields pressed key names. Next blocks until a key arrives or the
// source is closed, in which case it returns an error.
type Source interface {
	Next() (string, error)
	Close() error
}

// Handler runs when a bound key is recognized. Handlers must not block; the
// expected implementation submits an action to the task coordinator and
// returns immediately.
type Handler func(action string)

// Listener is the single long-lived hotkey worker for the process lifetime.
// Each recognized press dispatches through the handler, so rapid presses may
// spawn overlapping action workers; the listener itself never waits on them.
type Listener struct {
	src      Source
	bindings map[string]string // key name -> action name
	handler  Handler

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewListener builds a listener over src for the given bindings.
func NewListener(src Source, bindings []Binding, handler Handler) *Listener {
	byKey := make(map[string]string, len(bindings))
	for _, b := range bindings {
		byKey[b.Key] = b.Action
	}
	return &Listener{
		src:      src,
		bindings: byKey,
		handler:  handler,
	}
}

// Start launches the listener goroutine.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return fmt.Errorf("hotkey listener already running")
	}
	l.running = true
	l.stopCh = make(chan struct{})

	l.wg.Add(1)
	go l.loop(l.stopCh)
	return nil
}

// Stop shuts the listener down and waits for the goroutine to exit. Safe to
// call more than once; actions already dispatched run to completion.
func (l *Listener) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	close(l.stopCh)
	l.mu.Unlock()

	// Closing the source unblocks a pending Next.
	_ = l.src.Close()
	l.wg.Wait()
}

func (l *Listener) loop(stopCh <-chan struct{}) {
	defer l.wg.Done()

	for {
		key, err := l.src.Next()
		if err != nil {
			return
		}

		select {
		case <-stopCh:
			return
		default:
		}

		if action, ok := l.bindings[key]; ok {
			l.handler(action)
		}
	}
}
