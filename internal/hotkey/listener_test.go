package hotkey

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// chanSource feeds scripted key names; Close unblocks Next.
type chanSource struct {
	keys chan string
	once sync.Once
	done chan struct{}
}

func newChanSource() *chanSource {
	return &chanSource{
		keys: make(chan string, 16),
		done: make(chan struct{}),
	}
}

func (s *chanSource) Next() (string, error) {
	select {
	case key := <-s.keys:
		return key, nil
	case <-s.done:
		return "", os.ErrClosed
	}
}

func (s *chanSource) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

func TestListener_DispatchesBoundKeys(t *testing.T) {
	src := newChanSource()
	dispatched := make(chan string, 16)

	l := NewListener(src, DefaultBindings(), func(action string) {
		dispatched <- action
	})
	if err := l.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer l.Stop()

	src.keys <- "f8"
	select {
	case action := <-dispatched:
		if action != ActionTypePhrase {
			t.Errorf("Expected %q, got %q", ActionTypePhrase, action)
		}
	case <-time.After(time.Second):
		t.Fatal("Bound key was not dispatched")
	}

	src.keys <- "f7"
	select {
	case action := <-dispatched:
		if action != ActionSyncCache {
			t.Errorf("Expected %q, got %q", ActionSyncCache, action)
		}
	case <-time.After(time.Second):
		t.Fatal("Bound key was not dispatched")
	}
}

func TestListener_IgnoresUnboundKeys(t *testing.T) {
	src := newChanSource()
	dispatched := make(chan string, 16)

	l := NewListener(src, DefaultBindings(), func(action string) {
		dispatched <- action
	})
	if err := l.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer l.Stop()

	src.keys <- "f1"
	src.keys <- "f8"

	// The bound key arrives; the unbound one was silently skipped.
	select {
	case action := <-dispatched:
		if action != ActionTypePhrase {
			t.Errorf("Expected %q, got %q", ActionTypePhrase, action)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected dispatch for the bound key")
	}

	select {
	case action := <-dispatched:
		t.Errorf("Unexpected dispatch %q for unbound key", action)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestListener_StartTwiceFails(t *testing.T) {
	src := newChanSource()
	l := NewListener(src, DefaultBindings(), func(string) {})

	if err := l.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer l.Stop()

	if err := l.Start(); err == nil {
		t.Error("Expected second Start to fail while running")
	}
}

func TestListener_StopUnblocksAndIsIdempotent(t *testing.T) {
	src := newChanSource()
	l := NewListener(src, DefaultBindings(), func(string) {})

	if err := l.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	stopped := make(chan struct{})
	go func() {
		l.Stop()
		l.Stop() // second call must be a no-op
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return; listener goroutine stuck in Next")
	}
}

func TestLoadBindings_MissingFileUsesDefaults(t *testing.T) {
	bindings, err := LoadBindings(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadBindings failed: %v", err)
	}
	if len(bindings) != 2 {
		t.Fatalf("Expected 2 default bindings, got %d", len(bindings))
	}
}

func TestLoadBindings_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bindings.yaml")
	content := []byte("bindings:\n  - key: f12\n    action: type-phrase\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	bindings, err := LoadBindings(path)
	if err != nil {
		t.Fatalf("LoadBindings failed: %v", err)
	}
	if len(bindings) != 1 {
		t.Fatalf("Expected 1 binding, got %d", len(bindings))
	}
	if bindings[0].Key != "f12" || bindings[0].Action != ActionTypePhrase {
		t.Errorf("Unexpected binding: %+v", bindings[0])
	}
}

func TestLoadBindings_RejectsUnknownAction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bindings.yaml")
	content := []byte("bindings:\n  - key: f12\n    action: launch-missiles\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadBindings(path); err == nil {
		t.Error("Expected error for unknown action")
	}
}
