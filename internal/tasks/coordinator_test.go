package tasks

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bmoreira/frasecli/internal/session"
)

// collector is a mailbox target that records delivered messages.
type collector struct {
	mu   sync.Mutex
	msgs []any
}

func (c *collector) deliver(msg any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
}

func (c *collector) completions() []Completion {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Completion
	for _, m := range c.msgs {
		if comp, ok := m.(Completion); ok {
			out = append(out, comp)
		}
	}
	return out
}

func TestSubmit_PostsExactlyOneCompletion(t *testing.T) {
	mailbox := &Mailbox{}
	col := &collector{}
	mailbox.SetTarget(col.deliver)

	coord := New(mailbox, 0)
	h := coord.Submit(func(snap session.Snapshot) (string, error) {
		return "done", nil
	}, session.Snapshot{})

	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("Worker did not finish in time")
	}

	comps := col.completions()
	if len(comps) != 1 {
		t.Fatalf("Expected exactly 1 completion, got %d", len(comps))
	}
	if comps[0].Detail != "done" || comps[0].Err != nil {
		t.Errorf("Unexpected completion: %+v", comps[0])
	}
	if comps[0].ID != h.ID {
		t.Errorf("Completion ID %d does not match handle ID %d", comps[0].ID, h.ID)
	}
}

func TestSubmit_ReportsActionError(t *testing.T) {
	mailbox := &Mailbox{}
	col := &collector{}
	mailbox.SetTarget(col.deliver)

	coord := New(mailbox, 0)
	wantErr := errors.New("injection failed")
	h := coord.Submit(func(session.Snapshot) (string, error) {
		return "", wantErr
	}, session.Snapshot{})

	<-h.Done()

	comps := col.completions()
	if len(comps) != 1 {
		t.Fatalf("Expected 1 completion, got %d", len(comps))
	}
	if !errors.Is(comps[0].Err, wantErr) {
		t.Errorf("Expected action error in completion, got %v", comps[0].Err)
	}
}

func TestSubmit_WorkerSeesSubmissionSnapshot(t *testing.T) {
	mailbox := &Mailbox{}
	mailbox.SetTarget(func(any) {})

	coord := New(mailbox, 0)
	got := make(chan session.Snapshot, 1)

	snap := session.Snapshot{Phrase: "Normal", PhraseContent: "antes"}
	h := coord.Submit(func(s session.Snapshot) (string, error) {
		got <- s
		return "", nil
	}, snap)

	// Mutating the original after submission must not affect the worker.
	snap.PhraseContent = "depois"

	<-h.Done()
	seen := <-got
	if seen.PhraseContent != "antes" {
		t.Errorf("Worker saw %q, want the snapshot captured at submission", seen.PhraseContent)
	}
}

func TestSubmit_OverlappingActionsBothComplete(t *testing.T) {
	mailbox := &Mailbox{}
	col := &collector{}
	mailbox.SetTarget(col.deliver)

	coord := New(mailbox, 0)

	release := make(chan struct{})
	slow := coord.Submit(func(session.Snapshot) (string, error) {
		<-release
		return "slow", nil
	}, session.Snapshot{})
	fast := coord.Submit(func(session.Snapshot) (string, error) {
		return "fast", nil
	}, session.Snapshot{})

	// The fast worker finishes while the slow one is still running; nothing
	// serializes them.
	select {
	case <-fast.Done():
	case <-time.After(time.Second):
		t.Fatal("Fast worker blocked behind slow worker")
	}

	close(release)
	<-slow.Done()

	comps := col.completions()
	if len(comps) != 2 {
		t.Fatalf("Expected 2 completions, got %d", len(comps))
	}
	if comps[0].Detail != "fast" {
		t.Errorf("Expected the fast worker to post first, got %q", comps[0].Detail)
	}
	if slow.ID == fast.ID {
		t.Error("Expected distinct handle IDs for concurrent submissions")
	}
}

func TestSubmit_AppliesTriggerDelay(t *testing.T) {
	mailbox := &Mailbox{}
	mailbox.SetTarget(func(any) {})

	delay := 50 * time.Millisecond
	coord := New(mailbox, delay)

	start := time.Now()
	h := coord.Submit(func(session.Snapshot) (string, error) {
		return "", nil
	}, session.Snapshot{})
	<-h.Done()

	if elapsed := time.Since(start); elapsed < delay {
		t.Errorf("Worker ran after %v, expected at least %v", elapsed, delay)
	}
}

func TestMailbox_DropsWithoutTarget(t *testing.T) {
	mailbox := &Mailbox{}

	mailbox.Post(Completion{ID: 1})
	if got := mailbox.Dropped(); got != 1 {
		t.Errorf("Expected 1 dropped post, got %d", got)
	}

	col := &collector{}
	mailbox.SetTarget(col.deliver)
	mailbox.Post(Completion{ID: 2})

	mailbox.ClearTarget()
	mailbox.Post(Completion{ID: 3})

	if got := mailbox.Dropped(); got != 2 {
		t.Errorf("Expected 2 dropped posts, got %d", got)
	}
	if len(col.completions()) != 1 {
		t.Errorf("Expected 1 delivered completion, got %d", len(col.completions()))
	}
}
