package offline

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bmoreira/frasecli/internal/probe"
	"github.com/bmoreira/frasecli/internal/ui"
)

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{}
}

func TestQuitKeyEndsWithQuitOutcome(t *testing.T) {
	m := newModel("cannot reach server", nil)

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("Expected a quit command")
	}
	if m.Outcome().Kind != ui.OutcomeQuit {
		t.Errorf("Expected quit outcome, got %v", m.Outcome().Kind)
	}
}

func TestRetryAgainstDeadServerUpdatesDetailInPlace(t *testing.T) {
	probes := 0
	m := newModel("cannot reach server: connection refused", func() probe.Result {
		probes++
		return probe.Result{Reachable: false, Detail: "server error: HTTP 503"}
	})

	_, cmd := m.Update(keyMsg("r"))
	if cmd == nil {
		t.Fatal("Expected retry to schedule a probe")
	}

	msg := cmd()
	_, cmd = m.Update(msg)
	if cmd != nil {
		t.Error("Expected no further command for a failed retry; screen stays up")
	}
	if probes != 1 {
		t.Errorf("Expected exactly 1 probe, got %d", probes)
	}
	if m.detail != "server error: HTTP 503" {
		t.Errorf("Expected detail replaced in place, got %q", m.detail)
	}
	if m.probing {
		t.Error("Expected probing flag cleared after result")
	}
}

func TestRetryKeysIgnoredWhileProbeInFlight(t *testing.T) {
	m := newModel("down", func() probe.Result {
		return probe.Result{Reachable: false, Detail: "still down"}
	})

	_, first := m.Update(keyMsg("r"))
	if first == nil {
		t.Fatal("Expected first retry to schedule a probe")
	}
	_, second := m.Update(keyMsg("r"))
	if second != nil {
		t.Error("Expected second retry to be ignored while one is in flight")
	}
}

func TestSuccessfulRetryLeavesOneCycleLater(t *testing.T) {
	m := newModel("down", func() probe.Result {
		return probe.Result{Reachable: true, Detail: "HTTP 200"}
	})

	_, cmd := m.Update(keyMsg("r"))
	msg := cmd()

	// The reachable result does not quit directly; it schedules the exit for
	// the next cycle so the success status paints once.
	_, cmd = m.Update(msg)
	if cmd == nil {
		t.Fatal("Expected a follow-up command after a reachable probe")
	}
	if m.Outcome().Kind != ui.OutcomeReachable {
		t.Fatalf("Expected reachable outcome recorded, got %v", m.Outcome().Kind)
	}
	if m.Outcome().Probe == nil || !m.Outcome().Probe.Reachable {
		t.Fatal("Expected the probe result attached to the outcome")
	}

	next := cmd()
	if _, ok := next.(leaveMsg); !ok {
		t.Fatalf("Expected leave message, got %T", next)
	}
	_, cmd = m.Update(next)
	if cmd == nil {
		t.Error("Expected quit command on the leave cycle")
	}
}

func TestEnterAlsoRetries(t *testing.T) {
	probes := 0
	m := newModel("down", func() probe.Result {
		probes++
		return probe.Result{Reachable: false, Detail: "down"}
	})

	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("Expected enter to schedule a probe")
	}
	cmd()
	if probes != 1 {
		t.Errorf("Expected 1 probe, got %d", probes)
	}
}
