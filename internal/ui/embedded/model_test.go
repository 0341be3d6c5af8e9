package embedded

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bmoreira/frasecli/internal/tasks"
	"github.com/bmoreira/frasecli/internal/ui"
)

func newTestRuntime() *Runtime {
	return &Runtime{
		frames: make(chan Frame, frameBuffer),
		errs:   make(chan error, 1),
		send:   make(chan inputEvent, sendBuffer),
	}
}

func TestFrameUpdatesDisplay(t *testing.T) {
	m := newModel(newTestRuntime())

	_, cmd := m.Update(frameMsg{frame: Frame{Kind: "frame", Title: "Frases", Body: "conteudo"}})
	if cmd == nil {
		t.Error("Expected the model to keep waiting for the next frame")
	}
	if m.title != "Frases" {
		t.Errorf("Expected title updated, got %q", m.title)
	}
}

func TestStatusFrameOnlyTouchesStatusLine(t *testing.T) {
	m := newModel(newTestRuntime())

	m.Update(frameMsg{frame: Frame{Kind: "frame", Body: "tela"}})
	m.Update(frameMsg{frame: Frame{Kind: "status", Body: "sincronizado"}})

	if m.statusMsg != "sincronizado" {
		t.Errorf("Expected status line updated, got %q", m.statusMsg)
	}
}

func TestStreamErrorEndsWithEmbedFailure(t *testing.T) {
	m := newModel(newTestRuntime())
	wantErr := errors.New("stream closed unexpectedly")

	_, cmd := m.Update(streamErrorMsg{err: wantErr})
	if cmd == nil {
		t.Fatal("Expected quit command on stream error")
	}

	out := m.Outcome()
	if out.Kind != ui.OutcomeEmbedFailed {
		t.Fatalf("Expected embed-failed outcome, got %v", out.Kind)
	}
	if !errors.Is(out.Err, wantErr) {
		t.Errorf("Expected stream error attached to outcome, got %v", out.Err)
	}
}

func TestCleanStreamCloseEndsWithQuit(t *testing.T) {
	m := newModel(newTestRuntime())

	_, cmd := m.Update(streamClosedMsg{})
	if cmd == nil {
		t.Fatal("Expected quit command on clean close")
	}
	if m.Outcome().Kind != ui.OutcomeQuit {
		t.Errorf("Expected quit outcome, got %v", m.Outcome().Kind)
	}
}

func TestKeysForwardedToBackend(t *testing.T) {
	runtime := newTestRuntime()
	m := newModel(runtime)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})

	select {
	case ev := <-runtime.send:
		if ev.Key != "j" {
			t.Errorf("Expected 'j' forwarded, got %q", ev.Key)
		}
	default:
		t.Error("Expected key press queued for the backend")
	}
}

func TestQuitKeyStaysLocal(t *testing.T) {
	runtime := newTestRuntime()
	m := newModel(runtime)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	select {
	case ev := <-runtime.send:
		t.Errorf("Quit key must not be forwarded, got %q", ev.Key)
	default:
	}
	if m.Outcome().Kind != ui.OutcomeQuit {
		t.Errorf("Expected quit outcome, got %v", m.Outcome().Kind)
	}
}

func TestWorkerCompletionShownInFooter(t *testing.T) {
	m := newModel(newTestRuntime())
	m.width = 80
	m.height = 24

	m.Update(tasks.Completion{ID: 1, Detail: "typed \"Normal\""})

	if m.statusMsg != "typed \"Normal\"" {
		t.Errorf("Expected completion detail in status, got %q", m.statusMsg)
	}
	if !strings.Contains(m.View(), "typed") {
		t.Error("Expected completion visible in the rendered footer")
	}
}
