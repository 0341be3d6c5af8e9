package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/bmoreira/frasecli/internal/api"
)

func TestSyncFrom_StoresFullCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/categorias":
			w.Write([]byte(`["Laudos"]`))
		case "/api/subcategorias/Laudos":
			w.Write([]byte(`["Geral","Especial"]`))
		case "/api/frases/Laudos/Geral":
			w.Write([]byte(`[{"ordem":1,"nome":"Normal","conteudo":"ok"},{"ordem":2,"nome":"Alterado","conteudo":"nok"}]`))
		case "/api/frases/Laudos/Especial":
			w.Write([]byte(`[{"ordem":1,"nome":"Raro","conteudo":"raro"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	m, err := NewManager(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer m.Close()

	client := api.NewClient(server.URL, time.Second)
	total, err := m.SyncFrom(context.Background(), client)
	if err != nil {
		t.Fatalf("SyncFrom failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected 3 phrases synced, got %d", total)
	}

	phrases, err := m.Phrases("Laudos", "Geral")
	if err != nil {
		t.Fatalf("Phrases failed: %v", err)
	}
	if len(phrases) != 2 || phrases[0].Nome != "Normal" {
		t.Errorf("Unexpected cached phrases: %+v", phrases)
	}
}

func TestSyncFrom_UnreachableBackendFails(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer m.Close()

	client := api.NewClient("http://127.0.0.1:1", 100*time.Millisecond)
	if _, err := m.SyncFrom(context.Background(), client); err == nil {
		t.Error("Expected sync against a dead backend to fail")
	}
}
