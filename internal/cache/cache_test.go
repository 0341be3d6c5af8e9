package cache

import (
	"path/filepath"
	"testing"

	"github.com/bmoreira/frasecli/internal/api"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestPutAndPhrases_RoundTrip(t *testing.T) {
	m := newTestManager(t)

	phrases := []api.Phrase{
		{Ordem: 2, Nome: "Alterado", Conteudo: "achados anormais"},
		{Ordem: 1, Nome: "Normal", Conteudo: "linha 1\nlinha 2"},
	}
	if err := m.Put("Laudos", "Geral", phrases); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := m.Phrases("Laudos", "Geral")
	if err != nil {
		t.Fatalf("Phrases failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 phrases, got %d", len(got))
	}
	// Reads come back ordered by ordem regardless of insert order.
	if got[0].Nome != "Normal" || got[1].Nome != "Alterado" {
		t.Errorf("Expected ordem ordering, got %+v", got)
	}
	if got[0].Conteudo != "linha 1\nlinha 2" {
		t.Errorf("Expected multi-line content preserved, got %q", got[0].Conteudo)
	}
}

func TestPut_ReplacesExistingPair(t *testing.T) {
	m := newTestManager(t)

	if err := m.Put("Laudos", "Geral", []api.Phrase{
		{Ordem: 1, Nome: "Velho", Conteudo: "old"},
	}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := m.Put("Laudos", "Geral", []api.Phrase{
		{Ordem: 1, Nome: "Novo", Conteudo: "new"},
	}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := m.Phrases("Laudos", "Geral")
	if err != nil {
		t.Fatalf("Phrases failed: %v", err)
	}
	if len(got) != 1 || got[0].Nome != "Novo" {
		t.Errorf("Expected the second Put to replace the first, got %+v", got)
	}
}

func TestPut_DoesNotTouchOtherPairs(t *testing.T) {
	m := newTestManager(t)

	if err := m.Put("Laudos", "Geral", []api.Phrase{{Ordem: 1, Nome: "A", Conteudo: "a"}}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := m.Put("Laudos", "Especial", []api.Phrase{{Ordem: 1, Nome: "B", Conteudo: "b"}}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := m.Put("Laudos", "Geral", nil); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := m.Phrases("Laudos", "Especial")
	if err != nil {
		t.Fatalf("Phrases failed: %v", err)
	}
	if len(got) != 1 || got[0].Nome != "B" {
		t.Errorf("Expected sibling pair untouched, got %+v", got)
	}
}

func TestCategoriesAndSubcategories(t *testing.T) {
	m := newTestManager(t)

	pairs := []struct{ cat, sub string }{
		{"Receitas", "Antibioticos"},
		{"Laudos", "Geral"},
		{"Laudos", "Especial"},
	}
	for _, p := range pairs {
		if err := m.Put(p.cat, p.sub, []api.Phrase{{Ordem: 1, Nome: "x", Conteudo: "x"}}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	cats, err := m.Categories()
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(cats) != 2 || cats[0] != "Laudos" || cats[1] != "Receitas" {
		t.Errorf("Unexpected categories: %v", cats)
	}

	subs, err := m.Subcategories("Laudos")
	if err != nil {
		t.Fatalf("Subcategories failed: %v", err)
	}
	if len(subs) != 2 || subs[0] != "Especial" || subs[1] != "Geral" {
		t.Errorf("Unexpected subcategories: %v", subs)
	}
}

func TestPhrases_EmptyForUnknownPair(t *testing.T) {
	m := newTestManager(t)

	got, err := m.Phrases("nope", "nada")
	if err != nil {
		t.Fatalf("Phrases failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no phrases, got %+v", got)
	}
}
