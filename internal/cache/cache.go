// Package cache mirrors fetched phrase data in a local SQLite database so
// the native browser keeps working when a fetch fails mid-session.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bmoreira/frasecli/internal/api"
)

// Manager owns the cache database. sql.DB is safe for concurrent use, so
// worker goroutines may refresh the cache while the UI reads it.
type Manager struct {
	db *sql.DB
}

// NewManager opens (creating if needed) the cache database at dbPath.
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to cache database: %w", err)
	}

	m := &Manager{db: db}
	if err := m.initSchema(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS phrases (
		categoria TEXT NOT NULL,
		subcategoria TEXT NOT NULL,
		ordem INTEGER NOT NULL,
		nome TEXT NOT NULL,
		conteudo TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_phrases_categoria ON phrases(categoria);
	CREATE INDEX IF NOT EXISTS idx_phrases_subcategoria ON phrases(categoria, subcategoria);
	`

	if _, err := m.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize cache schema: %w", err)
	}
	return nil
}

// Put replaces the cached phrases for one category/subcategory pair.
func (m *Manager) Put(category, subcategory string, phrases []api.Phrase) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"DELETE FROM phrases WHERE categoria = ? AND subcategoria = ?",
		category, subcategory,
	); err != nil {
		return fmt.Errorf("failed to clear cache entries: %w", err)
	}

	for _, p := range phrases {
		if _, err := tx.Exec(
			"INSERT INTO phrases (categoria, subcategoria, ordem, nome, conteudo) VALUES (?, ?, ?, ?, ?)",
			category, subcategory, p.Ordem, p.Nome, p.Conteudo,
		); err != nil {
			return fmt.Errorf("failed to insert cache entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cache transaction: %w", err)
	}
	return nil
}

// Categories returns the distinct cached category names in order.
func (m *Manager) Categories() ([]string, error) {
	return m.queryNames("SELECT DISTINCT categoria FROM phrases ORDER BY categoria")
}

// Subcategories returns the distinct cached subcategory names for a category.
func (m *Manager) Subcategories(category string) ([]string, error) {
	return m.queryNames(
		"SELECT DISTINCT subcategoria FROM phrases WHERE categoria = ? ORDER BY subcategoria",
		category,
	)
}

// Phrases returns the cached phrases for a category/subcategory pair,
// ordered by the backend's ordem field.
func (m *Manager) Phrases(category, subcategory string) ([]api.Phrase, error) {
	rows, err := m.db.Query(
		"SELECT ordem, nome, conteudo FROM phrases WHERE categoria = ? AND subcategoria = ? ORDER BY ordem",
		category, subcategory,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached phrases: %w", err)
	}
	defer rows.Close()

	var phrases []api.Phrase
	for rows.Next() {
		var p api.Phrase
		if err := rows.Scan(&p.Ordem, &p.Nome, &p.Conteudo); err != nil {
			return nil, fmt.Errorf("failed to scan cached phrase: %w", err)
		}
		phrases = append(phrases, p)
	}
	return phrases, rows.Err()
}

func (m *Manager) queryNames(query string, args ...any) ([]string, error) {
	rows, err := m.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan cache row: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the cache database.
func (m *Manager) Close() error {
	return m.db.Close()
}
