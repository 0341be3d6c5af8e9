package native

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Data loads run as commands so the event loop stays responsive. Each one
// tries the backend first and falls back to the local cache, reporting which
// source answered.

func (m *Model) loadCategories() tea.Cmd {
	client, store := m.deps.Client, m.deps.Cache
	return func() tea.Msg {
		names, err := client.Categories(context.Background())
		if err == nil {
			return categoriesLoadedMsg{names: names}
		}
		cached, cacheErr := store.Categories()
		if cacheErr != nil || len(cached) == 0 {
			return categoriesLoadedMsg{err: err}
		}
		return categoriesLoadedMsg{names: cached, fromCache: true}
	}
}

func (m *Model) loadSubcategories(category string) tea.Cmd {
	client, store := m.deps.Client, m.deps.Cache
	return func() tea.Msg {
		names, err := client.Subcategories(context.Background(), category)
		if err == nil {
			return subcategoriesLoadedMsg{category: category, names: names}
		}
		cached, cacheErr := store.Subcategories(category)
		if cacheErr != nil || len(cached) == 0 {
			return subcategoriesLoadedMsg{category: category, err: err}
		}
		return subcategoriesLoadedMsg{category: category, names: cached, fromCache: true}
	}
}

func (m *Model) loadPhrases(category, subcategory string) tea.Cmd {
	client, store := m.deps.Client, m.deps.Cache
	return func() tea.Msg {
		phrases, err := client.Phrases(context.Background(), category, subcategory)
		if err == nil {
			// Successful fetches refresh the cache opportunistically; a
			// write failure is not worth interrupting browsing for.
			_ = store.Put(category, subcategory, phrases)
			return phrasesLoadedMsg{category: category, subcategory: subcategory, phrases: phrases}
		}
		cached, cacheErr := store.Phrases(category, subcategory)
		if cacheErr != nil || len(cached) == 0 {
			return phrasesLoadedMsg{
				category:    category,
				subcategory: subcategory,
				err:         fmt.Errorf("%w (no cached copy)", err),
			}
		}
		return phrasesLoadedMsg{category: category, subcategory: subcategory, phrases: cached, fromCache: true}
	}
}
