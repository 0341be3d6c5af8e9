package cache

import (
	"context"
	"fmt"

	"github.com/bmoreira/frasecli/internal/api"
)

// SyncFrom walks the backend's full catalog and replaces the cached copy,
// pair by pair. It returns the number of phrases stored. A failure partway
// leaves earlier pairs updated; the next sync repairs the rest.
func (m *Manager) SyncFrom(ctx context.Context, client *api.Client) (int, error) {
	categories, err := client.Categories(ctx)
	if err != nil {
		return 0, fmt.Errorf("sync failed: %w", err)
	}

	total := 0
	for _, cat := range categories {
		subs, err := client.Subcategories(ctx, cat)
		if err != nil {
			return total, fmt.Errorf("sync failed at %q: %w", cat, err)
		}
		for _, sub := range subs {
			phrases, err := client.Phrases(ctx, cat, sub)
			if err != nil {
				return total, fmt.Errorf("sync failed at %q/%q: %w", cat, sub, err)
			}
			if err := m.Put(cat, sub, phrases); err != nil {
				return total, fmt.Errorf("sync failed at %q/%q: %w", cat, sub, err)
			}
			total += len(phrases)
		}
	}
	return total, nil
}
