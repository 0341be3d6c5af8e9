package native

import "github.com/sahilm/fuzzy"

// pane is one selectable column of names. view holds the indices of the
// items currently visible (all of them, or the fuzzy matches when a filter
// is applied); index points into view.
type pane struct {
	items []string
	view  []int
	index int
}

// setItems replaces the pane contents and resets cursor and filter.
func (p *pane) setItems(items []string) {
	p.items = items
	p.index = 0
	p.showAll()
}

func (p *pane) showAll() {
	p.view = make([]int, len(p.items))
	for i := range p.items {
		p.view[i] = i
	}
	if p.index >= len(p.view) {
		p.index = 0
	}
}

// filter narrows the view to the fuzzy matches for query, best match first.
// An empty query restores the full list.
func (p *pane) filter(query string) {
	if query == "" {
		p.showAll()
		return
	}
	matches := fuzzy.Find(query, p.items)
	p.view = make([]int, len(matches))
	for i, m := range matches {
		p.view[i] = m.Index
	}
	p.index = 0
}

func (p *pane) up() {
	if p.index > 0 {
		p.index--
	}
}

func (p *pane) down() {
	if p.index < len(p.view)-1 {
		p.index++
	}
}

// selected returns the highlighted item, if any.
func (p *pane) selected() (string, bool) {
	if p.index < 0 || p.index >= len(p.view) {
		return "", false
	}
	return p.items[p.view[p.index]], true
}

// visibleItems returns the names currently shown, in view order.
func (p *pane) visibleItems() []string {
	out := make([]string, len(p.view))
	for i, idx := range p.view {
		out[i] = p.items[idx]
	}
	return out
}
