package native

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	degradedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	focusedPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Padding(0, 1)

	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	helpBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// View renders the browser.
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	header := headerStyle.Render("frasecli — phrase browser")
	if m.deps.Degraded != "" {
		header += "  " + degradedStyle.Render(m.deps.Degraded)
	}

	listWidth := m.width / 5
	if listWidth < 16 {
		listWidth = 16
	}
	paneHeight := m.height - 6
	if paneHeight < 3 {
		paneHeight = 3
	}

	cats := m.renderPane("Categories", &m.categories, focusCategories, listWidth, paneHeight)
	subs := m.renderPane("Subcategories", &m.subcategories, focusSubcategories, listWidth, paneHeight)
	phrases := m.renderPane("Phrases", &m.phraseNames, focusPhrases, listWidth, paneHeight)

	previewWidth := m.width - 3*(listWidth+4) - 4
	if previewWidth < 20 {
		previewWidth = 20
	}
	m.preview.Width = previewWidth
	m.preview.Height = paneHeight
	previewBox := paneStyle.Width(previewWidth + 2).Height(paneHeight + 1).Render(
		paneTitleStyle.Render("Preview") + "\n" + m.preview.View(),
	)

	columns := lipgloss.JoinHorizontal(lipgloss.Top, cats, subs, phrases, previewBox)

	return lipgloss.JoinVertical(lipgloss.Left, header, columns, m.renderFooter())
}

func (m *Model) renderPane(title string, p *pane, f focus, width, height int) string {
	style := paneStyle
	if m.focus == f {
		style = focusedPaneStyle
	}

	items := p.visibleItems()
	visible := height - 1
	if visible < 1 {
		visible = 1
	}

	// Scroll window keeps the cursor visible.
	start := 0
	if p.index >= visible {
		start = p.index - visible + 1
	}
	end := start + visible
	if end > len(items) {
		end = len(items)
	}

	var b strings.Builder
	b.WriteString(paneTitleStyle.Render(title))
	b.WriteString("\n")
	for i := start; i < end; i++ {
		line := truncate(items[i], width)
		if i == p.index {
			b.WriteString(selectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	return style.Width(width + 2).Height(height + 1).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) renderFooter() string {
	var lines []string

	if m.searching {
		lines = append(lines, "/"+m.searchQuery+"█")
	} else if m.errorMsg != "" {
		lines = append(lines, errorBarStyle.Render("✗ "+m.errorMsg))
	} else if m.loading {
		lines = append(lines, statusBarStyle.Render("Loading..."))
	} else if m.statusMsg != "" {
		lines = append(lines, statusBarStyle.Render(m.statusMsg))
	} else {
		lines = append(lines, "")
	}

	help := "j/k: move  •  tab: pane  •  enter: select  •  /: filter  •  y: copy  •  t: type  •  s: sync  •  q: quit"
	if !m.deps.Caps.AutoType.Available {
		help += degradedStyle.Render(fmt.Sprintf("  [auto-type off: %s]", m.deps.Caps.AutoType.Reason))
	}
	lines = append(lines, helpBarStyle.Render(help))

	return strings.Join(lines, "\n")
}

func (m *Model) resizePreview() {
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	m.preview.Height = h
}

func truncate(s string, width int) string {
	if width <= 3 || len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}
