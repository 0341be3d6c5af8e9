// Package native is the terminal phrase browser used when the embedded view
// is unavailable or disabled. It owns the category/subcategory/phrase
// cascade and dispatches auto-type and cache-sync work to the coordinator.
package native

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bmoreira/frasecli/internal/api"
	"github.com/bmoreira/frasecli/internal/cache"
	"github.com/bmoreira/frasecli/internal/capability"
	"github.com/bmoreira/frasecli/internal/session"
	"github.com/bmoreira/frasecli/internal/tasks"
	"github.com/bmoreira/frasecli/internal/ui"
)

// focus identifies which pane receives navigation keys.
type focus int

const (
	focusCategories focus = iota
	focusSubcategories
	focusPhrases
)

// Deps carries everything the browser needs. All fields are required except
// Degraded, which is the notice shown after an embedded-view failure.
type Deps struct {
	Client      *api.Client
	Cache       *cache.Manager
	Coordinator *tasks.Coordinator
	Session     *session.Session
	Holder      *session.SnapshotHolder
	Caps        capability.Set
	TypeAction  tasks.Action
	SyncAction  tasks.Action
	Degraded    string
}

// Model is the browser state.
type Model struct {
	deps Deps

	categories    pane
	subcategories pane
	phraseNames   pane
	phrases       []api.Phrase
	preview       viewport.Model

	focus       focus
	searching   bool
	searchQuery string

	width  int
	height int

	loading       bool
	statusMsg     string
	fullStatusMsg string
	errorMsg      string
	fullErrorMsg  string

	outcome ui.Outcome
}

func newModel(deps Deps) *Model {
	return &Model{
		deps:    deps,
		preview: viewport.New(0, 0),
		outcome: ui.Outcome{Kind: ui.OutcomeQuit},
	}
}

// Init kicks off the initial category load.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	return m.loadCategories()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePreview()

	case categoriesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.setErrorMessage(msg.err.Error())
			return m, nil
		}
		m.categories.setItems(msg.names)
		if msg.fromCache {
			m.setStatusMessage(fmt.Sprintf("Loaded %d categories (cached)", len(msg.names)))
		} else {
			m.setStatusMessage(fmt.Sprintf("Loaded %d categories", len(msg.names)))
		}

	case subcategoriesLoadedMsg:
		// A selection made while this fetch was in flight wins; stale
		// results for a different category are dropped.
		if msg.category != m.deps.Session.Category {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.setErrorMessage(msg.err.Error())
			return m, nil
		}
		m.subcategories.setItems(msg.names)
		if msg.fromCache {
			m.setStatusMessage(fmt.Sprintf("Loaded %d subcategories (cached)", len(msg.names)))
		} else {
			m.setStatusMessage(fmt.Sprintf("Loaded %d subcategories", len(msg.names)))
		}

	case phrasesLoadedMsg:
		if msg.category != m.deps.Session.Category || msg.subcategory != m.deps.Session.Subcategory {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.setErrorMessage(msg.err.Error())
			return m, nil
		}
		m.phrases = msg.phrases
		names := make([]string, len(msg.phrases))
		for i, p := range msg.phrases {
			names[i] = p.Nome
		}
		m.phraseNames.setItems(names)
		if msg.fromCache {
			m.setStatusMessage(fmt.Sprintf("Loaded %d phrases (cached)", len(msg.phrases)))
		} else {
			m.setStatusMessage(fmt.Sprintf("Loaded %d phrases", len(msg.phrases)))
		}

	case tasks.Completion:
		if msg.Err != nil {
			m.setErrorMessage(msg.Err.Error())
		} else {
			m.setStatusMessage(msg.Detail)
		}
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.outcome = ui.Outcome{Kind: ui.OutcomeQuit}
		return tea.Quit

	case "tab", "l", "right":
		m.focusNext()

	case "shift+tab", "h", "left":
		m.focusPrev()

	case "j", "down":
		m.focusedPane().down()

	case "k", "up":
		m.focusedPane().up()

	case "pgdown", "ctrl+d":
		m.preview.HalfViewDown()

	case "pgup", "ctrl+u":
		m.preview.HalfViewUp()

	case "/":
		m.searching = true
		m.searchQuery = ""

	case "enter":
		return m.selectCurrent()

	case "y":
		return m.copySelected()

	case "t":
		return m.dispatchTypePhrase()

	case "s":
		m.deps.Coordinator.Submit(m.deps.SyncAction, m.deps.Session.Snapshot())
		m.setStatusMessage("Cache sync started")
	}

	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchQuery = ""
		m.focusedPane().showAll()

	case "enter":
		// Keep the filtered view; selection keys operate on it.
		m.searching = false

	case "backspace":
		if len(m.searchQuery) > 0 {
			m.searchQuery = m.searchQuery[:len(m.searchQuery)-1]
			m.focusedPane().filter(m.searchQuery)
		}

	default:
		if msg.Type == tea.KeyRunes {
			m.searchQuery += string(msg.Runes)
			m.focusedPane().filter(m.searchQuery)
		}
	}
	return nil
}

// selectCurrent applies the highlighted item of the focused pane. Clearing
// downstream selections always happens before the fetch for the new level is
// issued, so a stale in-flight result can never resurrect them.
func (m *Model) selectCurrent() tea.Cmd {
	switch m.focus {
	case focusCategories:
		name, ok := m.categories.selected()
		if !ok {
			return nil
		}
		sess := m.deps.Session
		sess.Category = name
		sess.Subcategory = ""
		sess.Phrase = ""
		sess.PhraseContent = ""
		m.subcategories.setItems(nil)
		m.phrases = nil
		m.phraseNames.setItems(nil)
		m.preview.SetContent("")
		m.publishSnapshot()
		m.loading = true
		m.focus = focusSubcategories
		return m.loadSubcategories(name)

	case focusSubcategories:
		name, ok := m.subcategories.selected()
		if !ok {
			return nil
		}
		sess := m.deps.Session
		if sess.Category == "" {
			return nil
		}
		sess.Subcategory = name
		sess.Phrase = ""
		sess.PhraseContent = ""
		m.phrases = nil
		m.phraseNames.setItems(nil)
		m.preview.SetContent("")
		m.publishSnapshot()
		m.loading = true
		m.focus = focusPhrases
		return m.loadPhrases(sess.Category, name)

	case focusPhrases:
		if m.phraseNames.index < 0 || m.phraseNames.index >= len(m.phraseNames.view) {
			return nil
		}
		p := m.phrases[m.phraseNames.view[m.phraseNames.index]]
		sess := m.deps.Session
		sess.Phrase = p.Nome
		sess.PhraseContent = p.Conteudo
		m.preview.SetContent(p.Conteudo)
		m.preview.GotoTop()
		m.publishSnapshot()
		m.setStatusMessage(fmt.Sprintf("Selected %q", p.Nome))
	}
	return nil
}

func (m *Model) copySelected() tea.Cmd {
	content := m.deps.Session.PhraseContent
	if content == "" {
		m.setErrorMessage("no phrase selected")
		return nil
	}
	if err := clipboard.WriteAll(content); err != nil {
		m.setErrorMessage(fmt.Sprintf("failed to copy: %v", err))
		return nil
	}
	m.setStatusMessage(fmt.Sprintf("Copied %q", m.deps.Session.Phrase))
	return nil
}

func (m *Model) dispatchTypePhrase() tea.Cmd {
	if !m.deps.Caps.AutoType.Available {
		m.setErrorMessage("auto-type unavailable: " + m.deps.Caps.AutoType.Reason)
		return nil
	}
	if m.deps.Session.PhraseContent == "" {
		m.setErrorMessage("no phrase selected")
		return nil
	}
	m.deps.Coordinator.Submit(m.deps.TypeAction, m.deps.Session.Snapshot())
	m.setStatusMessage("Typing scheduled — focus the target window")
	return nil
}

func (m *Model) publishSnapshot() {
	m.deps.Holder.Publish(m.deps.Session.Snapshot())
}

func (m *Model) focusedPane() *pane {
	switch m.focus {
	case focusSubcategories:
		return &m.subcategories
	case focusPhrases:
		return &m.phraseNames
	default:
		return &m.categories
	}
}

func (m *Model) focusNext() {
	if m.focus < focusPhrases {
		m.focus++
	}
}

func (m *Model) focusPrev() {
	if m.focus > focusCategories {
		m.focus--
	}
}

// Outcome reports why the run loop ended.
func (m *Model) Outcome() ui.Outcome {
	return m.outcome
}

// Helper methods for setting footer messages
func (m *Model) setStatusMessage(msg string) {
	m.fullStatusMsg = msg
	m.errorMsg = ""
	m.fullErrorMsg = ""
	if len(msg) > 100 {
		m.statusMsg = msg[:97] + "..."
	} else {
		m.statusMsg = msg
	}
}

func (m *Model) setErrorMessage(msg string) {
	m.fullErrorMsg = msg
	if len(msg) > 100 {
		m.errorMsg = msg[:97] + "..."
	} else {
		m.errorMsg = msg
	}
}

// Custom message types
type categoriesLoadedMsg struct {
	names     []string
	fromCache bool
	err       error
}

type subcategoriesLoadedMsg struct {
	category  string
	names     []string
	fromCache bool
	err       error
}

type phrasesLoadedMsg struct {
	category    string
	subcategory string
	phrases     []api.Phrase
	fromCache   bool
	err         error
}
