package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tabstrip/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) openSearch() tea.Cmd {
	if len(m.hostTabs()) == 0 {
		return nil
	}
	events.Search.Open()
	m.mode = ModeSearch
	m.search.SetValue("")
	m.search.Focus()
	return nil
}

func (m *Model) closeSearch() {
	m.mode = ModeTabs
	m.search.Blur()
	m.search.SetValue("")
}

// handleSearch owns key input while the search prompt is open. Other
// messages fall through to the regular handlers.
func (m *Model) handleSearch(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	switch keyMsg.Type {
	case tea.KeyCtrlC:
		return true, tea.Quit
	case tea.KeyEsc:
		events.Search.Cancel(m.search.Value())
		m.closeSearch()
		return true, nil
	case tea.KeyEnter:
		return true, m.submitSearch()
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return true, cmd
}

func (m *Model) submitSearch() tea.Cmd {
	query := strings.TrimSpace(m.search.Value())
	m.closeSearch()
	if query == "" {
		return nil
	}
	index, ok := m.host.Find(query)
	events.Search.Submit(query, index)
	if !ok {
		m.errMsg = fmt.Sprintf("No tab matches %q", query)
		return nil
	}
	return m.jumpTo(index)
}
