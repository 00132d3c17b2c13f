package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tabstrip/internal/format/table"
	"github.com/atomicstack/tabstrip/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const footerHint = "←/→ switch · 1-9 tap strip · </> scroll · / find · r restore · s resume · q quit"

// View renders the tab row, the active tab body, status lines and the strip.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	top := []string{m.renderTabRow(width), ""}
	top = append(top, m.renderBody(width)...)

	bottom := []string{}
	if line := m.renderStatus(width); line != "" {
		bottom = append(bottom, line)
	}
	if m.mode == ModeSearch {
		bottom = append(bottom, clip(m.search.View(), width))
	}
	if m.window != nil {
		bottom = append(bottom, m.window.View(width))
	}
	if m.showFooter {
		bottom = append(bottom, theme.Render(styles.Footer, clip(footerHint, width)))
	}

	if m.height > 0 {
		for len(top)+len(bottom) < m.height {
			top = append(top, "")
		}
		if over := len(top) + len(bottom) - m.height; over > 0 && over < len(top) {
			top = top[:len(top)-over]
		}
	}
	return strings.Join(append(top, bottom...), "\n")
}

func (m *Model) renderTabRow(width int) string {
	tabs := m.hostTabs()
	if len(tabs) == 0 {
		return theme.Render(styles.Header, clip("No tabs", width))
	}
	active := m.host.Active()
	sep := theme.Render(styles.TabSeparator, "│")
	parts := make([]string, 0, len(tabs))
	for i, label := range tabs {
		style := styles.Tab
		if i == active {
			style = styles.ActiveTab
		}
		parts = append(parts, theme.Render(style, fmt.Sprintf("%d %s", i+1, label)))
	}
	row := strings.Join(parts, sep)
	if lipgloss.Width(row) > width {
		row = truncate.StringWithTail(row, uint(width), "…")
	}
	return row
}

func (m *Model) renderBody(width int) []string {
	tabs := m.hostTabs()
	if len(tabs) == 0 {
		return nil
	}
	active := m.host.Active()
	if active < 0 || active >= len(tabs) {
		return nil
	}
	lines := []string{
		theme.Render(styles.Header, clip(tabs[active], width)),
		theme.Render(styles.Body, clip(fmt.Sprintf("Tab %d of %d", active+1, len(tabs)), width)),
		"",
	}
	for _, row := range m.syncRows(tabs, active) {
		lines = append(lines, theme.Render(styles.Body, clip(row, width)))
	}
	return lines
}

// syncRows lays out the host copy next to what the strip currently shows.
func (m *Model) syncRows(tabs []string, active int) []string {
	rows := [][]string{{"host", fmt.Sprintf("%d", active+1), tabs[active]}}
	stripRow := []string{"strip", "-", "default"}
	if m.window != nil {
		if index, label, ok := m.window.Emphasized(); ok {
			stripRow = []string{"strip", fmt.Sprintf("%d", index+1), label}
		}
	}
	rows = append(rows, stripRow)
	return table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignLeft})
}

func (m *Model) renderStatus(width int) string {
	switch {
	case m.errMsg != "":
		return theme.Render(styles.Error, clip(m.errMsg, width))
	case m.pending != "":
		return theme.Render(styles.Info, clip(m.pending+"…", width))
	case m.infoMsg != "":
		return theme.Render(styles.Info, clip(m.infoMsg, width))
	}
	return ""
}

func clip(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
