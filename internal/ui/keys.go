package ui

import (
	"context"
	"fmt"

	"github.com/atomicstack/tabstrip/internal/logging/events"
	"github.com/atomicstack/tabstrip/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// stripTapMsg reports a simulated tap on the strip.
type stripTapMsg struct {
	index     int
	delivered bool
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	key := keyMsg.String()
	events.UI.Key(key)
	switch key {
	case "ctrl+c", "q", "esc":
		return tea.Quit
	case "left", "h", "shift+tab":
		return m.moveActive(-1)
	case "right", "l", "tab":
		return m.moveActive(1)
	case "home", "g":
		return m.jumpTo(0)
	case "end", "G":
		return m.jumpTo(len(m.hostTabs()) - 1)
	case "<", ",":
		m.window.Scroll(-1)
		return nil
	case ">", ".":
		m.window.Scroll(1)
		return nil
	case "r":
		return m.restoreCmd()
	case "s":
		return m.resumeCmd()
	case "/":
		return m.openSearch()
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return m.tapCmd(int(key[0] - '1'))
	}
	return nil
}

func (m *Model) hostTabs() []string {
	if m.host == nil {
		return nil
	}
	return m.host.Tabs()
}

func (m *Model) moveActive(delta int) tea.Cmd {
	n := len(m.hostTabs())
	if n == 0 {
		return nil
	}
	next := (m.host.Active() + delta + n) % n
	return m.jumpTo(next)
}

func (m *Model) jumpTo(index int) tea.Cmd {
	if m.host == nil || index < 0 {
		return nil
	}
	from := m.host.Active()
	if index == from {
		return nil
	}
	events.UI.TabSwitch(from, index)
	m.clearStatus()
	endpoint := m.host
	return m.execute(command.Request{
		ID:    "update-tab",
		Label: fmt.Sprintf("Switch to tab %d", index+1),
		Run: func(ctx context.Context) error {
			return endpoint.SetActive(ctx, index)
		},
	})
}

func (m *Model) setupCmd() tea.Cmd {
	if m.host == nil || len(m.tabs) == 0 {
		return nil
	}
	endpoint := m.host
	tabs := append([]string(nil), m.tabs...)
	index := m.tabIndex
	return m.execute(command.Request{
		ID:    "setup",
		Label: "Set up strip",
		Run: func(ctx context.Context) error {
			return endpoint.Setup(ctx, tabs, index)
		},
	})
}

func (m *Model) restoreCmd() tea.Cmd {
	if m.host == nil {
		return nil
	}
	m.clearStatus()
	endpoint := m.host
	return m.execute(command.Request{
		ID:    "restore",
		Label: "Restore default strip",
		Run:   endpoint.Restore,
	})
}

func (m *Model) resumeCmd() tea.Cmd {
	if m.host == nil || m.host.Ready() {
		return nil
	}
	m.clearStatus()
	endpoint := m.host
	return m.execute(command.Request{
		ID:    "resume",
		Label: "Resume strip",
		Run:   endpoint.Resume,
	})
}

func (m *Model) execute(req command.Request) tea.Cmd {
	m.pending = req.Label
	return m.bus.Execute(req)
}

func (m *Model) tapCmd(index int) tea.Cmd {
	if m.window == nil {
		return nil
	}
	window := m.window
	return func() tea.Msg {
		events.UI.StripTap(index)
		return stripTapMsg{index: index, delivered: window.Tap(index)}
	}
}

func (m *Model) handleStripTapMsg(msg tea.Msg) tea.Cmd {
	tap, ok := msg.(stripTapMsg)
	if !ok {
		return nil
	}
	if !tap.delivered {
		m.infoMsg = fmt.Sprintf("Nothing to tap at position %d", tap.index+1)
	}
	return nil
}

func (m *Model) handleResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(command.ResultMsg)
	if !ok {
		return nil
	}
	m.pending = ""
	if res.Err != nil {
		events.Action.Error(res.Err)
		m.errMsg = fmt.Sprintf("%s: %v", res.Label, res.Err)
		return nil
	}
	m.errMsg = ""
	if m.verbose {
		events.Action.Success(res.Label)
		m.infoMsg = res.Label
	}
	return nil
}
