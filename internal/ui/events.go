package ui

import (
	"fmt"

	"github.com/atomicstack/tabstrip/internal/host"
	tea "github.com/charmbracelet/bubbletea"
)

type bridgeEventMsg struct {
	event host.Event
}

type bridgeDoneMsg struct{}

func waitForBridgeEvent(endpoint *host.Endpoint) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-endpoint.Events()
		if !ok {
			return bridgeDoneMsg{}
		}
		return bridgeEventMsg{event: evt}
	}
}

func (m *Model) handleBridgeEventMsg(msg tea.Msg) tea.Cmd {
	evtMsg, ok := msg.(bridgeEventMsg)
	if !ok {
		return nil
	}
	m.applyBridgeEvent(evtMsg.event)
	return waitForBridgeEvent(m.host)
}

func (m *Model) applyBridgeEvent(evt host.Event) {
	switch evt.Kind {
	case host.KindSelected:
		if m.verbose {
			m.infoMsg = fmt.Sprintf("Strip selected %s", m.tabLabel(evt.Index))
		}
	case host.KindReconciled:
		if evt.Err != nil {
			m.errMsg = fmt.Sprintf("Strip out of sync: %v", evt.Err)
			return
		}
		m.infoMsg = fmt.Sprintf("Kept %s active", m.tabLabel(evt.Index))
	case host.KindRestored:
		m.infoMsg = "Default strip restored (s to resume)"
	case host.KindSetup:
		if m.verbose {
			m.infoMsg = fmt.Sprintf("Strip ready with %d tabs", len(m.hostTabs()))
		}
	}
}

func (m *Model) handleBridgeDoneMsg(tea.Msg) tea.Cmd {
	return nil
}

func (m *Model) tabLabel(index int) string {
	tabs := m.hostTabs()
	if index < 0 || index >= len(tabs) {
		return fmt.Sprintf("tab %d", index+1)
	}
	return fmt.Sprintf("%q", tabs[index])
}
