package ui

import tea "github.com/charmbracelet/bubbletea"

// Harness drives the UI model programmatically for integration tests. It
// runs commands inline, so it never starts the blocking bridge event pump;
// DrainBridge feeds already queued endpoint events instead.
type Harness struct {
	model *Model
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	h.Run(h.update(msg))
}

// Run executes cmd and every command that follows from it. Batches are
// expanded in order.
func (h *Harness) Run(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				h.Run(c)
			}
			return
		}
		cmd = h.update(msg)
	}
}

// DrainBridge delivers endpoint events that are already queued and reports
// how many were applied.
func (h *Harness) DrainBridge() int {
	if h.model == nil || h.model.host == nil {
		return 0
	}
	n := 0
	for {
		select {
		case evt, ok := <-h.model.host.Events():
			if !ok {
				return n
			}
			// The returned command re-arms the pump; drop it.
			h.update(bridgeEventMsg{event: evt})
			n++
		default:
			return n
		}
	}
}

func (h *Harness) update(msg tea.Msg) tea.Cmd {
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	return cmd
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
