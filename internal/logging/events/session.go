package events

import "github.com/atomicstack/tabstrip/internal/logging"

type SessionTracer struct{}

var Session = SessionTracer{}

func (SessionTracer) Setup(tabs []string, index int, replaced bool) {
	logging.Trace("session.setup", map[string]interface{}{"tabs": tabs, "index": index, "replaced": replaced})
}

func (SessionTracer) Update(from, to int) {
	logging.Trace("session.update", map[string]interface{}{"from": from, "to": to})
}

func (SessionTracer) Select(from, to int) {
	logging.Trace("session.select", map[string]interface{}{"from": from, "to": to})
}

func (SessionTracer) Restore() {
	logging.Trace("session.restore", nil)
}

// NoSession records a command that arrived before any setup.
func (SessionTracer) NoSession(method string) {
	logging.Trace("session.none", map[string]interface{}{"method": method})
}

func (SessionTracer) Attach(window string) {
	logging.Trace("session.attach", map[string]interface{}{"window": window})
}

func (SessionTracer) NoWindow() {
	logging.Trace("session.window.missing", nil)
}
