package events

import "github.com/atomicstack/tabstrip/internal/logging"

type HostTracer struct{}

var Host = HostTracer{}

func (HostTracer) Selected(from, to int) {
	logging.Trace("host.selected", map[string]interface{}{"from": from, "to": to})
}

func (HostTracer) Reconcile(rejected, current int, reason string) {
	logging.Trace("host.reconcile", map[string]interface{}{"rejected": rejected, "current": current, "reason": reason})
}

func (HostTracer) Dropped(kind string) {
	logging.Trace("host.event.dropped", map[string]interface{}{"kind": kind})
}
