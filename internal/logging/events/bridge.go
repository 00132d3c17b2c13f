package events

import "github.com/atomicstack/tabstrip/internal/logging"

type BridgeTracer struct{}

var Bridge = BridgeTracer{}

func (BridgeTracer) Invoke(id, side, channel, method string) {
	logging.Trace("bridge.invoke", map[string]interface{}{"id": id, "from": side, "channel": channel, "method": method})
}

func (BridgeTracer) Send(id, side, channel, method string) {
	logging.Trace("bridge.send", map[string]interface{}{"id": id, "from": side, "channel": channel, "method": method})
}

func (BridgeTracer) Deliver(id, side, method string) {
	logging.Trace("bridge.deliver", map[string]interface{}{"id": id, "to": side, "method": method})
}

func (BridgeTracer) Reply(id, method string, err error) {
	payload := map[string]interface{}{"id": id, "method": method}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("bridge.reply", payload)
}

func (BridgeTracer) Reject(method string, err error) {
	logging.Trace("bridge.reject", map[string]interface{}{"method": method, "error": err.Error()})
}

func (BridgeTracer) Undeliverable(id, channel, method string) {
	logging.Trace("bridge.undeliverable", map[string]interface{}{"id": id, "channel": channel, "method": method})
}

func (BridgeTracer) Register(side, channel string, methods []string) {
	logging.Trace("bridge.register", map[string]interface{}{"side": side, "channel": channel, "methods": methods})
}
