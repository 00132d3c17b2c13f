package dispatcher

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/atomicstack/tabstrip/internal/logging/events"
	"github.com/atomicstack/tabstrip/internal/protocol"
)

// HandlerFunc applies one decoded method call and returns its result value.
type HandlerFunc func(ctx context.Context, args json.RawMessage) (interface{}, error)

// Dispatcher routes method calls to handlers registered by method name.
type Dispatcher struct {
	handlers map[string]HandlerFunc
}

func New() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]HandlerFunc)}
}

// Register binds method to fn, replacing any previous handler.
func (d *Dispatcher) Register(method string, fn HandlerFunc) *Dispatcher {
	d.handlers[method] = fn
	return d
}

// Methods lists the registered method names in sorted order.
func (d *Dispatcher) Methods() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Handle runs the handler for call.Method. Unknown methods are reported as
// not implemented.
func (d *Dispatcher) Handle(ctx context.Context, call protocol.MethodCall) (interface{}, error) {
	fn, ok := d.handlers[call.Method]
	if !ok || fn == nil {
		err := protocol.NotImplemented(call.Method)
		events.Bridge.Reject(call.Method, err)
		return nil, err
	}
	result, err := fn(ctx, call.Arguments)
	if err != nil {
		events.Bridge.Reject(call.Method, err)
		return nil, err
	}
	return result, nil
}
