package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/atomicstack/tabstrip/internal/protocol"
)

func TestHandleRoutesByMethodName(t *testing.T) {
	var got json.RawMessage
	d := New().Register(protocol.MethodUpdateTab, func(_ context.Context, args json.RawMessage) (interface{}, error) {
		got = args
		return "ok", nil
	})
	result, err := d.Handle(context.Background(), protocol.MethodCall{Method: protocol.MethodUpdateTab, Arguments: json.RawMessage(`{"tabIndex":1}`)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Fatalf("expected handler result, got %v", result)
	}
	if string(got) != `{"tabIndex":1}` {
		t.Fatalf("expected raw args forwarded, got %s", got)
	}
}

func TestHandleUnknownMethodIsNotImplemented(t *testing.T) {
	d := New()
	_, err := d.Handle(context.Background(), protocol.MethodCall{Method: "flashTouchBar"})
	if !errors.Is(err, protocol.ErrNotImplemented) {
		t.Fatalf("expected not implemented, got %v", err)
	}
}

func TestMethodsSorted(t *testing.T) {
	noop := func(context.Context, json.RawMessage) (interface{}, error) { return nil, nil }
	d := New().
		Register(protocol.MethodUpdateTab, noop).
		Register(protocol.MethodRestoreDefault, noop).
		Register(protocol.MethodSetup, noop)
	got := d.Methods()
	want := []string{protocol.MethodRestoreDefault, protocol.MethodSetup, protocol.MethodUpdateTab}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
