package command

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestExecuteReportsResult(t *testing.T) {
	bus := New(0)
	boom := errors.New("boom")
	msg := bus.Execute(Request{ID: "restore", Label: "Restore strip", Run: func(context.Context) error { return boom }})()
	res, ok := msg.(ResultMsg)
	if !ok {
		t.Fatalf("expected ResultMsg, got %T", msg)
	}
	if res.ID != "restore" || !errors.Is(res.Err, boom) {
		t.Fatalf("unexpected result %#v", res)
	}
}

func TestExecuteAppliesTimeout(t *testing.T) {
	bus := New(10 * time.Millisecond)
	msg := bus.Execute(Request{ID: "slow", Run: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}})()
	if res := msg.(ResultMsg); !errors.Is(res.Err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", res.Err)
	}
}

func TestExecuteSkipsNilRun(t *testing.T) {
	if msg := New(0).Execute(Request{ID: "noop"})(); msg != nil {
		t.Fatalf("expected nil message, got %#v", msg)
	}
}
