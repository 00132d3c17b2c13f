package channel

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/atomicstack/tabstrip/internal/protocol"
)

func newTestMessenger(t *testing.T) *Messenger {
	t.Helper()
	m := NewMessenger(4)
	t.Cleanup(m.Close)
	return m
}

func TestInvokeRoundTrip(t *testing.T) {
	m := newTestMessenger(t)
	native := m.Channel(SideNative, protocol.ChannelName)
	native.SetMethodCallHandler(func(_ context.Context, call protocol.MethodCall) (interface{}, error) {
		args, err := protocol.DecodeUpdate(call.Arguments)
		if err != nil {
			return nil, err
		}
		return args.TabIndex * 10, nil
	})
	host := m.Channel(SideHost, protocol.ChannelName)

	raw, err := host.Invoke(context.Background(), protocol.MethodUpdateTab, protocol.UpdateArgs{TabIndex: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got int
	if err := json.Unmarshal(raw, &got); err != nil || got != 40 {
		t.Fatalf("expected 40, got %s (%v)", raw, err)
	}
}

func TestInvokeCarriesHandlerErrors(t *testing.T) {
	m := newTestMessenger(t)
	m.Channel(SideNative, protocol.ChannelName).SetMethodCallHandler(func(_ context.Context, call protocol.MethodCall) (interface{}, error) {
		_, err := protocol.DecodeUpdate(call.Arguments)
		return nil, err
	})
	host := m.Channel(SideHost, protocol.ChannelName)
	_, err := host.Invoke(context.Background(), protocol.MethodUpdateTab, map[string]string{"tabIndex": "two"})
	if !errors.Is(err, protocol.ErrInvalidArguments) {
		t.Fatalf("expected invalid arguments, got %v", err)
	}
}

func TestChannelHandlesArePersistent(t *testing.T) {
	m := newTestMessenger(t)
	first := m.Channel(SideNative, protocol.ChannelName)
	second := m.Channel(SideNative, protocol.ChannelName)
	if first != second {
		t.Fatalf("expected the same handle for repeated registration")
	}
	if first.Side() != SideNative || first.Name() != protocol.ChannelName {
		t.Fatalf("unexpected handle identity %s/%s", first.Side(), first.Name())
	}
}

func TestMismatchedChannelNameIsUndeliverable(t *testing.T) {
	m := newTestMessenger(t)
	m.Channel(SideNative, protocol.ChannelName).SetMethodCallHandler(func(context.Context, protocol.MethodCall) (interface{}, error) {
		t.Errorf("handler must not run for a different channel name")
		return nil, nil
	})
	host := m.Channel(SideHost, "toothfile.touchbar2")
	if _, err := host.Invoke(context.Background(), protocol.MethodRestoreDefault, nil); !errors.Is(err, protocol.ErrUndeliverable) {
		t.Fatalf("expected undeliverable, got %v", err)
	}
	if err := host.Send(context.Background(), protocol.MethodRestoreDefault, nil); !errors.Is(err, protocol.ErrUndeliverable) {
		t.Fatalf("expected undeliverable send, got %v", err)
	}
}

func TestMissingHandlerIsNotImplemented(t *testing.T) {
	m := newTestMessenger(t)
	m.Channel(SideNative, protocol.ChannelName)
	host := m.Channel(SideHost, protocol.ChannelName)
	if _, err := host.Invoke(context.Background(), protocol.MethodSetup, nil); !errors.Is(err, protocol.ErrNotImplemented) {
		t.Fatalf("expected not implemented, got %v", err)
	}
}

func TestSendIsFireAndForget(t *testing.T) {
	m := newTestMessenger(t)
	received := make(chan int, 1)
	release := make(chan struct{})
	m.Channel(SideHost, protocol.ChannelName).SetMethodCallHandler(func(_ context.Context, call protocol.MethodCall) (interface{}, error) {
		<-release
		index, err := protocol.DecodeTabSelected(call.Arguments)
		received <- index
		return nil, err
	})
	native := m.Channel(SideNative, protocol.ChannelName)

	if err := native.Send(context.Background(), protocol.MethodTabSelected, 2); err != nil {
		t.Fatalf("send returned error: %v", err)
	}
	close(release)
	select {
	case got := <-received:
		if got != 2 {
			t.Fatalf("expected 2, got %d", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for delivery")
	}
}

func TestHandlersRunSerially(t *testing.T) {
	m := newTestMessenger(t)
	var active, maxActive int32
	m.Channel(SideNative, protocol.ChannelName).SetMethodCallHandler(func(context.Context, protocol.MethodCall) (interface{}, error) {
		n := atomic.AddInt32(&active, 1)
		for {
			prev := atomic.LoadInt32(&maxActive)
			if n <= prev || atomic.CompareAndSwapInt32(&maxActive, prev, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return nil, nil
	})
	host := m.Channel(SideHost, protocol.ChannelName)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := host.Invoke(context.Background(), protocol.MethodUpdateTab, protocol.UpdateArgs{TabIndex: i}); err != nil {
				t.Errorf("invoke %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()
	if got := atomic.LoadInt32(&maxActive); got != 1 {
		t.Fatalf("expected at most one handler in flight, saw %d", got)
	}
}

func TestInvokeAfterCloseFails(t *testing.T) {
	m := NewMessenger(1)
	m.Channel(SideNative, protocol.ChannelName)
	host := m.Channel(SideHost, protocol.ChannelName)
	m.Close()
	if _, err := host.Invoke(context.Background(), protocol.MethodRestoreDefault, nil); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestInvokeWithDoneContextIsNotQueued(t *testing.T) {
	m := newTestMessenger(t)
	var calls int32
	m.Channel(SideNative, protocol.ChannelName).SetMethodCallHandler(func(context.Context, protocol.MethodCall) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	})
	host := m.Channel(SideHost, protocol.ChannelName)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 200; i++ {
		if _, err := host.Invoke(ctx, protocol.MethodRestoreDefault, nil); !errors.Is(err, context.Canceled) {
			t.Fatalf("call %d: expected context canceled, got %v", i, err)
		}
		if err := host.Send(ctx, protocol.MethodRestoreDefault, nil); !errors.Is(err, context.Canceled) {
			t.Fatalf("send %d: expected context canceled, got %v", i, err)
		}
	}
	// Flush the loop so any call that slipped through has run.
	if _, err := host.Invoke(context.Background(), protocol.MethodRestoreDefault, nil); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected only the flush call to run, got %d", got)
	}
}

func TestQueuedInvokeOutlivesDeadline(t *testing.T) {
	m := newTestMessenger(t)
	started := make(chan struct{})
	release := make(chan struct{})
	m.Channel(SideNative, protocol.ChannelName).SetMethodCallHandler(func(context.Context, protocol.MethodCall) (interface{}, error) {
		close(started)
		<-release
		return 7, nil
	})
	host := m.Channel(SideHost, protocol.ChannelName)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	go func() {
		<-started
		<-ctx.Done()
		close(release)
	}()
	raw, err := host.Invoke(ctx, protocol.MethodRestoreDefault, nil)
	if err != nil {
		t.Fatalf("expected the applied call to report success, got %v", err)
	}
	if string(raw) != "7" {
		t.Fatalf("expected handler result 7, got %s", raw)
	}
}

func TestCloseAbandonsPendingInvoke(t *testing.T) {
	m := NewMessenger(1)
	block := make(chan struct{})
	defer close(block)
	m.Channel(SideNative, protocol.ChannelName).SetMethodCallHandler(func(context.Context, protocol.MethodCall) (interface{}, error) {
		<-block
		return nil, nil
	})
	host := m.Channel(SideHost, protocol.ChannelName)
	done := make(chan error, 1)
	go func() {
		_, err := host.Invoke(context.Background(), protocol.MethodRestoreDefault, nil)
		done <- err
	}()
	time.Sleep(20 * time.Millisecond)
	go m.Close()
	select {
	case err := <-done:
		if !errors.Is(err, ErrClosed) {
			t.Fatalf("expected ErrClosed, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("pending invoke was not released by Close")
	}
}
