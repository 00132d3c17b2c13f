package channel

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/atomicstack/tabstrip/internal/logging"
	"github.com/atomicstack/tabstrip/internal/logging/events"
	"github.com/atomicstack/tabstrip/internal/protocol"
	"github.com/google/uuid"
)

// ErrClosed is returned for calls made after the messenger shut down.
var ErrClosed = errors.New("channel: messenger closed")

const defaultDepth = 16

// Side identifies one end of the messenger.
type Side int

const (
	SideHost Side = iota
	SideNative
)

func (s Side) String() string {
	switch s {
	case SideHost:
		return "host"
	case SideNative:
		return "native"
	default:
		return "unknown"
	}
}

// Peer returns the opposite side.
func (s Side) Peer() Side {
	if s == SideHost {
		return SideNative
	}
	return SideHost
}

// Handler answers a method call delivered to a channel. The returned value is
// JSON encoded into the reply.
type Handler func(ctx context.Context, call protocol.MethodCall) (interface{}, error)

// Reply is the outcome of an Invoke.
type Reply struct {
	Result json.RawMessage
	Err    error
}

type envelope struct {
	id      string
	channel string
	call    protocol.MethodCall
	reply   chan Reply
}

// Messenger carries method calls between the host and native sides. Each side
// drains its inbox on a single goroutine, so one message is handled to
// completion before the next is dequeued.
type Messenger struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	channels [2]map[string]*Channel

	inbox [2]chan envelope
	wg    sync.WaitGroup
}

// NewMessenger starts the dispatch loops for both sides. depth bounds each
// inbox; values <= 0 use a small default.
func NewMessenger(depth int) *Messenger {
	if depth <= 0 {
		depth = defaultDepth
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Messenger{
		ctx:    ctx,
		cancel: cancel,
	}
	for _, side := range []Side{SideHost, SideNative} {
		m.channels[side] = make(map[string]*Channel)
		m.inbox[side] = make(chan envelope, depth)
		m.wg.Add(1)
		go m.loop(side)
	}
	return m
}

// Channel returns the persistent handle for name on side, registering it on
// first use. Repeated calls return the same handle.
func (m *Messenger) Channel(side Side, name string) *Channel {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ch, ok := m.channels[side][name]; ok {
		return ch
	}
	ch := &Channel{name: name, side: side, messenger: m}
	m.channels[side][name] = ch
	return ch
}

// Close stops both dispatch loops and waits for them to exit. Pending
// invocations fail with ErrClosed.
func (m *Messenger) Close() {
	m.cancel()
	m.wg.Wait()
}

func (m *Messenger) lookup(side Side, name string) *Channel {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.channels[side][name]
}

// enqueue hands env to the loop of side to. It fails without queueing when
// ctx is already done; once queued, the envelope is always delivered.
func (m *Messenger) enqueue(ctx context.Context, to Side, env envelope) error {
	if m.ctx.Err() != nil {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.lookup(to, env.channel) == nil {
		events.Bridge.Undeliverable(env.id, env.channel, env.call.Method)
		return protocol.Undeliverable(env.channel, env.call.Method)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-m.ctx.Done():
		return ErrClosed
	case m.inbox[to] <- env:
		return nil
	}
}

func (m *Messenger) loop(side Side) {
	defer m.wg.Done()
	for {
		select {
		case <-m.ctx.Done():
			return
		case env := <-m.inbox[side]:
			m.deliver(side, env)
		}
	}
}

func (m *Messenger) deliver(side Side, env envelope) {
	events.Bridge.Deliver(env.id, side.String(), env.call.Method)
	var (
		result interface{}
		err    error
	)
	ch := m.lookup(side, env.channel)
	if ch == nil {
		err = protocol.Undeliverable(env.channel, env.call.Method)
	} else if handler := ch.currentHandler(); handler == nil {
		err = protocol.NotImplemented(env.call.Method)
	} else {
		result, err = handler(m.ctx, env.call)
	}

	if env.reply == nil {
		if err != nil {
			logging.Error(err)
		}
		return
	}
	reply := Reply{Err: err}
	if err == nil && result != nil {
		raw, merr := json.Marshal(result)
		if merr != nil {
			reply.Err = merr
		} else {
			reply.Result = raw
		}
	}
	events.Bridge.Reply(env.id, env.call.Method, reply.Err)
	env.reply <- reply
}

// Channel is a named, persistent handle onto one side of the messenger.
type Channel struct {
	name      string
	side      Side
	messenger *Messenger

	mu      sync.RWMutex
	handler Handler
}

// Name returns the channel name.
func (c *Channel) Name() string {
	return c.name
}

// Side returns the side that owns this handle.
func (c *Channel) Side() Side {
	return c.side
}

// SetMethodCallHandler installs the handler for calls arriving from the peer.
// A nil handler makes every call report not implemented.
func (c *Channel) SetMethodCallHandler(h Handler) {
	c.mu.Lock()
	c.handler = h
	c.mu.Unlock()
}

func (c *Channel) currentHandler() Handler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.handler
}

// Invoke sends method to the peer and waits for its reply. ctx bounds only the
// wait to enqueue: a call that was queued is reported with the peer's result.
// Handlers running on the peer's loop must not Invoke back into this side
// while it is waiting.
func (c *Channel) Invoke(ctx context.Context, method string, args interface{}) (json.RawMessage, error) {
	call, err := protocol.NewCall(method, args)
	if err != nil {
		return nil, protocol.InvalidArguments(method, "", "encode arguments: %v", err)
	}
	env := envelope{
		id:      uuid.NewString(),
		channel: c.name,
		call:    call,
		reply:   make(chan Reply, 1),
	}
	events.Bridge.Invoke(env.id, c.side.String(), c.name, method)
	if err := c.messenger.enqueue(ctx, c.side.Peer(), env); err != nil {
		return nil, err
	}
	// Handlers run to completion, so a queued call is always answered. Only
	// Close abandons the wait; ctx no longer applies once the peer owns it.
	select {
	case <-c.messenger.ctx.Done():
		return nil, ErrClosed
	case reply := <-env.reply:
		return reply.Result, reply.Err
	}
}

// Send delivers method to the peer without waiting for a reply. Errors raised
// by the peer's handler are logged on the peer side.
func (c *Channel) Send(ctx context.Context, method string, args interface{}) error {
	call, err := protocol.NewCall(method, args)
	if err != nil {
		return protocol.InvalidArguments(method, "", "encode arguments: %v", err)
	}
	env := envelope{
		id:      uuid.NewString(),
		channel: c.name,
		call:    call,
	}
	events.Bridge.Send(env.id, c.side.String(), c.name, method)
	return c.messenger.enqueue(ctx, c.side.Peer(), env)
}
