// Package host implements the application side of the tab bridge. The
// Endpoint keeps the host copy of the tab set and active index, drives the
// native strip with commands, and reconciles selections reported back by it.
package host

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/atomicstack/tabstrip/internal/channel"
	"github.com/atomicstack/tabstrip/internal/data/dispatcher"
	"github.com/atomicstack/tabstrip/internal/logging"
	"github.com/atomicstack/tabstrip/internal/logging/events"
	"github.com/atomicstack/tabstrip/internal/protocol"
	"github.com/atomicstack/tabstrip/internal/state"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Kind identifies an endpoint event.
type Kind int

const (
	// KindSelected reports a strip selection the host accepted.
	KindSelected Kind = iota
	// KindReconciled reports a strip selection the host overrode.
	KindReconciled
	// KindSetup reports a strip session the host set up.
	KindSetup
	// KindUpdated reports host navigation to a new index.
	KindUpdated
	// KindRestored reports the strip returning to its default bar.
	KindRestored
)

func (k Kind) String() string {
	switch k {
	case KindSelected:
		return "selected"
	case KindReconciled:
		return "reconciled"
	case KindSetup:
		return "setup"
	case KindUpdated:
		return "updated"
	case KindRestored:
		return "restored"
	default:
		return "unknown"
	}
}

// Event describes a change to the host copy of the bridge state.
type Event struct {
	Kind     Kind
	Index    int
	Previous int
	Err      error
}

// SelectionFilter decides whether a strip selection may become active.
type SelectionFilter func(index int, label string) bool

// Invoker sends commands to the native side.
type Invoker interface {
	Invoke(ctx context.Context, method string, args interface{}) (json.RawMessage, error)
}

// Endpoint is the host-side bridge endpoint. Host commands and incoming
// selections are applied one at a time, and each leaves the strip holding the
// host's index.
type Endpoint struct {
	invoker    Invoker
	store      state.TabStore
	filter     SelectionFilter
	dispatcher *dispatcher.Dispatcher

	// opMu is held across the Invoke of every operation. The native loop
	// never waits on the host, so holding it while waiting cannot deadlock.
	opMu sync.Mutex

	mu     sync.Mutex
	closed bool
	events chan Event
}

// Option configures an Endpoint.
type Option func(*Endpoint)

// WithSelectionFilter installs a filter for strip selections. Rejected
// selections are answered with an update carrying the host's index.
func WithSelectionFilter(f SelectionFilter) Option {
	return func(e *Endpoint) {
		e.filter = f
	}
}

// WithStore replaces the default in-memory tab store.
func WithStore(s state.TabStore) Option {
	return func(e *Endpoint) {
		if s != nil {
			e.store = s
		}
	}
}

// New creates an endpoint that sends commands through invoker.
func New(invoker Invoker, opts ...Option) *Endpoint {
	e := &Endpoint{
		invoker: invoker,
		store:   state.NewTabStore(),
		events:  make(chan Event, 16),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.dispatcher = dispatcher.New().Register(protocol.MethodTabSelected, e.handleTabSelected)
	return e
}

// Register creates an endpoint bound to ch: commands go out through ch and
// selection events arriving on ch are handled by the endpoint.
func Register(ch *channel.Channel, opts ...Option) *Endpoint {
	e := New(ch, opts...)
	ch.SetMethodCallHandler(e.HandleMethodCall)
	events.Bridge.Register(ch.Side().String(), ch.Name(), e.Methods())
	return e
}

// Methods lists the event names the endpoint handles.
func (e *Endpoint) Methods() []string {
	return e.dispatcher.Methods()
}

// HandleMethodCall routes events from the native side.
func (e *Endpoint) HandleMethodCall(ctx context.Context, call protocol.MethodCall) (interface{}, error) {
	return e.dispatcher.Handle(ctx, call)
}

// Events streams endpoint changes. The channel closes after Close. Events are
// dropped when the consumer falls behind; the store stays authoritative.
func (e *Endpoint) Events() <-chan Event {
	return e.events
}

// Close stops event delivery.
func (e *Endpoint) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	close(e.events)
}

func (e *Endpoint) publish(evt Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	select {
	case e.events <- evt:
	default:
		events.Host.Dropped(evt.Kind.String())
	}
}

// Tabs returns the host tab labels.
func (e *Endpoint) Tabs() []string {
	return e.store.Tabs()
}

// Active returns the host copy of the active index.
func (e *Endpoint) Active() int {
	return e.store.Active()
}

// Ready reports whether the native strip has a live session.
func (e *Endpoint) Ready() bool {
	return e.store.Ready()
}

// Setup replaces the native session with tabs and index.
func (e *Endpoint) Setup(ctx context.Context, tabs []string, index int) error {
	if len(tabs) == 0 {
		return protocol.InvalidArguments(protocol.MethodSetup, protocol.KeyTabs, "tab list must not be empty")
	}
	if !protocol.ValidIndex(index, len(tabs)) {
		return protocol.IndexOutOfRange(protocol.MethodSetup, index, len(tabs))
	}
	e.opMu.Lock()
	defer e.opMu.Unlock()
	return e.setup(ctx, tabs, index)
}

func (e *Endpoint) setup(ctx context.Context, tabs []string, index int) error {
	args := protocol.SetupArgs{Tabs: tabs, TabIndex: index}
	if _, err := e.invoker.Invoke(ctx, protocol.MethodSetup, args); err != nil {
		return err
	}
	prev := e.store.Active()
	e.store.Replace(tabs, index)
	e.publish(Event{Kind: KindSetup, Index: index, Previous: prev})
	return nil
}

// SetActive is host navigation: it validates index against the host tab set
// and, while a session is live, pushes it to the strip. The host copy only
// changes once the strip accepted the update.
func (e *Endpoint) SetActive(ctx context.Context, index int) error {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	n := e.store.Len()
	if !protocol.ValidIndex(index, n) {
		return protocol.IndexOutOfRange(protocol.MethodUpdateTab, index, n)
	}
	if e.store.Ready() {
		if err := e.push(ctx, index); err != nil {
			return err
		}
	}
	prev := e.store.Active()
	e.store.SetActive(index)
	e.publish(Event{Kind: KindUpdated, Index: index, Previous: prev})
	return nil
}

// Restore tears down the native session. The host keeps its labels and
// index so Resume can set the strip up again.
func (e *Endpoint) Restore(ctx context.Context) error {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	if _, err := e.invoker.Invoke(ctx, protocol.MethodRestoreDefault, nil); err != nil {
		return err
	}
	e.store.Reset()
	e.publish(Event{Kind: KindRestored, Index: e.store.Active(), Previous: e.store.Active()})
	return nil
}

// Resume sets the strip up again from the host copy.
func (e *Endpoint) Resume(ctx context.Context) error {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	tabs := e.store.Tabs()
	if len(tabs) == 0 {
		return protocol.InvalidArguments(protocol.MethodSetup, protocol.KeyTabs, "tab list must not be empty")
	}
	return e.setup(ctx, tabs, e.store.Active())
}

// Find returns the index of the tab label that best matches query.
func (e *Endpoint) Find(query string) (int, bool) {
	labels := e.store.Tabs()
	ranks := fuzzy.RankFindNormalizedFold(query, labels)
	if len(ranks) == 0 {
		return -1, false
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance || (r.Distance == best.Distance && r.OriginalIndex < best.OriginalIndex) {
			best = r
		}
	}
	return best.OriginalIndex, true
}

// handleTabSelected applies a strip selection. An accepted selection is
// echoed back with updateTouchBarTab: the event may have been emitted before
// a host command that has since reached the strip, and the echo makes both
// copies settle on the order in which the host applied them.
func (e *Endpoint) handleTabSelected(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	index, err := protocol.DecodeTabSelected(raw)
	if err != nil {
		return nil, err
	}
	e.opMu.Lock()
	defer e.opMu.Unlock()

	current := e.store.Active()
	if !e.store.Ready() {
		// The session this tap belonged to was torn down.
		events.Host.Reconcile(index, current, "no session")
		return nil, nil
	}
	label, ok := e.store.Label(index)
	reason := ""
	switch {
	case !ok:
		reason = "out of range"
	case e.filter != nil && !e.filter(index, label):
		reason = "filtered"
	}
	if reason != "" {
		events.Host.Reconcile(index, current, reason)
		evt := Event{Kind: KindReconciled, Index: current, Previous: index}
		if err := e.push(ctx, current); err != nil {
			logging.Error(err)
			evt.Err = err
		}
		e.publish(evt)
		return nil, nil
	}
	e.store.SetActive(index)
	events.Host.Selected(current, index)
	evt := Event{Kind: KindSelected, Index: index, Previous: current}
	if err := e.push(ctx, index); err != nil {
		logging.Error(err)
		evt.Err = err
	}
	e.publish(evt)
	return nil, nil
}

func (e *Endpoint) push(ctx context.Context, index int) error {
	_, err := e.invoker.Invoke(ctx, protocol.MethodUpdateTab, protocol.UpdateArgs{TabIndex: index})
	return err
}
