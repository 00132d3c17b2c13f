package touchbar

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/atomicstack/tabstrip/internal/channel"
	"github.com/atomicstack/tabstrip/internal/data/dispatcher"
	"github.com/atomicstack/tabstrip/internal/logging"
	"github.com/atomicstack/tabstrip/internal/logging/events"
	"github.com/atomicstack/tabstrip/internal/protocol"
)

// Notifier delivers fire-and-forget events to the host side.
type Notifier interface {
	Send(ctx context.Context, method string, args interface{}) error
}

// State is a point-in-time copy of the adapter's session.
type State struct {
	Active      bool
	Tabs        []string
	ActiveIndex int
}

type session struct {
	tabs    []string
	active  int
	control Control
	window  Window
}

// Adapter owns the native copy of the active tab and the attached control.
type Adapter struct {
	// opMu serialises commands and taps end to end.
	opMu sync.Mutex
	// mu guards sess for data-source reads.
	mu   sync.RWMutex
	sess *session

	windows    WindowSource
	newControl ControlFactory
	notifier   Notifier
	layout     Layout
	dispatcher *dispatcher.Dispatcher
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithAppName sets the text of the app-name item.
func WithAppName(name string) Option {
	return func(a *Adapter) {
		if name != "" {
			a.layout.AppName = name
		}
	}
}

// WithNotifier sets the event sink without binding a channel.
func WithNotifier(n Notifier) Option {
	return func(a *Adapter) {
		a.notifier = n
	}
}

// New builds an adapter in the Uninitialized state.
func New(windows WindowSource, newControl ControlFactory, opts ...Option) *Adapter {
	a := &Adapter{
		windows:    windows,
		newControl: newControl,
		layout: Layout{
			Items:         DefaultLayout(),
			AppName:       DefaultAppName,
			ScrubberLabel: ScrubberLabel,
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.dispatcher = dispatcher.New().
		Register(protocol.MethodSetup, a.handleSetup).
		Register(protocol.MethodUpdateTab, a.handleUpdate).
		Register(protocol.MethodRestoreDefault, a.handleRestore)
	return a
}

// Register installs the adapter as the handler of ch and emits selection
// events through the same handle.
func (a *Adapter) Register(ch *channel.Channel) {
	a.opMu.Lock()
	a.notifier = ch
	a.opMu.Unlock()
	ch.SetMethodCallHandler(a.HandleMethodCall)
	events.Bridge.Register(ch.Side().String(), ch.Name(), a.Methods())
}

// Methods lists the command names the adapter handles.
func (a *Adapter) Methods() []string {
	return a.dispatcher.Methods()
}

// HandleMethodCall decodes and applies one host command.
func (a *Adapter) HandleMethodCall(ctx context.Context, call protocol.MethodCall) (interface{}, error) {
	return a.dispatcher.Handle(ctx, call)
}

func (a *Adapter) handleSetup(_ context.Context, raw json.RawMessage) (interface{}, error) {
	args, err := protocol.DecodeSetup(raw)
	if err != nil {
		return nil, err
	}
	return nil, a.Setup(args.Tabs, args.TabIndex)
}

func (a *Adapter) handleUpdate(_ context.Context, raw json.RawMessage) (interface{}, error) {
	args, err := protocol.DecodeUpdate(raw)
	if err != nil {
		return nil, err
	}
	return nil, a.UpdateActive(args.TabIndex)
}

func (a *Adapter) handleRestore(context.Context, json.RawMessage) (interface{}, error) {
	a.RestoreDefault()
	return nil, nil
}

// Setup starts or replaces the session with tabs and index, then attaches a
// fresh control to the main window.
func (a *Adapter) Setup(tabs []string, index int) error {
	if len(tabs) == 0 {
		return protocol.InvalidArguments(protocol.MethodSetup, protocol.KeyTabs, "tab list must not be empty")
	}
	if !protocol.ValidIndex(index, len(tabs)) {
		return protocol.IndexOutOfRange(protocol.MethodSetup, index, len(tabs))
	}

	a.opMu.Lock()
	defer a.opMu.Unlock()

	control := a.newControl(a.layout)
	control.SetDataSource(a)
	control.SetSelectionDelegate(a)

	var (
		window Window
		ok     bool
	)
	if a.windows != nil {
		window, ok = a.windows.MainWindow()
	}

	next := &session{
		tabs:    append([]string(nil), tabs...),
		active:  index,
		control: control,
	}
	if ok {
		next.window = window
	}

	a.mu.Lock()
	prev := a.sess
	a.sess = next
	a.mu.Unlock()

	if prev != nil {
		release(prev)
	}
	if ok {
		window.Attach(control)
		events.Session.Attach(windowName(window))
	} else {
		events.Session.NoWindow()
	}
	control.Reload()
	events.Session.Setup(next.tabs, index, prev != nil)
	return nil
}

// UpdateActive moves the emphasized item. Without a session it is a logged
// no-op.
func (a *Adapter) UpdateActive(index int) error {
	a.opMu.Lock()
	defer a.opMu.Unlock()

	a.mu.Lock()
	if a.sess == nil {
		a.mu.Unlock()
		events.Session.NoSession(protocol.MethodUpdateTab)
		return nil
	}
	if !protocol.ValidIndex(index, len(a.sess.tabs)) {
		n := len(a.sess.tabs)
		a.mu.Unlock()
		return protocol.IndexOutOfRange(protocol.MethodUpdateTab, index, n)
	}
	from := a.sess.active
	a.sess.active = index
	control := a.sess.control
	a.mu.Unlock()

	control.Reload()
	events.Session.Update(from, index)
	return nil
}

// RestoreDefault detaches the control and discards the session. It is
// idempotent.
func (a *Adapter) RestoreDefault() {
	a.opMu.Lock()
	defer a.opMu.Unlock()

	a.mu.Lock()
	prev := a.sess
	a.sess = nil
	a.mu.Unlock()

	if prev == nil {
		events.Session.NoSession(protocol.MethodRestoreDefault)
		return
	}
	release(prev)
	events.Session.Restore()
}

// Select applies a user tap on the control: the local index is updated and
// the control reloaded before touchBarTabSelected is emitted.
func (a *Adapter) Select(ctx context.Context, index int) error {
	a.opMu.Lock()
	a.mu.Lock()
	if a.sess == nil {
		a.mu.Unlock()
		a.opMu.Unlock()
		events.Session.NoSession(protocol.MethodTabSelected)
		return nil
	}
	if !protocol.ValidIndex(index, len(a.sess.tabs)) {
		n := len(a.sess.tabs)
		a.mu.Unlock()
		a.opMu.Unlock()
		return protocol.IndexOutOfRange(protocol.MethodTabSelected, index, n)
	}
	from := a.sess.active
	a.sess.active = index
	control := a.sess.control
	a.mu.Unlock()

	control.Reload()
	events.Session.Select(from, index)
	notifier := a.notifier
	a.opMu.Unlock()

	if notifier == nil {
		return nil
	}
	return notifier.Send(ctx, protocol.MethodTabSelected, index)
}

// DidSelectItem implements SelectionDelegate.
func (a *Adapter) DidSelectItem(index int) {
	if err := a.Select(context.Background(), index); err != nil {
		events.Bridge.Reject(protocol.MethodTabSelected, err)
		logging.Error(err)
	}
}

// ItemCount implements DataSource.
func (a *Adapter) ItemCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.sess == nil {
		return 0
	}
	return len(a.sess.tabs)
}

// ItemAt implements DataSource.
func (a *Adapter) ItemAt(index int) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.sess == nil || !protocol.ValidIndex(index, len(a.sess.tabs)) {
		return "", false
	}
	return a.sess.tabs[index], index == a.sess.active
}

// State returns a copy of the current session.
func (a *Adapter) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.sess == nil {
		return State{}
	}
	return State{
		Active:      true,
		Tabs:        append([]string(nil), a.sess.tabs...),
		ActiveIndex: a.sess.active,
	}
}

// Layout returns the bar layout used for new controls.
func (a *Adapter) Layout() Layout {
	return a.layout
}

// release drops every reference a finished session holds.
func release(s *session) {
	if s.window != nil {
		s.window.Detach()
	}
	if s.control != nil {
		s.control.SetSelectionDelegate(nil)
		s.control.SetDataSource(nil)
	}
	s.window = nil
	s.control = nil
}

func windowName(w Window) string {
	if named, ok := w.(interface{ Name() string }); ok {
		return named.Name()
	}
	return "main"
}
