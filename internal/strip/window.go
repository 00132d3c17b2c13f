package strip

import (
	"sync"

	"github.com/atomicstack/tabstrip/internal/logging/events"
	"github.com/atomicstack/tabstrip/internal/touchbar"
)

// Window is the terminal stand-in for the host window's control-strip slot.
type Window struct {
	mu      sync.Mutex
	name    string
	appName string
	control touchbar.Control
}

// NewWindow creates a window whose default bar shows appName.
func NewWindow(name, appName string) *Window {
	return &Window{name: name, appName: appName}
}

func (w *Window) Name() string {
	return w.name
}

// Attach implements touchbar.Window.
func (w *Window) Attach(c touchbar.Control) {
	w.mu.Lock()
	w.control = c
	w.mu.Unlock()
	events.Strip.Attach(c != nil)
}

// Detach implements touchbar.Window.
func (w *Window) Detach() {
	w.mu.Lock()
	w.control = nil
	w.mu.Unlock()
	events.Strip.Attach(false)
}

// Attached reports whether a control currently occupies the window.
func (w *Window) Attached() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.control != nil
}

// Control returns the attached control, if any.
func (w *Window) Control() touchbar.Control {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.control
}

func (w *Window) surface() Surface {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, _ := w.control.(Surface)
	return s
}

// View renders the attached control, or the default bar when none is
// attached.
func (w *Window) View(width int) string {
	if s := w.surface(); s != nil {
		return s.View(width)
	}
	return compose("", appNameSegment(w.appName), width)
}

// Tap forwards a physical tap at index to the attached control.
func (w *Window) Tap(index int) bool {
	s := w.surface()
	if s == nil {
		return false
	}
	return s.Tap(index)
}

// Scroll forwards an arrow-button press to the attached control.
func (w *Window) Scroll(delta int) {
	if s := w.surface(); s != nil {
		s.Scroll(delta)
	}
}

// Emphasized returns the position and label of the emphasized item on the
// attached strip.
func (w *Window) Emphasized() (int, string, bool) {
	lister, ok := w.surface().(interface{ Items() []Item })
	if !ok {
		return -1, "", false
	}
	for i, item := range lister.Items() {
		if item.Emphasized {
			return i, item.Label, true
		}
	}
	return -1, "", false
}
