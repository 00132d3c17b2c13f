// Package touchbar implements the native side of the tab bridge: it owns the
// control-strip session, answers the control's data-source queries, and
// forwards user selections back to the host.
//
// Session lifecycle:
//   - setupTouchBar creates (or replaces) the session, builds a fresh control
//     and attaches it to the main window.
//   - updateTouchBarTab moves the emphasized item and forces a reload.
//   - restoreDefaultTouchBar detaches the control and forgets the session.
//
// Commands and taps are serialised by the adapter; the data-source methods
// only take a read lock so a control may re-query while a command is running.
package touchbar

// Item identifiers of the control bar layout.
const (
	ItemTabScrubber   = "com.toothfile.touchbar.tabScrubber"
	ItemAppName       = "com.toothfile.touchbar.appName"
	ItemFlexibleSpace = "NSTouchBarItemIdentifierFlexibleSpace"
)

// ScrubberLabel is the customization label shown for the tab scrubber.
const ScrubberLabel = "Tab Navigation"

// DefaultAppName is shown in the app-name item when none is configured.
const DefaultAppName = "ToothFile"

// DefaultLayout lists the bar items in display order.
func DefaultLayout() []string {
	return []string{ItemTabScrubber, ItemFlexibleSpace, ItemAppName}
}

// DataSource answers the control's render queries.
type DataSource interface {
	ItemCount() int
	ItemAt(index int) (label string, emphasized bool)
}

// SelectionDelegate receives taps reported by a control.
type SelectionDelegate interface {
	DidSelectItem(index int)
}

// Control is a rendered tab strip. Reload must re-query every item from the
// data source.
type Control interface {
	SetDataSource(DataSource)
	SetSelectionDelegate(SelectionDelegate)
	Reload()
}

// Window hosts at most one control at a time.
type Window interface {
	Attach(Control)
	Detach()
}

// WindowSource supplies the main window at setup time. ok is false when no
// window is currently available.
type WindowSource interface {
	MainWindow() (w Window, ok bool)
}

// WindowFunc adapts a function to WindowSource.
type WindowFunc func() (Window, bool)

func (f WindowFunc) MainWindow() (Window, bool) {
	return f()
}

// StaticWindow returns a WindowSource that always yields w.
func StaticWindow(w Window) WindowSource {
	return WindowFunc(func() (Window, bool) { return w, w != nil })
}

// ControlFactory builds a fresh control for each session setup.
type ControlFactory func(layout Layout) Control

// Layout describes the non-tab items of the bar.
type Layout struct {
	Items         []string
	AppName       string
	ScrubberLabel string
}
