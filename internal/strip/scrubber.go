// Package strip simulates the hardware control strip in the terminal. A
// Scrubber is the tab control the native adapter builds per session; a Window
// is the surface controls are attached to, showing its default bar when
// nothing is attached.
package strip

import (
	"strings"
	"sync"

	"github.com/atomicstack/tabstrip/internal/logging/events"
	"github.com/atomicstack/tabstrip/internal/theme"
	"github.com/atomicstack/tabstrip/internal/touchbar"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	arrowLeft     = "‹"
	arrowRight    = "›"
	itemSeparator = "│"
	overlayOpen   = "["
	overlayClose  = "]"
	ellipsis      = "…"
)

var styles = theme.Default()

// Item is one rendered scrubber entry.
type Item struct {
	Label      string
	Emphasized bool
}

// Surface is a control the Window can draw and forward input to.
type Surface interface {
	touchbar.Control
	View(width int) string
	Tap(index int) bool
	Scroll(delta int)
}

// Scrubber is a fixed-mode tab scrubber with arrow buttons and an outline
// overlay on the emphasized item.
type Scrubber struct {
	mu       sync.Mutex
	source   touchbar.DataSource
	delegate touchbar.SelectionDelegate
	layout   touchbar.Layout
	items    []Item
	offset   int
	follow   bool
	reloads  int
}

// NewScrubber builds an empty scrubber for layout.
func NewScrubber(layout touchbar.Layout) *Scrubber {
	return &Scrubber{layout: layout}
}

// Factory returns a touchbar.ControlFactory producing scrubbers.
func Factory() touchbar.ControlFactory {
	return func(layout touchbar.Layout) touchbar.Control {
		return NewScrubber(layout)
	}
}

func (s *Scrubber) SetDataSource(ds touchbar.DataSource) {
	s.mu.Lock()
	s.source = ds
	s.mu.Unlock()
}

func (s *Scrubber) SetSelectionDelegate(d touchbar.SelectionDelegate) {
	s.mu.Lock()
	s.delegate = d
	s.mu.Unlock()
}

// Reload discards cached items and re-queries every item from the data
// source. The source is queried without holding the scrubber lock.
func (s *Scrubber) Reload() {
	s.mu.Lock()
	ds := s.source
	s.mu.Unlock()

	var items []Item
	emphasized := -1
	if ds != nil {
		count := ds.ItemCount()
		items = make([]Item, 0, count)
		for i := 0; i < count; i++ {
			label, emph := ds.ItemAt(i)
			if emph {
				emphasized = i
			}
			items = append(items, Item{Label: label, Emphasized: emph})
		}
	}

	s.mu.Lock()
	s.items = items
	s.reloads++
	if s.offset >= len(items) {
		s.offset = 0
	}
	s.follow = true
	s.mu.Unlock()
	events.Strip.Reload(len(items), emphasized)
}

// Items returns the items captured by the last Reload.
func (s *Scrubber) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Item(nil), s.items...)
}

// Reloads reports how many times Reload ran.
func (s *Scrubber) Reloads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloads
}

// Offset returns the index of the first visible item.
func (s *Scrubber) Offset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offset
}

// Tap reports a user selection at index to the delegate. It returns false
// when no delegate is set. Range checks belong to the delegate.
func (s *Scrubber) Tap(index int) bool {
	s.mu.Lock()
	d := s.delegate
	s.mu.Unlock()
	if d == nil {
		return false
	}
	events.Strip.Tap(index)
	d.DidSelectItem(index)
	return true
}

// Scroll shifts the first visible item by delta, as the arrow buttons do.
func (s *Scrubber) Scroll(delta int) {
	s.mu.Lock()
	next := s.offset + delta
	if next > len(s.items)-1 {
		next = len(s.items) - 1
	}
	if next < 0 {
		next = 0
	}
	changed := next != s.offset
	s.offset = next
	s.follow = false
	s.mu.Unlock()
	if changed {
		events.Strip.Scroll(next)
	}
}

// View renders the bar: scrubber, flexible space, then the app name. A width
// of zero renders every item without clipping.
func (s *Scrubber) View(width int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	app := appNameSegment(s.layout.AppName)
	budget := 0
	if width > 0 {
		budget = width - lipgloss.Width(app) - 1
		if budget < 0 {
			budget = 0
		}
	}
	if s.follow {
		s.offset = followOffset(s.items, s.offset, budget)
		s.follow = false
	}
	scrubber := renderScrubber(s.items, s.offset, budget)
	return compose(scrubber, app, width)
}

func renderScrubber(items []Item, offset, budget int) string {
	cells := make([]string, 0, len(items))
	last := offset - 1
	used := 2*lipgloss.Width(arrowLeft) + 2
	for i := offset; i < len(items); i++ {
		cell := renderItem(items[i])
		w := lipgloss.Width(cell)
		if len(cells) > 0 {
			w += lipgloss.Width(itemSeparator)
		}
		if budget > 0 && used+w > budget && len(cells) > 0 {
			break
		}
		used += w
		cells = append(cells, cell)
		last = i
	}
	left := theme.Render(styles.StripArrowDim, arrowLeft)
	if offset > 0 {
		left = theme.Render(styles.StripArrow, arrowLeft)
	}
	right := theme.Render(styles.StripArrowDim, arrowRight)
	if last < len(items)-1 {
		right = theme.Render(styles.StripArrow, arrowRight)
	}
	sep := theme.Render(styles.StripSeparator, itemSeparator)
	out := left + " " + strings.Join(cells, sep) + " " + right
	if budget > 0 && lipgloss.Width(out) > budget {
		out = ansi.Truncate(out, budget, ellipsis)
	}
	return out
}

func renderItem(item Item) string {
	if item.Emphasized {
		return theme.Render(styles.StripOverlay, overlayOpen) +
			theme.Render(styles.StripEmphasis, item.Label) +
			theme.Render(styles.StripOverlay, overlayClose)
	}
	return " " + theme.Render(styles.StripItem, item.Label) + " "
}

func appNameSegment(name string) string {
	if name == "" {
		return ""
	}
	return theme.Render(styles.StripAppName, name)
}

// compose places left and right at the edges of width, filling the gap like
// the bar's flexible space.
func compose(left, right string, width int) string {
	lw, rw := lipgloss.Width(left), lipgloss.Width(right)
	if width <= 0 {
		if right == "" {
			return left
		}
		return left + " " + right
	}
	gap := width - lw - rw
	if gap < 1 {
		return ansi.Truncate(left+" "+right, width, ellipsis)
	}
	return left + strings.Repeat(" ", gap) + right
}

// followOffset returns an offset that keeps the emphasized item visible
// within budget, preferring the current offset when it already is.
func followOffset(items []Item, offset, budget int) int {
	target := -1
	for i, item := range items {
		if item.Emphasized {
			target = i
			break
		}
	}
	if target < 0 || budget <= 0 {
		return offset
	}
	if target < offset {
		return target
	}
	for start := offset; start <= target; start++ {
		if visibleThrough(items, start, budget) >= target {
			return start
		}
	}
	return target
}

// visibleThrough returns the last index rendered when starting at offset.
func visibleThrough(items []Item, offset, budget int) int {
	used := 2*lipgloss.Width(arrowLeft) + 2
	last := offset - 1
	for i := offset; i < len(items); i++ {
		w := lipgloss.Width(renderItem(items[i]))
		if i > offset {
			w += lipgloss.Width(itemSeparator)
		}
		if used+w > budget && i > offset {
			break
		}
		used += w
		last = i
	}
	return last
}
