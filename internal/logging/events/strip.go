package events

import "github.com/atomicstack/tabstrip/internal/logging"

type StripTracer struct{}

var Strip = StripTracer{}

func (StripTracer) Reload(count, emphasized int) {
	logging.Trace("strip.reload", map[string]interface{}{"count": count, "emphasized": emphasized})
}

func (StripTracer) Tap(index int) {
	logging.Trace("strip.tap", map[string]interface{}{"index": index})
}

func (StripTracer) Scroll(offset int) {
	logging.Trace("strip.scroll", map[string]interface{}{"offset": offset})
}

func (StripTracer) Attach(attached bool) {
	logging.Trace("strip.attach", map[string]interface{}{"attached": attached})
}
