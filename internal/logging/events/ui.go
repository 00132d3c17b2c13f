package events

import "github.com/atomicstack/tabstrip/internal/logging"

type UITracer struct{}

type SearchTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Search  = SearchTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Key(key string) {
	logging.Trace("ui.key", map[string]interface{}{"key": key})
}

func (UITracer) TabSwitch(from, to int) {
	logging.Trace("ui.tab.switch", map[string]interface{}{"from": from, "to": to})
}

func (UITracer) StripTap(index int) {
	logging.Trace("ui.strip.tap", map[string]interface{}{"index": index})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (SearchTracer) Open() {
	logging.Trace("search.open", nil)
}

func (SearchTracer) Cancel(query string) {
	logging.Trace("search.cancel", map[string]interface{}{"query": query})
}

func (SearchTracer) Submit(query string, index int) {
	logging.Trace("search.submit", map[string]interface{}{"query": query, "index": index})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label string, err error) {
	payload := map[string]interface{}{"id": id, "label": label}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("command.result", payload)
}
