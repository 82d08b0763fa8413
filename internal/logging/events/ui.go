package events

import "github.com/atomicstack/lazyadb/internal/logging"

type UITracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Focus(from, to string) {
	logging.Trace("ui.focus", map[string]interface{}{"from": from, "to": to})
}

func (UITracer) Modal(from, to string) {
	logging.Trace("ui.modal", map[string]interface{}{"from": from, "to": to})
}

func (UITracer) Route(key, section, action string) {
	logging.Trace("ui.route", map[string]interface{}{"key": key, "section": section, "action": action})
}

func (UITracer) Drop(key, reason string) {
	logging.Trace("ui.drop", map[string]interface{}{"key": key, "reason": reason})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (ActionTracer) Dispatch(name string) {
	logging.Trace("action.dispatch", map[string]interface{}{"action": name})
}

func (CommandTracer) Queue(key, label string) {
	logging.Trace("command.queue", map[string]interface{}{"key": key, "label": label})
}

func (CommandTracer) Skip(key, label string) {
	logging.Trace("command.skip", map[string]interface{}{"key": key, "label": label})
}

func (CommandTracer) NoOp(key, label string) {
	logging.Trace("command.noop", map[string]interface{}{"key": key, "label": label})
}

func (CommandTracer) Result(key, label, action string) {
	logging.Trace("command.result", map[string]interface{}{"key": key, "label": label, "action": action})
}

func (CommandTracer) Error(key, label string, err error) {
	if err == nil {
		return
	}
	logging.Trace("command.error", map[string]interface{}{"key": key, "label": label, "error": err.Error()})
}
