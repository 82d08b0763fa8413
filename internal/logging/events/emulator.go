package events

import "github.com/atomicstack/lazyadb/internal/logging"

type EmulatorTracer struct{}

var Emulator = EmulatorTracer{}

func (EmulatorTracer) Listed(count, running int) {
	logging.Trace("emulator.list", map[string]interface{}{"count": count, "running": running})
}

func (EmulatorTracer) Start(name string) {
	logging.Trace("emulator.start", map[string]interface{}{"name": name})
}

func (EmulatorTracer) Kill(serial string) {
	logging.Trace("emulator.kill", map[string]interface{}{"serial": serial})
}
