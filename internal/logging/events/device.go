package events

import "github.com/atomicstack/lazyadb/internal/logging"

type DeviceTracer struct{}

var Device = DeviceTracer{}

func (DeviceTracer) Listed(count int) {
	logging.Trace("device.list", map[string]interface{}{"count": count})
}

func (DeviceTracer) Selected(serial string) {
	logging.Trace("device.select", map[string]interface{}{"serial": serial})
}

func (DeviceTracer) Changed(serial, from, to string, batched int) {
	logging.Trace("device.change", map[string]interface{}{"serial": serial, "from": from, "to": to, "batched": batched})
}

func (DeviceTracer) Disconnect(serial string) {
	logging.Trace("device.disconnect", map[string]interface{}{"serial": serial})
}

func (DeviceTracer) Telemetry(serial string, accepted bool) {
	logging.Trace("device.telemetry", map[string]interface{}{"serial": serial, "accepted": accepted})
}
