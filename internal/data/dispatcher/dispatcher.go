package dispatcher

import (
	"github.com/atomicstack/lazyadb/internal/adb"
	"github.com/atomicstack/lazyadb/internal/state"
	"github.com/atomicstack/lazyadb/internal/ui/action"
)

// Result reports which roster lists an action replaced.
type Result struct {
	DevicesUpdated         bool
	EmulatorsUpdated       bool
	DeviceSelectionChanged bool
	Selected               adb.Device
}

// Dispatcher is the only writer of the roster stores.
type Dispatcher struct {
	devices   state.DeviceStore
	emulators state.EmulatorStore
}

func New(d state.DeviceStore, e state.EmulatorStore) *Dispatcher {
	return &Dispatcher{devices: d, emulators: e}
}

func (d *Dispatcher) Handle(a action.Action) Result {
	var res Result
	switch act := a.(type) {
	case action.DevicesUpdated:
		sel := d.devices.SetEntries(act.Devices)
		res.DevicesUpdated = true
		res.DeviceSelectionChanged = sel.Changed
		if selected, ok := d.devices.Selected(); ok {
			res.Selected = selected
		}
	case action.EmulatorsUpdated:
		d.emulators.SetEntries(act.Images)
		res.EmulatorsUpdated = true
	}
	return res
}
