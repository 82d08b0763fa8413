// Package action defines the events the dashboard loop reacts to. Actions are
// plain values; nothing holds on to one past the update that consumed it.
package action

import (
	"sort"
	"time"

	"github.com/atomicstack/lazyadb/internal/adb"
)

// Action records something that happened.
type Action interface {
	Name() string
	action()
}

type (
	Quit             struct{}
	CycleFocus       struct{}
	CycleFocusBack   struct{}
	ToggleHelp       struct{}
	CloseModal       struct{}
	DeviceListUp     struct{}
	DeviceListDown   struct{}
	RefreshDevices   struct{}
	DisconnectDevice struct{}
	OpenEmulators    struct{}
	EmulatorListUp   struct{}
	EmulatorListDown struct{}
	EmulatorSelect   struct{}
	KillEmulator     struct{}
	RefreshEmulators struct{}
	RefreshTelemetry struct{}
	PickerUp         struct{}
	PickerDown       struct{}
	PickerSelect     struct{}
	PickerKill       struct{}
)

// Tick is the fixed-interval redraw timer.
type Tick struct {
	At time.Time
}

// Resize reports a new terminal size.
type Resize struct {
	Width  int
	Height int
}

// DevicesUpdated carries a freshly listed device roster.
type DevicesUpdated struct {
	Devices []adb.Device
}

// EmulatorsUpdated carries a freshly joined emulator image list.
type EmulatorsUpdated struct {
	Images []adb.Avd
}

// DeviceSelected announces the logical selection moved. A zero Device means
// nothing is selected.
type DeviceSelected struct {
	Device adb.Device
}

func (d DeviceSelected) None() bool { return d.Device.Serial == "" }

// TelemetryLoaded carries diagnostics fetched for one device.
type TelemetryLoaded struct {
	Telemetry adb.Telemetry
}

func (Quit) Name() string             { return "Quit" }
func (CycleFocus) Name() string       { return "CycleFocus" }
func (CycleFocusBack) Name() string   { return "CycleFocusBack" }
func (ToggleHelp) Name() string       { return "ToggleHelp" }
func (CloseModal) Name() string       { return "CloseModal" }
func (DeviceListUp) Name() string     { return "DeviceListUp" }
func (DeviceListDown) Name() string   { return "DeviceListDown" }
func (RefreshDevices) Name() string   { return "RefreshDevices" }
func (DisconnectDevice) Name() string { return "DisconnectDevice" }
func (OpenEmulators) Name() string    { return "OpenEmulators" }
func (EmulatorListUp) Name() string   { return "EmulatorListUp" }
func (EmulatorListDown) Name() string { return "EmulatorListDown" }
func (EmulatorSelect) Name() string   { return "EmulatorSelect" }
func (KillEmulator) Name() string     { return "KillEmulator" }
func (RefreshEmulators) Name() string { return "RefreshEmulators" }
func (RefreshTelemetry) Name() string { return "RefreshTelemetry" }
func (PickerUp) Name() string         { return "PickerUp" }
func (PickerDown) Name() string       { return "PickerDown" }
func (PickerSelect) Name() string     { return "PickerSelect" }
func (PickerKill) Name() string       { return "PickerKill" }
func (Tick) Name() string             { return "Tick" }
func (Resize) Name() string           { return "Resize" }
func (DevicesUpdated) Name() string   { return "DevicesUpdated" }
func (EmulatorsUpdated) Name() string { return "EmulatorsUpdated" }
func (DeviceSelected) Name() string   { return "DeviceSelected" }
func (TelemetryLoaded) Name() string  { return "TelemetryLoaded" }

func (Quit) action()             {}
func (CycleFocus) action()       {}
func (CycleFocusBack) action()   {}
func (ToggleHelp) action()       {}
func (CloseModal) action()       {}
func (DeviceListUp) action()     {}
func (DeviceListDown) action()   {}
func (RefreshDevices) action()   {}
func (DisconnectDevice) action() {}
func (OpenEmulators) action()    {}
func (EmulatorListUp) action()   {}
func (EmulatorListDown) action() {}
func (EmulatorSelect) action()   {}
func (KillEmulator) action()     {}
func (RefreshEmulators) action() {}
func (RefreshTelemetry) action() {}
func (PickerUp) action()         {}
func (PickerDown) action()       {}
func (PickerSelect) action()     {}
func (PickerKill) action()       {}
func (Tick) action()             {}
func (Resize) action()           {}
func (DevicesUpdated) action()   {}
func (EmulatorsUpdated) action() {}
func (DeviceSelected) action()   {}
func (TelemetryLoaded) action()  {}

// bindable lists the actions a key map may name.
var bindable = []Action{
	Quit{}, CycleFocus{}, CycleFocusBack{}, ToggleHelp{}, CloseModal{},
	DeviceListUp{}, DeviceListDown{}, RefreshDevices{}, DisconnectDevice{}, OpenEmulators{},
	EmulatorListUp{}, EmulatorListDown{}, EmulatorSelect{}, KillEmulator{}, RefreshEmulators{},
	RefreshTelemetry{},
	PickerUp{}, PickerDown{}, PickerSelect{}, PickerKill{},
}

var byName = func() map[string]Action {
	m := make(map[string]Action, len(bindable))
	for _, a := range bindable {
		m[a.Name()] = a
	}
	return m
}()

// ByName returns the key-bindable action with the given name.
func ByName(name string) (Action, bool) {
	a, ok := byName[name]
	return a, ok
}

// Names returns every key-bindable action name, sorted.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the help text shown for a bindable action.
func Describe(name string) string {
	switch name {
	case "Quit":
		return "quit"
	case "CycleFocus":
		return "next panel"
	case "CycleFocusBack":
		return "previous panel"
	case "ToggleHelp":
		return "help"
	case "CloseModal":
		return "close"
	case "DeviceListUp", "EmulatorListUp", "PickerUp":
		return "up"
	case "DeviceListDown", "EmulatorListDown", "PickerDown":
		return "down"
	case "RefreshDevices", "RefreshEmulators":
		return "refresh"
	case "RefreshTelemetry":
		return "reload info"
	case "DisconnectDevice":
		return "disconnect"
	case "OpenEmulators":
		return "emulators"
	case "EmulatorSelect", "PickerSelect":
		return "start/open"
	case "KillEmulator", "PickerKill":
		return "kill"
	default:
		return name
	}
}
