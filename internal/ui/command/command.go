package command

import (
	"github.com/atomicstack/lazyadb/internal/adb"
	"github.com/atomicstack/lazyadb/internal/ui/action"
)

// Command requests a side effect. Local commands are applied by the loop;
// Bridged commands run on the bus.
type Command interface {
	command()
}

// Target names a panel for the Focus command.
type Target int

const (
	TargetDevices Target = iota
	TargetEmulators
	TargetContent
)

// Focus moves panel focus.
type Focus struct{ Target Target }

// CloseModal dismisses whichever modal is open.
type CloseModal struct{}

// OpenPicker opens the emulator picker.
type OpenPicker struct{}

// Announce queues an action for a later loop iteration.
type Announce struct{ Action action.Action }

// Bridged is a command executed against the device bridge.
type Bridged interface {
	Command
	Key() string
	Label() string
}

type RefreshDevices struct{}

type RefreshEmulators struct{ Devices []adb.Device }

type FetchTelemetry struct{ Device adb.Device }

type StartEmulator struct{ Name string }

type KillEmulator struct{ Serial string }

type Disconnect struct{ Serial string }

func (Focus) command()            {}
func (CloseModal) command()       {}
func (OpenPicker) command()       {}
func (Announce) command()         {}
func (RefreshDevices) command()   {}
func (RefreshEmulators) command() {}
func (FetchTelemetry) command()   {}
func (StartEmulator) command()    {}
func (KillEmulator) command()     {}
func (Disconnect) command()       {}

func (RefreshDevices) Key() string     { return "devices" }
func (RefreshEmulators) Key() string   { return "emulators" }
func (c FetchTelemetry) Key() string   { return "telemetry:" + c.Device.Serial }
func (c StartEmulator) Key() string    { return "start:" + c.Name }
func (c KillEmulator) Key() string     { return "kill:" + c.Serial }
func (c Disconnect) Key() string       { return "disconnect:" + c.Serial }
func (RefreshDevices) Label() string   { return "list devices" }
func (RefreshEmulators) Label() string { return "list emulators" }
func (FetchTelemetry) Label() string   { return "fetch telemetry" }
func (StartEmulator) Label() string    { return "start emulator" }
func (KillEmulator) Label() string     { return "kill emulator" }
func (Disconnect) Label() string       { return "disconnect device" }
