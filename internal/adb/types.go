package adb

import (
	"fmt"
	"strings"
)

// DeviceState is the connection state adb reports for a device.
type DeviceState struct {
	kind stateKind
	raw  string
}

type stateKind int

const (
	stateUnknown stateKind = iota
	stateOnline
	stateOffline
	stateUnauthorized
)

var (
	StateOnline       = DeviceState{kind: stateOnline, raw: "device"}
	StateOffline      = DeviceState{kind: stateOffline, raw: "offline"}
	StateUnauthorized = DeviceState{kind: stateUnauthorized, raw: "unauthorized"}
)

// StateUnknown preserves a state string adb reported that has no dedicated
// variant (recovery, sideload, bootloader, ...).
func StateUnknown(raw string) DeviceState {
	return DeviceState{kind: stateUnknown, raw: raw}
}

// ParseDeviceState maps the second column of `adb devices` output.
func ParseDeviceState(s string) DeviceState {
	switch s {
	case "device":
		return StateOnline
	case "offline":
		return StateOffline
	case "unauthorized":
		return StateUnauthorized
	default:
		return StateUnknown(s)
	}
}

func (s DeviceState) IsOnline() bool       { return s.kind == stateOnline }
func (s DeviceState) IsOffline() bool      { return s.kind == stateOffline }
func (s DeviceState) IsUnauthorized() bool { return s.kind == stateUnauthorized }
func (s DeviceState) IsUnknown() bool      { return s.kind == stateUnknown }

func (s DeviceState) String() string {
	return s.raw
}

// ConnectionKind describes how a device is attached to the bridge.
type ConnectionKind int

const (
	ConnectionUSB ConnectionKind = iota
	ConnectionTCP
	ConnectionEmulator
)

const emulatorSerialPrefix = "emulator-"

// ConnectionKindForSerial derives the connection kind from a serial.
func ConnectionKindForSerial(serial string) ConnectionKind {
	switch {
	case strings.HasPrefix(serial, emulatorSerialPrefix):
		return ConnectionEmulator
	case strings.Contains(serial, ":"):
		return ConnectionTCP
	default:
		return ConnectionUSB
	}
}

func (k ConnectionKind) String() string {
	switch k {
	case ConnectionTCP:
		return "TCP"
	case ConnectionEmulator:
		return "Emulator"
	default:
		return "USB"
	}
}

// Tag is the short label shown next to a device in the list.
func (k ConnectionKind) Tag() string {
	switch k {
	case ConnectionTCP:
		return "[TCP]"
	case ConnectionEmulator:
		return "[EMU]"
	default:
		return "[USB]"
	}
}

type Device struct {
	Serial      string
	State       DeviceState
	Model       string
	Product     string
	TransportID string
	Connection  ConnectionKind
}

// DisplayName returns the model with underscores replaced, or the serial.
func (d Device) DisplayName() string {
	if d.Model != "" {
		return strings.ReplaceAll(d.Model, "_", " ")
	}
	return d.Serial
}

// Avd is an emulator image, optionally running under a device serial.
type Avd struct {
	Name          string
	RunningSerial string
}

func (a Avd) Running() bool {
	return a.RunningSerial != ""
}

func (a Avd) DisplayName() string {
	return strings.ReplaceAll(a.Name, "_", " ")
}

const NotAvailable = "N/A"

type Battery struct {
	Level  int
	Status string
}

func (b Battery) String() string {
	return fmt.Sprintf("%d%% (%s)", b.Level, b.Status)
}

type Storage struct {
	UsedGB  float64
	TotalGB float64
}

func (s Storage) String() string {
	return fmt.Sprintf("%.1f/%.1f GB", s.UsedGB, s.TotalGB)
}

type Ram struct {
	UsedGB  float64
	TotalGB float64
}

func (r Ram) String() string {
	return fmt.Sprintf("%.1f/%.1f GB", r.UsedGB, r.TotalGB)
}

type Screen struct {
	Resolution string
	Density    string
}

type Wifi struct {
	SSID string
	IP   string
}

// Telemetry is the diagnostic record for a single device. Required string
// fields hold NotAvailable when the bridge could not supply them.
type Telemetry struct {
	Serial         string
	Model          string
	AndroidVersion string
	APILevel       string
	State          string
	Connection     string
	ABI            string
	Locale         string

	Battery *Battery
	Storage *Storage
	Ram     *Ram
	Screen  *Screen
	Wifi    *Wifi
}
