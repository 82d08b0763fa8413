package state

import "github.com/atomicstack/lazyadb/internal/adb"

// TelemetryStore holds the diagnostics for the selected device. A serial
// with no telemetry yet is pending.
type TelemetryStore interface {
	Serial() string
	Current() (adb.Telemetry, bool)
	Expect(serial string)
	Accept(t adb.Telemetry) bool
	Clear()
}

type telemetryStore struct {
	serial  string
	current *adb.Telemetry
}

func NewTelemetryStore() TelemetryStore {
	return &telemetryStore{}
}

func (s *telemetryStore) Serial() string {
	return s.serial
}

func (s *telemetryStore) Current() (adb.Telemetry, bool) {
	if s.current == nil {
		return adb.Telemetry{}, false
	}
	return *s.current, true
}

// Expect discards any held telemetry and waits for serial.
func (s *telemetryStore) Expect(serial string) {
	s.serial = serial
	s.current = nil
}

// Accept keeps t only when it belongs to the expected serial.
func (s *telemetryStore) Accept(t adb.Telemetry) bool {
	if s.serial == "" || t.Serial != s.serial {
		return false
	}
	s.current = &t
	return true
}

func (s *telemetryStore) Clear() {
	s.serial = ""
	s.current = nil
}
