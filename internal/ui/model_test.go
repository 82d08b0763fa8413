package ui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/lazyadb/internal/adb"
	"github.com/atomicstack/lazyadb/internal/backend"
	uistate "github.com/atomicstack/lazyadb/internal/ui/state"
)

type fakeBridge struct {
	mu          sync.Mutex
	devices     []adb.Device
	images      []string
	running     map[string]string
	diagnostics map[string]int
	started     []string
	killed      []string
	dropped     []string
	listCalls   int
}

func newFakeBridge(serials ...string) *fakeBridge {
	f := &fakeBridge{running: map[string]string{}, diagnostics: map[string]int{}}
	f.setDevices(serials...)
	return f
}

func (f *fakeBridge) setDevices(serials ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.devices = nil
	for _, s := range serials {
		f.devices = append(f.devices, adb.Device{Serial: s, State: adb.StateOnline, Connection: adb.ConnectionKindForSerial(s)})
	}
}

func (f *fakeBridge) fetches(serial string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.diagnostics[serial]
}

func (f *fakeBridge) ListDevices(context.Context) ([]adb.Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return append([]adb.Device(nil), f.devices...), nil
}

func (f *fakeBridge) ListImages(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.images...), nil
}

func (f *fakeBridge) QueryRunningImageName(_ context.Context, serial string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name, ok := f.running[serial]
	return name, ok
}

func (f *fakeBridge) RunDiagnostic(_ context.Context, serial string, d adb.Diagnostic) (string, error) {
	if d != adb.DiagProps {
		return "", errors.New("unsupported")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.diagnostics[serial]++
	return "[ro.product.model]: [Pixel 7]\n", nil
}

func (f *fakeBridge) StartImage(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = append(f.started, name)
	return nil
}

func (f *fakeBridge) KillBySerial(_ context.Context, serial string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.killed = append(f.killed, serial)
	return nil
}

func (f *fakeBridge) Disconnect(_ context.Context, serial string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dropped = append(f.dropped, serial)
	return nil
}

func newTestHarness(t *testing.T, bridge *fakeBridge) *Harness {
	t.Helper()
	model := NewModel(Options{
		Bridge:          bridge,
		RefreshInterval: time.Hour,
		TickInterval:    time.Millisecond,
		Width:           100,
		Height:          30,
	})
	h := NewHarness(model)
	h.Init()
	return h
}

func deviceChanged(h *Harness) {
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindDeviceChange}})
}

func TestInitListsDevicesAndSelectsFirst(t *testing.T) {
	bridge := newFakeBridge("emulator-5554")
	bridge.images = []string{"Pixel_4"}
	bridge.running["emulator-5554"] = "Pixel_4"
	h := newTestHarness(t, bridge)

	m := h.Model()
	if m.Devices().Len() != 1 {
		t.Fatalf("expected one device, got %d", m.Devices().Len())
	}
	if got := m.Telemetry().Serial(); got != "emulator-5554" {
		t.Fatalf("expected telemetry for emulator-5554, got %q", got)
	}
	if _, ok := m.Telemetry().Current(); !ok {
		t.Fatalf("expected telemetry to be loaded")
	}
	images := m.Emulators().Entries()
	if len(images) != 1 || images[0].RunningSerial != "emulator-5554" {
		t.Fatalf("expected Pixel_4 running on emulator-5554, got %#v", images)
	}
}

func TestEmptyToOneDeviceSelectsOnce(t *testing.T) {
	bridge := newFakeBridge()
	h := newTestHarness(t, bridge)
	if h.Model().Telemetry().Serial() != "" {
		t.Fatalf("expected no selection with an empty roster")
	}

	bridge.setDevices("R58M12345")
	deviceChanged(h)
	if got := bridge.fetches("R58M12345"); got != 1 {
		t.Fatalf("expected one telemetry fetch, got %d", got)
	}

	deviceChanged(h)
	if got := bridge.fetches("R58M12345"); got != 1 {
		t.Fatalf("expected unchanged roster not to refetch, got %d fetches", got)
	}
}

func TestSelectedDeviceDisappears(t *testing.T) {
	bridge := newFakeBridge("a", "b")
	h := newTestHarness(t, bridge)
	h.Key("j")
	if got := h.Model().Telemetry().Serial(); got != "b" {
		t.Fatalf("expected selection to move to b, got %q", got)
	}

	bridge.setDevices("a")
	deviceChanged(h)
	selected, ok := h.Model().Devices().Selected()
	if !ok || selected.Serial != "a" {
		t.Fatalf("expected selection clamped to a, got %#v", selected)
	}
	if got := h.Model().Telemetry().Serial(); got != "a" {
		t.Fatalf("expected telemetry to follow the clamped selection, got %q", got)
	}

	bridge.setDevices()
	deviceChanged(h)
	if got := h.Model().Telemetry().Serial(); got != "" {
		t.Fatalf("expected telemetry cleared, got %q", got)
	}
}

func TestHelpModalCapturesInput(t *testing.T) {
	bridge := newFakeBridge("a", "b")
	h := newTestHarness(t, bridge)
	m := h.Model()

	h.Key("?")
	if m.Modal() != uistate.ModalHelp {
		t.Fatalf("expected help modal, got %s", m.Modal())
	}
	h.Key("j")
	h.Key("tab")
	h.Key("e")
	if m.Devices().Index() != 0 || m.Focus() != uistate.FocusDevices || m.Modal() != uistate.ModalHelp {
		t.Fatalf("expected help to swallow input, got index %d focus %s modal %s", m.Devices().Index(), m.Focus(), m.Modal())
	}
	h.Key("?")
	if m.Modal() != uistate.ModalNone {
		t.Fatalf("expected help closed, got %s", m.Modal())
	}
}

func TestFocusCycle(t *testing.T) {
	h := newTestHarness(t, newFakeBridge())
	h.Key("tab")
	h.Key("tab")
	if got := h.Model().Focus(); got != uistate.FocusContent {
		t.Fatalf("expected content focus, got %s", got)
	}
	h.Key("shift+tab")
	if got := h.Model().Focus(); got != uistate.FocusEmulators {
		t.Fatalf("expected emulators focus, got %s", got)
	}
}

func TestPickerStartsStoppedImage(t *testing.T) {
	bridge := newFakeBridge()
	bridge.images = []string{"Pixel_4", "Pixel_7"}
	h := newTestHarness(t, bridge)

	h.Key("e")
	if h.Model().Modal() != uistate.ModalPicker {
		t.Fatalf("expected picker modal, got %s", h.Model().Modal())
	}
	h.Key("j")
	h.Key("enter")
	if len(bridge.started) != 1 || bridge.started[0] != "Pixel_7" {
		t.Fatalf("expected Pixel_7 to start, got %v", bridge.started)
	}
	if h.Model().Modal() != uistate.ModalPicker {
		t.Fatalf("expected picker to stay open while the image boots")
	}
	h.Key("esc")
	if h.Model().Modal() != uistate.ModalNone {
		t.Fatalf("expected esc to close the picker")
	}
}

func TestPickerRunningImageFocusesContent(t *testing.T) {
	bridge := newFakeBridge("emulator-5554")
	bridge.images = []string{"Pixel_4"}
	bridge.running["emulator-5554"] = "Pixel_4"
	h := newTestHarness(t, bridge)

	h.Key("e")
	h.Key("enter")
	m := h.Model()
	if m.Modal() != uistate.ModalNone || m.Focus() != uistate.FocusContent {
		t.Fatalf("expected picker closed with content focused, got modal %s focus %s", m.Modal(), m.Focus())
	}
	if len(bridge.started) != 0 {
		t.Fatalf("expected no start for a running image, got %v", bridge.started)
	}
}

func TestDisconnectRefreshesRoster(t *testing.T) {
	bridge := newFakeBridge("192.168.1.20:5555")
	h := newTestHarness(t, bridge)
	before := bridge.listCalls
	h.Key("d")
	if len(bridge.dropped) != 1 || bridge.dropped[0] != "192.168.1.20:5555" {
		t.Fatalf("expected tcp device disconnect, got %v", bridge.dropped)
	}
	if bridge.listCalls != before+1 {
		t.Fatalf("expected a roster refresh after disconnect, got %d calls", bridge.listCalls-before)
	}
}

func TestQuitKeys(t *testing.T) {
	h := newTestHarness(t, newFakeBridge())
	h.Key("q")
	if !h.Quit() {
		t.Fatalf("expected q to quit")
	}

	h = newTestHarness(t, newFakeBridge())
	h.Key("?")
	h.Key("ctrl+c")
	if !h.Quit() {
		t.Fatalf("expected ctrl+c to quit even with a modal open")
	}
}

func TestTickRefreshesWhenDue(t *testing.T) {
	bridge := newFakeBridge()
	model := NewModel(Options{Bridge: bridge, RefreshInterval: time.Second, TickInterval: time.Millisecond})
	h := NewHarness(model)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h.Send(tickMsg{at: start})
	h.Send(tickMsg{at: start.Add(500 * time.Millisecond)})
	if bridge.listCalls != 1 {
		t.Fatalf("expected one refresh within the interval, got %d", bridge.listCalls)
	}
	h.Send(tickMsg{at: start.Add(time.Second)})
	if bridge.listCalls != 2 {
		t.Fatalf("expected refresh once due, got %d", bridge.listCalls)
	}
}
