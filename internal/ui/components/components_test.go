package components

import (
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/lazyadb/internal/adb"
	"github.com/atomicstack/lazyadb/internal/state"
	"github.com/atomicstack/lazyadb/internal/theme"
	"github.com/atomicstack/lazyadb/internal/ui/action"
	"github.com/atomicstack/lazyadb/internal/ui/command"
	uistate "github.com/atomicstack/lazyadb/internal/ui/state"
	"github.com/charmbracelet/x/ansi"
)

func device(serial string) adb.Device {
	return adb.Device{
		Serial:     serial,
		State:      adb.StateOnline,
		Connection: adb.ConnectionKindForSerial(serial),
	}
}

func drawText(c Component, focus uistate.Focus) string {
	return drawTextSized(c, focus, 40, 10)
}

func drawTextSized(c Component, focus uistate.Focus, width, height int) string {
	return ansi.Strip(c.Draw(DrawContext{Focus: focus, Width: width, Height: height}))
}

func TestPlaceholders(t *testing.T) {
	devices := state.NewDeviceStore()
	images := state.NewEmulatorStore()
	telemetry := state.NewTelemetryStore()
	cases := []struct {
		name string
		comp Component
		want string
	}{
		{"devices", NewDevicesPane(devices, time.Second), "(no devices)"},
		{"emulators", NewEmulatorsPane(images, devices), "(no AVDs)"},
		{"content", NewContentPane(devices, telemetry), "Select a device to begin"},
		{"picker", NewPickerModal(images), "(no AVDs)"},
	}
	for _, tc := range cases {
		if out := drawText(tc.comp, uistate.FocusDevices); !strings.Contains(out, tc.want) {
			t.Fatalf("%s: expected %q in\n%s", tc.name, tc.want, out)
		}
	}
}

func TestDrawFillsRequestedSize(t *testing.T) {
	devices := state.NewDeviceStore()
	devices.SetEntries([]adb.Device{device("emulator-5554"), device("R58M12345")})
	out := drawText(NewDevicesPane(devices, time.Second), uistate.FocusDevices)
	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 40 {
			t.Fatalf("line %d: expected width 40, got %d (%q)", i, w, line)
		}
	}
	if !strings.Contains(out, "Devices (2)") {
		t.Fatalf("expected device count in title, got\n%s", out)
	}
}

func TestDisconnectDependsOnConnection(t *testing.T) {
	cases := []struct {
		serial string
		want   command.Command
	}{
		{"emulator-5554", command.KillEmulator{Serial: "emulator-5554"}},
		{"192.168.1.20:5555", command.Disconnect{Serial: "192.168.1.20:5555"}},
		{"R58M12345", nil},
	}
	for _, tc := range cases {
		devices := state.NewDeviceStore()
		devices.SetEntries([]adb.Device{device(tc.serial)})
		cmds := NewDevicesPane(devices, time.Second).Update(action.DisconnectDevice{})
		if tc.want == nil {
			if len(cmds) != 0 {
				t.Fatalf("%s: expected no commands, got %#v", tc.serial, cmds)
			}
			continue
		}
		if len(cmds) != 1 || cmds[0] != tc.want {
			t.Fatalf("%s: expected %#v, got %#v", tc.serial, tc.want, cmds)
		}
	}
}

func TestDevicesMoveAnnouncesSelection(t *testing.T) {
	devices := state.NewDeviceStore()
	devices.SetEntries([]adb.Device{device("a"), device("b")})
	pane := NewDevicesPane(devices, time.Second)
	if cmds := pane.Update(action.DeviceListUp{}); len(cmds) != 0 {
		t.Fatalf("expected no announcement at the top edge, got %#v", cmds)
	}
	cmds := pane.Update(action.DeviceListDown{})
	if len(cmds) != 1 {
		t.Fatalf("expected one command, got %#v", cmds)
	}
	announce, ok := cmds[0].(command.Announce)
	if !ok {
		t.Fatalf("expected announce, got %T", cmds[0])
	}
	sel, ok := announce.Action.(action.DeviceSelected)
	if !ok || sel.Device.Serial != "b" {
		t.Fatalf("expected selection of b, got %#v", announce.Action)
	}
}

func TestTickRefreshDue(t *testing.T) {
	pane := NewDevicesPane(state.NewDeviceStore(), 2*time.Second)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if cmds := pane.Update(action.Tick{At: start}); len(cmds) != 1 {
		t.Fatalf("expected first tick to refresh, got %#v", cmds)
	}
	if cmds := pane.Update(action.Tick{At: start.Add(time.Second)}); len(cmds) != 0 {
		t.Fatalf("expected no refresh before the interval, got %#v", cmds)
	}
	cmds := pane.Update(action.Tick{At: start.Add(2 * time.Second)})
	if len(cmds) != 1 || cmds[0] != (command.RefreshDevices{}) {
		t.Fatalf("expected refresh once the interval elapsed, got %#v", cmds)
	}
}

func TestEmulatorSelect(t *testing.T) {
	images := state.NewEmulatorStore()
	images.SetEntries([]adb.Avd{{Name: "Pixel_4"}, {Name: "Pixel_7", RunningSerial: "emulator-5554"}})
	pane := NewEmulatorsPane(images, state.NewDeviceStore())

	cmds := pane.Update(action.EmulatorSelect{})
	if len(cmds) != 1 || cmds[0] != (command.StartEmulator{Name: "Pixel_4"}) {
		t.Fatalf("expected start for stopped image, got %#v", cmds)
	}
	if cmds := pane.Update(action.KillEmulator{}); len(cmds) != 0 {
		t.Fatalf("expected kill to ignore a stopped image, got %#v", cmds)
	}

	pane.Update(action.EmulatorListDown{})
	cmds = pane.Update(action.EmulatorSelect{})
	if len(cmds) != 1 || cmds[0] != (command.Focus{Target: command.TargetContent}) {
		t.Fatalf("expected focus content for running image, got %#v", cmds)
	}
	cmds = pane.Update(action.KillEmulator{})
	if len(cmds) != 1 || cmds[0] != (command.KillEmulator{Serial: "emulator-5554"}) {
		t.Fatalf("expected kill of running image, got %#v", cmds)
	}
}

func TestContentDropsStaleTelemetry(t *testing.T) {
	devices := state.NewDeviceStore()
	telemetry := state.NewTelemetryStore()
	pane := NewContentPane(devices, telemetry)

	cmds := pane.Update(action.DeviceSelected{Device: device("b")})
	if len(cmds) != 1 || cmds[0].(command.FetchTelemetry).Device.Serial != "b" {
		t.Fatalf("expected telemetry fetch for b, got %#v", cmds)
	}
	if out := drawText(pane, uistate.FocusContent); !strings.Contains(out, "Loading b") {
		t.Fatalf("expected loading placeholder, got\n%s", out)
	}

	pane.Update(action.TelemetryLoaded{Telemetry: adb.Telemetry{Serial: "a", Model: "Stale"}})
	if _, ok := telemetry.Current(); ok {
		t.Fatalf("expected telemetry for a to be dropped")
	}
	pane.Update(action.TelemetryLoaded{Telemetry: adb.Telemetry{Serial: "b", Model: "Pixel", Battery: &adb.Battery{Level: 80, Status: "Charging"}}})
	out := drawTextSized(pane, uistate.FocusContent, 60, 24)
	if !strings.Contains(out, "80% (Charging)") || !strings.Contains(out, "Storage:") {
		t.Fatalf("expected telemetry rows, got\n%s", out)
	}

	pane.Update(action.DeviceSelected{})
	if telemetry.Serial() != "" {
		t.Fatalf("expected telemetry cleared when nothing is selected")
	}
}

func TestTelemetryRowsMarkAbsentSections(t *testing.T) {
	rows := TelemetryRows(adb.Telemetry{Serial: "a"})
	got := map[string]string{}
	for _, r := range rows {
		got[r[0]] = r[1]
	}
	for _, label := range []string{"Battery", "Storage", "RAM", "Screen", "Wi-Fi"} {
		if got[label] != adb.NotAvailable {
			t.Fatalf("expected %s to be %s, got %q", label, adb.NotAvailable, got[label])
		}
	}
}

func TestPickerCursorClampsOnUpdate(t *testing.T) {
	images := state.NewEmulatorStore()
	images.SetEntries([]adb.Avd{{Name: "A"}, {Name: "B"}, {Name: "C"}})
	picker := NewPickerModal(images)
	picker.Update(action.PickerDown{})
	picker.Update(action.PickerDown{})
	if picker.Cursor() != 2 {
		t.Fatalf("expected cursor 2, got %d", picker.Cursor())
	}

	images.SetEntries([]adb.Avd{{Name: "C"}, {Name: "A"}})
	picker.Update(action.EmulatorsUpdated{})
	if picker.Cursor() != 1 {
		t.Fatalf("expected cursor clamped to 1, got %d", picker.Cursor())
	}

	images.SetEntries([]adb.Avd{{Name: "A"}})
	picker.Update(action.EmulatorsUpdated{})
	if picker.Cursor() != 0 {
		t.Fatalf("expected cursor clamped to 0, got %d", picker.Cursor())
	}
}

func TestPickerSelectRunningClosesModal(t *testing.T) {
	images := state.NewEmulatorStore()
	images.SetEntries([]adb.Avd{{Name: "Pixel_4", RunningSerial: "emulator-5554"}})
	picker := NewPickerModal(images)
	cmds := picker.Update(action.PickerSelect{})
	if len(cmds) != 2 || cmds[0] != (command.CloseModal{}) || cmds[1] != (command.Focus{Target: command.TargetContent}) {
		t.Fatalf("expected close then focus, got %#v", cmds)
	}
	cmds = picker.Update(action.PickerKill{})
	if len(cmds) != 1 || cmds[0] != (command.KillEmulator{Serial: "emulator-5554"}) {
		t.Fatalf("expected kill, got %#v", cmds)
	}
}

func TestHelpListsBindings(t *testing.T) {
	out := ansi.Strip(NewHelpModal().Draw(DrawContext{Width: 60, Height: 60}))
	for _, want := range []string{"global", "devices", "picker", "q"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in help\n%s", want, out)
		}
	}
}

func TestStateStyleByState(t *testing.T) {
	styles := theme.Default()
	cases := []struct {
		state adb.DeviceState
		want  string
	}{
		{adb.StateOnline, "online"},
		{adb.StateUnauthorized, "unauthorized"},
		{adb.StateOffline, "offline"},
		{adb.StateUnknown("recovery"), "placeholder"},
	}
	byName := map[string]any{
		"online":       styles.Online,
		"unauthorized": styles.Unauthorized,
		"offline":      styles.Offline,
		"placeholder":  styles.Placeholder,
	}
	for _, tc := range cases {
		if got := stateStyle(styles, tc.state); got != byName[tc.want] {
			t.Fatalf("%s: expected the %s style", tc.state, tc.want)
		}
	}
}
