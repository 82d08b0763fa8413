package components

import (
	"fmt"

	"github.com/atomicstack/lazyadb/internal/adb"
	"github.com/atomicstack/lazyadb/internal/format/table"
	"github.com/atomicstack/lazyadb/internal/logging/events"
	"github.com/atomicstack/lazyadb/internal/state"
	"github.com/atomicstack/lazyadb/internal/ui/action"
	"github.com/atomicstack/lazyadb/internal/ui/command"
	uistate "github.com/atomicstack/lazyadb/internal/ui/state"
)

const noSelection = "Select a device to begin"

// ContentPane shows telemetry for the selected device.
type ContentPane struct {
	devices   state.DeviceStore
	telemetry state.TelemetryStore
}

func NewContentPane(devices state.DeviceStore, telemetry state.TelemetryStore) *ContentPane {
	return &ContentPane{devices: devices, telemetry: telemetry}
}

func (p *ContentPane) Kind() Kind { return KindContent }

func (p *ContentPane) Update(a action.Action) []command.Command {
	switch act := a.(type) {
	case action.DeviceSelected:
		if act.None() {
			p.telemetry.Clear()
			return nil
		}
		p.telemetry.Expect(act.Device.Serial)
		return []command.Command{command.FetchTelemetry{Device: act.Device}}
	case action.TelemetryLoaded:
		events.Device.Telemetry(act.Telemetry.Serial, p.telemetry.Accept(act.Telemetry))
	case action.RefreshTelemetry:
		device, ok := p.devices.Selected()
		if !ok {
			return nil
		}
		if device.Serial != p.telemetry.Serial() {
			p.telemetry.Expect(device.Serial)
		}
		return []command.Command{command.FetchTelemetry{Device: device}}
	}
	return nil
}

func (p *ContentPane) Draw(ctx DrawContext) string {
	styles := ctx.styles()
	focused := ctx.Focus == uistate.FocusContent
	style := panelStyle(styles, focused)

	serial := p.telemetry.Serial()
	if serial == "" {
		return box(style, titleFor(styles, "Device", focused), []string{styles.Placeholder.Render(noSelection)}, ctx.Width, ctx.Height)
	}
	t, ok := p.telemetry.Current()
	if !ok {
		return box(style, titleFor(styles, serial, focused), []string{styles.Loading.Render("Loading " + serial + "…")}, ctx.Width, ctx.Height)
	}
	lines := table.KeyValue(TelemetryRows(t))
	return box(style, titleFor(styles, t.Model, focused), lines, ctx.Width, ctx.Height)
}

// TelemetryRows lists the telemetry fields in display order. Absent optional
// sections show as N/A.
func TelemetryRows(t adb.Telemetry) [][2]string {
	rows := [][2]string{
		{"Serial", t.Serial},
		{"Model", t.Model},
		{"Android", t.AndroidVersion},
		{"API level", t.APILevel},
		{"State", t.State},
		{"Connection", t.Connection},
		{"ABI", t.ABI},
		{"Locale", t.Locale},
	}
	rows = append(rows, [2]string{"Battery", optional(t.Battery)})
	rows = append(rows, [2]string{"Storage", optional(t.Storage)})
	rows = append(rows, [2]string{"RAM", optional(t.Ram)})
	if t.Screen != nil {
		rows = append(rows,
			[2]string{"Resolution", t.Screen.Resolution},
			[2]string{"Density", t.Screen.Density},
		)
	} else {
		rows = append(rows, [2]string{"Screen", adb.NotAvailable})
	}
	if t.Wifi != nil {
		rows = append(rows,
			[2]string{"Wi-Fi SSID", t.Wifi.SSID},
			[2]string{"Wi-Fi IP", t.Wifi.IP},
		)
	} else {
		rows = append(rows, [2]string{"Wi-Fi", adb.NotAvailable})
	}
	return rows
}

func optional[T fmt.Stringer](v *T) string {
	if v == nil {
		return adb.NotAvailable
	}
	return (*v).String()
}
