package components

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/atomicstack/lazyadb/internal/adb"
	"github.com/atomicstack/lazyadb/internal/logging/events"
	"github.com/atomicstack/lazyadb/internal/state"
	"github.com/atomicstack/lazyadb/internal/theme"
	"github.com/atomicstack/lazyadb/internal/ui/action"
	"github.com/atomicstack/lazyadb/internal/ui/command"
	uistate "github.com/atomicstack/lazyadb/internal/ui/state"
)

const noDevices = "(no devices)"

// DevicesPane lists attached devices and owns the periodic roster refresh.
type DevicesPane struct {
	devices     state.DeviceStore
	interval    time.Duration
	lastRefresh time.Time
	viewport    uistate.Viewport
}

func NewDevicesPane(devices state.DeviceStore, refreshInterval time.Duration) *DevicesPane {
	return &DevicesPane{devices: devices, interval: refreshInterval}
}

func (p *DevicesPane) Kind() Kind { return KindDevices }

func (p *DevicesPane) Update(a action.Action) []command.Command {
	switch act := a.(type) {
	case action.DeviceListUp:
		return p.move(-1)
	case action.DeviceListDown:
		return p.move(1)
	case action.RefreshDevices:
		return []command.Command{command.RefreshDevices{}}
	case action.Tick:
		if act.At.Sub(p.lastRefresh) < p.interval {
			return nil
		}
		p.lastRefresh = act.At
		return []command.Command{command.RefreshDevices{}}
	case action.DisconnectDevice:
		device, ok := p.devices.Selected()
		if !ok {
			return nil
		}
		switch device.Connection {
		case adb.ConnectionEmulator:
			return []command.Command{command.KillEmulator{Serial: device.Serial}}
		case adb.ConnectionTCP:
			return []command.Command{command.Disconnect{Serial: device.Serial}}
		}
	case action.OpenEmulators:
		return []command.Command{command.OpenPicker{}}
	}
	return nil
}

func (p *DevicesPane) move(delta int) []command.Command {
	sel := p.devices.Move(delta)
	if !sel.Changed {
		return nil
	}
	device, _ := p.devices.Selected()
	events.Device.Selected(device.Serial)
	return []command.Command{command.Announce{Action: action.DeviceSelected{Device: device}}}
}

func (p *DevicesPane) Draw(ctx DrawContext) string {
	styles := ctx.styles()
	focused := ctx.Focus == uistate.FocusDevices
	style := panelStyle(styles, focused)
	title := titleFor(styles, fmt.Sprintf("Devices (%d)", p.devices.Len()), focused)

	entries := p.devices.Entries()
	if len(entries) == 0 {
		return box(style, title, []string{styles.Placeholder.Render(noDevices)}, ctx.Width, ctx.Height)
	}
	labels := make([]string, len(entries))
	for i, d := range entries {
		labels[i] = deviceLabel(styles, d)
	}
	rows := listRows(styles, &p.viewport, labels, p.devices.Index(), focused, visibleRows(style, ctx.Height))
	return box(style, title, rows, ctx.Width, ctx.Height)
}

func deviceLabel(styles *theme.Styles, d adb.Device) string {
	return fmt.Sprintf("%s %s %s", d.Connection.Tag(), d.DisplayName(), stateStyle(styles, d.State).Render(d.State.String()))
}

func stateStyle(styles *theme.Styles, s adb.DeviceState) *lipgloss.Style {
	switch {
	case s.IsOnline():
		return styles.Online
	case s.IsUnauthorized():
		return styles.Unauthorized
	case s.IsOffline():
		return styles.Offline
	default:
		return styles.Placeholder
	}
}
