package components

import (
	"fmt"

	"github.com/atomicstack/lazyadb/internal/adb"
	"github.com/atomicstack/lazyadb/internal/state"
	"github.com/atomicstack/lazyadb/internal/theme"
	"github.com/atomicstack/lazyadb/internal/ui/action"
	"github.com/atomicstack/lazyadb/internal/ui/command"
	uistate "github.com/atomicstack/lazyadb/internal/ui/state"
)

const noImages = "(no AVDs)"

// EmulatorsPane lists emulator images and starts or kills them.
type EmulatorsPane struct {
	images   state.EmulatorStore
	devices  state.DeviceStore
	viewport uistate.Viewport
}

func NewEmulatorsPane(images state.EmulatorStore, devices state.DeviceStore) *EmulatorsPane {
	return &EmulatorsPane{images: images, devices: devices}
}

func (p *EmulatorsPane) Kind() Kind { return KindEmulators }

func (p *EmulatorsPane) Update(a action.Action) []command.Command {
	switch act := a.(type) {
	case action.EmulatorListUp:
		p.images.Move(-1)
	case action.EmulatorListDown:
		p.images.Move(1)
	case action.EmulatorSelect:
		img, ok := p.images.Selected()
		if !ok {
			return nil
		}
		return activateImage(img, false)
	case action.KillEmulator:
		img, ok := p.images.Selected()
		if !ok || !img.Running() {
			return nil
		}
		return []command.Command{command.KillEmulator{Serial: img.RunningSerial}}
	case action.RefreshEmulators:
		return []command.Command{command.RefreshEmulators{Devices: p.devices.Entries()}}
	case action.DevicesUpdated:
		return []command.Command{command.RefreshEmulators{Devices: act.Devices}}
	}
	return nil
}

// activateImage starts a stopped image or shows the running one.
func activateImage(img adb.Avd, fromModal bool) []command.Command {
	if !img.Running() {
		return []command.Command{command.StartEmulator{Name: img.Name}}
	}
	cmds := make([]command.Command, 0, 2)
	if fromModal {
		cmds = append(cmds, command.CloseModal{})
	}
	return append(cmds, command.Focus{Target: command.TargetContent})
}

func (p *EmulatorsPane) Draw(ctx DrawContext) string {
	styles := ctx.styles()
	focused := ctx.Focus == uistate.FocusEmulators
	style := panelStyle(styles, focused)
	title := titleFor(styles, fmt.Sprintf("Emulators (%d)", p.images.Len()), focused)

	entries := p.images.Entries()
	if len(entries) == 0 {
		return box(style, title, []string{styles.Placeholder.Render(noImages)}, ctx.Width, ctx.Height)
	}
	rows := listRows(styles, &p.viewport, imageLabels(styles, entries), p.images.Index(), focused, visibleRows(style, ctx.Height))
	return box(style, title, rows, ctx.Width, ctx.Height)
}

func imageLabels(styles *theme.Styles, images []adb.Avd) []string {
	labels := make([]string, len(images))
	for i, img := range images {
		if img.Running() {
			labels[i] = styles.Running.Render("●") + " " + img.DisplayName() + " " + styles.Tag.Render(img.RunningSerial)
		} else {
			labels[i] = "○ " + img.DisplayName()
		}
	}
	return labels
}
