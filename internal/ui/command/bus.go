package command

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/atomicstack/lazyadb/internal/adb"
	"github.com/atomicstack/lazyadb/internal/logging/events"
	"github.com/atomicstack/lazyadb/internal/roster"
	"github.com/atomicstack/lazyadb/internal/ui/action"
)

// Result is delivered to the loop when a bridged command finishes. Action is
// nil when the command failed or has nothing to report.
type Result struct {
	Key    string
	Action action.Action
}

// Bus runs bridged commands off the loop goroutine and refuses a command
// whose key is still in flight. Execute and Done must be called from the
// loop goroutine.
type Bus struct {
	bridge   adb.Bridge
	ctx      context.Context
	inflight map[string]struct{}
}

// New initialises a command bus for bridge.
func New(bridge adb.Bridge) *Bus {
	return &Bus{bridge: bridge, ctx: context.Background(), inflight: map[string]struct{}{}}
}

// InFlight reports whether a command with key is running.
func (b *Bus) InFlight(key string) bool {
	_, ok := b.inflight[key]
	return ok
}

// Done clears key once its Result has been received.
func (b *Bus) Done(key string) {
	delete(b.inflight, key)
}

// Execute wraps cmd into a Bubble Tea command while emitting trace logs. It
// returns nil when an identical command is already running.
func (b *Bus) Execute(cmd Bridged) tea.Cmd {
	key, label := cmd.Key(), cmd.Label()
	if b.InFlight(key) {
		events.Command.Skip(key, label)
		return nil
	}
	b.inflight[key] = struct{}{}
	events.Command.Queue(key, label)
	return func() tea.Msg {
		act, err := b.run(cmd)
		if err != nil {
			events.Command.Error(key, label, err)
			return Result{Key: key}
		}
		if act == nil {
			events.Command.NoOp(key, label)
			return Result{Key: key}
		}
		events.Command.Result(key, label, act.Name())
		return Result{Key: key, Action: act}
	}
}

func (b *Bus) run(cmd Bridged) (action.Action, error) {
	ctx := b.ctx
	switch c := cmd.(type) {
	case RefreshDevices:
		devices, err := b.bridge.ListDevices(ctx)
		if err != nil {
			return nil, err
		}
		events.Device.Listed(len(devices))
		return action.DevicesUpdated{Devices: devices}, nil
	case RefreshEmulators:
		images := roster.BuildImages(ctx, b.bridge, c.Devices)
		running := 0
		for _, img := range images {
			if img.Running() {
				running++
			}
		}
		events.Emulator.Listed(len(images), running)
		return action.EmulatorsUpdated{Images: images}, nil
	case FetchTelemetry:
		return action.TelemetryLoaded{Telemetry: adb.FetchTelemetry(ctx, b.bridge, c.Device)}, nil
	case StartEmulator:
		events.Emulator.Start(c.Name)
		if err := b.bridge.StartImage(ctx, c.Name); err != nil {
			return nil, err
		}
		return action.RefreshDevices{}, nil
	case KillEmulator:
		events.Emulator.Kill(c.Serial)
		if err := b.bridge.KillBySerial(ctx, c.Serial); err != nil {
			return nil, err
		}
		return action.RefreshDevices{}, nil
	case Disconnect:
		events.Device.Disconnect(c.Serial)
		if err := b.bridge.Disconnect(ctx, c.Serial); err != nil {
			return nil, err
		}
		return action.RefreshDevices{}, nil
	default:
		return nil, nil
	}
}
