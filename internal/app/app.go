package app

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/atomicstack/lazyadb/internal/adb"
	"github.com/atomicstack/lazyadb/internal/backend"
	"github.com/atomicstack/lazyadb/internal/keymap"
	"github.com/atomicstack/lazyadb/internal/logging/events"
	"github.com/atomicstack/lazyadb/internal/ui"
)

// settleInterval coalesces bursts of device changes, such as an emulator
// moving from offline to device while booting.
const settleInterval = 500 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	AdbPath         string
	EmulatorPath    string
	RefreshInterval time.Duration
	TickInterval    time.Duration
	KeymapPath      string
	Width           int
	Height          int
	ShowFooter      bool
}

// BridgeInfo describes the bridge Run connected to.
type BridgeInfo struct {
	Paths   adb.Paths
	Version int
}

// Run checks the bridge, then bootstraps and executes the Bubble Tea program.
// A missing or unreachable bridge is reported as adb.ErrBridgeUnavailable
// before the terminal is taken over. onBridge, when set, runs once the
// bridge has answered.
func Run(cfg Config, onBridge func(BridgeInfo)) error {
	client := adb.NewClient(adb.Paths{Adb: cfg.AdbPath, Emulator: cfg.EmulatorPath})
	version, err := client.Check(context.Background())
	if err != nil {
		return err
	}
	if onBridge != nil {
		onBridge(BridgeInfo{Paths: client.Paths(), Version: version})
	}

	keys, err := keymap.Load(cfg.KeymapPath)
	if err != nil {
		return err
	}

	watcher := backend.NewWatcher(client, settleInterval)
	defer watcher.Stop()

	model := ui.NewModel(ui.Options{
		Bridge:          client,
		Watcher:         watcher,
		Keys:            keys,
		RefreshInterval: cfg.RefreshInterval,
		TickInterval:    cfg.TickInterval,
		Width:           cfg.Width,
		Height:          cfg.Height,
		ShowFooter:      cfg.ShowFooter,
	})
	program := tea.NewProgram(model)
	_, err = program.Run()
	events.App.Stop(err)
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
