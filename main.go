package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/atomicstack/lazyadb/internal/adb"
	"github.com/atomicstack/lazyadb/internal/app"
	"github.com/atomicstack/lazyadb/internal/config"
	"github.com/atomicstack/lazyadb/internal/logging"
	"github.com/atomicstack/lazyadb/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	err := app.Run(runtimeCfg.App, func(bridge app.BridgeInfo) {
		events.App.Start(newStartupTrace(runtimeCfg, bridge, probeTerminal()))
	})
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, adb.ErrBridgeUnavailable) {
			fmt.Fprintln(os.Stderr, "Install the Android platform tools or point -adb at the adb executable.")
		}
		os.Exit(1)
	}
}

// startupTrace is the app.start payload: what the dashboard is about to
// drive and the terminal it will draw on.
type startupTrace struct {
	Argv     []string          `json:"argv"`
	Flags    map[string]string `json:"flags"`
	LogFile  string            `json:"log_file"`
	Bridge   bridgeTrace       `json:"bridge"`
	Refresh  string            `json:"refresh"`
	Tick     string            `json:"tick"`
	Keymap   string            `json:"keymap,omitempty"`
	Terminal terminalTrace     `json:"terminal"`
}

type bridgeTrace struct {
	Adb           string `json:"adb"`
	Emulator      string `json:"emulator"`
	Version       int    `json:"version"`
	EmulatorFound bool   `json:"emulator_found"`
}

type terminalTrace struct {
	Source string   `json:"source,omitempty"`
	Width  int      `json:"width,omitempty"`
	Height int      `json:"height,omitempty"`
	Fixed  bool     `json:"fixed_size"`
	Ttys   []string `json:"ttys"`
}

func newStartupTrace(cfg config.Config, bridge app.BridgeInfo, tty terminalTrace) startupTrace {
	_, statErr := os.Stat(bridge.Paths.Emulator)
	if cfg.App.Width > 0 && cfg.App.Height > 0 {
		tty.Width, tty.Height, tty.Fixed = cfg.App.Width, cfg.App.Height, true
		tty.Source = "flags"
	}
	return startupTrace{
		Argv:    cfg.Args,
		Flags:   cfg.Flags,
		LogFile: cfg.Logging.FilePath,
		Bridge: bridgeTrace{
			Adb:           bridge.Paths.Adb,
			Emulator:      bridge.Paths.Emulator,
			Version:       bridge.Version,
			EmulatorFound: statErr == nil,
		},
		Refresh:  durationOrDefault(cfg.App.RefreshInterval),
		Tick:     durationOrDefault(cfg.App.TickInterval),
		Keymap:   cfg.App.KeymapPath,
		Terminal: tty,
	}
}

func durationOrDefault(d time.Duration) string {
	if d <= 0 {
		return "default"
	}
	return d.String()
}

// probeTerminal names the standard descriptors attached to a terminal and
// takes the size from the first one that reports it.
func probeTerminal() terminalTrace {
	var out terminalTrace
	for _, f := range []*os.File{os.Stdin, os.Stdout, os.Stderr} {
		fd := int(f.Fd())
		if !term.IsTerminal(fd) {
			continue
		}
		out.Ttys = append(out.Ttys, f.Name())
		if out.Source != "" {
			continue
		}
		if w, h, err := term.GetSize(fd); err == nil {
			out.Source, out.Width, out.Height = f.Name(), w, h
		}
	}
	return out
}
