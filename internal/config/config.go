package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/lazyadb/internal/adb"
	"github.com/atomicstack/lazyadb/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envAdb         = "LAZYADB_ADB"
	envEmulator    = "LAZYADB_EMULATOR"
	envRefresh     = "LAZYADB_REFRESH"
	envTick        = "LAZYADB_TICK"
	envKeymap      = "LAZYADB_KEYMAP"
	envWidth       = "LAZYADB_WIDTH"
	envHeight      = "LAZYADB_HEIGHT"
	envShowFooter  = "LAZYADB_FOOTER"
	envTrace       = "LAZYADB_TRACE"
	envLogFile     = "LAZYADB_LOG_FILE"
	envAdbFallback = "ADB"
	envAndroidHome = "ANDROID_HOME"
	envSdkRoot     = "ANDROID_SDK_ROOT"

	defaultRefresh = 2 * time.Second
	defaultTick    = 250 * time.Millisecond
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("lazyadb", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	adbPath := fs.String("adb", envOrDefault(env, envAdb, envOrDefault(env, envAdbFallback, "adb")), "path to the adb executable")
	emulatorPath := fs.String("emulator", envOrDefault(env, envEmulator, adb.ResolveEmulatorPath(env[envAndroidHome], env[envSdkRoot])), "path to the emulator executable")
	refresh := fs.Duration("refresh", envOrDuration(env, envRefresh, defaultRefresh), "device list refresh interval")
	tick := fs.Duration("tick", envOrDuration(env, envTick, defaultTick), "redraw interval")
	keymap := fs.String("keymap", envOrDefault(env, envKeymap, ""), "path to a YAML key map overriding the defaults")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, true), "show the key hint footer")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			AdbPath:         *adbPath,
			EmulatorPath:    *emulatorPath,
			RefreshInterval: *refresh,
			TickInterval:    *tick,
			KeymapPath:      *keymap,
			Width:           *width,
			Height:          *height,
			ShowFooter:      *footer,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"adb":      *adbPath,
			"emulator": *emulatorPath,
			"refresh":  refresh.String(),
			"tick":     tick.String(),
			"keymap":   *keymap,
			"width":    strconv.Itoa(*width),
			"height":   strconv.Itoa(*height),
			"footer":   strconv.FormatBool(*footer),
			"trace":    strconv.FormatBool(*trace),
			"logFile":  *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects intervals that would stall or spin the refresh loop.
func Validate(cfg Config) error {
	if cfg.App.RefreshInterval <= 0 {
		return fmt.Errorf("refresh interval must be > 0 (got %s)", cfg.App.RefreshInterval)
	}
	if cfg.App.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be > 0 (got %s)", cfg.App.TickInterval)
	}
	if strings.TrimSpace(cfg.App.AdbPath) == "" {
		return fmt.Errorf("adb path must not be empty")
	}
	return nil
}
