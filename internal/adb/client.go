package adb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	goadb "github.com/zach-klippenstein/goadb"
)

// ErrBridgeUnavailable is returned by Check when the adb server cannot be
// started or queried.
var ErrBridgeUnavailable = errors.New("adb bridge unavailable")

// Bridge is the set of device operations the dashboard depends on.
type Bridge interface {
	ListDevices(ctx context.Context) ([]Device, error)
	ListImages(ctx context.Context) ([]string, error)
	QueryRunningImageName(ctx context.Context, serial string) (string, bool)
	RunDiagnostic(ctx context.Context, serial string, d Diagnostic) (string, error)
	StartImage(ctx context.Context, name string) error
	KillBySerial(ctx context.Context, serial string) error
	Disconnect(ctx context.Context, serial string) error
}

// Paths locates the adb and emulator executables.
type Paths struct {
	Adb      string
	Emulator string
}

// Client implements Bridge. Listing and emulator control go through the adb
// and emulator executables; shell diagnostics and the device-change feed use
// the adb server protocol.
type Client struct {
	paths Paths

	mu     sync.Mutex
	server *goadb.Adb
}

var _ Bridge = (*Client)(nil)

var newServer = func(pathToAdb string) (*goadb.Adb, error) {
	return goadb.NewWithConfig(goadb.ServerConfig{PathToAdb: pathToAdb})
}

// NewClient returns a client for the given executables. Empty paths fall
// back to "adb" and "emulator" on PATH.
func NewClient(paths Paths) *Client {
	if strings.TrimSpace(paths.Adb) == "" {
		paths.Adb = "adb"
	}
	if strings.TrimSpace(paths.Emulator) == "" {
		paths.Emulator = "emulator"
	}
	return &Client{paths: paths}
}

// Paths reports the executables the client runs.
func (c *Client) Paths() Paths {
	return c.paths
}

// Check starts the adb server if needed and reads its version.
func (c *Client) Check(ctx context.Context) (int, error) {
	server, err := c.connect()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBridgeUnavailable, err)
	}
	if err := server.StartServer(); err != nil {
		return 0, fmt.Errorf("%w: start server: %v", ErrBridgeUnavailable, err)
	}
	version, err := server.ServerVersion()
	if err != nil {
		return 0, fmt.Errorf("%w: server version: %v", ErrBridgeUnavailable, err)
	}
	return version, nil
}

func (c *Client) connect() (*goadb.Adb, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.server != nil {
		return c.server, nil
	}
	path, err := exec.LookPath(c.paths.Adb)
	if err != nil {
		return nil, fmt.Errorf("locate %s: %w", c.paths.Adb, err)
	}
	server, err := newServer(path)
	if err != nil {
		return nil, err
	}
	c.server = server
	return server, nil
}

func (c *Client) ListDevices(ctx context.Context) ([]Device, error) {
	out, err := runExecCommand(ctx, c.paths.Adb, "devices", "-l").Output()
	if err != nil {
		return nil, fmt.Errorf("adb devices: %w", err)
	}
	return ParseDeviceList(string(out)), nil
}

func (c *Client) ListImages(ctx context.Context) ([]string, error) {
	out, err := runExecCommand(ctx, c.paths.Emulator, "-list-avds").Output()
	if err != nil {
		return nil, fmt.Errorf("emulator -list-avds: %w", err)
	}
	return ParseAvdList(string(out)), nil
}

// QueryRunningImageName asks a running emulator which image it booted.
func (c *Client) QueryRunningImageName(ctx context.Context, serial string) (string, bool) {
	out, err := runExecCommand(ctx, c.paths.Adb, "-s", serial, "emu", "avd", "name").Output()
	if err != nil {
		return "", false
	}
	lines := splitLines(string(out))
	if len(lines) == 0 {
		return "", false
	}
	name := strings.TrimSpace(lines[0])
	if name == "" {
		return "", false
	}
	return name, true
}

func (c *Client) RunDiagnostic(ctx context.Context, serial string, d Diagnostic) (string, error) {
	args := d.Args()
	if len(args) == 0 {
		return "", fmt.Errorf("unknown diagnostic %d", int(d))
	}
	server, err := c.connect()
	if err != nil {
		return "", err
	}
	out, err := server.Device(goadb.DeviceWithSerial(serial)).RunCommand(args[0], args[1:]...)
	if err != nil {
		return "", fmt.Errorf("%s on %s: %w", d, serial, err)
	}
	return out, nil
}

// StartImage launches the emulator detached; it does not wait for boot.
func (c *Client) StartImage(ctx context.Context, name string) error {
	cmd := runExecCommand(context.WithoutCancel(ctx), c.paths.Emulator, "-avd", name)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	return nil
}

func (c *Client) KillBySerial(ctx context.Context, serial string) error {
	if err := runExecCommand(ctx, c.paths.Adb, "-s", serial, "emu", "kill").Run(); err != nil {
		return fmt.Errorf("kill %s: %w", serial, err)
	}
	return nil
}

func (c *Client) Disconnect(ctx context.Context, serial string) error {
	if err := runExecCommand(ctx, c.paths.Adb, "disconnect", serial).Run(); err != nil {
		return fmt.Errorf("disconnect %s: %w", serial, err)
	}
	return nil
}

// DeviceChange reports a device moving between states. A zero state on
// either side means the device was absent.
type DeviceChange struct {
	Serial   string
	OldState DeviceState
	NewState DeviceState
}

// ChangeFeed streams device changes until Shutdown is called.
type ChangeFeed interface {
	C() <-chan DeviceChange
	Err() error
	Shutdown()
}

// Changes opens a device-change feed on the adb server.
func (c *Client) Changes() (ChangeFeed, error) {
	server, err := c.connect()
	if err != nil {
		return nil, err
	}
	return newWatcherFeed(server.NewDeviceWatcher()), nil
}

type watcherFeed struct {
	watcher *goadb.DeviceWatcher
	out     chan DeviceChange
}

func newWatcherFeed(w *goadb.DeviceWatcher) *watcherFeed {
	f := &watcherFeed{watcher: w, out: make(chan DeviceChange, 16)}
	go func() {
		defer close(f.out)
		for evt := range w.C() {
			f.out <- DeviceChange{
				Serial:   evt.Serial,
				OldState: fromServerState(evt.OldState),
				NewState: fromServerState(evt.NewState),
			}
		}
	}()
	return f
}

func (f *watcherFeed) C() <-chan DeviceChange { return f.out }
func (f *watcherFeed) Err() error             { return f.watcher.Err() }
func (f *watcherFeed) Shutdown()              { f.watcher.Shutdown() }

func fromServerState(s goadb.DeviceState) DeviceState {
	switch s {
	case goadb.StateOnline:
		return StateOnline
	case goadb.StateOffline:
		return StateOffline
	case goadb.StateUnauthorized:
		return StateUnauthorized
	case goadb.StateDisconnected:
		return DeviceState{}
	default:
		return StateUnknown("invalid")
	}
}

// ResolveEmulatorPath returns the emulator binary under an SDK root when one
// exists, otherwise "emulator".
func ResolveEmulatorPath(sdkRoots ...string) string {
	for _, root := range sdkRoots {
		if strings.TrimSpace(root) == "" {
			continue
		}
		candidate := filepath.Join(root, "emulator", "emulator")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return "emulator"
}
