package roster

import (
	"context"

	"github.com/atomicstack/lazyadb/internal/adb"
)

// ImageSource is the part of the bridge needed to build the emulator list.
type ImageSource interface {
	ListImages(ctx context.Context) ([]string, error)
	QueryRunningImageName(ctx context.Context, serial string) (string, bool)
}

// BuildImages joins the declared images with the images running on the
// emulator-kind devices. Each emulator is queried once; a failed query drops
// that device. Running images that were not declared are appended once, the
// first serial reporting a name wins.
func BuildImages(ctx context.Context, src ImageSource, devices []adb.Device) []adb.Avd {
	type running struct {
		name   string
		serial string
	}
	var live []running
	for _, d := range devices {
		if d.Connection != adb.ConnectionEmulator {
			continue
		}
		name, ok := src.QueryRunningImageName(ctx, d.Serial)
		if !ok {
			continue
		}
		live = append(live, running{name: name, serial: d.Serial})
	}

	serialFor := func(name string) string {
		for _, r := range live {
			if r.name == name {
				return r.serial
			}
		}
		return ""
	}

	declared, err := src.ListImages(ctx)
	if err != nil {
		declared = nil
	}

	images := make([]adb.Avd, 0, len(declared)+len(live))
	seen := make(map[string]struct{}, len(declared)+len(live))
	for _, name := range declared {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		images = append(images, adb.Avd{Name: name, RunningSerial: serialFor(name)})
	}
	for _, r := range live {
		if _, dup := seen[r.name]; dup {
			continue
		}
		seen[r.name] = struct{}{}
		images = append(images, adb.Avd{Name: r.name, RunningSerial: r.serial})
	}
	return images
}

// DeviceKey and ImageKey identify roster entries across refreshes.
func DeviceKey(d adb.Device) string { return d.Serial }

func ImageKey(a adb.Avd) string { return a.Name }
