package adb

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const kbPerGB = 1048576.0

// Diagnostic names one shell subcommand the telemetry view depends on.
type Diagnostic int

const (
	DiagProps Diagnostic = iota
	DiagBattery
	DiagStorage
	DiagMemory
	DiagScreenSize
	DiagScreenDensity
	DiagWifi
)

// Args returns the shell command line for the diagnostic.
func (d Diagnostic) Args() []string {
	switch d {
	case DiagProps:
		return []string{"getprop"}
	case DiagBattery:
		return []string{"dumpsys", "battery"}
	case DiagStorage:
		return []string{"df", "/data"}
	case DiagMemory:
		return []string{"cat", "/proc/meminfo"}
	case DiagScreenSize:
		return []string{"wm", "size"}
	case DiagScreenDensity:
		return []string{"wm", "density"}
	case DiagWifi:
		return []string{"dumpsys", "wifi"}
	default:
		return nil
	}
}

func (d Diagnostic) String() string {
	return strings.Join(d.Args(), " ")
}

// Props holds the build properties read from `getprop`.
type Props struct {
	Model          string
	AndroidVersion string
	APILevel       string
	ABI            string
	Locale         string
}

// ParseProps reads `[key]: [value]` lines. The first non-empty value wins for
// each field.
func ParseProps(output string) Props {
	var props Props
	set := func(dst *string, value string) {
		if *dst == "" {
			*dst = value
		}
	}
	for _, line := range splitLines(output) {
		key, value, ok := parsePropLine(strings.TrimSpace(line))
		if !ok || value == "" {
			continue
		}
		switch key {
		case "ro.build.version.release":
			set(&props.AndroidVersion, value)
		case "ro.build.version.sdk":
			set(&props.APILevel, value)
		case "ro.product.cpu.abi":
			set(&props.ABI, value)
		case "ro.product.model":
			set(&props.Model, value)
		case "persist.sys.locale", "ro.product.locale":
			set(&props.Locale, value)
		}
	}
	return props
}

func parsePropLine(line string) (string, string, bool) {
	rest, ok := strings.CutPrefix(line, "[")
	if !ok {
		return "", "", false
	}
	key, rest, ok := strings.Cut(rest, "]:")
	if !ok {
		return "", "", false
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "[") || !strings.HasSuffix(rest, "]") || len(rest) < 2 {
		return "", "", false
	}
	return key, rest[1 : len(rest)-1], true
}

// ParseBattery reads `dumpsys battery`. A level line is required.
func ParseBattery(output string) (Battery, bool) {
	level, status, plugged := -1, 0, 0
	for _, line := range splitLines(output) {
		line = strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(line, "level:"); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				level = n
			}
		} else if v, ok := strings.CutPrefix(line, "status:"); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				status = n
			}
		} else if v, ok := strings.CutPrefix(line, "plugged:"); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				plugged = n
			}
		}
	}
	if level < 0 {
		return Battery{}, false
	}
	return Battery{Level: level, Status: BatteryStatus(status, plugged)}, true
}

// BatteryStatus maps the BatteryManager status and plug codes to a label.
func BatteryStatus(status, plugged int) string {
	switch status {
	case 2:
		plug := "USB"
		switch plugged {
		case 1:
			plug = "AC"
		case 4:
			plug = "Wireless"
		}
		return fmt.Sprintf("charging (%s)", plug)
	case 3:
		return "discharging"
	case 4:
		return "not charging"
	case 5:
		return "full"
	default:
		return "unknown"
	}
}

// ParseStorage reads the data row of `df /data`: column 1 is total KB and
// column 2 is used KB.
func ParseStorage(output string) (Storage, bool) {
	lines := splitLines(output)
	for _, line := range lines[min(1, len(lines)):] {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		total, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return Storage{}, false
		}
		used, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return Storage{}, false
		}
		return Storage{UsedGB: KBToGB(used), TotalGB: KBToGB(total)}, true
	}
	return Storage{}, false
}

// ParseRam reads MemTotal and MemAvailable from /proc/meminfo.
func ParseRam(output string) (Ram, bool) {
	var total, available float64
	var haveTotal, haveAvailable bool
	for _, line := range splitLines(output) {
		if v, ok := strings.CutPrefix(line, "MemTotal:"); ok {
			total, haveTotal = parseKB(v)
		} else if v, ok := strings.CutPrefix(line, "MemAvailable:"); ok {
			available, haveAvailable = parseKB(v)
		}
	}
	if !haveTotal || !haveAvailable {
		return Ram{}, false
	}
	return Ram{UsedGB: KBToGB(total - available), TotalGB: KBToGB(total)}, true
}

func parseKB(v string) (float64, bool) {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "kB"))
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseScreenSize reads `wm size` and renders the resolution with a
// multiplication sign.
func ParseScreenSize(output string) (string, bool) {
	for _, line := range splitLines(output) {
		if size, ok := strings.CutPrefix(line, "Physical size:"); ok {
			return strings.ReplaceAll(strings.TrimSpace(size), "x", "×"), true
		}
	}
	return "", false
}

// ParseScreenDensity reads `wm density`.
func ParseScreenDensity(output string) (string, bool) {
	for _, line := range splitLines(output) {
		if density, ok := strings.CutPrefix(line, "Physical density:"); ok {
			return strings.TrimSpace(density) + "dpi", true
		}
	}
	return "", false
}

// CombineScreen builds the screen record; a size is required.
func CombineScreen(size string, haveSize bool, density string, haveDensity bool) (Screen, bool) {
	if !haveSize {
		return Screen{}, false
	}
	if !haveDensity {
		density = NotAvailable
	}
	return Screen{Resolution: size, Density: density}, true
}

const (
	unknownSSID = "<unknown ssid>"
	unsetIP     = "0.0.0.0"
)

// ParseWifi scans `dumpsys wifi` mWifiInfo lines until one names a network.
// A later line replaces an IP found on an earlier, disconnected one.
func ParseWifi(output string) Wifi {
	wifi := Wifi{SSID: NotAvailable, IP: NotAvailable}
	for _, line := range splitLines(output) {
		info, ok := strings.CutPrefix(strings.TrimSpace(line), "mWifiInfo")
		if !ok {
			continue
		}
		if _, rest, ok := strings.Cut(info, "SSID: "); ok {
			ssid, _, _ := strings.Cut(rest, ",")
			ssid = strings.Trim(strings.TrimSpace(ssid), `"`)
			if ssid != "" && ssid != unknownSSID {
				wifi.SSID = ssid
			}
		}
		if _, rest, ok := strings.Cut(info, "IP: "); ok {
			ip := rest
			if i := strings.IndexAny(rest, ",/"); i >= 0 {
				ip = rest[:i]
			}
			ip = strings.TrimSpace(ip)
			if ip != "" && ip != unsetIP {
				wifi.IP = ip
			}
		}
		if wifi.SSID != NotAvailable {
			break
		}
	}
	return wifi
}

// KBToGB converts kibibytes to gibibytes.
func KBToGB(kb float64) float64 {
	return kb / kbPerGB
}

// FormatGB renders a KB quantity as GB with one decimal place.
func FormatGB(kb float64) string {
	return strconv.FormatFloat(KBToGB(kb), 'f', 1, 64)
}

// FetchTelemetry assembles the telemetry record for device. Each diagnostic
// that fails only leaves its own field empty.
func FetchTelemetry(ctx context.Context, bridge Bridge, device Device) Telemetry {
	run := func(d Diagnostic) (string, bool) {
		out, err := bridge.RunDiagnostic(ctx, device.Serial, d)
		if err != nil {
			return "", false
		}
		return out, true
	}

	var props Props
	if out, ok := run(DiagProps); ok {
		props = ParseProps(out)
	}

	t := Telemetry{
		Serial:         device.Serial,
		Model:          orDefault(props.Model, device.DisplayName()),
		AndroidVersion: orDefault(props.AndroidVersion, NotAvailable),
		APILevel:       orDefault(props.APILevel, NotAvailable),
		State:          device.State.String(),
		Connection:     device.Connection.String(),
		ABI:            orDefault(props.ABI, NotAvailable),
		Locale:         orDefault(props.Locale, NotAvailable),
	}

	if out, ok := run(DiagBattery); ok {
		if b, ok := ParseBattery(out); ok {
			t.Battery = &b
		}
	}
	if out, ok := run(DiagStorage); ok {
		if s, ok := ParseStorage(out); ok {
			t.Storage = &s
		}
	}
	if out, ok := run(DiagMemory); ok {
		if r, ok := ParseRam(out); ok {
			t.Ram = &r
		}
	}
	var size, density string
	var haveSize, haveDensity bool
	if out, ok := run(DiagScreenSize); ok {
		size, haveSize = ParseScreenSize(out)
	}
	if out, ok := run(DiagScreenDensity); ok {
		density, haveDensity = ParseScreenDensity(out)
	}
	if s, ok := CombineScreen(size, haveSize, density, haveDensity); ok {
		t.Screen = &s
	}
	if out, ok := run(DiagWifi); ok {
		w := ParseWifi(out)
		t.Wifi = &w
	}
	return t
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
