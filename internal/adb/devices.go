package adb

import "strings"

// ParseDeviceList parses the output of `adb devices -l`.
func ParseDeviceList(output string) []Device {
	devices := make([]Device, 0, 4)
	for _, line := range splitLines(output) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of") || strings.HasPrefix(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		serial := fields[0]
		device := Device{
			Serial:     serial,
			State:      ParseDeviceState(fields[1]),
			Connection: ConnectionKindForSerial(serial),
		}
		for _, token := range fields[2:] {
			key, value, ok := strings.Cut(token, ":")
			if !ok {
				continue
			}
			switch key {
			case "model":
				device.Model = value
			case "product":
				device.Product = value
			case "transport_id":
				device.TransportID = value
			}
		}
		devices = append(devices, device)
	}
	return devices
}

// ParseAvdList parses the output of `emulator -list-avds`.
func ParseAvdList(output string) []string {
	var names []string
	for _, line := range splitLines(output) {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	normalised := strings.ReplaceAll(text, "\r\n", "\n")
	normalised = strings.ReplaceAll(normalised, "\r", "\n")
	return strings.Split(normalised, "\n")
}
