package adb

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

type DeviceInfo struct {
	// Always set.
	Serial string
	State  DeviceState
	// Product, device, model and transport id are not set in the short form.
	Product     string
	Model       string
	DeviceInfo  string
	TransportID string
	// Only set for devices connected via USB.
	USB string
}

func newDevice(serial, state string, attrs map[string]string) (DeviceInfo, error) {
	if serial == "" {
		return DeviceInfo{}, errors.Wrap(ErrAssertionViolation, "device serial cannot be blank")
	}
	return DeviceInfo{
		Serial:      serial,
		State:       parseDeviceState(state),
		Product:     attrs["product"],
		Model:       attrs["model"],
		DeviceInfo:  attrs["device"],
		TransportID: attrs["transport_id"],
		USB:         attrs["usb"],
	}, nil
}

// IsUSB returns true if the device is connected via USB.
func (d DeviceInfo) IsUSB() bool {
	return d.USB != ""
}

// Target returns the selector addressing this device.
func (d DeviceInfo) Target() Target {
	return DeviceSerial(d.Serial)
}

// parseDeviceList parses the output of "adb devices", skipping the header,
// daemon start banners and blank lines.
func parseDeviceList(list io.Reader, lineParseFunc func(string) (DeviceInfo, error)) ([]DeviceInfo, error) {
	devices := []DeviceInfo{}
	scanner := bufio.NewScanner(list)

	for scanner.Scan() {
		line := scanner.Text()
		if isBlank(line) ||
			strings.HasPrefix(line, "List of devices") ||
			strings.HasPrefix(line, "* ") {
			continue
		}
		device, err := lineParseFunc(line)
		if err != nil {
			return nil, err
		}
		devices = append(devices, device)
	}

	return devices, errors.Wrap(scanner.Err(), "error reading device list")
}

func parseDeviceShort(line string) (DeviceInfo, error) {
	serial, state, _, err := splitDeviceLine(line)
	if err != nil {
		return DeviceInfo{}, err
	}
	return newDevice(serial, state, map[string]string{})
}

func parseDeviceLong(line string) (DeviceInfo, error) {
	serial, state, attrs, err := splitDeviceLine(line)
	if err != nil {
		return DeviceInfo{}, err
	}
	return newDevice(serial, state, parseDeviceAttributes(attrs))
}

var deviceAttributePattern = regexp.MustCompile(`^[a-z_]+:\S*$`)

// splitDeviceLine splits a device line into serial, state and attributes.
// The state runs up to the first key:val attribute and may span several
// words, e.g. "no permissions (missing udev rules); see [http://...]".
func splitDeviceLine(line string) (string, string, []string, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", "", nil, errors.Wrapf(ErrParsing,
			"malformed device line, expected at least 2 fields but found %d", len(fields))
	}
	end := 2
	for end < len(fields) && !deviceAttributePattern.MatchString(fields[end]) {
		end++
	}
	return fields[0], strings.Join(fields[1:end], " "), fields[end:], nil
}

func parseDeviceAttributes(fields []string) map[string]string {
	attrs := map[string]string{}
	for _, field := range fields {
		key, val := parseKeyVal(field)
		if key == "" {
			continue
		}
		attrs[key] = val
	}
	return attrs
}

// Parses a key:val pair and returns key, val.
func parseKeyVal(pair string) (string, string) {
	split := strings.SplitN(pair, ":", 2)
	if len(split) != 2 {
		return "", ""
	}
	return split[0], split[1]
}
