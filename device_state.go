package adb

import "strings"

// DeviceState represents a state adb reports for a device.
// A device can be communicated with when it's in StateOnline.
// A USB device will make the following state transitions:
//
//	Plugged in: StateDisconnected->StateOffline->StateOnline
//	Unplugged:  StateOnline->StateDisconnected
type DeviceState uint8

const (
	StateInvalid DeviceState = iota
	StateUnauthorized
	StateDisconnected
	StateOffline
	StateOnline
	StateBootloader
	StateRecovery
	StateSideload
	// The host user may not open the USB device (udev rules).
	StateNoPermissions
)

var deviceStateStrings = map[string]DeviceState{
	"":             StateDisconnected,
	"offline":      StateOffline,
	"device":       StateOnline,
	"unauthorized": StateUnauthorized,
	"bootloader":   StateBootloader,
	"recovery":     StateRecovery,
	"sideload":     StateSideload,
}

func parseDeviceState(str string) DeviceState {
	str = strings.TrimSpace(str)
	if state, ok := deviceStateStrings[str]; ok {
		return state
	}
	// adb appends a hint, e.g. "no permissions (...); see [http://...]".
	if strings.HasPrefix(str, "no permissions") {
		return StateNoPermissions
	}
	return StateInvalid
}

func (s DeviceState) String() string {
	switch s {
	case StateUnauthorized:
		return "unauthorized"
	case StateDisconnected:
		return "disconnected"
	case StateOffline:
		return "offline"
	case StateOnline:
		return "device"
	case StateBootloader:
		return "bootloader"
	case StateRecovery:
		return "recovery"
	case StateSideload:
		return "sideload"
	case StateNoPermissions:
		return "no permissions"
	default:
		return "invalid"
	}
}
