package adb

import "fmt"

// Target selects which device an invocation addresses. The zero value
// selects nothing and lets adb pick the default/only device.
type Target struct {
	kind uint8
	// Only used for serialTarget and transportTarget.
	id string
}

const (
	anyTarget = iota
	serialTarget
	usbTarget
	localTarget
	transportTarget
)

var (
	// AnyDevice adds no selector.
	AnyDevice = Target{anyTarget, ""}
	// AnyUSBDevice selects the only USB device (-d).
	AnyUSBDevice = Target{usbTarget, ""}
	// AnyLocalDevice selects the only TCP/IP device or emulator (-e).
	AnyLocalDevice = Target{localTarget, ""}
)

// DeviceSerial selects the device with the given serial (-s <serial>).
func DeviceSerial(serial string) Target {
	if serial == "" {
		return AnyDevice
	}
	return Target{serialTarget, serial}
}

// DeviceTransport selects the device with the given transport id (-t <id>).
func DeviceTransport(id string) Target {
	if id == "" {
		return AnyDevice
	}
	return Target{transportTarget, id}
}

// IsZero reports whether t adds no selector.
func (t Target) IsZero() bool {
	return t.kind == anyTarget
}

// Serial returns the serial of a DeviceSerial target, "" otherwise.
func (t Target) Serial() string {
	if t.kind != serialTarget {
		return ""
	}
	return t.id
}

func (t Target) String() string {
	switch t.kind {
	case anyTarget:
		return "Device"
	case usbTarget:
		return "DeviceUSB"
	case localTarget:
		return "DeviceLocal"
	case serialTarget:
		return fmt.Sprintf("DeviceSerial[%s]", t.id)
	case transportTarget:
		return fmt.Sprintf("DeviceTransport[%s]", t.id)
	default:
		return "<invalid Target>"
	}
}

// args returns the global options placed between the executable and the
// subcommand.
func (t Target) args() []string {
	switch t.kind {
	case usbTarget:
		return []string{"-d"}
	case localTarget:
		return []string{"-e"}
	case serialTarget:
		return []string{"-s", t.id}
	case transportTarget:
		return []string{"-t", t.id}
	default:
		return nil
	}
}
