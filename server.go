package adb

import (
	"bytes"
	"regexp"

	"github.com/pkg/errors"
)

// StartServer ensures the adb server is running.
func (c *Client) StartServer() (Result, error) {
	return c.Run("start-server")
}

// KillServer kills the adb server if it is running.
func (c *Client) KillServer() (Result, error) {
	return c.Run("kill-server")
}

// Version runs "adb version".
func (c *Client) Version() (Result, error) {
	return c.Run("version")
}

var versionRegex = regexp.MustCompile(`Android Debug Bridge version (\S+)`)

// ParseVersion extracts the version number from the output of "adb version".
func ParseVersion(out string) (string, error) {
	m := versionRegex.FindStringSubmatch(out)
	if m == nil {
		return "", errors.Wrapf(ErrParsing, "no version in %q", out)
	}
	return m[1], nil
}

// ServerVersion returns the version of the adb executable, e.g. "1.0.41".
func (c *Client) ServerVersion() (string, error) {
	res, err := c.Version()
	if err != nil {
		return "", err
	}
	if err := res.Err(); err != nil {
		return "", err
	}
	return ParseVersion(res.String())
}

// Devices runs "adb devices" with opts, e.g. "-l".
func (c *Client) Devices(opts ...string) (Result, error) {
	return c.Run("devices", opts...)
}

// ListDevices returns the list of connected devices.
func (c *Client) ListDevices() ([]DeviceInfo, error) {
	res, err := c.Devices("-l")
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return parseDeviceList(bytes.NewReader(res.Output), parseDeviceLong)
}

// ListDeviceSerials returns the serial numbers of all attached devices.
func (c *Client) ListDeviceSerials() ([]string, error) {
	res, err := c.Devices()
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	devices, err := parseDeviceList(bytes.NewReader(res.Output), parseDeviceShort)
	if err != nil {
		return nil, err
	}

	serials := make([]string, len(devices))
	for i, dev := range devices {
		serials[i] = dev.Serial
	}
	return serials, nil
}

// DeviceInfo returns the list entry of the device serial.
func (c *Client) DeviceInfo(serial string) (DeviceInfo, error) {
	devices, err := c.ListDevices()
	if err != nil {
		return DeviceInfo{}, errors.Wrap(err, "DeviceInfo(ListDevices)")
	}
	for _, deviceInfo := range devices {
		if deviceInfo.Serial == serial {
			return deviceInfo, nil
		}
	}
	return DeviceInfo{}, errors.Wrapf(ErrDeviceNotFound, "device list doesn't contain serial %s", serial)
}
