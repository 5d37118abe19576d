package adb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDeviceState(t *testing.T) {
	var tests = []struct {
		in   string
		want DeviceState
	}{
		{"device", StateOnline},
		{"device\n", StateOnline},
		{"offline", StateOffline},
		{"unauthorized", StateUnauthorized},
		{"bootloader", StateBootloader},
		{"recovery", StateRecovery},
		{"sideload", StateSideload},
		{"", StateDisconnected},
		{"no permissions", StateNoPermissions},
		{"no permissions (user in plugdev group; are your udev rules wrong?); see [http://developer.android.com/tools/device.html]", StateNoPermissions},
		{"unknown", StateInvalid},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, parseDeviceState(test.in), "%q", test.in)
	}
}

func TestDeviceStateString(t *testing.T) {
	assert.Equal(t, "device", StateOnline.String())
	assert.Equal(t, "disconnected", StateDisconnected.String())
	assert.Equal(t, "invalid", StateInvalid.String())
	assert.Equal(t, "no permissions", StateNoPermissions.String())
	assert.Equal(t, StateRecovery, parseDeviceState(StateRecovery.String()))
}
