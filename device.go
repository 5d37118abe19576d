package adb

import (
	"github.com/pkg/errors"
)

// Push copies local on the host to remote on the target.
// opts, e.g. "--sync", are placed before the paths.
func (c *Client) Push(local, remote string, opts ...string) (Result, error) {
	return c.Run("push", joinArgs(opts, local, remote)...)
}

// Pull copies remote on the target to local on the host.
func (c *Client) Pull(remote, local string, opts ...string) (Result, error) {
	return c.Run("pull", joinArgs(opts, remote, local)...)
}

/*
Shell runs command in a shell on the target and waits for it to finish.

command is passed to adb as a single argument. adb joins its arguments with
spaces and hands them to the device shell, so the device sees command as
written and the host shell never interprets it.
*/
func (c *Client) Shell(command string) (Result, error) {
	return c.Run("shell", command)
}

// ExecOut is like Shell but without a pty, so binary output stays intact.
func (c *Client) ExecOut(command string) (Result, error) {
	return c.Run("exec-out", command)
}

// Install installs the package at path on the host, opts e.g. "-r", "-g".
func (c *Client) Install(path string, opts ...string) (Result, error) {
	return c.Run("install", joinArgs(opts, path)...)
}

// Uninstall removes the package name, opts e.g. "-k".
func (c *Client) Uninstall(name string, opts ...string) (Result, error) {
	return c.Run("uninstall", joinArgs(opts, name)...)
}

// GetSerialNo prints the serial of the target.
func (c *Client) GetSerialNo() (Result, error) {
	return c.Run("get-serialno")
}

// GetState prints the state of the target: offline, bootloader or device.
func (c *Client) GetState() (Result, error) {
	return c.Run("get-state")
}

// State returns the parsed state of the target.
func (c *Client) State() (DeviceState, error) {
	res, err := c.GetState()
	if err != nil {
		return StateInvalid, err
	}
	if err := res.Err(); err != nil {
		if deviceNotFoundPattern.Match(res.Output) {
			return StateDisconnected, errors.Wrap(ErrDeviceNotFound, res.Text())
		}
		return StateInvalid, errors.Wrap(err, "State")
	}
	return parseDeviceState(res.Text()), nil
}

// IsDeviceAvailable asks adb for the target's serial and reports whether
// a device answered.
func (c *Client) IsDeviceAvailable() bool {
	res, err := c.GetSerialNo()
	if err != nil || !res.Success() {
		return false
	}
	return !deviceNotFoundPattern.Match(res.Output)
}

// Sync copies changed files from $ANDROID_PRODUCT_OUT to the target.
// opts may name the partition, e.g. "system".
func (c *Client) Sync(opts ...string) (Result, error) {
	return c.Run("sync", opts...)
}

// BugReport runs "adb bugreport". The report is captured in the Result.
func (c *Client) BugReport() (Result, error) {
	return c.Run("bugreport")
}

// WaitForDevice blocks until the target is online.
func (c *Client) WaitForDevice() (Result, error) {
	return c.Run("wait-for-device")
}

// Reboot reboots the target, mode may be "", "bootloader", "recovery" or
// "sideload". adb returns before the device is back; use WaitForDevice.
func (c *Client) Reboot(mode string) (Result, error) {
	return c.Run("reboot", mode)
}

// Root restarts adbd on the target with root permissions.
func (c *Client) Root() (Result, error) {
	return c.Run("root")
}

// Emu runs an emulator console command, e.g. Emu("kill").
func (c *Client) Emu(args ...string) (Result, error) {
	return c.Run("emu", args...)
}
