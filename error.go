package adb

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel error values used by this package
var (
	// The client is disabled, no process was started.
	ErrDisabled = errors.New("adb disabled")
	// The adb executable could not be located or started.
	ErrExecFailed = errors.New("adb execution failed")
	// Connect was called while a target is already selected.
	ErrTargetSelected = errors.New("target already selected")
	// Disconnect was called without a selected target.
	ErrNoTarget = errors.New("no target selected")

	ErrParsing            = errors.New("parse error")
	ErrAssertionViolation = errors.New("assertion violation")
	ErrDeviceNotFound     = errors.New("device not found")
)

// ExitError reports an adb invocation that ran but exited with a nonzero code.
type ExitError struct {
	Command  string
	ExitCode int
	Output   string
}

func (e *ExitError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%q exit code %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%q exit code %d: %s", e.Command, e.ExitCode, e.Output)
}
