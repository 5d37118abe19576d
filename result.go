package adb

import "strings"

// Exit codes that never come from the adb executable itself.
const (
	// ExitExecFailed is returned when adb could not be located or started.
	ExitExecFailed = -2
	// ExitDisabled is returned by every operation of a disabled Client.
	ExitDisabled = -3
)

// Result is the outcome of one adb invocation: its exit code and its
// merged stdout/stderr, unaltered.
type Result struct {
	ExitCode int
	Output   []byte

	cmd string
}

// Text returns the output with surrounding whitespace removed.
func (r Result) Text() string {
	return strings.TrimSpace(string(r.Output))
}

// String returns the output as produced.
func (r Result) String() string {
	return string(r.Output)
}

// Success reports whether adb ran and exited with code 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Disabled reports whether the result came from a disabled Client.
func (r Result) Disabled() bool {
	return r.ExitCode == ExitDisabled
}

// Err returns an *ExitError if adb exited with a nonzero code, nil otherwise.
// Results of disabled clients or failed executions also yield an *ExitError
// carrying the sentinel code.
func (r Result) Err() error {
	if r.ExitCode == 0 {
		return nil
	}
	return &ExitError{
		Command:  r.cmd,
		ExitCode: r.ExitCode,
		Output:   r.Text(),
	}
}
