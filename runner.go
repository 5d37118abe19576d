package adb

import (
	"os/exec"

	"github.com/pkg/errors"
)

// Runner starts an executable, waits for it and returns its exit code and
// merged output. err is only set if the process could not be run at all;
// a nonzero exit code is not an error.
type Runner interface {
	Run(name string, args ...string) (exitCode int, output []byte, err error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(name string, args ...string) (int, []byte, error)

func (f RunnerFunc) Run(name string, args ...string) (int, []byte, error) {
	return f(name, args...)
}

// ExecRunner runs commands with os/exec. Stdout and stderr are merged.
type ExecRunner struct{}

func (ExecRunner) Run(name string, args ...string) (int, []byte, error) {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err == nil {
		return 0, out, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), out, nil
	}
	return ExitExecFailed, out, errors.Wrapf(ErrExecFailed, "%s: %v", name, err)
}
