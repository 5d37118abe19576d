package adb

import (
	"log/slog"
	"sync"

	"github.com/pkg/errors"
)

// Client runs adb subcommands against the selected target.
// Use New or NewDefault to create one.
//
// The selected target persists until it is changed with Select, SelectTarget
// or Deselect; invoking a command never resets it.
type Client struct {
	path    string
	enabled bool

	logCommand bool
	logOutput  bool

	runner Runner
	log    *slog.Logger

	mu     sync.RWMutex
	target Target
}

// NewDefault creates a Client that uses DefaultConfig.
func NewDefault() *Client {
	return New(DefaultConfig())
}

// New creates a new Client from cfg.
//
// Enabled is not defaulted: a Config literal that leaves it unset yields a
// disabled client whose operations all return ErrDisabled. Start from
// DefaultConfig to get an enabled one.
func New(cfg Config) *Client {
	c := &Client{
		path:       cfg.Executable,
		enabled:    cfg.Enabled,
		logCommand: cfg.LogCommand,
		logOutput:  cfg.LogOutput,
		runner:     cfg.Runner,
		log:        cfg.Logger,
		target:     DeviceSerial(cfg.Serial),
	}
	if isBlank(c.path) {
		c.path = DefaultExecutableName
	}
	if c.runner == nil {
		c.runner = ExecRunner{}
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// Enabled reports whether the client starts processes at all.
func (c *Client) Enabled() bool {
	return c.enabled
}

// Path returns the adb executable the client runs.
func (c *Client) Path() string {
	return c.path
}

// Select makes serial the target of all following commands.
// An empty serial clears the selection.
func (c *Client) Select(serial string) *Client {
	return c.SelectTarget(DeviceSerial(serial))
}

// SelectTarget makes t the target of all following commands.
func (c *Client) SelectTarget(t Target) *Client {
	c.mu.Lock()
	c.target = t
	c.mu.Unlock()
	return c
}

// Deselect clears the target; following commands carry no selector.
func (c *Client) Deselect() *Client {
	return c.SelectTarget(AnyDevice)
}

// Target returns the currently selected target.
func (c *Client) Target() Target {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.target
}

// Connect selects serial, failing with ErrTargetSelected if a target is
// already selected.
func (c *Client) Connect(serial string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.target.IsZero() {
		return errors.Wrapf(ErrTargetSelected, "already connected to %s", c.target)
	}
	c.target = DeviceSerial(serial)
	return nil
}

// Disconnect clears the target, failing with ErrNoTarget if none is selected.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.target.IsZero() {
		return ErrNoTarget
	}
	c.target = AnyDevice
	return nil
}

// Reconnect replaces any selected target with serial.
func (c *Client) Reconnect(serial string) {
	c.Select(serial)
}

// Run runs subcommand sub with args. All operations of Client go through it.
func (c *Client) Run(sub string, args ...string) (Result, error) {
	return c.Command(sub, args...).Run()
}

// run is the single invocation path.
func (c *Client) run(cmd *Cmd) (Result, error) {
	line := cmd.String()
	if !c.enabled {
		if c.logCommand {
			c.log.Info("adb disabled, not running", "cmd", line)
		} else {
			c.log.Debug("adb disabled, not running", "cmd", line)
		}
		return Result{ExitCode: ExitDisabled, cmd: line}, ErrDisabled
	}
	if c.logCommand {
		c.log.Info("adb command", "cmd", line)
	}

	code, out, err := c.runner.Run(cmd.Path, cmd.Argv()...)
	if err != nil {
		c.log.Error("adb execution failed", "cmd", line, "error", err)
		if errors.Cause(err) != ErrExecFailed {
			err = errors.Wrap(ErrExecFailed, err.Error())
		}
		return Result{ExitCode: ExitExecFailed, Output: out, cmd: line}, err
	}

	if c.logOutput {
		c.log.Info("adb output", "cmd", line, "exit", code, "output", string(out))
	}
	return Result{ExitCode: code, Output: out, cmd: line}, nil
}
