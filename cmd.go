package adb

import (
	"strings"
)

// Cmd represents one invocation of the adb executable.
// Use Client.Command to get an instance.
type Cmd struct {
	// Path of the adb executable.
	Path string
	// Global options selecting the target, may be empty.
	Target []string
	// Subcommand followed by its arguments.
	Args []string

	client *Client
}

// Command sets up subcommand sub with args against the currently selected
// target. Empty arguments are dropped.
func (c *Client) Command(sub string, args ...string) *Cmd {
	argv := make([]string, 0, len(args)+1)
	argv = append(argv, sub)
	for _, arg := range args {
		if arg == "" {
			continue
		}
		argv = append(argv, arg)
	}
	return &Cmd{
		Path:   c.path,
		Target: c.Target().args(),
		Args:   argv,
		client: c,
	}
}

// Argv returns the arguments passed to the executable.
func (c *Cmd) Argv() []string {
	argv := make([]string, 0, len(c.Target)+len(c.Args))
	argv = append(argv, c.Target...)
	return append(argv, c.Args...)
}

// String renders the command line as <tool> [selector] <subcommand> <args...>
// joined by single spaces. It is meant for display; the process is started
// with Argv and never through a shell.
func (c *Cmd) String() string {
	return strings.Join(append([]string{c.Path}, c.Argv()...), " ")
}

// Run starts the command and waits for it to exit.
func (c *Cmd) Run() (Result, error) {
	return c.client.run(c)
}
