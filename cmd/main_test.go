package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adb "github.com/d1ced/adbexec"
)

type reply struct {
	code int
	out  string
}

// useClient points the command handlers at a client whose adb is answered
// by replies, keyed by subcommand. It returns the command lines that ran.
func useClient(t *testing.T, enabled bool, replies map[string]reply) *[]string {
	t.Helper()
	var lines []string
	cfg := adb.DefaultConfig()
	cfg.Enabled = enabled
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg.Runner = adb.RunnerFunc(func(name string, args ...string) (int, []byte, error) {
		lines = append(lines, strings.Join(append([]string{name}, args...), " "))
		r := replies[args[len(args)-1]]
		return r.code, []byte(r.out), nil
	})
	prev := client
	client = adb.New(cfg)
	t.Cleanup(func() { client = prev })
	return &lines
}

func setFlag(t *testing.T, flag *bool, v bool) {
	t.Helper()
	prev := *flag
	*flag = v
	t.Cleanup(func() { *flag = prev })
}

func TestBugreport(t *testing.T) {
	var tests = []struct {
		name    string
		enabled bool
		replies map[string]reply
		code    int
		lines   []string
		report  string
	}{{
		name:    "NoDevice",
		enabled: true,
		replies: map[string]reply{"get-serialno": {1, "error: no devices/emulators found\n"}},
		code:    1,
		lines:   []string{"adb get-serialno"},
	}, {
		name:    "Written",
		enabled: true,
		replies: map[string]reply{
			"get-serialno": {0, "emulator-5554\n"},
			"bugreport":    {0, "== dumpstate ==\n"},
		},
		code:   0,
		lines:  []string{"adb get-serialno", "adb bugreport"},
		report: "== dumpstate ==\n",
	}, {
		name: "Disabled",
		code: 0,
	}}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			lines := useClient(t, test.enabled, test.replies)
			path := filepath.Join(t.TempDir(), "bugreport.txt")

			assert.Equal(t, test.code, bugreport(path, false))
			assert.Equal(t, test.lines, *lines)
			if test.report == "" {
				assert.NoFileExists(t, path)
				return
			}
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, test.report, string(data))
		})
	}
}

func TestListsWhenDisabled(t *testing.T) {
	var tests = []struct {
		name string
		flag *bool
		run  func() int
	}{
		{"Forward", forwardListFlag, forward},
		{"Reverse", reverseListFlag, reverse},
		{"Devices", devicesLongFlag, func() int { return listDevices(true) }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			lines := useClient(t, false, nil)
			setFlag(t, test.flag, true)

			assert.Equal(t, 0, test.run())
			assert.Empty(t, *lines)
		})
	}
}

func TestListsWhenExecFails(t *testing.T) {
	cfg := adb.DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg.Runner = adb.RunnerFunc(func(name string, args ...string) (int, []byte, error) {
		return adb.ExitExecFailed, nil, adb.ErrExecFailed
	})
	prev := client
	client = adb.New(cfg)
	t.Cleanup(func() { client = prev })
	setFlag(t, forwardListFlag, true)

	assert.Equal(t, 1, forward())
}

func TestLoadConfigDisable(t *testing.T) {
	setFlag(t, disableFlag, true)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.True(t, cfg.LogCommand)
}
