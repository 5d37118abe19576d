package extra

import (
	"syscall"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adb "github.com/d1ced/adbexec"
)

// fakeShell answers shell commands from a map and records them.
type fakeShell struct {
	replies  map[string]string
	commands []string
}

func (f *fakeShell) Shell(command string) (adb.Result, error) {
	f.commands = append(f.commands, command)
	out, ok := f.replies[command]
	if !ok {
		return adb.Result{ExitCode: 1, Output: []byte("/system/bin/sh: not found")}, nil
	}
	return adb.Result{Output: []byte(out)}, nil
}

const psLegacy = `USER     PID   PPID  VSIZE  RSS     WCHAN    PC         NAME
root      1     0     684    540   ffffffff 00000000 S /init
root      2     0     0      0     ffffffff 00000000 S kthreadd
u0_a52    1234  120   123456 4567  ffffffff 00000000 S com.example.app
`

const psToybox = `USER           PID  PPID     VSZ    RSS WCHAN            ADDR S NAME
root             1     0 10904636 11640 do_epoll_wait      0 S init
u0_a52        1234   120 13894040 98520 do_epoll_wait      0 S com.example.app
`

func TestListProcesses(t *testing.T) {
	for name, out := range map[string]string{"Legacy": psLegacy, "Toybox": psToybox} {
		t.Run(name, func(t *testing.T) {
			s := &fakeShell{replies: map[string]string{"ps": out}}

			pp, err := ListProcesses(s)
			require.NoError(t, err)
			require.NotEmpty(t, pp)
			last := pp[len(pp)-1]
			assert.Equal(t, Process{User: "u0_a52", Pid: 1234, Name: "com.example.app"}, last)
			assert.Equal(t, 1, pp[0].Pid)
		})
	}
}

func TestKillProcessByName(t *testing.T) {
	s := &fakeShell{replies: map[string]string{
		"ps":           psLegacy,
		"kill -9 1234": "",
	}}

	require.NoError(t, KillProcessByName(s, "com.example.app", syscall.SIGKILL))
	assert.Equal(t, []string{"ps", "kill -9 1234"}, s.commands)
}

func TestKillProcessByNameFailure(t *testing.T) {
	s := &fakeShell{replies: map[string]string{"ps": psLegacy}}

	err := KillProcessByName(s, "kthreadd", syscall.SIGTERM)
	exitErr, ok := errors.Cause(err).(*adb.ExitError)
	require.True(t, ok)
	assert.Equal(t, 1, exitErr.ExitCode)
}

const dumpsysPackage = `Packages:
  Package [com.example.app] (3c0a9f1):
    userId=10052
    codePath=/data/app/~~abc==/com.example.app-xyz==
    versionCode=42 minSdk=24 targetSdk=34
    versionName=1.4.2
`

func TestStatPackage(t *testing.T) {
	s := &fakeShell{replies: map[string]string{
		"dumpsys package com.example.app": dumpsysPackage,
		"dumpsys package com.missing":     "Unable to find package: com.missing\n",
	}}

	pi, err := StatPackage(s, "com.example.app")
	require.NoError(t, err)
	assert.Equal(t, "com.example.app", pi.Name)
	assert.Equal(t, "/data/app/~~abc==/com.example.app-xyz==", pi.Path)
	assert.Equal(t, 42, pi.Version.Code)
	assert.Equal(t, "1.4.2", pi.Version.Name)

	_, err = StatPackage(s, "com.missing")
	assert.Equal(t, ErrPackageNotExist, err)
}

func TestWithClient(t *testing.T) {
	var got []string
	cfg := adb.DefaultConfig()
	cfg.Runner = adb.RunnerFunc(func(name string, args ...string) (int, []byte, error) {
		got = append([]string{name}, args...)
		return 0, []byte(psToybox), nil
	})
	c := adb.New(cfg).Select("emulator-5554")

	pp, err := ListProcesses(c)
	require.NoError(t, err)
	assert.Len(t, pp, 2)
	assert.Equal(t, []string{"adb", "-s", "emulator-5554", "shell", "ps"}, got)
}
