package adb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "adbexec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
executable: /opt/android/platform-tools/adb
serial: emulator-5554
log_command: true
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/android/platform-tools/adb", cfg.Executable)
	assert.Equal(t, "emulator-5554", cfg.Serial)
	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.LogCommand)
	assert.False(t, cfg.LogOutput)
}

func TestLoadConfigDisabled(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "enabled: false\n"))
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, DefaultExecutableName, cfg.Executable)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, os.IsNotExist(errors.Cause(err)))

	_, err = LoadConfig(writeConfig(t, "enabled: [\n"))
	assert.Equal(t, ErrParsing, errors.Cause(err))
}
