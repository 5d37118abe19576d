package adb

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultExecutableName is the name of the adb executable on the Path.
const DefaultExecutableName = "adb"

// Config configures a Client.
type Config struct {
	// Executable is the name or path of the adb executable.
	Executable string `yaml:"executable"`
	// Enabled gates every operation. A disabled client never starts a process.
	Enabled bool `yaml:"enabled"`
	// Serial, if set, is selected as the initial target.
	Serial string `yaml:"serial"`

	LogCommand bool `yaml:"log_command"`
	LogOutput  bool `yaml:"log_output"`

	// Runner starts the processes. Defaults to ExecRunner.
	Runner Runner `yaml:"-"`
	// Logger defaults to slog.Default().
	Logger *slog.Logger `yaml:"-"`
}

// DefaultConfig returns an enabled config that runs "adb" from the Path.
func DefaultConfig() Config {
	return Config{
		Executable: DefaultExecutableName,
		Enabled:    true,
	}
}

// LoadConfig reads a YAML config file. Keys missing from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "error reading config %s", path)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrapf(ErrParsing, "config %s: %v", path, err)
	}
	if isBlank(cfg.Executable) {
		cfg.Executable = DefaultExecutableName
	}
	return cfg, nil
}
