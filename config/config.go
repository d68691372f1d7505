// Package config loads the daemon's YAML configuration.
package config

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/riking/joycon/joycond/controller"
	"github.com/riking/joycon/joycond/ctlrmgr"
)

const (
	OutputUInput  = "uinput"
	OutputConsole = "console"
)

// DefaultPath is where the daemon looks when no -config flag is given.
const DefaultPath = "/etc/joycond.yaml"

type Config struct {
	LogLevel string `yaml:"log_level"`
	// SettleDelay is how long to wait after a controller appears before
	// opening it.
	SettleDelay time.Duration `yaml:"settle_delay"`
	// Output selects where combined controllers are written: a uinput
	// device, or the log for a dry run.
	Output       string `yaml:"output"`
	CombinedName string `yaml:"combined_name"`
	// TrustPaired marks Bluetooth controllers as trusted in BlueZ once
	// they get a player number.
	TrustPaired bool `yaml:"trust_paired"`
	Console     bool `yaml:"console"`
}

func Default() *Config {
	return &Config{
		LogLevel:     zerolog.InfoLevel.String(),
		SettleDelay:  ctlrmgr.DefaultSettleDelay,
		Output:       OutputUInput,
		CombinedName: controller.DefaultCombinedName,
		TrustPaired:  true,
	}
}

// Load reads the file at path over the defaults. A missing file at
// DefaultPath is not an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultPath {
			return Default(), nil
		}
		return nil, errors.Wrap(err, "read config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "parse")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Level is the parsed log level. An empty log_level means info.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	if c.SettleDelay < 0 {
		return errors.Errorf("settle_delay must not be negative, got %v", c.SettleDelay)
	}
	switch c.Output {
	case OutputUInput, OutputConsole:
	default:
		return errors.Errorf("output must be %q or %q, got %q", OutputUInput, OutputConsole, c.Output)
	}
	if c.CombinedName == "" {
		return errors.New("combined_name must not be empty")
	}
	return nil
}
