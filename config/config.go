// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package config holds the chainext configuration, read from a TOML
// file and overridden by CHAINEXT_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ChainSafe/chainext/internal/log"
	"github.com/ChainSafe/chainext/lib/extension"
	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/naoina/toml"
)

// EnvPrefix is the prefix of the environment variables overriding the
// configuration, such as CHAINEXT_STATE_BACKEND.
const EnvPrefix = "CHAINEXT"

// State backends.
const (
	MemoryBackend = "memory"
	PebbleBackend = "pebble"
	BadgerBackend = "badger"
)

// ErrInvalidConfig is returned when the configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the chainext configuration. Leaf fields are named with
// split_words only: envconfig reads an envconfig tag name unprefixed when
// the prefixed variable is unset.
type Config struct {
	Log       LogConfig       `toml:"log" envconfig:"log"`
	Schedule  ScheduleConfig  `toml:"schedule" envconfig:"schedule"`
	State     StateConfig     `toml:"state" envconfig:"state"`
	Metrics   MetricsConfig   `toml:"metrics" envconfig:"metrics"`
	Pprof     PprofConfig     `toml:"pprof" envconfig:"pprof"`
	Extension ExtensionConfig `toml:"extension" envconfig:"extension"`
}

// LogConfig holds the log levels.
type LogConfig struct {
	Level string `toml:"level" split_words:"true" validate:"loglevel"`
	// Runtime is the level of the runtime and chain extension logs. It
	// defaults to Level when empty.
	Runtime string `toml:"runtime,omitempty" split_words:"true" validate:"omitempty,loglevel"`
	// Targets holds comma separated target=level directives, such as
	// "extension::dispatch=trace", overriding the levels above.
	Targets string `toml:"targets,omitempty" split_words:"true" validate:"omitempty,targetlevels"`
}

// ScheduleConfig holds the reference time of the host functions
// pricing the chain extension work.
type ScheduleConfig struct {
	DebugMessageBase    uint64 `toml:"debug-message-base" split_words:"true"`
	DebugMessagePerByte uint64 `toml:"debug-message-per-byte" split_words:"true"`
	ReturnBase          uint64 `toml:"return-base" split_words:"true"`
	ReturnPerByte       uint64 `toml:"return-per-byte" split_words:"true"`
	InputBase           uint64 `toml:"input-base" split_words:"true"`
	InputPerByte        uint64 `toml:"input-per-byte" split_words:"true"`
}

// StateConfig selects the state database.
type StateConfig struct {
	Backend string `toml:"backend" split_words:"true" validate:"oneof=memory pebble badger"`
	Path    string `toml:"path,omitempty" split_words:"true" validate:"required_unless=Backend memory"`
}

// MetricsConfig configures the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled" split_words:"true"`
	Address string `toml:"address" split_words:"true" validate:"required_if=Enabled true,omitempty,hostname_port"`
}

// PprofConfig configures the profiling server.
type PprofConfig struct {
	Enabled          bool   `toml:"enabled" split_words:"true"`
	ListeningAddress string `toml:"listening-address" split_words:"true" validate:"required_if=Enabled true,omitempty,hostname_port"`
	BlockProfileRate int    `toml:"block-profile-rate" split_words:"true" validate:"gte=0"`
	MutexProfileRate int    `toml:"mutex-profile-rate" split_words:"true" validate:"gte=0"`
}

// ExtensionConfig configures the chain extension calls made by the
// simulator.
type ExtensionConfig struct {
	LogTarget            string `toml:"log-target" split_words:"true" validate:"required"`
	GasLimitRefTime      uint64 `toml:"gas-limit-ref-time" split_words:"true" validate:"gt=0"`
	GasLimitProofSize    uint64 `toml:"gas-limit-proof-size" split_words:"true" validate:"gt=0"`
	OutputBufferCapacity uint32 `toml:"output-buffer-capacity" split_words:"true"`
}

// Default returns the default configuration: an in memory state and
// the default host function weights.
func Default() *Config {
	schedule := extension.DefaultSchedule()
	return &Config{
		Log: LogConfig{
			Level: log.Info.String(),
		},
		Schedule: ScheduleConfig{
			DebugMessageBase:    schedule.DebugMessage.Base.RefTime,
			DebugMessagePerByte: schedule.DebugMessage.PerByte.RefTime,
			ReturnBase:          schedule.Return.Base.RefTime,
			ReturnPerByte:       schedule.Return.PerByte.RefTime,
			InputBase:           schedule.Input.Base.RefTime,
			InputPerByte:        schedule.Input.PerByte.RefTime,
		},
		State: StateConfig{
			Backend: MemoryBackend,
		},
		Metrics: MetricsConfig{
			Address: "localhost:9876",
		},
		Pprof: PprofConfig{
			ListeningAddress: "localhost:6060",
		},
		Extension: ExtensionConfig{
			LogTarget:            "extension",
			GasLimitRefTime:      10_000_000_000,
			GasLimitProofSize:    1_048_576,
			OutputBufferCapacity: 16_384,
		},
	}
}

// Load returns the default configuration overridden by the TOML file
// at path, if not empty, then by the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		err := cfg.readFile(path)
		if err != nil {
			return nil, err
		}
	}

	err := envconfig.Process(EnvPrefix, cfg)
	if err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	if err = toml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("decoding config file %s: %w", path, err)
	}
	return nil
}

// Export writes the configuration to the TOML file at path.
func (c *Config) Export(path string) error {
	raw, err := c.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0600)
}

// Marshal returns the TOML encoding of the configuration.
func (c *Config) Marshal() ([]byte, error) {
	raw, err := toml.Marshal(*c)
	if err != nil {
		return nil, fmt.Errorf("marshalling configuration: %w", err)
	}
	return raw, nil
}

// Validate returns an error wrapping ErrInvalidConfig if a field has
// an invalid value.
func (c *Config) Validate() error {
	validate := validator.New()
	err := validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := log.ParseLevel(fl.Field().String())
		return err == nil
	})
	if err != nil {
		return fmt.Errorf("registering log level validation: %w", err)
	}
	err = validate.RegisterValidation("targetlevels", func(fl validator.FieldLevel) bool {
		_, err := log.ParseTargetLevels(fl.Field().String())
		return err == nil
	})
	if err != nil {
		return fmt.Errorf("registering target levels validation: %w", err)
	}

	err = validate.Struct(c)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	return nil
}

// LogLevel returns the global log level.
func (c *Config) LogLevel() log.Level {
	level, _ := log.ParseLevel(c.Log.Level)
	return level
}

// RuntimeLogLevel returns the log level of the runtime.
func (c *Config) RuntimeLogLevel() log.Level {
	if c.Log.Runtime == "" {
		return c.LogLevel()
	}
	level, _ := log.ParseLevel(c.Log.Runtime)
	return level
}

// TargetLevels returns the log levels set per target.
func (c *Config) TargetLevels() map[string]log.Level {
	levels, _ := log.ParseTargetLevels(c.Log.Targets)
	return levels
}

// ExtensionSchedule returns the host function weights.
func (c *Config) ExtensionSchedule() extension.Schedule {
	s := c.Schedule
	return extension.Schedule{
		DebugMessage: extension.HostFunctionWeight{
			Base:    primitives.WeightFromRefTime(s.DebugMessageBase),
			PerByte: primitives.WeightFromRefTime(s.DebugMessagePerByte),
		},
		Return: extension.HostFunctionWeight{
			Base:    primitives.WeightFromRefTime(s.ReturnBase),
			PerByte: primitives.WeightFromRefTime(s.ReturnPerByte),
		},
		Input: extension.HostFunctionWeight{
			Base:    primitives.WeightFromRefTime(s.InputBase),
			PerByte: primitives.WeightFromRefTime(s.InputPerByte),
		},
	}
}

// GasLimit returns the gas limit of simulated calls.
func (c *Config) GasLimit() primitives.Weight {
	return primitives.NewWeight(c.Extension.GasLimitRefTime, c.Extension.GasLimitProofSize)
}
