// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ChainSafe/chainext/internal/log"
	"github.com/ChainSafe/chainext/lib/extension"
	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) (path string) {
	t.Helper()
	path = filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(content), 0600)
	require.NoError(t, err)
	return path
}

func Test_Default(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, extension.DefaultSchedule(), cfg.ExtensionSchedule())
	assert.Equal(t, log.Info, cfg.LogLevel())
	assert.Equal(t, log.Info, cfg.RuntimeLogLevel())
	assert.Empty(t, cfg.TargetLevels())
	assert.Equal(t, primitives.NewWeight(10_000_000_000, 1_048_576), cfg.GasLimit())
}

func Test_Config_Validate(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		modify  func(cfg *Config)
		wantErr bool
	}{
		"default": {
			modify: func(*Config) {},
		},
		"short_log_level": {
			modify: func(cfg *Config) { cfg.Log.Level = "dbug" },
		},
		"bad_log_level": {
			modify:  func(cfg *Config) { cfg.Log.Level = "verbose" },
			wantErr: true,
		},
		"bad_runtime_log_level": {
			modify:  func(cfg *Config) { cfg.Log.Runtime = "loud" },
			wantErr: true,
		},
		"target_levels": {
			modify: func(cfg *Config) { cfg.Log.Targets = "extension=debug, router=trace" },
		},
		"target_level_without_target": {
			modify:  func(cfg *Config) { cfg.Log.Targets = "=debug" },
			wantErr: true,
		},
		"bad_target_level": {
			modify:  func(cfg *Config) { cfg.Log.Targets = "extension=loud" },
			wantErr: true,
		},
		"unknown_backend": {
			modify:  func(cfg *Config) { cfg.State.Backend = "leveldb" },
			wantErr: true,
		},
		"pebble_without_path": {
			modify:  func(cfg *Config) { cfg.State.Backend = PebbleBackend },
			wantErr: true,
		},
		"badger_with_path": {
			modify: func(cfg *Config) {
				cfg.State.Backend = BadgerBackend
				cfg.State.Path = "/tmp/chainext"
			},
		},
		"metrics_without_address": {
			modify: func(cfg *Config) {
				cfg.Metrics.Enabled = true
				cfg.Metrics.Address = ""
			},
			wantErr: true,
		},
		"metrics_bad_address": {
			modify: func(cfg *Config) {
				cfg.Metrics.Enabled = true
				cfg.Metrics.Address = "localhost"
			},
			wantErr: true,
		},
		"metrics_disabled_without_address": {
			modify: func(cfg *Config) { cfg.Metrics.Address = "" },
		},
		"pprof_bad_address": {
			modify: func(cfg *Config) {
				cfg.Pprof.Enabled = true
				cfg.Pprof.ListeningAddress = ":"
			},
			wantErr: true,
		},
		"negative_block_profile_rate": {
			modify:  func(cfg *Config) { cfg.Pprof.BlockProfileRate = -1 },
			wantErr: true,
		},
		"zero_gas_limit": {
			modify:  func(cfg *Config) { cfg.Extension.GasLimitRefTime = 0 },
			wantErr: true,
		},
		"empty_log_target": {
			modify:  func(cfg *Config) { cfg.Extension.LogTarget = "" },
			wantErr: true,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			testCase.modify(cfg)
			err := cfg.Validate()
			if testCase.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_Load_file(t *testing.T) {
	path := writeConfigFile(t, `
[log]
level = "debug"
runtime = "trace"
targets = "extension::dispatch=warn"

[schedule]
debug-message-base = 1000
input-per-byte = 2

[state]
backend = "pebble"
path = "/tmp/chainext"

[metrics]
enabled = true
address = "127.0.0.1:9000"

[pprof]
enabled = true
mutex-profile-rate = 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, log.Debug, cfg.LogLevel())
	assert.Equal(t, log.Trace, cfg.RuntimeLogLevel())
	assert.Equal(t, map[string]log.Level{"extension::dispatch": log.Warn}, cfg.TargetLevels())
	assert.Equal(t, StateConfig{Backend: PebbleBackend, Path: "/tmp/chainext"}, cfg.State)
	assert.Equal(t, MetricsConfig{Enabled: true, Address: "127.0.0.1:9000"}, cfg.Metrics)
	assert.Equal(t, PprofConfig{
		Enabled:          true,
		ListeningAddress: "localhost:6060",
		MutexProfileRate: 5,
	}, cfg.Pprof)

	schedule := cfg.ExtensionSchedule()
	assert.Equal(t, primitives.WeightFromRefTime(1000), schedule.DebugMessage.Base)
	assert.Equal(t, primitives.WeightFromRefTime(2), schedule.Input.PerByte)
	// Keys absent from the file keep their default.
	assert.Equal(t, extension.DefaultSchedule().Return, schedule.Return)
	assert.Equal(t, "extension", cfg.Extension.LogTarget)
}

func Test_Load_environment(t *testing.T) {
	path := writeConfigFile(t, `
[state]
backend = "badger"
path = "/tmp/from-file"
`)
	t.Setenv("CHAINEXT_STATE_PATH", "/tmp/from-env")
	t.Setenv("CHAINEXT_LOG_LEVEL", "warn")
	t.Setenv("CHAINEXT_EXTENSION_GAS_LIMIT_REF_TIME", "42")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BadgerBackend, cfg.State.Backend)
	assert.Equal(t, "/tmp/from-env", cfg.State.Path)
	assert.Equal(t, log.Warn, cfg.LogLevel())
	assert.Equal(t, uint64(42), cfg.Extension.GasLimitRefTime)
}

func Test_Load_unprefixed_environment(t *testing.T) {
	t.Setenv("PATH", "/x")
	t.Setenv("LEVEL", "trace")
	t.Setenv("BACKEND", "pebble")
	t.Setenv("ADDRESS", "not an address")
	t.Setenv("ENABLED", "true")
	path := writeConfigFile(t, `
[state]
backend = "badger"
path = "/tmp/chainext"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, StateConfig{Backend: BadgerBackend, Path: "/tmp/chainext"}, cfg.State)
	assert.Equal(t, log.Info, cfg.LogLevel())
	assert.Equal(t, Default().Metrics, cfg.Metrics)
	assert.Equal(t, Default().Pprof, cfg.Pprof)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.State.Path)
}

func Test_Load_errors(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed_file", func(t *testing.T) {
		path := writeConfigFile(t, "[state\nbackend = ")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("invalid_environment", func(t *testing.T) {
		t.Setenv("CHAINEXT_METRICS_ENABLED", "maybe")
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("invalid_value", func(t *testing.T) {
		t.Setenv("CHAINEXT_STATE_BACKEND", "pebble")
		_, err := Load("")
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func Test_Config_Export(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.State = StateConfig{Backend: PebbleBackend, Path: "/tmp/chainext"}
	cfg.Log.Runtime = "DEBUG"

	path := filepath.Join(t.TempDir(), "exported.toml")
	require.NoError(t, cfg.Export(path))

	loaded := Default()
	require.NoError(t, loaded.readFile(path))
	assert.Equal(t, cfg, loaded)
}
