// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"bytes"
	"fmt"

	"github.com/ChainSafe/chainext/config"
	"github.com/ChainSafe/chainext/internal/log"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "cmd"))

// app is the state shared by the commands of a root command.
type app struct {
	viper  *viper.Viper
	config *config.Config
}

// ParseConfig loads the configuration file given with --config, applies
// the environment and finally the flags set on the command line.
func (a *app) ParseConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get --config: %s", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	// The loaded configuration is the viper configuration layer, below
	// the flags changed on the command line.
	raw, err := cfg.Marshal()
	if err != nil {
		return nil, err
	}
	a.viper.SetConfigType("toml")
	err = a.viper.ReadConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to read loaded config: %s", err)
	}

	err = a.viper.Unmarshal(cfg, func(c *mapstructure.DecoderConfig) {
		c.TagName = "toml"
	})
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %s", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error in config: %w", err)
	}
	return cfg, nil
}

// NewRootCommand creates the root command
func NewRootCommand() (*cobra.Command, error) {
	a := &app{
		viper:  viper.New(),
		config: config.Default(),
	}

	cmd := &cobra.Command{
		Use:   "chainext",
		Short: "Chain extension dispatch engine command-line interface",
		Long: `chainext decodes chain extension identifiers and status codes, and
runs chain extension calls against the devnet runtime.
Usage:
	chainext status decode 0x00003403
	chainext id split 0x03960000
	chainext id build --module 150 --index 3
	chainext simulate --id 0x03960000 --input 0x0100000002000000000000000000000000000000000000000000000000000000000000000a000000000000000000000000000000 --bootstrap-supply 1000
	chainext config show`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			noColour, err := cmd.Flags().GetBool("no-colour")
			if err != nil {
				return err
			}
			setColour(cmd.OutOrStdout(), noColour)

			a.config, err = a.ParseConfig(cmd)
			if err != nil {
				return err
			}
			log.PatchLevel(a.config.LogLevel())
			logger.Debugf("log level set to %s", a.config.LogLevel())
			for target, level := range a.config.TargetLevels() {
				log.Patch(log.SetTargetLevel(target, level))
				logger.Debugf("log level of target %s set to %s", target, level)
			}
			return nil
		},
	}

	if err := addRootFlags(cmd, a); err != nil {
		return nil, err
	}

	cmd.AddCommand(
		newStatusCommand(),
		newIDCommand(),
		newConfigCommand(a),
		newStateCommand(a),
	)

	simulateCmd, err := newSimulateCommand(a)
	if err != nil {
		return nil, fmt.Errorf("failed to create simulate command: %w", err)
	}
	cmd.AddCommand(simulateCmd)

	return cmd, nil
}

// addRootFlags adds the root flags to the command
func addRootFlags(cmd *cobra.Command, a *app) error {
	defaults := config.Default()

	cmd.PersistentFlags().String("config",
		"",
		"Path to the TOML configuration file. Example: --config ./chainext.toml")
	cmd.PersistentFlags().Bool("no-colour",
		false,
		"Disable coloured output")

	// Log Config
	if err := addStringFlagBindViper(cmd, a.viper,
		"log",
		defaults.Log.Level,
		"Global log level. Supports levels critical (silent), error, warn, info, debug and trace",
		"log.level"); err != nil {
		return fmt.Errorf("failed to add --log flag: %s", err)
	}
	if err := addStringFlagBindViper(cmd, a.viper,
		"lruntime",
		defaults.Log.Runtime,
		"Runtime and chain extension log level, defaulting to the global log level",
		"log.runtime"); err != nil {
		return fmt.Errorf("failed to add --lruntime flag: %s", err)
	}
	if err := addStringFlagBindViper(cmd, a.viper,
		"log-targets",
		defaults.Log.Targets,
		"Comma separated target=level directives, for example extension=debug,extension::dispatch=trace",
		"log.targets"); err != nil {
		return fmt.Errorf("failed to add --log-targets flag: %s", err)
	}

	// State Config
	if err := addStringFlagBindViper(cmd, a.viper,
		"state-backend",
		defaults.State.Backend,
		"State database backend: memory, pebble or badger",
		"state.backend"); err != nil {
		return fmt.Errorf("failed to add --state-backend flag: %s", err)
	}
	if err := addStringFlagBindViper(cmd, a.viper,
		"state-path",
		defaults.State.Path,
		"Directory of the pebble or badger state database",
		"state.path"); err != nil {
		return fmt.Errorf("failed to add --state-path flag: %s", err)
	}

	// Metrics Config
	if err := addBoolFlagBindViper(cmd, a.viper,
		"metrics",
		defaults.Metrics.Enabled,
		"Serve the chain extension metrics to prometheus",
		"metrics.enabled"); err != nil {
		return fmt.Errorf("failed to add --metrics flag: %s", err)
	}
	if err := addStringFlagBindViper(cmd, a.viper,
		"metrics-address",
		defaults.Metrics.Address,
		"Listen address of the metrics server",
		"metrics.address"); err != nil {
		return fmt.Errorf("failed to add --metrics-address flag: %s", err)
	}

	// pprof Config
	if err := addBoolFlagBindViper(cmd, a.viper,
		"pprof",
		defaults.Pprof.Enabled,
		"Serve the Go runtime profiles",
		"pprof.enabled"); err != nil {
		return fmt.Errorf("failed to add --pprof flag: %s", err)
	}
	if err := addStringFlagBindViper(cmd, a.viper,
		"pprof-address",
		defaults.Pprof.ListeningAddress,
		"Listen address of the pprof server",
		"pprof.listening-address"); err != nil {
		return fmt.Errorf("failed to add --pprof-address flag: %s", err)
	}

	return nil
}
