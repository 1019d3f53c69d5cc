// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the configuration resulting from the file, environment and flags",
		Example: `  chainext config show
  CHAINEXT_STATE_BACKEND=pebble chainext config show --state-path ./state
  chainext config show --export ./chainext.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			export, err := cmd.Flags().GetString("export")
			if err != nil {
				return fmt.Errorf("failed to get --export: %s", err)
			}
			if export != "" {
				if err := a.config.Export(export); err != nil {
					return fmt.Errorf("exporting config: %w", err)
				}
				logger.Infof("config exported to %s", export)
				return nil
			}

			raw, err := a.config.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(raw)
			return err
		},
	}
	show.Flags().String("export", "", "Write the configuration to the TOML file given instead")
	cmd.AddCommand(show)

	return cmd
}
