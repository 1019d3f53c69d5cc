// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"fmt"
	"io"

	"github.com/ChainSafe/chainext/lib/extension"
	"github.com/spf13/cobra"
)

func newIDCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "id",
		Short: "Split and build chain extension function identifiers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "split <identifier>",
		Short:   "Split an identifier into its category, version, module and index bytes",
		Example: "  chainext id split 0x03960000",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseUint32(args[0])
			if err != nil {
				return err
			}
			printIdentifier(cmd.OutOrStdout(), extension.Identifier(n))
			return nil
		},
	})

	build := &cobra.Command{
		Use:     "build",
		Short:   "Build an identifier from its category, version, module and index bytes",
		Example: "  chainext id build --category 0 --version 0 --module 150 --index 3",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var parts [4]uint8
			for i, name := range []string{"category", "version", "module", "index"} {
				value, err := cmd.Flags().GetString(name)
				if err != nil {
					return fmt.Errorf("failed to get --%s: %s", name, err)
				}
				parts[i], err = parseUint8(value)
				if err != nil {
					return fmt.Errorf("invalid --%s: %w", name, err)
				}
			}
			printIdentifier(cmd.OutOrStdout(),
				extension.NewIdentifier(parts[0], parts[1], parts[2], parts[3]))
			return nil
		},
	}
	build.Flags().String("category", "0", "Call category: 0 to dispatch a call, 1 to read state")
	build.Flags().String("version", "0", "Protocol version")
	build.Flags().String("module", "0", "Pallet index")
	build.Flags().String("index", "0", "Call or read index within the pallet")
	cmd.AddCommand(build)

	return cmd
}

func printIdentifier(w io.Writer, id extension.Identifier) {
	printField(w, "identifier", "0x%08x (%d)", uint32(id), uint32(id))
	printField(w, "category", "%d", id.Category())
	printField(w, "version", "%d", id.Version())
	printField(w, "module", "%d", id.Module())
	printField(w, "index", "%d", id.Index())
	printField(w, "ext id", "0x%04x", id.ExtID())
	printField(w, "func id", "0x%04x", id.FuncID())
}
