// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ChainSafe/chainext/lib/extension/status"
	v0 "github.com/ChainSafe/chainext/lib/primitives/v0"
	"github.com/spf13/cobra"
)

func newStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Inspect status codes returned to contracts",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "decode <code>",
		Short: "Decode a status code given in decimal or 0x prefixed hexadecimal",
		Example: `  chainext status decode 0x00003403
  chainext status decode 13315`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseUint32(args[0])
			if err != nil {
				return err
			}
			return printStatus(cmd.OutOrStdout(), code)
		},
	})
	return cmd
}

func printStatus(w io.Writer, code uint32) error {
	var encoded [4]byte
	binary.LittleEndian.PutUint32(encoded[:], code)
	printField(w, "code", "0x%08x (%d)", code, code)
	printField(w, "bytes", "%v", encoded)

	if code == 0 {
		printField(w, "status", "%s", successColour.Sprint("Ok"))
		return nil
	}

	versioned, v0Err := v0.FromUint32(code)
	if v0Err != nil {
		printField(w, "v0 error", "%s", trapColour.Sprintf("not a version 0 error: %s", v0Err))
	} else {
		printField(w, "v0 error", "%s", statusColour.Sprint(versioned))
	}

	decoded, err := status.Decode(code)
	switch {
	case err == nil:
		printField(w, "dispatch", "%s", statusColour.Sprint(decoded))
	case v0Err == nil:
		// Version 0 Unknown errors have no dispatch error encoding.
		printField(w, "dispatch", "%s", trapColour.Sprint("no dispatch view"))
	default:
		return fmt.Errorf("decoding status: %w", err)
	}
	return nil
}

// describeStatus returns the dispatch error view of a status code, or
// its version 0 view if it has no dispatch error encoding.
func describeStatus(code uint32) (description string, ok bool) {
	decoded, err := status.Decode(code)
	if err == nil {
		return decoded.String(), true
	}
	versioned, err := v0.FromUint32(code)
	if err == nil {
		return versioned.String(), true
	}
	return "", false
}
