// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	terminal "golang.org/x/term"
)

// addStringFlagBindViper adds a string flag to the given command and binds it to the given viper name
func addStringFlagBindViper(cmd *cobra.Command,
	v *viper.Viper,
	name,
	defaultValue,
	usage,
	viperBindName string,
) error {
	cmd.PersistentFlags().String(name, defaultValue, usage)
	return v.BindPFlag(viperBindName, cmd.PersistentFlags().Lookup(name))
}

// addBoolFlagBindViper adds a bool flag to the given command and binds it to the given viper name
func addBoolFlagBindViper(
	cmd *cobra.Command,
	v *viper.Viper,
	name string,
	defaultValue bool,
	usage string,
	viperBindName string,
) error {
	cmd.PersistentFlags().Bool(name, defaultValue, usage)
	return v.BindPFlag(viperBindName, cmd.PersistentFlags().Lookup(name))
}

// addUint64FlagBindViper adds a uint64 flag to the given command and binds it to the given viper name
func addUint64FlagBindViper(
	cmd *cobra.Command,
	v *viper.Viper,
	name string,
	defaultValue uint64,
	usage string,
	viperBindName string,
) error {
	cmd.PersistentFlags().Uint64(name, defaultValue, usage)
	return v.BindPFlag(viperBindName, cmd.PersistentFlags().Lookup(name))
}

// addUint32FlagBindViper adds a uint32 flag to the given command and binds it to the given viper name
func addUint32FlagBindViper(
	cmd *cobra.Command,
	v *viper.Viper,
	name string,
	defaultValue uint32,
	usage string,
	viperBindName string,
) error {
	cmd.PersistentFlags().Uint32(name, defaultValue, usage)
	return v.BindPFlag(viperBindName, cmd.PersistentFlags().Lookup(name))
}

// parseUint32 parses a decimal or 0x prefixed hexadecimal 32 bits integer.
func parseUint32(s string) (uint32, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing %q as a 32 bits integer: %w", s, err)
	}
	return uint32(n), nil
}

// parseUint8 parses a decimal or 0x prefixed hexadecimal byte.
func parseUint8(s string) (uint8, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 0, 8)
	if err != nil {
		return 0, fmt.Errorf("parsing %q as a byte: %w", s, err)
	}
	return uint8(n), nil
}

// parseHex decodes a hex string with an optional 0x prefix.
func parseHex(s string) ([]byte, error) {
	decoded, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, fmt.Errorf("decoding hex %q: %w", s, err)
	}
	return decoded, nil
}

// setColour disables colours unless writing to a terminal.
func setColour(w io.Writer, disabled bool) {
	if disabled {
		color.NoColor = true
		return
	}
	f, ok := w.(*os.File)
	color.NoColor = !ok || !terminal.IsTerminal(int(f.Fd()))
}

var (
	labelColour   = color.New(color.Bold)
	successColour = color.New(color.FgGreen)
	statusColour  = color.New(color.FgYellow)
	trapColour    = color.New(color.FgHiRed)
)

func printField(w io.Writer, label, format string, args ...interface{}) {
	labelColour.Fprintf(w, "%-12s", label+":")
	fmt.Fprintf(w, format+"\n", args...)
}
