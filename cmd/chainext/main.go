// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"os"

	"github.com/ChainSafe/chainext/cmd/chainext/commands"
)

func main() {
	rootCmd, err := commands.NewRootCommand()
	if err != nil {
		panic(err)
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
