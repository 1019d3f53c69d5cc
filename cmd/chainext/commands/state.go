// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/ChainSafe/chainext/config"
	"github.com/ChainSafe/chainext/internal/pallets/contracts"
	"github.com/ChainSafe/chainext/internal/pallets/fungibles"
	"github.com/ChainSafe/chainext/internal/pallets/system"
	"github.com/ChainSafe/chainext/lib/frame/storage"
	"github.com/spf13/cobra"
)

var (
	errVolatileState = errors.New("the memory state backend keeps nothing between runs")
	errItemNoPallet  = errors.New("--item requires --pallet")
)

type storageItem struct {
	pallet string
	item   string
}

// storageItems are the runtime storage items of the devnet pallets.
var storageItems = []storageItem{
	{pallet: system.Name, item: "Events"},
	{pallet: contracts.Name, item: "MigrationInProgress"},
	{pallet: fungibles.Name, item: "Asset"},
	{pallet: fungibles.Name, item: "Account"},
	{pallet: fungibles.Name, item: "Approvals"},
	{pallet: fungibles.Name, item: "Metadata"},
}

type entry struct {
	key   []byte
	value []byte
}

func newStateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect the persisted runtime state",
	}

	dump := &cobra.Command{
		Use:   "dump",
		Short: "Print the key values of the persisted runtime state",
		Long: `Print the key values of the runtime state persisted by the pebble or
badger state backend, in key order. Keys of the known storage items are
labelled with their pallet and item names.`,
		Example: `  chainext state dump --state-backend pebble --state-path ./state
  chainext state dump --state-backend pebble --state-path ./state --pallet Assets --item Account`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pallet, err := cmd.Flags().GetString("pallet")
			if err != nil {
				return fmt.Errorf("failed to get --pallet: %s", err)
			}
			item, err := cmd.Flags().GetString("item")
			if err != nil {
				return fmt.Errorf("failed to get --item: %s", err)
			}
			prefix, err := statePrefix(pallet, item)
			if err != nil {
				return err
			}
			return dumpState(cmd.Context(), cmd.OutOrStdout(), a.config.State, prefix)
		},
	}
	dump.Flags().String("pallet", "", "Only print the keys of the pallet given, for example Assets")
	dump.Flags().String("item", "", "Only print the keys of the storage item given, for example Account")
	cmd.AddCommand(dump)

	return cmd
}

func statePrefix(pallet, item string) ([]byte, error) {
	switch {
	case pallet == "" && item != "":
		return nil, errItemNoPallet
	case pallet == "":
		return nil, nil
	case item == "":
		return storage.Twox128([]byte(pallet)), nil
	default:
		return storage.PrefixKey(pallet, item), nil
	}
}

func dumpState(ctx context.Context, w io.Writer, cfg config.StateConfig,
	prefix []byte) (err error) {
	if cfg.Backend == config.MemoryBackend {
		return errVolatileState
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("opening state database: %w", err)
	}
	defer func() {
		closeErr := db.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("closing state database: %w", closeErr)
		}
	}()

	var entries []entry
	err = db.Iterate(ctx, prefix, func(key, value []byte) error {
		entries = append(entries, entry{
			key:   append([]byte(nil), key...),
			value: append([]byte(nil), value...),
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("iterating state: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].key, entries[j].key) < 0
	})
	for _, e := range entries {
		label, rest := labelKey(e.key)
		labelColour.Fprint(w, label)
		fmt.Fprintf(w, " 0x%x = 0x%x\n", rest, e.value)
	}
	printField(w, "entries", "%d", len(entries))
	return nil
}

// labelKey splits the storage prefix of a known item from the key.
func labelKey(key []byte) (label string, rest []byte) {
	for _, s := range storageItems {
		prefix := storage.PrefixKey(s.pallet, s.item)
		if bytes.HasPrefix(key, prefix) {
			return s.pallet + "." + s.item, key[len(prefix):]
		}
	}
	return "unknown", key
}
