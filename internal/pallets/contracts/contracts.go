// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package contracts implements the parts of the contracts pallet the chain
// extension relies on: its errors, the migrate call and the host
// environment a contract calls the chain extension with.
package contracts

import (
	"github.com/ChainSafe/chainext/internal/log"
	"github.com/ChainSafe/chainext/lib/frame/storage"
	"github.com/ChainSafe/chainext/lib/primitives"
)

const (
	// Index is the index of the pallet in the runtime.
	Index uint8 = 40
	// Name is the storage prefix of the pallet.
	Name = "Contracts"
)

// Errors of the pallet.
var (
	ErrOutOfGas             = primitives.ModuleVariant(Index, 2)
	ErrOutputBufferTooSmall = primitives.ModuleVariant(Index, 3)
	ErrOutOfBounds          = primitives.ModuleVariant(Index, 10)
	ErrDecodingFailed       = primitives.ModuleVariant(Index, 11)
	ErrNoChainExtension     = primitives.ModuleVariant(Index, 18)
	ErrMigrationInProgress  = primitives.ModuleVariant(Index, 30)
	ErrNoMigrationPerformed = primitives.ModuleVariant(Index, 31)
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "contracts"))

// Pallet is the contracts pallet.
type Pallet struct {
	state     *storage.State
	migration storage.Value[uint32]
}

// New returns the contracts pallet operating on the state given.
func New(state *storage.State) *Pallet {
	return &Pallet{
		state:     state,
		migration: storage.NewValue[uint32](Name, "MigrationInProgress"),
	}
}

// ScheduleMigration schedules a storage migration of the number of
// steps given, performed by migrate calls.
func (p *Pallet) ScheduleMigration(steps uint32) error {
	if steps == 0 {
		p.migration.Kill(p.state)
		return nil
	}
	return p.migration.Put(p.state, steps)
}

// MigrationInProgress returns the number of migration steps left.
func (p *Pallet) MigrationInProgress() (steps uint32, err error) {
	steps, _, err = p.migration.Get(p.state)
	return steps, err
}
