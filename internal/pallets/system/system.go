// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package system implements the system pallet: remarks, privileged
// storage calls and the events journal.
package system

import (
	"encoding/binary"
	"fmt"

	"github.com/ChainSafe/chainext/internal/log"
	"github.com/ChainSafe/chainext/lib/frame/storage"
	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/ChainSafe/chainext/pkg/scale"
)

const (
	// Index is the index of the pallet in the runtime.
	Index uint8 = 0
	// Name is the storage prefix of the pallet.
	Name = "System"
)

// Well known storage keys.
var (
	CodeKey      = []byte(":code")
	HeapPagesKey = []byte(":heappages")
)

// ErrCallFiltered is returned when a call is rejected by the origin
// call filters.
var ErrCallFiltered = primitives.ModuleVariant(Index, 5)

var logger = log.NewFromGlobal(log.AddContext("pkg", "system"))

// EventRecord is an event deposited by a pallet.
type EventRecord struct {
	// Pallet is the index of the pallet depositing the event.
	Pallet uint8
	// Event is the SCALE encoded event.
	Event []byte
}

func (e EventRecord) String() string {
	return fmt.Sprintf("pallet %d: 0x%x", e.Pallet, e.Event)
}

// Pallet is the system pallet.
type Pallet struct {
	state  *storage.State
	events storage.Value[[]EventRecord]
}

// New returns the system pallet operating on the state given.
func New(state *storage.State) *Pallet {
	return &Pallet{
		state:  state,
		events: storage.NewValue[[]EventRecord](Name, "Events"),
	}
}

// DepositEvent appends the SCALE encoded event to the events journal.
func (p *Pallet) DepositEvent(pallet uint8, event scale.Encodeable) error {
	encoded, err := scale.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	events, _, err := p.events.Get(p.state)
	if err != nil {
		return err
	}
	events = append(events, EventRecord{Pallet: pallet, Event: encoded})
	logger.Tracef("event deposited by pallet %d: 0x%x", pallet, encoded)
	return p.events.Put(p.state, events)
}

// Events returns the events deposited since the last reset.
func (p *Pallet) Events() ([]EventRecord, error) {
	events, _, err := p.events.Get(p.state)
	return events, err
}

// ResetEvents clears the events journal.
func (p *Pallet) ResetEvents() {
	p.events.Kill(p.state)
}

// Code returns the stored runtime code, or nil if there is none.
func (p *Pallet) Code() ([]byte, error) {
	return p.state.Get(CodeKey)
}

// HeapPages returns the stored number of heap pages, and false if it
// was never set.
func (p *Pallet) HeapPages() (pages uint64, ok bool, err error) {
	encoded, err := p.state.Get(HeapPagesKey)
	if err != nil || len(encoded) != 8 {
		return 0, false, err
	}
	return binary.LittleEndian.Uint64(encoded), true, nil
}
