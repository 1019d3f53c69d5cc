// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package fungibles

import (
	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/ChainSafe/chainext/pkg/scale"
)

// Event variant indexes of the assets ledger.
const (
	CreatedEvent             uint8 = 0
	IssuedEvent              uint8 = 1
	TransferredEvent         uint8 = 2
	BurnedEvent              uint8 = 3
	AssetFrozenEvent         uint8 = 8
	AssetThawedEvent         uint8 = 9
	DestructionStartedEvent  uint8 = 12
	MetadataSetEvent         uint8 = 15
	MetadataClearedEvent     uint8 = 16
	ApprovedTransferEvent    uint8 = 17
	ApprovalCancelledEvent   uint8 = 18
	TransferredApprovedEvent uint8 = 19
)

// Created is deposited when an asset is created.
type Created struct {
	AssetID uint32
	Creator primitives.AccountID
	Owner   primitives.AccountID
}

// Encode writes the SCALE encoding of the event.
func (e Created) Encode(encoder scale.Encoder) error {
	return scale.EncodeVariant(encoder, CreatedEvent, e.AssetID, e.Creator, e.Owner)
}

// Issued is deposited when tokens are minted.
type Issued struct {
	AssetID uint32
	Owner   primitives.AccountID
	Amount  Balance
}

// Encode writes the SCALE encoding of the event.
func (e Issued) Encode(encoder scale.Encoder) error {
	return scale.EncodeVariant(encoder, IssuedEvent, e.AssetID, e.Owner, normalised(e.Amount))
}

// Transferred is deposited when tokens move between accounts.
type Transferred struct {
	AssetID uint32
	From    primitives.AccountID
	To      primitives.AccountID
	Amount  Balance
}

// Encode writes the SCALE encoding of the event.
func (e Transferred) Encode(encoder scale.Encoder) error {
	return scale.EncodeVariant(encoder, TransferredEvent, e.AssetID, e.From, e.To, normalised(e.Amount))
}

// Burned is deposited when tokens are burned.
type Burned struct {
	AssetID uint32
	Owner   primitives.AccountID
	Balance Balance
}

// Encode writes the SCALE encoding of the event.
func (e Burned) Encode(encoder scale.Encoder) error {
	return scale.EncodeVariant(encoder, BurnedEvent, e.AssetID, e.Owner, normalised(e.Balance))
}

// AssetFrozen is deposited when an asset is frozen.
type AssetFrozen struct {
	AssetID uint32
}

// Encode writes the SCALE encoding of the event.
func (e AssetFrozen) Encode(encoder scale.Encoder) error {
	return scale.EncodeVariant(encoder, AssetFrozenEvent, e.AssetID)
}

// AssetThawed is deposited when an asset is thawed.
type AssetThawed struct {
	AssetID uint32
}

// Encode writes the SCALE encoding of the event.
func (e AssetThawed) Encode(encoder scale.Encoder) error {
	return scale.EncodeVariant(encoder, AssetThawedEvent, e.AssetID)
}

// DestructionStarted is deposited when the destruction of an asset
// starts.
type DestructionStarted struct {
	AssetID uint32
}

// Encode writes the SCALE encoding of the event.
func (e DestructionStarted) Encode(encoder scale.Encoder) error {
	return scale.EncodeVariant(encoder, DestructionStartedEvent, e.AssetID)
}

// MetadataSet is deposited when the metadata of an asset is set.
type MetadataSet struct {
	AssetID  uint32
	Name     []byte
	Symbol   []byte
	Decimals uint8
	IsFrozen bool
}

// Encode writes the SCALE encoding of the event.
func (e MetadataSet) Encode(encoder scale.Encoder) error {
	return scale.EncodeVariant(encoder, MetadataSetEvent, e.AssetID, e.Name, e.Symbol, e.Decimals, e.IsFrozen)
}

// MetadataCleared is deposited when the metadata of an asset is removed.
type MetadataCleared struct {
	AssetID uint32
}

// Encode writes the SCALE encoding of the event.
func (e MetadataCleared) Encode(encoder scale.Encoder) error {
	return scale.EncodeVariant(encoder, MetadataClearedEvent, e.AssetID)
}

// ApprovedTransfer is deposited when an allowance is set. Amount is the
// whole allowance.
type ApprovedTransfer struct {
	AssetID  uint32
	Source   primitives.AccountID
	Delegate primitives.AccountID
	Amount   Balance
}

// Encode writes the SCALE encoding of the event.
func (e ApprovedTransfer) Encode(encoder scale.Encoder) error {
	return scale.EncodeVariant(encoder, ApprovedTransferEvent, e.AssetID, e.Source, e.Delegate, normalised(e.Amount))
}

// ApprovalCancelled is deposited when an allowance is removed.
type ApprovalCancelled struct {
	AssetID  uint32
	Owner    primitives.AccountID
	Delegate primitives.AccountID
}

// Encode writes the SCALE encoding of the event.
func (e ApprovalCancelled) Encode(encoder scale.Encoder) error {
	return scale.EncodeVariant(encoder, ApprovalCancelledEvent, e.AssetID, e.Owner, e.Delegate)
}

// TransferredApproved is deposited when a delegate transfers tokens on
// behalf of their owner.
type TransferredApproved struct {
	AssetID     uint32
	Owner       primitives.AccountID
	Delegate    primitives.AccountID
	Destination primitives.AccountID
	Amount      Balance
}

// Encode writes the SCALE encoding of the event.
func (e TransferredApproved) Encode(encoder scale.Encoder) error {
	return scale.EncodeVariant(encoder, TransferredApprovedEvent,
		e.AssetID, e.Owner, e.Delegate, e.Destination, normalised(e.Amount))
}
