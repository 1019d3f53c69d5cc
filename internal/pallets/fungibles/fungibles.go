// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package fungibles implements the fungible token pallet exposed to
// contracts: transfers, approvals, asset management and metadata on top
// of an assets ledger, together with the state reads contracts use.
package fungibles

import (
	"fmt"

	"github.com/ChainSafe/chainext/internal/log"
	"github.com/ChainSafe/chainext/internal/pallets/system"
	"github.com/ChainSafe/chainext/lib/frame/storage"
	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/ChainSafe/chainext/pkg/scale"
)

const (
	// Index is the index of the pallet in the runtime.
	Index uint8 = 150
	// AssetsIndex is the index of the assets ledger in the runtime. Its
	// errors and events carry this index.
	AssetsIndex uint8 = 52
	// Name is the storage prefix of the assets ledger.
	Name = "Assets"
	// StringLimit is the maximum length of a token name or symbol.
	StringLimit = 50
)

// Errors of the assets ledger.
var (
	ErrBalanceLow      = primitives.ModuleVariant(AssetsIndex, 0)
	ErrNoAccount       = primitives.ModuleVariant(AssetsIndex, 1)
	ErrNoPermission    = primitives.ModuleVariant(AssetsIndex, 2)
	ErrUnknown         = primitives.ModuleVariant(AssetsIndex, 3)
	ErrInUse           = primitives.ModuleVariant(AssetsIndex, 5)
	ErrMinBalanceZero  = primitives.ModuleVariant(AssetsIndex, 7)
	ErrBadMetadata     = primitives.ModuleVariant(AssetsIndex, 9)
	ErrUnapproved      = primitives.ModuleVariant(AssetsIndex, 10)
	ErrAssetNotLive    = primitives.ModuleVariant(AssetsIndex, 16)
	ErrIncorrectStatus = primitives.ModuleVariant(AssetsIndex, 17)
	ErrNotFrozen       = primitives.ModuleVariant(AssetsIndex, 18)
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "fungibles"))

// AssetStatus is the lifecycle status of an asset.
type AssetStatus uint8

const (
	// Live assets can be used.
	Live AssetStatus = iota
	// Frozen assets cannot be transferred, minted or approved.
	Frozen
	// Destroying assets are being removed.
	Destroying
)

func (s AssetStatus) String() string {
	switch s {
	case Live:
		return "Live"
	case Frozen:
		return "Frozen"
	case Destroying:
		return "Destroying"
	default:
		return fmt.Sprintf("AssetStatus(%d)", uint8(s))
	}
}

// AssetDetails is the stored state of an asset.
type AssetDetails struct {
	Owner      primitives.AccountID
	Admin      primitives.AccountID
	Supply     Balance
	MinBalance Balance
	// Accounts is the number of accounts holding the asset.
	Accounts uint32
	Status   AssetStatus
}

// Metadata is the stored metadata of an asset.
type Metadata struct {
	Name     []byte
	Symbol   []byte
	Decimals uint8
}

type approvalKey struct {
	Owner   primitives.AccountID
	Spender primitives.AccountID
}

// Pallet is the fungibles pallet and the assets ledger it wraps.
type Pallet struct {
	state     *storage.State
	system    *system.Pallet
	asset     storage.Map[uint32, AssetDetails]
	account   storage.DoubleMap[uint32, primitives.AccountID, Balance]
	approvals storage.DoubleMap[uint32, approvalKey, Balance]
	metadata  storage.Map[uint32, Metadata]
}

// New returns the pallet operating on the state given, depositing its
// events through the system pallet.
func New(state *storage.State, systemPallet *system.Pallet) *Pallet {
	return &Pallet{
		state:     state,
		system:    systemPallet,
		asset:     storage.NewMap[uint32, AssetDetails](Name, "Asset", storage.Blake2_128Concat),
		account:   storage.NewDoubleMap[uint32, primitives.AccountID, Balance](Name, "Account", storage.Blake2_128Concat, storage.Blake2_128Concat),
		approvals: storage.NewDoubleMap[uint32, approvalKey, Balance](Name, "Approvals", storage.Blake2_128Concat, storage.Blake2_128Concat),
		metadata:  storage.NewMap[uint32, Metadata](Name, "Metadata", storage.Blake2_128Concat),
	}
}

func (p *Pallet) depositEvent(event scale.Encodeable) error {
	return p.system.DepositEvent(AssetsIndex, event)
}

// details returns the details of an existing asset, or ErrUnknown.
func (p *Pallet) details(id uint32) (AssetDetails, error) {
	details, ok, err := p.asset.Get(p.state, id)
	if err != nil {
		return details, err
	}
	if !ok {
		return details, ErrUnknown
	}
	return details, nil
}

// liveDetails returns the details of an existing live asset.
func (p *Pallet) liveDetails(id uint32) (AssetDetails, error) {
	details, err := p.details(id)
	if err != nil {
		return details, err
	}
	if details.Status != Live {
		return details, ErrAssetNotLive
	}
	return details, nil
}

// Freeze stops any movement of the asset. Only the owner can freeze it.
func (p *Pallet) Freeze(owner primitives.AccountID, id uint32) error {
	details, err := p.liveDetails(id)
	if err != nil {
		return err
	}
	if details.Owner != owner {
		return ErrNoPermission
	}
	details.Status = Frozen
	err = p.asset.Insert(p.state, id, details)
	if err != nil {
		return err
	}
	return p.depositEvent(AssetFrozen{AssetID: id})
}

// Thaw allows movements of a frozen asset again. Only the owner can
// thaw it.
func (p *Pallet) Thaw(owner primitives.AccountID, id uint32) error {
	details, err := p.details(id)
	if err != nil {
		return err
	}
	if details.Owner != owner {
		return ErrNoPermission
	}
	if details.Status != Frozen {
		return ErrNotFrozen
	}
	details.Status = Live
	err = p.asset.Insert(p.state, id, details)
	if err != nil {
		return err
	}
	return p.depositEvent(AssetThawed{AssetID: id})
}

// Asset returns the details of an asset and false if it does not exist.
func (p *Pallet) Asset(id uint32) (AssetDetails, bool, error) {
	return p.asset.Get(p.state, id)
}
