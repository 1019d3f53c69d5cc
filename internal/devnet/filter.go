// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package devnet

import (
	"github.com/ChainSafe/chainext/internal/pallets/fungibles"
	"github.com/ChainSafe/chainext/lib/frame"
)

// allowedFungiblesCalls are the fungibles calls contracts may dispatch.
var allowedFungiblesCalls = map[fungibles.CallIndex]struct{}{
	fungibles.TransferCall:          {},
	fungibles.TransferFromCall:      {},
	fungibles.ApproveCall:           {},
	fungibles.IncreaseAllowanceCall: {},
	fungibles.DecreaseAllowanceCall: {},
	fungibles.CreateCall:            {},
	fungibles.SetMetadataCall:       {},
	fungibles.StartDestroyCall:      {},
	fungibles.ClearMetadataCall:     {},
	fungibles.MintCall:              {},
	fungibles.BurnCall:              {},
}

// AllowedCalls contains the calls contracts may dispatch through the
// chain extension.
var AllowedCalls frame.Contains[RuntimeCall] = frame.ContainsFunc[RuntimeCall](func(call RuntimeCall) bool {
	if call.Pallet != fungibles.Index {
		return false
	}
	_, ok := allowedFungiblesCalls[call.Fungibles.Index]
	return ok
})

// AllowedReads contains the reads contracts may perform through the
// chain extension.
var AllowedReads frame.Contains[RuntimeRead] = frame.ContainsFunc[RuntimeRead](func(read RuntimeRead) bool {
	return read.Pallet == fungibles.Index
})
