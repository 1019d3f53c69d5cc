// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package fungibles

import "github.com/ChainSafe/chainext/lib/primitives"

var (
	transferWeight         = primitives.NewWeight(49_538_000, 6_208)
	transferApprovedWeight = primitives.NewWeight(72_059_000, 6_208)
	approveTransferWeight  = primitives.NewWeight(31_204_000, 3_675)
	cancelApprovalWeight   = primitives.NewWeight(32_042_000, 3_675)
	createWeight           = primitives.NewWeight(27_186_000, 3_675)
	startDestroyWeight     = primitives.NewWeight(15_406_000, 3_675)
	clearMetadataWeight    = primitives.NewWeight(28_417_000, 3_675)
	mintWeight             = primitives.NewWeight(27_301_000, 3_675)
	burnWeight             = primitives.NewWeight(36_089_000, 3_675)

	approveBaseWeight = primitives.NewWeight(9_102_000, 3_675)

	totalSupplyWeight   = primitives.NewWeight(6_122_000, 3_675)
	balanceOfWeight     = primitives.NewWeight(7_009_000, 3_593)
	allowanceWeight     = primitives.NewWeight(8_263_000, 3_613)
	tokenNameWeight     = primitives.NewWeight(5_514_000, 3_605)
	tokenSymbolWeight   = primitives.NewWeight(5_471_000, 3_605)
	tokenDecimalsWeight = primitives.NewWeight(4_950_000, 3_605)
	tokenExistsWeight   = primitives.NewWeight(4_528_000, 3_675)
)

func setMetadataWeight(nameLength, symbolLength int) primitives.Weight {
	return primitives.NewWeight(27_894_000, 3_675).
		Add(primitives.NewWeight(2_241, 0).Mul(uint64(nameLength))).
		Add(primitives.NewWeight(2_317, 0).Mul(uint64(symbolLength)))
}

// approveWeight returns the weight of an approve call which approves
// and cancels approvals as given.
func approveWeight(approve, cancel bool) primitives.Weight {
	weight := approveBaseWeight
	if approve {
		weight = weight.Add(approveTransferWeight)
	}
	if cancel {
		weight = weight.Add(cancelApprovalWeight)
	}
	return weight
}
