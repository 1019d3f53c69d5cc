// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package system

import "github.com/ChainSafe/chainext/lib/primitives"

func remarkWeight(length int) primitives.Weight {
	return primitives.NewWeight(1_627_000, 0).
		Add(primitives.NewWeight(392, 0).Mul(uint64(length)))
}

func setHeapPagesWeight() primitives.Weight {
	return primitives.NewWeight(3_960_000, 1_485)
}

func setCodeWeight() primitives.Weight {
	return primitives.NewWeight(125_000_000_000, 1_485)
}

func setStorageWeight(items int) primitives.Weight {
	return primitives.NewWeight(1_543_000, 0).
		Add(primitives.NewWeight(1_002_000, 0).Mul(uint64(items)))
}

func remarkWithEventWeight(length int) primitives.Weight {
	return primitives.NewWeight(8_388_000, 0).
		Add(primitives.NewWeight(1_106, 0).Mul(uint64(length)))
}
