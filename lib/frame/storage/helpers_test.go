// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package storage

import "math/big"

func bigInt(n int64) *big.Int {
	return big.NewInt(n)
}
