// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package fungibles

import (
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
)

// Balance is an amount of tokens, encoded as a SCALE u128.
type Balance = types.U128

var maxBalance = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// NewBalance returns the balance of n tokens.
func NewBalance(n uint64) Balance {
	return types.NewU128(*new(big.Int).SetUint64(n))
}

// MaxBalance returns the largest balance.
func MaxBalance() Balance {
	return types.NewU128(*new(big.Int).Set(maxBalance))
}

// ParseBalance parses a base 10 balance.
func ParseBalance(s string) (balance Balance, ok bool) {
	value, ok := new(big.Int).SetString(s, 10)
	if !ok || value.Sign() < 0 || value.Cmp(maxBalance) > 0 {
		return balance, false
	}
	return types.NewU128(*value), true
}

func bigOf(b Balance) *big.Int {
	if b.Int == nil {
		return new(big.Int)
	}
	return b.Int
}

// normalised returns the balance with its integer set, the zero value
// of Balance having none.
func normalised(b Balance) Balance {
	if b.Int == nil {
		return NewBalance(0)
	}
	return b
}

func isZero(b Balance) bool {
	return bigOf(b).Sign() == 0
}

func compare(a, b Balance) int {
	return bigOf(a).Cmp(bigOf(b))
}

func minBalance(a, b Balance) Balance {
	if compare(a, b) <= 0 {
		return normalised(a)
	}
	return normalised(b)
}

func checkedAdd(a, b Balance) (Balance, bool) {
	sum := new(big.Int).Add(bigOf(a), bigOf(b))
	if sum.Cmp(maxBalance) > 0 {
		return Balance{}, false
	}
	return types.NewU128(*sum), true
}

func checkedSub(a, b Balance) (Balance, bool) {
	difference := new(big.Int).Sub(bigOf(a), bigOf(b))
	if difference.Sign() < 0 {
		return Balance{}, false
	}
	return types.NewU128(*difference), true
}
