// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package fungibles

import (
	"testing"

	"github.com/ChainSafe/chainext/internal/database/memory"
	"github.com/ChainSafe/chainext/internal/pallets/system"
	"github.com/ChainSafe/chainext/lib/frame/storage"
	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/ChainSafe/chainext/pkg/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenID uint32 = 1

var (
	alice   = primitives.AccountIDFromUint64(1)
	bob     = primitives.AccountIDFromUint64(2)
	charlie = primitives.AccountIDFromUint64(3)
)

type testPallet struct {
	*Pallet
	system *system.Pallet
}

func newTestPallet(t *testing.T) testPallet {
	t.Helper()
	state := storage.NewState(memory.New())
	systemPallet := system.New(state)
	return testPallet{Pallet: New(state, systemPallet), system: systemPallet}
}

// createAndMint creates the token owned and administered by owner, then
// mints amount tokens to the account given.
func (p testPallet) createAndMint(t *testing.T, owner primitives.AccountID, minBalance uint64,
	to primitives.AccountID, amount uint64) {
	t.Helper()
	require.NoError(t, p.Create(tokenID, owner, owner, NewBalance(minBalance)))
	if amount > 0 {
		require.NoError(t, p.Mint(tokenID, owner, to, NewBalance(amount)))
	}
}

func (p testPallet) assertBalance(t *testing.T, account primitives.AccountID, expected uint64) {
	t.Helper()
	balance, err := p.BalanceOf(tokenID, account)
	require.NoError(t, err)
	assert.Equal(t, NewBalance(expected).String(), balance.String())
}

func (p testPallet) assertAllowance(t *testing.T, owner, spender primitives.AccountID, expected uint64) {
	t.Helper()
	allowance, err := p.Allowance(tokenID, owner, spender)
	require.NoError(t, err)
	assert.Equal(t, NewBalance(expected).String(), allowance.String())
}

func (p testPallet) assertLastEvent(t *testing.T, expected scale.Encodeable) {
	t.Helper()
	events, err := p.system.Events()
	require.NoError(t, err)
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, AssetsIndex, last.Pallet)
	assert.Equal(t, scale.MustMarshal(expected), last.Event)
}

func assertError(t *testing.T, expected, err error) {
	t.Helper()
	if expected == nil {
		require.NoError(t, err)
		return
	}
	assert.ErrorIs(t, err, expected)
}
