// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ChainSafe/chainext/internal/database"
	"github.com/ChainSafe/chainext/internal/database/memory"
	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBackend struct{}

func (failingBackend) Get([]byte) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func Test_State_Get(t *testing.T) {
	t.Parallel()

	db := memory.New()
	require.NoError(t, db.Set([]byte("backend"), []byte{1}))
	require.NoError(t, db.Set([]byte("deleted"), []byte{2}))

	state := NewState(db)
	state.Set([]byte("overlay"), []byte{3})
	state.Delete([]byte("deleted"))

	testCases := map[string]struct {
		key      string
		expected []byte
	}{
		"from_backend": {key: "backend", expected: []byte{1}},
		"from_overlay": {key: "overlay", expected: []byte{3}},
		"deleted":      {key: "deleted"},
		"absent":       {key: "absent"},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			value, err := state.Get([]byte(testCase.key))
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, value)
		})
	}

	t.Run("backend_failure", func(t *testing.T) {
		t.Parallel()

		_, err := NewState(failingBackend{}).Get([]byte("key"))
		assert.ErrorIs(t, err, primitives.Corruption)
	})
}

func Test_State_transactions(t *testing.T) {
	t.Parallel()

	state := NewState(nil)
	state.Set([]byte("a"), []byte{1})

	require.NoError(t, state.StartTransaction())
	state.Set([]byte("a"), []byte{2})
	state.Set([]byte("b"), []byte{2})

	require.NoError(t, state.StartTransaction())
	state.Delete([]byte("a"))
	assert.Equal(t, 2, state.TransactionLevel())
	require.NoError(t, state.RollbackTransaction())

	value, err := state.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte{2}, value)

	require.NoError(t, state.CommitTransaction())
	value, err = state.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte{2}, value)
	assert.Equal(t, 0, state.TransactionLevel())

	assert.ErrorIs(t, state.CommitTransaction(), primitives.Transactional(primitives.NoLayer))
	assert.ErrorIs(t, state.RollbackTransaction(), primitives.Transactional(primitives.NoLayer))
}

func Test_State_WithTransaction(t *testing.T) {
	t.Parallel()

	state := NewState(nil)
	errTest := errors.New("test")

	err := state.WithTransaction(func() error {
		state.Set([]byte("rolled back"), []byte{1})
		return errTest
	})
	assert.ErrorIs(t, err, errTest)
	has, err := state.Has([]byte("rolled back"))
	require.NoError(t, err)
	assert.False(t, has)

	err = state.WithTransaction(func() error {
		state.Set([]byte("kept"), []byte{1})
		return nil
	})
	require.NoError(t, err)
	has, err = state.Has([]byte("kept"))
	require.NoError(t, err)
	assert.True(t, has)
}

func Test_State_transactional_limit(t *testing.T) {
	t.Parallel()

	state := NewState(nil, WithTransactionalLimit(2))

	var nest func(depth int) error
	nest = func(depth int) error {
		return state.WithTransaction(func() error {
			return nest(depth + 1)
		})
	}

	err := nest(0)
	assert.Equal(t, primitives.Transactional(primitives.LimitReached), err)
	assert.Equal(t, 0, state.TransactionLevel())
}

func Test_State_Commit(t *testing.T) {
	t.Parallel()

	db := memory.New()
	require.NoError(t, db.Set([]byte("old"), []byte{1}))

	state := NewState(db)
	state.Set([]byte("new"), []byte{2})
	state.Delete([]byte("old"))
	assert.Equal(t, 2, state.Changes())

	require.NoError(t, state.StartTransaction())
	err := state.Commit(db.NewWriteBatch())
	assert.ErrorContains(t, err, "1 transactions still open")
	require.NoError(t, state.CommitTransaction())

	require.NoError(t, state.Commit(db.NewWriteBatch()))
	assert.Equal(t, 0, state.Changes())

	value, err := db.Get([]byte("new"))
	require.NoError(t, err)
	assert.Equal(t, []byte{2}, value)
	_, err = db.Get([]byte("old"))
	assert.ErrorIs(t, err, database.ErrKeyNotFound)
}

func Test_State_concurrent_reads(t *testing.T) {
	t.Parallel()

	state := NewState(nil)
	for i := 0; i < 10; i++ {
		state.Set([]byte(fmt.Sprint(i)), []byte{byte(i)})
	}

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			value, err := state.Get([]byte(fmt.Sprint(i)))
			assert.NoError(t, err)
			assert.Equal(t, []byte{byte(i)}, value)
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}
