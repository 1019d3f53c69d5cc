// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package pebble

import (
	"context"
	"errors"
	"testing"

	"github.com/ChainSafe/chainext/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Database(t *testing.T) {
	t.Parallel()

	db, err := New(t.TempDir(), false)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})

	require.NoError(t, db.Set([]byte{1}, []byte{2}))
	value, err := db.Get([]byte{1})
	require.NoError(t, err)
	assert.Equal(t, []byte{2}, value)

	require.NoError(t, db.Delete([]byte{1}))
	_, err = db.Get([]byte{1})
	assert.ErrorIs(t, err, database.ErrKeyNotFound)

	require.NoError(t, db.Set([]byte{5}, []byte{5}))
	require.NoError(t, db.Set([]byte{9}, []byte{9}))
	require.NoError(t, db.DropAll())
	_, err = db.Get([]byte{5})
	assert.ErrorIs(t, err, database.ErrKeyNotFound)
	_, err = db.Get([]byte{9})
	assert.ErrorIs(t, err, database.ErrKeyNotFound)
}

func Test_table(t *testing.T) {
	t.Parallel()

	db, err := New("memdb", true)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})

	dbTable := db.NewTable("prefix")

	batch := dbTable.NewWriteBatch()
	require.NoError(t, batch.Set([]byte{1}, []byte{1}))
	require.NoError(t, batch.Set([]byte{2}, []byte{2}))
	batch.Cancel()
	require.NoError(t, batch.Set([]byte{3}, []byte{3}))
	require.NoError(t, batch.Flush())

	_, err = dbTable.Get([]byte{1})
	assert.ErrorIs(t, err, database.ErrKeyNotFound)

	value, err := db.Get([]byte("prefix\x03"))
	require.NoError(t, err)
	assert.Equal(t, []byte{3}, value)

	require.NoError(t, dbTable.Delete([]byte{3}))
	_, err = dbTable.Get([]byte{3})
	assert.ErrorIs(t, err, database.ErrKeyNotFound)
}

func Test_Database_Iterate(t *testing.T) {
	t.Parallel()

	db, err := New("memdb", true)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})

	for _, key := range [][]byte{{0x01, 0xff}, {0x01, 0x00}, {0x02}, {0x01}} {
		require.NoError(t, db.Set(key, key))
	}

	var keys [][]byte
	collect := func(key, value []byte) error {
		assert.Equal(t, key, value)
		keys = append(keys, append([]byte(nil), key...))
		return nil
	}

	require.NoError(t, db.Iterate(context.Background(), []byte{0x01}, collect))
	assert.Equal(t, [][]byte{{0x01}, {0x01, 0x00}, {0x01, 0xff}}, keys)

	keys = nil
	require.NoError(t, db.Iterate(context.Background(), nil, collect))
	assert.Len(t, keys, 4)

	errStop := errors.New("stop")
	err = db.Iterate(context.Background(), nil, func([]byte, []byte) error { return errStop })
	assert.ErrorIs(t, err, errStop)
}

func Test_prefixUpperBound(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		prefix []byte
		upper  []byte
	}{
		"simple":       {prefix: []byte{1, 2}, upper: []byte{1, 3}},
		"carry":        {prefix: []byte{1, 0xff}, upper: []byte{2}},
		"all_ones":     {prefix: []byte{0xff, 0xff}},
		"single_byte":  {prefix: []byte{0}, upper: []byte{1}},
		"middle_carry": {prefix: []byte{1, 0xff, 0xff}, upper: []byte{2}},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			prefix := append([]byte(nil), testCase.prefix...)
			upper := prefixUpperBound(prefix)
			assert.Equal(t, testCase.upper, upper)
			assert.Equal(t, testCase.prefix, prefix)
		})
	}
}
