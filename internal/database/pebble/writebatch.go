// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package pebble

import (
	"fmt"

	"github.com/cockroachdb/pebble"
)

type writeBatch struct {
	prefix []byte
	db     *pebble.DB
	batch  *pebble.Batch
}

func newWriteBatch(prefix []byte, db *pebble.DB) *writeBatch {
	return &writeBatch{
		prefix: prefix,
		db:     db,
		batch:  db.NewBatch(),
	}
}

func (wb *writeBatch) Set(key, value []byte) error {
	err := wb.batch.Set(makePrefixedKey(wb.prefix, key), value, nil)
	if err != nil {
		return fmt.Errorf("setting to batch writer: %w", err)
	}
	return nil
}

func (wb *writeBatch) Delete(key []byte) error {
	err := wb.batch.Delete(makePrefixedKey(wb.prefix, key), nil)
	if err != nil {
		return fmt.Errorf("setting to batch delete: %w", err)
	}
	return nil
}

// Flush commits the batch and resets it for reuse.
func (wb *writeBatch) Flush() error {
	err := wb.batch.Commit(pebble.Sync)
	if err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}
	wb.batch = wb.db.NewBatch()
	return nil
}

// Cancel discards the batch operations.
func (wb *writeBatch) Cancel() {
	wb.batch.Reset()
}

func makePrefixedKey(prefix, key []byte) []byte {
	prefixedKey := make([]byte, 0, len(prefix)+len(key))
	prefixedKey = append(prefixedKey, prefix...)
	return append(prefixedKey, key...)
}
