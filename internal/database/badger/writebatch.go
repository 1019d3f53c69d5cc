// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package badger

import (
	"fmt"

	"github.com/dgraph-io/badger/v3"
)

type writeBatch struct {
	prefix []byte
	db     *badger.DB
	batch  *badger.WriteBatch
}

func newWriteBatch(prefix []byte, db *badger.DB) *writeBatch {
	return &writeBatch{
		prefix: prefix,
		db:     db,
		batch:  db.NewWriteBatch(),
	}
}

func (wb *writeBatch) Set(key, value []byte) error {
	err := wb.batch.Set(makePrefixedKey(wb.prefix, key), value)
	if err != nil {
		return fmt.Errorf("setting in write batch: %w", err)
	}
	return nil
}

func (wb *writeBatch) Delete(key []byte) error {
	err := wb.batch.Delete(makePrefixedKey(wb.prefix, key))
	if err != nil {
		return fmt.Errorf("deleting in write batch: %w", err)
	}
	return nil
}

// Flush writes the batch and starts a new one, since a badger write
// batch cannot be reused once flushed.
func (wb *writeBatch) Flush() error {
	err := wb.batch.Flush()
	if err != nil {
		return transformError(fmt.Errorf("flushing write batch: %w", err))
	}
	wb.batch = wb.db.NewWriteBatch()
	return nil
}

// Cancel discards the batch operations and starts a new batch.
func (wb *writeBatch) Cancel() {
	wb.batch.Cancel()
	wb.batch = wb.db.NewWriteBatch()
}
