// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package memory

type operation struct {
	key    string
	value  []byte
	delete bool
}

// writeBatch queues operations, in order, until Flush.
type writeBatch struct {
	prefix     string
	database   *Database
	operations []operation
}

func newWriteBatch(prefix string, database *Database) *writeBatch {
	return &writeBatch{
		prefix:   prefix,
		database: database,
	}
}

// Set queues a copy of the value at the prefixed key.
func (wb *writeBatch) Set(key, value []byte) (err error) {
	wb.operations = append(wb.operations, operation{
		key:   wb.prefix + string(key),
		value: copyBytes(value),
	})
	return nil
}

// Delete queues the removal of the prefixed key.
func (wb *writeBatch) Delete(key []byte) (err error) {
	wb.operations = append(wb.operations, operation{
		key:    wb.prefix + string(key),
		delete: true,
	})
	return nil
}

// Flush applies the queued operations atomically and empties the batch.
func (wb *writeBatch) Flush() (err error) {
	err = wb.database.apply(wb.operations)
	if err != nil {
		return err
	}
	wb.operations = nil
	return nil
}

// Cancel drops the queued operations.
func (wb *writeBatch) Cancel() {
	wb.operations = nil
}
