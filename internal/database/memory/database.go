// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package memory implements the state database in memory. Nothing is
// persisted across runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ChainSafe/chainext/internal/database"
)

var _ database.Database = (*Database)(nil)

// Database is a map backed database, safe for concurrent use.
type Database struct {
	mutex   sync.RWMutex
	closed  bool
	entries map[string][]byte
}

// New returns an empty in-memory database.
func New() *Database {
	return &Database{
		entries: make(map[string][]byte),
	}
}

// Get returns a copy of the value at the given key, or an error
// wrapping database.ErrKeyNotFound.
func (db *Database) Get(key []byte) (value []byte, err error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	if db.closed {
		return nil, database.ErrClosed
	}

	value, ok := db.entries[string(key)]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%x", database.ErrKeyNotFound, key)
	}
	return copyBytes(value), nil
}

// Set stores a copy of the value at the given key.
func (db *Database) Set(key, value []byte) (err error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if db.closed {
		return database.ErrClosed
	}

	db.entries[string(key)] = copyBytes(value)
	return nil
}

// Delete removes the given key. Deleting a missing key is not an error.
func (db *Database) Delete(key []byte) (err error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if db.closed {
		return database.ErrClosed
	}

	delete(db.entries, string(key))
	return nil
}

// Iterate calls handle for each key starting with prefix in ascending
// key order. The entries are snapshotted first so handle may write to
// the database.
func (db *Database) Iterate(ctx context.Context, prefix []byte,
	handle func(key, value []byte) error) error {
	db.mutex.RLock()
	if db.closed {
		db.mutex.RUnlock()
		return database.ErrClosed
	}
	keys := make([]string, 0, len(db.entries))
	snapshot := make(map[string][]byte)
	for key, value := range db.entries {
		if !strings.HasPrefix(key, string(prefix)) {
			continue
		}
		keys = append(keys, key)
		snapshot[key] = value
	}
	db.mutex.RUnlock()

	sort.Strings(keys)
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := handle([]byte(key), copyBytes(snapshot[key]))
		if err != nil {
			return fmt.Errorf("handling key 0x%x: %w", key, err)
		}
	}
	return nil
}

// NewWriteBatch returns a batch applied to the database on Flush.
// A batch must not be used concurrently.
func (db *Database) NewWriteBatch() (writeBatch database.WriteBatch) {
	return newWriteBatch("", db)
}

// NewTable returns a view of the database prefixing every key.
func (db *Database) NewTable(prefix string) (table database.Table) {
	return newTable(prefix, db)
}

// Path returns the empty string.
func (db *Database) Path() string { return "" }

// Close drops the entries. Further operations return database.ErrClosed.
func (db *Database) Close() (err error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.closed = true
	db.entries = nil
	return nil
}

// DropAll removes every entry.
func (db *Database) DropAll() (err error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if db.closed {
		return database.ErrClosed
	}

	db.entries = make(map[string][]byte)
	return nil
}

func (db *Database) apply(operations []operation) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if db.closed {
		return database.ErrClosed
	}

	for _, op := range operations {
		if op.delete {
			delete(db.entries, op.key)
			continue
		}
		db.entries[op.key] = op.value
	}
	return nil
}
