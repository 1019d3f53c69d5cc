// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package pebble provides a database implementation using pebble.
package pebble

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ChainSafe/chainext/internal/database"
	"github.com/ChainSafe/chainext/internal/log"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

var logger = log.NewFromGlobal(log.AddContext("database", "pebble"))

var _ database.Database = (*Database)(nil)

// Database is a database implementation using pebble.
type Database struct {
	path string
	db   *pebble.DB
}

// New opens a pebble database at the path given, or in memory.
func New(path string, inMemory bool) (*Database, error) {
	opts := &pebble.Options{}
	if inMemory {
		opts = &pebble.Options{FS: vfs.NewMem()}
	} else {
		if err := os.MkdirAll(path, os.ModePerm); err != nil {
			return nil, err
		}
	}

	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("opening pebble db: %w", err)
	}

	logger.Debugf("opened pebble database at %q", path)
	return &Database{path: path, db: db}, nil
}

// Path returns the database directory.
func (d *Database) Path() string {
	return d.path
}

// Get returns the value at the given key, or an error wrapping
// database.ErrKeyNotFound if the key does not exist.
func (d *Database) Get(key []byte) (value []byte, err error) {
	value, closer, err := d.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: 0x%x", database.ErrKeyNotFound, key)
	} else if err != nil {
		return nil, transformError(fmt.Errorf("getting 0x%x from database: %w", key, err))
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	err = closer.Close()
	if err != nil {
		return nil, fmt.Errorf("closing after get: %w", err)
	}
	return valueCopy, nil
}

// Set sets a value at the given key.
func (d *Database) Set(key, value []byte) error {
	err := d.db.Set(key, value, pebble.Sync)
	if err != nil {
		return transformError(fmt.Errorf("writing 0x%x to database: %w", key, err))
	}
	return nil
}

// Delete deletes the given key. If the key is not found, no error
// is returned.
func (d *Database) Delete(key []byte) error {
	err := d.db.Delete(key, pebble.Sync)
	if err != nil {
		return transformError(fmt.Errorf("deleting 0x%x from database: %w", key, err))
	}
	return nil
}

// Iterate calls handle for each key starting with prefix, in ascending
// key order.
func (d *Database) Iterate(ctx context.Context, prefix []byte,
	handle func(key, value []byte) error) (err error) {
	options := &pebble.IterOptions{}
	if len(prefix) > 0 {
		options.LowerBound = prefix
		options.UpperBound = prefixUpperBound(prefix)
	}
	iterator, err := d.db.NewIter(options)
	if err != nil {
		return transformError(fmt.Errorf("creating iterator: %w", err))
	}
	defer func() {
		closeErr := iterator.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("closing iterator: %w", closeErr)
		}
	}()

	for valid := iterator.First(); valid; valid = iterator.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		key := iterator.Key()
		err = handle(key, iterator.Value())
		if err != nil {
			return fmt.Errorf("handling key 0x%x: %w", key, err)
		}
	}
	return iterator.Error()
}

// prefixUpperBound returns the smallest key greater than every key
// starting with prefix, or nil if there is none.
func prefixUpperBound(prefix []byte) []byte {
	upper := append([]byte(nil), prefix...)
	for i := len(upper) - 1; i >= 0; i-- {
		upper[i]++
		if upper[i] != 0 {
			return upper[:i+1]
		}
	}
	return nil
}

// NewWriteBatch returns a new write batch for the database.
func (d *Database) NewWriteBatch() database.WriteBatch {
	return newWriteBatch(nil, d.db)
}

// NewTable returns a new table using the database.
// All keys on the table will be prefixed with the given prefix.
func (d *Database) NewTable(prefix string) database.Table {
	return &table{prefix: []byte(prefix), database: d}
}

// Close closes the database.
func (d *Database) Close() error {
	return transformError(d.db.Close())
}

// DropAll deletes every key of the database.
func (d *Database) DropAll() error {
	iterator, err := d.db.NewIter(nil)
	if err != nil {
		return fmt.Errorf("creating iterator: %w", err)
	}

	var first, last []byte
	if iterator.First() {
		first = append([]byte(nil), iterator.Key()...)
	}
	if iterator.Last() {
		last = append([]byte(nil), iterator.Key()...)
	}

	err = iterator.Close()
	if err != nil {
		return fmt.Errorf("closing iterator: %w", err)
	}

	if first == nil {
		return nil
	}

	err = d.db.DeleteRange(first, last, pebble.Sync)
	if err != nil {
		return fmt.Errorf("deleting range: %w", err)
	}
	return d.Delete(last)
}

func transformError(err error) error {
	if errors.Is(err, pebble.ErrClosed) {
		return fmt.Errorf("%w: %s", database.ErrClosed, err)
	}
	return err
}
