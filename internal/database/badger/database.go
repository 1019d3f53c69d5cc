// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package badger implements the state database on badger v3.
package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ChainSafe/chainext/internal/database"
	"github.com/ChainSafe/chainext/internal/log"
	badger "github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/ristretto/z"
)

var logger = log.NewFromGlobal(log.AddContext("database", "badger"))

var _ database.Database = (*Database)(nil)

// Database is a badger backed database.
type Database struct {
	path string
	db   *badger.DB
}

// New opens the badger database described by the settings.
func New(settings Settings) (*Database, error) {
	settings.SetDefaults()
	err := settings.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating settings: %w", err)
	}

	path := settings.Path
	options := badger.DefaultOptions(path).
		WithLogger(nil).
		WithInMemory(settings.InMemory)
	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("opening badger database: %w", err)
	}

	logger.Debugf("opened badger database at %q", path)
	return &Database{path: path, db: db}, nil
}

// Get returns the value at the given key, or an error wrapping
// database.ErrKeyNotFound.
func (d *Database) Get(key []byte) (value []byte, err error) {
	err = d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return nil, fmt.Errorf("%w: 0x%x", database.ErrKeyNotFound, key)
	case err != nil:
		return nil, transformError(fmt.Errorf("getting 0x%x from database: %w", key, err))
	}
	return value, nil
}

// Set sets a value at the given key.
func (d *Database) Set(key, value []byte) error {
	err := d.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	return transformError(err)
}

// Delete deletes the given key. Deleting a missing key is not an error.
func (d *Database) Delete(key []byte) error {
	err := d.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	return transformError(err)
}

// Iterate streams the key values starting with prefix to handle.
// Keys are read concurrently so they do not arrive in order.
func (d *Database) Iterate(ctx context.Context, prefix []byte,
	handle func(key, value []byte) error) error {
	stream := d.db.NewStream()
	stream.LogPrefix = "chainext.Iterate"
	if len(prefix) > 0 {
		stream.Prefix = append([]byte(nil), prefix...)
	}
	// Orchestrate may report its own context cancelation instead of the
	// error returned by Send, so the handler error is kept aside.
	var handleErr error
	stream.Send = func(buf *z.Buffer) error {
		list, err := badger.BufferToKVList(buf)
		if err != nil {
			return fmt.Errorf("decoding streamed key values: %w", err)
		}
		for _, kv := range list.Kv {
			err = handle(kv.Key, kv.Value)
			if err != nil {
				handleErr = fmt.Errorf("handling key 0x%x: %w", kv.Key, err)
				return handleErr
			}
		}
		return nil
	}
	err := stream.Orchestrate(ctx)
	if handleErr != nil {
		return handleErr
	}
	return transformError(err)
}

// NewWriteBatch returns a new write batch for the database.
func (d *Database) NewWriteBatch() database.WriteBatch {
	return newWriteBatch(nil, d.db)
}

// NewTable returns a view of the database prefixing every key.
func (d *Database) NewTable(prefix string) database.Table {
	return &table{prefix: []byte(prefix), database: d}
}

// Path returns the database directory, or the empty string if the
// database is in memory.
func (d *Database) Path() string {
	return d.path
}

// Close closes the database.
func (d *Database) Close() error {
	return transformError(d.db.Close())
}

// DropAll deletes every key of the database.
func (d *Database) DropAll() error {
	return transformError(d.db.DropAll())
}
