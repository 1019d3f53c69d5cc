// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package database defines the key value store interfaces the runtime
// state is persisted with. Implementations live in sub-packages.
package database

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound is returned when a key is not found.
	ErrKeyNotFound = errors.New("key not found")
	// ErrClosed is returned when the database is closed.
	ErrClosed = errors.New("database closed")
)

// Reader reads values from the database.
type Reader interface {
	// Get returns the value at the given key, or an error wrapping
	// ErrKeyNotFound if the key does not exist.
	Get(key []byte) (value []byte, err error)
}

// Writer writes values to the database.
type Writer interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// WriteBatch batches writes until it is flushed.
type WriteBatch interface {
	Writer
	Flush() error
	Cancel()
}

// Table is a view of the database with all keys prefixed.
type Table interface {
	Reader
	Writer
	NewWriteBatch() (writeBatch WriteBatch)
}

// Iterator walks stored key values.
type Iterator interface {
	// Iterate calls handle with every key value whose key starts with
	// prefix, stopping at the first error. The order is unspecified and
	// handle must not retain the slices it is given.
	Iterate(ctx context.Context, prefix []byte, handle func(key, value []byte) error) error
}

// Database is a key value store.
type Database interface {
	Reader
	Writer
	Iterator
	NewWriteBatch() (writeBatch WriteBatch)
	NewTable(prefix string) (table Table)
	Path() string
	Close() error
	DropAll() error
}
