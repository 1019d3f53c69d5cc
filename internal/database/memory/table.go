// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package memory

import (
	"github.com/ChainSafe/chainext/internal/database"
)

type table struct {
	prefix   string
	database *Database
}

func newTable(prefix string, database *Database) *table {
	return &table{
		prefix:   prefix,
		database: database,
	}
}

func (t *table) key(key []byte) []byte {
	return []byte(t.prefix + string(key))
}

func (t *table) Get(key []byte) (value []byte, err error) {
	return t.database.Get(t.key(key))
}

func (t *table) Set(key, value []byte) (err error) {
	return t.database.Set(t.key(key), value)
}

func (t *table) Delete(key []byte) (err error) {
	return t.database.Delete(t.key(key))
}

func (t *table) NewWriteBatch() (writeBatch database.WriteBatch) {
	return newWriteBatch(t.prefix, t.database)
}
