// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package storage

import (
	"maps"
)

// storageDiff records the changes made on top of the backend.
type storageDiff struct {
	upserts map[string][]byte
	deletes map[string]bool
}

func newStorageDiff() *storageDiff {
	return &storageDiff{
		upserts: make(map[string][]byte),
		deletes: make(map[string]bool),
	}
}

// get returns the value for the key and whether the key was deleted.
// A nil value and false means the diff knows nothing about the key.
func (sd *storageDiff) get(key string) (value []byte, deleted bool) {
	if value, ok := sd.upserts[key]; ok {
		return value, false
	}
	return nil, sd.deletes[key]
}

func (sd *storageDiff) upsert(key string, value []byte) {
	delete(sd.deletes, key)
	sd.upserts[key] = value
}

func (sd *storageDiff) delete(key string) {
	delete(sd.upserts, key)
	sd.deletes[key] = true
}

func (sd *storageDiff) snapshot() *storageDiff {
	return &storageDiff{
		upserts: maps.Clone(sd.upserts),
		deletes: maps.Clone(sd.deletes),
	}
}

// Writer is the write side of a storage backend batch.
type Writer interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

func (sd *storageDiff) applyTo(writer Writer) error {
	for key := range sd.deletes {
		err := writer.Delete([]byte(key))
		if err != nil {
			return err
		}
	}
	for key, value := range sd.upserts {
		err := writer.Set([]byte(key), value)
		if err != nil {
			return err
		}
	}
	return nil
}
