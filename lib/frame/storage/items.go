// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package storage

import (
	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/ChainSafe/chainext/pkg/scale"
)

func decodeStored[T any](key, encoded []byte) (value T, err error) {
	err = scale.Unmarshal(encoded, &value)
	if err != nil {
		logger.Errorf("decoding value stored at 0x%x: %s", key, err)
		return value, primitives.Corruption
	}
	return value, nil
}

func encodeStored(key []byte, value any) ([]byte, error) {
	encoded, err := scale.Marshal(value)
	if err != nil {
		logger.Errorf("encoding value to store at 0x%x: %s", key, err)
		return nil, primitives.Corruption
	}
	return encoded, nil
}

// Value is a single value storage item.
type Value[T any] struct {
	key []byte
}

// NewValue returns the value storage item of the pallet given.
func NewValue[T any](pallet, item string) Value[T] {
	return Value[T]{key: PrefixKey(pallet, item)}
}

// Key returns the storage key of the item.
func (v Value[T]) Key() []byte { return v.key }

// Get returns the stored value and true, or the zero value and false if
// nothing is stored.
func (v Value[T]) Get(state *State) (value T, ok bool, err error) {
	encoded, err := state.Get(v.key)
	if err != nil || encoded == nil {
		return value, false, err
	}
	value, err = decodeStored[T](v.key, encoded)
	return value, err == nil, err
}

// Put stores the value.
func (v Value[T]) Put(state *State, value T) error {
	encoded, err := encodeStored(v.key, value)
	if err != nil {
		return err
	}
	state.Set(v.key, encoded)
	return nil
}

// Kill removes the stored value.
func (v Value[T]) Kill(state *State) {
	state.Delete(v.key)
}

// Map is a storage map with keys of type K hashed by its hasher.
type Map[K, V any] struct {
	prefix []byte
	hasher Hasher
}

// NewMap returns the storage map of the pallet given.
func NewMap[K, V any](pallet, item string, hasher Hasher) Map[K, V] {
	return Map[K, V]{prefix: PrefixKey(pallet, item), hasher: hasher}
}

// Key returns the storage key of the entry for key.
func (m Map[K, V]) Key(key K) []byte {
	return joinKey(m.prefix, m.hasher(scale.MustMarshal(key)))
}

// Get returns the value stored for the key and true, or the zero value
// and false if there is none.
func (m Map[K, V]) Get(state *State, key K) (value V, ok bool, err error) {
	storageKey := m.Key(key)
	encoded, err := state.Get(storageKey)
	if err != nil || encoded == nil {
		return value, false, err
	}
	value, err = decodeStored[V](storageKey, encoded)
	return value, err == nil, err
}

// Contains returns true if a value is stored for the key.
func (m Map[K, V]) Contains(state *State, key K) (bool, error) {
	return state.Has(m.Key(key))
}

// Insert stores the value for the key.
func (m Map[K, V]) Insert(state *State, key K, value V) error {
	storageKey := m.Key(key)
	encoded, err := encodeStored(storageKey, value)
	if err != nil {
		return err
	}
	state.Set(storageKey, encoded)
	return nil
}

// Remove removes the value stored for the key.
func (m Map[K, V]) Remove(state *State, key K) {
	state.Delete(m.Key(key))
}

// DoubleMap is a storage map with a pair of keys, each hashed by its
// own hasher.
type DoubleMap[K1, K2, V any] struct {
	prefix  []byte
	hasher1 Hasher
	hasher2 Hasher
}

// NewDoubleMap returns the storage double map of the pallet given.
func NewDoubleMap[K1, K2, V any](pallet, item string, hasher1, hasher2 Hasher) DoubleMap[K1, K2, V] {
	return DoubleMap[K1, K2, V]{prefix: PrefixKey(pallet, item), hasher1: hasher1, hasher2: hasher2}
}

// Key returns the storage key of the entry for the key pair.
func (m DoubleMap[K1, K2, V]) Key(key1 K1, key2 K2) []byte {
	return joinKey(m.prefix,
		m.hasher1(scale.MustMarshal(key1)),
		m.hasher2(scale.MustMarshal(key2)))
}

// Get returns the value stored for the key pair and true, or the zero
// value and false if there is none.
func (m DoubleMap[K1, K2, V]) Get(state *State, key1 K1, key2 K2) (value V, ok bool, err error) {
	storageKey := m.Key(key1, key2)
	encoded, err := state.Get(storageKey)
	if err != nil || encoded == nil {
		return value, false, err
	}
	value, err = decodeStored[V](storageKey, encoded)
	return value, err == nil, err
}

// Insert stores the value for the key pair.
func (m DoubleMap[K1, K2, V]) Insert(state *State, key1 K1, key2 K2, value V) error {
	storageKey := m.Key(key1, key2)
	encoded, err := encodeStored(storageKey, value)
	if err != nil {
		return err
	}
	state.Set(storageKey, encoded)
	return nil
}

// Remove removes the value stored for the key pair.
func (m DoubleMap[K1, K2, V]) Remove(state *State, key1 K1, key2 K2) {
	state.Delete(m.Key(key1, key2))
}
