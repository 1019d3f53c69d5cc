// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package storage implements the runtime storage: a change overlay with
// nested transactions on top of a key value backend, and typed storage
// items addressed by hashed keys.
package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ChainSafe/chainext/internal/database"
	"github.com/ChainSafe/chainext/internal/log"
	"github.com/ChainSafe/chainext/lib/primitives"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "storage"))

// DefaultTransactionalLimit is the default maximum number of nested
// storage transactions.
const DefaultTransactionalLimit = 255

// Backend is the key value store the state reads through to.
// It returns an error wrapping database.ErrKeyNotFound for absent keys.
type Backend interface {
	Get(key []byte) ([]byte, error)
}

// State is the runtime storage seen while executing calls. Changes are
// kept in memory until Commit writes them to a batch.
type State struct {
	backend Backend
	// diffs is the transaction stack, diffs[0] holding the changes made
	// outside any transaction.
	diffs []*storageDiff
	limit int
	mutex sync.RWMutex
}

// Option configures a State.
type Option func(s *State)

// WithTransactionalLimit sets the maximum number of nested transactions.
func WithTransactionalLimit(limit int) Option {
	return func(s *State) {
		s.limit = limit
	}
}

// NewState returns a state reading through to the backend given, which
// can be nil for an empty state.
func NewState(backend Backend, options ...Option) *State {
	s := &State{
		backend: backend,
		diffs:   []*storageDiff{newStorageDiff()},
		limit:   DefaultTransactionalLimit,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *State) top() *storageDiff {
	return s.diffs[len(s.diffs)-1]
}

// Get returns the value stored at the key, or nil if there is none.
// Backend failures are logged and returned as a Corruption error.
func (s *State) Get(key []byte) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, deleted := s.top().get(string(key))
	if value != nil || deleted {
		return value, nil
	}

	if s.backend == nil {
		return nil, nil
	}

	value, err := s.backend.Get(key)
	switch {
	case errors.Is(err, database.ErrKeyNotFound):
		return nil, nil
	case err != nil:
		logger.Errorf("reading key 0x%x from backend: %s", key, err)
		return nil, primitives.Corruption
	}
	return value, nil
}

// Has returns true if a value is stored at the key.
func (s *State) Has(key []byte) (bool, error) {
	value, err := s.Get(key)
	return value != nil, err
}

// Set stores the value at the key.
func (s *State) Set(key, value []byte) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if value == nil {
		value = []byte{}
	}
	s.top().upsert(string(key), value)
}

// Delete removes the value stored at the key.
func (s *State) Delete(key []byte) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.top().delete(string(key))
}

// TransactionLevel returns the number of nested transactions started.
func (s *State) TransactionLevel() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.diffs) - 1
}

// StartTransaction starts a nested storage transaction. It returns the
// LimitReached transactional error if the nesting limit is reached.
func (s *State) StartTransaction() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.diffs)-1 >= s.limit {
		return primitives.Transactional(primitives.LimitReached)
	}
	s.diffs = append(s.diffs, s.top().snapshot())
	return nil
}

// CommitTransaction keeps the changes of the innermost transaction.
func (s *State) CommitTransaction() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.diffs) == 1 {
		return primitives.Transactional(primitives.NoLayer)
	}
	last := len(s.diffs) - 1
	s.diffs[last-1] = s.diffs[last]
	s.diffs = s.diffs[:last]
	return nil
}

// RollbackTransaction discards the changes of the innermost transaction.
func (s *State) RollbackTransaction() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.diffs) == 1 {
		return primitives.Transactional(primitives.NoLayer)
	}
	s.diffs = s.diffs[:len(s.diffs)-1]
	return nil
}

// WithTransaction runs fn in a nested transaction, committed if fn
// returns no error and rolled back otherwise. The error of fn is
// returned unwrapped.
func (s *State) WithTransaction(fn func() error) error {
	err := s.StartTransaction()
	if err != nil {
		return err
	}

	fnErr := fn()
	if fnErr != nil {
		err = s.RollbackTransaction()
		if err != nil {
			return err
		}
		return fnErr
	}

	return s.CommitTransaction()
}

// Batch is a backend write batch.
type Batch interface {
	Writer
	Flush() error
}

// Commit writes the changes made outside any transaction to the batch,
// flushes it and resets the overlay. It fails if a transaction is open.
func (s *State) Commit(batch Batch) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.diffs) != 1 {
		return fmt.Errorf("committing state: %d transactions still open", len(s.diffs)-1)
	}

	err := s.diffs[0].applyTo(batch)
	if err != nil {
		return fmt.Errorf("writing changes to batch: %w", err)
	}

	err = batch.Flush()
	if err != nil {
		return fmt.Errorf("flushing batch: %w", err)
	}

	s.diffs[0] = newStorageDiff()
	return nil
}

// Changes returns the number of keys changed and not committed yet.
func (s *State) Changes() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	top := s.top()
	return len(top.upserts) + len(top.deletes)
}
