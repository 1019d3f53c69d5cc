// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package badger

import (
	"errors"
	"fmt"
	"path/filepath"
)

var errPathMissing = errors.New("path is required for an on-disk database")

// Settings is the database settings.
type Settings struct {
	// Path is the database directory. It is ignored in memory.
	Path string
	// InMemory keeps the database in memory only.
	InMemory bool
}

// SetDefaults cleans the path of an on-disk database.
func (s *Settings) SetDefaults() {
	if s.InMemory {
		s.Path = ""
		return
	}
	if s.Path != "" {
		s.Path = filepath.Clean(s.Path)
	}
}

// Validate validates the settings.
func (s Settings) Validate() error {
	if s.InMemory {
		return nil
	}
	if s.Path == "" {
		return errPathMissing
	}
	if _, err := filepath.Abs(s.Path); err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	return nil
}
