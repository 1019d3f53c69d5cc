// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package badger

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/chainext/internal/database"
	"github.com/dgraph-io/badger/v3"
)

// makePrefixedKey allocates, so the result never shares memory with a
// prefix of larger capacity.
func makePrefixedKey(prefix, key []byte) []byte {
	prefixedKey := make([]byte, 0, len(prefix)+len(key))
	prefixedKey = append(prefixedKey, prefix...)
	return append(prefixedKey, key...)
}

func transformError(err error) error {
	if errors.Is(err, badger.ErrDBClosed) {
		return fmt.Errorf("%w: %s", database.ErrClosed, err)
	}
	return err
}
