// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package system

import (
	"fmt"

	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/ChainSafe/chainext/pkg/scale"
)

// Event variant indexes.
const (
	CodeUpdatedEvent uint8 = 2
	RemarkedEvent    uint8 = 5
)

// CodeUpdated is deposited when the runtime code is updated.
type CodeUpdated struct{}

// Encode writes the event variant.
func (CodeUpdated) Encode(encoder scale.Encoder) error {
	return encoder.PushByte(CodeUpdatedEvent)
}

// Remarked is deposited by remark_with_event.
type Remarked struct {
	Sender primitives.AccountID
	Hash   primitives.Hash
}

// Encode writes the event variant followed by its fields.
func (r Remarked) Encode(encoder scale.Encoder) error {
	return scale.EncodeVariant(encoder, RemarkedEvent, r.Sender, r.Hash)
}

// Decode reads a Remarked event.
func (r *Remarked) Decode(decoder scale.Decoder) error {
	b, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}
	if b != RemarkedEvent {
		return fmt.Errorf("%w: event %d is not Remarked", scale.ErrUnknownVariant, b)
	}
	var decoded Remarked
	err = decoder.Read(decoded.Sender[:])
	if err != nil {
		return err
	}
	err = decoder.Read(decoded.Hash[:])
	if err != nil {
		return err
	}
	*r = decoded
	return nil
}
