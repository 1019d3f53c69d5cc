// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package contracts

import (
	"fmt"

	"github.com/ChainSafe/chainext/lib/frame"
	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/ChainSafe/chainext/pkg/scale"
)

// MigrateCall is the index of the migrate call.
const MigrateCall uint8 = 9

var (
	migrateWeight     = primitives.NewWeight(8_497_000, 1_594)
	migrateStepWeight = primitives.NewWeight(10_281_000, 3_680)
)

// Call is a call of the contracts pallet. Only migrate is exposed.
type Call struct {
	// WeightLimit is the weight the migration may use.
	WeightLimit primitives.Weight
}

// Migrate returns a migrate call.
func Migrate(weightLimit primitives.Weight) Call {
	return Call{WeightLimit: weightLimit}
}

// Encode writes the SCALE encoding of the call.
func (c Call) Encode(encoder scale.Encoder) error {
	return scale.EncodeVariant(encoder, MigrateCall, c.WeightLimit)
}

// Decode reads the SCALE encoding of a call.
func (c *Call) Decode(decoder scale.Decoder) error {
	b, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}
	if b != MigrateCall {
		return fmt.Errorf("%w: contracts call %d", scale.ErrUnknownVariant, b)
	}
	var decoded Call
	err = decoder.Decode(&decoded.WeightLimit)
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}

// GetDispatchInfo returns the dispatch information of the call.
func (c Call) GetDispatchInfo() frame.DispatchInfo {
	return frame.DispatchInfo{Weight: migrateWeight.Add(c.WeightLimit)}
}

func (c Call) String() string {
	return fmt.Sprintf("Contracts.migrate(%s)", c.WeightLimit)
}

// Dispatch performs as many migration steps as the weight limit allows.
// It fails with ErrNoMigrationPerformed if no step could be performed.
func (c Call) Dispatch(p *Pallet, origin frame.RawOrigin) (frame.PostDispatchInfo, error) {
	_, err := origin.EnsureSigned()
	if err != nil {
		return frame.WithActualWeight(migrateWeight), err
	}

	steps, err := p.MigrationInProgress()
	if err != nil {
		return frame.WithActualWeight(migrateWeight), err
	}

	weight := migrateWeight
	var performed uint32
	for performed < steps && weight.Add(migrateStepWeight).AllLte(migrateWeight.Add(c.WeightLimit)) {
		weight = weight.Add(migrateStepWeight)
		performed++
	}
	if performed == 0 {
		return frame.WithActualWeight(migrateWeight), ErrNoMigrationPerformed
	}

	err = p.ScheduleMigration(steps - performed)
	if err != nil {
		return frame.WithActualWeight(weight), err
	}
	logger.Debugf("performed %d migration steps, %d left", performed, steps-performed)
	post := frame.WithActualWeight(weight)
	post.PaysFee = frame.PaysNo
	return post, nil
}
