// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package primitives

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/ChainSafe/chainext/pkg/scale"
)

// Weight is the two dimensional execution cost of an operation: the
// computation time and the size of the storage proof it requires.
type Weight struct {
	RefTime   uint64
	ProofSize uint64
}

// NewWeight returns a weight from its two components.
func NewWeight(refTime, proofSize uint64) Weight {
	return Weight{RefTime: refTime, ProofSize: proofSize}
}

// WeightFromRefTime returns a weight with the given reference time and
// no proof size.
func WeightFromRefTime(refTime uint64) Weight {
	return Weight{RefTime: refTime}
}

// MaxWeight is the largest representable weight.
var MaxWeight = Weight{RefTime: math.MaxUint64, ProofSize: math.MaxUint64}

func saturatingAdd(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

func saturatingMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

// Add returns the component-wise saturating sum of both weights.
func (w Weight) Add(other Weight) Weight {
	return Weight{
		RefTime:   saturatingAdd(w.RefTime, other.RefTime),
		ProofSize: saturatingAdd(w.ProofSize, other.ProofSize),
	}
}

// Sub returns the component-wise saturating difference of both weights.
func (w Weight) Sub(other Weight) Weight {
	return Weight{
		RefTime:   saturatingSub(w.RefTime, other.RefTime),
		ProofSize: saturatingSub(w.ProofSize, other.ProofSize),
	}
}

// Mul returns the weight with both components multiplied by n, saturating.
func (w Weight) Mul(n uint64) Weight {
	return Weight{
		RefTime:   saturatingMul(w.RefTime, n),
		ProofSize: saturatingMul(w.ProofSize, n),
	}
}

// Min returns the component-wise minimum of both weights.
func (w Weight) Min(other Weight) Weight {
	return Weight{
		RefTime:   min(w.RefTime, other.RefTime),
		ProofSize: min(w.ProofSize, other.ProofSize),
	}
}

// AnyGt returns true if any component of w is greater than the
// corresponding component of other.
func (w Weight) AnyGt(other Weight) bool {
	return w.RefTime > other.RefTime || w.ProofSize > other.ProofSize
}

// AllLte returns true if all components of w are less or equal to the
// corresponding component of other.
func (w Weight) AllLte(other Weight) bool {
	return !w.AnyGt(other)
}

// IsZero returns true if both components are zero.
func (w Weight) IsZero() bool {
	return w.RefTime == 0 && w.ProofSize == 0
}

func (w Weight) String() string {
	return fmt.Sprintf("Weight(ref_time: %d, proof_size: %d)", w.RefTime, w.ProofSize)
}

// Encode writes both components as compact integers.
func (w Weight) Encode(encoder scale.Encoder) error {
	err := scale.EncodeCompact(encoder, w.RefTime)
	if err != nil {
		return fmt.Errorf("encoding ref time: %w", err)
	}
	err = scale.EncodeCompact(encoder, w.ProofSize)
	if err != nil {
		return fmt.Errorf("encoding proof size: %w", err)
	}
	return nil
}

// Decode reads both components as compact integers.
func (w *Weight) Decode(decoder scale.Decoder) (err error) {
	w.RefTime, err = scale.DecodeCompact(decoder)
	if err != nil {
		return fmt.Errorf("decoding ref time: %w", err)
	}
	w.ProofSize, err = scale.DecodeCompact(decoder)
	if err != nil {
		return fmt.Errorf("decoding proof size: %w", err)
	}
	return nil
}
