// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package system

import (
	"encoding/binary"
	"fmt"

	"github.com/ChainSafe/chainext/lib/frame"
	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/ChainSafe/chainext/pkg/scale"
)

// CallIndex is the index of a call within the pallet.
type CallIndex uint8

// Call indexes.
const (
	RemarkCall          CallIndex = 0
	SetHeapPagesCall    CallIndex = 1
	SetCodeCall         CallIndex = 2
	SetStorageCall      CallIndex = 4
	RemarkWithEventCall CallIndex = 7
)

func (c CallIndex) String() string {
	switch c {
	case RemarkCall:
		return "remark"
	case SetHeapPagesCall:
		return "set_heap_pages"
	case SetCodeCall:
		return "set_code"
	case SetStorageCall:
		return "set_storage"
	case RemarkWithEventCall:
		return "remark_with_event"
	default:
		return fmt.Sprintf("call(%d)", uint8(c))
	}
}

// KeyValue is a raw storage item.
type KeyValue struct {
	Key   []byte
	Value []byte
}

// Call is a call of the system pallet. Only the fields of the call
// index are used.
type Call struct {
	Index CallIndex
	// Remark is the remark of remark and remark_with_event.
	Remark []byte
	// Pages is the number of heap pages of set_heap_pages.
	Pages uint64
	// Code is the runtime code of set_code.
	Code []byte
	// Items are the storage items of set_storage.
	Items []KeyValue
}

// Remark returns a remark call.
func Remark(remark []byte) Call { return Call{Index: RemarkCall, Remark: remark} }

// RemarkWithEvent returns a remark_with_event call.
func RemarkWithEvent(remark []byte) Call { return Call{Index: RemarkWithEventCall, Remark: remark} }

// SetHeapPages returns a set_heap_pages call.
func SetHeapPages(pages uint64) Call { return Call{Index: SetHeapPagesCall, Pages: pages} }

// SetCode returns a set_code call.
func SetCode(code []byte) Call { return Call{Index: SetCodeCall, Code: code} }

// SetStorage returns a set_storage call.
func SetStorage(items ...KeyValue) Call { return Call{Index: SetStorageCall, Items: items} }

// Encode writes the SCALE encoding of the call.
func (c Call) Encode(encoder scale.Encoder) error {
	switch c.Index {
	case RemarkCall, RemarkWithEventCall:
		return scale.EncodeVariant(encoder, uint8(c.Index), c.Remark)
	case SetHeapPagesCall:
		return scale.EncodeVariant(encoder, uint8(c.Index), c.Pages)
	case SetCodeCall:
		return scale.EncodeVariant(encoder, uint8(c.Index), c.Code)
	case SetStorageCall:
		err := encoder.PushByte(uint8(c.Index))
		if err != nil {
			return err
		}
		err = scale.EncodeCompact(encoder, uint64(len(c.Items)))
		if err != nil {
			return err
		}
		for _, item := range c.Items {
			err = scale.EncodeBytes(encoder, item.Key)
			if err != nil {
				return err
			}
			err = scale.EncodeBytes(encoder, item.Value)
			if err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: system call %d", scale.ErrUnknownVariant, c.Index)
	}
}

// Decode reads the SCALE encoding of a call.
func (c *Call) Decode(decoder scale.Decoder) (err error) {
	b, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}

	decoded := Call{Index: CallIndex(b)}
	switch decoded.Index {
	case RemarkCall, RemarkWithEventCall:
		decoded.Remark, err = scale.DecodeBytes(decoder)
	case SetHeapPagesCall:
		err = decoder.Decode(&decoded.Pages)
	case SetCodeCall:
		decoded.Code, err = scale.DecodeBytes(decoder)
	case SetStorageCall:
		decoded.Items, err = decodeItems(decoder)
	default:
		return fmt.Errorf("%w: system call %d", scale.ErrUnknownVariant, b)
	}
	if err != nil {
		return err
	}

	*c = decoded
	return nil
}

func decodeItems(decoder scale.Decoder) (items []KeyValue, err error) {
	length, err := scale.DecodeCompact(decoder)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < length; i++ {
		var item KeyValue
		item.Key, err = scale.DecodeBytes(decoder)
		if err != nil {
			return nil, err
		}
		item.Value, err = scale.DecodeBytes(decoder)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// GetDispatchInfo returns the dispatch information of the call.
func (c Call) GetDispatchInfo() frame.DispatchInfo {
	switch c.Index {
	case RemarkCall:
		return frame.DispatchInfo{Weight: remarkWeight(len(c.Remark))}
	case SetHeapPagesCall:
		return frame.DispatchInfo{Weight: setHeapPagesWeight(), Class: frame.Operational}
	case SetCodeCall:
		return frame.DispatchInfo{Weight: setCodeWeight(), Class: frame.Operational}
	case SetStorageCall:
		return frame.DispatchInfo{Weight: setStorageWeight(len(c.Items)), Class: frame.Operational}
	default:
		return frame.DispatchInfo{Weight: remarkWithEventWeight(len(c.Remark))}
	}
}

func (c Call) String() string {
	return "System." + c.Index.String()
}

// Dispatch executes the call with the origin given.
func (c Call) Dispatch(p *Pallet, origin frame.RawOrigin) (post frame.PostDispatchInfo, err error) {
	switch c.Index {
	case RemarkCall:
		if origin.Kind == frame.NoneOrigin {
			return post, primitives.BadOrigin
		}
		return post, nil
	case SetHeapPagesCall:
		err = origin.EnsureRoot()
		if err != nil {
			return post, err
		}
		encoded := make([]byte, 8)
		binary.LittleEndian.PutUint64(encoded, c.Pages)
		p.state.Set(HeapPagesKey, encoded)
		return post, nil
	case SetCodeCall:
		err = origin.EnsureRoot()
		if err != nil {
			return post, err
		}
		p.state.Set(CodeKey, c.Code)
		return post, p.DepositEvent(Index, CodeUpdated{})
	case SetStorageCall:
		err = origin.EnsureRoot()
		if err != nil {
			return post, err
		}
		for _, item := range c.Items {
			p.state.Set(item.Key, item.Value)
		}
		return post, nil
	case RemarkWithEventCall:
		sender, err := origin.EnsureSigned()
		if err != nil {
			return post, err
		}
		return post, p.DepositEvent(Index, Remarked{
			Sender: sender,
			Hash:   primitives.Blake2b256(c.Remark),
		})
	default:
		return post, fmt.Errorf("%w: system call %d", scale.ErrUnknownVariant, c.Index)
	}
}
