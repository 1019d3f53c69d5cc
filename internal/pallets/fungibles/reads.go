// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package fungibles

import (
	"fmt"

	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/ChainSafe/chainext/pkg/scale"
)

// ReadIndex is the index of a state read of the pallet.
type ReadIndex uint8

// Read indexes.
const (
	TotalSupplyRead   ReadIndex = 0
	BalanceOfRead     ReadIndex = 1
	AllowanceRead     ReadIndex = 2
	TokenNameRead     ReadIndex = 8
	TokenSymbolRead   ReadIndex = 9
	TokenDecimalsRead ReadIndex = 10
	TokenExistsRead   ReadIndex = 18
)

func (r ReadIndex) String() string {
	switch r {
	case TotalSupplyRead:
		return "TotalSupply"
	case BalanceOfRead:
		return "BalanceOf"
	case AllowanceRead:
		return "Allowance"
	case TokenNameRead:
		return "TokenName"
	case TokenSymbolRead:
		return "TokenSymbol"
	case TokenDecimalsRead:
		return "TokenDecimals"
	case TokenExistsRead:
		return "TokenExists"
	default:
		return fmt.Sprintf("ReadIndex(%d)", uint8(r))
	}
}

// Read is a state read of the pallet.
type Read struct {
	Index ReadIndex
	Token uint32
	// Owner is the account of BalanceOf and Allowance.
	Owner primitives.AccountID
	// Spender is the delegate of Allowance.
	Spender primitives.AccountID
}

// TotalSupply returns the read of the supply of a token.
func TotalSupply(token uint32) Read { return Read{Index: TotalSupplyRead, Token: token} }

// BalanceOf returns the read of the balance of an account.
func BalanceOf(token uint32, owner primitives.AccountID) Read {
	return Read{Index: BalanceOfRead, Token: token, Owner: owner}
}

// Allowance returns the read of the allowance of a spender.
func Allowance(token uint32, owner, spender primitives.AccountID) Read {
	return Read{Index: AllowanceRead, Token: token, Owner: owner, Spender: spender}
}

// TokenName returns the read of the name of a token.
func TokenName(token uint32) Read { return Read{Index: TokenNameRead, Token: token} }

// TokenSymbol returns the read of the symbol of a token.
func TokenSymbol(token uint32) Read { return Read{Index: TokenSymbolRead, Token: token} }

// TokenDecimals returns the read of the decimals of a token.
func TokenDecimals(token uint32) Read { return Read{Index: TokenDecimalsRead, Token: token} }

// TokenExists returns the read of the existence of a token.
func TokenExists(token uint32) Read { return Read{Index: TokenExistsRead, Token: token} }

// Encode writes the SCALE encoding of the read.
func (r Read) Encode(encoder scale.Encoder) error {
	index := uint8(r.Index)
	switch r.Index {
	case TotalSupplyRead, TokenNameRead, TokenSymbolRead, TokenDecimalsRead, TokenExistsRead:
		return scale.EncodeVariant(encoder, index, r.Token)
	case BalanceOfRead:
		return scale.EncodeVariant(encoder, index, r.Token, r.Owner)
	case AllowanceRead:
		return scale.EncodeVariant(encoder, index, r.Token, r.Owner, r.Spender)
	default:
		return fmt.Errorf("%w: fungibles read %d", scale.ErrUnknownVariant, index)
	}
}

// Decode reads the SCALE encoding of a read.
func (r *Read) Decode(decoder scale.Decoder) (err error) {
	b, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}

	decoded := Read{Index: ReadIndex(b)}
	switch decoded.Index {
	case TotalSupplyRead, TokenNameRead, TokenSymbolRead, TokenDecimalsRead, TokenExistsRead:
		err = scale.DecodeFields(decoder, &decoded.Token)
	case BalanceOfRead:
		err = scale.DecodeFields(decoder, &decoded.Token, &decoded.Owner)
	case AllowanceRead:
		err = scale.DecodeFields(decoder, &decoded.Token, &decoded.Owner, &decoded.Spender)
	default:
		return fmt.Errorf("%w: fungibles read %d", scale.ErrUnknownVariant, b)
	}
	if err != nil {
		return err
	}

	*r = decoded
	return nil
}

// Weight returns the weight of the read.
func (r Read) Weight() primitives.Weight {
	switch r.Index {
	case TotalSupplyRead:
		return totalSupplyWeight
	case BalanceOfRead:
		return balanceOfWeight
	case AllowanceRead:
		return allowanceWeight
	case TokenNameRead:
		return tokenNameWeight
	case TokenSymbolRead:
		return tokenSymbolWeight
	case TokenDecimalsRead:
		return tokenDecimalsWeight
	default:
		return tokenExistsWeight
	}
}

func (r Read) String() string {
	return "Fungibles." + r.Index.String()
}

// ReadResult is the result of a read. Only the field of the read index
// is used.
type ReadResult struct {
	Index ReadIndex
	// Balance is the result of TotalSupply, BalanceOf and Allowance.
	Balance Balance
	// Bytes is the result of TokenName and TokenSymbol.
	Bytes    []byte
	Decimals uint8
	Exists   bool
}

// Encode writes the SCALE encoding of the bare result value.
func (r ReadResult) Encode(encoder scale.Encoder) error {
	switch r.Index {
	case TotalSupplyRead, BalanceOfRead, AllowanceRead:
		return encoder.Encode(normalised(r.Balance))
	case TokenNameRead, TokenSymbolRead:
		return scale.EncodeBytes(encoder, r.Bytes)
	case TokenDecimalsRead:
		return encoder.PushByte(r.Decimals)
	case TokenExistsRead:
		return encoder.Encode(r.Exists)
	default:
		return fmt.Errorf("%w: fungibles read %d", scale.ErrUnknownVariant, r.Index)
	}
}

func (r ReadResult) String() string {
	switch r.Index {
	case TotalSupplyRead, BalanceOfRead, AllowanceRead:
		return fmt.Sprintf("%s(%s)", r.Index, normalised(r.Balance))
	case TokenNameRead, TokenSymbolRead:
		return fmt.Sprintf("%s(%q)", r.Index, r.Bytes)
	case TokenDecimalsRead:
		return fmt.Sprintf("%s(%d)", r.Index, r.Decimals)
	default:
		return fmt.Sprintf("%s(%t)", r.Index, r.Exists)
	}
}

// Execute performs the read. Storage failures are logged and read as
// the default value.
func (r Read) Execute(p *Pallet) ReadResult {
	result := ReadResult{Index: r.Index}
	var err error
	switch r.Index {
	case TotalSupplyRead:
		result.Balance, err = p.TotalSupply(r.Token)
	case BalanceOfRead:
		result.Balance, err = p.BalanceOf(r.Token, r.Owner)
	case AllowanceRead:
		result.Balance, err = p.Allowance(r.Token, r.Owner, r.Spender)
	case TokenNameRead, TokenSymbolRead, TokenDecimalsRead:
		var metadata Metadata
		metadata, err = p.Metadata(r.Token)
		switch r.Index {
		case TokenNameRead:
			result.Bytes = metadata.Name
		case TokenSymbolRead:
			result.Bytes = metadata.Symbol
		default:
			result.Decimals = metadata.Decimals
		}
	case TokenExistsRead:
		result.Exists, err = p.Exists(r.Token)
	}
	if err != nil {
		logger.Errorf("reading %s of token %d: %s", r, r.Token, err)
		return ReadResult{Index: r.Index, Balance: NewBalance(0)}
	}
	if result.Bytes == nil && (r.Index == TokenNameRead || r.Index == TokenSymbolRead) {
		result.Bytes = []byte{}
	}
	return result
}
