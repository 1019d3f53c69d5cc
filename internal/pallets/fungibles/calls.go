// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package fungibles

import (
	"fmt"

	"github.com/ChainSafe/chainext/lib/frame"
	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/ChainSafe/chainext/pkg/scale"
)

// CallIndex is the index of a call within the pallet.
type CallIndex uint8

// Call indexes.
const (
	TransferCall          CallIndex = 3
	TransferFromCall      CallIndex = 4
	ApproveCall           CallIndex = 5
	IncreaseAllowanceCall CallIndex = 6
	DecreaseAllowanceCall CallIndex = 7
	CreateCall            CallIndex = 11
	StartDestroyCall      CallIndex = 12
	SetMetadataCall       CallIndex = 16
	ClearMetadataCall     CallIndex = 17
	MintCall              CallIndex = 19
	BurnCall              CallIndex = 20
)

var callNames = map[CallIndex]string{
	TransferCall:          "transfer",
	TransferFromCall:      "transfer_from",
	ApproveCall:           "approve",
	IncreaseAllowanceCall: "increase_allowance",
	DecreaseAllowanceCall: "decrease_allowance",
	CreateCall:            "create",
	StartDestroyCall:      "start_destroy",
	SetMetadataCall:       "set_metadata",
	ClearMetadataCall:     "clear_metadata",
	MintCall:              "mint",
	BurnCall:              "burn",
}

func (c CallIndex) String() string {
	name, ok := callNames[c]
	if !ok {
		return fmt.Sprintf("call(%d)", uint8(c))
	}
	return name
}

// Call is a call of the pallet. Only the fields of the call index are
// used.
type Call struct {
	Index CallIndex
	Token uint32
	// From is the owner of the tokens moved by transfer_from.
	From primitives.AccountID
	// To is the destination of transfers.
	To primitives.AccountID
	// Spender is the delegate of approvals.
	Spender primitives.AccountID
	// Admin is the admin of a created asset.
	Admin primitives.AccountID
	// Account is the account tokens are minted to or burned from.
	Account primitives.AccountID
	// Value is the amount of tokens, or the minimum balance of create.
	Value    Balance
	Name     []byte
	Symbol   []byte
	Decimals uint8
}

// Transfer returns a transfer call.
func Transfer(token uint32, to primitives.AccountID, value Balance) Call {
	return Call{Index: TransferCall, Token: token, To: to, Value: value}
}

// TransferFrom returns a transfer_from call.
func TransferFrom(token uint32, from, to primitives.AccountID, value Balance) Call {
	return Call{Index: TransferFromCall, Token: token, From: from, To: to, Value: value}
}

// Approve returns an approve call.
func Approve(token uint32, spender primitives.AccountID, value Balance) Call {
	return Call{Index: ApproveCall, Token: token, Spender: spender, Value: value}
}

// IncreaseAllowance returns an increase_allowance call.
func IncreaseAllowance(token uint32, spender primitives.AccountID, value Balance) Call {
	return Call{Index: IncreaseAllowanceCall, Token: token, Spender: spender, Value: value}
}

// DecreaseAllowance returns a decrease_allowance call.
func DecreaseAllowance(token uint32, spender primitives.AccountID, value Balance) Call {
	return Call{Index: DecreaseAllowanceCall, Token: token, Spender: spender, Value: value}
}

// Create returns a create call.
func Create(id uint32, admin primitives.AccountID, minBalance Balance) Call {
	return Call{Index: CreateCall, Token: id, Admin: admin, Value: minBalance}
}

// StartDestroy returns a start_destroy call.
func StartDestroy(token uint32) Call {
	return Call{Index: StartDestroyCall, Token: token}
}

// SetMetadata returns a set_metadata call.
func SetMetadata(token uint32, name, symbol []byte, decimals uint8) Call {
	return Call{Index: SetMetadataCall, Token: token, Name: name, Symbol: symbol, Decimals: decimals}
}

// ClearMetadata returns a clear_metadata call.
func ClearMetadata(token uint32) Call {
	return Call{Index: ClearMetadataCall, Token: token}
}

// Mint returns a mint call.
func Mint(token uint32, account primitives.AccountID, value Balance) Call {
	return Call{Index: MintCall, Token: token, Account: account, Value: value}
}

// Burn returns a burn call.
func Burn(token uint32, account primitives.AccountID, value Balance) Call {
	return Call{Index: BurnCall, Token: token, Account: account, Value: value}
}

// Encode writes the SCALE encoding of the call.
func (c Call) Encode(encoder scale.Encoder) error {
	index := uint8(c.Index)
	value := normalised(c.Value)
	switch c.Index {
	case TransferCall:
		return scale.EncodeVariant(encoder, index, c.Token, c.To, value)
	case TransferFromCall:
		return scale.EncodeVariant(encoder, index, c.Token, c.From, c.To, value)
	case ApproveCall, IncreaseAllowanceCall, DecreaseAllowanceCall:
		return scale.EncodeVariant(encoder, index, c.Token, c.Spender, value)
	case CreateCall:
		return scale.EncodeVariant(encoder, index, c.Token, c.Admin, value)
	case StartDestroyCall, ClearMetadataCall:
		return scale.EncodeVariant(encoder, index, c.Token)
	case SetMetadataCall:
		return scale.EncodeVariant(encoder, index, c.Token, c.Name, c.Symbol, c.Decimals)
	case MintCall, BurnCall:
		return scale.EncodeVariant(encoder, index, c.Token, c.Account, value)
	default:
		return fmt.Errorf("%w: fungibles call %d", scale.ErrUnknownVariant, index)
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
	case TransferCall:
		err = scale.DecodeFields(decoder, &decoded.Token, &decoded.To, &decoded.Value)
	case TransferFromCall:
		err = scale.DecodeFields(decoder, &decoded.Token, &decoded.From, &decoded.To, &decoded.Value)
	case ApproveCall, IncreaseAllowanceCall, DecreaseAllowanceCall:
		err = scale.DecodeFields(decoder, &decoded.Token, &decoded.Spender, &decoded.Value)
	case CreateCall:
		err = scale.DecodeFields(decoder, &decoded.Token, &decoded.Admin, &decoded.Value)
	case StartDestroyCall, ClearMetadataCall:
		err = scale.DecodeFields(decoder, &decoded.Token)
	case SetMetadataCall:
		err = scale.DecodeFields(decoder, &decoded.Token, &decoded.Name, &decoded.Symbol, &decoded.Decimals)
	case MintCall, BurnCall:
		err = scale.DecodeFields(decoder, &decoded.Token, &decoded.Account, &decoded.Value)
	default:
		return fmt.Errorf("%w: fungibles call %d", scale.ErrUnknownVariant, b)
	}
	if err != nil {
		return err
	}

	*c = decoded
	return nil
}

// GetDispatchInfo returns the dispatch information of the call.
func (c Call) GetDispatchInfo() frame.DispatchInfo {
	var weight primitives.Weight
	switch c.Index {
	case TransferCall:
		weight = transferWeight
	case TransferFromCall:
		weight = transferApprovedWeight
	case ApproveCall:
		weight = approveWeight(true, true)
	case IncreaseAllowanceCall:
		weight = approveTransferWeight
	case DecreaseAllowanceCall:
		weight = approveWeight(true, true)
	case CreateCall:
		weight = createWeight
	case StartDestroyCall:
		weight = startDestroyWeight
	case SetMetadataCall:
		weight = setMetadataWeight(len(c.Name), len(c.Symbol))
	case ClearMetadataCall:
		weight = clearMetadataWeight
	case MintCall:
		weight = mintWeight
	case BurnCall:
		weight = burnWeight
	}
	return frame.DispatchInfo{Weight: weight}
}

func (c Call) String() string {
	return "Fungibles." + c.Index.String()
}

// Dispatch executes the call on behalf of the signed origin given.
func (c Call) Dispatch(p *Pallet, origin frame.RawOrigin) (post frame.PostDispatchInfo, err error) {
	sender, err := origin.EnsureSigned()
	if err != nil {
		return post, err
	}

	switch c.Index {
	case TransferCall:
		err = p.Transfer(c.Token, sender, c.To, c.Value, true)
	case TransferFromCall:
		err = p.TransferFrom(c.Token, sender, c.From, c.To, c.Value)
	case ApproveCall:
		var actual primitives.Weight
		actual, err = p.Approve(c.Token, sender, c.Spender, c.Value)
		post = frame.WithActualWeight(actual)
	case IncreaseAllowanceCall:
		err = p.IncreaseAllowance(c.Token, sender, c.Spender, c.Value)
	case DecreaseAllowanceCall:
		err = p.DecreaseAllowance(c.Token, sender, c.Spender, c.Value)
	case CreateCall:
		err = p.Create(c.Token, sender, c.Admin, c.Value)
	case StartDestroyCall:
		err = p.StartDestroy(c.Token, sender)
	case SetMetadataCall:
		err = p.SetMetadata(c.Token, sender, Metadata{Name: c.Name, Symbol: c.Symbol, Decimals: c.Decimals})
	case ClearMetadataCall:
		err = p.ClearMetadata(c.Token, sender)
	case MintCall:
		err = p.Mint(c.Token, sender, c.Account, c.Value)
	case BurnCall:
		err = p.Burn(c.Token, sender, c.Account, c.Value)
	default:
		err = fmt.Errorf("%w: fungibles call %d", scale.ErrUnknownVariant, c.Index)
	}
	if err != nil {
		logger.Debugf("%s by %s failed: %s", c, sender, err)
	}
	return post, err
}
