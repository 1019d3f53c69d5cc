// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package fungibles

import (
	"github.com/ChainSafe/chainext/lib/primitives"
)

// Transfer moves amount tokens from one account to another. With
// keepAlive set, the source balance cannot fall below the minimum
// balance of the asset. Otherwise a remainder below the minimum balance
// is moved along.
func (p *Pallet) Transfer(id uint32, from, to primitives.AccountID, amount Balance, keepAlive bool) error {
	details, err := p.liveDetails(id)
	if err != nil {
		return err
	}
	if isZero(amount) || from == to {
		return nil
	}

	fromBalance, _, err := p.account.Get(p.state, id, from)
	if err != nil {
		return err
	}
	remaining, ok := checkedSub(fromBalance, amount)
	if !ok {
		return ErrBalanceLow
	}
	if !isZero(remaining) && compare(remaining, details.MinBalance) < 0 {
		if keepAlive {
			return ErrBalanceLow
		}
		amount = fromBalance
		remaining = NewBalance(0)
	}
	if keepAlive && isZero(remaining) {
		return ErrBalanceLow
	}

	toBalance, toExists, err := p.account.Get(p.state, id, to)
	if err != nil {
		return err
	}
	credited, ok := checkedAdd(toBalance, amount)
	if !ok {
		return primitives.Arithmetic(primitives.Overflow)
	}
	if !toExists && compare(credited, details.MinBalance) < 0 {
		return primitives.Token(primitives.BelowMinimum)
	}

	if isZero(remaining) {
		p.account.Remove(p.state, id, from)
		details.Accounts--
	} else {
		err = p.account.Insert(p.state, id, from, remaining)
		if err != nil {
			return err
		}
	}
	if !toExists {
		details.Accounts++
	}
	err = p.account.Insert(p.state, id, to, credited)
	if err != nil {
		return err
	}
	err = p.asset.Insert(p.state, id, details)
	if err != nil {
		return err
	}

	logger.Tracef("transferred %s of asset %d from %s to %s", amount, id, from, to)
	return p.depositEvent(Transferred{AssetID: id, From: from, To: to, Amount: amount})
}

// TransferFrom moves amount tokens from owner to another account on
// behalf of the spender, spending their allowance.
func (p *Pallet) TransferFrom(id uint32, spender, owner, to primitives.AccountID, amount Balance) error {
	_, err := p.liveDetails(id)
	if err != nil {
		return err
	}

	key := approvalKey{Owner: owner, Spender: spender}
	allowance, _, err := p.approvals.Get(p.state, id, key)
	if err != nil {
		return err
	}
	left, ok := checkedSub(allowance, amount)
	if !ok {
		return ErrUnapproved
	}

	err = p.Transfer(id, owner, to, amount, false)
	if err != nil {
		return err
	}

	if isZero(left) {
		p.approvals.Remove(p.state, id, key)
	} else {
		err = p.approvals.Insert(p.state, id, key, left)
		if err != nil {
			return err
		}
	}
	return p.depositEvent(TransferredApproved{
		AssetID:     id,
		Owner:       owner,
		Delegate:    spender,
		Destination: to,
		Amount:      amount,
	})
}

// Allowance returns the amount the spender can transfer on behalf of
// the owner.
func (p *Pallet) Allowance(id uint32, owner, spender primitives.AccountID) (Balance, error) {
	allowance, _, err := p.approvals.Get(p.state, id, approvalKey{Owner: owner, Spender: spender})
	return normalised(allowance), err
}

func (p *Pallet) setAllowance(id uint32, owner, spender primitives.AccountID, allowance Balance) error {
	key := approvalKey{Owner: owner, Spender: spender}
	if isZero(allowance) {
		p.approvals.Remove(p.state, id, key)
		return p.depositEvent(ApprovalCancelled{AssetID: id, Owner: owner, Delegate: spender})
	}

	err := p.approvals.Insert(p.state, id, key, allowance)
	if err != nil {
		return err
	}
	return p.depositEvent(ApprovedTransfer{AssetID: id, Source: owner, Delegate: spender, Amount: allowance})
}

// Approve sets the allowance of the spender to value. It returns the
// weight actually used, which depends on whether the allowance grows,
// shrinks or stays the same.
func (p *Pallet) Approve(id uint32, owner, spender primitives.AccountID, value Balance) (primitives.Weight, error) {
	_, err := p.liveDetails(id)
	if err != nil {
		return approveWeight(false, false), err
	}
	current, err := p.Allowance(id, owner, spender)
	if err != nil {
		return approveWeight(false, false), err
	}

	switch compare(value, current) {
	case 0:
		return approveWeight(false, false), nil
	case 1:
		return approveWeight(true, false), p.setAllowance(id, owner, spender, value)
	default:
		err = p.setAllowance(id, owner, spender, NewBalance(0))
		if err != nil || isZero(value) {
			return approveWeight(false, true), err
		}
		return approveWeight(true, true), p.setAllowance(id, owner, spender, value)
	}
}

// IncreaseAllowance adds value to the allowance of the spender.
func (p *Pallet) IncreaseAllowance(id uint32, owner, spender primitives.AccountID, value Balance) error {
	_, err := p.liveDetails(id)
	if err != nil {
		return err
	}
	current, err := p.Allowance(id, owner, spender)
	if err != nil {
		return err
	}
	increased, ok := checkedAdd(current, value)
	if !ok {
		return primitives.Arithmetic(primitives.Overflow)
	}
	return p.setAllowance(id, owner, spender, increased)
}

// DecreaseAllowance subtracts value from the allowance of the spender.
// It fails with ErrUnapproved if the allowance is lower than value.
func (p *Pallet) DecreaseAllowance(id uint32, owner, spender primitives.AccountID, value Balance) error {
	_, err := p.liveDetails(id)
	if err != nil {
		return err
	}
	current, err := p.Allowance(id, owner, spender)
	if err != nil {
		return err
	}
	decreased, ok := checkedSub(current, value)
	if !ok {
		return ErrUnapproved
	}
	if isZero(value) {
		return nil
	}
	return p.setAllowance(id, owner, spender, decreased)
}

// Create creates an asset owned by the creator and administered by
// admin. Accounts holding less than minBalance tokens are removed.
func (p *Pallet) Create(id uint32, creator, admin primitives.AccountID, minBalance Balance) error {
	exists, err := p.asset.Contains(p.state, id)
	if err != nil {
		return err
	}
	if exists {
		return ErrInUse
	}
	if isZero(minBalance) {
		return ErrMinBalanceZero
	}

	err = p.asset.Insert(p.state, id, AssetDetails{
		Owner:      creator,
		Admin:      admin,
		Supply:     NewBalance(0),
		MinBalance: minBalance,
		Status:     Live,
	})
	if err != nil {
		return err
	}
	logger.Debugf("asset %d created by %s", id, creator)
	return p.depositEvent(Created{AssetID: id, Creator: creator, Owner: admin})
}

// StartDestroy starts the destruction of an asset. Only its owner can
// destroy it.
func (p *Pallet) StartDestroy(id uint32, owner primitives.AccountID) error {
	details, err := p.details(id)
	if err != nil {
		return err
	}
	if details.Owner != owner {
		return ErrNoPermission
	}
	if details.Status == Destroying {
		return ErrAssetNotLive
	}

	details.Status = Destroying
	err = p.asset.Insert(p.state, id, details)
	if err != nil {
		return err
	}
	return p.depositEvent(DestructionStarted{AssetID: id})
}

// SetMetadata sets the metadata of a live asset. Only its owner can set
// it and the name and symbol are limited to StringLimit bytes.
func (p *Pallet) SetMetadata(id uint32, owner primitives.AccountID, metadata Metadata) error {
	details, err := p.details(id)
	if err != nil {
		return err
	}
	if details.Owner != owner {
		return ErrNoPermission
	}
	if details.Status != Live {
		return ErrAssetNotLive
	}
	if len(metadata.Name) > StringLimit || len(metadata.Symbol) > StringLimit {
		return ErrBadMetadata
	}

	err = p.metadata.Insert(p.state, id, metadata)
	if err != nil {
		return err
	}
	return p.depositEvent(MetadataSet{
		AssetID:  id,
		Name:     metadata.Name,
		Symbol:   metadata.Symbol,
		Decimals: metadata.Decimals,
	})
}

// ClearMetadata removes the metadata of a live asset. Only its owner can
// clear it.
func (p *Pallet) ClearMetadata(id uint32, owner primitives.AccountID) error {
	details, err := p.details(id)
	if err != nil {
		return err
	}
	if details.Owner != owner {
		return ErrNoPermission
	}
	if details.Status != Live {
		return ErrAssetNotLive
	}
	exists, err := p.metadata.Contains(p.state, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUnknown
	}

	p.metadata.Remove(p.state, id)
	return p.depositEvent(MetadataCleared{AssetID: id})
}

// Metadata returns the metadata of an asset, empty if none is set.
func (p *Pallet) Metadata(id uint32) (Metadata, error) {
	metadata, _, err := p.metadata.Get(p.state, id)
	return metadata, err
}

// Mint creates amount tokens in the account given. Only the admin of the
// asset can mint.
func (p *Pallet) Mint(id uint32, admin, account primitives.AccountID, amount Balance) error {
	details, ok, err := p.asset.Get(p.state, id)
	if err != nil {
		return err
	}
	if !ok {
		return primitives.Token(primitives.UnknownAsset)
	}

	balance, exists, err := p.account.Get(p.state, id, account)
	if err != nil {
		return err
	}
	credited, ok := checkedAdd(balance, amount)
	if !ok {
		return primitives.Arithmetic(primitives.Overflow)
	}
	supply, ok := checkedAdd(details.Supply, amount)
	if !ok {
		return primitives.Arithmetic(primitives.Overflow)
	}
	if !exists && compare(credited, details.MinBalance) < 0 {
		return primitives.Token(primitives.BelowMinimum)
	}
	if details.Admin != admin {
		return ErrNoPermission
	}
	if details.Status != Live {
		return ErrAssetNotLive
	}

	if !exists {
		details.Accounts++
	}
	details.Supply = supply
	err = p.account.Insert(p.state, id, account, credited)
	if err != nil {
		return err
	}
	err = p.asset.Insert(p.state, id, details)
	if err != nil {
		return err
	}
	return p.depositEvent(Issued{AssetID: id, Owner: account, Amount: amount})
}

// Burn destroys up to amount tokens of the account given. A remainder
// below the minimum balance is burned too. Only the admin of the asset
// can burn.
func (p *Pallet) Burn(id uint32, admin, account primitives.AccountID, amount Balance) error {
	details, err := p.details(id)
	if err != nil {
		return err
	}
	switch details.Status {
	case Destroying:
		return ErrIncorrectStatus
	case Frozen:
		return ErrAssetNotLive
	}

	balance, exists, err := p.account.Get(p.state, id, account)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNoAccount
	}
	if details.Admin != admin {
		return ErrNoPermission
	}

	burned := minBalance(amount, balance)
	remaining, _ := checkedSub(balance, burned)
	if !isZero(remaining) && compare(remaining, details.MinBalance) < 0 {
		burned = balance
		remaining = NewBalance(0)
	}

	if isZero(remaining) {
		p.account.Remove(p.state, id, account)
		details.Accounts--
	} else {
		err = p.account.Insert(p.state, id, account, remaining)
		if err != nil {
			return err
		}
	}
	details.Supply, _ = checkedSub(details.Supply, burned)
	err = p.asset.Insert(p.state, id, details)
	if err != nil {
		return err
	}
	return p.depositEvent(Burned{AssetID: id, Owner: account, Balance: burned})
}

// TotalSupply returns the number of tokens of the asset in circulation.
func (p *Pallet) TotalSupply(id uint32) (Balance, error) {
	details, _, err := p.asset.Get(p.state, id)
	return normalised(details.Supply), err
}

// BalanceOf returns the balance of the account.
func (p *Pallet) BalanceOf(id uint32, account primitives.AccountID) (Balance, error) {
	balance, _, err := p.account.Get(p.state, id, account)
	return normalised(balance), err
}

// Exists returns true if the asset exists.
func (p *Pallet) Exists(id uint32) (bool, error) {
	return p.asset.Contains(p.state, id)
}
