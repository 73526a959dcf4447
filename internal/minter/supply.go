package minter

import (
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-minter/internal/domain"
)

// SupplyLedger issues sequential token ids up to a hard cap and tracks their holders
type SupplyLedger struct {
	maxSupply   uint64
	totalMinted uint64
	owners      map[domain.TokenID]common.Address
	wallets     map[common.Address][]domain.TokenID
}

// NewSupplyLedger creates an empty ledger capped at maxSupply tokens
func NewSupplyLedger(maxSupply uint64) *SupplyLedger {
	return &SupplyLedger{
		maxSupply: maxSupply,
		owners:    make(map[domain.TokenID]common.Address),
		wallets:   make(map[common.Address][]domain.TokenID),
	}
}

// MaxSupply returns the supply cap
func (l *SupplyLedger) MaxSupply() uint64 {
	return l.maxSupply
}

// TotalMinted returns the number of tokens issued so far
func (l *SupplyLedger) TotalMinted() uint64 {
	return l.totalMinted
}

// RemainingSupply returns how many tokens can still be issued
func (l *SupplyLedger) RemainingSupply() uint64 {
	return l.maxSupply - l.totalMinted
}

// CanMint fails with ErrSupplyExceeded if count tokens would exceed the cap
func (l *SupplyLedger) CanMint(count uint64) error {
	if count > l.RemainingSupply() {
		return domain.ErrSupplyExceeded
	}
	return nil
}

// MintSequential assigns the next count ids to the holder. Either all ids are
// issued or, on error, none are.
func (l *SupplyLedger) MintSequential(to common.Address, count uint64) ([]domain.TokenID, error) {
	if err := l.CanMint(count); err != nil {
		return nil, err
	}

	ids := make([]domain.TokenID, count)
	for i := range ids {
		ids[i] = domain.TokenID(l.totalMinted + uint64(i) + 1)
	}

	for _, id := range ids {
		l.owners[id] = to
	}
	l.wallets[to] = append(l.wallets[to], ids...)
	l.totalMinted += count

	return ids, nil
}

// Exists reports whether the id was minted
func (l *SupplyLedger) Exists(id domain.TokenID) bool {
	_, ok := l.owners[id]
	return ok
}

// OwnerOf returns the holder of a minted id
func (l *SupplyLedger) OwnerOf(id domain.TokenID) (common.Address, error) {
	owner, ok := l.owners[id]
	if !ok {
		return common.Address{}, domain.ErrUnknownToken
	}
	return owner, nil
}

// WalletOf returns the ids held by addr in ascending order; never nil
func (l *SupplyLedger) WalletOf(addr common.Address) []domain.TokenID {
	held := l.wallets[addr]
	ids := make([]domain.TokenID, len(held))
	copy(ids, held)
	return ids
}

// Restore records ids issued in an earlier run to the holder. Every id must be
// within the cap and not known yet; the ledger is unchanged on error.
func (l *SupplyLedger) Restore(to common.Address, ids []domain.TokenID) error {
	seen := make(map[domain.TokenID]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 || uint64(id) > l.maxSupply {
			return fmt.Errorf("%w: token %d is out of range", domain.ErrRestoreConflict, id)
		}
		if _, dup := seen[id]; dup || l.Exists(id) {
			return fmt.Errorf("%w: token %d issued twice", domain.ErrRestoreConflict, id)
		}
		seen[id] = struct{}{}
	}

	for _, id := range ids {
		l.owners[id] = to
	}
	wallet := append(l.wallets[to], ids...)
	slices.Sort(wallet)
	l.wallets[to] = wallet
	l.totalMinted += uint64(len(ids))

	return nil
}

// CheckSequential fails unless the issued ids are exactly 1..TotalMinted,
// which MintSequential relies on to pick the next id
func (l *SupplyLedger) CheckSequential() error {
	for id := uint64(1); id <= l.totalMinted; id++ {
		if !l.Exists(domain.TokenID(id)) {
			return fmt.Errorf("%w: token %d is missing", domain.ErrRestoreConflict, id)
		}
	}
	return nil
}
