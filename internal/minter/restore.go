package minter

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
)

// Restore replays the receipts of an earlier run into a contract that has not
// minted yet. Token holders, the running counts of the capped mint paths and
// the merkle claim counters are rebuilt. The treasury is left as is since
// withdrawals are not recorded.
//
// Nothing is applied unless the receipts issue each id in 1..n exactly once
// within the max supply.
func (c *contract) Restore(receipts []Receipt) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ledger.TotalMinted() > 0 {
		return fmt.Errorf("%w: contract already minted %d tokens", domain.ErrRestoreConflict, c.ledger.TotalMinted())
	}

	ledger := NewSupplyLedger(c.ledger.MaxSupply())
	guard := NewAllocationGuard()
	claims := make(map[common.Address]uint64)

	for _, r := range receipts {
		if r.Beneficiary == (common.Address{}) {
			return domain.ErrZeroAddress
		}
		if err := ledger.Restore(r.Beneficiary, r.TokenIDs); err != nil {
			return err
		}

		count := uint64(len(r.TokenIDs))
		switch r.Kind {
		case domain.MintKindPublic:
			guard.Restore(r.Caller, count)
		case domain.MintKindWhitelist:
			guard.Restore(r.Caller, count)
			claims[r.Caller] += count
		case domain.MintKindDutchAuction:
			if c.auctionCap {
				guard.Restore(r.Caller, count)
			}
		case domain.MintKindPrivileged:
		default:
			return fmt.Errorf("%w: unknown mint kind %q", domain.ErrRestoreConflict, r.Kind)
		}
	}

	if err := ledger.CheckSequential(); err != nil {
		return err
	}

	c.ledger = ledger
	c.guard = guard
	if w, ok := c.whitelist.(*MerkleWhitelist); ok {
		for addr, n := range claims {
			w.Restore(addr, n)
		}
	}

	logger.Info("Contract restored",
		zap.Int("receipts", len(receipts)),
		zap.Uint64("total_supply", ledger.TotalMinted()),
	)

	return nil
}
