package minter

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
)

// execute runs op under the contract lock. Mutations op records in the journal
// are reverted when it fails, so a failed call leaves no observable change.
func (c *contract) execute(kind domain.MintKind, caller common.Address, count uint64, op func(j *journal) (*Receipt, error)) (*Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	j := &journal{}
	receipt, err := op(j)
	if err != nil {
		j.revert()
		logger.Debug("Mint rejected",
			zap.String("kind", string(kind)),
			zap.String("caller", caller.Hex()),
			zap.Uint64("count", count),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Debug("Mint committed",
		zap.String("kind", string(kind)),
		zap.String("caller", caller.Hex()),
		zap.String("beneficiary", receipt.Beneficiary.Hex()),
		zap.Any("token_ids", receipt.TokenIDs),
		zap.String("paid", receipt.Paid.String()),
	)
	return receipt, nil
}

// Mint mints count tokens to the caller during the public sale
func (c *contract) Mint(caller common.Address, count uint64, payment *big.Int) (*Receipt, error) {
	return c.execute(domain.MintKindPublic, caller, count, func(j *journal) (*Receipt, error) {
		if err := CheckAmount(count, c.maxMintTx); err != nil {
			return nil, err
		}
		if err := c.stage.Require(domain.StagePublicSale); err != nil {
			return nil, err
		}
		if err := c.ledger.CanMint(count); err != nil {
			return nil, err
		}

		undo, err := c.guard.CheckAndReserve(caller, count, c.maxMintTx, c.maxMint)
		if err != nil {
			return nil, err
		}
		j.record(undo)

		return c.settle(domain.MintKindPublic, caller, caller, count, totalPrice(c.cost, count), payment)
	})
}

// WhitelistMint mints count tokens to a whitelisted caller during the presale
func (c *contract) WhitelistMint(caller common.Address, count uint64, proof []common.Hash, payment *big.Int) (*Receipt, error) {
	return c.execute(domain.MintKindWhitelist, caller, count, func(j *journal) (*Receipt, error) {
		if err := CheckAmount(count, c.maxMintTx); err != nil {
			return nil, err
		}
		if err := c.stage.Require(domain.StagePresale); err != nil {
			return nil, err
		}
		if err := c.ledger.CanMint(count); err != nil {
			return nil, err
		}

		undo, err := c.guard.CheckAndReserve(caller, count, c.maxMintTx, c.maxMint)
		if err != nil {
			return nil, err
		}
		j.record(undo)

		undo, err = c.whitelist.Authorize(caller, proof, count)
		if err != nil {
			return nil, err
		}
		j.record(undo)

		return c.settle(domain.MintKindWhitelist, caller, caller, count, totalPrice(c.cost, count), payment)
	})
}

// DutchAuctionMint mints count tokens to the caller at the current auction price
func (c *contract) DutchAuctionMint(caller common.Address, count uint64, payment *big.Int) (*Receipt, error) {
	return c.execute(domain.MintKindDutchAuction, caller, count, func(j *journal) (*Receipt, error) {
		if err := CheckAmount(count, c.maxMintTx); err != nil {
			return nil, err
		}
		if err := c.stage.Require(domain.StageDutchAuction); err != nil {
			return nil, err
		}
		if c.pricer == nil {
			return nil, domain.ErrInvalidAuctionParams
		}
		if err := c.ledger.CanMint(count); err != nil {
			return nil, err
		}

		if c.auctionCap {
			undo, err := c.guard.CheckAndReserve(caller, count, c.maxMintTx, c.maxMint)
			if err != nil {
				return nil, err
			}
			j.record(undo)
		}

		price := c.pricer.CurrentPrice(c.clock.Now())
		return c.settle(domain.MintKindDutchAuction, caller, caller, count, totalPrice(price, count), payment)
	})
}

// MintForAddress mints count tokens to beneficiary for free. Only the owner may
// call it; stage, caps and payment are not checked.
func (c *contract) MintForAddress(caller common.Address, beneficiary common.Address, count uint64) (*Receipt, error) {
	return c.execute(domain.MintKindPrivileged, caller, count, func(j *journal) (*Receipt, error) {
		if caller != c.owner {
			return nil, domain.ErrUnauthorized
		}
		if count == 0 {
			return nil, domain.ErrInvalidAmount
		}
		return c.settle(domain.MintKindPrivileged, caller, beneficiary, count, new(big.Int), nil)
	})
}

// settle checks the payment and issues the tokens. It is the last step of
// every mint, nothing may fail after the ledger commit.
func (c *contract) settle(kind domain.MintKind, caller, beneficiary common.Address, count uint64, required, payment *big.Int) (*Receipt, error) {
	if beneficiary == (common.Address{}) {
		return nil, domain.ErrZeroAddress
	}

	paid := new(big.Int)
	if payment != nil {
		paid.Set(payment)
	}
	if paid.Cmp(required) < 0 {
		return nil, domain.ErrInsufficientPayment
	}

	ids, err := c.ledger.MintSequential(beneficiary, count)
	if err != nil {
		return nil, err
	}

	refund := new(big.Int)
	if c.overpayment == domain.OverpaymentRefund {
		refund.Sub(paid, required)
	}
	c.treasury.Add(c.treasury, new(big.Int).Sub(paid, refund))

	return &Receipt{
		Kind:        kind,
		Caller:      caller,
		Beneficiary: beneficiary,
		TokenIDs:    ids,
		Required:    required,
		Paid:        paid,
		Refund:      refund,
		Stage:       c.stage.Current(),
		At:          c.clock.Now(),
	}, nil
}

func totalPrice(unit *big.Int, count uint64) *big.Int {
	return new(big.Int).Mul(unit, new(big.Int).SetUint64(count))
}
