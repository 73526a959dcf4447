package minter

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
)

// administer runs fn under the contract lock after checking the caller is the owner
func (c *contract) administer(caller common.Address, action string, fn func() error, fields ...zap.Field) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if caller != c.owner {
		logger.Warn("Unauthorized administrative call",
			zap.String("action", action),
			zap.String("caller", caller.Hex()),
		)
		return domain.ErrUnauthorized
	}

	if err := fn(); err != nil {
		return err
	}

	logger.Info("Contract updated", append([]zap.Field{zap.String("action", action)}, fields...)...)
	return nil
}

func (c *contract) SetStage(caller common.Address, stage domain.Stage) error {
	return c.administer(caller, "set_stage", func() error {
		return c.stage.Set(stage)
	}, zap.Stringer("stage", stage))
}

func (c *contract) SetCost(caller common.Address, cost *big.Int) error {
	return c.administer(caller, "set_cost", func() error {
		if cost == nil || cost.Sign() < 0 {
			return domain.ErrInvalidConfig
		}
		c.cost = new(big.Int).Set(cost)
		return nil
	})
}

func (c *contract) SetMaxMintAmount(caller common.Address, amount uint64) error {
	return c.administer(caller, "set_max_mint_amount", func() error {
		if amount == 0 {
			return domain.ErrInvalidConfig
		}
		c.maxMint = amount
		return nil
	}, zap.Uint64("amount", amount))
}

func (c *contract) SetMaxMintAmountPerTx(caller common.Address, amount uint64) error {
	return c.administer(caller, "set_max_mint_amount_per_tx", func() error {
		if amount == 0 {
			return domain.ErrInvalidConfig
		}
		c.maxMintTx = amount
		return nil
	}, zap.Uint64("amount", amount))
}

func (c *contract) SetMaxWhitelistMintAmount(caller common.Address, amount uint64) error {
	return c.administer(caller, "set_max_whitelist_mint_amount", func() error {
		w, ok := c.whitelist.(*MerkleWhitelist)
		if !ok {
			return domain.ErrWhitelistModeMismatch
		}
		if amount == 0 {
			return domain.ErrInvalidConfig
		}
		w.SetCap(amount)
		return nil
	}, zap.Uint64("amount", amount))
}

func (c *contract) SetMerkleRoot(caller common.Address, root common.Hash) error {
	return c.administer(caller, "set_merkle_root", func() error {
		w, ok := c.whitelist.(*MerkleWhitelist)
		if !ok {
			return domain.ErrWhitelistModeMismatch
		}
		w.SetRoot(root)
		return nil
	}, zap.String("root", root.Hex()))
}

func (c *contract) AddToWhitelist(caller common.Address, addrs []common.Address) (int, error) {
	var added int
	err := c.administer(caller, "add_to_whitelist", func() error {
		w, ok := c.whitelist.(*ExplicitWhitelist)
		if !ok {
			return domain.ErrWhitelistModeMismatch
		}
		for _, addr := range addrs {
			if addr == (common.Address{}) {
				return domain.ErrZeroAddress
			}
		}
		added = w.Add(addrs...)
		return nil
	}, zap.Int("requested", len(addrs)))

	return added, err
}

func (c *contract) SetRevealed(caller common.Address, revealed bool) error {
	return c.administer(caller, "set_revealed", func() error {
		c.metadata.SetRevealed(revealed)
		return nil
	}, zap.Bool("revealed", revealed))
}

func (c *contract) SetBaseURI(caller common.Address, uri string) error {
	return c.administer(caller, "set_base_uri", func() error {
		c.metadata.SetBaseURI(uri)
		return nil
	}, zap.String("uri", uri))
}

func (c *contract) SetHiddenBaseURI(caller common.Address, uri string) error {
	return c.administer(caller, "set_hidden_base_uri", func() error {
		c.metadata.SetHiddenBaseURI(uri)
		return nil
	}, zap.String("uri", uri))
}

func (c *contract) SetDutchAuction(caller common.Address, params AuctionParams) error {
	return c.administer(caller, "set_dutch_auction", func() error {
		pricer, err := NewAuctionPricer(params)
		if err != nil {
			return err
		}
		c.pricer = pricer
		return nil
	})
}

func (c *contract) SetDutchAuctionStartTime(caller common.Address, start time.Time) error {
	return c.administer(caller, "set_dutch_auction_start_time", func() error {
		if c.pricer == nil {
			return domain.ErrInvalidAuctionParams
		}
		c.pricer.SetStartTime(start)
		return nil
	}, zap.Time("start_time", start))
}

// Withdraw empties the treasury and returns the withdrawn amount
func (c *contract) Withdraw(caller common.Address) (*big.Int, error) {
	var amount *big.Int
	err := c.administer(caller, "withdraw", func() error {
		if c.treasury.Sign() == 0 {
			return domain.ErrNothingToWithdraw
		}
		amount = c.treasury
		c.treasury = new(big.Int)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return amount, nil
}
