package minter

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-minter/internal/domain"
)

// Config holds the construction parameters of a contract
type Config struct {
	Name               string
	Symbol             string
	Owner              common.Address
	Cost               *big.Int
	MaxSupply          uint64
	MaxMintAmount      uint64
	MaxMintAmountPerTx uint64
	BaseURI            string
	HiddenBaseURI      string
	Revealed           bool

	// Overpayment decides whether payment above the required total is kept
	Overpayment domain.OverpaymentPolicy

	// Auction is optional; dutch auction mints fail until it is configured
	Auction *AuctionParams
	// AuctionEnforceAddressCap applies the per-address cap to dutch auction mints
	AuctionEnforceAddressCap bool
}

// Validate checks the range of every parameter
func (c Config) Validate() error {
	if c.Owner == (common.Address{}) {
		return domain.ErrInvalidConfig
	}
	if c.Cost == nil || c.Cost.Sign() < 0 {
		return domain.ErrInvalidConfig
	}
	if c.MaxSupply == 0 || c.MaxMintAmount == 0 || c.MaxMintAmountPerTx == 0 {
		return domain.ErrInvalidConfig
	}
	switch c.Overpayment {
	case "", domain.OverpaymentRetain, domain.OverpaymentRefund:
	default:
		return domain.ErrInvalidConfig
	}
	if c.Auction != nil {
		return c.Auction.Validate()
	}
	return nil
}
