package minter

import (
	"math/big"
	"time"

	"github.com/feral-file/ff-minter/internal/domain"
)

// AuctionParams configures the dutch auction price curve
type AuctionParams struct {
	// StartTime is when the price starts dropping; zero means not scheduled yet
	StartTime    time.Time
	StartPrice   *big.Int
	EndPrice     *big.Int
	PriceDrop    *big.Int
	DropInterval time.Duration
	Duration     time.Duration
}

// Validate checks the price curve is non-increasing and well formed
func (p AuctionParams) Validate() error {
	if p.StartPrice == nil || p.EndPrice == nil || p.PriceDrop == nil {
		return domain.ErrInvalidAuctionParams
	}
	if p.EndPrice.Sign() < 0 || p.PriceDrop.Sign() < 0 || p.StartPrice.Cmp(p.EndPrice) < 0 {
		return domain.ErrInvalidAuctionParams
	}
	if p.DropInterval <= 0 || p.Duration < 0 {
		return domain.ErrInvalidAuctionParams
	}
	return nil
}

func (p AuctionParams) clone() AuctionParams {
	c := p
	c.StartPrice = new(big.Int).Set(p.StartPrice)
	c.EndPrice = new(big.Int).Set(p.EndPrice)
	c.PriceDrop = new(big.Int).Set(p.PriceDrop)
	return c
}

// AuctionPricer computes the dutch auction unit price at a point in time
type AuctionPricer struct {
	params AuctionParams
}

// NewAuctionPricer creates a pricer after validating params
func NewAuctionPricer(params AuctionParams) (*AuctionPricer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &AuctionPricer{params: params.clone()}, nil
}

// Params returns a copy of the configured parameters
func (a *AuctionPricer) Params() AuctionParams {
	return a.params.clone()
}

// SetStartTime schedules the start of the price decay
func (a *AuctionPricer) SetStartTime(start time.Time) {
	a.params.StartTime = start
}

// EndTime returns when the auction window closes, zero if unscheduled or unbounded
func (a *AuctionPricer) EndTime() time.Time {
	if a.params.StartTime.IsZero() || a.params.Duration == 0 {
		return time.Time{}
	}
	return a.params.StartTime.Add(a.params.Duration)
}

// CurrentPrice returns max(startPrice - steps*priceDrop, endPrice) where steps
// counts the whole drop intervals elapsed since the start. Before the start,
// or while unscheduled, the price is the start price.
func (a *AuctionPricer) CurrentPrice(now time.Time) *big.Int {
	p := a.params
	if p.StartTime.IsZero() || !now.After(p.StartTime) {
		return new(big.Int).Set(p.StartPrice)
	}

	steps := int64(now.Sub(p.StartTime) / p.DropInterval)
	price := new(big.Int).Mul(big.NewInt(steps), p.PriceDrop)
	price.Sub(p.StartPrice, price)
	if price.Cmp(p.EndPrice) < 0 {
		return new(big.Int).Set(p.EndPrice)
	}

	return price
}
