package config

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/merkle"
	"github.com/feral-file/ff-minter/internal/minter"
	"github.com/feral-file/ff-minter/internal/registry"
)

// ContractConfig converts the collection parameters into contract construction parameters
func (c *CollectionConfig) ContractConfig() (minter.Config, error) {
	if err := c.Validate(); err != nil {
		return minter.Config{}, err
	}

	owner, _ := domain.ParseAddress(c.Owner)
	cost, _ := domain.ParseWei(c.CostWei)

	cfg := minter.Config{
		Name:                     c.TokenName,
		Symbol:                   c.TokenSymbol,
		Owner:                    owner,
		Cost:                     cost,
		MaxSupply:                c.MaxSupply,
		MaxMintAmount:            c.MaxMintAmount,
		MaxMintAmountPerTx:       c.MaxMintAmountPerTx,
		BaseURI:                  c.BaseURI,
		HiddenBaseURI:            c.HiddenBaseURI,
		Revealed:                 c.Revealed,
		Overpayment:              c.Overpayment,
		AuctionEnforceAddressCap: c.Auction.EnforceAddressCap,
	}

	if c.Auction.Enabled() {
		startPrice, _ := domain.ParseWei(c.Auction.StartPriceWei)
		endPrice, _ := domain.ParseWei(c.Auction.EndPriceWei)
		priceDrop, _ := domain.ParseWei(c.Auction.PriceDropWei)

		params := &minter.AuctionParams{
			StartPrice:   startPrice,
			EndPrice:     endPrice,
			PriceDrop:    priceDrop,
			DropInterval: c.Auction.DropInterval,
			Duration:     c.Auction.Duration,
		}
		if c.Auction.StartTime > 0 {
			params.StartTime = time.Unix(c.Auction.StartTime, 0).UTC()
		}
		if err := params.Validate(); err != nil {
			return minter.Config{}, fmt.Errorf("collection.auction: %w", err)
		}
		cfg.Auction = params
	}

	return cfg, nil
}

// WhitelistAddresses returns the inline whitelist addresses followed by the ones
// of the addresses file, without duplicates
func (c *CollectionConfig) WhitelistAddresses(loader registry.WhitelistLoader) ([]common.Address, error) {
	addrs, err := registry.ParseAddresses(c.Whitelist.Addresses)
	if err != nil {
		return nil, fmt.Errorf("collection.whitelist.addresses: %w", err)
	}

	if c.Whitelist.AddressesPath == "" {
		return addrs, nil
	}

	fromFile, err := loader.Load(c.Whitelist.AddressesPath)
	if err != nil {
		return nil, err
	}

	seen := make(map[common.Address]bool, len(addrs)+len(fromFile))
	for _, addr := range addrs {
		seen[addr] = true
	}
	for _, addr := range fromFile {
		if !seen[addr] {
			seen[addr] = true
			addrs = append(addrs, addr)
		}
	}

	return addrs, nil
}

// NewWhitelist builds the whitelist authority of the configured mode. In merkle
// mode the configured root wins, otherwise the root is computed from addrs.
func (c *CollectionConfig) NewWhitelist(addrs []common.Address) (minter.WhitelistAuthority, error) {
	switch c.Whitelist.Mode {
	case domain.WhitelistModeList:
		return minter.NewExplicitWhitelist(addrs...), nil

	case domain.WhitelistModeMerkle:
		var root common.Hash
		switch {
		case c.Whitelist.MerkleRoot != "":
			parsed, err := ParseHash(c.Whitelist.MerkleRoot)
			if err != nil {
				return nil, fmt.Errorf("collection.whitelist.merkle_root: %w", err)
			}
			root = parsed
		case len(addrs) > 0:
			tree, err := merkle.NewTreeFromAddresses(addrs)
			if err != nil {
				return nil, fmt.Errorf("failed to build whitelist tree: %w", err)
			}
			root = tree.Root()
		}
		return minter.NewMerkleWhitelist(root, c.Whitelist.MaxMintAmount), nil

	default:
		return nil, fmt.Errorf("collection.whitelist.mode: unknown mode %q", c.Whitelist.Mode)
	}
}
