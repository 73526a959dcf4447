package minter_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/minter"
)

// decodeRequest splits a generated value into a caller index and a mint count
func decodeRequest(v uint64) (common.Address, uint64) {
	return common.BigToAddress(new(big.Int).SetUint64(v/5%3 + 1)), v % 5
}

func TestContract_SupplyProperties(t *testing.T) {
	tc := setupTestContract(t, nil, nil)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	newContract := func(maxSupply uint64) minter.Contract {
		cfg := defaultConfig()
		cfg.MaxSupply = maxSupply
		cfg.MaxMintAmount = 6
		cfg.MaxMintAmountPerTx = 3
		c, err := minter.NewContract(cfg, minter.NewExplicitWhitelist(), tc.clock)
		if err != nil {
			t.Fatal(err)
		}
		if err := c.SetStage(owner, domain.StagePublicSale); err != nil {
			t.Fatal(err)
		}
		return c
	}

	properties.Property("total supply never exceeds max supply", prop.ForAll(
		func(maxSupply uint64, requests []uint64) bool {
			c := newContract(maxSupply)
			for _, r := range requests {
				caller, count := decodeRequest(r)
				_, _ = c.Mint(caller, count, cost)
				if c.TotalSupply() > c.MaxSupply() {
					return false
				}
			}
			return true
		},
		gen.UInt64Range(1, 20),
		gen.SliceOf(gen.UInt64Range(0, 14)),
	))

	properties.Property("successful mints account for every token exactly once", prop.ForAll(
		func(maxSupply uint64, requests []uint64) bool {
			c := newContract(maxSupply)
			var minted uint64
			for _, r := range requests {
				caller, count := decodeRequest(r)
				receipt, err := c.Mint(caller, count, new(big.Int).Mul(cost, big.NewInt(int64(count))))
				if err != nil {
					continue
				}
				if uint64(len(receipt.TokenIDs)) != count {
					return false
				}
				for i, id := range receipt.TokenIDs {
					if id != domain.TokenID(minted+uint64(i)+1) {
						return false
					}
				}
				minted += count
			}
			return c.TotalSupply() == minted
		},
		gen.UInt64Range(1, 20),
		gen.SliceOf(gen.UInt64Range(0, 14)),
	))

	properties.Property("address minted never exceeds the address cap", prop.ForAll(
		func(requests []uint64) bool {
			c := newContract(100)
			for _, r := range requests {
				caller, count := decodeRequest(r)
				_, _ = c.Mint(caller, count, new(big.Int).Mul(cost, big.NewInt(int64(count))))
				if c.AddressMinted(caller) > 6 || uint64(len(c.WalletOf(caller))) != c.AddressMinted(caller) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.UInt64Range(0, 14)),
	))

	properties.TestingRun(t)
}
