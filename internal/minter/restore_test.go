package minter_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/minter"
)

func storedReceipt(kind domain.MintKind, caller, beneficiary common.Address, ids ...domain.TokenID) minter.Receipt {
	return minter.Receipt{
		Kind:        kind,
		Caller:      caller,
		Beneficiary: beneficiary,
		TokenIDs:    ids,
	}
}

func TestContract_Restore(t *testing.T) {
	tree := newWhitelistTree(t, whitelistUser)
	tc := setupTestContract(t, nil, minter.NewMerkleWhitelist(tree.Root(), domain.DEFAULT_MAX_WHITELIST_MINT))
	c := tc.contract

	// Receipt order does not matter
	err := c.Restore([]minter.Receipt{
		storedReceipt(domain.MintKindPrivileged, owner, user2, 5),
		storedReceipt(domain.MintKindDutchAuction, user2, user2, 4),
		storedReceipt(domain.MintKindPublic, user, user, 2, 3),
		storedReceipt(domain.MintKindWhitelist, whitelistUser, whitelistUser, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(5), c.TotalSupply())
	assert.Equal(t, uint64(domain.DEFAULT_MAX_SUPPLY-5), c.RemainingSupply())
	assert.Equal(t, []domain.TokenID{4, 5}, c.WalletOf(user2))
	holder, err := c.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, whitelistUser, holder)

	assert.Equal(t, uint64(2), c.AddressMinted(user))
	assert.Equal(t, uint64(1), c.AddressMinted(whitelistUser))
	assert.Equal(t, uint64(0), c.AddressMinted(user2))
	assert.Equal(t, uint64(1), c.WhitelistClaimed(whitelistUser))
	assert.Equal(t, 0, c.Balance().Sign())

	require.NoError(t, c.SetStage(owner, domain.StagePresale))
	_, err = c.WhitelistMint(whitelistUser, 1, proofFor(t, tree, whitelistUser), ether("0.1"))
	assert.ErrorIs(t, err, domain.ErrWhitelistCapExceeded)

	require.NoError(t, c.SetStage(owner, domain.StagePublicSale))
	receipt, err := c.Mint(user, 2, ether("0.2"))
	require.NoError(t, err)
	assert.Equal(t, []domain.TokenID{6, 7}, receipt.TokenIDs)
	_, err = c.Mint(user, 2, ether("0.2"))
	assert.ErrorIs(t, err, domain.ErrAddressCapExceeded)

	err = c.Restore(nil)
	assert.ErrorIs(t, err, domain.ErrRestoreConflict)
}

func TestContract_Restore_AuctionCap(t *testing.T) {
	tc := setupTestContract(t, func(cfg *minter.Config) {
		cfg.AuctionEnforceAddressCap = true
	}, nil)

	require.NoError(t, tc.contract.Restore([]minter.Receipt{
		storedReceipt(domain.MintKindDutchAuction, user, user, 1, 2),
	}))
	assert.Equal(t, uint64(2), tc.contract.AddressMinted(user))
}

func TestContract_Restore_Conflicts(t *testing.T) {
	tests := []struct {
		name     string
		receipts []minter.Receipt
		wantErr  error
	}{
		{
			name: "token issued twice",
			receipts: []minter.Receipt{
				storedReceipt(domain.MintKindPublic, user, user, 1, 2),
				storedReceipt(domain.MintKindPublic, user2, user2, 2),
			},
			wantErr: domain.ErrRestoreConflict,
		},
		{
			name: "duplicate within a receipt",
			receipts: []minter.Receipt{
				storedReceipt(domain.MintKindPublic, user, user, 1, 1),
			},
			wantErr: domain.ErrRestoreConflict,
		},
		{
			name: "gap in token ids",
			receipts: []minter.Receipt{
				storedReceipt(domain.MintKindPublic, user, user, 1),
				storedReceipt(domain.MintKindPublic, user, user, 3),
			},
			wantErr: domain.ErrRestoreConflict,
		},
		{
			name: "token above max supply",
			receipts: []minter.Receipt{
				storedReceipt(domain.MintKindPrivileged, owner, user, domain.TokenID(domain.DEFAULT_MAX_SUPPLY+1)),
			},
			wantErr: domain.ErrRestoreConflict,
		},
		{
			name: "token zero",
			receipts: []minter.Receipt{
				storedReceipt(domain.MintKindPrivileged, owner, user, 0),
			},
			wantErr: domain.ErrRestoreConflict,
		},
		{
			name: "unknown kind",
			receipts: []minter.Receipt{
				storedReceipt(domain.MintKind("airdrop"), owner, user, 1),
			},
			wantErr: domain.ErrRestoreConflict,
		},
		{
			name: "zero beneficiary",
			receipts: []minter.Receipt{
				storedReceipt(domain.MintKindPrivileged, owner, common.Address{}, 1),
			},
			wantErr: domain.ErrZeroAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := setupTestContract(t, nil, nil)
			c := tc.contract

			err := c.Restore(tt.receipts)
			assert.ErrorIs(t, err, tt.wantErr)

			// Nothing is applied
			assert.Equal(t, uint64(0), c.TotalSupply())
			assert.Equal(t, uint64(0), c.AddressMinted(user))
			assert.Empty(t, c.WalletOf(user))

			receipt, err := c.MintForAddress(owner, user, 1)
			require.NoError(t, err)
			assert.Equal(t, []domain.TokenID{1}, receipt.TokenIDs)
		})
	}
}
