package dto_test

import (
	"math/big"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/api/rest/dto"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
	"github.com/feral-file/ff-minter/internal/minter"
)

var (
	owner  = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	listed = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	other  = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newContract(t *testing.T, whitelist minter.WhitelistAuthority) minter.Contract {
	c, err := minter.NewContract(minter.Config{
		Name:               domain.DEFAULT_TOKEN_NAME,
		Symbol:             domain.DEFAULT_TOKEN_SYMBOL,
		Owner:              owner,
		Cost:               big.NewInt(100),
		MaxSupply:          10,
		MaxMintAmount:      5,
		MaxMintAmountPerTx: 2,
	}, whitelist, adapter.NewClock())
	require.NoError(t, err)
	return c
}

func TestMapWalletToDTO_Whitelisted(t *testing.T) {
	t.Run("explicit list", func(t *testing.T) {
		c := newContract(t, minter.NewExplicitWhitelist())
		_, err := c.AddToWhitelist(owner, []common.Address{listed})
		require.NoError(t, err)

		resp := dto.MapWalletToDTO(c, listed)
		require.NotNil(t, resp.Whitelisted)
		assert.True(t, *resp.Whitelisted)

		resp = dto.MapWalletToDTO(c, other)
		require.NotNil(t, resp.Whitelisted)
		assert.False(t, *resp.Whitelisted)
		assert.Equal(t, []domain.TokenID{}, resp.TokenIDs)
	})

	t.Run("merkle root", func(t *testing.T) {
		c := newContract(t, minter.NewMerkleWhitelist(common.Hash{1}, 1))

		resp := dto.MapWalletToDTO(c, listed)
		assert.Nil(t, resp.Whitelisted)
		assert.Equal(t, uint64(0), resp.WhitelistClaimed)
	})
}
