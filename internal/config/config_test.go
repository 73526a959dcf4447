package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/merkle"
	"github.com/feral-file/ff-minter/internal/minter"
	"github.com/feral-file/ff-minter/internal/mocks"
)

const testOwner = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))
	return configFile
}

func validCollection() CollectionConfig {
	return CollectionConfig{
		TokenName:          domain.DEFAULT_TOKEN_NAME,
		TokenSymbol:        domain.DEFAULT_TOKEN_SYMBOL,
		Owner:              testOwner,
		CostWei:            domain.DEFAULT_COST_WEI,
		MaxSupply:          domain.DEFAULT_MAX_SUPPLY,
		MaxMintAmount:      domain.DEFAULT_MAX_MINT_AMOUNT,
		MaxMintAmountPerTx: domain.DEFAULT_MAX_MINT_AMOUNT_PER_TX,
		Whitelist: WhitelistConfig{
			Mode:          domain.WhitelistModeMerkle,
			MaxMintAmount: domain.DEFAULT_MAX_WHITELIST_MINT,
		},
	}
}

func TestLoadMinterAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *MinterAPIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: 127.0.0.1
  port: 9090
database:
  host: localhost
  port: 5433
  user: testuser
  password: testpass
  dbname: testdb
  sslmode: require
nats:
  url: "nats://localhost:4222"
  subject_prefix: "toon"
auth:
  jwt_public_key: "pem"
worker:
  pool_size: 8
  queue_size: 64
collection:
  token_name: "Other"
  token_symbol: "OTH"
  owner: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
  cost_wei: "50000000000000000"
  max_supply: 500
  max_mint_amount: 10
  max_mint_amount_per_tx: 3
  base_uri: "ipfs://base/"
  overpayment: refund
  whitelist:
    mode: list
    addresses:
      - "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
  auction:
    start_price_wei: "1000000000000000000"
    end_price_wei: "200000000000000000"
    price_drop_wei: "100000000000000000"
    drop_interval: "30m"
    duration: "4h"
    start_time: 1700000000
    enforce_address_cap: true
`,
			validate: func(t *testing.T, cfg *MinterAPIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, "toon", cfg.NATS.SubjectPrefix)
				assert.Equal(t, "pem", cfg.Auth.JWTPublicKey)
				assert.Equal(t, 8, cfg.Worker.WorkerPoolSize)
				assert.Equal(t, 64, cfg.Worker.WorkerQueueSize)

				c := cfg.Collection
				assert.Equal(t, "Other", c.TokenName)
				assert.Equal(t, "OTH", c.TokenSymbol)
				assert.Equal(t, "50000000000000000", c.CostWei)
				assert.Equal(t, uint64(500), c.MaxSupply)
				assert.Equal(t, uint64(10), c.MaxMintAmount)
				assert.Equal(t, uint64(3), c.MaxMintAmountPerTx)
				assert.Equal(t, domain.OverpaymentRefund, c.Overpayment)
				assert.Equal(t, domain.WhitelistModeList, c.Whitelist.Mode)
				assert.Equal(t, []string{"0x70997970C51812dc3A010C7d01b50e0d17dc79C8"}, c.Whitelist.Addresses)
				assert.Equal(t, 30*time.Minute, c.Auction.DropInterval)
				assert.Equal(t, 4*time.Hour, c.Auction.Duration)
				assert.Equal(t, int64(1700000000), c.Auction.StartTime)
				assert.True(t, c.Auction.EnforceAddressCap)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
collection:
  owner: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
`,
			validate: func(t *testing.T, cfg *MinterAPIConfig) {
				assert.False(t, cfg.Debug)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 120, cfg.Server.IdleTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
				assert.Equal(t, "", cfg.NATS.URL)
				assert.Equal(t, "mints", cfg.NATS.SubjectPrefix)
				assert.Equal(t, "MINTS", cfg.NATS.StreamName)
				assert.Equal(t, 10*time.Minute, cfg.NATS.DuplicateWindow)
				assert.Equal(t, "2s", cfg.NATS.ReconnectWait.String())
				assert.Equal(t, 4, cfg.Worker.WorkerPoolSize)
				assert.Equal(t, time.Minute, cfg.Worker.MaxElapsedTime)

				c := cfg.Collection
				assert.Equal(t, "Toon Survival", c.TokenName)
				assert.Equal(t, "TSV", c.TokenSymbol)
				assert.Equal(t, "100000000000000000", c.CostWei)
				assert.Equal(t, uint64(100), c.MaxSupply)
				assert.Equal(t, uint64(5), c.MaxMintAmount)
				assert.Equal(t, uint64(2), c.MaxMintAmountPerTx)
				assert.False(t, c.Revealed)
				assert.Equal(t, domain.OverpaymentRetain, c.Overpayment)
				assert.Equal(t, domain.WhitelistModeMerkle, c.Whitelist.Mode)
				assert.Equal(t, uint64(1), c.Whitelist.MaxMintAmount)
				assert.False(t, c.Auction.Enabled())
			},
		},
		{
			name: "missing database host",
			configFile: `
database:
  dbname: testdb
collection:
  owner: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
`,
			expectError: true,
		},
		{
			name: "missing collection owner",
			configFile: `
database:
  host: localhost
  dbname: testdb
`,
			expectError: true,
		},
		{
			name: "invalid collection",
			configFile: `
database:
  host: localhost
  dbname: testdb
collection:
  owner: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
  max_supply: 0
`,
			expectError: true,
		},
		{
			name: "invalid yaml",
			configFile: `
				database:
				  host: localhost
				  port: invalid
			`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadMinterAPIConfig(writeConfig(t, tt.configFile), "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadMerkleToolConfig(t *testing.T) {
	configFile := writeConfig(t, `
collection:
  whitelist:
    addresses:
      - "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
      - "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"
`)

	cfg, err := LoadMerkleToolConfig(configFile, "")
	require.NoError(t, err)
	assert.Len(t, cfg.Collection.Whitelist.Addresses, 2)
	assert.Equal(t, domain.WhitelistModeMerkle, cfg.Collection.Whitelist.Mode)
	assert.Equal(t, domain.DEFAULT_TOKEN_NAME, cfg.Collection.TokenName)
}

func TestCollectionConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*CollectionConfig)
		expectedErr string
	}{
		{name: "valid", mutate: func(*CollectionConfig) {}},
		{name: "invalid owner", mutate: func(c *CollectionConfig) { c.Owner = "0x1234" }, expectedErr: "collection.owner"},
		{name: "zero owner", mutate: func(c *CollectionConfig) { c.Owner = domain.ETHEREUM_ZERO_ADDRESS }, expectedErr: "collection.owner"},
		{name: "negative cost", mutate: func(c *CollectionConfig) { c.CostWei = "-1" }, expectedErr: "collection.cost_wei"},
		{name: "garbage cost", mutate: func(c *CollectionConfig) { c.CostWei = "0.1 ether" }, expectedErr: "collection.cost_wei"},
		{name: "zero supply", mutate: func(c *CollectionConfig) { c.MaxSupply = 0 }, expectedErr: "collection.max_supply"},
		{name: "zero address cap", mutate: func(c *CollectionConfig) { c.MaxMintAmount = 0 }, expectedErr: "collection.max_mint_amount"},
		{name: "zero tx cap", mutate: func(c *CollectionConfig) { c.MaxMintAmountPerTx = 0 }, expectedErr: "collection.max_mint_amount_per_tx"},
		{name: "unknown overpayment", mutate: func(c *CollectionConfig) { c.Overpayment = "donate" }, expectedErr: "collection.overpayment"},
		{name: "unknown whitelist mode", mutate: func(c *CollectionConfig) { c.Whitelist.Mode = "vip" }, expectedErr: "collection.whitelist.mode"},
		{name: "zero whitelist cap", mutate: func(c *CollectionConfig) { c.Whitelist.MaxMintAmount = 0 }, expectedErr: "collection.whitelist.max_mint_amount"},
		{name: "short merkle root", mutate: func(c *CollectionConfig) { c.Whitelist.MerkleRoot = "0x1234" }, expectedErr: "collection.whitelist.merkle_root"},
		{
			name: "list mode ignores whitelist cap",
			mutate: func(c *CollectionConfig) {
				c.Whitelist.Mode = domain.WhitelistModeList
				c.Whitelist.MaxMintAmount = 0
			},
		},
		{
			name: "auction with invalid price",
			mutate: func(c *CollectionConfig) {
				c.Auction = AuctionConfig{StartPriceWei: "10", EndPriceWei: "x", PriceDropWei: "1", DropInterval: time.Minute}
			},
			expectedErr: "collection.auction.end_price_wei",
		},
		{
			name: "auction without interval",
			mutate: func(c *CollectionConfig) {
				c.Auction = AuctionConfig{StartPriceWei: "10", EndPriceWei: "1", PriceDropWei: "1"}
			},
			expectedErr: "collection.auction.drop_interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCollection()
			tt.mutate(&c)
			err := c.Validate()

			if tt.expectedErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
			}
		})
	}
}

func TestCollectionConfig_ContractConfig(t *testing.T) {
	c := validCollection()
	c.Overpayment = domain.OverpaymentRefund
	c.Auction = AuctionConfig{
		StartPriceWei:     "1000",
		EndPriceWei:       "100",
		PriceDropWei:      "50",
		DropInterval:      time.Minute,
		Duration:          time.Hour,
		StartTime:         1700000000,
		EnforceAddressCap: true,
	}

	cfg, err := c.ContractConfig()
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testOwner), cfg.Owner)
	assert.Equal(t, domain.DEFAULT_COST_WEI, cfg.Cost.String())
	assert.Equal(t, uint64(100), cfg.MaxSupply)
	assert.Equal(t, domain.OverpaymentRefund, cfg.Overpayment)
	assert.True(t, cfg.AuctionEnforceAddressCap)
	require.NotNil(t, cfg.Auction)
	assert.Equal(t, "1000", cfg.Auction.StartPrice.String())
	assert.Equal(t, "100", cfg.Auction.EndPrice.String())
	assert.Equal(t, "50", cfg.Auction.PriceDrop.String())
	assert.Equal(t, int64(1700000000), cfg.Auction.StartTime.Unix())

	c.Auction.EndPriceWei = "2000"
	_, err = c.ContractConfig()
	assert.ErrorIs(t, err, domain.ErrInvalidAuctionParams)

	c.Auction = AuctionConfig{}
	cfg, err = c.ContractConfig()
	require.NoError(t, err)
	assert.Nil(t, cfg.Auction)

	c.MaxSupply = 0
	_, err = c.ContractConfig()
	assert.Error(t, err)
}

func TestCollectionConfig_WhitelistAddresses(t *testing.T) {
	alice := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	bob := common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	loader := mocks.NewMockWhitelistLoader(ctrl)

	c := validCollection()
	c.Whitelist.Addresses = []string{alice.Hex()}

	addrs, err := c.WhitelistAddresses(loader)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{alice}, addrs)

	c.Whitelist.AddressesPath = "whitelist.json"
	loader.EXPECT().Load("whitelist.json").Return([]common.Address{bob, alice}, nil)
	addrs, err = c.WhitelistAddresses(loader)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{alice, bob}, addrs)

	loader.EXPECT().Load("whitelist.json").Return(nil, assert.AnError)
	_, err = c.WhitelistAddresses(loader)
	assert.ErrorIs(t, err, assert.AnError)

	c.Whitelist.Addresses = []string{"nope"}
	_, err = c.WhitelistAddresses(loader)
	assert.Error(t, err)
}

func TestCollectionConfig_NewWhitelist(t *testing.T) {
	alice := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	bob := common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
	tree, err := merkle.NewTreeFromAddresses([]common.Address{alice, bob})
	require.NoError(t, err)

	t.Run("merkle root computed from addresses", func(t *testing.T) {
		c := validCollection()
		w, err := c.NewWhitelist([]common.Address{alice, bob})
		require.NoError(t, err)
		mw, ok := w.(*minter.MerkleWhitelist)
		require.True(t, ok)
		assert.Equal(t, tree.Root(), mw.Root())
		assert.Equal(t, uint64(1), mw.Cap())
	})

	t.Run("configured merkle root wins", func(t *testing.T) {
		c := validCollection()
		c.Whitelist.MerkleRoot = common.Hash{1}.Hex()
		w, err := c.NewWhitelist([]common.Address{alice, bob})
		require.NoError(t, err)
		assert.Equal(t, common.Hash{1}, w.(*minter.MerkleWhitelist).Root())
	})

	t.Run("empty merkle whitelist", func(t *testing.T) {
		c := validCollection()
		w, err := c.NewWhitelist(nil)
		require.NoError(t, err)
		assert.Equal(t, common.Hash{}, w.(*minter.MerkleWhitelist).Root())
	})

	t.Run("explicit list", func(t *testing.T) {
		c := validCollection()
		c.Whitelist.Mode = domain.WhitelistModeList
		w, err := c.NewWhitelist([]common.Address{alice})
		require.NoError(t, err)
		assert.Equal(t, domain.WhitelistModeList, w.Mode())
		assert.True(t, w.IsWhitelisted(alice))
		assert.False(t, w.IsWhitelisted(bob))
	})

	t.Run("unknown mode", func(t *testing.T) {
		c := validCollection()
		c.Whitelist.Mode = "vip"
		_, err := c.NewWhitelist(nil)
		assert.Error(t, err)
	})
}

func TestParseHash(t *testing.T) {
	h, err := ParseHash("0x00000000000000000000000000000000000000000000000000000000000000ff")
	require.NoError(t, err)
	assert.Equal(t, common.HexToHash("0xff"), h)

	_, err = ParseHash("00ff")
	assert.Error(t, err)
	_, err = ParseHash("0x00ff")
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "complete config",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "testpass",
				DBName:   "testdb",
				SSLMode:  "require",
			},
			expected: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require",
		},
		{
			name: "with special characters in password",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "p@ssw0rd!",
				DBName:   "testdb",
				SSLMode:  "disable",
			},
			expected: "host=localhost port=5432 user=testuser password=p@ssw0rd! dbname=testdb sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
		})
	}
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	envDir := filepath.Join(tmpDir, "env")
	require.NoError(t, os.MkdirAll(envDir, 0750))

	// godotenv.Overload sets process environment variables, clear them afterwards
	envVars := map[string]string{
		"FF_MINTER_DEBUG":                              "true",
		"FF_MINTER_DATABASE_HOST":                      "env-host",
		"FF_MINTER_DATABASE_PORT":                      "3306",
		"FF_MINTER_DATABASE_DBNAME":                    "env-db",
		"FF_MINTER_COLLECTION_OWNER":                   testOwner,
		"FF_MINTER_COLLECTION_MAX_SUPPLY":              "42",
		"FF_MINTER_COLLECTION_AUCTION_START_PRICE_WEI": "1000",
	}
	var envContent string
	for k, v := range envVars {
		envContent += k + "=" + v + "\n"
		key := k
		t.Cleanup(func() { _ = os.Unsetenv(key) })
	}
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte(envContent), 0600))

	// The service specific file overrides the shared one
	serviceEnv := "FF_MINTER_COLLECTION_MAX_SUPPLY=77\n"
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env.minter-api.local"), []byte(serviceEnv), 0600))

	configPath := writeConfig(t, `
debug: false
database:
  host: file-host
  port: 5432
  dbname: file-db
collection:
  max_supply: 10
  auction:
    end_price_wei: "100"
    price_drop_wei: "10"
`)

	cfg, err := LoadMinterAPIConfig(configPath, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "env-db", cfg.Database.DBName)
	assert.Equal(t, testOwner, cfg.Collection.Owner)
	assert.Equal(t, uint64(77), cfg.Collection.MaxSupply)
	assert.True(t, cfg.Collection.Auction.Enabled())
	assert.Equal(t, 15*time.Minute, cfg.Collection.Auction.DropInterval)
}
