package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-minter/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration. Publishing is disabled when URL is empty.
type NATSConfig struct {
	URL             string        `mapstructure:"url"`
	SubjectPrefix   string        `mapstructure:"subject_prefix"`
	StreamName      string        `mapstructure:"stream_name"`      // Stream provisioned over the prefix subjects, skipped when empty
	DuplicateWindow time.Duration `mapstructure:"duplicate_window"` // Window in which JetStream drops republished receipts
	MaxReconnects   int           `mapstructure:"max_reconnects"`
	ReconnectWait   time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName  string        `mapstructure:"connection_name"`
	PublishTimeout  time.Duration `mapstructure:"publish_timeout"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds

	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string `mapstructure:"jwt_public_key"`
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	WorkerPoolSize  int           `mapstructure:"pool_size"`
	WorkerQueueSize int           `mapstructure:"queue_size"`
	MaxElapsedTime  time.Duration `mapstructure:"max_elapsed_time"` // Retry budget of a single publish
}

// WhitelistConfig holds the presale whitelist configuration
type WhitelistConfig struct {
	Mode          domain.WhitelistMode `mapstructure:"mode"`
	Addresses     []string             `mapstructure:"addresses"`
	AddressesPath string               `mapstructure:"addresses_path"`
	// MerkleRoot is computed from the addresses when empty
	MerkleRoot    string `mapstructure:"merkle_root"`
	MaxMintAmount uint64 `mapstructure:"max_mint_amount"`
}

// AuctionConfig holds the dutch auction configuration. The auction is disabled when StartPriceWei is empty.
type AuctionConfig struct {
	StartPriceWei     string        `mapstructure:"start_price_wei"`
	EndPriceWei       string        `mapstructure:"end_price_wei"`
	PriceDropWei      string        `mapstructure:"price_drop_wei"`
	DropInterval      time.Duration `mapstructure:"drop_interval"`
	Duration          time.Duration `mapstructure:"duration"`
	StartTime         int64         `mapstructure:"start_time"` // unix seconds, 0 = unscheduled
	EnforceAddressCap bool          `mapstructure:"enforce_address_cap"`
}

// CollectionConfig holds the collection parameters
type CollectionConfig struct {
	TokenName          string                   `mapstructure:"token_name"`
	TokenSymbol        string                   `mapstructure:"token_symbol"`
	Owner              string                   `mapstructure:"owner"`
	CostWei            string                   `mapstructure:"cost_wei"`
	MaxSupply          uint64                   `mapstructure:"max_supply"`
	MaxMintAmount      uint64                   `mapstructure:"max_mint_amount"`
	MaxMintAmountPerTx uint64                   `mapstructure:"max_mint_amount_per_tx"`
	BaseURI            string                   `mapstructure:"base_uri"`
	HiddenBaseURI      string                   `mapstructure:"hidden_base_uri"`
	Revealed           bool                     `mapstructure:"revealed"`
	Overpayment        domain.OverpaymentPolicy `mapstructure:"overpayment"`
	Whitelist          WhitelistConfig          `mapstructure:"whitelist"`
	Auction            AuctionConfig            `mapstructure:"auction"`
}

// MinterAPIConfig holds configuration for the minter API server
type MinterAPIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	NATS       NATSConfig       `mapstructure:"nats"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Worker     WorkerConfig     `mapstructure:"worker"`
	Collection CollectionConfig `mapstructure:"collection"`
}

// MerkleToolConfig holds configuration for the merkle tool
type MerkleToolConfig struct {
	BaseConfig `mapstructure:",squash"`
	Collection CollectionConfig `mapstructure:"collection"`
}

// setCollectionDefaults sets the default collection parameters
func setCollectionDefaults(v *viper.Viper) {
	v.SetDefault("collection.token_name", domain.DEFAULT_TOKEN_NAME)
	v.SetDefault("collection.token_symbol", domain.DEFAULT_TOKEN_SYMBOL)
	v.SetDefault("collection.cost_wei", domain.DEFAULT_COST_WEI)
	v.SetDefault("collection.max_supply", domain.DEFAULT_MAX_SUPPLY)
	v.SetDefault("collection.max_mint_amount", domain.DEFAULT_MAX_MINT_AMOUNT)
	v.SetDefault("collection.max_mint_amount_per_tx", domain.DEFAULT_MAX_MINT_AMOUNT_PER_TX)
	v.SetDefault("collection.hidden_base_uri", "ipfs://__CID__/hidden.json?")
	v.SetDefault("collection.revealed", false)
	v.SetDefault("collection.overpayment", string(domain.OverpaymentRetain))
	v.SetDefault("collection.whitelist.mode", string(domain.WhitelistModeMerkle))
	v.SetDefault("collection.whitelist.max_mint_amount", domain.DEFAULT_MAX_WHITELIST_MINT)
	v.SetDefault("collection.auction.drop_interval", "15m")
}

// LoadMinterAPIConfig loads configuration for the minter API server
func LoadMinterAPIConfig(configFile string, envPath string) (*MinterAPIConfig, error) {
	v := configureViper("minter-api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("nats.subject_prefix", "mints")
	v.SetDefault("nats.stream_name", "MINTS")
	v.SetDefault("nats.duplicate_window", "10m")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", "ff-minter")
	v.SetDefault("nats.publish_timeout", "5s")
	v.SetDefault("worker.pool_size", 4)
	v.SetDefault("worker.queue_size", 256)
	v.SetDefault("worker.max_elapsed_time", "1m")
	setCollectionDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg MinterAPIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}
	if err := cfg.Collection.Validate(); err != nil {
		return nil, fmt.Errorf("invalid collection config: %w", err)
	}

	return &cfg, nil
}

// LoadMerkleToolConfig loads configuration for the merkle tool
func LoadMerkleToolConfig(configFile string, envPath string) (*MerkleToolConfig, error) {
	v := configureViper("merkle-tool", configFile, envPath)
	setCollectionDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg MerkleToolConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the collection parameters without building anything
func (c *CollectionConfig) Validate() error {
	if _, err := domain.ParseAddress(c.Owner); err != nil {
		return fmt.Errorf("collection.owner: %w", err)
	}
	if _, err := domain.ParseWei(c.CostWei); err != nil {
		return fmt.Errorf("collection.cost_wei: %w", err)
	}
	if c.MaxSupply == 0 {
		return errors.New("collection.max_supply must be positive")
	}
	if c.MaxMintAmount == 0 {
		return errors.New("collection.max_mint_amount must be positive")
	}
	if c.MaxMintAmountPerTx == 0 {
		return errors.New("collection.max_mint_amount_per_tx must be positive")
	}
	switch c.Overpayment {
	case "", domain.OverpaymentRetain, domain.OverpaymentRefund:
	default:
		return fmt.Errorf("collection.overpayment: unknown policy %q", c.Overpayment)
	}

	switch c.Whitelist.Mode {
	case domain.WhitelistModeList:
	case domain.WhitelistModeMerkle:
		if c.Whitelist.MaxMintAmount == 0 {
			return errors.New("collection.whitelist.max_mint_amount must be positive")
		}
		if c.Whitelist.MerkleRoot != "" {
			if _, err := ParseHash(c.Whitelist.MerkleRoot); err != nil {
				return fmt.Errorf("collection.whitelist.merkle_root: %w", err)
			}
		}
	default:
		return fmt.Errorf("collection.whitelist.mode: unknown mode %q", c.Whitelist.Mode)
	}

	if c.Auction.Enabled() {
		for key, value := range map[string]string{
			"start_price_wei": c.Auction.StartPriceWei,
			"end_price_wei":   c.Auction.EndPriceWei,
			"price_drop_wei":  c.Auction.PriceDropWei,
		} {
			if _, err := domain.ParseWei(value); err != nil {
				return fmt.Errorf("collection.auction.%s: %w", key, err)
			}
		}
		if c.Auction.DropInterval <= 0 {
			return errors.New("collection.auction.drop_interval must be positive")
		}
	}

	return nil
}

// Enabled reports whether a dutch auction is configured
func (c *AuctionConfig) Enabled() bool {
	return c.StartPriceWei != ""
}

// ParseHash parses a 0x-prefixed 32 byte hex string
func ParseHash(value string) (common.Hash, error) {
	b, err := hexutil.Decode(strings.TrimSpace(value))
	if err != nil {
		return common.Hash{}, err
	}
	if len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("expected %d bytes, got %d", common.HashLength, len(b))
	}
	return common.BytesToHash(b), nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/minter-api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("FF_MINTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.subject_prefix",
		"nats.stream_name",
		"nats.duplicate_window",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.publish_timeout",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.cors_allowed_origins",
		// Auth
		"auth.jwt_public_key",
		// Worker
		"worker.pool_size",
		"worker.queue_size",
		"worker.max_elapsed_time",
		// Collection
		"collection.token_name",
		"collection.token_symbol",
		"collection.owner",
		"collection.cost_wei",
		"collection.max_supply",
		"collection.max_mint_amount",
		"collection.max_mint_amount_per_tx",
		"collection.base_uri",
		"collection.hidden_base_uri",
		"collection.revealed",
		"collection.overpayment",
		"collection.whitelist.mode",
		"collection.whitelist.addresses",
		"collection.whitelist.addresses_path",
		"collection.whitelist.merkle_root",
		"collection.whitelist.max_mint_amount",
		"collection.auction.start_price_wei",
		"collection.auction.end_price_wei",
		"collection.auction.price_drop_wei",
		"collection.auction.drop_interval",
		"collection.auction.duration",
		"collection.auction.start_time",
		"collection.auction.enforce_address_cap",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
