package minter

import (
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/domain"
)

// Receipt describes a committed mint
type Receipt struct {
	Kind        domain.MintKind
	Caller      common.Address
	Beneficiary common.Address
	TokenIDs    []domain.TokenID
	// Required is the price of the mint, Paid what the caller sent and Refund
	// the part of Paid that was not kept
	Required *big.Int
	Paid     *big.Int
	Refund   *big.Int
	Stage    domain.Stage
	At       time.Time
}

// AuctionStatus is a snapshot of the dutch auction
type AuctionStatus struct {
	Params       AuctionParams
	EndTime      time.Time
	CurrentPrice *big.Int
}

// Status is a read-only snapshot of the contract
type Status struct {
	Name                   string
	Symbol                 string
	Owner                  common.Address
	Stage                  domain.Stage
	TotalSupply            uint64
	MaxSupply              uint64
	Cost                   *big.Int
	MaxMintAmount          uint64
	MaxMintAmountPerTx     uint64
	Revealed               bool
	WhitelistMode          domain.WhitelistMode
	MerkleRoot             *common.Hash
	MaxWhitelistMintAmount uint64
	Overpayment            domain.OverpaymentPolicy
	Balance                *big.Int
	Auction                *AuctionStatus
}

// Contract is a finite-supply token collection with a gated sale.
// All methods are safe for concurrent use; calls are serialized.
type Contract interface {
	Name() string
	Symbol() string
	Owner() common.Address
	Stage() domain.Stage
	TotalSupply() uint64
	MaxSupply() uint64
	RemainingSupply() uint64
	Cost() *big.Int
	OwnerOf(id domain.TokenID) (common.Address, error)
	WalletOf(addr common.Address) []domain.TokenID
	TokenURI(id domain.TokenID) (string, error)
	AddressMinted(addr common.Address) uint64
	WhitelistClaimed(addr common.Address) uint64
	IsWhitelisted(addr common.Address) bool
	CurrentPrice() (*big.Int, error)
	Balance() *big.Int
	Status() Status

	// Mint mints during the public sale at the configured cost
	Mint(caller common.Address, count uint64, payment *big.Int) (*Receipt, error)
	// WhitelistMint mints during the presale for whitelisted callers
	WhitelistMint(caller common.Address, count uint64, proof []common.Hash, payment *big.Int) (*Receipt, error)
	// DutchAuctionMint mints during the dutch auction at the current auction price
	DutchAuctionMint(caller common.Address, count uint64, payment *big.Int) (*Receipt, error)
	// MintForAddress is the owner's free mint, callable in every stage
	MintForAddress(caller common.Address, beneficiary common.Address, count uint64) (*Receipt, error)

	SetStage(caller common.Address, stage domain.Stage) error
	SetCost(caller common.Address, cost *big.Int) error
	SetMaxMintAmount(caller common.Address, amount uint64) error
	SetMaxMintAmountPerTx(caller common.Address, amount uint64) error
	SetMaxWhitelistMintAmount(caller common.Address, amount uint64) error
	SetMerkleRoot(caller common.Address, root common.Hash) error
	AddToWhitelist(caller common.Address, addrs []common.Address) (int, error)
	SetRevealed(caller common.Address, revealed bool) error
	SetBaseURI(caller common.Address, uri string) error
	SetHiddenBaseURI(caller common.Address, uri string) error
	SetDutchAuction(caller common.Address, params AuctionParams) error
	SetDutchAuctionStartTime(caller common.Address, start time.Time) error
	Withdraw(caller common.Address) (*big.Int, error)

	// Restore replays the receipts of an earlier run into a contract that has not minted yet
	Restore(receipts []Receipt) error
}

type contract struct {
	mu sync.Mutex

	name        string
	symbol      string
	owner       common.Address
	cost        *big.Int
	maxMint     uint64
	maxMintTx   uint64
	overpayment domain.OverpaymentPolicy
	auctionCap  bool
	treasury    *big.Int

	stage     *StageController
	ledger    *SupplyLedger
	guard     *AllocationGuard
	whitelist WhitelistAuthority
	pricer    *AuctionPricer
	metadata  *MetadataResolver
	clock     adapter.Clock
}

// NewContract creates a contract in the paused stage
func NewContract(cfg Config, whitelist WhitelistAuthority, clock adapter.Clock) (Contract, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if whitelist == nil {
		return nil, domain.ErrInvalidConfig
	}

	overpayment := cfg.Overpayment
	if overpayment == "" {
		overpayment = domain.OverpaymentRetain
	}

	c := &contract{
		name:        cfg.Name,
		symbol:      cfg.Symbol,
		owner:       cfg.Owner,
		cost:        new(big.Int).Set(cfg.Cost),
		maxMint:     cfg.MaxMintAmount,
		maxMintTx:   cfg.MaxMintAmountPerTx,
		overpayment: overpayment,
		auctionCap:  cfg.AuctionEnforceAddressCap,
		treasury:    new(big.Int),
		stage:       NewStageController(),
		ledger:      NewSupplyLedger(cfg.MaxSupply),
		guard:       NewAllocationGuard(),
		whitelist:   whitelist,
		metadata:    NewMetadataResolver(cfg.BaseURI, cfg.HiddenBaseURI, cfg.Revealed),
		clock:       clock,
	}

	if cfg.Auction != nil {
		pricer, err := NewAuctionPricer(*cfg.Auction)
		if err != nil {
			return nil, err
		}
		c.pricer = pricer
	}

	return c, nil
}

func (c *contract) Name() string {
	return c.name
}

func (c *contract) Symbol() string {
	return c.symbol
}

func (c *contract) Owner() common.Address {
	return c.owner
}

func (c *contract) Stage() domain.Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stage.Current()
}

func (c *contract) TotalSupply() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.TotalMinted()
}

func (c *contract) MaxSupply() uint64 {
	return c.ledger.MaxSupply()
}

func (c *contract) RemainingSupply() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.RemainingSupply()
}

func (c *contract) Cost() *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return new(big.Int).Set(c.cost)
}

func (c *contract) OwnerOf(id domain.TokenID) (common.Address, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.OwnerOf(id)
}

func (c *contract) WalletOf(addr common.Address) []domain.TokenID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.WalletOf(addr)
}

func (c *contract) TokenURI(id domain.TokenID) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ledger.Exists(id) {
		return "", domain.ErrUnknownToken
	}
	return c.metadata.TokenURI(id), nil
}

func (c *contract) AddressMinted(addr common.Address) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.guard.MintedBy(addr)
}

func (c *contract) WhitelistClaimed(addr common.Address) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if w, ok := c.whitelist.(*MerkleWhitelist); ok {
		return w.Claimed(addr)
	}
	return 0
}

func (c *contract) IsWhitelisted(addr common.Address) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.whitelist.IsWhitelisted(addr)
}

func (c *contract) CurrentPrice() (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pricer == nil {
		return nil, domain.ErrInvalidAuctionParams
	}
	return c.pricer.CurrentPrice(c.clock.Now()), nil
}

func (c *contract) Balance() *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return new(big.Int).Set(c.treasury)
}

func (c *contract) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Status{
		Name:               c.name,
		Symbol:             c.symbol,
		Owner:              c.owner,
		Stage:              c.stage.Current(),
		TotalSupply:        c.ledger.TotalMinted(),
		MaxSupply:          c.ledger.MaxSupply(),
		Cost:               new(big.Int).Set(c.cost),
		MaxMintAmount:      c.maxMint,
		MaxMintAmountPerTx: c.maxMintTx,
		Revealed:           c.metadata.Revealed(),
		WhitelistMode:      c.whitelist.Mode(),
		Overpayment:        c.overpayment,
		Balance:            new(big.Int).Set(c.treasury),
	}
	if w, ok := c.whitelist.(*MerkleWhitelist); ok {
		root := w.Root()
		s.MerkleRoot = &root
		s.MaxWhitelistMintAmount = w.Cap()
	}
	if c.pricer != nil {
		s.Auction = &AuctionStatus{
			Params:       c.pricer.Params(),
			EndTime:      c.pricer.EndTime(),
			CurrentPrice: c.pricer.CurrentPrice(c.clock.Now()),
		}
	}

	return s
}
