package dto

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/minter"
)

// CollectionResponse is the public state of the collection. Amounts are decimal strings of wei.
type CollectionResponse struct {
	Name               string            `json:"name"`
	Symbol             string            `json:"symbol"`
	Owner              string            `json:"owner"`
	Stage              string            `json:"stage"`
	StageID            uint8             `json:"stage_id"`
	TotalSupply        uint64            `json:"total_supply"`
	MaxSupply          uint64            `json:"max_supply"`
	RemainingSupply    uint64            `json:"remaining_supply"`
	Cost               string            `json:"cost"`
	MaxMintAmount      uint64            `json:"max_mint_amount"`
	MaxMintAmountPerTx uint64            `json:"max_mint_amount_per_tx"`
	Revealed           bool              `json:"revealed"`
	Overpayment        string            `json:"overpayment"`
	Balance            string            `json:"balance"`
	Whitelist          WhitelistResponse `json:"whitelist"`
	Auction            *AuctionResponse  `json:"auction,omitempty"`
}

// WhitelistResponse describes the active whitelist strategy
type WhitelistResponse struct {
	Mode          string  `json:"mode"`
	MerkleRoot    *string `json:"merkle_root,omitempty"`
	MaxMintAmount uint64  `json:"max_mint_amount,omitempty"`
}

// AuctionResponse describes the configured dutch auction
type AuctionResponse struct {
	StartTime    *time.Time `json:"start_time,omitempty"` // unset while unscheduled
	EndTime      *time.Time `json:"end_time,omitempty"`
	StartPrice   string     `json:"start_price"`
	EndPrice     string     `json:"end_price"`
	PriceDrop    string     `json:"price_drop"`
	DropInterval int64      `json:"drop_interval"` // seconds
	Duration     int64      `json:"duration"`      // seconds
	CurrentPrice string     `json:"current_price"`
}

// AuctionPriceResponse is the current dutch auction price
type AuctionPriceResponse struct {
	Price string `json:"price"`
}

// TokenResponse describes a minted token
type TokenResponse struct {
	TokenID  domain.TokenID   `json:"token_id"`
	Owner    string           `json:"owner"`
	TokenURI string           `json:"token_uri"`
	Receipt  *ReceiptResponse `json:"receipt,omitempty"`
}

// WalletResponse describes the tokens and allowances of an address
type WalletResponse struct {
	Address          string           `json:"address"`
	TokenIDs         []domain.TokenID `json:"token_ids"`
	Minted           uint64           `json:"minted"`
	WhitelistClaimed uint64           `json:"whitelist_claimed"`
	// Whitelisted is only set for the explicit list; merkle membership needs a proof
	Whitelisted      *bool            `json:"whitelisted,omitempty"`
}

// MapStatusToDTO maps a contract snapshot to the collection response
func MapStatusToDTO(s minter.Status) *CollectionResponse {
	resp := &CollectionResponse{
		Name:               s.Name,
		Symbol:             s.Symbol,
		Owner:              s.Owner.Hex(),
		Stage:              s.Stage.String(),
		StageID:            uint8(s.Stage),
		TotalSupply:        s.TotalSupply,
		MaxSupply:          s.MaxSupply,
		RemainingSupply:    s.MaxSupply - s.TotalSupply,
		Cost:               weiString(s.Cost),
		MaxMintAmount:      s.MaxMintAmount,
		MaxMintAmountPerTx: s.MaxMintAmountPerTx,
		Revealed:           s.Revealed,
		Overpayment:        string(s.Overpayment),
		Balance:            weiString(s.Balance),
		Whitelist: WhitelistResponse{
			Mode:          string(s.WhitelistMode),
			MaxMintAmount: s.MaxWhitelistMintAmount,
		},
	}

	if s.MerkleRoot != nil {
		root := s.MerkleRoot.Hex()
		resp.Whitelist.MerkleRoot = &root
	}

	if s.Auction != nil {
		p := s.Auction.Params
		resp.Auction = &AuctionResponse{
			StartTime:    optionalTime(p.StartTime),
			EndTime:      optionalTime(s.Auction.EndTime),
			StartPrice:   weiString(p.StartPrice),
			EndPrice:     weiString(p.EndPrice),
			PriceDrop:    weiString(p.PriceDrop),
			DropInterval: int64(p.DropInterval / time.Second),
			Duration:     int64(p.Duration / time.Second),
			CurrentPrice: weiString(s.Auction.CurrentPrice),
		}
	}

	return resp
}

// MapWalletToDTO maps the per-address queries of the contract to the wallet response
func MapWalletToDTO(c minter.Contract, addr common.Address) *WalletResponse {
	ids := c.WalletOf(addr)
	if ids == nil {
		ids = []domain.TokenID{}
	}

	resp := &WalletResponse{
		Address:          addr.Hex(),
		TokenIDs:         ids,
		Minted:           c.AddressMinted(addr),
		WhitelistClaimed: c.WhitelistClaimed(addr),
	}
	if c.Status().WhitelistMode == domain.WhitelistModeList {
		listed := c.IsWhitelisted(addr)
		resp.Whitelisted = &listed
	}

	return resp
}

func weiString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}
