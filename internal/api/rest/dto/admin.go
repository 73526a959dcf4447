package dto

// StageRequest sets the sale stage, by name or numeric value
type StageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

// AmountRequest sets one of the mint caps
type AmountRequest struct {
	Amount uint64 `json:"amount"`
}

// CostRequest sets the public sale unit price in wei
type CostRequest struct {
	Cost string `json:"cost" binding:"required"`
}

// MerkleRootRequest replaces the whitelist merkle root
type MerkleRootRequest struct {
	Root string `json:"root" binding:"required"`
}

// RevealedRequest toggles the reveal flag
type RevealedRequest struct {
	Revealed *bool `json:"revealed" binding:"required"`
}

// URIRequest sets the revealed or hidden base URI
type URIRequest struct {
	URI string `json:"uri"`
}

// AuctionRequest replaces the dutch auction parameters. Durations are seconds.
type AuctionRequest struct {
	StartTime    int64  `json:"start_time"` // unix seconds
	StartPrice   string `json:"start_price" binding:"required"`
	EndPrice     string `json:"end_price" binding:"required"`
	PriceDrop    string `json:"price_drop" binding:"required"`
	DropInterval int64  `json:"drop_interval"`
	Duration     int64  `json:"duration"`
}

// StartTimeRequest moves the dutch auction start
type StartTimeRequest struct {
	StartTime int64 `json:"start_time" binding:"required"` // unix seconds
}

// WhitelistRequest adds addresses to the explicit whitelist
type WhitelistRequest struct {
	Addresses []string `json:"addresses" binding:"required,min=1"`
}

// WhitelistResult reports how many addresses were newly added
type WhitelistResult struct {
	Added int `json:"added"`
}

// WithdrawResponse reports the withdrawn treasury amount in wei
type WithdrawResponse struct {
	Amount string `json:"amount"`
}
