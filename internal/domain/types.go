package domain

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

// Stage represents the current sale phase of the collection
type Stage uint8

const (
	StagePaused Stage = iota
	StagePresale
	StagePublicSale
	StageDutchAuction
)

// String returns the lowercase name of the stage
func (s Stage) String() string {
	switch s {
	case StagePaused:
		return "paused"
	case StagePresale:
		return "presale"
	case StagePublicSale:
		return "public_sale"
	case StageDutchAuction:
		return "dutch_auction"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

// Valid checks if the stage is one of the known stages
func (s Stage) Valid() bool {
	return s <= StageDutchAuction
}

// ParseStage parses either the stage name or its numeric value
func ParseStage(value string) (Stage, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for s := StagePaused; s <= StageDutchAuction; s++ {
		if v == s.String() {
			return s, nil
		}
	}

	n, err := strconv.ParseUint(v, 10, 8)
	if err != nil || !Stage(n).Valid() {
		return StagePaused, fmt.Errorf("unknown stage: %q", value)
	}

	return Stage(n), nil
}

// TokenID is the sequential identifier of a minted token, starting at 1
type TokenID uint64

// String returns the decimal representation of the token id
func (id TokenID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// MintKind identifies which entry point produced a mint
type MintKind string

const (
	MintKindPublic       MintKind = "public"
	MintKindWhitelist    MintKind = "whitelist"
	MintKindDutchAuction MintKind = "dutch_auction"
	MintKindPrivileged   MintKind = "privileged"
)

// WhitelistMode identifies the whitelist authorization strategy
type WhitelistMode string

const (
	WhitelistModeList   WhitelistMode = "list"
	WhitelistModeMerkle WhitelistMode = "merkle"
)

// OverpaymentPolicy decides what happens with payment above the required total
type OverpaymentPolicy string

const (
	// OverpaymentRetain keeps the whole payment in the treasury
	OverpaymentRetain OverpaymentPolicy = "retain"
	// OverpaymentRefund keeps only the required total and reports the excess as refund
	OverpaymentRefund OverpaymentPolicy = "refund"
)

// MintEvent is the normalized event published for every committed mint
type MintEvent struct {
	ReceiptID   string    `json:"receipt_id"`
	Kind        MintKind  `json:"kind"`
	Collection  string    `json:"collection"`
	Caller      string    `json:"caller"`
	Beneficiary string    `json:"beneficiary"`
	TokenIDs    []TokenID `json:"token_ids"`
	Paid        string    `json:"paid"`     // wei
	Required    string    `json:"required"` // wei
	Refund      string    `json:"refund"`   // wei
	Stage       Stage     `json:"stage"`
	Timestamp   time.Time `json:"timestamp"`
}

// Valid checks that the event carries at least one token and a beneficiary
func (e *MintEvent) Valid() bool {
	if e == nil || len(e.TokenIDs) == 0 {
		return false
	}
	if !common.IsHexAddress(e.Beneficiary) || e.Beneficiary == ETHEREUM_ZERO_ADDRESS {
		return false
	}
	return true
}

// ParseAddress parses a hex address, rejecting malformed and zero addresses
func ParseAddress(value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("invalid address: %q", value)
	}
	addr := common.HexToAddress(value)
	if addr == (common.Address{}) {
		return common.Address{}, ErrZeroAddress
	}
	return addr, nil
}

// ParseWei parses a non-negative decimal (or 0x-prefixed hex) amount of wei, at most 256 bits
func ParseWei(value string) (*big.Int, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil, fmt.Errorf("empty amount")
	}

	n, ok := math.ParseBig256(v)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %q", value)
	}
	if n.Sign() < 0 {
		return nil, fmt.Errorf("negative amount: %q", value)
	}

	return n, nil
}
