package rest

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/store"
)

const (
	DEFAULT_RECEIPTS_LIMIT = 20
	MAX_RECEIPTS_LIMIT     = 100
)

// ParseListReceiptsQuery parses the query of the receipt listing endpoint
func ParseListReceiptsQuery(c *gin.Context) (store.MintReceiptFilter, error) {
	filter := store.MintReceiptFilter{Limit: DEFAULT_RECEIPTS_LIMIT}

	if holder := c.Query("holder"); holder != "" {
		addr, err := domain.ParseAddress(holder)
		if err != nil {
			return filter, fmt.Errorf("holder: %w", err)
		}
		filter.Beneficiary = addr.Hex()
	}

	if kind := c.Query("kind"); kind != "" {
		switch domain.MintKind(kind) {
		case domain.MintKindPublic, domain.MintKindWhitelist, domain.MintKindDutchAuction, domain.MintKindPrivileged:
			filter.Kind = kind
		default:
			return filter, fmt.Errorf("kind: unknown mint kind %q", kind)
		}
	}

	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > MAX_RECEIPTS_LIMIT {
			return filter, fmt.Errorf("limit: must be between 1 and %d", MAX_RECEIPTS_LIMIT)
		}
		filter.Limit = limit
	}

	if v := c.Query("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return filter, fmt.Errorf("offset: must be a non-negative integer")
		}
		filter.Offset = offset
	}

	return filter, nil
}

// parseTokenID parses a token id path parameter, token ids start at 1
func parseTokenID(value string) (domain.TokenID, error) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid token id: %q", value)
	}
	return domain.TokenID(id), nil
}

// parseOptionalWei parses a wei amount where an empty value means zero
func parseOptionalWei(value string) (*big.Int, error) {
	if value == "" {
		return new(big.Int), nil
	}
	return domain.ParseWei(value)
}

// parseHash parses a 0x-prefixed 32 byte hex value
func parseHash(value string) (common.Hash, error) {
	b, err := hexutil.Decode(value)
	if err != nil {
		return common.Hash{}, fmt.Errorf("invalid hash %q: %w", value, err)
	}
	if len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid hash %q: expected %d bytes, got %d", value, common.HashLength, len(b))
	}
	return common.BytesToHash(b), nil
}

// parseProof parses the hex encoded proof hashes of a whitelist mint
func parseProof(values []string) ([]common.Hash, error) {
	proof := make([]common.Hash, 0, len(values))
	for i, v := range values {
		h, err := parseHash(v)
		if err != nil {
			return nil, fmt.Errorf("proof[%d]: %w", i, err)
		}
		proof = append(proof, h)
	}
	return proof, nil
}
