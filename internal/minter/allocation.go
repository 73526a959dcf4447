package minter

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-minter/internal/domain"
)

// CheckAmount fails with ErrInvalidAmount for a zero amount or one above perTxCap
func CheckAmount(count uint64, perTxCap uint64) error {
	if count == 0 || count > perTxCap {
		return domain.ErrInvalidAmount
	}
	return nil
}

// AllocationGuard tracks how many tokens each address minted through the capped paths
type AllocationGuard struct {
	minted map[common.Address]uint64
}

// NewAllocationGuard creates an empty guard
func NewAllocationGuard() *AllocationGuard {
	return &AllocationGuard{minted: make(map[common.Address]uint64)}
}

// MintedBy returns the running count of addr
func (g *AllocationGuard) MintedBy(addr common.Address) uint64 {
	return g.minted[addr]
}

// CheckAndReserve validates the request against both caps and adds count to
// the running count of addr. The returned undo removes the reservation.
func (g *AllocationGuard) CheckAndReserve(addr common.Address, count, perTxCap, perAddressCap uint64) (func(), error) {
	if err := CheckAmount(count, perTxCap); err != nil {
		return nil, err
	}

	prior := g.minted[addr]
	// The cap may have been lowered below prior by the administrator
	if prior >= perAddressCap || count > perAddressCap-prior {
		return nil, domain.ErrAddressCapExceeded
	}

	g.minted[addr] = prior + count
	return func() {
		if prior == 0 {
			delete(g.minted, addr)
			return
		}
		g.minted[addr] = prior
	}, nil
}

// Restore adds count tokens minted in an earlier run to the running count of addr
func (g *AllocationGuard) Restore(addr common.Address, count uint64) {
	if count == 0 {
		return
	}
	g.minted[addr] += count
}
