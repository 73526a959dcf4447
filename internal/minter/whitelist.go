package minter

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/merkle"
)

// WhitelistAuthority decides whether an address may mint during the presale.
// The contract is agnostic to which strategy is active.
type WhitelistAuthority interface {
	// Mode returns the authorization strategy
	Mode() domain.WhitelistMode
	// Authorize checks that addr may mint count tokens. The list strategy ignores
	// the proof. The returned undo reverts any claim recorded by the call.
	Authorize(addr common.Address, proof []common.Hash, count uint64) (func(), error)
	// IsWhitelisted reports membership without a proof where the strategy allows it
	IsWhitelisted(addr common.Address) bool
}

// ExplicitWhitelist authorizes addresses registered by the administrator
type ExplicitWhitelist struct {
	members map[common.Address]struct{}
}

// NewExplicitWhitelist creates a whitelist holding addrs
func NewExplicitWhitelist(addrs ...common.Address) *ExplicitWhitelist {
	w := &ExplicitWhitelist{members: make(map[common.Address]struct{}, len(addrs))}
	w.Add(addrs...)
	return w
}

func (w *ExplicitWhitelist) Mode() domain.WhitelistMode {
	return domain.WhitelistModeList
}

// Add registers addrs and returns how many were not listed before
func (w *ExplicitWhitelist) Add(addrs ...common.Address) int {
	added := 0
	for _, addr := range addrs {
		if _, ok := w.members[addr]; ok {
			continue
		}
		w.members[addr] = struct{}{}
		added++
	}
	return added
}

// Size returns the number of listed addresses
func (w *ExplicitWhitelist) Size() int {
	return len(w.members)
}

func (w *ExplicitWhitelist) IsWhitelisted(addr common.Address) bool {
	_, ok := w.members[addr]
	return ok
}

func (w *ExplicitWhitelist) Authorize(addr common.Address, _ []common.Hash, _ uint64) (func(), error) {
	if !w.IsWhitelisted(addr) {
		return nil, domain.ErrNotWhitelisted
	}
	return nil, nil
}

// MerkleWhitelist authorizes addresses proven against a stored merkle root and
// caps how many whitelist tokens each address may claim.
type MerkleWhitelist struct {
	root    common.Hash
	cap     uint64
	claimed map[common.Address]uint64
}

// NewMerkleWhitelist creates a whitelist for root allowing maxClaim tokens per address
func NewMerkleWhitelist(root common.Hash, maxClaim uint64) *MerkleWhitelist {
	return &MerkleWhitelist{
		root:    root,
		cap:     maxClaim,
		claimed: make(map[common.Address]uint64),
	}
}

func (w *MerkleWhitelist) Mode() domain.WhitelistMode {
	return domain.WhitelistModeMerkle
}

// Root returns the stored root
func (w *MerkleWhitelist) Root() common.Hash {
	return w.root
}

// SetRoot replaces the root. Existing claim counters are kept.
func (w *MerkleWhitelist) SetRoot(root common.Hash) {
	w.root = root
}

// Cap returns the per-address whitelist allowance
func (w *MerkleWhitelist) Cap() uint64 {
	return w.cap
}

// SetCap replaces the per-address whitelist allowance
func (w *MerkleWhitelist) SetCap(maxClaim uint64) {
	w.cap = maxClaim
}

// Claimed returns how many whitelist tokens addr has claimed
func (w *MerkleWhitelist) Claimed(addr common.Address) uint64 {
	return w.claimed[addr]
}

// Restore adds count tokens claimed in an earlier run to the claim counter of addr.
// The cap is not checked.
func (w *MerkleWhitelist) Restore(addr common.Address, count uint64) {
	if count == 0 {
		return
	}
	w.claimed[addr] += count
}

// IsWhitelisted is always false: membership can only be shown with a proof
func (w *MerkleWhitelist) IsWhitelisted(common.Address) bool {
	return false
}

func (w *MerkleWhitelist) Authorize(addr common.Address, proof []common.Hash, count uint64) (func(), error) {
	if !merkle.Verify(proof, w.root, merkle.Leaf(addr)) {
		return nil, domain.ErrInvalidProof
	}

	prior := w.claimed[addr]
	if prior >= w.cap || count > w.cap-prior {
		return nil, domain.ErrWhitelistCapExceeded
	}

	w.claimed[addr] = prior + count
	return func() {
		if prior == 0 {
			delete(w.claimed, addr)
			return
		}
		w.claimed[addr] = prior
	}, nil
}
