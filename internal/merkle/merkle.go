// Package merkle builds and verifies whitelist merkle trees.
//
// Leaves are keccak256 hashes of the 20 address bytes. Pairs are sorted before
// hashing so a proof carries no left/right flags, and an odd trailing node is
// promoted unchanged to the next layer. This matches merkletreejs with
// sortPairs enabled and OpenZeppelin's MerkleProof.verify.
package merkle

import (
	"bytes"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	// ErrEmptyTree is returned when building a tree without leaves
	ErrEmptyTree = errors.New("merkle tree has no leaves")

	// ErrLeafNotFound is returned when requesting a proof for a leaf outside the tree
	ErrLeafNotFound = errors.New("leaf not found in merkle tree")
)

// Leaf returns the leaf hash of an address
func Leaf(addr common.Address) common.Hash {
	return crypto.Keccak256Hash(addr.Bytes())
}

// HashPair hashes two nodes in ascending byte order
func HashPair(a, b common.Hash) common.Hash {
	if bytes.Compare(a.Bytes(), b.Bytes()) > 0 {
		a, b = b, a
	}
	return crypto.Keccak256Hash(a.Bytes(), b.Bytes())
}

// Verify reports whether proof reconstructs root from leaf
func Verify(proof []common.Hash, root common.Hash, leaf common.Hash) bool {
	computed := leaf
	for _, node := range proof {
		computed = HashPair(computed, node)
	}
	return computed == root
}

// Tree is an immutable merkle tree. layers[0] holds the leaves, the last layer the root.
type Tree struct {
	layers [][]common.Hash
	index  map[common.Hash]int
}

// NewTree builds a tree over already hashed leaves, keeping their order
func NewTree(leaves []common.Hash) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyTree
	}

	base := make([]common.Hash, len(leaves))
	copy(base, leaves)

	t := &Tree{
		layers: [][]common.Hash{base},
		index:  make(map[common.Hash]int, len(base)),
	}
	for i := len(base) - 1; i >= 0; i-- {
		t.index[base[i]] = i // first occurrence wins
	}

	nodes := base
	for len(nodes) > 1 {
		next := make([]common.Hash, 0, (len(nodes)+1)/2)
		for i := 0; i < len(nodes); i += 2 {
			if i+1 == len(nodes) {
				next = append(next, nodes[i])
				continue
			}
			next = append(next, HashPair(nodes[i], nodes[i+1]))
		}
		t.layers = append(t.layers, next)
		nodes = next
	}

	return t, nil
}

// NewTreeFromAddresses builds a tree whose leaves are the hashes of addrs
func NewTreeFromAddresses(addrs []common.Address) (*Tree, error) {
	leaves := make([]common.Hash, len(addrs))
	for i, addr := range addrs {
		leaves[i] = Leaf(addr)
	}
	return NewTree(leaves)
}

// Root returns the root hash
func (t *Tree) Root() common.Hash {
	return t.layers[len(t.layers)-1][0]
}

// Leaves returns the number of leaves
func (t *Tree) Leaves() int {
	return len(t.layers[0])
}

// Proof returns the sibling path from leaf up to, but excluding, the root
func (t *Tree) Proof(leaf common.Hash) ([]common.Hash, error) {
	idx, ok := t.index[leaf]
	if !ok {
		return nil, ErrLeafNotFound
	}

	proof := make([]common.Hash, 0, len(t.layers)-1)
	for _, layer := range t.layers[:len(t.layers)-1] {
		sibling := idx + 1
		if idx%2 == 1 {
			sibling = idx - 1
		}
		if sibling < len(layer) {
			proof = append(proof, layer[sibling])
		}
		idx /= 2
	}

	return proof, nil
}

// AddressProof returns the proof for the leaf of addr
func (t *Tree) AddressProof(addr common.Address) ([]common.Hash, error) {
	return t.Proof(Leaf(addr))
}
