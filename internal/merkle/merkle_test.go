package merkle

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddresses(n int) []common.Address {
	addrs := make([]common.Address, n)
	for i := range addrs {
		addrs[i] = common.HexToAddress(fmt.Sprintf("0x%040x", i+1))
	}
	return addrs
}

func TestLeaf(t *testing.T) {
	addr := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

	assert.Equal(t, crypto.Keccak256Hash(addr.Bytes()), Leaf(addr))
	assert.NotEqual(t, Leaf(addr), Leaf(common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")))
}

func TestHashPair_OrderIndependent(t *testing.T) {
	a := crypto.Keccak256Hash([]byte("a"))
	b := crypto.Keccak256Hash([]byte("b"))

	assert.Equal(t, HashPair(a, b), HashPair(b, a))

	lo, hi := a, b
	if lo.Big().Cmp(hi.Big()) > 0 {
		lo, hi = hi, lo
	}
	assert.Equal(t, crypto.Keccak256Hash(lo.Bytes(), hi.Bytes()), HashPair(a, b))
}

func TestNewTree_Empty(t *testing.T) {
	_, err := NewTree(nil)
	assert.ErrorIs(t, err, ErrEmptyTree)

	_, err = NewTreeFromAddresses([]common.Address{})
	assert.ErrorIs(t, err, ErrEmptyTree)
}

func TestNewTree_SingleLeaf(t *testing.T) {
	addr := testAddresses(1)[0]
	tree, err := NewTreeFromAddresses([]common.Address{addr})
	require.NoError(t, err)

	assert.Equal(t, Leaf(addr), tree.Root())

	proof, err := tree.AddressProof(addr)
	require.NoError(t, err)
	assert.Empty(t, proof)
	assert.True(t, Verify(proof, tree.Root(), Leaf(addr)))
}

func TestNewTree_OddLeafPromoted(t *testing.T) {
	addrs := testAddresses(3)
	tree, err := NewTreeFromAddresses(addrs)
	require.NoError(t, err)

	l0, l1, l2 := Leaf(addrs[0]), Leaf(addrs[1]), Leaf(addrs[2])
	assert.Equal(t, HashPair(HashPair(l0, l1), l2), tree.Root())

	proof, err := tree.AddressProof(addrs[2])
	require.NoError(t, err)
	assert.Equal(t, []common.Hash{HashPair(l0, l1)}, proof)
}

func TestTree_EveryProofVerifies(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 13, 32} {
		t.Run(fmt.Sprintf("%d leaves", n), func(t *testing.T) {
			addrs := testAddresses(n)
			tree, err := NewTreeFromAddresses(addrs)
			require.NoError(t, err)
			assert.Equal(t, n, tree.Leaves())

			for _, addr := range addrs {
				proof, err := tree.AddressProof(addr)
				require.NoError(t, err)
				assert.True(t, Verify(proof, tree.Root(), Leaf(addr)), "proof for %s", addr.Hex())
			}
		})
	}
}

func TestVerify_RejectsOtherLeaf(t *testing.T) {
	addrs := testAddresses(4)
	tree, err := NewTreeFromAddresses(addrs)
	require.NoError(t, err)

	proof, err := tree.AddressProof(addrs[0])
	require.NoError(t, err)

	outsider := common.HexToAddress("0x00000000000000000000000000000000deadbeef")
	assert.False(t, Verify(proof, tree.Root(), Leaf(outsider)))
	assert.False(t, Verify(proof, tree.Root(), Leaf(addrs[3])))
	assert.False(t, Verify(proof[:1], tree.Root(), Leaf(addrs[0])))
}

func TestTree_ProofForUnknownLeaf(t *testing.T) {
	tree, err := NewTreeFromAddresses(testAddresses(2))
	require.NoError(t, err)

	_, err = tree.AddressProof(common.HexToAddress("0x00000000000000000000000000000000deadbeef"))
	assert.ErrorIs(t, err, ErrLeafNotFound)
}
