package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/merkle"
)

var whitelist = []common.Address{
	common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
	common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"),
	common.HexToAddress("0x90F79bf6EB2c4f870365E785982E1f101E93b906"),
}

func TestRun_Root(t *testing.T) {
	tree, err := merkle.NewTreeFromAddresses(whitelist)
	require.NoError(t, err)

	out, err := run(adapter.NewJSON(), whitelist, []string{"root"})
	require.NoError(t, err)
	assert.Equal(t, tree.Root().Hex(), out)
}

func TestRun_Proof(t *testing.T) {
	tree, err := merkle.NewTreeFromAddresses(whitelist)
	require.NoError(t, err)
	proof, err := tree.AddressProof(whitelist[1])
	require.NoError(t, err)
	require.NotEmpty(t, proof)

	out, err := run(adapter.NewJSON(), whitelist, []string{"proof", strings.ToLower(whitelist[1].Hex())})
	require.NoError(t, err)

	var hexes []string
	require.NoError(t, json.Unmarshal([]byte(out), &hexes))
	require.Len(t, hexes, len(proof))
	for i, h := range proof {
		assert.Equal(t, h.Hex(), hexes[i])
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name          string
		addrs         []common.Address
		args          []string
		expectedError string
	}{
		{"empty whitelist", nil, []string{"root"}, "whitelist is empty"},
		{"missing address", whitelist, []string{"proof"}, "usage: merkle-tool proof <address>"},
		{"invalid address", whitelist, []string{"proof", "0x12"}, "invalid address"},
		{"not whitelisted", whitelist, []string{"proof", "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"}, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"},
		{"unknown command", whitelist, []string{"verify"}, `unknown command "verify"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(adapter.NewJSON(), tt.addrs, tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}
