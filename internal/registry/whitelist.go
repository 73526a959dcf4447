package registry

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/domain"
)

// WhitelistLoader defines the interface for loading whitelist files
//
//go:generate mockgen -source=whitelist.go -destination=../mocks/whitelist_loader.go -package=mocks -mock_names=WhitelistLoader=MockWhitelistLoader
type WhitelistLoader interface {
	// Load reads a JSON array of hex addresses and returns them deduplicated,
	// in file order
	Load(filePath string) ([]common.Address, error)
}

// whitelistLoader is the internal implementation of WhitelistLoader interface
type whitelistLoader struct {
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewWhitelistLoader creates a new WhitelistLoader with injected dependencies
func NewWhitelistLoader(fs adapter.FileSystem, json adapter.JSON) WhitelistLoader {
	return &whitelistLoader{
		fs:   fs,
		json: json,
	}
}

// Load loads the whitelist from a JSON file
func (l *whitelistLoader) Load(filePath string) ([]common.Address, error) {
	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read whitelist file: %w", err)
	}

	var entries []string
	if err := l.json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse whitelist JSON: %w", err)
	}

	return ParseAddresses(entries)
}

// ParseAddresses validates hex addresses and drops duplicates, keeping the first occurrence
func ParseAddresses(entries []string) ([]common.Address, error) {
	seen := make(map[common.Address]bool, len(entries))
	addrs := make([]common.Address, 0, len(entries))
	for i, entry := range entries {
		addr, err := domain.ParseAddress(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid whitelist entry %d (%q): %w", i, entry, err)
		}
		if seen[addr] {
			continue
		}
		seen[addr] = true
		addrs = append(addrs, addr)
	}

	return addrs, nil
}
