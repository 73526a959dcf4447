package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-minter/internal/adapter"
	"github.com/feral-file/ff-minter/internal/config"
	"github.com/feral-file/ff-minter/internal/domain"
	"github.com/feral-file/ff-minter/internal/logger"
	"github.com/feral-file/ff-minter/internal/merkle"
	"github.com/feral-file/ff-minter/internal/registry"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: merkle-tool [flags] <command>

Commands:
  root               print the merkle root of the configured whitelist
  proof <address>    print the merkle proof of a whitelisted address

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	config.ChdirRepoRoot()
	cfg, err := config.LoadMerkleToolConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Initialize(logger.Config{Debug: cfg.Debug}); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	jsonAdapter := adapter.NewJSON()
	addrs, err := cfg.Collection.WhitelistAddresses(registry.NewWhitelistLoader(adapter.NewFileSystem(), jsonAdapter))
	if err != nil {
		exit(err)
	}

	out, err := run(jsonAdapter, addrs, flag.Args())
	if err != nil {
		exit(err)
	}

	fmt.Println(out)
}

// run executes a command against the whitelist and returns its output
func run(jsonAdapter adapter.JSON, addrs []common.Address, args []string) (string, error) {
	if len(addrs) == 0 {
		return "", errors.New("whitelist is empty: set collection.whitelist.addresses or collection.whitelist.addresses_path")
	}

	tree, err := merkle.NewTreeFromAddresses(addrs)
	if err != nil {
		return "", fmt.Errorf("failed to build whitelist tree: %w", err)
	}

	switch args[0] {
	case "root":
		return tree.Root().Hex(), nil

	case "proof":
		if len(args) != 2 {
			return "", errors.New("usage: merkle-tool proof <address>")
		}
		addr, err := domain.ParseAddress(args[1])
		if err != nil {
			return "", err
		}
		proof, err := tree.AddressProof(addr)
		if err != nil {
			return "", fmt.Errorf("%s: %w", addr.Hex(), err)
		}
		hexes := make([]string, len(proof))
		for i, h := range proof {
			hexes[i] = h.Hex()
		}
		out, err := jsonAdapter.MarshalIndent(hexes, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode proof: %w", err)
		}
		return string(out), nil

	default:
		return "", fmt.Errorf("unknown command %q", args[0])
	}
}

func exit(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
