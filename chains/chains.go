// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package chains

import (
	"errors"
	"fmt"
)

var ErrUnknownChain = errors.New("unknown chain")

// Chain is a network spaces can hold their treasury on
type Chain struct {
	ID           uint64
	Name         string
	DisplayName  string
	NativeSymbol string
	RPCURL       string
	ExplorerURL  string
	// Etherscan compatible API
	ExplorerAPIURL string
	// Safe transaction service network name
	SafeNetwork string
}

var (
	Mainnet = Chain{
		ID:             1,
		Name:           "mainnet",
		DisplayName:    "Ethereum",
		NativeSymbol:   "ETH",
		RPCURL:         "https://cloudflare-eth.com",
		ExplorerURL:    "https://etherscan.io",
		ExplorerAPIURL: "https://api.etherscan.io/api",
		SafeNetwork:    "mainnet",
	}
	Goerli = Chain{
		ID:             5,
		Name:           "goerli",
		DisplayName:    "Goerli",
		NativeSymbol:   "ETH",
		RPCURL:         "https://rpc.ankr.com/eth_goerli",
		ExplorerURL:    "https://goerli.etherscan.io",
		ExplorerAPIURL: "https://api-goerli.etherscan.io/api",
		SafeNetwork:    "goerli",
	}
	Optimism = Chain{
		ID:             10,
		Name:           "optimism",
		DisplayName:    "OP Mainnet",
		NativeSymbol:   "ETH",
		RPCURL:         "https://mainnet.optimism.io",
		ExplorerURL:    "https://optimistic.etherscan.io",
		ExplorerAPIURL: "https://api-optimistic.etherscan.io/api",
		SafeNetwork:    "optimism",
	}
	Gnosis = Chain{
		ID:             100,
		Name:           "gnosis",
		DisplayName:    "Gnosis",
		NativeSymbol:   "xDAI",
		RPCURL:         "https://rpc.gnosischain.com",
		ExplorerURL:    "https://gnosisscan.io",
		ExplorerAPIURL: "https://api.gnosisscan.io/api",
		SafeNetwork:    "gnosis-chain",
	}

	// All lists the supported chains
	All = []Chain{Mainnet, Goerli, Optimism, Gnosis}
)

// ByID returns the chain [id], falling back to mainnet for unknown ids
func ByID(id uint64) Chain {
	for _, chain := range All {
		if chain.ID == id {
			return chain
		}
	}
	return Mainnet
}

// ByName returns the chain called [name]. An empty name is mainnet.
func ByName(name string) (Chain, error) {
	if name == "" {
		return Mainnet, nil
	}
	for _, chain := range All {
		if chain.Name == name {
			return chain, nil
		}
	}
	return Chain{}, fmt.Errorf("%w: %q", ErrUnknownChain, name)
}

// AddressURL links [address] on the block explorer
func (c Chain) AddressURL(address string) string {
	return c.ExplorerURL + "/address/" + address
}
