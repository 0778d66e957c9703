// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package explorer

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/lru"

	"github.com/chain4travel/nance/actions"
)

const (
	symbolMethod = "symbol"

	// DefaultSymbolCacheSize bounds the number of resolved symbols kept
	DefaultSymbolCacheSize = 256

	erc20SymbolABI = `[
		{"name":"symbol","type":"function","stateMutability":"view","inputs":[],"outputs":[{"type":"string"}]}
	]`
)

var (
	_ actions.TokenResolver = (*TokenSymbols)(nil)

	erc20Symbol = mustParseABI(erc20SymbolABI)

	errInvalidContract = errors.New("invalid token contract address")
	errEmptySymbol     = errors.New("empty token symbol")
)

// TokenSymbols resolves ERC-20 symbols on chain. The most recently used
// symbols are cached.
type TokenSymbols struct {
	reader  ChainReader
	symbols *lru.Cache[common.Address, string]
}

func NewTokenSymbols(reader ChainReader) *TokenSymbols {
	return NewTokenSymbolsWithSize(reader, DefaultSymbolCacheSize)
}

// NewTokenSymbolsWithSize returns a resolver caching at most [size] symbols
func NewTokenSymbolsWithSize(reader ChainReader, size int) *TokenSymbols {
	return &TokenSymbols{
		reader:  reader,
		symbols: lru.NewCache[common.Address, string](size),
	}
}

func (t *TokenSymbols) Symbol(ctx context.Context, contract string) (string, error) {
	if !common.IsHexAddress(contract) {
		return "", fmt.Errorf("%w: %q", errInvalidContract, contract)
	}
	address := common.HexToAddress(contract)

	if symbol, ok := t.symbols.Get(address); ok {
		return symbol, nil
	}

	symbol, err := t.fetch(ctx, address)
	if err != nil {
		return "", err
	}

	t.symbols.Add(address, symbol)
	return symbol, nil
}

func (t *TokenSymbols) fetch(ctx context.Context, address common.Address) (string, error) {
	data, err := erc20Symbol.Pack(symbolMethod)
	if err != nil {
		return "", err
	}
	out, err := t.reader.CallContract(ctx, ethereum.CallMsg{To: &address, Data: data}, nil)
	if err != nil {
		return "", fmt.Errorf("couldn't read symbol of %s: %w", address, err)
	}

	var symbol string
	if err := erc20Symbol.UnpackIntoInterface(&symbol, symbolMethod, out); err != nil {
		// tokens predating the standard, like MKR, return a bytes32
		if len(out) != common.HashLength {
			return "", fmt.Errorf("couldn't decode symbol of %s: %w", address, err)
		}
		symbol = string(bytes.TrimRight(out, "\x00"))
	}
	if symbol == "" {
		return "", fmt.Errorf("%w: %s", errEmptySymbol, address)
	}
	return symbol, nil
}
