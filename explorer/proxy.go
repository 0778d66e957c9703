// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package explorer

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/chain4travel/nance/utils/logging"
)

const (
	masterCopyMethod     = "masterCopy"
	implementationMethod = "implementation"

	addressGetterABI = `[
		{"name":"masterCopy","type":"function","stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]},
		{"name":"implementation","type":"function","stateMutability":"view","inputs":[],"outputs":[{"type":"address"}]}
	]`
)

var (
	// bytes32(uint256(keccak256("eip1967.proxy.implementation")) - 1)
	eip1967ImplementationSlot = common.HexToHash("0x360894a13ba1a3210667c828492db98dca3e2076cc3735a920a3ca505d382bbc")

	addressGetters = mustParseABI(addressGetterABI)

	ErrUnsupportedProxy   = errors.New("unsupported proxy pattern")
	errZeroImplementation = errors.New("zero implementation address")
)

// ChainReader reads contract state. *ethclient.Client satisfies it.
type ChainReader interface {
	StorageAt(ctx context.Context, account common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// ContractABI is the ABI to call a contract with. For proxies, ABI is the
// one of the implementation.
type ContractABI struct {
	Address        common.Address
	Implementation common.Address
	ABI            abi.ABI
	JSON           string
}

// IsProxy reports whether calls are forwarded to another contract
func (c *ContractABI) IsProxy() bool {
	return c.Implementation != c.Address
}

// Function returns the method [name] of the ABI
func (c *ContractABI) Function(name string) (abi.Method, bool) {
	method, ok := c.ABI.Methods[name]
	return method, ok
}

// Resolver looks up contract ABIs, following EIP-1967 proxies, Safe proxies
// and EIP-897 delegate proxies to their implementation.
type Resolver struct {
	log    logging.Logger
	client Client
	reader ChainReader
}

func NewResolver(log logging.Logger, client Client, reader ChainReader) *Resolver {
	return &Resolver{
		log:    log,
		client: client,
		reader: reader,
	}
}

// ResolveABI returns the ABI to call [address] with
func (r *Resolver) ResolveABI(ctx context.Context, address common.Address) (*ContractABI, error) {
	contract, err := r.fetch(ctx, address)
	if err != nil {
		return nil, err
	}

	implementation, isProxy, err := r.implementation(ctx, contract)
	if err != nil {
		return nil, err
	}
	if !isProxy {
		return contract, nil
	}

	r.log.Debug("resolved proxy",
		zap.Stringer("proxy", address),
		zap.Stringer("implementation", implementation),
	)
	resolved, err := r.fetch(ctx, implementation)
	if err != nil {
		return nil, fmt.Errorf("couldn't fetch implementation of %s: %w", address, err)
	}
	resolved.Address = address
	return resolved, nil
}

func (r *Resolver) fetch(ctx context.Context, address common.Address) (*ContractABI, error) {
	raw, err := r.client.GetABI(ctx, address)
	if err != nil {
		return nil, err
	}
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("couldn't parse ABI of %s: %w", address, err)
	}
	return &ContractABI{
		Address:        address,
		Implementation: address,
		ABI:            parsed,
		JSON:           raw,
	}, nil
}

// implementation returns the contract [contract] forwards calls to
func (r *Resolver) implementation(ctx context.Context, contract *ContractABI) (common.Address, bool, error) {
	if len(contract.ABI.Methods) == 0 {
		slot, err := r.reader.StorageAt(ctx, contract.Address, eip1967ImplementationSlot, nil)
		if err != nil {
			return common.Address{}, false, err
		}
		if implementation := common.BytesToAddress(slot); implementation != (common.Address{}) {
			return implementation, true, nil
		}

		// proxies without any function, like the Safe proxy
		implementation, err := r.callAddressGetter(ctx, contract.Address, masterCopyMethod)
		if err != nil {
			r.log.Warn("unsupported proxy",
				zap.Stringer("address", contract.Address),
				zap.Error(err),
			)
			return common.Address{}, false, fmt.Errorf("%w: %s", ErrUnsupportedProxy, contract.Address)
		}
		return implementation, true, nil
	}

	method, ok := contract.ABI.Methods[implementationMethod]
	if !ok || len(method.Inputs) != 0 {
		return common.Address{}, false, nil
	}
	implementation, err := r.callAddressGetter(ctx, contract.Address, implementationMethod)
	if err != nil {
		r.log.Warn("unsupported proxy",
			zap.Stringer("address", contract.Address),
			zap.Error(err),
		)
		return common.Address{}, false, fmt.Errorf("%w: %s", ErrUnsupportedProxy, contract.Address)
	}
	return implementation, implementation != contract.Address, nil
}

func (r *Resolver) callAddressGetter(ctx context.Context, address common.Address, method string) (common.Address, error) {
	data, err := addressGetters.Pack(method)
	if err != nil {
		return common.Address{}, err
	}
	out, err := r.reader.CallContract(ctx, ethereum.CallMsg{To: &address, Data: data}, nil)
	if err != nil {
		return common.Address{}, err
	}
	var implementation common.Address
	if err := addressGetters.UnpackIntoInterface(&implementation, method, out); err != nil {
		return common.Address{}, err
	}
	if implementation == (common.Address{}) {
		return common.Address{}, errZeroImplementation
	}
	return implementation, nil
}

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}
