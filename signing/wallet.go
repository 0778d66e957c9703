// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package signing

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// WalletStatus is the connection state of a wallet
type WalletStatus string

const (
	Connected    WalletStatus = "connected"
	Connecting   WalletStatus = "connecting"
	Reconnecting WalletStatus = "reconnecting"
	Disconnected WalletStatus = "disconnected"

	signatureLength = crypto.SignatureLength
	recoveryIDIndex = crypto.RecoveryIDOffset
	// wallets shift the recovery id by 27
	legacyRecoveryOffset = 27
)

var (
	_ Wallet = (*KeyWallet)(nil)

	errInvalidSignatureLength = errors.New("invalid signature length")
	errInvalidRecoveryID      = errors.New("invalid signature recovery id")
	errInvalidPrivateKey      = errors.New("invalid private key")
)

// Wallet signs EIP-712 typed data on behalf of [Address]
type Wallet interface {
	Status() WalletStatus
	Address() common.Address
	// SignTypedData returns a 65 bytes [R || S || V] signature, V being 27
	// or 28.
	SignTypedData(ctx context.Context, data apitypes.TypedData) ([]byte, error)
}

// KeyWallet is an always connected wallet backed by a private key
type KeyWallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func NewKeyWallet(key *ecdsa.PrivateKey) *KeyWallet {
	return &KeyWallet{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// ParseKeyWallet parses a hex encoded private key, with or without 0x prefix
func ParseKeyWallet(hexKey string) (*KeyWallet, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidPrivateKey, err)
	}
	return NewKeyWallet(key), nil
}

func (*KeyWallet) Status() WalletStatus {
	return Connected
}

func (w *KeyWallet) Address() common.Address {
	return w.address
}

func (w *KeyWallet) SignTypedData(ctx context.Context, data apitypes.TypedData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := TypedDataHash(data)
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(hash, w.key)
	if err != nil {
		return nil, err
	}
	sig[recoveryIDIndex] += legacyRecoveryOffset
	return sig, nil
}

// Recover returns the address that produced [sig] over [data]
func Recover(data apitypes.TypedData, sig []byte) (common.Address, error) {
	if len(sig) != signatureLength {
		return common.Address{}, fmt.Errorf("%w: %d", errInvalidSignatureLength, len(sig))
	}
	normalized := make([]byte, signatureLength)
	copy(normalized, sig)
	if normalized[recoveryIDIndex] >= legacyRecoveryOffset {
		normalized[recoveryIDIndex] -= legacyRecoveryOffset
	}
	if normalized[recoveryIDIndex] > 1 {
		return common.Address{}, fmt.Errorf("%w: %d", errInvalidRecoveryID, sig[recoveryIDIndex])
	}

	hash, err := TypedDataHash(data)
	if err != nil {
		return common.Address{}, err
	}
	pub, err := crypto.SigToPub(hash, normalized)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}
