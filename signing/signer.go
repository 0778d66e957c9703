// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package signing

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"go.uber.org/zap"

	"github.com/chain4travel/nance/utils/logging"
)

var ErrWalletNotConnected = errors.New("wallet not connected")

// Signature is a signature together with the address it was produced by
type Signature struct {
	Address   common.Address
	Signature string
}

// Signer produces proposal signatures with a wallet. Signing is attempted
// once; a wallet that is not connected fails immediately.
type Signer struct {
	log    logging.Logger
	wallet Wallet
}

func NewSigner(log logging.Logger, wallet Wallet) *Signer {
	return &Signer{
		log:    log,
		wallet: wallet,
	}
}

// Wallet returns the wallet signatures are requested from
func (s *Signer) Wallet() Wallet {
	return s.wallet
}

// SignProposal signs the creation or update of a proposal
func (s *Signer) SignProposal(ctx context.Context, msg ProposalMessage) (*Signature, error) {
	return s.Sign(ctx, NewProposalTypedData(msg))
}

// SignDelete signs the deletion of the proposal [uuid]
func (s *Signer) SignDelete(ctx context.Context, uuid string) (*Signature, error) {
	return s.Sign(ctx, NewDeleteTypedData(uuid))
}

// Sign requests a signature of [data] from the wallet
func (s *Signer) Sign(ctx context.Context, data apitypes.TypedData) (*Signature, error) {
	if status := s.wallet.Status(); status != Connected {
		return nil, fmt.Errorf("%w: wallet %s", ErrWalletNotConnected, status)
	}

	sig, err := s.wallet.SignTypedData(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("couldn't sign %s: %w", data.PrimaryType, err)
	}

	address := s.wallet.Address()
	s.log.Debug("signed typed data",
		zap.String("primaryType", data.PrimaryType),
		zap.Stringer("address", address),
	)
	return &Signature{
		Address:   address,
		Signature: EncodeSignature(sig),
	}, nil
}
