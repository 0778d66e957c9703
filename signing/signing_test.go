// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package signing

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/chain4travel/nance/utils/logging"
)

const testKey = "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

var errTestWallet = errors.New("user rejected the request")

func testMessage() ProposalMessage {
	return ProposalMessage{
		UUID:   "8f5b5f3a0d6b4b2f9c1e0a7d3c2b1a00",
		Title:  "Fund the grants program",
		Body:   "Hello\n\n## Actions\n* Pay 1.5K USD for 3 cycles",
		Status: "Discussion",
	}
}

func TestTypedDataHash(t *testing.T) {
	require := require.New(t)

	proposalHash, err := TypedDataHash(NewProposalTypedData(testMessage()))
	require.NoError(err)
	require.Len(proposalHash, common.HashLength)

	again, err := TypedDataHash(NewProposalTypedData(testMessage()))
	require.NoError(err)
	require.Equal(proposalHash, again)

	changed := testMessage()
	changed.Status = "Draft"
	changedHash, err := TypedDataHash(NewProposalTypedData(changed))
	require.NoError(err)
	require.NotEqual(proposalHash, changedHash)

	deleteHash, err := TypedDataHash(NewDeleteTypedData(testMessage().UUID))
	require.NoError(err)
	require.NotEqual(proposalHash, deleteHash)
}

func TestTypedDataHashMissingDomainType(t *testing.T) {
	data := NewDeleteTypedData("uuid")
	data.Types = apitypes.Types{
		DeletePrimaryType: Types[DeletePrimaryType],
	}
	_, err := TypedDataHash(data)
	require.Error(t, err)
}

func TestParseKeyWallet(t *testing.T) {
	require := require.New(t)

	withPrefix, err := ParseKeyWallet(testKey)
	require.NoError(err)
	withoutPrefix, err := ParseKeyWallet(testKey[2:])
	require.NoError(err)
	require.Equal(withPrefix.Address(), withoutPrefix.Address())
	require.Equal(Connected, withPrefix.Status())

	_, err = ParseKeyWallet("0x1234")
	require.ErrorIs(err, errInvalidPrivateKey)
}

func TestKeyWalletRecover(t *testing.T) {
	wallet, err := ParseKeyWallet(testKey)
	require.NoError(t, err)

	tests := map[string]struct {
		data apitypes.TypedData
	}{
		"proposal": {data: NewProposalTypedData(testMessage())},
		"delete":   {data: NewDeleteTypedData(testMessage().UUID)},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			sig, err := wallet.SignTypedData(context.Background(), tt.data)
			require.NoError(err)
			require.Len(sig, crypto.SignatureLength)
			require.Contains([]byte{27, 28}, sig[crypto.RecoveryIDOffset])

			recovered, err := Recover(tt.data, sig)
			require.NoError(err)
			require.Equal(wallet.Address(), recovered)
		})
	}
}

func TestRecoverTamperedMessage(t *testing.T) {
	require := require.New(t)

	wallet, err := ParseKeyWallet(testKey)
	require.NoError(err)
	sig, err := wallet.SignTypedData(context.Background(), NewProposalTypedData(testMessage()))
	require.NoError(err)

	tampered := testMessage()
	tampered.Body = "Hello"
	recovered, err := Recover(NewProposalTypedData(tampered), sig)
	require.NoError(err)
	require.NotEqual(wallet.Address(), recovered)

	_, err = Recover(NewProposalTypedData(testMessage()), sig[:64])
	require.ErrorIs(err, errInvalidSignatureLength)

	badV := append([]byte{}, sig...)
	badV[crypto.RecoveryIDOffset] = 30
	_, err = Recover(NewProposalTypedData(testMessage()), badV)
	require.ErrorIs(err, errInvalidRecoveryID)
}

func TestKeyWalletCanceledContext(t *testing.T) {
	wallet, err := ParseKeyWallet(testKey)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = wallet.SignTypedData(ctx, NewDeleteTypedData("uuid"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestSigner(t *testing.T) {
	address := common.HexToAddress("0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1")

	tests := map[string]struct {
		wallet      func(*gomock.Controller) Wallet
		expected    *Signature
		expectedErr error
	}{
		"signed": {
			wallet: func(ctrl *gomock.Controller) Wallet {
				wallet := NewMockWallet(ctrl)
				wallet.EXPECT().Status().Return(Connected)
				wallet.EXPECT().SignTypedData(gomock.Any(), NewDeleteTypedData("uuid")).Return([]byte{0xab, 0xcd}, nil)
				wallet.EXPECT().Address().Return(address)
				return wallet
			},
			expected: &Signature{Address: address, Signature: "0xabcd"},
		},
		"disconnected wallet is not asked to sign": {
			wallet: func(ctrl *gomock.Controller) Wallet {
				wallet := NewMockWallet(ctrl)
				wallet.EXPECT().Status().Return(Disconnected)
				return wallet
			},
			expectedErr: ErrWalletNotConnected,
		},
		"reconnecting wallet": {
			wallet: func(ctrl *gomock.Controller) Wallet {
				wallet := NewMockWallet(ctrl)
				wallet.EXPECT().Status().Return(Reconnecting)
				return wallet
			},
			expectedErr: ErrWalletNotConnected,
		},
		"wallet error": {
			wallet: func(ctrl *gomock.Controller) Wallet {
				wallet := NewMockWallet(ctrl)
				wallet.EXPECT().Status().Return(Connected)
				wallet.EXPECT().SignTypedData(gomock.Any(), gomock.Any()).Return(nil, errTestWallet)
				return wallet
			},
			expectedErr: errTestWallet,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			ctrl := gomock.NewController(t)

			signer := NewSigner(logging.NoLog{}, tt.wallet(ctrl))
			sig, err := signer.SignDelete(context.Background(), "uuid")
			require.ErrorIs(err, tt.expectedErr)
			require.Equal(tt.expected, sig)
		})
	}
}
