// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package signing

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

const (
	DomainName    = "Nance"
	DomainVersion = "1"

	ProposalPrimaryType = "Proposal"
	DeletePrimaryType   = "DeleteProposal"

	domainPrimaryType = "EIP712Domain"
)

var (
	// Domain is shared by every proposal signature
	Domain = apitypes.TypedDataDomain{
		Name:    DomainName,
		Version: DomainVersion,
	}

	// DomainType describes a domain carrying a name and a version only
	DomainType = []apitypes.Type{
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
	}

	// Types of the proposal lifecycle messages
	Types = apitypes.Types{
		domainPrimaryType: DomainType,
		ProposalPrimaryType: {
			{Name: "uuid", Type: "string"},
			{Name: "title", Type: "string"},
			{Name: "body", Type: "string"},
			{Name: "status", Type: "string"},
		},
		DeletePrimaryType: {
			{Name: "uuid", Type: "string"},
		},
	}
)

// ProposalMessage holds the signed fields of a proposal. Body is the body
// as uploaded, actions section included.
type ProposalMessage struct {
	UUID   string
	Title  string
	Body   string
	Status string
}

// NewProposalTypedData returns the envelope signed when a proposal is
// created or updated.
func NewProposalTypedData(msg ProposalMessage) apitypes.TypedData {
	return apitypes.TypedData{
		Types:       Types,
		PrimaryType: ProposalPrimaryType,
		Domain:      Domain,
		Message: apitypes.TypedDataMessage{
			"uuid":   msg.UUID,
			"title":  msg.Title,
			"body":   msg.Body,
			"status": msg.Status,
		},
	}
}

// NewDeleteTypedData returns the envelope signed when a proposal is deleted
func NewDeleteTypedData(uuid string) apitypes.TypedData {
	return apitypes.TypedData{
		Types:       Types,
		PrimaryType: DeletePrimaryType,
		Domain:      Domain,
		Message: apitypes.TypedDataMessage{
			"uuid": uuid,
		},
	}
}

// TypedDataHash returns the EIP-712 digest of [data]:
// keccak256("\x19\x01" || domainSeparator || hashStruct(message)).
// [data] must declare the EIP712Domain type.
func TypedDataHash(data apitypes.TypedData) ([]byte, error) {
	domainSeparator, err := data.HashStruct(domainPrimaryType, data.Domain.Map())
	if err != nil {
		return nil, fmt.Errorf("couldn't hash domain: %w", err)
	}
	messageHash, err := data.HashStruct(data.PrimaryType, data.Message)
	if err != nil {
		return nil, fmt.Errorf("couldn't hash %s message: %w", data.PrimaryType, err)
	}
	raw := make([]byte, 0, 2+len(domainSeparator)+len(messageHash))
	raw = append(raw, 0x19, 0x01)
	raw = append(raw, domainSeparator...)
	raw = append(raw, messageHash...)
	return crypto.Keccak256(raw), nil
}

// EncodeSignature renders [sig] the way wallets return it
func EncodeSignature(sig []byte) string {
	return hexutil.Encode(sig)
}
