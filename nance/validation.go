// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package nance

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	errUnknownStatus    = errors.New("unknown proposal status")
	errMissingUUID      = errors.New("missing proposal uuid")
	errMissingTitle     = errors.New("missing proposal title")
	errMissingBody      = errors.New("missing proposal body")
	errInvalidAddress   = errors.New("invalid address")
	errInvalidSignature = errors.New("invalid signature")
)

// Verify checks the payload the way the proposal form does
func (p *ProposalPayload) Verify() error {
	switch {
	case p.UUID == "":
		return errMissingUUID
	case p.Title == "":
		return errMissingTitle
	case p.Body == "":
		return errMissingBody
	}
	_, err := ParseStatus(string(p.Status))
	return err
}

func (u *ProposalUpload) Verify() error {
	if err := u.Proposal.Verify(); err != nil {
		return err
	}
	return verifySigner(u.UploaderAddress, u.UploaderSignature)
}

func (d *ProposalDeletion) Verify() error {
	if d.UUID == "" {
		return errMissingUUID
	}
	return verifySigner(d.DeleterAddress, d.DeleterSignature)
}

func verifySigner(address, signature string) error {
	if !common.IsHexAddress(address) {
		return errInvalidAddress
	}
	if _, err := hexutil.Decode(signature); err != nil {
		return errInvalidSignature
	}
	return nil
}
