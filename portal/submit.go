// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package portal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chain4travel/nance/actions"
	"github.com/chain4travel/nance/nance"
	"github.com/chain4travel/nance/signing"
)

// Submission is a proposal written by a user
type Submission struct {
	// Empty when the proposal is new
	UUID    string           `json:"uuid,omitempty"`
	Title   string           `json:"title"`
	Body    string           `json:"body"`
	Status  nance.Status     `json:"status,omitempty"`
	Actions []actions.Action `json:"actions,omitempty"`
}

// SubmitProposal appends the actions section to the body, signs the result
// and uploads it. The section is appended even without actions, and bodies
// that already contain one get a second one. A submission without UUID
// creates a proposal, one with a UUID updates it.
func (s *Service) SubmitProposal(ctx context.Context, space string, submission Submission) (*nance.UploadResult, error) {
	if space == "" {
		return nil, errMissingSpace
	}
	if s.signer == nil {
		return nil, errNoSignerWallet
	}

	update := submission.UUID != ""
	payload := nance.ProposalPayload{
		UUID:    submission.UUID,
		Title:   submission.Title,
		Body:    submission.Body,
		Status:  submission.Status,
		Actions: submission.Actions,
	}
	if payload.UUID == "" {
		payload.UUID = uuid.NewString()
	}
	if payload.Status == "" {
		payload.Status = nance.StatusDiscussion
	}
	if actions.HasActionsSection(payload.Body) {
		s.log.Warn("proposal body already has an actions section",
			zap.String("space", space),
			zap.String("uuid", payload.UUID),
		)
	}
	payload.Body = actions.AppendActions(payload.Body, payload.Actions)
	if err := payload.Verify(); err != nil {
		return nil, err
	}

	sig, err := s.signer.SignProposal(ctx, signing.ProposalMessage{
		UUID:   payload.UUID,
		Title:  payload.Title,
		Body:   payload.Body,
		Status: string(payload.Status),
	})
	if err != nil {
		return nil, err
	}

	upload := &nance.ProposalUpload{
		Proposal:          payload,
		UploaderAddress:   sig.Address.Hex(),
		UploaderSignature: sig.Signature,
	}
	var result *nance.UploadResult
	if update {
		result, err = s.nance.UpdateProposal(ctx, space, upload)
	} else {
		result, err = s.nance.CreateProposal(ctx, space, upload)
	}
	if err != nil {
		return nil, err
	}

	s.metrics.MarkProposalUploaded(update)
	s.log.Info("proposal uploaded",
		zap.String("space", space),
		zap.String("uuid", result.UUID),
		zap.Bool("update", update),
		zap.Int("actions", len(payload.Actions)),
	)
	return result, nil
}

// DeleteProposal signs the deletion of [uuid] and forwards it
func (s *Service) DeleteProposal(ctx context.Context, space, uuid string) error {
	switch {
	case space == "":
		return errMissingSpace
	case uuid == "":
		return errMissingProposal
	case s.signer == nil:
		return errNoSignerWallet
	}

	sig, err := s.signer.SignDelete(ctx, uuid)
	if err != nil {
		return err
	}
	err = s.nance.DeleteProposal(ctx, space, &nance.ProposalDeletion{
		UUID:             uuid,
		DeleterAddress:   sig.Address.Hex(),
		DeleterSignature: sig.Signature,
	})
	if err != nil {
		return fmt.Errorf("couldn't delete proposal %s: %w", uuid, err)
	}

	s.metrics.MarkProposalDeleted()
	s.log.Info("proposal deleted",
		zap.String("space", space),
		zap.String("uuid", uuid),
	)
	return nil
}
