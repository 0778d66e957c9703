// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/chain4travel/nance/actions"
	"github.com/chain4travel/nance/nance"
	"github.com/chain4travel/nance/portal"
	"github.com/chain4travel/nance/snapshot"
	"github.com/chain4travel/nance/utils/logging"
)

// Service is the JSON-RPC API of the portal
type Service struct {
	log    logging.Logger
	portal Portal
}

type SpaceArgs struct {
	Space string `json:"space"`
}

type GetSpaceArgs struct {
	Space   string `json:"space"`
	Keyword string `json:"keyword"`
	Cycle   string `json:"cycle"`
	Page    int    `json:"page"`
}

type GetProposalArgs struct {
	Space    string `json:"space"`
	Proposal string `json:"proposal"`
}

type GetSpacesReply struct {
	Spaces []nance.SpaceInfo `json:"spaces"`
}

// GetSpaces lists every space
func (s *Service) GetSpaces(r *http.Request, _ *struct{}, reply *GetSpacesReply) error {
	s.log.Debug("API called",
		zap.String("service", serviceName),
		zap.String("method", "getSpaces"),
	)

	spaces, err := s.portal.LoadSpaces(r.Context())
	if err != nil {
		return err
	}
	reply.Spaces = spaces
	return nil
}

// GetSpace returns the space page of [args.Space]
func (s *Service) GetSpace(r *http.Request, args *GetSpaceArgs, reply *portal.SpaceView) error {
	s.log.Debug("API called",
		zap.String("service", serviceName),
		zap.String("method", "getSpace"),
		zap.String("space", args.Space),
	)

	view, err := s.portal.LoadSpace(r.Context(), args.Space, portal.SpaceQuery{
		Keyword: args.Keyword,
		Cycle:   args.Cycle,
		Page:    args.Page,
	})
	if err != nil {
		return err
	}
	*reply = *view
	return nil
}

// GetProposal returns the proposal page of [args.Proposal]
func (s *Service) GetProposal(r *http.Request, args *GetProposalArgs, reply *portal.ProposalView) error {
	s.log.Debug("API called",
		zap.String("service", serviceName),
		zap.String("method", "getProposal"),
		zap.String("space", args.Space),
		zap.String("proposal", args.Proposal),
	)

	view, err := s.portal.LoadProposal(r.Context(), args.Space, args.Proposal)
	if err != nil {
		return err
	}
	*reply = *view
	return nil
}

// GetSchedule returns the governance schedule of [args.Space]
func (s *Service) GetSchedule(r *http.Request, args *SpaceArgs, reply *portal.ScheduleView) error {
	s.log.Debug("API called",
		zap.String("service", serviceName),
		zap.String("method", "getSchedule"),
		zap.String("space", args.Space),
	)

	view, err := s.portal.Schedule(r.Context(), args.Space)
	if err != nil {
		return err
	}
	*reply = *view
	return nil
}

type LabelActionsArgs struct {
	Actions []actions.Action `json:"actions"`
}

type LabelActionsReply struct {
	Labels   []string `json:"labels"`
	Markdown string   `json:"markdown"`
}

// LabelActions renders [args.Actions] the way they are appended to a
// proposal body
func (s *Service) LabelActions(_ *http.Request, args *LabelActionsArgs, reply *LabelActionsReply) error {
	s.log.Debug("API called",
		zap.String("service", serviceName),
		zap.String("method", "labelActions"),
	)

	reply.Labels = make([]string, len(args.Actions))
	for i, action := range args.Actions {
		reply.Labels[i] = actions.ToMarkdown(action)
	}
	reply.Markdown = actions.ActionsMarkdown(args.Actions)
	return nil
}

type SubmitProposalArgs struct {
	Space      string            `json:"space"`
	Submission portal.Submission `json:"proposal"`
}

// SubmitProposal signs and uploads a proposal with the wallet of the server
func (s *Service) SubmitProposal(r *http.Request, args *SubmitProposalArgs, reply *nance.UploadResult) error {
	s.log.Debug("API called",
		zap.String("service", serviceName),
		zap.String("method", "submitProposal"),
		zap.String("space", args.Space),
	)

	result, err := s.portal.SubmitProposal(r.Context(), args.Space, args.Submission)
	if err != nil {
		return fmt.Errorf("couldn't submit proposal: %w", err)
	}
	*reply = *result
	return nil
}

type DeleteProposalArgs struct {
	Space string `json:"space"`
	UUID  string `json:"uuid"`
}

type SuccessReply struct {
	Success bool `json:"success"`
}

// DeleteProposal signs and forwards the deletion of [args.UUID]
func (s *Service) DeleteProposal(r *http.Request, args *DeleteProposalArgs, reply *SuccessReply) error {
	s.log.Debug("API called",
		zap.String("service", serviceName),
		zap.String("method", "deleteProposal"),
		zap.String("space", args.Space),
		zap.String("uuid", args.UUID),
	)

	if err := s.portal.DeleteProposal(r.Context(), args.Space, args.UUID); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

// CastVote signs and relays a vote with the wallet of the server
func (s *Service) CastVote(r *http.Request, args *portal.Ballot, reply *snapshot.Receipt) error {
	s.log.Debug("API called",
		zap.String("service", serviceName),
		zap.String("method", "castVote"),
		zap.String("space", args.Space),
		zap.String("proposal", args.Proposal),
	)

	receipt, err := s.portal.CastVote(r.Context(), *args)
	if err != nil {
		return fmt.Errorf("couldn't cast vote: %w", err)
	}
	*reply = *receipt
	return nil
}
