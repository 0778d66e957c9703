// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package portal

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chain4travel/nance/actions"
	"github.com/chain4travel/nance/nance"
	"github.com/chain4travel/nance/snapshot"
)

// ActionView is an action along with its rendered label
type ActionView struct {
	UUID  string       `json:"uuid"`
	Type  actions.Type `json:"type"`
	Label string       `json:"label"`
}

// ProposalView is the data shown on the page of a proposal
type ProposalView struct {
	Proposal *nance.Proposal  `json:"proposal"`
	Space    *nance.SpaceInfo `json:"spaceInfo"`
	Actions  []ActionView     `json:"actions"`
	// Only loaded when the proposal carries a payout
	CycleStageLengths []int `json:"cycleStageLengths,omitempty"`
	// Only loaded when the proposal went to a vote
	Voting *snapshot.ProposalVotingInfo `json:"votingInfo,omitempty"`
	Votes  []snapshot.LabeledVote       `json:"votes"`
}

// LoadProposal fetches the proposal [id] of [space], then concurrently the
// space, its configuration when a payout needs the cycle schedule, and the
// votes of the proposal.
func (s *Service) LoadProposal(ctx context.Context, space, id string) (*ProposalView, error) {
	switch {
	case space == "":
		return nil, errMissingSpace
	case id == "":
		return nil, errMissingProposal
	}

	proposal, err := s.nance.GetProposal(ctx, space, id)
	if err != nil {
		return nil, fmt.Errorf("couldn't load proposal %s: %w", id, err)
	}

	view := &ProposalView{
		Proposal: proposal,
		Votes:    []snapshot.LabeledVote{},
	}
	var votes *snapshot.ProposalVotes
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		info, err := s.nance.GetSpace(gctx, space)
		if err != nil {
			return fmt.Errorf("couldn't load space %s: %w", space, err)
		}
		view.Space = info
		return nil
	})
	if proposal.HasAction(actions.TypePayout) {
		g.Go(func() error {
			config, err := s.nance.GetSpaceConfig(gctx, space)
			if err != nil {
				return fmt.Errorf("couldn't load config of %s: %w", space, err)
			}
			view.CycleStageLengths = config.CycleStageLengths
			return nil
		})
	}
	if proposal.VoteURL != "" {
		g.Go(func() error {
			info, err := s.snapshot.GetProposal(gctx, proposal.VoteURL)
			if err != nil {
				return fmt.Errorf("couldn't load voting info: %w", err)
			}
			view.Voting = info
			return nil
		})
		g.Go(func() error {
			var err error
			votes, err = s.snapshot.GetVotes(gctx, proposal.VoteURL, snapshot.VotesQuery{
				First:   s.config.VotesLimit,
				OrderBy: snapshot.OrderByCreated,
			})
			if err != nil {
				return fmt.Errorf("couldn't load votes: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if view.Voting != nil && votes != nil {
		view.Votes = snapshot.LabelVotes(view.Voting, votes.Votes)
	}
	view.Actions = s.labelActions(ctx, view)
	return view, nil
}

func (s *Service) labelActions(ctx context.Context, view *ProposalView) []ActionView {
	lc := &actions.LabelContext{
		CurrentCycle:      view.Space.CurrentCycle,
		CurrentEvent:      &view.Space.CurrentEvent,
		ProposalCycle:     view.Proposal.GovernanceCycle,
		CycleStageLengths: view.CycleStageLengths,
		Tokens:            s.tokens,
	}
	labeled := make([]ActionView, len(view.Proposal.Actions))
	for i, action := range view.Proposal.Actions {
		labeled[i] = ActionView{
			UUID:  action.UUID,
			Type:  action.Type(),
			Label: actions.Label(ctx, action, lc),
		}
		if err := s.metrics.MarkLabeled(action); err != nil {
			s.log.Debug("couldn't count action",
				zap.String("uuid", action.UUID),
				zap.Error(err),
			)
		}
	}
	return labeled
}
