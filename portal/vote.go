// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package portal

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/chain4travel/nance/nance"
	"github.com/chain4travel/nance/snapshot"
)

const activeState = "active"

var (
	errNotVoting       = errors.New("proposal has not been sent to a vote")
	errVotingClosed    = errors.New("voting is not open")
	errNoSnapshotSpace = errors.New("space has no snapshot space")
)

// Ballot is a vote of the connected wallet on a proposal
type Ballot struct {
	Space    string          `json:"space"`
	Proposal string          `json:"proposal"`
	Choice   snapshot.Choice `json:"choice"`
	Reason   string          `json:"reason,omitempty"`
}

// CastVote looks up the vote of the proposal and relays a signed vote to
// the hub. The vote is sent once, even when it fails.
func (s *Service) CastVote(ctx context.Context, ballot Ballot) (*snapshot.Receipt, error) {
	switch {
	case ballot.Space == "":
		return nil, errMissingSpace
	case ballot.Proposal == "":
		return nil, errMissingProposal
	case s.signer == nil:
		return nil, errNoSignerWallet
	}

	proposal, err := s.nance.GetProposal(ctx, ballot.Space, ballot.Proposal)
	if err != nil {
		return nil, fmt.Errorf("couldn't load proposal %s: %w", ballot.Proposal, err)
	}
	if proposal.VoteURL == "" {
		return nil, fmt.Errorf("%w: %s", errNotVoting, ballot.Proposal)
	}

	var (
		space  *nance.SpaceInfo
		voting *snapshot.ProposalVotingInfo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		space, err = s.nance.GetSpace(gctx, ballot.Space)
		return err
	})
	g.Go(func() error {
		var err error
		voting, err = s.snapshot.GetProposal(gctx, proposal.VoteURL)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	switch {
	case space.SnapshotSpace == "":
		return nil, fmt.Errorf("%w: %s", errNoSnapshotSpace, ballot.Space)
	case voting.State != activeState:
		return nil, fmt.Errorf("%w: proposal is %s", errVotingClosed, voting.State)
	}

	voter := snapshot.NewVoter(s.log, s.snapshot, s.signer)
	receipt, err := voter.CastVote(ctx, snapshot.CastVoteArgs{
		Space:     space.SnapshotSpace,
		Proposal:  proposal.VoteURL,
		Type:      voting.Type,
		Choice:    ballot.Choice,
		Reason:    ballot.Reason,
		Timestamp: uint64(s.clock().Unix()),
	})
	if err != nil {
		return nil, err
	}
	s.metrics.MarkVoteCast()
	return receipt, nil
}
