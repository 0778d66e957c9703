// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package portal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chain4travel/nance/actions"
	"github.com/chain4travel/nance/governance"
	"github.com/chain4travel/nance/metrics"
	"github.com/chain4travel/nance/nance"
	"github.com/chain4travel/nance/signing"
	"github.com/chain4travel/nance/snapshot"
	"github.com/chain4travel/nance/utils/logging"
)

const (
	DefaultProposalsLimit = 10
	DefaultVotesLimit     = 1000
)

var (
	errMissingSpace    = errors.New("missing space")
	errMissingProposal = errors.New("missing proposal")
	errNoSignerWallet  = fmt.Errorf("%w: no wallet configured", signing.ErrWalletNotConnected)
)

type Config struct {
	// Page size of proposal lists
	ProposalsLimit int `json:"proposalsLimit"`
	// Maximum number of votes loaded along a proposal
	VotesLimit int `json:"votesLimit"`
}

// Service serves the pages of the portal and performs the signed operations
// of its users.
type Service struct {
	log      logging.Logger
	config   Config
	nance    nance.Client
	snapshot snapshot.Client
	tokens   actions.TokenResolver
	signer   *signing.Signer
	metrics  metrics.Metrics
	clock    func() time.Time
}

// NewService returns a portal backed by the given clients. [tokens] and
// [signer] may be nil: transfers then fall back to the contract address and
// signed operations fail with a wallet error.
func NewService(
	log logging.Logger,
	config Config,
	nanceClient nance.Client,
	snapshotClient snapshot.Client,
	tokens actions.TokenResolver,
	signer *signing.Signer,
	m metrics.Metrics,
) *Service {
	if config.ProposalsLimit <= 0 {
		config.ProposalsLimit = DefaultProposalsLimit
	}
	if config.VotesLimit <= 0 {
		config.VotesLimit = DefaultVotesLimit
	}
	if m == nil {
		m = metrics.Noop
	}
	return &Service{
		log:      log,
		config:   config,
		nance:    nanceClient,
		snapshot: snapshotClient,
		tokens:   tokens,
		signer:   signer,
		metrics:  m,
		clock:    time.Now,
	}
}

// LoadSpaces lists every space
func (s *Service) LoadSpaces(ctx context.Context) ([]nance.SpaceInfo, error) {
	return s.nance.GetAllSpaces(ctx)
}

// SpaceQuery selects the proposals listed on a space page
type SpaceQuery struct {
	Keyword string
	Cycle   string
	Page    int
}

func (q SpaceQuery) searchMode() bool {
	return q.Keyword != "" || q.Cycle != ""
}

// SpaceView is the data shown on the page of a space
type SpaceView struct {
	Space     *nance.SpaceInfo       `json:"spaceInfo"`
	Proposals *nance.ProposalsPacket `json:"proposalsPacket"`
	// Set when neither a keyword nor a cycle were queried
	Active      []nance.Proposal                        `json:"activeProposals,omitempty"`
	VotingInfos map[string]*snapshot.ProposalVotingInfo `json:"votingInfos"`
	SearchMode  bool                                    `json:"searchMode"`
}

// LoadSpace fetches the space and a page of its proposals concurrently, then
// the voting state of the proposals that went to a vote. A failure to load
// the voting state does not fail the page.
func (s *Service) LoadSpace(ctx context.Context, space string, query SpaceQuery) (*SpaceView, error) {
	if space == "" {
		return nil, errMissingSpace
	}
	cycle := query.Cycle
	if cycle == "" {
		cycle = "All"
	}
	page := query.Page
	if page <= 0 {
		page = 1
	}

	view := &SpaceView{SearchMode: query.searchMode()}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		info, err := s.nance.GetSpace(gctx, space)
		if err != nil {
			return fmt.Errorf("couldn't load space %s: %w", space, err)
		}
		view.Space = info
		return nil
	})
	g.Go(func() error {
		packet, err := s.nance.GetProposals(gctx, space, nance.ProposalsQuery{
			Cycle:   cycle,
			Keyword: query.Keyword,
			Limit:   s.config.ProposalsLimit,
			Page:    page,
		})
		if err != nil {
			return fmt.Errorf("couldn't load proposals of %s: %w", space, err)
		}
		view.Proposals = packet
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !view.SearchMode {
		view.Active = activeProposals(view.Proposals.Proposals)
	}

	var voteIDs []string
	for _, proposal := range view.Proposals.Proposals {
		if proposal.VoteURL != "" {
			voteIDs = append(voteIDs, proposal.VoteURL)
		}
	}
	infos, err := s.snapshot.GetProposals(ctx, voteIDs)
	if err != nil {
		s.log.Warn("couldn't load voting infos",
			zap.String("space", space),
			zap.Error(err),
		)
		infos = map[string]*snapshot.ProposalVotingInfo{}
	}
	view.VotingInfos = infos
	return view, nil
}

func activeProposals(proposals []nance.Proposal) []nance.Proposal {
	active := []nance.Proposal{}
	for _, proposal := range proposals {
		switch proposal.Status {
		case nance.StatusDiscussion, nance.StatusTemperatureCheck, nance.StatusVoting:
			active = append(active, proposal)
		}
	}
	return active
}

// ScheduleView is the governance schedule of a space
type ScheduleView struct {
	CurrentCycle int                          `json:"currentCycle"`
	CurrentEvent governance.DateEvent         `json:"currentEvent"`
	Cycle        governance.Schedule          `json:"cycle"`
	Recent       [3]governance.ScheduledEvent `json:"recent"`
	StageLengths []int                        `json:"cycleStageLengths"`
}

// Schedule returns the window of the current cycle and the stages around
// the current one.
func (s *Service) Schedule(ctx context.Context, space string) (*ScheduleView, error) {
	if space == "" {
		return nil, errMissingSpace
	}

	var (
		info   *nance.SpaceInfo
		config *nance.SpaceConfig
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, err = s.nance.GetSpace(gctx, space)
		return err
	})
	g.Go(func() error {
		var err error
		config, err = s.nance.GetSpaceConfig(gctx, space)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cycle, err := governance.ScheduleOfCycle(config.CycleStageLengths, 0, info.CurrentEvent)
	if err != nil {
		return nil, err
	}
	recent, err := governance.RecentSchedules(config.CycleStageLengths, info.CurrentEvent)
	if err != nil {
		return nil, err
	}
	return &ScheduleView{
		CurrentCycle: info.CurrentCycle,
		CurrentEvent: info.CurrentEvent,
		Cycle:        cycle,
		Recent:       recent,
		StageLengths: config.CycleStageLengths,
	}, nil
}
