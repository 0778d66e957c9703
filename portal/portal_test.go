// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package portal

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/chain4travel/nance/actions"
	"github.com/chain4travel/nance/governance"
	"github.com/chain4travel/nance/metrics"
	"github.com/chain4travel/nance/nance"
	"github.com/chain4travel/nance/signing"
	"github.com/chain4travel/nance/snapshot"
	"github.com/chain4travel/nance/utils/logging"
	"github.com/chain4travel/nance/utils/rpc"
)

const (
	testSpace = "juicebox"
	testKey   = "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
	testVote  = "0x8a1b9ffb2b5ab0e5ac6d8c2d2a2a6fbbcf2e6e38f7a3e5b2d1c0b9a8f7e6d5c4"
)

var errTest = errors.New("test error")

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testEnv struct {
	nance    *nance.MockClient
	snapshot *snapshot.MockClient
	tokens   *actions.MockTokenResolver
	wallet   *signing.KeyWallet
	service  *Service
}

func newTestEnv(t *testing.T, withSigner bool) *testEnv {
	require := require.New(t)

	ctrl := gomock.NewController(t)
	wallet, err := signing.ParseKeyWallet(testKey)
	require.NoError(err)
	m, err := metrics.New("nance", prometheus.NewRegistry())
	require.NoError(err)

	env := &testEnv{
		nance:    nance.NewMockClient(ctrl),
		snapshot: snapshot.NewMockClient(ctrl),
		tokens:   actions.NewMockTokenResolver(ctrl),
		wallet:   wallet,
	}
	var signer *signing.Signer
	if withSigner {
		signer = signing.NewSigner(logging.NoLog{}, wallet)
	}
	env.service = NewService(logging.NoLog{}, Config{}, env.nance, env.snapshot, env.tokens, signer, m)
	env.service.clock = func() time.Time {
		return time.Unix(1700000000, 0)
	}
	return env
}

func testSpaceInfo() *nance.SpaceInfo {
	return &nance.SpaceInfo{
		Name:          testSpace,
		DisplayName:   "JuiceboxDAO",
		CurrentCycle:  5,
		SnapshotSpace: "jbdao.eth",
		CurrentEvent: governance.DateEvent{
			Title: governance.TemperatureCheck,
			Start: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestNewServiceDefaults(t *testing.T) {
	require := require.New(t)

	s := NewService(logging.NoLog{}, Config{}, nil, nil, nil, nil, nil)
	require.Equal(DefaultProposalsLimit, s.config.ProposalsLimit)
	require.Equal(DefaultVotesLimit, s.config.VotesLimit)
	require.Equal(metrics.Noop, s.metrics)
}

func TestLoadSpaces(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t, false)

	spaces := []nance.SpaceInfo{*testSpaceInfo()}
	env.nance.EXPECT().GetAllSpaces(gomock.Any()).Return(spaces, nil)

	loaded, err := env.service.LoadSpaces(context.Background())
	require.NoError(err)
	require.Equal(spaces, loaded)
}

func TestLoadSpace(t *testing.T) {
	proposals := []nance.Proposal{
		{UUID: "1", Title: "Discussed", Status: nance.StatusDiscussion},
		{UUID: "2", Title: "Voting", Status: nance.StatusVoting, VoteURL: testVote},
		{UUID: "3", Title: "Approved", Status: nance.StatusApproved, VoteURL: "0xold"},
		{UUID: "4", Title: "Checked", Status: nance.StatusTemperatureCheck},
	}
	votingInfos := map[string]*snapshot.ProposalVotingInfo{
		testVote: {ID: testVote, State: "active"},
		"0xold":  {ID: "0xold", State: "closed"},
	}

	tests := map[string]struct {
		query           SpaceQuery
		expectedQuery   nance.ProposalsQuery
		spaceErr        error
		proposalsErr    error
		votingErr       error
		expectedActive  []string
		expectedVoting  int
		expectedErr     error
		expectedSearch  bool
		skipVotingInfos bool
	}{
		"active proposals": {
			expectedQuery:  nance.ProposalsQuery{Cycle: "All", Limit: DefaultProposalsLimit, Page: 1},
			expectedActive: []string{"1", "2", "4"},
			expectedVoting: 2,
		},
		"search by keyword": {
			query:          SpaceQuery{Keyword: "grant", Page: 2},
			expectedQuery:  nance.ProposalsQuery{Cycle: "All", Keyword: "grant", Limit: DefaultProposalsLimit, Page: 2},
			expectedSearch: true,
			expectedVoting: 2,
		},
		"search by cycle": {
			query:          SpaceQuery{Cycle: "5"},
			expectedQuery:  nance.ProposalsQuery{Cycle: "5", Limit: DefaultProposalsLimit, Page: 1},
			expectedSearch: true,
			expectedVoting: 2,
		},
		"voting infos unavailable": {
			expectedQuery:  nance.ProposalsQuery{Cycle: "All", Limit: DefaultProposalsLimit, Page: 1},
			votingErr:      errTest,
			expectedActive: []string{"1", "2", "4"},
		},
		"space failure": {
			expectedQuery:   nance.ProposalsQuery{Cycle: "All", Limit: DefaultProposalsLimit, Page: 1},
			spaceErr:        errTest,
			expectedErr:     errTest,
			skipVotingInfos: true,
		},
		"proposals failure": {
			expectedQuery:   nance.ProposalsQuery{Cycle: "All", Limit: DefaultProposalsLimit, Page: 1},
			proposalsErr:    errTest,
			expectedErr:     errTest,
			skipVotingInfos: true,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			env := newTestEnv(t, false)

			var space *nance.SpaceInfo
			if tt.spaceErr == nil {
				space = testSpaceInfo()
			}
			var packet *nance.ProposalsPacket
			if tt.proposalsErr == nil {
				packet = &nance.ProposalsPacket{Proposals: proposals}
			}
			env.nance.EXPECT().GetSpace(gomock.Any(), testSpace).Return(space, tt.spaceErr)
			env.nance.EXPECT().GetProposals(gomock.Any(), testSpace, tt.expectedQuery).Return(packet, tt.proposalsErr)
			if !tt.skipVotingInfos {
				var infos map[string]*snapshot.ProposalVotingInfo
				if tt.votingErr == nil {
					infos = votingInfos
				}
				env.snapshot.EXPECT().GetProposals(gomock.Any(), []string{testVote, "0xold"}).Return(infos, tt.votingErr)
			}

			view, err := env.service.LoadSpace(context.Background(), testSpace, tt.query)
			require.ErrorIs(err, tt.expectedErr)
			if tt.expectedErr != nil {
				return
			}
			require.Equal(space, view.Space)
			require.Equal(tt.expectedSearch, view.SearchMode)
			require.Len(view.VotingInfos, tt.expectedVoting)

			var active []string
			for _, proposal := range view.Active {
				active = append(active, proposal.UUID)
			}
			require.Equal(tt.expectedActive, active)
		})
	}
}

func TestLoadSpaceMissingSpace(t *testing.T) {
	env := newTestEnv(t, false)
	_, err := env.service.LoadSpace(context.Background(), "", SpaceQuery{})
	require.ErrorIs(t, err, errMissingSpace)
}

func TestLoadProposal(t *testing.T) {
	votes := []snapshot.Vote{
		{ID: "v1", Voter: "0x1", Choice: json.RawMessage(`1`), VP: 100},
		{ID: "v2", Voter: "0x2", Choice: json.RawMessage(`"encrypted"`), VP: 10},
		{ID: "v3", Voter: "0x3", Choice: json.RawMessage(`7`), VP: 1},
	}
	votingInfo := &snapshot.ProposalVotingInfo{
		ID:      testVote,
		Type:    snapshot.Basic,
		State:   "active",
		Choices: []string{"For", "Against", "Abstain"},
	}

	tests := map[string]struct {
		proposal       *nance.Proposal
		expectConfig   bool
		expectVotes    bool
		expectedLabels []string
		expectedVotes  []string
	}{
		"payout with votes": {
			proposal: &nance.Proposal{
				UUID:            "uuid",
				GovernanceCycle: 6,
				VoteURL:         testVote,
				Actions: []actions.Action{
					{UUID: "a1", Payload: &actions.Payout{Type: "project", AmountUSD: 1500, Count: 1, Project: 477}},
					{UUID: "a2", Payload: &actions.Transfer{Contract: "0xusdc", To: "0xdef", Amount: "100"}},
				},
			},
			expectConfig: true,
			expectVotes:  true,
			expectedLabels: []string{
				"Pay juicebox@477 1500 USD for 1 cycles (from Jan 29, 2024 to Feb 12, 2024)",
				"Transfer 100 USDC to 0xdef",
			},
			expectedVotes: []string{"For", snapshot.ShieldedChoiceLabel, snapshot.UnknownChoiceLabel},
		},
		"discussion without payout": {
			proposal: &nance.Proposal{
				UUID:            "uuid",
				GovernanceCycle: 6,
				Actions: []actions.Action{
					{UUID: "a2", Payload: &actions.Transfer{Contract: "0xusdc", To: "0xdef", Amount: "100"}},
				},
			},
			expectedLabels: []string{"Transfer 100 USDC to 0xdef"},
			expectedVotes:  []string{},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			env := newTestEnv(t, false)

			env.nance.EXPECT().GetProposal(gomock.Any(), testSpace, "42").Return(tt.proposal, nil)
			env.nance.EXPECT().GetSpace(gomock.Any(), testSpace).Return(testSpaceInfo(), nil)
			env.tokens.EXPECT().Symbol(gomock.Any(), "0xusdc").Return("USDC", nil)
			if tt.expectConfig {
				env.nance.EXPECT().GetSpaceConfig(gomock.Any(), testSpace).Return(&nance.SpaceConfig{
					Space:             testSpace,
					CycleStageLengths: []int{3, 4, 4, 3},
				}, nil)
			}
			if tt.expectVotes {
				env.snapshot.EXPECT().GetProposal(gomock.Any(), testVote).Return(votingInfo, nil)
				env.snapshot.EXPECT().GetVotes(gomock.Any(), testVote, snapshot.VotesQuery{
					First:   DefaultVotesLimit,
					OrderBy: snapshot.OrderByCreated,
				}).Return(&snapshot.ProposalVotes{Votes: votes, Choices: votingInfo.Choices}, nil)
			}

			view, err := env.service.LoadProposal(context.Background(), testSpace, "42")
			require.NoError(err)
			require.Equal(tt.proposal, view.Proposal)

			labels := make([]string, len(view.Actions))
			for i, action := range view.Actions {
				labels[i] = action.Label
			}
			require.Equal(tt.expectedLabels, labels)

			voteLabels := make([]string, len(view.Votes))
			for i, vote := range view.Votes {
				voteLabels[i] = vote.Label
			}
			require.Equal(tt.expectedVotes, voteLabels)
		})
	}
}

func TestLoadProposalFailures(t *testing.T) {
	tests := map[string]struct {
		space       string
		id          string
		setup       func(env *testEnv)
		expectedErr error
	}{
		"missing space": {
			id:          "42",
			expectedErr: errMissingSpace,
		},
		"missing id": {
			space:       testSpace,
			expectedErr: errMissingProposal,
		},
		"proposal not found": {
			space: testSpace,
			id:    "42",
			setup: func(env *testEnv) {
				env.nance.EXPECT().GetProposal(gomock.Any(), testSpace, "42").Return(nil, errTest)
			},
			expectedErr: errTest,
		},
		"votes failure": {
			space: testSpace,
			id:    "42",
			setup: func(env *testEnv) {
				env.nance.EXPECT().GetProposal(gomock.Any(), testSpace, "42").Return(&nance.Proposal{VoteURL: testVote}, nil)
				env.nance.EXPECT().GetSpace(gomock.Any(), testSpace).Return(testSpaceInfo(), nil).AnyTimes()
				env.snapshot.EXPECT().GetProposal(gomock.Any(), testVote).Return(&snapshot.ProposalVotingInfo{}, nil).AnyTimes()
				env.snapshot.EXPECT().GetVotes(gomock.Any(), testVote, gomock.Any()).Return(nil, errTest)
			},
			expectedErr: errTest,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t, false)
			if tt.setup != nil {
				tt.setup(env)
			}
			_, err := env.service.LoadProposal(context.Background(), tt.space, tt.id)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestSubmitProposal(t *testing.T) {
	payout := actions.Action{UUID: "a1", Payload: &actions.Payout{Type: "address", AmountUSD: 100, Count: 1, Address: "0xabc"}}

	tests := map[string]struct {
		submission   Submission
		update       bool
		expectedBody string
		expectFail   bool
	}{
		"create": {
			submission: Submission{
				Title:   "Fund the team",
				Body:    "Details",
				Actions: []actions.Action{payout},
			},
			expectedBody: "Details\n\n## Actions\n* Pay 100 USD for 1 cycles",
		},
		"update": {
			submission: Submission{
				UUID:   "existing",
				Title:  "Fund the team",
				Body:   "Details",
				Status: nance.StatusDraft,
			},
			update:       true,
			expectedBody: "Details\n\n## Actions\n",
		},
		"no actions": {
			submission: Submission{
				Title: "Fund the team",
				Body:  "Details",
			},
			expectedBody: "Details\n\n## Actions\n",
		},
		"existing actions section": {
			submission: Submission{
				UUID:    "existing",
				Title:   "Fund the team",
				Body:    "Details\n\n## Actions\n* Pay 100 USD for 1 cycles",
				Actions: []actions.Action{payout},
			},
			update:       true,
			expectedBody: "Details\n\n## Actions\n* Pay 100 USD for 1 cycles\n\n## Actions\n* Pay 100 USD for 1 cycles",
		},
		"missing title": {
			submission: Submission{Body: "Details"},
			expectFail: true,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			env := newTestEnv(t, true)

			var uploaded *nance.ProposalUpload
			record := func(_ context.Context, _ string, upload *nance.ProposalUpload, _ ...rpc.Option) (*nance.UploadResult, error) {
				uploaded = upload
				return &nance.UploadResult{UUID: upload.Proposal.UUID}, nil
			}
			if !tt.expectFail {
				if tt.update {
					env.nance.EXPECT().UpdateProposal(gomock.Any(), testSpace, gomock.Any()).DoAndReturn(record)
				} else {
					env.nance.EXPECT().CreateProposal(gomock.Any(), testSpace, gomock.Any()).DoAndReturn(record)
				}
			}

			result, err := env.service.SubmitProposal(context.Background(), testSpace, tt.submission)
			if tt.expectFail {
				require.Error(err)
				require.Nil(uploaded)
				return
			}
			require.NoError(err)

			proposal := uploaded.Proposal
			require.Equal(proposal.UUID, result.UUID)
			require.NotEmpty(proposal.UUID)
			if tt.update {
				require.Equal(tt.submission.UUID, proposal.UUID)
			}
			require.Equal(tt.expectedBody, proposal.Body)
			if tt.submission.Status == "" {
				require.Equal(nance.StatusDiscussion, proposal.Status)
			}
			require.Equal(env.wallet.Address().Hex(), uploaded.UploaderAddress)

			sig, err := hexutil.Decode(uploaded.UploaderSignature)
			require.NoError(err)
			signer, err := signing.Recover(signing.NewProposalTypedData(signing.ProposalMessage{
				UUID:   proposal.UUID,
				Title:  proposal.Title,
				Body:   proposal.Body,
				Status: string(proposal.Status),
			}), sig)
			require.NoError(err)
			require.Equal(env.wallet.Address(), signer)
		})
	}
}

func TestSubmitProposalWithoutWallet(t *testing.T) {
	env := newTestEnv(t, false)
	_, err := env.service.SubmitProposal(context.Background(), testSpace, Submission{Title: "t", Body: "b"})
	require.ErrorIs(t, err, signing.ErrWalletNotConnected)
}

func TestSubmitProposalDisconnectedWallet(t *testing.T) {
	require := require.New(t)

	ctrl := gomock.NewController(t)
	wallet := signing.NewMockWallet(ctrl)
	wallet.EXPECT().Status().Return(signing.Disconnected)
	client := nance.NewMockClient(ctrl)

	s := NewService(logging.NoLog{}, Config{}, client, nil, nil, signing.NewSigner(logging.NoLog{}, wallet), nil)
	_, err := s.SubmitProposal(context.Background(), testSpace, Submission{Title: "t", Body: "b"})
	require.ErrorIs(err, signing.ErrWalletNotConnected)
}

func TestDeleteProposal(t *testing.T) {
	tests := map[string]struct {
		deleteErr   error
		expectedErr error
	}{
		"deleted": {},
		"rejected": {
			deleteErr:   errTest,
			expectedErr: errTest,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			env := newTestEnv(t, true)

			env.nance.EXPECT().DeleteProposal(gomock.Any(), testSpace, gomock.Any()).DoAndReturn(
				func(_ context.Context, _ string, deletion *nance.ProposalDeletion, _ ...rpc.Option) error {
					if deletion.UUID != "uuid" {
						return errors.New("unexpected uuid")
					}
					sig, err := hexutil.Decode(deletion.DeleterSignature)
					if err != nil {
						return err
					}
					signer, err := signing.Recover(signing.NewDeleteTypedData("uuid"), sig)
					if err != nil {
						return err
					}
					if signer.Hex() != deletion.DeleterAddress {
						return errors.New("unexpected signer")
					}
					return tt.deleteErr
				},
			)

			err := env.service.DeleteProposal(context.Background(), testSpace, "uuid")
			require.ErrorIs(err, tt.expectedErr)
		})
	}
}

func TestDeleteProposalMissingArguments(t *testing.T) {
	env := newTestEnv(t, true)
	require.ErrorIs(t, env.service.DeleteProposal(context.Background(), "", "uuid"), errMissingSpace)
	require.ErrorIs(t, env.service.DeleteProposal(context.Background(), testSpace, ""), errMissingProposal)
}

func TestCastVote(t *testing.T) {
	tests := map[string]struct {
		proposal    *nance.Proposal
		state       string
		expectSend  bool
		expectedErr error
	}{
		"active": {
			proposal:   &nance.Proposal{UUID: "uuid", VoteURL: testVote},
			state:      "active",
			expectSend: true,
		},
		"closed": {
			proposal:    &nance.Proposal{UUID: "uuid", VoteURL: testVote},
			state:       "closed",
			expectedErr: errVotingClosed,
		},
		"not voting": {
			proposal:    &nance.Proposal{UUID: "uuid"},
			expectedErr: errNotVoting,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			env := newTestEnv(t, true)

			env.nance.EXPECT().GetProposal(gomock.Any(), testSpace, "42").Return(tt.proposal, nil)
			if tt.proposal.VoteURL != "" {
				env.nance.EXPECT().GetSpace(gomock.Any(), testSpace).Return(testSpaceInfo(), nil)
				env.snapshot.EXPECT().GetProposal(gomock.Any(), testVote).Return(&snapshot.ProposalVotingInfo{
					ID:    testVote,
					Type:  snapshot.SingleChoice,
					State: tt.state,
				}, nil)
			}

			var sent *snapshot.SignedMessage
			if tt.expectSend {
				env.snapshot.EXPECT().SendMessage(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, msg *snapshot.SignedMessage, _ ...rpc.Option) (*snapshot.Receipt, error) {
						sent = msg
						return &snapshot.Receipt{ID: "receipt"}, nil
					},
				)
			}

			receipt, err := env.service.CastVote(context.Background(), Ballot{
				Space:    testSpace,
				Proposal: "42",
				Choice:   snapshot.Choice{Index: 1},
				Reason:   "lgtm",
			})
			require.ErrorIs(err, tt.expectedErr)
			if tt.expectedErr != nil {
				return
			}
			require.Equal("receipt", receipt.ID)
			require.Equal(env.wallet.Address().Hex(), sent.Address)
			require.Equal("jbdao.eth", sent.Data.Message["space"])
			require.Equal(snapshot.App, sent.Data.Message["app"])
			require.Equal("lgtm", sent.Data.Message["reason"])
		})
	}
}

func TestSchedule(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t, false)

	env.nance.EXPECT().GetSpace(gomock.Any(), testSpace).Return(testSpaceInfo(), nil)
	env.nance.EXPECT().GetSpaceConfig(gomock.Any(), testSpace).Return(&nance.SpaceConfig{
		CycleStageLengths: []int{3, 4, 4, 3},
	}, nil)

	view, err := env.service.Schedule(context.Background(), testSpace)
	require.NoError(err)
	require.Equal(5, view.CurrentCycle)
	require.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), view.Cycle.Start)
	require.Equal(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), view.Cycle.End)
	require.Equal(governance.Delay, view.Recent[0].Title)
	require.Equal(governance.TemperatureCheck, view.Recent[1].Title)
	require.Equal(governance.SnapshotVote, view.Recent[2].Title)
}

func TestScheduleInvalidStageLengths(t *testing.T) {
	env := newTestEnv(t, false)

	env.nance.EXPECT().GetSpace(gomock.Any(), testSpace).Return(testSpaceInfo(), nil)
	env.nance.EXPECT().GetSpaceConfig(gomock.Any(), testSpace).Return(&nance.SpaceConfig{
		CycleStageLengths: []int{3, 4},
	}, nil)

	_, err := env.service.Schedule(context.Background(), testSpace)
	require.ErrorIs(t, err, governance.ErrInvalidStageLengths)
}
