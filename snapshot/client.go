// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package snapshot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/chain4travel/nance/utils/rpc"
)

const (
	DefaultHub = "https://hub.snapshot.org"

	graphQLPath = "/graphql"
	messagePath = "/api/msg"

	apiKeyHeader = "x-api-key"

	DefaultVotesPageSize = 10
)

var (
	_ Client = (*client)(nil)

	ErrGraphQL          = errors.New("graphql error")
	ErrProposalNotFound = errors.New("proposal not found")
)

// VoteOrder is the field votes are sorted by, descending
type VoteOrder string

const (
	OrderByCreated VoteOrder = "created"
	OrderByVP      VoteOrder = "vp"
)

// VotesQuery pages through the votes of a proposal
type VotesQuery struct {
	Skip    int
	First   int
	OrderBy VoteOrder
}

// ProposalVotes are the votes of a proposal along with its choices
type ProposalVotes struct {
	Votes   []Vote
	Choices []string
}

// Client for interacting with a Snapshot hub
type Client interface {
	// GetVotes returns one page of votes of the proposal [proposalID]
	GetVotes(ctx context.Context, proposalID string, query VotesQuery, options ...rpc.Option) (*ProposalVotes, error)
	// GetProposal returns the tally of [proposalID]
	GetProposal(ctx context.Context, proposalID string, options ...rpc.Option) (*ProposalVotingInfo, error)
	// GetProposals returns the tallies of [proposalIDs] keyed by id. Unknown
	// ids are left out.
	GetProposals(ctx context.Context, proposalIDs []string, options ...rpc.Option) (map[string]*ProposalVotingInfo, error)
	// SendMessage relays a signed message, a vote for instance, to the hub
	SendMessage(ctx context.Context, msg *SignedMessage, options ...rpc.Option) (*Receipt, error)
}

type client struct {
	requester rpc.EndpointRequester
	apiKey    string
}

// NewClient returns a Client for the hub at [uri]. [apiKey] is sent with
// every GraphQL query when set.
func NewClient(uri, apiKey string, opts ...rpc.RequesterOption) Client {
	opts = append([]rpc.RequesterOption{rpc.WithName("snapshot")}, opts...)
	return &client{
		requester: rpc.NewEndpointRequester(uri, opts...),
		apiKey:    apiKey,
	}
}

type graphQLRequest struct {
	OperationName string                 `json:"operationName,omitempty"`
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse[T any] struct {
	Data   T              `json:"data"`
	Errors []graphQLError `json:"errors"`
}

func query[T any](ctx context.Context, c *client, operation, q string, variables map[string]interface{}, options []rpc.Option) (T, error) {
	if c.apiKey != "" {
		options = append([]rpc.Option{rpc.WithHeader(apiKeyHeader, c.apiKey)}, options...)
	}
	res := &graphQLResponse[T]{}
	err := c.requester.SendRequest(ctx, http.MethodPost, graphQLPath, &graphQLRequest{
		OperationName: operation,
		Query:         q,
		Variables:     variables,
	}, res, options...)
	if err != nil {
		return res.Data, err
	}
	if len(res.Errors) > 0 {
		messages := make([]string, len(res.Errors))
		for i, e := range res.Errors {
			messages[i] = e.Message
		}
		return res.Data, fmt.Errorf("%w: %s: %s", ErrGraphQL, operation, strings.Join(messages, "; "))
	}
	return res.Data, nil
}

const votesOfProposalQuery = `query votesOfProposal($id: String, $skip: Int, $orderBy: String, $first: Int) {
  votes(first: $first, skip: $skip, where: { proposal: $id }, orderBy: $orderBy, orderDirection: desc) {
    id
    app
    created
    voter
    choice
    vp
    reason
  }
  proposal(id: $id) {
    choices
  }
}`

func (c *client) GetVotes(ctx context.Context, proposalID string, q VotesQuery, options ...rpc.Option) (*ProposalVotes, error) {
	if proposalID == "" {
		return &ProposalVotes{}, nil
	}
	if q.First <= 0 {
		q.First = DefaultVotesPageSize
	}
	if q.OrderBy == "" {
		q.OrderBy = OrderByCreated
	}

	data, err := query[struct {
		Votes    []Vote `json:"votes"`
		Proposal *struct {
			Choices []string `json:"choices"`
		} `json:"proposal"`
	}](ctx, c, "votesOfProposal", votesOfProposalQuery, map[string]interface{}{
		"id":      proposalID,
		"skip":    q.Skip,
		"first":   q.First,
		"orderBy": string(q.OrderBy),
	}, options)
	if err != nil {
		return nil, err
	}
	if data.Proposal == nil {
		return nil, fmt.Errorf("%w: %s", ErrProposalNotFound, proposalID)
	}
	return &ProposalVotes{
		Votes:   data.Votes,
		Choices: data.Proposal.Choices,
	}, nil
}

const votingInfoFields = `
    id
    title
    type
    state
    choices
    scores
    scores_total
    quorum
    start
    end
    votes`

const proposalQuery = `query proposal($id: String) {
  proposal(id: $id) {` + votingInfoFields + `
  }
}`

func (c *client) GetProposal(ctx context.Context, proposalID string, options ...rpc.Option) (*ProposalVotingInfo, error) {
	data, err := query[struct {
		Proposal *ProposalVotingInfo `json:"proposal"`
	}](ctx, c, "proposal", proposalQuery, map[string]interface{}{
		"id": proposalID,
	}, options)
	if err != nil {
		return nil, err
	}
	if data.Proposal == nil {
		return nil, fmt.Errorf("%w: %s", ErrProposalNotFound, proposalID)
	}
	return data.Proposal, nil
}

const proposalsQuery = `query proposals($first: Int, $ids: [String]) {
  proposals(first: $first, where: { id_in: $ids }) {` + votingInfoFields + `
  }
}`

func (c *client) GetProposals(ctx context.Context, proposalIDs []string, options ...rpc.Option) (map[string]*ProposalVotingInfo, error) {
	infos := make(map[string]*ProposalVotingInfo, len(proposalIDs))
	if len(proposalIDs) == 0 {
		return infos, nil
	}

	data, err := query[struct {
		Proposals []*ProposalVotingInfo `json:"proposals"`
	}](ctx, c, "proposals", proposalsQuery, map[string]interface{}{
		"first": len(proposalIDs),
		"ids":   proposalIDs,
	}, options)
	if err != nil {
		return nil, err
	}
	for _, info := range data.Proposals {
		if info != nil {
			infos[info.ID] = info
		}
	}
	return infos, nil
}

func (c *client) SendMessage(ctx context.Context, msg *SignedMessage, options ...rpc.Option) (*Receipt, error) {
	receipt := &Receipt{}
	err := c.requester.SendRequest(ctx, http.MethodPost, messagePath, msg, receipt, options...)
	if err != nil {
		return nil, err
	}
	return receipt, nil
}
