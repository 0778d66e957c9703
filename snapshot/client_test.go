// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package snapshot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type hubHandler struct {
	t         *testing.T
	apiKey    string
	responses map[string]string

	lock     sync.Mutex
	requests []graphQLRequest
	messages []SignedMessage
}

func (h *hubHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	require := require.New(h.t)
	require.Equal(http.MethodPost, r.Method)

	h.lock.Lock()
	defer h.lock.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case graphQLPath:
		require.Equal(h.apiKey, r.Header.Get(apiKeyHeader))
		req := graphQLRequest{}
		require.NoError(json.NewDecoder(r.Body).Decode(&req))
		h.requests = append(h.requests, req)
		response, ok := h.responses[req.OperationName]
		require.True(ok, "unexpected operation %q", req.OperationName)
		_, _ = w.Write([]byte(response))
	case messagePath:
		msg := SignedMessage{}
		require.NoError(json.NewDecoder(r.Body).Decode(&msg))
		h.messages = append(h.messages, msg)
		_, _ = w.Write([]byte(`{"id":"0xreceipt","ipfs":"bafy","relayer":{"address":"0xrelayer","receipt":"0xsig"}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *hubHandler) Requests() []graphQLRequest {
	h.lock.Lock()
	defer h.lock.Unlock()
	return append([]graphQLRequest(nil), h.requests...)
}

func (h *hubHandler) Messages() []SignedMessage {
	h.lock.Lock()
	defer h.lock.Unlock()
	return append([]SignedMessage(nil), h.messages...)
}

func TestGetVotes(t *testing.T) {
	require := require.New(t)

	handler := &hubHandler{
		t:      t,
		apiKey: "key",
		responses: map[string]string{
			"votesOfProposal": `{"data":{
				"votes":[
					{"id":"v1","app":"nance.app","created":1700000000,"voter":"0xa","choice":1,"vp":1200.5,"reason":"yes"},
					{"id":"v2","app":"snapshot","created":1700000100,"voter":"0xb","choice":{"1":2,"2":1},"vp":3,"reason":""}
				],
				"proposal":{"choices":["For","Against"]}
			}}`,
		},
	}
	server := httptest.NewServer(handler)
	defer server.Close()

	c := NewClient(server.URL, "key")
	votes, err := c.GetVotes(context.Background(), "0xproposal", VotesQuery{OrderBy: OrderByVP})
	require.NoError(err)
	require.Equal([]string{"For", "Against"}, votes.Choices)
	require.Len(votes.Votes, 2)
	require.Equal("v1", votes.Votes[0].ID)
	require.Equal(1200.5, votes.Votes[0].VP)
	require.JSONEq(`{"1":2,"2":1}`, string(votes.Votes[1].Choice))

	requests := handler.Requests()
	require.Len(requests, 1)
	variables := requests[0].Variables
	require.Equal("0xproposal", variables["id"])
	require.Equal("vp", variables["orderBy"])
	require.Equal(float64(DefaultVotesPageSize), variables["first"])
	require.Equal(float64(0), variables["skip"])
}

func TestGetVotesWithoutProposal(t *testing.T) {
	require := require.New(t)

	c := NewClient("http://127.0.0.1:0", "")
	votes, err := c.GetVotes(context.Background(), "", VotesQuery{})
	require.NoError(err)
	require.Empty(votes.Votes)

	handler := &hubHandler{
		t: t,
		responses: map[string]string{
			"votesOfProposal": `{"data":{"votes":[],"proposal":null}}`,
		},
	}
	server := httptest.NewServer(handler)
	defer server.Close()

	_, err = NewClient(server.URL, "").GetVotes(context.Background(), "0xmissing", VotesQuery{})
	require.ErrorIs(err, ErrProposalNotFound)
}

func TestGetProposal(t *testing.T) {
	tests := map[string]struct {
		response    string
		expected    *ProposalVotingInfo
		expectedErr error
	}{
		"found": {
			response: `{"data":{"proposal":{
				"id":"0xp","title":"JBP-1","type":"basic","state":"closed",
				"choices":["For","Against","Abstain"],"scores":[10,2,1],"scores_total":13,
				"quorum":20,"start":1,"end":2,"votes":3
			}}}`,
			expected: &ProposalVotingInfo{
				ID:          "0xp",
				Title:       "JBP-1",
				Type:        Basic,
				State:       "closed",
				Choices:     []string{"For", "Against", "Abstain"},
				Scores:      []float64{10, 2, 1},
				ScoresTotal: 13,
				Quorum:      20,
				Start:       1,
				End:         2,
				Votes:       3,
			},
		},
		"not found": {
			response:    `{"data":{"proposal":null}}`,
			expectedErr: ErrProposalNotFound,
		},
		"graphql errors": {
			response:    `{"data":null,"errors":[{"message":"invalid id"},{"message":"try again"}]}`,
			expectedErr: ErrGraphQL,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			server := httptest.NewServer(&hubHandler{
				t:         t,
				responses: map[string]string{"proposal": tt.response},
			})
			defer server.Close()

			info, err := NewClient(server.URL, "").GetProposal(context.Background(), "0xp")
			require.ErrorIs(err, tt.expectedErr)
			require.Equal(tt.expected, info)
		})
	}
}

func TestGetProposals(t *testing.T) {
	require := require.New(t)

	handler := &hubHandler{
		t: t,
		responses: map[string]string{
			"proposals": `{"data":{"proposals":[
				{"id":"0x1","type":"single-choice","choices":["A"],"scores":[1],"scores_total":1},
				{"id":"0x2","type":"approval","choices":["B"],"scores":[2],"scores_total":2}
			]}}`,
		},
	}
	server := httptest.NewServer(handler)
	defer server.Close()

	c := NewClient(server.URL, "")
	infos, err := c.GetProposals(context.Background(), []string{"0x1", "0x2", "0x3"})
	require.NoError(err)
	require.Len(infos, 2)
	require.Equal(Approval, infos["0x2"].Type)
	require.NotContains(infos, "0x3")
	require.Equal([]interface{}{"0x1", "0x2", "0x3"}, handler.Requests()[0].Variables["ids"])

	empty, err := c.GetProposals(context.Background(), nil)
	require.NoError(err)
	require.Empty(empty)
	require.Len(handler.Requests(), 1)
}

func TestGraphQLStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "").GetProposal(context.Background(), "0xp")
	require.ErrorContains(t, err, "429")
}
