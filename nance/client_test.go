// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package nance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chain4travel/nance/actions"
	"github.com/chain4travel/nance/governance"
	"github.com/chain4travel/nance/utils/rpc"
)

const (
	testAddress   = "0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1"
	testSignature = "0xabcdef"
)

type recordedRequest struct {
	Method string
	URI    string
	Body   string
}

type apiServer struct {
	lock      sync.Mutex
	requests  []recordedRequest
	responses map[string]string
	status    int
}

func newAPIServer(t *testing.T, responses map[string]string) (*apiServer, Client) {
	return newAPIServerWithStatus(t, http.StatusOK, responses)
}

func newAPIServerWithStatus(t *testing.T, status int, responses map[string]string) (*apiServer, Client) {
	api := &apiServer{responses: responses, status: status}
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)
	return api, NewClient(server.URL)
}

func (a *apiServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	a.lock.Lock()
	defer a.lock.Unlock()
	a.requests = append(a.requests, recordedRequest{
		Method: r.Method,
		URI:    r.URL.RequestURI(),
		Body:   string(body),
	})

	response, ok := a.responses[r.Method+" "+r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"not found"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(a.status)
	_, _ = w.Write([]byte(response))
}

func (a *apiServer) Requests() []recordedRequest {
	a.lock.Lock()
	defer a.lock.Unlock()
	return append([]recordedRequest(nil), a.requests...)
}

func TestGetSpace(t *testing.T) {
	require := require.New(t)

	_, c := newAPIServer(t, map[string]string{
		"GET /juicebox": `{"success":true,"data":{
			"name":"juicebox","displayName":"Juicebox","currentCycle":62,
			"currentEvent":{"title":"Temperature Check","start":"2024-01-01T00:00:00.000Z","end":"2024-01-04T00:00:00.000Z"},
			"snapshotSpace":"jbdao.eth","juiceboxProjectId":"1",
			"transactorAddress":{"type":"safe","network":"mainnet","address":"0xAF28bcB48C40dBC86f52D459A6562F658fc94B1e"}
		}}`,
	})

	space, err := c.GetSpace(context.Background(), "juicebox")
	require.NoError(err)
	require.Equal("Juicebox", space.DisplayName)
	require.Equal(62, space.CurrentCycle)
	require.Equal(governance.TemperatureCheck, space.CurrentEvent.Title)
	require.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), space.CurrentEvent.Start.UTC())
	require.Equal("safe", space.TransactorAddress.Type)
}

func TestGetAllSpacesAndConfig(t *testing.T) {
	require := require.New(t)

	api, c := newAPIServer(t, map[string]string{
		"GET /ish/all":            `{"success":true,"data":[{"name":"juicebox"},{"name":"moondao"}]}`,
		"GET /ish/config/moondao": `{"success":true,"data":{"space":"moondao","cycleStageLengths":[3,4,4,3],"config":{"snapshot":{"space":"moondao.eth"}}}}`,
	})

	spaces, err := c.GetAllSpaces(context.Background())
	require.NoError(err)
	require.Len(spaces, 2)
	require.Equal("moondao", spaces[1].Name)

	config, err := c.GetSpaceConfig(context.Background(), "moondao")
	require.NoError(err)
	require.Equal([]int{3, 4, 4, 3}, config.CycleStageLengths)
	require.JSONEq(`{"snapshot":{"space":"moondao.eth"}}`, string(config.Config))

	require.Len(api.Requests(), 2)
}

func TestGetProposals(t *testing.T) {
	tests := map[string]struct {
		query       ProposalsQuery
		expectedURI string
	}{
		"no filter": {
			expectedURI: "/juicebox/proposals",
		},
		"all filters": {
			query:       ProposalsQuery{Cycle: "62", Keyword: "grant", Limit: 20, Page: 2},
			expectedURI: "/juicebox/proposals?cycle=62&keyword=grant&limit=20&page=2",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			api, c := newAPIServer(t, map[string]string{
				"GET /juicebox/proposals": `{"success":true,"data":{
					"proposalInfo":{"snapshotSpace":"jbdao.eth","proposalIdPrefix":"JBP-","minTokenPassingAmount":80000000},
					"proposals":[{"uuid":"u1","proposalId":401,"title":"T","body":"B","status":"Voting","actions":[
						{"uuid":"a1","type":"Payout","payload":{"type":"project","amountUSD":"1500","count":3,"project":477}}
					]}],
					"hasMore":true
				}}`,
			})

			packet, err := c.GetProposals(context.Background(), "juicebox", tt.query)
			require.NoError(err)
			require.True(packet.HasMore)
			require.Equal("JBP-", packet.ProposalInfo.ProposalIDPrefix)
			require.Len(packet.Proposals, 1)

			proposal := packet.Proposals[0]
			require.Equal("JBP-401", proposal.DisplayID(packet.ProposalInfo.ProposalIDPrefix))
			require.True(proposal.HasAction(actions.TypePayout))
			require.False(proposal.HasAction(actions.TypeReserve))
			require.Equal(&actions.Payout{Type: "project", AmountUSD: 1500, Count: 3, Project: 477}, proposal.Actions[0].Payload)

			requests := api.Requests()
			require.Len(requests, 1)
			require.Equal(tt.expectedURI, requests[0].URI)
		})
	}
}

func TestAPIErrors(t *testing.T) {
	tests := map[string]struct {
		status          int
		response        string
		expectedErr     error
		expectedMessage string
	}{
		"unsuccessful envelope": {
			status:          http.StatusOK,
			response:        `{"success":false,"error":"proposal not found"}`,
			expectedErr:     ErrNotFound,
			expectedMessage: "an error occurred while fetching the data: proposal not found",
		},
		"space not found": {
			status:          http.StatusOK,
			response:        `{"success":false,"error":"Space Not Found"}`,
			expectedErr:     ErrNotFound,
			expectedMessage: "an error occurred while fetching the data: Space Not Found",
		},
		"error with success": {
			status:          http.StatusOK,
			response:        `{"success":true,"error":"partial failure","data":{}}`,
			expectedErr:     ErrAPI,
			expectedMessage: "an error occurred while fetching the data: partial failure",
		},
		"http error": {
			status:          http.StatusInternalServerError,
			response:        `{"success":false,"error":"database down"}`,
			expectedMessage: "database down",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			_, c := newAPIServerWithStatus(t, tt.status, map[string]string{
				"GET /juicebox/proposal/401": tt.response,
			})

			proposal, err := c.GetProposal(context.Background(), "juicebox", "401")
			require.Error(err)
			if tt.expectedErr != nil {
				require.ErrorIs(err, tt.expectedErr)
			}
			if tt.status == http.StatusOK {
				require.ErrorIs(err, ErrAPI)
			}
			require.Equal(tt.expectedMessage, rpc.ErrorMessage(err))
			require.Nil(proposal)
		})
	}
}

func testUpload() *ProposalUpload {
	return &ProposalUpload{
		Proposal: ProposalPayload{
			UUID:   "u1",
			Title:  "Title",
			Body:   "Body\n\n## Actions\n* Transfer 10 ETH to 0xto",
			Status: StatusDiscussion,
			Actions: []actions.Action{
				{UUID: "a1", Payload: &actions.Transfer{To: "0xto", Amount: "10"}},
			},
		},
		UploaderAddress:   testAddress,
		UploaderSignature: testSignature,
	}
}

func TestUploadProposal(t *testing.T) {
	require := require.New(t)

	api, c := newAPIServer(t, map[string]string{
		"POST /juicebox/proposals":     `{"success":true,"data":{"uuid":"u1"}}`,
		"PUT /juicebox/proposal/u1":    `{"success":true,"data":{"uuid":"u1","hash":"h"}}`,
		"DELETE /juicebox/proposal/u1": `{"success":true,"data":"deleted"}`,
	})

	created, err := c.CreateProposal(context.Background(), "juicebox", testUpload())
	require.NoError(err)
	require.Equal("u1", created.UUID)

	updated, err := c.UpdateProposal(context.Background(), "juicebox", testUpload())
	require.NoError(err)
	require.Equal("h", updated.Hash)

	require.NoError(c.DeleteProposal(context.Background(), "juicebox", &ProposalDeletion{
		UUID:             "u1",
		DeleterAddress:   testAddress,
		DeleterSignature: testSignature,
	}))

	requests := api.Requests()
	require.Len(requests, 3)

	sent := map[string]interface{}{}
	require.NoError(json.Unmarshal([]byte(requests[0].Body), &sent))
	require.Equal(testAddress, sent["uploaderAddress"])
	require.Equal(testSignature, sent["uploaderSignature"])
	proposal := sent["proposal"].(map[string]interface{})
	require.Equal("Discussion", proposal["status"])
	require.Len(proposal["actions"], 1)

	require.JSONEq(`{"uuid":"u1","deleterAddress":"`+testAddress+`","deleterSignature":"`+testSignature+`"}`, requests[2].Body)
}

func TestUploadVerification(t *testing.T) {
	tests := map[string]struct {
		mutate      func(*ProposalUpload)
		expectedErr error
	}{
		"missing uuid": {
			mutate:      func(u *ProposalUpload) { u.Proposal.UUID = "" },
			expectedErr: errMissingUUID,
		},
		"missing title": {
			mutate:      func(u *ProposalUpload) { u.Proposal.Title = "" },
			expectedErr: errMissingTitle,
		},
		"missing body": {
			mutate:      func(u *ProposalUpload) { u.Proposal.Body = "" },
			expectedErr: errMissingBody,
		},
		"unknown status": {
			mutate:      func(u *ProposalUpload) { u.Proposal.Status = "Pending" },
			expectedErr: errUnknownStatus,
		},
		"invalid address": {
			mutate:      func(u *ProposalUpload) { u.UploaderAddress = "0x1234" },
			expectedErr: errInvalidAddress,
		},
		"missing signature": {
			mutate:      func(u *ProposalUpload) { u.UploaderSignature = "" },
			expectedErr: errInvalidSignature,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			api, c := newAPIServer(t, map[string]string{})
			upload := testUpload()
			tt.mutate(upload)

			_, err := c.CreateProposal(context.Background(), "juicebox", upload)
			require.ErrorIs(err, tt.expectedErr)
			require.Empty(api.Requests())
		})
	}
}

func TestParseStatus(t *testing.T) {
	require := require.New(t)

	for _, status := range StatusNames {
		parsed, err := ParseStatus(string(status))
		require.NoError(err)
		require.Equal(status, parsed)
	}
	_, err := ParseStatus("voting")
	require.ErrorIs(err, errUnknownStatus)
}

func TestAPIErrorIsNotFound(t *testing.T) {
	tests := map[string]struct {
		message          string
		expectedNotFound bool
	}{
		"proposal not found": {
			message:          "proposal not found",
			expectedNotFound: true,
		},
		"mixed case": {
			message:          "Space Not Found",
			expectedNotFound: true,
		},
		"other failure": {
			message: "database down",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			err := fmt.Errorf("couldn't load: %w", &apiError{message: tt.message})
			require.ErrorIs(err, ErrAPI)
			require.Equal(tt.expectedNotFound, errors.Is(err, ErrNotFound))
		})
	}
}
