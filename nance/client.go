// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package nance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/chain4travel/nance/utils/rpc"
)

const DefaultEndpoint = "https://api.nance.app"

var (
	_ Client = (*client)(nil)

	// ErrAPI is returned when the API answers with success set to false
	ErrAPI = errors.New("an error occurred while fetching the data")
	// ErrNotFound is returned, along with ErrAPI, when the API reports that
	// the requested space or proposal doesn't exist
	ErrNotFound = errors.New("not found")
)

// apiError is an unsuccessful response envelope
type apiError struct {
	message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAPI, e.message)
}

func (e *apiError) Is(target error) bool {
	switch target {
	case ErrAPI:
		return true
	case ErrNotFound:
		return strings.Contains(strings.ToLower(e.message), "not found")
	default:
		return false
	}
}

// ProposalsQuery filters the proposals of a space. Zero values are not sent.
type ProposalsQuery struct {
	Cycle   string
	Keyword string
	Limit   int
	Page    int
}

func (q ProposalsQuery) options() []rpc.Option {
	var options []rpc.Option
	if q.Cycle != "" {
		options = append(options, rpc.WithQueryParam("cycle", q.Cycle))
	}
	if q.Keyword != "" {
		options = append(options, rpc.WithQueryParam("keyword", q.Keyword))
	}
	if q.Limit > 0 {
		options = append(options, rpc.WithQueryParam("limit", strconv.Itoa(q.Limit)))
	}
	if q.Page > 0 {
		options = append(options, rpc.WithQueryParam("page", strconv.Itoa(q.Page)))
	}
	return options
}

// Client for interacting with the proposal API
type Client interface {
	// GetAllSpaces returns every space hosted by the API
	GetAllSpaces(ctx context.Context, options ...rpc.Option) ([]SpaceInfo, error)
	// GetSpace returns the current state of [space]
	GetSpace(ctx context.Context, space string, options ...rpc.Option) (*SpaceInfo, error)
	// GetSpaceConfig returns the configuration of [space]
	GetSpaceConfig(ctx context.Context, space string, options ...rpc.Option) (*SpaceConfig, error)
	// GetProposals returns one page of proposals of [space]
	GetProposals(ctx context.Context, space string, query ProposalsQuery, options ...rpc.Option) (*ProposalsPacket, error)
	// GetProposal returns the proposal [id] of [space]. [id] is either the
	// proposal id, its uuid or its snapshot hash.
	GetProposal(ctx context.Context, space, id string, options ...rpc.Option) (*Proposal, error)
	// CreateProposal uploads a new proposal
	CreateProposal(ctx context.Context, space string, upload *ProposalUpload, options ...rpc.Option) (*UploadResult, error)
	// UpdateProposal uploads a new revision of an existing proposal
	UpdateProposal(ctx context.Context, space string, upload *ProposalUpload, options ...rpc.Option) (*UploadResult, error)
	// DeleteProposal deletes a proposal
	DeleteProposal(ctx context.Context, space string, deletion *ProposalDeletion, options ...rpc.Option) error
}

type client struct {
	requester rpc.EndpointRequester
}

// NewClient returns a Client for the proposal API at [uri]
func NewClient(uri string, opts ...rpc.RequesterOption) Client {
	opts = append([]rpc.RequesterOption{rpc.WithName("nance")}, opts...)
	return &client{requester: rpc.NewEndpointRequester(uri, opts...)}
}

// send issues the request and unwraps the response envelope into [data]
func send[T any](ctx context.Context, c *client, method, path string, params interface{}, options []rpc.Option) (T, error) {
	var zero T
	res := &APIResponse[T]{}
	if err := c.requester.SendRequest(ctx, method, path, params, res, options...); err != nil {
		return zero, err
	}
	if !res.Success || res.Error != "" {
		return zero, &apiError{message: res.Error}
	}
	return res.Data, nil
}

func spacePath(space string, elems ...string) string {
	path := "/" + url.PathEscape(space)
	for _, elem := range elems {
		path += "/" + url.PathEscape(elem)
	}
	return path
}

func (c *client) GetAllSpaces(ctx context.Context, options ...rpc.Option) ([]SpaceInfo, error) {
	return send[[]SpaceInfo](ctx, c, http.MethodGet, "/ish/all", nil, options)
}

func (c *client) GetSpace(ctx context.Context, space string, options ...rpc.Option) (*SpaceInfo, error) {
	return send[*SpaceInfo](ctx, c, http.MethodGet, spacePath(space), nil, options)
}

func (c *client) GetSpaceConfig(ctx context.Context, space string, options ...rpc.Option) (*SpaceConfig, error) {
	return send[*SpaceConfig](ctx, c, http.MethodGet, "/ish/config"+spacePath(space), nil, options)
}

func (c *client) GetProposals(ctx context.Context, space string, query ProposalsQuery, options ...rpc.Option) (*ProposalsPacket, error) {
	options = append(query.options(), options...)
	return send[*ProposalsPacket](ctx, c, http.MethodGet, spacePath(space, "proposals"), nil, options)
}

func (c *client) GetProposal(ctx context.Context, space, id string, options ...rpc.Option) (*Proposal, error) {
	return send[*Proposal](ctx, c, http.MethodGet, spacePath(space, "proposal", id), nil, options)
}

func (c *client) CreateProposal(ctx context.Context, space string, upload *ProposalUpload, options ...rpc.Option) (*UploadResult, error) {
	if err := upload.Verify(); err != nil {
		return nil, err
	}
	return send[*UploadResult](ctx, c, http.MethodPost, spacePath(space, "proposals"), upload, options)
}

func (c *client) UpdateProposal(ctx context.Context, space string, upload *ProposalUpload, options ...rpc.Option) (*UploadResult, error) {
	if err := upload.Verify(); err != nil {
		return nil, err
	}
	return send[*UploadResult](ctx, c, http.MethodPut, spacePath(space, "proposal", upload.Proposal.UUID), upload, options)
}

func (c *client) DeleteProposal(ctx context.Context, space string, deletion *ProposalDeletion, options ...rpc.Option) error {
	if err := deletion.Verify(); err != nil {
		return err
	}
	_, err := send[json.RawMessage](ctx, c, http.MethodDelete, spacePath(space, "proposal", deletion.UUID), deletion, options)
	return err
}
