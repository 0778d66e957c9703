// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package juicebox

import (
	"context"
	"net/http"
	"strconv"

	"github.com/chain4travel/nance/utils/rpc"
)

const (
	DefaultEndpoint = "https://juicebox.money"

	projectsPath = "/api/projects"
)

var _ Client = (*client)(nil)

// Project as indexed by the project search API
type Project struct {
	ID             string  `json:"id"`
	Handle         *string `json:"handle"`
	ProjectID      uint64  `json:"project_id"`
	PV             string  `json:"pv"`
	CurrentBalance string  `json:"current_balance"`
	TrendingScore  string  `json:"trending_score"`
	TotalPaid      string  `json:"total_paid"`
	PaymentsCount  int     `json:"payments_count"`
	Terminal       *string `json:"terminal"`
	Deployer       string  `json:"deployer"`
	CreatedAt      int64   `json:"created_at"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	LogoURI        string  `json:"logo_uri"`
	MetadataURI    string  `json:"metadata_uri"`
	Tags           *string `json:"tags"`
	Archived       *string `json:"archived"`
}

// DisplayName is the handle of the project when it has one, its name
// otherwise.
func (p *Project) DisplayName() string {
	if p.Handle != nil && *p.Handle != "" {
		return "@" + *p.Handle
	}
	return p.Name
}

// SearchQuery filters projects. Zero values are not sent.
type SearchQuery struct {
	Text           string
	PV             string
	OrderBy        string
	Archived       *bool
	OrderDirection string
	PageSize       int
	ProjectID      uint64
}

func (q SearchQuery) options() []rpc.Option {
	var options []rpc.Option
	add := func(key, value string) {
		options = append(options, rpc.WithQueryParam(key, value))
	}
	if q.Text != "" {
		add("text", q.Text)
	}
	if q.PV != "" {
		add("pv", q.PV)
	}
	if q.OrderBy != "" {
		add("orderBy", q.OrderBy)
	}
	if q.Archived != nil {
		add("archived", strconv.FormatBool(*q.Archived))
	}
	if q.OrderDirection != "" {
		add("orderDirection", q.OrderDirection)
	}
	if q.PageSize > 0 {
		add("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.ProjectID > 0 {
		add("projectId", strconv.FormatUint(q.ProjectID, 10))
	}
	return options
}

// Client for searching Juicebox projects
type Client interface {
	SearchProjects(ctx context.Context, query SearchQuery, options ...rpc.Option) ([]Project, error)
}

type client struct {
	requester rpc.EndpointRequester
}

func NewClient(uri string, opts ...rpc.RequesterOption) Client {
	opts = append([]rpc.RequesterOption{rpc.WithName("juicebox")}, opts...)
	return &client{requester: rpc.NewEndpointRequester(uri, opts...)}
}

func (c *client) SearchProjects(ctx context.Context, query SearchQuery, options ...rpc.Option) ([]Project, error) {
	var projects []Project
	options = append(query.options(), options...)
	err := c.requester.SendRequest(ctx, http.MethodGet, projectsPath, nil, &projects, options...)
	return projects, err
}
