// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/time/rate"

	"github.com/chain4travel/nance/utils/rpc"
)

const (
	statusOK = "1"

	// free tier allowance of etherscan like explorers
	DefaultRateLimit = 5
)

var (
	_ Client = (*client)(nil)

	ErrExplorer = errors.New("explorer API error")
)

// Client for interacting with an Etherscan compatible explorer API
type Client interface {
	// GetABI returns the verified ABI of [address] as JSON
	GetABI(ctx context.Context, address common.Address, options ...rpc.Option) (string, error)
}

type client struct {
	requester rpc.EndpointRequester
	apiKey    string
	limiter   *rate.Limiter
}

type response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// NewClient returns a Client for the explorer API at [uri]. At most
// [requestsPerSecond] requests are issued per second.
func NewClient(uri, apiKey string, requestsPerSecond float64, opts ...rpc.RequesterOption) Client {
	opts = append([]rpc.RequesterOption{rpc.WithName("explorer")}, opts...)
	return &client{
		requester: rpc.NewEndpointRequester(uri, opts...),
		apiKey:    apiKey,
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

func (c *client) GetABI(ctx context.Context, address common.Address, options ...rpc.Option) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	options = append([]rpc.Option{
		rpc.WithQueryParam("module", "contract"),
		rpc.WithQueryParam("action", "getabi"),
		rpc.WithQueryParam("address", address.Hex()),
		rpc.WithQueryParam("apikey", c.apiKey),
	}, options...)
	res := &response{}
	if err := c.requester.SendRequest(ctx, http.MethodGet, "", nil, res, options...); err != nil {
		return "", err
	}

	var result string
	if err := json.Unmarshal(res.Result, &result); err != nil {
		return "", fmt.Errorf("%w: unexpected result %s", ErrExplorer, res.Result)
	}
	if res.Status != statusOK {
		return "", fmt.Errorf("%w: %s", ErrExplorer, result)
	}
	return result, nil
}
