// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package ipfs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/chain4travel/nance/utils/rpc"
)

const (
	DefaultAPI     = "https://ipfs.infura.io:5001/api/v0"
	DefaultGateway = "nance.infura-ipfs.io/ipfs"

	addPath   = "/add"
	formField = "file"
)

var (
	_ Client = (*client)(nil)

	ErrUploadFailed = errors.New("upload failed")
	errMissingHash  = errors.New("missing hash in response")
)

// Credentials for the pinning API, an empty ID disables authentication
type Credentials struct {
	ID     string
	Secret string
}

// AddResult is returned by the add endpoint
type AddResult struct {
	Name string `json:"Name"`
	Hash string `json:"Hash"`
	Size string `json:"Size"`
}

// Client uploads files and returns their gateway URL
type Client interface {
	Upload(ctx context.Context, name string, content io.Reader, options ...rpc.Option) (string, error)
}

type client struct {
	requester   rpc.EndpointRequester
	gateway     string
	credentials Credentials
}

func NewClient(api, gateway string, credentials Credentials, opts ...rpc.RequesterOption) Client {
	opts = append([]rpc.RequesterOption{rpc.WithName("ipfs")}, opts...)
	return &client{
		requester:   rpc.NewEndpointRequester(api, opts...),
		gateway:     strings.Trim(gateway, "/"),
		credentials: credentials,
	}
}

// GatewayURL of the content [cid] on [gateway]
func GatewayURL(gateway, cid string) string {
	gateway = strings.TrimPrefix(gateway, "https://")
	return "https://" + strings.Trim(gateway, "/") + "/" + cid
}

func (c *client) Upload(ctx context.Context, name string, content io.Reader, options ...rpc.Option) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(formField, name)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	options = append([]rpc.Option{rpc.WithBasicAuth(c.credentials.ID, c.credentials.Secret)}, options...)
	result := AddResult{}
	err = c.requester.SendRequest(
		ctx,
		http.MethodPost,
		addPath,
		&rpc.RawBody{ContentType: writer.FormDataContentType(), Body: body},
		&result,
		options...,
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	if result.Hash == "" {
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, errMissingHash)
	}
	return GatewayURL(c.gateway, result.Hash), nil
}
