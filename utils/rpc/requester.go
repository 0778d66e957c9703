// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/chain4travel/nance/utils/rpc"

	// maxErrorBodySize limits how much of a failed response is kept
	maxErrorBodySize = 4096

	defaultTimeout = 30 * time.Second
)

var _ EndpointRequester = (*endpointRequester)(nil)

// Observer is notified once per request. [status] is 0 when no response was
// received.
type Observer interface {
	Observe(endpoint string, status int, duration time.Duration)
}

// RawBody is sent as is instead of being JSON encoded
type RawBody struct {
	ContentType string
	Body        io.Reader
}

// EndpointRequester sends JSON requests to one base URI
type EndpointRequester interface {
	// SendRequest issues [method] on [path] relative to the base URI. [params]
	// is JSON encoded unless it is nil or a *RawBody, and a 2xx response body
	// is decoded into [reply] when it is non-nil.
	SendRequest(ctx context.Context, method, path string, params, reply interface{}, options ...Option) error
}

type RequesterOption func(*endpointRequester)

// WithHTTPClient replaces the default client
func WithHTTPClient(client *http.Client) RequesterOption {
	return func(r *endpointRequester) {
		r.client = client
	}
}

// WithObserver reports every request to [observer]
func WithObserver(observer Observer) RequesterOption {
	return func(r *endpointRequester) {
		r.observer = observer
	}
}

// WithName labels observations and spans, defaults to the host of the URI
func WithName(name string) RequesterOption {
	return func(r *endpointRequester) {
		r.name = name
	}
}

type endpointRequester struct {
	uri      string
	name     string
	client   *http.Client
	observer Observer
	tracer   trace.Tracer
}

func NewEndpointRequester(uri string, opts ...RequesterOption) EndpointRequester {
	r := &endpointRequester{
		uri:    strings.TrimSuffix(uri, "/"),
		client: &http.Client{Timeout: defaultTimeout},
		tracer: otel.Tracer(tracerName),
	}
	if u, err := url.Parse(uri); err == nil {
		r.name = u.Host
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *endpointRequester) SendRequest(
	ctx context.Context,
	method string,
	path string,
	params interface{},
	reply interface{},
	options ...Option,
) error {
	ctx, span := r.tracer.Start(ctx, method+" "+r.name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.path", path),
		),
	)
	defer span.End()

	status, err := r.send(ctx, method, path, params, reply, options)
	span.SetAttributes(attribute.Int("http.status_code", status))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *endpointRequester) send(
	ctx context.Context,
	method string,
	path string,
	params interface{},
	reply interface{},
	options []Option,
) (int, error) {
	ops := NewOptions(options)

	uri := r.uri + path
	if query := ops.QueryParams().Encode(); query != "" {
		separator := "?"
		if strings.Contains(uri, "?") {
			separator = "&"
		}
		uri += separator + query
	}

	var (
		body        io.Reader
		contentType string
	)
	switch p := params.(type) {
	case nil:
	case *RawBody:
		body = p.Body
		contentType = p.ContentType
	default:
		encoded, err := json.Marshal(params)
		if err != nil {
			return 0, fmt.Errorf("failed to encode client params: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	request, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header = ops.Headers().Clone()
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	request.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := r.client.Do(request)
	if err != nil {
		r.observe(0, start)
		return 0, fmt.Errorf("failed to issue request: %w", err)
	}
	defer resp.Body.Close()
	r.observe(resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		content, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return resp.StatusCode, &StatusError{
			Code: resp.StatusCode,
			Body: string(content),
		}
	}

	if reply == nil {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(reply); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode client response: %w", err)
	}
	return resp.StatusCode, nil
}

func (r *endpointRequester) observe(status int, start time.Time) {
	if r.observer != nil {
		r.observer.Observe(r.name, status, time.Since(start))
	}
}
