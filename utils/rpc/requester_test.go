// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type observation struct {
	endpoint string
	status   int
}

type recordingObserver struct {
	observations []observation
}

func (o *recordingObserver) Observe(endpoint string, status int, _ time.Duration) {
	o.observations = append(o.observations, observation{endpoint: endpoint, status: status})
}

func TestSendRequest(t *testing.T) {
	require := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(http.MethodPost, r.Method)
		require.Equal("/juicebox/proposals", r.URL.Path)
		require.Equal("3", r.URL.Query().Get("cycle"))
		require.Equal("secret", r.Header.Get("x-api-key"))
		require.Equal("application/json", r.Header.Get("Content-Type"))

		body := map[string]string{}
		require.NoError(json.NewDecoder(r.Body).Decode(&body))
		require.Equal("hello", body["title"])

		_, _ = fmt.Fprint(w, `{"uuid":"abc"}`)
	}))
	defer server.Close()

	observer := &recordingObserver{}
	requester := NewEndpointRequester(server.URL, WithObserver(observer), WithName("nance"))

	reply := struct {
		UUID string `json:"uuid"`
	}{}
	err := requester.SendRequest(
		context.Background(),
		http.MethodPost,
		"/juicebox/proposals",
		map[string]string{"title": "hello"},
		&reply,
		WithQueryParam("cycle", "3"),
		WithHeader("x-api-key", "secret"),
	)
	require.NoError(err)
	require.Equal("abc", reply.UUID)
	require.Equal([]observation{{endpoint: "nance", status: http.StatusOK}}, observer.observations)
}

func TestSendRequestRawBody(t *testing.T) {
	require := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal("text/plain", r.Header.Get("Content-Type"))
		user, password, ok := r.BasicAuth()
		require.True(ok)
		require.Equal("id", user)
		require.Equal("secret", password)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	requester := NewEndpointRequester(server.URL)
	err := requester.SendRequest(
		context.Background(),
		http.MethodPut,
		"/",
		&RawBody{ContentType: "text/plain", Body: strings.NewReader("raw")},
		nil,
		WithBasicAuth("id", "secret"),
	)
	require.NoError(err)
}

func TestSendRequestStatusError(t *testing.T) {
	require := require.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprint(w, `{"error":"not_found","error_description":"proposal not found"}`)
	}))
	defer server.Close()

	requester := NewEndpointRequester(server.URL)
	err := requester.SendRequest(context.Background(), http.MethodGet, "/missing", nil, nil)

	var statusErr *StatusError
	require.True(errors.As(err, &statusErr))
	require.Equal(http.StatusNotFound, statusErr.Code)
	require.True(NotFound(err))
	require.Equal("proposal not found", ErrorMessage(err))
}

func TestErrorMessage(t *testing.T) {
	tests := map[string]struct {
		err      error
		expected string
	}{
		"nil": {
			err:      nil,
			expected: "",
		},
		"plain error": {
			err:      errors.New("user rejected the request"),
			expected: "user rejected the request",
		},
		"message field": {
			err:      fmt.Errorf("wrapped: %w", &StatusError{Code: 400, Body: `{"message":"bad signature"}`}),
			expected: "bad signature",
		},
		"error field": {
			err:      &StatusError{Code: 500, Body: `{"error":"boom"}`},
			expected: "boom",
		},
		"non json body": {
			err:      &StatusError{Code: 502, Body: "bad gateway"},
			expected: "received status code: 502: bad gateway",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tt.expected, ErrorMessage(tt.err))
		})
	}
}
