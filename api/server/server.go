// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/pires/go-proxyproto"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/chain4travel/nance/utils/logging"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

var _ Server = (*server)(nil)

type Config struct {
	Host string `json:"host"`
	Port uint16 `json:"port"`
	// Origins allowed to issue cross-origin requests
	AllowedOrigins []string `json:"allowedOrigins"`
	// Accept PROXY protocol headers from a load balancer in front
	ProxyProtocol bool `json:"proxyProtocol"`
}

// Server maintains the HTTP router
type Server interface {
	// Dispatch starts the API server and blocks until it stops
	Dispatch() error
	// Addr is the address the server listens on
	Addr() net.Addr
	// Shutdown this server
	Shutdown() error
}

type server struct {
	log      logging.Logger
	listener net.Listener
	srv      *http.Server
}

// New listens on the configured address and wraps [handler] with CORS and
// gzip support. Nothing is served until Dispatch is called.
func New(log logging.Logger, config Config, handler http.Handler) (Server, error) {
	address := net.JoinHostPort(config.Host, fmt.Sprintf("%d", config.Port))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("couldn't listen on %s: %w", address, err)
	}
	if config.ProxyProtocol {
		listener = &proxyproto.Listener{Listener: listener}
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowCredentials: true,
	}).Handler(gziphandler.GzipHandler(handler))

	return &server{
		log:      log,
		listener: listener,
		srv: &http.Server{
			Handler:           corsHandler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}, nil
}

func (s *server) Dispatch() error {
	s.log.Info("HTTP API server listening",
		zap.Stringer("address", s.listener.Addr()),
	)
	err := s.srv.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	err := s.srv.Shutdown(ctx)
	cancel()
	return err
}
