// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/chain4travel/nance/actions"
	"github.com/chain4travel/nance/config"
	"github.com/chain4travel/nance/explorer"
	"github.com/chain4travel/nance/ipfs"
	"github.com/chain4travel/nance/juicebox"
	"github.com/chain4travel/nance/metrics"
	"github.com/chain4travel/nance/nance"
	"github.com/chain4travel/nance/portal"
	"github.com/chain4travel/nance/safe"
	"github.com/chain4travel/nance/signing"
	"github.com/chain4travel/nance/snapshot"
	"github.com/chain4travel/nance/trace"
	"github.com/chain4travel/nance/utils/logging"
	"github.com/chain4travel/nance/utils/rpc"
	"github.com/chain4travel/nance/utils/wrappers"
)

// environment is everything a command needs, built once the flags are
// parsed
type environment struct {
	out      io.Writer
	in       io.Reader
	config   config.Config
	log      logging.Logger
	registry *prometheus.Registry
	metrics  metrics.Metrics
	tracer   trace.Tracer
	markdown *markdownRenderer

	eth *ethclient.Client
}

func newEnvironment(fs *pflag.FlagSet, out io.Writer, in io.Reader) (*environment, error) {
	v, err := config.NewViper(fs)
	if err != nil {
		return nil, err
	}
	cfg, err := config.GetConfig(v)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(config.AppName, cfg.Logging)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	m, err := metrics.New(cfg.MetricsNamespace, registry)
	if err != nil {
		log.Stop()
		return nil, fmt.Errorf("couldn't register metrics: %w", err)
	}

	tracer, err := trace.New(config.AppName, Version, cfg.Tracing)
	if err != nil {
		log.Stop()
		return nil, err
	}

	markdown, err := newMarkdownRenderer(out)
	if err != nil {
		log.Stop()
		_ = tracer.Close()
		return nil, err
	}

	log.Debug("initialized environment",
		zap.Reflect("config", cfg),
	)
	return &environment{
		out:      out,
		in:       in,
		config:   cfg,
		log:      log,
		registry: registry,
		metrics:  m,
		tracer:   tracer,
		markdown: markdown,
	}, nil
}

func (e *environment) Close() error {
	errs := wrappers.Errs{}
	errs.Add(e.tracer.Close())
	if e.eth != nil {
		e.eth.Close()
	}
	e.log.Stop()
	return errs.Err
}

func (e *environment) requesterOptions() []rpc.RequesterOption {
	return []rpc.RequesterOption{
		rpc.WithObserver(e.metrics),
	}
}

func (e *environment) nanceClient() nance.Client {
	return nance.NewClient(e.config.Clients.NanceAPI, e.requesterOptions()...)
}

func (e *environment) snapshotClient() snapshot.Client {
	clients := e.config.Clients
	return snapshot.NewClient(clients.SnapshotHub, clients.SnapshotAPIKey, e.requesterOptions()...)
}

func (e *environment) explorerClient() explorer.Client {
	clients := e.config.Clients
	return explorer.NewClient(
		clients.ExplorerAPI,
		clients.ExplorerAPIKey,
		clients.ExplorerRateLimit,
		e.requesterOptions()...,
	)
}

func (e *environment) juiceboxClient() juicebox.Client {
	return juicebox.NewClient(e.config.Clients.JuiceboxAPI, e.requesterOptions()...)
}

func (e *environment) safeClient() safe.Client {
	return safe.NewClient(e.config.Clients.SafeAPI, e.requesterOptions()...)
}

func (e *environment) ipfsClient() ipfs.Client {
	clients := e.config.Clients
	return ipfs.NewClient(
		clients.IPFSAPI,
		clients.IPFSGateway,
		clients.IPFSCredentials,
		e.requesterOptions()...,
	)
}

// chainReader dials the JSON-RPC endpoint of the configured chain. HTTP
// endpoints aren't contacted before the first call.
func (e *environment) chainReader() (*ethclient.Client, error) {
	if e.eth != nil {
		return e.eth, nil
	}
	eth, err := ethclient.Dial(e.config.Clients.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("couldn't dial %s: %w", e.config.Clients.RPCURL, err)
	}
	e.eth = eth
	return eth, nil
}

// tokenResolver returns nil when the chain can't be reached, transfers are
// then labeled with their contract address
func (e *environment) tokenResolver() actions.TokenResolver {
	if e.config.Clients.RPCURL == "" {
		return nil
	}
	reader, err := e.chainReader()
	if err != nil {
		e.log.Warn("token symbols unavailable",
			zap.Error(err),
		)
		return nil
	}
	return explorer.NewTokenSymbols(reader)
}

// wallet loads the configured private key, prompting for it when none is
// configured and the input is a terminal. A nil wallet is returned when no
// key is available.
func (e *environment) wallet() (signing.Wallet, error) {
	key := e.config.PrivateKey
	if key == "" {
		f, ok := e.in.(*os.File)
		if !ok || !term.IsTerminal(int(f.Fd())) {
			return nil, nil
		}
		fmt.Fprint(e.out, "Private key: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(e.out)
		if err != nil {
			return nil, fmt.Errorf("couldn't read private key: %w", err)
		}
		key = strings.TrimSpace(string(raw))
	}
	if key == "" {
		return nil, nil
	}
	wallet, err := signing.ParseKeyWallet(key)
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// portal builds the portal service. Signing is only set up when [sign] is
// set so read-only commands never prompt for a key.
func (e *environment) portal(sign bool) (*portal.Service, error) {
	var signer *signing.Signer
	if sign {
		wallet, err := e.wallet()
		if err != nil {
			return nil, err
		}
		if wallet != nil {
			signer = signing.NewSigner(e.log, wallet)
		}
	}
	return portal.NewService(
		e.log,
		e.config.Portal,
		e.nanceClient(),
		e.snapshotClient(),
		e.tokenResolver(),
		signer,
		e.metrics,
	), nil
}
