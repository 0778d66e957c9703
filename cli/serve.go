// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chain4travel/nance/api/server"
)

func (c *commands) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the portal over HTTP",
		Long: `Serve the portal pages as JSON, the JSON-RPC API, metrics and a health
check. Proposals and votes submitted over the API are signed with the
configured private key.`,
		Args: cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, env *environment, _ *cobra.Command, _ []string) error {
			p, err := env.portal(true)
			if err != nil {
				return err
			}
			handler, err := server.NewHandler(env.log, p, env.registry)
			if err != nil {
				return err
			}
			srv, err := server.New(env.log, env.config.Server, handler)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			go func() {
				<-ctx.Done()
				env.log.Info("shutting down HTTP API server")
				if err := srv.Shutdown(); err != nil {
					env.log.Error("failed to shut down HTTP API server",
						zap.Error(err),
					)
				}
			}()
			return srv.Dispatch()
		}),
	}
}
