// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cli implements the nance command line: browsing spaces and
// proposals, signing proposals and votes, treasury lookups and the HTTP
// server.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/chain4travel/nance/config"
	"github.com/chain4travel/nance/utils/wrappers"
)

// Version is overwritten at build time
var Version = "v0.1.0"

type runFunc func(ctx context.Context, env *environment, cmd *cobra.Command, args []string) error

type commands struct {
	flags *pflag.FlagSet
}

// run builds the environment from the parsed flags, runs [f] and releases
// the environment again
func (c *commands) run(f runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(c.flags, cmd.OutOrStdout(), cmd.InOrStdin())
		if err != nil {
			return err
		}
		errs := wrappers.Errs{}
		errs.Add(
			f(cmd.Context(), env, cmd, args),
			env.Close(),
		)
		return errs.Err
	}
}

// NewCommand returns the root command. Every flag of the configuration is
// accepted by every sub command.
func NewCommand() *cobra.Command {
	c := &commands{flags: config.BuildFlagSet()}

	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "Browse and take part in the governance of Nance spaces",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().AddFlagSet(c.flags)

	root.AddCommand(
		c.spacesCommand(),
		c.proposalsCommand(),
		c.proposalCommand(),
		c.scheduleCommand(),
		c.votesCommand(),
		c.labelCommand(),
		c.submitCommand(),
		c.deleteCommand(),
		c.voteCommand(),
		c.uploadCommand(),
		c.balancesCommand(),
		c.projectsCommand(),
		c.abiCommand(),
		c.serveCommand(),
	)
	return root
}
