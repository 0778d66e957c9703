// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/chain4travel/nance/explorer"
	"github.com/chain4travel/nance/juicebox"
	"github.com/chain4travel/nance/safe"
	"github.com/chain4travel/nance/utils/formatting"
)

var (
	errNoTreasury     = errors.New("space has no treasury address")
	errInvalidAddress = errors.New("invalid address")
)

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", errInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}

func (c *commands) balancesCommand() *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "balances [space]",
		Short: "List the assets held by the treasury of a space",
		Args:  cobra.MaximumNArgs(1),
		RunE: c.run(func(ctx context.Context, env *environment, cmd *cobra.Command, args []string) error {
			if address == "" {
				if len(args) == 0 {
					return cmd.Usage()
				}
				space, err := env.nanceClient().GetSpace(ctx, args[0])
				if err != nil {
					return err
				}
				if space.TransactorAddress == nil || space.TransactorAddress.Address == "" {
					return fmt.Errorf("%w: %s", errNoTreasury, args[0])
				}
				address = space.TransactorAddress.Address
			}
			treasury, err := parseAddress(address)
			if err != nil {
				return err
			}

			balances, err := env.safeClient().GetBalancesUSD(ctx, treasury)
			if err != nil {
				return err
			}
			safe.SortByFiat(balances)

			native := env.config.Clients.Chain.NativeSymbol
			t := newTable(formatting.ShortenAddress(treasury.Hex()), "ASSET", "BALANCE", "USD")
			for i := range balances {
				balance := &balances[i]
				t.addRow(
					balance.Symbol(native),
					formatting.CompactNumber(balance.Amount()),
					formatting.CompactNumber(balance.Fiat()),
				)
			}
			if err := t.write(env.out); err != nil {
				return err
			}
			_, err = fmt.Fprintln(env.out, mutedStyle.Render("Total "+formatting.CompactNumber(safe.TotalFiat(balances))+" USD"))
			return err
		}),
	}
	cmd.Flags().StringVar(&address, "address", "", "Safe to list instead of the treasury of a space")
	return cmd
}

func (c *commands) projectsCommand() *cobra.Command {
	query := juicebox.SearchQuery{}
	var archived bool
	cmd := &cobra.Command{
		Use:   "projects [text]",
		Short: "Search Juicebox projects",
		Args:  cobra.MaximumNArgs(1),
		RunE: c.run(func(ctx context.Context, env *environment, cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				query.Text = args[0]
			}
			if cmd.Flags().Changed("archived") {
				query.Archived = &archived
			}
			projects, err := env.juiceboxClient().SearchProjects(ctx, query)
			if err != nil {
				return err
			}

			t := newTable("Projects", "ID", "NAME", "VERSION", "PAYMENTS")
			for i := range projects {
				project := &projects[i]
				t.addRow(
					strconv.FormatUint(project.ProjectID, 10),
					project.DisplayName(),
					"v"+project.PV,
					strconv.Itoa(project.PaymentsCount),
				)
			}
			return t.write(env.out)
		}),
	}
	cmd.Flags().StringVar(&query.PV, "pv", "", "Only projects of this protocol version")
	cmd.Flags().StringVar(&query.OrderBy, "order-by", "", "Field to order the projects by")
	cmd.Flags().IntVar(&query.PageSize, "page-size", 0, "Number of projects returned")
	cmd.Flags().BoolVar(&archived, "archived", false, "Only archived, or with false only active projects")
	return cmd
}

func (c *commands) abiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "abi <address>",
		Short: "Show the functions of a contract, following proxies",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, env *environment, _ *cobra.Command, args []string) error {
			address, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			reader, err := env.chainReader()
			if err != nil {
				return err
			}
			resolver := explorer.NewResolver(env.log, env.explorerClient(), reader)
			contract, err := resolver.ResolveABI(ctx, address)
			if err != nil {
				return err
			}

			title := contract.Address.Hex()
			if contract.IsProxy() {
				title += " -> " + contract.Implementation.Hex()
			}
			names := make([]string, 0, len(contract.ABI.Methods))
			for name := range contract.ABI.Methods {
				names = append(names, name)
			}
			sort.Strings(names)

			t := newTable(title, "FUNCTION", "MUTABILITY")
			for _, name := range names {
				method := contract.ABI.Methods[name]
				t.addRow(method.Sig, method.StateMutability)
			}
			return t.write(env.out)
		}),
	}
}
