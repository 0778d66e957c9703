// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chain4travel/nance/actions"
	"github.com/chain4travel/nance/nance"
	"github.com/chain4travel/nance/portal"
	"github.com/chain4travel/nance/snapshot"
)

const stdinPath = "-"

var (
	errNotVoted      = errors.New("proposal has no snapshot vote")
	errInvalidWeight = errors.New("invalid choice weight")
)

// readInput reads [path], "-" reads from [in]
func readInput(in io.Reader, path string) ([]byte, error) {
	if path == stdinPath {
		return io.ReadAll(in)
	}
	return os.ReadFile(path)
}

func readActions(in io.Reader, path string) ([]actions.Action, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := readInput(in, path)
	if err != nil {
		return nil, err
	}
	var parsed []actions.Action
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("couldn't parse actions of %s: %w", path, err)
	}
	return parsed, nil
}

func (c *commands) labelCommand() *cobra.Command {
	var markdown bool
	cmd := &cobra.Command{
		Use:   "label <actions.json>",
		Short: "Describe the actions of a JSON file",
		Long: `Describe the actions of a JSON file holding an array of actions, "-"
reads the array from stdin. With --markdown the actions section appended to
a proposal body is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, env *environment, _ *cobra.Command, args []string) error {
			parsed, err := readActions(env.in, args[0])
			if err != nil {
				return err
			}
			if markdown {
				_, err := fmt.Fprintln(env.out, actions.ActionsMarkdown(parsed))
				return err
			}

			lc := &actions.LabelContext{
				Tokens: env.tokenResolver(),
			}
			t := newTable("Actions", "TYPE", "LABEL")
			for _, action := range parsed {
				if err := env.metrics.MarkLabeled(action); err != nil {
					return err
				}
				t.addRow(string(action.Type()), actions.Label(ctx, action, lc))
			}
			return t.write(env.out)
		}),
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Print the markdown section of the actions")
	return cmd
}

func (c *commands) submitCommand() *cobra.Command {
	var (
		bodyPath    string
		actionsPath string
		status      string
		submission  portal.Submission
	)
	cmd := &cobra.Command{
		Use:   "submit <space>",
		Short: "Sign and upload a proposal",
		Long: `Sign and upload a proposal. A proposal with --uuid replaces the stored
proposal with that id, without one a new proposal is created.`,
		Args: cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, env *environment, _ *cobra.Command, args []string) error {
			body, err := readInput(env.in, bodyPath)
			if err != nil {
				return err
			}
			submission.Body = string(body)
			submission.Actions, err = readActions(env.in, actionsPath)
			if err != nil {
				return err
			}
			if status != "" {
				submission.Status, err = nance.ParseStatus(status)
				if err != nil {
					return err
				}
			}

			p, err := env.portal(true)
			if err != nil {
				return err
			}
			result, err := p.SubmitProposal(ctx, args[0], submission)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(env.out, "%s %s\n", titleStyle.Render("uploaded"), result.UUID)
			return err
		}),
	}
	cmd.Flags().StringVar(&submission.Title, "title", "", "Title of the proposal")
	cmd.Flags().StringVar(&submission.UUID, "uuid", "", "Id of the proposal to update")
	cmd.Flags().StringVar(&bodyPath, "body", "", `Markdown file holding the body, "-" for stdin`)
	cmd.Flags().StringVar(&actionsPath, "actions", "", "JSON file holding the actions")
	cmd.Flags().StringVar(&status, "status", "", "Status to upload the proposal with, defaults to Discussion")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}

func (c *commands) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <space> <uuid>",
		Short: "Sign and send the deletion of a proposal",
		Args:  cobra.ExactArgs(2),
		RunE: c.run(func(ctx context.Context, env *environment, _ *cobra.Command, args []string) error {
			p, err := env.portal(true)
			if err != nil {
				return err
			}
			if err := p.DeleteProposal(ctx, args[0], args[1]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(env.out, "%s %s\n", titleStyle.Render("deleted"), args[1])
			return err
		}),
	}
}

// parseWeights converts "<choice>=<weight>" pairs
func parseWeights(pairs map[string]int) (map[uint32]uint32, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	weights := make(map[uint32]uint32, len(pairs))
	for key, weight := range pairs {
		index, err := strconv.ParseUint(key, 10, 32)
		if err != nil || weight < 0 {
			return nil, fmt.Errorf("%w: %s=%d", errInvalidWeight, key, weight)
		}
		weights[uint32(index)] = uint32(weight)
	}
	return weights, nil
}

func (c *commands) voteCommand() *cobra.Command {
	var (
		index     uint
		indices   []uint
		weights   map[string]int
		encrypted string
		reason    string
	)
	cmd := &cobra.Command{
		Use:   "vote <space> <id>",
		Short: "Sign and cast a vote on the snapshot proposal of a proposal",
		Long: `Sign and cast a vote. Choices are 1-based. Basic and single-choice
proposals take --choice, approval and ranked-choice take --choices, weighted
and quadratic take --weights.`,
		Args: cobra.ExactArgs(2),
		RunE: c.run(func(ctx context.Context, env *environment, _ *cobra.Command, args []string) error {
			ballot := portal.Ballot{
				Space:    args[0],
				Proposal: args[1],
				Choice: snapshot.Choice{
					Index:     uint32(index),
					Encrypted: encrypted,
				},
				Reason: reason,
			}
			for _, i := range indices {
				ballot.Choice.Indices = append(ballot.Choice.Indices, uint32(i))
			}
			var err error
			ballot.Choice.Weights, err = parseWeights(weights)
			if err != nil {
				return err
			}

			p, err := env.portal(true)
			if err != nil {
				return err
			}
			receipt, err := p.CastVote(ctx, ballot)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(env.out, "%s %s\n", titleStyle.Render("voted"), receipt.ID)
			return err
		}),
	}
	cmd.Flags().UintVar(&index, "choice", 0, "Choice of a basic or single-choice vote")
	cmd.Flags().UintSliceVar(&indices, "choices", nil, "Choices of an approval or ranked-choice vote")
	cmd.Flags().StringToIntVar(&weights, "weights", nil, "Weights of a weighted or quadratic vote, as choice=weight")
	cmd.Flags().StringVar(&encrypted, "encrypted", "", "Encrypted choice of a shielded vote")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason shown along the vote")
	return cmd
}

func (c *commands) uploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Pin a file to IPFS and print its gateway URL",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, env *environment, _ *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			url, err := env.ipfsClient().Upload(ctx, filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(env.out, url)
			return err
		}),
	}
}
