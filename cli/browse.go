// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chain4travel/nance/export"
	"github.com/chain4travel/nance/nance"
	"github.com/chain4travel/nance/portal"
	"github.com/chain4travel/nance/snapshot"
	"github.com/chain4travel/nance/utils/formatting"
)

const (
	keywordFlag = "keyword"
	cycleFlag   = "cycle"
	pageFlag    = "page"
	outFlag     = "out"
	formatFlag  = "format"

	dateLayout = "Jan 2, 2006"
)

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(dateLayout)
}

func (c *commands) spacesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "spaces",
		Short: "List every space",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, env *environment, _ *cobra.Command, _ []string) error {
			p, err := env.portal(false)
			if err != nil {
				return err
			}
			spaces, err := p.LoadSpaces(ctx)
			if err != nil {
				return err
			}

			t := newTable("Spaces", "NAME", "DISPLAY NAME", "CYCLE", "STAGE", "SNAPSHOT")
			for _, space := range spaces {
				t.addRow(
					space.Name,
					space.DisplayName,
					strconv.Itoa(space.CurrentCycle),
					string(space.CurrentEvent.Title),
					space.SnapshotSpace,
				)
			}
			return t.write(env.out)
		}),
	}
}

func (c *commands) proposalsCommand() *cobra.Command {
	var query portal.SpaceQuery
	cmd := &cobra.Command{
		Use:   "proposals <space>",
		Short: "List the proposals of a space",
		Long: `List the proposals of a space.

Without a keyword the proposals currently in discussion or voting are
listed first, followed by one page of the selected cycle.`,
		Args: cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, env *environment, _ *cobra.Command, args []string) error {
			p, err := env.portal(false)
			if err != nil {
				return err
			}
			view, err := p.LoadSpace(ctx, args[0], query)
			if err != nil {
				return err
			}
			return writeSpaceView(env.out, view)
		}),
	}
	cmd.Flags().StringVar(&query.Keyword, keywordFlag, "", "Only list proposals matching the keyword")
	cmd.Flags().StringVar(&query.Cycle, cycleFlag, "", `Governance cycle to list, "All" for every cycle`)
	cmd.Flags().IntVar(&query.Page, pageFlag, 1, "Page of the listing")
	return cmd
}

func writeSpaceView(w io.Writer, view *portal.SpaceView) error {
	prefix := view.Proposals.ProposalInfo.ProposalIDPrefix
	title := view.Space.DisplayName
	if title == "" {
		title = view.Space.Name
	}
	fmt.Fprintf(w, "%s\n%s\n\n",
		titleStyle.Render(title),
		mutedStyle.Render(fmt.Sprintf("Cycle %d, %s until %s",
			view.Space.CurrentCycle,
			view.Space.CurrentEvent.Title,
			formatDate(view.Space.CurrentEvent.End),
		)),
	)

	if !view.SearchMode {
		active := proposalTable("Active", prefix, view.Active, view.VotingInfos)
		if err := active.write(w); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	listTitle := "Proposals"
	if view.SearchMode {
		listTitle = "Search results"
	}
	list := proposalTable(listTitle, prefix, view.Proposals.Proposals, view.VotingInfos)
	if err := list.write(w); err != nil {
		return err
	}
	if view.Proposals.HasMore {
		fmt.Fprintln(w, mutedStyle.Render("More proposals on the next page"))
	}
	return nil
}

func proposalTable(title, prefix string, proposals []nance.Proposal, infos map[string]*snapshot.ProposalVotingInfo) *table {
	t := newTable(title, "ID", "TITLE", "STATUS", "CYCLE", "VOTES")
	for i := range proposals {
		proposal := &proposals[i]
		votes := "-"
		if info, ok := infos[proposal.VoteURL]; ok && info != nil {
			votes = info.Summary()
		}
		t.addRow(
			proposal.DisplayID(prefix),
			proposal.Title,
			string(proposal.Status),
			strconv.Itoa(proposal.GovernanceCycle),
			votes,
		)
	}
	return t
}

func (c *commands) proposalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "proposal <space> <id>",
		Short: "Show a proposal with its actions and voting result",
		Args:  cobra.ExactArgs(2),
		RunE: c.run(func(ctx context.Context, env *environment, _ *cobra.Command, args []string) error {
			p, err := env.portal(false)
			if err != nil {
				return err
			}
			view, err := p.LoadProposal(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			_, err = io.WriteString(env.out, env.markdown.render(proposalMarkdown(view)))
			return err
		}),
	}
}

// proposalMarkdown renders the page of a proposal as one markdown document
func proposalMarkdown(view *portal.ProposalView) string {
	proposal := view.Proposal
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", proposal.Title)
	fmt.Fprintf(&sb, "**Status:** %s", proposal.Status)
	if proposal.GovernanceCycle != 0 {
		fmt.Fprintf(&sb, " | **Cycle:** %d", proposal.GovernanceCycle)
	}
	if proposal.AuthorAddress != "" {
		fmt.Fprintf(&sb, " | **Author:** %s", formatting.ShortenAddress(proposal.AuthorAddress))
	}
	sb.WriteString("\n\n")

	if len(view.Actions) > 0 {
		sb.WriteString("## Actions\n\n")
		for _, action := range view.Actions {
			fmt.Fprintf(&sb, "- **%s** %s\n", action.Type, action.Label)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(proposal.Body)
	sb.WriteString("\n")

	if view.Voting != nil {
		fmt.Fprintf(&sb, "\n## Voting\n\n%s, %s\n", view.Voting.State, view.Voting.Summary())
		if len(view.Votes) > 0 {
			sb.WriteString("\n| Voter | Choice | Power |\n|---|---|---|\n")
			for _, vote := range view.Votes {
				fmt.Fprintf(&sb, "| %s | %s | %s |\n",
					formatting.ShortenAddress(vote.Voter),
					strings.ReplaceAll(vote.Label, "|", `\|`),
					formatting.CompactNumber(vote.VP),
				)
			}
		}
	}
	return sb.String()
}

func (c *commands) scheduleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <space>",
		Short: "Show the governance calendar of a space",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(ctx context.Context, env *environment, _ *cobra.Command, args []string) error {
			p, err := env.portal(false)
			if err != nil {
				return err
			}
			schedule, err := p.Schedule(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(env.out, "%s\n%s\n\n",
				titleStyle.Render(fmt.Sprintf("Cycle %d", schedule.CurrentCycle)),
				mutedStyle.Render(fmt.Sprintf("%s to %s",
					formatDate(schedule.Cycle.Start),
					formatDate(schedule.Cycle.End),
				)),
			)
			t := newTable("Stages", "STAGE", "STARTS")
			for _, event := range schedule.Recent {
				stage := string(event.Title)
				if event.Title == schedule.CurrentEvent.Title {
					stage += " (current)"
				}
				t.addRow(stage, formatDate(event.Date))
			}
			return t.write(env.out)
		}),
	}
}

func (c *commands) votesCommand() *cobra.Command {
	var (
		out    string
		format string
	)
	cmd := &cobra.Command{
		Use:   "votes <space> <id>",
		Short: "List or export the votes of a proposal",
		Long: `List the votes cast on a proposal.

With --out the votes are written to a file, its extension selects the
format: .xlsx, .md or .yaml. With --format they are written to stdout.`,
		Args: cobra.ExactArgs(2),
		RunE: c.run(func(ctx context.Context, env *environment, _ *cobra.Command, args []string) error {
			p, err := env.portal(false)
			if err != nil {
				return err
			}
			view, err := p.LoadProposal(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if view.Voting == nil {
				return fmt.Errorf("%w: %s", errNotVoted, args[1])
			}
			votes := &export.Votes{
				Proposal: view.Voting,
				Votes:    view.Votes,
			}

			switch {
			case out != "":
				if err := export.WriteFile(out, votes); err != nil {
					return err
				}
				fmt.Fprintf(env.out, "wrote %d votes to %s\n", len(votes.Votes), out)
				return nil
			case format != "":
				f, err := export.ParseFormat(format)
				if err != nil {
					return err
				}
				encoded, err := export.Encode(f, votes)
				if err != nil {
					return err
				}
				_, err = env.out.Write(encoded)
				return err
			}

			t := newTable(view.Voting.Title, "VOTER", "CHOICE", "POWER", "REASON")
			for _, vote := range votes.Votes {
				t.addRow(
					formatting.ShortenAddress(vote.Voter),
					vote.Label,
					formatting.CompactNumber(vote.VP),
					vote.Reason,
				)
			}
			if err := t.write(env.out); err != nil {
				return err
			}
			fmt.Fprintln(env.out, mutedStyle.Render(view.Voting.Summary()))
			return nil
		}),
	}
	cmd.Flags().StringVar(&out, outFlag, "", "File to export the votes to")
	cmd.Flags().StringVar(&format, formatFlag, "", "Write the votes to stdout as md or yaml")
	return cmd
}
