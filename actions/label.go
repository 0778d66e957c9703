// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/chain4travel/nance/governance"
	"github.com/chain4travel/nance/utils/formatting"
)

const (
	unrecognizedComment = "// Unrecognized action, pls check"
	scheduleDateLayout  = "Jan 2, 2006"

	// Juicebox split percents are expressed in parts per 1e9, displayed as %
	splitPercentDivisor = 10_000_000

	nativeSymbol     = "ETH"
	unresolvedSymbol = "TOKEN"
	juiceboxPrefix   = "juicebox@"
)

var (
	_ Visitor = (*labeler)(nil)

	errUnrecognized = errors.New("unrecognized action")
)

// TokenResolver looks up the ERC-20 symbol of a token contract
type TokenResolver interface {
	Symbol(ctx context.Context, contract string) (string, error)
}

// LabelContext carries what a label needs beyond the action itself. Every
// field is optional; missing fields drop the part of the label that needs
// them.
type LabelContext struct {
	// Cycle the space is currently in
	CurrentCycle int
	// Stage the space is currently in
	CurrentEvent *governance.DateEvent
	// Cycle the proposal was submitted for
	ProposalCycle int
	// Day lengths of the four stages of a cycle
	CycleStageLengths []int
	// Resolves token symbols of transfers
	Tokens TokenResolver
}

type labeler struct {
	ctx      context.Context
	lc       *LabelContext
	markdown bool

	label string
}

// Label renders [action] for display. It never fails: actions it can't
// describe are dumped as JSON behind a warning comment.
func Label(ctx context.Context, action Action, lc *LabelContext) string {
	if lc == nil {
		lc = &LabelContext{}
	}
	l := &labeler{ctx: ctx, lc: lc}
	if err := action.Visit(l); err != nil {
		return unrecognized(action)
	}
	return l.label
}

// ToMarkdown renders the canonical plain text form of [action] used in the
// signed proposal body.
func ToMarkdown(action Action) string {
	l := &labeler{
		ctx:      context.Background(),
		lc:       &LabelContext{},
		markdown: true,
	}
	if err := action.Visit(l); err != nil {
		return unrecognized(action)
	}
	return l.label
}

func (l *labeler) Payout(p *Payout) error {
	if l.markdown {
		l.label = fmt.Sprintf("Pay %s USD for %d cycles", formatting.CompactNumber(p.AmountUSD), p.Count)
		return nil
	}

	recipient := p.Address
	if p.IsProjectPayout() {
		recipient = juiceboxPrefix + strconv.FormatUint(p.Project, 10)
	}
	label := fmt.Sprintf("Pay %s %s USD for %d cycles", recipient, formatting.FormatFloat(p.AmountUSD), p.Count)

	var explanation []string
	if p.Count > 1 {
		explanation = append(explanation,
			fmt.Sprintf("%s USD in total", formatting.FormatFloat(p.AmountUSD*float64(p.Count))),
		)
	}
	if window, ok := l.payoutWindow(p); ok {
		explanation = append(explanation, window)
	}
	if len(explanation) > 0 {
		label += " (" + strings.Join(explanation, " ") + ")"
	}
	l.label = label
	return nil
}

// payoutWindow returns "from <first cycle start> to <last cycle end>"
func (l *labeler) payoutWindow(p *Payout) (string, bool) {
	if l.lc.CurrentEvent == nil || len(l.lc.CycleStageLengths) == 0 {
		return "", false
	}
	cycleDelta := l.lc.CurrentCycle - l.lc.ProposalCycle
	first, err := governance.ScheduleOfCycle(l.lc.CycleStageLengths, 1-cycleDelta, *l.lc.CurrentEvent)
	if err != nil {
		return "", false
	}
	last, err := governance.ScheduleOfCycle(l.lc.CycleStageLengths, p.Count-cycleDelta, *l.lc.CurrentEvent)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("from %s to %s",
		first.Start.UTC().Format(scheduleDateLayout),
		last.End.UTC().Format(scheduleDateLayout),
	), true
}

func (l *labeler) Transfer(t *Transfer) error {
	amount := t.Amount
	if l.markdown {
		if f, err := strconv.ParseFloat(t.Amount, 64); err == nil {
			amount = formatting.CompactNumber(f)
		}
	}
	l.label = fmt.Sprintf("Transfer %s %s to %s", amount, l.tokenSymbol(t.Contract), t.To)
	return nil
}

func (l *labeler) tokenSymbol(contract string) string {
	switch {
	case l.markdown:
		// signed bodies carry the contract as entered, native transfers included
		return contract
	case contract == "":
		return nativeSymbol
	case l.lc.Tokens == nil:
		return contract
	}
	symbol, err := l.lc.Tokens.Symbol(l.ctx, contract)
	if err != nil || symbol == "" {
		return unresolvedSymbol
	}
	return symbol
}

func (l *labeler) Reserve(r *Reserve) error {
	splits := SortedSplits(r.Splits)
	lines := make([]string, len(splits))
	for i, split := range splits {
		lines[i] = SplitLabel(split)
	}
	l.label = strings.Join(lines, "\n")
	return nil
}

// SortedSplits returns a copy of [splits] ordered by descending percent
func SortedSplits(splits []Split) []Split {
	sorted := slices.Clone(splits)
	slices.SortStableFunc(sorted, func(a, b Split) int {
		switch {
		case a.Percent > b.Percent:
			return -1
		case a.Percent < b.Percent:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// SplitLabel renders "Reserve 10.00% to <beneficiary | juicebox@id>"
func SplitLabel(split Split) string {
	percent := float64(split.Percent) / splitPercentDivisor
	recipient := split.Beneficiary
	if split.ProjectID != 0 {
		recipient = juiceboxPrefix + strconv.FormatUint(split.ProjectID, 10)
	}
	return fmt.Sprintf("Reserve %.2f%% to %s", percent, recipient)
}

func (l *labeler) CustomTransaction(c *CustomTransaction) error {
	value := ""
	if wei, err := ParseWei(c.Value); err == nil && wei.Sign() > 0 {
		value = fmt.Sprintf("{ %s ETH }", FormatEther(wei))
	}

	pairs := NamedArgs(c.FunctionName, c.Args)
	args := make([]string, len(pairs))
	for i, pair := range pairs {
		args[i] = pair[0] + ": " + pair[1]
	}

	l.label = fmt.Sprintf("%s.%s%s(%s)",
		c.Contract,
		ExtractFunctionName(c.FunctionName),
		value,
		strings.Join(args, ", "),
	)
	return nil
}

func (l *labeler) Unknown(*Unknown) error {
	return errUnrecognized
}

func unrecognized(action Action) string {
	dump, err := json.Marshal(action)
	if err != nil {
		dump = []byte(fmt.Sprintf("%+v", action))
	}
	return unrecognizedComment + "\n" + string(dump)
}
