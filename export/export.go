// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package export

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/chain4travel/nance/snapshot"
	"github.com/chain4travel/nance/utils/formatting"
)

type Format string

const (
	XLSX     Format = "xlsx"
	Markdown Format = "md"
	YAML     Format = "yaml"

	votesSheet   = "Votes"
	summarySheet = "Summary"

	filePerms = 0o644
)

var (
	errUnknownFormat = errors.New("unknown export format")

	voteHeader = []interface{}{"Voter", "Choice", "Voting Power", "Reason", "Created", "App"}
)

// ParseFormat returns the format named [s], an extension like ".xlsx" is
// accepted as well
func ParseFormat(s string) (Format, error) {
	switch Format(strings.TrimPrefix(strings.ToLower(s), ".")) {
	case XLSX:
		return XLSX, nil
	case Markdown, "markdown":
		return Markdown, nil
	case YAML, "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", errUnknownFormat, s)
	}
}

// FormatOf infers the format of [path] from its extension
func FormatOf(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Votes is a voting result as exported
type Votes struct {
	Proposal *snapshot.ProposalVotingInfo `yaml:"proposal"`
	Votes    []snapshot.LabeledVote       `yaml:"votes"`
}

// Encode renders [votes] in [format]
func Encode(format Format, votes *Votes) ([]byte, error) {
	switch format {
	case XLSX:
		return encodeXLSX(votes)
	case Markdown:
		return encodeMarkdown(votes), nil
	case YAML:
		return encodeYAML(votes)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

// WriteFile atomically replaces [path] with [votes] encoded in the format
// its extension names.
func WriteFile(path string, votes *Votes) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	content, err := Encode(format, votes)
	if err != nil {
		return err
	}
	return renameio.WriteFile(path, content, filePerms)
}

func createdAt(vote snapshot.Vote) string {
	return time.Unix(vote.Created, 0).UTC().Format(time.RFC3339)
}

func encodeXLSX(votes *Votes) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", votesSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(votesSheet, "A1", &voteHeader); err != nil {
		return nil, err
	}
	for i, vote := range votes.Votes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{vote.Voter, vote.Label, vote.VP, vote.Reason, createdAt(vote.Vote), vote.App}
		if err := f.SetSheetRow(votesSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if votes.Proposal != nil {
		if _, err := f.NewSheet(summarySheet); err != nil {
			return nil, err
		}
		info := votes.Proposal
		rows := [][]interface{}{
			{"Title", info.Title},
			{"State", info.State},
			{"Type", string(info.Type)},
			{"Quorum", info.Quorum},
			{"Total", info.ScoresTotal},
		}
		for i, choice := range info.Choices {
			score := 0.0
			if i < len(info.Scores) {
				score = info.Scores[i]
			}
			rows = append(rows, []interface{}{choice, score})
		}
		for i := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeMarkdown(votes *Votes) []byte {
	var b bytes.Buffer
	if info := votes.Proposal; info != nil {
		fmt.Fprintf(&b, "# %s\n\n", info.Title)
		fmt.Fprintf(&b, "%s\n\n", info.Summary())
	}
	b.WriteString("| Voter | Choice | Voting Power | Reason |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, vote := range votes.Votes {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			formatting.ShortenAddress(vote.Voter),
			escapeCell(vote.Label),
			formatting.CompactNumber(vote.VP),
			escapeCell(vote.Reason),
		)
	}
	return b.Bytes()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

type yamlVote struct {
	Voter   string  `yaml:"voter"`
	Choice  string  `yaml:"choice"`
	VP      float64 `yaml:"vp"`
	Reason  string  `yaml:"reason,omitempty"`
	Created string  `yaml:"created"`
	App     string  `yaml:"app,omitempty"`
}

type yamlProposal struct {
	ID      string             `yaml:"id"`
	Title   string             `yaml:"title"`
	State   string             `yaml:"state"`
	Type    string             `yaml:"type"`
	Quorum  float64            `yaml:"quorum"`
	Total   float64            `yaml:"total"`
	Summary string             `yaml:"summary"`
	Scores  map[string]float64 `yaml:"scores"`
}

type yamlDocument struct {
	Proposal *yamlProposal `yaml:"proposal,omitempty"`
	Votes    []yamlVote    `yaml:"votes"`
}

func encodeYAML(votes *Votes) ([]byte, error) {
	doc := yamlDocument{Votes: make([]yamlVote, len(votes.Votes))}
	if info := votes.Proposal; info != nil {
		scores := make(map[string]float64, len(info.Choices))
		for i, choice := range info.Choices {
			if i < len(info.Scores) {
				scores[choice] = info.Scores[i]
			} else {
				scores[choice] = 0
			}
		}
		doc.Proposal = &yamlProposal{
			ID:      info.ID,
			Title:   info.Title,
			State:   info.State,
			Type:    string(info.Type),
			Quorum:  info.Quorum,
			Total:   info.ScoresTotal,
			Summary: info.Summary(),
			Scores:  scores,
		}
	}
	for i, vote := range votes.Votes {
		doc.Votes[i] = yamlVote{
			Voter:   vote.Voter,
			Choice:  vote.Label,
			VP:      vote.VP,
			Reason:  vote.Reason,
			Created: createdAt(vote.Vote),
			App:     vote.App,
		}
	}
	return yaml.Marshal(&doc)
}
