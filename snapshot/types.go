// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package snapshot

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/chain4travel/nance/utils/formatting"
)

// ProposalType is the voting system of a Snapshot proposal
type ProposalType string

const (
	Basic        ProposalType = "basic"
	SingleChoice ProposalType = "single-choice"
	Approval     ProposalType = "approval"
	RankedChoice ProposalType = "ranked-choice"
	Weighted     ProposalType = "weighted"
	Quadratic    ProposalType = "quadratic"

	// number of choices listed in a summary
	summaryChoices = 3
)

// Vote is a vote as indexed by the hub. Choice depends on the proposal
// type: an index, a list of indices, an index keyed weight map, or a string
// for shielded votes.
type Vote struct {
	ID      string          `json:"id"`
	App     string          `json:"app"`
	Created int64           `json:"created"`
	Voter   string          `json:"voter"`
	Choice  json.RawMessage `json:"choice"`
	VP      float64         `json:"vp"`
	Reason  string          `json:"reason"`
}

// ProposalVotingInfo is the tally of a Snapshot proposal
type ProposalVotingInfo struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Type        ProposalType `json:"type"`
	State       string       `json:"state"`
	Choices     []string     `json:"choices"`
	Scores      []float64    `json:"scores"`
	ScoresTotal float64      `json:"scores_total"`
	Quorum      float64      `json:"quorum"`
	Start       int64        `json:"start"`
	End         int64        `json:"end"`
	Votes       int          `json:"votes"`
}

// Summary renders "<progress>% of quorum, <choice> <score>, ..." listing the
// first three choices. The quorum part is omitted when the proposal has no
// quorum.
func (info *ProposalVotingInfo) Summary() string {
	var sb strings.Builder
	if info.Quorum != 0 {
		progress := math.Round(info.ScoresTotal * 100 / info.Quorum)
		fmt.Fprintf(&sb, "%s%% of quorum, ", formatting.FormatFloat(progress))
	}

	count := len(info.Choices)
	if count > summaryChoices {
		count = summaryChoices
	}
	scores := make([]string, count)
	for i := 0; i < count; i++ {
		score := 0.0
		if i < len(info.Scores) {
			score = info.Scores[i]
		}
		scores[i] = info.Choices[i] + " " + formatting.CompactNumber(score)
	}
	sb.WriteString(strings.Join(scores, ", "))
	return sb.String()
}

// LabeledVote is a vote with its choice resolved for display
type LabeledVote struct {
	Vote
	Label string `json:"label"`
}

// LabelVotes resolves the choice of every vote of [info]
func LabelVotes(info *ProposalVotingInfo, votes []Vote) []LabeledVote {
	labeled := make([]LabeledVote, len(votes))
	for i, vote := range votes {
		labeled[i] = LabeledVote{
			Vote:  vote,
			Label: ChoiceLabel(info.Type, info.Choices, vote.Choice),
		}
	}
	return labeled
}
