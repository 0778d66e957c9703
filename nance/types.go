// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package nance

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/chain4travel/nance/actions"
	"github.com/chain4travel/nance/governance"
	"github.com/chain4travel/nance/snapshot"
)

// Status of a proposal in its lifecycle
type Status string

const (
	StatusDiscussion       Status = "Discussion"
	StatusDraft            Status = "Draft"
	StatusTemperatureCheck Status = "Temperature Check"
	StatusVoting           Status = "Voting"
	StatusApproved         Status = "Approved"
	StatusCancelled        Status = "Cancelled"
	StatusArchived         Status = "Archived"
	StatusRevoked          Status = "Revoked"
	StatusFinished         Status = "Finished"
	StatusPrivate          Status = "Private"
)

// StatusNames lists every status the API accepts
var StatusNames = []Status{
	StatusDiscussion,
	StatusDraft,
	StatusTemperatureCheck,
	StatusVoting,
	StatusApproved,
	StatusCancelled,
	StatusArchived,
	StatusRevoked,
	StatusFinished,
	StatusPrivate,
}

// ParseStatus returns the status named [s]
func ParseStatus(s string) (Status, error) {
	for _, status := range StatusNames {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", errUnknownStatus, s)
}

// VoteSetup describes how a proposal is voted on
type VoteSetup struct {
	Type    snapshot.ProposalType `json:"type"`
	Choices []string              `json:"choices"`
}

// Proposal as stored by the proposal API
type Proposal struct {
	UUID            string           `json:"uuid"`
	ProposalID      *int             `json:"proposalId,omitempty"`
	Title           string           `json:"title"`
	Body            string           `json:"body"`
	Status          Status           `json:"status"`
	AuthorAddress   string           `json:"authorAddress,omitempty"`
	Coauthors       []string         `json:"coauthors,omitempty"`
	GovernanceCycle int              `json:"governanceCycle,omitempty"`
	Actions         []actions.Action `json:"actions"`
	VoteURL         string           `json:"voteURL,omitempty"`
	CreatedTime     *time.Time       `json:"createdTime,omitempty"`
	LastEditedTime  *time.Time       `json:"lastEditedTime,omitempty"`
	VoteSetup       *VoteSetup       `json:"voteSetup,omitempty"`
}

// HasAction reports whether the proposal carries an action of [actionType]
func (p *Proposal) HasAction(actionType actions.Type) bool {
	for _, action := range p.Actions {
		if action.Type() == actionType {
			return true
		}
	}
	return false
}

// DisplayID renders "<prefix><id>", or "tbd" while no id is assigned
func (p *Proposal) DisplayID(prefix string) string {
	if p.ProposalID == nil {
		return "tbd"
	}
	return fmt.Sprintf("%s%d", prefix, *p.ProposalID)
}

// ProposalInfo is the space wide metadata sent along a proposal list
type ProposalInfo struct {
	SnapshotSpace         string  `json:"snapshotSpace"`
	ProposalIDPrefix      string  `json:"proposalIdPrefix"`
	MinTokenPassingAmount float64 `json:"minTokenPassingAmount"`
}

// ProposalsPacket is one page of proposals of a space
type ProposalsPacket struct {
	ProposalInfo ProposalInfo `json:"proposalInfo"`
	Proposals    []Proposal   `json:"proposals"`
	HasMore      bool         `json:"hasMore"`
}

// TransactorAddress is the treasury executing the actions of a space
type TransactorAddress struct {
	Type    string `json:"type"`
	Network string `json:"network"`
	Address string `json:"address"`
}

// SpaceInfo is the current state of a space
type SpaceInfo struct {
	Name              string               `json:"name"`
	DisplayName       string               `json:"displayName"`
	CurrentCycle      int                  `json:"currentCycle"`
	CurrentEvent      governance.DateEvent `json:"currentEvent"`
	SnapshotSpace     string               `json:"snapshotSpace"`
	JuiceboxProjectID string               `json:"juiceboxProjectId"`
	TransactorAddress *TransactorAddress   `json:"transactorAddress,omitempty"`
	DolthubLink       string               `json:"dolthubLink,omitempty"`
}

// SpaceConfig is the configuration of a space. Config is passed through
// untouched.
type SpaceConfig struct {
	Space             string          `json:"space"`
	DisplayName       string          `json:"displayName"`
	CycleStageLengths []int           `json:"cycleStageLengths"`
	Config            json.RawMessage `json:"config,omitempty"`
}

// APIResponse is the envelope of every proposal API response
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    T      `json:"data"`
}

// ProposalPayload is the part of a proposal an author uploads
type ProposalPayload struct {
	UUID    string           `json:"uuid"`
	Title   string           `json:"title"`
	Body    string           `json:"body"`
	Status  Status           `json:"status"`
	Actions []actions.Action `json:"actions"`
}

// ProposalUpload creates or updates a proposal
type ProposalUpload struct {
	Proposal          ProposalPayload `json:"proposal"`
	UploaderAddress   string          `json:"uploaderAddress"`
	UploaderSignature string          `json:"uploaderSignature"`
}

// ProposalDeletion deletes a proposal
type ProposalDeletion struct {
	UUID             string `json:"uuid"`
	DeleterAddress   string `json:"deleterAddress"`
	DeleterSignature string `json:"deleterSignature"`
}

// UploadResult identifies the proposal an upload created or updated
type UploadResult struct {
	UUID string `json:"uuid"`
	Hash string `json:"hash,omitempty"`
}
