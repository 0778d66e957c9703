// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package snapshot

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/chain4travel/nance/signing"
	"github.com/chain4travel/nance/utils/logging"
)

const (
	DomainName    = "snapshot"
	DomainVersion = "0.1.4"

	// App identifies votes cast from this portal
	App = "nance.app"

	votePrimaryType = "Vote"
	emptyMetadata   = "{}"
)

var (
	errChoiceType      = errors.New("choice doesn't match the proposal type")
	errMissingProposal = errors.New("missing proposal id")
	errMissingSpace    = errors.New("missing space")

	voteDomain = apitypes.TypedDataDomain{
		Name:    DomainName,
		Version: DomainVersion,
	}
)

// Choice is the choice of a vote to cast. Exactly one field is used,
// depending on the proposal type.
type Choice struct {
	// basic and single-choice
	Index uint32 `json:"index,omitempty"`
	// approval and ranked-choice
	Indices []uint32 `json:"indices,omitempty"`
	// weighted and quadratic, keyed by 1-based index
	Weights map[uint32]uint32 `json:"weights,omitempty"`
	// shielded votes
	Encrypted string `json:"encrypted,omitempty"`
}

// CastVoteArgs describes a vote to cast
type CastVoteArgs struct {
	Space    string
	Proposal string
	Type     ProposalType
	Choice   Choice
	Reason   string
	// Timestamp defaults to now
	Timestamp uint64
}

// SignedMessage is the body the hub accepts on its message endpoint
type SignedMessage struct {
	Address string            `json:"address"`
	Sig     string            `json:"sig"`
	Data    SignedMessageData `json:"data"`
}

type SignedMessageData struct {
	Domain  map[string]interface{}    `json:"domain"`
	Types   apitypes.Types            `json:"types"`
	Message apitypes.TypedDataMessage `json:"message"`
}

// Receipt is returned by the hub once a message is accepted
type Receipt struct {
	ID      string `json:"id"`
	IPFS    string `json:"ipfs"`
	Relayer struct {
		Address string `json:"address"`
		Receipt string `json:"receipt"`
	} `json:"relayer"`
}

func voteFields(proposalType, choiceType string) []apitypes.Type {
	return []apitypes.Type{
		{Name: "from", Type: "address"},
		{Name: "space", Type: "string"},
		{Name: "timestamp", Type: "uint64"},
		{Name: "proposal", Type: proposalType},
		{Name: "choice", Type: choiceType},
		{Name: "reason", Type: "string"},
		{Name: "app", Type: "string"},
		{Name: "metadata", Type: "string"},
	}
}

// NewVoteTypedData returns the envelope signed by [from] to cast [args].
// Proposal ids in hex are typed bytes32, others string.
func NewVoteTypedData(from common.Address, args CastVoteArgs) (apitypes.TypedData, error) {
	switch {
	case args.Space == "":
		return apitypes.TypedData{}, errMissingSpace
	case args.Proposal == "":
		return apitypes.TypedData{}, errMissingProposal
	}

	proposalType := "string"
	if strings.HasPrefix(args.Proposal, "0x") {
		proposalType = "bytes32"
	}
	choiceType, choice, err := encodeChoice(args.Type, args.Choice)
	if err != nil {
		return apitypes.TypedData{}, err
	}
	timestamp := args.Timestamp
	if timestamp == 0 {
		timestamp = uint64(time.Now().Unix())
	}

	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain":  signing.DomainType,
			votePrimaryType: voteFields(proposalType, choiceType),
		},
		PrimaryType: votePrimaryType,
		Domain:      voteDomain,
		Message: apitypes.TypedDataMessage{
			"from":      from.Hex(),
			"space":     args.Space,
			"timestamp": new(big.Int).SetUint64(timestamp),
			"proposal":  args.Proposal,
			"choice":    choice,
			"reason":    args.Reason,
			"app":       App,
			"metadata":  emptyMetadata,
		},
	}, nil
}

// encodeChoice returns the EIP-712 type and value of [choice]. Weighted
// choices are signed as their JSON text.
func encodeChoice(proposalType ProposalType, choice Choice) (string, interface{}, error) {
	if choice.Encrypted != "" {
		return "string", choice.Encrypted, nil
	}
	switch proposalType {
	case Approval, RankedChoice:
		if len(choice.Indices) == 0 {
			return "", nil, fmt.Errorf("%w: %s needs a list of choices", errChoiceType, proposalType)
		}
		indices := make([]interface{}, len(choice.Indices))
		for i, index := range choice.Indices {
			indices[i] = new(big.Int).SetUint64(uint64(index))
		}
		return "uint32[]", indices, nil
	case Quadratic, Weighted:
		if len(choice.Weights) == 0 {
			return "", nil, fmt.Errorf("%w: %s needs choice weights", errChoiceType, proposalType)
		}
		return "string", weightsJSON(choice.Weights), nil
	default:
		if choice.Index == 0 {
			return "", nil, fmt.Errorf("%w: %s needs a choice index", errChoiceType, proposalType)
		}
		return "uint32", new(big.Int).SetUint64(uint64(choice.Index)), nil
	}
}

// weightsJSON renders {"1":1,"2":3} with keys in ascending index order
func weightsJSON(weights map[uint32]uint32) string {
	keys := maps.Keys(weights)
	slices.Sort(keys)
	entries := make([]string, len(keys))
	for i, key := range keys {
		entries[i] = strconv.Quote(strconv.FormatUint(uint64(key), 10)) + ":" + strconv.FormatUint(uint64(weights[key]), 10)
	}
	return "{" + strings.Join(entries, ",") + "}"
}

// NewSignedMessage wraps a signed envelope the way the hub expects it,
// without the domain type.
func NewSignedMessage(data apitypes.TypedData, sig *signing.Signature) *SignedMessage {
	types := make(apitypes.Types, len(data.Types))
	for name, fields := range data.Types {
		if name != "EIP712Domain" {
			types[name] = fields
		}
	}
	return &SignedMessage{
		Address: sig.Address.Hex(),
		Sig:     sig.Signature,
		Data: SignedMessageData{
			Domain:  data.Domain.Map(),
			Types:   types,
			Message: data.Message,
		},
	}
}

// Voter casts votes signed by a wallet
type Voter struct {
	log    logging.Logger
	client Client
	signer *signing.Signer
}

func NewVoter(log logging.Logger, client Client, signer *signing.Signer) *Voter {
	return &Voter{
		log:    log,
		client: client,
		signer: signer,
	}
}

// CastVote signs [args] and relays the vote to the hub. Nothing is retried.
func (v *Voter) CastVote(ctx context.Context, args CastVoteArgs) (*Receipt, error) {
	data, err := NewVoteTypedData(v.signer.Wallet().Address(), args)
	if err != nil {
		return nil, err
	}
	sig, err := v.signer.Sign(ctx, data)
	if err != nil {
		return nil, err
	}
	receipt, err := v.client.SendMessage(ctx, NewSignedMessage(data, sig))
	if err != nil {
		return nil, fmt.Errorf("couldn't cast vote on %s: %w", args.Proposal, err)
	}

	v.log.Info("vote cast",
		zap.String("space", args.Space),
		zap.String("proposal", args.Proposal),
		zap.String("voter", sig.Address.Hex()),
		zap.String("receipt", receipt.ID),
	)
	return receipt, nil
}
