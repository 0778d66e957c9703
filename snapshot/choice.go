// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	// label of shielded votes, whose choice is encrypted until the end
	ShieldedChoiceLabel = "🔐"
	UnknownChoiceLabel  = "Unknown"
)

var (
	errEmptyChoice      = errors.New("empty choice")
	errChoiceOutOfRange = errors.New("choice out of range")
	errNoWeight         = errors.New("choice carries no weight")
)

// ChoiceLabel maps the raw [choice] of a vote back to the labels of
// [choices]. Indices are 1-based. Shielded votes render as "🔐", anything
// that doesn't match [proposalType] as "Unknown".
func ChoiceLabel(proposalType ProposalType, choices []string, choice json.RawMessage) string {
	value, err := decodeChoice(choice)
	if err != nil {
		return UnknownChoiceLabel
	}
	if _, ok := value.(string); ok {
		return ShieldedChoiceLabel
	}
	if proposalType == "" || len(choices) == 0 {
		return UnknownChoiceLabel
	}

	label, err := resolveChoice(proposalType, choices, value)
	if err != nil {
		return UnknownChoiceLabel
	}
	return label
}

func decodeChoice(choice json.RawMessage) (interface{}, error) {
	if len(bytes.TrimSpace(choice)) == 0 {
		return nil, errEmptyChoice
	}
	decoder := json.NewDecoder(bytes.NewReader(choice))
	decoder.UseNumber()
	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if value == nil {
		return nil, errEmptyChoice
	}
	return value, nil
}

func resolveChoice(proposalType ProposalType, choices []string, value interface{}) (string, error) {
	switch proposalType {
	case Approval, RankedChoice:
		indices, err := toIndices(value)
		if err != nil {
			return "", err
		}
		labels := make([]string, len(indices))
		for i, index := range indices {
			label, err := choiceAt(choices, index)
			if err != nil {
				return "", err
			}
			if proposalType == RankedChoice {
				label = fmt.Sprintf("(%dth) %s", i+1, label)
			}
			labels[i] = label
		}
		return strings.Join(labels, ", "), nil
	case Quadratic, Weighted:
		weights, err := cast.ToStringMapE(value)
		if err != nil {
			return "", err
		}
		return weightedLabel(choices, weights)
	default:
		index, err := toIndex(value)
		if err != nil {
			return "", err
		}
		return choiceAt(choices, index)
	}
}

// weightedLabel renders "25% for A, 75% for B", in choice order
func weightedLabel(choices []string, weights map[string]interface{}) (string, error) {
	type entry struct {
		index  int
		weight float64
	}
	entries := make([]entry, 0, len(weights))
	total := 0.0
	for _, key := range maps.Keys(weights) {
		index, err := strconv.Atoi(key)
		if err != nil {
			return "", err
		}
		weight, err := cast.ToFloat64E(normalizeNumber(weights[key]))
		if err != nil {
			return "", err
		}
		entries = append(entries, entry{index: index, weight: weight})
		total += weight
	}
	if len(entries) == 0 || total == 0 {
		return "", errNoWeight
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return a.index - b.index
	})

	labels := make([]string, len(entries))
	for i, e := range entries {
		label, err := choiceAt(choices, e.index)
		if err != nil {
			return "", err
		}
		percent := math.Floor(e.weight/total*100 + 0.5)
		labels[i] = fmt.Sprintf("%s%% for %s", strconv.FormatFloat(percent, 'f', -1, 64), label)
	}
	return strings.Join(labels, ", "), nil
}

func choiceAt(choices []string, index int) (string, error) {
	if index < 1 || index > len(choices) {
		return "", fmt.Errorf("%w: %d of %d", errChoiceOutOfRange, index, len(choices))
	}
	return choices[index-1], nil
}

func toIndices(value interface{}) ([]int, error) {
	raw, ok := value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a list of choices, got %T", value)
	}
	if len(raw) == 0 {
		return nil, errEmptyChoice
	}
	indices := make([]int, len(raw))
	for i, v := range raw {
		index, err := toIndex(v)
		if err != nil {
			return nil, err
		}
		indices[i] = index
	}
	return indices, nil
}

func toIndex(value interface{}) (int, error) {
	f, err := cast.ToFloat64E(normalizeNumber(value))
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("choice %v is not an index", value)
	}
	return int(f), nil
}

// normalizeNumber hands json numbers to cast as strings
func normalizeNumber(value interface{}) interface{} {
	if n, ok := value.(json.Number); ok {
		return n.String()
	}
	return value
}
