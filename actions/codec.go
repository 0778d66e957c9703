// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	argType      = reflect.TypeOf(Arg{})
	argSliceType = reflect.TypeOf([]Arg{})
)

type actionJSON struct {
	UUID    string          `json:"uuid,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (a Action) MarshalJSON() ([]byte, error) {
	raw := actionJSON{
		UUID: a.UUID,
		Type: string(a.Type()),
	}
	switch p := a.Payload.(type) {
	case nil:
	case *Unknown:
		if len(p.Payload) > 0 {
			raw.Payload = p.Payload
		}
	default:
		payload, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("couldn't marshal %s payload: %w", a.Type(), err)
		}
		raw.Payload = payload
	}
	return json.Marshal(raw)
}

// UnmarshalJSON accepts the loosely typed payloads the proposal API stores:
// numbers may be strings and vice versa, custom transaction args may be
// bare values or an index keyed object. A payload that can't be decoded is
// kept as Unknown so that it is still displayed.
func (a *Action) UnmarshalJSON(b []byte) error {
	raw := actionJSON{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	a.UUID = raw.UUID
	a.Payload = decodePayload(Type(raw.Type), raw.Payload)
	return nil
}

func decodePayload(actionType Type, raw json.RawMessage) Payload {
	var target Payload
	switch actionType {
	case TypePayout:
		target = &Payout{}
	case TypeTransfer:
		target = &Transfer{}
	case TypeReserve:
		target = &Reserve{}
	case TypeCustomTransaction:
		target = &CustomTransaction{}
	default:
		return &Unknown{Type: string(actionType), Payload: raw}
	}
	if len(raw) == 0 || string(raw) == "null" {
		return target
	}
	if err := DecodePayload(raw, target); err != nil {
		return &Unknown{Type: string(actionType), Payload: raw}
	}
	return target
}

// DecodePayload decodes a JSON payload into [target] with weak typing
func DecodePayload(raw []byte, target Payload) error {
	var generic interface{}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&generic); err != nil {
		return err
	}

	structDecoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			argsFromObjectHook,
			argFromValueHook,
		),
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}
	return structDecoder.Decode(generic)
}

// argsFromObjectHook turns {"0": a, "1": b} into [a, b]
func argsFromObjectHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != argSliceType || from.Kind() != reflect.Map {
		return data, nil
	}
	object, ok := data.(map[string]interface{})
	if !ok {
		return data, nil
	}
	keys := maps.Keys(object)
	slices.SortFunc(keys, compareIndexKeys)
	values := make([]interface{}, 0, len(keys))
	for _, key := range keys {
		values = append(values, object[key])
	}
	return values, nil
}

// argFromValueHook wraps a bare argument value into an Arg
func argFromValueHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != argType || from.Kind() == reflect.Map {
		return data, nil
	}
	return map[string]interface{}{"value": data}, nil
}

func compareIndexKeys(a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return ai - bi
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
