// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const unnamedArg = "_"

var (
	errMalformedSignature = errors.New("malformed function signature")
	errTupleParameter     = errors.New("tuple parameters are not supported")

	// words that may sit between a parameter type and its name
	parameterModifiers = map[string]struct{}{
		"indexed":  {},
		"memory":   {},
		"calldata": {},
		"storage":  {},
		"payable":  {},
	}
)

// FunctionSignature is a parsed Solidity style function signature
type FunctionSignature struct {
	Name   string
	Inputs []Parameter
}

// Parameter is one input of a function signature. Name is empty for
// unnamed parameters.
type Parameter struct {
	Name string
	Type abi.Type
}

// ExtractFunctionName returns the name of [signature]:
// "function transfer(address to, uint256 amount)" and
// "transfer(address,uint256)" both give "transfer".
func ExtractFunctionName(signature string) string {
	head, _, _ := strings.Cut(signature, "(")
	fields := strings.Split(head, " ")
	return fields[len(fields)-1]
}

// ParseFunctionSignature parses signatures in the human readable ABI format,
// e.g. "function approve(address guy, uint256 wad)". The leading "function"
// keyword is optional.
func ParseFunctionSignature(signature string) (*FunctionSignature, error) {
	signature = strings.TrimSpace(signature)
	signature = strings.TrimSpace(strings.TrimPrefix(signature, "function "))

	open := strings.Index(signature, "(")
	if open <= 0 {
		return nil, fmt.Errorf("%w: %q", errMalformedSignature, signature)
	}
	closing := matchingParen(signature, open)
	if closing < 0 {
		return nil, fmt.Errorf("%w: %q", errMalformedSignature, signature)
	}

	parsed := &FunctionSignature{
		Name: strings.TrimSpace(signature[:open]),
	}
	for _, param := range splitParams(signature[open+1 : closing]) {
		input, err := parseParameter(param)
		if err != nil {
			return nil, fmt.Errorf("couldn't parse parameter %q of %q: %w", param, parsed.Name, err)
		}
		parsed.Inputs = append(parsed.Inputs, input)
	}
	return parsed, nil
}

func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func splitParams(params string) []string {
	if strings.TrimSpace(params) == "" {
		return nil
	}
	var (
		out   []string
		depth int
		start int
	)
	for i := 0; i < len(params); i++ {
		switch params[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(params[start:i]))
				start = i + 1
			}
		}
	}
	return append(out, strings.TrimSpace(params[start:]))
}

func parseParameter(param string) (Parameter, error) {
	fields := strings.Fields(param)
	if len(fields) == 0 {
		return Parameter{}, errMalformedSignature
	}
	typeName := fields[0]
	if strings.HasPrefix(typeName, "(") || strings.HasPrefix(typeName, "tuple") {
		return Parameter{}, errTupleParameter
	}

	name := ""
	if len(fields) > 1 {
		last := fields[len(fields)-1]
		if _, isModifier := parameterModifiers[last]; !isModifier {
			name = last
		}
	}

	typ, err := abi.NewType(canonicalType(typeName), "", nil)
	if err != nil {
		return Parameter{}, err
	}
	return Parameter{Name: name, Type: typ}, nil
}

// canonicalType expands the uint/int aliases, keeping array suffixes
func canonicalType(typeName string) string {
	base, suffix := typeName, ""
	if i := strings.Index(typeName, "["); i >= 0 {
		base, suffix = typeName[:i], typeName[i:]
	}
	switch base {
	case "uint", "int":
		base += "256"
	}
	return base + suffix
}

// NamedArgs pairs every argument of a custom transaction with a display
// name. Arguments carrying their own name, type and value keep their name,
// the others are named positionally from [signature] and "_" when the
// signature has no name for that position.
func NamedArgs(signature string, args []Arg) [][2]string {
	if len(args) == 0 {
		return nil
	}

	var positional []Parameter
	if parsed, err := ParseFunctionSignature(signature); err == nil {
		positional = parsed.Inputs
	}

	pairs := make([][2]string, 0, len(args))
	for i, arg := range args {
		if arg.Name != "" && arg.Type != "" && isTruthy(arg.Value) {
			value := FormatArgValue(arg.Value)
			if arg.Type == "uint256" {
				value = formatUint256(arg.Value)
			}
			pairs = append(pairs, [2]string{arg.Name, value})
			continue
		}

		name := unnamedArg
		if i < len(positional) && positional[i].Name != "" {
			name = positional[i].Name
		}
		pairs = append(pairs, [2]string{name, FormatArgValue(arg.Value)})
	}
	return pairs
}

// FormatArgValue renders an argument value as plain text
func FormatArgValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	}
}

// formatUint256 normalizes decimal, hex and {"type":"BigNumber","hex":...}
// values to a decimal string. Values that don't parse are kept as is.
func formatUint256(value interface{}) string {
	raw := FormatArgValue(value)
	if object, ok := value.(map[string]interface{}); ok && object["type"] == "BigNumber" {
		if hex, ok := object["hex"].(string); ok {
			raw = hex
		}
	}
	n, ok := new(big.Int).SetString(strings.TrimSpace(raw), 0)
	if !ok {
		return raw
	}
	return n.String()
}

func isTruthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	case float64:
		return v != 0
	case bool:
		return v
	default:
		return true
	}
}
