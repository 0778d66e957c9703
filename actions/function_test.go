// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractFunctionName(t *testing.T) {
	tests := map[string]struct {
		signature string
		expected  string
	}{
		"full signature":     {signature: "function transfer(address to, uint256 amount)", expected: "transfer"},
		"minimal signature":  {signature: "transfer(address,uint256)", expected: "transfer"},
		"no parameters":      {signature: "function pause()", expected: "pause"},
		"name only":          {signature: "distributeReservedTokens", expected: "distributeReservedTokens"},
		"view modifier kept": {signature: "function balanceOf(address) view returns (uint256)", expected: "balanceOf"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tt.expected, ExtractFunctionName(tt.signature))
		})
	}
}

func TestParseFunctionSignature(t *testing.T) {
	tests := map[string]struct {
		signature     string
		expectedName  string
		expectedNames []string
		expectedTypes []string
		expectedErr   error
	}{
		"named parameters": {
			signature:     "function approve(address guy, uint256 wad)",
			expectedName:  "approve",
			expectedNames: []string{"guy", "wad"},
			expectedTypes: []string{"address", "uint256"},
		},
		"unnamed parameters without keyword": {
			signature:     "transfer(address,uint)",
			expectedName:  "transfer",
			expectedNames: []string{"", ""},
			expectedTypes: []string{"address", "uint256"},
		},
		"modifiers and arrays": {
			signature:     "function setSplits(uint256[] memory splits, address payable to, bytes calldata)",
			expectedName:  "setSplits",
			expectedNames: []string{"splits", "to", ""},
			expectedTypes: []string{"uint256[]", "address", "bytes"},
		},
		"no parameters": {
			signature:    "function pause()",
			expectedName: "pause",
		},
		"Fail: no parenthesis": {
			signature:   "pause",
			expectedErr: errMalformedSignature,
		},
		"Fail: unclosed": {
			signature:   "pause(address",
			expectedErr: errMalformedSignature,
		},
		"Fail: tuple": {
			signature:   "function execute((address,uint256) call)",
			expectedErr: errTupleParameter,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			parsed, err := ParseFunctionSignature(tt.signature)
			require.ErrorIs(err, tt.expectedErr)
			if tt.expectedErr != nil {
				return
			}
			require.Equal(tt.expectedName, parsed.Name)
			require.Len(parsed.Inputs, len(tt.expectedNames))
			for i, input := range parsed.Inputs {
				require.Equal(tt.expectedNames[i], input.Name)
				require.Equal(tt.expectedTypes[i], input.Type.String())
			}
		})
	}
}

func TestNamedArgs(t *testing.T) {
	tests := map[string]struct {
		signature string
		args      []Arg
		expected  [][2]string
	}{
		"struct args keep their names": {
			signature: "approve(address guy, uint256 wad)",
			args: []Arg{
				{Name: "guy", Type: "address", Value: "0xABC"},
				{Name: "wad", Type: "uint256", Value: "1000"},
			},
			expected: [][2]string{{"guy", "0xABC"}, {"wad", "1000"}},
		},
		"uint256 hex and big number values are normalized": {
			signature: "function mint(uint256 a, uint256 b)",
			args: []Arg{
				{Name: "a", Type: "uint256", Value: "0x3e8"},
				{Name: "b", Type: "uint256", Value: map[string]interface{}{"type": "BigNumber", "hex": "0x0a"}},
			},
			expected: [][2]string{{"a", "1000"}, {"b", "10"}},
		},
		"bare values are named positionally": {
			signature: "function transfer(address to, uint256 amount)",
			args:      []Arg{{Value: "0xto"}, {Value: json.Number("5")}},
			expected:  [][2]string{{"to", "0xto"}, {"amount", "5"}},
		},
		"unnamed signature parameters": {
			signature: "transfer(address,uint256)",
			args:      []Arg{{Value: "0xto"}, {Value: 5.5}},
			expected:  [][2]string{{"_", "0xto"}, {"_", "5.5"}},
		},
		"falsy struct value falls back to position": {
			signature: "function setFee(uint256 fee)",
			args:      []Arg{{Name: "newFee", Type: "uint256", Value: json.Number("0")}},
			expected:  [][2]string{{"fee", "0"}},
		},
		"unparsable signature": {
			signature: "not a signature",
			args:      []Arg{{Value: true}},
			expected:  [][2]string{{"_", "true"}},
		},
		"no args": {
			signature: "pause()",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tt.expected, NamedArgs(tt.signature, tt.args))
		})
	}
}
