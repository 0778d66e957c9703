// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package chains

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByID(t *testing.T) {
	tests := map[string]struct {
		id       uint64
		expected Chain
	}{
		"mainnet": {id: 1, expected: Mainnet},
		"gnosis":  {id: 100, expected: Gnosis},
		"unknown": {id: 42161, expected: Mainnet},
		"zero":    {id: 0, expected: Mainnet},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tt.expected, ByID(tt.id))
		})
	}
}

func TestByName(t *testing.T) {
	tests := map[string]struct {
		name        string
		expected    Chain
		expectedErr error
	}{
		"empty is mainnet": {name: "", expected: Mainnet},
		"gnosis":           {name: "gnosis", expected: Gnosis},
		"optimism":         {name: "optimism", expected: Optimism},
		"unknown":          {name: "arbitrum", expectedErr: ErrUnknownChain},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			chain, err := ByName(tt.name)
			require.ErrorIs(t, err, tt.expectedErr)
			require.Equal(t, tt.expected, chain)
		})
	}
}

func TestAddressURL(t *testing.T) {
	require.Equal(t, "https://gnosisscan.io/address/0xabc", Gnosis.AddressURL("0xabc"))
}
