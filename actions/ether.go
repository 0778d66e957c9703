// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

var errInvalidWei = errors.New("invalid wei amount")

// ParseWei parses a decimal or 0x prefixed amount of wei
func ParseWei(value string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(value), 0)
	if !ok {
		return nil, errInvalidWei
	}
	return n, nil
}

// FormatEther renders [wei] in ether, always with at least one decimal:
// 1e18 -> "1.0", 15e17 -> "1.5", 1 -> "0.000000000000000001".
func FormatEther(wei *big.Int) string {
	sign := ""
	abs := new(big.Int).Set(wei)
	if abs.Sign() < 0 {
		sign = "-"
		abs.Neg(abs)
	}

	whole, frac := new(big.Int).QuoRem(abs, big.NewInt(params.Ether), new(big.Int))
	fraction := frac.String()
	fraction = strings.Repeat("0", 18-len(fraction)) + fraction
	fraction = strings.TrimRight(fraction, "0")
	if fraction == "" {
		fraction = "0"
	}
	return sign + whole.String() + "." + fraction
}
