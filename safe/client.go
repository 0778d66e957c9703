// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package safe

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"sort"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chain4travel/nance/chains"
	"github.com/chain4travel/nance/utils/rpc"
)

const (
	transactionServiceURLFormat = "https://safe-transaction-%s.safe.global"

	nativeDecimals = 18
)

var _ Client = (*client)(nil)

// TransactionServiceURL is the transaction service of [chain]
func TransactionServiceURL(chain chains.Chain) string {
	return fmt.Sprintf(transactionServiceURLFormat, chain.SafeNetwork)
}

type Token struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
	LogoURI  string `json:"logoUri"`
}

// BalanceUSD of one asset held by a safe. TokenAddress and Token are nil for
// the native currency.
type BalanceUSD struct {
	TokenAddress   *string `json:"tokenAddress"`
	Token          *Token  `json:"token"`
	Balance        string  `json:"balance"`
	FiatBalance    string  `json:"fiatBalance"`
	FiatConversion string  `json:"fiatConversion"`
	FiatCode       string  `json:"fiatCode"`
}

// Symbol of the asset, [native] when the balance is the native currency
func (b *BalanceUSD) Symbol(native string) string {
	if b.Token == nil {
		return native
	}
	return b.Token.Symbol
}

// Fiat parses FiatBalance, unparsable values count as zero
func (b *BalanceUSD) Fiat() float64 {
	value, err := strconv.ParseFloat(b.FiatBalance, 64)
	if err != nil {
		return 0
	}
	return value
}

// Amount is Balance scaled down by the decimals of the asset, unparsable
// values count as zero
func (b *BalanceUSD) Amount() float64 {
	balance, ok := new(big.Float).SetString(b.Balance)
	if !ok {
		return 0
	}
	decimals := nativeDecimals
	if b.Token != nil {
		decimals = b.Token.Decimals
	}
	scale := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	amount, _ := balance.Quo(balance, scale).Float64()
	return amount
}

// SortByFiat orders balances with the highest fiat value first
func SortByFiat(balances []BalanceUSD) {
	sort.SliceStable(balances, func(i, j int) bool {
		return balances[i].Fiat() > balances[j].Fiat()
	})
}

// TotalFiat sums the fiat value of [balances]
func TotalFiat(balances []BalanceUSD) float64 {
	var total float64
	for i := range balances {
		total += balances[i].Fiat()
	}
	return total
}

// Client for the Safe transaction service
type Client interface {
	GetBalancesUSD(ctx context.Context, safe common.Address, options ...rpc.Option) ([]BalanceUSD, error)
}

type client struct {
	requester rpc.EndpointRequester
}

// NewClient for the transaction service at [uri], see TransactionServiceURL
func NewClient(uri string, opts ...rpc.RequesterOption) Client {
	opts = append([]rpc.RequesterOption{rpc.WithName("safe")}, opts...)
	return &client{requester: rpc.NewEndpointRequester(uri, opts...)}
}

func (c *client) GetBalancesUSD(ctx context.Context, safe common.Address, options ...rpc.Option) ([]BalanceUSD, error) {
	var balances []BalanceUSD
	options = append([]rpc.Option{
		rpc.WithQueryParam("trusted", "true"),
		rpc.WithQueryParam("exclude_spam", "true"),
	}, options...)
	path := "/api/v1/safes/" + safe.Hex() + "/balances/usd/"
	err := c.requester.SendRequest(ctx, http.MethodGet, path, nil, &balances, options...)
	return balances, err
}
