// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

// Type is the tag of an action as the proposal API spells it
type Type string

const (
	TypePayout            Type = "Payout"
	TypeTransfer          Type = "Transfer"
	TypeReserve           Type = "Reserve"
	TypeCustomTransaction Type = "Custom Transaction"
)

var (
	_ Payload = (*Payout)(nil)
	_ Payload = (*Transfer)(nil)
	_ Payload = (*Reserve)(nil)
	_ Payload = (*CustomTransaction)(nil)
	_ Payload = (*Unknown)(nil)
)

// Visitor must handle every payload kind
type Visitor interface {
	Payout(*Payout) error
	Transfer(*Transfer) error
	Reserve(*Reserve) error
	CustomTransaction(*CustomTransaction) error
	Unknown(*Unknown) error
}

// Payload is the typed body of an action
type Payload interface {
	ActionType() Type
	Visit(Visitor) error
}

// Action is an on-chain operation a proposal intends to execute once it
// passes. UUID gives the action a stable identity inside a list.
type Action struct {
	UUID    string
	Payload Payload
}

// Type returns the tag of the payload. Actions without payload are reported
// with an empty tag.
func (a Action) Type() Type {
	if a.Payload == nil {
		return ""
	}
	return a.Payload.ActionType()
}

// Visit dispatches to [visitor] by payload kind. An action without payload
// is visited as Unknown.
func (a Action) Visit(visitor Visitor) error {
	if a.Payload == nil {
		return visitor.Unknown(&Unknown{})
	}
	return a.Payload.Visit(visitor)
}

// Payout pays [AmountUSD] per cycle, for [Count] cycles, to an address or a
// Juicebox project.
type Payout struct {
	// One of "address", "project" or "allocator"
	Type      string  `mapstructure:"type" json:"type,omitempty"`
	AmountUSD float64 `mapstructure:"amountUSD" json:"amountUSD"`
	Count     int     `mapstructure:"count" json:"count"`
	Address   string  `mapstructure:"address" json:"address,omitempty"`
	Project   uint64  `mapstructure:"project" json:"project,omitempty"`
}

func (*Payout) ActionType() Type { return TypePayout }

func (p *Payout) Visit(visitor Visitor) error { return visitor.Payout(p) }

// IsProjectPayout reports whether the payout goes to a Juicebox project
// rather than an address.
func (p *Payout) IsProjectPayout() bool {
	switch p.Type {
	case "address", "allocator":
		return false
	case "project":
		return true
	default:
		return p.Project != 0
	}
}

// Transfer moves [Amount] of the token at [Contract] to [To]. An empty
// contract means the native currency.
type Transfer struct {
	Contract string `mapstructure:"contract" json:"contract"`
	To       string `mapstructure:"to" json:"to"`
	Amount   string `mapstructure:"amount" json:"amount"`
	Decimals int    `mapstructure:"decimals" json:"decimals,omitempty"`
	ChainID  uint64 `mapstructure:"chainId" json:"chainId,omitempty"`
}

func (*Transfer) ActionType() Type { return TypeTransfer }

func (t *Transfer) Visit(visitor Visitor) error { return visitor.Transfer(t) }

// Reserve replaces the reserved token splits of a Juicebox project
type Reserve struct {
	Splits []Split `mapstructure:"splits" json:"splits"`
}

func (*Reserve) ActionType() Type { return TypeReserve }

func (r *Reserve) Visit(visitor Visitor) error { return visitor.Reserve(r) }

// Split is one reserve recipient. Percent is expressed in parts per 1e9.
type Split struct {
	PreferClaimed      bool   `mapstructure:"preferClaimed" json:"preferClaimed"`
	PreferAddToBalance bool   `mapstructure:"preferAddToBalance" json:"preferAddToBalance"`
	Percent            uint64 `mapstructure:"percent" json:"percent"`
	ProjectID          uint64 `mapstructure:"projectId" json:"projectId"`
	Beneficiary        string `mapstructure:"beneficiary" json:"beneficiary"`
	LockedUntil        uint64 `mapstructure:"lockedUntil" json:"lockedUntil"`
	Allocator          string `mapstructure:"allocator" json:"allocator,omitempty"`
}

// CustomTransaction calls [FunctionName] on [Contract] sending [Value] wei.
// FunctionName is a Solidity style signature, with or without the leading
// "function" keyword.
type CustomTransaction struct {
	Contract       string `mapstructure:"contract" json:"contract"`
	Value          string `mapstructure:"value" json:"value"`
	FunctionName   string `mapstructure:"functionName" json:"functionName"`
	Args           []Arg  `mapstructure:"args" json:"args"`
	TenderlyID     string `mapstructure:"tenderlyId" json:"tenderlyId,omitempty"`
	TenderlyStatus string `mapstructure:"tenderlyStatus" json:"tenderlyStatus,omitempty"`
}

func (*CustomTransaction) ActionType() Type { return TypeCustomTransaction }

func (c *CustomTransaction) Visit(visitor Visitor) error { return visitor.CustomTransaction(c) }

// Arg is one argument of a custom transaction. Older proposals only carry
// the value, in which case Name and Type are empty.
type Arg struct {
	Name  string      `mapstructure:"name" json:"name,omitempty"`
	Type  string      `mapstructure:"type" json:"type,omitempty"`
	Value interface{} `mapstructure:"value" json:"value"`
}

// Unknown keeps an action whose tag is not recognized, untouched
type Unknown struct {
	Type    string
	Payload []byte
}

func (u *Unknown) ActionType() Type { return Type(u.Type) }

func (u *Unknown) Visit(visitor Visitor) error { return visitor.Unknown(u) }
