// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package types

import (
	"fmt"

	"github.com/Loopring/protocols-sub002/libs/num"
)

type TransferKind int

const (
	// TransferKindLeaf moves Amount of Token from From to To.
	TransferKindLeaf TransferKind = iota
	// TransferKindGroup only aggregates its SubPayments, it moves nothing itself.
	TransferKindGroup
)

func (k TransferKind) String() string {
	switch k {
	case TransferKindLeaf:
		return "leaf"
	case TransferKindGroup:
		return "group"
	default:
		return "unknown"
	}
}

func (k TransferKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *TransferKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "leaf":
		*k = TransferKindLeaf
	case "group":
		*k = TransferKindGroup
	default:
		return fmt.Errorf("invalid transfer kind: %q", string(text))
	}
	return nil
}

// Transfer descriptions.
const (
	TransferSell        = "Sell"
	TransferToBuyer     = "ToBuyer"
	TransferMargin      = "Margin"
	TransferFee         = "Fee"
	TransferWallet      = "Wallet"
	TransferMatching    = "Matching"
	TransferBurn        = "Burn"
	TransferOperatorFee = "OperatorFee"
)

// DetailedTokenTransfer is a node of the audit tree built for a ring.
// Only leaves have an effect on balances.
type DetailedTokenTransfer struct {
	Kind        TransferKind             `json:"kind"`
	Description string                   `json:"description"`
	Token       TokenID                  `json:"token"`
	From        AccountID                `json:"from"`
	To          AccountID                `json:"to"`
	Amount      *num.Uint                `json:"amount"`
	SubPayments []*DetailedTokenTransfer `json:"subPayments,omitempty"`
}

func NewLeafTransfer(desc string, token TokenID, from, to AccountID, amount *num.Uint) *DetailedTokenTransfer {
	return &DetailedTokenTransfer{
		Kind:        TransferKindLeaf,
		Description: desc,
		Token:       token,
		From:        from,
		To:          to,
		Amount:      amount.Clone(),
	}
}

func NewGroupTransfer(desc string, token TokenID, from AccountID, amount *num.Uint, subs ...*DetailedTokenTransfer) *DetailedTokenTransfer {
	return &DetailedTokenTransfer{
		Kind:        TransferKindGroup,
		Description: desc,
		Token:       token,
		From:        from,
		To:          from,
		Amount:      amount.Clone(),
		SubPayments: subs,
	}
}

func (t *DetailedTokenTransfer) IsLeaf() bool {
	return t.Kind == TransferKindLeaf
}

// Leaves returns every leaf under t, depth first, in tree order.
func (t *DetailedTokenTransfer) Leaves() []*DetailedTokenTransfer {
	if t.IsLeaf() {
		return []*DetailedTokenTransfer{t}
	}
	out := []*DetailedTokenTransfer{}
	for _, sub := range t.SubPayments {
		out = append(out, sub.Leaves()...)
	}
	return out
}

// Find returns the first node, depth first, matching the description.
func (t *DetailedTokenTransfer) Find(desc string) *DetailedTokenTransfer {
	if t.Description == desc {
		return t
	}
	for _, sub := range t.SubPayments {
		if f := sub.Find(desc); f != nil {
			return f
		}
	}
	return nil
}

// Leaves flattens a forest of transfers.
func Leaves(transfers []*DetailedTokenTransfer) []*DetailedTokenTransfer {
	out := []*DetailedTokenTransfer{}
	for _, t := range transfers {
		out = append(out, t.Leaves()...)
	}
	return out
}
