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

type (
	AccountID uint32
	TokenID   uint32
	OrderID   uint32
)

// Order is a signed intent to sell AmountS of TokenS for AmountB of TokenB,
// paying up to AmountF of TokenF in fees.
type Order struct {
	OrderID   OrderID   `json:"orderID"`
	AccountID AccountID `json:"accountID"`
	// DualAuthAccountID is the account of the wallet that co-signed the order,
	// it receives the wallet share of the fee.
	DualAuthAccountID AccountID `json:"dualAuthAccountID"`

	TokenS TokenID `json:"tokenS"`
	TokenB TokenID `json:"tokenB"`
	TokenF TokenID `json:"tokenF"`

	AmountS *num.Uint `json:"amountS" validate:"required"`
	AmountB *num.Uint `json:"amountB" validate:"required"`
	AmountF *num.Uint `json:"amountF" validate:"required"`

	WalletSplitPercentage uint32 `json:"walletSplitPercentage" validate:"lte=100"`
	// WaiveFeePercentage is deliberately not bounded, negative values turn
	// the matching fee into a rebate.
	WaiveFeePercentage int32 `json:"waiveFeePercentage"`

	AllOrNone  bool   `json:"allOrNone"`
	ValidSince uint64 `json:"validSince"`
	ValidUntil uint64 `json:"validUntil"`
}

func (o Order) Clone() *Order {
	cpy := o
	if o.AmountS != nil {
		cpy.AmountS = o.AmountS.Clone()
	}
	if o.AmountB != nil {
		cpy.AmountB = o.AmountB.Clone()
	}
	if o.AmountF != nil {
		cpy.AmountF = o.AmountF.Clone()
	}
	return &cpy
}

func (o Order) String() string {
	return fmt.Sprintf(
		"orderID(%d) accountID(%d) tokenS(%d) tokenB(%d) tokenF(%d) amountS(%s) amountB(%s) amountF(%s) allOrNone(%v)",
		o.OrderID, o.AccountID, o.TokenS, o.TokenB, o.TokenF,
		uintStr(o.AmountS), uintStr(o.AmountB), uintStr(o.AmountF), o.AllOrNone,
	)
}

// Ring is a pair of orders matched against each other by the miner.
type Ring struct {
	OrderA *Order `json:"orderA" validate:"required"`
	OrderB *Order `json:"orderB" validate:"required"`

	MinerAccountID        AccountID `json:"minerAccountID"`
	FeeRecipientAccountID AccountID `json:"feeRecipientAccountID"`

	// TokenID and Fee are the flat operator fee paid by the miner.
	TokenID TokenID   `json:"tokenID"`
	Fee     *num.Uint `json:"fee"`
}

func (r Ring) Clone() *Ring {
	cpy := r
	if r.OrderA != nil {
		cpy.OrderA = r.OrderA.Clone()
	}
	if r.OrderB != nil {
		cpy.OrderB = r.OrderB.Clone()
	}
	if r.Fee != nil {
		cpy.Fee = r.Fee.Clone()
	}
	return &cpy
}

// OperatorFee returns the flat ring fee, zero when unset.
func (r Ring) OperatorFee() *num.Uint {
	if r.Fee == nil {
		return num.UintZero()
	}
	return r.Fee.Clone()
}

func uintStr(u *num.Uint) string {
	if u == nil {
		return "0"
	}
	return u.String()
}
