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

type RingStatus int

const (
	RingStatusPending RingStatus = iota
	RingStatusSettled
	RingStatusVoided
)

func (s RingStatus) String() string {
	switch s {
	case RingStatusPending:
		return "pending"
	case RingStatusSettled:
		return "settled"
	case RingStatusVoided:
		return "voided"
	default:
		return "unknown"
	}
}

func (s RingStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *RingStatus) UnmarshalText(text []byte) error {
	for _, v := range []RingStatus{RingStatusPending, RingStatusSettled, RingStatusVoided} {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("invalid ring status: %q", string(text))
}

// FeeSplit is how an order's fee is shared between the wallet, the ring
// fee recipient and the burn. Matching and burn parts are signed.
type FeeSplit struct {
	WalletFee         *num.Uint `json:"walletFee"`
	MatchingFee       *num.Uint `json:"matchingFee"`
	WalletFeeToBurn   *num.Uint `json:"walletFeeToBurn"`
	WalletFeeToPay    *num.Uint `json:"walletFeeToPay"`
	MatchingFeeToBurn *num.Int  `json:"matchingFeeToBurn"`
	MatchingFeeToPay  *num.Int  `json:"matchingFeeToPay"`
	FeeToBurn         *num.Int  `json:"feeToBurn"`
}

func NewFeeSplit() *FeeSplit {
	return &FeeSplit{
		WalletFee:         num.UintZero(),
		MatchingFee:       num.UintZero(),
		WalletFeeToBurn:   num.UintZero(),
		WalletFeeToPay:    num.UintZero(),
		MatchingFeeToBurn: num.IntZero(),
		MatchingFeeToPay:  num.IntZero(),
		FeeToBurn:         num.IntZero(),
	}
}

// Total is walletFeeToPay + matchingFeeToPay + feeToBurn.
func (f FeeSplit) Total() *num.Int {
	return num.IntFromUint(f.WalletFeeToPay, true).AddSum(f.MatchingFeeToPay, f.FeeToBurn)
}

// Fill is the settled amounts of one order of a ring.
type Fill struct {
	S    *num.Uint `json:"fillAmountS"`
	B    *num.Uint `json:"fillAmountB"`
	F    *num.Uint `json:"fillAmountF"`
	Fees *FeeSplit `json:"fees"`
}

func NewFill() *Fill {
	return &Fill{
		S:    num.UintZero(),
		B:    num.UintZero(),
		F:    num.UintZero(),
		Fees: NewFeeSplit(),
	}
}

func (f Fill) IsZero() bool {
	return f.S.IsZero() && f.B.IsZero() && f.F.IsZero()
}

// RingSettlement is the outcome of settling a ring.
type RingSettlement struct {
	Ring      *Ring                    `json:"ring"`
	Status    RingStatus               `json:"status"`
	Reason    string                   `json:"reason,omitempty"`
	Timestamp uint64                   `json:"timestamp"`
	Operator  AccountID                `json:"operatorAccountID"`
	FillA     *Fill                    `json:"fillA"`
	FillB     *Fill                    `json:"fillB"`
	Margin    *num.Uint                `json:"margin"`
	Transfers []*DetailedTokenTransfer `json:"transfers"`
}

func (r RingSettlement) Settled() bool {
	return r.Status == RingStatusSettled
}

// LeafTransfers returns the balance moving transfers of the settlement.
func (r RingSettlement) LeafTransfers() []*DetailedTokenTransfer {
	return Leaves(r.Transfers)
}
