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
	"github.com/Loopring/protocols-sub002/libs/num"
)

// Deposit credits Amount of Token to an account.
type Deposit struct {
	AccountID AccountID `json:"accountID"`
	Token     TokenID   `json:"token"`
	Amount    *num.Uint `json:"amount" validate:"required"`
}

// Withdrawal debits up to Amount of Token from an account.
type Withdrawal struct {
	AccountID AccountID `json:"accountID"`
	Token     TokenID   `json:"token"`
	Amount    *num.Uint `json:"amount" validate:"required"`
}

// Block is a batch of deposits, rings and withdrawals processed in that order.
type Block struct {
	Number            uint64        `json:"number"`
	Timestamp         uint64        `json:"timestamp"`
	OperatorAccountID AccountID     `json:"operatorAccountID"`
	Deposits          []*Deposit    `json:"deposits" validate:"dive,required"`
	Rings             []*Ring       `json:"rings" validate:"dive,required"`
	Withdrawals       []*Withdrawal `json:"withdrawals" validate:"dive,required"`
}

// BlockResult is what committing a block produced.
type BlockResult struct {
	Number      uint64            `json:"number"`
	Settlements []*RingSettlement `json:"settlements"`
	// Withdrawn is the amount actually debited for each withdrawal, in order.
	Withdrawn []*num.Uint `json:"withdrawn"`
	State     *State      `json:"-"`
}
