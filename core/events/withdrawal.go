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

package events

import (
	"context"

	"github.com/Loopring/protocols-sub002/core/types"
	"github.com/Loopring/protocols-sub002/libs/num"
)

type Withdrawal struct {
	*Base
	w         types.Withdrawal
	withdrawn *num.Uint
}

// NewWithdrawalEvent records a withdrawal request along with the amount
// actually debited, which may be less than requested.
func NewWithdrawalEvent(ctx context.Context, blockNr uint64, w types.Withdrawal, withdrawn *num.Uint) *Withdrawal {
	return &Withdrawal{
		Base:      newBase(ctx, blockNr, WithdrawalEvent),
		w:         w,
		withdrawn: withdrawn.Clone(),
	}
}

func (w Withdrawal) Withdrawal() types.Withdrawal {
	return w.w
}

func (w Withdrawal) Withdrawn() *num.Uint {
	return w.withdrawn.Clone()
}

func (w Withdrawal) IsAccount(id types.AccountID) bool {
	return w.w.AccountID == id
}
