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
)

type Deposit struct {
	*Base
	d types.Deposit
}

func NewDepositEvent(ctx context.Context, blockNr uint64, d types.Deposit) *Deposit {
	return &Deposit{
		Base: newBase(ctx, blockNr, DepositEvent),
		d:    d,
	}
}

func (d Deposit) Deposit() types.Deposit {
	return d.d
}

func (d Deposit) IsAccount(id types.AccountID) bool {
	return d.d.AccountID == id
}
