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

// Ring is sent for every ring of a block, as a RingSettledEvent or a
// RingVoidedEvent depending on its outcome.
type Ring struct {
	*Base
	rs *types.RingSettlement
}

func NewRingEvent(ctx context.Context, blockNr uint64, rs *types.RingSettlement) *Ring {
	t := RingSettledEvent
	if !rs.Settled() {
		t = RingVoidedEvent
	}
	return &Ring{
		Base: newBase(ctx, blockNr, t),
		rs:   rs,
	}
}

func (r Ring) Settlement() *types.RingSettlement {
	return r.rs
}

// IsAccount returns true if the account owns one of the orders of the ring.
func (r Ring) IsAccount(id types.AccountID) bool {
	return (r.rs.Ring.OrderA != nil && r.rs.Ring.OrderA.AccountID == id) ||
		(r.rs.Ring.OrderB != nil && r.rs.Ring.OrderB.AccountID == id)
}
