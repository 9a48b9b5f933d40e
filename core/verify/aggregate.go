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

package verify

import (
	"fmt"

	"github.com/Loopring/protocols-sub002/core/types"
	"github.com/Loopring/protocols-sub002/libs/num"

	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"
)

// Flow identifies the movement of one token between two accounts.
type Flow struct {
	Token types.TokenID   `json:"token"`
	From  types.AccountID `json:"from"`
	To    types.AccountID `json:"to"`
}

func (f Flow) String() string {
	return fmt.Sprintf("token %d: %d -> %d", f.Token, f.From, f.To)
}

func compareFlows(a, b Flow) int {
	switch {
	case a.Token != b.Token:
		return cmpUint32(uint32(a.Token), uint32(b.Token))
	case a.From != b.From:
		return cmpUint32(uint32(a.From), uint32(b.From))
	default:
		return cmpUint32(uint32(a.To), uint32(b.To))
	}
}

func cmpUint32(a, b uint32) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// Transfer is a token transfer as emitted by the chain, or the sum of all
// the settlement leaves sharing the same flow.
type Transfer struct {
	Flow
	Amount *num.Uint `json:"amount"`
}

// Aggregator sums transfer amounts per flow, ordered by token, sender and
// receiver.
type Aggregator struct {
	flows *rbt.Tree[Flow, *num.Uint]
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		flows: rbt.NewWith[Flow, *num.Uint](compareFlows),
	}
}

// Add accumulates a transfer. Zero amounts and transfers from an account
// to itself move nothing and are ignored.
func (a *Aggregator) Add(f Flow, amount *num.Uint) {
	if amount == nil || amount.IsZero() || f.From == f.To {
		return
	}
	cur, found := a.flows.Get(f)
	if !found {
		a.flows.Put(f, amount.Clone())
		return
	}
	cur.Add(cur, amount)
}

// AddSettlement accumulates every leaf of the transfer forest of a ring.
func (a *Aggregator) AddSettlement(rs *types.RingSettlement) {
	for _, leaf := range rs.LeafTransfers() {
		a.Add(Flow{Token: leaf.Token, From: leaf.From, To: leaf.To}, leaf.Amount)
	}
}

// AddTransfers accumulates transfers reported by the chain.
func (a *Aggregator) AddTransfers(ts ...Transfer) {
	for _, t := range ts {
		a.Add(t.Flow, t.Amount)
	}
}

// Get returns the total for a flow, zero if nothing was added.
func (a *Aggregator) Get(f Flow) *num.Uint {
	if v, found := a.flows.Get(f); found {
		return v.Clone()
	}
	return num.UintZero()
}

func (a *Aggregator) Len() int {
	return a.flows.Size()
}

// Transfers returns the aggregated transfers in flow order.
func (a *Aggregator) Transfers() []Transfer {
	out := make([]Transfer, 0, a.flows.Size())
	it := a.flows.Iterator()
	for it.Next() {
		out = append(out, Transfer{Flow: it.Key(), Amount: it.Value().Clone()})
	}
	return out
}
