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

package settlement

import (
	"github.com/Loopring/protocols-sub002/core/types"
	"github.com/Loopring/protocols-sub002/libs/num"
	"github.com/Loopring/protocols-sub002/logging"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type balanceKey struct {
	account types.AccountID
	token   types.TokenID
}

func (k balanceKey) cmp(o balanceKey) int {
	switch {
	case k.account < o.account:
		return -1
	case k.account > o.account:
		return 1
	case k.token < o.token:
		return -1
	case k.token > o.token:
		return 1
	}
	return 0
}

type ledger map[balanceKey]*num.Int

func (l ledger) move(token types.TokenID, from, to types.AccountID, amount *num.Uint) {
	if amount.IsZero() {
		return
	}
	l.add(balanceKey{from, token}, num.IntFromUint(amount, false))
	l.add(balanceKey{to, token}, num.IntFromUint(amount, true))
}

func (l ledger) add(k balanceKey, delta *num.Int) {
	cur, ok := l[k]
	if !ok {
		cur = num.IntZero()
		l[k] = cur
	}
	cur.Add(delta)
}

// Apply applies the balance changes and trade history updates of a
// settlement to state.
func (e *Engine) Apply(rs *types.RingSettlement, state *types.State) {
	e.apply(e.getConfig(), rs, state)
}

// apply nets the leaves of the settlement per account and token before
// touching balances, an account which ends up overdrawn panics with
// num.ErrUnderflow. Burned fees are tracked on the burned ledger of the
// state rather than on the burn account.
func (e *Engine) apply(cfg Config, rs *types.RingSettlement, state *types.State) {
	deltas := ledger{}
	for _, leaf := range rs.LeafTransfers() {
		if leaf.Description == types.TransferBurn {
			continue
		}
		deltas.move(leaf.Token, leaf.From, leaf.To, leaf.Amount)
	}

	if rs.Settled() {
		for _, of := range []struct {
			o    *types.Order
			fill *types.Fill
		}{{rs.Ring.OrderA, rs.FillA}, {rs.Ring.OrderB, rs.FillB}} {
			burn := of.fill.Fees.FeeToBurn
			if burn.IsZero() {
				continue
			}
			owed := burn.Clone()
			owed.FlipSign()
			deltas.add(balanceKey{of.o.AccountID, of.o.TokenF}, owed)
			state.AddBurned(of.o.TokenF, burn)
		}
	}

	keys := maps.Keys(deltas)
	slices.SortFunc(keys, func(a, b balanceKey) int { return a.cmp(b) })
	for _, k := range keys {
		d := deltas[k]
		switch {
		case d.IsPositive():
			state.Credit(k.account, k.token, d.U)
		case d.IsNegative():
			if state.Balance(k.account, k.token).LT(d.U) {
				e.log.Error("account overdrawn by settlement",
					logging.AccountID(uint32(k.account)),
					logging.TokenID(uint32(k.token)),
					logging.BigUint("amount", d.U),
				)
			}
			state.Debit(k.account, k.token, d.U)
		}
	}

	if rs.Settled() {
		updateTradeHistory(cfg, rs.Ring.OrderA, rs.FillA.S, state)
		updateTradeHistory(cfg, rs.Ring.OrderB, rs.FillB.S, state)
	}
}

func updateTradeHistory(cfg Config, o *types.Order, fillS *num.Uint, state *types.State) {
	filled, cancelled := tradeHistory(cfg, o, state)
	state.SetTradeHistory(o.AccountID, o.TokenS, slot(cfg.TradeHistoryTreeDepth, o.OrderID), &types.TradeHistory{
		Filled:    num.Sum(filled, fillS),
		Cancelled: cancelled,
		OrderID:   o.OrderID,
	})
}
