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
)

// Slot returns the trade history slot used by the order id.
func (e *Engine) Slot(id types.OrderID) types.OrderID {
	return slot(e.getConfig().TradeHistoryTreeDepth, id)
}

func slot(depth uint32, id types.OrderID) types.OrderID {
	return types.TradeHistorySlot(depth, id)
}

// tradeHistory returns the filled amount and cancelled flag of the order.
// A slot owned by an older order id is fresh for this one, a slot owned by
// a newer order id means this order was evicted and cannot fill anymore.
func tradeHistory(cfg Config, o *types.Order, state *types.State) (*num.Uint, bool) {
	th := state.TradeHistory(o.AccountID, o.TokenS, slot(cfg.TradeHistoryTreeDepth, o.OrderID))
	switch {
	case th.OrderID == o.OrderID:
		return th.Filled, th.Cancelled
	case th.OrderID < o.OrderID:
		return num.UintZero(), false
	default:
		return num.UintZero(), true
	}
}

// ResolveFill returns the largest amounts the order can sell and buy given
// the balances and trade history of its owner.
func (e *Engine) ResolveFill(o *types.Order, state *types.State) (*num.Uint, *num.Uint) {
	return resolveFill(e.getConfig(), o, state)
}

func resolveFill(cfg Config, o *types.Order, state *types.State) (*num.Uint, *num.Uint) {
	if o.AmountS.IsZero() || o.AmountB.IsZero() {
		return num.UintZero(), num.UintZero()
	}

	filled, cancelled := tradeHistory(cfg, o, state)
	balanceS := state.Balance(o.AccountID, o.TokenS)
	balanceF := state.Balance(o.AccountID, o.TokenF)

	remainingS := num.UintZero()
	if !cancelled {
		remainingS.SaturatingSub(o.AmountS, filled)
	}
	fillS := num.Min(balanceS, remainingS).Clone()

	// the fee can be paid out of what is bought, no need to reserve it
	feeFromProceeds := o.TokenF == o.TokenB && o.AmountF.LTE(o.AmountB)
	if !feeFromProceeds {
		fillF := num.UintZero().MulDiv(o.AmountF, fillS, o.AmountS)
		if o.TokenF == o.TokenS {
			if balanceS.LT(num.Sum(fillS, fillF)) {
				fillS = num.UintZero().MulDiv(balanceS, o.AmountS, num.Sum(o.AmountS, o.AmountF))
			}
		} else if balanceF.LT(fillF) {
			// the ratio is truncated before being applied
			ratio := num.UintZero().Div(o.AmountS, o.AmountF)
			fillS = num.UintZero().Mul(balanceF, ratio)
		}
	}

	fillB := num.UintZero().MulDiv(fillS, o.AmountB, o.AmountS)
	return fillS, fillB
}

func fillF(o *types.Order, fillS *num.Uint) *num.Uint {
	if o.AmountS.IsZero() {
		return num.UintZero()
	}
	return num.UintZero().MulDiv(o.AmountF, fillS, o.AmountS)
}
