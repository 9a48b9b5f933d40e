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

var ninetyNine = num.NewUint(99)

func (e *Engine) checkRing(ring *types.Ring, m *ringMatch, timestamp uint64) string {
	if reason := checkOrder(ring.OrderA, m.fillA, timestamp); len(reason) > 0 {
		return reason
	}
	return checkOrder(ring.OrderB, m.fillB, timestamp)
}

// checkOrder returns why the fill is not acceptable for the order, or an
// empty string if it is.
func checkOrder(o *types.Order, fill *types.Fill, timestamp uint64) string {
	if timestamp < o.ValidSince {
		return ReasonNotYetValid
	}
	if timestamp > o.ValidUntil {
		return ReasonExpired
	}
	if o.AllOrNone && !fill.S.EQ(o.AmountS) {
		return ReasonAllOrNone
	}
	if !roundingErrorAcceptable(fill.S, o.AmountB, o.AmountS) {
		return ReasonRoundingError
	}
	if fill.S.IsZero() || fill.B.IsZero() {
		return ReasonZeroFill
	}
	return ""
}

// roundingErrorAcceptable is true if the remainder of fillS*amountB/amountS
// is at most 1% of fillS*amountB. With q and r the quotient and remainder,
// fillS*amountB = q*amountS + r and the check is q*amountS >= 99*r, compared
// without ever forming a product wider than 256 bits.
func roundingErrorAcceptable(fillS, amountB, amountS *num.Uint) bool {
	q, overflow := num.UintZero().MulDivOverflow(fillS, amountB, amountS)
	if overflow {
		return true
	}
	r := num.UintZero().MulMod(fillS, amountB, amountS)
	// 99*r/amountS is below 99 since r < amountS
	t := num.UintZero().MulDiv(r, ninetyNine, amountS)
	if !q.EQ(t) {
		return q.GT(t)
	}
	return num.UintZero().MulMod(r, ninetyNine, amountS).IsZero()
}
