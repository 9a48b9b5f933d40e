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

type ringMatch struct {
	fillA, fillB *types.Fill
	margin       *num.Uint
}

// match binds the two orders of the ring together. The order buying less
// than the other one sells constrains the ring.
func (e *Engine) match(cfg Config, ring *types.Ring, state *types.State) (*ringMatch, string) {
	a, b := ring.OrderA, ring.OrderB
	if !wellFormed(a) || !wellFormed(b) {
		return nil, ReasonInvalidOrder
	}

	sA, bA := resolveFill(cfg, a, state)
	sB, bB := resolveFill(cfg, b, state)

	if bA.LT(sB) {
		sB = bA.Clone()
		bB = num.UintZero().MulDiv(sB, b.AmountB, b.AmountS)
	} else {
		bA = sB.Clone()
		sA = num.UintZero().MulDiv(bA, a.AmountS, a.AmountB)
	}

	if sA.LT(bB) {
		return nil, ReasonNegativeMargin
	}

	m := &ringMatch{
		fillA:  &types.Fill{S: sA, B: bA, F: fillF(a, sA), Fees: types.NewFeeSplit()},
		fillB:  &types.Fill{S: sB, B: bB, F: fillF(b, sB), Fees: types.NewFeeSplit()},
		margin: num.UintZero().Sub(sA, bB),
	}

	// both legs cannot count the same fee balance
	if a.AccountID == b.AccountID && a.TokenF == b.TokenF {
		shared := state.Balance(a.AccountID, a.TokenF)
		if shared.LT(num.Sum(m.fillA.F, m.fillB.F)) {
			return nil, ReasonSelfTrade
		}
	}

	return m, ""
}

func wellFormed(o *types.Order) bool {
	return o != nil &&
		o.AmountS != nil && o.AmountB != nil && o.AmountF != nil &&
		!o.AmountS.IsZero() && !o.AmountB.IsZero() &&
		o.WalletSplitPercentage <= 100
}
