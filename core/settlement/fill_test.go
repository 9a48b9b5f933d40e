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

package settlement_test

import (
	"testing"

	"github.com/Loopring/protocols-sub002/core/types"

	"github.com/stretchr/testify/assert"
)

func TestResolveFill(t *testing.T) {
	engine := getTestEngine(t)

	cases := []struct {
		desc      string
		order     *types.Order
		balances  []balance
		filled    uint64
		cancelled bool
		expectS   string
		expectB   string
	}{
		{
			desc:     "capped by the remaining amount",
			order:    order(1, ownerA, weth, gto, 100, 200, lrc, 10),
			balances: []balance{{ownerA, weth, 1000}, {ownerA, lrc, 1000}},
			expectS:  "100",
			expectB:  "200",
		},
		{
			desc:     "capped by the sell balance",
			order:    order(1, ownerA, weth, gto, 100, 200, lrc, 10),
			balances: []balance{{ownerA, weth, 40}, {ownerA, lrc, 1000}},
			expectS:  "40",
			expectB:  "80",
		},
		{
			desc:     "previous fills reduce what remains",
			order:    order(1, ownerA, weth, gto, 100, 200, lrc, 10),
			balances: []balance{{ownerA, weth, 1000}, {ownerA, lrc, 1000}},
			filled:   70,
			expectS:  "30",
			expectB:  "60",
		},
		{
			desc:     "overfilled order has nothing left",
			order:    order(1, ownerA, weth, gto, 100, 200, lrc, 10),
			balances: []balance{{ownerA, weth, 1000}, {ownerA, lrc, 1000}},
			filled:   170,
			expectS:  "0",
			expectB:  "0",
		},
		{
			desc:      "cancelled order has nothing left",
			order:     order(1, ownerA, weth, gto, 100, 200, lrc, 10),
			balances:  []balance{{ownerA, weth, 1000}, {ownerA, lrc, 1000}},
			cancelled: true,
			expectS:   "0",
			expectB:   "0",
		},
		{
			// 55 cannot pay for 55 + 5 of fee, the balance is split 100:10
			desc:     "fee paid in the sell token shrinks the fill proportionally",
			order:    order(1, ownerA, weth, gto, 100, 100, weth, 10),
			balances: []balance{{ownerA, weth, 55}},
			expectS:  "50",
			expectB:  "50",
		},
		{
			desc:     "fee paid in the sell token with enough balance",
			order:    order(1, ownerA, weth, gto, 100, 100, weth, 10),
			balances: []balance{{ownerA, weth, 110}},
			expectS:  "100",
			expectB:  "100",
		},
		{
			// 10 * (100 / 30) = 30, not 10 * 100 / 30 = 33
			desc:     "fee balance rescales with a truncated ratio",
			order:    order(1, ownerA, weth, gto, 100, 100, lrc, 30),
			balances: []balance{{ownerA, weth, 100}, {ownerA, lrc, 10}},
			expectS:  "30",
			expectB:  "30",
		},
		{
			desc:     "fee smaller than ratio rescales to nothing",
			order:    order(1, ownerA, weth, gto, 100, 100, lrc, 300),
			balances: []balance{{ownerA, weth, 100}, {ownerA, lrc, 10}},
			expectS:  "0",
			expectB:  "0",
		},
		{
			desc:     "fee paid out of the proceeds needs no fee balance",
			order:    order(1, ownerA, weth, gto, 100, 100, gto, 10),
			balances: []balance{{ownerA, weth, 100}},
			expectS:  "100",
			expectB:  "100",
		},
		{
			desc:     "fee in the buy token larger than the buy amount is reserved",
			order:    order(1, ownerA, weth, gto, 1000, 100, gto, 200),
			balances: []balance{{ownerA, weth, 1000}, {ownerA, gto, 100}},
			expectS:  "500",
			expectB:  "50",
		},
		{
			desc:     "zero sell amount",
			order:    order(1, ownerA, weth, gto, 0, 100, lrc, 0),
			balances: []balance{{ownerA, weth, 100}},
			expectS:  "0",
			expectB:  "0",
		},
		{
			desc:     "zero buy amount",
			order:    order(1, ownerA, weth, gto, 100, 0, lrc, 0),
			balances: []balance{{ownerA, weth, 100}},
			expectS:  "0",
			expectB:  "0",
		},
		{
			desc:     "buy amount is truncated",
			order:    order(1, ownerA, weth, gto, 3, 10, lrc, 0),
			balances: []balance{{ownerA, weth, 2}},
			expectS:  "2",
			expectB:  "6",
		},
	}

	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			st := state(c.balances...)
			if c.filled > 0 || c.cancelled {
				st.SetTradeHistory(c.order.AccountID, c.order.TokenS, engine.Slot(c.order.OrderID), &types.TradeHistory{
					Filled:    u(c.filled),
					Cancelled: c.cancelled,
					OrderID:   c.order.OrderID,
				})
			}
			s, b := engine.ResolveFill(c.order, st)
			assert.Equal(t, c.expectS, s.String())
			assert.Equal(t, c.expectB, b.String())
		})
	}
}
