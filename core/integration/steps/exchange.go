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

package steps

import (
	"strconv"

	"github.com/Loopring/protocols-sub002/core/settlement"
	"github.com/Loopring/protocols-sub002/core/types"
	"github.com/Loopring/protocols-sub002/libs/num"
)

// Exchange is what the steps of a scenario share: the engine, the state
// it moves forward, and everything settled so far.
type Exchange struct {
	Engine      *settlement.Engine
	Config      settlement.Config
	State       *types.State
	Orders      map[types.OrderID]*types.Order
	Settlements []*types.RingSettlement
	// deposited is the amount of each token put in with balance steps
	deposited map[types.TokenID]*num.Uint
}

func NewExchange(engine *settlement.Engine, cfg settlement.Config) *Exchange {
	return &Exchange{
		Engine:    engine,
		Config:    cfg,
		State:     types.NewState(),
		Orders:    map[types.OrderID]*types.Order{},
		deposited: map[types.TokenID]*num.Uint{},
	}
}

func (e *Exchange) credit(account types.AccountID, token types.TokenID, amount *num.Uint) {
	e.State.Credit(account, token, amount)
	cur, ok := e.deposited[token]
	if !ok {
		cur = num.UintZero()
		e.deposited[token] = cur
	}
	cur.Add(cur, amount)
}

func TheBurnRateIs(ex *Exchange, rate string) error {
	r, err := strconv.ParseUint(rate, 10, 64)
	if err != nil {
		return err
	}
	ex.Config.BurnRate = r
	ex.Engine.ReloadConf(ex.Config)
	return nil
}
