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

package types_test

import (
	"testing"

	"github.com/Loopring/protocols-sub002/core/types"
	"github.com/Loopring/protocols-sub002/libs/num"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState(t *testing.T) {
	t.Run("missing entries read as zero", testMissingEntriesAreZero)
	t.Run("credit and debit", testCreditDebit)
	t.Run("clone is deep", testCloneIsDeep)
	t.Run("burned is signed", testBurnedIsSigned)
	t.Run("ids are sorted", testIDsSorted)
}

func testMissingEntriesAreZero(t *testing.T) {
	var nilState *types.State
	assert.True(t, nilState.Balance(1, 2).IsZero())

	s := types.NewState()
	assert.True(t, s.Balance(1, 2).IsZero())
	th := s.TradeHistory(1, 2, 3)
	require.NotNil(t, th.Filled)
	assert.True(t, th.Filled.IsZero())
	assert.False(t, th.Cancelled)
	assert.True(t, s.BurnedAmount(7).IsZero())
	// reads do not create entries
	assert.Empty(t, s.Accounts)
}

func testCreditDebit(t *testing.T) {
	s := types.NewState()
	s.Credit(1, 2, num.NewUint(100))
	s.Debit(1, 2, num.NewUint(30))
	assert.Equal(t, "70", s.Balance(1, 2).String())

	assert.PanicsWithValue(t, num.ErrUnderflow, func() {
		s.Debit(1, 2, num.NewUint(71))
	})

	// the returned balance is a copy
	b := s.Balance(1, 2)
	b.Add(b, num.NewUint(1))
	assert.Equal(t, "70", s.Balance(1, 2).String())
}

func testCloneIsDeep(t *testing.T) {
	s := types.NewState()
	s.Credit(1, 2, num.NewUint(100))
	s.SetTradeHistory(1, 2, 5, &types.TradeHistory{Filled: num.NewUint(10), OrderID: 5})
	s.AddBurned(2, num.NewInt(3))

	cpy := s.Clone()
	cpy.Credit(1, 2, num.NewUint(1))
	cpy.SetTradeHistory(1, 2, 5, &types.TradeHistory{Filled: num.NewUint(11), OrderID: 5, Cancelled: true})
	cpy.AddBurned(2, num.NewInt(1))

	assert.Equal(t, "100", s.Balance(1, 2).String())
	th := s.TradeHistory(1, 2, 5)
	assert.Equal(t, "10", th.Filled.String())
	assert.False(t, th.Cancelled)
	assert.Equal(t, "3", s.BurnedAmount(2).String())
	assert.Equal(t, "4", cpy.BurnedAmount(2).String())
}

func testBurnedIsSigned(t *testing.T) {
	s := types.NewState()
	s.AddBurned(1, num.NewInt(5))
	s.AddBurned(1, num.NewInt(-8))
	assert.Equal(t, "-3", s.BurnedAmount(1).String())
}

func testIDsSorted(t *testing.T) {
	s := types.NewState()
	for _, id := range []types.AccountID{9, 3, 5} {
		s.Credit(id, types.TokenID(10-id), num.UintOne())
	}
	s.Credit(3, 0, num.UintOne())
	assert.Equal(t, []types.AccountID{3, 5, 9}, s.AccountIDs())
	assert.Equal(t, []types.TokenID{0, 7}, s.Accounts[3].TokenIDs())
}
