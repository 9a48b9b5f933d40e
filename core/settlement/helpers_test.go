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

	"github.com/Loopring/protocols-sub002/core/settlement"
	"github.com/Loopring/protocols-sub002/core/types"
	"github.com/Loopring/protocols-sub002/libs/num"
	"github.com/Loopring/protocols-sub002/logging"

	"github.com/stretchr/testify/assert"
)

const (
	weth types.TokenID = 1
	gto  types.TokenID = 2
	lrc  types.TokenID = 3

	ownerA       types.AccountID = 10
	ownerB       types.AccountID = 11
	miner        types.AccountID = 20
	feeRecipient types.AccountID = 21
	walletA      types.AccountID = 22
	walletB      types.AccountID = 23
	operator     types.AccountID = 30

	now uint64 = 1_600_000_000
)

type testEngine struct {
	*settlement.Engine
	cfg settlement.Config
}

func getTestEngine(t *testing.T) *testEngine {
	t.Helper()
	cfg := settlement.NewDefaultConfig()
	return &testEngine{
		Engine: settlement.New(logging.NewTestLogger(), cfg),
		cfg:    cfg,
	}
}

func u(v uint64) *num.Uint {
	return num.NewUint(v)
}

func order(id types.OrderID, owner types.AccountID, tokenS, tokenB types.TokenID, amountS, amountB uint64, tokenF types.TokenID, amountF uint64) *types.Order {
	return &types.Order{
		OrderID:               id,
		AccountID:             owner,
		TokenS:                tokenS,
		TokenB:                tokenB,
		TokenF:                tokenF,
		AmountS:               u(amountS),
		AmountB:               u(amountB),
		AmountF:               u(amountF),
		WaiveFeePercentage:    100,
		WalletSplitPercentage: 0,
		ValidSince:            now - 1000,
		ValidUntil:            now + 1000,
	}
}

func ring(a, b *types.Order) *types.Ring {
	return &types.Ring{
		OrderA:                a,
		OrderB:                b,
		MinerAccountID:        miner,
		FeeRecipientAccountID: feeRecipient,
		TokenID:               lrc,
		Fee:                   num.UintZero(),
	}
}

type balance struct {
	account types.AccountID
	token   types.TokenID
	amount  uint64
}

func state(balances ...balance) *types.State {
	s := types.NewState()
	for _, b := range balances {
		s.Credit(b.account, b.token, u(b.amount))
	}
	return s
}

func assertBalance(t *testing.T, s *types.State, account types.AccountID, token types.TokenID, expected uint64) {
	t.Helper()
	assert.Equal(t, u(expected).String(), s.Balance(account, token).String(), "account %d token %d", account, token)
}

func assertAllZero(t *testing.T, rs *types.RingSettlement) {
	t.Helper()
	for _, f := range []*types.Fill{rs.FillA, rs.FillB} {
		assert.True(t, f.S.IsZero())
		assert.True(t, f.B.IsZero())
		assert.True(t, f.F.IsZero())
		assert.True(t, f.Fees.Total().IsZero())
	}
	assert.True(t, rs.Margin.IsZero())
	for _, leaf := range rs.LeafTransfers() {
		assert.True(t, leaf.Amount.IsZero(), leaf.Description)
	}
}
