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

package block_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Loopring/protocols-sub002/core/block"
	"github.com/Loopring/protocols-sub002/core/block/mocks"
	"github.com/Loopring/protocols-sub002/core/broker"
	"github.com/Loopring/protocols-sub002/core/events"
	"github.com/Loopring/protocols-sub002/core/settlement"
	"github.com/Loopring/protocols-sub002/core/types"
	"github.com/Loopring/protocols-sub002/libs/num"
	"github.com/Loopring/protocols-sub002/logging"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	weth types.TokenID = 1
	gto  types.TokenID = 2
	lrc  types.TokenID = 3

	ownerA   types.AccountID = 10
	ownerB   types.AccountID = 11
	miner    types.AccountID = 20
	operator types.AccountID = 30

	now uint64 = 1_600_000_000
)

type testBuilder struct {
	*block.Builder
	ctrl      *gomock.Controller
	store     *mocks.MockStateStore
	collector *broker.Collector
}

func getTestBuilder(t *testing.T, cfg block.Config) *testBuilder {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := logging.NewTestLogger()
	store := mocks.NewMockStateStore(ctrl)
	brk := broker.New(log, broker.NewDefaultConfig())
	collector := broker.NewCollector()
	brk.Subscribe(collector)
	engine := settlement.New(log, settlement.NewDefaultConfig())

	return &testBuilder{
		Builder:   block.New(log, cfg, engine, brk, store, types.NewState(), 1),
		ctrl:      ctrl,
		store:     store,
		collector: collector,
	}
}

func order(id types.OrderID, owner types.AccountID, tokenS, tokenB types.TokenID, amountS, amountB uint64) *types.Order {
	return &types.Order{
		OrderID:            id,
		AccountID:          owner,
		TokenS:             tokenS,
		TokenB:             tokenB,
		TokenF:             lrc,
		AmountS:            num.NewUint(amountS),
		AmountB:            num.NewUint(amountB),
		AmountF:            num.UintZero(),
		WaiveFeePercentage: 100,
		ValidSince:         now - 1000,
		ValidUntil:         now + 1000,
	}
}

func ring(a, b *types.Order) *types.Ring {
	return &types.Ring{
		OrderA:         a,
		OrderB:         b,
		MinerAccountID: miner,
		TokenID:        lrc,
		Fee:            num.UintZero(),
	}
}

func deposit(account types.AccountID, token types.TokenID, amount uint64) *types.Deposit {
	return &types.Deposit{AccountID: account, Token: token, Amount: num.NewUint(amount)}
}

func withdrawal(account types.AccountID, token types.TokenID, amount uint64) *types.Withdrawal {
	return &types.Withdrawal{AccountID: account, Token: token, Amount: num.NewUint(amount)}
}

func TestBuilder(t *testing.T) {
	t.Run("deposits are credited before rings settle", testDepositsBeforeRings)
	t.Run("rings settle against the state left by the previous ring", testSequentialRings)
	t.Run("withdrawals are capped by the balance", testWithdrawalCapped)
	t.Run("events are sent in processing order", testEventOrder)
	t.Run("empty block cannot be committed", testEmptyBlock)
	t.Run("max rings per block", testMaxRings)
	t.Run("invalid input is rejected", testInvalidInput)
	t.Run("store failure keeps the previous state", testStoreFailure)
	t.Run("cancelled context aborts the commit", testCancelledContext)
	t.Run("settler receives the state chain", testSettlerStateChain)
	t.Run("settler panic leaves the builder usable", testSettlerPanic)
	t.Run("load a full block", testLoadBlock)
	t.Run("subscribers can call back into the builder", testCallbackFromBroker)
}

func testDepositsBeforeRings(t *testing.T) {
	b := getTestBuilder(t, block.NewDefaultConfig())
	b.store.EXPECT().Save(gomock.Any(), uint64(1), gomock.Any()).Times(1).Return(nil)

	_, err := b.AddRing(ring(order(1, ownerA, weth, gto, 110, 200), order(2, ownerB, gto, weth, 200, 100)))
	require.NoError(t, err)
	_, err = b.AddDeposit(deposit(ownerA, weth, 110))
	require.NoError(t, err)
	_, err = b.AddDeposit(deposit(ownerB, gto, 200))
	require.NoError(t, err)

	res, err := b.Commit(context.Background(), now, operator)
	require.NoError(t, err)
	require.Len(t, res.Settlements, 1)
	assert.True(t, res.Settlements[0].Settled(), res.Settlements[0].Reason)
	assert.Equal(t, uint64(1), res.Number)

	assert.Equal(t, "200", res.State.Balance(ownerA, gto).String())
	assert.Equal(t, "100", res.State.Balance(ownerB, weth).String())
	assert.Equal(t, "10", res.State.Balance(miner, weth).String())
	assert.Equal(t, uint64(2), b.BlockNumber())

	r, d, w := b.Pending()
	assert.Zero(t, r+d+w)
}

func testSequentialRings(t *testing.T) {
	b := getTestBuilder(t, block.NewDefaultConfig())
	b.store.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).Return(nil)

	_, err := b.AddDeposit(deposit(ownerA, weth, 110))
	require.NoError(t, err)
	_, err = b.AddDeposit(deposit(ownerB, gto, 200))
	require.NoError(t, err)

	// the same orders twice: the second ring finds them fully filled
	r := ring(order(1, ownerA, weth, gto, 110, 200), order(2, ownerB, gto, weth, 200, 100))
	_, err = b.AddRing(r)
	require.NoError(t, err)
	_, err = b.AddRing(r)
	require.NoError(t, err)

	res, err := b.Commit(context.Background(), now, operator)
	require.NoError(t, err)
	require.Len(t, res.Settlements, 2)
	assert.Equal(t, types.RingStatusSettled, res.Settlements[0].Status)
	assert.Equal(t, types.RingStatusVoided, res.Settlements[1].Status)
	assert.Equal(t, "10", res.State.Balance(miner, weth).String())
}

func testWithdrawalCapped(t *testing.T) {
	b := getTestBuilder(t, block.NewDefaultConfig())
	b.store.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).Return(nil)

	_, err := b.AddDeposit(deposit(ownerA, weth, 50))
	require.NoError(t, err)
	_, err = b.AddWithdrawal(withdrawal(ownerA, weth, 80))
	require.NoError(t, err)
	_, err = b.AddWithdrawal(withdrawal(ownerB, gto, 10))
	require.NoError(t, err)

	res, err := b.Commit(context.Background(), now, operator)
	require.NoError(t, err)
	require.Len(t, res.Withdrawn, 2)
	assert.Equal(t, "50", res.Withdrawn[0].String())
	assert.Equal(t, "0", res.Withdrawn[1].String())
	assert.True(t, res.State.Balance(ownerA, weth).IsZero())
}

func testEventOrder(t *testing.T) {
	b := getTestBuilder(t, block.NewDefaultConfig())
	b.store.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).Return(nil)

	_, err := b.AddWithdrawal(withdrawal(ownerB, weth, 100))
	require.NoError(t, err)
	_, err = b.AddRing(ring(order(1, ownerA, weth, gto, 110, 200), order(2, ownerB, gto, weth, 200, 100)))
	require.NoError(t, err)
	_, err = b.AddDeposit(deposit(ownerA, weth, 110))
	require.NoError(t, err)
	_, err = b.AddDeposit(deposit(ownerB, gto, 200))
	require.NoError(t, err)

	res, err := b.Commit(context.Background(), now, operator)
	require.NoError(t, err)
	// the withdrawal sees the proceeds of the ring
	assert.Equal(t, "100", res.Withdrawn[0].String())

	evts := b.collector.Events()
	require.Len(t, evts, 5)
	expected := []events.Type{
		events.DepositEvent,
		events.DepositEvent,
		events.RingSettledEvent,
		events.WithdrawalEvent,
		events.BlockCommittedEvent,
	}
	for i, e := range evts {
		assert.Equal(t, expected[i], e.Type(), i)
		assert.Equal(t, uint64(i+1), e.Sequence())
		assert.Equal(t, uint64(1), e.BlockNr())
	}
	committed, ok := evts[4].(*events.BlockCommitted)
	require.True(t, ok)
	assert.Equal(t, 1, committed.Settled())
	assert.Equal(t, 0, committed.Voided())
	assert.Equal(t, now, committed.Timestamp())
}

func testEmptyBlock(t *testing.T) {
	b := getTestBuilder(t, block.NewDefaultConfig())
	_, err := b.Commit(context.Background(), now, operator)
	assert.ErrorIs(t, err, block.ErrEmptyBlock)
	assert.Equal(t, uint64(1), b.BlockNumber())
}

func testMaxRings(t *testing.T) {
	cfg := block.NewDefaultConfig()
	cfg.MaxRings = 1
	b := getTestBuilder(t, cfg)

	r := ring(order(1, ownerA, weth, gto, 1, 1), order(2, ownerB, gto, weth, 1, 1))
	idx, err := b.AddRing(r)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	_, err = b.AddRing(r)
	assert.ErrorIs(t, err, block.ErrTooManyRings)

	cfg.MaxRings = 2
	b.ReloadConf(cfg)
	idx, err = b.AddRing(r)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func testInvalidInput(t *testing.T) {
	b := getTestBuilder(t, block.NewDefaultConfig())

	_, err := b.AddRing(&types.Ring{OrderA: order(1, ownerA, weth, gto, 1, 1)})
	assert.Error(t, err)

	o := order(1, ownerA, weth, gto, 1, 1)
	o.AmountS = nil
	_, err = b.AddRing(ring(o, order(2, ownerB, gto, weth, 1, 1)))
	assert.Error(t, err)

	o = order(1, ownerA, weth, gto, 1, 1)
	o.WalletSplitPercentage = 101
	_, err = b.AddRing(ring(o, order(2, ownerB, gto, weth, 1, 1)))
	assert.Error(t, err)

	_, err = b.AddDeposit(&types.Deposit{AccountID: ownerA, Token: weth})
	assert.Error(t, err)
	_, err = b.AddWithdrawal(&types.Withdrawal{AccountID: ownerA, Token: weth})
	assert.Error(t, err)

	r, d, w := b.Pending()
	assert.Zero(t, r+d+w)
}

func testStoreFailure(t *testing.T) {
	b := getTestBuilder(t, block.NewDefaultConfig())
	b.store.EXPECT().Save(gomock.Any(), uint64(1), gomock.Any()).Times(1).Return(errors.New("disk full"))

	_, err := b.AddDeposit(deposit(ownerA, weth, 50))
	require.NoError(t, err)
	_, err = b.Commit(context.Background(), now, operator)
	require.Error(t, err)

	assert.True(t, b.State().Balance(ownerA, weth).IsZero())
	assert.Equal(t, uint64(1), b.BlockNumber())
	assert.Empty(t, b.collector.Events())
	_, d, _ := b.Pending()
	assert.Equal(t, 1, d)

	// the pending content is committed on the next attempt
	b.store.EXPECT().Save(gomock.Any(), uint64(1), gomock.Any()).Times(1).Return(nil)
	_, err = b.Commit(context.Background(), now, operator)
	require.NoError(t, err)
	assert.Equal(t, "50", b.State().Balance(ownerA, weth).String())
}

func testCancelledContext(t *testing.T) {
	b := getTestBuilder(t, block.NewDefaultConfig())
	_, err := b.AddRing(ring(order(1, ownerA, weth, gto, 1, 1), order(2, ownerB, gto, weth, 1, 1)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = b.Commit(ctx, now, operator)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(1), b.BlockNumber())
}

func testSettlerStateChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	settler := mocks.NewMockRingSettler(ctrl)
	brk := mocks.NewMockBroker(ctrl)

	b := block.New(logging.NewTestLogger(), block.NewDefaultConfig(), settler, brk, nil, types.NewState(), 7)

	first := types.NewState()
	first.Credit(ownerA, weth, num.NewUint(1))
	second := first.Clone()
	second.Credit(ownerB, gto, num.NewUint(2))

	r := ring(order(1, ownerA, weth, gto, 1, 1), order(2, ownerB, gto, weth, 1, 1))
	gomock.InOrder(
		settler.EXPECT().SettleRing(gomock.Any(), gomock.Any(), now, operator).Times(1).
			Return(&types.RingSettlement{Status: types.RingStatusSettled}, first),
		settler.EXPECT().SettleRing(gomock.Any(), first, now, operator).Times(1).
			Return(&types.RingSettlement{Status: types.RingStatusVoided, Reason: settlement.ReasonZeroFill}, second),
	)
	brk.EXPECT().SendBatch(gomock.Any()).Times(1).Do(func(evts []events.Event) {
		require.Len(t, evts, 3)
		assert.Equal(t, events.RingVoidedEvent, evts[1].Type())
	})

	_, err := b.AddRing(r)
	require.NoError(t, err)
	_, err = b.AddRing(r)
	require.NoError(t, err)

	res, err := b.Commit(context.Background(), now, operator)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), res.Number)
	assert.Equal(t, "2", res.State.Balance(ownerB, gto).String())
	assert.Equal(t, uint64(8), b.BlockNumber())
}

func testSettlerPanic(t *testing.T) {
	ctrl := gomock.NewController(t)
	settler := mocks.NewMockRingSettler(ctrl)
	brk := mocks.NewMockBroker(ctrl)

	st := types.NewState()
	st.Credit(ownerA, weth, num.NewUint(5))
	b := block.New(logging.NewTestLogger(), block.NewDefaultConfig(), settler, brk, nil, st, 1)

	settler.EXPECT().SettleRing(gomock.Any(), gomock.Any(), now, operator).Times(1).
		DoAndReturn(func(*types.Ring, *types.State, uint64, types.AccountID) (*types.RingSettlement, *types.State) {
			panic(num.ErrUnderflow)
		})

	_, err := b.AddRing(ring(order(1, ownerA, weth, gto, 1, 1), order(2, ownerB, gto, weth, 1, 1)))
	require.NoError(t, err)
	assert.PanicsWithValue(t, num.ErrUnderflow, func() {
		_, _ = b.Commit(context.Background(), now, operator)
	})

	// nothing was committed and the lock was released
	rings, _, _ := b.Pending()
	assert.Equal(t, 1, rings)
	assert.Equal(t, uint64(1), b.BlockNumber())
	assert.Equal(t, "5", b.State().Balance(ownerA, weth).String())
}

func testLoadBlock(t *testing.T) {
	b := getTestBuilder(t, block.NewDefaultConfig())

	blk := &types.Block{
		Number:   1,
		Deposits: []*types.Deposit{deposit(ownerA, weth, 110), deposit(ownerB, gto, 200)},
		Rings: []*types.Ring{
			ring(order(1, ownerA, weth, gto, 110, 200), order(2, ownerB, gto, weth, 200, 100)),
		},
		Withdrawals: []*types.Withdrawal{withdrawal(miner, weth, 10)},
	}
	require.NoError(t, b.Load(blk))
	r, d, w := b.Pending()
	assert.Equal(t, 1, r)
	assert.Equal(t, 2, d)
	assert.Equal(t, 1, w)

	blk.Rings = append(blk.Rings, nil)
	assert.Error(t, b.Load(blk))
}

func testCallbackFromBroker(t *testing.T) {
	ctrl := gomock.NewController(t)
	brk := mocks.NewMockBroker(ctrl)
	engine := settlement.New(logging.NewTestLogger(), settlement.NewDefaultConfig())
	b := block.New(logging.NewTestLogger(), block.NewDefaultConfig(), engine, brk, nil, types.NewState(), 1)

	cfg := block.NewDefaultConfig()
	cfg.MaxRings = 1
	brk.EXPECT().SendBatch(gomock.Any()).Times(1).Do(func(_ []events.Event) {
		b.ReloadConf(cfg)
		assert.Equal(t, uint64(2), b.BlockNumber())
	})

	_, err := b.AddDeposit(deposit(ownerA, weth, 1))
	require.NoError(t, err)
	_, err = b.Commit(context.Background(), now, operator)
	require.NoError(t, err)

	r := ring(order(1, ownerA, weth, gto, 1, 1), order(2, ownerB, gto, weth, 1, 1))
	_, err = b.AddRing(r)
	require.NoError(t, err)
	_, err = b.AddRing(r)
	assert.ErrorIs(t, err, block.ErrTooManyRings)
}
