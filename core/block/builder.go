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

package block

import (
	"context"
	"sync"
	"time"

	"github.com/Loopring/protocols-sub002/core/events"
	"github.com/Loopring/protocols-sub002/core/metrics"
	"github.com/Loopring/protocols-sub002/core/types"
	"github.com/Loopring/protocols-sub002/libs/num"
	"github.com/Loopring/protocols-sub002/logging"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	// ErrTooManyRings signals the block already holds the maximum number of rings.
	ErrTooManyRings = errors.New("too many rings in block")
	// ErrEmptyBlock signals a commit without anything pending.
	ErrEmptyBlock = errors.New("nothing to commit")
)

// RingSettler computes the settlement of a single ring.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/ring_settler_mock.go -package mocks github.com/Loopring/protocols-sub002/core/block RingSettler
type RingSettler interface {
	SettleRing(ring *types.Ring, state *types.State, timestamp uint64, operator types.AccountID) (*types.RingSettlement, *types.State)
}

// Broker receives the events of every committed block.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/broker_mock.go -package mocks github.com/Loopring/protocols-sub002/core/block Broker
type Broker interface {
	Send(event events.Event)
	SendBatch(evts []events.Event)
}

// StateStore persists the post state of every committed block.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/state_store_mock.go -package mocks github.com/Loopring/protocols-sub002/core/block StateStore
type StateStore interface {
	Save(ctx context.Context, blockNr uint64, st *types.State) error
}

// Builder collects deposits, rings and withdrawals and commits them as a
// block against the state it owns. Rings are settled one after the other,
// each one against the state left by the previous one.
type Builder struct {
	log      *logging.Logger
	cfg      Config
	settler  RingSettler
	broker   Broker
	store    StateStore
	validate *validator.Validate

	mu          sync.Mutex
	state       *types.State
	blockNr     uint64
	rings       []*types.Ring
	deposits    []*types.Deposit
	withdrawals []*types.Withdrawal
}

// New creates a builder starting from state at block number next.
// store may be nil.
func New(log *logging.Logger, cfg Config, settler RingSettler, broker Broker, store StateStore, state *types.State, next uint64) *Builder {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())

	return &Builder{
		log:      log,
		cfg:      cfg,
		settler:  settler,
		broker:   broker,
		store:    store,
		validate: validator.New(),
		state:    state.Clone(),
		blockNr:  next,
	}
}

// ReloadConf updates the internal configuration of the builder.
func (b *Builder) ReloadConf(cfg Config) {
	b.log.Info("reloading configuration")
	if b.log.GetLevel() != cfg.Level.Get() {
		b.log.Info("updating log level",
			logging.String("old", b.log.GetLevelString()),
			logging.String("new", cfg.Level.String()),
		)
		b.log.SetLevel(cfg.Level.Get())
	}

	b.mu.Lock()
	b.cfg = cfg
	b.mu.Unlock()
}

// AddRing queues a ring for the next block and returns its index in it.
func (b *Builder) AddRing(r *types.Ring) (int, error) {
	if err := b.validate.Struct(r); err != nil {
		return 0, errors.Wrap(err, "invalid ring")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cfg.MaxRings > 0 && len(b.rings) >= b.cfg.MaxRings {
		return 0, ErrTooManyRings
	}
	b.rings = append(b.rings, r.Clone())
	metrics.PendingRingsSet(len(b.rings))
	return len(b.rings) - 1, nil
}

// AddDeposit queues a deposit for the next block.
func (b *Builder) AddDeposit(d *types.Deposit) (int, error) {
	if err := b.validate.Struct(d); err != nil {
		return 0, errors.Wrap(err, "invalid deposit")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	cpy := *d
	cpy.Amount = d.Amount.Clone()
	b.deposits = append(b.deposits, &cpy)
	return len(b.deposits) - 1, nil
}

// AddWithdrawal queues a withdrawal for the next block.
func (b *Builder) AddWithdrawal(w *types.Withdrawal) (int, error) {
	if err := b.validate.Struct(w); err != nil {
		return 0, errors.Wrap(err, "invalid withdrawal")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	cpy := *w
	cpy.Amount = w.Amount.Clone()
	b.withdrawals = append(b.withdrawals, &cpy)
	return len(b.withdrawals) - 1, nil
}

// Load queues all the content of a block.
func (b *Builder) Load(blk *types.Block) error {
	if err := b.validate.Struct(blk); err != nil {
		return errors.Wrap(err, "invalid block")
	}
	for _, d := range blk.Deposits {
		if _, err := b.AddDeposit(d); err != nil {
			return err
		}
	}
	for _, r := range blk.Rings {
		if _, err := b.AddRing(r); err != nil {
			return err
		}
	}
	for _, w := range blk.Withdrawals {
		if _, err := b.AddWithdrawal(w); err != nil {
			return err
		}
	}
	return nil
}

// Pending returns the number of rings, deposits and withdrawals queued.
func (b *Builder) Pending() (int, int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.rings), len(b.deposits), len(b.withdrawals)
}

// State returns a copy of the current state.
func (b *Builder) State() *types.State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Clone()
}

// BlockNumber returns the number the next committed block will get.
func (b *Builder) BlockNumber() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.blockNr
}

// Commit processes everything pending as one block: deposits first, then
// rings in the order they were added, then withdrawals. The builder state
// is only replaced once the block is fully processed and stored. Events are
// sent once the builder is unlocked, subscribers can call back into it.
func (b *Builder) Commit(ctx context.Context, timestamp uint64, operator types.AccountID) (*types.BlockResult, error) {
	res, evts, err := b.lockedCommit(ctx, timestamp, operator)
	if err != nil {
		return nil, err
	}

	b.broker.SendBatch(evts)
	metrics.BlockCommitted()
	return res, nil
}

// lockedCommit releases the lock even when the settler panics.
func (b *Builder) lockedCommit(ctx context.Context, timestamp uint64, operator types.AccountID) (*types.BlockResult, []events.Event, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.commit(ctx, timestamp, operator)
}

func (b *Builder) commit(ctx context.Context, timestamp uint64, operator types.AccountID) (*types.BlockResult, []events.Event, error) {
	if len(b.rings)+len(b.deposits)+len(b.withdrawals) == 0 {
		return nil, nil, ErrEmptyBlock
	}

	nr := b.blockNr
	st := b.state.Clone()
	evts := make([]events.Event, 0, len(b.deposits)+len(b.rings)+len(b.withdrawals)+1)
	res := &types.BlockResult{
		Number:      nr,
		Settlements: make([]*types.RingSettlement, 0, len(b.rings)),
		Withdrawn:   make([]*num.Uint, 0, len(b.withdrawals)),
	}

	for _, d := range b.deposits {
		st.Credit(d.AccountID, d.Token, d.Amount)
		metrics.TransferProcessed("deposit")
		evts = append(evts, events.NewDepositEvent(ctx, nr, *d))
	}

	settled, voided := 0, 0
	for i, r := range b.rings {
		if err := ctx.Err(); err != nil {
			return nil, nil, errors.Wrapf(err, "block %d interrupted at ring %d", nr, i)
		}
		start := time.Now()
		var rs *types.RingSettlement
		rs, st = b.settler.SettleRing(r, st, timestamp, operator)
		metrics.RingProcessed(rs.Status.String(), time.Since(start))
		if rs.Settled() {
			settled++
		} else {
			voided++
			b.log.Info("ring voided",
				logging.BlockNumber(nr),
				logging.Int("ring", i),
				logging.String("reason", rs.Reason),
			)
		}
		res.Settlements = append(res.Settlements, rs)
		evts = append(evts, events.NewRingEvent(ctx, nr, rs))
	}

	for _, w := range b.withdrawals {
		amount := num.Min(st.Balance(w.AccountID, w.Token), w.Amount).Clone()
		st.Debit(w.AccountID, w.Token, amount)
		res.Withdrawn = append(res.Withdrawn, amount)
		metrics.TransferProcessed("withdrawal")
		evts = append(evts, events.NewWithdrawalEvent(ctx, nr, *w, amount))
	}

	if b.store != nil {
		if err := b.store.Save(ctx, nr, st); err != nil {
			return nil, nil, errors.Wrapf(err, "could not store state of block %d", nr)
		}
	}

	evts = append(evts, events.NewBlockCommittedEvent(ctx, nr, timestamp, settled, voided))

	b.log.Debug("block committed",
		logging.BlockNumber(nr),
		logging.Int("settled", settled),
		logging.Int("voided", voided),
		logging.Int("deposits", len(b.deposits)),
		logging.Int("withdrawals", len(b.withdrawals)),
	)

	b.state = st
	b.blockNr++
	b.rings, b.deposits, b.withdrawals = nil, nil, nil
	metrics.PendingRingsSet(0)

	res.State = st.Clone()
	return res, evts, nil
}
