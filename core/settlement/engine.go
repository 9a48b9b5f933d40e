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
	"sync"

	"github.com/Loopring/protocols-sub002/core/types"
	"github.com/Loopring/protocols-sub002/libs/num"
	"github.com/Loopring/protocols-sub002/logging"
)

// Reasons a ring is voided.
const (
	ReasonInvalidOrder   = "invalid order"
	ReasonNegativeMargin = "negative margin"
	ReasonSelfTrade      = "self trade fee conflict"
	ReasonNotYetValid    = "order not yet valid"
	ReasonExpired        = "order expired"
	ReasonAllOrNone      = "all or none not filled"
	ReasonRoundingError  = "rounding error too large"
	ReasonZeroFill       = "zero fill"
)

// Engine settles rings. It holds no state besides its configuration,
// every call works on the state it is given.
type Engine struct {
	log *logging.Logger

	mu     sync.RWMutex
	config Config
}

// New instantiates a new instance of the settlement engine.
func New(log *logging.Logger, conf Config) *Engine {
	// setup logger
	log = log.Named(namedLogger)
	log.SetLevel(conf.Level.Get())

	return &Engine{
		log:    log,
		config: conf,
	}
}

// ReloadConf update the internal configuration of the settlement engined.
func (e *Engine) ReloadConf(cfg Config) {
	e.log.Info("reloading configuration")
	if e.log.GetLevel() != cfg.Level.Get() {
		e.log.Info("updating log level",
			logging.String("old", e.log.GetLevelString()),
			logging.String("new", cfg.Level.String()),
		)
		e.log.SetLevel(cfg.Level.Get())
	}

	e.mu.Lock()
	e.config = cfg
	e.mu.Unlock()
}

func (e *Engine) getConfig() Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config
}

// SettleRing computes the fills, fees and transfers of the ring against
// state, and returns them with the resulting state. The given state is
// never modified. A ring that cannot be settled is voided: all its fill,
// fee, margin and transfer amounts are zero and the state is left as is.
func (e *Engine) SettleRing(ring *types.Ring, state *types.State, timestamp uint64, operator types.AccountID) (*types.RingSettlement, *types.State) {
	cfg := e.getConfig()
	post := state.Clone()

	rs := &types.RingSettlement{
		Ring:      ring.Clone(),
		Status:    types.RingStatusPending,
		Timestamp: timestamp,
		Operator:  operator,
		FillA:     types.NewFill(),
		FillB:     types.NewFill(),
		Margin:    num.UintZero(),
	}

	m, reason := e.match(cfg, ring, state)
	if len(reason) <= 0 {
		reason = e.checkRing(ring, m, timestamp)
	}

	if len(reason) > 0 {
		rs.Status = types.RingStatusVoided
		rs.Reason = reason
		if e.log.IsDebug() {
			e.log.Debug("ring voided",
				logging.String("reason", reason),
				logging.OrderID(uint32(orderID(ring.OrderA))),
				logging.OrderID(uint32(orderID(ring.OrderB))),
			)
		}
	} else {
		rs.Status = types.RingStatusSettled
		rs.FillA, rs.FillB, rs.Margin = m.fillA, m.fillB, m.margin
		rs.FillA.Fees = e.orderFees(cfg, ring.OrderA, rs.FillA.F)
		rs.FillB.Fees = e.orderFees(cfg, ring.OrderB, rs.FillB.F)
	}

	rs.Transfers = buildTransfers(cfg, ring, rs, operator)
	e.apply(cfg, rs, post)

	return rs, post
}

func (e *Engine) orderFees(cfg Config, o *types.Order, fee *num.Uint) *types.FeeSplit {
	if o.WaiveFeePercentage > 100 || o.WaiveFeePercentage < -100 {
		e.log.Warn("waive fee percentage out of range",
			logging.OrderID(uint32(o.OrderID)),
			logging.AccountID(uint32(o.AccountID)),
			logging.Int64("waive-fee-percentage", int64(o.WaiveFeePercentage)),
		)
	}
	return splitFee(fee, o.WalletSplitPercentage, o.WaiveFeePercentage, cfg.BurnRate)
}

func orderID(o *types.Order) types.OrderID {
	if o == nil {
		return 0
	}
	return o.OrderID
}
