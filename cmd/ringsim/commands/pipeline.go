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

package commands

import (
	"context"

	"github.com/Loopring/protocols-sub002/core/block"
	"github.com/Loopring/protocols-sub002/core/broker"
	"github.com/Loopring/protocols-sub002/core/config"
	"github.com/Loopring/protocols-sub002/core/settlement"
	"github.com/Loopring/protocols-sub002/core/types"
	"github.com/Loopring/protocols-sub002/logging"

	"github.com/pkg/errors"
)

// ErrBlockOutOfOrder signals a block file that does not follow the last
// committed block.
var ErrBlockOutOfOrder = errors.New("block out of order")

// pipeline wires the settlement engine to a block builder.
type pipeline struct {
	log     *logging.Logger
	engine  *settlement.Engine
	broker  *broker.Broker
	builder *block.Builder
}

func newPipeline(log *logging.Logger, cfg config.Config, store block.StateStore, st *types.State, next uint64) *pipeline {
	engine := settlement.New(log, cfg.Settlement)
	brk := broker.New(log, cfg.Broker)
	return &pipeline{
		log:     log,
		engine:  engine,
		broker:  brk,
		builder: block.New(log, cfg.Block, engine, brk, store, st, next),
	}
}

func (p *pipeline) reloadConf(cfg config.Config) {
	p.engine.ReloadConf(cfg.Settlement)
	p.broker.ReloadConf(cfg.Broker)
	p.builder.ReloadConf(cfg.Block)
}

// process commits blk, whose number must be 0 or the next block number.
func (p *pipeline) process(ctx context.Context, blk *types.Block) (*types.BlockResult, error) {
	if next := p.builder.BlockNumber(); blk.Number != 0 && blk.Number != next {
		return nil, errors.Wrapf(ErrBlockOutOfOrder, "got block %d, expected %d", blk.Number, next)
	}
	if err := p.builder.Load(blk); err != nil {
		return nil, err
	}
	return p.builder.Commit(ctx, blk.Timestamp, blk.OperatorAccountID)
}
