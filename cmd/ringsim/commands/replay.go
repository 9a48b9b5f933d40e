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
	"os"
	"time"

	"github.com/Loopring/protocols-sub002/core/config"
	"github.com/Loopring/protocols-sub002/core/metrics"
	"github.com/Loopring/protocols-sub002/core/snapshot"
	"github.com/Loopring/protocols-sub002/core/types"
	"github.com/Loopring/protocols-sub002/libs/config/encoding"
	"github.com/Loopring/protocols-sub002/logging"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

type ReplayCmd struct {
	Home     string            `long:"home" required:"true" description:"directory holding config.toml and the snapshot database"`
	Watch    bool              `long:"watch" description:"apply changes to config.toml between blocks"`
	Interval encoding.Duration `long:"interval" description:"pause between two blocks, e.g. 500ms"`

	Args struct {
		Blocks []string `positional-arg-name:"BLOCKS" description:"block files, in json, in the order they are committed"`
	} `positional-args:"yes" required:"yes"`

	ctx context.Context
}

var replayCmd ReplayCmd

func Replay(ctx context.Context, parser *flags.Parser) error {
	replayCmd = ReplayCmd{
		ctx: ctx,
	}

	_, err := parser.AddCommand("replay", "Replay blocks on top of the stored state", "Commit block files one after the other, persisting the state after each of them", &replayCmd)
	return err
}

func (opts *ReplayCmd) Execute(_ []string) error {
	ctx, cancel := context.WithCancel(opts.ctx)
	defer cancel()

	cfg, err := loadConfig(opts.Home)
	if err != nil {
		return err
	}
	log := logging.NewLoggerFromConfig(cfg.Logging)
	defer log.AtExit()

	if err := metrics.Start(ctx, log, cfg.Metrics); err != nil {
		return err
	}

	store, err := snapshot.NewStore(log, cfg.Snapshot, cfg.Settlement.TradeHistoryTreeDepth)
	if err != nil {
		return err
	}
	defer store.Close()

	next, st := uint64(1), types.NewState()
	latest, stored, err := store.Latest(ctx)
	switch {
	case err == nil:
		next, st = latest+1, stored
		log.Info("resuming from snapshot", logging.BlockNumber(latest))
	case !errors.Is(err, snapshot.ErrNoSnapshot):
		return err
	}

	p := newPipeline(log, cfg, store, st, next)

	if opts.Watch {
		w, err := config.NewFromFile(ctx, log, opts.Home)
		if err != nil {
			return err
		}
		w.OnConfigUpdate(p.reloadConf)
		p.broker.Subscribe(w)
	}

	for i, path := range opts.Args.Blocks {
		blk, err := readBlock(path)
		if err != nil {
			return err
		}
		res, err := p.process(ctx, blk)
		if err != nil {
			return errors.Wrapf(err, "could not commit %s", path)
		}
		report := newBlockReport(res, false)
		log.Info("block committed",
			logging.BlockNumber(res.Number),
			logging.String("file", path),
			logging.Int("settled", report.Settled),
			logging.Int("voided", report.Voided),
		)
		if err := writeJSON(os.Stdout, report); err != nil {
			return err
		}

		if i < len(opts.Args.Blocks)-1 && opts.Interval.Get() > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(opts.Interval.Get()):
			}
		}
	}
	return nil
}
