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
	"io"
	"os"

	"github.com/Loopring/protocols-sub002/core/snapshot"
	"github.com/Loopring/protocols-sub002/logging"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

type SettleCmd struct {
	Home      string `long:"home" description:"directory holding config.toml, defaults are used if not set"`
	StateFile string `long:"state" description:"snapshot of the state before the block, empty state if not set"`
	Output    string `short:"o" long:"output" description:"file the state after the block is written to"`
	Transfers bool   `long:"transfers" description:"include the transfer trees in the report"`

	Args struct {
		Block string `positional-arg-name:"BLOCK" description:"block file, in json"`
	} `positional-args:"yes" required:"yes"`

	ctx context.Context
	out io.Writer
}

var settleCmd SettleCmd

func Settle(ctx context.Context, parser *flags.Parser) error {
	settleCmd = SettleCmd{
		ctx: ctx,
		out: os.Stdout,
	}

	_, err := parser.AddCommand("settle", "Settle a single block", "Settle the rings of a block file against a state snapshot and print the outcome of every ring", &settleCmd)
	return err
}

func (opts *SettleCmd) Execute(_ []string) error {
	cfg, err := loadConfig(opts.Home)
	if err != nil {
		return err
	}
	log := logging.NewLoggerFromConfig(cfg.Logging)
	defer log.AtExit()

	blk, err := readBlock(opts.Args.Block)
	if err != nil {
		return err
	}
	st, err := readState(opts.StateFile, cfg.Settlement.TradeHistoryTreeDepth)
	if err != nil {
		return err
	}

	p := newPipeline(log, cfg, nil, st, blk.Number)
	res, err := p.process(opts.ctx, blk)
	if err != nil {
		return err
	}

	if opts.Output != "" {
		buf, err := snapshot.Encode(res.Number, res.State)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.Output, buf, 0o600); err != nil {
			return errors.Wrapf(err, "could not write %s", opts.Output)
		}
	}
	return writeJSON(opts.out, newBlockReport(res, opts.Transfers))
}
