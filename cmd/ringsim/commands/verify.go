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
	"encoding/json"
	"io"
	"os"

	"github.com/Loopring/protocols-sub002/core/verify"
	"github.com/Loopring/protocols-sub002/logging"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

type VerifyCmd struct {
	Home      string `long:"home" description:"directory holding config.toml, defaults are used if not set"`
	StateFile string `long:"state" description:"snapshot of the state before the block, empty state if not set"`

	Args struct {
		Block     string `positional-arg-name:"BLOCK" description:"block file, in json"`
		Transfers string `positional-arg-name:"TRANSFERS" description:"transfers emitted by the chain for the block, in json"`
	} `positional-args:"yes" required:"yes"`

	ctx context.Context
	out io.Writer
}

var verifyCmd VerifyCmd

func Verify(ctx context.Context, parser *flags.Parser) error {
	verifyCmd = VerifyCmd{
		ctx: ctx,
		out: os.Stdout,
	}

	_, err := parser.AddCommand("verify", "Verify chain transfers against a block", "Settle a block and compare the aggregated transfers with the ones the chain emitted", &verifyCmd)
	return err
}

func (opts *VerifyCmd) Execute(_ []string) error {
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
	buf, err := os.ReadFile(opts.Args.Transfers)
	if err != nil {
		return errors.Wrapf(err, "could not read %s", opts.Args.Transfers)
	}
	chain := []verify.Transfer{}
	if err := json.Unmarshal(buf, &chain); err != nil {
		return errors.Wrapf(err, "could not decode %s", opts.Args.Transfers)
	}

	res, err := newPipeline(log, cfg, nil, st, blk.Number).process(opts.ctx, blk)
	if err != nil {
		return err
	}

	mismatches, err := verify.New(log).Verify(res.Settlements, chain)
	if len(mismatches) > 0 {
		if werr := writeJSON(opts.out, mismatches); werr != nil {
			return werr
		}
	}
	return err
}
