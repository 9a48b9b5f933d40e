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
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Loopring/protocols-sub002/core/config"
	"github.com/Loopring/protocols-sub002/core/snapshot"
	"github.com/Loopring/protocols-sub002/core/types"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

type Subcommand func(context.Context, *flags.Parser) error

func Register(ctx context.Context, parser *flags.Parser, cmds ...Subcommand) error {
	for _, fn := range cmds {
		if err := fn(ctx, parser); err != nil {
			return err
		}
	}
	return nil
}

func Main(ctx context.Context) error {
	parser := flags.NewParser(&struct{}{}, flags.Default)

	if err := Register(ctx, parser,
		Init,
		Settle,
		Replay,
		Verify,
		Version,
	); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return err
	}

	if _, err := parser.Parse(); err != nil {
		return err
	}
	return nil
}

// loadConfig reads config.toml under home, falling back to the defaults
// when home is not set or holds no configuration file.
func loadConfig(home string) (config.Config, error) {
	if home == "" {
		return config.NewDefaultConfig(), nil
	}
	cfg := config.NewDefaultConfig()
	read, err := config.Read(home)
	switch {
	case err == nil:
		cfg = *read
	case !errors.Is(err, fs.ErrNotExist):
		return config.Config{}, err
	}
	if !filepath.IsAbs(cfg.Snapshot.Dir) {
		cfg.Snapshot.Dir = filepath.Join(home, cfg.Snapshot.Dir)
	}
	return cfg, nil
}

func readBlock(path string) (*types.Block, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read block file %s", path)
	}
	blk := &types.Block{}
	if err := json.Unmarshal(buf, blk); err != nil {
		return nil, errors.Wrapf(err, "could not decode block file %s", path)
	}
	return blk, nil
}

// readState loads a snapshot document, an empty path is an empty state.
func readState(path string, treeDepth uint32) (*types.State, error) {
	if path == "" {
		return types.NewState(), nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read state file %s", path)
	}
	_, st, err := snapshot.Decode(buf, treeDepth)
	return st, err
}

func writeJSON(w io.Writer, v interface{}) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(buf, '\n'))
	return err
}
