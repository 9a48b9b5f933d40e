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
	"path/filepath"

	"github.com/Loopring/protocols-sub002/core/config"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// ErrConfigExists signals init would overwrite an existing configuration.
var ErrConfigExists = errors.New("configuration already exists, use --force to overwrite it")

type InitCmd struct {
	Home  string `long:"home" required:"true" description:"directory config.toml is written to"`
	Force bool   `short:"f" long:"force" description:"overwrite an existing configuration"`
}

var initCmd InitCmd

func Init(ctx context.Context, parser *flags.Parser) error {
	initCmd = InitCmd{}

	_, err := parser.AddCommand("init", "Write the default configuration", "Write config.toml with the default values under the home directory", &initCmd)
	return err
}

func (opts *InitCmd) Execute(_ []string) error {
	if _, err := os.Stat(filepath.Join(opts.Home, "config.toml")); err == nil && !opts.Force {
		return ErrConfigExists
	}
	return config.Write(opts.Home, config.NewDefaultConfig())
}
