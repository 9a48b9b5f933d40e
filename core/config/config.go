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

package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/Loopring/protocols-sub002/core/block"
	"github.com/Loopring/protocols-sub002/core/broker"
	"github.com/Loopring/protocols-sub002/core/metrics"
	"github.com/Loopring/protocols-sub002/core/settlement"
	"github.com/Loopring/protocols-sub002/core/snapshot"
	"github.com/Loopring/protocols-sub002/logging"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const configFileName = "config.toml"

// ErrInvalidConfig signals a configuration that decodes but cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config ties together all other application configuration types.
type Config struct {
	Logging    logging.Config    `group:"Logging" namespace:"logging"`
	Settlement settlement.Config `group:"Settlement" namespace:"settlement"`
	Block      block.Config      `group:"Block" namespace:"block"`
	Broker     broker.Config     `group:"Broker" namespace:"broker"`
	Snapshot   snapshot.Config   `group:"Snapshot" namespace:"snapshot"`
	Metrics    metrics.Config    `group:"Metrics" namespace:"metrics"`
}

// NewDefaultConfig returns a set of default configs for all packages, as
// specified at the per package config level.
func NewDefaultConfig() Config {
	return Config{
		Logging:    logging.NewDefaultConfig(),
		Settlement: settlement.NewDefaultConfig(),
		Block:      block.NewDefaultConfig(),
		Broker:     broker.NewDefaultConfig(),
		Snapshot:   snapshot.NewDefaultConfig(),
		Metrics:    metrics.NewDefaultConfig(),
	}
}

// Validate checks the values no package can work with.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if c.Block.MaxRings < 0 {
		return errors.Wrap(ErrInvalidConfig, "max rings cannot be negative")
	}
	return nil
}

// Read loads config.toml from rootPath on top of the default values.
func Read(rootPath string) (*Config, error) {
	path := filepath.Join(rootPath, configFileName)
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", path)
	}
	cfg := NewDefaultConfig()
	if _, err := toml.Decode(string(buf), &cfg); err != nil {
		return nil, errors.Wrapf(err, "could not decode %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Write stores cfg as config.toml under rootPath.
func Write(rootPath string, cfg Config) error {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(cfg); err != nil {
		return errors.Wrap(err, "could not encode configuration")
	}
	if err := os.MkdirAll(rootPath, 0o700); err != nil {
		return errors.Wrapf(err, "could not create %s", rootPath)
	}
	return os.WriteFile(filepath.Join(rootPath, configFileName), buf.Bytes(), 0o600)
}
