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
	"github.com/Loopring/protocols-sub002/libs/config/encoding"
	"github.com/Loopring/protocols-sub002/logging"
)

const namedLogger = "block"

// Config represents the configuration of the block builder.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`
	// MaxRings caps the number of rings a block can hold, 0 means no limit.
	MaxRings int `long:"max-rings" description:"maximum number of rings per block"`
}

// NewDefaultConfig creates an instance of config with default values.
func NewDefaultConfig() Config {
	return Config{
		Level:    encoding.LogLevel{Level: logging.InfoLevel},
		MaxRings: 0,
	}
}
