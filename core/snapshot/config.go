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

package snapshot

import (
	"github.com/Loopring/protocols-sub002/libs/config/encoding"
	"github.com/Loopring/protocols-sub002/logging"
)

const namedLogger = "snapshot"

// Config represents the configuration of the snapshot store.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`
	Dir   string            `long:"dir" description:"directory of the snapshot database"`
	// Retain is the number of most recent snapshots kept, 0 keeps them all.
	Retain   uint64 `long:"retain"`
	InMemory bool   `long:"in-memory"`
}

// NewDefaultConfig creates an instance of config with default values.
func NewDefaultConfig() Config {
	return Config{
		Level:  encoding.LogLevel{Level: logging.InfoLevel},
		Dir:    "snapshots",
		Retain: 0,
	}
}
