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
	"github.com/Loopring/protocols-sub002/core/types"
	"github.com/Loopring/protocols-sub002/libs/config/encoding"
	"github.com/Loopring/protocols-sub002/logging"
)

// namedLogger is the identifier for package and should ideally match the package name
// this is simply emitted as a hierarchical label e.g. 'api.grpc'.
const namedLogger = "settlement"

// Config represent the configuration of the settlement engine.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`
	// BurnRate is in parts per 1000.
	BurnRate uint64 `long:"burn-rate" description:"share of fees burned, in parts per 1000" validate:"lte=1000"`
	// TradeHistoryTreeDepth sets the number of trade history slots per
	// account and token to 2^TradeHistoryTreeDepth.
	TradeHistoryTreeDepth uint32          `long:"trade-history-tree-depth"`
	BurnAccountID         types.AccountID `long:"burn-account-id"`
}

// NewDefaultConfig creates an instance of the package specific configuration, given a
// pointer to a logger instance to be used for logging within the package.
func NewDefaultConfig() Config {
	return Config{
		Level:                 encoding.LogLevel{Level: logging.InfoLevel},
		BurnRate:              500,
		TradeHistoryTreeDepth: 14,
		BurnAccountID:         0,
	}
}
