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

package logging_test

import (
	"testing"

	"github.com/Loopring/protocols-sub002/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, expected := range map[string]logging.Level{
		"debug":   logging.DebugLevel,
		"Info":    logging.InfoLevel,
		"warning": logging.WarnLevel,
		"warn":    logging.WarnLevel,
		"ERROR":   logging.ErrorLevel,
		"panic":   logging.PanicLevel,
		"fatal":   logging.FatalLevel,
	} {
		lvl, err := logging.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, expected, lvl)
	}

	_, err := logging.ParseLevel("chatty")
	assert.Error(t, err)
}

func TestNamedLoggerHasIndependentLevel(t *testing.T) {
	log := logging.NewTestLogger()
	defer log.AtExit()

	child := log.Named("settlement")
	assert.Equal(t, "settlement", child.GetName())
	assert.Equal(t, "settlement.block", child.Named("block").GetName())

	child.SetLevel(logging.DebugLevel)
	assert.True(t, child.IsDebug())
	assert.Equal(t, logging.ErrorLevel, log.GetLevel())
	assert.Equal(t, "debug", child.GetLevelString())
	assert.Equal(t, "error", log.GetLevelString())
}

func TestNewLoggerFromConfig(t *testing.T) {
	assert.Equal(t, logging.DebugLevel, logging.NewLoggerFromConfig(logging.Config{Environment: "dev"}).GetLevel())
	assert.Equal(t, logging.ErrorLevel, logging.NewLoggerFromConfig(logging.Config{Environment: "test"}).GetLevel())
	assert.Equal(t, logging.InfoLevel, logging.NewLoggerFromConfig(logging.NewDefaultConfig()).GetLevel())
}
