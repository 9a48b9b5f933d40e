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

package config_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Loopring/protocols-sub002/core/config"
	"github.com/Loopring/protocols-sub002/core/events"
	"github.com/Loopring/protocols-sub002/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))
}

func TestConfig(t *testing.T) {
	t.Run("write then read keeps every value", testWriteRead)
	t.Run("missing keys keep their default", testPartialFile)
	t.Run("burn rate above 1000 is rejected", testInvalidBurnRate)
	t.Run("missing file", testMissingFile)
}

func testWriteRead(t *testing.T) {
	dir := t.TempDir()
	cfg := config.NewDefaultConfig()
	cfg.Settlement.BurnRate = 250
	cfg.Settlement.BurnAccountID = 7
	cfg.Settlement.Level.Level = logging.DebugLevel
	cfg.Block.MaxRings = 64
	cfg.Snapshot.Retain = 10
	require.NoError(t, config.Write(dir, cfg))

	got, err := config.Read(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, *got)
}

func testPartialFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, `
[Settlement]
BurnRate = 200
Level = "debug"
`)
	got, err := config.Read(dir)
	require.NoError(t, err)
	assert.Equal(t, uint64(200), got.Settlement.BurnRate)
	assert.Equal(t, logging.DebugLevel, got.Settlement.Level.Get())
	assert.Equal(t, uint32(14), got.Settlement.TradeHistoryTreeDepth)
	assert.Equal(t, config.NewDefaultConfig().Metrics, got.Metrics)
}

func testInvalidBurnRate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "[Settlement]\nBurnRate = 1001\n")
	_, err := config.Read(dir)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	writeFile(t, dir, "[Block]\nMaxRings = -1\n")
	_, err = config.Read(dir)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func testMissingFile(t *testing.T) {
	_, err := config.Read(t.TempDir())
	assert.Error(t, err)
}

func TestWatcher(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	writeFile(t, dir, "[Settlement]\nBurnRate = 100\n")

	w, err := config.NewFromFile(ctx, logging.NewTestLogger(), dir)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), w.Get().Settlement.BurnRate)
	assert.Equal(t, []events.Type{events.BlockCommittedEvent}, w.Types())

	var received atomic.Uint64
	w.OnConfigUpdate(func(cfg config.Config) {
		received.Store(cfg.Settlement.BurnRate)
	})

	// no change yet, nothing to notify
	w.Push(events.NewBlockCommittedEvent(ctx, 1, 0, 0, 0))
	assert.Zero(t, received.Load())

	writeFile(t, dir, "[Settlement]\nBurnRate = 300\n")
	require.Eventually(t, func() bool {
		return w.Get().Settlement.BurnRate == 300
	}, 5*time.Second, 10*time.Millisecond)

	// listeners wait for the block commit
	assert.Zero(t, received.Load())
	require.Eventually(t, func() bool {
		w.Push(events.NewBlockCommittedEvent(ctx, 2, 0, 0, 0))
		return received.Load() == 300
	}, 5*time.Second, 10*time.Millisecond)
}
