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
	"context"
	"encoding/binary"
	"sync"

	"github.com/Loopring/protocols-sub002/core/types"
	"github.com/Loopring/protocols-sub002/logging"

	cometbftdb "github.com/cometbft/cometbft-db"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

const dbName = "ringstate"

// ErrNoSnapshot signals there is no state stored for the requested block.
var ErrNoSnapshot = errors.New("no snapshot found")

var statePrefix = []byte("state/")

// Store persists the post state of each block, keyed by block number.
type Store struct {
	log *logging.Logger
	cfg Config
	// treeDepth is the trade history tree depth snapshots are decoded with
	treeDepth uint32

	mu sync.Mutex
	db cometbftdb.DB
}

// NewStore opens the LevelDB database under cfg.Dir, or an in memory one
// when cfg.InMemory is set. Trade histories are read back for a tree of
// depth treeDepth.
func NewStore(log *logging.Logger, cfg Config, treeDepth uint32) (*Store, error) {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())

	var (
		db  cometbftdb.DB
		err error
	)
	if cfg.InMemory {
		db = cometbftdb.NewMemDB()
	} else {
		db, err = cometbftdb.NewGoLevelDBWithOpts(
			dbName, cfg.Dir,
			&opt.Options{
				Filter:          filter.NewBloomFilter(10),
				BlockCacher:     opt.NoCacher,
				OpenFilesCacher: opt.NoCacher,
			},
		)
		if err != nil {
			return nil, errors.Wrap(err, "could not initialize LevelDB adapter")
		}
	}

	return &Store{
		log:       log,
		cfg:       cfg,
		treeDepth: treeDepth,
		db:        db,
	}, nil
}

// Save writes the state reached at the end of block blockNr and prunes the
// snapshots older than the configured retention.
func (s *Store) Save(ctx context.Context, blockNr uint64, st *types.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	buf, err := Encode(blockNr, st)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.SetSync(blockKey(blockNr), buf); err != nil {
		return errors.Wrapf(err, "could not save snapshot of block %d", blockNr)
	}
	s.log.Debug("snapshot saved",
		logging.BlockNumber(blockNr),
		logging.Int("size", len(buf)),
	)
	return s.prune(blockNr)
}

// Load returns the state stored for block blockNr.
func (s *Store) Load(ctx context.Context, blockNr uint64) (*types.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, err := s.db.Get(blockKey(blockNr))
	if err != nil {
		return nil, errors.Wrapf(err, "could not read snapshot of block %d", blockNr)
	}
	if buf == nil {
		return nil, errors.Wrapf(ErrNoSnapshot, "block %d", blockNr)
	}
	_, st, err := Decode(buf, s.treeDepth)
	return st, err
}

// Latest returns the most recent block number stored along with its state.
func (s *Store) Latest(ctx context.Context) (uint64, *types.State, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := s.db.ReverseIterator(statePrefix, prefixEnd(statePrefix))
	if err != nil {
		return 0, nil, errors.Wrap(err, "could not iterate snapshots")
	}
	defer it.Close()

	if !it.Valid() {
		return 0, nil, ErrNoSnapshot
	}
	return Decode(it.Value(), s.treeDepth)
}

// Blocks returns the block numbers stored, oldest first.
func (s *Store) Blocks() ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blocks()
}

func (s *Store) blocks() ([]uint64, error) {
	it, err := s.db.Iterator(statePrefix, prefixEnd(statePrefix))
	if err != nil {
		return nil, errors.Wrap(err, "could not iterate snapshots")
	}
	defer it.Close()

	out := []uint64{}
	for ; it.Valid(); it.Next() {
		out = append(out, binary.BigEndian.Uint64(it.Key()[len(statePrefix):]))
	}
	return out, it.Error()
}

func (s *Store) prune(latest uint64) error {
	if s.cfg.Retain == 0 || latest < s.cfg.Retain {
		return nil
	}
	blocks, err := s.blocks()
	if err != nil {
		return err
	}
	for _, nr := range blocks {
		if nr > latest-s.cfg.Retain {
			break
		}
		if err := s.db.Delete(blockKey(nr)); err != nil {
			return errors.Wrapf(err, "could not prune snapshot of block %d", nr)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// big endian keeps the iteration order numeric.
func blockKey(nr uint64) []byte {
	key := make([]byte, len(statePrefix)+8)
	copy(key, statePrefix)
	binary.BigEndian.PutUint64(key[len(statePrefix):], nr)
	return key
}

func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	end[len(end)-1]++
	return end
}
