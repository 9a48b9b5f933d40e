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

package events

import (
	"context"
)

// BlockCommitted is the last event sent for a block.
type BlockCommitted struct {
	*Base
	timestamp uint64
	settled   int
	voided    int
}

func NewBlockCommittedEvent(ctx context.Context, blockNr, timestamp uint64, settled, voided int) *BlockCommitted {
	return &BlockCommitted{
		Base:      newBase(ctx, blockNr, BlockCommittedEvent),
		timestamp: timestamp,
		settled:   settled,
		voided:    voided,
	}
}

func (b BlockCommitted) Timestamp() uint64 {
	return b.timestamp
}

func (b BlockCommitted) Settled() int {
	return b.settled
}

func (b BlockCommitted) Voided() int {
	return b.voided
}
