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
	"fmt"
)

type Type int

// Event - the base event interface type.
type Event interface {
	Type() Type
	Context() context.Context
	Sequence() uint64
	SetSequenceID(s uint64)
	BlockNr() uint64
	// EventID is unique for a given block number and sequence.
	EventID() string
}

const (
	// All event type -> used by subscribers to just receive all events, has no actual corresponding event payload.
	All Type = iota
	RingSettledEvent
	RingVoidedEvent
	DepositEvent
	WithdrawalEvent
	BlockCommittedEvent
)

var eventStrings = map[Type]string{
	All:                 "ALL",
	RingSettledEvent:    "RingSettledEvent",
	RingVoidedEvent:     "RingVoidedEvent",
	DepositEvent:        "DepositEvent",
	WithdrawalEvent:     "WithdrawalEvent",
	BlockCommittedEvent: "BlockCommittedEvent",
}

// Base common denominator all event-bus events share.
type Base struct {
	ctx     context.Context
	blockNr uint64
	seq     uint64
	et      Type
}

// A base event holds no data, so the constructor will not be called directly.
func newBase(ctx context.Context, blockNr uint64, t Type) *Base {
	return &Base{
		ctx:     ctx,
		blockNr: blockNr,
		et:      t,
	}
}

// SetSequenceID sets the sequence ID, it can only be set once.
func (b *Base) SetSequenceID(s uint64) {
	if b.seq != 0 {
		return
	}
	b.seq = s
}

// Sequence returns event sequence number.
func (b Base) Sequence() uint64 {
	return b.seq
}

// Context returns context.
func (b Base) Context() context.Context {
	return b.ctx
}

// Type returns the event type.
func (b Base) Type() Type {
	return b.et
}

// BlockNr returns the number of the block the event was emitted in.
func (b Base) BlockNr() uint64 {
	return b.blockNr
}

func (b Base) EventID() string {
	return fmt.Sprintf("%d-%d", b.blockNr, b.seq)
}

// String get string representation of event type.
func (t Type) String() string {
	s, ok := eventStrings[t]
	if !ok {
		return "UNKNOWN EVENT"
	}
	return s
}

// TryFromString tries to parse a raw string into an event type, false indicates that.
func TryFromString(s string) (*Type, bool) {
	for k, v := range eventStrings {
		if s == v {
			return &k, true
		}
	}
	return nil, false
}
