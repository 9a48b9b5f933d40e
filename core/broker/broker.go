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

package broker

import (
	"sync"

	"github.com/Loopring/protocols-sub002/core/events"
	"github.com/Loopring/protocols-sub002/logging"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Subscriber receives the events of the types it is interested in, all
// events if Types is empty or contains events.All.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/subscriber_mock.go -package mocks github.com/Loopring/protocols-sub002/core/broker Subscriber
type Subscriber interface {
	Push(evts ...events.Event)
	Types() []events.Type
}

// Broker dispatches events synchronously, in the order they are sent, to
// every interested subscriber. Each event gets a sequence id unique within
// its block.
type Broker struct {
	log *logging.Logger

	mu      sync.Mutex
	subs    map[int]Subscriber
	tSubs   map[events.Type]map[int]struct{}
	keys    []int
	nextKey int
	blockNr uint64
	seq     uint64
}

// New creates a new base broker.
func New(log *logging.Logger, config Config) *Broker {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	return &Broker{
		log:   log,
		subs:  map[int]Subscriber{},
		tSubs: map[events.Type]map[int]struct{}{},
	}
}

// ReloadConf updates the log level of the broker.
func (b *Broker) ReloadConf(cfg Config) {
	b.log.Info("reloading configuration")
	if b.log.GetLevel() != cfg.Level.Get() {
		b.log.Info("updating log level",
			logging.String("old", b.log.GetLevelString()),
			logging.String("new", cfg.Level.String()),
		)
		b.log.SetLevel(cfg.Level.Get())
	}
}

// Send sends an event to all subscribers.
func (b *Broker) Send(event events.Event) {
	b.SendBatch([]events.Event{event})
}

// SendBatch sends a slice of events to subscribers that can handle the
// events in the slice, the events are expected to be of the same block.
func (b *Broker) SendBatch(evts []events.Event) {
	if len(evts) == 0 {
		return
	}

	b.mu.Lock()
	for _, e := range evts {
		if e.BlockNr() != b.blockNr {
			b.blockNr = e.BlockNr()
			b.seq = 0
		}
		b.seq++
		e.SetSequenceID(b.seq)
	}
	perSub := map[int][]events.Event{}
	for _, e := range evts {
		for k := range b.getSubsByType(e.Type()) {
			perSub[k] = append(perSub[k], e)
		}
	}
	subs := make(map[int]Subscriber, len(perSub))
	for k := range perSub {
		subs[k] = b.subs[k]
	}
	b.mu.Unlock()

	keys := maps.Keys(perSub)
	slices.Sort(keys)
	for _, k := range keys {
		subs[k].Push(perSub[k]...)
	}

	if b.log.IsDebug() {
		b.log.Debug("events sent",
			logging.Int("count", len(evts)),
			logging.Int("subscribers", len(keys)),
			logging.Uint64("block-number", evts[0].BlockNr()),
		)
	}
}

func (b *Broker) getSubsByType(t events.Type) map[int]struct{} {
	out := map[int]struct{}{}
	for k := range b.tSubs[t] {
		out[k] = struct{}{}
	}
	for k := range b.tSubs[events.All] {
		out[k] = struct{}{}
	}
	return out
}

// Subscribe registers a new subscriber, returning the key.
func (b *Broker) Subscribe(s Subscriber) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	k := b.getKey()
	b.subs[k] = s
	types := s.Types()
	if len(types) == 0 || slices.Contains(types, events.All) {
		types = []events.Type{events.All}
	}
	for _, t := range types {
		if _, ok := b.tSubs[t]; !ok {
			b.tSubs[t] = map[int]struct{}{}
		}
		b.tSubs[t][k] = struct{}{}
	}
	return k
}

// Unsubscribe removes subscriber from broker
// this does not change the state of the subscriber.
func (b *Broker) Unsubscribe(k int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[k]; !ok {
		return
	}
	delete(b.subs, k)
	for _, m := range b.tSubs {
		delete(m, k)
	}
	b.keys = append(b.keys, k)
}

func (b *Broker) getKey() int {
	if len(b.keys) > 0 {
		k := b.keys[0]
		b.keys = b.keys[1:] // pop first element
		return k
	}
	b.nextKey++
	return b.nextKey
}
