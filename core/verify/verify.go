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

package verify

import (
	"github.com/Loopring/protocols-sub002/core/types"
	"github.com/Loopring/protocols-sub002/libs/num"
	"github.com/Loopring/protocols-sub002/logging"

	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"
	"github.com/pkg/errors"
)

const namedLogger = "verify"

// ErrTransfersMismatch signals the chain did not move the tokens the
// settlements computed.
var ErrTransfersMismatch = errors.New("chain transfers do not match settlements")

// Mismatch is a flow whose expected and observed totals differ.
type Mismatch struct {
	Flow
	Expected *num.Uint `json:"expected"`
	Observed *num.Uint `json:"observed"`
}

// Diff returns the flows on which expected and observed disagree, in flow
// order.
func Diff(expected, observed *Aggregator) []Mismatch {
	flows := rbt.NewWith[Flow, struct{}](compareFlows)
	for _, t := range expected.Transfers() {
		flows.Put(t.Flow, struct{}{})
	}
	for _, t := range observed.Transfers() {
		flows.Put(t.Flow, struct{}{})
	}

	out := []Mismatch{}
	for _, f := range flows.Keys() {
		exp, obs := expected.Get(f), observed.Get(f)
		if !exp.EQ(obs) {
			out = append(out, Mismatch{Flow: f, Expected: exp, Observed: obs})
		}
	}
	return out
}

// Verifier checks the transfers emitted by the chain for a block against
// the settlements of that block.
type Verifier struct {
	log *logging.Logger
}

func New(log *logging.Logger) *Verifier {
	return &Verifier{
		log: log.Named(namedLogger),
	}
}

// Verify returns ErrTransfersMismatch when the chain transfers differ from
// the aggregated leaves of the settlements, along with every mismatch.
func (v *Verifier) Verify(settlements []*types.RingSettlement, chain []Transfer) ([]Mismatch, error) {
	expected := NewAggregator()
	for _, rs := range settlements {
		expected.AddSettlement(rs)
	}
	observed := NewAggregator()
	observed.AddTransfers(chain...)

	mismatches := Diff(expected, observed)
	if len(mismatches) == 0 {
		return nil, nil
	}
	for _, m := range mismatches {
		v.log.Error("transfer mismatch",
			logging.TokenID(uint32(m.Token)),
			logging.Uint32("from", uint32(m.From)),
			logging.Uint32("to", uint32(m.To)),
			logging.BigUint("expected", m.Expected),
			logging.BigUint("observed", m.Observed),
		)
	}
	return mismatches, errors.Wrapf(ErrTransfersMismatch, "%d flows differ", len(mismatches))
}
