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

package commands

import (
	"github.com/Loopring/protocols-sub002/core/types"
	"github.com/Loopring/protocols-sub002/libs/num"
)

const pricePlaces = 10

type ringReport struct {
	Index  int         `json:"index"`
	Status string      `json:"status"`
	Reason string      `json:"reason,omitempty"`
	FillA  *types.Fill `json:"fillA"`
	FillB  *types.Fill `json:"fillB"`
	Margin *num.Uint   `json:"margin"`
	// prices are what each order paid per unit bought
	PriceA    num.Decimal                    `json:"priceA"`
	PriceB    num.Decimal                    `json:"priceB"`
	Transfers []*types.DetailedTokenTransfer `json:"transfers,omitempty"`
}

type blockReport struct {
	Number    uint64       `json:"number"`
	Settled   int          `json:"settled"`
	Voided    int          `json:"voided"`
	Rings     []ringReport `json:"rings"`
	Withdrawn []*num.Uint  `json:"withdrawn"`
}

func newBlockReport(res *types.BlockResult, withTransfers bool) *blockReport {
	r := &blockReport{
		Number:    res.Number,
		Rings:     make([]ringReport, 0, len(res.Settlements)),
		Withdrawn: res.Withdrawn,
	}
	for i, rs := range res.Settlements {
		if rs.Settled() {
			r.Settled++
		} else {
			r.Voided++
		}
		rr := ringReport{
			Index:  i,
			Status: rs.Status.String(),
			Reason: rs.Reason,
			FillA:  rs.FillA,
			FillB:  rs.FillB,
			Margin: rs.Margin,
			PriceA: price(rs.FillA),
			PriceB: price(rs.FillB),
		}
		if withTransfers {
			rr.Transfers = rs.Transfers
		}
		r.Rings = append(r.Rings, rr)
	}
	return r
}

func price(f *types.Fill) num.Decimal {
	if f == nil {
		return num.DecimalZero()
	}
	return num.Ratio(f.S, f.B, pricePlaces)
}
