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

package steps

import (
	"fmt"

	"github.com/Loopring/protocols-sub002/core/types"
	"github.com/Loopring/protocols-sub002/libs/num"

	"github.com/cucumber/godog"
)

// TheFollowingRingsAreSettled settles every ring of the table in order, each
// one against the state left by the previous one.
func TheFollowingRingsAreSettled(ex *Exchange, now uint64, table *godog.Table) error {
	for _, row := range parseRingsTable(table) {
		a, ok := ex.Orders[row.MustOrder("order a")]
		if !ok {
			return fmt.Errorf("unknown order %s", row.MustStr("order a"))
		}
		b, ok := ex.Orders[row.MustOrder("order b")]
		if !ok {
			return fmt.Errorf("unknown order %s", row.MustStr("order b"))
		}

		r := &types.Ring{
			OrderA:                a.Clone(),
			OrderB:                b.Clone(),
			MinerAccountID:        row.MustAccount("miner"),
			FeeRecipientAccountID: row.MustAccount("fee recipient"),
			Fee:                   num.UintZero(),
		}
		if row.HasColumn("fee") {
			r.Fee = row.MustUint("fee")
			r.TokenID = row.MustToken("fee token")
		}
		operator := types.AccountID(0)
		if row.HasColumn("operator") {
			operator = row.MustAccount("operator")
		}
		timestamp := now
		if row.HasColumn("timestamp") {
			timestamp = row.MustU64("timestamp")
		}

		rs, post := ex.Engine.SettleRing(r, ex.State, timestamp, operator)
		ex.State = post
		ex.Settlements = append(ex.Settlements, rs)
	}
	return nil
}

func parseRingsTable(table *godog.Table) []RowWrapper {
	return StrictParseTable(table, []string{
		"order a",
		"order b",
		"miner",
		"fee recipient",
	}, []string{
		"fee",
		"fee token",
		"operator",
		"timestamp",
	})
}
