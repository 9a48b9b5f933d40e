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
	"github.com/Loopring/protocols-sub002/core/types"

	"github.com/cucumber/godog"
)

// default validity window around the block timestamp used by the scenarios
const validityWindow = 1000

func TheFollowingOrders(ex *Exchange, now uint64, table *godog.Table) error {
	for _, row := range parseOrdersTable(table) {
		o := &types.Order{
			OrderID:            row.MustOrder("id"),
			AccountID:          row.MustAccount("account"),
			TokenS:             row.MustToken("token s"),
			TokenB:             row.MustToken("token b"),
			TokenF:             row.MustToken("token f"),
			AmountS:            row.MustUint("amount s"),
			AmountB:            row.MustUint("amount b"),
			AmountF:            row.MustUint("amount f"),
			WaiveFeePercentage: 100,
			ValidSince:         now - validityWindow,
			ValidUntil:         now + validityWindow,
		}
		if row.HasColumn("wallet") {
			o.DualAuthAccountID = row.MustAccount("wallet")
		}
		if row.HasColumn("wallet split") {
			o.WalletSplitPercentage = row.MustU32("wallet split")
		}
		if row.HasColumn("waive fee") {
			o.WaiveFeePercentage = row.MustI32("waive fee")
		}
		if row.HasColumn("all or none") {
			o.AllOrNone = row.MustBool("all or none")
		}
		if row.HasColumn("valid since") {
			o.ValidSince = row.MustU64("valid since")
		}
		if row.HasColumn("valid until") {
			o.ValidUntil = row.MustU64("valid until")
		}
		ex.Orders[o.OrderID] = o
	}
	return nil
}

func parseOrdersTable(table *godog.Table) []RowWrapper {
	return StrictParseTable(table, []string{
		"id",
		"account",
		"token s",
		"token b",
		"amount s",
		"amount b",
		"token f",
		"amount f",
	}, []string{
		"wallet",
		"wallet split",
		"waive fee",
		"all or none",
		"valid since",
		"valid until",
	})
}
