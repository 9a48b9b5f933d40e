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

	"github.com/cucumber/godog"
)

func TheFollowingBalances(ex *Exchange, table *godog.Table) error {
	for _, row := range parseBalanceTable(table) {
		ex.credit(row.MustAccount("account"), row.MustToken("token"), row.MustUint("amount"))
	}
	return nil
}

func TheBalancesShouldBe(ex *Exchange, table *godog.Table) error {
	for _, row := range parseBalanceTable(table) {
		acc, tok := row.MustAccount("account"), row.MustToken("token")
		expected := row.MustUint("amount")
		if got := ex.State.Balance(acc, tok); !got.EQ(expected) {
			return fmt.Errorf("invalid balance for account %d token %d, expected %s got %s", acc, tok, expected, got)
		}
	}
	return nil
}

func parseBalanceTable(table *godog.Table) []RowWrapper {
	return StrictParseTable(table, []string{
		"account",
		"token",
		"amount",
	}, []string{})
}
