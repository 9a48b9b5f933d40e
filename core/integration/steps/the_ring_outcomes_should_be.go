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

	"github.com/Loopring/protocols-sub002/libs/num"

	"github.com/cucumber/godog"
)

func TheRingOutcomesShouldBe(ex *Exchange, table *godog.Table) error {
	for _, row := range parseRingOutcomesTable(table) {
		i := int(row.MustU32("ring"))
		if i < 1 || i > len(ex.Settlements) {
			return fmt.Errorf("ring %d was not settled, %d rings settled", i, len(ex.Settlements))
		}
		rs := ex.Settlements[i-1]

		if status := row.MustStr("status"); rs.Status.String() != status {
			return fmt.Errorf("ring %d: expected status %s got %s (%s)", i, status, rs.Status, rs.Reason)
		}
		if row.HasColumn("reason") && rs.Reason != row.Str("reason") {
			return fmt.Errorf("ring %d: expected reason %q got %q", i, row.Str("reason"), rs.Reason)
		}

		amounts := []struct {
			col string
			got *num.Uint
		}{
			{"fill s a", rs.FillA.S},
			{"fill b a", rs.FillA.B},
			{"fill f a", rs.FillA.F},
			{"fill s b", rs.FillB.S},
			{"fill b b", rs.FillB.B},
			{"fill f b", rs.FillB.F},
			{"margin", rs.Margin},
		}
		for _, a := range amounts {
			if !row.HasColumn(a.col) {
				continue
			}
			if expected := row.MustUint(a.col); !a.got.EQ(expected) {
				return fmt.Errorf("ring %d: expected %s %s got %s", i, a.col, expected, a.got)
			}
		}

		fees := []struct {
			col string
			got *num.Int
		}{
			{"fee a", rs.FillA.Fees.Total()},
			{"fee b", rs.FillB.Fees.Total()},
		}
		for _, f := range fees {
			if !row.HasColumn(f.col) {
				continue
			}
			if expected := row.MustInt(f.col); !f.got.EQ(expected) {
				return fmt.Errorf("ring %d: expected %s %s got %s", i, f.col, expected, f.got)
			}
		}
	}
	return nil
}

func parseRingOutcomesTable(table *godog.Table) []RowWrapper {
	return StrictParseTable(table, []string{
		"ring",
		"status",
	}, []string{
		"reason",
		"fill s a",
		"fill b a",
		"fill f a",
		"fill s b",
		"fill b b",
		"fill f b",
		"margin",
		"fee a",
		"fee b",
	})
}
