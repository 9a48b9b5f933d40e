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
	"strconv"
	"strings"

	"github.com/Loopring/protocols-sub002/core/types"
	"github.com/Loopring/protocols-sub002/libs/num"

	"github.com/cucumber/godog"
)

type RowWrapper struct {
	values map[string]string
}

// StrictParseTable parses the table and panics if a column is missing or
// if one is not expected.
func StrictParseTable(dt *godog.Table, required, optional []string) []RowWrapper {
	tableLen := len(dt.Rows)
	if tableLen < 1 {
		panic("A table is required.")
	}

	expected := map[string]struct{}{}
	for _, c := range required {
		expected[c] = struct{}{}
	}
	for _, c := range optional {
		expected[c] = struct{}{}
	}

	header := dt.Rows[0]
	found := map[string]struct{}{}
	for _, cell := range header.Cells {
		if _, ok := expected[cell.Value]; !ok {
			panic(fmt.Errorf("column %q is not expected in this table", cell.Value))
		}
		found[cell.Value] = struct{}{}
	}
	for _, c := range required {
		if _, ok := found[c]; !ok {
			panic(fmt.Errorf("column %q is required in this table", c))
		}
	}

	out := make([]RowWrapper, 0, tableLen-1)
	for _, row := range dt.Rows[1:] {
		w := RowWrapper{values: map[string]string{}}
		for i, cell := range row.Cells {
			w.values[header.Cells[i].Value] = strings.TrimSpace(cell.Value)
		}
		out = append(out, w)
	}
	return out
}

func (r RowWrapper) HasColumn(name string) bool {
	v, ok := r.values[name]
	return ok && v != ""
}

func (r RowWrapper) MustStr(name string) string {
	v, ok := r.values[name]
	if !ok {
		panic(fmt.Errorf("column %q not found", name))
	}
	return v
}

func (r RowWrapper) Str(name string) string {
	return r.values[name]
}

func (r RowWrapper) MustUint(name string) *num.Uint {
	v, failed := num.UintFromString(r.MustStr(name), 10)
	panicW(name, failed)
	return v
}

func (r RowWrapper) MustInt(name string) *num.Int {
	v, failed := num.IntFromString(r.MustStr(name))
	panicW(name, failed)
	return v
}

func (r RowWrapper) MustU32(name string) uint32 {
	v, err := strconv.ParseUint(r.MustStr(name), 10, 32)
	panicW(name, err != nil)
	return uint32(v)
}

func (r RowWrapper) MustU64(name string) uint64 {
	v, err := strconv.ParseUint(r.MustStr(name), 10, 64)
	panicW(name, err != nil)
	return v
}

func (r RowWrapper) MustI32(name string) int32 {
	v, err := strconv.ParseInt(r.MustStr(name), 10, 32)
	panicW(name, err != nil)
	return int32(v)
}

func (r RowWrapper) MustBool(name string) bool {
	v, err := strconv.ParseBool(r.MustStr(name))
	panicW(name, err != nil)
	return v
}

func (r RowWrapper) MustAccount(name string) types.AccountID {
	return types.AccountID(r.MustU32(name))
}

func (r RowWrapper) MustToken(name string) types.TokenID {
	return types.TokenID(r.MustU32(name))
}

func (r RowWrapper) MustOrder(name string) types.OrderID {
	return types.OrderID(r.MustU32(name))
}

func panicW(field string, failed bool) {
	if failed {
		panic(fmt.Sprintf("couldn't parse %s", field))
	}
}
