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

package num

import (
	"github.com/shopspring/decimal"
)

// Decimal is only used for reporting, settlement arithmetic never
// goes through it.
type Decimal = decimal.Decimal

func DecimalZero() Decimal {
	return decimal.Zero
}

func DecimalFromUint(u *Uint) Decimal {
	return decimal.NewFromBigInt(u.BigInt(), 0)
}

func DecimalFromInt64(i int64) Decimal {
	return decimal.NewFromInt(i)
}

// Ratio returns n / d as a decimal rounded to the given places,
// zero when d is zero.
func Ratio(n, d *Uint, places int32) Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	return DecimalFromUint(n).DivRound(DecimalFromUint(d), places)
}
