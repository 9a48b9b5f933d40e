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
	"fmt"
	"strings"
)

// Int a wrapper to a signed big int, stored as sign and magnitude.
// Multiplication and division work on the magnitudes, so divisions
// truncate toward zero like the EVM SDIV opcode.
type Int struct {
	// The unsigned version of the integer
	U *Uint
	// The sign of the integer true = positive, false = negative
	s bool
}

// IntZero returns a new Int set to 0.
func IntZero() *Int {
	return NewInt(0)
}

// NewInt creates a new Int with the value of the
// int64 passed as a parameter.
func NewInt(val int64) *Int {
	if val < 0 {
		return &Int{
			U: NewUint(uint64(-val)),
			s: false,
		}
	}
	return &Int{
		U: NewUint(uint64(val)),
		s: true,
	}
}

// IntFromUint creates a new Int with the value of the
// uint passed as a parameter.
func IntFromUint(u *Uint, s bool) *Int {
	return &Int{
		U: u.Clone(),
		s: s,
	}
}

// IntFromString parses a base 10 integer with an optional leading minus,
// returning true if the value is invalid or does not fit 256 bits.
func IntFromString(str string) (*Int, bool) {
	positive := !strings.HasPrefix(str, "-")
	u, failed := UintFromString(strings.TrimPrefix(str, "-"), 10)
	if failed {
		return IntZero(), true
	}
	return IntFromUint(u, positive || u.IsZero()), false
}

// IsNegative tests if the stored value is negative
// true if < 0
// false if >= 0.
func (i *Int) IsNegative() bool {
	return !i.s && !i.U.IsZero()
}

// IsPositive tests if the stored value is positive
// true if > 0
// false if <= 0.
func (i *Int) IsPositive() bool {
	return i.s && !i.U.IsZero()
}

// IsZero tests if the stored value is zero
// true if == 0.
func (i *Int) IsZero() bool {
	return i.U.IsZero()
}

// FlipSign changes the sign of the number from - to + and back again.
func (i *Int) FlipSign() {
	i.s = !i.s
}

// Clone creates a copy of the object so nothing is shared.
func (i Int) Clone() *Int {
	return &Int{
		U: i.U.Clone(),
		s: i.s,
	}
}

// Abs returns a copy of the magnitude.
func (i Int) Abs() *Uint {
	return i.U.Clone()
}

// GT returns if i > o.
func (i Int) GT(o *Int) bool {
	if i.IsNegative() {
		if o.IsPositive() || o.IsZero() {
			return false
		}
		return i.U.LT(o.U)
	}
	if i.IsPositive() {
		if o.IsZero() || o.IsNegative() {
			return true
		}
		return i.U.GT(o.U)
	}
	return o.IsNegative()
}

// LT returns if i < o.
func (i Int) LT(o *Int) bool {
	return o.GT(&i)
}

// EQ returns if i == o.
func (i Int) EQ(o *Int) bool {
	if i.IsZero() && o.IsZero() {
		return true
	}
	return i.s == o.s && i.U.EQ(o.U)
}

// String returns a string version of the number.
func (i Int) String() string {
	if i.IsNegative() {
		return "-" + i.U.String()
	}
	return i.U.String()
}

// Add will add the passed in value to the base value
// i = i + a.
func (i *Int) Add(a *Int) *Int {
	// Handle cases where we have a zero
	if a.IsZero() {
		return i
	}
	if i.IsZero() {
		i.U.Set(a.U)
		i.s = a.s
		return i
	}

	// Handle the easy cases were both are the same sign
	if i.s == a.s {
		i.U.Add(i.U, a.U)
		return i
	}

	// Now the case where the signs are different
	if i.U.GTE(a.U) {
		i.U.Sub(i.U, a.U)
		return i
	}
	i.U.Sub(a.U, i.U)
	i.s = a.s
	return i
}

// AddSum adds all of the parameters to i
// i = i + a + b + c.
func (i *Int) AddSum(vals ...*Int) *Int {
	for _, x := range vals {
		i.Add(x)
	}
	return i
}

// Sub will subtract the passed in value from the base value
// i = i - a.
func (i *Int) Sub(a *Int) *Int {
	neg := a.Clone()
	neg.FlipSign()
	return i.Add(neg)
}

// Mul will multiply the passed in value to the base value
// i = i * m.
func (i *Int) Mul(m *Int) *Int {
	i.U.Mul(i.U, m.U)
	i.s = i.s == m.s
	return i
}

// Div will divide the base value by the passed in value,
// truncating toward zero
// i = i / d.
func (i *Int) Div(d *Int) *Int {
	i.U.Div(i.U, d.U)
	i.s = i.s == d.s
	return i
}

// MarshalText encodes the value as a signed base 10 string.
func (i Int) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *Int) UnmarshalText(text []byte) error {
	v, failed := IntFromString(string(text))
	if failed {
		return fmt.Errorf("invalid int256 value: %q", string(text))
	}
	*i = *v
	return nil
}
