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
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

var (
	// ErrOverflow is the panic value of any operation whose result does not fit 256 bits.
	ErrOverflow = errors.New("uint256 overflow")
	// ErrUnderflow is the panic value of a subtraction going below zero.
	ErrUnderflow = errors.New("uint256 underflow")
	// ErrDivisionByZero is the panic value of a division or modulo by zero.
	ErrDivisionByZero = errors.New("uint256 division by zero")
)

// Uint A wrapper for a 256 bits unsigned int.
// All arithmetic is checked: an operation that would wrap around
// panics instead, mirroring a reverting EVM safe-math operation.
type Uint struct {
	u uint256.Int
}

// NewUint creates a new Uint with the value of the
// uint64 passed as a parameter.
func NewUint(val uint64) *Uint {
	return &Uint{*uint256.NewInt(val)}
}

// UintZero returns a new Uint set to 0.
func UintZero() *Uint {
	return NewUint(0)
}

// UintOne returns a new Uint set to 1.
func UintOne() *Uint {
	return NewUint(1)
}

// Min returns the smallest of the 2 numbers.
func Min(a, b *Uint) *Uint {
	if a.LT(b) {
		return a
	}
	return b
}

// Max returns the largest of the 2 numbers.
func Max(a, b *Uint) *Uint {
	if a.GT(b) {
		return a
	}
	return b
}

// UintFromBig construct a new Uint with a big.Int
// returns true if overflow happened.
func UintFromBig(b *big.Int) (*Uint, bool) {
	if b.Sign() < 0 {
		return NewUint(0), true
	}
	u, overflow := uint256.FromBig(b)
	if overflow {
		return NewUint(0), true
	}
	return &Uint{*u}, false
}

// UintFromString created a new Uint from a string
// interpreted using the give base.
// will return true if an error/overflow happened.
func UintFromString(str string, base int) (*Uint, bool) {
	b, ok := big.NewInt(0).SetString(str, base)
	if !ok {
		return NewUint(0), true
	}
	return UintFromBig(b)
}

// MustUintFromString is UintFromString in base 10, panicking
// on invalid input. Meant for tests and constants.
func MustUintFromString(str string) *Uint {
	u, failed := UintFromString(str, 10)
	if failed {
		panic(fmt.Sprintf("invalid uint256 string: %q", str))
	}
	return u
}

// Sum just removes the need to write num.NewUint(0).AddSum(x, y, z)
// so you can write num.Sum(x, y, z) instead, equivalent to x + y + z.
func Sum(vals ...*Uint) *Uint {
	return NewUint(0).AddSum(vals...)
}

func (z *Uint) Set(oth *Uint) *Uint {
	z.u.Set(&oth.u)
	return z
}

func (z *Uint) SetUint64(val uint64) *Uint {
	z.u.SetUint64(val)
	return z
}

func (z Uint) Uint64() uint64 {
	return z.u.Uint64()
}

// IsUint64 reports whether the value fits a uint64.
func (z Uint) IsUint64() bool {
	return z.u.IsUint64()
}

func (z Uint) BigInt() *big.Int {
	return z.u.ToBig()
}

func (z *Uint) ToDecimal() Decimal {
	return DecimalFromUint(z)
}

// Add will add x and y then store the result
// into z
// this is equivalent to:
// `z = x + y`
// z is returned for convenience, no
// new variable is created.
// Panics with ErrOverflow if the result does not fit 256 bits.
func (z *Uint) Add(x, y *Uint) *Uint {
	if _, overflow := z.u.AddOverflow(&x.u, &y.u); overflow {
		panic(ErrOverflow)
	}
	return z
}

// AddSum adds multiple values at the same time to a given uint
// so x.AddSum(y, z) is equivalent to x + y + z.
func (z *Uint) AddSum(vals ...*Uint) *Uint {
	for _, x := range vals {
		z.Add(z, x)
	}
	return z
}

// AddOverflow will add y to x then store the result
// into z, true is returned if an overflow occurred.
func (z *Uint) AddOverflow(x, y *Uint) (*Uint, bool) {
	_, ok := z.u.AddOverflow(&x.u, &y.u)
	return z, ok
}

// Sub will subtract y from x then store the result
// into z
// this is equivalent to:
// `z = x - y`
// Panics with ErrUnderflow if y > x.
func (z *Uint) Sub(x, y *Uint) *Uint {
	if _, underflow := z.u.SubOverflow(&x.u, &y.u); underflow {
		panic(ErrUnderflow)
	}
	return z
}

// SubOverflow will subtract y to x then store the result
// into z, true is returned if an underflow occurred.
func (z *Uint) SubOverflow(x, y *Uint) (*Uint, bool) {
	_, ok := z.u.SubOverflow(&x.u, &y.u)
	return z, ok
}

// SaturatingSub sets z to x - y, or to zero when y > x.
func (z *Uint) SaturatingSub(x, y *Uint) *Uint {
	if y.GT(x) {
		z.u.Clear()
		return z
	}
	z.u.Sub(&x.u, &y.u)
	return z
}

// Delta will subtract y from x and store the result
// unless x-y overflowed, in which case the neg field will be set
// and the result of y - x is set instead.
func (z *Uint) Delta(x, y *Uint) (*Uint, bool) {
	// y is the bigger value - swap the two
	if y.GT(x) {
		_ = z.Sub(y, x)
		return z, true
	}
	_ = z.Sub(x, y)
	return z, false
}

// Mul will multiply x and y then store the result
// into z
// this is equivalent to:
// `z = x * y`
// Panics with ErrOverflow if the product does not fit 256 bits.
func (z *Uint) Mul(x, y *Uint) *Uint {
	if _, overflow := z.u.MulOverflow(&x.u, &y.u); overflow {
		panic(ErrOverflow)
	}
	return z
}

// MulOverflow multiplies x and y into z, true is returned on overflow.
func (z *Uint) MulOverflow(x, y *Uint) (*Uint, bool) {
	_, ok := z.u.MulOverflow(&x.u, &y.u)
	return z, ok
}

// Div will divide x by y then store the result
// into z
// this is equivalent to:
// `z = x / y`
// the result is truncated toward zero.
func (z *Uint) Div(x, y *Uint) *Uint {
	if y.IsZero() {
		panic(ErrDivisionByZero)
	}
	z.u.Div(&x.u, &y.u)
	return z
}

// Mod sets z to x mod y.
func (z *Uint) Mod(x, y *Uint) *Uint {
	if y.IsZero() {
		panic(ErrDivisionByZero)
	}
	z.u.Mod(&x.u, &y.u)
	return z
}

// MulDiv sets z to x * y / d. The product is computed on
// 512 bits so it cannot overflow, only the final quotient has
// to fit 256 bits.
// this is equivalent to:
// `z = x * y / d`
func (z *Uint) MulDiv(x, y, d *Uint) *Uint {
	if d.IsZero() {
		panic(ErrDivisionByZero)
	}
	if _, overflow := z.u.MulDivOverflow(&x.u, &y.u, &d.u); overflow {
		panic(ErrOverflow)
	}
	return z
}

// MulDivOverflow sets z to x * y / d computed on 512 bits, true is returned
// if the quotient does not fit 256 bits.
func (z *Uint) MulDivOverflow(x, y, d *Uint) (*Uint, bool) {
	if d.IsZero() {
		panic(ErrDivisionByZero)
	}
	_, overflow := z.u.MulDivOverflow(&x.u, &y.u, &d.u)
	return z, overflow
}

// MulMod sets z to x * y mod m, computed on 512 bits.
func (z *Uint) MulMod(x, y, m *Uint) *Uint {
	if m.IsZero() {
		panic(ErrDivisionByZero)
	}
	z.u.MulMod(&x.u, &y.u, &m.u)
	return z
}

// LT with check if the value stored in u is
// lesser than oth
// this is equivalent to:
// `u < oth`.
func (u Uint) LT(oth *Uint) bool {
	return u.u.Lt(&oth.u)
}

// LTUint64 with check if the value stored in u is
// lesser than oth.
func (u Uint) LTUint64(oth uint64) bool {
	return u.u.LtUint64(oth)
}

// LTE with check if the value stored in u is
// lesser than or equal to oth
// this is equivalent to:
// `u <= oth`.
func (u Uint) LTE(oth *Uint) bool {
	return u.u.Lt(&oth.u) || u.u.Eq(&oth.u)
}

// EQ with check if the value stored in u is
// equal to oth
// this is equivalent to:
// `u == oth`.
func (u Uint) EQ(oth *Uint) bool {
	return u.u.Eq(&oth.u)
}

// EQUint64 with check if the value stored in u is
// equal to oth.
func (u Uint) EQUint64(oth uint64) bool {
	return u.u.Eq(uint256.NewInt(oth))
}

// NEQ with check if the value stored in u is
// different than oth
// this is equivalent to:
// `u != oth`.
func (u Uint) NEQ(oth *Uint) bool {
	return !u.u.Eq(&oth.u)
}

// GT with check if the value stored in u is
// greater than oth
// this is equivalent to:
// `u > oth`.
func (u Uint) GT(oth *Uint) bool {
	return u.u.Gt(&oth.u)
}

// GTUint64 with check if the value stored in u is
// greater than oth.
func (u Uint) GTUint64(oth uint64) bool {
	return u.u.GtUint64(oth)
}

// GTE with check if the value stored in u is
// greater than or equal to oth
// this is equivalent to:
// `u >= oth`.
func (u Uint) GTE(oth *Uint) bool {
	return u.u.Gt(&oth.u) || u.u.Eq(&oth.u)
}

// IsZero return whether u == 0 or not.
func (u Uint) IsZero() bool {
	return u.u.IsZero()
}

// Copy create a copy of the uint
// this if the equivalent to:
// z = x.
func (z *Uint) Copy(x *Uint) *Uint {
	z.u = x.u
	return z
}

// Clone create copy of this value
// this is the equivalent to:
// x := z.
func (z Uint) Clone() *Uint {
	return &Uint{z.u}
}

// Hex returns the hexadecimal representation
// of the stored value.
func (u Uint) Hex() string {
	return u.u.Hex()
}

// String returns the stored value as a string
// this is internally using big.Int.String().
func (u Uint) String() string {
	return u.u.ToBig().String()
}

// Format implement fmt.Formatter.
func (u Uint) Format(s fmt.State, ch rune) {
	u.u.Format(s, ch)
}

// Bytes return the internal representation
// of the Uint as [32]bytes, BigEndian encoded
// array.
func (u Uint) Bytes() [32]byte {
	return u.u.Bytes32()
}

// MarshalText encodes the value as a base 10 string, which makes
// a Uint a quoted decimal string in JSON.
func (u Uint) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText decodes a base 10 string.
func (u *Uint) UnmarshalText(text []byte) error {
	v, failed := UintFromString(string(text), 10)
	if failed {
		return fmt.Errorf("invalid uint256 value: %q", string(text))
	}
	u.u = v.u
	return nil
}
