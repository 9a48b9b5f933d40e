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

package num_test

import (
	"encoding/json"
	"fmt"
	"math/big"
	"testing"

	"github.com/Loopring/protocols-sub002/libs/num"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxUint256 = "115792089237316195423570985008687907853269984665640564039457584007913129639935"

func TestUint256Constructors(t *testing.T) {
	var expected uint64 = 42

	t.Run("test from uint64", func(t *testing.T) {
		n := num.NewUint(expected)
		assert.Equal(t, expected, n.Uint64())
	})

	t.Run("test from string", func(t *testing.T) {
		n, failed := num.UintFromString("42", 10)
		assert.False(t, failed)
		assert.Equal(t, expected, n.Uint64())
	})

	t.Run("test from big", func(t *testing.T) {
		n, failed := num.UintFromBig(big.NewInt(int64(expected)))
		assert.False(t, failed)
		assert.Equal(t, expected, n.Uint64())
	})

	t.Run("test from negative big", func(t *testing.T) {
		_, failed := num.UintFromBig(big.NewInt(-1))
		assert.True(t, failed)
	})

	t.Run("test from string too large", func(t *testing.T) {
		_, failed := num.UintFromString(maxUint256+"0", 10)
		assert.True(t, failed)
	})
}

func TestUint256Clone(t *testing.T) {
	var (
		expect1 uint64 = 42
		expect2 uint64 = 84
		first          = num.NewUint(expect1)
		second         = first.Clone()
	)

	assert.Equal(t, expect1, first.Uint64())
	assert.Equal(t, expect1, second.Uint64())

	// now we change second value, and ensure 1 hasn't changed
	second.Add(second, num.NewUint(42))

	assert.Equal(t, expect1, first.Uint64())
	assert.Equal(t, expect2, second.Uint64())
}

func TestUint256CheckedArithmetic(t *testing.T) {
	max := num.MustUintFromString(maxUint256)

	t.Run("add overflow panics", func(t *testing.T) {
		assert.PanicsWithValue(t, num.ErrOverflow, func() {
			num.UintZero().Add(max, num.UintOne())
		})
	})

	t.Run("sub underflow panics", func(t *testing.T) {
		assert.PanicsWithValue(t, num.ErrUnderflow, func() {
			num.UintZero().Sub(num.NewUint(1), num.NewUint(2))
		})
	})

	t.Run("mul overflow panics", func(t *testing.T) {
		assert.PanicsWithValue(t, num.ErrOverflow, func() {
			num.UintZero().Mul(max, num.NewUint(2))
		})
	})

	t.Run("division by zero panics", func(t *testing.T) {
		assert.PanicsWithValue(t, num.ErrDivisionByZero, func() {
			num.UintZero().Div(num.NewUint(2), num.UintZero())
		})
		assert.PanicsWithValue(t, num.ErrDivisionByZero, func() {
			num.UintZero().Mod(num.NewUint(2), num.UintZero())
		})
	})

	t.Run("saturating sub stops at zero", func(t *testing.T) {
		assert.True(t, num.UintZero().SaturatingSub(num.NewUint(1), num.NewUint(5)).IsZero())
		assert.Equal(t, uint64(4), num.UintZero().SaturatingSub(num.NewUint(5), num.NewUint(1)).Uint64())
	})

	t.Run("division truncates", func(t *testing.T) {
		assert.Equal(t, uint64(3), num.UintZero().Div(num.NewUint(10), num.NewUint(3)).Uint64())
		assert.Equal(t, uint64(1), num.UintZero().Mod(num.NewUint(10), num.NewUint(3)).Uint64())
	})
}

func TestUint256MulDiv(t *testing.T) {
	max := num.MustUintFromString(maxUint256)

	// max * 3 overflows 256 bits but the quotient fits
	res := num.UintZero().MulDiv(max, num.NewUint(3), num.NewUint(3))
	assert.Equal(t, maxUint256, res.String())

	assert.Equal(t, uint64(33), num.UintZero().MulDiv(num.NewUint(10), num.NewUint(10), num.NewUint(3)).Uint64())

	assert.PanicsWithValue(t, num.ErrOverflow, func() {
		num.UintZero().MulDiv(max, num.NewUint(3), num.NewUint(2))
	})
	assert.PanicsWithValue(t, num.ErrDivisionByZero, func() {
		num.UintZero().MulDiv(max, num.NewUint(3), num.UintZero())
	})

	_, overflow := num.UintZero().MulDivOverflow(max, num.NewUint(3), num.NewUint(2))
	assert.True(t, overflow)
	res, overflow = num.UintZero().MulDivOverflow(max, num.NewUint(2), num.NewUint(4))
	assert.False(t, overflow)
	assert.Equal(t, num.UintZero().Div(max, num.NewUint(2)).String(), res.String())

	// 512 bits intermediate for the remainder too
	assert.Equal(t, uint64(2), num.UintZero().MulMod(max, num.NewUint(2), num.NewUint(7)).Uint64())
}

func TestUint256Print(t *testing.T) {
	var (
		expected = "42"
		n        = num.NewUint(42)
	)

	assert.Equal(t, expected, fmt.Sprintf("%v", n))
	assert.Equal(t, expected, n.String())
}

func TestUint256JSON(t *testing.T) {
	type wrapper struct {
		Amount *num.Uint `json:"amount"`
	}

	buf, err := json.Marshal(wrapper{Amount: num.MustUintFromString("1000000000000000000000")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"1000000000000000000000"}`, string(buf))

	var out wrapper
	require.NoError(t, json.Unmarshal(buf, &out))
	assert.Equal(t, "1000000000000000000000", out.Amount.String())

	assert.Error(t, json.Unmarshal([]byte(`{"amount":"-1"}`), &out))
	assert.Error(t, json.Unmarshal([]byte(`{"amount":"abc"}`), &out))
}

func TestRatio(t *testing.T) {
	assert.Equal(t, "0.5", num.Ratio(num.NewUint(1), num.NewUint(2), 4).String())
	assert.True(t, num.Ratio(num.NewUint(1), num.UintZero(), 4).IsZero())
}
