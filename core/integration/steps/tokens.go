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
)

func TheBurnedAmountOfTokenShouldBe(ex *Exchange, token, amount string) error {
	expected, failed := num.IntFromString(amount)
	if failed {
		return fmt.Errorf("invalid amount %q", amount)
	}
	tok, failed := num.UintFromString(token, 10)
	if failed || !tok.IsUint64() {
		return fmt.Errorf("invalid token %q", token)
	}
	if got := ex.State.BurnedAmount(types.TokenID(tok.Uint64())); !got.EQ(expected) {
		return fmt.Errorf("expected %s of token %s burned, got %s", expected, token, got)
	}
	return nil
}

// TokensShouldBeConserved checks that for every token the balances plus the
// burned amount add up to what was put in.
func TokensShouldBeConserved(ex *Exchange) error {
	totals := map[types.TokenID]*num.Int{}
	for _, acc := range ex.State.AccountIDs() {
		for _, tok := range ex.State.Accounts[acc].TokenIDs() {
			if _, ok := totals[tok]; !ok {
				totals[tok] = num.IntZero()
			}
			totals[tok].Add(num.IntFromUint(ex.State.Balance(acc, tok), true))
		}
	}
	for tok, burned := range ex.State.Burned {
		if _, ok := totals[tok]; !ok {
			totals[tok] = num.IntZero()
		}
		totals[tok].Add(burned)
	}

	for tok, deposited := range ex.deposited {
		got, ok := totals[tok]
		if !ok {
			got = num.IntZero()
		}
		if !got.EQ(num.IntFromUint(deposited, true)) {
			return fmt.Errorf("token %d not conserved, %s deposited, %s accounted for", tok, deposited, got)
		}
	}
	return nil
}
