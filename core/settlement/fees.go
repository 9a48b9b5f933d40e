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

package settlement

import (
	"github.com/Loopring/protocols-sub002/core/types"
	"github.com/Loopring/protocols-sub002/libs/num"
)

var (
	hundred  = num.NewUint(100)
	thousand = num.NewUint(1000)
)

// SplitFee shares fee between the wallet, the ring fee recipient and the
// burn using the configured burn rate.
func (e *Engine) SplitFee(fee *num.Uint, walletSplitPercentage uint32, waiveFeePercentage int32) *types.FeeSplit {
	return splitFee(fee, walletSplitPercentage, waiveFeePercentage, e.getConfig().BurnRate)
}

// splitFee never clamps waiveFeePercentage: above 100 the matching share
// grows past the fee, below 0 it turns into a rebate paid to the order owner.
// Signed divisions truncate toward zero.
func splitFee(fee *num.Uint, walletSplitPercentage uint32, waiveFeePercentage int32, burnRate uint64) *types.FeeSplit {
	walletFee := num.UintZero().MulDiv(fee, num.NewUint(uint64(walletSplitPercentage)), hundred)
	matchingFee := num.UintZero().Sub(fee, walletFee)

	walletFeeToBurn := num.UintZero().MulDiv(walletFee, num.NewUint(burnRate), thousand)
	walletFeeToPay := num.UintZero().Sub(walletFee, walletFeeToBurn)

	matchingFeeAfterWaiving := num.IntFromUint(matchingFee, true).
		Mul(num.NewInt(int64(waiveFeePercentage))).
		Div(num.NewInt(100))
	matchingFeeToBurn := matchingFeeAfterWaiving.Clone().
		Mul(num.IntFromUint(num.NewUint(burnRate), true)).
		Div(num.NewInt(1000))
	matchingFeeToPay := matchingFeeAfterWaiving.Clone().Sub(matchingFeeToBurn)

	feeToBurn := num.IntFromUint(walletFeeToBurn, true).Add(matchingFeeToBurn)

	return &types.FeeSplit{
		WalletFee:         walletFee,
		MatchingFee:       matchingFee,
		WalletFeeToBurn:   walletFeeToBurn,
		WalletFeeToPay:    walletFeeToPay,
		MatchingFeeToBurn: matchingFeeToBurn,
		MatchingFeeToPay:  matchingFeeToPay,
		FeeToBurn:         feeToBurn,
	}
}
