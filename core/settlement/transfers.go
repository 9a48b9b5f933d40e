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

// buildTransfers returns the transfer forest of the settlement, in order:
// sell and fee of order A, sell and fee of order B, operator fee.
// A voided ring has the same shape with zero amounts, operator fee included.
func buildTransfers(cfg Config, ring *types.Ring, rs *types.RingSettlement, operator types.AccountID) []*types.DetailedTokenTransfer {
	a, b := orderOrEmpty(ring.OrderA), orderOrEmpty(ring.OrderB)
	operatorFee := num.UintZero()
	if rs.Settled() {
		operatorFee = ring.OperatorFee()
	}

	sellA := types.NewGroupTransfer(types.TransferSell, a.TokenS, a.AccountID, rs.FillA.S,
		types.NewLeafTransfer(types.TransferToBuyer, a.TokenS, a.AccountID, b.AccountID, rs.FillB.B),
		types.NewLeafTransfer(types.TransferMargin, a.TokenS, a.AccountID, ring.MinerAccountID, rs.Margin),
	)
	sellB := types.NewGroupTransfer(types.TransferSell, b.TokenS, b.AccountID, rs.FillB.S,
		types.NewLeafTransfer(types.TransferToBuyer, b.TokenS, b.AccountID, a.AccountID, rs.FillA.B),
	)

	return []*types.DetailedTokenTransfer{
		sellA,
		feeTransfer(cfg, ring, a, rs.FillA),
		sellB,
		feeTransfer(cfg, ring, b, rs.FillB),
		types.NewLeafTransfer(types.TransferOperatorFee, ring.TokenID, ring.MinerAccountID, operator, operatorFee),
	}
}

func feeTransfer(cfg Config, ring *types.Ring, o *types.Order, fill *types.Fill) *types.DetailedTokenTransfer {
	return types.NewGroupTransfer(types.TransferFee, o.TokenF, o.AccountID, fill.F,
		types.NewLeafTransfer(types.TransferWallet, o.TokenF, o.AccountID, o.DualAuthAccountID, fill.Fees.WalletFeeToPay),
		signedLeaf(types.TransferMatching, o.TokenF, o.AccountID, ring.FeeRecipientAccountID, fill.Fees.MatchingFeeToPay),
		signedLeaf(types.TransferBurn, o.TokenF, o.AccountID, cfg.BurnAccountID, fill.Fees.FeeToBurn),
	)
}

// signedLeaf pays amount from owner to counterparty, a negative amount is
// paid the other way around.
func signedLeaf(desc string, token types.TokenID, owner, counterparty types.AccountID, amount *num.Int) *types.DetailedTokenTransfer {
	if amount.IsNegative() {
		return types.NewLeafTransfer(desc, token, counterparty, owner, amount.Abs())
	}
	return types.NewLeafTransfer(desc, token, owner, counterparty, amount.Abs())
}

func orderOrEmpty(o *types.Order) *types.Order {
	if o == nil {
		return &types.Order{
			AmountS: num.UintZero(),
			AmountB: num.UintZero(),
			AmountF: num.UintZero(),
		}
	}
	return o
}
