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

package types_test

import (
	"encoding/json"
	"testing"

	"github.com/Loopring/protocols-sub002/core/types"
	"github.com/Loopring/protocols-sub002/libs/num"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettlementJSON(t *testing.T) {
	fill := types.NewFill()
	fill.S = num.NewUint(110)
	fill.Fees.FeeToBurn = num.NewInt(-250)
	rs := &types.RingSettlement{
		Status: types.RingStatusVoided,
		Reason: "expired",
		FillA:  fill,
		FillB:  types.NewFill(),
		Margin: num.UintZero(),
		Transfers: []*types.DetailedTokenTransfer{
			types.NewGroupTransfer(types.TransferSell, 1, 10, num.NewUint(5),
				types.NewLeafTransfer(types.TransferToBuyer, 1, 10, 11, num.NewUint(5)),
			),
		},
	}

	buf, err := json.Marshal(rs)
	require.NoError(t, err)
	assert.Contains(t, string(buf), `"status":"voided"`)
	assert.Contains(t, string(buf), `"feeToBurn":"-250"`)
	assert.Contains(t, string(buf), `"fillAmountS":"110"`)
	assert.Contains(t, string(buf), `"kind":"group"`)

	got := &types.RingSettlement{}
	require.NoError(t, json.Unmarshal(buf, got))
	assert.Equal(t, types.RingStatusVoided, got.Status)
	assert.Equal(t, "-250", got.FillA.Fees.FeeToBurn.String())
	require.Len(t, got.LeafTransfers(), 1)
	assert.Equal(t, types.TransferKindLeaf, got.LeafTransfers()[0].Kind)
	assert.Equal(t, "5", got.LeafTransfers()[0].Amount.String())

	assert.Error(t, json.Unmarshal([]byte(`{"status":"lost"}`), got))
}
