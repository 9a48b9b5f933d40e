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

package snapshot

import (
	"encoding/json"

	"github.com/Loopring/protocols-sub002/core/types"
	"github.com/Loopring/protocols-sub002/libs/num"

	"github.com/blang/semver/v4"
	"github.com/pkg/errors"
)

// FormatVersion is written in every document. Documents with another major
// version cannot be decoded.
var FormatVersion = semver.MustParse("1.0.0")

var (
	// ErrInvalidSnapshot signals a snapshot document that cannot be decoded.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	// ErrInvalidAmount signals an amount that is not a base 10 integer.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrUnsupportedVersion signals a document written in an incompatible format.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
)

// document is the serialised form of a state: accountID -> balances ->
// tokenID -> {balance, tradeHistory}. Amounts are base 10 strings and any
// missing entry is an implicit zero.
type document struct {
	Version  string                             `json:"version,omitempty"`
	Block    uint64                             `json:"block"`
	Accounts map[types.AccountID]*types.Account `json:"accounts"`
	Burned   map[types.TokenID]string           `json:"burned,omitempty"`
}

// decoded mirrors document for reading. The owner of a trade history entry
// is optional, an entry without one belongs to the order id it is keyed by.
type decoded struct {
	Version  string                          `json:"version,omitempty"`
	Block    uint64                          `json:"block"`
	Accounts map[types.AccountID]*docAccount `json:"accounts"`
	Burned   map[types.TokenID]string        `json:"burned,omitempty"`
}

type docAccount struct {
	Balances map[types.TokenID]*docBalance `json:"balances"`
}

type docBalance struct {
	Balance      *num.Uint                          `json:"balance"`
	TradeHistory map[types.OrderID]*docTradeHistory `json:"tradeHistory"`
}

type docTradeHistory struct {
	Filled    *num.Uint      `json:"filled"`
	Cancelled bool           `json:"cancelled"`
	OrderID   *types.OrderID `json:"orderID"`
}

// Encode serialises the state reached at the end of block blockNr.
func Encode(blockNr uint64, st *types.State) ([]byte, error) {
	doc := document{
		Version:  FormatVersion.String(),
		Block:    blockNr,
		Accounts: map[types.AccountID]*types.Account{},
		Burned:   map[types.TokenID]string{},
	}
	if st != nil {
		doc.Accounts = st.Accounts
		for tok, b := range st.Burned {
			if b.IsZero() {
				continue
			}
			doc.Burned[tok] = b.String()
		}
	}
	buf, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "could not encode state")
	}
	return buf, nil
}

// Decode parses a document produced by Encode, or written by hand, and
// returns the block number and the state it holds. A document without a
// version is read as the current format. Trade history entries are stored
// in the slot of their order for a tree of the given depth.
func Decode(buf []byte, treeDepth uint32) (uint64, *types.State, error) {
	doc := decoded{}
	if err := json.Unmarshal(buf, &doc); err != nil {
		return 0, nil, errors.Wrap(ErrInvalidSnapshot, err.Error())
	}
	if doc.Version != "" {
		v, err := semver.Parse(doc.Version)
		if err != nil {
			return 0, nil, errors.Wrap(ErrInvalidSnapshot, err.Error())
		}
		if v.Major != FormatVersion.Major {
			return 0, nil, errors.Wrapf(ErrUnsupportedVersion, "%s", v)
		}
	}

	st := types.NewState()
	for accID, acc := range doc.Accounts {
		if acc == nil {
			continue
		}
		for tok, bal := range acc.Balances {
			if bal == nil {
				continue
			}
			if bal.Balance != nil && !bal.Balance.IsZero() {
				st.Credit(accID, tok, bal.Balance)
			}
			for key, th := range bal.TradeHistory {
				if th == nil {
					continue
				}
				owner := key
				if th.OrderID != nil {
					owner = *th.OrderID
				}
				st.RecordTradeHistory(treeDepth, accID, tok, &types.TradeHistory{
					Filled:    th.Filled,
					Cancelled: th.Cancelled,
					OrderID:   owner,
				})
			}
		}
	}
	for tok, s := range doc.Burned {
		v, failed := num.IntFromString(s)
		if failed {
			return 0, nil, errors.Wrapf(ErrInvalidAmount, "burned amount of token %d: %q", tok, s)
		}
		st.AddBurned(tok, v)
	}
	return doc.Block, st, nil
}
