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

package types

import (
	"github.com/Loopring/protocols-sub002/libs/num"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// TradeHistory tracks how much of an order's AmountS has been filled. It is
// stored in a slot shared by every order id congruent modulo the tree size,
// OrderID records which of them currently owns the slot.
type TradeHistory struct {
	Filled    *num.Uint `json:"filled"`
	Cancelled bool      `json:"cancelled"`
	OrderID   OrderID   `json:"orderID"`
}

func (t TradeHistory) Clone() *TradeHistory {
	cpy := t
	if t.Filled != nil {
		cpy.Filled = t.Filled.Clone()
	} else {
		cpy.Filled = num.UintZero()
	}
	return &cpy
}

type Balance struct {
	Balance      *num.Uint                 `json:"balance"`
	TradeHistory map[OrderID]*TradeHistory `json:"tradeHistory"`
}

func NewBalance() *Balance {
	return &Balance{
		Balance:      num.UintZero(),
		TradeHistory: map[OrderID]*TradeHistory{},
	}
}

func (b Balance) Clone() *Balance {
	cpy := NewBalance()
	if b.Balance != nil {
		cpy.Balance = b.Balance.Clone()
	}
	for k, v := range b.TradeHistory {
		cpy.TradeHistory[k] = v.Clone()
	}
	return cpy
}

type Account struct {
	Balances map[TokenID]*Balance `json:"balances"`
}

func NewAccount() *Account {
	return &Account{
		Balances: map[TokenID]*Balance{},
	}
}

func (a Account) Clone() *Account {
	cpy := NewAccount()
	for k, v := range a.Balances {
		cpy.Balances[k] = v.Clone()
	}
	return cpy
}

// State is the balances and trade history of every account known to the
// exchange, plus the running total of burned fees per token.
// Missing entries read as zero values.
type State struct {
	Accounts map[AccountID]*Account `json:"accounts"`
	// Burned is signed, a negative burn rate rebate draws from it.
	Burned map[TokenID]*num.Int `json:"-"`
}

func NewState() *State {
	return &State{
		Accounts: map[AccountID]*Account{},
		Burned:   map[TokenID]*num.Int{},
	}
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	cpy := NewState()
	if s == nil {
		return cpy
	}
	for k, v := range s.Accounts {
		cpy.Accounts[k] = v.Clone()
	}
	for k, v := range s.Burned {
		cpy.Burned[k] = v.Clone()
	}
	return cpy
}

// Balance returns a copy of the balance of the account in the given token.
func (s *State) Balance(account AccountID, token TokenID) *num.Uint {
	if b := s.lookup(account, token); b != nil && b.Balance != nil {
		return b.Balance.Clone()
	}
	return num.UintZero()
}

// TradeHistory returns a copy of the trade history stored in the slot.
func (s *State) TradeHistory(account AccountID, token TokenID, slot OrderID) *TradeHistory {
	if b := s.lookup(account, token); b != nil {
		if th, ok := b.TradeHistory[slot]; ok && th != nil {
			return th.Clone()
		}
	}
	return &TradeHistory{Filled: num.UintZero()}
}

// TradeHistorySlot returns the slot used by order id in a trade history tree
// of the given depth.
func TradeHistorySlot(depth uint32, id OrderID) OrderID {
	if depth >= 32 {
		return id
	}
	return id & (OrderID(1)<<depth - 1)
}

// RecordTradeHistory stores a copy of th in the slot of its order. When the
// slot already holds the history of a newer order, that one is kept.
func (s *State) RecordTradeHistory(depth uint32, account AccountID, token TokenID, th *TradeHistory) {
	slot := TradeHistorySlot(depth, th.OrderID)
	if b := s.lookup(account, token); b != nil {
		if cur, ok := b.TradeHistory[slot]; ok && cur != nil && cur.OrderID > th.OrderID {
			return
		}
	}
	s.SetTradeHistory(account, token, slot, th)
}

// SetTradeHistory stores a copy of th in the slot.
func (s *State) SetTradeHistory(account AccountID, token TokenID, slot OrderID, th *TradeHistory) {
	s.ensure(account, token).TradeHistory[slot] = th.Clone()
}

// Credit adds amount to the account balance.
func (s *State) Credit(account AccountID, token TokenID, amount *num.Uint) {
	b := s.ensure(account, token)
	b.Balance.Add(b.Balance, amount)
}

// Debit removes amount from the account balance, it panics with
// num.ErrUnderflow on overdraft.
func (s *State) Debit(account AccountID, token TokenID, amount *num.Uint) {
	b := s.ensure(account, token)
	b.Balance.Sub(b.Balance, amount)
}

// AddBurned records a signed change of the burned total of a token.
func (s *State) AddBurned(token TokenID, amount *num.Int) {
	if s.Burned == nil {
		s.Burned = map[TokenID]*num.Int{}
	}
	cur, ok := s.Burned[token]
	if !ok {
		cur = num.IntZero()
		s.Burned[token] = cur
	}
	cur.Add(amount)
}

// BurnedAmount returns the signed burned total of a token.
func (s *State) BurnedAmount(token TokenID) *num.Int {
	if v, ok := s.Burned[token]; ok {
		return v.Clone()
	}
	return num.IntZero()
}

// AccountIDs returns every account id in ascending order.
func (s *State) AccountIDs() []AccountID {
	ids := maps.Keys(s.Accounts)
	slices.Sort(ids)
	return ids
}

// TokenIDs returns the tokens the account holds an entry for, in ascending order.
func (a Account) TokenIDs() []TokenID {
	ids := maps.Keys(a.Balances)
	slices.Sort(ids)
	return ids
}

func (s *State) lookup(account AccountID, token TokenID) *Balance {
	if s == nil {
		return nil
	}
	acc, ok := s.Accounts[account]
	if !ok || acc == nil {
		return nil
	}
	return acc.Balances[token]
}

func (s *State) ensure(account AccountID, token TokenID) *Balance {
	if s.Accounts == nil {
		s.Accounts = map[AccountID]*Account{}
	}
	acc, ok := s.Accounts[account]
	if !ok || acc == nil {
		acc = NewAccount()
		s.Accounts[account] = acc
	}
	b, ok := acc.Balances[token]
	if !ok || b == nil {
		b = NewBalance()
		acc.Balances[token] = b
	}
	if b.Balance == nil {
		b.Balance = num.UintZero()
	}
	if b.TradeHistory == nil {
		b.TradeHistory = map[OrderID]*TradeHistory{}
	}
	return b
}
