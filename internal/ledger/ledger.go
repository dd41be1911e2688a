// Package ledger implements the double-entry transaction ledger over the
// exchange's fixed, small account set (spec.md §3, §4.1). It replaces the
// teacher's Postgres-backed append-only ledger_entries table with an
// in-memory dense balance array, keeping the same Transfer/append-entry
// shape but without persistence, hashing, or advisory locks — there is a
// single logical owner and no concurrency (spec.md §5).
package ledger

import (
	"fmt"

	"github.com/abdulloh5007/lfest-go/internal/decimal"
	"github.com/abdulloh5007/lfest-go/internal/xerrors"
)

// Account is one of the five well-known accounts spec.md §3 enumerates.
type Account int

const (
	UserWallet Account = iota
	UserPositionMargin
	UserOrderMargin
	ExchangeFee
	Treasury

	numAccounts
)

func (a Account) String() string {
	switch a {
	case UserWallet:
		return "USER_WALLET"
	case UserPositionMargin:
		return "USER_POSITION_MARGIN"
	case UserOrderMargin:
		return "USER_ORDER_MARGIN"
	case ExchangeFee:
		return "EXCHANGE_FEE"
	case Treasury:
		return "TREASURY"
	default:
		return "UNKNOWN_ACCOUNT"
	}
}

// entry is one posted debit or credit leg, kept only for bookkeeping
// parity with the teacher's append-only ledger_entries table; the core
// never replays entries, only balances.
type entry struct {
	account Account
	amount  decimal.Quote
	debit   bool
}

// Ledger holds the net balance (debits − credits) of each account and a
// running log of posted entries.
type Ledger struct {
	balances [numAccounts]decimal.Quote
	entries  []entry
}

// New builds a ledger with the starting wallet balance already posted
// as a single opening debit, so BalanceOf(UserWallet) == starting and the
// sum over all accounts equals starting from the first observable state.
func New(startingWalletBalance decimal.Quote) *Ledger {
	l := &Ledger{}
	l.balances[UserWallet] = startingWalletBalance
	l.entries = append(l.entries, entry{account: UserWallet, amount: startingWalletBalance, debit: true})
	return l
}

// BalanceOf returns the net balance of account.
func (l *Ledger) BalanceOf(account Account) decimal.Quote {
	return l.balances[account]
}

// Sum returns the sum of all account balances; invariant P1 requires this
// stay constant at the starting wallet balance for the life of the ledger.
func (l *Ledger) Sum() decimal.Quote {
	total := decimal.ZeroQuote
	for a := Account(0); a < numAccounts; a++ {
		total = total.Add(l.balances[a])
	}
	return total
}

// Transfer moves amount from "from" to "to": it posts a credit leg to from
// and a debit leg to to, which nets out as from -= amount, to += amount.
// amount must be strictly positive — sign is conveyed by transfer
// direction, never by a negative amount (spec.md §4.1).
func (l *Ledger) Transfer(from, to Account, amount decimal.Quote) {
	xerrors.Assert(amount.IsPositive(), "ledger transfer amount must be positive, got %s", amount)
	xerrors.Assert(from != to, "ledger transfer from and to must differ")
	l.balances[from] = l.balances[from].Sub(amount)
	l.balances[to] = l.balances[to].Add(amount)
	l.entries = append(l.entries, entry{account: from, amount: amount, debit: false})
	l.entries = append(l.entries, entry{account: to, amount: amount, debit: true})
}

// TransferIfPositive transfers amount from "from" to "to" only if amount is
// strictly positive; a zero or negative amount is a no-op. Position
// changes use it for margin reservations and releases whose computed
// amount may be zero. Moving funds in the direction a signed delta
// indicates is TransferSigned's job.
func (l *Ledger) TransferIfPositive(from, to Account, amount decimal.Quote) {
	if amount.IsPositive() {
		l.Transfer(from, to, amount)
	}
}

// TransferSigned moves |amount| from "from" to "to" if amount is
// positive, or |amount| from "to" to "from" if amount is negative. Used
// where a delta's sign determines direction rather than which of two
// fixed accounts is the source (order-margin rebalancing, maker-fee
// rebates where fee_maker may be negative per spec.md §9 open question).
func (l *Ledger) TransferSigned(from, to Account, amount decimal.Quote) {
	if amount.IsPositive() {
		l.Transfer(from, to, amount)
	} else if amount.IsNegative() {
		l.Transfer(to, from, amount.Neg())
	}
}

// AssertBalanced panics if the ledger sum has drifted from the expected
// constant, i.e. invariant P1 (spec.md §8) has been violated. This is an
// internal consistency check, not a user-surfaceable error.
func (l *Ledger) AssertBalanced(expected decimal.Quote) {
	sum := l.Sum()
	xerrors.Assert(sum.Equal(expected), "ledger sum %s != expected %s", sum, expected)
}

// AvailableBalance is the wallet balance, invariant P2 of spec.md §8; must
// never be negative. Transfer already moves reserved margin out of
// UserWallet into UserPositionMargin/UserOrderMargin (the wallet is kept
// net, not gross, unlike the ledger_entries model of original_source's
// account.rs), so available balance is simply what remains in the wallet —
// subtracting position_margin/order_margin again would double-count a
// reservation that has already left the wallet.
func (l *Ledger) AvailableBalance() decimal.Quote {
	return l.balances[UserWallet]
}

func (l *Ledger) String() string {
	return fmt.Sprintf(
		"wallet=%s position_margin=%s order_margin=%s fee=%s treasury=%s",
		l.balances[UserWallet], l.balances[UserPositionMargin], l.balances[UserOrderMargin],
		l.balances[ExchangeFee], l.balances[Treasury],
	)
}
