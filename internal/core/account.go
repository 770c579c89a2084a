package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultOverdraftLimit is the overdraft granted to checking accounts when the
// bank does not configure another one.
var DefaultOverdraftLimit = decimal.NewFromInt(500)

// Account is a ledger bound to one client. Checking and savings accounts share
// this type; Kind selects the withdrawal ceiling.
//
// Balance and history only change through Deposit and Withdraw, and always
// change together. Accounts are built by a Factory; a zero Account is an
// unowned savings-like account stamped with time.Now.
type Account struct {
	number    int
	ownerID   string
	kind      Kind
	overdraft decimal.Decimal
	balance   decimal.Decimal
	history   []Entry
	now       func() time.Time
}

func (a *Account) Number() int { return a.number }

// OwnerTaxID is the lookup key of the owning client.
func (a *Account) OwnerTaxID() string { return a.ownerID }

func (a *Account) Kind() Kind { return a.kind }

// OverdraftLimit is zero for savings accounts.
func (a *Account) OverdraftLimit() decimal.Decimal { return a.overdraft }

func (a *Account) Balance() decimal.Decimal { return a.balance }

// Ceiling is the largest amount a withdrawal may request right now.
func (a *Account) Ceiling() decimal.Decimal {
	switch a.kind {
	case KindChecking:
		return a.balance.Add(a.overdraft)
	default:
		return a.balance
	}
}

// Deposit credits amount when it is positive. Non-positive amounts are
// rejected without touching the account.
func (a *Account) Deposit(amount decimal.Decimal) Outcome {
	if !amount.IsPositive() {
		return RejectedInvalidAmount
	}
	a.balance = a.balance.Add(amount)
	a.record("Deposit of " + FormatAmount(amount))
	return Accepted
}

// Withdraw debits amount when it is positive and within Ceiling. A
// non-positive amount is a soft rejection; exceeding the ceiling returns an
// *InsufficientFundsError and leaves the account unchanged.
func (a *Account) Withdraw(amount decimal.Decimal) (Outcome, error) {
	if !amount.IsPositive() {
		return RejectedInvalidAmount, nil
	}
	available := a.Ceiling()
	if amount.GreaterThan(available) {
		return NotApplied, &InsufficientFundsError{
			Available: available,
			Requested: amount,
			Reason:    a.shortfallReason(),
		}
	}
	a.balance = a.balance.Sub(amount)
	a.record("Withdrawal of " + FormatAmount(amount))
	return Accepted, nil
}

// Statement returns a copy of the history, oldest first.
func (a *Account) Statement() []Entry {
	return append([]Entry(nil), a.history...)
}

func (a *Account) shortfallReason() string {
	if a.kind == KindChecking {
		return "balance and overdraft limit are not enough"
	}
	return "balance is not enough"
}

// record appends a history entry. Timestamps never go backwards even if the
// clock does.
func (a *Account) record(desc string) {
	now := a.now
	if now == nil {
		now = time.Now
	}
	ts := now()
	if n := len(a.history); n > 0 && ts.Before(a.history[n-1].Timestamp) {
		ts = a.history[n-1].Timestamp
	}
	a.history = append(a.history, Entry{Timestamp: ts, Description: desc})
}
