package core

import (
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

// Factory builds accounts and counts how many it has built over the life of
// the process. The count is for reporting only and never goes down.
type Factory struct {
	created atomic.Int64
	now     func() time.Time
}

// NewFactory returns a factory stamping history entries with now. A nil now
// uses time.Now.
func NewFactory(now func() time.Time) *Factory {
	if now == nil {
		now = time.Now
	}
	return &Factory{now: now}
}

// NewCheckingAccount opens a checking account for client with the given
// overdraft limit, which is fixed for the account's lifetime.
func (f *Factory) NewCheckingAccount(number int, client *Client, overdraftLimit decimal.Decimal) (*Account, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if overdraftLimit.IsNegative() {
		return nil, ErrNegativeOverdraft
	}
	return f.open(number, client, KindChecking, overdraftLimit), nil
}

// NewSavingsAccount opens a savings account for client.
func (f *Factory) NewSavingsAccount(number int, client *Client) (*Account, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	return f.open(number, client, KindSavings, decimal.Zero), nil
}

// TotalAccountsCreated is the number of accounts built by this factory.
func (f *Factory) TotalAccountsCreated() int64 {
	return f.created.Load()
}

func (f *Factory) open(number int, client *Client, kind Kind, overdraft decimal.Decimal) *Account {
	a := &Account{
		number:    number,
		ownerID:   client.TaxID(),
		kind:      kind,
		overdraft: overdraft,
		balance:   decimal.Zero,
		now:       f.now,
	}
	client.AddAccount(number)
	f.created.Add(1)
	return a
}
