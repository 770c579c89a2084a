// Package bank is the registry that owns clients and accounts. The core
// package assumes it is always handed an account that exists; lookups that
// can fail happen here.
package bank

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"valterbank/internal/core"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateClient = errors.New("client already registered")
)

// Bank keeps clients by tax id and accounts by number. It is not safe for
// concurrent use.
type Bank struct {
	name             string
	factory          *core.Factory
	defaultOverdraft decimal.Decimal
	nextNumber       int
	clients          map[string]*core.Client
	accounts         map[int]*core.Account
}

// New returns an empty bank. Checking accounts it opens get defaultOverdraft.
func New(name string, factory *core.Factory, defaultOverdraft decimal.Decimal) *Bank {
	if factory == nil {
		factory = core.NewFactory(nil)
	}
	return &Bank{
		name:             name,
		factory:          factory,
		defaultOverdraft: defaultOverdraft,
		nextNumber:       1,
		clients:          make(map[string]*core.Client),
		accounts:         make(map[int]*core.Account),
	}
}

func (b *Bank) Name() string { return b.name }

// AddClient registers a new client. The tax id, trimmed, must not be
// registered yet.
func (b *Bank) AddClient(name, taxID string) (*core.Client, error) {
	c, err := core.NewClient(name, taxID)
	if err != nil {
		return nil, err
	}
	if _, ok := b.clients[c.TaxID()]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateClient, c.TaxID())
	}
	b.clients[c.TaxID()] = c
	return c, nil
}

// Client looks up a client by tax id. Surrounding whitespace is ignored.
func (b *Bank) Client(taxID string) (*core.Client, error) {
	taxID = strings.TrimSpace(taxID)
	c, ok := b.clients[taxID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, taxID)
	}
	return c, nil
}

// OpenAccount opens an account of the given kind for the client with taxID
// and assigns it the next account number.
func (b *Bank) OpenAccount(taxID string, kind core.Kind) (*core.Account, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	c, err := b.Client(taxID)
	if err != nil {
		return nil, err
	}

	var acc *core.Account
	switch kind {
	case core.KindChecking:
		acc, err = b.factory.NewCheckingAccount(b.nextNumber, c, b.defaultOverdraft)
		if err != nil {
			return nil, fmt.Errorf("open checking account: %w", err)
		}
	case core.KindSavings:
		acc, err = b.factory.NewSavingsAccount(b.nextNumber, c)
		if err != nil {
			return nil, fmt.Errorf("open savings account: %w", err)
		}
	}
	b.accounts[acc.Number()] = acc
	b.nextNumber++
	return acc, nil
}

// Account looks up an account by number.
func (b *Bank) Account(number int) (*core.Account, error) {
	a, ok := b.accounts[number]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrAccountNotFound, number)
	}
	return a, nil
}

// Owner returns the client owning account a.
func (b *Bank) Owner(a *core.Account) (*core.Client, error) {
	return b.Client(a.OwnerTaxID())
}

// Accounts returns every account ordered by number.
func (b *Bank) Accounts() []*core.Account {
	out := make([]*core.Account, 0, len(b.accounts))
	for _, a := range b.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number() < out[j].Number() })
	return out
}

// TotalAccountsCreated reports the factory's lifetime account count.
func (b *Bank) TotalAccountsCreated() int64 {
	return b.factory.TotalAccountsCreated()
}
