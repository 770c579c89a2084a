package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	c, err := NewClient("Ana", "123")
	require.NoError(t, err)
	assert.Empty(t, c.Accounts())
	assert.Equal(t, "Client: Ana (TaxId: 123)", c.String())
	assert.Equal(t, c.String(), c.Describe())

	assert.Equal(t, "Ana", c.Name())
	assert.Equal(t, "123", c.TaxID())

	padded, err := NewClient("  Ana ", " 123\t")
	require.NoError(t, err)
	assert.Equal(t, "Ana", padded.Name())
	assert.Equal(t, "123", padded.TaxID())

	_, err = NewClient("  ", "123")
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = NewClient("Ana", "")
	assert.ErrorIs(t, err, ErrEmptyTaxID)
}

func TestClientAddAccountKeepsDuplicates(t *testing.T) {
	c, err := NewClient("Ana", "123")
	require.NoError(t, err)

	c.AddAccount(7)
	c.AddAccount(3)
	c.AddAccount(7)

	assert.Equal(t, []int{7, 3, 7}, c.Accounts())

	// the returned slice is a copy
	got := c.Accounts()
	got[0] = 99
	assert.Equal(t, 7, c.Accounts()[0])
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"corrente":  KindChecking,
		"Checking":  KindChecking,
		"poupança":  KindSavings,
		"POUPANCA":  KindSavings,
		" savings ": KindSavings,
	}
	for in, want := range cases {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("investment")
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.ErrorIs(t, Kind("x").Validate(), ErrUnknownKind)
	assert.NoError(t, KindSavings.Validate())
}

func TestInsufficientFundsErrorMatching(t *testing.T) {
	var err error = &InsufficientFundsError{
		Available: dec("100"),
		Requested: dec("150"),
	}
	wrapped := errors.Join(errors.New("withdraw"), err)

	assert.ErrorIs(t, wrapped, ErrInsufficientFunds)
	var ife *InsufficientFundsError
	require.ErrorAs(t, wrapped, &ife)
	assert.Equal(t, "insufficient funds: available 100.00, requested 150.00", ife.Error())

	ife.Reason = "balance is not enough"
	assert.Contains(t, ife.Error(), ": balance is not enough")
}

func TestOutcome(t *testing.T) {
	assert.True(t, Accepted.OK())
	assert.False(t, RejectedInvalidAmount.OK())
	assert.False(t, NotApplied.OK())
	assert.Equal(t, "not applied", Outcome(0).String())
	assert.Equal(t, "rejected: invalid amount", RejectedInvalidAmount.String())
}
