package bank

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"valterbank/internal/core"
)

type BankSuite struct {
	suite.Suite
	bank *Bank
}

func (s *BankSuite) SetupTest() {
	s.bank = New("Valter Digital Bank", core.NewFactory(nil), core.DefaultOverdraftLimit)
}

func TestBankSuite(t *testing.T) {
	suite.Run(t, new(BankSuite))
}

func (s *BankSuite) TestClients() {
	s.Run("registers and finds client", func() {
		c, err := s.bank.AddClient("Ana", "123")
		s.Require().NoError(err)

		found, err := s.bank.Client("123")
		s.Require().NoError(err)
		s.Same(c, found)
	})

	s.Run("rejects duplicate tax id", func() {
		_, err := s.bank.AddClient("Other Ana", "123")
		s.ErrorIs(err, ErrDuplicateClient)
	})

	s.Run("treats padded tax id as the same client", func() {
		_, err := s.bank.AddClient("Ana", " 123 ")
		s.ErrorIs(err, ErrDuplicateClient)

		found, err := s.bank.Client(" 123")
		s.Require().NoError(err)
		s.Equal("123", found.TaxID())
	})

	s.Run("stores trimmed identifiers", func() {
		c, err := s.bank.AddClient("  Bia ", "\t456 ")
		s.Require().NoError(err)
		s.Equal("Bia", c.Name())
		s.Equal("456", c.TaxID())

		found, err := s.bank.Client("456")
		s.Require().NoError(err)
		s.Same(c, found)
	})

	s.Run("rejects empty identifiers", func() {
		_, err := s.bank.AddClient("", "999")
		s.ErrorIs(err, core.ErrEmptyName)
	})

	s.Run("returns ErrClientNotFound for unknown tax id", func() {
		_, err := s.bank.Client("nope")
		s.ErrorIs(err, ErrClientNotFound)
	})
}

func (s *BankSuite) TestOpenAccount() {
	c, err := s.bank.AddClient("Ana", "123")
	s.Require().NoError(err)

	checking, err := s.bank.OpenAccount("123", core.KindChecking)
	s.Require().NoError(err)
	savings, err := s.bank.OpenAccount("123", core.KindSavings)
	s.Require().NoError(err)

	s.Equal(1, checking.Number())
	s.Equal(2, savings.Number())
	s.True(checking.OverdraftLimit().Equal(core.DefaultOverdraftLimit))
	s.Equal([]int{1, 2}, c.Accounts())
	s.Equal(int64(2), s.bank.TotalAccountsCreated())

	found, err := s.bank.Account(2)
	s.Require().NoError(err)
	s.Same(savings, found)

	owner, err := s.bank.Owner(found)
	s.Require().NoError(err)
	s.Same(c, owner)

	s.Len(s.bank.Accounts(), 2)
	s.Equal(1, s.bank.Accounts()[0].Number())
}

func (s *BankSuite) TestOpenAccountFailures() {
	_, err := s.bank.OpenAccount("missing", core.KindSavings)
	s.ErrorIs(err, ErrClientNotFound)

	_, err = s.bank.AddClient("Ana", "123")
	s.Require().NoError(err)
	_, err = s.bank.OpenAccount("123", core.Kind("investment"))
	s.ErrorIs(err, core.ErrUnknownKind)

	s.Equal(int64(0), s.bank.TotalAccountsCreated())
	_, err = s.bank.Account(1)
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *BankSuite) TestNegativeDefaultOverdraft() {
	b := New("bad", nil, decimal.NewFromInt(-1))
	_, err := b.AddClient("Ana", "123")
	s.Require().NoError(err)

	_, err = b.OpenAccount("123", core.KindChecking)
	s.ErrorIs(err, core.ErrNegativeOverdraft)
	_, err = b.Account(1)
	s.ErrorIs(err, ErrAccountNotFound)
}
