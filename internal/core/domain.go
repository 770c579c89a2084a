package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	KindChecking Kind = "checking"
	KindSavings  Kind = "savings"
)

const (
	// NotApplied accompanies an error: nothing changed and the caller should
	// look at the error.
	NotApplied Outcome = iota
	Accepted
	RejectedInvalidAmount
)

type (
	// Kind tags the account variant and selects its withdrawal rule.
	Kind string

	// Outcome reports whether a deposit or withdrawal was applied. A rejected
	// outcome is not an error: the call was a no-op and the caller decides
	// whether to ask again.
	Outcome int

	// Entry is one line of an account history.
	Entry struct {
		Timestamp   time.Time
		Description string
	}

	// Client is a bank customer. Name and tax id are fixed at construction. The
	// accounts list holds account numbers only; the registry owns the accounts
	// themselves.
	Client struct {
		name     string
		taxID    string
		accounts []int
	}
)

var (
	ErrEmptyName         = errors.New("empty client name")
	ErrEmptyTaxID        = errors.New("empty tax id")
	ErrNilClient         = errors.New("account needs a client")
	ErrNegativeOverdraft = errors.New("overdraft limit must not be negative")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrUnknownKind       = errors.New("unknown account kind")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// InsufficientFundsError is returned when a withdrawal exceeds the account's
// withdrawable ceiling. Available is the ceiling at the time of the check.
type InsufficientFundsError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
	Reason    string
}

func (e *InsufficientFundsError) Error() string {
	msg := fmt.Sprintf("insufficient funds: available %s, requested %s",
		FormatAmount(e.Available), FormatAmount(e.Requested))
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Is makes errors.Is(err, ErrInsufficientFunds) match.
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// NewClient returns a client with no accounts. Surrounding whitespace is
// trimmed from both name and tax id.
func NewClient(name, taxID string) (*Client, error) {
	name, taxID = strings.TrimSpace(name), strings.TrimSpace(taxID)
	if name == "" {
		return nil, ErrEmptyName
	}
	if taxID == "" {
		return nil, ErrEmptyTaxID
	}
	return &Client{name: name, taxID: taxID}, nil
}

func (c *Client) Name() string { return c.name }

// TaxID is the client's unique key in the registry.
func (c *Client) TaxID() string { return c.taxID }

// AddAccount records an owned account number. Duplicates are kept.
func (c *Client) AddAccount(number int) {
	c.accounts = append(c.accounts, number)
}

// Accounts returns the owned account numbers in the order they were added.
func (c *Client) Accounts() []int {
	return append([]int(nil), c.accounts...)
}

func (c *Client) String() string {
	return fmt.Sprintf("Client: %s (TaxId: %s)", c.name, c.taxID)
}

// Describe is an alias of String kept for callers that do not want fmt.Stringer.
func (c *Client) Describe() string {
	return c.String()
}

func (k Kind) Validate() error {
	switch k {
	case KindChecking, KindSavings:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
}

// ParseKind accepts the English kind names and the Portuguese ones the
// interactive shell has always offered.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "checking", "corrente":
		return KindChecking, nil
	case "savings", "poupanca", "poupança":
		return KindSavings, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (o Outcome) String() string {
	switch o {
	case NotApplied:
		return "not applied"
	case Accepted:
		return "accepted"
	case RejectedInvalidAmount:
		return "rejected: invalid amount"
	}
	return "unknown"
}

// OK reports whether the operation was applied.
func (o Outcome) OK() bool {
	return o == Accepted
}
