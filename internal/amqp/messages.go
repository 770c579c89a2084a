package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"valterbank/internal/core"
)

// EventType names the ledger mutation an event reports.
type EventType string

const (
	EventDeposit    EventType = "deposit"
	EventWithdrawal EventType = "withdrawal"
)

var ErrMalformedEvent = errors.New("malformed transaction event")

// TransactionEvent is published after every accepted deposit or withdrawal.
// Amounts travel as decimal strings with at least two places so no float
// rounding happens on the wire.
type TransactionEvent struct {
	ID            string    `json:"id"`
	Type          EventType `json:"type"`
	AccountNumber int       `json:"account_number"`
	AccountKind   string    `json:"account_kind"`
	TaxID         string    `json:"tax_id"`
	Amount        string    `json:"amount"`
	Balance       string    `json:"balance"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewTransactionEvent creates an event with a fresh id.
func NewTransactionEvent(typ EventType, number int, kind, taxID string, amount, balance decimal.Decimal, at time.Time) *TransactionEvent {
	return &TransactionEvent{
		ID:            uuid.NewString(),
		Type:          typ,
		AccountNumber: number,
		AccountKind:   kind,
		TaxID:         taxID,
		Amount:        core.FormatAmount(amount),
		Balance:       core.FormatAmount(balance),
		OccurredAt:    at,
	}
}

// ToJSON converts the event to JSON bytes
func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Validate checks the fields a consumer relies on.
func (e *TransactionEvent) Validate() error {
	if _, err := uuid.Parse(e.ID); err != nil {
		return fmt.Errorf("%w: bad id %q", ErrMalformedEvent, e.ID)
	}
	if e.Type != EventDeposit && e.Type != EventWithdrawal {
		return fmt.Errorf("%w: unknown type %q", ErrMalformedEvent, e.Type)
	}
	if e.AccountNumber <= 0 {
		return fmt.Errorf("%w: bad account number %d", ErrMalformedEvent, e.AccountNumber)
	}
	if _, err := decimal.NewFromString(e.Amount); err != nil {
		return fmt.Errorf("%w: bad amount %q", ErrMalformedEvent, e.Amount)
	}
	return nil
}

// AmountDecimal parses Amount. Call Validate first.
func (e *TransactionEvent) AmountDecimal() decimal.Decimal {
	d, _ := decimal.NewFromString(e.Amount)
	return d
}

// TransactionEventFromJSON decodes and validates an event.
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var ev TransactionEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return &ev, nil
}
