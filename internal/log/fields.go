package log

import (
	"github.com/shopspring/decimal"

	"valterbank/internal/core"
)

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldOperation     = "operation"
	FieldError         = "error"
	FieldErrorType     = "error_type"
	FieldAccountNumber = "account_number"
	FieldAccountKind   = "account_kind"
	FieldTaxID         = "tax_id"
	FieldAmount        = "amount"
	FieldBalance       = "balance"
	FieldAvailable     = "available"
	FieldOutcome       = "outcome"
	FieldEventID       = "event_id"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentBank     = "bank"
	ComponentLedger   = "ledger"
	ComponentAMQP     = "amqp"
	ComponentCLI      = "cli"
	ComponentNotifier = "notifier"
)

// Operations defines standard operation names
const (
	OpAddClient   = "add_client"
	OpOpenAccount = "open_account"
	OpDeposit     = "deposit"
	OpWithdraw    = "withdraw"
	OpStatement   = "statement"
	OpPublish     = "publish"
	OpConsume     = "consume"
	OpShutdown    = "shutdown"
	OpStartup     = "startup"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation        = "validation_error"
	ErrorTypeConfiguration     = "configuration_error"
	ErrorTypeNetwork           = "network_error"
	ErrorTypeNotFound          = "not_found_error"
	ErrorTypeConflict          = "conflict_error"
	ErrorTypeInsufficientFunds = "insufficient_funds_error"
	ErrorTypeInternal          = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds error type field
func (f LogFields) WithErrorType(errType string) LogFields {
	f[FieldErrorType] = errType
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithAccount adds account number and kind
func (f LogFields) WithAccount(number int, kind string) LogFields {
	f[FieldAccountNumber] = number
	if kind != "" {
		f[FieldAccountKind] = kind
	}
	return f
}

// WithAmount adds a monetary amount without dropping sub-cent digits
func (f LogFields) WithAmount(amount decimal.Decimal) LogFields {
	f[FieldAmount] = core.FormatAmount(amount)
	return f
}

// WithBalance adds the resulting balance
func (f LogFields) WithBalance(balance decimal.Decimal) LogFields {
	f[FieldBalance] = core.FormatAmount(balance)
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
