package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"valterbank/internal/amqp"
	"valterbank/internal/bank"
	"valterbank/internal/core"
	applog "valterbank/internal/log"
)

// EventPublisher delivers transaction events. *amqp.Client implements it.
type EventPublisher interface {
	PublishTransaction(ctx context.Context, ev *amqp.TransactionEvent) error
}

// LedgerService runs bank operations, logs them and publishes an event for
// every accepted mutation. Publishing is best effort: the ledger is already
// updated when it happens and a publish failure never fails the operation.
type LedgerService struct {
	bank      *bank.Bank
	publisher EventPublisher
	logger    *applog.Logger
	now       func() time.Time
}

// NewLedgerService wires a service. publisher may be nil.
func NewLedgerService(b *bank.Bank, publisher EventPublisher, logger *applog.Logger) *LedgerService {
	if logger == nil {
		logger = applog.Discard()
	}
	return &LedgerService{
		bank:      b,
		publisher: publisher,
		logger:    logger.WithComponent(applog.ComponentLedger),
		now:       time.Now,
	}
}

func (s *LedgerService) BankName() string { return s.bank.Name() }

// AddClient registers a client.
func (s *LedgerService) AddClient(ctx context.Context, name, taxID string) (*core.Client, error) {
	c, err := s.bank.AddClient(name, taxID)
	if err != nil {
		s.logFailure(ctx, "Client registration failed", applog.OpAddClient, err, applog.NewFields())
		return nil, err
	}
	s.logger.InfoContext(ctx, "Client registered",
		applog.FieldOperation, applog.OpAddClient,
		applog.FieldTaxID, taxID)
	return c, nil
}

// Client looks up a registered client.
func (s *LedgerService) Client(taxID string) (*core.Client, error) {
	return s.bank.Client(taxID)
}

// OpenAccount opens an account of kind for the client with taxID.
func (s *LedgerService) OpenAccount(ctx context.Context, taxID string, kind core.Kind) (*core.Account, error) {
	acc, err := s.bank.OpenAccount(taxID, kind)
	if err != nil {
		s.logFailure(ctx, "Account opening failed", applog.OpOpenAccount, err, applog.NewFields())
		return nil, err
	}
	fields := applog.NewFields().
		WithOperation(applog.OpOpenAccount).
		WithAccount(acc.Number(), string(acc.Kind()))
	fields[applog.FieldTaxID] = taxID
	s.logger.InfoContext(ctx, "Account opened", fields.ToSlice()...)
	return acc, nil
}

// Account looks up an account by number.
func (s *LedgerService) Account(number int) (*core.Account, error) {
	return s.bank.Account(number)
}

// Deposit credits the account. A non-positive amount is a soft rejection: the
// outcome says so and err is nil.
func (s *LedgerService) Deposit(ctx context.Context, number int, amount decimal.Decimal) (core.Outcome, error) {
	acc, err := s.bank.Account(number)
	if err != nil {
		s.logFailure(ctx, "Deposit failed", applog.OpDeposit, err, applog.NewFields().WithAccount(number, ""))
		return core.NotApplied, err
	}

	out := acc.Deposit(amount)
	s.after(ctx, acc, applog.OpDeposit, amqp.EventDeposit, amount, out)
	return out, nil
}

// Withdraw debits the account. Exceeding the account's ceiling returns the
// *core.InsufficientFundsError unchanged.
func (s *LedgerService) Withdraw(ctx context.Context, number int, amount decimal.Decimal) (core.Outcome, error) {
	acc, err := s.bank.Account(number)
	if err != nil {
		s.logFailure(ctx, "Withdrawal failed", applog.OpWithdraw, err, applog.NewFields().WithAccount(number, ""))
		return core.NotApplied, err
	}

	out, err := acc.Withdraw(amount)
	if err != nil {
		fields := applog.NewFields().
			WithAccount(number, string(acc.Kind())).
			WithAmount(amount)
		var ife *core.InsufficientFundsError
		if errors.As(err, &ife) {
			fields[applog.FieldAvailable] = core.FormatAmount(ife.Available)
		}
		s.logFailure(ctx, "Withdrawal refused", applog.OpWithdraw, err, fields)
		return out, err
	}
	s.after(ctx, acc, applog.OpWithdraw, amqp.EventWithdrawal, amount, out)
	return out, nil
}

// Statement returns the header data and history of an account.
func (s *LedgerService) Statement(ctx context.Context, number int) (core.StatementView, error) {
	acc, err := s.bank.Account(number)
	if err != nil {
		s.logFailure(ctx, "Statement failed", applog.OpStatement, err, applog.NewFields().WithAccount(number, ""))
		return core.StatementView{}, err
	}
	owner, err := s.bank.Owner(acc)
	if err != nil {
		return core.StatementView{}, fmt.Errorf("statement for account %d: %w", number, err)
	}
	s.logger.DebugContext(ctx, "Statement generated",
		applog.FieldOperation, applog.OpStatement,
		applog.FieldAccountNumber, number)
	return core.NewStatementView(acc, owner), nil
}

// TotalAccountsCreated reports how many accounts were opened in this process.
func (s *LedgerService) TotalAccountsCreated() int64 {
	return s.bank.TotalAccountsCreated()
}

func (s *LedgerService) after(ctx context.Context, acc *core.Account, op string, typ amqp.EventType, amount decimal.Decimal, out core.Outcome) {
	fields := applog.NewFields().
		WithOperation(op).
		WithAccount(acc.Number(), string(acc.Kind())).
		WithAmount(amount).
		WithBalance(acc.Balance())
	fields[applog.FieldOutcome] = out.String()

	if !out.OK() {
		fields.WithErrorType(applog.ErrorTypeValidation)
		s.logger.WarnContext(ctx, "Operation rejected", fields.ToSlice()...)
		return
	}
	s.logger.InfoContext(ctx, "Operation applied", fields.ToSlice()...)

	ev := amqp.NewTransactionEvent(typ, acc.Number(), string(acc.Kind()), acc.OwnerTaxID(), amount, acc.Balance(), s.now())
	if err := s.publish(ctx, ev); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish transaction event",
			applog.FieldEventID, ev.ID,
			applog.FieldAccountNumber, acc.Number(),
			applog.FieldError, err.Error())
		// Don't fail the operation - the ledger is already updated
	}
}

func (s *LedgerService) publish(ctx context.Context, ev *amqp.TransactionEvent) error {
	if s.publisher == nil {
		s.logger.DebugContext(ctx, "No event publisher configured, skipping transaction event")
		return nil
	}
	return s.publisher.PublishTransaction(ctx, ev)
}

func (s *LedgerService) logFailure(ctx context.Context, msg, op string, err error, fields applog.LogFields) {
	fields.WithOperation(op).WithError(err).WithErrorType(errorType(err))
	s.logger.WarnContext(ctx, msg, fields.ToSlice()...)
}

func errorType(err error) string {
	switch {
	case errors.Is(err, core.ErrInsufficientFunds):
		return applog.ErrorTypeInsufficientFunds
	case errors.Is(err, bank.ErrAccountNotFound), errors.Is(err, bank.ErrClientNotFound):
		return applog.ErrorTypeNotFound
	case errors.Is(err, bank.ErrDuplicateClient):
		return applog.ErrorTypeConflict
	case errors.Is(err, core.ErrEmptyName), errors.Is(err, core.ErrEmptyTaxID),
		errors.Is(err, core.ErrUnknownKind), errors.Is(err, core.ErrNegativeOverdraft):
		return applog.ErrorTypeValidation
	}
	return applog.ErrorTypeInternal
}
