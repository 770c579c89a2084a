// Package worker turns transaction events into customer notifications and
// periodic per-account activity summaries.
package worker

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"valterbank/internal/amqp"
	"valterbank/internal/cache"
	"valterbank/internal/core"
	applog "valterbank/internal/log"
	"valterbank/internal/metrics"
)

// AccountActivity aggregates the events seen for one account since the last
// summary.
type AccountActivity struct {
	Deposits        int
	Withdrawals     int
	DepositTotal    decimal.Decimal
	WithdrawalTotal decimal.Decimal
	LastBalance     string
	LastEventAt     time.Time
}

const (
	seenCapacity = 10000
	seenTTL      = time.Hour
)

// Notifier handles transaction events from AMQP. It is safe for concurrent use
// by the consumer loop and the summary ticker.
type Notifier struct {
	logger  *applog.Logger
	seen    *cache.SeenSet
	metrics *metrics.Metrics

	mu       sync.Mutex
	activity map[int]*AccountActivity
}

// NewNotifier creates a notifier. m may be nil.
func NewNotifier(logger *applog.Logger, m *metrics.Metrics) *Notifier {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Notifier{
		logger:   logger.WithComponent(applog.ComponentNotifier),
		seen:     cache.NewSeenSet(seenCapacity, seenTTL, nil),
		metrics:  m,
		activity: make(map[int]*AccountActivity),
	}
}

// HandleTransaction notifies the account holder and records the event for the
// next summary. Events are validated by the consumer before they get here.
// Redelivered events are acknowledged without a second notification.
func (n *Notifier) HandleTransaction(ctx context.Context, ev *amqp.TransactionEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !n.seen.MarkSeen(ev.ID) {
		n.metrics.IncrementDuplicate()
		n.logger.DebugContext(ctx, "Skipping redelivered transaction event", applog.FieldEventID, ev.ID)
		return nil
	}

	n.logger.InfoContext(ctx, "Customer notified",
		applog.FieldEventID, ev.ID,
		applog.FieldAccountNumber, ev.AccountNumber,
		applog.FieldTaxID, ev.TaxID,
		"message", NotificationMessage(ev))

	amount := ev.AmountDecimal()
	n.metrics.IncrementEvent(string(ev.Type), amount.InexactFloat64())

	n.mu.Lock()
	defer n.mu.Unlock()

	a, ok := n.activity[ev.AccountNumber]
	if !ok {
		a = &AccountActivity{}
		n.activity[ev.AccountNumber] = a
	}
	switch ev.Type {
	case amqp.EventDeposit:
		a.Deposits++
		a.DepositTotal = a.DepositTotal.Add(amount)
	case amqp.EventWithdrawal:
		a.Withdrawals++
		a.WithdrawalTotal = a.WithdrawalTotal.Add(amount)
	}
	if !ev.OccurredAt.Before(a.LastEventAt) {
		a.LastBalance = ev.Balance
		a.LastEventAt = ev.OccurredAt
	}
	return nil
}

// NotificationMessage is the text sent to the account holder.
func NotificationMessage(ev *amqp.TransactionEvent) string {
	verb := "Deposit of"
	prep := "to"
	if ev.Type == amqp.EventWithdrawal {
		verb = "Withdrawal of"
		prep = "from"
	}
	return fmt.Sprintf("%s $%s %s account No. %d on %s. Balance: $%s",
		verb, ev.Amount, prep, ev.AccountNumber,
		ev.OccurredAt.Format("02/01/2006 15:04:05"), ev.Balance)
}

// Snapshot returns a copy of the activity recorded since the last flush.
func (n *Notifier) Snapshot() map[int]AccountActivity {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make(map[int]AccountActivity, len(n.activity))
	for num, a := range n.activity {
		out[num] = *a
	}
	return out
}

// FlushSummary logs one line per active account, clears the counters and
// returns what was logged.
func (n *Notifier) FlushSummary(ctx context.Context) map[int]AccountActivity {
	n.mu.Lock()
	snapshot := make(map[int]AccountActivity, len(n.activity))
	for num, a := range n.activity {
		snapshot[num] = *a
	}
	n.activity = make(map[int]*AccountActivity)
	n.mu.Unlock()

	n.seen.CleanExpired()
	n.metrics.SetSummaryAccounts(len(snapshot))

	if len(snapshot) == 0 {
		n.logger.DebugContext(ctx, "No account activity since last summary")
		return snapshot
	}

	numbers := make([]int, 0, len(snapshot))
	for num := range snapshot {
		numbers = append(numbers, num)
	}
	sort.Ints(numbers)

	for _, num := range numbers {
		a := snapshot[num]
		n.logger.InfoContext(ctx, "Account activity summary",
			applog.FieldAccountNumber, num,
			"deposits", a.Deposits,
			"deposit_total", core.FormatAmount(a.DepositTotal),
			"withdrawals", a.Withdrawals,
			"withdrawal_total", core.FormatAmount(a.WithdrawalTotal),
			applog.FieldBalance, a.LastBalance)
	}
	return snapshot
}

// RunSummaries flushes a summary every interval until ctx is done. The final
// partial window is flushed on the way out.
func (n *Notifier) RunSummaries(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("summary interval must be positive, got %s", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			n.FlushSummary(context.WithoutCancel(ctx))
			return nil
		case <-ticker.C:
			n.FlushSummary(ctx)
		}
	}
}
