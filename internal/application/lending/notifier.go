package lending

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LoanNotice carries what a customer notification needs
type LoanNotice struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	LoanNumber    string
	Amount        decimal.Decimal
	Date          time.Time
}

// Notifier delivers best-effort customer notifications. Implementations
// must never return failure to the caller: delivery problems are logged
// and the triggering operation proceeds.
type Notifier interface {
	LoanIssued(ctx context.Context, notice LoanNotice)
	LoanClosed(ctx context.Context, notice LoanNotice)
}

// NopNotifier discards all notifications
type NopNotifier struct{}

func (NopNotifier) LoanIssued(context.Context, LoanNotice) {}
func (NopNotifier) LoanClosed(context.Context, LoanNotice) {}
