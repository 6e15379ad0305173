package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goldfin/backend/internal/domain/lending"
)

// LoanSweepStore is the slice of the loan repository the sweeper needs.
type LoanSweepStore interface {
	FindOpenLoans(ctx context.Context, companyID uuid.UUID) ([]lending.IssuedLoan, error)
	BulkUpdateStatus(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID, status lending.LoanStatus) error
}

// OtherLoanSweepStore is the slice of the third-party loan repository the
// sweeper needs.
type OtherLoanSweepStore interface {
	FindIssuedBefore(ctx context.Context, companyID uuid.UUID, renewalBefore time.Time) ([]lending.OtherIssuedLoan, error)
	BulkUpdateStatus(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID, status lending.OtherLoanStatus) error
}

// SweepResult summarizes one company's sweep.
type SweepResult struct {
	LoansMarkedOverdue      int
	LoansMarkedRegular      int
	OtherLoansMarkedOverdue int
}

// OverdueSweeper reclassifies loan statuses against a reference date.
// Every status change is validated through the domain transition table,
// and re-running the sweep on the same day changes nothing.
type OverdueSweeper struct {
	loans      LoanSweepStore
	otherLoans OtherLoanSweepStore
	logger     *zap.Logger
}

// NewOverdueSweeper creates an OverdueSweeper.
func NewOverdueSweeper(loans LoanSweepStore, otherLoans OtherLoanSweepStore, logger *zap.Logger) *OverdueSweeper {
	return &OverdueSweeper{
		loans:      loans,
		otherLoans: otherLoans,
		logger:     logger,
	}
}

// SweepCompany runs both passes for one company. The overdue pass is
// applied before the regular pass so a loan that missed its installment
// today is never promoted back to Regular in the same run.
func (s *OverdueSweeper) SweepCompany(ctx context.Context, companyID uuid.UUID, today time.Time) (SweepResult, error) {
	var result SweepResult

	today = truncateToDay(today)

	openLoans, err := s.loans.FindOpenLoans(ctx, companyID)
	if err != nil {
		return result, err
	}

	var overdueIDs, regularIDs []uuid.UUID
	for i := range openLoans {
		loan := &openLoans[i]
		switch {
		case truncateToDay(loan.NextInstallmentDate).Before(today):
			if loan.Status == lending.StatusOverdue {
				continue
			}
			if _, err := lending.Transition(loan.Status, lending.StatusOverdue); err != nil {
				s.logger.Warn("Skipping loan with invalid overdue transition",
					zap.String("company_id", companyID.String()),
					zap.String("loan_number", loan.LoanNumber),
					zap.String("status", string(loan.Status)),
				)
				continue
			}
			overdueIDs = append(overdueIDs, loan.ID)
		case len(loan.Interests) > 0:
			if loan.Status == lending.StatusRegular {
				continue
			}
			if _, err := lending.Transition(loan.Status, lending.StatusRegular); err != nil {
				s.logger.Warn("Skipping loan with invalid regular transition",
					zap.String("company_id", companyID.String()),
					zap.String("loan_number", loan.LoanNumber),
					zap.String("status", string(loan.Status)),
				)
				continue
			}
			regularIDs = append(regularIDs, loan.ID)
		}
	}

	if len(overdueIDs) > 0 {
		if err := s.loans.BulkUpdateStatus(ctx, companyID, overdueIDs, lending.StatusOverdue); err != nil {
			return result, err
		}
		result.LoansMarkedOverdue = len(overdueIDs)
	}
	if len(regularIDs) > 0 {
		if err := s.loans.BulkUpdateStatus(ctx, companyID, regularIDs, lending.StatusRegular); err != nil {
			return result, err
		}
		result.LoansMarkedRegular = len(regularIDs)
	}

	cutoff := today.AddDate(0, 0, -lending.OtherLoanGraceDays)
	lapsed, err := s.otherLoans.FindIssuedBefore(ctx, companyID, cutoff)
	if err != nil {
		return result, err
	}
	var otherOverdueIDs []uuid.UUID
	for i := range lapsed {
		if _, err := lending.TransitionOther(lapsed[i].Status, lending.OtherStatusOverdue); err != nil {
			continue
		}
		otherOverdueIDs = append(otherOverdueIDs, lapsed[i].ID)
	}
	if len(otherOverdueIDs) > 0 {
		if err := s.otherLoans.BulkUpdateStatus(ctx, companyID, otherOverdueIDs, lending.OtherStatusOverdue); err != nil {
			return result, err
		}
		result.OtherLoansMarkedOverdue = len(otherOverdueIDs)
	}

	return result, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
