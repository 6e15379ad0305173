package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goldfin/backend/internal/domain/lending"
	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/goldfin/backend/internal/domain/shared/valueobject"
)

type statusUpdate struct {
	ids    []uuid.UUID
	status lending.LoanStatus
}

type fakeLoanStore struct {
	loans   []lending.IssuedLoan
	updates []statusUpdate
	findErr error
}

func (f *fakeLoanStore) FindOpenLoans(_ context.Context, _ uuid.UUID) ([]lending.IssuedLoan, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.loans, nil
}

func (f *fakeLoanStore) BulkUpdateStatus(_ context.Context, _ uuid.UUID, ids []uuid.UUID, status lending.LoanStatus) error {
	f.updates = append(f.updates, statusUpdate{ids: ids, status: status})
	for _, id := range ids {
		for i := range f.loans {
			if f.loans[i].ID == id {
				f.loans[i].Status = status
			}
		}
	}
	return nil
}

type otherStatusUpdate struct {
	ids    []uuid.UUID
	status lending.OtherLoanStatus
}

type fakeOtherLoanStore struct {
	loans   []lending.OtherIssuedLoan
	updates []otherStatusUpdate
}

func (f *fakeOtherLoanStore) FindIssuedBefore(_ context.Context, _ uuid.UUID, renewalBefore time.Time) ([]lending.OtherIssuedLoan, error) {
	var out []lending.OtherIssuedLoan
	for _, l := range f.loans {
		if l.Status == lending.OtherStatusIssued && l.RenewalDate.Before(renewalBefore) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeOtherLoanStore) BulkUpdateStatus(_ context.Context, _ uuid.UUID, ids []uuid.UUID, status lending.OtherLoanStatus) error {
	f.updates = append(f.updates, otherStatusUpdate{ids: ids, status: status})
	for _, id := range ids {
		for i := range f.loans {
			if f.loans[i].ID == id {
				f.loans[i].Status = status
			}
		}
	}
	return nil
}

func sweepTestLoan(companyID uuid.UUID, status lending.LoanStatus, nextInstallment time.Time, interestEntries int) lending.IssuedLoan {
	loan := lending.IssuedLoan{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		CustomerID:           uuid.New(),
		SchemeID:             uuid.New(),
		LoanNumber:           "EGF/24_25_000001",
		LoanAmount:           decimal.NewFromInt(100000),
		Status:               status,
		NextInstallmentDate:  nextInstallment,
	}
	for i := 0; i < interestEntries; i++ {
		loan.Interests = append(loan.Interests, lending.Interest{
			InterestAmount: decimal.NewFromInt(1500),
			AmountPaid:     decimal.NewFromInt(1500),
		})
	}
	return loan
}

func sweepTestOtherLoan(companyID uuid.UUID, status lending.OtherLoanStatus, renewalDate time.Time) lending.OtherIssuedLoan {
	loan, _ := lending.NewOtherIssuedLoan(
		companyID, uuid.New(), "OGL/24_25_000001", "Muthoot Capital",
		decimal.NewFromInt(80000), decimal.NewFromFloat(80),
		renewalDate.AddDate(0, -6, 0), renewalDate,
		valueobject.PaymentDetail{PaymentMode: valueobject.PaymentModeCash, CashAmount: decimal.NewFromInt(80000)},
	)
	loan.Status = status
	return *loan
}

func TestOverdueSweeper_SweepCompany(t *testing.T) {
	companyID := uuid.New()
	today := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	t.Run("marks missed installments overdue before promoting to regular", func(t *testing.T) {
		missed := sweepTestLoan(companyID, lending.StatusDisbursed, today.AddDate(0, 0, -3), 0)
		paidUp := sweepTestLoan(companyID, lending.StatusDisbursed, today.AddDate(0, 0, 12), 2)
		fresh := sweepTestLoan(companyID, lending.StatusDisbursed, today.AddDate(0, 0, 25), 0)

		loans := &fakeLoanStore{loans: []lending.IssuedLoan{missed, paidUp, fresh}}
		others := &fakeOtherLoanStore{}
		sweeper := NewOverdueSweeper(loans, others, zap.NewNop())

		result, err := sweeper.SweepCompany(context.Background(), companyID, today)
		require.NoError(t, err)

		assert.Equal(t, 1, result.LoansMarkedOverdue)
		assert.Equal(t, 1, result.LoansMarkedRegular)

		require.Len(t, loans.updates, 2)
		assert.Equal(t, lending.StatusOverdue, loans.updates[0].status)
		assert.Equal(t, []uuid.UUID{missed.ID}, loans.updates[0].ids)
		assert.Equal(t, lending.StatusRegular, loans.updates[1].status)
		assert.Equal(t, []uuid.UUID{paidUp.ID}, loans.updates[1].ids)
	})

	t.Run("overdue wins over regular when the installment lapsed", func(t *testing.T) {
		// Interest was paid at some point but the next installment
		// has still been missed.
		lapsed := sweepTestLoan(companyID, lending.StatusRegular, today.AddDate(0, 0, -1), 3)

		loans := &fakeLoanStore{loans: []lending.IssuedLoan{lapsed}}
		sweeper := NewOverdueSweeper(loans, &fakeOtherLoanStore{}, zap.NewNop())

		result, err := sweeper.SweepCompany(context.Background(), companyID, today)
		require.NoError(t, err)

		assert.Equal(t, 1, result.LoansMarkedOverdue)
		assert.Equal(t, 0, result.LoansMarkedRegular)
	})

	t.Run("installment due exactly today is not overdue", func(t *testing.T) {
		dueToday := sweepTestLoan(companyID, lending.StatusDisbursed, today, 0)

		loans := &fakeLoanStore{loans: []lending.IssuedLoan{dueToday}}
		sweeper := NewOverdueSweeper(loans, &fakeOtherLoanStore{}, zap.NewNop())

		result, err := sweeper.SweepCompany(context.Background(), companyID, today)
		require.NoError(t, err)

		assert.Equal(t, 0, result.LoansMarkedOverdue)
		assert.Empty(t, loans.updates)
	})

	t.Run("rerunning the sweep changes nothing", func(t *testing.T) {
		missed := sweepTestLoan(companyID, lending.StatusDisbursed, today.AddDate(0, 0, -3), 0)
		paidUp := sweepTestLoan(companyID, lending.StatusDisbursed, today.AddDate(0, 0, 12), 2)

		loans := &fakeLoanStore{loans: []lending.IssuedLoan{missed, paidUp}}
		sweeper := NewOverdueSweeper(loans, &fakeOtherLoanStore{}, zap.NewNop())

		_, err := sweeper.SweepCompany(context.Background(), companyID, today)
		require.NoError(t, err)
		firstUpdates := len(loans.updates)

		result, err := sweeper.SweepCompany(context.Background(), companyID, today)
		require.NoError(t, err)

		assert.Equal(t, 0, result.LoansMarkedOverdue)
		assert.Equal(t, 0, result.LoansMarkedRegular)
		assert.Len(t, loans.updates, firstUpdates)
	})

	t.Run("other loans past the grace window go overdue", func(t *testing.T) {
		// Grace is five days: six days past renewal is overdue, four is not.
		lapsed := sweepTestOtherLoan(companyID, lending.OtherStatusIssued, today.AddDate(0, 0, -6))
		inGrace := sweepTestOtherLoan(companyID, lending.OtherStatusIssued, today.AddDate(0, 0, -4))

		others := &fakeOtherLoanStore{loans: []lending.OtherIssuedLoan{lapsed, inGrace}}
		sweeper := NewOverdueSweeper(&fakeLoanStore{}, others, zap.NewNop())

		result, err := sweeper.SweepCompany(context.Background(), companyID, today)
		require.NoError(t, err)

		assert.Equal(t, 1, result.OtherLoansMarkedOverdue)
		require.Len(t, others.updates, 1)
		assert.Equal(t, lending.OtherStatusOverdue, others.updates[0].status)
		assert.Equal(t, []uuid.UUID{lapsed.ID}, others.updates[0].ids)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		loans := &fakeLoanStore{findErr: assert.AnError}
		sweeper := NewOverdueSweeper(loans, &fakeOtherLoanStore{}, zap.NewNop())

		_, err := sweeper.SweepCompany(context.Background(), companyID, today)
		assert.ErrorIs(t, err, assert.AnError)
	})
}
