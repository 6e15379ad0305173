package lending

import (
	"testing"
	"time"

	"github.com/goldfin/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoan(t *testing.T) *IssuedLoan {
	t.Helper()
	loan, err := NewIssuedLoan(
		uuid.New(), uuid.New(), uuid.New(), uuid.New(),
		"EGF/24_25_000001", "TRXN000001",
		decimal.NewFromInt(100000), decimal.NewFromInt(100000),
		date(2024, time.April, 1), 30,
		[]GoldItem{{Name: "Chain", Carat: 22, Quantity: 1, GrossWeight: decimal.NewFromFloat(25.5), NetWeight: decimal.NewFromFloat(24.0)}},
		valueobject.NewCashPayment(decimal.NewFromInt(100000)),
	)
	require.NoError(t, err)
	return loan
}

func TestNewIssuedLoan(t *testing.T) {
	loan := newTestLoan(t)

	assert.Equal(t, StatusDisbursed, loan.Status)
	assert.Equal(t, date(2024, time.April, 1), loan.LastInstallmentDate)
	assert.Equal(t, date(2024, time.May, 1), loan.NextInstallmentDate)
	assert.Nil(t, loan.LastInterestEntry())
}

func TestNewIssuedLoanValidation(t *testing.T) {
	_, err := NewIssuedLoan(
		uuid.New(), uuid.New(), uuid.Nil, uuid.New(),
		"EGF/24_25_000001", "TRXN000001",
		decimal.NewFromInt(100000), decimal.Zero,
		date(2024, time.April, 1), 30, nil,
		valueobject.PaymentDetail{},
	)
	require.Error(t, err)

	_, err = NewIssuedLoan(
		uuid.New(), uuid.New(), uuid.New(), uuid.New(),
		"EGF/24_25_000001", "TRXN000001",
		decimal.Zero, decimal.Zero,
		date(2024, time.April, 1), 30, nil,
		valueobject.PaymentDetail{},
	)
	require.Error(t, err)
}

func TestPostInterestAdvancesSchedule(t *testing.T) {
	loan := newTestLoan(t)

	entry, err := loan.PostInterest(
		date(2024, time.April, 1), date(2024, time.May, 1), 31,
		decimal.NewFromFloat(1834.52), decimal.Zero, decimal.NewFromFloat(1834.52),
		valueobject.NewCashPayment(decimal.NewFromFloat(1834.52)), 30,
	)
	require.NoError(t, err)

	assert.Equal(t, date(2024, time.May, 1), loan.LastInstallmentDate)
	assert.Equal(t, date(2024, time.May, 31), loan.NextInstallmentDate)
	assert.True(t, entry.CrDr.IsZero())
	require.NotNil(t, loan.LastInterestEntry())
	assert.Equal(t, entry.ID, loan.LastInterestEntry().ID)
}

func TestPostInterestCarriesForwardResidual(t *testing.T) {
	loan := newTestLoan(t)

	// Underpayment: 1834.52 due, 1500 paid
	entry, err := loan.PostInterest(
		date(2024, time.April, 1), date(2024, time.May, 1), 31,
		decimal.NewFromFloat(1834.52), decimal.Zero, decimal.NewFromInt(1500),
		valueobject.NewCashPayment(decimal.NewFromInt(1500)), 30,
	)
	require.NoError(t, err)
	assert.Equal(t, "334.52", entry.CrDr.StringFixed(2))
	assert.Equal(t, "334.52", loan.CarryForward().StringFixed(2))

	// The next period's due folds in the 334.52 carried over
	entry, err = loan.PostInterest(
		date(2024, time.May, 1), date(2024, time.June, 1), 31,
		decimal.NewFromInt(1800), decimal.Zero, decimal.NewFromInt(2000),
		valueobject.NewCashPayment(decimal.NewFromInt(2000)), 30,
	)
	require.NoError(t, err)
	assert.Equal(t, "134.52", entry.CrDr.StringFixed(2))

	// Overpayment clears the carry and leaves a credit
	entry, err = loan.PostInterest(
		date(2024, time.June, 1), date(2024, time.July, 1), 30,
		decimal.NewFromInt(1800), decimal.Zero, decimal.NewFromFloat(2134.52),
		valueobject.NewCashPayment(decimal.NewFromFloat(2134.52)), 30,
	)
	require.NoError(t, err)
	assert.Equal(t, "-200.00", entry.CrDr.StringFixed(2))
}

func TestPostInterestAccumulatesUnpaidDebt(t *testing.T) {
	loan := newTestLoan(t)
	none := valueobject.NewCashPayment(decimal.Zero)

	// Two consecutive periods with nothing paid
	entry, err := loan.PostInterest(
		date(2024, time.April, 1), date(2024, time.May, 1), 31,
		decimal.NewFromFloat(1834.52), decimal.Zero, decimal.Zero, none, 30,
	)
	require.NoError(t, err)
	assert.Equal(t, "1834.52", entry.CrDr.StringFixed(2))

	entry, err = loan.PostInterest(
		date(2024, time.May, 1), date(2024, time.May, 31), 30,
		decimal.NewFromFloat(1775.34), decimal.Zero, decimal.Zero, none, 30,
	)
	require.NoError(t, err)
	assert.Equal(t, "3609.86", entry.CrDr.StringFixed(2))
	assert.Equal(t, "3609.86", loan.CarryForward().StringFixed(2))

	// A third period's pending figure owes all three periods of interest
	anchor := date(2024, time.May, 31)
	result := ComputePendingInterest(AccrualInput{
		Principal:           loan.InterestLoanAmount,
		RatePercent:         decimal.NewFromInt(18),
		IssueDate:           loan.IssueDate,
		LastInterestTo:      &anchor,
		NextInstallmentDate: loan.NextInstallmentDate,
		LastInstallmentDate: loan.LastInstallmentDate,
		CarryForward:        loan.CarryForward(),
	}, date(2024, time.June, 30))
	assert.Equal(t, "5385.20", result.PendingInterest.StringFixed(2))
}

func TestUchakSettlesAgainstNextPosting(t *testing.T) {
	loan := newTestLoan(t)

	_, err := loan.PostUchakInterest(date(2024, time.April, 15), decimal.NewFromInt(500),
		valueobject.NewCashPayment(decimal.NewFromInt(500)))
	require.NoError(t, err)

	// Paying the displayed pending (1834.52 base less the 500 uchak)
	// settles the period in full
	entry, err := loan.PostInterest(
		date(2024, time.April, 1), date(2024, time.May, 1), 31,
		decimal.NewFromFloat(1834.52), decimal.Zero, decimal.NewFromFloat(1334.52),
		valueobject.NewCashPayment(decimal.NewFromFloat(1334.52)), 30,
	)
	require.NoError(t, err)
	assert.True(t, entry.CrDr.IsZero(), "uchak must not be charged again")
	assert.True(t, loan.CarryForward().IsZero())
}

func TestUchakDoesNotAdvanceSchedule(t *testing.T) {
	loan := newTestLoan(t)

	_, err := loan.PostUchakInterest(date(2024, time.April, 15), decimal.NewFromInt(500),
		valueobject.NewCashPayment(decimal.NewFromInt(500)))
	require.NoError(t, err)

	assert.Equal(t, date(2024, time.May, 1), loan.NextInstallmentDate)
	assert.Nil(t, loan.LastInterestEntry(), "uchak entries never anchor accrual")
	assert.Equal(t, "500", loan.UchakPaidAfter(date(2024, time.April, 1)).String())
	assert.True(t, loan.UchakPaidAfter(date(2024, time.April, 20)).IsZero())
}

func TestCloseComputesNetAmount(t *testing.T) {
	loan := newTestLoan(t)

	_, err := loan.AddPartPayment(decimal.NewFromInt(20000), date(2024, time.June, 1), "",
		valueobject.NewCashPayment(decimal.NewFromInt(20000)))
	require.NoError(t, err)
	_, err = loan.AddPartRelease(decimal.NewFromInt(10000), date(2024, time.July, 1), nil, "",
		valueobject.NewCashPayment(decimal.NewFromInt(10000)))
	require.NoError(t, err)

	closure, err := loan.Close(
		decimal.NewFromInt(3000), decimal.NewFromInt(500),
		date(2024, time.August, 1), "settled",
		valueobject.NewCashPayment(decimal.NewFromInt(72500)),
	)
	require.NoError(t, err)

	// 100000 + 3000 pending - 30000 paid down - 500 charge
	assert.Equal(t, "72500.00", closure.NetAmount.StringFixed(2))
	assert.Equal(t, StatusClosed, loan.Status)
}

func TestClosedLoanRejectsMutations(t *testing.T) {
	loan := newTestLoan(t)
	pay := valueobject.NewCashPayment(decimal.NewFromInt(100))

	_, err := loan.Close(decimal.Zero, decimal.Zero, date(2024, time.May, 1), "", pay)
	require.NoError(t, err)

	_, err = loan.PostInterest(date(2024, time.May, 1), date(2024, time.June, 1), 31,
		decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(100), pay, 30)
	assert.Error(t, err)

	_, err = loan.PostUchakInterest(date(2024, time.May, 2), decimal.NewFromInt(100), pay)
	assert.Error(t, err)

	_, err = loan.AddPartPayment(decimal.NewFromInt(100), date(2024, time.May, 2), "", pay)
	assert.Error(t, err)

	_, err = loan.AddPartRelease(decimal.NewFromInt(100), date(2024, time.May, 2), nil, "", pay)
	assert.Error(t, err)

	_, err = loan.Close(decimal.Zero, decimal.Zero, date(2024, time.May, 3), "", pay)
	assert.Error(t, err)
}

func TestOtherLoanOverdueGrace(t *testing.T) {
	loan, err := NewOtherIssuedLoan(
		uuid.New(), uuid.New(), "EGF/24_25_000001", "Muthoot",
		decimal.NewFromInt(50000), decimal.NewFromInt(12),
		date(2024, time.April, 1), date(2024, time.May, 1),
		valueobject.NewCashPayment(decimal.NewFromInt(50000)),
	)
	require.NoError(t, err)

	assert.False(t, loan.OverdueAsOf(date(2024, time.May, 5)), "inside grace window")
	assert.False(t, loan.OverdueAsOf(date(2024, time.May, 6)), "renewal exactly at cutoff")
	assert.True(t, loan.OverdueAsOf(date(2024, time.May, 7)), "grace exhausted")

	require.NoError(t, loan.ApplyStatus(OtherStatusOverdue))
	assert.False(t, loan.OverdueAsOf(date(2024, time.June, 1)), "already overdue")

	require.NoError(t, loan.Renew(date(2024, time.July, 1)))
	assert.Equal(t, OtherStatusIssued, loan.Status)
}
