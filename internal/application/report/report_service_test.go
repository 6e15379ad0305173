package report

import (
	"testing"
	"time"

	"github.com/goldfin/backend/internal/domain/lending"
	"github.com/goldfin/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statementLoan(t *testing.T) *lending.IssuedLoan {
	t.Helper()
	loan, err := lending.NewIssuedLoan(
		uuid.New(), uuid.New(), uuid.New(), uuid.New(),
		"EGF/24_25_000007", "TRXN000007",
		dec("100000"), decimal.Zero,
		date(2024, time.January, 10), 30,
		[]lending.GoldItem{{Name: "Bangle", Carat: 22, Quantity: 2, GrossWeight: dec("30"), NetWeight: dec("29.2")}},
		valueobject.NewCashPayment(dec("100000")),
	)
	require.NoError(t, err)

	_, err = loan.AddPartPayment(dec("20000"), date(2024, time.March, 5), "festival payment", valueobject.NewCashPayment(dec("20000")))
	require.NoError(t, err)
	_, err = loan.AddPartRelease(dec("15000"), date(2024, time.February, 1),
		[]lending.GoldItem{{Name: "Ring", Carat: 22, Quantity: 1, GrossWeight: dec("4"), NetWeight: dec("3.9")}},
		"", valueobject.NewCashPayment(dec("15000")))
	require.NoError(t, err)
	return loan
}

func TestBuildStatementRows_RunningBalance(t *testing.T) {
	loan := statementLoan(t)
	rows := buildStatementRows(loan)
	require.Len(t, rows, 3)

	assert.Equal(t, StatusLoanIssued, rows[0].Type)
	assert.True(t, rows[0].Credit.Equal(dec("100000")))
	assert.True(t, rows[0].Balance.Equal(dec("100000")))

	// debit events come back in chronological order regardless of entry
	// order: the February release before the March payment
	assert.Equal(t, StatusLoanPartRelease, rows[1].Type)
	assert.True(t, rows[1].Balance.Equal(dec("85000")))
	assert.Equal(t, StatusLoanPartPayment, rows[2].Type)
	assert.True(t, rows[2].Balance.Equal(dec("65000")))
	assert.Equal(t, "festival payment", rows[2].Remark)
}

func TestBuildStatementRows_Idempotent(t *testing.T) {
	loan := statementLoan(t)
	first := buildStatementRows(loan)
	second := buildStatementRows(loan)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, first[i].Balance.Equal(second[i].Balance),
			"row %d balance drifted between runs", i)
	}
}

func TestMonthsSince(t *testing.T) {
	cases := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"same month", date(2024, time.May, 1), date(2024, time.May, 28), 1},
		{"adjacent months", date(2024, time.April, 30), date(2024, time.May, 1), 2},
		{"one year", date(2023, time.June, 15), date(2024, time.June, 15), 13},
		{"clock skew never drops below one", date(2024, time.June, 1), date(2024, time.May, 1), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, monthsSince(tc.from, tc.to))
		})
	}
}

func TestChartLayout_WeekBucketsLastSevenDays(t *testing.T) {
	now := date(2024, time.May, 10) // a Friday
	spec := chartLayout(ChartWeek, now)
	require.Len(t, spec.labels, 7)
	assert.Equal(t, "Saturday", spec.labels[0])
	assert.Equal(t, "Friday", spec.labels[6])

	assert.Equal(t, 6, spec.index(now))
	assert.Equal(t, 0, spec.index(date(2024, time.May, 4)))
	assert.Equal(t, -1, spec.index(date(2024, time.May, 3)))
	assert.Equal(t, -1, spec.index(date(2024, time.May, 11)))
}

func TestChartLayout_MonthAndYear(t *testing.T) {
	now := date(2024, time.May, 10)

	month := chartLayout(ChartMonth, now)
	require.Len(t, month.labels, 12)
	assert.Equal(t, "January", month.labels[0])
	assert.Equal(t, 4, month.index(date(2024, time.May, 1)))
	assert.Equal(t, -1, month.index(date(2023, time.May, 1)), "other years stay out of the month chart")

	year := chartLayout(ChartYear, now)
	require.Len(t, year.labels, 5)
	assert.Equal(t, "2020", year.labels[0])
	assert.Equal(t, "2024", year.labels[4])
	assert.Equal(t, 2, year.index(date(2022, time.August, 9)))
	assert.Equal(t, -1, year.index(date(2019, time.December, 31)))
}

func TestBuildSeries_DifferenceIsIssuedMinusClosed(t *testing.T) {
	now := date(2024, time.May, 10)
	events := []chartEvent{
		{date(2024, time.May, 6), dec("50000"), false},
		{date(2024, time.May, 6), dec("20000"), true},
		{date(2024, time.May, 10), dec("30000"), false},
		{date(2024, time.April, 1), dec("99999"), false}, // outside the week
	}
	buckets := buildSeries(events, ChartWeek, now)
	require.Len(t, buckets, 7)

	monday := buckets[2]
	assert.True(t, monday.Issued.Equal(dec("50000")))
	assert.True(t, monday.Closed.Equal(dec("20000")))
	assert.True(t, monday.Difference.Equal(dec("30000")))

	today := buckets[6]
	assert.True(t, today.Issued.Equal(dec("30000")))
	assert.True(t, today.Difference.Equal(dec("30000")))

	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Issued)
	}
	assert.True(t, total.Equal(dec("80000")), "the April issuance must not leak into any bucket")
}

func TestLastPayDate(t *testing.T) {
	loan := statementLoan(t)
	last := lastPayDate(loan)
	require.NotNil(t, last)
	assert.Equal(t, date(2024, time.March, 5), *last)

	bare, err := lending.NewIssuedLoan(
		uuid.New(), uuid.New(), uuid.New(), uuid.New(),
		"EGF/24_25_000008", "TRXN000008",
		dec("5000"), decimal.Zero,
		date(2024, time.January, 10), 30, nil,
		valueobject.NewCashPayment(dec("5000")),
	)
	require.NoError(t, err)
	assert.Nil(t, lastPayDate(bare))
}
