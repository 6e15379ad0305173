package lending

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFinancialYearLabel(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"first day of FY", date(2024, time.April, 1), "24_25"},
		{"mid FY", date(2024, time.October, 15), "24_25"},
		{"last day of FY", date(2025, time.March, 31), "24_25"},
		{"january falls in previous FY", date(2024, time.January, 10), "23_24"},
		{"century wrap keeps two digits", date(1999, time.June, 1), "99_00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FinancialYearLabel(tt.date))
		})
	}
}

func TestFormatLoanNumber(t *testing.T) {
	assert.Equal(t, "EGF/24_25_000001", FormatLoanNumber("24_25", 1))
	assert.Equal(t, "EGF/24_25_000123", FormatLoanNumber("24_25", 123))
	assert.Equal(t, "EGF/23_24_001000", FormatLoanNumber("23_24", 1000))
}

func TestFormatTransactionNumber(t *testing.T) {
	assert.Equal(t, "TRXN000001", FormatTransactionNumber(1))
	assert.Equal(t, "TRXN000042", FormatTransactionNumber(42))
}
