package lending

import (
	"context"
	"fmt"
	"time"

	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Sequence names. Each is counted independently per company; loan and
// other-loan numbers additionally reset per financial year.
const (
	SeqLoanNumber        = "loan_number"
	SeqOtherLoanNumber   = "other_loan_number"
	SeqTransactionNumber = "transaction_number"
	SeqCustomerCode      = "customer_code"
	SeqBranchCode        = "branch_code"
)

// LoanNumberPrefix is the fixed prefix of loan and other-loan numbers
const LoanNumberPrefix = "EGF"

// SequenceCounter is a per-(company, sequence name, financial year) counter
// row. Allocation increments the row under a row lock inside the caller's
// transaction, so two concurrent issuances can never mint the same number.
// Sequences that do not reset yearly use an empty FinancialYear.
type SequenceCounter struct {
	shared.BaseEntity
	CompanyID     uuid.UUID
	Name          string
	FinancialYear string
	Value         int64
}

// SequenceAllocator hands out the next value of a named sequence.
// Implementations must be safe under concurrent allocation; the returned
// value is unique and consecutive for non-concurrent callers.
type SequenceAllocator interface {
	Next(ctx context.Context, companyID uuid.UUID, name, financialYear string) (int64, error)
}

// FinancialYearLabel returns the Indian financial-year label (April-March)
// for a date, e.g. 2024-05-10 falls in "24_25" and 2024-02-10 in "23_24".
func FinancialYearLabel(date time.Time) string {
	year := date.Year()
	if date.Month() < time.April {
		year--
	}
	return fmt.Sprintf("%02d_%02d", year%100, (year+1)%100)
}

// FormatLoanNumber renders an allocated loan sequence, e.g. "EGF/24_25_000001"
func FormatLoanNumber(financialYear string, seq int64) string {
	return fmt.Sprintf("%s/%s_%06d", LoanNumberPrefix, financialYear, seq)
}

// FormatTransactionNumber renders an allocated transaction sequence,
// e.g. "TRXN000001"
func FormatTransactionNumber(seq int64) string {
	return fmt.Sprintf("TRXN%06d", seq)
}
