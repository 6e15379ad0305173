package lending

import (
	"context"
	"time"

	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LoanRepository persists issued loans and their sub-ledgers
type LoanRepository interface {
	shared.CompanyRepository[IssuedLoan]

	// IssueAtomically creates a loan inside one transaction: it re-runs
	// the duplicate guard for (company, customer, scheme), allocates the
	// loan and transaction numbers from the sequence counters, calls
	// build with the formatted numbers and inserts the result. Nothing
	// is written when any step fails.
	IssueAtomically(
		ctx context.Context,
		companyID, customerID, schemeID uuid.UUID,
		issueDate time.Time,
		build func(loanNumber, transactionNumber string) (*IssuedLoan, error),
	) (*IssuedLoan, error)

	// FindOpenByCustomerAndScheme returns the non-deleted, non-closed
	// loan matching the duplicate-issuance guard triple, or nil.
	FindOpenByCustomerAndScheme(ctx context.Context, companyID, customerID, schemeID uuid.UUID) (*IssuedLoan, error)

	// FindOpenLoans returns all non-deleted, non-closed loans of a
	// company for the overdue sweep.
	FindOpenLoans(ctx context.Context, companyID uuid.UUID) ([]IssuedLoan, error)

	// FindByCustomer returns all loans of one customer
	FindByCustomer(ctx context.Context, companyID, customerID uuid.UUID) ([]IssuedLoan, error)

	// BulkUpdateStatus sets the status of the given loans in one write.
	// Used by the overdue scanner; ids must already have passed the
	// transition rules.
	BulkUpdateStatus(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID, status LoanStatus) error

	// SaveWithLock persists the aggregate with an optimistic version
	// check, returning CONCURRENCY_CONFLICT when the row moved.
	SaveWithLock(ctx context.Context, loan *IssuedLoan) error
}

// OtherLoanRepository persists third-party refinance loans
type OtherLoanRepository interface {
	shared.CompanyRepository[OtherIssuedLoan]

	// IssueAtomically allocates the other-loan number and inserts the
	// built aggregate in one transaction.
	IssueAtomically(
		ctx context.Context,
		companyID uuid.UUID,
		issueDate time.Time,
		build func(otherNumber string) (*OtherIssuedLoan, error),
	) (*OtherIssuedLoan, error)

	// FindByBackingLoan returns the other-loans taken against one
	// issued loan's collateral.
	FindByBackingLoan(ctx context.Context, companyID, loanID uuid.UUID) ([]OtherIssuedLoan, error)

	// FindIssuedBefore returns Issued loans whose renewal date is
	// before the cutoff, for the overdue sweep.
	FindIssuedBefore(ctx context.Context, companyID uuid.UUID, renewalBefore time.Time) ([]OtherIssuedLoan, error)

	BulkUpdateStatus(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID, status OtherLoanStatus) error
	SaveWithLock(ctx context.Context, loan *OtherIssuedLoan) error
}
