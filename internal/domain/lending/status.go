package lending

import (
	"fmt"

	"github.com/goldfin/backend/internal/domain/shared"
)

// LoanStatus is the lifecycle state of an issued loan
type LoanStatus string

const (
	StatusActive    LoanStatus = "Active"
	StatusDisbursed LoanStatus = "Disbursed"
	StatusRegular   LoanStatus = "Regular"
	StatusOverdue   LoanStatus = "Overdue"
	StatusClosed    LoanStatus = "Closed"
)

// OtherLoanStatus is the lifecycle state of a third-party refinance loan
type OtherLoanStatus string

const (
	OtherStatusIssued  OtherLoanStatus = "Issued"
	OtherStatusOverdue OtherLoanStatus = "Overdue"
	OtherStatusClosed  OtherLoanStatus = "Closed"
)

// validTransitions is the complete transition set. Closed is terminal.
// The overdue scanner and the close operation both go through Transition,
// so this table is the single place loan state rules live.
var validTransitions = map[LoanStatus][]LoanStatus{
	StatusActive:    {StatusRegular, StatusOverdue, StatusClosed},
	StatusDisbursed: {StatusRegular, StatusOverdue, StatusClosed},
	StatusRegular:   {StatusOverdue, StatusClosed},
	StatusOverdue:   {StatusRegular, StatusClosed},
	StatusClosed:    {},
}

// Transition validates and applies a status change. Transitioning to the
// current status is a no-op, which keeps the overdue scanner idempotent.
func Transition(current LoanStatus, next LoanStatus) (LoanStatus, error) {
	if current == next {
		return current, nil
	}
	for _, allowed := range validTransitions[current] {
		if allowed == next {
			return next, nil
		}
	}
	return current, shared.NewDomainError("INVALID_STATE",
		fmt.Sprintf("Loan status cannot change from %s to %s", current, next))
}

// TransitionOther validates a third-party loan status change. Issued may
// become Overdue or Closed; Overdue may close; Closed is terminal.
func TransitionOther(current OtherLoanStatus, next OtherLoanStatus) (OtherLoanStatus, error) {
	if current == next {
		return current, nil
	}
	switch current {
	case OtherStatusIssued:
		if next == OtherStatusOverdue || next == OtherStatusClosed {
			return next, nil
		}
	case OtherStatusOverdue:
		if next == OtherStatusClosed || next == OtherStatusIssued {
			return next, nil
		}
	}
	return current, shared.NewDomainError("INVALID_STATE",
		fmt.Sprintf("Other loan status cannot change from %s to %s", current, next))
}

// IsOpen reports whether the loan still accrues interest
func (s LoanStatus) IsOpen() bool {
	return s != StatusClosed
}
