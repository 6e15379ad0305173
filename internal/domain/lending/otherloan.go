package lending

import (
	"time"

	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/goldfin/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OtherLoanInterest is one interest payment on a third-party loan
type OtherLoanInterest struct {
	shared.BaseEntity
	OtherLoanID    uuid.UUID
	From           time.Time
	To             time.Time
	Days           int
	InterestAmount decimal.Decimal
	AmountPaid     decimal.Decimal
	PaymentDetail  valueobject.PaymentDetail
}

// OtherLoanClose is the terminal record of a third-party loan
type OtherLoanClose struct {
	shared.BaseEntity
	OtherLoanID   uuid.UUID
	NetAmount     decimal.Decimal
	Date          time.Time
	Remark        string
	PaymentDetail valueobject.PaymentDetail
}

// OtherIssuedLoan is a refinance the company has taken from a third party
// against the collateral already backing one of its own issued loans. It
// keeps its own number sequence (same EGF/<FY> shape, counted
// independently) and becomes overdue five days after its renewal date.
type OtherIssuedLoan struct {
	shared.CompanyAggregateRoot
	LoanID uuid.UUID // the collateral-backing issued loan

	OtherNumber string
	LenderName  string

	Amount decimal.Decimal
	// Percentage is the third party's interest rate as entered
	Percentage decimal.Decimal

	IssueDate   time.Time
	RenewalDate time.Time
	Status      OtherLoanStatus

	PaymentDetail valueobject.PaymentDetail

	Interests []OtherLoanInterest
	Closure   *OtherLoanClose
}

// OtherLoanGraceDays is the grace window after the renewal date before a
// third-party loan is classified overdue.
const OtherLoanGraceDays = 5

// NewOtherIssuedLoan creates a third-party loan against an existing issued
// loan's collateral.
func NewOtherIssuedLoan(
	companyID, loanID uuid.UUID,
	otherNumber, lenderName string,
	amount, percentage decimal.Decimal,
	issueDate, renewalDate time.Time,
	payment valueobject.PaymentDetail,
) (*OtherIssuedLoan, error) {
	if loanID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Backing loan is required")
	}
	if otherNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Other loan number is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Other loan amount must be positive")
	}
	return &OtherIssuedLoan{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		LoanID:               loanID,
		OtherNumber:          otherNumber,
		LenderName:           lenderName,
		Amount:               amount,
		Percentage:           percentage,
		IssueDate:            issueDate,
		RenewalDate:          renewalDate,
		Status:               OtherStatusIssued,
		PaymentDetail:        payment,
	}, nil
}

// IsClosed reports whether the loan has been settled
func (l *OtherIssuedLoan) IsClosed() bool {
	return l.Status == OtherStatusClosed
}

// LastInterestEntry returns the most recent interest payment, or nil
func (l *OtherIssuedLoan) LastInterestEntry() *OtherLoanInterest {
	var last *OtherLoanInterest
	for i := range l.Interests {
		entry := &l.Interests[i]
		if last == nil || entry.To.After(last.To) {
			last = entry
		}
	}
	return last
}

// PostInterest appends an interest payment covering [from, to]
func (l *OtherIssuedLoan) PostInterest(from, to time.Time, days int, interestAmount, amountPaid decimal.Decimal, payment valueobject.PaymentDetail) (*OtherLoanInterest, error) {
	if l.IsClosed() {
		return nil, shared.ErrLoanClosed
	}
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Interest period end precedes its start")
	}
	entry := OtherLoanInterest{
		BaseEntity:     shared.NewBaseEntity(),
		OtherLoanID:    l.ID,
		From:           from,
		To:             to,
		Days:           days,
		InterestAmount: interestAmount,
		AmountPaid:     amountPaid,
		PaymentDetail:  payment,
	}
	l.Interests = append(l.Interests, entry)
	return &l.Interests[len(l.Interests)-1], nil
}

// Renew pushes the renewal date forward and restores Issued status for an
// overdue loan.
func (l *OtherIssuedLoan) Renew(renewalDate time.Time) error {
	if l.IsClosed() {
		return shared.ErrLoanClosed
	}
	next, err := TransitionOther(l.Status, OtherStatusIssued)
	if err != nil {
		return err
	}
	l.Status = next
	l.RenewalDate = renewalDate
	return nil
}

// Close settles the loan with the third party
func (l *OtherIssuedLoan) Close(netAmount decimal.Decimal, date time.Time, remark string, payment valueobject.PaymentDetail) (*OtherLoanClose, error) {
	if l.IsClosed() {
		return nil, shared.ErrLoanClosed
	}
	next, err := TransitionOther(l.Status, OtherStatusClosed)
	if err != nil {
		return nil, err
	}
	closure := &OtherLoanClose{
		BaseEntity:    shared.NewBaseEntity(),
		OtherLoanID:   l.ID,
		NetAmount:     netAmount,
		Date:          date,
		Remark:        remark,
		PaymentDetail: payment,
	}
	l.Closure = closure
	l.Status = next
	return closure, nil
}

// ApplyStatus transitions the loan through the shared transition rules
func (l *OtherIssuedLoan) ApplyStatus(next OtherLoanStatus) error {
	status, err := TransitionOther(l.Status, next)
	if err != nil {
		return err
	}
	l.Status = status
	return nil
}

// OverdueAsOf reports whether the loan has exhausted its renewal grace
func (l *OtherIssuedLoan) OverdueAsOf(today time.Time) bool {
	if l.Status != OtherStatusIssued {
		return false
	}
	cutoff := today.AddDate(0, 0, -OtherLoanGraceDays)
	return l.RenewalDate.Before(cutoff)
}
