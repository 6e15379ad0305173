package lending

import (
	"time"

	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/goldfin/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoldItem is one pledged ornament on a loan
type GoldItem struct {
	Name        string          `json:"name"`
	Carat       int             `json:"carat"`
	Quantity    int             `json:"quantity"`
	GrossWeight decimal.Decimal `json:"gross_weight"`
	NetWeight   decimal.Decimal `json:"net_weight"`
}

// Interest is one posted accrual entry on a loan. Entries are immutable
// once posted; the most recent non-uchak entry anchors the next accrual
// window. Uchak entries are ad-hoc payments between regular postings and
// do not advance the installment schedule.
type Interest struct {
	shared.BaseEntity
	LoanID         uuid.UUID
	From           time.Time
	To             time.Time
	Days           int
	InterestAmount decimal.Decimal
	Penalty        decimal.Decimal
	AmountPaid     decimal.Decimal
	// CrDr is the signed residual between amount due and amount paid,
	// carried into the next period's due calculation.
	CrDr          decimal.Decimal
	IsUchak       bool
	PaymentDetail valueobject.PaymentDetail
}

// PartPayment reduces outstanding principal without releasing collateral
type PartPayment struct {
	shared.BaseEntity
	LoanID        uuid.UUID
	Amount        decimal.Decimal
	Date          time.Time
	Remark        string
	PaymentDetail valueobject.PaymentDetail
}

// PartRelease returns part of the pledged collateral against a paydown
type PartRelease struct {
	shared.BaseEntity
	LoanID        uuid.UUID
	Amount        decimal.Decimal
	Date          time.Time
	Items         []GoldItem
	Remark        string
	PaymentDetail valueobject.PaymentDetail
}

// LoanClose is the terminal record of a loan
type LoanClose struct {
	shared.BaseEntity
	LoanID        uuid.UUID
	NetAmount     decimal.Decimal
	ClosingCharge decimal.Decimal
	Date          time.Time
	Remark        string
	PaymentDetail valueobject.PaymentDetail
}

// IssuedLoan is the primary lending aggregate. It owns its interest,
// part-payment, part-release and closure sub-ledgers; status transitions
// go through Transition and are otherwise only touched by the overdue
// scanner and the close operation.
type IssuedLoan struct {
	shared.CompanyAggregateRoot
	CustomerID uuid.UUID
	SchemeID   uuid.UUID
	BranchID   uuid.UUID

	LoanNumber        string
	TransactionNumber string

	LoanAmount decimal.Decimal
	// InterestLoanAmount is the interest-bearing principal; it may be
	// lower than LoanAmount when part of the disbursement is
	// interest-free by agreement.
	InterestLoanAmount decimal.Decimal

	IssueDate           time.Time
	NextInstallmentDate time.Time
	LastInstallmentDate time.Time
	Status              LoanStatus

	Items         []GoldItem
	PaymentDetail valueobject.PaymentDetail

	Interests    []Interest
	PartPayments []PartPayment
	PartReleases []PartRelease
	Closure      *LoanClose
}

// NewIssuedLoan creates a loan with pre-allocated loan and transaction
// numbers. The first installment falls interestPeriod days after issue.
func NewIssuedLoan(
	companyID, branchID, customerID, schemeID uuid.UUID,
	loanNumber, transactionNumber string,
	loanAmount, interestLoanAmount decimal.Decimal,
	issueDate time.Time,
	interestPeriod int,
	items []GoldItem,
	payment valueobject.PaymentDetail,
) (*IssuedLoan, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Loan customer is required")
	}
	if schemeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Loan scheme is required")
	}
	if loanNumber == "" || transactionNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Loan and transaction numbers are required")
	}
	if !loanAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Loan amount must be positive")
	}
	if interestLoanAmount.IsZero() {
		interestLoanAmount = loanAmount
	}
	if interestPeriod <= 0 {
		interestPeriod = 30
	}

	return &IssuedLoan{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		CustomerID:           customerID,
		SchemeID:             schemeID,
		BranchID:             branchID,
		LoanNumber:           loanNumber,
		TransactionNumber:    transactionNumber,
		LoanAmount:           loanAmount,
		InterestLoanAmount:   interestLoanAmount,
		IssueDate:            issueDate,
		NextInstallmentDate:  issueDate.AddDate(0, 0, interestPeriod),
		LastInstallmentDate:  issueDate,
		Status:               StatusDisbursed,
		Items:                items,
		PaymentDetail:        payment,
	}, nil
}

// IsClosed reports whether the loan has been closed
func (l *IssuedLoan) IsClosed() bool {
	return l.Status == StatusClosed
}

// LastInterestEntry returns the most recent non-uchak interest entry, or
// nil when no regular interest has been posted yet.
func (l *IssuedLoan) LastInterestEntry() *Interest {
	var last *Interest
	for i := range l.Interests {
		entry := &l.Interests[i]
		if entry.IsUchak {
			continue
		}
		if last == nil || entry.To.After(last.To) {
			last = entry
		}
	}
	return last
}

// UchakPaidAfter sums uchak payments made strictly after the given anchor
func (l *IssuedLoan) UchakPaidAfter(anchor time.Time) decimal.Decimal {
	total := decimal.Zero
	for i := range l.Interests {
		entry := &l.Interests[i]
		if entry.IsUchak && entry.To.After(anchor) {
			total = total.Add(entry.AmountPaid)
		}
	}
	return total
}

// CarryForward returns the cr_dr residual of the last regular entry
func (l *IssuedLoan) CarryForward() decimal.Decimal {
	if last := l.LastInterestEntry(); last != nil {
		return last.CrDr
	}
	return decimal.Zero
}

// CumulativeInterestDays sums the day counts of all interest entries
func (l *IssuedLoan) CumulativeInterestDays() int {
	days := 0
	for i := range l.Interests {
		days += l.Interests[i].Days
	}
	return days
}

// PostInterest appends a regular interest entry covering [from, to] and
// advances the installment schedule by interestPeriod days. The amount due
// folds in the previous entry's cr_dr residual and the uchak payments made
// since the anchor, so the entry's cr_dr is the full outstanding figure:
// an underpayment rolls ALL unpaid debt into the next period, an uchak
// already paid isn't charged again, and an overpayment carries a credit.
func (l *IssuedLoan) PostInterest(
	from, to time.Time,
	days int,
	interestAmount, penalty, amountPaid decimal.Decimal,
	payment valueobject.PaymentDetail,
	interestPeriod int,
) (*Interest, error) {
	if l.IsClosed() {
		return nil, shared.ErrLoanClosed
	}
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Interest period end precedes its start")
	}
	if interestPeriod <= 0 {
		interestPeriod = 30
	}

	due := interestAmount.
		Add(penalty).
		Add(l.CarryForward()).
		Sub(l.UchakPaidAfter(from))
	entry := Interest{
		BaseEntity:     shared.NewBaseEntity(),
		LoanID:         l.ID,
		From:           from,
		To:             to,
		Days:           days,
		InterestAmount: interestAmount,
		Penalty:        penalty,
		AmountPaid:     amountPaid,
		CrDr:           due.Sub(amountPaid),
		PaymentDetail:  payment,
	}
	l.Interests = append(l.Interests, entry)

	l.LastInstallmentDate = l.NextInstallmentDate
	l.NextInstallmentDate = l.NextInstallmentDate.AddDate(0, 0, interestPeriod)
	return &l.Interests[len(l.Interests)-1], nil
}

// PostUchakInterest records an ad-hoc interest payment dated at paidOn.
// The installment schedule does not move.
func (l *IssuedLoan) PostUchakInterest(paidOn time.Time, amountPaid decimal.Decimal, payment valueobject.PaymentDetail) (*Interest, error) {
	if l.IsClosed() {
		return nil, shared.ErrLoanClosed
	}
	if !amountPaid.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Uchak amount must be positive")
	}
	entry := Interest{
		BaseEntity:    shared.NewBaseEntity(),
		LoanID:        l.ID,
		From:          paidOn,
		To:            paidOn,
		AmountPaid:    amountPaid,
		IsUchak:       true,
		PaymentDetail: payment,
	}
	l.Interests = append(l.Interests, entry)
	return &l.Interests[len(l.Interests)-1], nil
}

// AddPartPayment appends an immutable principal paydown row
func (l *IssuedLoan) AddPartPayment(amount decimal.Decimal, date time.Time, remark string, payment valueobject.PaymentDetail) (*PartPayment, error) {
	if l.IsClosed() {
		return nil, shared.ErrLoanClosed
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Part payment amount must be positive")
	}
	row := PartPayment{
		BaseEntity:    shared.NewBaseEntity(),
		LoanID:        l.ID,
		Amount:        amount,
		Date:          date,
		Remark:        remark,
		PaymentDetail: payment,
	}
	l.PartPayments = append(l.PartPayments, row)
	return &l.PartPayments[len(l.PartPayments)-1], nil
}

// AddPartRelease appends a collateral release row
func (l *IssuedLoan) AddPartRelease(amount decimal.Decimal, date time.Time, items []GoldItem, remark string, payment valueobject.PaymentDetail) (*PartRelease, error) {
	if l.IsClosed() {
		return nil, shared.ErrLoanClosed
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Part release amount cannot be negative")
	}
	row := PartRelease{
		BaseEntity:    shared.NewBaseEntity(),
		LoanID:        l.ID,
		Amount:        amount,
		Date:          date,
		Items:         items,
		Remark:        remark,
		PaymentDetail: payment,
	}
	l.PartReleases = append(l.PartReleases, row)
	return &l.PartReleases[len(l.PartReleases)-1], nil
}

// TotalPaidDown sums all part payments and part releases
func (l *IssuedLoan) TotalPaidDown() decimal.Decimal {
	total := decimal.Zero
	for i := range l.PartPayments {
		total = total.Add(l.PartPayments[i].Amount)
	}
	for i := range l.PartReleases {
		total = total.Add(l.PartReleases[i].Amount)
	}
	return total
}

// Close settles the loan: net = principal + pending interest - paydowns -
// closing charge, records the closure row and moves status to Closed (from
// where no mutation is allowed).
func (l *IssuedLoan) Close(pendingInterest, closingCharge decimal.Decimal, date time.Time, remark string, payment valueobject.PaymentDetail) (*LoanClose, error) {
	if l.IsClosed() {
		return nil, shared.ErrLoanClosed
	}
	next, err := Transition(l.Status, StatusClosed)
	if err != nil {
		return nil, err
	}

	net := l.LoanAmount.
		Add(pendingInterest).
		Sub(l.TotalPaidDown()).
		Sub(closingCharge)

	closure := &LoanClose{
		BaseEntity:    shared.NewBaseEntity(),
		LoanID:        l.ID,
		NetAmount:     net,
		ClosingCharge: closingCharge,
		Date:          date,
		Remark:        remark,
		PaymentDetail: payment,
	}
	l.Closure = closure
	l.Status = next
	return closure, nil
}

// ApplyStatus transitions the loan through the shared transition table.
// The overdue scanner is its only caller besides tests.
func (l *IssuedLoan) ApplyStatus(next LoanStatus) error {
	status, err := Transition(l.Status, next)
	if err != nil {
		return err
	}
	l.Status = status
	return nil
}
