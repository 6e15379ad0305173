// Package lending orchestrates the loan lifecycle: issuance with sequence
// numbering, interest posting, part payments, part releases and closure,
// plus the third-party refinance mirror.
package lending

import (
	"context"
	"time"

	"github.com/goldfin/backend/internal/domain/lending"
	"github.com/goldfin/backend/internal/domain/org"
	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/goldfin/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LoanService drives the issued-loan lifecycle
type LoanService struct {
	loanRepo     lending.LoanRepository
	customerRepo org.CustomerRepository
	schemeRepo   org.SchemeRepository
	penaltyRepo  org.PenaltyRepository
	notifier     Notifier
	logger       *zap.Logger
	now          func() time.Time
}

// NewLoanService creates a LoanService
func NewLoanService(
	loanRepo lending.LoanRepository,
	customerRepo org.CustomerRepository,
	schemeRepo org.SchemeRepository,
	penaltyRepo org.PenaltyRepository,
	notifier Notifier,
	logger *zap.Logger,
) *LoanService {
	return &LoanService{
		loanRepo:     loanRepo,
		customerRepo: customerRepo,
		schemeRepo:   schemeRepo,
		penaltyRepo:  penaltyRepo,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

// PaymentDetailRequest is the cash/bank split of a request
type PaymentDetailRequest struct {
	PaymentMode    string          `json:"payment_mode" binding:"required,oneof=Cash Bank Both"`
	CashAmount     decimal.Decimal `json:"cash_amount"`
	BankAmount     decimal.Decimal `json:"bank_amount"`
	BankName       string          `json:"bank_name"`
	BankHolderName string          `json:"bank_holder_name"`
	AccountNumber  string          `json:"account_number"`
}

func (r PaymentDetailRequest) toValueObject() valueobject.PaymentDetail {
	return valueobject.PaymentDetail{
		PaymentMode:    valueobject.PaymentMode(r.PaymentMode),
		CashAmount:     r.CashAmount,
		BankAmount:     r.BankAmount,
		BankName:       r.BankName,
		BankHolderName: r.BankHolderName,
		AccountNumber:  r.AccountNumber,
	}
}

// GoldItemRequest is one pledged ornament in an issue request
type GoldItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Carat       int             `json:"carat" binding:"required,min=1,max=24"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	GrossWeight decimal.Decimal `json:"gross_weight" binding:"required"`
	NetWeight   decimal.Decimal `json:"net_weight" binding:"required"`
}

// IssueLoanRequest is the issuance payload
type IssueLoanRequest struct {
	CustomerID         uuid.UUID            `json:"customer_id" binding:"required"`
	SchemeID           uuid.UUID            `json:"scheme_id" binding:"required"`
	LoanAmount         decimal.Decimal      `json:"loan_amount" binding:"required"`
	InterestLoanAmount decimal.Decimal      `json:"interest_loan_amount"`
	IssueDate          time.Time            `json:"issue_date" binding:"required"`
	Items              []GoldItemRequest    `json:"items" binding:"required,min=1,dive"`
	PaymentDetail      PaymentDetailRequest `json:"payment_detail" binding:"required"`
}

// InterestEntryResponse is one interest entry in API responses
type InterestEntryResponse struct {
	ID             uuid.UUID       `json:"id"`
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	Days           int             `json:"days"`
	InterestAmount decimal.Decimal `json:"interest_amount"`
	Penalty        decimal.Decimal `json:"penalty"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	CrDr           decimal.Decimal `json:"cr_dr"`
	IsUchak        bool            `json:"is_uchak"`
	CreatedAt      time.Time       `json:"created_at"`
}

// LoanResponse is a loan in API responses
type LoanResponse struct {
	ID                  uuid.UUID               `json:"id"`
	CompanyID           uuid.UUID               `json:"company_id"`
	CustomerID          uuid.UUID               `json:"customer_id"`
	SchemeID            uuid.UUID               `json:"scheme_id"`
	BranchID            uuid.UUID               `json:"branch_id"`
	LoanNumber          string                  `json:"loan_number"`
	TransactionNumber   string                  `json:"transaction_number"`
	LoanAmount          decimal.Decimal         `json:"loan_amount"`
	InterestLoanAmount  decimal.Decimal         `json:"interest_loan_amount"`
	IssueDate           time.Time               `json:"issue_date"`
	NextInstallmentDate time.Time               `json:"next_installment_date"`
	LastInstallmentDate time.Time               `json:"last_installment_date"`
	Status              string                  `json:"status"`
	Items               []lending.GoldItem      `json:"items"`
	Interests           []InterestEntryResponse `json:"interests,omitempty"`
	CreatedAt           time.Time               `json:"created_at"`
	Version             int                     `json:"version"`
}

// AccrualResponse reports the interest due on a loan as of a date
type AccrualResponse struct {
	LoanID          uuid.UUID       `json:"loan_id"`
	AsOf            time.Time       `json:"as_of"`
	Days            int             `json:"days"`
	InterestAmount  decimal.Decimal `json:"interest_amount"`
	PenaltyDays     int             `json:"penalty_days"`
	PenaltyAmount   decimal.Decimal `json:"penalty_amount"`
	PendingInterest decimal.Decimal `json:"pending_interest"`
}

func toLoanResponse(loan *lending.IssuedLoan) *LoanResponse {
	resp := &LoanResponse{
		ID:                  loan.ID,
		CompanyID:           loan.CompanyID,
		CustomerID:          loan.CustomerID,
		SchemeID:            loan.SchemeID,
		BranchID:            loan.BranchID,
		LoanNumber:          loan.LoanNumber,
		TransactionNumber:   loan.TransactionNumber,
		LoanAmount:          loan.LoanAmount,
		InterestLoanAmount:  loan.InterestLoanAmount,
		IssueDate:           loan.IssueDate,
		NextInstallmentDate: loan.NextInstallmentDate,
		LastInstallmentDate: loan.LastInstallmentDate,
		Status:              string(loan.Status),
		Items:               loan.Items,
		CreatedAt:           loan.CreatedAt,
		Version:             loan.Version,
	}
	for i := range loan.Interests {
		e := &loan.Interests[i]
		resp.Interests = append(resp.Interests, InterestEntryResponse{
			ID:             e.ID,
			From:           e.From,
			To:             e.To,
			Days:           e.Days,
			InterestAmount: e.InterestAmount,
			Penalty:        e.Penalty,
			AmountPaid:     e.AmountPaid,
			CrDr:           e.CrDr,
			IsUchak:        e.IsUchak,
			CreatedAt:      e.CreatedAt,
		})
	}
	return resp
}

// IssueLoan issues a new loan. The duplicate guard, number allocation and
// insert run in one transaction; two concurrent issuances can never mint
// the same loan number.
func (s *LoanService) IssueLoan(ctx context.Context, companyID uuid.UUID, req IssueLoanRequest) (*LoanResponse, error) {
	customer, err := s.customerRepo.FindByIDForCompany(ctx, companyID, req.CustomerID)
	if err != nil {
		return nil, err
	}
	scheme, err := s.schemeRepo.FindByIDForCompany(ctx, companyID, req.SchemeID)
	if err != nil {
		return nil, err
	}

	items := make([]lending.GoldItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, lending.GoldItem{
			Name:        it.Name,
			Carat:       it.Carat,
			Quantity:    it.Quantity,
			GrossWeight: it.GrossWeight,
			NetWeight:   it.NetWeight,
		})
	}

	loan, err := s.loanRepo.IssueAtomically(ctx, companyID, customer.ID, scheme.ID, req.IssueDate,
		func(loanNumber, transactionNumber string) (*lending.IssuedLoan, error) {
			return lending.NewIssuedLoan(
				companyID, customer.BranchID, customer.ID, scheme.ID,
				loanNumber, transactionNumber,
				req.LoanAmount, req.InterestLoanAmount,
				req.IssueDate, scheme.InterestPeriod,
				items, req.PaymentDetail.toValueObject(),
			)
		})
	if err != nil {
		return nil, err
	}

	s.notifier.LoanIssued(ctx, LoanNotice{
		CustomerName:  customer.FullName(),
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Phone,
		LoanNumber:    loan.LoanNumber,
		Amount:        loan.LoanAmount,
		Date:          loan.IssueDate,
	})

	s.logger.Info("loan issued",
		zap.String("loan_number", loan.LoanNumber),
		zap.String("company_id", companyID.String()),
		zap.String("customer_id", customer.ID.String()))

	return toLoanResponse(loan), nil
}

// GetLoan fetches one loan with its sub-ledgers
func (s *LoanService) GetLoan(ctx context.Context, companyID, loanID uuid.UUID) (*LoanResponse, error) {
	loan, err := s.loanRepo.FindByIDForCompany(ctx, companyID, loanID)
	if err != nil {
		return nil, err
	}
	return toLoanResponse(loan), nil
}

// ListLoans returns the company's loans, paginated
func (s *LoanService) ListLoans(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[LoanResponse], error) {
	loans, err := s.loanRepo.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.loanRepo.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]LoanResponse, 0, len(loans))
	for i := range loans {
		items = append(items, *toLoanResponse(&loans[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// DeleteLoans soft-deletes the given loans
func (s *LoanService) DeleteLoans(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) error {
	return s.loanRepo.SoftDeleteMany(ctx, companyID, ids)
}

// accrualInput assembles the calculator input for a loan
func (s *LoanService) accrualInput(ctx context.Context, loan *lending.IssuedLoan) (lending.AccrualInput, error) {
	in := lending.AccrualInput{
		Principal:           loan.InterestLoanAmount,
		IssueDate:           loan.IssueDate,
		NextInstallmentDate: loan.NextInstallmentDate,
		LastInstallmentDate: loan.LastInstallmentDate,
		CarryForward:        loan.CarryForward(),
		Closed:              loan.IsClosed(),
	}

	// A deleted or missing scheme accrues at zero rate rather than failing
	scheme, err := s.schemeRepo.FindByIDForCompany(ctx, loan.CompanyID, loan.SchemeID)
	if err == nil && scheme != nil {
		in.RatePercent = scheme.InterestRate
	} else {
		in.RatePercent = decimal.Zero
	}

	anchor := loan.IssueDate
	if last := loan.LastInterestEntry(); last != nil {
		to := last.To
		in.LastInterestTo = &to
		anchor = to
	}
	in.UchakPaidSince = loan.UchakPaidAfter(anchor)

	tiers, err := s.penaltyRepo.FindAllOrdered(ctx, loan.CompanyID)
	if err == nil {
		in.PenaltyTiers = tiers
	}
	return in, nil
}

// PendingInterest computes the interest due on a loan as of a date
func (s *LoanService) PendingInterest(ctx context.Context, companyID, loanID uuid.UUID, asOf time.Time) (*AccrualResponse, error) {
	loan, err := s.loanRepo.FindByIDForCompany(ctx, companyID, loanID)
	if err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		asOf = s.now()
	}
	in, err := s.accrualInput(ctx, loan)
	if err != nil {
		return nil, err
	}
	result := lending.ComputePendingInterest(in, asOf)
	return &AccrualResponse{
		LoanID:          loan.ID,
		AsOf:            asOf,
		Days:            result.Days,
		InterestAmount:  result.InterestAmount,
		PenaltyDays:     result.PenaltyDays,
		PenaltyAmount:   result.PenaltyAmount,
		PendingInterest: result.PendingInterest,
	}, nil
}

// PostInterestRequest posts a regular interest payment as of Date
type PostInterestRequest struct {
	Date          time.Time            `json:"date" binding:"required"`
	AmountPaid    decimal.Decimal      `json:"amount_paid" binding:"required"`
	PaymentDetail PaymentDetailRequest `json:"payment_detail" binding:"required"`
}

// PostInterest computes the accrual window since the last entry (or issue
// date), records the payment and advances the installment schedule.
func (s *LoanService) PostInterest(ctx context.Context, companyID, loanID uuid.UUID, req PostInterestRequest) (*LoanResponse, error) {
	loan, err := s.loanRepo.FindByIDForCompany(ctx, companyID, loanID)
	if err != nil {
		return nil, err
	}

	in, err := s.accrualInput(ctx, loan)
	if err != nil {
		return nil, err
	}
	accrual := lending.ComputePendingInterest(in, req.Date)

	from := loan.IssueDate
	if last := loan.LastInterestEntry(); last != nil {
		from = last.To
	}

	scheme, err := s.schemeRepo.FindByIDForCompany(ctx, companyID, loan.SchemeID)
	period := org.DefaultInterestPeriod
	if err == nil && scheme != nil {
		period = scheme.InterestPeriod
	}

	_, err = loan.PostInterest(
		from, req.Date, accrual.Days,
		accrual.InterestAmount, accrual.PenaltyAmount, req.AmountPaid,
		req.PaymentDetail.toValueObject(), period,
	)
	if err != nil {
		return nil, err
	}

	if err := s.loanRepo.SaveWithLock(ctx, loan); err != nil {
		return nil, err
	}
	return toLoanResponse(loan), nil
}

// PostUchakRequest posts an ad-hoc interest payment
type PostUchakRequest struct {
	Date          time.Time            `json:"date" binding:"required"`
	AmountPaid    decimal.Decimal      `json:"amount_paid" binding:"required"`
	PaymentDetail PaymentDetailRequest `json:"payment_detail" binding:"required"`
}

// PostUchakInterest records an out-of-cycle interest payment. The
// installment schedule does not move; the amount offsets the next accrual.
func (s *LoanService) PostUchakInterest(ctx context.Context, companyID, loanID uuid.UUID, req PostUchakRequest) (*LoanResponse, error) {
	loan, err := s.loanRepo.FindByIDForCompany(ctx, companyID, loanID)
	if err != nil {
		return nil, err
	}
	if _, err := loan.PostUchakInterest(req.Date, req.AmountPaid, req.PaymentDetail.toValueObject()); err != nil {
		return nil, err
	}
	if err := s.loanRepo.SaveWithLock(ctx, loan); err != nil {
		return nil, err
	}
	return toLoanResponse(loan), nil
}

// PartPaymentRequest pays down principal
type PartPaymentRequest struct {
	Date          time.Time            `json:"date" binding:"required"`
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	Remark        string               `json:"remark"`
	PaymentDetail PaymentDetailRequest `json:"payment_detail" binding:"required"`
}

// AddPartPayment appends a principal paydown row
func (s *LoanService) AddPartPayment(ctx context.Context, companyID, loanID uuid.UUID, req PartPaymentRequest) (*LoanResponse, error) {
	loan, err := s.loanRepo.FindByIDForCompany(ctx, companyID, loanID)
	if err != nil {
		return nil, err
	}
	if _, err := loan.AddPartPayment(req.Amount, req.Date, req.Remark, req.PaymentDetail.toValueObject()); err != nil {
		return nil, err
	}
	if err := s.loanRepo.SaveWithLock(ctx, loan); err != nil {
		return nil, err
	}
	return toLoanResponse(loan), nil
}

// PartReleaseRequest releases collateral against a paydown
type PartReleaseRequest struct {
	Date          time.Time            `json:"date" binding:"required"`
	Amount        decimal.Decimal      `json:"amount"`
	Items         []GoldItemRequest    `json:"items" binding:"required,min=1,dive"`
	Remark        string               `json:"remark"`
	PaymentDetail PaymentDetailRequest `json:"payment_detail" binding:"required"`
}

// AddPartRelease appends a collateral release row
func (s *LoanService) AddPartRelease(ctx context.Context, companyID, loanID uuid.UUID, req PartReleaseRequest) (*LoanResponse, error) {
	loan, err := s.loanRepo.FindByIDForCompany(ctx, companyID, loanID)
	if err != nil {
		return nil, err
	}
	items := make([]lending.GoldItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, lending.GoldItem{
			Name:        it.Name,
			Carat:       it.Carat,
			Quantity:    it.Quantity,
			GrossWeight: it.GrossWeight,
			NetWeight:   it.NetWeight,
		})
	}
	if _, err := loan.AddPartRelease(req.Amount, req.Date, items, req.Remark, req.PaymentDetail.toValueObject()); err != nil {
		return nil, err
	}
	if err := s.loanRepo.SaveWithLock(ctx, loan); err != nil {
		return nil, err
	}
	return toLoanResponse(loan), nil
}

// CloseLoanRequest settles a loan
type CloseLoanRequest struct {
	Date          time.Time            `json:"date" binding:"required"`
	ClosingCharge decimal.Decimal      `json:"closing_charge"`
	Remark        string               `json:"remark"`
	PaymentDetail PaymentDetailRequest `json:"payment_detail" binding:"required"`
}

// CloseLoan computes the final pending interest, records the closure and
// moves the loan to Closed. Reports treat pending interest as zero from
// here on.
func (s *LoanService) CloseLoan(ctx context.Context, companyID, loanID uuid.UUID, req CloseLoanRequest) (*LoanResponse, error) {
	loan, err := s.loanRepo.FindByIDForCompany(ctx, companyID, loanID)
	if err != nil {
		return nil, err
	}

	in, err := s.accrualInput(ctx, loan)
	if err != nil {
		return nil, err
	}
	accrual := lending.ComputePendingInterest(in, req.Date)

	closure, err := loan.Close(accrual.PendingInterest, req.ClosingCharge, req.Date, req.Remark, req.PaymentDetail.toValueObject())
	if err != nil {
		return nil, err
	}
	if err := s.loanRepo.SaveWithLock(ctx, loan); err != nil {
		return nil, err
	}

	customer, custErr := s.customerRepo.FindByIDForCompany(ctx, companyID, loan.CustomerID)
	if custErr == nil && customer != nil {
		s.notifier.LoanClosed(ctx, LoanNotice{
			CustomerName:  customer.FullName(),
			CustomerEmail: customer.Email,
			CustomerPhone: customer.Phone,
			LoanNumber:    loan.LoanNumber,
			Amount:        closure.NetAmount,
			Date:          closure.Date,
		})
	}

	s.logger.Info("loan closed",
		zap.String("loan_number", loan.LoanNumber),
		zap.String("net_amount", closure.NetAmount.String()))

	return toLoanResponse(loan), nil
}
