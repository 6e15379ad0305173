package lending

import (
	"context"
	"time"

	"github.com/goldfin/backend/internal/domain/lending"
	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OtherLoanService drives the third-party refinance ledger
type OtherLoanService struct {
	otherRepo lending.OtherLoanRepository
	loanRepo  lending.LoanRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewOtherLoanService creates an OtherLoanService
func NewOtherLoanService(otherRepo lending.OtherLoanRepository, loanRepo lending.LoanRepository, logger *zap.Logger) *OtherLoanService {
	return &OtherLoanService{
		otherRepo: otherRepo,
		loanRepo:  loanRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// OtherLoanResponse is a third-party loan in API responses
type OtherLoanResponse struct {
	ID          uuid.UUID       `json:"id"`
	CompanyID   uuid.UUID       `json:"company_id"`
	LoanID      uuid.UUID       `json:"loan_id"`
	OtherNumber string          `json:"other_number"`
	LenderName  string          `json:"lender_name"`
	Amount      decimal.Decimal `json:"amount"`
	Percentage  decimal.Decimal `json:"percentage"`
	IssueDate   time.Time       `json:"issue_date"`
	RenewalDate time.Time       `json:"renewal_date"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	Version     int             `json:"version"`
}

func toOtherLoanResponse(loan *lending.OtherIssuedLoan) *OtherLoanResponse {
	return &OtherLoanResponse{
		ID:          loan.ID,
		CompanyID:   loan.CompanyID,
		LoanID:      loan.LoanID,
		OtherNumber: loan.OtherNumber,
		LenderName:  loan.LenderName,
		Amount:      loan.Amount,
		Percentage:  loan.Percentage,
		IssueDate:   loan.IssueDate,
		RenewalDate: loan.RenewalDate,
		Status:      string(loan.Status),
		CreatedAt:   loan.CreatedAt,
		Version:     loan.Version,
	}
}

// IssueOtherLoanRequest takes a refinance against an issued loan's collateral
type IssueOtherLoanRequest struct {
	LoanID        uuid.UUID            `json:"loan_id" binding:"required"`
	LenderName    string               `json:"lender_name" binding:"required"`
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	Percentage    decimal.Decimal      `json:"percentage" binding:"required"`
	IssueDate     time.Time            `json:"issue_date" binding:"required"`
	RenewalDate   time.Time            `json:"renewal_date" binding:"required"`
	PaymentDetail PaymentDetailRequest `json:"payment_detail" binding:"required"`
}

// IssueOtherLoan records a refinance taken from a third party. The number
// shares the EGF/<FY> shape but runs on its own sequence.
func (s *OtherLoanService) IssueOtherLoan(ctx context.Context, companyID uuid.UUID, req IssueOtherLoanRequest) (*OtherLoanResponse, error) {
	backing, err := s.loanRepo.FindByIDForCompany(ctx, companyID, req.LoanID)
	if err != nil {
		return nil, err
	}

	loan, err := s.otherRepo.IssueAtomically(ctx, companyID, req.IssueDate,
		func(otherNumber string) (*lending.OtherIssuedLoan, error) {
			return lending.NewOtherIssuedLoan(
				companyID, backing.ID,
				otherNumber, req.LenderName,
				req.Amount, req.Percentage,
				req.IssueDate, req.RenewalDate,
				req.PaymentDetail.toValueObject(),
			)
		})
	if err != nil {
		return nil, err
	}

	s.logger.Info("other loan issued",
		zap.String("other_number", loan.OtherNumber),
		zap.String("backing_loan", backing.LoanNumber))

	return toOtherLoanResponse(loan), nil
}

// GetOtherLoan fetches one third-party loan
func (s *OtherLoanService) GetOtherLoan(ctx context.Context, companyID, id uuid.UUID) (*OtherLoanResponse, error) {
	loan, err := s.otherRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toOtherLoanResponse(loan), nil
}

// ListOtherLoans returns the company's third-party loans, paginated
func (s *OtherLoanService) ListOtherLoans(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*shared.Paginated[OtherLoanResponse], error) {
	loans, err := s.otherRepo.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.otherRepo.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]OtherLoanResponse, 0, len(loans))
	for i := range loans {
		items = append(items, *toOtherLoanResponse(&loans[i]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// DeleteOtherLoans soft-deletes the given loans
func (s *OtherLoanService) DeleteOtherLoans(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) error {
	return s.otherRepo.SoftDeleteMany(ctx, companyID, ids)
}

// PostOtherInterestRequest pays interest to the third party
type PostOtherInterestRequest struct {
	Date          time.Time            `json:"date" binding:"required"`
	AmountPaid    decimal.Decimal      `json:"amount_paid" binding:"required"`
	PaymentDetail PaymentDetailRequest `json:"payment_detail" binding:"required"`
}

// PostInterest records an interest payment on a third-party loan. The due
// amount uses the same accrual convention as the primary ledger, against
// the lender's percentage.
func (s *OtherLoanService) PostInterest(ctx context.Context, companyID, id uuid.UUID, req PostOtherInterestRequest) (*OtherLoanResponse, error) {
	loan, err := s.otherRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	in := lending.AccrualInput{
		Principal:           loan.Amount,
		RatePercent:         loan.Percentage,
		IssueDate:           loan.IssueDate,
		NextInstallmentDate: loan.RenewalDate,
		LastInstallmentDate: loan.RenewalDate,
		UchakPaidSince:      decimal.Zero,
		CarryForward:        decimal.Zero,
		Closed:              loan.IsClosed(),
	}
	from := loan.IssueDate
	if last := loan.LastInterestEntry(); last != nil {
		to := last.To
		in.LastInterestTo = &to
		from = to
	}
	accrual := lending.ComputePendingInterest(in, req.Date)

	if _, err := loan.PostInterest(from, req.Date, accrual.Days, accrual.InterestAmount, req.AmountPaid, req.PaymentDetail.toValueObject()); err != nil {
		return nil, err
	}
	if err := s.otherRepo.SaveWithLock(ctx, loan); err != nil {
		return nil, err
	}
	return toOtherLoanResponse(loan), nil
}

// RenewOtherLoanRequest pushes the renewal date forward
type RenewOtherLoanRequest struct {
	RenewalDate time.Time `json:"renewal_date" binding:"required"`
}

// Renew extends a third-party loan, restoring Issued status when overdue
func (s *OtherLoanService) Renew(ctx context.Context, companyID, id uuid.UUID, req RenewOtherLoanRequest) (*OtherLoanResponse, error) {
	loan, err := s.otherRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := loan.Renew(req.RenewalDate); err != nil {
		return nil, err
	}
	if err := s.otherRepo.SaveWithLock(ctx, loan); err != nil {
		return nil, err
	}
	return toOtherLoanResponse(loan), nil
}

// CloseOtherLoanRequest settles a third-party loan
type CloseOtherLoanRequest struct {
	Date          time.Time            `json:"date" binding:"required"`
	NetAmount     decimal.Decimal      `json:"net_amount" binding:"required"`
	Remark        string               `json:"remark"`
	PaymentDetail PaymentDetailRequest `json:"payment_detail" binding:"required"`
}

// Close settles a third-party loan
func (s *OtherLoanService) Close(ctx context.Context, companyID, id uuid.UUID, req CloseOtherLoanRequest) (*OtherLoanResponse, error) {
	loan, err := s.otherRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if _, err := loan.Close(req.NetAmount, req.Date, req.Remark, req.PaymentDetail.toValueObject()); err != nil {
		return nil, err
	}
	if err := s.otherRepo.SaveWithLock(ctx, loan); err != nil {
		return nil, err
	}

	s.logger.Info("other loan closed", zap.String("other_number", loan.OtherNumber))
	return toOtherLoanResponse(loan), nil
}
