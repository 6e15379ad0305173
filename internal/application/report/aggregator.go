package report

import (
	"context"
	"time"

	"github.com/goldfin/backend/internal/domain/books"
	"github.com/goldfin/backend/internal/domain/lending"
	"github.com/goldfin/backend/internal/domain/org"
	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Aggregator assembles the unified transaction feed across every money
// source of a company. Sources are loaded company-wide and rows are
// derived in memory; the feed is a read model, nothing is written.
type Aggregator struct {
	companyRepo  org.CompanyRepository
	customerRepo org.CustomerRepository
	loanRepo     lending.LoanRepository
	otherRepo    lending.OtherLoanRepository
	expenseRepo  books.ExpenseRepository
	incomeRepo   books.OtherIncomeRepository
	chargeRepo   books.ChargeInOutRepository
	paymentRepo  books.PaymentInOutRepository
	transferRepo books.TransferRepository
	logger       *zap.Logger
}

func NewAggregator(
	companyRepo org.CompanyRepository,
	customerRepo org.CustomerRepository,
	loanRepo lending.LoanRepository,
	otherRepo lending.OtherLoanRepository,
	expenseRepo books.ExpenseRepository,
	incomeRepo books.OtherIncomeRepository,
	chargeRepo books.ChargeInOutRepository,
	paymentRepo books.PaymentInOutRepository,
	transferRepo books.TransferRepository,
	logger *zap.Logger,
) *Aggregator {
	return &Aggregator{
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
		otherRepo:    otherRepo,
		expenseRepo:  expenseRepo,
		incomeRepo:   incomeRepo,
		chargeRepo:   chargeRepo,
		paymentRepo:  paymentRepo,
		transferRepo: transferRepo,
		logger:       logger,
	}
}

// FeedRequest selects the view and optional date window of the feed
type FeedRequest struct {
	View View       `form:"view" binding:"omitempty,oneof=cash bank"`
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// FeedResponse is the assembled feed. BankBalances is populated for the
// bank view only and always covers all time, ignoring the date window.
type FeedResponse struct {
	View         View          `json:"view"`
	Transactions []Transaction `json:"transactions"`
	BankBalances []BankBalance `json:"bank_balances,omitempty"`
}

// load pulls every source of the company into one snapshot
func (a *Aggregator) load(ctx context.Context, companyID uuid.UUID) (*sourceData, error) {
	all := shared.Unpaged()

	loans, err := a.loanRepo.FindAllForCompany(ctx, companyID, all)
	if err != nil {
		return nil, err
	}
	otherLoans, err := a.otherRepo.FindAllForCompany(ctx, companyID, all)
	if err != nil {
		return nil, err
	}
	expenses, err := a.expenseRepo.FindAllForCompany(ctx, companyID, all)
	if err != nil {
		return nil, err
	}
	incomes, err := a.incomeRepo.FindAllForCompany(ctx, companyID, all)
	if err != nil {
		return nil, err
	}
	charges, err := a.chargeRepo.FindAllForCompany(ctx, companyID, all)
	if err != nil {
		return nil, err
	}
	payments, err := a.paymentRepo.FindAllForCompany(ctx, companyID, all)
	if err != nil {
		return nil, err
	}
	transfers, err := a.transferRepo.FindAllForCompany(ctx, companyID, all)
	if err != nil {
		return nil, err
	}
	customers, err := a.customerRepo.FindAllForCompany(ctx, companyID, all)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(customers))
	for i := range customers {
		names[customers[i].ID] = customers[i].FullName()
	}

	return &sourceData{
		CompanyID:     companyID,
		CustomerNames: names,
		Loans:         loans,
		OtherLoans:    otherLoans,
		Expenses:      expenses,
		Incomes:       incomes,
		Charges:       charges,
		Payments:      payments,
		Transfers:     transfers,
	}, nil
}

// Feed builds the unified feed for one company
func (a *Aggregator) Feed(ctx context.Context, companyID uuid.UUID, req FeedRequest) (*FeedResponse, error) {
	view := req.View
	if view == "" {
		view = CashView
	}

	data, err := a.load(ctx, companyID)
	if err != nil {
		a.logger.Error("failed to load transaction sources",
			zap.String("company_id", companyID.String()), zap.Error(err))
		return nil, err
	}

	resp := &FeedResponse{
		View:         view,
		Transactions: assembleFeed(data, view, req.From, req.To),
	}
	if view == BankView {
		company, err := a.companyRepo.FindByID(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if company != nil {
			resp.BankBalances = bankBalances(data, company.BankAccounts)
		}
	}
	return resp, nil
}
