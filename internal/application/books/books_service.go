// Package books holds the application services for the day-book entries:
// expenses, other incomes, charges, party payments and transfers.
package books

import (
	"context"
	"time"

	"github.com/goldfin/backend/internal/domain/books"
	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/goldfin/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentDetailRequest is the cash/bank split of a book entry
type PaymentDetailRequest struct {
	PaymentMode    string          `json:"payment_mode" binding:"required,oneof=Cash Bank Both"`
	CashAmount     decimal.Decimal `json:"cash_amount"`
	BankAmount     decimal.Decimal `json:"bank_amount"`
	BankName       string          `json:"bank_name"`
	BankHolderName string          `json:"bank_holder_name"`
	AccountNumber  string          `json:"account_number"`
	AdjustmentType string          `json:"adjustment_type" binding:"omitempty,oneof=Add Deduct"`
}

func (r PaymentDetailRequest) toValueObject() valueobject.PaymentDetail {
	return valueobject.PaymentDetail{
		PaymentMode:    valueobject.PaymentMode(r.PaymentMode),
		CashAmount:     r.CashAmount,
		BankAmount:     r.BankAmount,
		BankName:       r.BankName,
		BankHolderName: r.BankHolderName,
		AccountNumber:  r.AccountNumber,
		AdjustmentType: valueobject.AdjustmentType(r.AdjustmentType),
	}
}

// Service provides the book-entry CRUD operations
type Service struct {
	partyRepo    books.PartyRepository
	expenseRepo  books.ExpenseRepository
	incomeRepo   books.OtherIncomeRepository
	chargeRepo   books.ChargeInOutRepository
	paymentRepo  books.PaymentInOutRepository
	transferRepo books.TransferRepository
	logger       *zap.Logger
}

func NewService(
	partyRepo books.PartyRepository,
	expenseRepo books.ExpenseRepository,
	incomeRepo books.OtherIncomeRepository,
	chargeRepo books.ChargeInOutRepository,
	paymentRepo books.PaymentInOutRepository,
	transferRepo books.TransferRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		partyRepo:    partyRepo,
		expenseRepo:  expenseRepo,
		incomeRepo:   incomeRepo,
		chargeRepo:   chargeRepo,
		paymentRepo:  paymentRepo,
		transferRepo: transferRepo,
		logger:       logger,
	}
}

// ===================== Parties =====================

type PartyRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type PartyResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Phone   string    `json:"phone,omitempty"`
	Address string    `json:"address,omitempty"`
}

func (s *Service) CreateParty(ctx context.Context, companyID uuid.UUID, req PartyRequest) (*PartyResponse, error) {
	party, err := books.NewParty(companyID, req.Name, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.partyRepo.Save(ctx, party); err != nil {
		return nil, err
	}
	return &PartyResponse{ID: party.ID, Name: party.Name, Phone: party.Phone, Address: party.Address}, nil
}

func (s *Service) ListParties(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]PartyResponse, error) {
	parties, err := s.partyRepo.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]PartyResponse, 0, len(parties))
	for i := range parties {
		p := &parties[i]
		out = append(out, PartyResponse{ID: p.ID, Name: p.Name, Phone: p.Phone, Address: p.Address})
	}
	return out, nil
}

func (s *Service) DeleteParties(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return shared.ErrInvalidInput
	}
	return s.partyRepo.SoftDeleteMany(ctx, companyID, ids)
}

// ===================== Expenses =====================

type EntryRequest struct {
	BranchID      *uuid.UUID           `json:"branch_id"`
	Category      string               `json:"category" binding:"required"`
	Description   string               `json:"description"`
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	Date          time.Time            `json:"date" binding:"required" time_format:"2006-01-02"`
	PaymentDetail PaymentDetailRequest `json:"payment_detail" binding:"required"`
}

type EntryResponse struct {
	ID          uuid.UUID       `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
}

func (s *Service) CreateExpense(ctx context.Context, companyID uuid.UUID, req EntryRequest) (*EntryResponse, error) {
	expense, err := books.NewExpense(companyID, req.BranchID, req.Category, req.Description, req.Amount, req.Date, req.PaymentDetail.toValueObject())
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	s.logger.Info("expense recorded",
		zap.String("company_id", companyID.String()),
		zap.String("category", expense.Category),
		zap.String("amount", expense.Amount.String()))
	return &EntryResponse{ID: expense.ID, Category: expense.Category, Description: expense.Description, Amount: expense.Amount, Date: expense.Date}, nil
}

func (s *Service) ListExpenses(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]EntryResponse, error) {
	expenses, err := s.expenseRepo.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]EntryResponse, 0, len(expenses))
	for i := range expenses {
		e := &expenses[i]
		out = append(out, EntryResponse{ID: e.ID, Category: e.Category, Description: e.Description, Amount: e.Amount, Date: e.Date})
	}
	return out, nil
}

func (s *Service) DeleteExpenses(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return shared.ErrInvalidInput
	}
	return s.expenseRepo.SoftDeleteMany(ctx, companyID, ids)
}

// ===================== Other Incomes =====================

func (s *Service) CreateOtherIncome(ctx context.Context, companyID uuid.UUID, req EntryRequest) (*EntryResponse, error) {
	income, err := books.NewOtherIncome(companyID, req.BranchID, req.Category, req.Description, req.Amount, req.Date, req.PaymentDetail.toValueObject())
	if err != nil {
		return nil, err
	}
	if err := s.incomeRepo.Save(ctx, income); err != nil {
		return nil, err
	}
	return &EntryResponse{ID: income.ID, Category: income.Source, Description: income.Description, Amount: income.Amount, Date: income.Date}, nil
}

func (s *Service) ListOtherIncomes(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]EntryResponse, error) {
	incomes, err := s.incomeRepo.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]EntryResponse, 0, len(incomes))
	for i := range incomes {
		e := &incomes[i]
		out = append(out, EntryResponse{ID: e.ID, Category: e.Source, Description: e.Description, Amount: e.Amount, Date: e.Date})
	}
	return out, nil
}

func (s *Service) DeleteOtherIncomes(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return shared.ErrInvalidInput
	}
	return s.incomeRepo.SoftDeleteMany(ctx, companyID, ids)
}

// ===================== Charges =====================

type ChargeRequest struct {
	BranchID      *uuid.UUID           `json:"branch_id"`
	ChargeType    string               `json:"charge_type" binding:"required"`
	Category      string               `json:"category" binding:"required,oneof='Payment In' 'Payment Out'"`
	Description   string               `json:"description"`
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	Date          time.Time            `json:"date" binding:"required" time_format:"2006-01-02"`
	PaymentDetail PaymentDetailRequest `json:"payment_detail" binding:"required"`
}

type ChargeResponse struct {
	ID         uuid.UUID       `json:"id"`
	ChargeType string          `json:"charge_type"`
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
}

func (s *Service) CreateCharge(ctx context.Context, companyID uuid.UUID, req ChargeRequest) (*ChargeResponse, error) {
	charge, err := books.NewChargeInOut(companyID, req.BranchID, req.ChargeType, books.EntryCategory(req.Category), req.Description, req.Amount, req.Date, req.PaymentDetail.toValueObject())
	if err != nil {
		return nil, err
	}
	if err := s.chargeRepo.Save(ctx, charge); err != nil {
		return nil, err
	}
	return &ChargeResponse{ID: charge.ID, ChargeType: charge.ChargeType, Category: string(charge.Category), Amount: charge.Amount, Date: charge.Date}, nil
}

func (s *Service) ListCharges(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]ChargeResponse, error) {
	charges, err := s.chargeRepo.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]ChargeResponse, 0, len(charges))
	for i := range charges {
		e := &charges[i]
		out = append(out, ChargeResponse{ID: e.ID, ChargeType: e.ChargeType, Category: string(e.Category), Amount: e.Amount, Date: e.Date})
	}
	return out, nil
}

func (s *Service) DeleteCharges(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return shared.ErrInvalidInput
	}
	return s.chargeRepo.SoftDeleteMany(ctx, companyID, ids)
}

// ===================== Party Payments =====================

type PaymentRequest struct {
	BranchID      *uuid.UUID           `json:"branch_id"`
	PartyID       uuid.UUID            `json:"party_id" binding:"required"`
	Category      string               `json:"category" binding:"required,oneof='Payment In' 'Payment Out'"`
	Description   string               `json:"description"`
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	Date          time.Time            `json:"date" binding:"required" time_format:"2006-01-02"`
	PaymentDetail PaymentDetailRequest `json:"payment_detail" binding:"required"`
}

type PaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	PartyID   uuid.UUID       `json:"party_id"`
	PartyName string          `json:"party_name"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
}

// CreatePayment records a payment against a registered party. The party
// name is denormalized onto the entry so the feed survives party edits.
func (s *Service) CreatePayment(ctx context.Context, companyID uuid.UUID, req PaymentRequest) (*PaymentResponse, error) {
	party, err := s.partyRepo.FindByIDForCompany(ctx, companyID, req.PartyID)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, shared.ErrNotFound
	}

	payment, err := books.NewPaymentInOut(companyID, req.BranchID, party.ID, party.Name, books.EntryCategory(req.Category), req.Description, req.Amount, req.Date, req.PaymentDetail.toValueObject())
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	return &PaymentResponse{ID: payment.ID, PartyID: payment.PartyID, PartyName: payment.PartyName, Category: string(payment.Category), Amount: payment.Amount, Date: payment.Date}, nil
}

func (s *Service) ListPayments(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		e := &payments[i]
		out = append(out, PaymentResponse{ID: e.ID, PartyID: e.PartyID, PartyName: e.PartyName, Category: string(e.Category), Amount: e.Amount, Date: e.Date})
	}
	return out, nil
}

func (s *Service) DeletePayments(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return shared.ErrInvalidInput
	}
	return s.paymentRepo.SoftDeleteMany(ctx, companyID, ids)
}

// ===================== Transfers =====================

type TransferRequest struct {
	TransferType     string               `json:"transfer_type" binding:"required"`
	Amount           decimal.Decimal      `json:"amount" binding:"required"`
	Date             time.Time            `json:"date" binding:"required" time_format:"2006-01-02"`
	Description      string               `json:"description"`
	PaymentDetail    PaymentDetailRequest `json:"payment_detail" binding:"required"`
	ToBankName       string               `json:"to_bank_name"`
	ToBankHolderName string               `json:"to_bank_holder_name"`
	ToAccountNumber  string               `json:"to_account_number"`
}

type TransferResponse struct {
	ID           uuid.UUID       `json:"id"`
	TransferType string          `json:"transfer_type"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
}

func (s *Service) CreateTransfer(ctx context.Context, companyID uuid.UUID, req TransferRequest) (*TransferResponse, error) {
	transfer, err := books.NewTransfer(companyID, books.TransferType(req.TransferType), req.Amount, req.Date, req.Description, req.PaymentDetail.toValueObject())
	if err != nil {
		return nil, err
	}
	if books.TransferType(req.TransferType) == books.TransferBankToBank {
		if err := transfer.SetDestinationBank(req.ToBankName, req.ToBankHolderName, req.ToAccountNumber); err != nil {
			return nil, err
		}
	}
	if err := s.transferRepo.Save(ctx, transfer); err != nil {
		return nil, err
	}
	s.logger.Info("transfer recorded",
		zap.String("company_id", companyID.String()),
		zap.String("transfer_type", string(transfer.TransferType)),
		zap.String("amount", transfer.Amount.String()))
	return &TransferResponse{ID: transfer.ID, TransferType: string(transfer.TransferType), Amount: transfer.Amount, Date: transfer.Date}, nil
}

func (s *Service) ListTransfers(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]TransferResponse, error) {
	transfers, err := s.transferRepo.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]TransferResponse, 0, len(transfers))
	for i := range transfers {
		e := &transfers[i]
		out = append(out, TransferResponse{ID: e.ID, TransferType: string(e.TransferType), Amount: e.Amount, Date: e.Date})
	}
	return out, nil
}

func (s *Service) DeleteTransfers(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return shared.ErrInvalidInput
	}
	return s.transferRepo.SoftDeleteMany(ctx, companyID, ids)
}
