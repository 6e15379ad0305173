// Package books holds the day-book ledger entries: expenses, incomes,
// charges, payments against parties and bank/cash transfers. These are the
// flat sources the transaction aggregator merges into the unified feed.
package books

import (
	"strings"
	"time"

	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/goldfin/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryCategory is the direction of a charge or payment entry
type EntryCategory string

const (
	CategoryPaymentIn  EntryCategory = "Payment In"
	CategoryPaymentOut EntryCategory = "Payment Out"
)

// Party is a counterparty of payment in/out entries
type Party struct {
	shared.CompanyAggregateRoot
	Name    string
	Phone   string
	Address string
}

// NewParty creates a counterparty
func NewParty(companyID uuid.UUID, name, phone, address string) (*Party, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Party name is required")
	}
	return &Party{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Phone:                phone,
		Address:              address,
	}, nil
}

// Expense is a money-out book entry
type Expense struct {
	shared.CompanyAggregateRoot
	BranchID      *uuid.UUID
	Category      string
	Description   string
	Amount        decimal.Decimal
	Date          time.Time
	PaymentDetail valueobject.PaymentDetail
}

// NewExpense records an expense
func NewExpense(companyID uuid.UUID, branchID *uuid.UUID, category, description string, amount decimal.Decimal, entryDate time.Time, payment valueobject.PaymentDetail) (*Expense, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Expense amount must be positive")
	}
	return &Expense{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		BranchID:             branchID,
		Category:             category,
		Description:          description,
		Amount:               amount,
		Date:                 entryDate,
		PaymentDetail:        payment,
	}, nil
}

// OtherIncome is a money-in book entry outside the loan ledger
type OtherIncome struct {
	shared.CompanyAggregateRoot
	BranchID      *uuid.UUID
	Source        string
	Description   string
	Amount        decimal.Decimal
	Date          time.Time
	PaymentDetail valueobject.PaymentDetail
}

// NewOtherIncome records an income entry
func NewOtherIncome(companyID uuid.UUID, branchID *uuid.UUID, source, description string, amount decimal.Decimal, entryDate time.Time, payment valueobject.PaymentDetail) (*OtherIncome, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Income amount must be positive")
	}
	return &OtherIncome{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		BranchID:             branchID,
		Source:               source,
		Description:          description,
		Amount:               amount,
		Date:                 entryDate,
		PaymentDetail:        payment,
	}, nil
}

// ChargeInOut is a directional service-charge entry
type ChargeInOut struct {
	shared.CompanyAggregateRoot
	BranchID      *uuid.UUID
	ChargeType    string
	Category      EntryCategory
	Description   string
	Amount        decimal.Decimal
	Date          time.Time
	PaymentDetail valueobject.PaymentDetail
}

// NewChargeInOut records a charge entry
func NewChargeInOut(companyID uuid.UUID, branchID *uuid.UUID, chargeType string, category EntryCategory, description string, amount decimal.Decimal, entryDate time.Time, payment valueobject.PaymentDetail) (*ChargeInOut, error) {
	if category != CategoryPaymentIn && category != CategoryPaymentOut {
		return nil, shared.NewDomainError("INVALID_INPUT", "Charge category must be Payment In or Payment Out")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Charge amount must be positive")
	}
	return &ChargeInOut{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		BranchID:             branchID,
		ChargeType:           chargeType,
		Category:             category,
		Description:          description,
		Amount:               amount,
		Date:                 entryDate,
		PaymentDetail:        payment,
	}, nil
}

// PaymentInOut is a directional payment against a party
type PaymentInOut struct {
	shared.CompanyAggregateRoot
	BranchID      *uuid.UUID
	PartyID       uuid.UUID
	PartyName     string
	Category      EntryCategory
	Description   string
	Amount        decimal.Decimal
	Date          time.Time
	PaymentDetail valueobject.PaymentDetail
}

// NewPaymentInOut records a payment against a party
func NewPaymentInOut(companyID uuid.UUID, branchID *uuid.UUID, partyID uuid.UUID, partyName string, category EntryCategory, description string, amount decimal.Decimal, entryDate time.Time, payment valueobject.PaymentDetail) (*PaymentInOut, error) {
	if partyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment party is required")
	}
	if category != CategoryPaymentIn && category != CategoryPaymentOut {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment category must be Payment In or Payment Out")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment amount must be positive")
	}
	return &PaymentInOut{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		BranchID:             branchID,
		PartyID:              partyID,
		PartyName:            partyName,
		Category:             category,
		Description:          description,
		Amount:               amount,
		Date:                 entryDate,
		PaymentDetail:        payment,
	}, nil
}
