package models

import (
	"time"

	"github.com/goldfin/backend/internal/domain/books"
	"github.com/goldfin/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartyModel is the persistence model for the Party domain entity.
type PartyModel struct {
	CompanyAggregateModel
	Name    string `gorm:"type:varchar(200);not null"`
	Phone   string `gorm:"type:varchar(50)"`
	Address string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PartyModel) TableName() string {
	return "parties"
}

// ToDomain converts the persistence model to a domain Party entity.
func (m *PartyModel) ToDomain() *books.Party {
	p := &books.Party{
		Name:    m.Name,
		Phone:   m.Phone,
		Address: m.Address,
	}
	m.PopulateCompanyAggregateRoot(&p.CompanyAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Party entity.
func (m *PartyModel) FromDomain(p *books.Party) {
	m.FromDomainCompanyAggregateRoot(p.CompanyAggregateRoot)
	m.Name = p.Name
	m.Phone = p.Phone
	m.Address = p.Address
}

// PartyModelFromDomain creates a new persistence model from a domain Party entity.
func PartyModelFromDomain(p *books.Party) *PartyModel {
	m := &PartyModel{}
	m.FromDomain(p)
	return m
}

// ExpenseModel is the persistence model for the Expense domain entity.
type ExpenseModel struct {
	CompanyAggregateModel
	BranchID      *uuid.UUID        `gorm:"type:uuid;index"`
	Category      string            `gorm:"type:varchar(100)"`
	Description   string            `gorm:"type:text"`
	Amount        decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Date          time.Time         `gorm:"not null;index"`
	PaymentDetail PaymentDetailJSON `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *books.Expense {
	e := &books.Expense{
		BranchID:      m.BranchID,
		Category:      m.Category,
		Description:   m.Description,
		Amount:        m.Amount,
		Date:          m.Date,
		PaymentDetail: valueobject.PaymentDetail(m.PaymentDetail),
	}
	m.PopulateCompanyAggregateRoot(&e.CompanyAggregateRoot)
	return e
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *books.Expense) {
	m.FromDomainCompanyAggregateRoot(e.CompanyAggregateRoot)
	m.BranchID = e.BranchID
	m.Category = e.Category
	m.Description = e.Description
	m.Amount = e.Amount
	m.Date = e.Date
	m.PaymentDetail = PaymentDetailJSON(e.PaymentDetail)
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense entity.
func ExpenseModelFromDomain(e *books.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}

// OtherIncomeModel is the persistence model for the OtherIncome domain entity.
type OtherIncomeModel struct {
	CompanyAggregateModel
	BranchID      *uuid.UUID        `gorm:"type:uuid;index"`
	Source        string            `gorm:"type:varchar(100)"`
	Description   string            `gorm:"type:text"`
	Amount        decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Date          time.Time         `gorm:"not null;index"`
	PaymentDetail PaymentDetailJSON `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (OtherIncomeModel) TableName() string {
	return "other_incomes"
}

// ToDomain converts the persistence model to a domain OtherIncome entity.
func (m *OtherIncomeModel) ToDomain() *books.OtherIncome {
	e := &books.OtherIncome{
		BranchID:      m.BranchID,
		Source:        m.Source,
		Description:   m.Description,
		Amount:        m.Amount,
		Date:          m.Date,
		PaymentDetail: valueobject.PaymentDetail(m.PaymentDetail),
	}
	m.PopulateCompanyAggregateRoot(&e.CompanyAggregateRoot)
	return e
}

// FromDomain populates the persistence model from a domain OtherIncome entity.
func (m *OtherIncomeModel) FromDomain(e *books.OtherIncome) {
	m.FromDomainCompanyAggregateRoot(e.CompanyAggregateRoot)
	m.BranchID = e.BranchID
	m.Source = e.Source
	m.Description = e.Description
	m.Amount = e.Amount
	m.Date = e.Date
	m.PaymentDetail = PaymentDetailJSON(e.PaymentDetail)
}

// OtherIncomeModelFromDomain creates a new persistence model from a domain OtherIncome entity.
func OtherIncomeModelFromDomain(e *books.OtherIncome) *OtherIncomeModel {
	m := &OtherIncomeModel{}
	m.FromDomain(e)
	return m
}

// ChargeInOutModel is the persistence model for the ChargeInOut domain entity.
type ChargeInOutModel struct {
	CompanyAggregateModel
	BranchID      *uuid.UUID        `gorm:"type:uuid;index"`
	ChargeType    string            `gorm:"type:varchar(100)"`
	Category      string            `gorm:"type:varchar(20);not null"`
	Description   string            `gorm:"type:text"`
	Amount        decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Date          time.Time         `gorm:"not null;index"`
	PaymentDetail PaymentDetailJSON `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (ChargeInOutModel) TableName() string {
	return "charges_in_out"
}

// ToDomain converts the persistence model to a domain ChargeInOut entity.
func (m *ChargeInOutModel) ToDomain() *books.ChargeInOut {
	e := &books.ChargeInOut{
		BranchID:      m.BranchID,
		ChargeType:    m.ChargeType,
		Category:      books.EntryCategory(m.Category),
		Description:   m.Description,
		Amount:        m.Amount,
		Date:          m.Date,
		PaymentDetail: valueobject.PaymentDetail(m.PaymentDetail),
	}
	m.PopulateCompanyAggregateRoot(&e.CompanyAggregateRoot)
	return e
}

// FromDomain populates the persistence model from a domain ChargeInOut entity.
func (m *ChargeInOutModel) FromDomain(e *books.ChargeInOut) {
	m.FromDomainCompanyAggregateRoot(e.CompanyAggregateRoot)
	m.BranchID = e.BranchID
	m.ChargeType = e.ChargeType
	m.Category = string(e.Category)
	m.Description = e.Description
	m.Amount = e.Amount
	m.Date = e.Date
	m.PaymentDetail = PaymentDetailJSON(e.PaymentDetail)
}

// ChargeInOutModelFromDomain creates a new persistence model from a domain ChargeInOut entity.
func ChargeInOutModelFromDomain(e *books.ChargeInOut) *ChargeInOutModel {
	m := &ChargeInOutModel{}
	m.FromDomain(e)
	return m
}

// PaymentInOutModel is the persistence model for the PaymentInOut domain entity.
type PaymentInOutModel struct {
	CompanyAggregateModel
	BranchID      *uuid.UUID        `gorm:"type:uuid;index"`
	PartyID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	PartyName     string            `gorm:"type:varchar(200)"`
	Category      string            `gorm:"type:varchar(20);not null"`
	Description   string            `gorm:"type:text"`
	Amount        decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Date          time.Time         `gorm:"not null;index"`
	PaymentDetail PaymentDetailJSON `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (PaymentInOutModel) TableName() string {
	return "payments_in_out"
}

// ToDomain converts the persistence model to a domain PaymentInOut entity.
func (m *PaymentInOutModel) ToDomain() *books.PaymentInOut {
	e := &books.PaymentInOut{
		BranchID:      m.BranchID,
		PartyID:       m.PartyID,
		PartyName:     m.PartyName,
		Category:      books.EntryCategory(m.Category),
		Description:   m.Description,
		Amount:        m.Amount,
		Date:          m.Date,
		PaymentDetail: valueobject.PaymentDetail(m.PaymentDetail),
	}
	m.PopulateCompanyAggregateRoot(&e.CompanyAggregateRoot)
	return e
}

// FromDomain populates the persistence model from a domain PaymentInOut entity.
func (m *PaymentInOutModel) FromDomain(e *books.PaymentInOut) {
	m.FromDomainCompanyAggregateRoot(e.CompanyAggregateRoot)
	m.BranchID = e.BranchID
	m.PartyID = e.PartyID
	m.PartyName = e.PartyName
	m.Category = string(e.Category)
	m.Description = e.Description
	m.Amount = e.Amount
	m.Date = e.Date
	m.PaymentDetail = PaymentDetailJSON(e.PaymentDetail)
}

// PaymentInOutModelFromDomain creates a new persistence model from a domain PaymentInOut entity.
func PaymentInOutModelFromDomain(e *books.PaymentInOut) *PaymentInOutModel {
	m := &PaymentInOutModel{}
	m.FromDomain(e)
	return m
}

// TransferModel is the persistence model for the Transfer domain entity.
type TransferModel struct {
	CompanyAggregateModel
	TransferType  string            `gorm:"type:varchar(30);not null"`
	Amount        decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Date          time.Time         `gorm:"not null;index"`
	Description   string            `gorm:"type:text"`
	PaymentDetail PaymentDetailJSON `gorm:"type:jsonb"`

	ToBankName       string `gorm:"type:varchar(200)"`
	ToBankHolderName string `gorm:"type:varchar(200)"`
	ToAccountNumber  string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (TransferModel) TableName() string {
	return "transfers"
}

// ToDomain converts the persistence model to a domain Transfer entity.
func (m *TransferModel) ToDomain() *books.Transfer {
	t := &books.Transfer{
		TransferType:     books.TransferType(m.TransferType),
		Amount:           m.Amount,
		Date:             m.Date,
		Description:      m.Description,
		PaymentDetail:    valueobject.PaymentDetail(m.PaymentDetail),
		ToBankName:       m.ToBankName,
		ToBankHolderName: m.ToBankHolderName,
		ToAccountNumber:  m.ToAccountNumber,
	}
	m.PopulateCompanyAggregateRoot(&t.CompanyAggregateRoot)
	return t
}

// FromDomain populates the persistence model from a domain Transfer entity.
func (m *TransferModel) FromDomain(t *books.Transfer) {
	m.FromDomainCompanyAggregateRoot(t.CompanyAggregateRoot)
	m.TransferType = string(t.TransferType)
	m.Amount = t.Amount
	m.Date = t.Date
	m.Description = t.Description
	m.PaymentDetail = PaymentDetailJSON(t.PaymentDetail)
	m.ToBankName = t.ToBankName
	m.ToBankHolderName = t.ToBankHolderName
	m.ToAccountNumber = t.ToAccountNumber
}

// TransferModelFromDomain creates a new persistence model from a domain Transfer entity.
func TransferModelFromDomain(t *books.Transfer) *TransferModel {
	m := &TransferModel{}
	m.FromDomain(t)
	return m
}
