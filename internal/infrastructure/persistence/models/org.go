package models

import (
	"github.com/goldfin/backend/internal/domain/org"
	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompanyModel is the persistence model for the Company tenant root.
type CompanyModel struct {
	AggregateModel
	Name         string           `gorm:"type:varchar(200);not null"`
	Email        string           `gorm:"type:varchar(200)"`
	Phone        string           `gorm:"type:varchar(50)"`
	Address      string           `gorm:"type:text"`
	LogoURL      string           `gorm:"type:text"`
	BankAccounts BankAccountsJSON `gorm:"type:jsonb"`
	DeletedAt    gorm.DeletedAt   `gorm:"index"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company entity.
func (m *CompanyModel) ToDomain() *org.Company {
	return &org.Company{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		Address:      m.Address,
		LogoURL:      m.LogoURL,
		BankAccounts: m.BankAccounts,
	}
}

// FromDomain populates the persistence model from a domain Company entity.
func (m *CompanyModel) FromDomain(c *org.Company) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.Address = c.Address
	m.LogoURL = c.LogoURL
	m.BankAccounts = c.BankAccounts
}

// CompanyModelFromDomain creates a new persistence model from a domain Company entity.
func CompanyModelFromDomain(c *org.Company) *CompanyModel {
	m := &CompanyModel{}
	m.FromDomain(c)
	return m
}

// BranchModel is the persistence model for the Branch domain entity.
type BranchModel struct {
	CompanyAggregateModel
	Name    string `gorm:"type:varchar(200);not null"`
	Code    string `gorm:"type:varchar(10);not null;index:idx_branch_company_code"`
	Address string `gorm:"type:text"`
	Phone   string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (BranchModel) TableName() string {
	return "branches"
}

// ToDomain converts the persistence model to a domain Branch entity.
func (m *BranchModel) ToDomain() *org.Branch {
	b := &org.Branch{
		Name:    m.Name,
		Code:    m.Code,
		Address: m.Address,
		Phone:   m.Phone,
	}
	m.PopulateCompanyAggregateRoot(&b.CompanyAggregateRoot)
	return b
}

// FromDomain populates the persistence model from a domain Branch entity.
func (m *BranchModel) FromDomain(b *org.Branch) {
	m.FromDomainCompanyAggregateRoot(b.CompanyAggregateRoot)
	m.Name = b.Name
	m.Code = b.Code
	m.Address = b.Address
	m.Phone = b.Phone
}

// BranchModelFromDomain creates a new persistence model from a domain Branch entity.
func BranchModelFromDomain(b *org.Branch) *BranchModel {
	m := &BranchModel{}
	m.FromDomain(b)
	return m
}

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	CompanyAggregateModel
	BranchID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Code          string    `gorm:"type:varchar(20);not null;index:idx_customer_company_code"`
	FirstName     string    `gorm:"type:varchar(100);not null"`
	LastName      string    `gorm:"type:varchar(100)"`
	Email         string    `gorm:"type:varchar(200)"`
	Phone         string    `gorm:"type:varchar(50);index"`
	Address       string    `gorm:"type:text"`
	City          string    `gorm:"type:varchar(100)"`
	State         string    `gorm:"type:varchar(100)"`
	Pincode       string    `gorm:"type:varchar(20)"`
	AadhaarNumber string    `gorm:"type:varchar(20)"`
	PANNumber     string    `gorm:"type:varchar(20)"`
	AvatarURL     string    `gorm:"type:text"`
	BankName      string    `gorm:"type:varchar(200)"`
	AccountNumber string    `gorm:"type:varchar(50)"`
	IFSCCode      string    `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *org.Customer {
	c := &org.Customer{
		BranchID:      m.BranchID,
		Code:          m.Code,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Email:         m.Email,
		Phone:         m.Phone,
		Address:       m.Address,
		City:          m.City,
		State:         m.State,
		Pincode:       m.Pincode,
		AadhaarNumber: m.AadhaarNumber,
		PANNumber:     m.PANNumber,
		AvatarURL:     m.AvatarURL,
		BankName:      m.BankName,
		AccountNumber: m.AccountNumber,
		IFSCCode:      m.IFSCCode,
	}
	m.PopulateCompanyAggregateRoot(&c.CompanyAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *org.Customer) {
	m.FromDomainCompanyAggregateRoot(c.CompanyAggregateRoot)
	m.BranchID = c.BranchID
	m.Code = c.Code
	m.FirstName = c.FirstName
	m.LastName = c.LastName
	m.Email = c.Email
	m.Phone = c.Phone
	m.Address = c.Address
	m.City = c.City
	m.State = c.State
	m.Pincode = c.Pincode
	m.AadhaarNumber = c.AadhaarNumber
	m.PANNumber = c.PANNumber
	m.AvatarURL = c.AvatarURL
	m.BankName = c.BankName
	m.AccountNumber = c.AccountNumber
	m.IFSCCode = c.IFSCCode
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *org.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// SchemeModel is the persistence model for the Scheme domain entity.
type SchemeModel struct {
	CompanyAggregateModel
	Name           string          `gorm:"type:varchar(200);not null"`
	InterestRate   decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	InterestPeriod int             `gorm:"not null;default:30"`
	Valuation      string          `gorm:"type:varchar(20);not null;default:'Weight'"`
	RatePerGram    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (SchemeModel) TableName() string {
	return "schemes"
}

// ToDomain converts the persistence model to a domain Scheme entity.
func (m *SchemeModel) ToDomain() *org.Scheme {
	s := &org.Scheme{
		Name:           m.Name,
		InterestRate:   m.InterestRate,
		InterestPeriod: m.InterestPeriod,
		Valuation:      org.ValuationMethod(m.Valuation),
		RatePerGram:    m.RatePerGram,
	}
	m.PopulateCompanyAggregateRoot(&s.CompanyAggregateRoot)
	return s
}

// FromDomain populates the persistence model from a domain Scheme entity.
func (m *SchemeModel) FromDomain(s *org.Scheme) {
	m.FromDomainCompanyAggregateRoot(s.CompanyAggregateRoot)
	m.Name = s.Name
	m.InterestRate = s.InterestRate
	m.InterestPeriod = s.InterestPeriod
	m.Valuation = string(s.Valuation)
	m.RatePerGram = s.RatePerGram
}

// SchemeModelFromDomain creates a new persistence model from a domain Scheme entity.
func SchemeModelFromDomain(s *org.Scheme) *SchemeModel {
	m := &SchemeModel{}
	m.FromDomain(s)
	return m
}

// PenaltyTierModel is the persistence model for the PenaltyTier domain entity.
type PenaltyTierModel struct {
	CompanyAggregateModel
	FromDay     int             `gorm:"not null"`
	ToDay       int             `gorm:"not null"`
	RatePercent decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (PenaltyTierModel) TableName() string {
	return "penalty_tiers"
}

// ToDomain converts the persistence model to a domain PenaltyTier entity.
func (m *PenaltyTierModel) ToDomain() *org.PenaltyTier {
	t := &org.PenaltyTier{
		FromDay:     m.FromDay,
		ToDay:       m.ToDay,
		RatePercent: m.RatePercent,
	}
	m.PopulateCompanyAggregateRoot(&t.CompanyAggregateRoot)
	return t
}

// FromDomain populates the persistence model from a domain PenaltyTier entity.
func (m *PenaltyTierModel) FromDomain(t *org.PenaltyTier) {
	m.FromDomainCompanyAggregateRoot(t.CompanyAggregateRoot)
	m.FromDay = t.FromDay
	m.ToDay = t.ToDay
	m.RatePercent = t.RatePercent
}

// PenaltyTierModelFromDomain creates a new persistence model from a domain PenaltyTier entity.
func PenaltyTierModelFromDomain(t *org.PenaltyTier) *PenaltyTierModel {
	m := &PenaltyTierModel{}
	m.FromDomain(t)
	return m
}
