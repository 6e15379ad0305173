package models

import (
	"time"

	"github.com/goldfin/backend/internal/domain/lending"
	"github.com/goldfin/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IssuedLoanModel is the persistence model for the IssuedLoan aggregate.
// Sub-ledger rows live in their own tables and are preloaded with the loan;
// they are immutable once written, so saves only ever append.
type IssuedLoanModel struct {
	CompanyAggregateModel
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	SchemeID   uuid.UUID `gorm:"type:uuid;not null;index"`
	BranchID   uuid.UUID `gorm:"type:uuid;index"`

	LoanNumber        string `gorm:"type:varchar(30);not null;index:idx_loan_company_number"`
	TransactionNumber string `gorm:"type:varchar(30);not null"`

	LoanAmount         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	InterestLoanAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`

	IssueDate           time.Time `gorm:"not null;index"`
	NextInstallmentDate time.Time `gorm:"not null"`
	LastInstallmentDate time.Time `gorm:"not null"`
	Status              string    `gorm:"type:varchar(30);not null;index"`

	Items         GoldItemsJSON     `gorm:"type:jsonb"`
	PaymentDetail PaymentDetailJSON `gorm:"type:jsonb"`

	Interests    []LoanInterestModel    `gorm:"foreignKey:LoanID;references:ID"`
	PartPayments []LoanPartPaymentModel `gorm:"foreignKey:LoanID;references:ID"`
	PartReleases []LoanPartReleaseModel `gorm:"foreignKey:LoanID;references:ID"`
	Closure      *LoanCloseModel        `gorm:"foreignKey:LoanID;references:ID"`
}

// TableName returns the table name for GORM
func (IssuedLoanModel) TableName() string {
	return "issued_loans"
}

// LoanInterestModel is one posted interest entry on an issued loan.
type LoanInterestModel struct {
	BaseModel
	LoanID         uuid.UUID         `gorm:"type:uuid;not null;index"`
	FromDate       time.Time         `gorm:"not null"`
	ToDate         time.Time         `gorm:"not null"`
	Days           int               `gorm:"not null;default:0"`
	InterestAmount decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Penalty        decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	AmountPaid     decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	CrDr           decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	IsUchak        bool              `gorm:"not null;default:false"`
	PaymentDetail  PaymentDetailJSON `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (LoanInterestModel) TableName() string {
	return "loan_interests"
}

// ToDomain converts the persistence model to a domain Interest entry.
func (m *LoanInterestModel) ToDomain() lending.Interest {
	return lending.Interest{
		BaseEntity:     m.BaseModel.ToDomain(),
		LoanID:         m.LoanID,
		From:           m.FromDate,
		To:             m.ToDate,
		Days:           m.Days,
		InterestAmount: m.InterestAmount,
		Penalty:        m.Penalty,
		AmountPaid:     m.AmountPaid,
		CrDr:           m.CrDr,
		IsUchak:        m.IsUchak,
		PaymentDetail:  valueobject.PaymentDetail(m.PaymentDetail),
	}
}

// FromDomain populates the persistence model from a domain Interest entry.
func (m *LoanInterestModel) FromDomain(e *lending.Interest) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.LoanID = e.LoanID
	m.FromDate = e.From
	m.ToDate = e.To
	m.Days = e.Days
	m.InterestAmount = e.InterestAmount
	m.Penalty = e.Penalty
	m.AmountPaid = e.AmountPaid
	m.CrDr = e.CrDr
	m.IsUchak = e.IsUchak
	m.PaymentDetail = PaymentDetailJSON(e.PaymentDetail)
}

// LoanPartPaymentModel is one principal paydown row on an issued loan.
type LoanPartPaymentModel struct {
	BaseModel
	LoanID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Date          time.Time         `gorm:"not null"`
	Remark        string            `gorm:"type:text"`
	PaymentDetail PaymentDetailJSON `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (LoanPartPaymentModel) TableName() string {
	return "loan_part_payments"
}

// ToDomain converts the persistence model to a domain PartPayment row.
func (m *LoanPartPaymentModel) ToDomain() lending.PartPayment {
	return lending.PartPayment{
		BaseEntity:    m.BaseModel.ToDomain(),
		LoanID:        m.LoanID,
		Amount:        m.Amount,
		Date:          m.Date,
		Remark:        m.Remark,
		PaymentDetail: valueobject.PaymentDetail(m.PaymentDetail),
	}
}

// FromDomain populates the persistence model from a domain PartPayment row.
func (m *LoanPartPaymentModel) FromDomain(p *lending.PartPayment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.LoanID = p.LoanID
	m.Amount = p.Amount
	m.Date = p.Date
	m.Remark = p.Remark
	m.PaymentDetail = PaymentDetailJSON(p.PaymentDetail)
}

// LoanPartReleaseModel is one collateral release row on an issued loan.
type LoanPartReleaseModel struct {
	BaseModel
	LoanID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Date          time.Time         `gorm:"not null"`
	Items         GoldItemsJSON     `gorm:"type:jsonb"`
	Remark        string            `gorm:"type:text"`
	PaymentDetail PaymentDetailJSON `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (LoanPartReleaseModel) TableName() string {
	return "loan_part_releases"
}

// ToDomain converts the persistence model to a domain PartRelease row.
func (m *LoanPartReleaseModel) ToDomain() lending.PartRelease {
	return lending.PartRelease{
		BaseEntity:    m.BaseModel.ToDomain(),
		LoanID:        m.LoanID,
		Amount:        m.Amount,
		Date:          m.Date,
		Items:         m.Items,
		Remark:        m.Remark,
		PaymentDetail: valueobject.PaymentDetail(m.PaymentDetail),
	}
}

// FromDomain populates the persistence model from a domain PartRelease row.
func (m *LoanPartReleaseModel) FromDomain(p *lending.PartRelease) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.LoanID = p.LoanID
	m.Amount = p.Amount
	m.Date = p.Date
	m.Items = p.Items
	m.Remark = p.Remark
	m.PaymentDetail = PaymentDetailJSON(p.PaymentDetail)
}

// LoanCloseModel is the terminal closure row of an issued loan.
type LoanCloseModel struct {
	BaseModel
	LoanID        uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex"`
	NetAmount     decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	ClosingCharge decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Date          time.Time         `gorm:"not null"`
	Remark        string            `gorm:"type:text"`
	PaymentDetail PaymentDetailJSON `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (LoanCloseModel) TableName() string {
	return "loan_closures"
}

// ToDomain converts the persistence model to a domain LoanClose row.
func (m *LoanCloseModel) ToDomain() *lending.LoanClose {
	return &lending.LoanClose{
		BaseEntity:    m.BaseModel.ToDomain(),
		LoanID:        m.LoanID,
		NetAmount:     m.NetAmount,
		ClosingCharge: m.ClosingCharge,
		Date:          m.Date,
		Remark:        m.Remark,
		PaymentDetail: valueobject.PaymentDetail(m.PaymentDetail),
	}
}

// FromDomain populates the persistence model from a domain LoanClose row.
func (m *LoanCloseModel) FromDomain(c *lending.LoanClose) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.LoanID = c.LoanID
	m.NetAmount = c.NetAmount
	m.ClosingCharge = c.ClosingCharge
	m.Date = c.Date
	m.Remark = c.Remark
	m.PaymentDetail = PaymentDetailJSON(c.PaymentDetail)
}

// ToDomain converts the persistence model to a domain IssuedLoan aggregate.
func (m *IssuedLoanModel) ToDomain() *lending.IssuedLoan {
	l := &lending.IssuedLoan{
		CustomerID:          m.CustomerID,
		SchemeID:            m.SchemeID,
		BranchID:            m.BranchID,
		LoanNumber:          m.LoanNumber,
		TransactionNumber:   m.TransactionNumber,
		LoanAmount:          m.LoanAmount,
		InterestLoanAmount:  m.InterestLoanAmount,
		IssueDate:           m.IssueDate,
		NextInstallmentDate: m.NextInstallmentDate,
		LastInstallmentDate: m.LastInstallmentDate,
		Status:              lending.LoanStatus(m.Status),
		Items:               m.Items,
		PaymentDetail:       valueobject.PaymentDetail(m.PaymentDetail),
	}
	m.PopulateCompanyAggregateRoot(&l.CompanyAggregateRoot)

	l.Interests = make([]lending.Interest, len(m.Interests))
	for i := range m.Interests {
		l.Interests[i] = m.Interests[i].ToDomain()
	}
	l.PartPayments = make([]lending.PartPayment, len(m.PartPayments))
	for i := range m.PartPayments {
		l.PartPayments[i] = m.PartPayments[i].ToDomain()
	}
	l.PartReleases = make([]lending.PartRelease, len(m.PartReleases))
	for i := range m.PartReleases {
		l.PartReleases[i] = m.PartReleases[i].ToDomain()
	}
	if m.Closure != nil {
		l.Closure = m.Closure.ToDomain()
	}
	return l
}

// FromDomain populates the persistence model from a domain IssuedLoan aggregate.
func (m *IssuedLoanModel) FromDomain(l *lending.IssuedLoan) {
	m.FromDomainCompanyAggregateRoot(l.CompanyAggregateRoot)
	m.CustomerID = l.CustomerID
	m.SchemeID = l.SchemeID
	m.BranchID = l.BranchID
	m.LoanNumber = l.LoanNumber
	m.TransactionNumber = l.TransactionNumber
	m.LoanAmount = l.LoanAmount
	m.InterestLoanAmount = l.InterestLoanAmount
	m.IssueDate = l.IssueDate
	m.NextInstallmentDate = l.NextInstallmentDate
	m.LastInstallmentDate = l.LastInstallmentDate
	m.Status = string(l.Status)
	m.Items = l.Items
	m.PaymentDetail = PaymentDetailJSON(l.PaymentDetail)

	m.Interests = make([]LoanInterestModel, len(l.Interests))
	for i := range l.Interests {
		m.Interests[i].FromDomain(&l.Interests[i])
	}
	m.PartPayments = make([]LoanPartPaymentModel, len(l.PartPayments))
	for i := range l.PartPayments {
		m.PartPayments[i].FromDomain(&l.PartPayments[i])
	}
	m.PartReleases = make([]LoanPartReleaseModel, len(l.PartReleases))
	for i := range l.PartReleases {
		m.PartReleases[i].FromDomain(&l.PartReleases[i])
	}
	if l.Closure != nil {
		m.Closure = &LoanCloseModel{}
		m.Closure.FromDomain(l.Closure)
	}
}

// IssuedLoanModelFromDomain creates a new persistence model from a domain IssuedLoan aggregate.
func IssuedLoanModelFromDomain(l *lending.IssuedLoan) *IssuedLoanModel {
	m := &IssuedLoanModel{}
	m.FromDomain(l)
	return m
}

// OtherIssuedLoanModel is the persistence model for the OtherIssuedLoan aggregate.
type OtherIssuedLoanModel struct {
	CompanyAggregateModel
	LoanID uuid.UUID `gorm:"type:uuid;not null;index"`

	OtherNumber string `gorm:"type:varchar(30);not null;index:idx_other_loan_company_number"`
	LenderName  string `gorm:"type:varchar(200)"`

	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Percentage decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`

	IssueDate   time.Time `gorm:"not null"`
	RenewalDate time.Time `gorm:"not null;index"`
	Status      string    `gorm:"type:varchar(30);not null;index"`

	PaymentDetail PaymentDetailJSON `gorm:"type:jsonb"`

	Interests []OtherLoanInterestModel `gorm:"foreignKey:OtherLoanID;references:ID"`
	Closure   *OtherLoanCloseModel     `gorm:"foreignKey:OtherLoanID;references:ID"`
}

// TableName returns the table name for GORM
func (OtherIssuedLoanModel) TableName() string {
	return "other_issued_loans"
}

// OtherLoanInterestModel is one interest payment on a third-party loan.
type OtherLoanInterestModel struct {
	BaseModel
	OtherLoanID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	FromDate       time.Time         `gorm:"not null"`
	ToDate         time.Time         `gorm:"not null"`
	Days           int               `gorm:"not null;default:0"`
	InterestAmount decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	AmountPaid     decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentDetail  PaymentDetailJSON `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (OtherLoanInterestModel) TableName() string {
	return "other_loan_interests"
}

// ToDomain converts the persistence model to a domain OtherLoanInterest entry.
func (m *OtherLoanInterestModel) ToDomain() lending.OtherLoanInterest {
	return lending.OtherLoanInterest{
		BaseEntity:     m.BaseModel.ToDomain(),
		OtherLoanID:    m.OtherLoanID,
		From:           m.FromDate,
		To:             m.ToDate,
		Days:           m.Days,
		InterestAmount: m.InterestAmount,
		AmountPaid:     m.AmountPaid,
		PaymentDetail:  valueobject.PaymentDetail(m.PaymentDetail),
	}
}

// FromDomain populates the persistence model from a domain OtherLoanInterest entry.
func (m *OtherLoanInterestModel) FromDomain(e *lending.OtherLoanInterest) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.OtherLoanID = e.OtherLoanID
	m.FromDate = e.From
	m.ToDate = e.To
	m.Days = e.Days
	m.InterestAmount = e.InterestAmount
	m.AmountPaid = e.AmountPaid
	m.PaymentDetail = PaymentDetailJSON(e.PaymentDetail)
}

// OtherLoanCloseModel is the terminal closure row of a third-party loan.
type OtherLoanCloseModel struct {
	BaseModel
	OtherLoanID   uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex"`
	NetAmount     decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Date          time.Time         `gorm:"not null"`
	Remark        string            `gorm:"type:text"`
	PaymentDetail PaymentDetailJSON `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (OtherLoanCloseModel) TableName() string {
	return "other_loan_closures"
}

// ToDomain converts the persistence model to a domain OtherLoanClose row.
func (m *OtherLoanCloseModel) ToDomain() *lending.OtherLoanClose {
	return &lending.OtherLoanClose{
		BaseEntity:    m.BaseModel.ToDomain(),
		OtherLoanID:   m.OtherLoanID,
		NetAmount:     m.NetAmount,
		Date:          m.Date,
		Remark:        m.Remark,
		PaymentDetail: valueobject.PaymentDetail(m.PaymentDetail),
	}
}

// FromDomain populates the persistence model from a domain OtherLoanClose row.
func (m *OtherLoanCloseModel) FromDomain(c *lending.OtherLoanClose) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.OtherLoanID = c.OtherLoanID
	m.NetAmount = c.NetAmount
	m.Date = c.Date
	m.Remark = c.Remark
	m.PaymentDetail = PaymentDetailJSON(c.PaymentDetail)
}

// ToDomain converts the persistence model to a domain OtherIssuedLoan aggregate.
func (m *OtherIssuedLoanModel) ToDomain() *lending.OtherIssuedLoan {
	l := &lending.OtherIssuedLoan{
		LoanID:        m.LoanID,
		OtherNumber:   m.OtherNumber,
		LenderName:    m.LenderName,
		Amount:        m.Amount,
		Percentage:    m.Percentage,
		IssueDate:     m.IssueDate,
		RenewalDate:   m.RenewalDate,
		Status:        lending.OtherLoanStatus(m.Status),
		PaymentDetail: valueobject.PaymentDetail(m.PaymentDetail),
	}
	m.PopulateCompanyAggregateRoot(&l.CompanyAggregateRoot)

	l.Interests = make([]lending.OtherLoanInterest, len(m.Interests))
	for i := range m.Interests {
		l.Interests[i] = m.Interests[i].ToDomain()
	}
	if m.Closure != nil {
		l.Closure = m.Closure.ToDomain()
	}
	return l
}

// FromDomain populates the persistence model from a domain OtherIssuedLoan aggregate.
func (m *OtherIssuedLoanModel) FromDomain(l *lending.OtherIssuedLoan) {
	m.FromDomainCompanyAggregateRoot(l.CompanyAggregateRoot)
	m.LoanID = l.LoanID
	m.OtherNumber = l.OtherNumber
	m.LenderName = l.LenderName
	m.Amount = l.Amount
	m.Percentage = l.Percentage
	m.IssueDate = l.IssueDate
	m.RenewalDate = l.RenewalDate
	m.Status = string(l.Status)
	m.PaymentDetail = PaymentDetailJSON(l.PaymentDetail)

	m.Interests = make([]OtherLoanInterestModel, len(l.Interests))
	for i := range l.Interests {
		m.Interests[i].FromDomain(&l.Interests[i])
	}
	if l.Closure != nil {
		m.Closure = &OtherLoanCloseModel{}
		m.Closure.FromDomain(l.Closure)
	}
}

// OtherIssuedLoanModelFromDomain creates a new persistence model from a domain OtherIssuedLoan aggregate.
func OtherIssuedLoanModelFromDomain(l *lending.OtherIssuedLoan) *OtherIssuedLoanModel {
	m := &OtherIssuedLoanModel{}
	m.FromDomain(l)
	return m
}

// SequenceCounterModel is the per-(company, name, financial year) counter
// row behind number allocation. The unique index makes concurrent
// first-allocation of a new counter collide instead of double-inserting.
type SequenceCounterModel struct {
	BaseModel
	CompanyID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_seq_company_name_fy,priority:1"`
	Name          string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_seq_company_name_fy,priority:2"`
	FinancialYear string    `gorm:"type:varchar(10);not null;default:'';uniqueIndex:idx_seq_company_name_fy,priority:3"`
	Value         int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (SequenceCounterModel) TableName() string {
	return "sequence_counters"
}

// ToDomain converts the persistence model to a domain SequenceCounter.
func (m *SequenceCounterModel) ToDomain() *lending.SequenceCounter {
	return &lending.SequenceCounter{
		BaseEntity:    m.BaseModel.ToDomain(),
		CompanyID:     m.CompanyID,
		Name:          m.Name,
		FinancialYear: m.FinancialYear,
		Value:         m.Value,
	}
}
