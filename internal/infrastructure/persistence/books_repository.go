package persistence

import (
	"github.com/goldfin/backend/internal/domain/books"
	"github.com/goldfin/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// The day-book entries are flat rows with no child tables and no
// entity-specific queries beyond what the company-scoped base covers, so
// their repositories are thin instantiations of it.

// GormPartyRepository implements PartyRepository using GORM
type GormPartyRepository struct {
	companyScoped[books.Party, models.PartyModel, *models.PartyModel]
}

// NewGormPartyRepository creates a new GormPartyRepository
func NewGormPartyRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{
		companyScoped: companyScoped[books.Party, models.PartyModel, *models.PartyModel]{
			db:         db,
			fromDomain: models.PartyModelFromDomain,
			searchCols: []string{"name", "phone"},
		},
	}
}

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	companyScoped[books.Expense, models.ExpenseModel, *models.ExpenseModel]
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{
		companyScoped: companyScoped[books.Expense, models.ExpenseModel, *models.ExpenseModel]{
			db:         db,
			fromDomain: models.ExpenseModelFromDomain,
			sortFields: EntrySortFields,
			searchCols: []string{"category", "description"},
			dateColumn: "date",
			hasBranch:  true,
		},
	}
}

// GormOtherIncomeRepository implements OtherIncomeRepository using GORM
type GormOtherIncomeRepository struct {
	companyScoped[books.OtherIncome, models.OtherIncomeModel, *models.OtherIncomeModel]
}

// NewGormOtherIncomeRepository creates a new GormOtherIncomeRepository
func NewGormOtherIncomeRepository(db *gorm.DB) *GormOtherIncomeRepository {
	return &GormOtherIncomeRepository{
		companyScoped: companyScoped[books.OtherIncome, models.OtherIncomeModel, *models.OtherIncomeModel]{
			db:         db,
			fromDomain: models.OtherIncomeModelFromDomain,
			sortFields: EntrySortFields,
			searchCols: []string{"source", "description"},
			dateColumn: "date",
			hasBranch:  true,
		},
	}
}

// GormChargeRepository implements ChargeInOutRepository using GORM
type GormChargeRepository struct {
	companyScoped[books.ChargeInOut, models.ChargeInOutModel, *models.ChargeInOutModel]
}

// NewGormChargeRepository creates a new GormChargeRepository
func NewGormChargeRepository(db *gorm.DB) *GormChargeRepository {
	return &GormChargeRepository{
		companyScoped: companyScoped[books.ChargeInOut, models.ChargeInOutModel, *models.ChargeInOutModel]{
			db:         db,
			fromDomain: models.ChargeInOutModelFromDomain,
			sortFields: EntrySortFields,
			searchCols: []string{"charge_type", "description"},
			dateColumn: "date",
			hasBranch:  true,
		},
	}
}

// GormPaymentRepository implements PaymentInOutRepository using GORM
type GormPaymentRepository struct {
	companyScoped[books.PaymentInOut, models.PaymentInOutModel, *models.PaymentInOutModel]
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{
		companyScoped: companyScoped[books.PaymentInOut, models.PaymentInOutModel, *models.PaymentInOutModel]{
			db:         db,
			fromDomain: models.PaymentInOutModelFromDomain,
			sortFields: EntrySortFields,
			searchCols: []string{"party_name", "description"},
			dateColumn: "date",
			hasBranch:  true,
		},
	}
}

// GormTransferRepository implements TransferRepository using GORM
type GormTransferRepository struct {
	companyScoped[books.Transfer, models.TransferModel, *models.TransferModel]
}

// NewGormTransferRepository creates a new GormTransferRepository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{
		companyScoped: companyScoped[books.Transfer, models.TransferModel, *models.TransferModel]{
			db:         db,
			fromDomain: models.TransferModelFromDomain,
			sortFields: EntrySortFields,
			searchCols: []string{"description"},
			dateColumn: "date",
		},
	}
}

var (
	_ books.PartyRepository        = (*GormPartyRepository)(nil)
	_ books.ExpenseRepository      = (*GormExpenseRepository)(nil)
	_ books.OtherIncomeRepository  = (*GormOtherIncomeRepository)(nil)
	_ books.ChargeInOutRepository  = (*GormChargeRepository)(nil)
	_ books.PaymentInOutRepository = (*GormPaymentRepository)(nil)
	_ books.TransferRepository     = (*GormTransferRepository)(nil)
)
