package persistence

import (
	"context"
	"errors"

	"github.com/goldfin/backend/internal/domain/lending"
	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/goldfin/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSequenceRepository hands out per-company number sequences backed by
// counter rows. Allocation is a single atomic UPDATE .. value = value + 1,
// so the row write lock serializes concurrent allocations and no two
// callers ever read the same value.
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GormSequenceRepository
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next allocates the next value of a named sequence inside its own
// transaction.
func (r *GormSequenceRepository) Next(ctx context.Context, companyID uuid.UUID, name, financialYear string) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := nextSequenceInTx(tx, companyID, name, financialYear)
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	return value, err
}

// nextSequenceInTx increments and reads a counter inside an existing
// transaction. Loan issuance calls this so the allocated numbers roll back
// with the insert they were minted for.
func nextSequenceInTx(tx *gorm.DB, companyID uuid.UUID, name, financialYear string) (int64, error) {
	res := tx.Model(&models.SequenceCounterModel{}).
		Where("company_id = ? AND name = ? AND financial_year = ?", companyID, name, financialYear).
		UpdateColumn("value", gorm.Expr("value + 1"))
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected == 0 {
		counter := models.SequenceCounterModel{
			BaseModel:     models.BaseModel{ID: uuid.New()},
			CompanyID:     companyID,
			Name:          name,
			FinancialYear: financialYear,
			Value:         1,
		}
		err := tx.Create(&counter).Error
		if err == nil {
			return 1, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, err
		}
		// Another transaction created the row first; increment it.
		res = tx.Model(&models.SequenceCounterModel{}).
			Where("company_id = ? AND name = ? AND financial_year = ?", companyID, name, financialYear).
			UpdateColumn("value", gorm.Expr("value + 1"))
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected == 0 {
			return 0, shared.ErrConcurrencyConflict
		}
	}

	var counter models.SequenceCounterModel
	if err := tx.
		Where("company_id = ? AND name = ? AND financial_year = ?", companyID, name, financialYear).
		First(&counter).Error; err != nil {
		return 0, err
	}
	return counter.Value, nil
}

// Ensure GormSequenceRepository implements SequenceAllocator
var _ lending.SequenceAllocator = (*GormSequenceRepository)(nil)
