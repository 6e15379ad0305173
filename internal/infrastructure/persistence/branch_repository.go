package persistence

import (
	"context"
	"errors"

	"github.com/goldfin/backend/internal/domain/org"
	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/goldfin/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBranchRepository implements BranchRepository using GORM
type GormBranchRepository struct {
	companyScoped[org.Branch, models.BranchModel, *models.BranchModel]
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{
		companyScoped: companyScoped[org.Branch, models.BranchModel, *models.BranchModel]{
			db:         db,
			fromDomain: models.BranchModelFromDomain,
			sortFields: BranchSortFields,
			searchCols: []string{"name", "code"},
		},
	}
}

// FindByCode finds a branch by its code within a company
func (r *GormBranchRepository) FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*org.Branch, error) {
	var model models.BranchModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND code = ?", companyID, code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormBranchRepository implements BranchRepository
var _ org.BranchRepository = (*GormBranchRepository)(nil)
