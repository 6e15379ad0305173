package persistence

import (
	"context"

	"github.com/goldfin/backend/internal/domain/org"
	"github.com/goldfin/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSchemeRepository implements SchemeRepository using GORM
type GormSchemeRepository struct {
	companyScoped[org.Scheme, models.SchemeModel, *models.SchemeModel]
}

// NewGormSchemeRepository creates a new GormSchemeRepository
func NewGormSchemeRepository(db *gorm.DB) *GormSchemeRepository {
	return &GormSchemeRepository{
		companyScoped: companyScoped[org.Scheme, models.SchemeModel, *models.SchemeModel]{
			db:         db,
			fromDomain: models.SchemeModelFromDomain,
			sortFields: SchemeSortFields,
			searchCols: []string{"name"},
		},
	}
}

// Ensure GormSchemeRepository implements SchemeRepository
var _ org.SchemeRepository = (*GormSchemeRepository)(nil)

// GormPenaltyRepository implements PenaltyRepository using GORM
type GormPenaltyRepository struct {
	companyScoped[org.PenaltyTier, models.PenaltyTierModel, *models.PenaltyTierModel]
}

// NewGormPenaltyRepository creates a new GormPenaltyRepository
func NewGormPenaltyRepository(db *gorm.DB) *GormPenaltyRepository {
	return &GormPenaltyRepository{
		companyScoped: companyScoped[org.PenaltyTier, models.PenaltyTierModel, *models.PenaltyTierModel]{
			db:         db,
			fromDomain: models.PenaltyTierModelFromDomain,
		},
	}
}

// FindAllOrdered returns a company's penalty tiers ordered by their lower
// day bound, the order tier matching walks them in.
func (r *GormPenaltyRepository) FindAllOrdered(ctx context.Context, companyID uuid.UUID) ([]org.PenaltyTier, error) {
	var tierModels []models.PenaltyTierModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("from_day ASC").
		Find(&tierModels).Error; err != nil {
		return nil, err
	}

	tiers := make([]org.PenaltyTier, len(tierModels))
	for i := range tierModels {
		tiers[i] = *tierModels[i].ToDomain()
	}
	return tiers, nil
}

// Ensure GormPenaltyRepository implements PenaltyRepository
var _ org.PenaltyRepository = (*GormPenaltyRepository)(nil)
