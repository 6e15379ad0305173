package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/goldfin/backend/internal/domain/org"
	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/goldfin/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	companyScoped[org.Customer, models.CustomerModel, *models.CustomerModel]
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{
		companyScoped: companyScoped[org.Customer, models.CustomerModel, *models.CustomerModel]{
			db:         db,
			fromDomain: models.CustomerModelFromDomain,
			sortFields: CustomerSortFields,
			searchCols: []string{"first_name", "last_name", "code", "phone"},
			hasBranch:  true,
		},
	}
}

// FindByCode finds a customer by its code within a company
func (r *GormCustomerRepository) FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*org.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND code = ?", companyID, strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBranch finds all customers of a branch
func (r *GormCustomerRepository) FindByBranch(ctx context.Context, companyID, branchID uuid.UUID, filter shared.Filter) ([]org.Customer, error) {
	var customerModels []models.CustomerModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.CustomerModel{}).
			Where("company_id = ? AND branch_id = ?", companyID, branchID),
		filter,
	)

	if err := query.Find(&customerModels).Error; err != nil {
		return nil, err
	}

	customers := make([]org.Customer, len(customerModels))
	for i := range customerModels {
		customers[i] = *customerModels[i].ToDomain()
	}
	return customers, nil
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ org.CustomerRepository = (*GormCustomerRepository)(nil)
