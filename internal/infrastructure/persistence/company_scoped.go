package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// companyModel is implemented by pointers to company-scoped persistence models.
type companyModel[D any] interface {
	ToDomain() *D
}

// companyScoped implements shared.CompanyRepository for a (domain, model)
// pair. The domain interfaces are generic, so the plumbing they all share -
// company filtering, pagination, sort whitelisting, soft deletes - lives
// here once; named repository types embed it and add their entity-specific
// queries.
type companyScoped[D any, M any, PM interface {
	*M
	companyModel[D]
}] struct {
	db         *gorm.DB
	fromDomain func(*D) *M
	sortFields map[string]bool
	searchCols []string
	dateColumn string
	hasBranch  bool
}

// FindByID finds an entity by its ID regardless of company
func (r *companyScoped[D, M, PM]) FindByID(ctx context.Context, id uuid.UUID) (*D, error) {
	var m M
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return PM(&m).ToDomain(), nil
}

// FindByIDForCompany finds an entity by ID within a company
func (r *companyScoped[D, M, PM]) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*D, error) {
	var m M
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return PM(&m).ToDomain(), nil
}

// FindAllForCompany finds all entities of a company matching the filter
func (r *companyScoped[D, M, PM]) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]D, error) {
	var ms []M
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(new(M)).Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	entities := make([]D, len(ms))
	for i := range ms {
		entities[i] = *PM(&ms[i]).ToDomain()
	}
	return entities, nil
}

// CountForCompany counts entities of a company matching the filter
func (r *companyScoped[D, M, PM]) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(new(M)).Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an entity
func (r *companyScoped[D, M, PM]) Save(ctx context.Context, entity *D) error {
	return r.db.WithContext(ctx).Save(r.fromDomain(entity)).Error
}

// Delete soft-deletes an entity by ID
func (r *companyScoped[D, M, PM]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(new(M), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SoftDeleteMany soft-deletes the given entities within a company. Rows
// belonging to another company are silently skipped by the scope.
func (r *companyScoped[D, M, PM]) SoftDeleteMany(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return shared.ErrInvalidInput
	}
	return r.db.WithContext(ctx).
		Where("company_id = ? AND id IN ?", companyID, ids).
		Delete(new(M)).Error
}

// applyFilter applies filter options to the query
func (r *companyScoped[D, M, PM]) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortFields := r.sortFields
	if sortFields == nil {
		sortFields = CommonSortFields
	}
	orderBy := ValidateSortField(filter.OrderBy, sortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *companyScoped[D, M, PM]) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" && len(r.searchCols) > 0 {
		pattern := "%" + filter.Search + "%"
		conditions := make([]string, len(r.searchCols))
		args := make([]any, len(r.searchCols))
		for i, col := range r.searchCols {
			conditions[i] = col + " ILIKE ?"
			args[i] = pattern
		}
		query = query.Where(strings.Join(conditions, " OR "), args...)
	}

	if r.hasBranch && filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}

	dateColumn := r.dateColumn
	if dateColumn == "" {
		dateColumn = "created_at"
	}
	if filter.From != nil {
		query = query.Where(dateColumn+" >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where(dateColumn+" <= ?", *filter.To)
	}

	return query
}
