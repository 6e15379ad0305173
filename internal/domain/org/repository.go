package org

import (
	"context"

	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyRepository persists company tenants
type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Company, error)
	Save(ctx context.Context, company *Company) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BranchRepository persists branches
type BranchRepository interface {
	shared.CompanyRepository[Branch]
	FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*Branch, error)
}

// CustomerRepository persists customers
type CustomerRepository interface {
	shared.CompanyRepository[Customer]
	FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*Customer, error)
	FindByBranch(ctx context.Context, companyID, branchID uuid.UUID, filter shared.Filter) ([]Customer, error)
}

// SchemeRepository persists loan schemes
type SchemeRepository interface {
	shared.CompanyRepository[Scheme]
}

// PenaltyRepository persists penalty tiers
type PenaltyRepository interface {
	shared.CompanyRepository[PenaltyTier]
	// FindAllOrdered returns the company's tiers ordered by FromDay
	// ascending, the order tier matching relies on.
	FindAllOrdered(ctx context.Context, companyID uuid.UUID) ([]PenaltyTier, error)
}
