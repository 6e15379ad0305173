package org

import (
	"fmt"
	"strings"

	"github.com/goldfin/backend/internal/domain/shared"
)

// Branch belongs to a company and scopes customers and day-book entries.
// Its code is a 3-digit per-company sequence ("001", "002", ...).
type Branch struct {
	shared.CompanyAggregateRoot
	Name    string
	Code    string
	Address string
	Phone   string
}

// FormatBranchCode renders a branch sequence number as a 3-digit code
func FormatBranchCode(seq int64) string {
	return fmt.Sprintf("%03d", seq)
}

// NewBranch creates a branch from an already-allocated code. Code
// allocation happens in the application layer via the sequence counter
// so that it is serialized per company.
func NewBranch(company *Company, name, code, address, phone string) (*Branch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Branch name is required")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Branch code is required")
	}
	return &Branch{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(company.ID),
		Name:                 name,
		Code:                 code,
		Address:              address,
		Phone:                phone,
	}, nil
}

// Update changes the branch contact details; the code is immutable
func (b *Branch) Update(name, address, phone string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Branch name is required")
	}
	b.Name = name
	b.Address = address
	b.Phone = phone
	return nil
}
