// Package org holds the master-data aggregates that everything else hangs
// off: the company tenant root, its branches, customers, loan schemes and
// penalty tiers.
package org

import (
	"strings"

	"github.com/goldfin/backend/internal/domain/shared"
)

// BankAccount is one configured bank account of a company. Bank-view
// transaction reports compute a running balance per configured account.
type BankAccount struct {
	BankName      string `json:"bank_name"`
	HolderName    string `json:"holder_name"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code,omitempty"`
}

// Company is the tenant root. All other aggregates carry its ID and are
// only ever queried through it. CreatedAt anchors "all time" report ranges.
type Company struct {
	shared.BaseAggregateRoot
	Name         string
	Email        string
	Phone        string
	Address      string
	LogoURL      string
	BankAccounts []BankAccount
}

// NewCompany creates a company tenant
func NewCompany(name, email, phone, address string) (*Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Company name is required")
	}
	return &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Phone:             phone,
		Address:           address,
	}, nil
}

// AddBankAccount registers a bank account for bank-view reporting
func (c *Company) AddBankAccount(account BankAccount) error {
	if strings.TrimSpace(account.BankName) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Bank name is required")
	}
	for _, existing := range c.BankAccounts {
		if existing.BankName == account.BankName && existing.AccountNumber == account.AccountNumber {
			return shared.NewDomainError("ALREADY_EXISTS", "Bank account already registered")
		}
	}
	c.BankAccounts = append(c.BankAccounts, account)
	return nil
}

// RemoveBankAccount drops a configured bank account
func (c *Company) RemoveBankAccount(bankName, accountNumber string) error {
	for i, existing := range c.BankAccounts {
		if existing.BankName == bankName && existing.AccountNumber == accountNumber {
			c.BankAccounts = append(c.BankAccounts[:i], c.BankAccounts[i+1:]...)
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "Bank account not found")
}

// UpdateProfile updates the company contact details
func (c *Company) UpdateProfile(name, email, phone, address string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Company name is required")
	}
	c.Name = name
	c.Email = email
	c.Phone = phone
	c.Address = address
	return nil
}

// SetLogo stores the uploaded logo location
func (c *Company) SetLogo(url string) {
	c.LogoURL = url
}
