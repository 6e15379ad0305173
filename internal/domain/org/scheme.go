package org

import (
	"strings"

	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ValuationMethod determines how pledged gold is valued at issuance
type ValuationMethod string

const (
	ValuationByWeight ValuationMethod = "Weight"
	ValuationByPiece  ValuationMethod = "Piece"
)

// Scheme defines the interest terms a loan is issued under. The rate is
// read at accrual time, not snapshotted onto the loan: changing a scheme
// rate retroactively changes pending interest for open loans under it.
type Scheme struct {
	shared.CompanyAggregateRoot
	Name           string
	InterestRate   decimal.Decimal // percent per annum
	InterestPeriod int             // days between installments
	Valuation      ValuationMethod
	RatePerGram    decimal.Decimal
}

// DefaultInterestPeriod is the installment step applied when a scheme
// does not specify one.
const DefaultInterestPeriod = 30

// NewScheme creates a loan scheme
func NewScheme(company *Company, name string, interestRate decimal.Decimal, interestPeriod int, valuation ValuationMethod) (*Scheme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Scheme name is required")
	}
	if interestRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Interest rate cannot be negative")
	}
	if interestPeriod <= 0 {
		interestPeriod = DefaultInterestPeriod
	}
	if valuation == "" {
		valuation = ValuationByWeight
	}
	return &Scheme{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(company.ID),
		Name:                 name,
		InterestRate:         interestRate,
		InterestPeriod:       interestPeriod,
		Valuation:            valuation,
	}, nil
}

// UpdateTerms changes the scheme terms. Open loans pick the new rate up
// on their next accrual.
func (s *Scheme) UpdateTerms(interestRate decimal.Decimal, interestPeriod int) error {
	if interestRate.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Interest rate cannot be negative")
	}
	if interestPeriod <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Interest period must be positive")
	}
	s.InterestRate = interestRate
	s.InterestPeriod = interestPeriod
	return nil
}
