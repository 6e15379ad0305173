package org

import (
	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PenaltyTier is one day-range surcharge band. A loan whose overdue day
// count falls within [FromDay, ToDay] (both inclusive) is charged
// RatePercent on top of its scheme rate.
type PenaltyTier struct {
	shared.CompanyAggregateRoot
	FromDay     int
	ToDay       int
	RatePercent decimal.Decimal
}

// NewPenaltyTier creates a penalty band
func NewPenaltyTier(companyID uuid.UUID, fromDay, toDay int, ratePercent decimal.Decimal) (*PenaltyTier, error) {
	if fromDay < 0 || toDay < fromDay {
		return nil, shared.NewDomainError("INVALID_INPUT", "Penalty day range is invalid")
	}
	if ratePercent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Penalty rate cannot be negative")
	}
	return &PenaltyTier{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		FromDay:              fromDay,
		ToDay:                toDay,
		RatePercent:          ratePercent,
	}, nil
}

// Matches reports whether the given overdue day count falls in this band.
// The upper bound is inclusive: overdueDays == ToDay still matches.
func (t *PenaltyTier) Matches(overdueDays int) bool {
	return overdueDays >= t.FromDay && overdueDays <= t.ToDay
}

// Update changes the band boundaries and rate
func (t *PenaltyTier) Update(fromDay, toDay int, ratePercent decimal.Decimal) error {
	if fromDay < 0 || toDay < fromDay {
		return shared.NewDomainError("INVALID_INPUT", "Penalty day range is invalid")
	}
	if ratePercent.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Penalty rate cannot be negative")
	}
	t.FromDay = fromDay
	t.ToDay = toDay
	t.RatePercent = ratePercent
	return nil
}
