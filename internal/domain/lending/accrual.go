// Package lending implements the loan ledger: issued loans and their
// interest/part-payment/closure sub-ledgers, third-party refinance loans,
// the accrual calculator and the loan number sequences.
package lending

import (
	"time"

	"github.com/goldfin/backend/internal/domain/org"
	"github.com/shopspring/decimal"
)

var (
	twelve             = decimal.NewFromInt(12)
	accrualYearDivisor = decimal.NewFromInt(365 * 1000)
	accrualRoundingDP  = int32(2)
)

// AccrualInput carries everything the calculator needs. It is assembled by
// the application layer from the loan, its scheme and its interest ledger.
type AccrualInput struct {
	// Principal is the interest-bearing amount (may differ from the
	// disbursed loan amount).
	Principal decimal.Decimal
	// RatePercent is the scheme rate as entered, e.g. 18. A missing
	// scheme is treated as a zero rate, never an error.
	RatePercent decimal.Decimal
	IssueDate   time.Time
	// LastInterestTo is the To date of the most recent interest entry,
	// nil when no interest has ever been posted.
	LastInterestTo      *time.Time
	NextInstallmentDate time.Time
	LastInstallmentDate time.Time
	// UchakPaidSince is the sum of ad-hoc interest payments made after
	// the accrual anchor; they reduce the amount still due.
	UchakPaidSince decimal.Decimal
	// CarryForward is the signed cr_dr residual of the last entry.
	CarryForward decimal.Decimal
	PenaltyTiers []org.PenaltyTier
	Closed       bool
}

// AccrualResult is the calculator output
type AccrualResult struct {
	Days            int
	InterestAmount  decimal.Decimal
	PenaltyDays     int
	PenaltyAmount   decimal.Decimal
	PendingInterest decimal.Decimal
}

// wholeDays returns the number of whole days from a to b, negative when b
// precedes a. Times of day are ignored.
func wholeDays(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// interestFor applies the house interest convention: the entered rate is
// charged per mille per month, annualized over a 365-day year. A scheme
// entered as 18 therefore charges 1.8% per month. Kept bit-for-bit for
// parity with the historical books.
func interestFor(principal, ratePercent decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}
	return principal.
		Mul(ratePercent).
		Mul(twelve).
		Mul(decimal.NewFromInt(int64(days))).
		Div(accrualYearDivisor)
}

// matchPenaltyTier returns the first tier whose inclusive [FromDay, ToDay]
// range contains overdueDays, or nil when none matches.
func matchPenaltyTier(tiers []org.PenaltyTier, overdueDays int) *org.PenaltyTier {
	for i := range tiers {
		if tiers[i].Matches(overdueDays) {
			return &tiers[i]
		}
	}
	return nil
}

// ComputePendingInterest computes interest and penalty due on a loan as of
// today. Pure function, no errors: a closed loan yields zeros, a missing
// rate accrues nothing.
//
// The accrual anchor is the To date of the last interest entry when one
// exists, else the issue date; for the very first accrual the anchor day
// itself counts, so one inclusive day is added. Penalty days run from the
// last installment date once interest has been posted, else from the next
// installment date.
func ComputePendingInterest(in AccrualInput, today time.Time) AccrualResult {
	if in.Closed {
		return AccrualResult{
			InterestAmount:  decimal.Zero,
			PenaltyAmount:   decimal.Zero,
			PendingInterest: decimal.Zero,
		}
	}

	anchor := in.IssueDate
	firstAccrual := in.LastInterestTo == nil
	if !firstAccrual {
		anchor = *in.LastInterestTo
	}

	days := wholeDays(anchor, today)
	if firstAccrual {
		days++
	}
	if days < 0 {
		days = 0
	}

	interest := interestFor(in.Principal, in.RatePercent, days)

	penaltyAnchor := in.NextInstallmentDate
	if !firstAccrual {
		penaltyAnchor = in.LastInstallmentDate
	}
	penaltyDays := wholeDays(penaltyAnchor, today)

	penalty := decimal.Zero
	if penaltyDays > 0 {
		if tier := matchPenaltyTier(in.PenaltyTiers, penaltyDays); tier != nil {
			penalty = interestFor(in.Principal, tier.RatePercent, penaltyDays)
		}
	}

	pending := interest.
		Sub(in.UchakPaidSince).
		Add(in.CarryForward).
		Add(penalty)

	return AccrualResult{
		Days:            days,
		InterestAmount:  interest.Round(accrualRoundingDP),
		PenaltyDays:     penaltyDays,
		PenaltyAmount:   penalty.Round(accrualRoundingDP),
		PendingInterest: pending.Round(accrualRoundingDP),
	}
}
