// Package report builds the read-only views: the unified transaction feed,
// daily report, loan summary, customer statement, portfolio summary and
// chart series.
package report

import (
	"sort"
	"time"

	"github.com/goldfin/backend/internal/domain/books"
	"github.com/goldfin/backend/internal/domain/lending"
	"github.com/goldfin/backend/internal/domain/org"
	"github.com/goldfin/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction is the normalized in/out category of a feed row
type Direction string

const (
	DirectionIn  Direction = "Payment In"
	DirectionOut Direction = "Payment Out"
)

// View selects which money leg the feed reports
type View string

const (
	CashView View = "cash"
	BankView View = "bank"
)

// Transaction is one normalized feed row
type Transaction struct {
	Category       Direction       `json:"category"`
	Ref            string          `json:"ref"`
	Detail         string          `json:"detail"`
	Status         string          `json:"status"`
	Date           time.Time       `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	BankName       string          `json:"bank_name,omitempty"`
	BankHolderName string          `json:"bank_holder_name,omitempty"`
	CompanyID      uuid.UUID       `json:"company_id"`
}

// BankBalance is the all-time running balance of one configured account
type BankBalance struct {
	BankName      string          `json:"bank_name"`
	HolderName    string          `json:"holder_name"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
}

// Feed statuses, one per source type
const (
	StatusLoanIssued      = "Loan Issued"
	StatusLoanInterest    = "Interest"
	StatusUchakInterest   = "Uchak Interest"
	StatusLoanPartPayment = "Loan Part Payment"
	StatusLoanPartRelease = "Loan Part Release"
	StatusLoanClosed      = "Loan Closed"
	StatusOtherIssued     = "Other Loan Issued"
	StatusOtherInterest   = "Other Loan Interest"
	StatusOtherClosed     = "Other Loan Closed"
	StatusExpense         = "Expense"
	StatusOtherIncome     = "Other Income"
	StatusChargeInOut     = "Charge"
	StatusPaymentInOut    = "Party Payment"
	StatusTransfer        = "Transfer"
)

// record is a source row before the view (cash or bank leg) is applied
type record struct {
	category Direction
	ref      string
	detail   string
	status   string
	date     time.Time
	payment  valueobject.PaymentDetail
	// bank-to-bank destination legs override the payment-detail bank
	bankName       string
	bankHolderName string
	// amountOverride bypasses the payment split; used by transfers whose
	// amount is the transfer amount itself regardless of leg.
	amountOverride *decimal.Decimal
}

// sourceData is everything the extractors read, already company-scoped
type sourceData struct {
	CompanyID     uuid.UUID
	Loans         []lending.IssuedLoan
	OtherLoans    []lending.OtherIssuedLoan
	Expenses      []books.Expense
	Incomes       []books.OtherIncome
	Charges       []books.ChargeInOut
	Payments      []books.PaymentInOut
	Transfers     []books.Transfer
	CustomerNames map[uuid.UUID]string
}

// firstNonEmpty is the ordered field fallback used by the extraction
// recipes: the first non-empty candidate wins, and that precedence is
// part of the reporting contract.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// extractor is one per-source-type extraction recipe. The table below is
// the single place that says which fields feed a source's ref, detail and
// date; nothing indexes fields by name at runtime.
type extractor struct {
	name string
	rows func(d *sourceData) []record
}

func extractLoanIssued(d *sourceData) []record {
	out := make([]record, 0, len(d.Loans))
	for i := range d.Loans {
		loan := &d.Loans[i]
		out = append(out, record{
			category: DirectionOut,
			ref:      loan.LoanNumber,
			detail:   firstNonEmpty(d.CustomerNames[loan.CustomerID], loan.TransactionNumber),
			status:   StatusLoanIssued,
			date:     loan.IssueDate,
			payment:  loan.PaymentDetail,
		})
	}
	return out
}

func extractLoanInterest(d *sourceData) []record {
	var out []record
	for i := range d.Loans {
		loan := &d.Loans[i]
		for j := range loan.Interests {
			entry := &loan.Interests[j]
			status := StatusLoanInterest
			if entry.IsUchak {
				status = StatusUchakInterest
			}
			out = append(out, record{
				category: DirectionIn,
				ref:      loan.LoanNumber,
				detail:   firstNonEmpty(d.CustomerNames[loan.CustomerID], loan.LoanNumber),
				status:   status,
				date:     entry.To,
				payment:  entry.PaymentDetail,
			})
		}
	}
	return out
}

func extractLoanPartPayments(d *sourceData) []record {
	var out []record
	for i := range d.Loans {
		loan := &d.Loans[i]
		for j := range loan.PartPayments {
			row := &loan.PartPayments[j]
			out = append(out, record{
				category: DirectionIn,
				ref:      loan.LoanNumber,
				detail:   firstNonEmpty(row.Remark, d.CustomerNames[loan.CustomerID], loan.LoanNumber),
				status:   StatusLoanPartPayment,
				date:     row.Date,
				payment:  row.PaymentDetail,
			})
		}
	}
	return out
}

func extractLoanPartReleases(d *sourceData) []record {
	var out []record
	for i := range d.Loans {
		loan := &d.Loans[i]
		for j := range loan.PartReleases {
			row := &loan.PartReleases[j]
			out = append(out, record{
				category: DirectionIn,
				ref:      loan.LoanNumber,
				detail:   firstNonEmpty(row.Remark, d.CustomerNames[loan.CustomerID], loan.LoanNumber),
				status:   StatusLoanPartRelease,
				date:     row.Date,
				payment:  row.PaymentDetail,
			})
		}
	}
	return out
}

func extractLoanClosures(d *sourceData) []record {
	var out []record
	for i := range d.Loans {
		loan := &d.Loans[i]
		if loan.Closure == nil {
			continue
		}
		out = append(out, record{
			category: DirectionIn,
			ref:      loan.LoanNumber,
			detail:   firstNonEmpty(loan.Closure.Remark, d.CustomerNames[loan.CustomerID], loan.LoanNumber),
			status:   StatusLoanClosed,
			date:     loan.Closure.Date,
			payment:  loan.Closure.PaymentDetail,
		})
	}
	return out
}

func extractOtherLoans(d *sourceData) []record {
	var out []record
	for i := range d.OtherLoans {
		loan := &d.OtherLoans[i]
		out = append(out, record{
			category: DirectionIn,
			ref:      loan.OtherNumber,
			detail:   firstNonEmpty(loan.LenderName, loan.OtherNumber),
			status:   StatusOtherIssued,
			date:     loan.IssueDate,
			payment:  loan.PaymentDetail,
		})
		for j := range loan.Interests {
			entry := &loan.Interests[j]
			out = append(out, record{
				category: DirectionOut,
				ref:      loan.OtherNumber,
				detail:   firstNonEmpty(loan.LenderName, loan.OtherNumber),
				status:   StatusOtherInterest,
				date:     entry.To,
				payment:  entry.PaymentDetail,
			})
		}
		if loan.Closure != nil {
			out = append(out, record{
				category: DirectionOut,
				ref:      loan.OtherNumber,
				detail:   firstNonEmpty(loan.Closure.Remark, loan.LenderName),
				status:   StatusOtherClosed,
				date:     loan.Closure.Date,
				payment:  loan.Closure.PaymentDetail,
			})
		}
	}
	return out
}

func extractExpenses(d *sourceData) []record {
	out := make([]record, 0, len(d.Expenses))
	for i := range d.Expenses {
		e := &d.Expenses[i]
		out = append(out, record{
			category: DirectionOut,
			ref:      e.Category,
			detail:   firstNonEmpty(e.Description, e.Category),
			status:   StatusExpense,
			date:     e.Date,
			payment:  e.PaymentDetail,
		})
	}
	return out
}

func extractIncomes(d *sourceData) []record {
	out := make([]record, 0, len(d.Incomes))
	for i := range d.Incomes {
		e := &d.Incomes[i]
		out = append(out, record{
			category: DirectionIn,
			ref:      e.Source,
			detail:   firstNonEmpty(e.Description, e.Source),
			status:   StatusOtherIncome,
			date:     e.Date,
			payment:  e.PaymentDetail,
		})
	}
	return out
}

func extractCharges(d *sourceData) []record {
	out := make([]record, 0, len(d.Charges))
	for i := range d.Charges {
		e := &d.Charges[i]
		category := DirectionIn
		if e.Category == books.CategoryPaymentOut {
			category = DirectionOut
		}
		out = append(out, record{
			category: category,
			ref:      e.ChargeType,
			detail:   firstNonEmpty(e.Description, e.ChargeType),
			status:   StatusChargeInOut,
			date:     e.Date,
			payment:  e.PaymentDetail,
		})
	}
	return out
}

func extractPayments(d *sourceData) []record {
	out := make([]record, 0, len(d.Payments))
	for i := range d.Payments {
		e := &d.Payments[i]
		category := DirectionIn
		if e.Category == books.CategoryPaymentOut {
			category = DirectionOut
		}
		out = append(out, record{
			category: category,
			ref:      e.PartyName,
			detail:   firstNonEmpty(e.Description, e.PartyName),
			status:   StatusPaymentInOut,
			date:     e.Date,
			payment:  e.PaymentDetail,
		})
	}
	return out
}

// extractors is the complete declarative source table of the feed,
// transfers excepted (their fan-out is view-dependent, see transferRows).
var extractors = []extractor{
	{"loan_issued", extractLoanIssued},
	{"loan_interest", extractLoanInterest},
	{"loan_part_payment", extractLoanPartPayments},
	{"loan_part_release", extractLoanPartReleases},
	{"loan_closed", extractLoanClosures},
	{"other_loans", extractOtherLoans},
	{"expenses", extractExpenses},
	{"incomes", extractIncomes},
	{"charges", extractCharges},
	{"payments", extractPayments},
}

// transferRows unfolds a transfer into its view-specific pseudo rows:
//
//   - Adjustment moves the cash box only and carries its direction in the
//     adjustment type.
//   - Cash To Bank / Bank To Cash appear once per view with opposite
//     directions: cash leaving the box is money arriving at the bank.
//   - Adjust Bank Balance participates only in the bank view.
//   - Bank To Bank yields two bank rows, one Out from the source account
//     and one In at the destination, equal amounts, swapped bank fields.
func transferRows(t *books.Transfer, view View) []record {
	amount := t.Amount
	base := record{
		ref:            string(t.TransferType),
		detail:         firstNonEmpty(t.Description, string(t.TransferType)),
		status:         StatusTransfer,
		date:           t.Date,
		payment:        t.PaymentDetail,
		amountOverride: &amount,
	}

	adjustDirection := DirectionIn
	if t.PaymentDetail.AdjustmentType == valueobject.AdjustmentDeduct {
		adjustDirection = DirectionOut
	}

	switch t.TransferType {
	case books.TransferAdjustment:
		if view != CashView {
			return nil
		}
		base.category = adjustDirection
		return []record{base}

	case books.TransferCashToBank:
		if view == CashView {
			base.category = DirectionOut
		} else {
			base.category = DirectionIn
		}
		return []record{base}

	case books.TransferBankToCash:
		if view == CashView {
			base.category = DirectionIn
		} else {
			base.category = DirectionOut
		}
		return []record{base}

	case books.TransferAdjustBankBalance:
		if view != BankView {
			return nil
		}
		base.category = adjustDirection
		return []record{base}

	case books.TransferBankToBank:
		if view != BankView {
			return nil
		}
		out := base
		out.category = DirectionOut
		in := base
		in.category = DirectionIn
		in.bankName = t.ToBankName
		in.bankHolderName = t.ToBankHolderName
		return []record{out, in}
	}
	return nil
}

// amountFor picks the view's money leg of a record
func amountFor(r *record, view View) decimal.Decimal {
	if r.amountOverride != nil {
		return *r.amountOverride
	}
	if view == BankView {
		return r.payment.BankAmount
	}
	return r.payment.CashAmount
}

// buildRows runs every extractor plus the transfer fan-out
func buildRows(d *sourceData, view View) []record {
	var rows []record
	for _, ex := range extractors {
		rows = append(rows, ex.rows(d)...)
	}
	for i := range d.Transfers {
		rows = append(rows, transferRows(&d.Transfers[i], view)...)
	}
	return rows
}

// assembleFeed turns records into the final feed: view amounts, optional
// date range, the cash view's zero-amount filter, newest first.
func assembleFeed(d *sourceData, view View, from, to *time.Time) []Transaction {
	rows := buildRows(d, view)
	out := make([]Transaction, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		if from != nil && r.date.Before(*from) {
			continue
		}
		if to != nil && r.date.After(*to) {
			continue
		}
		amount := amountFor(r, view)
		if view == CashView && amount.IsZero() {
			continue
		}
		tx := Transaction{
			Category:  r.category,
			Ref:       r.ref,
			Detail:    r.detail,
			Status:    r.status,
			Date:      r.date,
			Amount:    amount,
			CompanyID: d.CompanyID,
		}
		if view == BankView {
			tx.BankName = firstNonEmpty(r.bankName, r.payment.BankName)
			tx.BankHolderName = firstNonEmpty(r.bankHolderName, r.payment.BankHolderName)
		}
		out = append(out, tx)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// bankBalances computes the all-time balance per configured account from
// the full unbounded row set: sum of In less sum of Out on that bank.
func bankBalances(d *sourceData, accounts []org.BankAccount) []BankBalance {
	rows := buildRows(d, BankView)
	balances := make([]BankBalance, 0, len(accounts))
	for _, account := range accounts {
		balance := decimal.Zero
		for i := range rows {
			r := &rows[i]
			bankName := firstNonEmpty(r.bankName, r.payment.BankName)
			if bankName != account.BankName {
				continue
			}
			amount := amountFor(r, BankView)
			if r.category == DirectionIn {
				balance = balance.Add(amount)
			} else {
				balance = balance.Sub(amount)
			}
		}
		balances = append(balances, BankBalance{
			BankName:      account.BankName,
			HolderName:    account.HolderName,
			AccountNumber: account.AccountNumber,
			Balance:       balance,
		})
	}
	return balances
}
