package valueobject

import (
	"github.com/shopspring/decimal"
)

// PaymentMode indicates how a payment was settled
type PaymentMode string

const (
	PaymentModeCash PaymentMode = "Cash"
	PaymentModeBank PaymentMode = "Bank"
	PaymentModeBoth PaymentMode = "Both"
)

// AdjustmentType indicates the direction of a balance adjustment
type AdjustmentType string

const (
	AdjustmentAdd    AdjustmentType = "Add"
	AdjustmentDeduct AdjustmentType = "Deduct"
)

// PaymentDetail is the cash/bank split attached to every ledger entry.
// Either leg may be zero; the bank fields are meaningful only when
// BankAmount is non-zero.
type PaymentDetail struct {
	PaymentMode    PaymentMode     `json:"payment_mode"`
	CashAmount     decimal.Decimal `json:"cash_amount"`
	BankAmount     decimal.Decimal `json:"bank_amount"`
	BankName       string          `json:"bank_name,omitempty"`
	BankHolderName string          `json:"bank_holder_name,omitempty"`
	AccountNumber  string          `json:"account_number,omitempty"`
	AdjustmentType AdjustmentType  `json:"adjustment_type,omitempty"`
}

// NewCashPayment creates a cash-only payment detail
func NewCashPayment(amount decimal.Decimal) PaymentDetail {
	return PaymentDetail{
		PaymentMode: PaymentModeCash,
		CashAmount:  amount,
		BankAmount:  decimal.Zero,
	}
}

// NewBankPayment creates a bank-only payment detail
func NewBankPayment(amount decimal.Decimal, bankName, holder, accountNumber string) PaymentDetail {
	return PaymentDetail{
		PaymentMode:    PaymentModeBank,
		CashAmount:     decimal.Zero,
		BankAmount:     amount,
		BankName:       bankName,
		BankHolderName: holder,
		AccountNumber:  accountNumber,
	}
}

// Total returns the combined cash and bank amount
func (p PaymentDetail) Total() decimal.Decimal {
	return p.CashAmount.Add(p.BankAmount)
}

// HasCashLeg reports whether the cash portion is non-zero
func (p PaymentDetail) HasCashLeg() bool {
	return !p.CashAmount.IsZero()
}

// HasBankLeg reports whether the bank portion is non-zero
func (p PaymentDetail) HasBankLeg() bool {
	return !p.BankAmount.IsZero()
}
