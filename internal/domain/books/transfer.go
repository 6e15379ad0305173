package books

import (
	"time"

	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/goldfin/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferType classifies a cash/bank movement
type TransferType string

const (
	TransferAdjustment        TransferType = "Adjustment"
	TransferCashToBank        TransferType = "Cash To Bank"
	TransferBankToCash        TransferType = "Bank To Cash"
	TransferAdjustBankBalance TransferType = "Adjust Bank Balance"
	TransferBankToBank        TransferType = "Bank To Bank"
)

// Transfer models movements between the cash box and bank accounts, and
// manual balance adjustments. Bank To Bank carries a second bank in the
// To* fields and unfolds into two feed rows; Adjust Bank Balance only
// participates in the bank view.
type Transfer struct {
	shared.CompanyAggregateRoot
	TransferType TransferType
	Amount       decimal.Decimal
	Date         time.Time
	Description  string

	// Primary leg. For Cash To Bank / Bank To Cash / Adjust Bank
	// Balance this names the bank side; for Adjustment the cash box.
	PaymentDetail valueobject.PaymentDetail

	// Destination leg, Bank To Bank only
	ToBankName       string
	ToBankHolderName string
	ToAccountNumber  string
}

// NewTransfer records a transfer
func NewTransfer(companyID uuid.UUID, transferType TransferType, amount decimal.Decimal, entryDate time.Time, description string, payment valueobject.PaymentDetail) (*Transfer, error) {
	switch transferType {
	case TransferAdjustment, TransferCashToBank, TransferBankToCash, TransferAdjustBankBalance, TransferBankToBank:
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown transfer type")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Transfer amount must be positive")
	}
	if transferType == TransferAdjustment || transferType == TransferAdjustBankBalance {
		if payment.AdjustmentType != valueobject.AdjustmentAdd && payment.AdjustmentType != valueobject.AdjustmentDeduct {
			return nil, shared.NewDomainError("INVALID_INPUT", "Adjustment transfers require an adjustment direction")
		}
	}
	return &Transfer{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		TransferType:         transferType,
		Amount:               amount,
		Date:                 entryDate,
		Description:          description,
		PaymentDetail:        payment,
	}, nil
}

// SetDestinationBank records the receiving account of a Bank To Bank move
func (t *Transfer) SetDestinationBank(bankName, holderName, accountNumber string) error {
	if t.TransferType != TransferBankToBank {
		return shared.NewDomainError("INVALID_STATE", "Only Bank To Bank transfers have a destination bank")
	}
	if bankName == "" {
		return shared.NewDomainError("INVALID_INPUT", "Destination bank name is required")
	}
	t.ToBankName = bankName
	t.ToBankHolderName = holderName
	t.ToAccountNumber = accountNumber
	return nil
}
