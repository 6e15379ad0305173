package books

import (
	"github.com/goldfin/backend/internal/domain/shared"
)

// PartyRepository persists counterparties
type PartyRepository interface {
	shared.CompanyRepository[Party]
}

// ExpenseRepository persists expense entries
type ExpenseRepository interface {
	shared.CompanyRepository[Expense]
}

// OtherIncomeRepository persists income entries
type OtherIncomeRepository interface {
	shared.CompanyRepository[OtherIncome]
}

// ChargeInOutRepository persists charge entries
type ChargeInOutRepository interface {
	shared.CompanyRepository[ChargeInOut]
}

// PaymentInOutRepository persists party payments
type PaymentInOutRepository interface {
	shared.CompanyRepository[PaymentInOut]
}

// TransferRepository persists transfers
type TransferRepository interface {
	shared.CompanyRepository[Transfer]
}
