package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/goldfin/backend/internal/domain/books"
	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/goldfin/backend/internal/domain/shared/valueobject"
	"github.com/goldfin/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupBooksTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.PartyModel{},
		&models.ExpenseModel{},
		&models.OtherIncomeModel{},
		&models.ChargeInOutModel{},
		&models.PaymentInOutModel{},
		&models.TransferModel{},
	)
	require.NoError(t, err)

	return db
}

func TestExpenseRepository_PaymentDetailRoundTrip(t *testing.T) {
	db := setupBooksTestDB(t)
	repo := NewGormExpenseRepository(db)
	ctx := context.Background()

	companyID := uuid.New()
	split := valueobject.PaymentDetail{
		PaymentMode:    valueobject.PaymentModeBoth,
		CashAmount:     decimal.NewFromInt(300),
		BankAmount:     decimal.NewFromInt(700),
		BankName:       "HDFC",
		BankHolderName: "EGF",
		AccountNumber:  "1111",
	}
	expense, err := books.NewExpense(companyID, nil, "Rent", "May office rent",
		decimal.NewFromInt(1000), time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), split)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, expense))

	found, err := repo.FindByIDForCompany(ctx, companyID, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.PaymentModeBoth, found.PaymentDetail.PaymentMode)
	assert.True(t, found.PaymentDetail.CashAmount.Equal(decimal.NewFromInt(300)))
	assert.True(t, found.PaymentDetail.BankAmount.Equal(decimal.NewFromInt(700)))
	assert.Equal(t, "HDFC", found.PaymentDetail.BankName)
}

func TestExpenseRepository_DateRangeFilter(t *testing.T) {
	db := setupBooksTestDB(t)
	repo := NewGormExpenseRepository(db)
	ctx := context.Background()

	companyID := uuid.New()
	for _, day := range []int{1, 10, 25} {
		e, err := books.NewExpense(companyID, nil, "Misc", "",
			decimal.NewFromInt(100), time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC),
			valueobject.NewCashPayment(decimal.NewFromInt(100)))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, e))
	}

	from := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	filter := shared.Unpaged()
	filter.From = &from
	filter.To = &to

	entries, err := repo.FindAllForCompany(ctx, companyID, filter)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 10, entries[0].Date.Day())
}

func TestTransferRepository_DestinationBankRoundTrip(t *testing.T) {
	db := setupBooksTestDB(t)
	repo := NewGormTransferRepository(db)
	ctx := context.Background()

	companyID := uuid.New()
	transfer, err := books.NewTransfer(companyID, books.TransferBankToBank,
		decimal.NewFromInt(5000), time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), "rebalance",
		valueobject.NewBankPayment(decimal.NewFromInt(5000), "HDFC", "EGF", "1111"))
	require.NoError(t, err)
	require.NoError(t, transfer.SetDestinationBank("ICICI", "EGF", "2222"))
	require.NoError(t, repo.Save(ctx, transfer))

	found, err := repo.FindByIDForCompany(ctx, companyID, transfer.ID)
	require.NoError(t, err)
	assert.Equal(t, books.TransferBankToBank, found.TransferType)
	assert.Equal(t, "HDFC", found.PaymentDetail.BankName)
	assert.Equal(t, "ICICI", found.ToBankName)
	assert.Equal(t, "2222", found.ToAccountNumber)
}

func TestPaymentRepository_CompanyScoping(t *testing.T) {
	db := setupBooksTestDB(t)
	repo := NewGormPaymentRepository(db)
	ctx := context.Background()

	companyA := uuid.New()
	companyB := uuid.New()
	partyID := uuid.New()

	save := func(companyID uuid.UUID) {
		p, err := books.NewPaymentInOut(companyID, nil, partyID, "Sharma Traders",
			books.CategoryPaymentIn, "", decimal.NewFromInt(2500),
			time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC),
			valueobject.NewCashPayment(decimal.NewFromInt(2500)))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, p))
	}
	save(companyA)
	save(companyA)
	save(companyB)

	paymentsA, err := repo.FindAllForCompany(ctx, companyA, shared.Unpaged())
	require.NoError(t, err)
	assert.Len(t, paymentsA, 2)

	count, err := repo.CountForCompany(ctx, companyB, shared.Unpaged())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
