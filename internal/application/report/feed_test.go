package report

import (
	"testing"
	"time"

	"github.com/goldfin/backend/internal/domain/books"
	"github.com/goldfin/backend/internal/domain/lending"
	"github.com/goldfin/backend/internal/domain/org"
	"github.com/goldfin/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTransfer(t *testing.T, companyID uuid.UUID, transferType books.TransferType, amount string, day time.Time, payment valueobject.PaymentDetail) books.Transfer {
	t.Helper()
	tr, err := books.NewTransfer(companyID, transferType, dec(amount), day, "", payment)
	require.NoError(t, err)
	return *tr
}

func TestTransferFanOut_BankToBank(t *testing.T) {
	companyID := uuid.New()
	payment := valueobject.NewBankPayment(dec("5000"), "HDFC", "Eagle Gold", "111122223333")
	tr := newTransfer(t, companyID, books.TransferBankToBank, "5000", date(2024, time.May, 10), payment)
	require.NoError(t, tr.SetDestinationBank("ICICI", "Eagle Gold", "444455556666"))

	rows := transferRows(&tr, BankView)
	require.Len(t, rows, 2)

	out, in := rows[0], rows[1]
	assert.Equal(t, DirectionOut, out.category)
	assert.Equal(t, DirectionIn, in.category)
	assert.True(t, amountFor(&out, BankView).Equal(amountFor(&in, BankView)))
	assert.True(t, amountFor(&out, BankView).Equal(dec("5000")))

	// the In leg lands on the destination account, the Out leg keeps the
	// source account from the payment detail
	assert.Equal(t, "ICICI", in.bankName)
	assert.Empty(t, out.bankName)
	assert.Equal(t, "HDFC", out.payment.BankName)

	// no cash movement at all
	assert.Empty(t, transferRows(&tr, CashView))
}

func TestTransferFanOut_CashToBankAndBack(t *testing.T) {
	companyID := uuid.New()
	payment := valueobject.NewBankPayment(dec("2000"), "HDFC", "Eagle Gold", "111122223333")

	toBank := newTransfer(t, companyID, books.TransferCashToBank, "2000", date(2024, time.May, 10), payment)
	rows := transferRows(&toBank, CashView)
	require.Len(t, rows, 1)
	assert.Equal(t, DirectionOut, rows[0].category)
	rows = transferRows(&toBank, BankView)
	require.Len(t, rows, 1)
	assert.Equal(t, DirectionIn, rows[0].category)

	toCash := newTransfer(t, companyID, books.TransferBankToCash, "2000", date(2024, time.May, 11), payment)
	rows = transferRows(&toCash, CashView)
	require.Len(t, rows, 1)
	assert.Equal(t, DirectionIn, rows[0].category)
	rows = transferRows(&toCash, BankView)
	require.Len(t, rows, 1)
	assert.Equal(t, DirectionOut, rows[0].category)
}

func TestTransferFanOut_Adjustments(t *testing.T) {
	companyID := uuid.New()

	cashAdd := valueobject.NewCashPayment(dec("300"))
	cashAdd.AdjustmentType = valueobject.AdjustmentAdd
	adj := newTransfer(t, companyID, books.TransferAdjustment, "300", date(2024, time.May, 12), cashAdd)

	rows := transferRows(&adj, CashView)
	require.Len(t, rows, 1)
	assert.Equal(t, DirectionIn, rows[0].category)
	assert.Empty(t, transferRows(&adj, BankView), "cash box adjustment never reaches the bank view")

	bankDeduct := valueobject.NewBankPayment(dec("450"), "HDFC", "Eagle Gold", "111122223333")
	bankDeduct.AdjustmentType = valueobject.AdjustmentDeduct
	bankAdj := newTransfer(t, companyID, books.TransferAdjustBankBalance, "450", date(2024, time.May, 13), bankDeduct)

	assert.Empty(t, transferRows(&bankAdj, CashView), "bank balance adjustment never reaches the cash view")
	rows = transferRows(&bankAdj, BankView)
	require.Len(t, rows, 1)
	assert.Equal(t, DirectionOut, rows[0].category)
}

func TestAssembleFeed_CashViewDropsZeroAmounts(t *testing.T) {
	companyID := uuid.New()
	bankOnly := valueobject.NewBankPayment(dec("900"), "HDFC", "Eagle Gold", "111122223333")
	expense, err := books.NewExpense(companyID, nil, "Rent", "office rent", dec("900"), date(2024, time.May, 1), bankOnly)
	require.NoError(t, err)

	data := &sourceData{CompanyID: companyID, Expenses: []books.Expense{*expense}}

	cash := assembleFeed(data, CashView, nil, nil)
	assert.Empty(t, cash, "bank-only payment has a zero cash leg and must not appear")

	bank := assembleFeed(data, BankView, nil, nil)
	require.Len(t, bank, 1)
	assert.Equal(t, DirectionOut, bank[0].Category)
	assert.True(t, bank[0].Amount.Equal(dec("900")))
	assert.Equal(t, "HDFC", bank[0].BankName)
}

func TestAssembleFeed_SortsNewestFirstAndFiltersRange(t *testing.T) {
	companyID := uuid.New()
	cash := valueobject.NewCashPayment(dec("100"))

	var expenses []books.Expense
	for _, day := range []time.Time{
		date(2024, time.May, 1),
		date(2024, time.May, 20),
		date(2024, time.May, 10),
	} {
		e, err := books.NewExpense(companyID, nil, "Tea", "", dec("100"), day, cash)
		require.NoError(t, err)
		expenses = append(expenses, *e)
	}
	data := &sourceData{CompanyID: companyID, Expenses: expenses}

	feed := assembleFeed(data, CashView, nil, nil)
	require.Len(t, feed, 3)
	assert.Equal(t, date(2024, time.May, 20), feed[0].Date)
	assert.Equal(t, date(2024, time.May, 10), feed[1].Date)
	assert.Equal(t, date(2024, time.May, 1), feed[2].Date)

	from := date(2024, time.May, 5)
	to := date(2024, time.May, 15)
	windowed := assembleFeed(data, CashView, &from, &to)
	require.Len(t, windowed, 1)
	assert.Equal(t, date(2024, time.May, 10), windowed[0].Date)
}

func TestBankBalances_AllTimeIgnoresReportRange(t *testing.T) {
	companyID := uuid.New()
	hdfc := valueobject.NewBankPayment(dec("10000"), "HDFC", "Eagle Gold", "111122223333")

	income, err := books.NewOtherIncome(companyID, nil, "Scrap Sale", "", dec("10000"), date(2023, time.January, 5), hdfc)
	require.NoError(t, err)

	hdfcOut := valueobject.NewBankPayment(dec("4000"), "HDFC", "Eagle Gold", "111122223333")
	expense, err := books.NewExpense(companyID, nil, "Salary", "", dec("4000"), date(2024, time.June, 1), hdfcOut)
	require.NoError(t, err)

	data := &sourceData{
		CompanyID: companyID,
		Incomes:   []books.OtherIncome{*income},
		Expenses:  []books.Expense{*expense},
	}

	accounts := []org.BankAccount{
		{BankName: "HDFC", HolderName: "Eagle Gold", AccountNumber: "111122223333"},
		{BankName: "ICICI", HolderName: "Eagle Gold", AccountNumber: "444455556666"},
	}
	balances := bankBalances(data, accounts)
	require.Len(t, balances, 2)
	assert.True(t, balances[0].Balance.Equal(dec("6000")), "got %s", balances[0].Balance)
	assert.True(t, balances[1].Balance.IsZero())
}

func TestExtractLoanRows_StatusPerEntryKind(t *testing.T) {
	companyID := uuid.New()
	customerID := uuid.New()
	cash := valueobject.NewCashPayment(dec("50000"))

	loan, err := lending.NewIssuedLoan(
		companyID, uuid.New(), customerID, uuid.New(),
		"EGF/24_25_000001", "TRXN000001",
		dec("50000"), decimal.Zero,
		date(2024, time.April, 1), 30,
		[]lending.GoldItem{{Name: "Chain", Carat: 22, Quantity: 1, GrossWeight: dec("12.5"), NetWeight: dec("12.1")}},
		cash,
	)
	require.NoError(t, err)
	_, err = loan.PostUchakInterest(date(2024, time.April, 20), dec("400"), valueobject.NewCashPayment(dec("400")))
	require.NoError(t, err)

	data := &sourceData{
		CompanyID:     companyID,
		Loans:         []lending.IssuedLoan{*loan},
		CustomerNames: map[uuid.UUID]string{customerID: "Ramesh Patel"},
	}

	feed := assembleFeed(data, CashView, nil, nil)
	require.Len(t, feed, 2)
	assert.Equal(t, StatusUchakInterest, feed[0].Status)
	assert.Equal(t, DirectionIn, feed[0].Category)
	assert.Equal(t, StatusLoanIssued, feed[1].Status)
	assert.Equal(t, DirectionOut, feed[1].Category)
	assert.Equal(t, "Ramesh Patel", feed[1].Detail)
	assert.Equal(t, "EGF/24_25_000001", feed[1].Ref)
}
