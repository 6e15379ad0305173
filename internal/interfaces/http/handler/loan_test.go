package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	lendingapp "github.com/goldfin/backend/internal/application/lending"
	"github.com/goldfin/backend/internal/domain/org"
	"github.com/goldfin/backend/internal/infrastructure/persistence"
	"github.com/goldfin/backend/internal/infrastructure/persistence/models"
	"github.com/goldfin/backend/internal/interfaces/http/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type loanTestEnv struct {
	router     *gin.Engine
	companyID  uuid.UUID
	customerID uuid.UUID
	schemeID   uuid.UUID
}

func setupLoanTestEnv(t *testing.T) *loanTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.CustomerModel{},
		&models.SchemeModel{},
		&models.PenaltyTierModel{},
		&models.IssuedLoanModel{},
		&models.LoanInterestModel{},
		&models.LoanPartPaymentModel{},
		&models.LoanPartReleaseModel{},
		&models.LoanCloseModel{},
		&models.SequenceCounterModel{},
	))

	loanRepo := persistence.NewGormLoanRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)
	schemeRepo := persistence.NewGormSchemeRepository(db)
	penaltyRepo := persistence.NewGormPenaltyRepository(db)

	company, err := org.NewCompany("Everest Gold Finance", "office@everestgold.in", "9820012345", "Pune")
	require.NoError(t, err)

	ctx := context.Background()

	scheme, err := org.NewScheme(company, "Standard 18%", decimal.NewFromInt(18), 30, org.ValuationByWeight)
	require.NoError(t, err)
	require.NoError(t, schemeRepo.Save(ctx, scheme))

	customer, err := org.NewCustomer(company.ID, uuid.New(), "MB_001", "Ramesh", "Patil")
	require.NoError(t, err)
	require.NoError(t, customerRepo.Save(ctx, customer))

	service := lendingapp.NewLoanService(
		loanRepo, customerRepo, schemeRepo, penaltyRepo,
		lendingapp.NopNotifier{}, zap.NewNop(),
	)

	router := gin.New()
	api := router.Group("/api/v1")
	NewLoanHandler(service).RegisterRoutes(api)

	return &loanTestEnv{
		router:     router,
		companyID:  company.ID,
		customerID: customer.ID,
		schemeID:   scheme.ID,
	}
}

func (e *loanTestEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.CompanyHeaderKey, e.companyID.String())
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *loanTestEnv) issueLoan(t *testing.T) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/loans", gin.H{
		"customer_id": e.customerID,
		"scheme_id":   e.schemeID,
		"loan_amount": "100000",
		"issue_date":  "2024-05-10T00:00:00Z",
		"items": []gin.H{
			{"name": "Chain", "carat": 22, "quantity": 1, "gross_weight": "25.5", "net_weight": "24.0"},
		},
		"payment_detail": gin.H{"payment_mode": "Cash", "cash_amount": "100000"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			ID         string `json:"id"`
			LoanNumber string `json:"loan_number"`
			Status     string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.ID
}

func TestLoanHandler_Issue(t *testing.T) {
	env := setupLoanTestEnv(t)

	t.Run("issues a loan with financial-year number", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/loans", gin.H{
			"customer_id": env.customerID,
			"scheme_id":   env.schemeID,
			"loan_amount": "100000",
			"issue_date":  "2024-05-10T00:00:00Z",
			"items": []gin.H{
				{"name": "Chain", "carat": 22, "quantity": 1, "gross_weight": "25.5", "net_weight": "24.0"},
			},
			"payment_detail": gin.H{"payment_mode": "Cash", "cash_amount": "100000"},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"loan_number":"EGF/24_25_000001"`)
		assert.Contains(t, w.Body.String(), `"transaction_number":"TRXN000001"`)
	})

	t.Run("rejects a duplicate open loan for the same customer and scheme", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/loans", gin.H{
			"customer_id": env.customerID,
			"scheme_id":   env.schemeID,
			"loan_amount": "50000",
			"issue_date":  "2024-06-01T00:00:00Z",
			"items": []gin.H{
				{"name": "Ring", "carat": 22, "quantity": 1, "gross_weight": "8.0", "net_weight": "7.5"},
			},
			"payment_detail": gin.H{"payment_mode": "Cash", "cash_amount": "50000"},
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_DUPLICATE_LOAN")
	})

	t.Run("rejects missing items", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/loans", gin.H{
			"customer_id":    env.customerID,
			"scheme_id":      env.schemeID,
			"loan_amount":    "100000",
			"issue_date":     "2024-05-10T00:00:00Z",
			"items":          []gin.H{},
			"payment_detail": gin.H{"payment_mode": "Cash", "cash_amount": "100000"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects request without company header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/loans", nil)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoanHandler_ListAndGet(t *testing.T) {
	env := setupLoanTestEnv(t)
	loanID := env.issueLoan(t)

	t.Run("list returns pagination meta", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/loans?page=1&page_size=10", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Meta struct {
				Total      int64 `json:"total"`
				TotalPages int   `json:"total_pages"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.Meta.Total)
		assert.Equal(t, 1, resp.Meta.TotalPages)
	})

	t.Run("get returns the loan", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/loans/"+loanID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), loanID)
	})

	t.Run("unknown loan is 404", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/loans/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
	})

	t.Run("malformed loan ID is 400", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/loans/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoanHandler_PendingInterest(t *testing.T) {
	env := setupLoanTestEnv(t)
	loanID := env.issueLoan(t)

	// 30 calendar days plus the inclusive issue day, at 18% on 100000
	w := env.do(t, http.MethodGet,
		fmt.Sprintf("/api/v1/loans/%s/pending-interest?as_of=2024-06-09", loanID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Days            int             `json:"days"`
			PendingInterest decimal.Decimal `json:"pending_interest"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 31, resp.Data.Days)
	assert.Equal(t, "1834.52", resp.Data.PendingInterest.StringFixed(2))

	t.Run("rejects malformed as_of", func(t *testing.T) {
		w := env.do(t, http.MethodGet,
			fmt.Sprintf("/api/v1/loans/%s/pending-interest?as_of=junk", loanID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoanHandler_InterestAndClose(t *testing.T) {
	env := setupLoanTestEnv(t)
	loanID := env.issueLoan(t)

	t.Run("posts an interest payment", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/loans/"+loanID+"/interest", gin.H{
			"date":           "2024-06-09T00:00:00Z",
			"amount_paid":    "1834.52",
			"payment_detail": gin.H{"payment_mode": "Cash", "cash_amount": "1834.52"},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"is_uchak":false`)
	})

	t.Run("closes the loan", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/loans/"+loanID+"/close", gin.H{
			"date":           "2024-07-01T00:00:00Z",
			"payment_detail": gin.H{"payment_mode": "Cash", "cash_amount": "101300"},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"status":"Closed"`)
	})

	t.Run("rejects interest on a closed loan", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/loans/"+loanID+"/interest", gin.H{
			"date":           "2024-08-01T00:00:00Z",
			"amount_paid":    "500",
			"payment_detail": gin.H{"payment_mode": "Cash", "cash_amount": "500"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_LOAN_CLOSED")
	})
}
