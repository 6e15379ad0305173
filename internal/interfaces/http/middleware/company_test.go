package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockCompanyValidator is a test implementation of CompanyValidator
type mockCompanyValidator struct {
	ValidCompanies map[string]bool
	ShouldFail     bool
	FailError      error
}

func (m *mockCompanyValidator) ValidateCompany(companyID string) error {
	if m.ShouldFail {
		return m.FailError
	}
	if m.ValidCompanies[companyID] {
		return nil
	}
	return errors.New("company not found")
}

func TestCompanyMiddleware_HeaderExtraction(t *testing.T) {
	tests := []struct {
		name           string
		companyID      string
		expectedStatus int
	}{
		{
			name:           "valid company ID in header",
			companyID:      uuid.New().String(),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing company ID",
			companyID:      "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid company ID format",
			companyID:      "invalid-uuid",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CompanyMiddleware())

			var capturedCompanyID string
			router.GET("/test", func(c *gin.Context) {
				capturedCompanyID = GetCompanyID(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.companyID != "" {
				req.Header.Set(CompanyHeaderKey, tt.companyID)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.companyID, capturedCompanyID)
			}
		})
	}
}

func TestCompanyMiddleware_SkipPaths(t *testing.T) {
	router := gin.New()
	router.Use(CompanyMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/api/v1/companies", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/health", "/api/v1/companies"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "path %s should not require company context", path)
	}
}

func TestCompanyMiddleware_Validator(t *testing.T) {
	validID := uuid.New().String()
	unknownID := uuid.New().String()

	cfg := DefaultCompanyConfig()
	cfg.Validator = &mockCompanyValidator{
		ValidCompanies: map[string]bool{validID: true},
	}

	router := gin.New()
	router.Use(CompanyMiddlewareWithConfig(cfg))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("known company passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(CompanyHeaderKey, validID)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown company rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(CompanyHeaderKey, unknownID)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid or unknown company")
	})
}

func TestOptionalCompanyMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(OptionalCompanyMiddleware())

	var capturedCompanyID string
	router.GET("/test", func(c *gin.Context) {
		capturedCompanyID = GetCompanyID(c)
		c.Status(http.StatusOK)
	})

	t.Run("proceeds without company header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, capturedCompanyID)
	})

	t.Run("still extracts company when present", func(t *testing.T) {
		companyID := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(CompanyHeaderKey, companyID)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, companyID, capturedCompanyID)
	})
}

func TestGetCompanyUUID(t *testing.T) {
	companyID := uuid.New()

	router := gin.New()
	router.Use(CompanyMiddleware())

	var parsed uuid.UUID
	router.GET("/test", func(c *gin.Context) {
		var err error
		parsed, err = GetCompanyUUID(c)
		require.NoError(t, err)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(CompanyHeaderKey, companyID.String())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, companyID, parsed)
}
