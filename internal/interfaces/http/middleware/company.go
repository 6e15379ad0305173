package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/goldfin/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context keys for company scoping
const (
	CompanyIDKey     = "company_id"
	CompanyHeaderKey = "X-Company-ID"
)

// CompanyValidator checks that a company exists and is usable
type CompanyValidator interface {
	ValidateCompany(companyID string) error
}

// CompanyMiddlewareConfig holds configuration for company middleware
type CompanyMiddlewareConfig struct {
	// SkipPaths are paths that don't require company context (e.g., health check)
	SkipPaths []string
	// Required determines if company context is mandatory
	Required bool
	// Validator is an optional validator to check if the company exists
	Validator CompanyValidator
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultCompanyConfig returns default company middleware configuration
func DefaultCompanyConfig() CompanyMiddlewareConfig {
	return CompanyMiddlewareConfig{
		SkipPaths: []string{"/health", "/healthz", "/ready", "/api/v1/health", "/api/v1/companies"},
		Required:  true,
		Validator: nil,
		Logger:    nil,
	}
}

// CompanyMiddleware extracts the company ID from the X-Company-ID header
// and installs it in both the gin context and the request context logger.
func CompanyMiddleware() gin.HandlerFunc {
	return CompanyMiddlewareWithConfig(DefaultCompanyConfig())
}

// CompanyMiddlewareWithConfig returns company middleware with custom configuration
func CompanyMiddlewareWithConfig(cfg CompanyMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check if path should be skipped
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath || strings.HasPrefix(path, skipPath+"/") {
				c.Next()
				return
			}
		}

		companyID := c.GetHeader(CompanyHeaderKey)

		if companyID != "" {
			if _, err := uuid.Parse(companyID); err != nil {
				respondCompanyRequired(c, "Invalid company ID format")
				return
			}
		}

		if companyID == "" && cfg.Required {
			respondCompanyRequired(c, "Company identification required")
			return
		}

		if companyID != "" && cfg.Validator != nil {
			if err := cfg.Validator.ValidateCompany(companyID); err != nil {
				log := cfg.Logger
				if log == nil {
					log = logger.FromContext(c.Request.Context())
				}
				log.Warn("Company validation failed",
					zap.String("company_id", companyID),
					zap.Error(err),
				)
				respondCompanyRequired(c, "Invalid or unknown company")
				return
			}
		}

		if companyID != "" {
			// Set in gin context for easy access in handlers
			c.Set(CompanyIDKey, companyID)

			// Set in request context for service layer access
			ctx := c.Request.Context()
			log := logger.FromContext(ctx)
			ctx, _ = logger.WithCompanyID(ctx, log, companyID)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

// respondCompanyRequired sends a bad request response for missing or invalid company context
func respondCompanyRequired(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ERR_BAD_REQUEST",
			"message": message,
		},
	})
}

// GetCompanyID retrieves the company ID from gin.Context
func GetCompanyID(c *gin.Context) string {
	if companyID, exists := c.Get(CompanyIDKey); exists {
		if cid, ok := companyID.(string); ok {
			return cid
		}
	}
	return ""
}

// GetCompanyUUID retrieves the company ID as UUID from gin.Context
func GetCompanyUUID(c *gin.Context) (uuid.UUID, error) {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(companyID)
}

// OptionalCompanyMiddleware creates middleware that doesn't require a company
func OptionalCompanyMiddleware() gin.HandlerFunc {
	cfg := DefaultCompanyConfig()
	cfg.Required = false
	return CompanyMiddlewareWithConfig(cfg)
}
