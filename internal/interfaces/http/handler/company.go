package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	orgapp "github.com/goldfin/backend/internal/application/org"
	"github.com/goldfin/backend/internal/interfaces/http/dto"
)

// maxUploadBytes caps uploaded image size
const maxUploadBytes = 5 << 20

// CompanyHandler handles company-level API endpoints
type CompanyHandler struct {
	BaseHandler
	companyService *orgapp.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *orgapp.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// RegisterRoutes registers company routes
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	companies := rg.Group("/companies")
	{
		companies.POST("", h.Create)
		companies.GET("/me", h.Get)
		companies.PUT("/me", h.Update)
		companies.POST("/me/logo", h.UploadLogo)
		companies.POST("/me/bank-accounts", h.AddBankAccount)
		companies.DELETE("/me/bank-accounts", h.RemoveBankAccount)
	}
}

// Create godoc
// @ID           createCompany
// @Summary      Register a new company
// @Description  Creates a company, the root of all tenant-scoped data
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        request body orgapp.CreateCompanyRequest true "Company registration request"
// @Success      201 {object} APIResponse[orgapp.CompanyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	var req orgapp.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.companyService.CreateCompany(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get godoc
// @ID           getCompany
// @Summary      Get the current company
// @Tags         companies
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Success      200 {object} APIResponse[orgapp.CompanyResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /companies/me [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	resp, err := h.companyService.GetCompany(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update godoc
// @ID           updateCompany
// @Summary      Update the current company profile
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body orgapp.UpdateCompanyRequest true "Company update request"
// @Success      200 {object} APIResponse[orgapp.CompanyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /companies/me [put]
func (h *CompanyHandler) Update(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	var req orgapp.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.companyService.UpdateCompany(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UploadLogo godoc
// @ID           uploadCompanyLogo
// @Summary      Upload the company logo
// @Tags         companies
// @Accept       multipart/form-data
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        file formData file true "Logo image"
// @Success      200 {object} APIResponse[orgapp.CompanyResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /companies/me/logo [post]
func (h *CompanyHandler) UploadLogo(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	data, contentType, ok := h.readUpload(c)
	if !ok {
		return
	}

	resp, err := h.companyService.UploadLogo(c.Request.Context(), companyID, data, contentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddBankAccount godoc
// @ID           addCompanyBankAccount
// @Summary      Add a bank account to the company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body orgapp.BankAccountRequest true "Bank account"
// @Success      200 {object} APIResponse[orgapp.CompanyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /companies/me/bank-accounts [post]
func (h *CompanyHandler) AddBankAccount(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	var req orgapp.BankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.companyService.AddBankAccount(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// removeBankAccountRequest identifies the account to remove
type removeBankAccountRequest struct {
	BankName      string `json:"bank_name" binding:"required"`
	AccountNumber string `json:"account_number" binding:"required"`
}

// RemoveBankAccount godoc
// @ID           removeCompanyBankAccount
// @Summary      Remove a bank account from the company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body removeBankAccountRequest true "Account identification"
// @Success      200 {object} APIResponse[orgapp.CompanyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /companies/me/bank-accounts [delete]
func (h *CompanyHandler) RemoveBankAccount(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	var req removeBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.companyService.RemoveBankAccount(c.Request.Context(), companyID, req.BankName, req.AccountNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// readUpload reads a multipart file upload, enforcing the size cap
func (h *BaseHandler) readUpload(c *gin.Context) ([]byte, string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file upload")
		return nil, "", false
	}
	if fileHeader.Size > maxUploadBytes {
		h.Error(c, 413, dto.ErrCodeBadRequest, "File exceeds maximum allowed size")
		return nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read upload")
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		h.InternalError(c, "Failed to read upload")
		return nil, "", false
	}
	return data, fileHeader.Header.Get("Content-Type"), true
}
