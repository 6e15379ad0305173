package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	lendingapp "github.com/goldfin/backend/internal/application/lending"
	"github.com/goldfin/backend/internal/interfaces/http/dto"
)

// LoanHandler handles gold loan lifecycle endpoints
type LoanHandler struct {
	BaseHandler
	loanService *lendingapp.LoanService
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(loanService *lendingapp.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// RegisterRoutes registers loan routes
func (h *LoanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	loans := rg.Group("/loans")
	{
		loans.POST("", h.Issue)
		loans.GET("", h.List)
		loans.GET("/:id", h.Get)
		loans.DELETE("", h.Delete)
		loans.GET("/:id/pending-interest", h.PendingInterest)
		loans.POST("/:id/interest", h.PostInterest)
		loans.POST("/:id/uchak-interest", h.PostUchakInterest)
		loans.POST("/:id/part-payments", h.AddPartPayment)
		loans.POST("/:id/part-releases", h.AddPartRelease)
		loans.POST("/:id/close", h.Close)
	}
}

// Issue godoc
// @ID           issueLoan
// @Summary      Issue a gold loan
// @Description  Issues a loan against pledged gold items, allocating the company's next loan number
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body lendingapp.IssueLoanRequest true "Loan issue request"
// @Success      201 {object} APIResponse[lendingapp.LoanResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /loans [post]
func (h *LoanHandler) Issue(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	var req lendingapp.IssueLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.loanService.IssueLoan(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
// @ID           listLoans
// @Summary      List loans
// @Description  Paginated loan listing with search, branch and date filters
// @Tags         loans
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search by loan number or customer"
// @Param        branch_id query string false "Filter by branch"
// @Param        from query string false "Issue date from (YYYY-MM-DD)"
// @Param        to query string false "Issue date to (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[[]lendingapp.LoanResponse]
// @Router       /loans [get]
func (h *LoanHandler) List(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	page, err := h.loanService.ListLoans(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get godoc
// @ID           getLoan
// @Summary      Get a loan by ID
// @Tags         loans
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        id path string true "Loan ID"
// @Success      200 {object} APIResponse[lendingapp.LoanResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /loans/{id} [get]
func (h *LoanHandler) Get(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	loanID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.loanService.GetLoan(c.Request.Context(), companyID, loanID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteLoans
// @Summary      Delete loans
// @Description  Soft-deletes loans together with their ledger entries
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body dto.IDsRequest true "Loan IDs"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Router       /loans [delete]
func (h *LoanHandler) Delete(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	var req dto.IDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ids, err := parseIDs(req.IDs)
	if err != nil {
		h.BadRequest(c, "Invalid loan ID format")
		return
	}

	if err := h.loanService.DeleteLoans(c.Request.Context(), companyID, ids); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// PendingInterest godoc
// @ID           getPendingInterest
// @Summary      Compute pending interest
// @Description  Computes accrued interest from the last charge date up to the given date without posting anything
// @Tags         loans
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        id path string true "Loan ID"
// @Param        as_of query string false "Accrue up to this date (YYYY-MM-DD, default today)"
// @Success      200 {object} APIResponse[lendingapp.AccrualResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /loans/{id}/pending-interest [get]
func (h *LoanHandler) PendingInterest(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	loanID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid as_of date, expected YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	resp, err := h.loanService.PendingInterest(c.Request.Context(), companyID, loanID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// PostInterest godoc
// @ID           postLoanInterest
// @Summary      Post an interest payment
// @Description  Records an interest payment and rolls the loan's last charge date forward
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        id path string true "Loan ID"
// @Param        request body lendingapp.PostInterestRequest true "Interest payment"
// @Success      200 {object} APIResponse[lendingapp.LoanResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /loans/{id}/interest [post]
func (h *LoanHandler) PostInterest(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	loanID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req lendingapp.PostInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.loanService.PostInterest(c.Request.Context(), companyID, loanID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// PostUchakInterest godoc
// @ID           postUchakInterest
// @Summary      Post an uchak interest payment
// @Description  Records an ad-hoc interest receipt that does not advance the last charge date
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        id path string true "Loan ID"
// @Param        request body lendingapp.PostUchakRequest true "Uchak interest payment"
// @Success      200 {object} APIResponse[lendingapp.LoanResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /loans/{id}/uchak-interest [post]
func (h *LoanHandler) PostUchakInterest(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	loanID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req lendingapp.PostUchakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.loanService.PostUchakInterest(c.Request.Context(), companyID, loanID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddPartPayment godoc
// @ID           addLoanPartPayment
// @Summary      Record a principal part payment
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        id path string true "Loan ID"
// @Param        request body lendingapp.PartPaymentRequest true "Part payment"
// @Success      200 {object} APIResponse[lendingapp.LoanResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /loans/{id}/part-payments [post]
func (h *LoanHandler) AddPartPayment(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	loanID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req lendingapp.PartPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.loanService.AddPartPayment(c.Request.Context(), companyID, loanID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddPartRelease godoc
// @ID           addLoanPartRelease
// @Summary      Release part of the pledged gold
// @Description  Releases selected gold items against a payment
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        id path string true "Loan ID"
// @Param        request body lendingapp.PartReleaseRequest true "Part release"
// @Success      200 {object} APIResponse[lendingapp.LoanResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /loans/{id}/part-releases [post]
func (h *LoanHandler) AddPartRelease(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	loanID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req lendingapp.PartReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.loanService.AddPartRelease(c.Request.Context(), companyID, loanID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Close godoc
// @ID           closeLoan
// @Summary      Close a loan
// @Description  Settles outstanding principal and interest and closes the loan
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        id path string true "Loan ID"
// @Param        request body lendingapp.CloseLoanRequest true "Closure details"
// @Success      200 {object} APIResponse[lendingapp.LoanResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /loans/{id}/close [post]
func (h *LoanHandler) Close(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	loanID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req lendingapp.CloseLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.loanService.CloseLoan(c.Request.Context(), companyID, loanID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
