package handler

import (
	"github.com/gin-gonic/gin"
	lendingapp "github.com/goldfin/backend/internal/application/lending"
	"github.com/goldfin/backend/internal/interfaces/http/dto"
)

// OtherLoanHandler handles loans taken from outside lenders
type OtherLoanHandler struct {
	BaseHandler
	otherLoanService *lendingapp.OtherLoanService
}

// NewOtherLoanHandler creates a new OtherLoanHandler
func NewOtherLoanHandler(otherLoanService *lendingapp.OtherLoanService) *OtherLoanHandler {
	return &OtherLoanHandler{otherLoanService: otherLoanService}
}

// RegisterRoutes registers other-loan routes
func (h *OtherLoanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	loans := rg.Group("/other-loans")
	{
		loans.POST("", h.Issue)
		loans.GET("", h.List)
		loans.GET("/:id", h.Get)
		loans.DELETE("", h.Delete)
		loans.POST("/:id/interest", h.PostInterest)
		loans.POST("/:id/renew", h.Renew)
		loans.POST("/:id/close", h.Close)
	}
}

// Issue godoc
// @ID           issueOtherLoan
// @Summary      Record a loan taken from an outside lender
// @Tags         other-loans
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body lendingapp.IssueOtherLoanRequest true "Other loan request"
// @Success      201 {object} APIResponse[lendingapp.OtherLoanResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /other-loans [post]
func (h *OtherLoanHandler) Issue(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	var req lendingapp.IssueOtherLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.otherLoanService.IssueOtherLoan(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
// @ID           listOtherLoans
// @Summary      List other loans
// @Tags         other-loans
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search by lender or loan number"
// @Success      200 {object} APIResponse[[]lendingapp.OtherLoanResponse]
// @Router       /other-loans [get]
func (h *OtherLoanHandler) List(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	page, err := h.otherLoanService.ListOtherLoans(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get godoc
// @ID           getOtherLoan
// @Summary      Get an other loan by ID
// @Tags         other-loans
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        id path string true "Other loan ID"
// @Success      200 {object} APIResponse[lendingapp.OtherLoanResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /other-loans/{id} [get]
func (h *OtherLoanHandler) Get(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	loanID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.otherLoanService.GetOtherLoan(c.Request.Context(), companyID, loanID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteOtherLoans
// @Summary      Delete other loans
// @Tags         other-loans
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body dto.IDsRequest true "Other loan IDs"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Router       /other-loans [delete]
func (h *OtherLoanHandler) Delete(c *gin.Context) {
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

	if err := h.otherLoanService.DeleteOtherLoans(c.Request.Context(), companyID, ids); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// PostInterest godoc
// @ID           postOtherLoanInterest
// @Summary      Record an interest payment to the lender
// @Tags         other-loans
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        id path string true "Other loan ID"
// @Param        request body lendingapp.PostOtherInterestRequest true "Interest payment"
// @Success      200 {object} APIResponse[lendingapp.OtherLoanResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /other-loans/{id}/interest [post]
func (h *OtherLoanHandler) PostInterest(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	loanID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req lendingapp.PostOtherInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.otherLoanService.PostInterest(c.Request.Context(), companyID, loanID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Renew godoc
// @ID           renewOtherLoan
// @Summary      Renew an other loan
// @Description  Rolls the loan forward to a new issue date, resetting its overdue clock
// @Tags         other-loans
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        id path string true "Other loan ID"
// @Param        request body lendingapp.RenewOtherLoanRequest true "Renewal details"
// @Success      200 {object} APIResponse[lendingapp.OtherLoanResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /other-loans/{id}/renew [post]
func (h *OtherLoanHandler) Renew(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	loanID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req lendingapp.RenewOtherLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.otherLoanService.Renew(c.Request.Context(), companyID, loanID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Close godoc
// @ID           closeOtherLoan
// @Summary      Close an other loan
// @Description  Records the settlement payment to the lender and closes the loan
// @Tags         other-loans
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        id path string true "Other loan ID"
// @Param        request body lendingapp.CloseOtherLoanRequest true "Closure details"
// @Success      200 {object} APIResponse[lendingapp.OtherLoanResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /other-loans/{id}/close [post]
func (h *OtherLoanHandler) Close(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	loanID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req lendingapp.CloseOtherLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.otherLoanService.Close(c.Request.Context(), companyID, loanID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
