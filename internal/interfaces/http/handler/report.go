package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/goldfin/backend/internal/application/report"
	"github.com/google/uuid"
)

// ReportHandler handles reporting and dashboard endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/daily", h.Daily)
		reports.GET("/loan-summary", h.LoanSummary)
		reports.GET("/statements/:loanId", h.CustomerStatement)
		reports.GET("/portfolio", h.Portfolio)
		reports.GET("/charts", h.ChartSeries)
	}
}

// Daily godoc
// @ID           getDailyReport
// @Summary      Daily cash report
// @Description  Aggregates all money movement of one day, optionally limited to a branch
// @Tags         reports
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        date query string false "Report date (YYYY-MM-DD, default today)"
// @Param        branch_id query string false "Limit to branch"
// @Success      200 {object} APIResponse[reportapp.DailyReportResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /reports/daily [get]
func (h *ReportHandler) Daily(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	var branchID *uuid.UUID
	if raw := c.Query("branch_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid branch_id format")
			return
		}
		branchID = &parsed
	}

	resp, err := h.reportService.DailyReport(c.Request.Context(), companyID, day, branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// LoanSummary godoc
// @ID           getLoanSummary
// @Summary      Loan book summary
// @Description  Per-loan outstanding figures with portfolio totals over the filtered set
// @Tags         reports
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        search query string false "Search by loan number or customer"
// @Param        branch_id query string false "Filter by branch"
// @Param        from query string false "Issue date from (YYYY-MM-DD)"
// @Param        to query string false "Issue date to (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[reportapp.LoanSummaryResponse]
// @Router       /reports/loan-summary [get]
func (h *ReportHandler) LoanSummary(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	resp, err := h.reportService.LoanSummary(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CustomerStatement godoc
// @ID           getCustomerStatement
// @Summary      Customer loan statement
// @Description  Chronological statement of one loan, from issue through every payment
// @Tags         reports
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        loanId path string true "Loan ID"
// @Success      200 {object} APIResponse[reportapp.CustomerStatementResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /reports/statements/{loanId} [get]
func (h *ReportHandler) CustomerStatement(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	loanID, ok := h.parseUUIDParam(c, "loanId")
	if !ok {
		return
	}

	resp, err := h.reportService.CustomerStatement(c.Request.Context(), companyID, loanID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Portfolio godoc
// @ID           getPortfolioSummary
// @Summary      Portfolio dashboard summary
// @Description  Company-wide headline figures for the dashboard
// @Tags         reports
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Success      200 {object} APIResponse[reportapp.PortfolioSummaryResponse]
// @Router       /reports/portfolio [get]
func (h *ReportHandler) Portfolio(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	resp, err := h.reportService.PortfolioSummary(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// chartQuery binds the chart series selectors
type chartQuery struct {
	Range  string `form:"range" binding:"omitempty,oneof=week month year"`
	Ledger string `form:"ledger" binding:"omitempty,oneof=loans other_loans"`
}

// ChartSeries godoc
// @ID           getChartSeries
// @Summary      Dashboard chart series
// @Description  Bucketed issue/close series for the dashboard charts
// @Tags         reports
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        range query string false "Bucket layout: week, month or year (default month)"
// @Param        ledger query string false "Loan book: loans or other_loans (default loans)"
// @Success      200 {object} APIResponse[reportapp.ChartSeriesResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /reports/charts [get]
func (h *ReportHandler) ChartSeries(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	var q chartQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if q.Range == "" {
		q.Range = string(reportapp.ChartMonth)
	}
	if q.Ledger == "" {
		q.Ledger = string(reportapp.LedgerLoans)
	}

	resp, err := h.reportService.ChartSeries(c.Request.Context(), companyID,
		reportapp.ChartLedger(q.Ledger), reportapp.ChartRange(q.Range))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
