package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/goldfin/backend/internal/application/report"
)

// FeedHandler serves the unified transaction feed
type FeedHandler struct {
	BaseHandler
	aggregator *reportapp.Aggregator
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(aggregator *reportapp.Aggregator) *FeedHandler {
	return &FeedHandler{aggregator: aggregator}
}

// RegisterRoutes registers feed routes
func (h *FeedHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/transactions", h.Feed)
}

// Feed godoc
// @ID           getTransactionFeed
// @Summary      Unified transaction feed
// @Description  Every money movement of the company in one chronological feed, viewed from the cash box or the bank. The bank view includes per-account balances.
// @Tags         transactions
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        view query string false "Feed view: cash or bank (default cash)"
// @Param        from query string false "From date (YYYY-MM-DD)"
// @Param        to query string false "To date (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[reportapp.FeedResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /transactions [get]
func (h *FeedHandler) Feed(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	var req reportapp.FeedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.aggregator.Feed(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
