package handler

import (
	"github.com/gin-gonic/gin"
	orgapp "github.com/goldfin/backend/internal/application/org"
	"github.com/goldfin/backend/internal/interfaces/http/dto"
)

// SchemeHandler handles interest scheme and penalty tier endpoints
type SchemeHandler struct {
	BaseHandler
	schemeService *orgapp.SchemeService
}

// NewSchemeHandler creates a new SchemeHandler
func NewSchemeHandler(schemeService *orgapp.SchemeService) *SchemeHandler {
	return &SchemeHandler{schemeService: schemeService}
}

// RegisterRoutes registers scheme and penalty tier routes
func (h *SchemeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	schemes := rg.Group("/schemes")
	{
		schemes.POST("", h.Create)
		schemes.GET("", h.List)
		schemes.GET("/:id", h.Get)
		schemes.PUT("/:id", h.Update)
		schemes.DELETE("", h.Delete)
	}

	tiers := rg.Group("/penalty-tiers")
	{
		tiers.POST("", h.CreatePenaltyTier)
		tiers.GET("", h.ListPenaltyTiers)
		tiers.PUT("/:id", h.UpdatePenaltyTier)
		tiers.DELETE("", h.DeletePenaltyTiers)
	}
}

// Create godoc
// @ID           createScheme
// @Summary      Create an interest scheme
// @Tags         schemes
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body orgapp.CreateSchemeRequest true "Scheme creation request"
// @Success      201 {object} APIResponse[orgapp.SchemeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /schemes [post]
func (h *SchemeHandler) Create(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	var req orgapp.CreateSchemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.schemeService.CreateScheme(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
// @ID           listSchemes
// @Summary      List interest schemes
// @Tags         schemes
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Success      200 {object} APIResponse[[]orgapp.SchemeResponse]
// @Router       /schemes [get]
func (h *SchemeHandler) List(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	resp, err := h.schemeService.ListSchemes(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get godoc
// @ID           getScheme
// @Summary      Get a scheme by ID
// @Tags         schemes
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        id path string true "Scheme ID"
// @Success      200 {object} APIResponse[orgapp.SchemeResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /schemes/{id} [get]
func (h *SchemeHandler) Get(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	schemeID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.schemeService.GetScheme(c.Request.Context(), companyID, schemeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update godoc
// @ID           updateScheme
// @Summary      Update a scheme's rate
// @Description  Updates the interest rate and period; existing loans keep their issued terms
// @Tags         schemes
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        id path string true "Scheme ID"
// @Param        request body orgapp.UpdateSchemeRequest true "Scheme update request"
// @Success      200 {object} APIResponse[orgapp.SchemeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /schemes/{id} [put]
func (h *SchemeHandler) Update(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	schemeID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req orgapp.UpdateSchemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.schemeService.UpdateScheme(c.Request.Context(), companyID, schemeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteSchemes
// @Summary      Delete schemes
// @Tags         schemes
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body dto.IDsRequest true "Scheme IDs"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /schemes [delete]
func (h *SchemeHandler) Delete(c *gin.Context) {
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
		h.BadRequest(c, "Invalid scheme ID format")
		return
	}

	if err := h.schemeService.DeleteSchemes(c.Request.Context(), companyID, ids); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreatePenaltyTier godoc
// @ID           createPenaltyTier
// @Summary      Create a penalty tier
// @Description  Adds a day-range tier for overdue penalty interest
// @Tags         penalty-tiers
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body orgapp.PenaltyTierRequest true "Penalty tier"
// @Success      201 {object} APIResponse[orgapp.PenaltyTierResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /penalty-tiers [post]
func (h *SchemeHandler) CreatePenaltyTier(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	var req orgapp.PenaltyTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.schemeService.CreatePenaltyTier(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListPenaltyTiers godoc
// @ID           listPenaltyTiers
// @Summary      List penalty tiers
// @Tags         penalty-tiers
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Success      200 {object} APIResponse[[]orgapp.PenaltyTierResponse]
// @Router       /penalty-tiers [get]
func (h *SchemeHandler) ListPenaltyTiers(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	resp, err := h.schemeService.ListPenaltyTiers(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdatePenaltyTier godoc
// @ID           updatePenaltyTier
// @Summary      Update a penalty tier
// @Tags         penalty-tiers
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        id path string true "Tier ID"
// @Param        request body orgapp.PenaltyTierRequest true "Penalty tier"
// @Success      200 {object} APIResponse[orgapp.PenaltyTierResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /penalty-tiers/{id} [put]
func (h *SchemeHandler) UpdatePenaltyTier(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	tierID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req orgapp.PenaltyTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.schemeService.UpdatePenaltyTier(c.Request.Context(), companyID, tierID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeletePenaltyTiers godoc
// @ID           deletePenaltyTiers
// @Summary      Delete penalty tiers
// @Tags         penalty-tiers
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body dto.IDsRequest true "Tier IDs"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Router       /penalty-tiers [delete]
func (h *SchemeHandler) DeletePenaltyTiers(c *gin.Context) {
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
		h.BadRequest(c, "Invalid tier ID format")
		return
	}

	if err := h.schemeService.DeletePenaltyTiers(c.Request.Context(), companyID, ids); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
