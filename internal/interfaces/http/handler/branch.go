package handler

import (
	"github.com/gin-gonic/gin"
	orgapp "github.com/goldfin/backend/internal/application/org"
	"github.com/goldfin/backend/internal/interfaces/http/dto"
)

// BranchHandler handles branch API endpoints
type BranchHandler struct {
	BaseHandler
	branchService *orgapp.BranchService
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(branchService *orgapp.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// RegisterRoutes registers branch routes
func (h *BranchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	branches := rg.Group("/branches")
	{
		branches.POST("", h.Create)
		branches.GET("", h.List)
		branches.GET("/:id", h.Get)
		branches.PUT("/:id", h.Update)
		branches.DELETE("", h.Delete)
	}
}

// Create godoc
// @ID           createBranch
// @Summary      Create a branch
// @Description  Creates a branch with the company's next branch code
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body orgapp.CreateBranchRequest true "Branch creation request"
// @Success      201 {object} APIResponse[orgapp.BranchResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /branches [post]
func (h *BranchHandler) Create(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	var req orgapp.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.branchService.CreateBranch(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
// @ID           listBranches
// @Summary      List branches
// @Tags         branches
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        search query string false "Search by name or code"
// @Success      200 {object} APIResponse[[]orgapp.BranchResponse]
// @Router       /branches [get]
func (h *BranchHandler) List(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	resp, err := h.branchService.ListBranches(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get godoc
// @ID           getBranch
// @Summary      Get a branch by ID
// @Tags         branches
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        id path string true "Branch ID"
// @Success      200 {object} APIResponse[orgapp.BranchResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /branches/{id} [get]
func (h *BranchHandler) Get(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	branchID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.branchService.GetBranch(c.Request.Context(), companyID, branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update godoc
// @ID           updateBranch
// @Summary      Update a branch
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        id path string true "Branch ID"
// @Param        request body orgapp.UpdateBranchRequest true "Branch update request"
// @Success      200 {object} APIResponse[orgapp.BranchResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /branches/{id} [put]
func (h *BranchHandler) Update(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	branchID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req orgapp.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.branchService.UpdateBranch(c.Request.Context(), companyID, branchID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteBranches
// @Summary      Delete branches
// @Description  Soft-deletes the given branches
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body dto.IDsRequest true "Branch IDs"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Router       /branches [delete]
func (h *BranchHandler) Delete(c *gin.Context) {
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
		h.BadRequest(c, "Invalid branch ID format")
		return
	}

	if err := h.branchService.DeleteBranches(c.Request.Context(), companyID, ids); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
