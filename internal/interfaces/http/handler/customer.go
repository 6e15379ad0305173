package handler

import (
	"github.com/gin-gonic/gin"
	orgapp "github.com/goldfin/backend/internal/application/org"
	"github.com/goldfin/backend/internal/interfaces/http/dto"
)

// CustomerHandler handles customer API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *orgapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *orgapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// RegisterRoutes registers customer routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.List)
		customers.GET("/:id", h.Get)
		customers.PUT("/:id", h.Update)
		customers.POST("/:id/avatar", h.UploadAvatar)
		customers.DELETE("", h.Delete)
	}
}

// Create godoc
// @ID           createCustomer
// @Summary      Create a customer
// @Description  Creates a customer with the next branch-prefixed customer code
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body orgapp.CreateCustomerRequest true "Customer creation request"
// @Success      201 {object} APIResponse[orgapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	var req orgapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.customerService.CreateCustomer(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
// @ID           listCustomers
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        search query string false "Search by name, code or phone"
// @Param        branch_id query string false "Filter by branch"
// @Success      200 {object} APIResponse[[]orgapp.CustomerResponse]
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	resp, err := h.customerService.ListCustomers(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get godoc
// @ID           getCustomer
// @Summary      Get a customer by ID
// @Tags         customers
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        id path string true "Customer ID"
// @Success      200 {object} APIResponse[orgapp.CustomerResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	customerID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.customerService.GetCustomer(c.Request.Context(), companyID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update godoc
// @ID           updateCustomer
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        id path string true "Customer ID"
// @Param        request body orgapp.UpdateCustomerRequest true "Customer update request"
// @Success      200 {object} APIResponse[orgapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	customerID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req orgapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.customerService.UpdateCustomer(c.Request.Context(), companyID, customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UploadAvatar godoc
// @ID           uploadCustomerAvatar
// @Summary      Upload a customer photo
// @Tags         customers
// @Accept       multipart/form-data
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        id path string true "Customer ID"
// @Param        file formData file true "Avatar image"
// @Success      200 {object} APIResponse[orgapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /customers/{id}/avatar [post]
func (h *CustomerHandler) UploadAvatar(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	customerID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	data, contentType, ok := h.readUpload(c)
	if !ok {
		return
	}

	resp, err := h.customerService.UploadAvatar(c.Request.Context(), companyID, customerID, data, contentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteCustomers
// @Summary      Delete customers
// @Description  Soft-deletes customers that have no open loans
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body dto.IDsRequest true "Customer IDs"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /customers [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
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
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	if err := h.customerService.DeleteCustomers(c.Request.Context(), companyID, ids); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
