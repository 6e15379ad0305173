package handler

import (
	"github.com/gin-gonic/gin"
	booksapp "github.com/goldfin/backend/internal/application/books"
	"github.com/goldfin/backend/internal/interfaces/http/dto"
	"github.com/google/uuid"
)

// BooksHandler handles the day-book endpoints: parties, expenses, other
// incomes, charges, payments and transfers. The sub-resources share one
// handler because they share the same CRUD shape.
type BooksHandler struct {
	BaseHandler
	booksService *booksapp.Service
}

// NewBooksHandler creates a new BooksHandler
func NewBooksHandler(booksService *booksapp.Service) *BooksHandler {
	return &BooksHandler{booksService: booksService}
}

// RegisterRoutes registers day-book routes
func (h *BooksHandler) RegisterRoutes(rg *gin.RouterGroup) {
	books := rg.Group("/books")
	{
		books.POST("/parties", h.CreateParty)
		books.GET("/parties", h.ListParties)
		books.DELETE("/parties", h.DeleteParties)

		books.POST("/expenses", h.CreateExpense)
		books.GET("/expenses", h.ListExpenses)
		books.DELETE("/expenses", h.DeleteExpenses)

		books.POST("/other-incomes", h.CreateOtherIncome)
		books.GET("/other-incomes", h.ListOtherIncomes)
		books.DELETE("/other-incomes", h.DeleteOtherIncomes)

		books.POST("/charges", h.CreateCharge)
		books.GET("/charges", h.ListCharges)
		books.DELETE("/charges", h.DeleteCharges)

		books.POST("/payments", h.CreatePayment)
		books.GET("/payments", h.ListPayments)
		books.DELETE("/payments", h.DeletePayments)

		books.POST("/transfers", h.CreateTransfer)
		books.GET("/transfers", h.ListTransfers)
		books.DELETE("/transfers", h.DeleteTransfers)
	}
}

// scope extracts the company ID or responds with an error
func (h *BooksHandler) scope(c *gin.Context) (uuid.UUID, bool) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return uuid.Nil, false
	}
	return companyID, true
}

// bindIDs binds and parses a bulk-delete body
func (h *BooksHandler) bindIDs(c *gin.Context) ([]uuid.UUID, bool) {
	var req dto.IDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return nil, false
	}
	ids, err := parseIDs(req.IDs)
	if err != nil {
		h.BadRequest(c, "Invalid ID format")
		return nil, false
	}
	return ids, true
}

// CreateParty godoc
// @ID           createParty
// @Summary      Create a payment party
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body booksapp.PartyRequest true "Party"
// @Success      201 {object} APIResponse[booksapp.PartyResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /books/parties [post]
func (h *BooksHandler) CreateParty(c *gin.Context) {
	companyID, ok := h.scope(c)
	if !ok {
		return
	}

	var req booksapp.PartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.booksService.CreateParty(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListParties godoc
// @ID           listParties
// @Summary      List payment parties
// @Tags         books
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Success      200 {object} APIResponse[[]booksapp.PartyResponse]
// @Router       /books/parties [get]
func (h *BooksHandler) ListParties(c *gin.Context) {
	companyID, ok := h.scope(c)
	if !ok {
		return
	}
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	resp, err := h.booksService.ListParties(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteParties godoc
// @ID           deleteParties
// @Summary      Delete payment parties
// @Tags         books
// @Accept       json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body dto.IDsRequest true "Party IDs"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Router       /books/parties [delete]
func (h *BooksHandler) DeleteParties(c *gin.Context) {
	companyID, ok := h.scope(c)
	if !ok {
		return
	}
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}

	if err := h.booksService.DeleteParties(c.Request.Context(), companyID, ids); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateExpense godoc
// @ID           createExpense
// @Summary      Record an expense
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body booksapp.EntryRequest true "Expense entry"
// @Success      201 {object} APIResponse[booksapp.EntryResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /books/expenses [post]
func (h *BooksHandler) CreateExpense(c *gin.Context) {
	companyID, ok := h.scope(c)
	if !ok {
		return
	}

	var req booksapp.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.booksService.CreateExpense(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListExpenses godoc
// @ID           listExpenses
// @Summary      List expenses
// @Tags         books
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        from query string false "From date (YYYY-MM-DD)"
// @Param        to query string false "To date (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[[]booksapp.EntryResponse]
// @Router       /books/expenses [get]
func (h *BooksHandler) ListExpenses(c *gin.Context) {
	companyID, ok := h.scope(c)
	if !ok {
		return
	}
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	resp, err := h.booksService.ListExpenses(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteExpenses godoc
// @ID           deleteExpenses
// @Summary      Delete expenses
// @Tags         books
// @Accept       json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body dto.IDsRequest true "Expense IDs"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Router       /books/expenses [delete]
func (h *BooksHandler) DeleteExpenses(c *gin.Context) {
	companyID, ok := h.scope(c)
	if !ok {
		return
	}
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}

	if err := h.booksService.DeleteExpenses(c.Request.Context(), companyID, ids); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateOtherIncome godoc
// @ID           createOtherIncome
// @Summary      Record a non-interest income
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body booksapp.EntryRequest true "Income entry"
// @Success      201 {object} APIResponse[booksapp.EntryResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /books/other-incomes [post]
func (h *BooksHandler) CreateOtherIncome(c *gin.Context) {
	companyID, ok := h.scope(c)
	if !ok {
		return
	}

	var req booksapp.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.booksService.CreateOtherIncome(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListOtherIncomes godoc
// @ID           listOtherIncomes
// @Summary      List non-interest incomes
// @Tags         books
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Success      200 {object} APIResponse[[]booksapp.EntryResponse]
// @Router       /books/other-incomes [get]
func (h *BooksHandler) ListOtherIncomes(c *gin.Context) {
	companyID, ok := h.scope(c)
	if !ok {
		return
	}
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	resp, err := h.booksService.ListOtherIncomes(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteOtherIncomes godoc
// @ID           deleteOtherIncomes
// @Summary      Delete non-interest incomes
// @Tags         books
// @Accept       json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body dto.IDsRequest true "Income IDs"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Router       /books/other-incomes [delete]
func (h *BooksHandler) DeleteOtherIncomes(c *gin.Context) {
	companyID, ok := h.scope(c)
	if !ok {
		return
	}
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}

	if err := h.booksService.DeleteOtherIncomes(c.Request.Context(), companyID, ids); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateCharge godoc
// @ID           createCharge
// @Summary      Record a charge in or out
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body booksapp.ChargeRequest true "Charge entry"
// @Success      201 {object} APIResponse[booksapp.ChargeResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /books/charges [post]
func (h *BooksHandler) CreateCharge(c *gin.Context) {
	companyID, ok := h.scope(c)
	if !ok {
		return
	}

	var req booksapp.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.booksService.CreateCharge(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListCharges godoc
// @ID           listCharges
// @Summary      List charges
// @Tags         books
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Success      200 {object} APIResponse[[]booksapp.ChargeResponse]
// @Router       /books/charges [get]
func (h *BooksHandler) ListCharges(c *gin.Context) {
	companyID, ok := h.scope(c)
	if !ok {
		return
	}
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	resp, err := h.booksService.ListCharges(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteCharges godoc
// @ID           deleteCharges
// @Summary      Delete charges
// @Tags         books
// @Accept       json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body dto.IDsRequest true "Charge IDs"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Router       /books/charges [delete]
func (h *BooksHandler) DeleteCharges(c *gin.Context) {
	companyID, ok := h.scope(c)
	if !ok {
		return
	}
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}

	if err := h.booksService.DeleteCharges(c.Request.Context(), companyID, ids); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreatePayment godoc
// @ID           createPayment
// @Summary      Record a payment to or from a party
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body booksapp.PaymentRequest true "Payment entry"
// @Success      201 {object} APIResponse[booksapp.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /books/payments [post]
func (h *BooksHandler) CreatePayment(c *gin.Context) {
	companyID, ok := h.scope(c)
	if !ok {
		return
	}

	var req booksapp.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.booksService.CreatePayment(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListPayments godoc
// @ID           listPayments
// @Summary      List payments
// @Tags         books
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Success      200 {object} APIResponse[[]booksapp.PaymentResponse]
// @Router       /books/payments [get]
func (h *BooksHandler) ListPayments(c *gin.Context) {
	companyID, ok := h.scope(c)
	if !ok {
		return
	}
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	resp, err := h.booksService.ListPayments(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeletePayments godoc
// @ID           deletePayments
// @Summary      Delete payments
// @Tags         books
// @Accept       json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body dto.IDsRequest true "Payment IDs"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Router       /books/payments [delete]
func (h *BooksHandler) DeletePayments(c *gin.Context) {
	companyID, ok := h.scope(c)
	if !ok {
		return
	}
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}

	if err := h.booksService.DeletePayments(c.Request.Context(), companyID, ids); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateTransfer godoc
// @ID           createTransfer
// @Summary      Record a cash/bank transfer or adjustment
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body booksapp.TransferRequest true "Transfer entry"
// @Success      201 {object} APIResponse[booksapp.TransferResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /books/transfers [post]
func (h *BooksHandler) CreateTransfer(c *gin.Context) {
	companyID, ok := h.scope(c)
	if !ok {
		return
	}

	var req booksapp.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.booksService.CreateTransfer(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListTransfers godoc
// @ID           listTransfers
// @Summary      List transfers
// @Tags         books
// @Produce      json
// @Param        X-Company-ID header string true "Company ID"
// @Success      200 {object} APIResponse[[]booksapp.TransferResponse]
// @Router       /books/transfers [get]
func (h *BooksHandler) ListTransfers(c *gin.Context) {
	companyID, ok := h.scope(c)
	if !ok {
		return
	}
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	resp, err := h.booksService.ListTransfers(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteTransfers godoc
// @ID           deleteTransfers
// @Summary      Delete transfers
// @Tags         books
// @Accept       json
// @Param        X-Company-ID header string true "Company ID"
// @Param        request body dto.IDsRequest true "Transfer IDs"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Router       /books/transfers [delete]
func (h *BooksHandler) DeleteTransfers(c *gin.Context) {
	companyID, ok := h.scope(c)
	if !ok {
		return
	}
	ids, ok := h.bindIDs(c)
	if !ok {
		return
	}

	if err := h.booksService.DeleteTransfers(c.Request.Context(), companyID, ids); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
