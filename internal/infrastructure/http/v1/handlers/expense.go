package handlers

import (
	"github.com/gin-gonic/gin"

	"confeito/internal/domain/documents/expense"
	"confeito/internal/infrastructure/http/v1/dto"
)

// ExpenseHandler serves expense tracking.
type ExpenseHandler struct {
	*BaseHandler
	service *expense.Service
}

// NewExpenseHandler creates the expense handler.
func NewExpenseHandler(base *BaseHandler, service *expense.Service) *ExpenseHandler {
	return &ExpenseHandler{BaseHandler: base, service: service}
}

// Create adds an expense.
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e := expense.New(req.Description, req.Amount, expense.Category(req.Category))
	if req.Date != nil {
		e.Date = req.Date.UTC()
	}
	e.Comment = req.Comment

	if err := h.service.Create(c.Request.Context(), e); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, e.ID)
}

// Get returns one expense.
func (h *ExpenseHandler) Get(c *gin.Context) {
	expenseID, ok := h.ParseID(c)
	if !ok {
		return
	}

	e, err := h.service.Get(c.Request.Context(), expenseID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, e)
}

// List returns expenses matching the filter.
func (h *ExpenseHandler) List(c *gin.Context) {
	var q dto.ExpenseListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	f := expense.Filter{
		Search: q.Search,
		From:   q.From,
		To:     q.To,
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	if q.Category != "" {
		cat := expense.Category(q.Category)
		f.Category = &cat
	}

	res, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      res.Items,
		TotalCount: res.TotalCount,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
}

// Delete removes an expense.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	expenseID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), expenseID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
