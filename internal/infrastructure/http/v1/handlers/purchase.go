package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"confeito/internal/core/apperror"
	"confeito/internal/core/id"
	"confeito/internal/domain/documents/purchase"
	"confeito/internal/infrastructure/http/v1/dto"
)

// PurchaseHandler serves the purchase ledger.
type PurchaseHandler struct {
	*BaseHandler
	service *purchase.Service
}

// NewPurchaseHandler creates the purchase handler.
func NewPurchaseHandler(base *BaseHandler, service *purchase.Service) *PurchaseHandler {
	return &PurchaseHandler{BaseHandler: base, service: service}
}

// Create persists a purchase with its full item set and returns the
// computed total.
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	clientID, err := id.Parse(req.ClientID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid client id").
			WithDetail("value", req.ClientID))
		return
	}

	p := purchase.New(clientID)
	if req.Date != nil {
		p.Date = req.Date.UTC()
	}
	p.Comment = req.Comment
	p.FlatDiscount = req.FlatDiscount
	p.PctDiscount = req.PctDiscount
	p.DiscountEnabled = req.DiscountEnabled
	for _, item := range req.Items {
		recipeID, err := id.Parse(item.RecipeID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid recipe id").
				WithDetail("value", item.RecipeID))
			return
		}
		p.AddItem(recipeID, item.Quantity)
	}

	total, err := h.service.Create(c.Request.Context(), p)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreatePurchaseResponse{
		ID:    p.ID.String(),
		Total: total,
	})
}

// Get returns one purchase with items, client name and computed total.
func (h *PurchaseHandler) Get(c *gin.Context) {
	purchaseID, ok := h.ParseID(c)
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), purchaseID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, p)
}

// List returns purchases with client names and computed totals.
func (h *PurchaseHandler) List(c *gin.Context) {
	var q dto.PurchaseListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	f := purchase.Filter{
		From:   q.From,
		To:     q.To,
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	if q.ClientID != "" {
		clientID, err := id.Parse(q.ClientID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid client id").
				WithDetail("value", q.ClientID))
			return
		}
		f.ClientID = &clientID
	}

	items, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: total,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
}

// Delete removes a purchase together with all its items.
func (h *PurchaseHandler) Delete(c *gin.Context) {
	purchaseID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), purchaseID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
