package handlers

import (
	"github.com/gin-gonic/gin"

	"confeito/internal/domain"
	"confeito/internal/domain/catalogs/ingredient"
	"confeito/internal/infrastructure/http/v1/dto"
)

// IngredientHandler serves the ingredient ledger.
type IngredientHandler struct {
	*BaseHandler
	service *ingredient.Service
}

// NewIngredientHandler creates the ingredient handler.
func NewIngredientHandler(base *BaseHandler, service *ingredient.Service) *IngredientHandler {
	return &IngredientHandler{BaseHandler: base, service: service}
}

// Save upserts an ingredient by name. A repeated name updates the batch
// figures in place and reactivates the record when needed.
func (h *IngredientHandler) Save(c *gin.Context) {
	var req dto.SaveIngredientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ing, err := h.service.AddOrUpdate(c.Request.Context(), req.Name, req.Unit, req.TotalPrice, req.PurchasedQuantity)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, ing)
}

// Get returns one ingredient.
func (h *IngredientHandler) Get(c *gin.Context) {
	ingredientID, ok := h.ParseID(c)
	if !ok {
		return
	}

	ing, err := h.service.GetByID(c.Request.Context(), ingredientID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, ing)
}

// List returns active ingredients.
func (h *IngredientHandler) List(c *gin.Context) {
	f := domain.DefaultListFilter()
	f.Search = c.Query("search")
	f.Limit = h.ParseIntQuery(c, "limit", f.Limit)
	f.Offset = h.ParseIntQuery(c, "offset", 0)

	res, err := h.service.ListActive(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      res.Items,
		TotalCount: res.TotalCount,
		Limit:      res.Limit,
		Offset:     res.Offset,
	})
}

// Deactivate hides an ingredient from active listings. Idempotent.
func (h *IngredientHandler) Deactivate(c *gin.Context) {
	ingredientID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), ingredientID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
