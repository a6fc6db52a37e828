package handlers

import (
	"github.com/gin-gonic/gin"

	"confeito/internal/core/apperror"
	"confeito/internal/core/id"
	"confeito/internal/domain"
	"confeito/internal/domain/catalogs/recipe"
	"confeito/internal/infrastructure/http/v1/dto"
)

// RecipeHandler serves recipe costing.
type RecipeHandler struct {
	*BaseHandler
	service *recipe.Service
}

// NewRecipeHandler creates the recipe handler.
func NewRecipeHandler(base *BaseHandler, service *recipe.Service) *RecipeHandler {
	return &RecipeHandler{BaseHandler: base, service: service}
}

// Create persists a recipe with its full line set.
func (h *RecipeHandler) Create(c *gin.Context) {
	var req dto.CreateRecipeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	r := recipe.New(req.Name, req.SellingPricePerPortion, req.LaborPct, req.OverheadPct, req.Portions)
	for _, line := range req.Lines {
		ingredientID, err := id.Parse(line.IngredientID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid ingredient id").
				WithDetail("value", line.IngredientID))
			return
		}
		r.AddLine(ingredientID, line.QuantityUsed)
	}

	if err := h.service.CreateWithLines(c.Request.Context(), r); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, r.ID)
}

// Get returns one recipe with lines and its derived money figures.
func (h *RecipeHandler) Get(c *gin.Context) {
	recipeID, ok := h.ParseID(c)
	if !ok {
		return
	}

	r, err := h.service.GetWithLines(c.Request.Context(), recipeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	listed := recipe.ListedRecipe{Recipe: r}
	costing, err := h.service.CostingFor(c.Request.Context(), r)
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && !apperror.IsNotFound(err) {
			listed.CostingError = appErr.Code
		} else {
			h.Error(c, err)
			return
		}
	} else {
		listed.Costing = costing
	}

	h.OK(c, listed)
}

// List returns recipes with computed cost, revenue and profit.
func (h *RecipeHandler) List(c *gin.Context) {
	f := domain.DefaultListFilter()
	f.Search = c.Query("search")
	f.Limit = h.ParseIntQuery(c, "limit", f.Limit)
	f.Offset = h.ParseIntQuery(c, "offset", 0)

	items, total, err := h.service.ListWithCosting(c.Request.Context(), f)
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

// Delete removes a recipe together with all its lines.
func (h *RecipeHandler) Delete(c *gin.Context) {
	recipeID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCascade(c.Request.Context(), recipeID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
