package handlers

import (
	"github.com/gin-gonic/gin"

	"confeito/internal/domain/catalogs/client"
	"confeito/internal/infrastructure/http/v1/dto"
)

// ClientHandler serves the client catalog and the birthday scheduler.
type ClientHandler struct {
	*BaseHandler
	service *client.Service
}

// NewClientHandler creates the client handler.
func NewClientHandler(base *BaseHandler, service *client.Service) *ClientHandler {
	return &ClientHandler{BaseHandler: base, service: service}
}

// Create adds a client.
func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cl := client.New(req.Name, req.Birthday, req.Address)
	if err := h.service.Create(c.Request.Context(), cl); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, cl.ID)
}

// Get returns one client.
func (h *ClientHandler) Get(c *gin.Context) {
	clientID, ok := h.ParseID(c)
	if !ok {
		return
	}

	cl, err := h.service.GetByID(c.Request.Context(), clientID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, cl)
}

// List returns clients, optionally filtered by a name substring.
func (h *ClientHandler) List(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 50)
	offset := h.ParseIntQuery(c, "offset", 0)

	res, err := h.service.Search(c.Request.Context(), c.Query("search"), limit, offset)
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

// Update replaces the editable fields of a client.
func (h *ClientHandler) Update(c *gin.Context) {
	clientID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateClientRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cl, err := h.service.GetByID(c.Request.Context(), clientID)
	if err != nil {
		h.Error(c, err)
		return
	}

	cl.Name = req.Name
	cl.Birthday = req.Birthday
	cl.Address = req.Address
	cl.Version = req.Version

	if err := h.service.Update(c.Request.Context(), cl); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, cl)
}

// Delete soft-deletes a client.
func (h *ClientHandler) Delete(c *gin.Context) {
	clientID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), clientID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// UpcomingBirthdays returns up to n clients ordered by days until their
// next birthday, soonest first.
func (h *ClientHandler) UpcomingBirthdays(c *gin.Context) {
	n := h.ParseIntQuery(c, "n", 5)

	upcoming, err := h.service.Upcoming(c.Request.Context(), n)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": upcoming})
}
