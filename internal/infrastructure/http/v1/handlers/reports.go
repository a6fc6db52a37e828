package handlers

import (
	"github.com/gin-gonic/gin"

	"confeito/internal/domain/reports"
	"confeito/internal/infrastructure/http/v1/dto"
)

// ReportsHandler serves the aggregation engine.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates the reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// MonthlySeries returns the aligned monthly series over an inclusive
// month range. Months without data appear zero-filled.
func (h *ReportsHandler) MonthlySeries(c *gin.Context) {
	var q dto.MonthlySeriesQuery
	if !h.BindQuery(c, &q) {
		return
	}

	series, err := h.service.MonthlySeries(c.Request.Context(), q.From, q.To)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": series})
}

// TopClients ranks clients by their post-discount purchase totals.
func (h *ReportsHandler) TopClients(c *gin.Context) {
	var q dto.TopClientsQuery
	if !h.BindQuery(c, &q) {
		return
	}
	n := 5
	if q.N != nil {
		n = *q.N
	}
	scope := reports.Scope(q.Scope)
	if q.Scope == "" {
		scope = reports.ScopeAllTime
	}

	ranked, err := h.service.TopClients(c.Request.Context(), n, scope)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": ranked})
}
