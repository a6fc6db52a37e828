package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confeito/internal/core/id"
	"confeito/internal/core/types"
	"confeito/internal/domain/reports"
)

type fakeReportRepo struct {
	purchases []reports.PurchaseTotalRow
}

func (f *fakeReportRepo) PurchaseTotals(ctx context.Context, from, to *time.Time) ([]reports.PurchaseTotalRow, error) {
	return f.purchases, nil
}

func (f *fakeReportRepo) Expenses(ctx context.Context, from, to *time.Time) ([]reports.ExpenseRow, error) {
	return nil, nil
}

func topClientsRouter(repo reports.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewReportsHandler(NewBaseHandler(), reports.NewService(repo))
	r.GET("/top-clients", h.TopClients)
	return r
}

func getTopClients(t *testing.T, router *gin.Engine, query string) []reports.TopClient {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/top-clients"+query, nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Items []reports.TopClient `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Items
}

func TestTopClientsHandler_ExplicitZeroIsNotTheDefault(t *testing.T) {
	repo := &fakeReportRepo{
		purchases: []reports.PurchaseTotalRow{
			{
				PurchaseID: id.New(),
				ClientID:   id.New(),
				ClientName: "Ana",
				Date:       time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
				LineTotal:  types.MustMoney("100"),
			},
		},
	}
	router := topClientsRouter(repo)

	// Absent n falls back to the default window of 5
	assert.Len(t, getTopClients(t, router, ""), 1)

	// An explicit zero or negative n asks for an empty ranking
	assert.Empty(t, getTopClients(t, router, "?n=0"))
	assert.Empty(t, getTopClients(t, router, "?n=-1"))
}

func TestTopClientsHandler_LimitsToN(t *testing.T) {
	repo := &fakeReportRepo{}
	for i := 0; i < 4; i++ {
		repo.purchases = append(repo.purchases, reports.PurchaseTotalRow{
			PurchaseID: id.New(),
			ClientID:   id.New(),
			ClientName: "c",
			Date:       time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
			LineTotal:  types.MustMoney("10"),
		})
	}
	router := topClientsRouter(repo)

	assert.Len(t, getTopClients(t, router, "?n=2"), 2)
}
