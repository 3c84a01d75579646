package dashboard

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/messmate/internal/ledger"
	"github.com/magabrotheeeer/messmate/internal/models"
)

type stubService struct {
	summary ledger.Summary
	alerts  ledger.Alerts
}

func (s stubService) Summary() ledger.Summary { return s.summary }
func (s stubService) Alerts() ledger.Alerts { return s.alerts }

func TestDashboardHandler(t *testing.T) {
	renewals := make([]ledger.RenewalAlert, 5)
	for i := range renewals {
		renewals[i] = ledger.RenewalAlert{Customer: models.Customer{ID: string(rune('a' + i))}, UrgencyScore: i}
	}
	svc := stubService{
		summary: ledger.Summary{ActiveCustomers: 7, IncomeThisMonth: decimal.NewFromInt(5300), ExpenseThisMonth: decimal.NewFromInt(900)},
		alerts:  ledger.Alerts{Renewals: renewals, PendingPayments: []models.Customer{{ID: "x"}}},
	}

	rec := httptest.NewRecorder()
	New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data struct {
			Summary        map[string]any `json:"summary"`
			RenewalCount   int            `json:"renewalCount"`
			PendingCount   int            `json:"pendingCount"`
			UrgentRenewals []any          `json:"urgentRenewals"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 7, resp.Data.Summary["activeCustomers"])
	assert.Equal(t, "5300", resp.Data.Summary["incomeThisMonth"])
	assert.Equal(t, 5, resp.Data.RenewalCount)
	assert.Equal(t, 1, resp.Data.PendingCount)
	assert.Len(t, resp.Data.UrgentRenewals, 3)
}
