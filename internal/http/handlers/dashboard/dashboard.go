// Package dashboard реализует HTTP-обработчик главного экрана: показатели месяца
// и число напоминаний.
package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/messmate/internal/http/response"
	"github.com/magabrotheeeer/messmate/internal/ledger"
)

// Service считает показатели.
type Service interface {
	Summary() ledger.Summary
	Alerts() ledger.Alerts
}

// Handler обрабатывает GET /dashboard.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Главный экран
// @Tags Dashboard
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	alerts := h.service.Alerts()
	render.JSON(w, r, response.OKWithData(map[string]any{
		"summary":        h.service.Summary(),
		"renewalCount":   len(alerts.Renewals),
		"pendingCount":   len(alerts.PendingPayments),
		"urgentRenewals": alerts.Renewals[:min(3, len(alerts.Renewals))],
	}))
}
