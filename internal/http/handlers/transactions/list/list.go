// Package list реализует HTTP-обработчик ленты денежных проводок.
package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/messmate/internal/http/response"
	"github.com/magabrotheeeer/messmate/internal/ledger"
	"github.com/magabrotheeeer/messmate/internal/models"
)

// Service возвращает ленту проводок.
type Service interface {
	CashFeed() []models.Transaction
}

// Handler обрабатывает GET /transactions.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Денежные проводки
// @Description Все проводки, кроме USAGE, от новых к старым, и итоги по ним.
// @Tags Transactions
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /transactions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	feed := h.service.CashFeed()
	totals := ledger.Sum(feed)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"transactions": feed,
		"revenue":      totals.Revenue(),
		"expense":      totals.Expense,
		"net":          totals.Net(),
		"categories":   ledger.ExpenseCategories,
	}))
}
