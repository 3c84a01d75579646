// Package history реализует HTTP-обработчик истории проводок клиента.
package history

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/messmate/internal/http/response"
	"github.com/magabrotheeeer/messmate/internal/lib/sl"
	"github.com/magabrotheeeer/messmate/internal/models"
)

// Service возвращает проводки клиента.
type Service interface {
	CustomerTransactions(customerID string) ([]models.Transaction, error)
}

// Handler обрабатывает GET /customers/{id}/transactions.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary История клиента
// @Tags Customers
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID клиента"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Неизвестный клиент"
// @Router /customers/{id}/transactions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.customers.history"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	txs, err := h.service.CustomerTransactions(chi.URLParam(r, "id"))
	if err != nil {
		log.Warn("failed to load history", sl.Err(err))
	}
	code, body := response.Result(txs, err)
	render.Status(r, code)
	render.JSON(w, r, body)
}
