// Package alerts реализует HTTP-обработчик напоминаний о продлении и долгах.
package alerts

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/messmate/internal/http/response"
	"github.com/magabrotheeeer/messmate/internal/ledger"
)

// Service вычисляет напоминания.
type Service interface {
	Alerts() ledger.Alerts
}

// Handler обрабатывает GET /alerts.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Напоминания
// @Description Клиенты к продлению (по возрастанию срочности) и должники (по убыванию долга). Вычисляется на момент запроса.
// @Tags Alerts
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /alerts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(h.service.Alerts()))
}
