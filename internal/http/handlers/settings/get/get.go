// Package get реализует HTTP-обработчик чтения настроек напоминаний.
package get

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/messmate/internal/http/response"
	"github.com/magabrotheeeer/messmate/internal/models"
)

// Service возвращает текущее состояние.
type Service interface {
	Snapshot() models.State
}

// Handler обрабатывает GET /settings.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Настройки
// @Tags Settings
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /settings [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(h.service.Snapshot().Settings))
}
