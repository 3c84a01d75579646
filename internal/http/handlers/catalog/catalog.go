// Package catalog реализует HTTP-обработчики справочников: планов и меню.
package catalog

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

// Handler обслуживает GET /plans и GET /menu.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// Plans godoc
// @Summary Планы питания
// @Tags Catalog
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /plans [get]
func (h *Handler) Plans(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(h.service.Snapshot().Plans))
}

// Menu godoc
// @Summary Меню
// @Tags Catalog
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /menu [get]
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(h.service.Snapshot().MenuItems))
}
