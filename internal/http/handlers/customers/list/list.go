// Package list реализует HTTP-обработчик поиска клиентов по имени или телефону.
package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/messmate/internal/http/response"
	"github.com/magabrotheeeer/messmate/internal/models"
)

// Service ищет клиентов.
type Service interface {
	Search(query string) []models.Customer
}

// Handler обрабатывает GET /customers.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список клиентов
// @Description Поиск по подстроке имени без учёта регистра или по подстроке телефона. Пустой запрос возвращает всех.
// @Tags Customers
// @Produce  json
// @Security BearerAuth
// @Param q query string false "Строка поиска"
// @Success 200 {object} response.Response
// @Router /customers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.customers.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res := h.service.Search(r.URL.Query().Get("q"))
	log.Debug("customers listed", "count", len(res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"count":     len(res),
		"customers": res,
	}))
}
