// Package breaks реализует HTTP-обработчик отпуска клиента: срок плана
// сдвигается на указанное число дней.
package breaks

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/messmate/internal/http/response"
	"github.com/magabrotheeeer/messmate/internal/lib/sl"
	"github.com/magabrotheeeer/messmate/internal/models"
)

// Request описывает длительность отпуска в днях.
type Request struct {
	Days int `json:"days" validate:"required,min=1,max=365"`
}

// Service оформляет отпуск.
type Service interface {
	AddBreak(ctx context.Context, customerID string, days int) (*models.Customer, error)
}

// Handler обрабатывает POST /customers/{id}/breaks.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Оформить отпуск
// @Tags Customers
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID клиента"
// @Param request body Request true "Отпуск"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Неизвестный клиент"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /customers/{id}/breaks [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.customers.breaks"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
	}

	customer, err := h.service.AddBreak(r.Context(), chi.URLParam(r, "id"), req.Days)
	if err != nil {
		log.Error("failed to add break", sl.Err(err))
	}
	code, body := response.Result(customer, err)
	render.Status(r, code)
	render.JSON(w, r, body)
}
