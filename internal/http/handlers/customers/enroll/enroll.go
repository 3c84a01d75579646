// Package enroll реализует HTTP-обработчик записи нового клиента на план питания.
//
// Handler валидирует запрос, вызывает сервис учёта и возвращает созданного клиента.
// Неизвестный план даёт 404, сбой сохранения даёт 200 с предупреждением.
package enroll

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/messmate/internal/http/response"
	"github.com/magabrotheeeer/messmate/internal/ledger"
	"github.com/magabrotheeeer/messmate/internal/lib/sl"
	"github.com/magabrotheeeer/messmate/internal/models"
)

// Request описывает данные нового клиента.
type Request struct {
	Name   string `json:"name" validate:"required,max=100"`
	Phone  string `json:"phone" validate:"max=20"`
	PlanID string `json:"planId" validate:"required"`
}

// Service записывает клиента.
type Service interface {
	Enroll(ctx context.Context, req ledger.EnrollRequest) (*models.Customer, error)
}

// Handler обрабатывает POST /customers.
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
// @Summary Записать клиента
// @Description Создаёт клиента с запасом обедов и сроком выбранного плана, добавляет проводку SUBSCRIPTION.
// @Tags Customers
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Клиент"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Неизвестный план"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /customers [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.customers.enroll"
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
			log.Warn("validation failed", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
	}

	customer, err := h.service.Enroll(r.Context(), ledger.EnrollRequest{
		Name:   req.Name,
		Phone:  req.Phone,
		PlanID: req.PlanID,
	})
	if err == nil && customer == nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("field Name is a required field"))
		return
	}
	if err != nil {
		log.Error("failed to enroll customer", sl.Err(err))
	}

	code, body := response.Result(customer, err)
	render.Status(r, code)
	render.JSON(w, r, body)
}
