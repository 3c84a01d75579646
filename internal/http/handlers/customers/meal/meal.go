// Package meal реализует HTTP-обработчик отметки обеда клиента.
//
// Обеды сначала списываются из плана, остаток начисляется клиенту в долг
// по цене выбранной порции.
package meal

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
	"github.com/magabrotheeeer/messmate/internal/ledger"
	"github.com/magabrotheeeer/messmate/internal/lib/sl"
	"github.com/magabrotheeeer/messmate/internal/models"
)

// Request описывает отметку обеда.
type Request struct {
	MenuItemID string         `json:"menuItemId" validate:"required"`
	Portion    models.Portion `json:"portion" validate:"required,oneof=half full"`
	Quantity   int            `json:"quantity" validate:"required,min=1"`
}

// Service отмечает обед.
type Service interface {
	RecordMeal(ctx context.Context, customerID, menuItemID string, portion models.Portion, quantity int) (ledger.MealResult, error)
}

// Handler обрабатывает POST /customers/{id}/meals.
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
// @Summary Отметить обед
// @Description Списывает обеды из плана, непокрытые начисляет в долг. Возвращает клиента, покрытые и оплачиваемые порции и созданные проводки.
// @Tags Customers
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID клиента"
// @Param request body Request true "Обед"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Неизвестный клиент или позиция меню"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /customers/{id}/meals [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.customers.meal"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	customerID := chi.URLParam(r, "id")
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

	res, err := h.service.RecordMeal(r.Context(), customerID, req.MenuItemID, req.Portion, req.Quantity)
	if err != nil {
		log.Error("failed to record meal", slog.String("customer", customerID), sl.Err(err))
	}
	code, body := response.Result(res, err)
	render.Status(r, code)
	render.JSON(w, r, body)
}
