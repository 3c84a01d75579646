// Package update реализует HTTP-обработчик изменения настроек. Доступен только владельцу.
//
// Отсутствующие поля не меняются; значения ниже допустимых поднимаются до минимума.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/messmate/internal/http/response"
	"github.com/magabrotheeeer/messmate/internal/ledger"
	"github.com/magabrotheeeer/messmate/internal/lib/sl"
	"github.com/magabrotheeeer/messmate/internal/models"
)

// Request описывает частичное обновление настроек.
type Request struct {
	SubscriptionDays *int             `json:"subscriptionDays"`
	MealThreshold    *int             `json:"mealThreshold"`
	BalanceThreshold *decimal.Decimal `json:"balanceThreshold"`
}

// Service обновляет настройки.
type Service interface {
	UpdateSettings(ctx context.Context, patch ledger.SettingsPatch) (models.Settings, error)
}

// Handler обрабатывает PUT /settings.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Изменить настройки
// @Tags Settings
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Новые значения"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Только для владельца"
// @Router /settings [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.settings.update"
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

	settings, err := h.service.UpdateSettings(r.Context(), ledger.SettingsPatch{
		SubscriptionDays: req.SubscriptionDays,
		MealThreshold:    req.MealThreshold,
		BalanceThreshold: req.BalanceThreshold,
	})
	if err != nil {
		log.Error("failed to update settings", sl.Err(err))
	}
	log.Info("settings updated",
		slog.Int("subscription_days", settings.SubscriptionDays),
		slog.Int("meal_threshold", settings.MealThreshold),
	)
	code, body := response.Result(settings, err)
	render.Status(r, code)
	render.JSON(w, r, body)
}
