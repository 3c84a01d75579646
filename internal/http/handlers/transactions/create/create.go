// Package create реализует HTTP-обработчик ручной денежной проводки: прихода или расхода.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/messmate/internal/http/response"
	"github.com/magabrotheeeer/messmate/internal/ledger"
	"github.com/magabrotheeeer/messmate/internal/lib/sl"
	"github.com/magabrotheeeer/messmate/internal/models"
)

// Request описывает ручную проводку. Сумма принимается числом или строкой.
type Request struct {
	Type        models.TransactionType `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	Amount      decimal.Decimal        `json:"amount"`
	Description string                 `json:"description" validate:"required,max=200"`
	Category    string                 `json:"category" validate:"max=50"`
}

// Service добавляет проводку.
type Service interface {
	AddTransaction(ctx context.Context, req ledger.TransactionRequest) (models.Transaction, error)
}

// Handler обрабатывает POST /transactions.
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
// @Summary Добавить приход или расход
// @Tags Transactions
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Проводка"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /transactions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.transactions.create"
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

	tx, err := h.service.AddTransaction(r.Context(), ledger.TransactionRequest{
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		log.Error("failed to add transaction", sl.Err(err))
	}
	code, body := response.Result(tx, err)
	render.Status(r, code)
	render.JSON(w, r, body)
}
