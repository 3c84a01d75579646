// Package login реализует HTTP-обработчик входа сотрудника по имени и PIN-коду.
//
// При успешной проверке выпускается JWT, а пользователь запоминается как текущий
// в документе состояния.
package login

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
	"github.com/magabrotheeeer/messmate/internal/lib/sl"
	"github.com/magabrotheeeer/messmate/internal/models"
	"github.com/magabrotheeeer/messmate/internal/services/auth"
)

// Request описывает учётные данные для входа.
type Request struct {
	Username string `json:"username" validate:"required,max=50"`
	Pin      string `json:"pin" validate:"required,numeric,max=12"`
}

// AuthService проверяет учётные данные и выпускает токен.
type AuthService interface {
	Login(username, pin string) (models.User, error)
	IssueToken(user models.User) (string, error)
}

// Session запоминает вошедшего пользователя.
type Session interface {
	SignIn(ctx context.Context, user models.User) error
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log      *slog.Logger
	auth     AuthService
	session  Session
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, authService AuthService, session Session) *Handler {
	return &Handler{
		log:      log,
		auth:     authService,
		session:  session,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход сотрудника
// @Description Проверяет имя (без учёта регистра) и PIN. Возвращает JWT, имя и роль.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные"
// @Success 200 {object} response.Response "Успешная авторизация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
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

	user, err := h.auth.Login(req.Username, req.Pin)
	if err != nil {
		log.Warn("login failed", slog.String("username", req.Username))
		render.Status(r, response.StatusFor(err))
		render.JSON(w, r, response.Error(auth.ErrInvalidCredentials.Error()))
		return
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		log.Error("failed to issue token", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	err = h.session.SignIn(r.Context(), user)
	if err != nil {
		log.Error("failed to record session", sl.Err(err))
	}
	log.Info("login success", slog.String("username", user.Username), slog.String("role", string(user.Role)))

	code, body := response.Result(map[string]any{
		"token":    token,
		"username": user.Username,
		"role":     user.Role,
	}, err)
	render.Status(r, code)
	render.JSON(w, r, body)
}
