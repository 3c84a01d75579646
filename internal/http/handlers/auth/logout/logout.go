// Package logout реализует HTTP-обработчик выхода: сбрасывает текущего пользователя.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/messmate/internal/http/response"
	"github.com/magabrotheeeer/messmate/internal/lib/sl"
)

// Session сбрасывает текущего пользователя.
type Session interface {
	SignOut(ctx context.Context) error
}

// Handler обрабатывает выход.
type Handler struct {
	log     *slog.Logger
	session Session
}

// New создает новый Handler.
func New(log *slog.Logger, session Session) *Handler {
	return &Handler{log: log, session: session}
}

// ServeHTTP godoc
// @Summary Выход
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	err := h.session.SignOut(r.Context())
	if err != nil {
		log.Error("failed to sign out", sl.Err(err))
	}
	code, body := response.Result(map[string]any{"signedOut": true}, err)
	render.Status(r, code)
	render.JSON(w, r, body)
}
