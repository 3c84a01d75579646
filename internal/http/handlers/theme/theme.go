// Package theme реализует HTTP-обработчик переключения тёмной темы.
package theme

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/messmate/internal/http/response"
	"github.com/magabrotheeeer/messmate/internal/lib/sl"
)

// Service переключает тему.
type Service interface {
	ToggleTheme(ctx context.Context) (bool, error)
}

// Handler обрабатывает POST /theme/toggle.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Переключить тему
// @Tags Preferences
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /theme/toggle [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	dark, err := h.service.ToggleTheme(r.Context())
	if err != nil {
		h.log.Error("failed to toggle theme", sl.Err(err))
	}
	code, body := response.Result(map[string]bool{"darkMode": dark}, err)
	render.Status(r, code)
	render.JSON(w, r, body)
}
