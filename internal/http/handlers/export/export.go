// Package export реализует HTTP-обработчик CSV-выгрузки. Доступен только владельцу.
package export

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/messmate/internal/http/response"
	"github.com/magabrotheeeer/messmate/internal/lib/sl"
)

// Service формирует выгрузку.
type Service interface {
	Export(w io.Writer) error
	ExportFileName() string
}

// Handler обрабатывает GET /export.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary CSV-выгрузка
// @Description Проводки и клиенты одним CSV-файлом.
// @Tags Export
// @Produce  text/csv
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 403 {object} response.ErrorResponse "Только для владельца"
// @Router /export [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.export"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var buf bytes.Buffer
	if err := h.service.Export(&buf); err != nil {
		log.Error("failed to build export", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	name := h.service.ExportFileName()
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error("failed to write export", sl.Err(err))
		return
	}
	log.Info("export sent", slog.String("file", name))
}
