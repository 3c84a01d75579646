// Package messmate собирает HTTP API журнала столовой.
package messmate

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/messmate/internal/config"
	"github.com/magabrotheeeer/messmate/internal/http/handlers/alerts"
	"github.com/magabrotheeeer/messmate/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/messmate/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/messmate/internal/http/handlers/catalog"
	"github.com/magabrotheeeer/messmate/internal/http/handlers/customers/breaks"
	"github.com/magabrotheeeer/messmate/internal/http/handlers/customers/enroll"
	"github.com/magabrotheeeer/messmate/internal/http/handlers/customers/history"
	customerlist "github.com/magabrotheeeer/messmate/internal/http/handlers/customers/list"
	"github.com/magabrotheeeer/messmate/internal/http/handlers/customers/meal"
	"github.com/magabrotheeeer/messmate/internal/http/handlers/dashboard"
	"github.com/magabrotheeeer/messmate/internal/http/handlers/export"
	settingsget "github.com/magabrotheeeer/messmate/internal/http/handlers/settings/get"
	settingsupdate "github.com/magabrotheeeer/messmate/internal/http/handlers/settings/update"
	"github.com/magabrotheeeer/messmate/internal/http/handlers/theme"
	txcreate "github.com/magabrotheeeer/messmate/internal/http/handlers/transactions/create"
	txlist "github.com/magabrotheeeer/messmate/internal/http/handlers/transactions/list"
	"github.com/magabrotheeeer/messmate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/messmate/internal/models"
	"github.com/magabrotheeeer/messmate/internal/services/auth"
	services "github.com/magabrotheeeer/messmate/internal/services/ledger"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg config.HTTPServer, ledgerService *services.LedgerService, authService *auth.Service, gatherer prometheus.Gatherer) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/login", login.New(logger, authService, ledgerService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimit, cfg.RateBurst))

			catalogHandler := catalog.New(logger, ledgerService)

			r.Post("/logout", logout.New(logger, ledgerService).ServeHTTP)
			r.Get("/customers", customerlist.New(logger, ledgerService).ServeHTTP)
			r.Post("/customers", enroll.New(logger, ledgerService).ServeHTTP)
			r.Post("/customers/{id}/meals", meal.New(logger, ledgerService).ServeHTTP)
			r.Post("/customers/{id}/breaks", breaks.New(logger, ledgerService).ServeHTTP)
			r.Get("/customers/{id}/transactions", history.New(logger, ledgerService).ServeHTTP)
			r.Get("/transactions", txlist.New(logger, ledgerService).ServeHTTP)
			r.Post("/transactions", txcreate.New(logger, ledgerService).ServeHTTP)
			r.Get("/settings", settingsget.New(logger, ledgerService).ServeHTTP)
			r.Get("/alerts", alerts.New(logger, ledgerService).ServeHTTP)
			r.Get("/dashboard", dashboard.New(logger, ledgerService).ServeHTTP)
			r.Post("/theme/toggle", theme.New(logger, ledgerService).ServeHTTP)
			r.Get("/plans", catalogHandler.Plans)
			r.Get("/menu", catalogHandler.Menu)

			// Только владелец
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleOwner))
				r.Put("/settings", settingsupdate.New(logger, ledgerService).ServeHTTP)
				r.Get("/export", export.New(logger, ledgerService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
