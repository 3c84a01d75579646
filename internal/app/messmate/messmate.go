package messmate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/magabrotheeeer/messmate/internal/config"
	"github.com/magabrotheeeer/messmate/internal/ledger"
	"github.com/magabrotheeeer/messmate/internal/lib/jwt"
	"github.com/magabrotheeeer/messmate/internal/lib/sl"
	"github.com/magabrotheeeer/messmate/internal/metrics"
	"github.com/magabrotheeeer/messmate/internal/services/auth"
	services "github.com/magabrotheeeer/messmate/internal/services/ledger"
	"github.com/magabrotheeeer/messmate/internal/storage"
)

// App — HTTP сервер журнала вместе с открытым хранилищем.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	storage io.Closer
}

// New открывает хранилище, загружает документ и собирает роутер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "messmate.New"

	store, closer, err := storage.Open(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	ledgerService, err := services.NewLedgerService(ctx, store, ledger.New(), logger, metrics.New(registry))
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if cfg.JWTToken.JWTSecretKey == "" {
		logger.Warn("jwt secret key is empty, tokens are not protected")
	}
	authService := auth.New(cfg.Users, jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL))

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg.HTTPServer, ledgerService, authService, registry)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server:  srv,
		logger:  logger,
		storage: closer,
	}, nil
}

// Run обслуживает запросы до отмены ctx, затем плавно останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.closeStorage()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.closeStorage()
		return err
	}
}

func (a *App) closeStorage() {
	if err := a.storage.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
}
