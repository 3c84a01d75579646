// Package cli содержит команды messmatectl для просмотра журнала без HTTP сервера.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/messmate/internal/config"
	"github.com/magabrotheeeer/messmate/internal/lib/logger"
	"github.com/magabrotheeeer/messmate/internal/models"
	"github.com/magabrotheeeer/messmate/internal/storage"
)

// StateLoader читает документ состояния.
type StateLoader interface {
	Load(ctx context.Context) (models.State, error)
}

// OpenFunc открывает хранилище по пути к конфигу.
type OpenFunc func(ctx context.Context, configPath string) (StateLoader, io.Closer, error)

// Deps — зависимости команд.
type Deps struct {
	Open OpenFunc
	Now  func() time.Time
}

// OpenConfigured читает конфиг и открывает настроенное в нём хранилище.
func OpenConfigured(ctx context.Context, configPath string) (StateLoader, io.Closer, error) {
	const op = "cli.OpenConfigured"
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	store, closer, err := storage.Open(ctx, cfg.Storage, logger.NewWithWriter(cfg.Env, os.Stderr))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return store, closer, nil
}

// NewRootCommand собирает корневую команду со всеми подкомандами.
func NewRootCommand(deps Deps) *cobra.Command {
	if deps.Open == nil {
		deps.Open = OpenConfigured
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	var configPath string
	cmd := &cobra.Command{
		Use:           "messmatectl",
		Short:         "MessMate ledger tools",
		Long:          `Read-only tools for the MessMate ledger: renewal alerts, monthly summary and CSV export.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CONFIG_PATH"), "Path to config file (default: $CONFIG_PATH)")

	load := func(cmd *cobra.Command) (models.State, error) {
		if configPath == "" {
			return models.State{}, fmt.Errorf("config path is not set")
		}
		loader, closer, err := deps.Open(cmd.Context(), configPath)
		if err != nil {
			return models.State{}, err
		}
		defer closer.Close()
		return loader.Load(cmd.Context())
	}

	cmd.AddCommand(
		newAlertsCommand(load, deps.Now),
		newSummaryCommand(load, deps.Now),
		newExportCommand(load, deps.Now),
	)
	return cmd
}

type loadFunc func(cmd *cobra.Command) (models.State, error)
