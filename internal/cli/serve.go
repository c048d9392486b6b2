package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/hrconsole/internal/config"
	"github.com/JonMunkholm/hrconsole/internal/core"
	"github.com/JonMunkholm/hrconsole/internal/core/tables"
	"github.com/JonMunkholm/hrconsole/internal/logging"
	"github.com/JonMunkholm/hrconsole/internal/store"
	"github.com/JonMunkholm/hrconsole/internal/web"
	"github.com/JonMunkholm/hrconsole/internal/web/templates"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HR console web server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func serve(ctx context.Context, cfg *config.Config) error {
	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"prefs_driver", cfg.Database.Driver,
		"rows_source", cfg.Database.Rows,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"max_concurrent_saves", cfg.Table.MaxConcurrentSaves,
	)

	if err := loadCatalog(ctx, cfg.Table); err != nil {
		return err
	}

	backend, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer backend.Close()

	if err := backend.Ping(ctx); err != nil {
		return fmt.Errorf("ping storage: %w", err)
	}

	service := core.NewService(backend.Prefs, backend.Rows, templates.Cells, core.ServiceConfig{
		PageSize:           cfg.Table.PageSize,
		SkeletonRows:       cfg.Table.SkeletonRows,
		AnimationDuration:  cfg.Table.AnimationDuration(),
		StaggerDelay:       cfg.Table.StaggerDelay(),
		MaxConcurrentSaves: cfg.Table.MaxConcurrentSaves,
		SaveWait:           cfg.Table.SaveWait,
	})

	slog.Info("tables registered",
		"count", core.TableCount(),
		"groups", len(core.Groups()),
	)

	server := web.NewServer(service, cfg, backend)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.Server.Addr())
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}

	// Column changes already accepted must reach the store before it closes.
	saves := service.Saves().Status()
	if saves.Active > 0 {
		slog.Info("waiting for column saves to complete", "active", saves.Active)
		if err := service.Saves().WaitForDrain(shutdownCtx); err != nil {
			slog.Warn("column saves did not complete in time", "error", err)
		}
	}
	return nil
}

// loadCatalog merges the override file over the built-in tables and, when
// asked to, keeps it in sync until ctx is done.
func loadCatalog(ctx context.Context, cfg config.TableConfig) error {
	if cfg.ColumnsFile == "" {
		return nil
	}
	if err := tables.Reload(cfg.ColumnsFile); err != nil {
		return fmt.Errorf("load column catalog: %w", err)
	}
	if !cfg.WatchColumns {
		return nil
	}

	return tables.Watch(ctx, cfg.ColumnsFile, tables.DefaultDebounce, func(err error) {
		if err != nil {
			slog.Warn("column catalog reload failed, keeping previous catalog",
				"file", cfg.ColumnsFile, "error", err)
			return
		}
		slog.Info("column catalog reloaded", "file", cfg.ColumnsFile, "tables", core.TableCount())
	})
}
