package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"blog/domain"
	"blog/handler"
	"blog/store"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/acme/autocert"
)

const (
	connectTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath, cmd.Flags())
	if err != nil {
		return err
	}
	return serve(cmd.Context(), cfg)
}

func serve(ctx context.Context, cfg domain.Config) error {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	s, err := store.Open(connectCtx, cfg)
	cancel()
	if err != nil {
		return fmt.Errorf("error opening %s database: %w", cfg.DBDriver, err)
	}

	h := &handler.Handler{
		Store:     s,
		PageTitle: cfg.PageTitle,
	}
	e, err := handler.NewServer(h)
	if err != nil {
		s.Close(context.Background())
		return err
	}
	e.Use(middleware.Logger())
	if cfg.IsDev() {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.INFO)
	}
	e.Logger.Infof("connected to the %s database", cfg.DBDriver)
	defer func() {
		if err := s.Close(context.Background()); err != nil {
			e.Logger.Errorf("error closing the %s database: %v", cfg.DBDriver, err)
		}
	}()

	errc := make(chan error, 1)
	go func() {
		errc <- start(e, cfg)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	e.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func start(e *echo.Echo, cfg domain.Config) error {
	if cfg.Address != "" {
		return e.Start(cfg.Address)
	}

	// Cache certificates to avoid issues with rate limits (https://letsencrypt.org/docs/rate-limits)
	e.AutoTLSManager.Cache = autocert.DirCache(cfg.CertCache)
	if cfg.TLSHost != "" {
		e.AutoTLSManager.HostPolicy = autocert.HostWhitelist(cfg.TLSHost)
	}
	e.Pre(middleware.HTTPSRedirect())
	return e.StartAutoTLS(":443")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath, cmd.Flags())
	if err != nil {
		return err
	}

	fmt.Println("Running database schema migrations...")
	err = store.Migrate(cmd.Context(), cfg)
	if errors.Is(err, store.ErrNoMigrations) {
		fmt.Printf("Nothing to migrate for the %s driver\n", cfg.DBDriver)
		return nil
	}
	if err != nil {
		return fmt.Errorf("error during database schema migration: %w", err)
	}
	fmt.Println("Database schema is up to date")
	return nil
}
