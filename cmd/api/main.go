package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"libdb-finder/api/router"
	"libdb-finder/config"
	"libdb-finder/services"
)

// @title           LibDB Finder API
// @version         1.0
// @description     Locate a university library's database listing page and count its Chinese and foreign-language databases
// @BasePath        /api/v1
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	config.InitLogger(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, cleanup := services.NewFromConfig(ctx, cfg)
	defer cleanup()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router.New(svc, cfg.Server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		config.Logger.Infof("api server listening on %s (search=%t, run_log=%t)", cfg.Server.Addr, svc.SearchEnabled(), svc.RunLogEnabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Errorf("api server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	config.Logger.Info("shutting down api server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Errorf("api server shutdown: %v", err)
	}
}
