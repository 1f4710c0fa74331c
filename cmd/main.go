package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/rishusinha26/portfolio-backend/config"
	"github.com/rishusinha26/portfolio-backend/internal/container"
	"github.com/rishusinha26/portfolio-backend/internal/router"
	"github.com/rishusinha26/portfolio-backend/pkg/helpers"
	"github.com/rishusinha26/portfolio-backend/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Store is mandatory; every other dependency degrades to "disabled"
	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to initialise dependencies: %v", err)
	}
	defer c.Close()

	r := router.NewEngine(c)
	if !cfg.TrustProxy {
		_ = r.SetTrustedProxies(nil)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// in-flight contact submissions may wait up to the operator bound
	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.OperatorNotifyTimeout+cfg.ConfirmationNotifyTimeout)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
