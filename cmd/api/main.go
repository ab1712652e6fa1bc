package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/mealwise/backend/config"
	"github.com/pageza/mealwise/backend/internal/logger"
	"github.com/pageza/mealwise/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: !config.IsProduction(),
	})
	defer logr.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	srv, err := server.Bootstrap(ctx, cfg, logr)
	cancel()
	if err != nil {
		logr.Fatal("Failed to initialize server", zap.Error(err))
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logr.Error("Server error", zap.Error(err))
		}
	case sig := <-quit:
		logr.Info("Received signal", zap.String("signal", sig.String()))
	}

	logr.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Fatal("Server shutdown error", zap.Error(err))
	}
	logr.Info("Server stopped")
}
