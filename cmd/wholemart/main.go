// Package main запускает HTTP-сервер витрины WholeMart.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/wholemart-system/internal/catalog"
	"github.com/mmeshcher/wholemart-system/internal/config"
	"github.com/mmeshcher/wholemart-system/internal/handler"
	"github.com/mmeshcher/wholemart-system/internal/middleware"
	"github.com/mmeshcher/wholemart-system/internal/notifier"
	"github.com/mmeshcher/wholemart-system/internal/service"
	"github.com/mmeshcher/wholemart-system/internal/storage"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	// Без адреса БД состояние живёт только в памяти процесса,
	// как и локальное хранилище исходной демо-витрины.
	var store storage.Store
	if cfg.DatabaseURI != "" {
		pg, err := storage.NewPostgresStore(cfg.DatabaseURI)
		if err != nil {
			sugar.Fatalw("database initialization error", "error", err.Error())
		}
		store = pg
	} else {
		sugar.Infow("no database configured, state is kept in memory")
		store = storage.NewMemoryStore()
	}
	defer store.Close()

	adapter := storage.NewAdapter(store, logger)
	smsClient := notifier.NewClient(cfg.SMSAPIURL, cfg.SMSAPIKey, logger)

	svc := service.NewService(adapter, catalog.Default(), smsClient, logger)
	defer svc.Close()

	authMiddleware := middleware.NewAuthMiddleware(cfg.AuthSecret)
	h := handler.NewHandler(svc, logger, authMiddleware)

	r := h.SetupRouter()

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Запуск HTTP-сервера
	g.Go(func() error {
		sugar.Infow("starting wholemart server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
