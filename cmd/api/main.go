package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/config"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/exporter"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/handler"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/repository"
	"github.com/dnd-vsevolozhsk/schedule-manager/backend/internal/service"
)

func main() {
	/**********************************************
	 * создание logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * загрузка конфигурации
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("не удалось загрузить конфигурацию", "error", err)
		return
	}

	/**********************************************
	 * подготовка каталогов хранилища
	 **********************************************/
	for _, dir := range []string{cfg.Storage.DataDir, cfg.Storage.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("не удалось создать каталог", "dir", dir, "error", err)
			return
		}
	}

	/**********************************************
	 * создание repository и сервисов
	 **********************************************/
	repo := repository.NewRepository(cfg)
	factory := exporter.NewFactory(cfg)
	scheduleService := service.NewScheduleService(cfg, repo)
	exportService := service.NewExportService(cfg, repo, factory)

	/**********************************************
	 * создание handler
	 **********************************************/
	handler, err := handler.NewHandler(cfg, scheduleService, exportService)
	if err != nil {
		logger.Error("не удалось создать handler", "error", err)
		return
	}
	handler.RegisterRoutes()

	/**********************************************
	 * запуск HTTP-сервера
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("запуск сервера...", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("не удалось запустить сервер", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("остановка сервера...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("не удалось остановить сервер", slog.String("error", err.Error()))
	}
	logger.Info("сервер остановлен")
}
