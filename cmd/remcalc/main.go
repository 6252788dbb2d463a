package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/remcalc/remcalc/internal/app"
	"github.com/remcalc/remcalc/internal/observability"
	"github.com/remcalc/remcalc/internal/rates"
	"github.com/remcalc/remcalc/internal/scenario"
	scenariohttp "github.com/remcalc/remcalc/internal/scenario/http"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	table, err := rates.Load()
	if err != nil {
		logger.Error("load rate table", slog.Any("error", err))
		os.Exit(1)
	}
	if table.Year != cfg.TaxYear {
		logger.Error("rate table year mismatch",
			slog.Int("configured", cfg.TaxYear),
			slog.Int("embedded", table.Year))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	calculator := scenario.NewCalculator(table)
	service := scenario.NewService(logger, calculator, metrics)
	scenarioHandler := scenariohttp.NewHandler(logger, service)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		ScenarioHandler: scenarioHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server",
			slog.String("addr", cfg.AppAddr),
			slog.Int("tax_year", table.Year),
			slog.String("jurisdiction", table.Jurisdiction))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
