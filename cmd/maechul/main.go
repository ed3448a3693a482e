package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"maechul/internal/cli"
	apphttp "maechul/internal/http"
	"maechul/internal/ingest"
	"maechul/internal/report"
	"maechul/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)
	classifier := cli.BuildClassifier(logger, cfg)

	parser := ingest.NewParser(
		ingest.ColumnLayout{
			DateCol:   cfg.DateColumn,
			AmountCol: cfg.AmountColumn,
			LabelCol:  cfg.LabelColumn,
		},
		cfg.HeaderMarkers,
		cfg.HeaderScanRows,
		classifier,
	)
	engine := report.NewEngine(classifier.Categories())

	srv := apphttp.NewServer(cfg, store.New(), parser, engine)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting maechul server", "port", cfg.Port, "base_url", cfg.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
