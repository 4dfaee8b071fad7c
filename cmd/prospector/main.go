// Package main wires together the board-enrichment binary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fieldops/prospector/internal/api"
	"github.com/fieldops/prospector/internal/board"
	"github.com/fieldops/prospector/internal/config"
	"github.com/fieldops/prospector/internal/enrich"
	"github.com/fieldops/prospector/internal/logging"
	"github.com/fieldops/prospector/internal/metrics"
	"github.com/fieldops/prospector/internal/render"
	"github.com/fieldops/prospector/internal/runner"
	"github.com/fieldops/prospector/internal/site"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfgPath := flag.String("config", "", "Path to config file")
	serve := flag.Bool("serve", false, "Run the webhook server instead of a one-shot batch")
	taskName := flag.String("task", "", "Run a single named task instead of the full set")
	recordID := flag.String("record", "", "Scope the run to a single record id")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		return 1
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()
	zap.ReplaceGlobals(logger)
	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	boardClient := board.New(
		cfg.Board.APIURL,
		cfg.Board.Token,
		time.Duration(cfg.HTTP.TimeoutSeconds)*time.Second,
	)
	fetcher := site.NewFetcher(site.FetcherConfig{
		UserAgent: cfg.HTTP.UserAgent,
		Timeout:   time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
	})

	var renderer *render.Renderer
	if cfg.Headless.Enabled {
		renderer, err = render.New(render.Config{
			MaxParallel:       cfg.Headless.MaxParallel,
			UserAgent:         cfg.HTTP.UserAgent,
			NavigationTimeout: time.Duration(cfg.Headless.NavTimeoutSec) * time.Second,
		})
		if err != nil {
			logger.Warn("headless renderer init failed, falling back to plain fetches", zap.Error(err))
			renderer = nil
		} else {
			defer renderer.Close()
		}
	}

	env := &enrich.Env{
		Board:    boardClient,
		BoardID:  cfg.Board.BoardID,
		Fetcher:  fetcher,
		Renderer: renderer,
		Cfg:      cfg,
		Log:      logger,
	}
	r := runner.New(env, logger)

	if *serve {
		return serveHTTP(ctx, stop, r, cfg, logger)
	}

	tasks := cfg.Run.Tasks
	if *taskName != "" {
		tasks = []string{*taskName}
	}

	var status runner.Status
	if *recordID != "" {
		status = r.RunScoped(ctx, tasks, *recordID)
	} else {
		status = r.Run(ctx, tasks)
	}
	logger.Info("batch finished", zap.String("status", status.String()))
	if status == runner.StatusOK {
		return 0
	}
	return 1
}

func serveHTTP(ctx context.Context, stop context.CancelFunc, r *runner.Runner, cfg config.Config, logger *zap.Logger) int {
	apiServer := api.NewServer(r, cfg, logger)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
	return 0
}
