package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"stocksapi/internal/config"
	"stocksapi/internal/httpx"
	"stocksapi/internal/logger"
	"stocksapi/internal/provider/yahooadapter"
	"stocksapi/internal/recorder"
	"stocksapi/internal/transport/handler"
	"stocksapi/internal/transport/router"
	"stocksapi/internal/watch"
	"stocksapi/pkg/yahoo"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	log := logger.Init(cfg.Log.Level, cfg.Log.Format)
	if logger.ParseLevel(cfg.Log.Level) != slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	httpClient := httpx.New(0)
	if cfg.Yahoo.UserAgent != "" {
		httpClient.UserAgent = cfg.Yahoo.UserAgent
	}
	api := yahoo.New(
		yahoo.WithBaseURL(cfg.Yahoo.BaseURL),
		yahoo.WithHTTPClient(httpClient),
		yahoo.WithTimeout(time.Duration(cfg.Yahoo.TimeoutSec)*time.Second),
		yahoo.WithLogger(log),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rec, snapshots, err := openRecorder(cfg.Recorder)
	if err != nil {
		log.Error("recorder", "error", err)
		os.Exit(1)
	}
	defer rec.Close()

	var watcher *watch.Watcher
	if cfg.Watch.Enabled {
		p := yahooadapter.New(yahooadapter.Config{Name: "Yahoo"}, api)
		watcher = watch.New(ctx, p, rec, cfg.Watch.Symbols, time.Duration(cfg.Server.RequestTimeoutSec)*time.Second)
		watcher.Logger = log
		if err := watcher.Register(cfg.Watch.Cron); err != nil {
			log.Error("watch", "error", err)
			os.Exit(1)
		}
		watcher.Start()
	}

	finance := handler.NewFinanceHandler(api, time.Duration(cfg.Server.RequestTimeoutSec)*time.Second)
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router.NewRouter(finance, snapshots),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.RequestTimeoutSec+5) * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "error", err)
			stop()
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("server shutdown", "error", err)
	}
	if watcher != nil {
		watcher.Stop()
	}
}

// openRecorder opens the SQLite recorder when a path is configured, so its
// snapshots are served even when this process does not run the watcher.
func openRecorder(cfg config.Recorder) (recorder.Recorder, *handler.SnapshotHandler, error) {
	if cfg.SQLitePath == "" {
		return recorder.NoopRecorder{}, nil, nil
	}
	rec, err := recorder.NewSQLiteRecorder(cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	return rec, handler.NewSnapshotHandler(rec), nil
}
