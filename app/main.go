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

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/tsib-catalog/app/api"
	"github.com/lysyi3m/tsib-catalog/app/cache"
	"github.com/lysyi3m/tsib-catalog/app/cfg"
	"github.com/lysyi3m/tsib-catalog/app/feed"
	"github.com/lysyi3m/tsib-catalog/app/tasks"
)

func main() {
	appCfg, err := cfg.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	setupLogger(appCfg.Debug)

	slog.Info("Starting T-Sib catalog server", "version", appCfg.Version)

	feedConfig, err := feed.LoadConfig(appCfg.FeedConfigPath)
	if err != nil {
		slog.Error("Failed to load feed definition", "path", appCfg.FeedConfigPath, "error", err)
		os.Exit(1)
	}

	slog.Info("Feed definition loaded",
		"url", feedConfig.URL,
		"timeout", feedConfig.Settings.GetTimeout(),
		"refresh_interval", feedConfig.Settings.GetRefreshInterval(),
		"sections", len(feedConfig.Sections))

	// The fetcher bounds each request with its own deadline.
	httpClient := &http.Client{}

	fetcher := feed.NewFetcher(httpClient, feedConfig.URL, appCfg.UserAgent, feedConfig.Settings.GetTimeout())
	builder := feed.NewBuilder(feedConfig.Sections, feed.NewNormalizer())
	catalogCache := cache.NewCache(fetcher, builder, feedConfig.Settings.GetRefreshInterval())

	if appCfg.WarmInterval > 0 {
		scheduler := tasks.NewScheduler(catalogCache, appCfg.WarmInterval)
		scheduler.Start()
		defer scheduler.Stop()
		slog.Info("Catalog warmer started", "interval", appCfg.WarmInterval)
	}

	if !appCfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := api.NewHandler(catalogCache, appCfg.Version)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
