package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchtools/internal/config"
	"github.com/kailas-cloud/searchtools/internal/db/meili"
	"github.com/kailas-cloud/searchtools/internal/domain/search/mode"
	"github.com/kailas-cloud/searchtools/internal/domain/search/timefield"
	logpkg "github.com/kailas-cloud/searchtools/internal/logger"
	"github.com/kailas-cloud/searchtools/internal/metrics"
	"github.com/kailas-cloud/searchtools/internal/tools"
	chiTransport "github.com/kailas-cloud/searchtools/internal/transport/chi"
	healthuc "github.com/kailas-cloud/searchtools/internal/usecase/health"
	searchuc "github.com/kailas-cloud/searchtools/internal/usecase/search"
	"github.com/kailas-cloud/searchtools/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting searchtools server",
		zap.String("commit", version.Commit),
		zap.String("build_date", version.Date),
		zap.String("env", env),
		zap.String("http_addr", cfg.HTTP.Addr()),
		zap.String("engine_url", cfg.Engine.URL),
		zap.String("time_mode", cfg.Search.TimeMode),
		zap.String("response_mode", cfg.Search.ResponseMode),
		zap.Strings("indexes", cfg.IndexNames()),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterEngineMetrics()
	metrics.RegisterToolMetrics()
	metrics.RegisterHTTPMetrics()

	store, err := meili.NewStore(meili.Config{
		URL:     cfg.Engine.URL,
		APIKey:  cfg.Engine.APIKey,
		Timeout: cfg.Engine.Timeout(),
	})
	if err != nil {
		logger.Fatal("Failed to create engine client", zap.Error(err))
	}
	defer store.Close()

	// Engine outages are reported per call and by /health, so startup does not block on them.
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Engine.ReadinessTimeout)*time.Second); err != nil {
		logger.Warn("Search engine not ready, serving anyway", zap.Error(err))
	} else {
		logger.Info("Connected to search engine")
	}

	registry, err := cfg.Profiles()
	if err != nil {
		logger.Fatal("Invalid index profiles", zap.Error(err))
	}

	searchSvc := searchuc.New(store, store, registry, searchuc.Config{
		TimeMode:     timefield.Mode(cfg.Search.TimeMode),
		ResponseMode: mode.Mode(cfg.Search.ResponseMode),
		DefaultLimit: cfg.Search.DefaultLimit,
		MaxLimit:     cfg.Search.MaxLimit,
		Areas: searchuc.AreasConfig{
			FacetField:   cfg.Areas.FacetField,
			FacetIndexes: cfg.Areas.FacetIndexes,
			ScanIndex:    cfg.Areas.ScanIndex,
			ScanField:    cfg.Areas.ScanField,
			MaxScanHits:  cfg.Areas.MaxScanHits,
		},
	}, logger)
	healthSvc := healthuc.New(store, store, cfg.IndexNames())

	toolRegistry := tools.NewRegistry(logger)
	if err := tools.RegisterSearchTools(toolRegistry, searchSvc, tools.Options{
		Bindings: toolBindings(cfg.Indexes),
		Areas:    cfg.Areas.Enabled(),
	}); err != nil {
		logger.Fatal("Failed to register tools", zap.Error(err))
	}
	logger.Info("Tools registered", zap.Strings("tools", toolRegistry.Names()))

	server := chiTransport.NewServer(toolRegistry, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.Recoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.RequestLog(logger))
	r.Use(metrics.Middleware())
	server.Mount(r)

	addr := cfg.HTTP.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// toolBindings exposes every configured index as its own search tool.
func toolBindings(indexes []config.IndexConfig) []tools.Binding {
	out := make([]tools.Binding, 0, len(indexes))
	for _, ic := range indexes {
		out = append(out, tools.Binding{
			Tool:        ic.Tool,
			Index:       ic.Name,
			Description: ic.Description,
		})
	}
	return out
}
