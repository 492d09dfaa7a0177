// ============================================================================
// MAIN.GO - APPLICATION ENTRY POINT
// ============================================================================
// Startup flow:
// config -> logger -> link store -> service -> handler -> router -> server
//
// The link store is created once here and handed down explicitly. It lives
// for the whole process and is discarded on exit.
// ============================================================================

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shortlink/internal/config"
	httpHandler "shortlink/internal/handler/http"
	"shortlink/internal/metrics"
	"shortlink/internal/ratelimit"
	"shortlink/internal/repository/memory"
	"shortlink/internal/service"
	"shortlink/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

func main() {
	// ========================================================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================================================
	// Environment variables first, command-line flags on top
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// ========================================================================
	// STEP 2: INITIALIZE STRUCTURED LOGGER
	// ========================================================================
	appLogger := logger.New(cfg.App.LogLevel)
	appLogger.Info("Starting shortlink",
		"environment", cfg.App.Environment,
		"address", cfg.Server.Addr(),
		"static_dir", cfg.App.StaticDir,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// STEP 3: BUILD THE DEPENDENCY GRAPH
	// ========================================================================
	// Link store -> Service -> Handler
	store := memory.NewShortLinkStore(memory.WithShards(cfg.App.StoreShards))
	linkService := service.NewLinkService(store, appLogger)
	handler := httpHandler.NewHandler(linkService, appLogger, cfg.App.StaticDir)

	var routerOpts httpHandler.RouterOptions

	if cfg.App.EnableMetrics {
		metrics.RegisterStoredLinks(prometheus.DefaultRegisterer, store.Len)
		routerOpts.MetricsHandler = promhttp.Handler()
	}

	if cfg.App.RateLimitEnabled {
		redisClient, err := ratelimit.NewRedisClient(ctx, cfg.Redis.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			appLogger.Error("Failed to connect to Redis", "error", err)
			log.Fatalf("Redis connection failed: %v", err)
		}
		defer redisClient.Close()

		routerOpts.RateLimiter = ratelimit.NewFixedWindowLimiter(redisClient, cfg.App.RateLimitPerMinute, time.Minute)
		routerOpts.TrustProxyHeaders = cfg.App.TrustProxyHeaders
		appLogger.Info("Rate limiting enabled",
			"requests_per_minute", cfg.App.RateLimitPerMinute,
			"trust_proxy_headers", cfg.App.TrustProxyHeaders,
		)
	}

	// ========================================================================
	// STEP 4: CREATE HTTP SERVER
	// ========================================================================
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      httpHandler.NewRouter(handler, appLogger.Logger, routerOpts),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// ========================================================================
	// STEP 5: SERVE UNTIL INTERRUPTED, THEN DRAIN
	// ========================================================================
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		appLogger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}

	appLogger.Info("Server exited gracefully", "stored_links", store.Len())
}
