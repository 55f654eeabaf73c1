package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"motohub/internal/config"
	"motohub/internal/crawler"
	"motohub/internal/fetch"
	"motohub/internal/pipeline"
	"motohub/internal/publisher"
	"motohub/internal/resolver"
	"motohub/internal/scheduler"
	"motohub/internal/service"
	"motohub/internal/source"
	"motohub/internal/source/bds"
	"motohub/internal/source/goobike"
	"motohub/internal/storage/postgres"
)

var registry = map[string]func() source.Source{
	"goobike": func() source.Source { return goobike.New() },
	"bds":     func() source.Source { return bds.New() },
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	once := flag.Bool("once", false, "run the pipeline once and exit")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	sources, err := buildSources(cfg.Sites)
	if err != nil {
		logger.Error("invalid sites", "error", err)
		os.Exit(1)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Listing events are optional
	var events service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(cfg.RabbitMQ, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		events = rabbitMQ
	}

	fetcher, closeFetcher, err := buildFetcher(cfg.Fetch, logger)
	if err != nil {
		logger.Error("failed to start fetcher", "error", err)
		os.Exit(1)
	}
	defer closeFetcher()

	// Initialize stores
	siteStore := postgres.NewSiteStore(db)
	modelStore := postgres.NewModelStore(db)
	listingStore := postgres.NewListingStore(db)
	txManager := postgres.NewTransactionManager(db)
	stores := resolver.Stores{
		Manufacturers:    postgres.NewManufacturerStore(db),
		Models:           modelStore,
		Shops:            postgres.NewShopStore(db),
		ModelIdentifiers: postgres.NewModelIdentifierStore(db),
		ShopIdentifiers:  postgres.NewShopIdentifierStore(db),
	}

	runner := pipeline.New(pipeline.Deps{
		Sources:    sources,
		Fetcher:    fetcher,
		Sites:      siteStore,
		Enrichment: modelStore,
		Coordinator: crawler.New(crawler.Config{
			MaxConcurrency: cfg.Crawl.MaxConcurrency,
			MaxRetries:     cfg.Crawl.MaxRetries,
			InitialBackoff: cfg.Crawl.InitialBackoff,
			MaxBackoff:     cfg.Crawl.MaxBackoff,
			PhaseTimeout:   cfg.Crawl.PhaseTimeout,
		}, logger),
		NewRun: func() pipeline.RunDeps {
			res := resolver.New(stores, resolver.NewIdentifierCache(), resolver.NewIdentifierCache(), logger)
			return pipeline.RunDeps{
				Resolver: res,
				Listings: service.NewListingSync(listingStore, res, txManager, events, logger, cfg.Sync),
			}
		},
	}, logger)

	sched := scheduler.NewScheduler(runner, cfg.Sync.Interval, cfg.Sync.RunTimeout, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if cfg.Metrics.Addr != "" {
		metricsServer := serveMetrics(cfg.Metrics.Addr, logger)
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}

	logger.Info("starting motohub syncer",
		"sites", cfg.Sites,
		"fetch_mode", cfg.Fetch.Mode,
		"interval", cfg.Sync.Interval,
		"once", *once,
	)

	if *once {
		if _, err := sched.RunOnce(ctx); err != nil {
			logger.Error("run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

func buildSources(names []string) ([]source.Source, error) {
	sources := make([]source.Source, 0, len(names))
	for _, name := range names {
		newSource, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("unknown site %q", name)
		}
		sources = append(sources, newSource())
	}
	return sources, nil
}

func buildFetcher(cfg config.FetchConfig, logger *slog.Logger) (source.Fetcher, func(), error) {
	if cfg.Mode == config.FetchModeBrowser {
		browser, err := fetch.NewBrowserFetcher(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return browser, func() {
			if err := browser.Close(); err != nil {
				logger.Warn("failed to stop browser", "error", err)
			}
		}, nil
	}
	return fetch.NewHTTPFetcher(cfg, logger), func() {}, nil
}

func serveMetrics(addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", addr)

	return server
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
