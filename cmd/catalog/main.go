package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MercadoClone/config"
	"MercadoClone/internal/catalog"
	"MercadoClone/pkg/kit"
)

func main() {
	service := "catalog"

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(2)
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	store := catalog.NewFileStore(cfg.ProductsFile, cfg.ImagesBaseURL, log)

	// A failed initial load is not fatal: the server comes up unready and
	// keeps answering DATA_LOAD_ERROR until an admin reload succeeds.
	if err := store.Load(context.Background()); err != nil {
		log.Error("initial catalog load failed", zap.Error(err))
	}

	srv := &catalog.Server{
		Service:  catalog.NewService(store),
		Reloader: store,
		Log:      log,
	}

	h := catalog.NewHandler(srv, catalog.HTTPDeps{
		Log:      log,
		Service:  service,
		Registry: prometheus.NewRegistry(),

		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,

		AdminToken: cfg.AdminToken,

		RateLimit:        cfg.RateLimit.Limit,
		RateLimitSeconds: cfg.RateLimit.WindowSeconds,
	})

	if err := kit.RunHTTPServer(cfg.HTTPServerAddr, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
