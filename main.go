package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/roomfield/config"
	"github.com/lixenwraith/roomfield/core"
	"github.com/lixenwraith/roomfield/logging"
	"github.com/lixenwraith/roomfield/metrics"
	"github.com/lixenwraith/roomfield/navigation"
	"github.com/lixenwraith/roomfield/tilemap"
)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	envPath := flag.String("env", "", "dotenv file with ROOMFIELD_* overrides")
	generate := flag.Bool("generate", true, "start with a generated level")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err == nil {
		err = config.LoadEnv(cfg, *envPath)
	}
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the viewer, log only when a file is configured
	logger := zap.NewNop()
	if cfg.Logging.File != "" {
		logger = logging.Must(cfg.Logging)
	}
	defer logger.Sync()

	collector := metrics.NewCollector()
	field, err := navigation.New(tilemap.NewGrid(cfg.Map.Width, cfg.Map.Height), cfg.Field.MaxDistance,
		navigation.WithSubdivision(cfg.Field.Subdivision),
		navigation.WithLogger(logger.Named("field")),
		navigation.WithObserver(collector))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build field: %v\n", err)
		os.Exit(1)
	}

	if cfg.Metrics.Addr != "" {
		srv := serveMetrics(cfg.Metrics.Addr, collector, logger)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
	}

	viewer, err := NewViewer(field, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer viewer.cleanup()
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if *generate {
		viewer.generate()
	}
	viewer.run()
}

func serveMetrics(addr string, collector *metrics.Collector, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", addr))
	return srv
}
