package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmanzanoa/lactic-acidosis-detection/internal/api"
	"github.com/dmanzanoa/lactic-acidosis-detection/internal/config"
	"github.com/dmanzanoa/lactic-acidosis-detection/internal/metrics"
	"github.com/dmanzanoa/lactic-acidosis-detection/internal/runstore"
	"github.com/dmanzanoa/lactic-acidosis-detection/internal/screening"
	"github.com/dmanzanoa/lactic-acidosis-detection/internal/warehouse"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file; empty uses built-in defaults")
	serve := flag.Bool("serve", false, "run as a long-lived service with an HTTP report surface")
	flag.Parse()

	// Logs go to stderr so the one-shot summary on stdout stays clean.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	dsn, err := cfg.Warehouse.DSN()
	if err != nil {
		slog.Error("missing configuration", "err", err)
		os.Exit(1)
	}

	wh, err := warehouse.Open(dsn, cfg.Warehouse.Schema)
	if err != nil {
		slog.Error("warehouse not available", "err", err)
		os.Exit(1)
	}
	defer wh.Close()

	runner := screening.NewRunner(wh, paramsFrom(cfg))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if !*serve {
		rep, err := runner.Run(ctx)
		if err != nil {
			slog.Error("screening run failed", "err", err)
			os.Exit(1)
		}
		fmt.Print(rep.Summary())
		return
	}

	runService(ctx, cfg, *configPath, runner)
}

// paramsFrom maps the screening section of the config to runner parameters.
func paramsFrom(cfg *config.Config) screening.Params {
	return screening.Params{
		Thresholds: screening.Thresholds{
			LactateAbove: cfg.Screening.LactateAbove,
			PHAtOrBelow:  cfg.Screening.PHAtOrBelow,
		},
		MinDuration: cfg.Screening.MinEpisodeDuration,
		Medications: cfg.Screening.Medications,
		CodePattern: cfg.Screening.DiagnosisCode,
		LactateFilter: warehouse.ItemFilter{
			Label:    cfg.Screening.LactateItems.Label,
			Category: cfg.Screening.LactateItems.Category,
		},
		PHFilter: warehouse.ItemFilter{
			Label:    cfg.Screening.PHItems.Label,
			Category: cfg.Screening.PHItems.Category,
		},
	}
}

// runService runs the screening on an interval and exposes the report API,
// /metrics, and config hot reload until ctx is cancelled.
func runService(ctx context.Context, cfg *config.Config, configPath string, runner *screening.Runner) {
	slog.Info("acidoscan starting in serve mode",
		"http_port", cfg.Serve.HTTPPort,
		"interval", cfg.Serve.Interval,
		"retention", cfg.Serve.Retention,
	)

	st := runstore.New(cfg.Serve.Retention)
	go st.Run(ctx)

	// Screening parameters follow the config file between runs.
	if configPath != "" {
		go func() {
			if err := config.Watch(ctx, configPath, func(next *config.Config) {
				runner.UpdateParams(paramsFrom(next))
			}); err != nil {
				slog.Error("config watch stopped", "err", err)
			}
		}()
	}

	httpMux := http.NewServeMux()
	httpMux.Handle("/api/", api.New(st, cfg.Serve.Auth))
	httpMux.Handle("/metrics", promhttp.Handler())

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Serve.HTTPPort),
		Handler: httpMux,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Serve.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	runOnce := func() {
		started := time.Now()
		rep, err := runner.Run(ctx)
		if err != nil {
			metrics.RunErrors.Inc()
			slog.Error("screening run failed", "err", err)
			return
		}
		metrics.RunsTotal.Inc()
		metrics.FlaggedSubjects.Set(float64(rep.Flagged))
		metrics.WithDiagnosis.Set(float64(rep.WithCode))
		metrics.RunDuration.Set(time.Since(started).Seconds())
		st.Put(rep)
	}

	runOnce()
	ticker := time.NewTicker(cfg.Serve.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("acidoscan shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			httpSrv.Shutdown(shutdownCtx) //nolint:errcheck
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
