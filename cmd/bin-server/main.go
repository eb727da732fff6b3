package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/grafana/pyroscope-go"

	"github.com/pybash1/bin/internal/api"
	"github.com/pybash1/bin/internal/auth"
	"github.com/pybash1/bin/internal/config"
	"github.com/pybash1/bin/internal/metrics"
	"github.com/pybash1/bin/internal/store"
	"github.com/pybash1/bin/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("bin-server starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slog.Info("config loaded",
		"listen_addr", cfg.Server.ListenAddr,
		"max_paste_size", cfg.Server.MaxPasteSize,
		"device_paste_limit", cfg.Server.DevicePasteLimit,
		"auth_mode", cfg.Server.Auth.Mode,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Optional continuous profiling.
	if addr := cfg.Server.Pyroscope.ServerAddress; addr != "" {
		_, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: cfg.Server.Pyroscope.ApplicationName,
			ServerAddress:   addr,
			Logger:          nil,
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
				pyroscope.ProfileGoroutines,
			},
		})
		if err != nil {
			slog.Error("failed to start pyroscope", "err", err)
			os.Exit(1)
		}
		slog.Info("pyroscope profiling enabled", "server", addr)
	}

	// All paste state lives here and evaporates on exit.
	st := store.New(cfg.Server.DevicePasteLimit)
	var counters metrics.Counters

	// Hot-reloadable config snapshot; the watcher swaps new snapshots in.
	rt := config.NewRuntime(cfg)
	go func() {
		if err := config.Watch(ctx, *configPath, rt); err != nil {
			slog.Error("config watcher stopped", "err", err)
		}
	}()

	// WebSocket hub — broadcasts store stats to connected clients.
	hub := ws.New(st, cfg.Server.Stats.Interval)
	go hub.Run(ctx)

	gate := auth.Gate(rt, api.Unauthorized)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.NewHandler(&counters, st))
	mux.Handle("/ws/stream", hub)
	mux.Handle("/", gate(api.Logging(api.New(st, rt, &counters))))

	srv := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: mux,
	}
	go func() {
		slog.Info("HTTP server listening", "addr", cfg.Server.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("bin-server shutting down")
	srv.Shutdown(context.Background()) //nolint:errcheck
}
