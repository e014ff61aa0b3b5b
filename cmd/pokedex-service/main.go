package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	"github.com/pribylovaa/go-pokedex/internal/config"
	"github.com/pribylovaa/go-pokedex/internal/fetch"
	logctx "github.com/pribylovaa/go-pokedex/internal/pkg/log"
	"github.com/pribylovaa/go-pokedex/internal/service"
	pdmongo "github.com/pribylovaa/go-pokedex/internal/storage/mongo"
	pdgrpc "github.com/pribylovaa/go-pokedex/internal/transport/grpc"
	pdhttp "github.com/pribylovaa/go-pokedex/internal/transport/http"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const (
	connectTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
	readyzTimeout   = 2 * time.Second
)

func main() {
	configPath := flag.String("config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	// .env нужен только локально; его отсутствие не ошибка.
	_ = godotenv.Load()

	cfg := config.MustLoad(*configPath)

	log := newLogger(cfg.Env)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("service_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("service_stopped")
}

// run поднимает хранилище, HTTP и gRPC и блокируется до сигнала или падения одного из серверов.
func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logctx.Into(ctx, log)

	log.Info("starting pokedex-service", slog.String("env", cfg.Env))

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	store, err := pdmongo.New(connectCtx, cfg)
	cancel()
	if err != nil {
		return fmt.Errorf("mongo: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = store.Close(closeCtx)
	}()
	log.Info("mongo_connected")

	fetcher := fetch.New(nil, fetch.Options{
		Timeout:   cfg.Fetch.Timeout,
		RPS:       cfg.Fetch.RPS,
		UserAgent: cfg.Fetch.UserAgent,
	})
	svc := service.New(store, fetcher, *cfg)

	var ready atomic.Bool

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           newMux(cfg, log, svc, &ready),
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpc_prometheus.EnableHandlingTimeHistogram()
	grpcSrv, hs := pdgrpc.NewServer(pdgrpc.Options{
		Logger:     log,
		Timeout:    cfg.Timeouts.Service,
		Reflection: cfg.Env == envLocal || cfg.Env == envDev,
	})

	lis, err := net.Listen("tcp", cfg.GRPC.Addr())
	if err != nil {
		return fmt.Errorf("grpc listen %s: %w", cfg.GRPC.Addr(), err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http_listen_start", slog.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info("grpc_listen_start", slog.String("addr", lis.Addr().String()))
		if err := grpcSrv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		pdgrpc.WatchHealth(gctx, hs, store, cfg.Health.Interval)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown_requested")
		ready.Store(false)
		return shutdown(log, hs, httpSrv, grpcSrv)
	})

	ready.Store(true)

	return g.Wait()
}

// newMux: REST API под base path плюс служебные /livez, /healthz, /metrics.
func newMux(cfg *config.Config, log *slog.Logger, svc *service.Service, ready *atomic.Bool) *http.ServeMux {
	api := pdhttp.NewRouter(svc, pdhttp.Options{
		Logger:         log,
		ServiceTimeout: cfg.Timeouts.Service,
		SeedTimeout:    cfg.Timeouts.Seed,
		BasePath:       cfg.HTTP.BasePath,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if !ready.Load() {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), readyzTimeout)
		defer cancel()

		if err := svc.Ping(ctx); err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", api)

	return mux
}

// shutdown гасит health, затем gRPC (с принудительной остановкой по таймауту) и HTTP.
func shutdown(log *slog.Logger, hs *health.Server, httpSrv *http.Server, grpcSrv *grpc.Server) error {
	hs.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		grpcSrv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		log.Info("grpc_stopped")
	case <-ctx.Done():
		log.Warn("grpc_force_stop")
		grpcSrv.Stop()
	}

	if err := httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	log.Info("http_stopped")

	return nil
}

func newLogger(env string) *slog.Logger {
	switch env {
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
