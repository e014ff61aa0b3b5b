// grpc поднимает gRPC-сервер pokedex-service со стандартным health-сервисом
// (grpc.health.v1.Health), статус которого следует за доступностью хранилища.
package grpc

import (
	"context"
	"log/slog"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/pribylovaa/go-pokedex/internal/pkg/log"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName - имя сервиса в health-ответах (помимо общего "").
const ServiceName = "pokedex.v1.Pokedex"

// Pinger - всё, что нужно health-наблюдателю от хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options - параметры сборки gRPC-сервера.
type Options struct {
	Logger     *slog.Logger
	Timeout    time.Duration // дедлайн unary-вызова
	Reflection bool
}

// NewServer собирает gRPC-сервер с цепочкой интерсепторов и health-сервисом.
// Изначально статус NOT_SERVING; его переключает WatchHealth.
func NewServer(opts Options) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			Observe(opts.Logger),
			Deadline(opts.Timeout),
			grpc_prometheus.UnaryServerInterceptor,
		),
		grpc.ChainStreamInterceptor(
			grpc_prometheus.StreamServerInterceptor,
		),
	)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	if opts.Reflection {
		reflection.Register(srv)
	}

	grpc_prometheus.Register(srv)

	return srv, hs
}

// WatchHealth пингует хранилище каждые interval и выставляет SERVING/NOT_SERVING.
// Первая проверка выполняется сразу. Возвращается при отмене ctx,
// оставляя статус NOT_SERVING.
func WatchHealth(ctx context.Context, hs *health.Server, p Pinger, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Second
	}

	lg := log.From(ctx).With("op", "transport/grpc/WatchHealth")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last healthpb.HealthCheckResponse_ServingStatus = -1

	for {
		status := healthpb.HealthCheckResponse_SERVING

		pingCtx, cancel := context.WithTimeout(ctx, interval)
		err := p.Ping(pingCtx)
		cancel()

		if err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}

		if ctx.Err() != nil {
			setStatus(hs, healthpb.HealthCheckResponse_NOT_SERVING)
			return
		}

		if status != last {
			setStatus(hs, status)
			if err != nil {
				lg.Warn("storage_unhealthy", "err", err)
			} else {
				lg.Info("storage_healthy")
			}
			last = status
		}

		select {
		case <-ctx.Done():
			setStatus(hs, healthpb.HealthCheckResponse_NOT_SERVING)
			return
		case <-ticker.C:
		}
	}
}

func setStatus(hs *health.Server, st healthpb.HealthCheckResponse_ServingStatus) {
	hs.SetServingStatus("", st)
	hs.SetServingStatus(ServiceName, st)
}
