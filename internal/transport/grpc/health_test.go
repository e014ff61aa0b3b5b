package grpc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

// flakyPinger - pinger, ответ которого можно переключать из теста.
type flakyPinger struct {
	down atomic.Bool
}

func (p *flakyPinger) Ping(context.Context) error {
	if p.down.Load() {
		return errors.New("storage down")
	}
	return nil
}

// startHealth - поднимает bufconn-сервер через NewServer и возвращает health-клиент.
func startHealth(t *testing.T, p Pinger) (healthpb.HealthClient, context.CancelFunc) {
	t.Helper()

	srv, hs := NewServer(Options{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Timeout: time.Second,
	})

	lis := bufconn.Listen(1024 * 1024)
	go func() { _ = srv.Serve(lis) }()

	ctx, cancel := context.WithCancel(context.Background())
	go WatchHealth(ctx, hs, p, 20*time.Millisecond)

	dialer := func(context.Context, string) (net.Conn, error) { return lis.Dial() }
	cc, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		cancel()
		_ = cc.Close()
		srv.Stop()
	})

	return healthpb.NewHealthClient(cc), cancel
}

// checkStatus вызывается внутри require.Eventually (в отдельной горутине),
// поэтому ошибку RPC сводим к UNKNOWN вместо FailNow.
func checkStatus(c healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	resp, err := c.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN
	}
	return resp.GetStatus()
}

// Статус следует за пингом хранилища: SERVING -> NOT_SERVING -> SERVING.
func TestWatchHealth_FollowsStorage(t *testing.T) {
	p := &flakyPinger{}
	client, _ := startHealth(t, p)

	require.Eventually(t, func() bool {
		return checkStatus(client, "") == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 10*time.Millisecond)
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(client, ServiceName))

	p.down.Store(true)
	require.Eventually(t, func() bool {
		return checkStatus(client, "") == healthpb.HealthCheckResponse_NOT_SERVING
	}, time.Second, 10*time.Millisecond)

	p.down.Store(false)
	require.Eventually(t, func() bool {
		return checkStatus(client, ServiceName) == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 10*time.Millisecond)
}

// Отмена контекста наблюдателя оставляет NOT_SERVING.
func TestWatchHealth_StopsOnCancel(t *testing.T) {
	client, stop := startHealth(t, &flakyPinger{})

	require.Eventually(t, func() bool {
		return checkStatus(client, "") == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 10*time.Millisecond)

	stop()

	require.Eventually(t, func() bool {
		return checkStatus(client, "") == healthpb.HealthCheckResponse_NOT_SERVING
	}, time.Second, 10*time.Millisecond)
}
