package grpc

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-pokedex/internal/pkg/log"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// mdRequestID - ключ metadata с идентификатором запроса.
const mdRequestID = "x-request-id"

// Observe - единый unary-интерсептор наблюдаемости:
//   - кладёт в context логгер с request_id/method/peer;
//   - превращает панику обработчика в codes.Internal;
//   - после вызова пишет одну запись grpc_call с кодом и длительностью.
//
// Health-пробы приходят часто, поэтому успешные вызовы пишутся на Debug.
func Observe(base *slog.Logger) grpc.UnaryServerInterceptor {
	if base == nil {
		base = slog.Default()
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		start := time.Now()

		lg := base.With(
			slog.String("request_id", incomingRequestID(ctx)),
			slog.String("method", info.FullMethod),
			slog.String("peer", peerAddr(ctx)),
		)
		ctx = log.Into(ctx, lg)

		defer func() {
			if r := recover(); r != nil {
				lg.Error("grpc_panic",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
				)
				resp, err = nil, status.Error(codes.Internal, "internal error")
			}

			code := status.Code(err)
			lg.Log(ctx, callLevel(code), "grpc_call",
				slog.String("code", code.String()),
				slog.Duration("dur", time.Since(start)),
			)
		}()

		return handler(ctx, req)
	}
}

// Deadline ограничивает unary-вызов сроком d, если клиент не прислал свой.
func Deadline(d time.Duration) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := ctx.Deadline(); ok || d <= 0 {
			return handler(ctx, req)
		}

		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		return handler(ctx, req)
	}
}

func incomingRequestID(ctx context.Context) string {
	md, _ := metadata.FromIncomingContext(ctx)
	for _, v := range md.Get(mdRequestID) {
		if v != "" {
			return v
		}
	}

	return uuid.NewString()
}

func peerAddr(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "-"
	}

	return p.Addr.String()
}

// callLevel: NotFound у health означает неизвестное имя сервиса, это не сбой.
func callLevel(code codes.Code) slog.Level {
	switch code {
	case codes.OK, codes.NotFound:
		return slog.LevelDebug
	case codes.Internal, codes.Unknown, codes.DataLoss:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
