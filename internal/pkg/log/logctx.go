// Package log переносит *slog.Logger запроса через context.Context.
//
// Транспорт (HTTP-мидлвар Access, gRPC-интерсептор Observe) кладёт сюда логгер
// с request_id; сервис достаёт его через From и дописывает op, а сид
// добавляет generation через With, чтобы все записи прогона были связаны.
// Без логгера в контексте используется slog.Default().
package log

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// Into кладёт логгер в контекст.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From возвращает логгер запроса.
func From(ctx context.Context) *slog.Logger {
	if l, _ := ctx.Value(ctxKey{}).(*slog.Logger); l != nil {
		return l
	}
	return slog.Default()
}

// With дополняет логгер из контекста атрибутами и кладёт результат обратно.
func With(ctx context.Context, args ...any) context.Context {
	return Into(ctx, From(ctx).With(args...))
}
