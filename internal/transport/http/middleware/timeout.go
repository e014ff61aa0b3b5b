package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout задаёт запросу срок d. Более ранний срок родителя сохраняется
// (context.WithTimeout не продлевает дедлайн); d <= 0 отключает мидлвар.
func Timeout(d time.Duration) Middleware {
	if d <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
