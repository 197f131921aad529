package logger

// context.go carries a request-scoped logger through the request context so
// handlers and middleware can log with the request id attached, and lets them
// accumulate attributes that are included in the final request log line.

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const (
	requestLoggerKey contextKey = "requestLogger"
	logAttrsKey      contextKey = "logAttrs"
)

// logAttrs accumulates attributes added by handlers during a request.
type logAttrs struct {
	mu    sync.Mutex
	attrs []slog.Attr
}

// ContextRequestLogger returns the request-scoped logger stored on the
// context. Falls back to the default logger when the middleware is not
// installed (e.g. in unit tests).
func ContextRequestLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(requestLoggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// ContextWithLogAttrs records attributes to be included in the final request
// log line written by the RequestLogging middleware.
func ContextWithLogAttrs(ctx context.Context, attrs ...slog.Attr) {
	if la, ok := ctx.Value(logAttrsKey).(*logAttrs); ok {
		la.mu.Lock()
		la.attrs = append(la.attrs, attrs...)
		la.mu.Unlock()
	}
}

// RequestLogging returns a middleware that attaches a request-scoped logger
// to the context and writes a single summary log line when the request
// completes.
func RequestLogging(appLogger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := middleware.GetReqID(r.Context())
			reqLogger := appLogger.With(slog.String("request_id", requestID))

			la := &logAttrs{}
			ctx := context.WithValue(r.Context(), requestLoggerKey, reqLogger)
			ctx = context.WithValue(ctx, logAttrsKey, la)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(ctx))

			la.mu.Lock()
			extra := make([]slog.Attr, len(la.attrs))
			copy(extra, la.attrs)
			la.mu.Unlock()

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			}
			attrs = append(attrs, extra...)

			reqLogger.LogAttrs(r.Context(), slog.LevelInfo, "request completed", attrs...)
		})
	}
}
