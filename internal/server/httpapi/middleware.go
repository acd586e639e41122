package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/keyvault/internal/logging"
	"github.com/go-chi/chi/v5/middleware"
)

// accessLog logs one line per request and attaches the chi request id to the
// request context so that service-level log lines carry it too.
func accessLog(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := logging.WithContext(r.Context(), "request_id", middleware.GetReqID(r.Context()))
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(ctx))

			log.Info(ctx, "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}
