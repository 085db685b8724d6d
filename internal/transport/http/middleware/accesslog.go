package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/baechuer/skillmarket/internal/pkg/reqctx"
)

// AccessLog writes one line per request. 5xx are logged at error level,
// 4xx at warn.
func AccessLog(lg zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			var ev *zerolog.Event
			switch {
			case rec.status >= 500:
				ev = lg.Error()
			case rec.status >= 400:
				ev = lg.Warn()
			default:
				ev = lg.Info()
			}

			ev.Str("request_id", reqctx.RequestID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Int("bytes", rec.bytes).
				Dur("latency", time.Since(start)).
				Str("remote", clientIP(r)).
				Msg("http_request")
		})
	}
}
