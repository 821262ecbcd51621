package middlewares

import (
	"net/http"
	"time"

	"github.com/dropDatabas3/coursegate/internal/metrics"
	"github.com/dropDatabas3/coursegate/internal/observability/logger"
)

// statusRecorder captura el status y los bytes escritos por el handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

// Logging registra una línea estructurada por request e inyecta en el contexto
// un logger enriquecido con el request id, para que las capas de abajo no
// tengan que acarrearlo a mano.
func Logging() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			rid := GetRequestID(r.Context())
			lg := logger.With(logger.RequestID(rid))
			ctx := logger.ToContext(r.Context(), lg)

			next.ServeHTTP(rec, r.WithContext(ctx))

			dur := time.Since(start)
			lg.Info("http request",
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.Status(rec.status),
				logger.DurationMs(dur.Milliseconds()),
				logger.Bytes(rec.bytes),
				logger.ClientIP(clientIP(r)),
				logger.UserAgent(r.UserAgent()),
			)
			metrics.HTTPRequest(r.Method, r.URL.Path, rec.status, dur.Seconds())
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return r.RemoteAddr
}
