// Package metrics expone las métricas Prometheus del servicio.
package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	metricsOnce sync.Once

	accessChecksTotal   *prometheus.CounterVec
	sessionFastPath     prometheus.Counter
	exceptionCacheTotal *prometheus.CounterVec
	auditEventsTotal    *prometheus.CounterVec
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
)

// Register inicializa las métricas y devuelve el handler para /metrics.
func Register(registry prometheus.Registerer) http.Handler {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	metricsOnce.Do(func() {
		accessChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coursegate_access_checks_total",
			Help: "Decisiones de disponibilidad evaluadas, por resultado",
		}, []string{"result"}) // result: granted|denied

		sessionFastPath = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coursegate_session_fastpath_total",
			Help: "Checks resueltos por el flag de sesión sin tocar storage",
		})

		exceptionCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coursegate_exception_cache_total",
			Help: "Lecturas del cache de excepciones, por resultado",
		}, []string{"result"}) // result: hit|miss

		auditEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coursegate_audit_events_total",
			Help: "Eventos de auditoría emitidos, por tipo",
		}, []string{"kind"})

		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Número total de requests procesadas",
		}, []string{"method", "path", "status"})

		httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latencia de los requests HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"})

		registry.MustRegister(
			accessChecksTotal,
			sessionFastPath,
			exceptionCacheTotal,
			auditEventsTotal,
			httpRequestsTotal,
			httpRequestDuration,
		)
	})

	return promhttp.Handler()
}

// AccessCheck registra una decisión evaluada.
func AccessCheck(granted bool) {
	if accessChecksTotal == nil {
		return
	}
	result := "denied"
	if granted {
		result = "granted"
	}
	accessChecksTotal.WithLabelValues(result).Inc()
}

// SessionFastPath registra un check resuelto por el flag de sesión.
func SessionFastPath() {
	if sessionFastPath != nil {
		sessionFastPath.Inc()
	}
}

// ExceptionCacheHit registra una lectura servida desde el cache.
func ExceptionCacheHit() {
	if exceptionCacheTotal != nil {
		exceptionCacheTotal.WithLabelValues("hit").Inc()
	}
}

// ExceptionCacheMiss registra una lectura que fue al store.
func ExceptionCacheMiss() {
	if exceptionCacheTotal != nil {
		exceptionCacheTotal.WithLabelValues("miss").Inc()
	}
}

// AuditEvent registra un evento de auditoría emitido.
func AuditEvent(kind string) {
	if auditEventsTotal != nil {
		auditEventsTotal.WithLabelValues(kind).Inc()
	}
}

// HTTPRequest registra un request HTTP completado.
func HTTPRequest(method, path string, status int, seconds float64) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}
