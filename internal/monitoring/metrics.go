package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var (
	syncRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_sync_runs_total",
			Help: "Sincronizaciones del CRM por resultado",
		},
		[]string{"status"},
	)
	syncDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crm_sync_duration_seconds",
			Help:    "Duración de una sincronización completa en segundos",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10), // 1s a ~17min
		},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Peticiones HTTP por ruta y código de estado",
		},
		[]string{"path", "status"},
	)
)

// InitMetrics registra los colectores en el registro global. Idempotente a
// efectos prácticos: un registro duplicado solo deja traza.
func InitMetrics() {
	for _, c := range []prometheus.Collector{syncRuns, syncDuration, httpRequests} {
		if err := prometheus.Register(c); err != nil {
			log.Error().Err(err).Msg("no se pudo registrar métrica")
		}
	}
}

// IncSyncRun cuenta una sincronización terminada con el estado dado.
func IncSyncRun(status string) {
	syncRuns.WithLabelValues(status).Inc()
}

// ObserveSyncDuration registra la duración de una sincronización completa.
func ObserveSyncDuration(seconds float64) {
	syncDuration.Observe(seconds)
}

// IncHTTPRequest cuenta una petición servida.
func IncHTTPRequest(path, status string) {
	httpRequests.WithLabelValues(path, status).Inc()
}
