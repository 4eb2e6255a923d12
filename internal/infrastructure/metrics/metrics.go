// Package metrics expone contadores Prometheus de escrituras secundarias y de peticiones HTTP.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics agrupa las métricas de la API.
type Metrics struct {
	SecondaryWrites   *prometheus.CounterVec // escrituras secundarias confirmadas por tramo
	SecondaryFailures *prometheus.CounterVec // escrituras secundarias fallidas por tramo

	HTTPRequestsTotal   *prometheus.CounterVec   // peticiones por método, ruta y estado
	HTTPRequestDuration *prometheus.HistogramVec // latencia por método y ruta

	registry *prometheus.Registry
}

// New crea y registra las métricas en registry (con los colectores de proceso y runtime de Go).
func New(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{registry: registry}
	m.SecondaryWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_secondary_writes_total",
			Help: "Escrituras secundarias (texto largo, auditoría, accesos) confirmadas por tramo",
		},
		[]string{"leg"},
	)
	m.SecondaryFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_secondary_write_failures_total",
			Help: "Escrituras secundarias fallidas tras confirmar la escritura relacional, por tramo",
		},
		[]string{"leg"},
	)
	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_http_requests_total",
			Help: "Peticiones HTTP atendidas por método, ruta y código de estado",
		},
		[]string{"method", "route", "status"},
	)
	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feedback_http_request_duration_seconds",
			Help:    "Latencia de las peticiones HTTP por método y ruta",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	for _, c := range []prometheus.Collector{
		m.SecondaryWrites,
		m.SecondaryFailures,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("registrar métrica: %w", err)
		}
	}
	return m, nil
}

// Registry devuelve el registro usado para exponer /metrics.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// IncSecondaryWrite implementa audit.Counter.
func (m *Metrics) IncSecondaryWrite(leg string) {
	m.SecondaryWrites.WithLabelValues(leg).Inc()
}

// IncSecondaryFailure implementa audit.Counter.
func (m *Metrics) IncSecondaryFailure(leg string) {
	m.SecondaryFailures.WithLabelValues(leg).Inc()
}

// ObserveRequest registra una petición atendida. route es el patrón, no la ruta concreta.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
