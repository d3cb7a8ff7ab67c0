// Package monitoring expone métricas Prometheus de la API.
package monitoring

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MonitorInterface puerto de métricas usado por middlewares y adaptadores.
type MonitorInterface interface {
	GetService() string
	SetResponseTimeMetric(tags map[string]string, seconds float64) error
	SetDependencyAvailability(tags map[string]string, value float64) error
	ObserveCache(resource, result string)
}

var _ MonitorInterface = (*Monitor)(nil)

// Monitor implementación sobre un registro Prometheus propio.
type Monitor struct {
	service      string
	registry     *prometheus.Registry
	responseTime *prometheus.HistogramVec
	dependencies *prometheus.GaugeVec
	cache        *prometheus.CounterVec
}

// NewMonitor registra las métricas de service.
func NewMonitor(service string) *Monitor {
	m := &Monitor{
		service:  service,
		registry: prometheus.NewRegistry(),
		responseTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Latencia de las peticiones HTTP.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{"service": service},
		}, []string{"method", "route", "status"}),
		dependencies: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "dependency_up",
			Help:        "1 si la dependencia respondió al arrancar, 0 si no.",
			ConstLabels: prometheus.Labels{"service": service},
		}, []string{"dependency"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "cache_requests_total",
			Help:        "Lecturas de caché por recurso y resultado (hit, miss, error).",
			ConstLabels: prometheus.Labels{"service": service},
		}, []string{"resource", "result"}),
	}
	m.registry.MustRegister(
		m.responseTime,
		m.dependencies,
		m.cache,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Monitor) GetService() string { return m.service }

// SetResponseTimeMetric requiere las etiquetas method, route y status.
func (m *Monitor) SetResponseTimeMetric(tags map[string]string, seconds float64) error {
	obs, err := m.responseTime.GetMetricWith(prometheus.Labels(tags))
	if err != nil {
		return fmt.Errorf("response time metric: %w", err)
	}
	obs.Observe(seconds)
	return nil
}

// SetDependencyAvailability requiere la etiqueta dependency.
func (m *Monitor) SetDependencyAvailability(tags map[string]string, value float64) error {
	g, err := m.dependencies.GetMetricWith(prometheus.Labels(tags))
	if err != nil {
		return fmt.Errorf("dependency metric: %w", err)
	}
	g.Set(value)
	return nil
}

func (m *Monitor) ObserveCache(resource, result string) {
	m.cache.WithLabelValues(resource, result).Inc()
}

// Handler sirve el registro en formato de exposición Prometheus.
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry devuelve el registro (pruebas).
func (m *Monitor) Registry() *prometheus.Registry { return m.registry }
