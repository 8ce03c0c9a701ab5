package httpapi

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alejandrodnm/smartmoney/internal/application/detector"
	"github.com/alejandrodnm/smartmoney/internal/domain"
)

// Metrics agrupa las métricas Prometheus del servicio. Cada instancia tiene su
// propio registry, así los tests pueden crear varias sin colisiones.
type Metrics struct {
	registry *prometheus.Registry

	AnalysesTotal    *prometheus.CounterVec
	SignalsTotal     *prometheus.CounterVec
	TargetsFound     prometheus.Counter
	AnalysisDuration prometheus.Histogram
}

// NewMetrics crea y registra las métricas.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		AnalysesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartmoney_analyses_total",
				Help: "Total number of analyses by outcome",
			},
			[]string{"outcome"},
		),
		SignalsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartmoney_signals_total",
				Help: "Total number of signals emitted by status",
			},
			[]string{"status"},
		),
		TargetsFound: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "smartmoney_targets_found_total",
				Help: "Total number of value targets found",
			},
		),
		AnalysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "smartmoney_analysis_duration_seconds",
				Help:    "Duration of a single analysis",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
	}

	registry.MustRegister(
		m.AnalysesTotal,
		m.SignalsTotal,
		m.TargetsFound,
		m.AnalysisDuration,
	)
	return m
}

// Registry devuelve el registry para tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler expone las métricas en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Observe registra el resultado de un análisis.
func (m *Metrics) Observe(report domain.AnalysisReport, err error, seconds float64) {
	m.AnalysisDuration.Observe(seconds)
	if err != nil {
		m.AnalysesTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return
	}
	m.AnalysesTotal.WithLabelValues("ok").Inc()
	m.SignalsTotal.WithLabelValues(string(report.Signal.Status)).Inc()
	m.TargetsFound.Add(float64(len(report.Targets)))
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, detector.ErrNoReferenceData):
		return "no_reference_data"
	case errors.Is(err, domain.ErrInvalidConfig):
		return "invalid_config"
	default:
		return "error"
	}
}
