package metrics

import (
	"net/http"
	"strings"
	"time"

	"fml2scene/internal/converter/mapper"
	"fml2scene/internal/converter/scenescript"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ============================================================
// Conversion metrics
// ============================================================

const namespace = "fml2scene"

// Metrics owns its registry so several instances (tests, embedded hosts)
// never collide on the default one.
type Metrics struct {
	registry *prometheus.Registry

	runs        *prometheus.CounterVec
	commands    *prometheus.CounterVec
	diagnostics *prometheus.CounterVec
	duration    prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Conversion runs by outcome.",
		}, []string{"outcome"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "SceneScript commands emitted, by command.",
		}, []string{"command"}),
		diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_total",
			Help:      "Diagnostics recorded, by type and severity.",
		}, []string{"type", "severity"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of one conversion run.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}

	m.registry.MustRegister(
		m.runs, m.commands, m.diagnostics, m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRun records a finished conversion.
func (m *Metrics) ObserveRun(res *mapper.Result, elapsed time.Duration) {
	outcome := "ok"
	if res.Summary.HasHighSeverity {
		outcome = "degraded"
	}
	m.runs.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())

	if lines, err := scenescript.ParseScript(strings.NewReader(res.CommandText)); err == nil {
		for name, n := range scenescript.Count(lines) {
			m.commands.WithLabelValues(name).Add(float64(n))
		}
	}
	for _, d := range res.Diagnostics {
		m.diagnostics.WithLabelValues(string(d.Type), string(d.Severity)).Inc()
	}
}

// ObserveFailure records a run rejected before or by the converter.
func (m *Metrics) ObserveFailure(reason string) {
	m.runs.WithLabelValues(reason).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
