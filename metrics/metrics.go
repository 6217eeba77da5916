// Package metrics exposes Prometheus counters for fired bindings and the
// hook lifecycle.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"markestedt/grist/engine"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	ActionsTotal   *prometheus.CounterVec
	ActionDuration *prometheus.HistogramVec
	SlowCallbacks  prometheus.Counter
	HookInstalled  prometheus.Gauge
	HookChanges    *prometheus.CounterVec
	WSConnections  prometheus.Gauge
}

// New creates the collectors on a private registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		ActionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grist_actions_total",
				Help: "Total number of fired bindings",
			},
			[]string{"kind", "result"},
		),
		ActionDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "grist_action_duration_seconds",
				Help:    "Time spent in the hook callback for a fired binding",
				Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .3, 1},
			},
			[]string{"kind"},
		),
		SlowCallbacks: f.NewCounter(
			prometheus.CounterOpts{
				Name: "grist_slow_callbacks_total",
				Help: "Hook callbacks that exceeded the slow callback threshold",
			},
		),
		HookInstalled: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "grist_hook_installed",
				Help: "1 while the keyboard hook is installed",
			},
		),
		HookChanges: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grist_hook_transitions_total",
				Help: "Keyboard hook state transitions",
			},
			[]string{"state"},
		),
		WSConnections: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "grist_ws_connections",
				Help: "Number of active dashboard WebSocket connections",
			},
		),
	}
}

// ObserveAction records a fired binding. It is an engine.Observer.
func (m *Metrics) ObserveAction(ev engine.ActionEvent) {
	result := "ok"
	if ev.Err != nil {
		result = "error"
	}
	kind := ev.Action.Kind.String()
	m.ActionsTotal.WithLabelValues(kind, result).Inc()
	m.ActionDuration.WithLabelValues(kind).Observe(ev.Duration.Seconds())
	if ev.Slow {
		m.SlowCallbacks.Inc()
	}
}

// ObserveHook records a hook transition.
func (m *Metrics) ObserveHook(state engine.HookState) {
	if state == engine.Hooked {
		m.HookInstalled.Set(1)
	} else {
		m.HookInstalled.Set(0)
	}
	m.HookChanges.WithLabelValues(state.String()).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
