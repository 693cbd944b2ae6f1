package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Tool invocation Prometheus metrics.
var (
	ToolInvocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_invocations_total",
			Help:      "Total tool invocations by outcome",
		},
		[]string{"tool", "outcome"}, // "ok" / error_type / error_code
	)

	ToolInvocationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_invocation_duration_seconds",
			Help:      "Tool invocation duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"tool"},
	)

	ToolPanicsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_panics_total",
			Help:      "Tool handlers that panicked and were recovered",
		},
		[]string{"tool"},
	)
)

var registerToolsOnce sync.Once

// RegisterToolMetrics registers tool invocation metrics. Safe to call more than once.
func RegisterToolMetrics() {
	registerToolsOnce.Do(func() {
		prometheus.MustRegister(ToolInvocationsTotal)
		prometheus.MustRegister(ToolInvocationDuration)
		prometheus.MustRegister(ToolPanicsTotal)
	})
}
