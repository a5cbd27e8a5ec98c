// Package metrics holds the assistant's Prometheus collectors. They are
// registered on the default registry and served by promhttp.
package metrics

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-assistant-service/internal/llm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// planTotal counts plan outcomes by run status.
	planTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "omnipos",
			Subsystem: "assistant",
			Name:      "plan_total",
			Help:      "Assistant plan requests by resulting run status.",
		},
		[]string{"status"},
	)

	// executeTotal counts execute outcomes.
	//
	// Labels:
	//   - kind: the action kind, or "unknown" before it is decoded
	//   - result: "executed", "failed" or "replayed"
	executeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "omnipos",
			Subsystem: "assistant",
			Name:      "execute_total",
			Help:      "Assistant execute requests by action kind and result.",
		},
		[]string{"kind", "result"},
	)

	llmCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "omnipos",
			Subsystem: "assistant",
			Name:      "llm_call_duration_seconds",
			Help:      "Duration of model completion calls in seconds.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"model", "status"},
	)
)

func ObservePlan(status string) {
	planTotal.WithLabelValues(status).Inc()
}

func ObserveExecute(kind, result string) {
	if kind == "" {
		kind = "unknown"
	}
	executeTotal.WithLabelValues(kind, result).Inc()
}

type instrumentedCompleter struct {
	next llm.Completer
}

// InstrumentCompleter records the latency of every completion made through c.
func InstrumentCompleter(c llm.Completer) llm.Completer {
	return &instrumentedCompleter{next: c}
}

func (c *instrumentedCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	start := time.Now()
	text, err := c.next.Complete(ctx, system, user)

	status := "success"
	if err != nil {
		status = "error"
	}
	llmCallDuration.WithLabelValues(c.next.Model(), status).Observe(time.Since(start).Seconds())
	return text, err
}

func (c *instrumentedCompleter) Model() string {
	return c.next.Model()
}
