// Package metrics holds the Prometheus collectors for tool traffic. They
// live on a private registry so the process-wide default stays untouched.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "constitution_mcp"

var Registry = prometheus.NewRegistry()

var (
	toolCalls = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "tools",
		Name:      "calls_total",
		Help:      "Tool calls by tool and JSON-RPC result code (0 on success)",
	}, []string{"tool", "code"})

	toolLatency = promauto.With(Registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "tools",
		Name:      "latency_seconds",
		Help:      "Tool call latency in seconds",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	}, []string{"tool"})

	activeConnections = promauto.With(Registry).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "daemon",
		Name:      "active_connections",
		Help:      "Clients currently connected to the daemon",
	})

	rejectedConnections = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "daemon",
		Name:      "rejected_connections_total",
		Help:      "Clients turned away at the connection limit",
	})
)

// ObserveToolCall records one tool invocation. code is 0 for success.
func ObserveToolCall(tool string, code int, elapsed time.Duration) {
	toolCalls.WithLabelValues(tool, strconv.Itoa(code)).Inc()
	toolLatency.WithLabelValues(tool).Observe(elapsed.Seconds())
}

func SetActiveConnections(n int) {
	activeConnections.Set(float64(n))
}

func ConnectionRejected() {
	rejectedConnections.Inc()
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
