// Package titanmetrics exposes the engine's tick-to-decision latency
// and throughput as prometheus metrics, adapted from the teacher's
// internal/hft/metrics/baseline_metrics.go promauto style.
package titanmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics mirrors the in-process latency histogram (titanhist.Histogram)
// as prometheus series so a running benchmark can be scraped alongside
// printing the stdout report spec.md §6 mandates.
type Metrics struct {
	DecisionLatency prometheus.Histogram
	TicksTotal      prometheus.Counter
	TradesTotal     prometheus.Counter
	SamplesTotal    prometheus.Counter
	KillSwitchTrips prometheus.Counter
	IngestRingDepth prometheus.Gauge
	LogRingDepth    prometheus.Gauge
}

// New registers and returns a fresh Metrics set. Each call registers
// new series in the default registry, so production code should build
// exactly one Metrics per process.
func New() *Metrics {
	return &Metrics{
		DecisionLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "titan_tick_decision_latency_microseconds",
			Help:    "Tick-to-decision latency in microseconds (orderbook + strategy + risk).",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 5000, 10000},
		}),
		TicksTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "titan_ticks_processed_total",
			Help: "Total ticks consumed from the ingest ring.",
		}),
		TradesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "titan_trades_total",
			Help: "Total trades produced by the orderbook.",
		}),
		SamplesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "titan_latency_samples_total",
			Help: "Total samples recorded into the latency histogram.",
		}),
		KillSwitchTrips: promauto.NewCounter(prometheus.CounterOpts{
			Name: "titan_kill_switch_trips_total",
			Help: "Total times the risk kill switch has been tripped.",
		}),
		IngestRingDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "titan_ingest_ring_depth",
			Help: "Instantaneous tail-head depth of the ingest ring.",
		}),
		LogRingDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "titan_log_ring_depth",
			Help: "Instantaneous tail-head depth of the logging ring.",
		}),
	}
}
