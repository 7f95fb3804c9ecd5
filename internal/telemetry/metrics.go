package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors the host binary reports into:
// trade, volume and order counters from the engine's sink, rejections
// from the server, match latency from the engine, and the depth,
// position-value and daily-PnL gauges, which are refreshed on the
// dashboard tick rather than by the book or ledger themselves.
type Metrics struct {
	TradesTotal       prometheus.Counter
	VolumeTotal       prometheus.Counter
	OrdersSubmitted   *prometheus.CounterVec
	OrdersRejected    *prometheus.CounterVec
	MatchLatency      prometheus.Histogram
	BookDepth         *prometheus.GaugeVec
	OpenPositionValue prometheus.Gauge
	DailyPnL          prometheus.Gauge
}

// NewMetrics registers and returns a fresh Metrics against reg. Passing
// prometheus.NewRegistry() keeps tests hermetic; the host binary passes
// the default global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TradesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "clob_trades_total",
			Help: "Total number of executed trades.",
		}),
		VolumeTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "clob_volume_total",
			Help: "Total traded quantity across all executions.",
		}),
		OrdersSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clob_orders_submitted_total",
			Help: "Orders submitted, labeled by type and side.",
		}, []string{"type", "side"}),
		OrdersRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clob_orders_rejected_total",
			Help: "Orders rejected by pre-trade risk checks, labeled by reason.",
		}, []string{"reason"}),
		MatchLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "clob_match_latency_seconds",
			Help:    "Time spent matching a single submitted order.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		BookDepth: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clob_book_depth",
			Help: "Aggregate resting quantity, labeled by side.",
		}, []string{"side"}),
		OpenPositionValue: factory.NewGauge(prometheus.GaugeOpts{
			Name: "clob_open_position_value",
			Help: "Absolute market value of the current position.",
		}),
		DailyPnL: factory.NewGauge(prometheus.GaugeOpts{
			Name: "clob_daily_pnl",
			Help: "Running realized PnL for the current trading day.",
		}),
	}
}
