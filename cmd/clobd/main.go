// Command clobd hosts the matching engine as a standalone TCP service
// with a WebSocket dashboard on a second port, reading its configuration
// from trading_config.txt.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Irushi-coder/high-performance-trading-system/internal/config"
	"github.com/Irushi-coder/high-performance-trading-system/internal/core"
	"github.com/Irushi-coder/high-performance-trading-system/internal/events"
	"github.com/Irushi-coder/high-performance-trading-system/internal/matching"
	"github.com/Irushi-coder/high-performance-trading-system/internal/risk"
	"github.com/Irushi-coder/high-performance-trading-system/internal/server"
	"github.com/Irushi-coder/high-performance-trading-system/internal/telemetry"
)

const (
	defaultSymbol       = "XYZ"
	dashboardTickPeriod = 250 * time.Millisecond
	dashboardDepthLevel = 10
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(configPath())
	if err != nil {
		cfg = config.Default()
	}

	log, err := telemetry.NewLogger(cfg.LoggingLevel, cfg.LoggingFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "clobd: failed to build logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	metrics := telemetry.NewMetrics(prometheus.DefaultRegisterer)
	hub := telemetry.NewHub()
	ledger := risk.NewLedger(log.Sugar())
	validator := risk.NewValidator(cfg.RiskLimits(), ledger, log.Sugar())

	sink := events.NewMultiSink(dashboardSink(hub, metrics))
	engine := matching.New(core.Symbol(defaultSymbol), sink, log.Sugar())
	engine.SetMatchLatency(metrics.MatchLatency)

	srv := server.New(engine, validator, ledger, log)
	srv.OnReject(func(reason risk.Reason) {
		metrics.OrdersRejected.WithLabelValues(reason.String()).Inc()
	})

	dashboard := telemetry.NewDashboard(hub, log)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.DashboardPort)
		if err := dashboard.ListenAndServe(addr); err != nil {
			log.Warn("clobd: dashboard server stopped", zap.Error(err))
		}
	}()

	go broadcastDashboardState(ctx, hub, engine, ledger, metrics, core.Symbol(defaultSymbol))

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Info("clobd: starting", zap.String("symbol", defaultSymbol), zap.String("addr", addr))
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		log.Error("clobd: server stopped with error", zap.Error(err))
		return 1
	}

	log.Info("clobd: clean shutdown")
	return 0
}

func configPath() string {
	if v := os.Getenv("CLOBD_CONFIG"); v != "" {
		return v
	}
	return "trading_config.txt"
}

// broadcastDashboardState ticks the orderbook_snapshot/metrics/risk
// frames out to the dashboard hub on a fixed period. The trade frame is
// pushed on its own from dashboardSink as fills happen; these three are
// derived from accumulated state rather than a single event, so a
// ticker is the natural source instead of hanging them off any one
// engine callback.
func broadcastDashboardState(ctx context.Context, hub *telemetry.Hub, engine *matching.Engine, ledger *risk.Ledger, metrics *telemetry.Metrics, symbol core.Symbol) {
	ticker := time.NewTicker(dashboardTickPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			hub.Broadcast(telemetry.NewOrderBookSnapshotFrame(engine.Book(), dashboardDepthLevel))
			hub.Broadcast(telemetry.NewMetricsFrame(engine.Stats()))
			position := ledger.Position(symbol)
			hub.Broadcast(telemetry.NewRiskFrame(position, ledger))

			book := engine.Book()
			metrics.BookDepth.WithLabelValues("bid").Set(float64(book.TotalBidQuantity()))
			metrics.BookDepth.WithLabelValues("ask").Set(float64(book.TotalAskQuantity()))
			if mid, ok := book.MidPrice(); ok {
				metrics.OpenPositionValue.Set(position.MarketValue(mid))
			}
			metrics.DailyPnL.Set(ledger.DailyPnL())
		}
	}
}

// dashboardSink adapts trade/order-update notifications into the
// telemetry frames the dashboard hub broadcasts and updates the
// matching-side Prometheus counters as they happen.
func dashboardSink(hub *telemetry.Hub, metrics *telemetry.Metrics) events.Sink {
	return server.NewSink(
		func(t core.Trade) {
			metrics.TradesTotal.Inc()
			metrics.VolumeTotal.Add(float64(t.Quantity))
			hub.Broadcast(telemetry.NewTradeFrame(t))
		},
		func(o *core.Order) {
			metrics.OrdersSubmitted.WithLabelValues(o.Type.String(), o.Side.String()).Inc()
		},
	)
}
