package telemetry

import (
	"github.com/Irushi-coder/high-performance-trading-system/internal/book"
	"github.com/Irushi-coder/high-performance-trading-system/internal/core"
	"github.com/Irushi-coder/high-performance-trading-system/internal/matching"
	"github.com/Irushi-coder/high-performance-trading-system/internal/risk"
)

// Frame is the envelope every dashboard message shares: a discriminator
// in "type" and a payload specific to it.
type Frame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// TradeFrame mirrors one execution, prices rendered in display units.
type TradeFrame struct {
	BuyOrderID  core.OrderId   `json:"buy_order_id"`
	SellOrderID core.OrderId   `json:"sell_order_id"`
	Symbol      core.Symbol    `json:"symbol"`
	Price       float64        `json:"price"`
	Quantity    core.Quantity  `json:"quantity"`
	Timestamp   core.Timestamp `json:"timestamp"`
}

// NewTradeFrame converts a core.Trade to its wire representation.
func NewTradeFrame(t core.Trade) Frame {
	return Frame{Type: "trade", Data: TradeFrame{
		BuyOrderID:  t.BuyOrderID,
		SellOrderID: t.SellOrderID,
		Symbol:      t.Symbol,
		Price:       core.PriceToDisplay(t.Price),
		Quantity:    t.Quantity,
		Timestamp:   t.Timestamp,
	}}
}

// DepthRowFrame is one row of a depth snapshot.
type DepthRowFrame struct {
	Price      float64 `json:"price"`
	Quantity   uint64  `json:"quantity"`
	OrderCount int     `json:"order_count"`
}

// OrderBookSnapshotFrame carries top-of-book depth for both sides.
type OrderBookSnapshotFrame struct {
	Symbol core.Symbol     `json:"symbol"`
	Bids   []DepthRowFrame `json:"bids"`
	Asks   []DepthRowFrame `json:"asks"`
}

// NewOrderBookSnapshotFrame builds a depth snapshot frame from the top
// n levels of b on each side.
func NewOrderBookSnapshotFrame(b *book.Book, n int) Frame {
	toRows := func(levels []book.DepthLevel) []DepthRowFrame {
		rows := make([]DepthRowFrame, len(levels))
		for i, l := range levels {
			rows[i] = DepthRowFrame{
				Price:      core.PriceToDisplay(l.Price),
				Quantity:   uint64(l.Quantity),
				OrderCount: l.OrderCount,
			}
		}
		return rows
	}
	return Frame{Type: "orderbook_snapshot", Data: OrderBookSnapshotFrame{
		Symbol: b.Symbol,
		Bids:   toRows(b.BidDepth(n)),
		Asks:   toRows(b.AskDepth(n)),
	}}
}

// MetricsFrame mirrors the matching engine's accumulated counters.
type MetricsFrame struct {
	TotalTrades         uint64  `json:"total_trades"`
	TotalVolume         uint64  `json:"total_volume"`
	TotalValue          float64 `json:"total_value"`
	MarketOrdersMatched uint64  `json:"market_orders_matched"`
	LimitOrdersMatched  uint64  `json:"limit_orders_matched"`
}

// NewMetricsFrame converts an engine's accumulated stats snapshot into
// a dashboard frame.
func NewMetricsFrame(stats matching.Stats) Frame {
	return Frame{Type: "metrics", Data: MetricsFrame{
		TotalTrades:         stats.TotalTrades,
		TotalVolume:         stats.TotalVolume,
		TotalValue:          stats.TotalValue,
		MarketOrdersMatched: stats.MarketOrdersMatched,
		LimitOrdersMatched:  stats.LimitOrdersMatched,
	}}
}

// RiskFrame mirrors a symbol's current position/PnL state.
type RiskFrame struct {
	Symbol        core.Symbol `json:"symbol"`
	Quantity      int64       `json:"quantity"`
	AveragePrice  float64     `json:"average_price"`
	RealizedPnL   float64     `json:"realized_pnl"`
	UnrealizedPnL float64     `json:"unrealized_pnl"`
	DailyPnL      float64     `json:"daily_pnl"`
	Drawdown      float64     `json:"drawdown"`
}

// NewRiskFrame builds a risk frame from a position and its owning
// ledger's account-level state.
func NewRiskFrame(pos *risk.Position, ledger *risk.Ledger) Frame {
	return Frame{Type: "risk", Data: RiskFrame{
		Symbol:        pos.Symbol,
		Quantity:      pos.Quantity,
		AveragePrice:  pos.AveragePrice,
		RealizedPnL:   pos.RealizedPnL,
		UnrealizedPnL: pos.UnrealizedPnL,
		DailyPnL:      ledger.DailyPnL(),
		Drawdown:      ledger.CurrentDrawdown(),
	}}
}
