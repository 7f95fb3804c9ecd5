// Package matching implements price-time-priority matching of incoming
// orders against a resting order book for a single symbol.
package matching

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Irushi-coder/high-performance-trading-system/internal/book"
	"github.com/Irushi-coder/high-performance-trading-system/internal/core"
	"github.com/Irushi-coder/high-performance-trading-system/internal/events"
)

// Stats accumulates monotonically over the lifetime of an Engine.
type Stats struct {
	TotalTrades         uint64
	TotalVolume         uint64
	TotalValue          float64
	MarketOrdersMatched uint64
	LimitOrdersMatched  uint64
}

// Engine matches orders against a single-symbol book and reports
// results through a Sink. It is not safe for concurrent use: callers
// serialize submissions against the single-writer domain the book and
// risk packages share.
type Engine struct {
	symbol       core.Symbol
	book         *book.Book
	sink         events.Sink
	nextOrderID  uint64
	stats        Stats
	log          *zap.SugaredLogger
	matchLatency prometheus.Histogram
}

// New creates an engine for symbol, publishing notifications to sink. A
// nil sink is replaced with events.NopSink{}; a nil log defaults to a
// no-op logger.
func New(symbol core.Symbol, sink events.Sink, log *zap.SugaredLogger) *Engine {
	if sink == nil {
		sink = events.NopSink{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{
		symbol: symbol,
		book:   book.New(symbol, log),
		sink:   sink,
		log:    log,
	}
}

// Book exposes the underlying order book for read-only queries (depth,
// best price, stats). Mutating it directly bypasses matching and must
// not be done outside this package.
func (e *Engine) Book() *book.Book { return e.book }

// SetMatchLatency wires h as the histogram SubmitOrder observes its own
// wall-clock duration into. A nil histogram (the default) disables the
// observation entirely rather than recording into a no-op collector.
func (e *Engine) SetMatchLatency(h prometheus.Histogram) {
	e.matchLatency = h
}

// NextOrderID returns a fresh, monotonically increasing id. Callers
// that generate their own ids (e.g. from a wire protocol) need not use
// this, but two orders submitted to the same engine must never share
// an id.
func (e *Engine) NextOrderID() core.OrderId {
	e.nextOrderID++
	return core.OrderId(e.nextOrderID)
}

// Stats returns a snapshot of accumulated matching statistics.
func (e *Engine) Stats() Stats { return e.stats }

// SubmitOrder matches order against the book according to its type and
// side, firing OnTrade/OnOrderUpdate on the configured sink for every
// trade and status change, in the order they occur, before returning.
// It returns the trades produced, in execution order.
func (e *Engine) SubmitOrder(order *core.Order) ([]core.Trade, error) {
	if e.matchLatency != nil {
		start := time.Now()
		defer func() { e.matchLatency.Observe(time.Since(start).Seconds()) }()
	}

	if order.Symbol != e.symbol {
		e.log.Errorw("matching: rejected submit with mismatched symbol", "engine_symbol", e.symbol, "order_symbol", order.Symbol, "order_id", order.ID)
		return nil, ErrSymbolMismatch
	}
	if e.book.Get(order.ID) != nil {
		e.log.Errorw("matching: rejected submit with duplicate order id", "order_id", order.ID)
		return nil, ErrDuplicateOrderID
	}

	var trades []core.Trade
	switch order.Type {
	case core.Market:
		trades = e.matchMarket(order)
		e.stats.MarketOrdersMatched++
	case core.Limit:
		trades = e.matchLimit(order)
		if order.IsActive() && order.Remaining > 0 {
			e.book.AddOrder(order)
		}
		e.stats.LimitOrdersMatched++
	default:
		return nil, ErrUnknownOrderType
	}

	e.sink.OnOrderUpdate(order)
	return trades, nil
}

// CancelOrder removes a resting order from the book, notifying the sink
// of the resulting CANCELLED status. Returns false if id is unknown.
func (e *Engine) CancelOrder(id core.OrderId) bool {
	order := e.book.Get(id)
	if order == nil {
		e.log.Errorw("matching: cancel of unknown order id", "order_id", id)
		return false
	}
	if !e.book.CancelOrder(id) {
		return false
	}
	e.sink.OnOrderUpdate(order)
	return true
}

// ModifyOrder cancels and reinserts id at a new price/quantity, losing
// its place in time priority. Notifies the sink of the resulting state.
func (e *Engine) ModifyOrder(id core.OrderId, newPrice core.Price, newQty core.Quantity) bool {
	if !e.book.ModifyOrder(id, newPrice, newQty) {
		return false
	}
	if updated := e.book.Get(id); updated != nil {
		e.sink.OnOrderUpdate(updated)
	}
	return true
}

func (e *Engine) matchMarket(order *core.Order) []core.Trade {
	if order.Side == core.Buy {
		return e.sweep(order, e.book.BestAskOrder, e.book.BestAsk, nil)
	}
	return e.sweep(order, e.book.BestBidOrder, e.book.BestBid, nil)
}

func (e *Engine) matchLimit(order *core.Order) []core.Trade {
	limit := order.Price
	if order.Side == core.Buy {
		crosses := func(restingPrice core.Price) bool { return restingPrice <= limit }
		return e.sweep(order, e.book.BestAskOrder, e.book.BestAsk, crosses)
	}
	crosses := func(restingPrice core.Price) bool { return restingPrice >= limit }
	return e.sweep(order, e.book.BestBidOrder, e.book.BestBid, crosses)
}

// canMatch is the defensive cross-check the fill loop runs on every
// candidate resting order before executing against it: same symbol,
// strictly the opposite side of the aggressor, and both sides still
// have quantity left to trade. The book's own construction already
// prevents violating this — an order never rests under the wrong
// symbol or side, and a filled order is removed the instant it hits
// zero — so tripping it is a ProgrammingError, not a reachable market
// state.
func canMatch(aggressor, resting *core.Order, restingSide core.Side) error {
	if aggressor.Symbol != resting.Symbol {
		return core.NewProgrammingError("matching.canMatch", "symbol mismatch: aggressor=%s resting=%s", aggressor.Symbol, resting.Symbol)
	}
	if resting.Side != restingSide {
		return core.NewProgrammingError("matching.canMatch", "resting order %d is not on the expected opposite side", resting.ID)
	}
	if aggressor.Remaining == 0 || resting.Remaining == 0 {
		return core.NewProgrammingError("matching.canMatch", "zero remaining quantity: aggressor=%d resting=%d", aggressor.Remaining, resting.Remaining)
	}
	return nil
}

// sweep consumes resting liquidity on the opposite side of order until
// order is filled, the opposite side is empty, or the best resting price
// no longer satisfies crosses (nil means "any price", used for market
// orders). Every trade
// executes at the RESTING order's price — the price-improvement rule —
// never at the aggressor's limit price.
func (e *Engine) sweep(order *core.Order, bestOrder func() *core.Order, bestPrice func() (core.Price, bool), crosses func(core.Price) bool) []core.Trade {
	var trades []core.Trade
	restingSide := order.Side.Opposite()

	for order.Remaining > 0 {
		price, ok := bestPrice()
		if !ok {
			break
		}
		if crosses != nil && !crosses(price) {
			break
		}
		resting := bestOrder()
		if resting == nil {
			break
		}
		if err := canMatch(order, resting, restingSide); err != nil {
			e.log.Errorw("matching: refusing to cross invalid match", "aggressor_id", order.ID, "resting_id", resting.ID, "error", err)
			break
		}

		fillQty := order.Remaining
		if resting.Remaining < fillQty {
			fillQty = resting.Remaining
		}

		var trade core.Trade
		if order.Side == core.Buy {
			trade = core.Trade{BuyOrderID: order.ID, SellOrderID: resting.ID, Symbol: e.symbol, Price: price, Quantity: fillQty, Timestamp: order.CreatedAt}
		} else {
			trade = core.Trade{BuyOrderID: resting.ID, SellOrderID: order.ID, Symbol: e.symbol, Price: price, Quantity: fillQty, Timestamp: order.CreatedAt}
		}

		order.FillQuantity(fillQty)
		resting.FillQuantity(fillQty)
		e.book.DecrementLevelTotal(restingSide, price, fillQty)

		trades = append(trades, trade)
		e.sink.OnTrade(trade)
		e.stats.TotalTrades++
		e.stats.TotalVolume += uint64(fillQty)
		e.stats.TotalValue += trade.Value()

		if resting.Remaining == 0 {
			e.book.RemoveFilledOrder(resting)
		}
		e.sink.OnOrderUpdate(resting)
	}
	return trades
}
