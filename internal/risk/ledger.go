package risk

import (
	"go.uber.org/zap"

	"github.com/Irushi-coder/high-performance-trading-system/internal/core"
)

// Ledger owns per-symbol positions and account-level equity tracking:
// realized/unrealized PnL, running daily PnL, and peak-to-current
// drawdown. It is the sole place aggressor-side bookkeeping happens, so
// updatePosition always takes the actual side of the order that caused
// the fill — never a fixed side — since a resting order's fill is
// booked against whichever order crossed it, not against the order
// that happened to be resting.
type Ledger struct {
	positions     map[core.Symbol]*Position
	dailyPnL      float64
	peakEquity    float64
	currentEquity float64
	log           *zap.SugaredLogger
}

// NewLedger creates an empty ledger. A nil log defaults to a no-op
// logger, so callers that don't care about ProgrammingError diagnostics
// can pass nil.
func NewLedger(log *zap.SugaredLogger) *Ledger {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Ledger{positions: make(map[core.Symbol]*Position), log: log}
}

func (l *Ledger) position(symbol core.Symbol) *Position {
	p, ok := l.positions[symbol]
	if !ok {
		p = &Position{Symbol: symbol}
		l.positions[symbol] = p
	}
	return p
}

// Position returns the current position for symbol, creating an empty
// flat one if none exists yet.
func (l *Ledger) Position(symbol core.Symbol) *Position {
	return l.position(symbol)
}

// UpdatePosition books a fill against the position for trade.Symbol,
// using side as the side of the ORDER this fill belongs to — the buy
// side of a trade for the buy order's own update, the sell side for the
// sell order's. Calling this with the same fixed side for every trade
// silently corrupts every short/flip calculation; callers must always
// pass the specific order's own side.
func (l *Ledger) UpdatePosition(trade core.Trade, side core.Side) {
	pos := l.position(trade.Symbol)
	price := core.PriceToDisplay(trade.Price)
	realized, err := pos.applyFill(side, price, trade.Quantity)
	if err != nil {
		l.log.Errorw("risk: dropped fill with degenerate weighted-average divisor",
			"symbol", trade.Symbol, "side", side, "quantity", trade.Quantity, "error", err)
		return
	}
	l.dailyPnL += realized
	l.recomputeEquity()
}

func (l *Ledger) recomputeEquity() {
	equity := l.dailyPnL
	for _, p := range l.positions {
		equity += p.UnrealizedPnL
	}
	l.currentEquity = equity
	if l.currentEquity > l.peakEquity {
		l.peakEquity = l.currentEquity
	}
}

// UpdateUnrealized recomputes unrealized PnL for symbol at currentPrice
// and refreshes the equity/drawdown tracking that depends on it.
func (l *Ledger) UpdateUnrealized(symbol core.Symbol, currentPrice float64) {
	l.position(symbol).UpdateUnrealized(currentPrice)
	l.recomputeEquity()
}

// TotalPnL returns realized-to-date plus unrealized PnL across all
// symbols.
func (l *Ledger) TotalPnL() float64 {
	total := l.dailyPnL
	for _, p := range l.positions {
		total += p.UnrealizedPnL
	}
	return total
}

// DailyPnL returns the running realized PnL since the last ResetDaily.
func (l *Ledger) DailyPnL() float64 { return l.dailyPnL }

// CurrentDrawdown returns the distance from peak equity to current
// equity (always >= 0).
func (l *Ledger) CurrentDrawdown() float64 {
	return l.peakEquity - l.currentEquity
}

// ResetDaily zeroes the running daily PnL and every position's realized
// PnL, leaving open exposure (Quantity, AveragePrice) untouched. Peak
// equity and drawdown tracking carry over across the reset.
func (l *Ledger) ResetDaily() {
	l.dailyPnL = 0
	for _, p := range l.positions {
		p.RealizedPnL = 0
	}
}
