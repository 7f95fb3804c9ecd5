package risk

import "github.com/Irushi-coder/high-performance-trading-system/internal/core"

// errDegenerateDivisor marks a weighted-average update whose prospective
// denominator is zero. It cannot arise under the update rules below —
// applyFill is only ever called with a positive fill quantity — so
// tripping it is a ProgrammingError in the caller, not a valid market
// state.
var errDegenerateDivisor = core.NewProgrammingError("risk.applyFill", "weighted-average denominator is zero")

// Position tracks a trader's net exposure in a single symbol using a
// weighted-average cost basis. Quantity is signed: positive is long,
// negative is short.
type Position struct {
	Symbol        core.Symbol
	Quantity      int64
	AveragePrice  float64
	RealizedPnL   float64
	UnrealizedPnL float64
	TotalBought   core.Quantity
	TotalSold     core.Quantity
}

// IsFlat reports whether the position has zero net exposure.
func (p *Position) IsFlat() bool { return p.Quantity == 0 }

// IsLong reports a positive net exposure.
func (p *Position) IsLong() bool { return p.Quantity > 0 }

// IsShort reports a negative net exposure.
func (p *Position) IsShort() bool { return p.Quantity < 0 }

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// MarketValue returns the absolute exposure valued at currentPrice.
func (p *Position) MarketValue(currentPrice float64) float64 {
	return float64(absInt64(p.Quantity)) * currentPrice
}

// UpdateUnrealized recomputes UnrealizedPnL against currentPrice.
func (p *Position) UpdateUnrealized(currentPrice float64) {
	if p.Quantity == 0 {
		p.UnrealizedPnL = 0
		return
	}
	p.UnrealizedPnL = float64(p.Quantity) * (currentPrice - p.AveragePrice)
}

// applyFill updates the position for one side of a trade, using
// side as the actual side of the order this fill belongs to —
// never a fixed side, since a resting order fills as the opposite side
// of whichever order crossed it.
//
// Returns the realized PnL booked by this fill, if any (closing or
// flipping a position always books realized PnL against the closed
// portion before any new exposure is opened at the fill price), and a
// non-nil error only if qty is zero and the position was already flat —
// a state a correct caller (a fill always carries positive quantity)
// never produces.
func (p *Position) applyFill(side core.Side, price float64, qty core.Quantity) (float64, error) {
	var realized float64
	q := int64(qty)

	if side == core.Buy {
		p.TotalBought += qty
		if p.Quantity >= 0 {
			total := p.Quantity + q
			if total == 0 {
				return 0, errDegenerateDivisor
			}
			p.AveragePrice = (float64(p.Quantity)*p.AveragePrice + float64(qty)*price) / float64(total)
			p.Quantity = total
		} else {
			closingQty := q
			if short := -p.Quantity; closingQty > short {
				closingQty = short
			}
			realized = float64(closingQty) * (p.AveragePrice - price)
			p.RealizedPnL += realized
			p.Quantity += q
			if p.Quantity > 0 {
				p.AveragePrice = price
			}
		}
	} else {
		p.TotalSold += qty
		if p.Quantity <= 0 {
			total := absInt64(p.Quantity) + q
			if total == 0 {
				return 0, errDegenerateDivisor
			}
			p.AveragePrice = (float64(absInt64(p.Quantity))*p.AveragePrice + float64(qty)*price) / float64(total)
			p.Quantity -= q
		} else {
			closingQty := q
			if long := p.Quantity; closingQty > long {
				closingQty = long
			}
			realized = float64(closingQty) * (price - p.AveragePrice)
			p.RealizedPnL += realized
			p.Quantity -= q
			if p.Quantity < 0 {
				p.AveragePrice = price
			}
		}
	}
	return realized, nil
}
