// Package core defines the primitive types shared by the order book,
// matching engine, and risk modules: order identifiers, fixed-point
// prices, and the small enumerations every other package switches on.
package core

// OrderId uniquely identifies an order for the lifetime of the engine.
type OrderId uint64

// Price is a fixed-point integer equal to the display price times 100
// (hundredths of the nominal currency unit). Internal comparisons never
// use floating point.
type Price int64

// Quantity counts whole units of the traded instrument.
type Quantity uint64

// Timestamp is nanoseconds since an arbitrary epoch, used for telemetry
// only — never for match priority (see Side-by-side FIFO ordering in
// package book).
type Timestamp uint64

// Symbol is the short printable identifier of the single tradable
// instrument this engine instance is configured for.
type Symbol string

// Side is the direction of an order.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// OrderType selects the matching protocol applied to an order. Stop and
// stop-limit orders are out of scope: this engine only ever matches
// against the resting book, never against a triggered price level.
type OrderType uint8

const (
	Market OrderType = iota
	Limit
)

func (t OrderType) String() string {
	if t == Market {
		return "MARKET"
	}
	return "LIMIT"
}

// OrderStatus tracks an order's position in its lifecycle.
type OrderStatus uint8

const (
	StatusNew OrderStatus = iota
	StatusPartiallyFilled
	StatusFilled
	StatusCancelled
	StatusRejected
)

func (s OrderStatus) String() string {
	switch s {
	case StatusNew:
		return "NEW"
	case StatusPartiallyFilled:
		return "PARTIALLY_FILLED"
	case StatusFilled:
		return "FILLED"
	case StatusCancelled:
		return "CANCELLED"
	case StatusRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// PriceToDisplay converts a fixed-point Price to its two-decimal display
// value. Used only at telemetry/wire boundaries.
func PriceToDisplay(p Price) float64 {
	return float64(p) / 100.0
}

// DisplayToPrice converts a two-decimal display value to fixed-point.
func DisplayToPrice(display float64) Price {
	return Price(display*100.0 + 0.5)
}
