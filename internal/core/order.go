package core

// Order is a single order in the book's lifecycle. It is created by the
// caller with Status = StatusNew and thereafter mutated only by the
// matching engine (FillQuantity), by a cancel (Cancel), or by a
// pre-trade rejection (Reject).
type Order struct {
	ID        OrderId
	Symbol    Symbol
	Side      Side
	Type      OrderType
	Price     Price // 0 for market orders
	Original  Quantity
	Remaining Quantity
	Status    OrderStatus
	CreatedAt Timestamp
}

// NewLimitOrder constructs a resting-capable order.
func NewLimitOrder(id OrderId, symbol Symbol, side Side, price Price, qty Quantity, ts Timestamp) *Order {
	return &Order{
		ID:        id,
		Symbol:    symbol,
		Side:      side,
		Type:      Limit,
		Price:     price,
		Original:  qty,
		Remaining: qty,
		Status:    StatusNew,
		CreatedAt: ts,
	}
}

// NewMarketOrder constructs an order that is never inserted into the
// book: its residual, if any, is discarded once liquidity is exhausted.
func NewMarketOrder(id OrderId, symbol Symbol, side Side, qty Quantity, ts Timestamp) *Order {
	return &Order{
		ID:        id,
		Symbol:    symbol,
		Side:      side,
		Type:      Market,
		Price:     0,
		Original:  qty,
		Remaining: qty,
		Status:    StatusNew,
		CreatedAt: ts,
	}
}

// FillQuantity decrements Remaining by qty (clamped to Remaining) and
// advances Status to PARTIALLY_FILLED or FILLED accordingly. It never
// moves an order out of a terminal (cancelled/rejected) status.
func (o *Order) FillQuantity(qty Quantity) Quantity {
	if !o.IsActive() {
		return 0
	}
	if qty > o.Remaining {
		qty = o.Remaining
	}
	o.Remaining -= qty
	if o.Remaining == 0 {
		o.Status = StatusFilled
	} else {
		o.Status = StatusPartiallyFilled
	}
	return qty
}

// Cancel marks the order cancelled and zeroes its remaining quantity.
// Both mutations happen together so a cancelled order is never observed
// with a non-zero remaining quantity.
func (o *Order) Cancel() {
	o.Status = StatusCancelled
	o.Remaining = 0
}

// Reject marks the order rejected before it ever rests or matches.
func (o *Order) Reject() {
	o.Status = StatusRejected
	o.Remaining = 0
}

// IsActive reports whether the order is still eligible to rest on or
// match against the book.
func (o *Order) IsActive() bool {
	return o.Status == StatusNew || o.Status == StatusPartiallyFilled
}

// FilledQuantity returns how much of the order has executed so far.
func (o *Order) FilledQuantity() Quantity {
	return o.Original - o.Remaining
}
