// Package book implements the two-sided price-level order book: a FIFO
// queue per price and the bid/ask maps with an id index for O(1) lookup
// and O(1) best-price access.
package book

import (
	"container/list"

	"github.com/Irushi-coder/high-performance-trading-system/internal/core"
)

// PriceLevel is a FIFO queue of resting orders at one price, with a
// running total of remaining quantity maintained incrementally.
type PriceLevel struct {
	Price    core.Price
	queue    *list.List
	elements map[core.OrderId]*list.Element
	total    core.Quantity
}

// NewPriceLevel creates an empty level at price.
func NewPriceLevel(price core.Price) *PriceLevel {
	return &PriceLevel{
		Price:    price,
		queue:    list.New(),
		elements: make(map[core.OrderId]*list.Element),
	}
}

// Add appends order to the tail of the level's queue. It is a
// programmer error to add an order whose price does not match the
// level's price; callers (the order book) guarantee this never happens.
func (l *PriceLevel) Add(order *core.Order) {
	elem := l.queue.PushBack(order)
	l.elements[order.ID] = elem
	l.total += order.Remaining
}

// Remove deletes the order with the given id from the level, if present.
// The id-to-element map makes removal O(1) wherever the order sits in
// the queue.
func (l *PriceLevel) Remove(id core.OrderId) *core.Order {
	elem, ok := l.elements[id]
	if !ok {
		return nil
	}
	order := elem.Value.(*core.Order)
	l.queue.Remove(elem)
	delete(l.elements, id)
	l.total -= order.Remaining
	return order
}

// Front returns the order at the head of the FIFO queue, or nil if the
// level is empty.
func (l *PriceLevel) Front() *core.Order {
	elem := l.queue.Front()
	if elem == nil {
		return nil
	}
	return elem.Value.(*core.Order)
}

// DecrementTotal adjusts the cached total after a fill decrements an
// order's remaining quantity in place (the order object itself is
// shared with the id index, so its Remaining field is the source of
// truth; this just keeps the level's cached sum consistent).
func (l *PriceLevel) DecrementTotal(qty core.Quantity) {
	l.total -= qty
}

// TotalQuantity returns the sum of remaining quantity across all orders
// resting at this level.
func (l *PriceLevel) TotalQuantity() core.Quantity {
	return l.total
}

// IsEmpty reports whether the level has no resting orders.
func (l *PriceLevel) IsEmpty() bool {
	return l.queue.Len() == 0
}

// OrderCount returns the number of resting orders at this level.
func (l *PriceLevel) OrderCount() int {
	return l.queue.Len()
}
