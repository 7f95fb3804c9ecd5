package core

// Trade is an immutable record of a single execution between a buy and
// a sell order. Once appended to a matching result it is never mutated.
type Trade struct {
	BuyOrderID  OrderId
	SellOrderID OrderId
	Symbol      Symbol
	Price       Price
	Quantity    Quantity
	Timestamp   Timestamp
}

// Value returns price times quantity in display units.
func (t Trade) Value() float64 {
	return PriceToDisplay(t.Price) * float64(t.Quantity)
}

// InvolvesOrder reports whether id was either side of the trade.
func (t Trade) InvolvesOrder(id OrderId) bool {
	return t.BuyOrderID == id || t.SellOrderID == id
}
