package matching

import "errors"

// ErrSymbolMismatch is returned when an order's symbol does not match
// the engine's configured symbol.
var ErrSymbolMismatch = errors.New("matching: order symbol does not match engine symbol")

// ErrDuplicateOrderID is returned when submitOrder is called with the id
// of an order currently resting on the engine's book.
var ErrDuplicateOrderID = errors.New("matching: duplicate order id")

// ErrUnknownOrderType is returned for an OrderType the engine does not
// recognize (defensive; core.OrderType is a closed enum in practice).
var ErrUnknownOrderType = errors.New("matching: unknown order type")
