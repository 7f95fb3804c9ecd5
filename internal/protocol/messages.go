package protocol

import "github.com/Irushi-coder/high-performance-trading-system/internal/core"

// NewOrderMessage builds a tag 35=D message for a new order.
func NewOrderMessage(id core.OrderId, symbol core.Symbol, side core.Side, typ core.OrderType, price core.Price, qty core.Quantity) Message {
	return Message{
		MsgType:   MsgNewOrder,
		ClOrdID:   id,
		Symbol:    symbol,
		Side:      side,
		OrderType: typ,
		Price:     price,
		Quantity:  qty,
	}
}

// ExecReportMessage builds a tag 35=8 execution report reflecting an
// order's current state after a trade.
func ExecReportMessage(order *core.Order, execType string) Message {
	return Message{
		MsgType:   MsgExecReport,
		ClOrdID:   order.ID,
		Symbol:    order.Symbol,
		ExecType:  execType,
		LeavesQty: order.Remaining,
		CumQty:    order.FilledQuantity(),
	}
}

// ExecTypeFor maps an order's status to the tag 150 exec type an
// exec report for it should carry.
func ExecTypeFor(status core.OrderStatus) string {
	switch status {
	case core.StatusNew:
		return ExecNew
	case core.StatusPartiallyFilled:
		return ExecPartial
	case core.StatusFilled:
		return ExecFill
	case core.StatusCancelled:
		return ExecCancelled
	case core.StatusRejected:
		return ExecRejected
	default:
		return ExecNew
	}
}
