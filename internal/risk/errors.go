package risk

import "errors"

// Reason identifies why validateOrder rejected an order. The checks run
// in a fixed order and the first violated one wins, so a caller always
// gets exactly one deterministic reason.
type Reason int

const (
	Accepted Reason = iota
	RejectedOrderSize
	RejectedOrderValue
	RejectedPositionLimit
	RejectedPositionValue
	RejectedDailyLoss
	RejectedDrawdown
	RejectedRateLimit
)

func (r Reason) String() string {
	switch r {
	case Accepted:
		return "ACCEPTED"
	case RejectedOrderSize:
		return "REJECTED: order size too large"
	case RejectedOrderValue:
		return "REJECTED: order value too large"
	case RejectedPositionLimit:
		return "REJECTED: position limit exceeded"
	case RejectedPositionValue:
		return "REJECTED: position value too large"
	case RejectedDailyLoss:
		return "REJECTED: daily loss limit exceeded"
	case RejectedDrawdown:
		return "REJECTED: drawdown limit exceeded"
	case RejectedRateLimit:
		return "REJECTED: rate limit exceeded"
	default:
		return "UNKNOWN"
	}
}

// ErrRejected wraps a Reason so validation failures can be handled with
// errors.Is/As while still carrying the specific rejection code.
type ErrRejected struct {
	Reason Reason
}

func (e *ErrRejected) Error() string { return e.Reason.String() }

// ErrNoReferencePrice names the case of a market order with no current
// price to value it against limits. ValidateOrder does not return it: it
// reports such an order (a referencePrice of zero or less) through the
// order-value and position-value checks.
var ErrNoReferencePrice = errors.New("risk: market order requires a reference price")

var _ error = (*ErrRejected)(nil)
