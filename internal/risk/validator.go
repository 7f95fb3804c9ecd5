package risk

import (
	"go.uber.org/zap"

	"github.com/Irushi-coder/high-performance-trading-system/internal/core"
)

// Validator runs the ordered pre-trade checks against an order before
// it reaches the matching engine. Checks run in a fixed sequence and
// the first one violated determines the rejection reason — callers
// never see more than one reason per rejected order.
type Validator struct {
	limits  Limits
	ledger  *Ledger
	limiter *RateLimiter
	log     *zap.SugaredLogger
}

// NewValidator builds a Validator sharing ledger with whatever also
// books fills, so position/PnL checks see up-to-date state. A nil log
// defaults to a no-op logger.
func NewValidator(limits Limits, ledger *Ledger, log *zap.SugaredLogger) *Validator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Validator{
		limits:  limits,
		ledger:  ledger,
		limiter: NewRateLimiter(limits.MaxOrdersPerSecond),
		log:     log,
	}
}

// ValidateOrder runs the seven checks in order: order size, order
// value, position size, position value, daily loss, drawdown, rate
// limit. referencePrice is the display-unit price to value the order
// at; for a limit order this is normally the order's own price, for a
// market order it must be a current market reference (best opposing
// price or last trade) since a market order carries no price of its
// own. A referencePrice of zero or less fails each value check that is
// enabled, since the order cannot be valued.
func (v *Validator) ValidateOrder(order *core.Order, referencePrice float64) Reason {
	reason := v.validate(order, referencePrice)
	if reason != Accepted {
		v.log.Debugw("risk: order rejected", "order_id", order.ID, "symbol", order.Symbol, "reason", reason.String())
	}
	return reason
}

func (v *Validator) validate(order *core.Order, referencePrice float64) Reason {
	if order.Original > v.limits.MaxOrderSize && v.limits.MaxOrderSize > 0 {
		return RejectedOrderSize
	}

	orderValue := float64(order.Original) * referencePrice
	if v.limits.MaxOrderValue > 0 && (referencePrice <= 0 || orderValue > v.limits.MaxOrderValue) {
		return RejectedOrderValue
	}

	pos := v.ledger.Position(order.Symbol)
	newQuantity := pos.Quantity
	if order.Side == core.Buy {
		newQuantity += int64(order.Original)
	} else {
		newQuantity -= int64(order.Original)
	}
	if v.limits.MaxPositionSize > 0 && absInt64(newQuantity) > v.limits.MaxPositionSize {
		return RejectedPositionLimit
	}

	newPositionValue := float64(absInt64(newQuantity)) * referencePrice
	if v.limits.MaxPositionValue > 0 && (referencePrice <= 0 || newPositionValue > v.limits.MaxPositionValue) {
		return RejectedPositionValue
	}

	if v.limits.MaxDailyLoss > 0 && v.ledger.DailyPnL() < -v.limits.MaxDailyLoss {
		return RejectedDailyLoss
	}

	if v.limits.MaxDrawdown > 0 && v.ledger.CurrentDrawdown() > v.limits.MaxDrawdown {
		return RejectedDrawdown
	}

	if !v.limiter.Allow() {
		return RejectedRateLimit
	}

	return Accepted
}
