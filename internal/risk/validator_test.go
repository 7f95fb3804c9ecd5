package risk

import (
	"testing"

	"github.com/Irushi-coder/high-performance-trading-system/internal/core"
)

func mustLimit(side core.Side, price core.Price, qty core.Quantity) *core.Order {
	return core.NewLimitOrder(1, "TEST", side, price, qty, 0)
}

func TestValidateOrderAccepted(t *testing.T) {
	v := NewValidator(DefaultLimits(), NewLedger(nil), nil)
	order := mustLimit(core.Buy, 10000, 100)
	if got := v.ValidateOrder(order, 100.0); got != Accepted {
		t.Fatalf("ValidateOrder() = %v, want Accepted", got)
	}
}

func TestValidateOrderRejectsOrderSize(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxOrderSize = 50
	v := NewValidator(limits, NewLedger(nil), nil)
	order := mustLimit(core.Buy, 10000, 100)
	if got := v.ValidateOrder(order, 100.0); got != RejectedOrderSize {
		t.Fatalf("ValidateOrder() = %v, want RejectedOrderSize", got)
	}
}

func TestValidateOrderRejectsOrderValue(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxOrderValue = 1000
	v := NewValidator(limits, NewLedger(nil), nil)
	order := mustLimit(core.Buy, 10000, 100)
	if got := v.ValidateOrder(order, 100.0); got != RejectedOrderValue {
		t.Fatalf("ValidateOrder() = %v, want RejectedOrderValue", got)
	}
}

func TestValidateOrderRejectsPositionLimit(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxPositionSize = 50
	ledger := NewLedger(nil)
	ledger.UpdatePosition(core.Trade{Symbol: "TEST", Price: 10000, Quantity: 40}, core.Buy)
	v := NewValidator(limits, ledger, nil)
	order := mustLimit(core.Buy, 10000, 20)
	if got := v.ValidateOrder(order, 100.0); got != RejectedPositionLimit {
		t.Fatalf("ValidateOrder() = %v, want RejectedPositionLimit", got)
	}
}

func TestValidateOrderRejectsDailyLoss(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxDailyLoss = 100
	ledger := NewLedger(nil)
	ledger.UpdatePosition(core.Trade{Symbol: "TEST", Price: 10000, Quantity: 10}, core.Buy)
	ledger.UpdatePosition(core.Trade{Symbol: "TEST", Price: 8000, Quantity: 10}, core.Sell)
	v := NewValidator(limits, ledger, nil)
	order := mustLimit(core.Buy, 10000, 1)
	if got := v.ValidateOrder(order, 100.0); got != RejectedDailyLoss {
		t.Fatalf("ValidateOrder() = %v, want RejectedDailyLoss", got)
	}
}

func TestValidateOrderRejectsRateLimit(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxOrdersPerSecond = 1
	v := NewValidator(limits, NewLedger(nil), nil)
	order := mustLimit(core.Buy, 10000, 1)

	if got := v.ValidateOrder(order, 100.0); got != Accepted {
		t.Fatalf("first ValidateOrder() = %v, want Accepted", got)
	}
	if got := v.ValidateOrder(order, 100.0); got != RejectedRateLimit {
		t.Fatalf("second ValidateOrder() = %v, want RejectedRateLimit", got)
	}
}

func TestValidateOrderDisabledLimitsAlwaysPass(t *testing.T) {
	v := NewValidator(Limits{}, NewLedger(nil), nil)
	order := mustLimit(core.Buy, 10000, 1_000_000)
	if got := v.ValidateOrder(order, 100.0); got != Accepted {
		t.Fatalf("ValidateOrder() with zero limits = %v, want Accepted", got)
	}
}
