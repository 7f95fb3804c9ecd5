package risk

import (
	"testing"

	"github.com/Irushi-coder/high-performance-trading-system/internal/core"
)

func TestUpdatePositionOpensLong(t *testing.T) {
	l := NewLedger(nil)
	trade := core.Trade{Symbol: "TEST", Price: 10000, Quantity: 10}
	l.UpdatePosition(trade, core.Buy)

	pos := l.Position("TEST")
	if pos.Quantity != 10 {
		t.Fatalf("Quantity = %d, want 10", pos.Quantity)
	}
	if pos.AveragePrice != 100.0 {
		t.Fatalf("AveragePrice = %v, want 100.0", pos.AveragePrice)
	}
	if !pos.IsLong() {
		t.Fatal("position should be long")
	}
}

func TestUpdatePositionAveragesAdditionalBuys(t *testing.T) {
	l := NewLedger(nil)
	l.UpdatePosition(core.Trade{Symbol: "TEST", Price: 10000, Quantity: 10}, core.Buy)
	l.UpdatePosition(core.Trade{Symbol: "TEST", Price: 12000, Quantity: 10}, core.Buy)

	pos := l.Position("TEST")
	if pos.Quantity != 20 {
		t.Fatalf("Quantity = %d, want 20", pos.Quantity)
	}
	if pos.AveragePrice != 110.0 {
		t.Fatalf("AveragePrice = %v, want 110.0", pos.AveragePrice)
	}
}

func TestUpdatePositionClosingBooksRealizedPnL(t *testing.T) {
	l := NewLedger(nil)
	l.UpdatePosition(core.Trade{Symbol: "TEST", Price: 10000, Quantity: 10}, core.Buy)
	l.UpdatePosition(core.Trade{Symbol: "TEST", Price: 11000, Quantity: 4}, core.Sell)

	pos := l.Position("TEST")
	if pos.Quantity != 6 {
		t.Fatalf("Quantity = %d, want 6", pos.Quantity)
	}
	wantPnL := 4.0 * (110.0 - 100.0)
	if pos.RealizedPnL != wantPnL {
		t.Fatalf("RealizedPnL = %v, want %v", pos.RealizedPnL, wantPnL)
	}
	if l.DailyPnL() != wantPnL {
		t.Fatalf("DailyPnL() = %v, want %v", l.DailyPnL(), wantPnL)
	}
}

func TestUpdatePositionFlipsSide(t *testing.T) {
	l := NewLedger(nil)
	l.UpdatePosition(core.Trade{Symbol: "TEST", Price: 10000, Quantity: 5}, core.Buy)
	l.UpdatePosition(core.Trade{Symbol: "TEST", Price: 12000, Quantity: 10}, core.Sell)

	pos := l.Position("TEST")
	if pos.Quantity != -5 {
		t.Fatalf("Quantity = %d, want -5 after flipping short", pos.Quantity)
	}
	if pos.AveragePrice != 120.0 {
		t.Fatalf("AveragePrice = %v, want 120.0 (reset at flip fill price)", pos.AveragePrice)
	}
	if !pos.IsShort() {
		t.Fatal("position should be short after flipping")
	}
}

func TestUpdatePositionUsesAggressorSideNotFixedSide(t *testing.T) {
	l := NewLedger(nil)
	// A buy order rests; a sell order crosses it. The AGGRESSOR sell
	// order's update must book as a SELL, not hardcoded to BUY.
	l.UpdatePosition(core.Trade{Symbol: "TEST", Price: 10000, Quantity: 5}, core.Sell)

	pos := l.Position("TEST")
	if pos.Quantity != -5 {
		t.Fatalf("Quantity = %d, want -5 for a sell-side fill", pos.Quantity)
	}
}

func TestResetDailyClearsRealizedNotExposure(t *testing.T) {
	l := NewLedger(nil)
	l.UpdatePosition(core.Trade{Symbol: "TEST", Price: 10000, Quantity: 10}, core.Buy)
	l.UpdatePosition(core.Trade{Symbol: "TEST", Price: 11000, Quantity: 4}, core.Sell)

	l.ResetDaily()
	if l.DailyPnL() != 0 {
		t.Fatalf("DailyPnL() after reset = %v, want 0", l.DailyPnL())
	}
	pos := l.Position("TEST")
	if pos.RealizedPnL != 0 {
		t.Fatalf("RealizedPnL after reset = %v, want 0", pos.RealizedPnL)
	}
	if pos.Quantity != 6 {
		t.Fatalf("Quantity after reset = %d, want 6 (exposure survives reset)", pos.Quantity)
	}
}

func TestDrawdownTracksPeakEquity(t *testing.T) {
	l := NewLedger(nil)
	l.UpdatePosition(core.Trade{Symbol: "TEST", Price: 10000, Quantity: 10}, core.Buy)
	l.UpdateUnrealized("TEST", 120.0)
	if l.CurrentDrawdown() != 0 {
		t.Fatalf("CurrentDrawdown() at new peak = %v, want 0", l.CurrentDrawdown())
	}
	l.UpdateUnrealized("TEST", 90.0)
	if dd := l.CurrentDrawdown(); dd <= 0 {
		t.Fatalf("CurrentDrawdown() after equity drop = %v, want > 0", dd)
	}
}
