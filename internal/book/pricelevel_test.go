package book

import (
	"testing"

	"github.com/Irushi-coder/high-performance-trading-system/internal/core"
)

func mustOrder(id core.OrderId, side core.Side, price core.Price, qty core.Quantity) *core.Order {
	return core.NewLimitOrder(id, "TEST", side, price, qty, core.Timestamp(id))
}

func TestPriceLevelFIFO(t *testing.T) {
	lvl := NewPriceLevel(10000)
	o1 := mustOrder(1, core.Buy, 10000, 5)
	o2 := mustOrder(2, core.Buy, 10000, 7)
	lvl.Add(o1)
	lvl.Add(o2)

	if got := lvl.TotalQuantity(); got != 12 {
		t.Fatalf("TotalQuantity() = %d, want 12", got)
	}
	if front := lvl.Front(); front.ID != 1 {
		t.Fatalf("Front().ID = %d, want 1", front.ID)
	}
	if lvl.OrderCount() != 2 {
		t.Fatalf("OrderCount() = %d, want 2", lvl.OrderCount())
	}
}

func TestPriceLevelRemove(t *testing.T) {
	lvl := NewPriceLevel(10000)
	o1 := mustOrder(1, core.Buy, 10000, 5)
	o2 := mustOrder(2, core.Buy, 10000, 7)
	lvl.Add(o1)
	lvl.Add(o2)

	removed := lvl.Remove(1)
	if removed == nil || removed.ID != 1 {
		t.Fatalf("Remove(1) = %v, want order 1", removed)
	}
	if lvl.TotalQuantity() != 7 {
		t.Fatalf("TotalQuantity() after remove = %d, want 7", lvl.TotalQuantity())
	}
	if front := lvl.Front(); front.ID != 2 {
		t.Fatalf("Front().ID after remove = %d, want 2", front.ID)
	}
	if got := lvl.Remove(999); got != nil {
		t.Fatalf("Remove(unknown) = %v, want nil", got)
	}
}

func TestPriceLevelIsEmpty(t *testing.T) {
	lvl := NewPriceLevel(10000)
	if !lvl.IsEmpty() {
		t.Fatal("new level should be empty")
	}
	o1 := mustOrder(1, core.Buy, 10000, 5)
	lvl.Add(o1)
	if lvl.IsEmpty() {
		t.Fatal("level with an order should not be empty")
	}
	lvl.Remove(1)
	if !lvl.IsEmpty() {
		t.Fatal("level should be empty after removing its only order")
	}
}

func TestPriceLevelDecrementTotal(t *testing.T) {
	lvl := NewPriceLevel(10000)
	o1 := mustOrder(1, core.Buy, 10000, 10)
	lvl.Add(o1)
	o1.FillQuantity(4)
	lvl.DecrementTotal(4)
	if got := lvl.TotalQuantity(); got != 6 {
		t.Fatalf("TotalQuantity() after partial fill = %d, want 6", got)
	}
}
