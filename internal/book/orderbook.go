package book

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Irushi-coder/high-performance-trading-system/internal/core"
)

// side holds one side of the book: a map of price to level plus a
// sorted slice of the distinct prices, kept in the side's match order
// (bids descending, asks ascending) so index 0 is always best. Binary
// search locates a price in O(log k) in the number of distinct prices;
// inserting or erasing a price shifts the slice, O(k). Best-price access
// is O(1).
type side struct {
	levels map[core.Price]*PriceLevel
	order  []core.Price // sorted in match-priority order
	desc   bool         // true for bids (descending), false for asks
}

func newSide(desc bool) *side {
	return &side{levels: make(map[core.Price]*PriceLevel), desc: desc}
}

func (s *side) less(a, b core.Price) bool {
	if s.desc {
		return a > b
	}
	return a < b
}

func (s *side) find(price core.Price) int {
	return sort.Search(len(s.order), func(i int) bool {
		return !s.less(s.order[i], price)
	})
}

func (s *side) getOrCreate(price core.Price) *PriceLevel {
	if lvl, ok := s.levels[price]; ok {
		return lvl
	}
	lvl := NewPriceLevel(price)
	s.levels[price] = lvl
	i := s.find(price)
	s.order = append(s.order, 0)
	copy(s.order[i+1:], s.order[i:])
	s.order[i] = price
	return lvl
}

func (s *side) removeIfEmpty(price core.Price) {
	lvl, ok := s.levels[price]
	if !ok || !lvl.IsEmpty() {
		return
	}
	delete(s.levels, price)
	i := s.find(price)
	if i < len(s.order) && s.order[i] == price {
		s.order = append(s.order[:i], s.order[i+1:]...)
	}
}

func (s *side) best() (core.Price, bool) {
	if len(s.order) == 0 {
		return 0, false
	}
	return s.order[0], true
}

func (s *side) depth(n int) []DepthLevel {
	if n > len(s.order) {
		n = len(s.order)
	}
	out := make([]DepthLevel, 0, n)
	for i := 0; i < n; i++ {
		lvl := s.levels[s.order[i]]
		out = append(out, DepthLevel{Price: lvl.Price, Quantity: lvl.TotalQuantity(), OrderCount: lvl.OrderCount()})
	}
	return out
}

func (s *side) totalQuantity() core.Quantity {
	var total core.Quantity
	for _, lvl := range s.levels {
		total += lvl.TotalQuantity()
	}
	return total
}

// DepthLevel is one row of a top-N depth aggregation.
type DepthLevel struct {
	Price      core.Price
	Quantity   core.Quantity
	OrderCount int
}

// Stats is a point-in-time snapshot of book size, for telemetry.
type Stats struct {
	TotalOrders int
	BidLevels   int
	AskLevels   int
	TotalBidQty core.Quantity
	TotalAskQty core.Quantity
}

// Book is the two-sided order book for a single symbol: ordered price
// levels on each side plus an id index for O(1) lookup. It is not
// internally synchronized — callers must serialize mutation through a
// single writer, the same way the matching engine driving it does.
type Book struct {
	Symbol core.Symbol
	bids   *side
	asks   *side
	byID   map[core.OrderId]*core.Order
	log    *zap.SugaredLogger
}

// New creates an empty book for symbol. A nil log defaults to a no-op
// logger.
func New(symbol core.Symbol, log *zap.SugaredLogger) *Book {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Book{
		Symbol: symbol,
		bids:   newSide(true),
		asks:   newSide(false),
		byID:   make(map[core.OrderId]*core.Order),
		log:    log,
	}
}

func (b *Book) sideFor(s core.Side) *side {
	if s == core.Buy {
		return b.bids
	}
	return b.asks
}

// AddOrder inserts a resting order. It fails (returns false) on symbol
// mismatch or duplicate id — both programmer errors that must never
// occur with a correct caller.
func (b *Book) AddOrder(order *core.Order) bool {
	if order.Symbol != b.Symbol {
		b.log.Errorw("book: rejected add with mismatched symbol", "book_symbol", b.Symbol, "order_symbol", order.Symbol, "order_id", order.ID)
		return false
	}
	if _, exists := b.byID[order.ID]; exists {
		b.log.Errorw("book: rejected add with duplicate order id", "order_id", order.ID)
		return false
	}
	lvl := b.sideFor(order.Side).getOrCreate(order.Price)
	lvl.Add(order)
	b.byID[order.ID] = order
	return true
}

// CancelOrder removes id from the book, marking it CANCELLED with a
// zeroed remaining quantity before releasing both references (level
// queue and id index) in the same call. Returns false if id is unknown
// — cancel is idempotent on already-gone ids.
func (b *Book) CancelOrder(id core.OrderId) bool {
	order, ok := b.byID[id]
	if !ok {
		b.log.Errorw("book: cancel of unknown order id", "order_id", id)
		return false
	}
	s := b.sideFor(order.Side)
	lvl := s.levels[order.Price]
	if lvl != nil {
		lvl.Remove(id)
		s.removeIfEmpty(order.Price)
	}
	order.Cancel()
	delete(b.byID, id)
	return true
}

// ModifyOrder is semantically cancel-then-insert at a new price with
// the same id. This loses time priority at the new (or same) price.
func (b *Book) ModifyOrder(id core.OrderId, newPrice core.Price, newQty core.Quantity) bool {
	order, ok := b.byID[id]
	if !ok {
		b.log.Errorw("book: modify of unknown order id", "order_id", id)
		return false
	}
	symbol, sd, typ, ts := order.Symbol, order.Side, order.Type, order.CreatedAt
	if !b.CancelOrder(id) {
		return false
	}
	replacement := core.NewLimitOrder(id, symbol, sd, newPrice, newQty, ts)
	replacement.Type = typ
	return b.AddOrder(replacement)
}

// Get returns the resting order for id, or nil.
func (b *Book) Get(id core.OrderId) *core.Order {
	return b.byID[id]
}

// BestBid returns the highest resting buy price.
func (b *Book) BestBid() (core.Price, bool) { return b.bids.best() }

// BestAsk returns the lowest resting sell price.
func (b *Book) BestAsk() (core.Price, bool) { return b.asks.best() }

// BestBidOrder returns the head-of-queue order at the best bid level,
// the direct accessor the matching engine needs to consume real resting
// orders rather than aggregated depth.
func (b *Book) BestBidOrder() *core.Order {
	price, ok := b.BestBid()
	if !ok {
		return nil
	}
	return b.bids.levels[price].Front()
}

// BestAskOrder is the ask-side counterpart of BestBidOrder.
func (b *Book) BestAskOrder() *core.Order {
	price, ok := b.BestAsk()
	if !ok {
		return nil
	}
	return b.asks.levels[price].Front()
}

// RemoveIfLevelEmpty erases the price level on side s if it has become
// empty. Exposed so the matching engine can clean up immediately after
// decrementing the head order's quantity to zero and removing it.
func (b *Book) RemoveIfLevelEmpty(s core.Side, price core.Price) {
	b.sideFor(s).removeIfEmpty(price)
}

// DecrementLevelTotal keeps a level's cached total in sync after the
// matching engine fills its front order in place, without removing it
// (partial fill of a resting order).
func (b *Book) DecrementLevelTotal(s core.Side, price core.Price, qty core.Quantity) {
	if lvl := b.sideFor(s).levels[price]; lvl != nil {
		lvl.DecrementTotal(qty)
	}
}

// RemoveFilledOrder removes an order that has just been filled to zero
// from its level and the id index, in one call, so both references are
// released together.
func (b *Book) RemoveFilledOrder(order *core.Order) {
	s := b.sideFor(order.Side)
	if lvl := s.levels[order.Price]; lvl != nil {
		lvl.Remove(order.ID)
		s.removeIfEmpty(order.Price)
	}
	delete(b.byID, order.ID)
}

// Spread returns bestAsk - bestBid, or false if either side is empty.
func (b *Book) Spread() (core.Price, bool) {
	bid, ok1 := b.BestBid()
	ask, ok2 := b.BestAsk()
	if !ok1 || !ok2 {
		return 0, false
	}
	return ask - bid, true
}

// MidPrice returns the display-unit average of best bid and best ask.
func (b *Book) MidPrice() (float64, bool) {
	bid, ok1 := b.BestBid()
	ask, ok2 := b.BestAsk()
	if !ok1 || !ok2 {
		return 0, false
	}
	return core.PriceToDisplay(bid+ask) / 2.0, true
}

// BidDepth returns the top n bid levels, best price first.
func (b *Book) BidDepth(n int) []DepthLevel { return b.bids.depth(n) }

// AskDepth returns the top n ask levels, best price first.
func (b *Book) AskDepth(n int) []DepthLevel { return b.asks.depth(n) }

// TotalBidQuantity sums remaining quantity across all bid levels.
func (b *Book) TotalBidQuantity() core.Quantity { return b.bids.totalQuantity() }

// TotalAskQuantity sums remaining quantity across all ask levels.
func (b *Book) TotalAskQuantity() core.Quantity { return b.asks.totalQuantity() }

// GetStats returns a snapshot of book size for telemetry.
func (b *Book) GetStats() Stats {
	return Stats{
		TotalOrders: len(b.byID),
		BidLevels:   len(b.bids.order),
		AskLevels:   len(b.asks.order),
		TotalBidQty: b.TotalBidQuantity(),
		TotalAskQty: b.TotalAskQuantity(),
	}
}

// CheckInvariants validates that the book is not crossed and that every
// indexed order is actually present in its price level's queue. It is
// used by tests, not the hot path.
func (b *Book) CheckInvariants() error {
	if bid, ok1 := b.BestBid(); ok1 {
		if ask, ok2 := b.BestAsk(); ok2 && bid >= ask {
			return fmt.Errorf("crossed book: bestBid=%d bestAsk=%d", bid, ask)
		}
	}
	for id, order := range b.byID {
		lvl := b.sideFor(order.Side).levels[order.Price]
		if lvl == nil {
			return fmt.Errorf("order %d indexed but its price level is missing", id)
		}
		found := false
		for e := lvl.queue.Front(); e != nil; e = e.Next() {
			if e.Value.(*core.Order).ID == id {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("order %d indexed but absent from its price level", id)
		}
	}
	for _, s := range []*side{b.bids, b.asks} {
		for price, lvl := range s.levels {
			if lvl.IsEmpty() {
				return fmt.Errorf("empty price level %d persisted in book", price)
			}
		}
	}
	return nil
}
