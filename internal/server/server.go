// Package server exposes the matching engine to TCP clients speaking
// the fixed-tag wire protocol. A single background goroutine drains a
// command queue and applies every command to the engine one at a time,
// so the engine's single-writer requirement holds regardless of how
// many client connections are talking to it concurrently.
package server

import (
	"context"
	"fmt"
	"net"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Irushi-coder/high-performance-trading-system/internal/core"
	"github.com/Irushi-coder/high-performance-trading-system/internal/events"
	"github.com/Irushi-coder/high-performance-trading-system/internal/matching"
	"github.com/Irushi-coder/high-performance-trading-system/internal/protocol"
	"github.com/Irushi-coder/high-performance-trading-system/internal/risk"
)

// command wraps one decoded wire message with the channel its result
// is delivered on, so callers block on their own command without
// blocking the queue behind them.
type command struct {
	id      uuid.UUID
	msg     protocol.Message
	respond chan commandResult
}

type commandResult struct {
	trades []core.Trade
	order  *core.Order
	err    error
}

// Server owns the engine and validator for one symbol and serializes
// every mutating command through a single queue-draining goroutine.
type Server struct {
	engine    *matching.Engine
	validator *risk.Validator
	ledger    *risk.Ledger
	log       *zap.Logger
	queue     chan command
	listener  net.Listener
	onReject  func(risk.Reason)
}

// New builds a Server around engine, validating orders with validator
// and booking fills into ledger.
func New(engine *matching.Engine, validator *risk.Validator, ledger *risk.Ledger, log *zap.Logger) *Server {
	return &Server{
		engine:    engine,
		validator: validator,
		ledger:    ledger,
		log:       log,
		queue:     make(chan command, 1024),
	}
}

// OnReject registers fn to be called with the reason every time
// applyNewOrder rejects an order on a pre-trade risk check, before the
// order ever reaches the matching engine. Used to feed a rejection
// counter without this package importing a metrics library itself.
func (s *Server) OnReject(fn func(risk.Reason)) {
	s.onReject = fn
}

// ListenAndServe binds addr and runs the accept loop and command loop
// until ctx is cancelled or the listener errors. Exit code semantics
// for the host binary: bind failure returns a non-nil error, a clean
// ctx-driven shutdown returns nil.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: bind %s: %w", addr, err)
	}
	s.listener = listener

	go s.runCommandLoop(ctx)

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return fmt.Errorf("server: accept: %w", err)
			}
		}
		go s.handleConnection(ctx, conn)
	}
}

// runCommandLoop is the engine's single writer: every command from
// every connection passes through here, one at a time, in the order it
// was enqueued.
func (s *Server) runCommandLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-s.queue:
			cmd.respond <- s.apply(cmd.msg)
		}
	}
}

func (s *Server) apply(msg protocol.Message) commandResult {
	switch msg.MsgType {
	case protocol.MsgNewOrder:
		return s.applyNewOrder(msg)
	case protocol.MsgCancelOrder:
		order := s.engine.Book().Get(msg.ClOrdID)
		if order == nil || !s.engine.CancelOrder(msg.ClOrdID) {
			return commandResult{err: fmt.Errorf("server: cancel: unknown order id %d", msg.ClOrdID)}
		}
		return commandResult{order: order}
	case protocol.MsgModifyOrder:
		if !s.engine.ModifyOrder(msg.ClOrdID, msg.Price, msg.Quantity) {
			return commandResult{err: fmt.Errorf("server: modify: unknown order id %d", msg.ClOrdID)}
		}
		return commandResult{order: s.engine.Book().Get(msg.ClOrdID)}
	default:
		return commandResult{err: fmt.Errorf("server: unsupported message type %q", msg.MsgType)}
	}
}

func (s *Server) applyNewOrder(msg protocol.Message) commandResult {
	var order *core.Order
	if msg.OrderType == core.Market {
		order = core.NewMarketOrder(msg.ClOrdID, msg.Symbol, msg.Side, msg.Quantity, 0)
	} else {
		order = core.NewLimitOrder(msg.ClOrdID, msg.Symbol, msg.Side, msg.Price, msg.Quantity, 0)
	}

	referencePrice := core.PriceToDisplay(msg.Price)
	if msg.OrderType == core.Market {
		referencePrice = s.marketReferencePrice(msg.Side)
	}

	if s.validator != nil {
		if reason := s.validator.ValidateOrder(order, referencePrice); reason != risk.Accepted {
			order.Reject()
			if s.onReject != nil {
				s.onReject(reason)
			}
			return commandResult{order: order, err: &risk.ErrRejected{Reason: reason}}
		}
	}

	trades, err := s.engine.SubmitOrder(order)
	if err != nil {
		return commandResult{order: order, err: err}
	}

	if s.ledger != nil {
		for _, t := range trades {
			s.ledger.UpdatePosition(t, order.Side)
		}
	}
	return commandResult{trades: trades, order: order}
}

// marketReferencePrice values a market order against the best resting
// price on the side it would consume, falling back to 0 if the book is
// empty on that side (the order will then simply fail the value-based
// risk checks it can't be priced against, rather than bypass them).
func (s *Server) marketReferencePrice(side core.Side) float64 {
	if side == core.Buy {
		if price, ok := s.engine.Book().BestAsk(); ok {
			return core.PriceToDisplay(price)
		}
		return 0
	}
	if price, ok := s.engine.Book().BestBid(); ok {
		return core.PriceToDisplay(price)
	}
	return 0
}

// Submit enqueues msg on the command loop and blocks for its result,
// tagging the command with a fresh uuid of its own, separate from the
// client-supplied order id; the id is kept on the command and is not
// written to any log. The returned order is
// its final resting/terminal state after the command applied — the
// caller's own exec report source — and may be non-nil even when err is
// set (a rejected order is still an order, just one carrying
// StatusRejected).
func (s *Server) Submit(ctx context.Context, msg protocol.Message) ([]core.Trade, *core.Order, error) {
	cmd := command{id: uuid.New(), msg: msg, respond: make(chan commandResult, 1)}
	select {
	case s.queue <- cmd:
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}

	select {
	case res := <-cmd.respond:
		return res.trades, res.order, res.err
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
}

// passThroughSink is the Sink NewSink builds: it forwards trades and
// order updates to two plain functions (telemetry, wire encoding). It is
// handed to the matching engine at construction, so the engine's sink
// stays the single source of truth for what "happened", and this server
// never duplicates that bookkeeping.
var _ events.Sink = (*passThroughSink)(nil)

type passThroughSink struct {
	onTrade func(core.Trade)
	onOrder func(*core.Order)
}

func (p *passThroughSink) OnTrade(t core.Trade) {
	if p.onTrade != nil {
		p.onTrade(t)
	}
}

func (p *passThroughSink) OnOrderUpdate(o *core.Order) {
	if p.onOrder != nil {
		p.onOrder(o)
	}
}

// NewSink builds an events.Sink from two plain functions, for wiring
// the engine's notifications to telemetry without a dedicated type.
func NewSink(onTrade func(core.Trade), onOrder func(*core.Order)) events.Sink {
	return &passThroughSink{onTrade: onTrade, onOrder: onOrder}
}
