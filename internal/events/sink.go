// Package events defines the synchronous callback contract the
// matching engine uses to publish trades and order lifecycle updates
// as they happen, before submitOrder returns to its caller.
package events

import "github.com/Irushi-coder/high-performance-trading-system/internal/core"

// Sink receives matching engine notifications in emission order. Both
// methods are called synchronously on the submitting goroutine; an
// implementation must not call back into the engine or block for long,
// since it is invoked while the engine holds no further processing to
// do until it returns.
type Sink interface {
	// OnTrade fires once per execution, in the order trades occurred.
	OnTrade(trade core.Trade)
	// OnOrderUpdate fires for the submitted order once matching is done,
	// for each resting order a match touches, and on cancellation or
	// modification. An order rejected before matching produces no update.
	OnOrderUpdate(order *core.Order)
}

// NopSink is a Sink that discards every notification. It is the
// default when no sink is configured.
type NopSink struct{}

func (NopSink) OnTrade(core.Trade)        {}
func (NopSink) OnOrderUpdate(*core.Order) {}

// MultiSink fans a single notification stream out to several sinks, in
// the order they were given, so telemetry and persistence-style
// consumers can be wired up independently.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink builds a MultiSink over sinks, in delivery order.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) OnTrade(trade core.Trade) {
	for _, s := range m.sinks {
		s.OnTrade(trade)
	}
}

func (m *MultiSink) OnOrderUpdate(order *core.Order) {
	for _, s := range m.sinks {
		s.OnOrderUpdate(order)
	}
}
