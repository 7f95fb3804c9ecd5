package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Irushi-coder/high-performance-trading-system/internal/core"
	"github.com/Irushi-coder/high-performance-trading-system/internal/matching"
	"github.com/Irushi-coder/high-performance-trading-system/internal/protocol"
	"github.com/Irushi-coder/high-performance-trading-system/internal/risk"
)

const testSymbol = core.Symbol("XYZ")

func newTestServer(t *testing.T, limits risk.Limits) (*Server, *risk.Ledger) {
	t.Helper()
	engine := matching.New(testSymbol, nil, nil)
	ledger := risk.NewLedger(nil)
	validator := risk.NewValidator(limits, ledger, nil)
	return New(engine, validator, ledger, zap.NewNop()), ledger
}

func TestApplyNewOrderBooksBothSidesIndependently(t *testing.T) {
	srv, ledger := newTestServer(t, risk.DefaultLimits())

	rest := srv.apply(protocol.NewOrderMessage(1, testSymbol, core.Sell, core.Limit, core.DisplayToPrice(100), 10))
	require.NoError(t, rest.err)
	assert.Equal(t, core.StatusNew, rest.order.Status)

	buyFill := srv.apply(protocol.NewOrderMessage(2, testSymbol, core.Buy, core.Limit, core.DisplayToPrice(100), 10))
	require.NoError(t, buyFill.err)
	require.Len(t, buyFill.trades, 1)

	pos := ledger.Position(testSymbol)
	assert.Equal(t, int64(10), pos.Quantity, "aggressor buy should have opened a long position")
	assert.InDelta(t, 100, pos.AveragePrice, 0.001)

	rest2 := srv.apply(protocol.NewOrderMessage(3, testSymbol, core.Buy, core.Limit, core.DisplayToPrice(100), 5))
	require.NoError(t, rest2.err)

	sellFill := srv.apply(protocol.NewOrderMessage(4, testSymbol, core.Sell, core.Limit, core.DisplayToPrice(100), 5))
	require.NoError(t, sellFill.err)
	require.Len(t, sellFill.trades, 1)

	pos = ledger.Position(testSymbol)
	assert.Equal(t, int64(5), pos.Quantity,
		"aggressor sell must reduce the long position using its own side, not a fixed one")
}

func TestApplyNewOrderRejectsOnRiskLimit(t *testing.T) {
	limits := risk.DefaultLimits()
	limits.MaxOrderSize = 1
	srv, _ := newTestServer(t, limits)

	res := srv.apply(protocol.NewOrderMessage(1, testSymbol, core.Buy, core.Limit, core.DisplayToPrice(10), 100))
	require.Error(t, res.err)
	require.NotNil(t, res.order)
	assert.Equal(t, core.StatusRejected, res.order.Status)
	assert.Empty(t, res.trades)

	var rejected *risk.ErrRejected
	assert.ErrorAs(t, res.err, &rejected)
}

func TestApplyCancelOrderUnknownID(t *testing.T) {
	srv, _ := newTestServer(t, risk.DefaultLimits())

	res := srv.apply(protocol.Message{MsgType: protocol.MsgCancelOrder, ClOrdID: 999, Symbol: testSymbol})
	require.Error(t, res.err)
	assert.Nil(t, res.order)
}

func TestApplyCancelOrderMarksOrderCancelled(t *testing.T) {
	srv, _ := newTestServer(t, risk.DefaultLimits())

	res := srv.apply(protocol.NewOrderMessage(1, testSymbol, core.Buy, core.Limit, core.DisplayToPrice(50), 10))
	require.NoError(t, res.err)

	cancel := srv.apply(protocol.Message{MsgType: protocol.MsgCancelOrder, ClOrdID: 1, Symbol: testSymbol})
	require.NoError(t, cancel.err)
	require.NotNil(t, cancel.order)
	assert.Equal(t, core.StatusCancelled, cancel.order.Status)
}

func TestApplyModifyOrderUnknownID(t *testing.T) {
	srv, _ := newTestServer(t, risk.DefaultLimits())

	res := srv.apply(protocol.Message{
		MsgType:  protocol.MsgModifyOrder,
		ClOrdID:  999,
		Symbol:   testSymbol,
		Price:    core.DisplayToPrice(10),
		Quantity: 5,
	})
	require.Error(t, res.err)
}

func TestApplyRejectsUnsupportedMessageType(t *testing.T) {
	srv, _ := newTestServer(t, risk.DefaultLimits())

	res := srv.apply(protocol.Message{MsgType: "Z"})
	require.Error(t, res.err)
}

func TestMarketReferencePriceFallsBackToZeroOnEmptyBook(t *testing.T) {
	srv, _ := newTestServer(t, risk.DefaultLimits())

	assert.Equal(t, 0.0, srv.marketReferencePrice(core.Buy))
	assert.Equal(t, 0.0, srv.marketReferencePrice(core.Sell))
}

func TestMarketReferencePriceUsesBestOppositeSide(t *testing.T) {
	srv, _ := newTestServer(t, risk.DefaultLimits())

	res := srv.apply(protocol.NewOrderMessage(1, testSymbol, core.Sell, core.Limit, core.DisplayToPrice(101.50), 10))
	require.NoError(t, res.err)

	assert.InDelta(t, 101.50, srv.marketReferencePrice(core.Buy), 0.001)
	assert.Equal(t, 0.0, srv.marketReferencePrice(core.Sell))
}
