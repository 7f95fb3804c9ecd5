package server

import (
	"bufio"
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Irushi-coder/high-performance-trading-system/internal/core"
	"github.com/Irushi-coder/high-performance-trading-system/internal/protocol"
	"github.com/Irushi-coder/high-performance-trading-system/internal/risk"
)

func readExecReport(t *testing.T, r *bufio.Reader) protocol.Message {
	t.Helper()
	frame, err := readFrame(r)
	require.NoError(t, err)
	msg, err := protocol.Decode(frame)
	require.NoError(t, err)
	return msg
}

// TestHandleConnectionRoundTripsTwoOrdersOverOneConnection exercises the
// case a persistent session hits constantly: two messages arriving
// back-to-back on the same connection. Each must decode to its own
// exec report, with neither message's bytes bleeding into the other's.
func TestHandleConnectionRoundTripsTwoOrdersOverOneConnection(t *testing.T) {
	srv, _ := newTestServer(t, risk.DefaultLimits())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.runCommandLoop(ctx)

	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	go srv.handleConnection(ctx, serverConn)

	msg1 := protocol.NewOrderMessage(1, testSymbol, core.Buy, core.Limit, core.DisplayToPrice(100), 10)
	msg2 := protocol.NewOrderMessage(2, testSymbol, core.Sell, core.Limit, core.DisplayToPrice(200), 5)

	both := append(protocol.Encode(msg1), protocol.Encode(msg2)...)
	go func() {
		_, _ = clientConn.Write(both)
	}()

	reader := bufio.NewReader(clientConn)
	report1 := readExecReport(t, reader)
	report2 := readExecReport(t, reader)

	assert.Equal(t, core.OrderId(1), report1.ClOrdID)
	assert.Equal(t, protocol.ExecNew, report1.ExecType)

	assert.Equal(t, core.OrderId(2), report2.ClOrdID)
	assert.Equal(t, protocol.ExecNew, report2.ExecType)
}
