package server

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"

	"go.uber.org/zap"

	"github.com/Irushi-coder/high-performance-trading-system/internal/protocol"
)

// handleConnection reads one SOH-framed message per line-equivalent
// frame from conn, submits it through the command loop, and writes back
// an exec report. It never touches engine state directly — everything
// goes through Submit so concurrent connections stay serialized.
func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	reader := bufio.NewReader(conn)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frame, err := readFrame(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.log.Warn("server: read frame failed", zap.Error(err))
			}
			return
		}

		msg, err := protocol.Decode(frame)
		if err != nil {
			s.log.Warn("server: decode failed", zap.Error(err))
			continue
		}

		_, order, err := s.Submit(ctx, msg)
		if err != nil {
			s.log.Info("server: command rejected", zap.String("msg_type", msg.MsgType), zap.Error(err))
		}
		if order == nil {
			continue
		}

		report := protocol.Encode(protocol.ExecReportMessage(order, protocol.ExecTypeFor(order.Status)))
		if _, err := conn.Write(report); err != nil {
			s.log.Warn("server: write exec report failed", zap.Error(err))
			return
		}
	}
}

// readFrame reads bytes up to and including the trailing "10=NNN"
// checksum field's terminating SOH, since frames carry no explicit
// length prefix on the wire.
func readFrame(r *bufio.Reader) ([]byte, error) {
	var buf []byte
	for {
		chunk, err := r.ReadBytes(protocol.SOH)
		if len(chunk) > 0 {
			buf = append(buf, chunk...)
		}
		if err != nil {
			return nil, err
		}
		if len(chunk) >= 3 && chunk[0] == '1' && chunk[1] == '0' && chunk[2] == '=' {
			return buf[:len(buf)-1], nil
		}
	}
}
