// Package protocol implements the fixed-tag financial wire message the
// server layer exchanges with clients: SOH-delimited tag=value pairs
// with a trailing modulo-256 checksum, translated to and from the
// core's order and trade types.
package protocol

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Irushi-coder/high-performance-trading-system/internal/core"
)

// SOH is the single-byte field separator between tag=value pairs.
const SOH = 0x01

// Message type codes (tag 35).
const (
	MsgNewOrder    = "D"
	MsgCancelOrder = "F"
	MsgModifyOrder = "G"
	MsgExecReport  = "8"
)

// Exec type codes (tag 150).
const (
	ExecNew       = "0"
	ExecPartial   = "1"
	ExecFill      = "2"
	ExecCancelled = "4"
	ExecRejected  = "8"
)

// Message is the decoded form of one tag=value/SOH frame.
type Message struct {
	MsgType   string // tag 35
	ClOrdID   core.OrderId
	Symbol    core.Symbol
	Side      core.Side
	OrderType core.OrderType
	Quantity  core.Quantity
	Price     core.Price
	ExecType  string // tag 150, present on exec reports
	LeavesQty core.Quantity
	CumQty    core.Quantity
}

// Encode serializes msg into a SOH-framed tag=value byte string ending
// with a checksum field (tag 10). Fields with a zero value for their
// type are still emitted for tags that are always present on that
// message type; for the common cases callers use the constructors in
// messages.go (NewOrderMessage, ExecReportMessage) rather than building
// Message by hand.
func Encode(msg Message) []byte {
	var body bytes.Buffer
	writeTag := func(tag int, value string) {
		if body.Len() > 0 {
			body.WriteByte(SOH)
		}
		fmt.Fprintf(&body, "%d=%s", tag, value)
	}

	writeTag(35, msg.MsgType)
	writeTag(11, strconv.FormatUint(uint64(msg.ClOrdID), 10))
	writeTag(55, string(msg.Symbol))

	if msg.MsgType == MsgNewOrder {
		writeTag(54, sideCode(msg.Side))
		writeTag(40, typeCode(msg.OrderType))
		writeTag(38, strconv.FormatUint(uint64(msg.Quantity), 10))
		if msg.OrderType == core.Limit {
			writeTag(44, priceToWire(msg.Price))
		}
	}

	if msg.MsgType == MsgExecReport {
		writeTag(150, msg.ExecType)
		writeTag(151, strconv.FormatUint(uint64(msg.LeavesQty), 10))
		writeTag(14, strconv.FormatUint(uint64(msg.CumQty), 10))
	}

	checksum := checksumOf(body.Bytes())
	body.WriteByte(SOH)
	fmt.Fprintf(&body, "10=%03d", checksum)
	body.WriteByte(SOH)
	return body.Bytes()
}

// Decode parses a SOH-framed tag=value message and validates its
// checksum. raw may or may not carry the trailing SOH Encode appends
// after the checksum field — callers that already stripped it (as
// readFrame does) and callers that pass Encode's output straight
// through both decode the same message. It returns ErrBadChecksum if
// tag 10 doesn't match, and ErrMalformed for any field that fails to
// parse.
func Decode(raw []byte) (Message, error) {
	raw = bytes.TrimSuffix(raw, []byte{SOH})
	fields := bytes.Split(raw, []byte{SOH})
	if len(fields) < 2 {
		return Message{}, ErrMalformed
	}

	checksumField := fields[len(fields)-1]
	prefix := bytes.Join(fields[:len(fields)-1], []byte{SOH})

	wantChecksum, err := parseChecksumField(checksumField)
	if err != nil {
		return Message{}, err
	}
	if got := checksumOf(prefix); got != wantChecksum {
		return Message{}, ErrBadChecksum
	}

	var msg Message
	for _, f := range fields[:len(fields)-1] {
		tag, value, err := splitTagValue(f)
		if err != nil {
			return Message{}, err
		}
		if err := applyTag(&msg, tag, value); err != nil {
			return Message{}, err
		}
	}
	return msg, nil
}

func splitTagValue(field []byte) (int, string, error) {
	idx := bytes.IndexByte(field, '=')
	if idx < 0 {
		return 0, "", ErrMalformed
	}
	tag, err := strconv.Atoi(string(field[:idx]))
	if err != nil {
		return 0, "", ErrMalformed
	}
	return tag, string(field[idx+1:]), nil
}

func applyTag(msg *Message, tag int, value string) error {
	switch tag {
	case 35:
		msg.MsgType = value
	case 11:
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return ErrMalformed
		}
		msg.ClOrdID = core.OrderId(v)
	case 55:
		msg.Symbol = core.Symbol(value)
	case 54:
		side, err := parseSideCode(value)
		if err != nil {
			return err
		}
		msg.Side = side
	case 40:
		typ, err := parseTypeCode(value)
		if err != nil {
			return err
		}
		msg.OrderType = typ
	case 38:
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return ErrMalformed
		}
		msg.Quantity = core.Quantity(v)
	case 44:
		price, err := priceFromWire(value)
		if err != nil {
			return err
		}
		msg.Price = price
	case 150:
		msg.ExecType = value
	case 151:
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return ErrMalformed
		}
		msg.LeavesQty = core.Quantity(v)
	case 14:
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return ErrMalformed
		}
		msg.CumQty = core.Quantity(v)
	}
	return nil
}

func sideCode(s core.Side) string {
	if s == core.Buy {
		return "1"
	}
	return "2"
}

func parseSideCode(v string) (core.Side, error) {
	switch v {
	case "1":
		return core.Buy, nil
	case "2":
		return core.Sell, nil
	default:
		return 0, ErrMalformed
	}
}

func typeCode(t core.OrderType) string {
	if t == core.Market {
		return "1"
	}
	return "2"
}

func parseTypeCode(v string) (core.OrderType, error) {
	switch v {
	case "1":
		return core.Market, nil
	case "2":
		return core.Limit, nil
	default:
		return 0, ErrMalformed
	}
}

// priceToWire renders a fixed-point Price as its two-decimal display
// string, using decimal to avoid float rounding drift on the wire.
func priceToWire(p core.Price) string {
	return decimal.New(int64(p), -2).StringFixed(2)
}

// priceFromWire parses a two-decimal display price into fixed-point.
func priceFromWire(v string) (core.Price, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return 0, ErrMalformed
	}
	scaled := d.Mul(decimal.New(100, 0))
	return core.Price(scaled.IntPart()), nil
}

func checksumOf(b []byte) int {
	var sum int
	for _, c := range b {
		sum += int(c)
	}
	return sum % 256
}

func parseChecksumField(field []byte) (int, error) {
	idx := bytes.IndexByte(field, '=')
	if idx < 0 || string(field[:idx]) != "10" {
		return 0, ErrMalformed
	}
	v, err := strconv.Atoi(string(field[idx+1:]))
	if err != nil {
		return 0, ErrMalformed
	}
	return v, nil
}
