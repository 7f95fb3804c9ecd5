package protocol

import "errors"

// ErrMalformed is returned when a message field cannot be parsed
// according to its tag's expected format.
var ErrMalformed = errors.New("protocol: malformed message field")

// ErrBadChecksum is returned when the trailing tag-10 checksum does not
// match the computed modulo-256 sum of the message prefix.
var ErrBadChecksum = errors.New("protocol: checksum mismatch")
