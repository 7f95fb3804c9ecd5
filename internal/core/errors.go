package core

import "fmt"

// ProgrammingError marks a fault that a correct caller must never
// trigger — a symbol mismatch, a duplicate order id, cancellation or
// modification of an id the caller was never given, or a would-be
// match crossing two orders on the same side. Every layer that detects
// one logs it and returns a plain error or false rather than panicking:
// a single misbehaving connection must not take the process down.
type ProgrammingError struct {
	Op     string
	Detail string
}

func (e *ProgrammingError) Error() string {
	return fmt.Sprintf("programming error in %s: %s", e.Op, e.Detail)
}

// NewProgrammingError builds a ProgrammingError for op (the operation
// that detected the fault) with a formatted detail message.
func NewProgrammingError(op, format string, args ...interface{}) *ProgrammingError {
	return &ProgrammingError{Op: op, Detail: fmt.Sprintf(format, args...)}
}
