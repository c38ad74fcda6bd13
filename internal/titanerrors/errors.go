// Package titanerrors is the structured error envelope shared by
// every titan-hft component, adapted from the teacher's
// TradSysError/ErrorCode pattern down to the error kinds titan-hft
// actually raises (spec.md §7).
package titanerrors

import (
	"fmt"
	"runtime"
	"time"
)

// ErrorCode names a kind of failure, not a Go type. Most are purely
// diagnostic: the hot path never surfaces them as returned errors
// (spec.md §7's "expected, non-errors" kinds are expressed as bool /
// optional returns instead), but logging them under a stable code
// keeps operator-facing lines consistent.
type ErrorCode string

const (
	// ErrInvalidCapacity: a ring was constructed with a non-power-of-two
	// or zero capacity. Fatal at startup.
	ErrInvalidCapacity ErrorCode = "INVALID_CAPACITY"
	// ErrBindFailure: the UDP batch receiver could not bind. Fatal at
	// startup.
	ErrBindFailure ErrorCode = "BIND_FAILURE"
	// ErrRingFull / ErrRingEmpty document the non-error ring states;
	// titan-hft itself never constructs a TitanError with these codes
	// (Ring.TryWrite/TryRead return bool, not error), but they're kept
	// here so log lines naming the condition use a stable vocabulary.
	ErrRingFull  ErrorCode = "RING_FULL"
	ErrRingEmpty ErrorCode = "RING_EMPTY"
	// ErrShortPacket / ErrOversizedPacket: a UDP datagram was not
	// exactly TicksPerPacket*tick.Size bytes and was discarded.
	ErrShortPacket    ErrorCode = "SHORT_PACKET"
	ErrOversizedPacket ErrorCode = "OVERSIZED_PACKET"
	// ErrIOTransient: a recv or file-write error was swallowed; the
	// loop continues.
	ErrIOTransient ErrorCode = "IO_TRANSIENT"
	// ErrRiskBreach: a position or drawdown limit was breached,
	// tripping the kill switch.
	ErrRiskBreach ErrorCode = "RISK_BREACH"
)

// TitanError is the structured error carried by titan-hft's fatal
// startup paths (invalid ring capacity, socket bind failure).
type TitanError struct {
	Code      ErrorCode
	Message   string
	Timestamp time.Time
	File      string
	Line      int
	Cause     error
}

func (e *TitanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *TitanError) Unwrap() error {
	return e.Cause
}

// New creates a TitanError, capturing the caller's file/line.
func New(code ErrorCode, message string) *TitanError {
	_, file, line, _ := runtime.Caller(1)
	return &TitanError{Code: code, Message: message, Timestamp: time.Now(), File: file, Line: line}
}

// Newf creates a TitanError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *TitanError {
	_, file, line, _ := runtime.Caller(1)
	return &TitanError{Code: code, Message: fmt.Sprintf(format, args...), Timestamp: time.Now(), File: file, Line: line}
}

// Wrap attaches code/message context to an existing error.
func Wrap(err error, code ErrorCode, message string) *TitanError {
	if err == nil {
		return nil
	}
	_, file, line, _ := runtime.Caller(1)
	return &TitanError{Code: code, Message: message, Timestamp: time.Now(), File: file, Line: line, Cause: err}
}

// Is reports whether err is a *TitanError with the given code.
func Is(err error, code ErrorCode) bool {
	te, ok := err.(*TitanError)
	if !ok {
		return false
	}
	return te.Code == code
}
