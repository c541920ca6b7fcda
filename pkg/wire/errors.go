package wire

import (
	"errors"
	"fmt"
)

// Decode and construction errors. Decode errors are always returned, never
// panicked, and leave no partial state behind; callers match them with
// errors.Is / errors.As.
var (
	// ErrTruncated indicates fewer octets than the message shape requires.
	ErrTruncated = errors.New("frame truncated")

	// ErrLengthMismatch indicates the declared frame length does not match
	// the buffer actually supplied. The frame must be discarded.
	ErrLengthMismatch = errors.New("declared length does not match frame size")

	// ErrInvalidLength indicates a variable-length field does not exactly
	// fill the remaining octets of the frame.
	ErrInvalidLength = errors.New("invalid field length")

	// ErrProtocolID indicates a CONNECT frame carrying a protocol id other
	// than the fixed MQTT-SN constant 0x01.
	ErrProtocolID = errors.New("unsupported protocol id")

	// ErrFieldTooLarge is returned by message constructors when a field
	// value cannot be represented within the protocol's width limits.
	// It never occurs during encoding or decoding.
	ErrFieldTooLarge = errors.New("field exceeds protocol width limit")
)

// UnknownTypeError reports a frame whose message-type octet matches no
// known variant. The original code is preserved so callers can choose to
// ignore or log frames from future protocol revisions.
type UnknownTypeError struct {
	Code uint8
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown message type 0x%02X", e.Code)
}
