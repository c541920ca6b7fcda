// Package wire implements the MQTT-SN 1.2 wire format: a typed message
// model for the complete message catalog and a stateless codec mapping
// between messages and their exact octet sequences.
//
// MQTT-SN frames are self-delimiting: every message begins with a length
// field covering the whole frame, followed by a one-octet message type and
// type-specific fields. All multi-octet integers are big-endian.
//
//	┌─────────────────────────────────┐
//	│   Type-specific fields          │
//	├─────────────────────────────────┤
//	│   Message type (1 octet)        │
//	├─────────────────────────────────┤
//	│   Length (1 octet, or 3 octets  │
//	│   when the frame exceeds 255)   │
//	└─────────────────────────────────┘
//
// # Decoding
//
// Decode consumes exactly one frame and returns a fully populated Message
// or an error; it never panics on malformed input and never returns a
// partially decoded value. Input is expected to arrive from lossy,
// untrusted links, so truncated, padded and unknown frames map to
// distinct errors (ErrTruncated, ErrLengthMismatch, UnknownTypeError).
//
// # Encoding
//
// Encode is total: it cannot fail for any message built through this
// package's constructors, because field width limits (client id length,
// topic name length, payload size) are enforced at construction time.
// The encoder always emits the canonical length form - the 3-octet
// extended header appears only for frames longer than 255 octets. The
// decoder is lenient and accepts non-canonical extended headers.
//
// # Concurrency
//
// The codec holds no state. Concurrent Decode/Encode calls on independent
// buffers need no synchronization.
package wire
