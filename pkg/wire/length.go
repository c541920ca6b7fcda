package wire

import "encoding/binary"

// Length framing constants.
const (
	// lengthEscape introduces the 3-octet extended length header. A first
	// octet of 0x01 can never be a plain length because the length field
	// itself already occupies one octet.
	lengthEscape = 0x01

	// MinFrameLen is the smallest well-formed frame: length + type octet.
	MinFrameLen = 2

	// MaxShortFrameLen is the largest frame representable with a
	// single-octet length header.
	MaxShortFrameLen = 0xFF

	// MaxFrameLen is the largest frame representable at all, using the
	// extended header.
	MaxFrameLen = 0xFFFF

	extHeaderLen = 3

	// maxBodyLen is the largest per-message body (octets after the
	// message-type octet) that still fits an extended frame.
	maxBodyLen = MaxFrameLen - extHeaderLen - 1
)

// ReadFrameLength decodes the length header at the start of frame and
// returns the declared total frame length (including the header itself)
// and the header width (1 or 3). It fails with ErrTruncated when the
// header itself is incomplete and does not check the declared length
// against len(frame); Decode does that.
//
// Non-canonical headers (extended form for a total <= 255) are accepted:
// the receiver is lenient, only the encoder is required to be canonical.
func ReadFrameLength(frame []byte) (total, headerLen int, err error) {
	if len(frame) == 0 {
		return 0, 0, ErrTruncated
	}
	if frame[0] != lengthEscape {
		return int(frame[0]), 1, nil
	}
	if len(frame) < extHeaderLen {
		return 0, 0, ErrTruncated
	}
	return int(binary.BigEndian.Uint16(frame[1:3])), extHeaderLen, nil
}

// frameLen computes the total frame length and header width for a message
// whose payload (type octet plus body) is payloadLen octets. The 1-octet
// form is chosen whenever it fits; the extended form is never emitted for
// totals that fit one octet.
func frameLen(payloadLen int) (total, headerLen int) {
	if 1+payloadLen <= MaxShortFrameLen {
		return 1 + payloadLen, 1
	}
	return extHeaderLen + payloadLen, extHeaderLen
}

// appendFrameLength appends the length header for the given total.
func appendFrameLength(dst []byte, total, headerLen int) []byte {
	if headerLen == 1 {
		return append(dst, byte(total))
	}
	dst = append(dst, lengthEscape)
	return binary.BigEndian.AppendUint16(dst, uint16(total))
}
