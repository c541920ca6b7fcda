package wire

import "fmt"

// forwardFixedLen is the envelope body: control octet only; the node id
// and the encapsulated frame follow.
const forwardFixedLen = 1

// maxNodeIDLen keeps the envelope within a single-octet length header
// (length + type + ctrl + node id <= 255), as required for forwarders.
const maxNodeIDLen = 252

// Forward is the forwarder-encapsulation envelope (type 0xFE). A
// transparent forwarder wraps each client frame together with the
// client's wireless node id so the gateway can tell clients apart behind
// one forwarder. The envelope's length field covers only the envelope;
// the encapsulated frame fills the rest of the datagram.
//
// Ctrl carries the broadcast radius in its low two bits; the remaining
// bits are reserved and preserved verbatim.
type Forward struct {
	Ctrl   uint8
	NodeID []byte // wireless node id, 1-252 octets
	Inner  Message
}

// NewForward wraps inner for the node identified by nodeID.
func NewForward(ctrl uint8, nodeID []byte, inner Message) (*Forward, error) {
	if len(nodeID) == 0 || len(nodeID) > maxNodeIDLen {
		return nil, fmt.Errorf("%w: wireless node id must be 1-%d octets, got %d", ErrFieldTooLarge, maxNodeIDLen, len(nodeID))
	}
	if inner == nil {
		return nil, fmt.Errorf("%w: missing encapsulated message", ErrFieldTooLarge)
	}
	return &Forward{Ctrl: ctrl, NodeID: cloneBytes(nodeID), Inner: inner}, nil
}

// Radius returns the broadcast radius from the control octet.
func (m *Forward) Radius() uint8 {
	return m.Ctrl & 0b11
}

func (m *Forward) Type() MsgType { return TypeForward }

// bodyLen covers the envelope only. Append writes the encapsulated frame
// after the envelope, outside the envelope's declared length, matching
// the wire layout.
func (m *Forward) bodyLen() int { return forwardFixedLen + len(m.NodeID) }

func (m *Forward) appendBody(dst []byte) []byte {
	dst = append(dst, m.Ctrl)
	dst = append(dst, m.NodeID...)
	return Append(dst, m.Inner)
}

// decodeForward parses the envelope at the start of frame and recursively
// decodes the encapsulated frame that follows it.
func decodeForward(frame []byte, headerLen, total int) (*Forward, error) {
	envelope := frame[headerLen+1 : total]
	if len(envelope) < forwardFixedLen+1 {
		return nil, fmt.Errorf("%s: %w", TypeForward, ErrTruncated)
	}
	if total == len(frame) {
		return nil, fmt.Errorf("%s: %w", TypeForward, ErrTruncated)
	}
	inner, err := Decode(frame[total:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", TypeForward, err)
	}
	return &Forward{
		Ctrl:   envelope[0],
		NodeID: cloneBytes(envelope[forwardFixedLen:]),
		Inner:  inner,
	}, nil
}
