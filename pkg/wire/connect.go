package wire

import (
	"encoding/binary"
	"fmt"
)

// protocolID is the fixed protocol identifier every CONNECT carries.
const protocolID = 0x01

const connectFixedLen = 4 // flags + protocol id + duration

// Connect opens a session with a gateway.
type Connect struct {
	Will         bool // the client wants to set a will via WILLTOPIC/WILLMSG
	CleanSession bool
	Duration     uint16 // keep-alive duration in seconds
	ClientID     string // 1-23 octets
}

// NewConnect builds a CONNECT, validating the client id width.
func NewConnect(clientID string, duration uint16, cleanSession, will bool) (*Connect, error) {
	if len(clientID) == 0 || len(clientID) > MaxClientIDLen {
		return nil, fmt.Errorf("%w: client id must be 1-%d octets, got %d", ErrFieldTooLarge, MaxClientIDLen, len(clientID))
	}
	return &Connect{
		Will:         will,
		CleanSession: cleanSession,
		Duration:     duration,
		ClientID:     clientID,
	}, nil
}

func (m *Connect) Type() MsgType { return TypeConnect }

func (m *Connect) bodyLen() int { return connectFixedLen + len(m.ClientID) }

func (m *Connect) appendBody(dst []byte) []byte {
	flags := Flags{Will: m.Will, CleanSession: m.CleanSession}
	dst = append(dst, flags.Encode(), protocolID)
	dst = binary.BigEndian.AppendUint16(dst, m.Duration)
	return append(dst, m.ClientID...)
}

func decodeConnect(body []byte) (*Connect, error) {
	if err := minBody(TypeConnect, body, connectFixedLen); err != nil {
		return nil, err
	}
	if body[1] != protocolID {
		return nil, fmt.Errorf("%w: 0x%02X", ErrProtocolID, body[1])
	}
	flags := DecodeFlags(body[0])
	return &Connect{
		Will:         flags.Will,
		CleanSession: flags.CleanSession,
		Duration:     binary.BigEndian.Uint16(body[2:4]),
		ClientID:     string(body[connectFixedLen:]),
	}, nil
}

// ConnAck answers a CONNECT.
type ConnAck struct {
	ReturnCode ReturnCode
}

func (m *ConnAck) Type() MsgType { return TypeConnAck }

func (m *ConnAck) bodyLen() int { return 1 }

func (m *ConnAck) appendBody(dst []byte) []byte {
	return append(dst, byte(m.ReturnCode))
}

func decodeConnAck(body []byte) (*ConnAck, error) {
	if err := fixedBody(TypeConnAck, body, 1); err != nil {
		return nil, err
	}
	return &ConnAck{ReturnCode: ReturnCode(body[0])}, nil
}

// PingReq is a keep-alive probe. ClientID is present only when a sleeping
// client pings its gateway to collect buffered messages; empty means
// absent.
type PingReq struct {
	ClientID string
}

// NewPingReq builds a PINGREQ. clientID may be empty for a plain ping.
func NewPingReq(clientID string) (*PingReq, error) {
	if len(clientID) > MaxClientIDLen {
		return nil, fmt.Errorf("%w: client id is %d octets, max %d", ErrFieldTooLarge, len(clientID), MaxClientIDLen)
	}
	return &PingReq{ClientID: clientID}, nil
}

func (m *PingReq) Type() MsgType { return TypePingReq }

func (m *PingReq) bodyLen() int { return len(m.ClientID) }

func (m *PingReq) appendBody(dst []byte) []byte {
	return append(dst, m.ClientID...)
}

func decodePingReq(body []byte) (*PingReq, error) {
	return &PingReq{ClientID: string(body)}, nil
}

// PingResp answers a PINGREQ. It has no fields.
type PingResp struct{}

func (m *PingResp) Type() MsgType { return TypePingResp }

func (m *PingResp) bodyLen() int { return 0 }

func (m *PingResp) appendBody(dst []byte) []byte { return dst }

func decodePingResp(body []byte) (*PingResp, error) {
	if err := fixedBody(TypePingResp, body, 0); err != nil {
		return nil, err
	}
	return &PingResp{}, nil
}

// Disconnect closes a session. A present Duration turns the disconnect
// into a sleep request for that many seconds; HasDuration distinguishes
// "sleep for zero seconds" from a plain disconnect.
type Disconnect struct {
	Duration    uint16
	HasDuration bool
}

func (m *Disconnect) Type() MsgType { return TypeDisconnect }

func (m *Disconnect) bodyLen() int {
	if m.HasDuration {
		return 2
	}
	return 0
}

func (m *Disconnect) appendBody(dst []byte) []byte {
	if m.HasDuration {
		dst = binary.BigEndian.AppendUint16(dst, m.Duration)
	}
	return dst
}

func decodeDisconnect(body []byte) (*Disconnect, error) {
	switch len(body) {
	case 0:
		return &Disconnect{}, nil
	case 2:
		return &Disconnect{
			Duration:    binary.BigEndian.Uint16(body),
			HasDuration: true,
		}, nil
	default:
		return nil, fmt.Errorf("%s: %w", TypeDisconnect, ErrInvalidLength)
	}
}
