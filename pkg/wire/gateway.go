package wire

import (
	"encoding/binary"
	"fmt"
)

// Advertise is broadcast periodically by a gateway to announce its
// presence and the interval until the next announcement.
type Advertise struct {
	GatewayID uint8
	Duration  uint16 // seconds until the next ADVERTISE
}

func (m *Advertise) Type() MsgType { return TypeAdvertise }

func (m *Advertise) bodyLen() int { return 3 }

func (m *Advertise) appendBody(dst []byte) []byte {
	dst = append(dst, m.GatewayID)
	return binary.BigEndian.AppendUint16(dst, m.Duration)
}

func decodeAdvertise(body []byte) (*Advertise, error) {
	if err := fixedBody(TypeAdvertise, body, 3); err != nil {
		return nil, err
	}
	return &Advertise{
		GatewayID: body[0],
		Duration:  binary.BigEndian.Uint16(body[1:3]),
	}, nil
}

// SearchGW is broadcast by a client looking for a gateway. Radius is the
// broadcast radius in hops.
type SearchGW struct {
	Radius uint8
}

func (m *SearchGW) Type() MsgType { return TypeSearchGW }

func (m *SearchGW) bodyLen() int { return 1 }

func (m *SearchGW) appendBody(dst []byte) []byte {
	return append(dst, m.Radius)
}

func decodeSearchGW(body []byte) (*SearchGW, error) {
	if err := fixedBody(TypeSearchGW, body, 1); err != nil {
		return nil, err
	}
	return &SearchGW{Radius: body[0]}, nil
}

// GWInfo answers a SEARCHGW. GatewayAddress is present only when the
// answer is relayed by another client rather than sent by the gateway
// itself; empty means absent. Direction is not observable at the codec
// level, so both cases share one variant and the wire length
// disambiguates.
type GWInfo struct {
	GatewayID      uint8
	GatewayAddress []byte
}

// NewGWInfo builds a GWINFO. addr may be nil for the gateway's own reply.
func NewGWInfo(gatewayID uint8, addr []byte) (*GWInfo, error) {
	if len(addr) > maxGatewayAddrLen {
		return nil, fmt.Errorf("%w: gateway address is %d octets, max %d", ErrFieldTooLarge, len(addr), maxGatewayAddrLen)
	}
	return &GWInfo{GatewayID: gatewayID, GatewayAddress: cloneBytes(addr)}, nil
}

func (m *GWInfo) Type() MsgType { return TypeGWInfo }

func (m *GWInfo) bodyLen() int { return 1 + len(m.GatewayAddress) }

func (m *GWInfo) appendBody(dst []byte) []byte {
	dst = append(dst, m.GatewayID)
	return append(dst, m.GatewayAddress...)
}

func decodeGWInfo(body []byte) (*GWInfo, error) {
	if err := minBody(TypeGWInfo, body, 1); err != nil {
		return nil, err
	}
	return &GWInfo{
		GatewayID:      body[0],
		GatewayAddress: cloneBytes(body[1:]),
	}, nil
}
