package wire

import (
	"encoding/binary"
	"fmt"
)

const publishFixedLen = 5 // flags + topic id + msg id

// Publish carries application data. The topic id's interpretation travels
// with it in TopicID; the codec sets the matching TopicIDType flag bits on
// encode and reads them back on decode, so the pairing cannot be lost.
//
// MsgID is meaningless at QoS 0 and QoS -1 and should be left zero.
type Publish struct {
	Dup     bool
	QoS     QoS
	Retain  bool
	TopicID TopicID
	MsgID   uint16
	Data    []byte
}

// NewPublish builds a PUBLISH, validating QoS and payload width. Dup and
// MsgID are zero on a fresh message; retransmission logic sets them.
func NewPublish(topicID TopicID, data []byte, qos QoS, retain bool) (*Publish, error) {
	if !qos.IsValid() {
		return nil, fmt.Errorf("%w: invalid QoS %d", ErrFieldTooLarge, qos)
	}
	if len(data) > MaxPublishDataLen {
		return nil, fmt.Errorf("%w: payload is %d octets, max %d", ErrFieldTooLarge, len(data), MaxPublishDataLen)
	}
	return &Publish{
		QoS:     qos,
		Retain:  retain,
		TopicID: topicID,
		Data:    cloneBytes(data),
	}, nil
}

func (m *Publish) Type() MsgType { return TypePublish }

func (m *Publish) bodyLen() int { return publishFixedLen + len(m.Data) }

func (m *Publish) appendBody(dst []byte) []byte {
	flags := Flags{
		Dup:         m.Dup,
		QoS:         m.QoS,
		Retain:      m.Retain,
		TopicIDType: m.TopicID.Type(),
	}
	dst = append(dst, flags.Encode())
	dst = m.TopicID.appendTo(dst)
	dst = binary.BigEndian.AppendUint16(dst, m.MsgID)
	return append(dst, m.Data...)
}

func decodePublish(body []byte) (*Publish, error) {
	if err := minBody(TypePublish, body, publishFixedLen); err != nil {
		return nil, err
	}
	flags := DecodeFlags(body[0])
	return &Publish{
		Dup:     flags.Dup,
		QoS:     flags.QoS,
		Retain:  flags.Retain,
		TopicID: decodeTopicID(body[1:3], flags.TopicIDType),
		MsgID:   binary.BigEndian.Uint16(body[3:5]),
		Data:    cloneBytes(body[publishFixedLen:]),
	}, nil
}

// PubAck acknowledges a QoS 1 PUBLISH, or rejects a PUBLISH of any QoS
// (for example with REJECTED_INVALID_TOPIC_ID). TopicID echoes the raw
// 16-bit field of the PUBLISH being answered.
type PubAck struct {
	TopicID    uint16
	MsgID      uint16
	ReturnCode ReturnCode
}

func (m *PubAck) Type() MsgType { return TypePubAck }

func (m *PubAck) bodyLen() int { return 5 }

func (m *PubAck) appendBody(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint16(dst, m.TopicID)
	dst = binary.BigEndian.AppendUint16(dst, m.MsgID)
	return append(dst, byte(m.ReturnCode))
}

func decodePubAck(body []byte) (*PubAck, error) {
	if err := fixedBody(TypePubAck, body, 5); err != nil {
		return nil, err
	}
	return &PubAck{
		TopicID:    binary.BigEndian.Uint16(body[0:2]),
		MsgID:      binary.BigEndian.Uint16(body[2:4]),
		ReturnCode: ReturnCode(body[4]),
	}, nil
}

// PubRec, PubRel and PubComp form the QoS 2 handshake; each carries only
// the message id.

type PubRec struct {
	MsgID uint16
}

func (m *PubRec) Type() MsgType { return TypePubRec }

func (m *PubRec) bodyLen() int { return 2 }

func (m *PubRec) appendBody(dst []byte) []byte {
	return binary.BigEndian.AppendUint16(dst, m.MsgID)
}

func decodePubRec(body []byte) (*PubRec, error) {
	if err := fixedBody(TypePubRec, body, 2); err != nil {
		return nil, err
	}
	return &PubRec{MsgID: binary.BigEndian.Uint16(body)}, nil
}

type PubRel struct {
	MsgID uint16
}

func (m *PubRel) Type() MsgType { return TypePubRel }

func (m *PubRel) bodyLen() int { return 2 }

func (m *PubRel) appendBody(dst []byte) []byte {
	return binary.BigEndian.AppendUint16(dst, m.MsgID)
}

func decodePubRel(body []byte) (*PubRel, error) {
	if err := fixedBody(TypePubRel, body, 2); err != nil {
		return nil, err
	}
	return &PubRel{MsgID: binary.BigEndian.Uint16(body)}, nil
}

type PubComp struct {
	MsgID uint16
}

func (m *PubComp) Type() MsgType { return TypePubComp }

func (m *PubComp) bodyLen() int { return 2 }

func (m *PubComp) appendBody(dst []byte) []byte {
	return binary.BigEndian.AppendUint16(dst, m.MsgID)
}

func decodePubComp(body []byte) (*PubComp, error) {
	if err := fixedBody(TypePubComp, body, 2); err != nil {
		return nil, err
	}
	return &PubComp{MsgID: binary.BigEndian.Uint16(body)}, nil
}
