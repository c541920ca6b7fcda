package wire

import (
	"encoding/binary"
	"fmt"
)

const subscribeFixedLen = 3 // flags + msg id

// Subscribe requests delivery for a topic filter. The filter's form
// (name, predefined id or short name) is carried by the TopicIDType bits
// of the flags octet.
type Subscribe struct {
	Dup   bool
	QoS   QoS // requested maximum QoS
	MsgID uint16
	Topic TopicFilter
}

// NewSubscribe builds a SUBSCRIBE, validating the requested QoS.
func NewSubscribe(topic TopicFilter, msgID uint16, qos QoS) (*Subscribe, error) {
	if !qos.IsValid() || qos == QoSMinus1 {
		return nil, fmt.Errorf("%w: invalid subscription QoS %d", ErrFieldTooLarge, qos)
	}
	return &Subscribe{QoS: qos, MsgID: msgID, Topic: topic}, nil
}

func (m *Subscribe) Type() MsgType { return TypeSubscribe }

func (m *Subscribe) bodyLen() int { return subscribeFixedLen + m.Topic.wireLen() }

func (m *Subscribe) appendBody(dst []byte) []byte {
	flags := Flags{Dup: m.Dup, QoS: m.QoS, TopicIDType: m.Topic.IDType()}
	dst = append(dst, flags.Encode())
	dst = binary.BigEndian.AppendUint16(dst, m.MsgID)
	return m.Topic.appendTo(dst)
}

func decodeSubscribe(body []byte) (*Subscribe, error) {
	if err := minBody(TypeSubscribe, body, subscribeFixedLen); err != nil {
		return nil, err
	}
	flags := DecodeFlags(body[0])
	topic, err := decodeTopicFilter(body[subscribeFixedLen:], flags.TopicIDType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", TypeSubscribe, err)
	}
	return &Subscribe{
		Dup:   flags.Dup,
		QoS:   flags.QoS,
		MsgID: binary.BigEndian.Uint16(body[1:3]),
		Topic: topic,
	}, nil
}

// SubAck answers a SUBSCRIBE. QoS is the granted level; TopicID is the
// id assigned to a name filter (0 when none was assigned).
type SubAck struct {
	QoS        QoS
	TopicID    uint16
	MsgID      uint16
	ReturnCode ReturnCode
}

func (m *SubAck) Type() MsgType { return TypeSubAck }

func (m *SubAck) bodyLen() int { return 6 }

func (m *SubAck) appendBody(dst []byte) []byte {
	flags := Flags{QoS: m.QoS}
	dst = append(dst, flags.Encode())
	dst = binary.BigEndian.AppendUint16(dst, m.TopicID)
	dst = binary.BigEndian.AppendUint16(dst, m.MsgID)
	return append(dst, byte(m.ReturnCode))
}

func decodeSubAck(body []byte) (*SubAck, error) {
	if err := fixedBody(TypeSubAck, body, 6); err != nil {
		return nil, err
	}
	return &SubAck{
		QoS:        DecodeFlags(body[0]).QoS,
		TopicID:    binary.BigEndian.Uint16(body[1:3]),
		MsgID:      binary.BigEndian.Uint16(body[3:5]),
		ReturnCode: ReturnCode(body[5]),
	}, nil
}

// Unsubscribe cancels a subscription. Only the TopicIDType bits of the
// flags octet are meaningful; the rest are zero on encode and ignored on
// decode.
type Unsubscribe struct {
	MsgID uint16
	Topic TopicFilter
}

func (m *Unsubscribe) Type() MsgType { return TypeUnsubscribe }

func (m *Unsubscribe) bodyLen() int { return subscribeFixedLen + m.Topic.wireLen() }

func (m *Unsubscribe) appendBody(dst []byte) []byte {
	flags := Flags{TopicIDType: m.Topic.IDType()}
	dst = append(dst, flags.Encode())
	dst = binary.BigEndian.AppendUint16(dst, m.MsgID)
	return m.Topic.appendTo(dst)
}

func decodeUnsubscribe(body []byte) (*Unsubscribe, error) {
	if err := minBody(TypeUnsubscribe, body, subscribeFixedLen); err != nil {
		return nil, err
	}
	flags := DecodeFlags(body[0])
	topic, err := decodeTopicFilter(body[subscribeFixedLen:], flags.TopicIDType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", TypeUnsubscribe, err)
	}
	return &Unsubscribe{
		MsgID: binary.BigEndian.Uint16(body[1:3]),
		Topic: topic,
	}, nil
}

// UnsubAck answers an UNSUBSCRIBE.
type UnsubAck struct {
	MsgID uint16
}

func (m *UnsubAck) Type() MsgType { return TypeUnsubAck }

func (m *UnsubAck) bodyLen() int { return 2 }

func (m *UnsubAck) appendBody(dst []byte) []byte {
	return binary.BigEndian.AppendUint16(dst, m.MsgID)
}

func decodeUnsubAck(body []byte) (*UnsubAck, error) {
	if err := fixedBody(TypeUnsubAck, body, 2); err != nil {
		return nil, err
	}
	return &UnsubAck{MsgID: binary.BigEndian.Uint16(body)}, nil
}
