package wire

import (
	"encoding/binary"
	"fmt"
)

const registerFixedLen = 4 // topic id + msg id

// Register binds a topic name to a 16-bit topic id. A gateway sends it
// with the id it assigned; a client sends it with TopicID 0 to request an
// assignment (answered by REGACK).
type Register struct {
	TopicID   uint16 // assigned id, or 0 when requesting one
	MsgID     uint16
	TopicName string
}

// NewRegister builds a REGISTER, validating the topic name width.
func NewRegister(topicID, msgID uint16, topicName string) (*Register, error) {
	if len(topicName) == 0 {
		return nil, fmt.Errorf("%w: topic name must not be empty", ErrFieldTooLarge)
	}
	if len(topicName) > maxRegisterTopicLen {
		return nil, fmt.Errorf("%w: topic name is %d octets, max %d", ErrFieldTooLarge, len(topicName), maxRegisterTopicLen)
	}
	return &Register{TopicID: topicID, MsgID: msgID, TopicName: topicName}, nil
}

func (m *Register) Type() MsgType { return TypeRegister }

func (m *Register) bodyLen() int { return registerFixedLen + len(m.TopicName) }

func (m *Register) appendBody(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint16(dst, m.TopicID)
	dst = binary.BigEndian.AppendUint16(dst, m.MsgID)
	return append(dst, m.TopicName...)
}

func decodeRegister(body []byte) (*Register, error) {
	if err := minBody(TypeRegister, body, registerFixedLen); err != nil {
		return nil, err
	}
	return &Register{
		TopicID:   binary.BigEndian.Uint16(body[0:2]),
		MsgID:     binary.BigEndian.Uint16(body[2:4]),
		TopicName: string(body[registerFixedLen:]),
	}, nil
}

// RegAck acknowledges a REGISTER and carries the agreed topic id.
type RegAck struct {
	TopicID    uint16
	MsgID      uint16
	ReturnCode ReturnCode
}

func (m *RegAck) Type() MsgType { return TypeRegAck }

func (m *RegAck) bodyLen() int { return 5 }

func (m *RegAck) appendBody(dst []byte) []byte {
	dst = binary.BigEndian.AppendUint16(dst, m.TopicID)
	dst = binary.BigEndian.AppendUint16(dst, m.MsgID)
	return append(dst, byte(m.ReturnCode))
}

func decodeRegAck(body []byte) (*RegAck, error) {
	if err := fixedBody(TypeRegAck, body, 5); err != nil {
		return nil, err
	}
	return &RegAck{
		TopicID:    binary.BigEndian.Uint16(body[0:2]),
		MsgID:      binary.BigEndian.Uint16(body[2:4]),
		ReturnCode: ReturnCode(body[4]),
	}, nil
}
