package wire

import "fmt"

// The will family shares two body shapes: the topic shape (optional flags
// octet followed by the topic name, where an empty body is a will-delete
// request) and the message shape (raw payload). WILLTOPIC/WILLMSG set the
// will during connection setup; the UPD/RESP variants update it later.

// WillTopicReq asks the client for its will topic. It has no fields.
type WillTopicReq struct{}

func (m *WillTopicReq) Type() MsgType { return TypeWillTopicReq }

func (m *WillTopicReq) bodyLen() int { return 0 }

func (m *WillTopicReq) appendBody(dst []byte) []byte { return dst }

func decodeWillTopicReq(body []byte) (*WillTopicReq, error) {
	if err := fixedBody(TypeWillTopicReq, body, 0); err != nil {
		return nil, err
	}
	return &WillTopicReq{}, nil
}

// WillTopic carries the will topic with its delivery flags. An empty
// Topic encodes as the two-octet delete-will frame, which has no flags
// octet on the wire; QoS and Retain are meaningless in that case.
type WillTopic struct {
	QoS    QoS
	Retain bool
	Topic  string
}

// NewWillTopic builds a WILLTOPIC. An empty topic requests will deletion;
// the delete frame carries no flags octet, so qos and retain are dropped.
func NewWillTopic(topic string, qos QoS, retain bool) (*WillTopic, error) {
	if err := validateWillTopic(topic, qos); err != nil {
		return nil, err
	}
	if topic == "" {
		return &WillTopic{}, nil
	}
	return &WillTopic{QoS: qos, Retain: retain, Topic: topic}, nil
}

func (m *WillTopic) Type() MsgType { return TypeWillTopic }

func (m *WillTopic) bodyLen() int { return willTopicBodyLen(m.Topic) }

func (m *WillTopic) appendBody(dst []byte) []byte {
	return appendWillTopicBody(dst, m.QoS, m.Retain, m.Topic)
}

func decodeWillTopic(body []byte) (*WillTopic, error) {
	qos, retain, topic := decodeWillTopicBody(body)
	return &WillTopic{QoS: qos, Retain: retain, Topic: topic}, nil
}

// WillMsgReq asks the client for its will message. It has no fields.
type WillMsgReq struct{}

func (m *WillMsgReq) Type() MsgType { return TypeWillMsgReq }

func (m *WillMsgReq) bodyLen() int { return 0 }

func (m *WillMsgReq) appendBody(dst []byte) []byte { return dst }

func decodeWillMsgReq(body []byte) (*WillMsgReq, error) {
	if err := fixedBody(TypeWillMsgReq, body, 0); err != nil {
		return nil, err
	}
	return &WillMsgReq{}, nil
}

// WillMsg carries the will message payload.
type WillMsg struct {
	Data []byte
}

// NewWillMsg builds a WILLMSG, validating the payload width.
func NewWillMsg(data []byte) (*WillMsg, error) {
	if len(data) > maxWillMsgLen {
		return nil, fmt.Errorf("%w: will message is %d octets, max %d", ErrFieldTooLarge, len(data), maxWillMsgLen)
	}
	return &WillMsg{Data: cloneBytes(data)}, nil
}

func (m *WillMsg) Type() MsgType { return TypeWillMsg }

func (m *WillMsg) bodyLen() int { return len(m.Data) }

func (m *WillMsg) appendBody(dst []byte) []byte {
	return append(dst, m.Data...)
}

func decodeWillMsg(body []byte) (*WillMsg, error) {
	return &WillMsg{Data: cloneBytes(body)}, nil
}

// WillTopicUpd updates the will topic of an established session. Shape
// and delete semantics match WillTopic.
type WillTopicUpd struct {
	QoS    QoS
	Retain bool
	Topic  string
}

// NewWillTopicUpd builds a WILLTOPICUPD. An empty topic deletes the will;
// the delete frame carries no flags octet, so qos and retain are dropped.
func NewWillTopicUpd(topic string, qos QoS, retain bool) (*WillTopicUpd, error) {
	if err := validateWillTopic(topic, qos); err != nil {
		return nil, err
	}
	if topic == "" {
		return &WillTopicUpd{}, nil
	}
	return &WillTopicUpd{QoS: qos, Retain: retain, Topic: topic}, nil
}

func (m *WillTopicUpd) Type() MsgType { return TypeWillTopicUpd }

func (m *WillTopicUpd) bodyLen() int { return willTopicBodyLen(m.Topic) }

func (m *WillTopicUpd) appendBody(dst []byte) []byte {
	return appendWillTopicBody(dst, m.QoS, m.Retain, m.Topic)
}

func decodeWillTopicUpd(body []byte) (*WillTopicUpd, error) {
	qos, retain, topic := decodeWillTopicBody(body)
	return &WillTopicUpd{QoS: qos, Retain: retain, Topic: topic}, nil
}

// WillMsgUpd updates the will message of an established session.
type WillMsgUpd struct {
	Data []byte
}

// NewWillMsgUpd builds a WILLMSGUPD, validating the payload width.
func NewWillMsgUpd(data []byte) (*WillMsgUpd, error) {
	if len(data) > maxWillMsgLen {
		return nil, fmt.Errorf("%w: will message is %d octets, max %d", ErrFieldTooLarge, len(data), maxWillMsgLen)
	}
	return &WillMsgUpd{Data: cloneBytes(data)}, nil
}

func (m *WillMsgUpd) Type() MsgType { return TypeWillMsgUpd }

func (m *WillMsgUpd) bodyLen() int { return len(m.Data) }

func (m *WillMsgUpd) appendBody(dst []byte) []byte {
	return append(dst, m.Data...)
}

func decodeWillMsgUpd(body []byte) (*WillMsgUpd, error) {
	return &WillMsgUpd{Data: cloneBytes(body)}, nil
}

// WillTopicResp acknowledges a WILLTOPICUPD.
type WillTopicResp struct {
	ReturnCode ReturnCode
}

func (m *WillTopicResp) Type() MsgType { return TypeWillTopicResp }

func (m *WillTopicResp) bodyLen() int { return 1 }

func (m *WillTopicResp) appendBody(dst []byte) []byte {
	return append(dst, byte(m.ReturnCode))
}

func decodeWillTopicResp(body []byte) (*WillTopicResp, error) {
	if err := fixedBody(TypeWillTopicResp, body, 1); err != nil {
		return nil, err
	}
	return &WillTopicResp{ReturnCode: ReturnCode(body[0])}, nil
}

// WillMsgResp acknowledges a WILLMSGUPD.
type WillMsgResp struct {
	ReturnCode ReturnCode
}

func (m *WillMsgResp) Type() MsgType { return TypeWillMsgResp }

func (m *WillMsgResp) bodyLen() int { return 1 }

func (m *WillMsgResp) appendBody(dst []byte) []byte {
	return append(dst, byte(m.ReturnCode))
}

func decodeWillMsgResp(body []byte) (*WillMsgResp, error) {
	if err := fixedBody(TypeWillMsgResp, body, 1); err != nil {
		return nil, err
	}
	return &WillMsgResp{ReturnCode: ReturnCode(body[0])}, nil
}

func validateWillTopic(topic string, qos QoS) error {
	if len(topic) > maxWillTopicLen {
		return fmt.Errorf("%w: will topic is %d octets, max %d", ErrFieldTooLarge, len(topic), maxWillTopicLen)
	}
	if !qos.IsValid() {
		return fmt.Errorf("%w: invalid QoS %d", ErrFieldTooLarge, qos)
	}
	return nil
}

func willTopicBodyLen(topic string) int {
	if topic == "" {
		return 0
	}
	return 1 + len(topic)
}

func appendWillTopicBody(dst []byte, qos QoS, retain bool, topic string) []byte {
	if topic == "" {
		return dst
	}
	flags := Flags{QoS: qos, Retain: retain}
	dst = append(dst, flags.Encode())
	return append(dst, topic...)
}

func decodeWillTopicBody(body []byte) (qos QoS, retain bool, topic string) {
	if len(body) == 0 {
		return QoS0, false, ""
	}
	flags := DecodeFlags(body[0])
	return flags.QoS, flags.Retain, string(body[1:])
}
