package wire

import "fmt"

// MsgType identifies an MQTT-SN message variant. The values are fixed
// 8-bit constants from the MQTT-SN 1.2 specification and must match the
// published table exactly for interoperability.
type MsgType uint8

const (
	TypeAdvertise     MsgType = 0x00
	TypeSearchGW      MsgType = 0x01
	TypeGWInfo        MsgType = 0x02
	TypeConnect       MsgType = 0x04
	TypeConnAck       MsgType = 0x05
	TypeWillTopicReq  MsgType = 0x06
	TypeWillTopic     MsgType = 0x07
	TypeWillMsgReq    MsgType = 0x08
	TypeWillMsg       MsgType = 0x09
	TypeRegister      MsgType = 0x0A
	TypeRegAck        MsgType = 0x0B
	TypePublish       MsgType = 0x0C
	TypePubAck        MsgType = 0x0D
	TypePubComp       MsgType = 0x0E
	TypePubRec        MsgType = 0x0F
	TypePubRel        MsgType = 0x10
	TypeSubscribe     MsgType = 0x12
	TypeSubAck        MsgType = 0x13
	TypeUnsubscribe   MsgType = 0x14
	TypeUnsubAck      MsgType = 0x15
	TypePingReq       MsgType = 0x16
	TypePingResp      MsgType = 0x17
	TypeDisconnect    MsgType = 0x18
	TypeWillTopicUpd  MsgType = 0x1A
	TypeWillTopicResp MsgType = 0x1B
	TypeWillMsgUpd    MsgType = 0x1C
	TypeWillMsgResp   MsgType = 0x1D

	// TypeForward is the forwarder-encapsulation envelope: a forwarder
	// wraps a client's frame together with the client's wireless node id.
	TypeForward MsgType = 0xFE
)

// String returns the message type name as written in the specification.
func (t MsgType) String() string {
	switch t {
	case TypeAdvertise:
		return "ADVERTISE"
	case TypeSearchGW:
		return "SEARCHGW"
	case TypeGWInfo:
		return "GWINFO"
	case TypeConnect:
		return "CONNECT"
	case TypeConnAck:
		return "CONNACK"
	case TypeWillTopicReq:
		return "WILLTOPICREQ"
	case TypeWillTopic:
		return "WILLTOPIC"
	case TypeWillMsgReq:
		return "WILLMSGREQ"
	case TypeWillMsg:
		return "WILLMSG"
	case TypeRegister:
		return "REGISTER"
	case TypeRegAck:
		return "REGACK"
	case TypePublish:
		return "PUBLISH"
	case TypePubAck:
		return "PUBACK"
	case TypePubComp:
		return "PUBCOMP"
	case TypePubRec:
		return "PUBREC"
	case TypePubRel:
		return "PUBREL"
	case TypeSubscribe:
		return "SUBSCRIBE"
	case TypeSubAck:
		return "SUBACK"
	case TypeUnsubscribe:
		return "UNSUBSCRIBE"
	case TypeUnsubAck:
		return "UNSUBACK"
	case TypePingReq:
		return "PINGREQ"
	case TypePingResp:
		return "PINGRESP"
	case TypeDisconnect:
		return "DISCONNECT"
	case TypeWillTopicUpd:
		return "WILLTOPICUPD"
	case TypeWillTopicResp:
		return "WILLTOPICRESP"
	case TypeWillMsgUpd:
		return "WILLMSGUPD"
	case TypeWillMsgResp:
		return "WILLMSGRESP"
	case TypeForward:
		return "FORWARD"
	default:
		return fmt.Sprintf("0x%02X", uint8(t))
	}
}

// QoS is a quality-of-service level. Besides the MQTT levels 0-2,
// MQTT-SN defines QoS -1: publish without a prior connection or topic
// registration, encoded in the flags octet as the bit pattern 0b11.
type QoS int8

const (
	QoSMinus1 QoS = -1
	QoS0      QoS = 0
	QoS1      QoS = 1
	QoS2      QoS = 2
)

// IsValid reports whether q is one of the four defined levels.
func (q QoS) IsValid() bool {
	return q >= QoSMinus1 && q <= QoS2
}

// String returns the QoS level as a decimal string.
func (q QoS) String() string {
	return fmt.Sprintf("%d", int8(q))
}

// ReturnCode is the status octet carried by CONNACK, REGACK, PUBACK,
// SUBACK, WILLTOPICRESP and WILLMSGRESP. Values outside the defined set
// are reserved; the codec preserves them verbatim through a round-trip.
type ReturnCode uint8

const (
	ReturnAccepted       ReturnCode = 0x00
	ReturnCongestion     ReturnCode = 0x01
	ReturnInvalidTopicID ReturnCode = 0x02
	ReturnNotSupported   ReturnCode = 0x03
)

// Accepted reports whether the code indicates success.
func (c ReturnCode) Accepted() bool {
	return c == ReturnAccepted
}

// String returns the return code name.
func (c ReturnCode) String() string {
	switch c {
	case ReturnAccepted:
		return "ACCEPTED"
	case ReturnCongestion:
		return "REJECTED_CONGESTION"
	case ReturnInvalidTopicID:
		return "REJECTED_INVALID_TOPIC_ID"
	case ReturnNotSupported:
		return "REJECTED_NOT_SUPPORTED"
	default:
		return fmt.Sprintf("RESERVED(0x%02X)", uint8(c))
	}
}

// TopicIDType is the two-bit tag that determines how the 16-bit topic
// field of a message is interpreted.
type TopicIDType uint8

const (
	// TopicIDNormal: a topic id assigned through REGISTER.
	TopicIDNormal TopicIDType = 0x00

	// TopicIDPredefined: a topic id agreed out of band.
	TopicIDPredefined TopicIDType = 0x01

	// TopicIDShort: two ASCII characters used directly as the topic name.
	TopicIDShort TopicIDType = 0x02

	// TopicIDReserved is unassigned by the specification.
	TopicIDReserved TopicIDType = 0x03
)

// String returns the topic id type name.
func (t TopicIDType) String() string {
	switch t {
	case TopicIDNormal:
		return "NORMAL"
	case TopicIDPredefined:
		return "PREDEFINED"
	case TopicIDShort:
		return "SHORT"
	default:
		return "RESERVED"
	}
}
