package wire

import "fmt"

// Protocol width limits enforced by the message constructors.
const (
	// MaxClientIDLen is the longest client id CONNECT and PINGREQ accept.
	MaxClientIDLen = 23

	// MaxPublishDataLen is the longest PUBLISH payload that fits an
	// extended frame alongside the fixed PUBLISH fields.
	MaxPublishDataLen = maxBodyLen - publishFixedLen

	maxRegisterTopicLen  = maxBodyLen - registerFixedLen
	maxSubscribeTopicLen = maxBodyLen - subscribeFixedLen
	maxWillTopicLen      = maxBodyLen - 1 // flags octet
	maxWillMsgLen        = maxBodyLen
	maxGatewayAddrLen    = maxBodyLen - 1 // gateway id octet
)

// Message is one MQTT-SN message of any type. The variant set is closed:
// every implementation lives in this package, and Decode returns exactly
// one of them per known message-type code.
type Message interface {
	// Type returns the message's wire discriminant.
	Type() MsgType

	// bodyLen returns the octet count of the type-specific fields, not
	// counting the length header and type octet.
	bodyLen() int

	// appendBody appends the type-specific fields to dst.
	appendBody(dst []byte) []byte
}

// Encode serializes msg into a freshly allocated, ready-to-send frame.
// It never fails for messages built through this package's constructors;
// width limits are checked at construction time, keeping the serialize
// path total.
func Encode(msg Message) []byte {
	return Append(nil, msg)
}

// Append serializes msg and appends the frame to dst.
func Append(dst []byte, msg Message) []byte {
	total, headerLen := frameLen(1 + msg.bodyLen())
	dst = appendFrameLength(dst, total, headerLen)
	dst = append(dst, byte(msg.Type()))
	return msg.appendBody(dst)
}

// Decode parses exactly one frame. The input must be one complete
// datagram or length-delimited frame; Decode does no stream reassembly.
//
// Errors: ErrTruncated when the buffer is shorter than the declared
// length, ErrLengthMismatch when it is longer (padded or corrupt),
// ErrInvalidLength when a field does not fit, and *UnknownTypeError for
// unassigned message-type codes.
func Decode(frame []byte) (Message, error) {
	total, headerLen, err := ReadFrameLength(frame)
	if err != nil {
		return nil, err
	}
	if total < headerLen+1 {
		return nil, fmt.Errorf("%w: declared length %d leaves no message type", ErrInvalidLength, total)
	}
	if total > len(frame) {
		return nil, fmt.Errorf("%w: declared length %d, have %d octets", ErrTruncated, total, len(frame))
	}

	msgType := MsgType(frame[headerLen])
	if msgType == TypeForward {
		// The envelope's length field covers only the envelope; the
		// encapsulated frame occupies the rest of the datagram.
		return decodeForward(frame, headerLen, total)
	}
	if total < len(frame) {
		return nil, fmt.Errorf("%w: declared length %d, have %d octets", ErrLengthMismatch, total, len(frame))
	}

	body := frame[headerLen+1 : total]
	switch msgType {
	case TypeAdvertise:
		return decodeAdvertise(body)
	case TypeSearchGW:
		return decodeSearchGW(body)
	case TypeGWInfo:
		return decodeGWInfo(body)
	case TypeConnect:
		return decodeConnect(body)
	case TypeConnAck:
		return decodeConnAck(body)
	case TypeWillTopicReq:
		return decodeWillTopicReq(body)
	case TypeWillTopic:
		return decodeWillTopic(body)
	case TypeWillMsgReq:
		return decodeWillMsgReq(body)
	case TypeWillMsg:
		return decodeWillMsg(body)
	case TypeRegister:
		return decodeRegister(body)
	case TypeRegAck:
		return decodeRegAck(body)
	case TypePublish:
		return decodePublish(body)
	case TypePubAck:
		return decodePubAck(body)
	case TypePubRec:
		return decodePubRec(body)
	case TypePubRel:
		return decodePubRel(body)
	case TypePubComp:
		return decodePubComp(body)
	case TypeSubscribe:
		return decodeSubscribe(body)
	case TypeSubAck:
		return decodeSubAck(body)
	case TypeUnsubscribe:
		return decodeUnsubscribe(body)
	case TypeUnsubAck:
		return decodeUnsubAck(body)
	case TypePingReq:
		return decodePingReq(body)
	case TypePingResp:
		return decodePingResp(body)
	case TypeDisconnect:
		return decodeDisconnect(body)
	case TypeWillTopicUpd:
		return decodeWillTopicUpd(body)
	case TypeWillTopicResp:
		return decodeWillTopicResp(body)
	case TypeWillMsgUpd:
		return decodeWillMsgUpd(body)
	case TypeWillMsgResp:
		return decodeWillMsgResp(body)
	default:
		return nil, &UnknownTypeError{Code: uint8(msgType)}
	}
}

// fixedBody checks a body that must be exactly n octets.
func fixedBody(t MsgType, body []byte, n int) error {
	if len(body) < n {
		return fmt.Errorf("%s: %w", t, ErrTruncated)
	}
	if len(body) > n {
		return fmt.Errorf("%s: %w", t, ErrInvalidLength)
	}
	return nil
}

// minBody checks a body that must be at least n octets, with the
// remainder consumed by a variable-length field.
func minBody(t MsgType, body []byte, n int) error {
	if len(body) < n {
		return fmt.Errorf("%s: %w", t, ErrTruncated)
	}
	return nil
}

// cloneBytes copies a variable-length field out of the caller's buffer so
// the decoded message owns its storage. nil stays nil.
func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
