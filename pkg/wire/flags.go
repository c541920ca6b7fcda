package wire

// Flags octet bit layout, shared structurally by CONNECT, PUBLISH,
// SUBSCRIBE, UNSUBSCRIBE, SUBACK and the WILLTOPIC family.
const (
	flagDup          = 1 << 7
	flagRetain       = 1 << 4
	flagWill         = 1 << 3
	flagCleanSession = 1 << 2

	qosShift = 5
	qosMask  = 0b11 << qosShift

	// qosBitsMinus1 is the QoS field bit pattern for QoS -1. It is not
	// the unsigned value 3: the field is a four-way tag, not a counter.
	qosBitsMinus1 = 0b11

	topicIDTypeMask = 0b11
)

// Flags is the unpacked form of the MQTT-SN flags octet. Each message
// type uses a subset of the fields; unused bits are zero on encode and
// ignored (not rejected) on decode.
type Flags struct {
	Dup          bool
	QoS          QoS
	Retain       bool
	Will         bool
	CleanSession bool
	TopicIDType  TopicIDType
}

// DecodeFlags unpacks a flags octet. Every octet value is a valid flags
// byte; semantic restrictions (such as QoS -1 being meaningful only on
// PUBLISH) are the caller's concern, since the wire format itself places
// no such limits.
func DecodeFlags(b byte) Flags {
	f := Flags{
		Dup:          b&flagDup != 0,
		Retain:       b&flagRetain != 0,
		Will:         b&flagWill != 0,
		CleanSession: b&flagCleanSession != 0,
		TopicIDType:  TopicIDType(b & topicIDTypeMask),
	}
	switch bits := (b & qosMask) >> qosShift; bits {
	case qosBitsMinus1:
		f.QoS = QoSMinus1
	default:
		f.QoS = QoS(bits)
	}
	return f
}

// Encode packs the flags into a single octet. QoS values outside the
// defined set are masked to their low two bits.
func (f Flags) Encode() byte {
	var b byte
	if f.Dup {
		b |= flagDup
	}
	if f.Retain {
		b |= flagRetain
	}
	if f.Will {
		b |= flagWill
	}
	if f.CleanSession {
		b |= flagCleanSession
	}
	if f.QoS == QoSMinus1 {
		b |= qosBitsMinus1 << qosShift
	} else {
		b |= (byte(f.QoS) & 0b11) << qosShift
	}
	b |= byte(f.TopicIDType) & topicIDTypeMask
	return b
}
