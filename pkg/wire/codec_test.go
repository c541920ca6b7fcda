package wire

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

// mustShortTopicID and friends keep the test tables readable.
func mustShortTopicID(t *testing.T, name string) TopicID {
	t.Helper()
	id, err := ShortTopicID(name)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func mustNameFilter(t *testing.T, name string) TopicFilter {
	t.Helper()
	f, err := NameFilter(name)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func mustShortFilter(t *testing.T, name string) TopicFilter {
	t.Helper()
	f, err := ShortFilter(name)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestMessageRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
	}{
		{"advertise", &Advertise{GatewayID: 3, Duration: 900}},
		{"searchgw", &SearchGW{Radius: 5}},
		{"gwinfo from gateway", &GWInfo{GatewayID: 3}},
		{"gwinfo relayed by client", &GWInfo{GatewayID: 3, GatewayAddress: []byte{192, 0, 2, 1}}},
		{"connect", &Connect{CleanSession: true, Duration: 300, ClientID: "sensor-01"}},
		{"connect with will", &Connect{Will: true, CleanSession: true, Duration: 60, ClientID: "n"}},
		{"connack", &ConnAck{ReturnCode: ReturnAccepted}},
		{"connack rejected", &ConnAck{ReturnCode: ReturnCongestion}},
		{"connack reserved code", &ConnAck{ReturnCode: ReturnCode(0x42)}},
		{"willtopicreq", &WillTopicReq{}},
		{"willtopic", &WillTopic{QoS: QoS1, Retain: true, Topic: "state/last"}},
		{"willtopic delete", &WillTopic{}},
		{"willmsgreq", &WillMsgReq{}},
		{"willmsg", &WillMsg{Data: []byte("gone")}},
		{"register", &Register{TopicID: 0x1234, MsgID: 0x5678, TopicName: "test"}},
		{"register requesting id", &Register{TopicID: 0, MsgID: 2, TopicName: "sensors/1/temp"}},
		{"regack", &RegAck{TopicID: 0x1234, MsgID: 0x5678, ReturnCode: ReturnCongestion}},
		{"publish qos0 normal id", &Publish{QoS: QoS0, TopicID: NormalTopicID(0x1234), MsgID: 0, Data: []byte("test")}},
		{"publish qos1", &Publish{QoS: QoS1, TopicID: NormalTopicID(7), MsgID: 10, Data: []byte("on")}},
		{"publish qos2 retained dup", &Publish{Dup: true, QoS: QoS2, Retain: true, TopicID: PredefinedTopicID(9), MsgID: 11, Data: []byte{0xDE, 0xAD}}},
		{"publish short topic", &Publish{QoS: QoS0, TopicID: mustShortTopicID(t, "ab"), Data: []byte("x")}},
		{"publish empty payload", &Publish{QoS: QoS0, TopicID: PredefinedTopicID(1)}},
		{"puback", &PubAck{TopicID: 5, MsgID: 0x0102, ReturnCode: ReturnInvalidTopicID}},
		{"pubrec", &PubRec{MsgID: 7}},
		{"pubrel", &PubRel{MsgID: 7}},
		{"pubcomp", &PubComp{MsgID: 7}},
		{"subscribe name", &Subscribe{QoS: QoS1, MsgID: 1, Topic: mustNameFilter(t, "sensors/+/temp")}},
		{"subscribe predefined", &Subscribe{QoS: QoS0, MsgID: 2, Topic: PredefinedFilter(42)}},
		{"subscribe short dup", &Subscribe{Dup: true, QoS: QoS2, MsgID: 3, Topic: mustShortFilter(t, "ab")}},
		{"suback", &SubAck{QoS: QoS1, TopicID: 11, MsgID: 1, ReturnCode: ReturnAccepted}},
		{"unsubscribe", &Unsubscribe{MsgID: 3, Topic: PredefinedFilter(5)}},
		{"unsuback", &UnsubAck{MsgID: 3}},
		{"pingreq", &PingReq{}},
		{"pingreq from sleeping client", &PingReq{ClientID: "sensor-01"}},
		{"pingresp", &PingResp{}},
		{"disconnect", &Disconnect{}},
		{"disconnect sleep", &Disconnect{Duration: 60, HasDuration: true}},
		{"disconnect zero sleep", &Disconnect{Duration: 0, HasDuration: true}},
		{"willtopicupd", &WillTopicUpd{QoS: QoS2, Topic: "state/last"}},
		{"willtopicupd delete", &WillTopicUpd{}},
		{"willtopicresp", &WillTopicResp{ReturnCode: ReturnAccepted}},
		{"willmsgupd", &WillMsgUpd{Data: []byte("bye")}},
		{"willmsgresp", &WillMsgResp{ReturnCode: ReturnNotSupported}},
		{"forward", &Forward{Ctrl: 1, NodeID: []byte{0xAB, 0xCD}, Inner: &PingResp{}}},
		{"forward publish", &Forward{NodeID: []byte("node-1"), Inner: &Publish{QoS: QoSMinus1, TopicID: PredefinedTopicID(5), Data: []byte("42")}}},
		{"publish needing extended frame", &Publish{QoS: QoS1, TopicID: NormalTopicID(2), MsgID: 9, Data: bytes.Repeat([]byte{0x55}, 300)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := Encode(tt.msg)

			total, _, err := ReadFrameLength(frame)
			if err != nil {
				t.Fatalf("ReadFrameLength: %v", err)
			}
			if tt.msg.Type() != TypeForward && total != len(frame) {
				t.Errorf("length field %d, frame is %d octets", total, len(frame))
			}

			decoded, err := Decode(frame)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !reflect.DeepEqual(decoded, tt.msg) {
				t.Errorf("round trip mismatch:\n got  %#v\n want %#v", decoded, tt.msg)
			}

			// Re-encoding the decoded message reproduces the frame.
			if reencoded := Encode(decoded); !bytes.Equal(reencoded, frame) {
				t.Errorf("re-encode mismatch:\n got  % X\n want % X", reencoded, frame)
			}
		})
	}
}

func TestEncodeConnectExactBytes(t *testing.T) {
	msg, err := NewConnect("sensor-01", 300, true, false)
	if err != nil {
		t.Fatal(err)
	}
	want := append([]byte{0x0F, 0x04, 0x04, 0x01, 0x01, 0x2C}, "sensor-01"...)
	if got := Encode(msg); !bytes.Equal(got, want) {
		t.Errorf("CONNECT frame:\n got  % X\n want % X", got, want)
	}
}

func TestEncodeExactBytes(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want []byte
	}{
		{
			name: "searchgw",
			msg:  &SearchGW{Radius: 5},
			want: []byte{0x03, 0x01, 0x05},
		},
		{
			name: "gwinfo",
			msg:  &GWInfo{GatewayID: 0x12},
			want: []byte{0x03, 0x02, 0x12},
		},
		{
			name: "advertise",
			msg:  &Advertise{GatewayID: 1, Duration: 900},
			want: []byte{0x05, 0x00, 0x01, 0x03, 0x84},
		},
		{
			name: "register",
			msg:  &Register{TopicID: 0x1234, MsgID: 0x5678, TopicName: "test"},
			want: append([]byte{0x0A, 0x0A, 0x12, 0x34, 0x56, 0x78}, "test"...),
		},
		{
			name: "regack",
			msg:  &RegAck{TopicID: 0x1234, MsgID: 0x5678, ReturnCode: ReturnCongestion},
			want: []byte{0x07, 0x0B, 0x12, 0x34, 0x56, 0x78, 0x01},
		},
		{
			name: "publish qos -1 predefined",
			msg:  &Publish{QoS: QoSMinus1, TopicID: PredefinedTopicID(5), Data: []byte("42")},
			want: []byte{0x09, 0x0C, 0x61, 0x00, 0x05, 0x00, 0x00, '4', '2'},
		},
		{
			name: "willtopic",
			msg:  &WillTopic{QoS: QoS1, Retain: true, Topic: "a/b"},
			want: []byte{0x06, 0x07, 0x30, 'a', '/', 'b'},
		},
		{
			name: "willtopic delete",
			msg:  &WillTopic{},
			want: []byte{0x02, 0x07},
		},
		{
			name: "subscribe short name",
			msg:  &Subscribe{MsgID: 2, Topic: mustShortFilter(t, "ab")},
			want: []byte{0x07, 0x12, 0x02, 0x00, 0x02, 'a', 'b'},
		},
		{
			name: "unsubscribe predefined",
			msg:  &Unsubscribe{MsgID: 3, Topic: PredefinedFilter(5)},
			want: []byte{0x07, 0x14, 0x01, 0x00, 0x03, 0x00, 0x05},
		},
		{
			name: "pingresp",
			msg:  &PingResp{},
			want: []byte{0x02, 0x17},
		},
		{
			name: "disconnect sleep",
			msg:  &Disconnect{Duration: 60, HasDuration: true},
			want: []byte{0x04, 0x18, 0x00, 0x3C},
		},
		{
			name: "forward wrapping pingresp",
			msg:  &Forward{NodeID: []byte("test-node"), Inner: &PingResp{}},
			want: append(append([]byte{0x0C, 0xFE, 0x00}, "test-node"...), 0x02, 0x17),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.msg); !bytes.Equal(got, tt.want) {
				t.Errorf("frame:\n got  % X\n want % X", got, tt.want)
			}
		})
	}
}

func TestDecodePublishQoSMinus1(t *testing.T) {
	frame := []byte{0x09, 0x0C, 0x61, 0x00, 0x05, 0x00, 0x00, '4', '2'}
	msg, err := Decode(frame)
	if err != nil {
		t.Fatal(err)
	}
	pub, ok := msg.(*Publish)
	if !ok {
		t.Fatalf("decoded %T, want *Publish", msg)
	}
	if pub.QoS != QoSMinus1 {
		t.Errorf("QoS = %d, want -1 exactly", pub.QoS)
	}
	if pub.TopicID.Type() != TopicIDPredefined || pub.TopicID.Value() != 5 {
		t.Errorf("topic id = %v", pub.TopicID)
	}
	if string(pub.Data) != "42" {
		t.Errorf("payload = %q", pub.Data)
	}
}

func TestDecodeTruncatedPrefixes(t *testing.T) {
	// Every proper non-empty prefix of a valid frame must decode to
	// ErrTruncated: never a panic, never a spuriously valid message.
	msgs := []Message{
		&Connect{CleanSession: true, Duration: 300, ClientID: "sensor-01"},
		&Publish{QoS: QoS1, TopicID: NormalTopicID(7), MsgID: 10, Data: []byte("on")},
		&Publish{QoS: QoS0, TopicID: NormalTopicID(7), Data: bytes.Repeat([]byte{0x55}, 300)},
		&SubAck{QoS: QoS1, TopicID: 11, MsgID: 1},
		&Forward{NodeID: []byte("node"), Inner: &PingResp{}},
		&PingResp{},
	}
	for _, msg := range msgs {
		frame := Encode(msg)
		for i := 1; i < len(frame); i++ {
			got, err := Decode(frame[:i])
			if !errors.Is(err, ErrTruncated) {
				t.Errorf("%s prefix of %d/%d octets: message %v, error %v, want ErrTruncated",
					msg.Type(), i, len(frame), got, err)
			}
		}
	}
}

func TestDecodeEmptyFrame(t *testing.T) {
	if _, err := Decode(nil); !errors.Is(err, ErrTruncated) {
		t.Errorf("error = %v, want ErrTruncated", err)
	}
}

func TestDecodeTrailingGarbage(t *testing.T) {
	frame := Encode(&ConnAck{ReturnCode: ReturnAccepted})
	frame = append(frame, 0x00)
	if _, err := Decode(frame); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("error = %v, want ErrLengthMismatch", err)
	}

	// The same applies behind a forwarder envelope.
	fwd := Encode(&Forward{NodeID: []byte("n"), Inner: &PingResp{}})
	fwd = append(fwd, 0xFF)
	if _, err := Decode(fwd); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("forward error = %v, want ErrLengthMismatch", err)
	}
}

func TestDecodeUnknownMessageType(t *testing.T) {
	for _, code := range []uint8{0x03, 0x11, 0x19, 0xF0} {
		frame := []byte{0x03, code, 0x00}
		_, err := Decode(frame)
		var unknown *UnknownTypeError
		if !errors.As(err, &unknown) {
			t.Fatalf("code 0x%02X: error = %v, want *UnknownTypeError", code, err)
		}
		if unknown.Code != code {
			t.Errorf("reported code 0x%02X, want 0x%02X", unknown.Code, code)
		}
	}
}

func TestDecodeNonCanonicalLength(t *testing.T) {
	// A CONNACK framed with the extended header it does not need. The
	// lenient receiver accepts it; re-encoding is canonical again.
	frame := []byte{0x01, 0x00, 0x05, 0x05, 0x00}
	msg, err := Decode(frame)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := msg.(*ConnAck); !ok {
		t.Fatalf("decoded %T, want *ConnAck", msg)
	}
	if got := Encode(msg); !bytes.Equal(got, []byte{0x03, 0x05, 0x00}) {
		t.Errorf("re-encode = % X, want canonical 3-octet frame", got)
	}
}

func TestDecodeBadProtocolID(t *testing.T) {
	frame := Encode(&Connect{Duration: 30, ClientID: "x"})
	frame[3] = 0x02 // protocol id octet
	if _, err := Decode(frame); !errors.Is(err, ErrProtocolID) {
		t.Errorf("error = %v, want ErrProtocolID", err)
	}
}

func TestDecodeInvalidBodies(t *testing.T) {
	tests := []struct {
		name    string
		frame   []byte
		wantErr error
	}{
		{
			name:    "length field smaller than header",
			frame:   []byte{0x00, 0x00},
			wantErr: ErrInvalidLength,
		},
		{
			name:    "connack with extra octet",
			frame:   []byte{0x04, 0x05, 0x00, 0x00},
			wantErr: ErrInvalidLength,
		},
		{
			name:    "disconnect with one duration octet",
			frame:   []byte{0x03, 0x18, 0x00},
			wantErr: ErrInvalidLength,
		},
		{
			name:    "publish shorter than fixed fields",
			frame:   []byte{0x04, 0x0C, 0x00, 0x00},
			wantErr: ErrTruncated,
		},
		{
			name:    "subscribe with short-name width mismatch",
			frame:   []byte{0x06, 0x12, 0x02, 0x00, 0x01, 'a'},
			wantErr: ErrInvalidLength,
		},
		{
			name:    "forward envelope without encapsulated frame",
			frame:   append([]byte{0x06, 0xFE, 0x00}, "abc"...),
			wantErr: ErrTruncated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.frame); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConstructorWidthLimits(t *testing.T) {
	longClientID := string(bytes.Repeat([]byte{'c'}, MaxClientIDLen+1))

	tests := []struct {
		name  string
		build func() (Message, error)
	}{
		{"connect empty client id", func() (Message, error) { return NewConnect("", 30, true, false) }},
		{"connect long client id", func() (Message, error) { return NewConnect(longClientID, 30, true, false) }},
		{"pingreq long client id", func() (Message, error) { return NewPingReq(longClientID) }},
		{"publish oversized payload", func() (Message, error) {
			return NewPublish(PredefinedTopicID(1), make([]byte, MaxPublishDataLen+1), QoS0, false)
		}},
		{"publish invalid qos", func() (Message, error) {
			return NewPublish(PredefinedTopicID(1), nil, QoS(3), false)
		}},
		{"subscribe qos -1", func() (Message, error) {
			return NewSubscribe(PredefinedFilter(1), 1, QoSMinus1)
		}},
		{"register empty topic", func() (Message, error) { return NewRegister(0, 1, "") }},
		{"forward empty node id", func() (Message, error) { return NewForward(0, nil, &PingResp{}) }},
		{"forward long node id", func() (Message, error) {
			return NewForward(0, make([]byte, 253), &PingResp{})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := tt.build()
			if !errors.Is(err, ErrFieldTooLarge) {
				t.Errorf("message %v, error = %v, want ErrFieldTooLarge", msg, err)
			}
		})
	}
}

func TestWillTopicDeleteDropsFlags(t *testing.T) {
	// The delete frame has no flags octet, so a delete request built with
	// nonzero flags must still round-trip through the 2-octet frame.
	msg, err := NewWillTopic("", QoS1, true)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(msg, &WillTopic{}) {
		t.Errorf("constructor kept flags: %#v", msg)
	}
	frame := Encode(msg)
	if !bytes.Equal(frame, []byte{0x02, 0x07}) {
		t.Fatalf("frame = % X, want 02 07", frame)
	}
	decoded, err := Decode(frame)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(decoded, msg) {
		t.Errorf("round trip mismatch:\n got  %#v\n want %#v", decoded, msg)
	}

	upd, err := NewWillTopicUpd("", QoS2, true)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(upd, &WillTopicUpd{}) {
		t.Errorf("constructor kept flags: %#v", upd)
	}
}

func TestConstructorsAcceptLimits(t *testing.T) {
	if _, err := NewConnect(string(bytes.Repeat([]byte{'c'}, MaxClientIDLen)), 30, true, false); err != nil {
		t.Errorf("23-octet client id rejected: %v", err)
	}
	if _, err := NewPublish(PredefinedTopicID(1), make([]byte, MaxPublishDataLen), QoSMinus1, false); err != nil {
		t.Errorf("maximum payload rejected: %v", err)
	}
	if _, err := NewForward(3, make([]byte, 252), &PingResp{}); err != nil {
		t.Errorf("252-octet node id rejected: %v", err)
	}
	if _, err := NewWillTopic("", QoS0, false); err != nil {
		t.Errorf("will delete rejected: %v", err)
	}
}

func TestEncodeAppendsToDst(t *testing.T) {
	dst := []byte{0xAA, 0xBB}
	out := Append(dst, &PingResp{})
	if !bytes.Equal(out, []byte{0xAA, 0xBB, 0x02, 0x17}) {
		t.Errorf("Append = % X", out)
	}
}

func TestDecodeDoesNotAliasInput(t *testing.T) {
	frame := Encode(&Publish{QoS: QoS0, TopicID: PredefinedTopicID(1), Data: []byte("abc")})
	msg, err := Decode(frame)
	if err != nil {
		t.Fatal(err)
	}
	pub := msg.(*Publish)
	frame[len(frame)-1] = 'z' // caller reuses its receive buffer
	if string(pub.Data) != "abc" {
		t.Errorf("payload changed to %q after buffer reuse", pub.Data)
	}
}
