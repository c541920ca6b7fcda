// Package framing splits and writes MQTT-SN frames on byte-stream
// transports such as serial links, which, unlike UDP, provide no
// datagram boundaries.
//
// MQTT-SN frames are self-delimiting through their leading length field,
// so no extra envelope is added: FrameReader recovers message boundaries
// from the 1- or 3-octet length header, and FrameWriter emits encoded
// frames unmodified.
//
//	┌─────────────────────────────────┐
//	│   MQTT-SN messages (pkg/wire)   │
//	├─────────────────────────────────┤
//	│   Length-header frame splitting │
//	├─────────────────────────────────┤
//	│   Byte stream (serial, pipe)    │
//	└─────────────────────────────────┘
//
// Datagram transports hand complete frames to wire.Decode directly and
// do not need this package.
package framing
