package wire

import (
	"encoding/binary"
	"fmt"
)

// TopicID is the 16-bit topic handle carried by PUBLISH. The wire shape
// is always two octets, but the meaning depends on the TopicIDType tag
// transported in the same message's flags octet: a registered id, a
// predefined id, or two ASCII characters used literally as a short topic
// name. TopicID keeps the tag and the value together so neither can be
// encoded or decoded without the other.
type TopicID struct {
	idType TopicIDType
	value  uint16
}

// NormalTopicID returns a topic id assigned through REGISTER.
func NormalTopicID(id uint16) TopicID {
	return TopicID{idType: TopicIDNormal, value: id}
}

// PredefinedTopicID returns a topic id agreed out of band.
func PredefinedTopicID(id uint16) TopicID {
	return TopicID{idType: TopicIDPredefined, value: id}
}

// ShortTopicID returns a short topic name: exactly two characters used
// directly in place of an id.
func ShortTopicID(name string) (TopicID, error) {
	if len(name) != 2 {
		return TopicID{}, fmt.Errorf("%w: short topic name must be exactly 2 octets, got %d", ErrFieldTooLarge, len(name))
	}
	return TopicID{
		idType: TopicIDShort,
		value:  uint16(name[0])<<8 | uint16(name[1]),
	}, nil
}

// decodeTopicID interprets two wire octets under the given type tag.
// The octets read the same either way; keeping idType alongside the value
// is what preserves the pairing invariant.
func decodeTopicID(b []byte, idType TopicIDType) TopicID {
	return TopicID{idType: idType, value: binary.BigEndian.Uint16(b)}
}

// Type returns the tag that determines the id's interpretation.
func (t TopicID) Type() TopicIDType {
	return t.idType
}

// Value returns the numeric id. For short topic names it is the two
// characters packed big-endian; use ShortName instead.
func (t TopicID) Value() uint16 {
	return t.value
}

// ShortName returns the two-character topic name, or "" when the id is
// not of the short type.
func (t TopicID) ShortName() string {
	if t.idType != TopicIDShort {
		return ""
	}
	return string([]byte{byte(t.value >> 8), byte(t.value)})
}

// String renders the id for diagnostics.
func (t TopicID) String() string {
	if t.idType == TopicIDShort {
		return fmt.Sprintf("SHORT(%q)", t.ShortName())
	}
	return fmt.Sprintf("%s(%d)", t.idType, t.value)
}

func (t TopicID) appendTo(dst []byte) []byte {
	return binary.BigEndian.AppendUint16(dst, t.value)
}

// TopicFilter is the topic field of SUBSCRIBE and UNSUBSCRIBE: either a
// full topic name (which may contain wildcards), a predefined topic id,
// or a two-character short name, selected by the TopicIDType tag in the
// message's flags octet.
type TopicFilter struct {
	idType TopicIDType
	name   string // normal form only
	id     uint16 // predefined and short forms
}

// NameFilter returns a filter carrying a full topic name.
func NameFilter(name string) (TopicFilter, error) {
	if len(name) == 0 {
		return TopicFilter{}, fmt.Errorf("%w: topic name must not be empty", ErrFieldTooLarge)
	}
	if len(name) > maxSubscribeTopicLen {
		return TopicFilter{}, fmt.Errorf("%w: topic name is %d octets, max %d", ErrFieldTooLarge, len(name), maxSubscribeTopicLen)
	}
	return TopicFilter{idType: TopicIDNormal, name: name}, nil
}

// PredefinedFilter returns a filter carrying a predefined topic id.
func PredefinedFilter(id uint16) TopicFilter {
	return TopicFilter{idType: TopicIDPredefined, id: id}
}

// ShortFilter returns a filter carrying a two-character short topic name.
func ShortFilter(name string) (TopicFilter, error) {
	if len(name) != 2 {
		return TopicFilter{}, fmt.Errorf("%w: short topic name must be exactly 2 octets, got %d", ErrFieldTooLarge, len(name))
	}
	return TopicFilter{
		idType: TopicIDShort,
		id:     uint16(name[0])<<8 | uint16(name[1]),
	}, nil
}

// decodeTopicFilter interprets the trailing octets of a SUBSCRIBE or
// UNSUBSCRIBE body under the given type tag.
func decodeTopicFilter(b []byte, idType TopicIDType) (TopicFilter, error) {
	switch idType {
	case TopicIDNormal:
		if len(b) == 0 {
			return TopicFilter{}, ErrInvalidLength
		}
		return TopicFilter{idType: TopicIDNormal, name: string(b)}, nil
	case TopicIDPredefined, TopicIDShort:
		if len(b) != 2 {
			return TopicFilter{}, ErrInvalidLength
		}
		return TopicFilter{idType: idType, id: binary.BigEndian.Uint16(b)}, nil
	default:
		// The reserved tag leaves the field width undefined.
		return TopicFilter{}, ErrInvalidLength
	}
}

// IDType returns the tag that determines the filter's interpretation.
func (f TopicFilter) IDType() TopicIDType {
	return f.idType
}

// Name returns the full topic name, or "" for id-based filters.
func (f TopicFilter) Name() string {
	return f.name
}

// ID returns the predefined topic id, or 0 for other forms.
func (f TopicFilter) ID() uint16 {
	if f.idType != TopicIDPredefined {
		return 0
	}
	return f.id
}

// ShortName returns the two-character topic name, or "" when the filter
// is not of the short type.
func (f TopicFilter) ShortName() string {
	if f.idType != TopicIDShort {
		return ""
	}
	return string([]byte{byte(f.id >> 8), byte(f.id)})
}

// String renders the filter for diagnostics.
func (f TopicFilter) String() string {
	switch f.idType {
	case TopicIDNormal:
		return fmt.Sprintf("NORMAL(%q)", f.name)
	case TopicIDShort:
		return fmt.Sprintf("SHORT(%q)", f.ShortName())
	default:
		return fmt.Sprintf("%s(%d)", f.idType, f.id)
	}
}

func (f TopicFilter) wireLen() int {
	if f.idType == TopicIDNormal {
		return len(f.name)
	}
	return 2
}

func (f TopicFilter) appendTo(dst []byte) []byte {
	if f.idType == TopicIDNormal {
		return append(dst, f.name...)
	}
	return binary.BigEndian.AppendUint16(dst, f.id)
}
