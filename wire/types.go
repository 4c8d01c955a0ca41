package wire

import (
	"fmt"
	"strconv"
)

// Type is the 3-bit wire type stored in the low bits of a field tag.
type Type uint8

const (
	VarintType     Type = 0
	Fixed64Type    Type = 1
	BytesType      Type = 2
	StartGroupType Type = 3
	EndGroupType   Type = 4
	Fixed32Type    Type = 5
)

func (t Type) String() string {
	switch t {
	case VarintType:
		return "Varint"
	case Fixed64Type:
		return "I64"
	case BytesType:
		return "Len"
	case StartGroupType:
		return "Group"
	case EndGroupType:
		return "End"
	case Fixed32Type:
		return "I32"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Number is a field number. Valid numbers are in [MinNumber, MaxNumber].
type Number uint32

const (
	MinNumber Number = 1
	MaxNumber Number = 1<<29 - 1
)

func (n Number) String() string { return strconv.FormatUint(uint64(n), 10) }

// Field is one decoded field.
//
// Varint carries the value of VarintType fields. Bytes carries the payload of
// BytesType (length-delimited), Fixed32Type (4 bytes) and Fixed64Type
// (8 bytes) fields, aliasing the decoded buffer. Group carries the nested
// fields of a StartGroupType field, without the closing marker.
type Field struct {
	Number Number
	Type   Type
	Varint uint64
	Bytes  []byte
	Group  []Field
}

// VarintField returns a Varint field.
func VarintField(num Number, v uint64) Field {
	return Field{Number: num, Type: VarintType, Varint: v}
}

// BytesField returns a length-delimited field.
func BytesField(num Number, b []byte) Field {
	return Field{Number: num, Type: BytesType, Bytes: b}
}

// GroupField returns a group field enclosing fields.
func GroupField(num Number, fields ...Field) Field {
	return Field{Number: num, Type: StartGroupType, Group: fields}
}

// Fixed32Field returns an I32 field. b must be 4 bytes long.
func Fixed32Field(num Number, b []byte) Field {
	return Field{Number: num, Type: Fixed32Type, Bytes: b}
}

// Fixed64Field returns an I64 field. b must be 8 bytes long.
func Fixed64Field(num Number, b []byte) Field {
	return Field{Number: num, Type: Fixed64Type, Bytes: b}
}

func makeTag(num Number, typ Type) uint64 {
	return uint64(num)<<3 | uint64(typ&7)
}
