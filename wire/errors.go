package wire

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated is returned when the buffer ends inside a field.
	ErrTruncated = errors.New("unexpected end of data")
	// ErrRedundantVarint is returned for a multi-byte varint ending in a zero byte.
	ErrRedundantVarint = errors.New("redundant varint encoding")
	// ErrVarintOverflow is returned for a varint wider than 64 bits.
	ErrVarintOverflow = errors.New("varint too large (more than 64 bits)")
	// ErrVarint32Overflow is returned where a 32-bit varint is required but a wider one is found.
	ErrVarint32Overflow = errors.New("varint32 too large (more than 32 bits)")
	// ErrInvalidFieldNumber is returned for field number 0.
	ErrInvalidFieldNumber = errors.New("invalid field number: 0")
	// ErrInvalidWireType is returned for wire types 6 and 7.
	ErrInvalidWireType = errors.New("invalid wire type")
	// ErrGroupMismatch is returned when a group is closed with a different number.
	ErrGroupMismatch = errors.New("incorrect group nesting")
	// ErrUnexpectedEndGroup is returned for an end-group marker outside any group.
	ErrUnexpectedEndGroup = errors.New("unexpected end group indicator")
	// ErrInvalidUTF8 is returned when a string field is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 string")
	// ErrTypeMismatch is returned when a field has a different wire type than expected.
	ErrTypeMismatch = errors.New("field type mismatch")
	// ErrFixedLength is returned when writing a fixed-width field with a payload of the wrong size.
	ErrFixedLength = errors.New("fixed field has wrong payload length")
)

// DecodeError reports malformed input.
//
// Err is one of the sentinel errors of this package.
type DecodeError struct {
	Offset int
	Err    error
	detail string
}

func (e *DecodeError) Error() string {
	if e.detail != "" {
		return fmt.Sprintf("wire: %v at offset %d: %s", e.Err, e.Offset, e.detail)
	}
	return fmt.Sprintf("wire: %v at offset %d", e.Err, e.Offset)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decodeErr(off int, err error) error {
	return &DecodeError{Offset: off, Err: err}
}

func decodeErrf(off int, err error, format string, args ...any) error {
	return &DecodeError{Offset: off, Err: err, detail: fmt.Sprintf(format, args...)}
}

// TypeMismatchError is returned by the FieldAs accessors.
type TypeMismatchError struct {
	Number Number
	Want   Type
	Got    Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("wire: field %d: expected %s field, got %s", e.Number, e.Want, e.Got)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// LengthError is returned by the fixed-width writers.
type LengthError struct {
	Type Type
	Want int
	Got  int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("wire: %s field must be exactly %d bytes, got %d", e.Type, e.Want, e.Got)
}

func (e *LengthError) Unwrap() error { return ErrFixedLength }
