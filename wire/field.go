package wire

import (
	"strings"
	"unicode/utf8"
)

// FieldAsUint64 returns the value of a Varint field.
func FieldAsUint64(f Field) (uint64, error) {
	if f.Type != VarintType {
		return 0, &TypeMismatchError{Number: f.Number, Want: VarintType, Got: f.Type}
	}

	return f.Varint, nil
}

// FieldAsUint32 returns the value of a Varint field that fits in 32 bits.
func FieldAsUint32(f Field) (uint32, error) {
	v, err := FieldAsUint64(f)
	if err != nil {
		return 0, err
	}

	if v > 0xffffffff {
		return 0, &DecodeError{Err: ErrVarint32Overflow, detail: "field " + f.Number.String()}
	}

	return uint32(v), nil
}

// FieldAsEnum returns the value of a Varint field as an enum. Values without
// a named constant are returned as is.
func FieldAsEnum[E ~uint32](f Field) (E, error) {
	v, err := FieldAsUint32(f)
	if err != nil {
		return 0, err
	}

	return E(v), nil
}

// StringOption configures FieldAsString.
type StringOption func(*stringOptions)

type stringOptions struct {
	validate bool
}

// WithoutValidation makes FieldAsString replace invalid UTF-8 sequences with
// U+FFFD instead of failing.
func WithoutValidation() StringOption {
	return func(o *stringOptions) { o.validate = false }
}

// FieldAsString returns the payload of a Len field as a string. The payload
// must be valid UTF-8 unless WithoutValidation is given.
func FieldAsString(f Field, optFns ...StringOption) (string, error) {
	opts := stringOptions{validate: true}
	for _, fn := range optFns {
		fn(&opts)
	}

	b, err := FieldAsBytes(f)
	if err != nil {
		return "", err
	}

	if utf8.Valid(b) {
		return string(b), nil
	}

	if opts.validate {
		return "", &DecodeError{Err: ErrInvalidUTF8, detail: "field " + f.Number.String()}
	}

	return strings.ToValidUTF8(string(b), string(utf8.RuneError)), nil
}

// FieldAsBytes returns the payload of a Len field. The result aliases the
// decoded buffer.
func FieldAsBytes(f Field) ([]byte, error) {
	if f.Type != BytesType {
		return nil, &TypeMismatchError{Number: f.Number, Want: BytesType, Got: f.Type}
	}

	return f.Bytes, nil
}

// FieldAsSubmessage decodes the payload of a Len field with decode.
func FieldAsSubmessage[T any](f Field, decode func([]byte) (T, error)) (T, error) {
	b, err := FieldAsBytes(f)
	if err != nil {
		var zero T
		return zero, err
	}

	return decode(b)
}
