package wire

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnum uint32

func TestFieldAsUint32(t *testing.T) {
	v, err := FieldAsUint32(VarintField(1, math.MaxUint32))
	require.NoError(t, err)
	assert.Equal(t, uint32(math.MaxUint32), v)

	_, err = FieldAsUint32(VarintField(1, math.MaxUint32+1))
	assert.ErrorIs(t, err, ErrVarint32Overflow)

	_, err = FieldAsUint32(BytesField(1, nil))
	assert.ErrorIs(t, err, ErrTypeMismatch)

	var tm *TypeMismatchError
	require.True(t, errors.As(err, &tm))
	assert.Equal(t, VarintType, tm.Want)
	assert.Equal(t, BytesType, tm.Got)
	assert.Equal(t, "wire: field 1: expected Varint field, got Len", err.Error())
}

func TestFieldAsEnum(t *testing.T) {
	v, err := FieldAsEnum[testEnum](VarintField(3, 9999))
	require.NoError(t, err)
	assert.Equal(t, testEnum(9999), v)

	_, err = FieldAsEnum[testEnum](Fixed32Field(3, make([]byte, 4)))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestFieldAsString(t *testing.T) {
	s, err := FieldAsString(BytesField(2, []byte("LATIN CAPITAL LETTER A")))
	require.NoError(t, err)
	assert.Equal(t, "LATIN CAPITAL LETTER A", s)

	bad := BytesField(2, []byte{'a', 0xff, 'b'})

	_, err = FieldAsString(bad)
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	s, err = FieldAsString(bad, WithoutValidation())
	require.NoError(t, err)
	assert.Equal(t, "a�b", s)

	_, err = FieldAsString(VarintField(2, 1))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestFieldAsSubmessage(t *testing.T) {
	w := NewWriter()
	w.WriteMessageField(1, func(w *Writer) { w.WriteUint32Field(1, 42) })

	fields, err := ReadAll(w.Bytes())
	require.NoError(t, err)

	got, err := FieldAsSubmessage(fields[0], ReadAll)
	require.NoError(t, err)
	assert.Equal(t, []Field{VarintField(1, 42)}, got)

	_, err = FieldAsSubmessage(VarintField(1, 1), ReadAll)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	// Malformed payloads surface the inner decode error.
	_, err = FieldAsSubmessage(BytesField(1, []byte{0x08}), ReadAll)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "Varint", VarintType.String())
	assert.Equal(t, "I64", Fixed64Type.String())
	assert.Equal(t, "Len", BytesType.String())
	assert.Equal(t, "Group", StartGroupType.String())
	assert.Equal(t, "End", EndGroupType.String())
	assert.Equal(t, "I32", Fixed32Type.String())
	assert.Equal(t, "Type(6)", Type(6).String())
}
