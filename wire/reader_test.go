package wire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestReader_CanonicalExamples(t *testing.T) {
	t.Run("single varint", func(t *testing.T) {
		fields, err := ReadAll([]byte{0x08, 0x96, 0x01})
		require.NoError(t, err)
		assert.Equal(t, []Field{VarintField(1, 150)}, fields)
	})

	t.Run("two varints", func(t *testing.T) {
		fields, err := ReadAll([]byte{0x08, 0x96, 0x01, 0x10, 0xac, 0x02})
		require.NoError(t, err)
		assert.Equal(t, []Field{VarintField(1, 150), VarintField(2, 300)}, fields)
	})

	t.Run("string", func(t *testing.T) {
		fields, err := ReadAll([]byte{0x0a, 0x03, 0x66, 0x6f, 0x6f})
		require.NoError(t, err)
		require.Len(t, fields, 1)
		assert.Equal(t, Number(1), fields[0].Number)
		assert.Equal(t, BytesType, fields[0].Type)
		assert.Equal(t, []byte("foo"), fields[0].Bytes)
	})

	t.Run("group", func(t *testing.T) {
		fields, err := ReadAll([]byte{0x0b, 0x08, 0x96, 0x01, 0x10, 0xac, 0x02, 0x0c})
		require.NoError(t, err)
		assert.Equal(t, []Field{GroupField(1, VarintField(1, 150), VarintField(2, 300))}, fields)
	})

	t.Run("group mismatch", func(t *testing.T) {
		_, err := ReadAll([]byte{0x0b, 0x08, 0x96, 0x01, 0x10, 0xac, 0x02, 0x14})
		assert.ErrorIs(t, err, ErrGroupMismatch)
	})

	t.Run("i32", func(t *testing.T) {
		fields, err := ReadAll([]byte{0x15, 0x78, 0x56, 0x34, 0x12})
		require.NoError(t, err)
		assert.Equal(t, []Field{Fixed32Field(2, []byte{0x78, 0x56, 0x34, 0x12})}, fields)
	})

	t.Run("i64", func(t *testing.T) {
		fields, err := ReadAll([]byte{0x09, 0x78, 0x56, 0x34, 0x12, 0xef, 0xcd, 0xab, 0x90})
		require.NoError(t, err)
		assert.Equal(t, []Field{Fixed64Field(1, []byte{0x78, 0x56, 0x34, 0x12, 0xef, 0xcd, 0xab, 0x90})}, fields)
	})
}

func TestReader_NestedGroups(t *testing.T) {
	// group 1 { group 2 { 3: 7 } 4: 1 }
	buf := []byte{0x0b, 0x13, 0x18, 0x07, 0x14, 0x20, 0x01, 0x0c}

	fields, err := ReadAll(buf)
	require.NoError(t, err)
	assert.Equal(t, []Field{
		GroupField(1, GroupField(2, VarintField(3, 7)), VarintField(4, 1)),
	}, fields)
}

func TestReader_Errors(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want error
	}{
		{"field number zero", []byte{0x00, 0x01}, ErrInvalidFieldNumber},
		{"wire type 6", []byte{0x0e}, ErrInvalidWireType},
		{"wire type 7", []byte{0x0f}, ErrInvalidWireType},
		{"top level end group", []byte{0x0c}, ErrUnexpectedEndGroup},
		{"unclosed group", []byte{0x0b, 0x08, 0x01}, ErrTruncated},
		{"truncated varint", []byte{0x08, 0x96}, ErrTruncated},
		{"truncated len", []byte{0x0a, 0x05, 0x66}, ErrTruncated},
		{"truncated i32", []byte{0x0d, 0x01, 0x02}, ErrTruncated},
		{"truncated i64", []byte{0x09, 0x01, 0x02, 0x03, 0x04}, ErrTruncated},
		{"redundant value", []byte{0x08, 0x80, 0x00}, ErrRedundantVarint},
		{"redundant tag", []byte{0x88, 0x00, 0x01}, ErrRedundantVarint},
		{"oversized tag", []byte{0x80, 0x80, 0x80, 0x80, 0x10, 0x01}, ErrVarint32Overflow},
		{"oversized length", []byte{0x0a, 0x80, 0x80, 0x80, 0x80, 0x10}, ErrVarint32Overflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadAll(tt.buf)
			require.ErrorIs(t, err, tt.want)

			var de *DecodeError
			assert.True(t, errors.As(err, &de))
		})
	}
}

func TestReader_ErrorStopsIteration(t *testing.T) {
	r := NewReader([]byte{0x08, 0x01, 0x0e, 0x08, 0x02})

	require.True(t, r.Next())
	assert.Equal(t, VarintField(1, 1), r.Field())
	assert.False(t, r.Next())
	assert.ErrorIs(t, r.Err(), ErrInvalidWireType)
	assert.False(t, r.Next())

	var de *DecodeError
	require.ErrorAs(t, r.Err(), &de)
	assert.Equal(t, 2, de.Offset)
}

func TestReader_ZeroCopy(t *testing.T) {
	buf := []byte{0x0a, 0x03, 0x66, 0x6f, 0x6f, 0x10, 0x01}

	fields, err := ReadAll(buf)
	require.NoError(t, err)

	b := fields[0].Bytes
	assert.Equal(t, 3, cap(b))

	buf[2] = 'g'
	assert.Equal(t, []byte("goo"), b)
}

func TestReader_Empty(t *testing.T) {
	fields, err := ReadAll(nil)
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestReader_ProtowireInterop(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, 1<<40)
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendString(b, "héllo")
	b = protowire.AppendTag(b, 3, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, 0xdeadbeef)
	b = protowire.AppendTag(b, 4, protowire.StartGroupType)
	b = protowire.AppendTag(b, 5, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, 42)
	b = protowire.AppendTag(b, 4, protowire.EndGroupType)
	b = protowire.AppendTag(b, protowire.MaxValidNumber, protowire.VarintType)
	b = protowire.AppendVarint(b, 0)

	fields, err := ReadAll(b)
	require.NoError(t, err)
	require.Len(t, fields, 5)

	assert.Equal(t, uint64(1<<40), fields[0].Varint)
	assert.Equal(t, "héllo", string(fields[1].Bytes))
	assert.Equal(t, protowire.AppendFixed32(nil, 0xdeadbeef), fields[2].Bytes)
	assert.Equal(t, GroupField(4, Fixed64Field(5, protowire.AppendFixed64(nil, 42))), fields[3])
	assert.Equal(t, MaxNumber, fields[4].Number)

	// Re-encoding the decoded fields reproduces the input.
	w := NewWriter()
	for _, f := range fields {
		require.NoError(t, w.WriteField(f))
	}
	assert.Equal(t, b, w.Bytes())
}
