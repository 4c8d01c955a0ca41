package ucd

import (
	"testing"

	"github.com/hupe1980/ucdchart/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleIndex() *CategoryIndex {
	x := NewCategoryIndex()
	x.AddRange(0x00, 0x20, Control)
	x.Add(0x20, SpaceSeparator)
	x.AddRange(0x41, 0x5B, UppercaseLetter)
	x.AddRange(0x61, 0x7B, LowercaseLetter)
	x.Seal()
	return x
}

func TestCategoryIndex_Seal(t *testing.T) {
	x := sampleIndex()

	assert.Equal(t, uint64(26), x.Count(UppercaseLetter))
	assert.Equal(t, uint64(CodePointLimit)-32-1-26-26, x.Count(Unassigned))
	assert.True(t, x.Contains(Unassigned, 0x10FFFF))
	assert.False(t, x.Contains(Unassigned, 0x41))
	assert.False(t, x.Contains(Unassigned, CodePointLimit))

	assert.Equal(t, UppercaseLetter, x.Category(0x41))
	assert.Equal(t, Unassigned, x.Category(0x5B))
}

func TestCategoryIndex_Select(t *testing.T) {
	x := sampleIndex()

	got := x.Select(NewCategorySet(UppercaseLetter, LowercaseLetter), 0x58, 0x63)
	assert.Equal(t, []uint32{0x58, 0x59, 0x5A, 0x61, 0x62}, got)

	got = x.Select(NewCategorySet(SpaceSeparator, Control), 0x1E, 0x100)
	assert.Equal(t, []uint32{0x1E, 0x1F, 0x20}, got)

	assert.Equal(t, []uint32{0x10, 0x11}, x.Select(0, 0x10, 0x12))
	assert.Nil(t, x.Select(NewCategorySet(UppercaseLetter), 0x50, 0x50))
	assert.Empty(t, x.Select(NewCategorySet(MathSymbol), 0, CodePointLimit))

	assert.True(t, x.Any(NewCategorySet(LowercaseLetter), 0x60, 0x62))
	assert.False(t, x.Any(NewCategorySet(LowercaseLetter), 0x7B, 0x100))
}

func TestCategoryIndex_EncodeDecode(t *testing.T) {
	x := sampleIndex()

	b, err := x.Encode()
	require.NoError(t, err)

	fields, err := wire.ReadAll(b)
	require.NoError(t, err)
	require.Len(t, fields, NumCategories)
	assert.Equal(t, wire.Number(1), fields[0].Number)
	assert.Equal(t, wire.Number(30), fields[29].Number)

	for name, decode := range map[string]func([]byte) (*CategoryIndex, error){
		"copy":   DecodeCategoryIndex,
		"mapped": MapCategoryIndex,
	} {
		t.Run(name, func(t *testing.T) {
			y, err := decode(b)
			require.NoError(t, err)

			for _, gc := range Categories() {
				assert.Equal(t, x.Count(gc), y.Count(gc), gc.String())
			}
			assert.Equal(t,
				x.Select(NewCategorySet(UppercaseLetter), 0, 0x100),
				y.Select(NewCategorySet(UppercaseLetter), 0, 0x100))
		})
	}
}

func TestCategoryIndex_DecodeSkipsUnknownFields(t *testing.T) {
	x := sampleIndex()
	b, err := x.Encode()
	require.NoError(t, err)

	w := wire.NewWriter()
	w.WriteUint32Field(99, 1)
	b = append(w.Bytes(), b...)

	y, err := DecodeCategoryIndex(b)
	require.NoError(t, err)
	assert.Equal(t, uint64(26), y.Count(LowercaseLetter))

	_, err = DecodeCategoryIndex([]byte{0x0a, 0x02, 0x00, 0x00})
	assert.Error(t, err)
}
