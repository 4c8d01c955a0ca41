package ucd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	line, err := ParseLine("0000;<control>;Cc;0;BN;;;;;N;NULL;;;;\n")
	require.NoError(t, err)
	assert.Equal(t, Line{CodePoint: 0, Name: "<control>", Category: Control}, line)

	line, err = ParseLine("10FFFD;<Plane 16 Private Use, Last>;Co;0;L;;;;;N;;;;;")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x10FFFD), line.CodePoint)

	_, err = ParseLine("0041;LATIN")
	assert.ErrorIs(t, err, ErrInvalidLine)

	for _, text := range []string{"41", "0041a", "110000", "00041", "Z041"} {
		_, err = ParseLine(text + ";X;Lu;")
		assert.ErrorIs(t, err, ErrInvalidCodePoint, text)
	}

	_, err = ParseLine("0041;LATIN CAPITAL LETTER A;LC;")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

const sampleUnicodeData = `0000;<control>;Cc;0;BN;;;;;N;NULL;;;;
0041;LATIN CAPITAL LETTER A;Lu;0;L;;;;;N;;;;0061;

4E00;<CJK Ideograph, First>;Lo;0;L;;;;;N;;;;;
9FFF;<CJK Ideograph, Last>;Lo;0;L;;;;;N;;;;;
F900;CJK COMPATIBILITY IDEOGRAPH-F900;Lo;0;L;8C48;;;;N;;;;;
`

func TestScanUnicodeData(t *testing.T) {
	rows, err := ScanUnicodeData(strings.NewReader(sampleUnicodeData))
	require.NoError(t, err)
	assert.Equal(t, []Row{
		{Start: 0, End: 0, Name: "<control>", Category: Control},
		{Start: 0x41, End: 0x41, Name: "LATIN CAPITAL LETTER A", Category: UppercaseLetter},
		{Start: 0x4E00, End: 0x9FFF, Name: "<CJK Ideograph>", Category: OtherLetter},
		{Start: 0xF900, End: 0xF900, Name: "CJK COMPATIBILITY IDEOGRAPH-F900", Category: OtherLetter},
	}, rows)
}

func TestScanUnicodeData_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"first without last", "4E00;<CJK Ideograph, First>;Lo;\n", ErrUnpairedRange},
		{"first then other", "4E00;<CJK Ideograph, First>;Lo;\n4E01;X;Lo;\n", ErrUnpairedRange},
		{"last without first", "9FFF;<CJK Ideograph, Last>;Lo;\n", ErrUnpairedRange},
		{"out of order", "0042;B;Lu;\n0041;A;Lu;\n", ErrUnordered},
		{"duplicate", "0041;A;Lu;\n0041;A;Lu;\n", ErrUnordered},
		{"overlap", "4E00;<CJK Ideograph, First>;Lo;\n9FFF;<CJK Ideograph, Last>;Lo;\n5000;X;Lo;\n", ErrUnordered},
		{"bad line", "0041;A;Lu;\nnonsense\n", ErrInvalidLine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ScanUnicodeData(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestInferNameDerivation(t *testing.T) {
	tests := []struct {
		cp   uint32
		name string
		want NameDerivation
	}{
		{0x0000, "<control>", NameDerivationControl},
		{0x3400, "<CJK Ideograph Extension A>", NameDerivationCJKUnifiedIdeograph},
		{0x323B0, "<CJK Ideograph Extension J>", NameDerivationCJKUnifiedIdeograph},
		{0xAC00, "<Hangul Syllable>", NameDerivationHangulSyllable},
		{0xD800, "<Non Private Use High Surrogate>", NameDerivationSurrogate},
		{0xDC00, "<Low Surrogate>", NameDerivationSurrogate},
		{0xE000, "<Private Use>", NameDerivationPrivateUse},
		{0x100000, "<Plane 16 Private Use>", NameDerivationPrivateUse},
		{0x17000, "<Tangut Ideograph>", NameDerivationTangutIdeograph},
		{0xF900, "CJK COMPATIBILITY IDEOGRAPH-F900", NameDerivationCJKCompatibilityIdeograph},
		{0x13460, "EGYPTIAN HIEROGLYPH-13460", NameDerivationEgyptianHieroglyph},
		{0x18B00, "KHITAN SMALL SCRIPT CHARACTER-18B00", NameDerivationKhitanSmallScriptCharacter},
		{0x1B170, "NUSHU CHARACTER-1B170", NameDerivationNushuCharacter},
		{0x41, "LATIN CAPITAL LETTER A", NameDerivationUnspecified},
		// Suffix must match the code point.
		{0xF901, "CJK COMPATIBILITY IDEOGRAPH-F900", NameDerivationUnspecified},
		// Unknown prefix.
		{0x1000, "MYANMAR LETTER-1000", NameDerivationUnspecified},
	}

	for _, tt := range tests {
		got, err := InferNameDerivation(tt.cp, tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := InferNameDerivation(0x1, "<mystery>")
	assert.ErrorIs(t, err, ErrUnknownLabel)
}
