package ucd

import "fmt"

// NameDerivation tells how the name or label of a character is derived from
// its code point (Unicode §4.8 Name).
type NameDerivation uint32

const (
	// NameDerivationUnspecified means the declared name is used as is.
	NameDerivationUnspecified NameDerivation = iota
	// NameDerivationControl yields the label <control-XXXX>.
	NameDerivationControl
	// NameDerivationReserved yields the label <reserved-XXXX>.
	NameDerivationReserved
	// NameDerivationNoncharacter yields the label <noncharacter-XXXX>.
	NameDerivationNoncharacter
	// NameDerivationPrivateUse yields the label <private-use-XXXX>.
	NameDerivationPrivateUse
	// NameDerivationSurrogate yields the label <surrogate-XXXX>.
	NameDerivationSurrogate
	// NameDerivationHangulSyllable yields HANGUL SYLLABLE ZZZZ (rule NR1).
	NameDerivationHangulSyllable
	// NameDerivationCJKUnifiedIdeograph yields CJK UNIFIED IDEOGRAPH-XXXX (rule NR2).
	NameDerivationCJKUnifiedIdeograph
	// NameDerivationCJKCompatibilityIdeograph yields CJK COMPATIBILITY IDEOGRAPH-XXXX (rule NR2).
	NameDerivationCJKCompatibilityIdeograph
	// NameDerivationEgyptianHieroglyph yields EGYPTIAN HIEROGLYPH-XXXX (rule NR2).
	NameDerivationEgyptianHieroglyph
	// NameDerivationTangutIdeograph yields TANGUT IDEOGRAPH-XXXX (rule NR2).
	NameDerivationTangutIdeograph
	// NameDerivationNushuCharacter yields NUSHU CHARACTER-XXXX (rule NR2).
	NameDerivationNushuCharacter
	// NameDerivationKhitanSmallScriptCharacter yields KHITAN SMALL SCRIPT CHARACTER-XXXX (rule NR2).
	NameDerivationKhitanSmallScriptCharacter
)

var derivationNames = [...]string{
	"NAME_DERIVATION_UNSPECIFIED",
	"NAME_DERIVATION_CONTROL",
	"NAME_DERIVATION_RESERVED",
	"NAME_DERIVATION_NONCHARACTER",
	"NAME_DERIVATION_PRIVATE_USE",
	"NAME_DERIVATION_SURROGATE",
	"NAME_DERIVATION_HANGUL_SYLLABLE",
	"NAME_DERIVATION_CJK_UNIFIED_IDEOGRAPH",
	"NAME_DERIVATION_CJK_COMPATIBILITY_IDEOGRAPH",
	"NAME_DERIVATION_EGYPTIAN_HIEROGLYPH",
	"NAME_DERIVATION_TANGUT_IDEOGRAPH",
	"NAME_DERIVATION_NUSHU_CHARACTER",
	"NAME_DERIVATION_KHITAN_SMALL_SCRIPT_CHARACTER",
}

// ideographPrefixes holds the NR2 base names.
var ideographPrefixes = map[NameDerivation]string{
	NameDerivationCJKUnifiedIdeograph:        "CJK UNIFIED IDEOGRAPH",
	NameDerivationCJKCompatibilityIdeograph:  "CJK COMPATIBILITY IDEOGRAPH",
	NameDerivationEgyptianHieroglyph:         "EGYPTIAN HIEROGLYPH",
	NameDerivationTangutIdeograph:            "TANGUT IDEOGRAPH",
	NameDerivationNushuCharacter:             "NUSHU CHARACTER",
	NameDerivationKhitanSmallScriptCharacter: "KHITAN SMALL SCRIPT CHARACTER",
}

var labelPrefixes = map[NameDerivation]string{
	NameDerivationControl:      "control",
	NameDerivationReserved:     "reserved",
	NameDerivationNoncharacter: "noncharacter",
	NameDerivationPrivateUse:   "private-use",
	NameDerivationSurrogate:    "surrogate",
}

// Valid reports whether d has a named constant.
func (d NameDerivation) Valid() bool { return int(d) < len(derivationNames) }

func (d NameDerivation) String() string {
	if d.Valid() {
		return derivationNames[d]
	}
	return fmt.Sprintf("NameDerivation(%d)", uint32(d))
}

// IsLabel reports whether d yields a <label> rather than a name.
func (d NameDerivation) IsLabel() bool {
	_, ok := labelPrefixes[d]
	return ok
}
