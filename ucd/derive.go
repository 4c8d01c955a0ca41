package ucd

import "fmt"

// DerivedData is the displayable view of a code point, assigned or not.
type DerivedData struct {
	CodePoint       uint32
	Name            string
	NameDerivation  NameDerivation
	GeneralCategory GeneralCategory
}

// DeriveCharacter completes the stored record of cp. A nil record means
// the code point is unassigned: it is reported as a noncharacter or as
// reserved.
func DeriveCharacter(cp uint32, base *CharacterData) (DerivedData, error) {
	if base == nil {
		d := NameDerivationReserved
		if IsNoncharacter(cp) {
			d = NameDerivationNoncharacter
		}
		return DerivedData{
			CodePoint:       cp,
			Name:            DeriveName(cp, "", d),
			NameDerivation:  d,
			GeneralCategory: Unassigned,
		}, nil
	}

	if !base.GeneralCategory.Valid() {
		return DerivedData{}, fmt.Errorf("%w: %v at U+%s", ErrInvalidCategory, base.GeneralCategory, hex4(cp))
	}

	return DerivedData{
		CodePoint:       cp,
		Name:            DeriveName(cp, base.Name, base.NameDerivation),
		NameDerivation:  base.NameDerivation,
		GeneralCategory: base.GeneralCategory,
	}, nil
}

// DeriveChunk derives every code point of chunk in [lo, hi).
func DeriveChunk(chunk *ChunkData, lo, hi uint32) ([]DerivedData, error) {
	out := make([]DerivedData, 0, hi-lo)
	for cp := lo; cp < hi; cp++ {
		var base *CharacterData
		if ch, ok := chunk.Lookup(cp); ok {
			base = &ch
		}
		d, err := DeriveCharacter(cp, base)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// IsNoncharacter reports whether cp is one of the 66 noncharacters:
// U+FDD0..U+FDEF and the last two code points of every plane.
func IsNoncharacter(cp uint32) bool {
	return (cp >= 0xFDD0 && cp <= 0xFDEF) || cp&0xFFFE == 0xFFFE
}

// DeriveName returns the name or label of cp under derivation d.
// Unknown derivations fall back to the declared name.
func DeriveName(cp uint32, name string, d NameDerivation) string {
	if prefix, ok := labelPrefixes[d]; ok {
		return "<" + prefix + "-" + hex4(cp) + ">"
	}
	if prefix, ok := ideographPrefixes[d]; ok {
		return prefix + "-" + hex4(cp)
	}
	if d == NameDerivationHangulSyllable {
		return hangulSyllableName(cp)
	}
	return name
}

// Hangul syllable composition constants (Unicode §3.12).
const (
	hangulSBase  = 0xAC00
	hangulLCount = 19
	hangulVCount = 21
	hangulTCount = 28
	hangulNCount = hangulVCount * hangulTCount
	hangulSCount = hangulLCount * hangulNCount
)

var (
	jamoL = [hangulLCount]string{
		"G", "GG", "N", "D", "DD", "R", "M", "B", "BB", "S", "SS", "", "J", "JJ", "C", "K", "T", "P", "H",
	}
	jamoV = [hangulVCount]string{
		"A", "AE", "YA", "YAE", "EO", "E", "YEO", "YE", "O", "WA", "WAE", "OE", "YO", "U", "WEO", "WE", "WI", "YU", "EU", "YI", "I",
	}
	jamoT = [hangulTCount]string{
		"", "G", "GG", "GS", "N", "NJ", "NH", "D", "L", "LG", "LM", "LB", "LS", "LT", "LP", "LH", "M", "B", "BS", "S", "SS", "NG", "J", "C", "K", "T", "P", "H",
	}
)

// hangulSyllableName implements rule NR1.
func hangulSyllableName(cp uint32) string {
	if cp < hangulSBase || cp >= hangulSBase+hangulSCount {
		return ""
	}
	s := cp - hangulSBase
	l := s / hangulNCount
	v := (s % hangulNCount) / hangulTCount
	t := s % hangulTCount
	return "HANGUL SYLLABLE " + jamoL[l] + jamoV[v] + jamoT[t]
}
