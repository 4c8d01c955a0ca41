package ucd

import (
	"fmt"
	"math/bits"
	"strings"
)

// GeneralCategory is the General_Category (gc) property value.
//
// https://www.unicode.org/reports/tr44/#General_Category_Values
type GeneralCategory uint32

const (
	GeneralCategoryUnspecified GeneralCategory = iota
	UppercaseLetter
	LowercaseLetter
	TitlecaseLetter
	ModifierLetter
	OtherLetter
	NonspacingMark
	SpacingMark
	EnclosingMark
	DecimalNumber
	LetterNumber
	OtherNumber
	ConnectorPunctuation
	DashPunctuation
	OpenPunctuation
	ClosePunctuation
	InitialPunctuation
	FinalPunctuation
	OtherPunctuation
	MathSymbol
	CurrencySymbol
	ModifierSymbol
	OtherSymbol
	SpaceSeparator
	LineSeparator
	ParagraphSeparator
	Control
	Format
	Surrogate
	PrivateUse
	Unassigned
)

// NumCategories is the number of concrete categories (excluding unspecified).
const NumCategories = int(Unassigned)

var categoryInfo = [...]struct{ short, long string }{
	GeneralCategoryUnspecified: {"", "GENERAL_CATEGORY_UNSPECIFIED"},
	UppercaseLetter:            {"Lu", "Uppercase_Letter"},
	LowercaseLetter:            {"Ll", "Lowercase_Letter"},
	TitlecaseLetter:            {"Lt", "Titlecase_Letter"},
	ModifierLetter:             {"Lm", "Modifier_Letter"},
	OtherLetter:                {"Lo", "Other_Letter"},
	NonspacingMark:             {"Mn", "Nonspacing_Mark"},
	SpacingMark:                {"Mc", "Spacing_Mark"},
	EnclosingMark:              {"Me", "Enclosing_Mark"},
	DecimalNumber:              {"Nd", "Decimal_Number"},
	LetterNumber:               {"Nl", "Letter_Number"},
	OtherNumber:                {"No", "Other_Number"},
	ConnectorPunctuation:       {"Pc", "Connector_Punctuation"},
	DashPunctuation:            {"Pd", "Dash_Punctuation"},
	OpenPunctuation:            {"Ps", "Open_Punctuation"},
	ClosePunctuation:           {"Pe", "Close_Punctuation"},
	InitialPunctuation:         {"Pi", "Initial_Punctuation"},
	FinalPunctuation:           {"Pf", "Final_Punctuation"},
	OtherPunctuation:           {"Po", "Other_Punctuation"},
	MathSymbol:                 {"Sm", "Math_Symbol"},
	CurrencySymbol:             {"Sc", "Currency_Symbol"},
	ModifierSymbol:             {"Sk", "Modifier_Symbol"},
	OtherSymbol:                {"So", "Other_Symbol"},
	SpaceSeparator:             {"Zs", "Space_Separator"},
	LineSeparator:              {"Zl", "Line_Separator"},
	ParagraphSeparator:         {"Zp", "Paragraph_Separator"},
	Control:                    {"Cc", "Control"},
	Format:                     {"Cf", "Format"},
	Surrogate:                  {"Cs", "Surrogate"},
	PrivateUse:                 {"Co", "Private_Use"},
	Unassigned:                 {"Cn", "Unassigned"},
}

var categoryByShorthand = func() map[string]GeneralCategory {
	m := make(map[string]GeneralCategory, NumCategories)
	for gc := UppercaseLetter; gc <= Unassigned; gc++ {
		m[categoryInfo[gc].short] = gc
	}
	return m
}()

// Valid reports whether gc is one of the 30 concrete categories.
func (gc GeneralCategory) Valid() bool {
	return gc >= UppercaseLetter && gc <= Unassigned
}

// Shorthand returns the two-letter alias, e.g. "Lu". It returns "" for
// unspecified and unknown values.
func (gc GeneralCategory) Shorthand() string {
	if !gc.Valid() {
		return ""
	}
	return categoryInfo[gc].short
}

// String returns the long property value alias, e.g. "Uppercase_Letter".
func (gc GeneralCategory) String() string {
	if int(gc) < len(categoryInfo) {
		return categoryInfo[gc].long
	}
	return fmt.Sprintf("GeneralCategory(%d)", uint32(gc))
}

// CategoryFromShorthand maps a two-letter alias to its category.
func CategoryFromShorthand(s string) (GeneralCategory, bool) {
	gc, ok := categoryByShorthand[s]
	return gc, ok
}

// Categories returns the concrete categories in canonical order.
func Categories() []GeneralCategory {
	out := make([]GeneralCategory, 0, NumCategories)
	for gc := UppercaseLetter; gc <= Unassigned; gc++ {
		out = append(out, gc)
	}
	return out
}

// CategorySet is a set of concrete categories, one bit per enum value.
type CategorySet uint32

const allCategories CategorySet = (1<<(Unassigned+1) - 1) &^ 1

// AllCategories returns the set of every concrete category.
func AllCategories() CategorySet { return allCategories }

// NewCategorySet returns a set holding the valid categories of gcs.
func NewCategorySet(gcs ...GeneralCategory) CategorySet {
	var s CategorySet
	for _, gc := range gcs {
		s = s.With(gc)
	}
	return s
}

// With returns s plus gc. Invalid categories are ignored.
func (s CategorySet) With(gc GeneralCategory) CategorySet {
	if !gc.Valid() {
		return s
	}
	return s | 1<<gc
}

// Without returns s minus gc.
func (s CategorySet) Without(gc GeneralCategory) CategorySet {
	if !gc.Valid() {
		return s
	}
	return s &^ (1 << gc)
}

// Has reports whether gc is in s.
func (s CategorySet) Has(gc GeneralCategory) bool {
	return gc.Valid() && s&(1<<gc) != 0
}

// Len returns the number of categories in s.
func (s CategorySet) Len() int { return bits.OnesCount32(uint32(s & allCategories)) }

// IsEmpty reports whether s holds no category.
func (s CategorySet) IsEmpty() bool { return s&allCategories == 0 }

// List returns the members of s in canonical order.
func (s CategorySet) List() []GeneralCategory {
	out := make([]GeneralCategory, 0, s.Len())
	for gc := UppercaseLetter; gc <= Unassigned; gc++ {
		if s.Has(gc) {
			out = append(out, gc)
		}
	}
	return out
}

// String joins the shorthands of s with commas in canonical order.
func (s CategorySet) String() string {
	list := s.List()
	parts := make([]string, len(list))
	for i, gc := range list {
		parts[i] = gc.Shorthand()
	}
	return strings.Join(parts, ",")
}
