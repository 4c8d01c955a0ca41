package ucd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneralCategory_Shorthands(t *testing.T) {
	want := []string{
		"Lu", "Ll", "Lt", "Lm", "Lo", "Mn", "Mc", "Me", "Nd", "Nl", "No",
		"Pc", "Pd", "Ps", "Pe", "Pi", "Pf", "Po", "Sm", "Sc", "Sk", "So",
		"Zs", "Zl", "Zp", "Cc", "Cf", "Cs", "Co", "Cn",
	}

	cats := Categories()
	require.Len(t, cats, NumCategories)

	for i, gc := range cats {
		assert.Equal(t, GeneralCategory(i+1), gc)
		assert.Equal(t, want[i], gc.Shorthand())

		back, ok := CategoryFromShorthand(want[i])
		require.True(t, ok)
		assert.Equal(t, gc, back)
	}

	_, ok := CategoryFromShorthand("LC")
	assert.False(t, ok)
	_, ok = CategoryFromShorthand("")
	assert.False(t, ok)

	assert.Equal(t, "Uppercase_Letter", UppercaseLetter.String())
	assert.Equal(t, "", GeneralCategoryUnspecified.Shorthand())
	assert.False(t, GeneralCategoryUnspecified.Valid())
	assert.False(t, GeneralCategory(31).Valid())
}

func TestCategorySet(t *testing.T) {
	var s CategorySet
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "", s.String())

	s = s.With(LowercaseLetter).With(UppercaseLetter).With(GeneralCategoryUnspecified).With(99)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has(UppercaseLetter))
	assert.False(t, s.Has(TitlecaseLetter))
	assert.False(t, s.Has(GeneralCategoryUnspecified))
	assert.Equal(t, []GeneralCategory{UppercaseLetter, LowercaseLetter}, s.List())
	assert.Equal(t, "Lu,Ll", s.String())

	s = s.Without(UppercaseLetter)
	assert.Equal(t, "Ll", s.String())

	all := AllCategories()
	assert.Equal(t, NumCategories, all.Len())
	assert.Equal(t, NewCategorySet(Categories()...), all)
	assert.True(t, all.Has(Unassigned))
}
