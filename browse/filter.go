package browse

import (
	"net/url"
	"strings"

	"github.com/hupe1980/ucdchart/ucd"
)

// QueryKey is the query parameter holding the category selection.
const QueryKey = "gc"

// Filter selects code points by general category.
//
// An empty selection lets every code point pass, the same as selecting all
// categories. Both are trivial filters.
type Filter struct {
	Categories ucd.CategorySet
}

// NewFilter returns a filter selecting gcs.
func NewFilter(gcs ...ucd.GeneralCategory) Filter {
	return Filter{Categories: ucd.NewCategorySet(gcs...)}
}

// Trivial reports whether the filter lets every code point pass.
func (f Filter) Trivial() bool {
	n := f.Categories.Len()
	return n == 0 || n == ucd.NumCategories
}

// Match reports whether a code point of category gc passes.
func (f Filter) Match(gc ucd.GeneralCategory) bool {
	return f.Trivial() || f.Categories.Has(gc)
}

// Encode returns the query string form, such as "gc=Lu,Ll", with the
// categories in canonical order. An empty selection encodes to "".
func (f Filter) Encode() string {
	if f.Categories.IsEmpty() {
		return ""
	}
	return QueryKey + "=" + f.Categories.String()
}

// ParseFilter reads a filter from a query string. Unknown category
// shorthands are dropped.
func ParseFilter(query string) (Filter, error) {
	values, err := url.ParseQuery(query)
	if err != nil {
		return Filter{}, err
	}
	return FilterFromValues(values), nil
}

// FilterFromValues reads a filter from parsed query values.
func FilterFromValues(values url.Values) Filter {
	var set ucd.CategorySet
	for _, s := range strings.Split(values.Get(QueryKey), ",") {
		if gc, ok := ucd.CategoryFromShorthand(strings.TrimSpace(s)); ok {
			set = set.With(gc)
		}
	}
	return Filter{Categories: set}
}
