package ucd

import "github.com/hupe1980/ucdchart/wire"

// SkipInfo records, per general category, how many consecutive whole chunks
// next to a chunk contain no character of that category. A scan filtered
// by a set of categories can jump over the minimum of their counters.
//
// Field numbers follow the category enum except PrivateUse (28) and
// Surrogate (29), which are swapped; Unassigned is 30.
type SkipInfo struct {
	counts [NumCategories]uint32
}

// Get returns the counter of gc. Invalid categories report zero.
func (s *SkipInfo) Get(gc GeneralCategory) uint32 {
	if !gc.Valid() {
		return 0
	}
	return s.counts[gc-1]
}

// Set stores the counter of gc. Invalid categories are ignored.
func (s *SkipInfo) Set(gc GeneralCategory, n uint32) {
	if gc.Valid() {
		s.counts[gc-1] = n
	}
}

// IsZero reports whether all counters are zero.
func (s *SkipInfo) IsZero() bool {
	return s.counts == [NumCategories]uint32{}
}

// Min returns the smallest counter among the categories of set, or zero for
// an empty set.
func (s *SkipInfo) Min(set CategorySet) uint32 {
	var (
		m     uint32
		found bool
	)
	for _, gc := range set.List() {
		n := s.Get(gc)
		if !found || n < m {
			m, found = n, true
		}
	}
	return m
}

func skipCategoryOf(num wire.Number) (GeneralCategory, bool) {
	switch {
	case num == 28:
		return PrivateUse, true
	case num == 29:
		return Surrogate, true
	case num >= 1 && num <= 30:
		return GeneralCategory(num), true
	default:
		return 0, false
	}
}

// EncodeSkipInfo returns the wire encoding of s. Zero counters are omitted.
func EncodeSkipInfo(s SkipInfo) []byte {
	w := wire.NewWriter()
	s.writeTo(w)
	return w.Bytes()
}

func (s *SkipInfo) writeTo(w *wire.Writer) {
	for num := wire.Number(1); num <= 30; num++ {
		gc, _ := skipCategoryOf(num)
		if n := s.Get(gc); n != 0 {
			w.WriteUint32Field(num, n)
		}
	}
}

// DecodeSkipInfo decodes a SkipInfo message.
func DecodeSkipInfo(b []byte) (SkipInfo, error) {
	var s SkipInfo

	r := wire.NewReader(b)
	for r.Next() {
		f := r.Field()

		gc, ok := skipCategoryOf(f.Number)
		if !ok {
			continue
		}

		n, err := wire.FieldAsUint32(f)
		if err != nil {
			return SkipInfo{}, err
		}

		s.Set(gc, n)
	}

	if err := r.Err(); err != nil {
		return SkipInfo{}, err
	}

	return s, nil
}
