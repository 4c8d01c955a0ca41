package ucd

import (
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/ucdchart/wire"
)

// IndexName is the storage key of the category index.
const IndexName = "gc-index.binpb"

// CategoryIndex maps each general category to the set of its code points.
//
// It is stored as a wire message with one Len field per category: the field
// number is the category value and the payload is a portable roaring bitmap.
type CategoryIndex struct {
	bitmaps [NumCategories + 1]*roaring.Bitmap // indexed by category
}

// NewCategoryIndex returns an empty index.
func NewCategoryIndex() *CategoryIndex {
	x := &CategoryIndex{}
	for i := range x.bitmaps {
		x.bitmaps[i] = roaring.New()
	}
	return x
}

// Add records cp as a member of gc. Invalid categories are ignored.
func (x *CategoryIndex) Add(cp uint32, gc GeneralCategory) {
	if gc.Valid() {
		x.bitmaps[gc].Add(cp)
	}
}

// AddRange records the code points [lo, hi) as members of gc.
func (x *CategoryIndex) AddRange(lo, hi uint32, gc GeneralCategory) {
	if gc.Valid() && lo < hi {
		x.bitmaps[gc].AddRange(uint64(lo), uint64(hi))
	}
}

// AddChunk records every character of chunk.
func (x *CategoryIndex) AddChunk(chunk *ChunkData) {
	for _, ch := range chunk.Characters {
		x.Add(ch.CodePoint, ch.GeneralCategory)
	}
}

// Seal sets Unassigned to every code point no other category holds and
// compacts the bitmaps. Call it once all assigned code points are added.
func (x *CategoryIndex) Seal() {
	assigned := make([]*roaring.Bitmap, 0, NumCategories-1)
	for gc := UppercaseLetter; gc < Unassigned; gc++ {
		assigned = append(assigned, x.bitmaps[gc])
	}

	x.bitmaps[Unassigned] = roaring.Flip(roaring.FastOr(assigned...), 0, uint64(CodePointLimit))

	for _, bm := range x.bitmaps {
		bm.RunOptimize()
	}
}

// Category returns the category of cp, or Unassigned if no bitmap holds it.
func (x *CategoryIndex) Category(cp uint32) GeneralCategory {
	for gc := UppercaseLetter; gc < Unassigned; gc++ {
		if x.bitmaps[gc].Contains(cp) {
			return gc
		}
	}
	return Unassigned
}

// Contains reports whether cp belongs to gc.
func (x *CategoryIndex) Contains(gc GeneralCategory, cp uint32) bool {
	return gc.Valid() && x.bitmaps[gc].Contains(cp)
}

// Count returns the number of code points of gc.
func (x *CategoryIndex) Count(gc GeneralCategory) uint64 {
	if !gc.Valid() {
		return 0
	}
	return x.bitmaps[gc].GetCardinality()
}

// Select returns, in ascending order, the code points in [lo, hi) whose
// category is in set. An empty set selects every code point.
func (x *CategoryIndex) Select(set CategorySet, lo, hi uint32) []uint32 {
	hi = min(hi, CodePointLimit)
	if lo >= hi {
		return nil
	}

	if set.IsEmpty() || set == AllCategories() {
		out := make([]uint32, 0, hi-lo)
		for cp := lo; cp < hi; cp++ {
			out = append(out, cp)
		}
		return out
	}

	var out []uint32
	for _, gc := range set.List() {
		it := x.bitmaps[gc].Iterator()
		it.AdvanceIfNeeded(lo)
		for it.HasNext() && it.PeekNext() < hi {
			out = append(out, it.Next())
		}
	}

	if set.Len() > 1 {
		slices.Sort(out)
	}

	return out
}

// Any reports whether some code point in [lo, hi) has a category in set.
func (x *CategoryIndex) Any(set CategorySet, lo, hi uint32) bool {
	if lo >= hi {
		return false
	}
	if set.IsEmpty() {
		return true
	}
	for _, gc := range set.List() {
		it := x.bitmaps[gc].Iterator()
		it.AdvanceIfNeeded(lo)
		if it.HasNext() && it.PeekNext() < hi {
			return true
		}
	}
	return false
}

// Encode returns the wire encoding of the index.
func (x *CategoryIndex) Encode() ([]byte, error) {
	w := wire.NewWriter()
	for gc := UppercaseLetter; gc <= Unassigned; gc++ {
		b, err := x.bitmaps[gc].ToBytes()
		if err != nil {
			return nil, fmt.Errorf("ucd: encode %v bitmap: %w", gc, err)
		}
		w.WriteBytesField(wire.Number(gc), b)
	}
	return w.Bytes(), nil
}

// DecodeCategoryIndex decodes an index, copying the bitmaps out of b.
func DecodeCategoryIndex(b []byte) (*CategoryIndex, error) {
	return decodeCategoryIndex(b, func(bm *roaring.Bitmap, payload []byte) error {
		return bm.UnmarshalBinary(payload)
	})
}

// MapCategoryIndex decodes an index whose bitmaps share memory with b.
// b must stay valid and unmodified while the index is in use, which makes
// it suitable for memory-mapped files.
func MapCategoryIndex(b []byte) (*CategoryIndex, error) {
	return decodeCategoryIndex(b, func(bm *roaring.Bitmap, payload []byte) error {
		_, err := bm.FromBuffer(payload)
		return err
	})
}

func decodeCategoryIndex(b []byte, load func(*roaring.Bitmap, []byte) error) (*CategoryIndex, error) {
	x := NewCategoryIndex()

	r := wire.NewReader(b)
	for r.Next() {
		f := r.Field()

		gc := GeneralCategory(f.Number)
		if !gc.Valid() {
			continue
		}

		payload, err := wire.FieldAsBytes(f)
		if err != nil {
			return nil, err
		}

		if err := load(x.bitmaps[gc], payload); err != nil {
			return nil, fmt.Errorf("ucd: decode %v bitmap: %w", gc, err)
		}
	}

	if err := r.Err(); err != nil {
		return nil, err
	}

	return x, nil
}
