package ucd

import (
	"fmt"
	"sort"

	"github.com/hupe1980/ucdchart/wire"
)

const (
	// ChunkSize is the number of code points, assigned or not, in a chunk.
	ChunkSize = 256
	// NumChunks is the number of chunks covering [0, CodePointLimit).
	NumChunks = int(CodePointLimit / ChunkSize)
)

// ChunkIndexOf returns the index of the chunk holding cp.
func ChunkIndexOf(cp uint32) int { return int(cp / ChunkSize) }

// ChunkRangeOf returns the half-open code point range [lo, hi) of chunk i.
func ChunkRangeOf(i int) (lo, hi uint32) {
	lo = uint32(i) * ChunkSize
	return lo, lo + ChunkSize
}

// ChunkNameOf returns the storage key of chunk i.
func ChunkNameOf(i int) string {
	return fmt.Sprintf("chunk%d-%04d.binpb", ChunkSize, i)
}

// ChunkData is the stored form of one chunk.
//
//	message ChunkData {
//	  uint32 chunk_index = 1;
//	  repeated CharacterData characters = 2;
//	  optional SkipInfo backward_skips = 3;
//	  optional SkipInfo forward_skips = 4;
//	}
type ChunkData struct {
	ChunkIndex uint32
	// Characters is sorted by code point. Missing code points are unassigned.
	Characters    []CharacterData
	BackwardSkips *SkipInfo
	ForwardSkips  *SkipInfo
}

// NewChunkData returns an empty chunk for index i.
func NewChunkData(i int) *ChunkData {
	return &ChunkData{ChunkIndex: uint32(i), Characters: []CharacterData{}}
}

// Lookup returns the record of cp, if present.
func (c *ChunkData) Lookup(cp uint32) (CharacterData, bool) {
	i := sort.Search(len(c.Characters), func(i int) bool {
		return c.Characters[i].CodePoint >= cp
	})
	if i < len(c.Characters) && c.Characters[i].CodePoint == cp {
		return c.Characters[i], true
	}
	return CharacterData{}, false
}

// Categories returns the set of categories present in the chunk. A chunk
// with fewer than ChunkSize records also contains Unassigned.
func (c *ChunkData) Categories() CategorySet {
	var s CategorySet
	for _, ch := range c.Characters {
		s = s.With(ch.GeneralCategory)
	}
	if len(c.Characters) < ChunkSize {
		s = s.With(Unassigned)
	}
	return s
}

// EncodeChunkData returns the wire encoding of c.
func EncodeChunkData(c *ChunkData) []byte {
	w := wire.NewWriter()

	if c.ChunkIndex != 0 {
		w.WriteUint32Field(1, c.ChunkIndex)
	}
	for _, ch := range c.Characters {
		w.WriteMessageField(2, ch.writeTo)
	}
	if c.BackwardSkips != nil {
		w.WriteMessageField(3, c.BackwardSkips.writeTo)
	}
	if c.ForwardSkips != nil {
		w.WriteMessageField(4, c.ForwardSkips.writeTo)
	}

	return w.Bytes()
}

// DecodeChunkData decodes a ChunkData message.
func DecodeChunkData(b []byte) (*ChunkData, error) {
	c := &ChunkData{Characters: []CharacterData{}}

	r := wire.NewReader(b)
	for r.Next() {
		f := r.Field()

		var err error
		switch f.Number {
		case 1:
			c.ChunkIndex, err = wire.FieldAsUint32(f)
		case 2:
			var ch CharacterData
			if ch, err = wire.FieldAsSubmessage(f, DecodeCharacterData); err == nil {
				c.Characters = append(c.Characters, ch)
			}
		case 3:
			c.BackwardSkips, err = decodeSkipField(f)
		case 4:
			c.ForwardSkips, err = decodeSkipField(f)
		}

		if err != nil {
			return nil, err
		}
	}

	if err := r.Err(); err != nil {
		return nil, err
	}

	return c, nil
}

func decodeSkipField(f wire.Field) (*SkipInfo, error) {
	s, err := wire.FieldAsSubmessage(f, DecodeSkipInfo)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
