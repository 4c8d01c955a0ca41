package generate

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/hupe1980/ucdchart/blobstore"
	"github.com/hupe1980/ucdchart/chunkcache"
	"github.com/hupe1980/ucdchart/chunkstore"
	"github.com/hupe1980/ucdchart/ucd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// failingStore rejects puts of one blob.
type failingStore struct {
	*blobstore.MemoryStore
	name string
}

var errPut = errors.New("put rejected")

func (s *failingStore) Put(ctx context.Context, name string, data []byte) error {
	if strings.HasSuffix(name, s.name) {
		return errPut
	}
	return s.MemoryStore.Put(ctx, name, data)
}

func getChunk(t *testing.T, store blobstore.BlobStore, i int) *ucd.ChunkData {
	t.Helper()
	c := chunkcache.New(&chunkcache.StoreFetcher{Store: store})
	chunk, err := c.GetChunk(context.Background(), i)
	require.NoError(t, err)
	return chunk
}

func TestJob_SingleCharacter(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	res, err := New(store).Run(ctx, []ucd.Row{
		{Start: 0x41, End: 0x41, Name: "LATIN CAPITAL LETTER A", Category: ucd.UppercaseLetter},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rows)
	assert.Equal(t, 1, res.Characters)
	assert.Equal(t, ucd.NumChunks+1, store.Len())

	chunk := getChunk(t, store, 0)
	assert.Equal(t, []ucd.CharacterData{
		{CodePoint: 0x41, Name: "LATIN CAPITAL LETTER A", GeneralCategory: ucd.UppercaseLetter},
	}, chunk.Characters)

	_, ok := chunk.Lookup(0x00)
	assert.False(t, ok)
	_, ok = chunk.Lookup(0x42)
	assert.False(t, ok)

	last := getChunk(t, store, ucd.NumChunks-1)
	assert.Equal(t, uint32(ucd.NumChunks-1), last.ChunkIndex)
	assert.Empty(t, last.Characters)
}

func TestJob_SkipCounters(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	_, err := New(store).Run(ctx, []ucd.Row{
		{Start: 0x41, End: 0x41, Name: "LATIN CAPITAL LETTER A", Category: ucd.UppercaseLetter},
		{Start: 0x500, End: 0x5FF, Name: "FILLER", Category: ucd.OtherSymbol},
	})
	require.NoError(t, err)

	first := getChunk(t, store, 0)
	require.NotNil(t, first.BackwardSkips)
	require.NotNil(t, first.ForwardSkips)
	assert.True(t, first.BackwardSkips.IsZero())
	assert.Equal(t, uint32(ucd.NumChunks-1), first.ForwardSkips.Get(ucd.UppercaseLetter))
	assert.Equal(t, uint32(4), first.ForwardSkips.Get(ucd.OtherSymbol))
	assert.Zero(t, first.ForwardSkips.Get(ucd.Unassigned))

	third := getChunk(t, store, 3)
	assert.Equal(t, uint32(2), third.BackwardSkips.Get(ucd.UppercaseLetter))
	assert.Equal(t, uint32(3), third.BackwardSkips.Get(ucd.OtherSymbol))
	assert.Equal(t, uint32(1), third.ForwardSkips.Get(ucd.OtherSymbol))
	assert.Zero(t, third.ForwardSkips.Get(ucd.Unassigned))

	fourth := getChunk(t, store, 4)
	assert.Equal(t, uint32(1), fourth.ForwardSkips.Get(ucd.Unassigned))
	assert.Zero(t, fourth.ForwardSkips.Get(ucd.OtherSymbol))

	// Chunk 5 is fully assigned.
	full := getChunk(t, store, 5)
	assert.Len(t, full.Characters, ucd.ChunkSize)
	assert.NotContains(t, full.Categories().List(), ucd.Unassigned)

	last := getChunk(t, store, ucd.NumChunks-1)
	assert.True(t, last.ForwardSkips.IsZero())
	assert.Equal(t, uint32(ucd.NumChunks-7), last.BackwardSkips.Get(ucd.OtherSymbol))
}

func TestJob_RangesAndIndex(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	res, err := New(store).RunUnicodeData(ctx, strings.NewReader(
		"0041;LATIN CAPITAL LETTER A;Lu;0;L;;;;;N;;;;0061;\n"+
			"4E00;<CJK Ideograph, First>;Lo;0;L;;;;;N;;;;;\n"+
			"9FFF;<CJK Ideograph, Last>;Lo;0;L;;;;;N;;;;;\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, 1+0x9FFF-0x4E00+1, res.Characters)

	chunk := getChunk(t, store, ucd.ChunkIndexOf(0x4E00))
	require.Len(t, chunk.Characters, ucd.ChunkSize)
	assert.Equal(t, ucd.CharacterData{
		CodePoint:       0x4E00,
		NameDerivation:  ucd.NameDerivationCJKUnifiedIdeograph,
		GeneralCategory: ucd.OtherLetter,
	}, chunk.Characters[0])

	b, err := store.Get(ctx, ucd.IndexName)
	require.NoError(t, err)
	x, err := ucd.DecodeCategoryIndex(b)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), x.Count(ucd.UppercaseLetter))
	assert.Equal(t, uint64(0x9FFF-0x4E00+1), x.Count(ucd.OtherLetter))
	assert.Equal(t, ucd.OtherLetter, x.Category(0x6000))
}

func TestJob_RerunReplacesChunks(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	job := New(store, WithIndexName(""))

	_, err := job.Run(ctx, []ucd.Row{{Start: 0x41, End: 0x41, Name: "A", Category: ucd.UppercaseLetter}})
	require.NoError(t, err)
	_, err = job.Run(ctx, []ucd.Row{{Start: 0x42, End: 0x42, Name: "B", Category: ucd.UppercaseLetter}})
	require.NoError(t, err)

	assert.Equal(t, ucd.NumChunks, store.Len())
	chunk := getChunk(t, store, 0)
	require.Len(t, chunk.Characters, 1)
	assert.Equal(t, uint32(0x42), chunk.Characters[0].CodePoint)
}

func TestJob_InvalidRows(t *testing.T) {
	tests := []struct {
		name string
		rows []ucd.Row
		want error
	}{
		{"reversed range", []ucd.Row{{Start: 2, End: 1, Category: ucd.Control}}, ErrInvalidRow},
		{"out of range", []ucd.Row{{Start: 0x110000, End: 0x110000, Category: ucd.Control}}, ErrInvalidRow},
		{"overlap", []ucd.Row{
			{Start: 0, End: 4, Name: "<control>", Category: ucd.Control},
			{Start: 4, End: 4, Name: "<control>", Category: ucd.Control},
		}, ErrInvalidRow},
		{"unspecified category", []ucd.Row{{Start: 0x41, End: 0x41, Name: "A"}}, ErrInvalidRow},
		{"unknown label", []ucd.Row{{Start: 0x41, End: 0x41, Name: "<mystery>", Category: ucd.Control}}, ucd.ErrUnknownLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New(blobstore.NewMemoryStore()).Run(context.Background(), tt.rows)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, res)
		})
	}
}

func TestJob_WriteFailure(t *testing.T) {
	store := &failingStore{MemoryStore: blobstore.NewMemoryStore(), name: ucd.ChunkNameOf(7)}

	res, err := New(store, WithStoreOptions(chunkstore.WithCapacity(2))).Run(context.Background(), []ucd.Row{
		{Start: 0x41, End: 0x41, Name: "A", Category: ucd.UppercaseLetter},
	})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, errPut)

	var wbe *chunkstore.WriteBackError
	require.ErrorAs(t, err, &wbe)
	assert.Equal(t, 7, wbe.Chunk)
}

func TestJob_LogsRunID(t *testing.T) {
	var buf syncBuffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	res, err := New(blobstore.NewMemoryStore(), WithLogger(logger), WithIndexName("")).Run(context.Background(), nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"run_id":"`+res.RunID.String()+`"`)
	assert.Contains(t, out, "generation finished")
}
