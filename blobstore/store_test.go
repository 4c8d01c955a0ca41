package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hupe1980/ucdchart/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]BlobStore {
	t.Helper()
	return map[string]BlobStore{
		"memory": NewMemoryStore(),
		"local":  NewLocalStore(t.TempDir()),
		"afs":    NewAFSStore("mem://localhost/" + strings.ReplaceAll(t.Name(), "/", "_")),
		"zstd":   NewCompressedStore(NewMemoryStore(), CompressionZSTD),
		"lz4":    NewCompressedStore(NewLocalStore(t.TempDir()), CompressionLZ4),
	}
}

func TestBlobStore_Conformance(t *testing.T) {
	ctx := context.Background()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "chunks/chunk256-0000.binpb")
			assert.ErrorIs(t, err, ErrNotFound)

			names, err := s.List(ctx, "")
			require.NoError(t, err)
			assert.Empty(t, names)

			require.NoError(t, s.Put(ctx, "chunks/chunk256-0001.binpb", []byte("one")))
			require.NoError(t, s.Put(ctx, "chunks/chunk256-0000.binpb", []byte("zero")))
			require.NoError(t, s.Put(ctx, "gc-index.binpb", []byte("index")))

			data, err := s.Get(ctx, "chunks/chunk256-0000.binpb")
			require.NoError(t, err)
			assert.Equal(t, []byte("zero"), data)

			// Overwrite
			require.NoError(t, s.Put(ctx, "chunks/chunk256-0000.binpb", []byte("zero again")))
			data, err = s.Get(ctx, "chunks/chunk256-0000.binpb")
			require.NoError(t, err)
			assert.Equal(t, []byte("zero again"), data)

			names, err = s.List(ctx, "chunks/")
			require.NoError(t, err)
			assert.Equal(t, []string{"chunks/chunk256-0000.binpb", "chunks/chunk256-0001.binpb"}, names)

			names, err = s.List(ctx, "")
			require.NoError(t, err)
			assert.Len(t, names, 3)

			require.NoError(t, s.Delete(ctx, "chunks/chunk256-0001.binpb"))
			require.NoError(t, s.Delete(ctx, "chunks/chunk256-0001.binpb"))
			_, err = s.Get(ctx, "chunks/chunk256-0001.binpb")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	data := []byte("abc")
	require.NoError(t, s.Put(ctx, "a", data))
	data[0] = 'X'

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[1] = 'Y'
	again, _ := s.Get(ctx, "a")
	assert.Equal(t, []byte("abc"), again)
	assert.Equal(t, 1, s.Len())

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Get(cctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStore_Map(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(t.TempDir())
	require.NoError(t, s.Put(ctx, "gc-index.binpb", []byte("mapped bytes")))

	b, err := Map(ctx, s, "gc-index.binpb")
	require.NoError(t, err)
	assert.Equal(t, []byte("mapped bytes"), b.Bytes())
	require.NoError(t, b.Close())
	assert.Nil(t, b.Bytes())

	_, err = Map(ctx, s, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	// Fallback through Get for stores without mapping support
	m := NewMemoryStore()
	require.NoError(t, m.Put(ctx, "x", []byte("copy")))
	b, err = Map(ctx, m, "x")
	require.NoError(t, err)
	assert.Equal(t, []byte("copy"), b.Bytes())
	assert.NoError(t, b.Close())
}

func TestLocalStore_WriteFailure(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule("chunk256-0007", fs.Fault{FailAfterBytes: 2})

	s := NewLocalStore(dir, WithFileSystem(ffs))
	assert.ErrorIs(t, s.Put(ctx, "chunk256-0007.binpb", []byte("too long")), fs.ErrInjected)
	require.NoError(t, s.Put(ctx, "chunk256-0008.binpb", []byte("fine")))

	_, err := os.Stat(filepath.Join(dir, "chunk256-0007.binpb"))
	assert.True(t, os.IsNotExist(err))

	names, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"chunk256-0008.binpb"}, names)
	assert.Equal(t, dir, s.Root())
}
