// Package chunkstore provides the writable chunk store used while generating
// the database.
//
//	s := chunkstore.New(blobstore.NewLocalStore(dir))
//	h, err := s.OpenChunk(ctx, 0)
//	if err != nil { ... }
//	h.Data().Characters = append(h.Data().Characters, cd)
//	h.SetDirty(true)
//	_ = h.Release()
//	err = s.Close(ctx)
//
// Chunks are reference counted. When more than the configured capacity is
// resident, unreferenced chunks are evicted in LRU order: clean chunks are
// dropped, dirty ones are written back in the background, bounded by a
// semaphore and an optional byte-rate limit. Close is the shutdown barrier.
package chunkstore
