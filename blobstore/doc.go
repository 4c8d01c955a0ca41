// Package blobstore provides the storage abstraction for chunk files and
// the category index.
//
// BlobStore reads and writes whole named blobs. Implementations must be safe
// for concurrent use and report missing blobs with an error satisfying
// errors.Is(err, ErrNotFound).
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, atomic writes, mmap-backed Map
//   - MemoryStore: in-memory, for tests
//   - AFSStore: any viant/afs URL (file://, mem://, gs://, s3://)
//   - CompressedStore: zstd or lz4 framing around another store
//   - minio.Store: MinIO and S3-compatible object storage
//   - s3.Store: Amazon S3
//
// Stores implementing Mapper expose zero-copy views:
//
//	b, err := blobstore.Map(ctx, store, "gc-index.binpb")
//	defer b.Close()
//	idx, err := ucd.MapCategoryIndex(b.Bytes())
package blobstore
