package blobstore

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionType defines the compression algorithm used.
type CompressionType uint8

const (
	// CompressionNone stores blobs as-is inside the frame.
	CompressionNone CompressionType = 0
	// CompressionLZ4 indicates LZ4 block compression (fast).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD indicates ZSTD compression (better ratio).
	CompressionZSTD CompressionType = 2
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	}
	return fmt.Sprintf("CompressionType(%d)", uint8(c))
}

// ErrCorruptFrame is returned when a compressed blob cannot be decoded.
var ErrCorruptFrame = errors.New("blobstore: corrupt compressed frame")

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Frame format: [Type uint8][UncompressedSize uint32][CompressedSize uint32][Data...]
// CompressedSize == 0 means Data is stored uncompressed.
const frameHeaderSize = 9

// CompressedStore wraps a BlobStore and compresses blobs on Put.
// Get detects the algorithm from the frame header, so blobs written with a
// different CompressionType remain readable.
type CompressedStore struct {
	inner BlobStore
	typ   CompressionType
}

// NewCompressedStore creates a compressing decorator around inner.
func NewCompressedStore(inner BlobStore, typ CompressionType) *CompressedStore {
	return &CompressedStore{inner: inner, typ: typ}
}

// Get reads and decompresses a blob.
func (s *CompressedStore) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return Decompress(data)
}

// Put compresses and writes a blob.
func (s *CompressedStore) Put(ctx context.Context, name string, data []byte) error {
	framed, err := Compress(data, s.typ)
	if err != nil {
		return err
	}
	return s.inner.Put(ctx, name, framed)
}

// Delete removes a blob.
func (s *CompressedStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, name)
}

// List returns all blob names with the given prefix.
func (s *CompressedStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Compress frames data with the given algorithm. If compression does not
// help, the payload is stored uncompressed.
func Compress(data []byte, typ CompressionType) ([]byte, error) {
	var compressed []byte

	switch typ {
	case CompressionNone:
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n]
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		putZstdEncoder(enc)
	default:
		return nil, fmt.Errorf("blobstore: unknown compression type %d", typ)
	}

	if len(compressed) == 0 || len(compressed) >= len(data) {
		typ, compressed = CompressionNone, nil
	}

	out := make([]byte, frameHeaderSize, frameHeaderSize+max(len(compressed), len(data)))
	out[0] = byte(typ)
	binary.LittleEndian.PutUint32(out[1:], uint32(len(data)))
	binary.LittleEndian.PutUint32(out[5:], uint32(len(compressed)))
	if compressed == nil {
		return append(out, data...), nil
	}
	return append(out, compressed...), nil
}

// Decompress decodes a frame produced by Compress.
func Decompress(data []byte) ([]byte, error) {
	if len(data) < frameHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is too small for header", ErrCorruptFrame, len(data))
	}

	typ := CompressionType(data[0])
	uncompressedSize := binary.LittleEndian.Uint32(data[1:])
	compressedSize := binary.LittleEndian.Uint32(data[5:])
	payload := data[frameHeaderSize:]

	if compressedSize == 0 {
		if uint32(len(payload)) != uncompressedSize {
			return nil, fmt.Errorf("%w: stored size mismatch", ErrCorruptFrame)
		}
		return payload, nil
	}
	if uint32(len(payload)) != compressedSize {
		return nil, fmt.Errorf("%w: compressed size mismatch", ErrCorruptFrame)
	}

	result := make([]byte, uncompressedSize)

	switch typ {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(payload, result)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptFrame, err)
		}
		if uint32(n) != uncompressedSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorruptFrame)
		}
		return result, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		decoded, err := dec.DecodeAll(payload, result[:0])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptFrame, err)
		}
		if uint32(len(decoded)) != uncompressedSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorruptFrame)
		}
		return decoded, nil
	}

	return nil, fmt.Errorf("%w: unknown compression type %d", ErrCorruptFrame, typ)
}
