package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/hupe1980/ucdchart"
	"github.com/hupe1980/ucdchart/blobstore"
	miniostore "github.com/hupe1980/ucdchart/blobstore/minio"
	s3store "github.com/hupe1980/ucdchart/blobstore/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var errNoLocation = errors.New("no data location: set -data, -base-url, UCDCHART_DATA or UCDCHART_BASE_URL")

// openStore resolves a data location to a blob store.
//
//	/var/lib/ucd            local directory
//	s3://bucket/prefix      AWS S3 (default credential chain)
//	minio://host/bucket/pfx MinIO (MINIO_ACCESS_KEY, MINIO_SECRET_KEY)
//	mem://, gs://, ...      any other scheme goes through afs
func openStore(ctx context.Context, location string) (blobstore.BlobStore, error) {
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain paths, including Windows drive letters.
		return blobstore.NewLocalStore(location), nil
	}

	switch u.Scheme {
	case "file":
		return blobstore.NewLocalStore(u.Path), nil
	case "s3":
		var opts []s3store.Option
		if p := strings.TrimPrefix(u.Path, "/"); p != "" {
			opts = append(opts, s3store.WithPrefix(p))
		}
		if endpoint := os.Getenv("UCDCHART_S3_ENDPOINT"); endpoint != "" {
			opts = append(opts, s3store.WithEndpoint(endpoint))
		}
		store, err := s3store.New(ctx, u.Host, opts...)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "minio":
		bucket, prefix, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
		if bucket == "" {
			return nil, fmt.Errorf("minio location %q: missing bucket", location)
		}
		client, err := minio.New(u.Host, &minio.Options{
			Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
			Secure: os.Getenv("MINIO_INSECURE") == "",
		})
		if err != nil {
			return nil, err
		}
		return miniostore.NewStore(client, bucket, prefix), nil
	case "http", "https":
		return nil, fmt.Errorf("location %q is read-only: use -base-url", location)
	default:
		return blobstore.NewAFSStore(location), nil
	}
}

// withCompression wraps store in a framing decorator. An empty name
// leaves the store as is. Reads detect the algorithm from the frame, so
// any name works for show and list.
func withCompression(store blobstore.BlobStore, name string) (blobstore.BlobStore, error) {
	switch name {
	case "":
		return store, nil
	case "none":
		return blobstore.NewCompressedStore(store, blobstore.CompressionNone), nil
	case "lz4":
		return blobstore.NewCompressedStore(store, blobstore.CompressionLZ4), nil
	case "zstd":
		return blobstore.NewCompressedStore(store, blobstore.CompressionZSTD), nil
	default:
		return nil, fmt.Errorf("unknown compression %q (none, lz4, zstd)", name)
	}
}

// sourceOptions picks the read source for show and list.
func sourceOptions(ctx context.Context, data, baseURL, compress string) ([]ucdchart.Option, error) {
	if data == "" && baseURL == "" {
		data = os.Getenv("UCDCHART_DATA")
		baseURL = os.Getenv("UCDCHART_BASE_URL")
	}

	switch {
	case data != "":
		store, err := openStore(ctx, data)
		if err != nil {
			return nil, err
		}
		if store, err = withCompression(store, compress); err != nil {
			return nil, err
		}
		return []ucdchart.Option{ucdchart.WithStore(store)}, nil
	case baseURL != "":
		return []ucdchart.Option{ucdchart.WithBaseURL(baseURL)}, nil
	default:
		return nil, errNoLocation
	}
}
