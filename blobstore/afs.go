package blobstore

import (
	"bytes"
	"context"
	"slices"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// AFSStore implements BlobStore on top of a viant/afs service, so any URL
// scheme afs understands (file://, mem://, gs://, s3://) can hold the chunk
// files.
type AFSStore struct {
	fs      afs.Service
	baseURL string
}

// NewAFSStore creates a store rooted at baseURL.
func NewAFSStore(baseURL string) *AFSStore {
	return &AFSStore{fs: afs.New(), baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *AFSStore) url(name string) string {
	return url.Join(s.baseURL, name)
}

// Get downloads a blob.
func (s *AFSStore) Get(ctx context.Context, name string) ([]byte, error) {
	URL := s.url(name)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}
	return s.fs.DownloadWithURL(ctx, URL)
}

// Put uploads a blob, replacing any previous contents.
func (s *AFSStore) Put(ctx context.Context, name string, data []byte) error {
	return s.fs.Upload(ctx, s.url(name), file.DefaultFileOsMode, bytes.NewReader(data))
}

// Delete removes a blob.
func (s *AFSStore) Delete(ctx context.Context, name string) error {
	URL := s.url(name)
	if ok, _ := s.fs.Exists(ctx, URL); !ok {
		return nil
	}
	return s.fs.Delete(ctx, URL)
}

// List returns all blob names with the given prefix.
func (s *AFSStore) List(ctx context.Context, prefix string) ([]string, error) {
	if ok, _ := s.fs.Exists(ctx, s.baseURL); !ok {
		return nil, nil
	}

	var names []string
	if err := s.walk(ctx, s.baseURL, "", prefix, &names); err != nil {
		return nil, err
	}
	slices.Sort(names)
	return names, nil
}

func (s *AFSStore) walk(ctx context.Context, dirURL, dir, prefix string, names *[]string) error {
	objects, err := s.fs.List(ctx, dirURL)
	if err != nil {
		return err
	}

	for i, obj := range objects {
		// afs lists the directory itself first
		if i == 0 && obj.IsDir() {
			continue
		}

		name := obj.Name()
		if dir != "" {
			name = dir + "/" + name
		}
		if obj.IsDir() {
			if err := s.walk(ctx, obj.URL(), name, prefix, names); err != nil {
				return err
			}
			continue
		}
		if strings.HasPrefix(name, prefix) {
			*names = append(*names, name)
		}
	}
	return nil
}
