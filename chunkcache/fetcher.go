package chunkcache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hupe1980/ucdchart/blobstore"
)

// Response is the status and body of a fetched resource.
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher fetches a resource by path. A non-2xx response is returned as a
// Response, not as an error; errors are reserved for transport failures.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (*Response, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, path string) (*Response, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, path string) (*Response, error) {
	return f(ctx, path)
}

// HTTPFetcher fetches resources relative to a base URL.
type HTTPFetcher struct {
	Client  *http.Client
	BaseURL string
}

// NewHTTPFetcher creates a fetcher using http.DefaultClient.
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{Client: http.DefaultClient, BaseURL: baseURL}
}

// Fetch performs a GET request.
func (f *HTTPFetcher) Fetch(ctx context.Context, path string) (*Response, error) {
	url := strings.TrimRight(f.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     http.StatusText(resp.StatusCode),
		Body:       body,
	}, nil
}

// StoreFetcher serves resources from a blob store, mapping a missing blob to
// a 404 response.
type StoreFetcher struct {
	Store blobstore.BlobStore
}

// Fetch reads the blob named path.
func (f *StoreFetcher) Fetch(ctx context.Context, path string) (*Response, error) {
	data, err := f.Store.Get(ctx, strings.TrimLeft(path, "/"))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return &Response{StatusCode: http.StatusNotFound, Status: http.StatusText(http.StatusNotFound)}, nil
		}
		return nil, fmt.Errorf("chunkcache: fetch %s: %w", path, err)
	}

	return &Response{StatusCode: http.StatusOK, Status: http.StatusText(http.StatusOK), Body: data}, nil
}
