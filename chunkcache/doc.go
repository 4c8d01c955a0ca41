// Package chunkcache provides the read-only chunk cache used when browsing.
//
// A Cache fetches chunk files (see ucd.ChunkNameOf) through a Fetcher,
// decodes them and keeps the most recently used few in memory:
//
//	c := chunkcache.New(chunkcache.NewHTTPFetcher("https://example.org/data/ucd"))
//	chunk, err := c.GetChunk(ctx, ucd.ChunkIndexOf(0x1F600))
//
// Concurrent requests for one chunk share a single fetch. A failed fetch is
// reported to every waiter as a *FetchError (non-2xx) or the transport or
// decode error, and is retried only once the entry has been evicted.
package chunkcache
