// Package cache provides a generic recency-ordered map.
//
// [LRU] is the bookkeeping shared by the read-only chunk cache and the
// writable chunk store: Get promotes, Peek does not, and Trim evicts from the
// cold end while letting the owner veto entries that are still in use.
package cache
