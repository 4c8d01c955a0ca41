package ucdchart

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// A MetricsCollector satisfies both chunkcache.Metrics and
// chunkstore.Metrics.
type MetricsCollector interface {
	// RecordChunkFetch is called after each fetch of the read-only cache.
	RecordChunkFetch(chunk int, duration time.Duration, err error)

	// RecordChunkLoad is called after each load of the writable store.
	RecordChunkLoad(chunk int, duration time.Duration, err error)

	// RecordWriteBack is called after each background write of the
	// writable store. bytes is the encoded chunk size.
	RecordWriteBack(chunk, bytes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordChunkFetch(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordChunkLoad(int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordWriteBack(int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	FetchCount          atomic.Int64
	FetchErrors         atomic.Int64
	FetchTotalNanos     atomic.Int64
	LoadCount           atomic.Int64
	LoadErrors          atomic.Int64
	WriteBackCount      atomic.Int64
	WriteBackErrors     atomic.Int64
	WriteBackBytes      atomic.Int64
	WriteBackTotalNanos atomic.Int64
}

// RecordChunkFetch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChunkFetch(_ int, duration time.Duration, err error) {
	b.FetchCount.Add(1)
	b.FetchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FetchErrors.Add(1)
	}
}

// RecordChunkLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChunkLoad(_ int, _ time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordWriteBack implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWriteBack(_ int, bytes int, duration time.Duration, err error) {
	b.WriteBackCount.Add(1)
	b.WriteBackTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.WriteBackErrors.Add(1)
		return
	}
	b.WriteBackBytes.Add(int64(bytes))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		FetchCount:        b.FetchCount.Load(),
		FetchErrors:       b.FetchErrors.Load(),
		FetchAvgNanos:     avg(b.FetchTotalNanos.Load(), b.FetchCount.Load()),
		LoadCount:         b.LoadCount.Load(),
		LoadErrors:        b.LoadErrors.Load(),
		WriteBackCount:    b.WriteBackCount.Load(),
		WriteBackErrors:   b.WriteBackErrors.Load(),
		WriteBackBytes:    b.WriteBackBytes.Load(),
		WriteBackAvgNanos: avg(b.WriteBackTotalNanos.Load(), b.WriteBackCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	FetchCount        int64
	FetchErrors       int64
	FetchAvgNanos     int64
	LoadCount         int64
	LoadErrors        int64
	WriteBackCount    int64
	WriteBackErrors   int64
	WriteBackBytes    int64
	WriteBackAvgNanos int64
}
