package chunkstore

import (
	"sync/atomic"

	"github.com/hupe1980/ucdchart/ucd"
)

// Handle is one reference to an open chunk.
type Handle struct {
	store    *Store
	index    int
	state    *chunkState
	released atomic.Bool
}

// Index returns the chunk index.
func (h *Handle) Index() int { return h.index }

// Data returns the shared chunk data. It must not be used after Release.
func (h *Handle) Data() *ucd.ChunkData {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	return h.state.data
}

// Dirty reports whether the chunk has unsaved changes.
func (h *Handle) Dirty() bool {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	return h.state.dirty
}

// SetDirty flags the chunk as modified. Passing false never clears the flag;
// only a write-back does.
func (h *Handle) SetDirty(v bool) {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.state.dirty = h.state.dirty || v
}

// Release drops the reference. When the last reference goes, the chunk
// becomes eligible for eviction and, if dirty, write-back.
func (h *Handle) Release() error {
	if h.released.Swap(true) {
		return ErrNotOpened
	}
	return h.store.release(h.index, h.state)
}
