package chunkstore

import "github.com/hupe1980/ucdchart/ucd"

type phase uint8

const (
	phaseUnloaded phase = iota
	phaseLoading
	phaseReady
	phaseWritingBack
)

func (p phase) String() string {
	switch p {
	case phaseUnloaded:
		return "unloaded"
	case phaseLoading:
		return "loading"
	case phaseReady:
		return "ready"
	case phaseWritingBack:
		return "writing-back"
	}
	return "unknown"
}

// chunkState is guarded by Store.mu.
type chunkState struct {
	rc    int
	io    chan struct{} // non-nil while a load or write-back is in flight
	data  *ucd.ChunkData
	dirty bool
}

func (s *chunkState) phase() phase {
	switch {
	case s.data == nil && s.io == nil:
		return phaseUnloaded
	case s.data == nil:
		return phaseLoading
	case s.io == nil:
		return phaseReady
	default:
		return phaseWritingBack
	}
}

// lock marks the start of the chunk's single in-flight I/O.
func (s *chunkState) lock() (chan struct{}, error) {
	if s.io != nil {
		return nil, ErrAlreadyLocked
	}
	s.io = make(chan struct{})
	return s.io, nil
}

func (s *chunkState) unlock() {
	close(s.io)
	s.io = nil
}
