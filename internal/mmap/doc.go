// Package mmap maps local files read-only into memory.
//
//	m, err := mmap.Open(path)
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessRandom)
//	data := m.Bytes() // valid until Close
//
// Unix uses mmap(2) and madvise(2); Windows uses CreateFileMapping and
// MapViewOfFile, where Advise is a no-op.
package mmap
