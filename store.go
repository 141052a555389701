// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "encoding/binary"

// Store is the host collaborator contract: it owns the raw bytes of the
// heap and the single capability to extend them. It plays the role the
// original C allocator assigns to sbrk/mem_sbrk, mem_heap_lo and
// mem_heap_hi combined.
//
// A Store must never move or invalidate bytes at offsets it has already
// handed out; Grow only ever appends. Heap never retains a byte slice
// across a call that might grow the store, so an implementation is free to
// reallocate its backing array on Grow (see MmapGrower).
type Store interface {
	// Size returns the current size of the backing region, in bytes.
	Size() int64

	// Grow extends the backing region by n bytes (n is always a multiple
	// of 16) and returns the offset of the first new byte. It returns
	// ok == false, leaving the store unchanged, if the host refuses to
	// grow - the sole form of allocation failure in this design.
	Grow(n int64) (base int64, ok bool)

	// ReadWordAt reads the 8-byte little-endian word at off.
	ReadWordAt(off int64) uint64

	// WriteWordAt writes the 8-byte little-endian word v at off.
	WriteWordAt(off int64, v uint64)

	// ReadAt copies Size()-off bytes (or len(dst) if smaller) from off
	// into dst, used by Reallocate's payload copy and by Dump.
	ReadAt(off int64, dst []byte)

	// WriteAt copies src into the store at off.
	WriteAt(off int64, src []byte)
}

// SliceGrower is a Store backed by a plain growable Go byte slice. It is
// the in-memory analogue of lldb's MemFiler and is what the default Heap
// and the test suite use: host growth must be deterministic and portable
// for `go test`.
type SliceGrower struct {
	buf []byte
}

// NewSliceGrower returns a new, empty SliceGrower.
func NewSliceGrower() *SliceGrower {
	return &SliceGrower{}
}

// Size implements Store.
func (s *SliceGrower) Size() int64 { return int64(len(s.buf)) }

// Grow implements Store.
func (s *SliceGrower) Grow(n int64) (int64, bool) {
	base := int64(len(s.buf))
	s.buf = append(s.buf, make([]byte, n)...)
	return base, true
}

// ReadWordAt implements Store.
func (s *SliceGrower) ReadWordAt(off int64) uint64 {
	return binary.LittleEndian.Uint64(s.buf[off : off+8])
}

// WriteWordAt implements Store.
func (s *SliceGrower) WriteWordAt(off int64, v uint64) {
	binary.LittleEndian.PutUint64(s.buf[off:off+8], v)
}

// ReadAt implements Store.
func (s *SliceGrower) ReadAt(off int64, dst []byte) {
	copy(dst, s.buf[off:])
}

// WriteAt implements Store.
func (s *SliceGrower) WriteAt(off int64, src []byte) {
	copy(s.buf[off:], src)
}

// Bytes exposes the full backing slice.
func (s *SliceGrower) Bytes() []byte { return s.buf }
