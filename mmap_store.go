// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package heap

import (
	"encoding/binary"
	"unsafe"

	"golang.org/x/sys/unix"
)

// MmapGrower is a Store backed by real anonymous-mmap'd process memory
// rather than a Go slice, grounded on the buddy allocator in
// github.com/alewtschuk/balloc, which also carves its pool out of
// unix.Mmap. Growth is implemented with unix.Mremap(MREMAP_MAYMOVE), the
// closest Linux analogue to a host-supplied sbrk-like primitive - the
// kernel is free to relocate the mapping, which is safe here because
// Heap never retains a slice across a call that may grow the store.
type MmapGrower struct {
	base uintptr
	size int64
}

// NewMmapGrower returns a Store with no bytes yet mapped. The first Grow
// call performs the initial mmap.
func NewMmapGrower() *MmapGrower {
	return &MmapGrower{}
}

func (g *MmapGrower) slice() []byte {
	if g.size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(g.base)), g.size)
}

// Size implements Store.
func (g *MmapGrower) Size() int64 { return g.size }

// Grow implements Store.
func (g *MmapGrower) Grow(n int64) (int64, bool) {
	newSize := g.size + n
	if g.base == 0 {
		data, err := unix.Mmap(-1, 0, int(newSize), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
		if err != nil {
			return 0, false
		}
		g.base = uintptr(unsafe.Pointer(&data[0]))
		g.size = newSize
		return 0, true
	}

	old := g.slice()
	grown, err := unix.Mremap(old, int(newSize), unix.MREMAP_MAYMOVE)
	if err != nil {
		return 0, false
	}

	base := g.size
	g.base = uintptr(unsafe.Pointer(&grown[0]))
	g.size = newSize
	return base, true
}

// ReadWordAt implements Store.
func (g *MmapGrower) ReadWordAt(off int64) uint64 {
	return binary.LittleEndian.Uint64(g.slice()[off : off+8])
}

// WriteWordAt implements Store.
func (g *MmapGrower) WriteWordAt(off int64, v uint64) {
	binary.LittleEndian.PutUint64(g.slice()[off:off+8], v)
}

// ReadAt implements Store.
func (g *MmapGrower) ReadAt(off int64, dst []byte) {
	copy(dst, g.slice()[off:])
}

// WriteAt implements Store.
func (g *MmapGrower) WriteAt(off int64, src []byte) {
	copy(g.slice()[off:], src)
}

// Close unmaps the backing region. The heap must not be used afterward.
func (g *MmapGrower) Close() error {
	if g.base == 0 {
		return nil
	}
	err := unix.Munmap(g.slice())
	g.base, g.size = 0, 0
	return err
}
