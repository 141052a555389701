// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Heap is a single, monotonically extensible heap: a Store, the free
// list anchored over it, and the payload offset of its prologue. The
// process-wide base pointer and free-list sentinel are packaged into
// this explicit context passed to every operation, rather than kept as
// package globals; Default (see api.go) supplies the package-level
// convenience API on top of one such Heap.
type Heap struct {
	store Store
	free  freeList
	base  int64 // payload offset of the prologue
	opts  Options
}

// NewHeap lays down a fresh prologue/epilogue pair on store and performs
// the initial chunk extension: 4 words are requested first ([pad,
// prologue-header, prologue-footer, epilogue-header]), then the heap is
// grown by the configured chunk size (4096 bytes by default).
//
// store must be empty (Size() == 0); NewHeap does not support attaching
// to a heap region another Heap has already initialized.
func NewHeap(store Store, opts Options) (*Heap, error) {
	h := &Heap{store: store, opts: opts}
	h.free.initFreeList(store)

	base, ok := store.Grow(4 * wordSize)
	if !ok {
		return nil, &ErrOOM{Requested: 4 * wordSize}
	}

	store.WriteWordAt(base, 0) // alignment padding
	store.WriteWordAt(base+wordSize, pack(2*wordSize, true))   // prologue header
	store.WriteWordAt(base+2*wordSize, pack(2*wordSize, true)) // prologue footer
	store.WriteWordAt(base+3*wordSize, pack(0, true))          // epilogue header
	h.base = base + 2*wordSize

	if _, err := h.extendHeap(opts.chunkSize()); err != nil {
		return nil, err
	}

	return h, nil
}

// Low returns the lowest valid payload address in the heap: the
// prologue's own (zero-length) payload position.
func (h *Heap) Low() int64 { return h.base }

// High returns the highest valid byte offset in the heap, inclusive:
// the last byte of the current epilogue header word.
func (h *Heap) High() int64 { return h.store.Size() - 1 }

// extendHeap requests bytes (already 16-aligned) more storage from the
// Store, stamps the newly acquired region as one free block, re-stamps
// the epilogue at the new high-water mark, and coalesces the new block
// with whatever free block, if any, immediately precedes it.
func (h *Heap) extendHeap(bytes int64) (int64, error) {
	p, ok := h.store.Grow(bytes)
	if !ok {
		return 0, &ErrOOM{Requested: bytes}
	}

	h.writeTag(p, bytes, false)
	h.store.WriteWordAt(h.store.Size()-wordSize, pack(0, true))

	return h.coalesce(p), nil
}
