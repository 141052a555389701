// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "github.com/cznic/mathutil"

// Default is the package-level Heap backing the four free functions
// below, for API-compatible single-heap use. It is lazily created on
// first use, backed by a SliceGrower.
var Default *Heap

func defaultHeap() *Heap {
	if Default == nil {
		h, err := NewHeap(NewSliceGrower(), Options{})
		if err != nil {
			panic(err) // an empty SliceGrower never refuses to grow
		}
		Default = h
	}
	return Default
}

// Allocate requests size bytes of storage on the default Heap. See
// (*Heap).Allocate.
func Allocate(size int64) int64 { return defaultHeap().Allocate(size) }

// Free releases the block at payload p on the default Heap. See
// (*Heap).Free.
func Free(p int64) { defaultHeap().Free(p) }

// Reallocate resizes the block at payload p on the default Heap. See
// (*Heap).Reallocate.
func Reallocate(p, size int64) int64 { return defaultHeap().Reallocate(p, size) }

// ZeroAllocate allocates and zeroes n*size bytes on the default Heap.
// See (*Heap).ZeroAllocate.
func ZeroAllocate(n, size int64) int64 { return defaultHeap().ZeroAllocate(n, size) }

// requestedBlockSize computes the total block size (header+payload+
// footer) for a size-byte allocation request: a request of 2 words or
// less is satisfied by the minimum block; larger requests get
// align(size) payload bytes plus the two tag words.
func requestedBlockSize(size int64) int64 {
	if size <= 2*wordSize {
		return minBlock
	}
	return align(size) + 2*wordSize
}

// Allocate requests size bytes of storage and returns the payload
// offset of a new block, or 0 if size is zero or the request cannot be
// satisfied even after extending the heap.
//
// A zero return is the sole failure signal; the heap is left in a legal
// state on failure.
func (h *Heap) Allocate(size int64) int64 {
	if size <= 0 {
		return 0
	}

	request := requestedBlockSize(size)

	if p := h.firstFit(request); p != 0 {
		h.allocateBlock(p, request)
		return p
	}

	p, err := h.extendHeap(h.growthFor(request))
	if err != nil {
		return 0
	}

	if h.blockSize(p) < request {
		// extendHeap's chunk was too small and coalescing with a
		// preceding free block still didn't reach request: this
		// cannot happen given growthFor, but fail safely rather
		// than splitting a too-small block.
		return 0
	}

	h.allocateBlock(p, request)
	return p
}

// growthFor returns how many bytes to request from the Store to
// guarantee a placement of request bytes succeeds, using the
// configured chunk size as a floor so small requests still grow the
// heap in chunkSize-sized steps.
func (h *Heap) growthFor(request int64) int64 {
	return mathutil.MaxInt64(h.opts.chunkSize(), align(request))
}

// Free releases the block at payload p, making it available for reuse.
// Free(0) is a no-op. Calling Free on a pointer not returned by
// Allocate, or on an already-freed pointer, is undefined behavior.
func (h *Heap) Free(p int64) {
	if p == 0 {
		return
	}

	size := h.blockSize(p)
	h.writeTag(p, size, false)
	h.coalesce(p)
}

// Reallocate resizes the block at payload p to size bytes, returning the
// payload offset of the (possibly new) block, or 0 on failure.
//
// Reallocate(0, size) behaves as Allocate(size). Reallocate(p, 0)
// behaves as Free(p) and returns 0. If size fits in the block's current
// payload, p is returned unchanged - no shrink, no split, no in-place
// expansion into a free successor is attempted.
func (h *Heap) Reallocate(p, size int64) int64 {
	if p == 0 {
		return h.Allocate(size)
	}
	if size <= 0 {
		h.Free(p)
		return 0
	}

	oldPayload := h.blockSize(p) - 2*wordSize
	if size <= oldPayload {
		return p
	}

	q := h.Allocate(size)
	if q == 0 {
		return 0
	}

	n := size
	if oldPayload < n {
		n = oldPayload
	}
	var buf [256]byte
	copyPayload(h.store, q, p, n, buf[:])

	h.Free(p)
	return q
}

// copyPayload copies n bytes from the src payload to the dst payload
// through the Store's byte-range primitives, chunked through scratch to
// avoid assuming a Store can hand out an aliasable slice spanning both
// addresses (true for SliceGrower, not necessarily for every Store).
func copyPayload(store Store, dst, src, n int64, scratch []byte) {
	for n > 0 {
		chunk := int64(len(scratch))
		if n < chunk {
			chunk = n
		}
		store.ReadAt(src, scratch[:chunk])
		store.WriteAt(dst, scratch[:chunk])
		src += chunk
		dst += chunk
		n -= chunk
	}
}

// ZeroAllocate allocates n*size bytes, zero-fills them and returns the
// payload offset, or 0 if n or size is zero, the multiplication
// overflows, or the allocation itself fails.
func (h *Heap) ZeroAllocate(n, size int64) int64 {
	if n <= 0 || size <= 0 {
		return 0
	}

	total := n * size
	if total/n != size { // overflow check, mirroring the original calloc
		return 0
	}

	p := h.Allocate(total)
	if p == 0 {
		return 0
	}

	var zero [256]byte
	remaining := total
	off := p
	for remaining > 0 {
		chunk := int64(len(zero))
		if remaining < chunk {
			chunk = remaining
		}
		h.store.WriteAt(off, zero[:chunk])
		off += chunk
		remaining -= chunk
	}

	return p
}
