// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// coalesce merges the free, not-yet-listed block at payload p with any
// immediately adjacent free neighbours and inserts the (possibly merged)
// result into the free list. It returns the payload offset of the
// resulting free block, which may be p, the previous block, or (when
// both neighbours are free) the previous block after absorbing both p
// and its right neighbour.
//
// p's own header/footer must already be stamped free before calling
// coalesce; that is the responsibility of Free and extendHeap.
func (h *Heap) coalesce(p int64) int64 {
	prevAllocated := true
	if h.inBounds(h.prevBlock(p)) {
		prevAllocated = h.blockAllocated(h.prevBlock(p))
	}

	nextAllocated := true
	if h.inBounds(h.nextBlock(p)) {
		nextAllocated = h.blockAllocated(h.nextBlock(p))
	}

	size := h.blockSize(p)

	switch {
	case prevAllocated && nextAllocated:
		h.free.insert(p)
		return p

	case prevAllocated && !nextAllocated:
		next := h.nextBlock(p)
		h.free.unlink(next)
		size += h.blockSize(next)
		h.writeTag(p, size, false)
		h.free.insert(p)
		return p

	case !prevAllocated && nextAllocated:
		prev := h.prevBlock(p)
		size += h.blockSize(prev)
		h.writeTag(prev, size, false)
		return prev

	default: // both free
		prev := h.prevBlock(p)
		next := h.nextBlock(p)
		h.free.unlink(next)
		size += h.blockSize(prev) + h.blockSize(next)
		h.writeTag(prev, size, false)
		return prev
	}
}

// inBounds is a belt-and-braces bounds test: the prologue/epilogue
// sentinels already force prevAllocated and nextAllocated to true at
// the heap ends, so this check is redundant in a correctly initialized
// heap and is never the sole reason a merge is skipped.
func (h *Heap) inBounds(payload int64) bool {
	return payload >= h.Low() && payload <= h.High()
}
