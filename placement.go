// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// firstFit scans the free list from its head and returns the payload
// offset of the first free block whose size is >= request, or 0 if none
// qualifies. Scan order is list order (LIFO of frees), never sorted by
// size - that is what makes this first-fit rather than best-fit.
func (h *Heap) firstFit(request int64) int64 {
	for n := h.free.next; n != 0; n = h.free.getNext(n) {
		if h.blockSize(n) >= request {
			return n
		}
	}
	return 0
}

// allocateBlock places a request-byte allocated block at free payload p,
// splitting off a new free block when the leftover can host a legal
// minimum-size block (>= 4 words), and leaving the slack inside the
// allocated block (internal fragmentation) otherwise.
func (h *Heap) allocateBlock(p, request int64) {
	total := h.blockSize(p)
	h.free.unlink(p)

	if total-request >= minBlock {
		h.writeTag(p, request, true)

		q := p + request
		remainder := total - request
		h.writeTag(q, remainder, false)
		h.free.insert(q)
		return
	}

	h.writeTag(p, total, true)
}
