// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Word, alignment and block-size constants: a word is 8 bytes, blocks
// are 16-byte aligned, and the minimum block holds 4 words (header, two
// link words, footer).
const (
	wordSize  = 8
	alignment = 16
	minWords  = 4
	minBlock  = minWords * wordSize // 32

	tagMask = 0x7 // low 3 bits of a boundary-tag word are reserved; only bit 0 is defined
	allocBit = 0x1
)

// align rounds n up to the next multiple of alignment.
func align(n int64) int64 {
	return (n + alignment - 1) &^ (alignment - 1)
}

// pack combines a 16-aligned size with the allocated bit into a single
// boundary-tag word.
func pack(size int64, allocated bool) uint64 {
	w := uint64(size)
	if allocated {
		w |= allocBit
	}
	return w
}

// unpackSize extracts the size field, masking off the reserved low bits.
func unpackSize(w uint64) int64 {
	return int64(w &^ uint64(tagMask))
}

// unpackAlloc extracts the allocated bit.
func unpackAlloc(w uint64) bool {
	return w&allocBit != 0
}

// headerOff returns the offset of p's header: one word before the payload.
func headerOff(p int64) int64 { return p - wordSize }

// footerOff returns the offset of the footer of a size-byte block whose
// payload starts at p.
func footerOff(p, size int64) int64 { return p + size - 2*wordSize }

// readTag reads the (size, allocated) pair stored at a header or footer
// offset.
func (h *Heap) readTag(off int64) (size int64, allocated bool) {
	w := h.store.ReadWordAt(off)
	return unpackSize(w), unpackAlloc(w)
}

// writeTag stamps the header and footer of the size-byte block at payload
// p with (size, allocated). Both words are always written identically -
// the boundary-tag invariant that makes O(1) bidirectional coalescing
// possible.
func (h *Heap) writeTag(p, size int64, allocated bool) {
	w := pack(size, allocated)
	h.store.WriteWordAt(headerOff(p), w)
	h.store.WriteWordAt(footerOff(p, size), w)
}

// blockSize returns the size (header+payload+footer) of the block at
// payload p, read from its header.
func (h *Heap) blockSize(p int64) int64 {
	sz, _ := h.readTag(headerOff(p))
	return sz
}

// blockAllocated reports the allocated bit of the block at payload p.
func (h *Heap) blockAllocated(p int64) bool {
	_, a := h.readTag(headerOff(p))
	return a
}

// nextBlock returns the payload address of the block immediately
// following the block at p.
func (h *Heap) nextBlock(p int64) int64 {
	return p + h.blockSize(p)
}

// prevBlock returns the payload address of the block immediately
// preceding the block at p, by reading the footer word stored just
// before p's header - the word the prologue guarantees is always a
// valid footer for the very first real block.
func (h *Heap) prevBlock(p int64) int64 {
	size, _ := h.readTag(p - 2*wordSize)
	return p - size
}
