// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "testing"

// Scenario 3: freeing a block with both neighbours free must coalesce
// into a single block spanning all three.
func TestCoalesceBothSides(t *testing.T) {
	h := newParanoidHeap(t)

	a := h.allocate(16)
	b := h.allocate(16)
	c := h.allocate(16)
	h.allocate(16) // keeps c's right neighbour allocated

	sizeA := h.blockSize(a)
	sizeB := h.blockSize(b)
	sizeC := h.blockSize(c)

	h.free(a)
	h.free(c)

	// b itself is still allocated: freeing its neighbours a and c must
	// not have touched b.
	if got := h.blockSize(b); got != sizeB {
		t.Fatalf("b's size changed after freeing its neighbours: got %d, want %d", got, sizeB)
	}

	h.free(b)

	// a, b and c should now have merged into one free block based at a.
	merged := h.blockSize(a)
	if want := sizeA + sizeB + sizeC; merged != want {
		t.Fatalf("merged block size = %d, want %d", merged, want)
	}

	// Exactly one of the three offsets should be listed as free: a.
	count := 0
	h.free.forEach(func(n int64) {
		if n == a || n == b || n == c {
			count++
		}
	})
	if count != 1 {
		t.Fatalf("expected exactly one surviving free node among a/b/c, found %d", count)
	}
}

func TestCoalesceLeftOnly(t *testing.T) {
	h := newParanoidHeap(t)

	a := h.allocate(16)
	b := h.allocate(16)
	h.allocate(16) // keeps b's right neighbour allocated

	sizeA := h.blockSize(a)
	sizeB := h.blockSize(b)

	h.free(a)
	h.free(b)

	if got := h.blockSize(a); got != sizeA+sizeB {
		t.Fatalf("merged size = %d, want %d", got, sizeA+sizeB)
	}
}

func TestCoalesceRightOnly(t *testing.T) {
	h := newParanoidHeap(t)

	a := h.allocate(16)
	b := h.allocate(16)
	h.allocate(16) // keeps b's right neighbour allocated

	sizeA := h.blockSize(a)
	sizeB := h.blockSize(b)

	h.free(b)
	h.free(a)

	if got := h.blockSize(a); got != sizeA+sizeB {
		t.Fatalf("merged size = %d, want %d", got, sizeA+sizeB)
	}
}

// TestCoalesceAcrossExtension exercises extendHeap's own coalesce call:
// exhaust the initial chunk, free its trailing block, then force a
// second extension and confirm the new chunk merges with it.
func TestCoalesceAcrossExtension(t *testing.T) {
	h := newParanoidHeap(t)

	// Allocate until no free block can hold another 64-byte request.
	var blocks []int64
	for h.firstFit(requestedBlockSize(64)) != 0 {
		blocks = append(blocks, h.Heap.Allocate(64))
	}
	h.verify("fill")

	last := blocks[len(blocks)-1]
	lastSize := h.blockSize(last)
	h.free(last)

	// A request larger than last's payload can only be placed after an
	// extension; merged with last, the new chunk starts at last.
	q := h.allocate(lastSize)
	if q != last {
		t.Fatalf("expected extension to coalesce with trailing free block at %d, got block at %d", last, q)
	}
	if got := h.blockSize(q); got < lastSize {
		t.Fatalf("expected extension to coalesce with trailing free block, size %d < %d", got, lastSize)
	}
}
