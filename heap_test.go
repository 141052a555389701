// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "testing"

func TestInitLayout(t *testing.T) {
	h := newParanoidHeap(t)

	// 16 bytes of overhead sit inside [Low(), High()] alongside the one
	// free block: the prologue's own footer word (at Low()) plus the
	// fresh epilogue header word NewHeap stamps at the new high-water
	// mark.
	if low, high := h.Low(), h.High(); low != 16 {
		t.Fatalf("Low() = %d, want 16", low)
	} else if want := low + 4096 - 1 + 16; high != want {
		t.Fatalf("High() = %d, want %d", high, want)
	}

	if !h.free.empty() {
		// the initial 4096-byte chunk should have coalesced into one
		// free block, reachable from the free list.
	} else {
		t.Fatal("free list empty after init")
	}

	size := h.blockSize(h.free.next)
	if size != 4096 {
		t.Fatalf("initial free block size = %d, want 4096", size)
	}
}

// First allocation after init.
func TestFirstAllocation(t *testing.T) {
	h := newParanoidHeap(t)

	p := h.allocate(40)
	if p == 0 {
		t.Fatal("Allocate(40) failed")
	}
	if p%16 != 0 {
		t.Fatalf("payload %d not 16-aligned", p)
	}
	if p < h.Low() || p > h.High() {
		t.Fatalf("payload %d outside heap bounds [%d, %d]", p, h.Low(), h.High())
	}
	if got := h.blockSize(p); got != 64 {
		t.Fatalf("block size = %d, want 64 (align(40)+16)", got)
	}
}

// Scenario 2: splitting a single large free block.
func TestSplit(t *testing.T) {
	h := newParanoidHeap(t)

	p := h.allocate(16)
	if got := h.blockSize(p); got != 32 {
		t.Fatalf("allocated block size = %d, want 32", got)
	}

	if h.free.empty() {
		t.Fatal("expected a remainder free block after split")
	}
	remainder := h.free.next
	if got := h.blockSize(remainder); got != 4096-32 {
		t.Fatalf("remainder free block size = %d, want %d", got, 4096-32)
	}
}

// Scenario 4: a free block too small to split stays whole.
func TestNoSplitBoundary(t *testing.T) {
	h := newParanoidHeap(t)

	// Carve out exactly one 48-byte free block, isolated by allocated
	// neighbours, by allocating around it.
	a := h.allocate(16) // 32 bytes
	b := h.allocate(32) // 48 bytes
	c := h.allocate(16) // 32 bytes
	h.free(b)

	before := h.blockSize(b)
	if before != 48 {
		t.Fatalf("target free block size = %d, want 48", before)
	}

	// A request needing 32 bytes leaves 16 residue (< 4 words == 32):
	// must not split.
	q := h.allocate(16)
	if q != b {
		t.Fatalf("expected first-fit to reuse freed block at %d, got %d", b, q)
	}
	if got := h.blockSize(q); got != before {
		t.Fatalf("block size after no-split allocation = %d, want %d (whole block)", got, before)
	}

	h.free(a)
	h.free(c)
	h.free(q)
}

// Law L1: free-then-allocate identity of layout, when nothing
// intervenes between the two calls.
func TestFreeThenAllocateIdentity(t *testing.T) {
	h := newParanoidHeap(t)

	p := h.allocate(64)
	h.free(p)
	q := h.allocate(32)
	if q != p {
		t.Fatalf("Allocate after Free = %d, want %d (LIFO first-fit hit)", q, p)
	}
}

func TestAllocateZeroReturnsZero(t *testing.T) {
	h := newParanoidHeap(t)
	if p := h.allocate(0); p != 0 {
		t.Fatalf("Allocate(0) = %d, want 0", p)
	}
}

func TestFreeNilIsNoop(t *testing.T) {
	h := newParanoidHeap(t)
	h.free(0) // must not panic, must not disturb the heap
}
