// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*

Package heap implements a single-heap dynamic memory allocator: explicit
circular doubly-linked free list, boundary-tag blocks, first-fit placement
with splitting, and immediate bidirectional coalescing.

The heap is a single contiguous, monotonically extensible region supplied by
a host-provided Store. Unlike a segregated/FLT style allocator, there is
exactly one free list, scanned first-fit. There is no persistence, no
thread safety and no size classes.

Block layout

Every block is bracketed by a 1-word header and a 1-word footer, both
holding the same packed (size, allocated-bit) word. The payload pointer
(the value returned from Allocate) always refers to the byte immediately
following the header; all address arithmetic is derived from that
convention, exactly as in a textbook boundary-tag allocator.

A synthetic prologue (an always-allocated, zero-payload 2-word block) and
epilogue (a 0-size, always-allocated header) bracket the heap so the
coalescer never needs to special-case the heap ends.

Basic usage

	h, err := heap.NewHeap(heap.NewSliceGrower(), heap.Options{})
	...
	p := h.Allocate(40)
	...
	h.Free(p)

A package-level default Heap backs Allocate/Free/Reallocate/ZeroAllocate
for single-heap, API-compatible use.

*/
package heap
