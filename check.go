// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"log"
	"sort"

	"github.com/cznic/sortutil"
)

// AllocStats reports aggregate facts about a Heap, filled in by Audit on
// success. Grounded on lldb's AllocStats (falloc.go).
type AllocStats struct {
	TotalBytes int64 // heap span, prologue/epilogue included
	AllocBytes int64 // bytes in allocated block payloads
	FreeBytes  int64 // bytes in free blocks, including their own tags
	Blocks     int64 // total number of blocks, prologue/epilogue excluded
	FreeBlocks int64 // number of free blocks
}

// isAligned reports whether p is a multiple of 16, supplementing mm.c's
// `aligned` debug predicate.
func isAligned(p int64) bool { return p&(alignment-1) == 0 }

// inHeap reports whether the wordSize-byte tag word at store offset off
// falls within the store's own backing range, supplementing mm.c's
// `in_heap` debug predicate. mm.c compares against mem_heap_lo/hi, the
// absolute bounds of the whole mapped region - which includes the
// prologue's header, below Low() - not against the payload-space bounds
// Low()/High() exposed to callers, so this checks the raw store range
// rather than [Low(), High()].
func (h *Heap) inHeap(off int64) bool {
	return off >= 0 && off+wordSize <= h.store.Size()
}

// CheckHeap walks the Default heap and reports whether it is
// structurally sound, logging a diagnostic (tagged with lineno, the
// caller's line number) on the first violation found.
//
// If Default's Options.DebugChecks is false - the default - CheckHeap is
// a no-op that always returns true: under standard (non-debug) use it
// costs nothing to leave check_heap(lineno) calls scattered through
// calling code.
func CheckHeap(lineno int) bool {
	h := defaultHeap()
	if !h.opts.DebugChecks {
		return true
	}

	if err := h.Audit(nil, nil); err != nil {
		log.Printf("heap.CheckHeap(%d): %v", lineno, err)
		return false
	}
	return true
}

// Audit performs a full structural verification of h: it scans forward
// from the prologue, running all four per-block checks (16-byte
// alignment, in-heap-bounds, header==footer, no overlap with the
// successor) on every block - including the prologue itself, which the
// scan treats as an ordinary (always-allocated, zero-payload) block -
// then separately validates the epilogue once the scan reaches it.
// mm.c's original checker is ambiguous about whether its loop covers
// the epilogue; this version fixes that by running every check on
// every block and validating the epilogue once, after the loop.
//
// Finally, Audit compares the set of free blocks found during the scan
// against the free list's own membership, using sortutil.Int64Slice so
// the comparison is independent of either collection's iteration
// order.
//
// Audit stops at the first violation it finds and returns it. report,
// if non-nil, is called once with that violation (its shape mirrors
// lldb's Allocator.Verify log callback); its return value is not
// consulted, and later violations are not reported. stats, if non-nil,
// is filled in when Audit succeeds.
func (h *Heap) Audit(report func(error) bool, stats *AllocStats) error {
	if report == nil {
		report = func(error) bool { return true }
	}

	var st AllocStats
	var scanned []int64

	fail := func(kind CorruptKind, off int64) error {
		err := &ErrCorrupt{Kind: kind, Offset: off}
		report(err)
		return err
	}

	p := h.Low()
	for {
		size := h.blockSize(p)
		if size == 0 {
			break // reached the epilogue
		}

		if !isAligned(p) {
			return fail(ErrMisaligned, p)
		}

		hOff, fOff := headerOff(p), footerOff(p, size)
		if !h.inHeap(hOff) || !h.inHeap(fOff) {
			return fail(ErrOutOfBounds, p)
		}

		headerWord := h.store.ReadWordAt(hOff)
		footerWord := h.store.ReadWordAt(fOff)
		if headerWord != footerWord {
			return fail(ErrTagMismatch, p)
		}

		next := p + size
		if fOff+wordSize > headerOff(next) {
			return fail(ErrOverlap, p)
		}

		if p != h.Low() { // the prologue itself is not a "real" block
			st.Blocks++
			if unpackAlloc(headerWord) {
				st.AllocBytes += size - 2*wordSize
			} else {
				st.FreeBytes += size
				st.FreeBlocks++
				scanned = append(scanned, p)
			}
		}

		p = next
	}

	if size, alloc := h.readTag(headerOff(p)); size != 0 || !alloc {
		return fail(ErrBadEpilogue, p)
	}

	prologueSize, prologueAlloc := h.readTag(headerOff(h.Low()))
	if prologueSize != 2*wordSize || !prologueAlloc {
		return fail(ErrBadPrologue, h.Low())
	}

	var listed []int64
	h.free.forEach(func(n int64) { listed = append(listed, n) })

	sort.Sort(sortutil.Int64Slice(scanned))
	sort.Sort(sortutil.Int64Slice(listed))
	if !int64SliceEqual(scanned, listed) {
		return fail(ErrFreeListMismatch, h.Low())
	}

	st.TotalBytes = h.High() - h.Low() + 1
	if stats != nil {
		*stats = st
	}
	return nil
}

func int64SliceEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i, v := range a {
		if v != b[i] {
			return false
		}
	}
	return true
}
