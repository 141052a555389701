// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "fmt"

// CorruptKind enumerates the structural checks CheckHeap/Audit perform.
type CorruptKind int

// CorruptKind values, one per structural check Audit performs.
const (
	_ CorruptKind = iota
	ErrMisaligned
	ErrOutOfBounds
	ErrTagMismatch
	ErrOverlap
	ErrBadPrologue
	ErrBadEpilogue
	ErrFreeListMismatch
)

func (k CorruptKind) String() string {
	switch k {
	case ErrMisaligned:
		return "block not 16-byte aligned"
	case ErrOutOfBounds:
		return "block outside heap bounds"
	case ErrTagMismatch:
		return "header does not match footer"
	case ErrOverlap:
		return "block overlaps its successor"
	case ErrBadPrologue:
		return "malformed prologue"
	case ErrBadEpilogue:
		return "malformed epilogue"
	case ErrFreeListMismatch:
		return "free list does not match free blocks"
	default:
		return "unknown corruption"
	}
}

// ErrInvalid reports an invalid argument to a public call. LoadDump returns
// it for a blob with a bad magic or a non-empty store; the allocation
// methods report failure with a zero offset instead.
type ErrInvalid struct {
	Src string
	Arg interface{}
}

func (e *ErrInvalid) Error() string {
	return fmt.Sprintf("%s: invalid argument %v", e.Src, e.Arg)
}

// ErrCorrupt reports a structural inconsistency found by CheckHeap or
// Audit at the given byte offset into the heap.
type ErrCorrupt struct {
	Kind   CorruptKind
	Offset int64
}

func (e *ErrCorrupt) Error() string {
	return fmt.Sprintf("heap corrupt at offset %#x: %s", e.Offset, e.Kind)
}

// ErrOOM reports that the host heap-growth primitive refused to extend the
// heap by Requested bytes. The heap is left in a legal state.
type ErrOOM struct {
	Requested int64
}

func (e *ErrOOM) Error() string {
	return fmt.Sprintf("heap: out of memory growing by %d bytes", e.Requested)
}
