// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "testing"

// paranoidHeap wraps a *Heap and asserts Audit after every mutating
// call, grounded on lldb's pAllocator (falloc_test.go): a thin
// self-verifying wrapper used throughout this package's tests instead
// of calling Audit by hand after each operation.
type paranoidHeap struct {
	*Heap
	t *testing.T
}

func newParanoidHeap(t *testing.T) *paranoidHeap {
	t.Helper()
	h, err := NewHeap(NewSliceGrower(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	p := &paranoidHeap{Heap: h, t: t}
	p.verify("NewHeap")
	return p
}

func (p *paranoidHeap) verify(op string) {
	p.t.Helper()
	if err := p.Heap.Audit(nil, nil); err != nil {
		p.t.Fatalf("%s: heap corrupt: %v", op, err)
	}
}

func (p *paranoidHeap) allocate(size int64) int64 {
	p.t.Helper()
	r := p.Heap.Allocate(size)
	p.verify("Allocate")
	return r
}

func (p *paranoidHeap) free(ptr int64) {
	p.t.Helper()
	p.Heap.Free(ptr)
	p.verify("Free")
}

func (p *paranoidHeap) reallocate(ptr, size int64) int64 {
	p.t.Helper()
	r := p.Heap.Reallocate(ptr, size)
	p.verify("Reallocate")
	return r
}

func (p *paranoidHeap) zeroAllocate(n, size int64) int64 {
	p.t.Helper()
	r := p.Heap.ZeroAllocate(n, size)
	p.verify("ZeroAllocate")
	return r
}

// oomGrower wraps a Store and refuses Grow once the backing size would
// exceed limit, simulating a host that refuses to extend the heap.
type oomGrower struct {
	Store
	limit int64
}

func (g *oomGrower) Grow(n int64) (int64, bool) {
	if g.Store.Size()+n > g.limit {
		return 0, false
	}
	return g.Store.Grow(n)
}
