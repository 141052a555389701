// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Options amend the behavior of NewHeap, mirroring the struct-literal
// Options convention of lldb's sibling dbm package: fields are added,
// never renamed or removed, so existing callers using field names in a
// literal remain source compatible.
type Options struct {
	// ChunkSize is the number of bytes NewHeap's initial extension
	// requests from the Store, and the minimum any later extension
	// requests. It is rounded up to a multiple of 16; zero selects the
	// default of 4096 bytes.
	ChunkSize int64

	// DebugChecks enables CheckHeap. Under standard (non-debug) use
	// CheckHeap is a no-op that always reports success; Go has no
	// compile-time debug flag, so this field is the runtime equivalent.
	// Audit always runs its checks, whatever this field says.
	DebugChecks bool
}

const defaultChunkSize = 4096

func (o Options) chunkSize() int64 {
	if o.ChunkSize <= 0 {
		return defaultChunkSize
	}
	return align(o.ChunkSize)
}
