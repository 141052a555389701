// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"encoding/binary"
	"fmt"

	"github.com/cznic/zappy"
)

// dumpMagic tags a Dump blob so LoadDump can refuse to load unrelated data.
const dumpMagic = "HEAPDUMP"

// Dump is a supplementary debugging feature, not part of the public
// allocation API: it captures the raw heap bytes plus the free-list
// offsets, zappy-compresses the result the way lldb/db_bench benchmarks
// zappy/snappy-compressed payloads, and returns a blob a corrupted-heap
// repro can stash and LoadDump can replay later. Dump requires a Store
// that supports reading its full backing range via ReadAt; SliceGrower
// and MmapGrower both qualify.
func (h *Heap) Dump() ([]byte, error) {
	raw := make([]byte, h.store.Size())
	h.store.ReadAt(0, raw)

	var free []int64
	h.free.forEach(func(n int64) { free = append(free, n) })

	payload := make([]byte, 0, len(raw)+16*len(free)+32)
	payload = append(payload, []byte(dumpMagic)...)
	payload = appendInt64(payload, h.base)
	payload = appendInt64(payload, int64(len(free)))
	for _, n := range free {
		payload = appendInt64(payload, n)
	}
	payload = append(payload, raw...)

	return zappy.Encode(nil, payload)
}

// LoadDump reconstructs a Heap from a blob produced by Dump, using store
// as the (empty) backing Store for the restored bytes. It does not
// re-run Audit; callers that want to confirm the restored heap is
// structurally sound should call Audit explicitly.
func LoadDump(store Store, blob []byte) (*Heap, error) {
	payload, err := zappy.Decode(nil, blob)
	if err != nil {
		return nil, err
	}

	if len(payload) < len(dumpMagic) || string(payload[:len(dumpMagic)]) != dumpMagic {
		return nil, &ErrInvalid{Src: "heap.LoadDump", Arg: "bad magic"}
	}
	payload = payload[len(dumpMagic):]

	base, payload := readInt64(payload)
	n, payload := readInt64(payload)

	free := make([]int64, n)
	for i := range free {
		free[i], payload = readInt64(payload)
	}

	if store.Size() != 0 {
		return nil, &ErrInvalid{Src: "heap.LoadDump", Arg: "store not empty"}
	}
	if _, ok := store.Grow(int64(len(payload))); !ok {
		return nil, &ErrOOM{Requested: int64(len(payload))}
	}
	store.WriteAt(0, payload)

	h := &Heap{store: store, base: base}
	h.free.initFreeList(store)
	for i := len(free) - 1; i >= 0; i-- {
		// Reinsert in reverse list order so the restored LIFO order
		// matches what was dumped.
		h.free.insert(free[i])
	}

	return h, nil
}

func appendInt64(b []byte, v int64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v))
	return append(b, tmp[:]...)
}

func readInt64(b []byte) (int64, []byte) {
	if len(b) < 8 {
		panic(fmt.Sprintf("heap: truncated dump (%d bytes left)", len(b)))
	}
	return int64(binary.LittleEndian.Uint64(b[:8])), b[8:]
}
