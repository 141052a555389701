// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command allocbench drives a heap.Heap through a random sequence of
// allocate/free/reallocate calls and reports throughput and final
// fragmentation statistics, in the style of the lldb package's lab and
// db_bench drivers.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	heap "github.com/Tatters1996/Malloc-Project"
)

var (
	ops       = flag.Int("n", 200000, "number of operations to perform")
	maxSize   = flag.Int("size", 1024, "maximum single allocation size, in bytes")
	seed      = flag.Int64("seed", 1, "PRNG seed")
	chunkSize = flag.Int64("chunk", 1<<20, "heap growth chunk size, in bytes")
	audit     = flag.Bool("audit", false, "run Audit after every operation (slow)")
)

func main() {
	flag.Parse()

	store := heap.NewSliceGrower()
	h, err := heap.NewHeap(store, heap.Options{ChunkSize: *chunkSize, DebugChecks: *audit})
	if err != nil {
		log.Fatal(err)
	}

	rng := rand.New(rand.NewSource(*seed))
	var live []int64

	start := time.Now()
	var allocs, frees, reallocs, failures int

	for i := 0; i < *ops; i++ {
		switch {
		case len(live) == 0 || rng.Intn(3) == 0:
			p := h.Allocate(int64(1 + rng.Intn(*maxSize)))
			if p == 0 {
				failures++
				continue
			}
			allocs++
			live = append(live, p)

		case rng.Intn(2) == 0:
			idx := rng.Intn(len(live))
			h.Free(live[idx])
			frees++
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]

		default:
			idx := rng.Intn(len(live))
			q := h.Reallocate(live[idx], int64(1+rng.Intn(*maxSize)))
			reallocs++
			if q == 0 {
				failures++
				continue
			}
			live[idx] = q
		}

		if *audit {
			if err := h.Audit(nil, nil); err != nil {
				log.Fatalf("heap corrupt at operation %d: %v", i, err)
			}
		}
	}

	elapsed := time.Since(start)

	var stats heap.AllocStats
	if err := h.Audit(nil, &stats); err != nil {
		log.Fatalf("final Audit failed: %v", err)
	}

	fmt.Printf("ops=%d allocs=%d frees=%d reallocs=%d failures=%d elapsed=%s (%.0f ops/s)\n",
		*ops, allocs, frees, reallocs, failures, elapsed, float64(*ops)/elapsed.Seconds())
	fmt.Printf("heap size=%d used=%d free=%d blocks=%d free_blocks=%d\n",
		stats.TotalBytes, stats.AllocBytes, stats.FreeBytes, stats.Blocks, stats.FreeBlocks)
}
