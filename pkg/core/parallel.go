package core

import (
	"runtime"
	"sync"
)

// ParallelFor splits [0,n) into contiguous spans and runs fn on each span
// from its own goroutine. workers <= 1 runs serially on the caller's
// goroutine; workers == 0 uses one worker per CPU. fn must be safe to call
// concurrently on disjoint spans.
func ParallelFor(n, workers int, fn func(lo, hi int)) {
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if workers <= 1 || n <= 1 {
		fn(0, n)
		return
	}
	if workers > n {
		workers = n
	}

	span := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += span {
		hi := lo + span
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
