package colortransfer

import (
	"runtime"
	"sync"
)

var (
	workerSemOnce sync.Once
	workerSem     chan struct{}
)

// workerCount returns the number of chunks total items are split into.
func workerCount(total, maxWorkers int) int {
	capacity := runtime.GOMAXPROCS(0)
	if maxWorkers > 0 && capacity > maxWorkers {
		capacity = maxWorkers
	}
	if capacity < 1 {
		capacity = 1
	}
	if capacity > total {
		capacity = total
	}
	return capacity
}

// parallelFor splits [0, total) into at most workers contiguous chunks and runs fn on each.
// Chunk indexes are stable for a given total and workers, so reductions can combine
// partial results in chunk order.
func parallelFor(total, workers int, fn func(chunk, start, end int)) {
	if total <= 0 {
		return
	}
	if workers < 1 {
		workers = 1
	}
	if workers > total {
		workers = total
	}
	if workers == 1 {
		fn(0, 0, total)
		return
	}
	workerSemOnce.Do(func() {
		workerSem = make(chan struct{}, runtime.GOMAXPROCS(0))
	})
	step := (total + workers - 1) / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * step
		end := start + step
		if end > total {
			end = total
		}
		if start >= end {
			break
		}
		workerSem <- struct{}{}
		wg.Add(1)
		go func(c, s, e int) {
			defer wg.Done()
			defer func() { <-workerSem }()
			fn(c, s, e)
		}(i, start, end)
	}
	wg.Wait()
}
