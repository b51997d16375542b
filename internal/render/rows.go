package render

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// forEachRow calls fn once for every row in [0, height), spreading rows over
// one goroutine per CPU. Rows are handed out through an atomic counter, so
// expensive rows (through the dense middle of an orbital) do not leave the
// other workers idle. fn must only touch its own row.
func forEachRow(height int, fn func(y int)) {
	workers := runtime.NumCPU()
	if workers > height {
		workers = height
	}
	if workers < 1 {
		workers = 1
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				y := int(next.Add(1) - 1)
				if y >= height {
					return
				}
				fn(y)
			}
		}()
	}
	wg.Wait()
}
