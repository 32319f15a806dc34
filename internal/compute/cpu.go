package compute

import (
	"runtime"
	"sync"
)

// parallelThreshold is the row count below which fanning out to
// goroutines costs more than it saves.
const parallelThreshold = 64

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers: runtime.NumCPU(),
	}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}

func (c *CPUBackend) Sweep(rows int, fn func(y int)) {
	if rows < parallelThreshold || c.workers < 2 {
		for y := 0; y < rows; y++ {
			fn(y)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := (rows + c.workers - 1) / c.workers

	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			start := worker * chunkSize
			end := start + chunkSize
			if end > rows {
				end = rows
			}

			for y := start; y < end; y++ {
				fn(y)
			}
		}(w)
	}

	wg.Wait()
}
