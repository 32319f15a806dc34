package compute

import (
	"sync"
	"testing"
)

func TestSweepCoversEveryRowOnce(t *testing.T) {
	b := NewCPUBackend()

	for _, rows := range []int{0, 1, 7, parallelThreshold, 257} {
		var mu sync.Mutex
		seen := make(map[int]int)

		b.Sweep(rows, func(y int) {
			mu.Lock()
			seen[y]++
			mu.Unlock()
		})

		if len(seen) != rows {
			t.Errorf("rows=%d: covered %d rows", rows, len(seen))
		}
		for y, count := range seen {
			if count != 1 {
				t.Errorf("rows=%d: row %d visited %d times", rows, y, count)
			}
			if y < 0 || y >= rows {
				t.Errorf("rows=%d: out-of-range row %d", rows, y)
			}
		}
	}
}

func TestSweepBarrier(t *testing.T) {
	// Sweep must not return before every row callback has finished.
	b := NewCPUBackend()
	rows := parallelThreshold * 2

	results := make([]int, rows)
	b.Sweep(rows, func(y int) {
		results[y] = y + 1
	})

	for y, v := range results {
		if v != y+1 {
			t.Fatalf("row %d incomplete after Sweep returned", y)
		}
	}
}

func TestAutoSelectBackend(t *testing.T) {
	b := AutoSelectBackend()
	if !b.Available() {
		t.Error("auto-selected backend must be available")
	}
	if b.Name() == "" {
		t.Error("backend must have a name")
	}
}
