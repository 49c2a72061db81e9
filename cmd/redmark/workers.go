package main

import (
	"fmt"
	"runtime"
)

// maxWorkers caps parallel renders.
const maxWorkers = 32

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// resolveWorkers returns the number of render goroutines for files jobs.
// Zero means auto: one per usable CPU. The result never exceeds files and
// is at least 1.
func resolveWorkers(requested, files int) int {
	n := requested
	if n == 0 {
		n = runtime.GOMAXPROCS(0)
	}
	n = min(n, maxWorkers, files)
	return max(n, 1)
}
