package util

import "runtime"

// GetOptimalPoolSize returns the pool size for CPU-bound work:
// min(max(NumCPU * 2, 4), 32).
//
// The 2x factor keeps cores busy while CGO calls block; the floor
// guarantees some parallelism on small machines and the cap bounds
// memory on large ones. Parser pools and the analysis worker pool use
// the same size so workers never block waiting for a parser.
func GetOptimalPoolSize() int {
	size := runtime.NumCPU() * 2
	if size < 4 {
		size = 4
	}
	if size > 32 {
		size = 32
	}
	return size
}

// GetOptimalPoolSizeWithOverride uses override when positive, otherwise
// the CPU-derived default.
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
