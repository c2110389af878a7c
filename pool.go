package cbz2pdf

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers keeps the batch sequential.
	MinWorkers = 1

	// MaxWorkers caps parallel conversions; each holds a whole decoded archive in memory.
	MaxWorkers = 8

	// cpuDivisor leaves headroom for image decoding and compression.
	cpuDivisor = 2
)

// ResolveWorkers determines the worker count.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
