package mdexport

import "runtime"

// Worker pool sizing constants.
const (
	// MinWorkers ensures at least one worker is available.
	MinWorkers = 1

	// MaxWorkers caps concurrent renders; each holds a whole document and
	// its embedded fonts in memory.
	MaxWorkers = 16
)

// ResolveWorkers determines how many documents to render concurrently.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolveWorkers(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// Rendering is CPU-bound: one worker per available CPU
	// (GOMAXPROCS is adjusted by automaxprocs in containers).
	n := runtime.GOMAXPROCS(0)

	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
