package engine

import (
	"runtime"
	"sync"

	"github.com/san-kum/newsflow/internal/flow"
)

// parallelThreshold is the agent count from which tracing is split across
// goroutines.
const parallelThreshold = 256

// traceAll computes every agent's polyline for one frame. The grid is only
// read while tracing, so chunks run concurrently; results keep agent order.
func traceAll(agents []flow.Agent, steps, maxSteps int, stepSize float64, f flow.Field, workers int) [][]flow.Vec2 {
	paths := make([][]flow.Vec2, len(agents))
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || len(agents) < parallelThreshold {
		for i, a := range agents {
			paths[i] = flow.TracePath(a, steps, maxSteps, stepSize, f)
		}
		return paths
	}

	chunk := (len(agents) + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < len(agents); lo += chunk {
		hi := min(lo+chunk, len(agents))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				paths[i] = flow.TracePath(agents[i], steps, maxSteps, stepSize, f)
			}
		}(lo, hi)
	}
	wg.Wait()
	return paths
}
