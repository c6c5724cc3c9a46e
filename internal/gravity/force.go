package gravity

import (
	"runtime"
	"sync"

	"github.com/san-kum/gravsim/internal/body"
)

// parallelThreshold is the body count at which the pairwise loop switches to
// the chunked worker path. Below it goroutine overhead dominates.
const parallelThreshold = 16

// Accelerations computes the gravitational acceleration on every body from
// every other body. Pair distances are floored at p.Epsilon before dividing,
// so the result is finite even for coincident bodies. O(N²).
func Accelerations(pos []body.Vec2, mass []float64, p Params) []body.Vec2 {
	n := len(pos)
	acc := make([]body.Vec2, n)
	if n < 2 {
		return acc
	}

	if n < parallelThreshold {
		accelSerial(pos, mass, p, acc)
		return acc
	}
	accelParallel(pos, mass, p, acc)
	return acc
}

// accelSerial accumulates each pair once, using action-reaction symmetry.
func accelSerial(pos []body.Vec2, mass []float64, p Params, acc []body.Vec2) {
	for i := 0; i < len(pos); i++ {
		for j := i + 1; j < len(pos); j++ {
			rvec := pos[j].Sub(pos[i])
			r := rvec.Norm()
			if r < p.Epsilon {
				r = p.Epsilon
			}
			r3inv := 1.0 / (r * r * r)

			acc[i] = acc[i].Add(rvec.Scale(p.G * mass[j] * r3inv))
			acc[j] = acc[j].Sub(rvec.Scale(p.G * mass[i] * r3inv))
		}
	}
}

// accelParallel splits the outer loop across workers. Each worker owns a
// disjoint slice of acc, so no locking is needed; each pair is visited twice.
func accelParallel(pos []body.Vec2, mass []float64, p Params, acc []body.Vec2) {
	n := len(pos)
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				var ai body.Vec2
				for j := 0; j < n; j++ {
					if i == j {
						continue
					}
					rvec := pos[j].Sub(pos[i])
					r := rvec.Norm()
					if r < p.Epsilon {
						r = p.Epsilon
					}
					r3inv := 1.0 / (r * r * r)
					ai = ai.Add(rvec.Scale(p.G * mass[j] * r3inv))
				}
				acc[i] = ai
			}
		}(start, end)
	}
	wg.Wait()
}
