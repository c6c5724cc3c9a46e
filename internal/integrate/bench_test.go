package integrate

import (
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/gravity"
)

func benchBodies(n int) body.Bodies {
	b := body.New(n)
	for i := 0; i < n; i++ {
		angle := float64(i) * 2 * math.Pi / float64(n)
		b.Append(1.0,
			body.Vec2{X: math.Cos(angle), Y: math.Sin(angle)},
			body.Vec2{X: -math.Sin(angle) * 0.5, Y: math.Cos(angle) * 0.5},
		)
	}
	return b
}

func BenchmarkLeapfrog3(b *testing.B) {
	bodies := benchBodies(3)
	p := gravity.DefaultParams()
	integ := NewLeapfrog()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bodies = integ.Step(bodies, p, 0.01)
	}
}

func BenchmarkLeapfrog32(b *testing.B) {
	bodies := benchBodies(32)
	p := gravity.DefaultParams()
	integ := NewLeapfrog()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bodies = integ.Step(bodies, p, 0.01)
	}
}

func BenchmarkEuler3(b *testing.B) {
	bodies := benchBodies(3)
	p := gravity.DefaultParams()
	integ := NewEuler()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bodies = integ.Step(bodies, p, 0.01)
	}
}
