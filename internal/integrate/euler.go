package integrate

import (
	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/gravity"
)

// Euler is the explicit first-order scheme. Not symplectic: its energy error
// grows with step count, which makes it the baseline the leapfrog drift tests
// compare against.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(b body.Bodies, p gravity.Params, dt float64) body.Bodies {
	out := b.Clone()
	acc := gravity.Accelerations(b.Pos, b.Mass, p)

	for i := range out.Pos {
		out.Pos[i] = out.Pos[i].Add(b.Velocity(i).Scale(dt))
		out.Mom[i] = out.Mom[i].Add(acc[i].Scale(b.Mass[i] * dt))
	}

	return out
}
