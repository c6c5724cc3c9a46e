package integrate

import (
	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/gravity"
)

// Integrator advances a body set by one fixed time step. Implementations are
// value-in/value-out: the input set is never mutated.
type Integrator interface {
	Step(b body.Bodies, p gravity.Params, dt float64) body.Bodies
}

// Leapfrog is velocity-Verlet in kick-drift-kick form. Symplectic, so energy
// drift stays bounded over long runs of a conservative system.
type Leapfrog struct{}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Name() string { return "leapfrog" }

func (l *Leapfrog) Step(b body.Bodies, p gravity.Params, dt float64) body.Bodies {
	out := b.Clone()
	halfDt := 0.5 * dt

	acc := gravity.Accelerations(out.Pos, out.Mass, p)
	for i := range out.Mom {
		out.Mom[i] = out.Mom[i].Add(acc[i].Scale(out.Mass[i] * halfDt))
	}

	for i := range out.Pos {
		out.Pos[i] = out.Pos[i].Add(out.Velocity(i).Scale(dt))
	}

	acc = gravity.Accelerations(out.Pos, out.Mass, p)
	for i := range out.Mom {
		out.Mom[i] = out.Mom[i].Add(acc[i].Scale(out.Mass[i] * halfDt))
	}

	return out
}
