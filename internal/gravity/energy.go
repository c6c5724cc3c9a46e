package gravity

import "github.com/san-kum/gravsim/internal/body"

// Kinetic returns Σ ½ m |p/m|².
func Kinetic(b body.Bodies) float64 {
	ke := 0.0
	for i := range b.Mass {
		v := b.Velocity(i)
		ke += 0.5 * b.Mass[i] * v.Norm2()
	}
	return ke
}

// Potential returns -Σ G m_i m_j / r_ij over unordered pairs, with r_ij
// floored at p.Epsilon. Uses the same regularization as the force law so the
// diagnostic stays finite through close approaches.
func Potential(b body.Bodies, p Params) float64 {
	pe := 0.0
	for i := 0; i < b.N(); i++ {
		for j := i + 1; j < b.N(); j++ {
			r := b.Pos[i].Sub(b.Pos[j]).Norm()
			if r < p.Epsilon {
				r = p.Epsilon
			}
			pe -= p.G * b.Mass[i] * b.Mass[j] / r
		}
	}
	return pe
}

// TotalEnergy is the mechanical energy KE + PE. Diagnostic only; it is never
// fed back into the simulation.
func TotalEnergy(b body.Bodies, p Params) float64 {
	return Kinetic(b) + Potential(b, p)
}

// AngularMomentum returns Σ m (x·vy - y·vx) about the origin.
func AngularMomentum(b body.Bodies) float64 {
	l := 0.0
	for i := range b.Mass {
		v := b.Velocity(i)
		l += b.Mass[i] * (b.Pos[i].X*v.Y - b.Pos[i].Y*v.X)
	}
	return l
}
