package body

import "math"

// Vec2 is a 2D vector in simulation units.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(factor float64) Vec2 {
	return Vec2{v.X * factor, v.Y * factor}
}

func (v Vec2) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vec2) Norm2() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Bodies is an ordered set of point masses. Indices are reassigned after
// every merge; nothing downstream may rely on index stability across ticks.
type Bodies struct {
	Mass []float64
	Pos  []Vec2
	Mom  []Vec2
}

// New allocates an empty set with capacity for n bodies.
func New(n int) Bodies {
	return Bodies{
		Mass: make([]float64, 0, n),
		Pos:  make([]Vec2, 0, n),
		Mom:  make([]Vec2, 0, n),
	}
}

// Append adds one body. Mass must be positive.
func (b *Bodies) Append(mass float64, pos, mom Vec2) {
	b.Mass = append(b.Mass, mass)
	b.Pos = append(b.Pos, pos)
	b.Mom = append(b.Mom, mom)
}

func (b Bodies) N() int { return len(b.Mass) }

func (b Bodies) Clone() Bodies {
	c := Bodies{
		Mass: make([]float64, len(b.Mass)),
		Pos:  make([]Vec2, len(b.Pos)),
		Mom:  make([]Vec2, len(b.Mom)),
	}
	copy(c.Mass, b.Mass)
	copy(c.Pos, b.Pos)
	copy(c.Mom, b.Mom)
	return c
}

// Velocity returns momentum/mass for body i.
func (b Bodies) Velocity(i int) Vec2 {
	return b.Mom[i].Scale(1.0 / b.Mass[i])
}

func (b Bodies) TotalMass() float64 {
	total := 0.0
	for _, m := range b.Mass {
		total += m
	}
	return total
}

func (b Bodies) TotalMomentum() Vec2 {
	var total Vec2
	for _, p := range b.Mom {
		total = total.Add(p)
	}
	return total
}

// CenterOfMass returns the mass-weighted mean position. Zero for an empty set.
func (b Bodies) CenterOfMass() Vec2 {
	total := b.TotalMass()
	if total == 0 {
		return Vec2{}
	}
	var com Vec2
	for i, m := range b.Mass {
		com = com.Add(b.Pos[i].Scale(m))
	}
	return com.Scale(1.0 / total)
}

func (b Bodies) IsValid() bool {
	for i, m := range b.Mass {
		if m <= 0 || math.IsNaN(m) || math.IsInf(m, 0) {
			return false
		}
		if !b.Pos[i].IsValid() || !b.Mom[i].IsValid() {
			return false
		}
	}
	return true
}
