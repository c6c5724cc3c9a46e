package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/gravity"
)

// EnergyDrift tracks the maximum relative deviation of total energy from its
// first observed value. Only meaningful while no merge occurs; merging is
// inelastic and changes energy by design.
type EnergyDrift struct {
	params   gravity.Params
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(p gravity.Params) *EnergyDrift {
	return &EnergyDrift{params: p}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(b body.Bodies, t float64) {
	energy := gravity.TotalEnergy(b, e.params)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift tracks the maximum deviation of total momentum from its first
// observed value. Conserved by both the integrator and merges, so any growth
// beyond floating-point noise indicates a force-law bug.
type MomentumDrift struct {
	initial  body.Vec2
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{}
}

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(b body.Bodies, t float64) {
	total := b.TotalMomentum()
	if m.samples == 0 {
		m.initial = total
	}
	m.samples++

	drift := total.Sub(m.initial).Norm()
	m.maxDrift = math.Max(m.maxDrift, drift)
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = body.Vec2{}
	m.maxDrift = 0
	m.samples = 0
}

// BodyCount reports the body count last observed.
type BodyCount struct {
	count int
}

func NewBodyCount() *BodyCount {
	return &BodyCount{}
}

func (c *BodyCount) Name() string { return "body_count" }

func (c *BodyCount) Observe(b body.Bodies, t float64) {
	c.count = b.N()
}

func (c *BodyCount) Value() float64 { return float64(c.count) }

func (c *BodyCount) Reset() { c.count = 0 }
