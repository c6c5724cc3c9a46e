package sim

import (
	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/gravity"
)

// Metric accumulates a scalar diagnostic over a run.
type Metric interface {
	Name() string
	Observe(b body.Bodies, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed tick.
type Observer interface {
	OnTick(b body.Bodies, energy, t float64)
}

// Config holds everything a run needs besides the initial bodies.
type Config struct {
	Params        gravity.Params
	Dt            float64
	Steps         int
	ValidateState bool
}

// DefaultConfig matches the reference scenario constants.
func DefaultConfig() Config {
	return Config{
		Params:        gravity.DefaultParams(),
		Dt:            0.01,
		Steps:         2000,
		ValidateState: true,
	}
}

// Result is the per-tick history of a run, indexed by tick starting at 0.
// States[0] and Energies[0] describe the initial conditions.
type Result struct {
	States     []body.Bodies
	Energies   []float64
	Times      []float64
	Metrics    map[string]float64
	Merges     int
	StepsTaken int
	Errors     []error
}

// FinalBodies returns the last recorded state.
func (r *Result) FinalBodies() body.Bodies {
	return r.States[len(r.States)-1]
}

// EnergyDrift returns |E_final - E_0| / |E_0|, or 0 if E_0 is zero.
func (r *Result) EnergyDrift() float64 {
	if len(r.Energies) == 0 || r.Energies[0] == 0 {
		return 0
	}
	e0 := r.Energies[0]
	ef := r.Energies[len(r.Energies)-1]
	drift := (ef - e0) / e0
	if drift < 0 {
		drift = -drift
	}
	return drift
}
