package gravity

// Params holds the physical constants threaded through every engine call.
// Epsilon both floors pair distances before they divide a force or potential
// term and defines the merge trigger radius: a pair closer than Epsilon is in
// the regime the force law cannot resolve, so it is merged instead.
type Params struct {
	G       float64
	Epsilon float64
}

// DefaultParams matches the reference three-body scenario.
func DefaultParams() Params {
	return Params{
		G:       3.0,
		Epsilon: 0.001,
	}
}

func (p Params) Valid() bool {
	return p.G > 0 && p.Epsilon > 0
}
