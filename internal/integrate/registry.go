package integrate

import "fmt"

// New returns the integrator registered under name.
func New(name string) (Integrator, error) {
	switch name {
	case "leapfrog", "verlet":
		return NewLeapfrog(), nil
	case "euler":
		return NewEuler(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

// Names lists the registered integrator names.
func Names() []string {
	return []string{"leapfrog", "euler"}
}
