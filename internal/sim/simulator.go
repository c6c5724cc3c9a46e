package sim

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/collide"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/integrate"
)

// Simulator runs the tick pipeline: integrate, resolve collisions, record
// energy. Ticks are strictly sequential; a Simulator is not safe for
// concurrent use.
type Simulator struct {
	integ     integrate.Integrator
	metrics   []Metric
	observers []Observer
}

func New(integ integrate.Integrator) *Simulator {
	return &Simulator{
		integ:     integ,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run advances b0 for cfg.Steps ticks and returns the full history. The
// initial state is validated once; inside the loop the engine is error-free
// by construction (distances are floored, empty sets short-circuit).
func (s *Simulator) Run(ctx context.Context, b0 body.Bodies, cfg Config) (*Result, error) {
	if err := s.validate(b0, cfg); err != nil {
		return nil, err
	}

	result := &Result{
		States:   make([]body.Bodies, 0, cfg.Steps+1),
		Energies: make([]float64, 0, cfg.Steps+1),
		Times:    make([]float64, 0, cfg.Steps+1),
		Metrics:  make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	b := b0.Clone()
	t := 0.0

	result.States = append(result.States, b.Clone())
	result.Energies = append(result.Energies, gravity.TotalEnergy(b, cfg.Params))
	result.Times = append(result.Times, t)

	for step := 0; step < cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		b = s.integ.Step(b, cfg.Params, cfg.Dt)

		var merges []collide.Merge
		b, merges = collide.Resolve(b, cfg.Params.Epsilon)
		for _, m := range merges {
			logrus.WithFields(logrus.Fields{
				"step": step,
				"i":    m.I,
				"j":    m.J,
				"mass": m.Mass,
			}).Debug("bodies merged")
		}
		result.Merges += len(merges)

		t += cfg.Dt
		energy := gravity.TotalEnergy(b, cfg.Params)

		if cfg.ValidateState && !b.IsValid() {
			err := &body.SimulationError{Step: step, Time: t, Wrapped: body.ErrUnstable}
			result.Errors = append(result.Errors, err)
			break
		}

		for _, m := range s.metrics {
			m.Observe(b, t)
		}
		for _, o := range s.observers {
			o.OnTick(b, energy, t)
		}

		result.States = append(result.States, b.Clone())
		result.Energies = append(result.Energies, energy)
		result.Times = append(result.Times, t)
		result.StepsTaken++
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback advances until cfg.Steps ticks have run or the callback
// returns false. No history is retained; the callback owns the snapshots.
func (s *Simulator) RunWithCallback(ctx context.Context, b0 body.Bodies, cfg Config, callback func(b body.Bodies, energy, t float64) bool) error {
	if err := s.validate(b0, cfg); err != nil {
		return err
	}

	b := b0.Clone()
	t := 0.0

	for step := 0; step < cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		b = s.integ.Step(b, cfg.Params, cfg.Dt)
		b, _ = collide.Resolve(b, cfg.Params.Epsilon)
		t += cfg.Dt

		if cfg.ValidateState && !b.IsValid() {
			return &body.SimulationError{Step: step, Time: t, Wrapped: body.ErrUnstable}
		}

		if !callback(b, gravity.TotalEnergy(b, cfg.Params), t) {
			return nil
		}
	}

	return nil
}

func (s *Simulator) validate(b0 body.Bodies, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	if !cfg.Params.Valid() {
		return fmt.Errorf("%w: G=%f epsilon=%f", body.ErrParameterBounds, cfg.Params.G, cfg.Params.Epsilon)
	}
	if !b0.IsValid() {
		return body.ErrInvalidBodies
	}
	return nil
}
