package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/gravity"
)

const (
	DefaultG       = 3.0
	DefaultEpsilon = 0.001
	DefaultDt      = 0.01
	DefaultSteps   = 2000
)

// BodySpec describes one body in configuration units. Velocity, not momentum:
// momenta are derived at construction so masses can be edited independently.
type BodySpec struct {
	Mass     float64    `yaml:"mass"`
	Position [2]float64 `yaml:"position"`
	Velocity [2]float64 `yaml:"velocity"`
}

type Config struct {
	G          float64    `yaml:"g"`
	Epsilon    float64    `yaml:"epsilon"`
	Dt         float64    `yaml:"dt"`
	Steps      int        `yaml:"steps"`
	Integrator string     `yaml:"integrator"`
	Bodies     []BodySpec `yaml:"bodies"`
}

// DefaultConfig is the reference scenario: three bodies on an equilateral
// triangle with a rough orbital balance.
func DefaultConfig() *Config {
	h := math.Sqrt(3) / 2
	return &Config{
		G:          DefaultG,
		Epsilon:    DefaultEpsilon,
		Dt:         DefaultDt,
		Steps:      DefaultSteps,
		Integrator: "leapfrog",
		Bodies: []BodySpec{
			{Mass: 100, Position: [2]float64{0, 1}, Velocity: [2]float64{0, 1.5}},
			{Mass: 100, Position: [2]float64{-h, -0.5}, Velocity: [2]float64{-h, -0.5}},
			{Mass: 200, Position: [2]float64{h, -0.5}, Velocity: [2]float64{h, -0.5}},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.G <= 0 {
		return fmt.Errorf("g must be positive, got %f", c.G)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %f", c.Epsilon)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", c.Steps)
	}
	if len(c.Bodies) == 0 {
		return fmt.Errorf("at least one body required")
	}
	for i, b := range c.Bodies {
		if b.Mass <= 0 {
			return fmt.Errorf("body %d: mass must be positive, got %f", i, b.Mass)
		}
	}
	return nil
}

func (c *Config) Params() gravity.Params {
	return gravity.Params{G: c.G, Epsilon: c.Epsilon}
}

// InitialBodies builds the body set, converting velocities to momenta.
func (c *Config) InitialBodies() body.Bodies {
	b := body.New(len(c.Bodies))
	for _, spec := range c.Bodies {
		pos := body.Vec2{X: spec.Position[0], Y: spec.Position[1]}
		mom := body.Vec2{X: spec.Velocity[0], Y: spec.Velocity[1]}.Scale(spec.Mass)
		b.Append(spec.Mass, pos, mom)
	}
	return b
}
