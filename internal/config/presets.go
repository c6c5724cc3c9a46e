package config

import "math"

func trianglePreset() *Config { return DefaultConfig() }

// figure8Preset is the classic figure-eight choreography, approximately.
func figure8Preset() *Config {
	return &Config{
		G:          1.0,
		Epsilon:    DefaultEpsilon,
		Dt:         DefaultDt,
		Steps:      6000,
		Integrator: "leapfrog",
		Bodies: []BodySpec{
			{Mass: 1, Position: [2]float64{-1, 0}, Velocity: [2]float64{0.347, 0.532}},
			{Mass: 1, Position: [2]float64{1, 0}, Velocity: [2]float64{0.347, 0.532}},
			{Mass: 1, Position: [2]float64{0, 0}, Velocity: [2]float64{-0.694, -1.064}},
		},
	}
}

// binaryPreset is two equal masses on a circular mutual orbit.
func binaryPreset() *Config {
	v := math.Sqrt(0.5)
	return &Config{
		G:          1.0,
		Epsilon:    DefaultEpsilon,
		Dt:         DefaultDt,
		Steps:      4000,
		Integrator: "leapfrog",
		Bodies: []BodySpec{
			{Mass: 1, Position: [2]float64{-0.5, 0}, Velocity: [2]float64{0, -v}},
			{Mass: 1, Position: [2]float64{0.5, 0}, Velocity: [2]float64{0, v}},
		},
	}
}

// collapsePreset drops three bodies from rest with a wide merge radius. The
// step is fine enough that infalling bodies cannot cross the merge band
// between ticks, so merges are all but guaranteed.
func collapsePreset() *Config {
	return &Config{
		G:          1.0,
		Epsilon:    0.2,
		Dt:         0.001,
		Steps:      5000,
		Integrator: "leapfrog",
		Bodies: []BodySpec{
			{Mass: 1, Position: [2]float64{-0.5, 0}},
			{Mass: 1, Position: [2]float64{0.5, 0}},
			{Mass: 1, Position: [2]float64{0, 1}},
		},
	}
}

var presets = map[string]func() *Config{
	"triangle": trianglePreset,
	"figure8":  figure8Preset,
	"binary":   binaryPreset,
	"collapse": collapsePreset,
}

// GetPreset returns a fresh copy of the named preset, or nil if unknown.
func GetPreset(name string) *Config {
	fn, ok := presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
