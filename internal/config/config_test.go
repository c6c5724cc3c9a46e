package config

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 3.0, cfg.G)
	assert.Equal(t, 0.001, cfg.Epsilon)
	assert.Equal(t, 0.01, cfg.Dt)
	assert.Equal(t, 2000, cfg.Steps)
	require.Len(t, cfg.Bodies, 3)
	assert.Equal(t, []float64{100, 100, 200}, []float64{
		cfg.Bodies[0].Mass, cfg.Bodies[1].Mass, cfg.Bodies[2].Mass,
	})
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero g", func(c *Config) { c.G = 0 }},
		{"negative epsilon", func(c *Config) { c.Epsilon = -1 }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"zero steps", func(c *Config) { c.Steps = 0 }},
		{"no bodies", func(c *Config) { c.Bodies = nil }},
		{"zero mass", func(c *Config) { c.Bodies[0].Mass = 0 }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		assert.Error(t, cfg.Validate(), tc.name)
	}
}

func TestInitialBodiesConvertsVelocity(t *testing.T) {
	cfg := DefaultConfig()
	b := cfg.InitialBodies()

	require.Equal(t, 3, b.N())
	// body 0: velocity (0, 1.5), mass 100 -> momentum (0, 150)
	assert.InDelta(t, 0.0, b.Mom[0].X, 1e-12)
	assert.InDelta(t, 150.0, b.Mom[0].Y, 1e-12)

	// total momentum of the reference scenario is (100*sqrt(3)/2, 0)
	total := b.TotalMomentum()
	assert.InDelta(t, 100*math.Sqrt(3)/2, total.X, 1e-9)
	assert.InDelta(t, 0.0, total.Y, 1e-9)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	cfg := DefaultConfig()
	cfg.G = 1.5
	cfg.Steps = 42
	cfg.Bodies[0].Velocity = [2]float64{-0.25, 0.75}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.G, loaded.G)
	assert.Equal(t, cfg.Steps, loaded.Steps)
	assert.Equal(t, cfg.Bodies, loaded.Bodies)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	assert.NotEmpty(t, names)

	for _, name := range names {
		cfg := GetPreset(name)
		require.NotNil(t, cfg, name)
		assert.NoError(t, cfg.Validate(), name)
	}

	assert.Nil(t, GetPreset("nonexistent"))
}

func TestBinaryPresetIsBalanced(t *testing.T) {
	cfg := GetPreset("binary")
	require.NotNil(t, cfg)

	b := cfg.InitialBodies()
	total := b.TotalMomentum()
	assert.InDelta(t, 0.0, total.X, 1e-12)
	assert.InDelta(t, 0.0, total.Y, 1e-12)
}
