package config

import (
	"fmt"
	"os"

	"github.com/san-kum/springsim/internal/anim"
	"github.com/san-kum/springsim/internal/dynamo"
	"github.com/san-kum/springsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS      = 60
	DefaultDuration = 10.0
)

// Config is a run description as stored in YAML. Spring keys are pointers
// so that an absent key differs from a zero value.
type Config struct {
	Name                      string   `yaml:"name,omitempty"`
	FromValue                 float64  `yaml:"from_value"`
	ToValue                   *float64 `yaml:"to_value"`
	InitialVelocity           float64  `yaml:"initial_velocity"`
	OvershootClamping         bool     `yaml:"overshoot_clamping"`
	RestDisplacementThreshold float64  `yaml:"rest_displacement_threshold"`
	RestSpeedThreshold        float64  `yaml:"rest_speed_threshold"`
	Iterations                int      `yaml:"iterations"`
	Tension                   *float64 `yaml:"tension,omitempty"`
	Friction                  *float64 `yaml:"friction,omitempty"`
	Stiffness                 *float64 `yaml:"stiffness,omitempty"`
	Damping                   *float64 `yaml:"damping,omitempty"`
	Mass                      *float64 `yaml:"mass,omitempty"`
	ClassicRK4                bool     `yaml:"classic_rk4"`
	FPS                       int      `yaml:"fps"`
	Duration                  float64  `yaml:"duration"`
}

func DefaultConfig() *Config {
	return &Config{
		RestDisplacementThreshold: anim.DefaultRestDisplacementThreshold,
		RestSpeedThreshold:        anim.DefaultRestSpeedThreshold,
		Iterations:                anim.DefaultIterations,
		FPS:                       DefaultFPS,
		Duration:                  DefaultDuration,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Clone returns a deep copy, so presets can be modified safely.
func (c *Config) Clone() *Config {
	out := *c
	out.ToValue = clonePtr(c.ToValue)
	out.Tension = clonePtr(c.Tension)
	out.Friction = clonePtr(c.Friction)
	out.Stiffness = clonePtr(c.Stiffness)
	out.Damping = clonePtr(c.Damping)
	out.Mass = clonePtr(c.Mass)
	return &out
}

// Model names the spring model the config resolves to.
func (c *Config) Model() string {
	return c.Anim().Kind().String()
}

// Anim converts the config into animation construction input. FromValue is
// not part of it: it belongs to the sink.
func (c *Config) Anim() anim.Config {
	ac := anim.Config{
		InitialVelocity:           c.InitialVelocity,
		OvershootClamping:         c.OvershootClamping,
		RestDisplacementThreshold: c.RestDisplacementThreshold,
		RestSpeedThreshold:        c.RestSpeedThreshold,
		Iterations:                c.Iterations,
		Tension:                   clonePtr(c.Tension),
		Friction:                  clonePtr(c.Friction),
		Stiffness:                 clonePtr(c.Stiffness),
		Damping:                   clonePtr(c.Damping),
		Mass:                      clonePtr(c.Mass),
		ClassicRK4:                c.ClassicRK4,
	}
	if c.ToValue != nil {
		ac.ToValue = *c.ToValue
	}
	return ac
}

func (c *Config) Sim() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.FPS = c.FPS
	cfg.Duration = c.Duration
	return cfg
}

// Validate checks everything an animation or a run would reject.
func (c *Config) Validate() error {
	if c.ToValue == nil {
		return dynamo.ErrMissingTarget
	}
	if c.Iterations < anim.Infinite {
		return fmt.Errorf("%w: iterations must be >= -1, got %d", dynamo.ErrParameterBounds, c.Iterations)
	}
	if c.FPS <= 0 || c.Duration <= 0 {
		return fmt.Errorf("%w: fps and duration must be positive, got %d and %g", dynamo.ErrParameterBounds, c.FPS, c.Duration)
	}
	return c.Anim().Validate()
}

// Params returns the flattened numeric parameters, for run metadata.
func (c *Config) Params() map[string]float64 {
	p := map[string]float64{
		"from_value":       c.FromValue,
		"initial_velocity": c.InitialVelocity,
		"iterations":       float64(c.Iterations),
	}
	if c.ToValue != nil {
		p["to_value"] = *c.ToValue
	}
	for name, v := range map[string]*float64{
		"tension":   c.Tension,
		"friction":  c.Friction,
		"stiffness": c.Stiffness,
		"damping":   c.Damping,
		"mass":      c.Mass,
	} {
		if v != nil {
			p[name] = *v
		}
	}
	return p
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
