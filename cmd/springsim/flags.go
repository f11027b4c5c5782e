package main

import (
	"fmt"

	"github.com/san-kum/springsim/internal/anim"
	"github.com/san-kum/springsim/internal/config"
	"github.com/san-kum/springsim/internal/physics"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	// Config sources, lowest precedence first: preset, file, flags.
	model      string
	preset     string
	configFile string
	// Spring flags
	fromValue    float64
	toValue      float64
	velocity     float64
	tension      float64
	friction     float64
	stiffness    float64
	damping      float64
	mass         float64
	iterations   int
	clamp        bool
	restDisp     float64
	restSpeed    float64
	classicRK4   bool
	frameRate    int
	duration     float64
	realtime     bool
	plotVelocity bool
	outFile      string
	phasePlot    bool
)

func addSpringFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&model, "model", "rk4", "preset family (rk4, dho)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.Float64Var(&fromValue, "from", 0, "start value")
	f.Float64Var(&toValue, "to", 1, "target value")
	f.Float64Var(&velocity, "velocity", 0, "initial velocity")
	f.Float64Var(&tension, "tension", physics.DefaultTension, "rk4 tension")
	f.Float64Var(&friction, "friction", physics.DefaultFriction, "rk4 friction")
	f.Float64Var(&stiffness, "stiffness", 100, "dho stiffness (> 0)")
	f.Float64Var(&damping, "damping", 10, "dho damping (> 0)")
	f.Float64Var(&mass, "mass", 1, "dho mass (> 0)")
	f.IntVar(&iterations, "iterations", anim.DefaultIterations, "loops to run, -1 for infinite")
	f.BoolVar(&clamp, "clamp", false, "stop as soon as the target is crossed")
	f.Float64Var(&restDisp, "rest-displacement", anim.DefaultRestDisplacementThreshold, "rest displacement threshold")
	f.Float64Var(&restSpeed, "rest-speed", anim.DefaultRestSpeedThreshold, "rest speed threshold")
	f.BoolVar(&classicRK4, "classic-rk4", false, "use the classical fourth RK4 stage")
	f.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	f.Float64Var(&duration, "time", config.DefaultDuration, "maximum run time in seconds")
}

// buildConfig layers preset, config file and explicitly set flags, then
// validates the result.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.LookupPreset(model, preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed

	if changed("from") {
		cfg.FromValue = fromValue
	}
	// A file or preset must name its own target.
	if changed("to") || (preset == "" && configFile == "") {
		cfg.ToValue = anim.Float(toValue)
	}
	if changed("velocity") {
		cfg.InitialVelocity = velocity
	}

	oscillatorFlags := changed("stiffness") || changed("damping") || changed("mass")
	tensionFlags := changed("tension") || changed("friction")

	switch {
	case tensionFlags:
		if changed("tension") || cfg.Tension == nil {
			cfg.Tension = anim.Float(tension)
		}
		if changed("friction") || cfg.Friction == nil {
			cfg.Friction = anim.Float(friction)
		}
	case oscillatorFlags:
		cfg.Tension, cfg.Friction = nil, nil
		if changed("stiffness") || cfg.Stiffness == nil {
			cfg.Stiffness = anim.Float(stiffness)
		}
		if changed("damping") || cfg.Damping == nil {
			cfg.Damping = anim.Float(damping)
		}
		if changed("mass") || cfg.Mass == nil {
			cfg.Mass = anim.Float(mass)
		}
	case preset == "" && configFile == "" && model == "dho":
		cfg.Stiffness, cfg.Damping, cfg.Mass = anim.Float(stiffness), anim.Float(damping), anim.Float(mass)
	case preset == "" && configFile == "":
		cfg.Tension = anim.Float(tension)
		cfg.Friction = anim.Float(friction)
	}

	if changed("iterations") {
		cfg.Iterations = iterations
	}
	if changed("clamp") {
		cfg.OvershootClamping = clamp
	}
	if changed("rest-displacement") {
		cfg.RestDisplacementThreshold = restDisp
	}
	if changed("rest-speed") {
		cfg.RestSpeedThreshold = restSpeed
	}
	if changed("classic-rk4") {
		cfg.ClassicRK4 = classicRK4
	}
	if changed("fps") {
		cfg.FPS = frameRate
	}
	if changed("time") {
		cfg.Duration = duration
	}
	if cfg.Name == "" {
		cfg.Name = cfg.Model()
	}
}
