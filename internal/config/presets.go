package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/springsim/internal/anim"
	"github.com/san-kum/springsim/internal/dynamo"
)

func tension(t, f float64) *Config {
	cfg := DefaultConfig()
	cfg.ToValue = anim.Float(1)
	cfg.Tension = anim.Float(t)
	cfg.Friction = anim.Float(f)
	return cfg
}

func oscillator(k, c, m float64) *Config {
	cfg := DefaultConfig()
	cfg.ToValue = anim.Float(1)
	cfg.Stiffness = anim.Float(k)
	cfg.Damping = anim.Float(c)
	cfg.Mass = anim.Float(m)
	return cfg
}

var Presets = map[string]map[string]*Config{
	"rk4": {
		"default":  tension(40, 7),
		"gentle":   tension(120, 14),
		"wobbly":   tension(180, 12),
		"stiff":    tension(210, 20),
		"slow":     tension(280, 60),
		"molasses": tension(280, 120),
		"snappy":   tension(230, 22),
	},
	"dho": {
		"bouncy":     oscillator(100, 10, 1),
		"critical":   oscillator(100, 20, 1),
		"overdamped": oscillator(100, 40, 1),
		"heavy":      oscillator(200, 12, 2),
		"snappy":     oscillator(400, 30, 1),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	out := cfg.Clone()
	out.Name = model + "/" + preset
	return out
}

// LookupPreset is GetPreset with an error naming the available presets.
func LookupPreset(model, preset string) (*Config, error) {
	if cfg := GetPreset(model, preset); cfg != nil {
		return cfg, nil
	}
	return nil, fmt.Errorf("%w: %s/%s (available: %v)", dynamo.ErrUnknownPreset, model, preset, ListPresets(model))
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListModels() []string {
	models := make([]string, 0, len(Presets))
	for m := range Presets {
		models = append(models, m)
	}
	sort.Strings(models)
	return models
}
