package midistage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CymbalParams tunes one cymbal type's wobble.
type CymbalParams struct {
	Amplitude float64 `yaml:"amplitude"` // peak wobble amplitude on a strike
	HalfLife  float64 `yaml:"half_life"` // seconds per halving of the wobble
	WobbleHz  float64 `yaml:"wobble_hz"` // wobble cycles per second
}

// Config carries every policy constant the engine consumes. The algorithms
// never hard-code these numbers; tuning a show is a config edit, not a
// recompile.
type Config struct {
	// NeverHidden forces every instrument permanently visible. Stacking
	// still runs unchanged; only the visibility policy is bypassed.
	NeverHidden bool `yaml:"never_hidden"`

	// TransitionSpeed scales the stack-index easing rate. The per-frame
	// step is delta * TransitionSpeed * (target - current) / 500.
	TransitionSpeed float64 `yaml:"transition_speed"`

	// Visibility windows, in seconds.
	UpcomingWindow float64 `yaml:"upcoming_window"` // show before the next note starts
	GapWindow      float64 `yaml:"gap_window"`      // stay on screen through rests this short
	LingerWindow   float64 `yaml:"linger_window"`   // stay after the last note ends

	// Striker tuning.
	StrikeSpeed   float64 `yaml:"strike_speed"`    // degrees per second
	MaxStickAngle float64 `yaml:"max_stick_angle"` // degrees

	// Recoil tuning.
	RecoilDistance float64 `yaml:"recoil_distance"` // peak displacement, negative
	RecoilComeback float64 `yaml:"recoil_comeback"` // units per second back to rest

	// Cymbals maps a cymbal type name (crash, ride, hihat, splash) to its
	// wobble parameters. Unknown types fall back to the crash entry.
	Cymbals map[string]CymbalParams `yaml:"cymbals"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		TransitionSpeed: 2500,
		UpcomingWindow:  1,
		GapWindow:       7,
		LingerWindow:    2,
		StrikeSpeed:     200,
		MaxStickAngle:   50,
		RecoilDistance:  -2,
		RecoilComeback:  22,
		Cymbals: map[string]CymbalParams{
			"crash":  {Amplitude: 2.5, HalfLife: 0.6, WobbleHz: 4.5},
			"ride":   {Amplitude: 0.5, HalfLife: 1.2, WobbleHz: 5.0},
			"hihat":  {Amplitude: 0.25, HalfLife: 0.12, WobbleHz: 10.0},
			"splash": {Amplitude: 1.0, HalfLife: 0.3, WobbleHz: 7.5},
		},
	}
}

// LoadConfig reads a YAML tuning file over the defaults, so a file only
// needs the fields it changes.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// cymbal returns the wobble parameters for a type name, falling back to the
// crash entry and then to built-in defaults.
func (c Config) cymbal(name string) CymbalParams {
	if p, ok := c.Cymbals[name]; ok {
		return p
	}
	if p, ok := c.Cymbals["crash"]; ok {
		return p
	}
	return DefaultConfig().Cymbals["crash"]
}

// Option adjusts a Stage at construction.
type Option func(*Stage)

// WithConfig replaces the whole tuning set.
func WithConfig(cfg Config) Option {
	return func(s *Stage) { s.cfg = cfg }
}

// WithNeverHidden toggles the authoring/debugging override that keeps every
// instrument on screen.
func WithNeverHidden(enabled bool) Option {
	return func(s *Stage) { s.cfg.NeverHidden = enabled }
}
