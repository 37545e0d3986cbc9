// Package config handles scatter tool preferences: default form values,
// spin-box limits, alignment policy and logging.
package config

import (
	"fmt"

	"github.com/Faultbox/vertex-scatter/internal/scatter"
	"github.com/Faultbox/vertex-scatter/pkg/math"
)

// Config holds all tool settings.
type Config struct {
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Limits    LimitsConfig    `yaml:"limits"`
	Alignment AlignmentConfig `yaml:"alignment"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DefaultsConfig holds the values the form opens with.
type DefaultsConfig struct {
	MinScale   float64 `yaml:"min_scale"`
	MaxScale   float64 `yaml:"max_scale"`
	MinRotateX float64 `yaml:"min_rotate_x"`
	MaxRotateX float64 `yaml:"max_rotate_x"`
	MinRotateY float64 `yaml:"min_rotate_y"`
	MaxRotateY float64 `yaml:"max_rotate_y"`
	MinRotateZ float64 `yaml:"min_rotate_z"`
	MaxRotateZ float64 `yaml:"max_rotate_z"`
	Align      bool    `yaml:"align"`
	Preview    bool    `yaml:"preview"`
	Seed       uint64  `yaml:"seed"` // 0 = new seed every run
}

// LimitsConfig holds spin-box ranges.
type LimitsConfig struct {
	ScaleMin  float64 `yaml:"scale_min"`
	ScaleMax  float64 `yaml:"scale_max"`
	ScaleStep float64 `yaml:"scale_step"`
	RotateMin float64 `yaml:"rotate_min"`
	RotateMax float64 `yaml:"rotate_max"`
}

// AlignmentConfig holds surface alignment settings.
type AlignmentConfig struct {
	Degenerate string `yaml:"degenerate"` // "identity" or "skip"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the tool's stock values.
func Default() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			MinScale: 1.0,
			MaxScale: 1.0,
		},
		Limits: LimitsConfig{
			ScaleMin:  0,
			ScaleMax:  99.99,
			ScaleStep: 0.1,
			RotateMin: -360,
			RotateMax: 360,
		},
		Alignment: AlignmentConfig{
			Degenerate: "identity",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks limits are ordered and the policy is known.
func (c *Config) Validate() error {
	if c.Limits.ScaleMin > c.Limits.ScaleMax {
		return fmt.Errorf("limits: scale_min %v > scale_max %v", c.Limits.ScaleMin, c.Limits.ScaleMax)
	}
	if c.Limits.RotateMin > c.Limits.RotateMax {
		return fmt.Errorf("limits: rotate_min %v > rotate_max %v", c.Limits.RotateMin, c.Limits.RotateMax)
	}
	if c.Limits.ScaleStep <= 0 {
		return fmt.Errorf("limits: scale_step must be positive, got %v", c.Limits.ScaleStep)
	}
	if _, err := scatter.ParseDegeneratePolicy(c.Alignment.Degenerate); err != nil {
		return fmt.Errorf("alignment: %w", err)
	}
	return nil
}

// ScatterConfig converts the defaults section into a scatter snapshot.
func (c *Config) ScatterConfig() (scatter.Config, error) {
	policy, err := scatter.ParseDegeneratePolicy(c.Alignment.Degenerate)
	if err != nil {
		return scatter.Config{}, err
	}
	d := c.Defaults
	return scatter.Config{
		MinScale:       d.MinScale,
		MaxScale:       d.MaxScale,
		MinRotate:      math.Vec3{X: d.MinRotateX, Y: d.MinRotateY, Z: d.MinRotateZ},
		MaxRotate:      math.Vec3{X: d.MaxRotateX, Y: d.MaxRotateY, Z: d.MaxRotateZ},
		AlignToSurface: d.Align,
		PreviewOnly:    d.Preview,
		Seed:           d.Seed,
		Degenerate:     policy,
	}, nil
}

// Remember stores a scatter snapshot as the new defaults.
func (c *Config) Remember(sc scatter.Config) {
	c.Defaults = DefaultsConfig{
		MinScale:   sc.MinScale,
		MaxScale:   sc.MaxScale,
		MinRotateX: sc.MinRotate.X,
		MaxRotateX: sc.MaxRotate.X,
		MinRotateY: sc.MinRotate.Y,
		MaxRotateY: sc.MaxRotate.Y,
		MinRotateZ: sc.MinRotate.Z,
		MaxRotateZ: sc.MaxRotate.Z,
		Align:      sc.AlignToSurface,
		Preview:    sc.PreviewOnly,
		Seed:       sc.Seed,
	}
	c.Alignment.Degenerate = sc.Degenerate.String()
}
