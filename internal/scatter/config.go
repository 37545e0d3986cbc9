package scatter

import (
	"fmt"
	gomath "math"
	"strings"

	"github.com/Faultbox/vertex-scatter/pkg/math"
)

// DegeneratePolicy decides what happens to an instance whose vertex has no
// usable surface normal while aligning.
type DegeneratePolicy int

const (
	// DegenerateIdentity keeps the instance at its vertex with no
	// orientation change.
	DegenerateIdentity DegeneratePolicy = iota
	// DegenerateSkip deletes the instance and reports the vertex as skipped.
	DegenerateSkip
)

// String returns the policy name used in config files.
func (p DegeneratePolicy) String() string {
	switch p {
	case DegenerateIdentity:
		return "identity"
	case DegenerateSkip:
		return "skip"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// ParseDegeneratePolicy parses "identity" or "skip". Empty means identity.
func ParseDegeneratePolicy(s string) (DegeneratePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "identity":
		return DegenerateIdentity, nil
	case "skip":
		return DegenerateSkip, nil
	default:
		return 0, fmt.Errorf("%w: unknown degenerate policy %q", ErrInvalidConfig, s)
	}
}

// Config is the snapshot of form values for one scatter run. It is passed
// by value and never modified once a run starts.
type Config struct {
	MinScale float64
	MaxScale float64

	// Per-axis rotation ranges in degrees.
	MinRotate math.Vec3
	MaxRotate math.Vec3

	AlignToSurface bool
	PreviewOnly    bool

	// Seed for the jitter source. Zero draws a fresh seed per run.
	Seed uint64

	Degenerate DegeneratePolicy
}

// DefaultConfig returns unit scale, no rotation, no alignment.
func DefaultConfig() Config {
	return Config{
		MinScale: 1,
		MaxScale: 1,
	}
}

// Validate checks every range is ordered and finite.
func (c Config) Validate() error {
	ranges := []struct {
		name     string
		min, max float64
	}{
		{"scale", c.MinScale, c.MaxScale},
		{"rotate x", c.MinRotate.X, c.MaxRotate.X},
		{"rotate y", c.MinRotate.Y, c.MaxRotate.Y},
		{"rotate z", c.MinRotate.Z, c.MaxRotate.Z},
	}
	for _, r := range ranges {
		if !finite(r.min) || !finite(r.max) {
			return fmt.Errorf("%w: %s range [%v, %v] is not finite", ErrInvalidConfig, r.name, r.min, r.max)
		}
		if r.min > r.max {
			return fmt.Errorf("%w: %s min %v is greater than max %v", ErrInvalidConfig, r.name, r.min, r.max)
		}
	}
	if c.Degenerate != DegenerateIdentity && c.Degenerate != DegenerateSkip {
		return fmt.Errorf("%w: degenerate policy %s", ErrInvalidConfig, c.Degenerate)
	}
	return nil
}

func finite(f float64) bool {
	return !gomath.IsNaN(f) && !gomath.IsInf(f, 0)
}
